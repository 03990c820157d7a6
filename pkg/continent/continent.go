// Package continent groups timezone identifiers by the leading segment of their name.
// The grouping is a UI heuristic, not authoritative geography: Pacific zones are
// filed under Australia, and only a short list of cities marks South America.
package continent

import "strings"

// Label is a coarse geographic grouping derived from a zone identifier.
type Label string

// Known labels, in display order.
const (
	Africa       Label = "Africa"
	Antarctica   Label = "Antarctica"
	Asia         Label = "Asia"
	Australia    Label = "Australia"
	Europe       Label = "Europe"
	NorthAmerica Label = "North America"
	SouthAmerica Label = "South America"
	Other        Label = "Other"
)

// All returns every label in display order.
func All() []Label {
	return []Label{Africa, Antarctica, Asia, Australia, Europe, NorthAmerica, SouthAmerica, Other}
}

// southAmericanTokens mark an America/ zone as South American.
var southAmericanTokens = []string{
	"Argentina", "Sao_Paulo", "Bogota", "Lima", "Caracas",
	"Santiago", "Montevideo", "Asuncion", "La_Paz",
}

// Classify maps a zone identifier to its continent label. It never fails;
// unknown prefixes map to Other.
func Classify(zone string) Label {
	switch {
	case strings.HasPrefix(zone, "Africa/"):
		return Africa
	case strings.HasPrefix(zone, "Antarctica/"):
		return Antarctica
	case strings.HasPrefix(zone, "Asia/"):
		return Asia
	case strings.HasPrefix(zone, "Australia/"), strings.HasPrefix(zone, "Pacific/"):
		return Australia
	case strings.HasPrefix(zone, "Europe/"):
		return Europe
	case strings.HasPrefix(zone, "America/"):
		rest := strings.TrimPrefix(zone, "America/")
		for _, token := range southAmericanTokens {
			if strings.Contains(rest, token) {
				return SouthAmerica
			}
		}
		return NorthAmerica
	default:
		return Other
	}
}

// Parse accepts a label name case-insensitively, with or without the space
// ("northamerica", "North America", "north_america").
func Parse(s string) (Label, bool) {
	norm := normalize(s)
	for _, l := range All() {
		if normalize(string(l)) == norm {
			return l, true
		}
	}
	return "", false
}

func normalize(s string) string {
	s = strings.ToLower(strings.TrimSpace(s))
	s = strings.ReplaceAll(s, " ", "")
	s = strings.ReplaceAll(s, "_", "")
	return strings.ReplaceAll(s, "-", "")
}
