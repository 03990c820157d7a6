package catalog

import (
	"strings"

	"github.com/codeGROOVE-dev/tzoverlap/pkg/continent"
)

// Filter returns the entries matching a continent and a search query, keeping
// catalog order. An empty label matches every continent. The query matches
// case-insensitively anywhere in the id, with underscores read as spaces, so
// "new york" finds "America/New_York".
func Filter(entries []Entry, label continent.Label, query string) []Entry {
	query = normalizeQuery(query)

	out := make([]Entry, 0, len(entries))
	for _, e := range entries {
		if label != "" && e.Continent != label {
			continue
		}
		if query != "" && !strings.Contains(normalizeQuery(e.ID), query) {
			continue
		}
		out = append(out, e)
	}
	return out
}

func normalizeQuery(s string) string {
	return strings.ToLower(strings.ReplaceAll(strings.TrimSpace(s), "_", " "))
}
