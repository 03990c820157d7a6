package tzconvert

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/codeGROOVE-dev/tzoverlap/pkg/constants"
)

// ParseFixedOffset extracts the offset from a "UTC±H[:MM]" identifier.
// ok reports whether zone uses the UTC prefix at all; err is set when it does
// but the offset is malformed or out of range.
//
// Examples:
//   - "UTC" returns 0
//   - "UTC-4" returns -240
//   - "UTC+5:30" returns 330
//   - "UTC+14:00" returns 840
//   - "America/New_York" returns ok=false
func ParseFixedOffset(zone string) (minutes int, ok bool, err error) {
	if !strings.HasPrefix(zone, "UTC") {
		return 0, false, nil
	}
	rest := zone[3:]
	if rest == "" {
		return 0, true, nil
	}

	sign := 1
	switch rest[0] {
	case '+':
	case '-':
		sign = -1
	default:
		return 0, true, fmt.Errorf("offset %q must start with + or -", rest)
	}
	rest = rest[1:]

	hourPart, minutePart, hasMinutes := strings.Cut(rest, ":")
	if hourPart == "" || len(hourPart) > 2 {
		return 0, true, fmt.Errorf("invalid hour in offset %q", zone)
	}
	hours, err := strconv.Atoi(hourPart)
	if err != nil || hours < 0 {
		return 0, true, fmt.Errorf("invalid hour in offset %q", zone)
	}

	mins := 0
	if hasMinutes {
		if len(minutePart) != 2 {
			return 0, true, fmt.Errorf("invalid minutes in offset %q", zone)
		}
		mins, err = strconv.Atoi(minutePart)
		if err != nil || mins < 0 || mins > 59 {
			return 0, true, fmt.Errorf("invalid minutes in offset %q", zone)
		}
	}

	minutes = sign * (hours*60 + mins)
	if minutes < constants.MinOffsetMinutes || minutes > constants.MaxOffsetMinutes {
		return 0, true, fmt.Errorf("offset %q outside UTC-12:00..UTC+14:00", zone)
	}
	return minutes, true, nil
}
