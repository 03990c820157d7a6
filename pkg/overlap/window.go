package overlap

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/codeGROOVE-dev/tzoverlap/pkg/tzconvert"
)

// WorkWindow is a local hour-of-day range, half-open [StartHour, EndHour).
// When EndHour is 24 the 00:00 instant also counts as inside the window.
type WorkWindow struct {
	StartHour int `json:"start_hour"`
	EndHour   int `json:"end_hour"`
}

// Validate checks 0 <= StartHour <= 23, 1 <= EndHour <= 24 and StartHour < EndHour.
func (w WorkWindow) Validate() error {
	switch {
	case w.StartHour < 0 || w.StartHour > 23:
		return &InvalidWindowError{Window: w, Reason: "start hour must be 0..23"}
	case w.EndHour < 1 || w.EndHour > 24:
		return &InvalidWindowError{Window: w, Reason: "end hour must be 1..24"}
	case w.StartHour >= w.EndHour:
		return &InvalidWindowError{Window: w, Reason: "start hour must be before end hour"}
	}
	return nil
}

// Contains reports whether a local wall-clock time falls inside the window.
// A window closing at 24 also contains exactly 00:00; 00:15 is outside.
func (w WorkWindow) Contains(lt tzconvert.LocalTime) bool {
	if lt.Hour >= w.StartHour && lt.Hour < w.EndHour {
		return true
	}
	return w.EndHour == 24 && lt.Hour == 0 && lt.Minute == 0
}

// Hours returns the window length in hours.
func (w WorkWindow) Hours() int {
	return w.EndHour - w.StartHour
}

// String formats the window as "9-17".
func (w WorkWindow) String() string {
	return fmt.Sprintf("%d-%d", w.StartHour, w.EndHour)
}

// ParseWorkWindow parses "9-17" (or "09:00-17:00") into a validated WorkWindow.
func ParseWorkWindow(s string) (WorkWindow, error) {
	startStr, endStr, ok := strings.Cut(strings.TrimSpace(s), "-")
	if !ok {
		return WorkWindow{}, fmt.Errorf("work window %q: want START-END: %w", s, ErrInvalidWindow)
	}
	start, err := parseHour(startStr)
	if err != nil {
		return WorkWindow{}, fmt.Errorf("work window %q start: %w", s, err)
	}
	end, err := parseHour(endStr)
	if err != nil {
		return WorkWindow{}, fmt.Errorf("work window %q end: %w", s, err)
	}

	w := WorkWindow{StartHour: start, EndHour: end}
	if err := w.Validate(); err != nil {
		return WorkWindow{}, err
	}
	return w, nil
}

func parseHour(s string) (int, error) {
	s = strings.TrimSpace(s)
	if h, m, ok := strings.Cut(s, ":"); ok {
		if m != "00" {
			return 0, fmt.Errorf("only whole hours are supported, got %q: %w", s, ErrInvalidWindow)
		}
		s = h
	}
	hour, err := strconv.Atoi(s)
	if err != nil {
		return 0, fmt.Errorf("hour %q: %w", s, ErrInvalidWindow)
	}
	return hour, nil
}
