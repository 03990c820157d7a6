package overlap

import (
	"errors"
	"fmt"
)

// Sentinel errors for errors.Is checks.
var (
	ErrInvalidWindow = errors.New("invalid work window")
	ErrInvalidSlot   = errors.New("invalid slot configuration")
)

// InvalidWindowError reports a work window outside the documented ranges.
type InvalidWindowError struct {
	Reason string
	Window WorkWindow
}

func (e *InvalidWindowError) Error() string {
	return fmt.Sprintf("invalid work window %d-%d: %s", e.Window.StartHour, e.Window.EndHour, e.Reason)
}

// Is makes errors.Is(err, ErrInvalidWindow) hold.
func (*InvalidWindowError) Is(target error) bool { return target == ErrInvalidWindow }

// ZoneError wraps a resolution failure with the side of the comparison it hit.
// The overlap cannot be computed when either side fails.
type ZoneError struct {
	Err  error
	Side string
	Zone string
}

func (e *ZoneError) Error() string {
	return fmt.Sprintf("cannot compute overlap for zone %q (%s): %v", e.Zone, e.Side, e.Err)
}

func (e *ZoneError) Unwrap() error { return e.Err }
