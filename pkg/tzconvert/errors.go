package tzconvert

import (
	"errors"
	"fmt"
	"time"
)

// Sentinel errors for errors.Is checks.
var (
	ErrInvalidZone      = errors.New("invalid timezone")
	ErrOffsetResolution = errors.New("offset resolution failed")
)

// InvalidZoneError reports a zone identifier the calendar does not recognize.
type InvalidZoneError struct {
	Err  error
	Zone string
}

func (e *InvalidZoneError) Error() string {
	return fmt.Sprintf("invalid timezone %q: %v", e.Zone, e.Err)
}

func (e *InvalidZoneError) Unwrap() error { return e.Err }

// Is makes errors.Is(err, ErrInvalidZone) hold.
func (*InvalidZoneError) Is(target error) bool { return target == ErrInvalidZone }

// OffsetResolutionError reports a calendar failure for a known zone, such as a
// malformed instant.
type OffsetResolutionError struct {
	At   time.Time
	Err  error
	Zone string
}

func (e *OffsetResolutionError) Error() string {
	return fmt.Sprintf("resolving offset for %q at %s: %v", e.Zone, e.At.Format(time.RFC3339), e.Err)
}

func (e *OffsetResolutionError) Unwrap() error { return e.Err }

// Is makes errors.Is(err, ErrOffsetResolution) hold.
func (*OffsetResolutionError) Is(target error) bool { return target == ErrOffsetResolution }
