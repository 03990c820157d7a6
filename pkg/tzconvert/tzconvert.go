// Package tzconvert resolves UTC offsets and wall-clock times for timezone identifiers.
// ALL instants passed in are absolute; offsets are always computed relative to a
// specific instant because DST makes them a function of date, not of the zone.
package tzconvert

import (
	"fmt"
	"math"
	"time"
)

// Calendar is the calendar facility every offset-aware component depends on.
// Implementations must be safe for concurrent use and free of side effects.
type Calendar interface {
	// ResolveOffset returns the zone's displacement from UTC in minutes at the
	// given instant. Positive means ahead of UTC.
	ResolveOffset(zone string, at time.Time) (int, error)
	// ResolveLocalTime returns the wall-clock hour and minute in zone at the given instant.
	ResolveLocalTime(zone string, at time.Time) (LocalTime, error)
}

// LocalTime is a wall-clock reading truncated to the minute.
type LocalTime struct {
	Hour   int `json:"hour"`
	Minute int `json:"minute"`
}

// String formats the wall-clock time as HH:MM.
func (lt LocalTime) String() string {
	return fmt.Sprintf("%02d:%02d", lt.Hour, lt.Minute)
}

// Minutes returns minutes since local midnight.
func (lt LocalTime) Minutes() int {
	return lt.Hour*60 + lt.Minute
}

// System is the Calendar backed by Go's timezone database.
// It holds no state, so the zero value is ready to use.
type System struct{}

// NewSystem returns the Calendar backed by Go's timezone database.
func NewSystem() *System {
	return &System{}
}

// Location loads the *time.Location for an IANA identifier or a fixed
// "UTC+H[:MM]" identifier.
//
// Examples:
//   - "Asia/Kolkata" loads the tzdata entry
//   - "UTC+5:30" returns a fixed zone 330 minutes east of UTC
//   - "" and "Local" are rejected: they name no specific region
func (*System) Location(zone string) (*time.Location, error) {
	if zone == "" || zone == "Local" {
		return nil, &InvalidZoneError{Zone: zone, Err: fmt.Errorf("not a timezone identifier")}
	}

	if minutes, ok, err := ParseFixedOffset(zone); ok {
		if err != nil {
			return nil, &InvalidZoneError{Zone: zone, Err: err}
		}
		return time.FixedZone(zone, minutes*60), nil
	}

	loc, err := time.LoadLocation(zone)
	if err != nil {
		return nil, &InvalidZoneError{Zone: zone, Err: err}
	}
	return loc, nil
}

// ResolveOffset implements Calendar.
func (s *System) ResolveOffset(zone string, at time.Time) (int, error) {
	if at.IsZero() {
		return 0, &OffsetResolutionError{Zone: zone, At: at, Err: fmt.Errorf("zero instant")}
	}
	loc, err := s.Location(zone)
	if err != nil {
		return 0, err
	}
	return WallClockOffset(at, loc), nil
}

// ResolveLocalTime implements Calendar.
func (s *System) ResolveLocalTime(zone string, at time.Time) (LocalTime, error) {
	if at.IsZero() {
		return LocalTime{}, &OffsetResolutionError{Zone: zone, At: at, Err: fmt.Errorf("zero instant")}
	}
	loc, err := s.Location(zone)
	if err != nil {
		return LocalTime{}, err
	}
	wall := at.In(loc)
	return LocalTime{Hour: wall.Hour(), Minute: wall.Minute()}, nil
}

// WallClockOffset derives the offset of loc at instant at, in minutes.
// It reads the calendar fields a wall clock in loc would show, rebuilds an
// instant from those fields as if they were UTC, and returns the difference.
// The result is rounded to the nearest minute to absorb second-level LMT offsets.
//
// Example: 12:00 UTC in Asia/Kolkata reads 17:30; 17:30 "as UTC" is 330 minutes
// after 12:00 UTC, so the offset is +330.
func WallClockOffset(at time.Time, loc *time.Location) int {
	wall := at.In(loc)
	asUTC := time.Date(wall.Year(), wall.Month(), wall.Day(),
		wall.Hour(), wall.Minute(), wall.Second(), 0, time.UTC)
	seconds := asUTC.Unix() - at.Unix()
	return int(math.Round(float64(seconds) / 60))
}

// FormatOffset renders an offset in minutes as a label like "UTC+05:30" or "UTC-08:00".
func FormatOffset(minutes int) string {
	sign := "+"
	if minutes < 0 {
		sign = "-"
		minutes = -minutes
	}
	return fmt.Sprintf("UTC%s%02d:%02d", sign, minutes/60, minutes%60)
}
