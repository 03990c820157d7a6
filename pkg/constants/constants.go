// Package constants defines shared constants for the tzoverlap application.
package constants

// SlotMinutes is the default width of one overlap slot.
// A UTC day is scanned in 1440/SlotMinutes slots (96 at the default).
const SlotMinutes = 15

// MinutesPerDay is the length of the reference day the overlap engine scans.
const MinutesPerDay = 24 * 60

// MinOverlapMinutes is the default shortest overlap segment that counts as a
// usable meeting window (3 hours).
const MinOverlapMinutes = 180

// Default working hours, local hour-of-day, half-open [start, end).
const (
	DefaultWorkStart = 9
	DefaultWorkEnd   = 17
)

// Bounds for a real-world UTC offset, in minutes (UTC-12:00 to UTC+14:00).
const (
	MinOffsetMinutes = -12 * 60
	MaxOffsetMinutes = 14 * 60
)
