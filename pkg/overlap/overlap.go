// Package overlap finds the hours two people in different timezones are both at work.
//
// A UTC reference day is cut into fixed-width slots. Each slot is checked
// against both work windows in the owner's local time, and runs of slots where
// both sides work are collapsed into segments. The earliest segment at least
// MinDurationMinutes long is the suggested meeting window.
package overlap

import (
	"fmt"
	"log/slog"
	"time"

	"github.com/codeGROOVE-dev/tzoverlap/pkg/constants"
	"github.com/codeGROOVE-dev/tzoverlap/pkg/tzconvert"
)

// Engine computes overlaps. It holds only configuration, so one Engine may
// serve concurrent callers.
type Engine struct {
	calendar tzconvert.Calendar
	logger   *slog.Logger
	opts     OptionHolder
}

// New creates an Engine. Defaults are 15-minute slots and a 180-minute minimum.
func New(calendar tzconvert.Calendar, opts ...Option) *Engine {
	holder := OptionHolder{
		minDurationMinutes: constants.MinOverlapMinutes,
		slotMinutes:        constants.SlotMinutes,
	}
	for _, opt := range opts {
		opt(&holder)
	}
	logger := holder.logger
	if logger == nil {
		logger = slog.New(slog.DiscardHandler)
	}
	return &Engine{calendar: calendar, logger: logger, opts: holder}
}

// FindOverlap scans the UTC day starting at day and reports where windowA in
// zoneA and windowB in zoneB coincide. Options override the Engine defaults
// for this call only.
//
// Any resolution failure on either side aborts the call with a *ZoneError;
// there is no partial result.
func (e *Engine) FindOverlap(zoneA, zoneB string, windowA, windowB WorkWindow, day time.Time, opts ...Option) (*Result, error) {
	holder := e.opts
	for _, opt := range opts {
		opt(&holder)
	}

	if err := windowA.Validate(); err != nil {
		return nil, fmt.Errorf("zone A: %w", err)
	}
	if err := windowB.Validate(); err != nil {
		return nil, fmt.Errorf("zone B: %w", err)
	}
	if holder.slotMinutes <= 0 || constants.MinutesPerDay%holder.slotMinutes != 0 {
		return nil, fmt.Errorf("slot of %d minutes does not divide a day: %w", holder.slotMinutes, ErrInvalidSlot)
	}
	if holder.minDurationMinutes < 0 {
		return nil, fmt.Errorf("negative minimum duration %d: %w", holder.minDurationMinutes, ErrInvalidSlot)
	}

	day = day.UTC()
	count := constants.MinutesPerDay / holder.slotMinutes
	slots := make([]Slot, count)

	for i := range slots {
		start := day.Add(time.Duration(i*holder.slotMinutes) * time.Minute)

		localA, err := e.calendar.ResolveLocalTime(zoneA, start)
		if err != nil {
			return nil, &ZoneError{Zone: zoneA, Side: "zone A", Err: err}
		}
		localB, err := e.calendar.ResolveLocalTime(zoneB, start)
		if err != nil {
			return nil, &ZoneError{Zone: zoneB, Side: "zone B", Err: err}
		}

		workingA := windowA.Contains(localA)
		workingB := windowB.Contains(localB)
		slots[i] = Slot{
			Index:    i,
			StartUTC: start,
			LocalA:   localA,
			LocalB:   localB,
			WorkingA: workingA,
			WorkingB: workingB,
			Overlap:  workingA && workingB,
		}
	}

	result := &Result{
		ZoneA:              zoneA,
		ZoneB:              zoneB,
		WindowA:            windowA,
		WindowB:            windowB,
		Day:                day,
		SlotMinutes:        holder.slotMinutes,
		MinDurationMinutes: holder.minDurationMinutes,
		Slots:              slots,
		Segments:           Segments(slots),
	}

	for _, seg := range result.Segments {
		if seg.Duration(holder.slotMinutes) < holder.minDurationMinutes {
			continue
		}
		first := slots[seg.StartIndex]
		result.HasQualifyingOverlap = true
		result.EarliestStart = &Start{
			Segment: seg,
			UTC:     first.StartUTC,
			LocalA:  first.LocalA,
			LocalB:  first.LocalB,
		}
		break
	}

	e.logger.Debug("overlap computed",
		"zone_a", zoneA, "zone_b", zoneB,
		"window_a", windowA.String(), "window_b", windowB.String(),
		"day", day.Format(time.DateOnly),
		"segments", len(result.Segments),
		"qualifying", result.HasQualifyingOverlap)

	return result, nil
}

// Segments collapses the slots flagged Overlap into maximal runs, in slot order.
// Runs never touch: at least one non-overlapping slot separates any two.
func Segments(slots []Slot) []Segment {
	var segments []Segment
	start := -1
	for i, s := range slots {
		switch {
		case s.Overlap && start < 0:
			start = i
		case !s.Overlap && start >= 0:
			segments = append(segments, Segment{StartIndex: start, EndIndex: i - 1})
			start = -1
		}
	}
	if start >= 0 {
		segments = append(segments, Segment{StartIndex: start, EndIndex: len(slots) - 1})
	}
	return segments
}

// UTCMidnight returns the start of the UTC day containing t.
func UTCMidnight(t time.Time) time.Time {
	t = t.UTC()
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC)
}
