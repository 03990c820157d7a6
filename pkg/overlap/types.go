package overlap

import (
	"time"

	"github.com/codeGROOVE-dev/tzoverlap/pkg/tzconvert"
)

// Slot is one fixed-width piece of the reference day.
type Slot struct {
	StartUTC time.Time           `json:"start_utc"`
	LocalA   tzconvert.LocalTime `json:"local_a"`
	LocalB   tzconvert.LocalTime `json:"local_b"`
	Index    int                 `json:"index"`
	WorkingA bool                `json:"working_a"`
	WorkingB bool                `json:"working_b"`
	Overlap  bool                `json:"overlap"`
}

// Segment is a maximal run of overlapping slots; both indexes are inclusive.
type Segment struct {
	StartIndex int `json:"start_index"`
	EndIndex   int `json:"end_index"`
}

// Len returns the number of slots in the segment.
func (s Segment) Len() int {
	return s.EndIndex - s.StartIndex + 1
}

// Duration returns the segment length in minutes for a given slot width.
func (s Segment) Duration(slotMinutes int) int {
	return s.Len() * slotMinutes
}

// Start is where the earliest qualifying segment begins, on both wall clocks.
type Start struct {
	UTC     time.Time           `json:"utc"`
	LocalA  tzconvert.LocalTime `json:"local_a"`
	LocalB  tzconvert.LocalTime `json:"local_b"`
	Segment Segment             `json:"segment"`
}

// Result is a complete overlap snapshot for one reference day.
// Segments are always reported; EarliestStart is nil unless
// HasQualifyingOverlap is set.
type Result struct {
	Day                  time.Time  `json:"day"`
	EarliestStart        *Start     `json:"earliest_start,omitempty"`
	ZoneA                string     `json:"zone_a"`
	ZoneB                string     `json:"zone_b"`
	Slots                []Slot     `json:"slots"`
	Segments             []Segment  `json:"segments"`
	WindowA              WorkWindow `json:"window_a"`
	WindowB              WorkWindow `json:"window_b"`
	SlotMinutes          int        `json:"slot_minutes"`
	MinDurationMinutes   int        `json:"min_duration_minutes"`
	HasQualifyingOverlap bool       `json:"has_qualifying_overlap"`
}

// OverlapMinutes is the total overlap across all segments.
func (r *Result) OverlapMinutes() int {
	total := 0
	for _, seg := range r.Segments {
		total += seg.Duration(r.SlotMinutes)
	}
	return total
}

// LongestSegment returns the longest segment, the earliest one on ties.
// It is for display only; the suggested start is always the earliest
// qualifying segment.
func (r *Result) LongestSegment() (Segment, bool) {
	if len(r.Segments) == 0 {
		return Segment{}, false
	}
	best := r.Segments[0]
	for _, seg := range r.Segments[1:] {
		if seg.Len() > best.Len() {
			best = seg
		}
	}
	return best, true
}
