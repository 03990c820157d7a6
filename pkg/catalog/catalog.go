// Package catalog builds the offset-ordered list of timezones shown to users.
package catalog

import (
	"errors"
	"log/slog"
	"sort"
	"time"

	"github.com/codeGROOVE-dev/tzoverlap/pkg/continent"
	"github.com/codeGROOVE-dev/tzoverlap/pkg/tzconvert"
)

// Entry is one zone in the catalog. Entries are snapshots: a rebuild is
// required to pick up a new DST state.
type Entry struct {
	ID            string          `json:"id"`
	Continent     continent.Label `json:"continent"`
	OffsetMinutes int             `json:"offset_minutes"`
}

// OffsetLabel renders the entry's offset, e.g. "UTC+05:30".
func (e Entry) OffsetLabel() string {
	return tzconvert.FormatOffset(e.OffsetMinutes)
}

// Builder resolves and orders zone identifiers.
type Builder struct {
	calendar tzconvert.Calendar
	logger   *slog.Logger
}

// NewBuilder creates a Builder. A nil logger discards log output.
func NewBuilder(calendar tzconvert.Calendar, logger *slog.Logger) *Builder {
	if logger == nil {
		logger = slog.New(slog.DiscardHandler)
	}
	return &Builder{calendar: calendar, logger: logger}
}

// Build resolves each id's offset at the given instant and returns the entries
// sorted by offset, then id. Ids that cannot be resolved are left out rather
// than failing the build; duplicate ids appear once.
func (b *Builder) Build(ids []string, at time.Time) []Entry {
	entries := make([]Entry, 0, len(ids))
	seen := make(map[string]bool, len(ids))
	skipped := 0

	for _, id := range ids {
		if seen[id] {
			continue
		}
		seen[id] = true

		offset, err := b.calendar.ResolveOffset(id, at)
		if err != nil {
			skipped++
			if errors.Is(err, tzconvert.ErrInvalidZone) {
				b.logger.Debug("skipping unknown zone", "zone", id, "error", err)
			} else {
				b.logger.Debug("skipping zone after resolution failure", "zone", id, "error", err)
			}
			continue
		}

		entries = append(entries, Entry{
			ID:            id,
			OffsetMinutes: offset,
			Continent:     continent.Classify(id),
		})
	}

	Sort(entries)
	b.logger.Debug("catalog built", "entries", len(entries), "skipped", skipped, "at", at.UTC())
	return entries
}

// Sort orders entries by offset ascending, ties broken by id.
func Sort(entries []Entry) {
	sort.Slice(entries, func(i, j int) bool {
		if entries[i].OffsetMinutes != entries[j].OffsetMinutes {
			return entries[i].OffsetMinutes < entries[j].OffsetMinutes
		}
		return entries[i].ID < entries[j].ID
	})
}
