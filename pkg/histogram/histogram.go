// Package histogram provides terminal visualization of overlap results.
package histogram

import (
	"fmt"
	"strings"

	"github.com/fatih/color"

	"github.com/codeGROOVE-dev/tzoverlap/pkg/overlap"
	"github.com/codeGROOVE-dev/tzoverlap/pkg/tzconvert"
)

// Cell glyphs.
const (
	workCell = "█"
	idleCell = "·"
)

var (
	colorA       = color.New(color.FgBlue)
	colorB       = color.New(color.FgYellow)
	colorOverlap = color.New(color.FgGreen)
	colorIdle    = color.New(color.FgHiBlack)
	colorHeader  = color.New(color.Bold)
	colorWarn    = color.New(color.FgRed)
)

// labelWidth is the width of the row label column.
const labelWidth = 8

// RenderOverlap draws the result as two aligned bars, one per zone, with the
// overlapping slots highlighted on a third row. Columns are UTC slots; the
// tick row is labelled in zone A's local hours.
func RenderOverlap(res *overlap.Result) string {
	var output strings.Builder

	output.WriteString(colorHeader.Sprintf("🕒 Working-hour overlap for %s (UTC)\n", res.Day.Format("2006-01-02")))
	output.WriteString(strings.Repeat("─", 50) + "\n")
	fmt.Fprintf(&output, "A: %s  work %s\n", res.ZoneA, formatWindow(res.WindowA))
	fmt.Fprintf(&output, "B: %s  work %s\n\n", res.ZoneB, formatWindow(res.WindowB))

	perHour := 60 / res.SlotMinutes
	if perHour < 1 {
		perHour = 1
	}

	output.WriteString(padLabel("A local") + tickRow(res.Slots, perHour, func(s overlap.Slot) tzconvert.LocalTime { return s.LocalA }) + "\n")
	output.WriteString(padLabel("A") + bar(res.Slots, func(s overlap.Slot) bool { return s.WorkingA }, colorA) + "\n")
	output.WriteString(padLabel("B") + bar(res.Slots, func(s overlap.Slot) bool { return s.WorkingB }, colorB) + "\n")
	output.WriteString(padLabel("both") + bar(res.Slots, func(s overlap.Slot) bool { return s.Overlap }, colorOverlap) + "\n")
	output.WriteString(padLabel("B local") + tickRow(res.Slots, perHour, func(s overlap.Slot) tzconvert.LocalTime { return s.LocalB }) + "\n\n")

	output.WriteString(Summary(res))
	return output.String()
}

// Summary describes the outcome in a few lines.
func Summary(res *overlap.Result) string {
	var output strings.Builder

	if len(res.Segments) == 0 {
		output.WriteString(colorWarn.Sprint("No overlapping working hours.") + "\n")
		return output.String()
	}

	if res.EarliestStart != nil {
		start := res.EarliestStart
		fmt.Fprintf(&output, "✅ %s overlap starts %s in %s / %s in %s (%d min)\n",
			formatDuration(res.MinDurationMinutes),
			start.LocalA, res.ZoneA, start.LocalB, res.ZoneB,
			start.Segment.Duration(res.SlotMinutes))
	} else {
		output.WriteString(colorWarn.Sprintf("⚠️  No overlap of at least %s", formatDuration(res.MinDurationMinutes)) + "\n")
	}

	output.WriteString("Segments:\n")
	for _, seg := range res.Segments {
		first := res.Slots[seg.StartIndex]
		last := res.Slots[seg.EndIndex]
		endA := addMinutes(last.LocalA, res.SlotMinutes)
		endB := addMinutes(last.LocalB, res.SlotMinutes)
		fmt.Fprintf(&output, "  • %s-%s %s / %s-%s %s (%d min)\n",
			first.LocalA, endA, shortZone(res.ZoneA),
			first.LocalB, endB, shortZone(res.ZoneB),
			seg.Duration(res.SlotMinutes))
	}
	return output.String()
}

func bar(slots []overlap.Slot, on func(overlap.Slot) bool, c *color.Color) string {
	var b strings.Builder
	for _, s := range slots {
		if on(s) {
			b.WriteString(c.Sprint(workCell))
		} else {
			b.WriteString(colorIdle.Sprint(idleCell))
		}
	}
	return b.String()
}

// tickRow writes the local hour above every hour's first slot, two digits wide.
func tickRow(slots []overlap.Slot, perHour int, local func(overlap.Slot) tzconvert.LocalTime) string {
	cells := make([]string, len(slots))
	for i := range cells {
		cells[i] = " "
	}
	for i := 0; i < len(slots); i += perHour {
		if perHour < 2 && i%2 == 1 {
			continue // hourly slots leave no room for two digits on every column
		}
		label := fmt.Sprintf("%02d", local(slots[i]).Hour)
		cells[i] = label[:1]
		if i+1 < len(cells) {
			cells[i+1] = label[1:]
		}
	}
	return strings.Join(cells, "")
}

func padLabel(s string) string {
	return fmt.Sprintf("%-*s", labelWidth, s)
}

func formatWindow(w overlap.WorkWindow) string {
	return fmt.Sprintf("%02d:00-%02d:00", w.StartHour, w.EndHour)
}

func formatDuration(minutes int) string {
	if minutes%60 == 0 {
		return fmt.Sprintf("%dh", minutes/60)
	}
	return fmt.Sprintf("%dh%02dm", minutes/60, minutes%60)
}

func addMinutes(lt tzconvert.LocalTime, minutes int) tzconvert.LocalTime {
	total := (lt.Minutes() + minutes) % (24 * 60)
	return tzconvert.LocalTime{Hour: total / 60, Minute: total % 60}
}

func shortZone(zone string) string {
	if i := strings.LastIndex(zone, "/"); i >= 0 {
		return strings.ReplaceAll(zone[i+1:], "_", " ")
	}
	return zone
}
