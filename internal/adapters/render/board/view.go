package board

import (
	"fmt"
	"math"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/eventer/runsheet-cli/internal/application"
)

type RenderOptions struct {
	// Day is the 1-based event day shown in the header.
	Day int
	// RealTime switches the agenda rows from the planned times to the
	// drift-adjusted ones.
	RealTime bool
}

// View renders the board directly, for embedding in a live terminal program.
func View(b application.Board, opts RenderOptions) string {
	return renderView(b, opts, newStyles())
}

func renderView(b application.Board, opts RenderOptions, s styles) string {
	lines := []string{
		s.title.Render("Run Sheet"),
		s.header.Render(headerLine(b, opts)),
	}

	if len(b.Slots) == 0 {
		lines = append(lines, s.empty.Render("No agenda slots for this day."))
		return lipgloss.JoinVertical(lipgloss.Left, lines...)
	}

	if current, ok := b.Current(); ok {
		lines = append(lines, s.section.Render(renderHappeningNow(b, current, s)))
	}

	if next, ok := b.Next(); ok {
		lines = append(lines, s.meta.Render(fmt.Sprintf("next up: %s (%s)", next.Activity, slotTimes(next, opts))))
	}

	lines = append(lines, s.section.Render(renderAgenda(b, opts, s)))

	return lipgloss.JoinVertical(lipgloss.Left, lines...)
}

func headerLine(b application.Board, opts RenderOptions) string {
	parts := []string{fmt.Sprintf("slots: %d", len(b.Slots))}
	if opts.Day > 0 {
		parts = append([]string{fmt.Sprintf("day %d", opts.Day)}, parts...)
	}
	if b.Clock != "" {
		parts = append(parts, b.Clock)
	}

	return strings.Join(parts, "  ")
}

func renderHappeningNow(b application.Board, current application.BoardSlot, s styles) string {
	title := s.current.Render("Happening now: " + current.Activity)
	if b.HasAP {
		title += " " + apBadge(b, s)
	}

	parts := []string{title}

	detail := fmt.Sprintf("%s - %s", current.AdjustedStart, current.AdjustedEnd)
	if current.PersonInCharge != "" {
		detail += "  " + current.PersonInCharge
	}
	parts = append(parts, s.detail.Render(detail))

	bar := renderProgressBar(b.Progress, 24, s)
	percent := s.barText.Render(fmt.Sprintf("%3.0f%%", b.Progress))
	parts = append(parts, lipgloss.JoinHorizontal(lipgloss.Top, bar, " ", percent))

	return lipgloss.JoinVertical(lipgloss.Left, parts...)
}

func apBadge(b application.Board, s styles) string {
	if b.APLate {
		return s.late.Render("[" + b.APNotation + "]")
	}

	return s.early.Render("[" + b.APNotation + "]")
}

func renderAgenda(b application.Board, opts RenderOptions, s styles) string {
	rows := make([]string, 0, len(b.Slots))
	for _, slot := range b.Slots {
		rows = append(rows, renderRow(slot, opts, s))
	}

	return lipgloss.JoinVertical(lipgloss.Left, rows...)
}

func renderRow(slot application.BoardSlot, opts RenderOptions, s styles) string {
	marker := "  "
	if slot.Current {
		marker = s.current.Render("> ")
	}

	times := slotTimes(slot, opts)
	timeStyle := s.meta
	if opts.RealTime && slot.Adjusted {
		timeStyle = s.adjusted
	}

	activityStyle := s.activity
	if slot.Ended {
		activityStyle = s.ended
	}

	segments := []string{
		marker,
		timeStyle.Render(times),
		"  ",
		activityStyle.Render(slot.Activity),
	}

	if slot.PersonInCharge != "" {
		segments = append(segments, "  ", s.meta.Render(slot.PersonInCharge))
	}
	if slot.Drift != "" {
		segments = append(segments, " ", driftBadge(slot.Drift, s))
	}

	return lipgloss.JoinHorizontal(lipgloss.Top, segments...)
}

func slotTimes(slot application.BoardSlot, opts RenderOptions) string {
	if opts.RealTime {
		return fmt.Sprintf("%s - %s", slot.AdjustedStart, slot.AdjustedEnd)
	}

	return fmt.Sprintf("%s - %s", slot.Start, slot.End)
}

func driftBadge(drift string, s styles) string {
	if strings.HasPrefix(drift, "AP+") && drift != "AP+0" {
		return s.late.Render(drift)
	}

	return s.early.Render(drift)
}

func renderProgressBar(percent float64, width int, s styles) string {
	if width <= 0 {
		return ""
	}

	if percent < 0 {
		percent = 0
	}
	if percent > 100 {
		percent = 100
	}

	filled := int(math.Round(float64(width) * percent / 100.0))
	if filled > width {
		filled = width
	}

	empty := width - filled
	fillSegment := s.barFill.Render(strings.Repeat("=", filled))
	emptySegment := s.barEmpty.Render(strings.Repeat("-", empty))

	return lipgloss.JoinHorizontal(
		lipgloss.Top,
		s.barBracket.Render("["),
		fillSegment,
		emptySegment,
		s.barBracket.Render("]"),
	)
}
