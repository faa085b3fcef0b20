package domain

import (
	"fmt"
	"time"
)

// FormatDrift renders a signed minute drift in AP notation: "AP+5" for five
// minutes late, "AP-5" for five minutes early, "AP+0" for on time.
func FormatDrift(differenceMinutes int) string {
	if differenceMinutes > 0 {
		return fmt.Sprintf("AP+%d", differenceMinutes)
	}
	if differenceMinutes < 0 {
		return fmt.Sprintf("AP%d", differenceMinutes)
	}

	return "AP+0"
}

// IsLate reports whether a drift means the session finished after plan.
func IsLate(differenceMinutes int) bool {
	return differenceMinutes > 0
}

// Progress returns how far now has advanced through the [start, end) window
// as a percentage clamped to [0, 100]. Windows are minutes from midnight. A
// degenerate window (end at or before start) reads as 0.
func Progress(startMinutes, endMinutes, nowMinutes int) float64 {
	duration := endMinutes - startMinutes
	if duration <= 0 {
		return 0
	}

	elapsed := nowMinutes - startMinutes
	percent := float64(elapsed) / float64(duration) * 100
	if percent < 0 {
		return 0
	}
	if percent > 100 {
		return 100
	}

	return percent
}

// MinuteOfDay converts an instant to minutes from midnight in loc.
func MinuteOfDay(t time.Time, loc *time.Location) int {
	local := t.In(loc)
	return local.Hour()*60 + local.Minute()
}

// FormatMinutes renders minutes from midnight as "HH.MM" wall-clock text.
// Values outside one day wrap, so a 23:50 slot shifted +20 displays 00.10.
func FormatMinutes(minutes int) string {
	const minutesPerDay = 24 * 60

	minutes %= minutesPerDay
	if minutes < 0 {
		minutes += minutesPerDay
	}

	return fmt.Sprintf("%02d.%02d", minutes/60, minutes%60)
}

// FormatClock renders an instant as "HH.MM" in loc.
func FormatClock(t time.Time, loc *time.Location) string {
	return FormatMinutes(MinuteOfDay(t, loc))
}
