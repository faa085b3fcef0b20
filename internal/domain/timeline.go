package domain

import (
	"sort"
	"time"
)

// DayDate returns the calendar date of the zero-based event day, evaluated in
// the reference location. Only the date part of eventStart matters.
func DayDate(eventStart time.Time, dayOffset int, loc *time.Location) time.Time {
	start := eventStart.In(loc)
	return time.Date(start.Year(), start.Month(), start.Day()+dayOffset, 0, 0, 0, 0, loc)
}

// FilterDay returns the slots whose scheduled start falls on the given
// calendar date in loc, sorted by scheduled start, ties broken by scheduled
// end. A day without slots yields an empty slice.
func FilterDay(slots []Slot, day time.Time, loc *time.Location) []Slot {
	dayLocal := day.In(loc)
	year, month, date := dayLocal.Date()

	filtered := make([]Slot, 0, len(slots))
	for _, slot := range slots {
		startLocal := slot.ScheduledStart.In(loc)
		y, m, d := startLocal.Date()
		if y == year && m == month && d == date {
			filtered = append(filtered, slot)
		}
	}

	SortSchedule(filtered)
	return filtered
}

// SortSchedule orders slots in place by scheduled start ascending, then
// scheduled end ascending. The sort is stable so equal slots keep their
// backend order.
func SortSchedule(slots []Slot) {
	sort.SliceStable(slots, func(i, j int) bool {
		if slots[i].ScheduledStart.Equal(slots[j].ScheduledStart) {
			return slots[i].ScheduledEnd.Before(slots[j].ScheduledEnd)
		}
		return slots[i].ScheduledStart.Before(slots[j].ScheduledStart)
	})
}

// DayGroup is one event day's worth of slots.
type DayGroup struct {
	Date  time.Time
	Slots []Slot
}

// GroupByDay buckets slots by their scheduled start date in loc, each bucket
// sorted per SortSchedule, buckets ordered chronologically.
func GroupByDay(slots []Slot, loc *time.Location) []DayGroup {
	buckets := map[time.Time][]Slot{}
	for _, slot := range slots {
		startLocal := slot.ScheduledStart.In(loc)
		date := time.Date(startLocal.Year(), startLocal.Month(), startLocal.Day(), 0, 0, 0, 0, loc)
		buckets[date] = append(buckets[date], slot)
	}

	groups := make([]DayGroup, 0, len(buckets))
	for date, daySlots := range buckets {
		SortSchedule(daySlots)
		groups = append(groups, DayGroup{Date: date, Slots: daySlots})
	}

	sort.Slice(groups, func(i, j int) bool {
		return groups[i].Date.Before(groups[j].Date)
	})

	return groups
}
