package domain

import "time"

// CurrentSlotIndex resolves which slot in a day's sorted list is active at
// now. It returns ok=false only for an empty list; callers must check it
// instead of treating index 0 as a safe default.
//
// Resolution order:
//  1. If any listed slot has an end record, the slot after the most recently
//     ended one is current, unless the ended slot is the last.
//  2. Otherwise the first slot whose scheduled window contains now, compared
//     by time of day in loc (the list is already filtered to one date).
//  3. Before the first slot's start, the first slot.
//  4. After everything, the last slot.
func CurrentSlotIndex(slots []Slot, records []SessionEndRecord, now time.Time, loc *time.Location) (int, bool) {
	if len(slots) == 0 {
		return 0, false
	}

	indexByID := make(map[SlotID]int, len(slots))
	for i, slot := range slots {
		indexByID[slot.ID] = i
	}

	listed := make([]SessionEndRecord, 0, len(records))
	for _, record := range records {
		if _, ok := indexByID[record.SlotID]; ok {
			listed = append(listed, record)
		}
	}

	if latest, ok := LatestRecord(listed); ok {
		endedIndex := indexByID[latest.SlotID]
		if endedIndex < len(slots)-1 {
			return endedIndex + 1, true
		}
	}

	nowMinutes := MinuteOfDay(now, loc)
	for i, slot := range slots {
		start := MinuteOfDay(slot.ScheduledStart, loc)
		end := MinuteOfDay(slot.ScheduledEnd, loc)
		if nowMinutes >= start && nowMinutes < end {
			return i, true
		}
	}

	if nowMinutes < MinuteOfDay(slots[0].ScheduledStart, loc) {
		return 0, true
	}

	return len(slots) - 1, true
}
