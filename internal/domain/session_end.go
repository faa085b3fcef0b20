package domain

import (
	"math"
	"time"
)

// SessionEndRecord is one observed session end. ScheduledEnd is snapshotted
// from the slot at recording time, so a later agenda edit cannot rewrite the
// drift the operator saw.
type SessionEndRecord struct {
	SlotID            SlotID
	ActualEnd         time.Time
	ScheduledEnd      time.Time
	DifferenceMinutes int
}

// NewSessionEndRecord captures the slot ending at actualEnd against its plan.
func NewSessionEndRecord(slot Slot, actualEnd time.Time) SessionEndRecord {
	return SessionEndRecord{
		SlotID:            slot.ID,
		ActualEnd:         actualEnd,
		ScheduledEnd:      slot.ScheduledEnd,
		DifferenceMinutes: DifferenceMinutes(actualEnd, slot.ScheduledEnd),
	}
}

// DifferenceMinutes is the drift between an actual and a scheduled end,
// in whole minutes, rounded half away from zero. Positive means late.
func DifferenceMinutes(actualEnd, scheduledEnd time.Time) int {
	return int(math.Round(actualEnd.Sub(scheduledEnd).Minutes()))
}

// LatestRecord returns the record with the most recent actual end, false
// when there are none.
func LatestRecord(records []SessionEndRecord) (SessionEndRecord, bool) {
	if len(records) == 0 {
		return SessionEndRecord{}, false
	}

	latest := records[0]
	for _, record := range records[1:] {
		if record.ActualEnd.After(latest.ActualEnd) {
			latest = record
		}
	}

	return latest, true
}
