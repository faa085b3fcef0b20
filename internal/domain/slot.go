package domain

import "time"

type (
	// SlotID identifies one agenda slot. IDs are minted by the backend.
	SlotID string
	// EventID identifies the event an agenda belongs to.
	EventID string
)

// Slot is one scheduled block of an event's agenda. ScheduledStart and
// ScheduledEnd are the planned window; ActualEnd is set only once the
// backend has confirmed the session finished.
type Slot struct {
	ID             SlotID
	EventID        EventID
	ScheduledStart time.Time
	ScheduledEnd   time.Time
	Activity       string
	PersonInCharge string
	Remarks        string
	ActualEnd      *time.Time
}

// Ended reports whether the backend holds a confirmed end for this slot.
func (s Slot) Ended() bool {
	return s.ActualEnd != nil
}
