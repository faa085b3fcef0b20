package domain

import "time"

// AdjustedSlot is a slot with its displayed "as it actually ran" window, in
// minutes from midnight in the reference location.
type AdjustedSlot struct {
	Slot
	StartMinutes int
	EndMinutes   int
	Adjusted     bool
}

// StartDisplay renders the adjusted start as "HH.MM".
func (s AdjustedSlot) StartDisplay() string {
	return FormatMinutes(s.StartMinutes)
}

// EndDisplay renders the adjusted end as "HH.MM".
func (s AdjustedSlot) EndDisplay() string {
	return FormatMinutes(s.EndMinutes)
}

// AdjustSchedule propagates observed end drifts onto the displayed timing of
// a day's sorted slots. Each slot's start shifts by the carried drift; a slot
// with an end record displays its actual end and replaces the carried drift
// with its own delta against the original plan.
//
// The carried drift is the most recently observed delta, not a running sum:
// after a +10 slot and then a +5 slot, later slots shift by +5. Callers rely
// on that replacement behavior.
func AdjustSchedule(slots []Slot, records []SessionEndRecord, loc *time.Location) []AdjustedSlot {
	bySlot := make(map[SlotID]SessionEndRecord, len(records))
	for _, record := range records {
		bySlot[record.SlotID] = record
	}

	shift := 0
	adjusted := make([]AdjustedSlot, 0, len(slots))

	for _, slot := range slots {
		startMinutes := MinuteOfDay(slot.ScheduledStart, loc) + shift
		scheduledEndMinutes := MinuteOfDay(slot.ScheduledEnd, loc)

		endMinutes := scheduledEndMinutes + shift
		isAdjusted := shift != 0

		if record, ok := bySlot[slot.ID]; ok {
			endMinutes = MinuteOfDay(record.ActualEnd, loc)
			shift = endMinutes - scheduledEndMinutes
			isAdjusted = true
		}

		adjusted = append(adjusted, AdjustedSlot{
			Slot:         slot,
			StartMinutes: startMinutes,
			EndMinutes:   endMinutes,
			Adjusted:     isAdjusted,
		})
	}

	return adjusted
}
