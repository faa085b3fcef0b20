package application

import (
	"time"

	"github.com/eventer/runsheet-cli/internal/domain"
)

// BoardSlot is one agenda row prepared for display.
type BoardSlot struct {
	ID             domain.SlotID
	Activity       string
	PersonInCharge string
	Remarks        string
	Start          string
	End            string
	AdjustedStart  string
	AdjustedEnd    string
	Adjusted       bool
	Ended          bool
	Drift          string
	Current        bool
}

// Board is the full "what is happening now" view for one event day.
type Board struct {
	Now          time.Time
	Clock        string
	Slots        []BoardSlot
	CurrentIndex int
	HasCurrent   bool
	NextIndex    int
	HasNext      bool
	APNotation   string
	APLate       bool
	HasAP        bool
	Progress     float64
}

// Current returns the active board slot.
func (b Board) Current() (BoardSlot, bool) {
	if !b.HasCurrent {
		return BoardSlot{}, false
	}
	return b.Slots[b.CurrentIndex], true
}

// Next returns the slot after the active one.
func (b Board) Next() (BoardSlot, bool) {
	if !b.HasNext {
		return BoardSlot{}, false
	}
	return b.Slots[b.NextIndex], true
}

// BuildBoard assembles the display board from one day's sorted slots, the
// live end records, and the current instant. It is total: an empty day
// yields a board with no current slot.
func BuildBoard(slots []domain.Slot, records []domain.SessionEndRecord, now time.Time, loc *time.Location) Board {
	board := Board{
		Now:   now,
		Clock: domain.FormatClock(now, loc),
	}

	adjusted := domain.AdjustSchedule(slots, records, loc)
	recordBySlot := make(map[domain.SlotID]domain.SessionEndRecord, len(records))
	for _, record := range records {
		recordBySlot[record.SlotID] = record
	}

	board.Slots = make([]BoardSlot, 0, len(adjusted))
	for _, slot := range adjusted {
		row := BoardSlot{
			ID:             slot.ID,
			Activity:       slot.Activity,
			PersonInCharge: slot.PersonInCharge,
			Remarks:        slot.Remarks,
			Start:          domain.FormatClock(slot.ScheduledStart, loc),
			End:            domain.FormatClock(slot.ScheduledEnd, loc),
			AdjustedStart:  slot.StartDisplay(),
			AdjustedEnd:    slot.EndDisplay(),
			Adjusted:       slot.Adjusted,
			Ended:          slot.Ended(),
		}
		if record, ok := recordBySlot[slot.ID]; ok {
			row.Ended = true
			row.Drift = domain.FormatDrift(record.DifferenceMinutes)
		}
		board.Slots = append(board.Slots, row)
	}

	index, ok := domain.CurrentSlotIndex(slots, records, now, loc)
	if !ok {
		return board
	}

	board.CurrentIndex = index
	board.HasCurrent = true
	board.Slots[index].Current = true

	if index < len(board.Slots)-1 {
		board.NextIndex = index + 1
		board.HasNext = true
	}

	if latest, ok := domain.LatestRecord(records); ok {
		board.APNotation = domain.FormatDrift(latest.DifferenceMinutes)
		board.APLate = domain.IsLate(latest.DifferenceMinutes)
		board.HasAP = true
	}

	current := adjusted[index]
	board.Progress = domain.Progress(current.StartMinutes, current.EndMinutes, domain.MinuteOfDay(now, loc))

	return board
}
