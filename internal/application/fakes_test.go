package application

import (
	"context"
	"sync"
	"time"

	"github.com/eventer/runsheet-cli/internal/domain"
)

type fixedClock struct {
	now time.Time
}

func (c fixedClock) Now() time.Time {
	return c.now
}

type inMemoryLedgerStore struct {
	mu      sync.Mutex
	records []domain.SessionEndRecord
	saves   int
	loadErr error
	saveErr error
}

func (s *inMemoryLedgerStore) Load(_ context.Context) ([]domain.SessionEndRecord, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.loadErr != nil {
		return nil, s.loadErr
	}
	return append([]domain.SessionEndRecord(nil), s.records...), nil
}

func (s *inMemoryLedgerStore) Save(_ context.Context, records []domain.SessionEndRecord) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.saveErr != nil {
		return s.saveErr
	}
	s.records = append([]domain.SessionEndRecord(nil), records...)
	s.saves++
	return nil
}

type fakeAgenda struct {
	mu       sync.Mutex
	slots    []domain.Slot
	listErr  error
	endErr   error
	endCalls []domain.SlotID
	listed   int
}

func (a *fakeAgenda) ListSlots(_ context.Context, _ domain.EventID, _ int) ([]domain.Slot, error) {
	a.mu.Lock()
	defer a.mu.Unlock()

	a.listed++
	if a.listErr != nil {
		return nil, a.listErr
	}
	return append([]domain.Slot(nil), a.slots...), nil
}

func (a *fakeAgenda) EndSlotSession(_ context.Context, id domain.SlotID, actualEnd time.Time) (domain.Slot, error) {
	a.mu.Lock()
	defer a.mu.Unlock()

	a.endCalls = append(a.endCalls, id)
	if a.endErr != nil {
		return domain.Slot{}, a.endErr
	}

	for i, slot := range a.slots {
		if slot.ID == id {
			end := actualEnd
			a.slots[i].ActualEnd = &end
			return a.slots[i], nil
		}
	}

	return domain.Slot{}, domain.ErrSlotNotFound
}

var bangkok = time.FixedZone("ICT", 7*60*60)

func scheduleSlot(id domain.SlotID, startHour, startMin, endHour, endMin int) domain.Slot {
	return domain.Slot{
		ID:             id,
		EventID:        "evt-1",
		Activity:       "Session " + string(id),
		ScheduledStart: time.Date(2025, 7, 26, startHour, startMin, 0, 0, bangkok),
		ScheduledEnd:   time.Date(2025, 7, 26, endHour, endMin, 0, 0, bangkok),
	}
}
