package application

import (
	"context"
	"fmt"

	"github.com/eventer/runsheet-cli/internal/domain"
	"github.com/eventer/runsheet-cli/internal/ports"
)

// SessionService performs the operator's end/undo actions. Ends are
// optimistic: the local record is applied first so the board advances
// immediately, then confirmed against the backend or rolled back.
type SessionService struct {
	agenda ports.AgendaService
	ledger *SessionLedger
	clock  ports.Clock
}

func NewSessionService(agenda ports.AgendaService, ledger *SessionLedger, clock ports.Clock) *SessionService {
	if clock == nil {
		clock = ports.SystemClock{}
	}

	return &SessionService{
		agenda: agenda,
		ledger: ledger,
		clock:  clock,
	}
}

// EndSession marks the slot finished now. The record lands in the ledger
// before the backend call; a failed call removes it again and persists
// nothing, so the board never shows an end the backend rejected.
func (s *SessionService) EndSession(ctx context.Context, slot domain.Slot) (domain.SessionEndRecord, error) {
	if slot.ScheduledEnd.IsZero() {
		return domain.SessionEndRecord{}, fmt.Errorf("end session for slot %s: %w", slot.ID, domain.ErrInvalidSchedule)
	}

	now := s.clock.Now()
	record := domain.NewSessionEndRecord(slot, now)

	s.ledger.RecordEnd(record)

	if _, err := s.agenda.EndSlotSession(ctx, slot.ID, now); err != nil {
		s.ledger.RemoveRecord(slot.ID)
		return domain.SessionEndRecord{}, fmt.Errorf("end slot session %s: %w", slot.ID, err)
	}

	if err := s.ledger.Persist(ctx); err != nil {
		return domain.SessionEndRecord{}, err
	}

	return record, nil
}

// UndoSession removes the local end record and persists the ledger. There is
// no remote un-end operation: if the backend already confirmed the end, the
// next refresh brings the slot back as ended through the merge rule. That is
// a known limitation, not a bug.
func (s *SessionService) UndoSession(ctx context.Context, slot domain.Slot) error {
	if _, ok := s.ledger.Get(slot.ID); !ok {
		return fmt.Errorf("undo session for slot %s: %w", slot.ID, domain.ErrNoSessionEnd)
	}

	s.ledger.RemoveRecord(slot.ID)

	if err := s.ledger.Persist(ctx); err != nil {
		return err
	}

	return nil
}
