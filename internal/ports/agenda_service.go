package ports

import (
	"context"
	"time"

	"github.com/eventer/runsheet-cli/internal/domain"
)

// AgendaService is the remote agenda backend. Listing is read-only; ending a
// slot session is the only mutation this core performs. Repeated end calls
// for the same slot overwrite the prior mark server-side.
type AgendaService interface {
	ListSlots(ctx context.Context, eventID domain.EventID, day int) ([]domain.Slot, error)
	EndSlotSession(ctx context.Context, id domain.SlotID, actualEnd time.Time) (domain.Slot, error)
}
