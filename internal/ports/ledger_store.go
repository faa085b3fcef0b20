package ports

import (
	"context"

	"github.com/eventer/runsheet-cli/internal/domain"
)

// LedgerStore persists the device-local session end records. Save replaces
// the whole collection. Load must treat unreadable or corrupt stored data as
// an empty collection, never as an error.
type LedgerStore interface {
	Load(ctx context.Context) ([]domain.SessionEndRecord, error)
	Save(ctx context.Context, records []domain.SessionEndRecord) error
}
