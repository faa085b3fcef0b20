package application

import (
	"context"
	"fmt"
	"sort"
	"sync"

	"github.com/eventer/runsheet-cli/internal/domain"
	"github.com/eventer/runsheet-cli/internal/ports"
)

// SessionLedger owns the device-local set of session end records: at most
// one live record per slot. Every successful change is mirrored to the
// durable store; the store is read once, at startup.
type SessionLedger struct {
	store ports.LedgerStore

	mu      sync.RWMutex
	records map[domain.SlotID]domain.SessionEndRecord
}

func NewSessionLedger(store ports.LedgerStore) *SessionLedger {
	return &SessionLedger{
		store:   store,
		records: map[domain.SlotID]domain.SessionEndRecord{},
	}
}

// Load replaces the in-memory set with the persisted one. The store already
// swallows corrupt data, so a failed read here is a real I/O problem.
func (l *SessionLedger) Load(ctx context.Context) error {
	records, err := l.store.Load(ctx)
	if err != nil {
		return fmt.Errorf("load session ledger: %w", err)
	}

	l.mu.Lock()
	defer l.mu.Unlock()

	l.records = make(map[domain.SlotID]domain.SessionEndRecord, len(records))
	for _, record := range records {
		l.records[record.SlotID] = record
	}

	return nil
}

// RecordEnd inserts or replaces the live record for the slot.
func (l *SessionLedger) RecordEnd(record domain.SessionEndRecord) {
	l.mu.Lock()
	defer l.mu.Unlock()

	l.records[record.SlotID] = record
}

// RemoveRecord drops the live record for the slot, if any.
func (l *SessionLedger) RemoveRecord(id domain.SlotID) {
	l.mu.Lock()
	defer l.mu.Unlock()

	delete(l.records, id)
}

// Get returns the live record for the slot.
func (l *SessionLedger) Get(id domain.SlotID) (domain.SessionEndRecord, bool) {
	l.mu.RLock()
	defer l.mu.RUnlock()

	record, ok := l.records[id]
	return record, ok
}

// Records returns the live records ordered by actual end time.
func (l *SessionLedger) Records() []domain.SessionEndRecord {
	l.mu.RLock()
	defer l.mu.RUnlock()

	records := make([]domain.SessionEndRecord, 0, len(l.records))
	for _, record := range l.records {
		records = append(records, record)
	}

	sort.Slice(records, func(i, j int) bool {
		return records[i].ActualEnd.Before(records[j].ActualEnd)
	})

	return records
}

// Merge overlays local end observations onto slots fetched from the backend.
// A slot's own ActualEnd is remote-authoritative and wins; otherwise the
// local record fills it in; otherwise the slot stays as scheduled.
func (l *SessionLedger) Merge(slots []domain.Slot) []domain.Slot {
	l.mu.RLock()
	defer l.mu.RUnlock()

	merged := make([]domain.Slot, len(slots))
	for i, slot := range slots {
		if !slot.Ended() {
			if record, ok := l.records[slot.ID]; ok {
				actualEnd := record.ActualEnd
				slot.ActualEnd = &actualEnd
			}
		}
		merged[i] = slot
	}

	return merged
}

// Persist mirrors the current record set to the durable store.
func (l *SessionLedger) Persist(ctx context.Context) error {
	if err := l.store.Save(ctx, l.Records()); err != nil {
		return fmt.Errorf("persist session ledger: %w", err)
	}

	return nil
}
