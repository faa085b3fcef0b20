package application

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/eventer/runsheet-cli/internal/domain"
)

func TestSessionLedgerLoadReplacesInMemorySet(t *testing.T) {
	t.Parallel()

	stored := domain.NewSessionEndRecord(scheduleSlot("a", 9, 0, 10, 0), time.Date(2025, 7, 26, 10, 5, 0, 0, bangkok))
	ledger := NewSessionLedger(&inMemoryLedgerStore{records: []domain.SessionEndRecord{stored}})

	ledger.RecordEnd(domain.NewSessionEndRecord(scheduleSlot("b", 10, 0, 11, 0), time.Date(2025, 7, 26, 11, 0, 0, 0, bangkok)))
	require.NoError(t, ledger.Load(context.Background()))

	_, hasB := ledger.Get("b")
	assert.False(t, hasB)

	got, ok := ledger.Get("a")
	require.True(t, ok)
	assert.Equal(t, 5, got.DifferenceMinutes)
}

func TestSessionLedgerOneLiveRecordPerSlot(t *testing.T) {
	t.Parallel()

	ledger := NewSessionLedger(&inMemoryLedgerStore{})
	slot := scheduleSlot("a", 9, 0, 10, 0)

	ledger.RecordEnd(domain.NewSessionEndRecord(slot, time.Date(2025, 7, 26, 10, 5, 0, 0, bangkok)))
	ledger.RecordEnd(domain.NewSessionEndRecord(slot, time.Date(2025, 7, 26, 10, 12, 0, 0, bangkok)))

	records := ledger.Records()
	require.Len(t, records, 1)
	assert.Equal(t, 12, records[0].DifferenceMinutes)
}

func TestSessionLedgerRecordsOrderedByActualEnd(t *testing.T) {
	t.Parallel()

	ledger := NewSessionLedger(&inMemoryLedgerStore{})
	ledger.RecordEnd(domain.NewSessionEndRecord(scheduleSlot("b", 10, 0, 11, 0), time.Date(2025, 7, 26, 11, 10, 0, 0, bangkok)))
	ledger.RecordEnd(domain.NewSessionEndRecord(scheduleSlot("a", 9, 0, 10, 0), time.Date(2025, 7, 26, 9, 55, 0, 0, bangkok)))

	records := ledger.Records()
	require.Len(t, records, 2)
	assert.Equal(t, domain.SlotID("a"), records[0].SlotID)
	assert.Equal(t, domain.SlotID("b"), records[1].SlotID)
}

func TestSessionLedgerMergePrefersRemoteActualEnd(t *testing.T) {
	t.Parallel()

	ledger := NewSessionLedger(&inMemoryLedgerStore{})

	remote := scheduleSlot("a", 9, 0, 10, 0)
	remoteEnd := time.Date(2025, 7, 26, 10, 20, 0, 0, bangkok)
	remote.ActualEnd = &remoteEnd

	localOnly := scheduleSlot("b", 10, 0, 11, 0)
	scheduled := scheduleSlot("c", 11, 0, 12, 0)

	ledger.RecordEnd(domain.NewSessionEndRecord(remote, time.Date(2025, 7, 26, 10, 7, 0, 0, bangkok)))
	ledger.RecordEnd(domain.NewSessionEndRecord(localOnly, time.Date(2025, 7, 26, 11, 2, 0, 0, bangkok)))

	merged := ledger.Merge([]domain.Slot{remote, localOnly, scheduled})
	require.Len(t, merged, 3)

	// Remote end wins over the stale local observation for the same slot.
	assert.True(t, merged[0].ActualEnd.Equal(remoteEnd))
	require.NotNil(t, merged[1].ActualEnd)
	assert.True(t, merged[1].ActualEnd.Equal(time.Date(2025, 7, 26, 11, 2, 0, 0, bangkok)))
	assert.Nil(t, merged[2].ActualEnd)
}

func TestSessionLedgerPersistMirrorsRecords(t *testing.T) {
	t.Parallel()

	store := &inMemoryLedgerStore{}
	ledger := NewSessionLedger(store)
	ledger.RecordEnd(domain.NewSessionEndRecord(scheduleSlot("a", 9, 0, 10, 0), time.Date(2025, 7, 26, 10, 5, 0, 0, bangkok)))

	require.NoError(t, ledger.Persist(context.Background()))

	stored, err := store.Load(context.Background())
	require.NoError(t, err)
	require.Len(t, stored, 1)
	assert.Equal(t, domain.SlotID("a"), stored[0].SlotID)
}
