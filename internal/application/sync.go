package application

import (
	"context"
	"fmt"
	"sync"
	"time"

	"go.uber.org/zap"

	"github.com/eventer/runsheet-cli/internal/domain"
	"github.com/eventer/runsheet-cli/internal/ports"
)

// SyncConfig scopes a coordinator to one event day and sets its two tick
// intervals: a slow agenda refetch and a fast display clock.
type SyncConfig struct {
	EventID         domain.EventID
	EventStart      time.Time
	Day             int // 1-based event day
	Location        *time.Location
	RefreshInterval time.Duration
	ClockInterval   time.Duration
}

// SyncCoordinator keeps one event day's timeline fresh. A refresh tick
// refetches the slot list from the agenda backend; a clock tick advances the
// displayed wall clock. Both ticks stop when the context given to Start is
// canceled or Close is called, whichever comes first.
type SyncCoordinator struct {
	agenda  ports.AgendaService
	ledger  *SessionLedger
	session *SessionService
	clock   ports.Clock
	logger  *zap.Logger
	cfg     SyncConfig

	mu         sync.RWMutex
	slots      []domain.Slot
	displayNow time.Time

	cancel context.CancelFunc
	done   chan struct{}
}

func NewSyncCoordinator(agenda ports.AgendaService, ledger *SessionLedger, session *SessionService, clock ports.Clock, logger *zap.Logger, cfg SyncConfig) *SyncCoordinator {
	if clock == nil {
		clock = ports.SystemClock{}
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	if cfg.Location == nil {
		cfg.Location = time.UTC
	}
	if cfg.RefreshInterval <= 0 {
		cfg.RefreshInterval = 5 * time.Second
	}
	if cfg.ClockInterval <= 0 {
		cfg.ClockInterval = time.Second
	}

	return &SyncCoordinator{
		agenda:     agenda,
		ledger:     ledger,
		session:    session,
		clock:      clock,
		logger:     logger,
		cfg:        cfg,
		displayNow: clock.Now(),
	}
}

// Start performs an initial fetch, then runs both ticks until ctx is
// canceled. The initial fetch failing is fatal; there is nothing stale to
// fall back to yet.
func (c *SyncCoordinator) Start(ctx context.Context) error {
	if err := c.Refresh(ctx); err != nil {
		return err
	}

	ctx, cancel := context.WithCancel(ctx)
	c.cancel = cancel
	c.done = make(chan struct{})

	go c.run(ctx)
	return nil
}

func (c *SyncCoordinator) run(ctx context.Context) {
	defer close(c.done)

	refresh := time.NewTicker(c.cfg.RefreshInterval)
	defer refresh.Stop()
	clock := time.NewTicker(c.cfg.ClockInterval)
	defer clock.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-clock.C:
			c.mu.Lock()
			c.displayNow = c.clock.Now()
			c.mu.Unlock()
		case <-refresh.C:
			if err := c.Refresh(ctx); err != nil {
				// Stale data stays on display; the next tick retries.
				c.logger.Warn("agenda refresh failed",
					zap.String("event_id", string(c.cfg.EventID)),
					zap.Int("day", c.cfg.Day),
					zap.Error(err))
			}
		}
	}
}

// Close stops both ticks and waits for the loop to exit. Safe to call after
// the Start context was already canceled.
func (c *SyncCoordinator) Close() {
	if c.cancel == nil {
		return
	}

	c.cancel()
	<-c.done
}

// Refresh refetches the active event day's slots and replaces the timeline.
// On error the previous timeline is left intact.
func (c *SyncCoordinator) Refresh(ctx context.Context) error {
	slots, err := c.agenda.ListSlots(ctx, c.cfg.EventID, c.cfg.Day)
	if err != nil {
		return fmt.Errorf("refresh agenda: %w", err)
	}

	day := domain.DayDate(c.cfg.EventStart, c.cfg.Day-1, c.cfg.Location)
	filtered := domain.FilterDay(slots, day, c.cfg.Location)

	c.mu.Lock()
	c.slots = filtered
	c.displayNow = c.clock.Now()
	c.mu.Unlock()

	return nil
}

// Snapshot builds the display board from the current timeline, the ledger,
// and the display clock. Optimistic ledger changes show up here immediately,
// before the backend confirms them.
func (c *SyncCoordinator) Snapshot() Board {
	c.mu.RLock()
	slots := c.slots
	now := c.displayNow
	c.mu.RUnlock()

	return BuildBoard(c.ledger.Merge(slots), c.ledger.Records(), now, c.cfg.Location)
}

// Slots returns the current event day timeline.
func (c *SyncCoordinator) Slots() []domain.Slot {
	c.mu.RLock()
	defer c.mu.RUnlock()

	return c.slots
}

// EndSession ends a slot through the session service, using the coordinator's
// timeline to resolve the slot by ID.
func (c *SyncCoordinator) EndSession(ctx context.Context, id domain.SlotID) (domain.SessionEndRecord, error) {
	slot, ok := c.findSlot(id)
	if !ok {
		return domain.SessionEndRecord{}, fmt.Errorf("end session %s: %w", id, domain.ErrSlotNotFound)
	}

	return c.session.EndSession(ctx, slot)
}

// UndoSession removes a slot's local end record.
func (c *SyncCoordinator) UndoSession(ctx context.Context, id domain.SlotID) error {
	slot, ok := c.findSlot(id)
	if !ok {
		return fmt.Errorf("undo session %s: %w", id, domain.ErrSlotNotFound)
	}

	return c.session.UndoSession(ctx, slot)
}

func (c *SyncCoordinator) findSlot(id domain.SlotID) (domain.Slot, bool) {
	c.mu.RLock()
	defer c.mu.RUnlock()

	for _, slot := range c.slots {
		if slot.ID == id {
			return slot, true
		}
	}

	return domain.Slot{}, false
}
