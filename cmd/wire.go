package cmd

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"path/filepath"
	"time"

	"github.com/spf13/viper"

	agendaapi "github.com/eventer/runsheet-cli/internal/adapters/agenda/api"
	boardadapter "github.com/eventer/runsheet-cli/internal/adapters/render/board"
	tomlrepo "github.com/eventer/runsheet-cli/internal/adapters/repo/toml"
	"github.com/eventer/runsheet-cli/internal/application"
	"github.com/eventer/runsheet-cli/internal/domain"
	"github.com/eventer/runsheet-cli/internal/ports"
)

type app struct {
	agenda        ports.AgendaService
	ledger        *application.SessionLedger
	session       *application.SessionService
	boardRenderer func(application.Board, boardadapter.RenderOptions) (string, error)
	clock         ports.Clock
	event         eventConfig
	now           func() time.Time
}

type eventConfig struct {
	ID              domain.EventID
	Start           time.Time
	Days            int
	Location        *time.Location
	RefreshInterval time.Duration
	ClockInterval   time.Duration
}

func wireApp() (*app, error) {
	v := viper.New()
	v.SetDefault("api.base_url", envOrDefault("RUNSHEET_API_BASE_URL", "http://localhost:3000"))
	v.SetDefault("event.id", "")
	v.SetDefault("event.start_date", "")
	v.SetDefault("event.days", 3)
	v.SetDefault("event.timezone", "Asia/Bangkok")
	v.SetDefault("sync.refresh_interval", 5*time.Second)
	v.SetDefault("sync.clock_interval", time.Second)

	homeDir, err := os.UserHomeDir()
	if err != nil {
		return nil, fmt.Errorf("resolve home directory: %w", err)
	}

	v.SetConfigFile(filepath.Join(homeDir, ".runsheet", "config.toml"))
	if err := v.ReadInConfig(); err != nil && !errors.Is(err, os.ErrNotExist) {
		return nil, fmt.Errorf("read config file: %w", err)
	}

	event, err := loadEventConfig(v)
	if err != nil {
		return nil, err
	}

	store, err := tomlrepo.NewStore(v)
	if err != nil {
		return nil, fmt.Errorf("wire ledger store: %w", err)
	}

	client := agendaapi.NewClient(v.GetString("api.base_url"), http.DefaultClient)
	ledger := application.NewSessionLedger(store)
	clock := ports.SystemClock{}

	return &app{
		agenda:        client,
		ledger:        ledger,
		session:       application.NewSessionService(client, ledger, clock),
		boardRenderer: boardadapter.Render,
		clock:         clock,
		event:         event,
		now:           time.Now,
	}, nil
}

func loadEventConfig(v *viper.Viper) (eventConfig, error) {
	loc, err := time.LoadLocation(v.GetString("event.timezone"))
	if err != nil {
		return eventConfig{}, fmt.Errorf("load event timezone: %w", err)
	}

	event := eventConfig{
		ID:              domain.EventID(v.GetString("event.id")),
		Days:            v.GetInt("event.days"),
		Location:        loc,
		RefreshInterval: v.GetDuration("sync.refresh_interval"),
		ClockInterval:   v.GetDuration("sync.clock_interval"),
	}
	if event.Days < 1 {
		event.Days = 1
	}

	if raw := v.GetString("event.start_date"); raw != "" {
		start, err := time.ParseInLocation("2006-01-02", raw, loc)
		if err != nil {
			return eventConfig{}, fmt.Errorf("parse event start date %q: %w", raw, err)
		}
		event.Start = start
	} else {
		// Unset start date means the event starts today.
		now := time.Now().In(loc)
		event.Start = time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, loc)
	}

	return event, nil
}

// currentDay maps an instant onto the 1-based event day, clamped to the
// configured span.
func (a *app) currentDay(now time.Time) int {
	local := now.In(a.event.Location)
	today := time.Date(local.Year(), local.Month(), local.Day(), 0, 0, 0, 0, a.event.Location)

	day := int(today.Sub(a.event.Start).Hours()/24) + 1
	if day < 1 {
		day = 1
	}
	if day > a.event.Days {
		day = a.event.Days
	}

	return day
}

// dayBoard fetches one event day and assembles its display board with the
// local ledger folded in.
func (a *app) dayBoard(ctx context.Context, day int) (application.Board, error) {
	slots, err := a.daySlots(ctx, day)
	if err != nil {
		return application.Board{}, err
	}

	merged := a.ledger.Merge(slots)
	return application.BuildBoard(merged, a.ledger.Records(), a.now(), a.event.Location), nil
}

func (a *app) daySlots(ctx context.Context, day int) ([]domain.Slot, error) {
	slots, err := a.agenda.ListSlots(ctx, a.event.ID, day)
	if err != nil {
		return nil, err
	}

	date := domain.DayDate(a.event.Start, day-1, a.event.Location)
	return domain.FilterDay(slots, date, a.event.Location), nil
}

func envOrDefault(key, fallback string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return fallback
}
