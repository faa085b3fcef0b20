package cmd

import (
	"fmt"
	"os"
	"path/filepath"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/spf13/cobra"
	"go.uber.org/zap"

	boardadapter "github.com/eventer/runsheet-cli/internal/adapters/render/board"
	"github.com/eventer/runsheet-cli/internal/application"
)

func newWatchCmd(app *app) *cobra.Command {
	var (
		day      int
		realTime bool
		verbose  bool
	)

	cmd := &cobra.Command{
		Use:   "watch",
		Short: "Watch the agenda live",
		Long:  "watch keeps the board on screen, refetching the agenda in the background and advancing the clock every second. Press r to flip between planned and drift-adjusted times, q to leave.",
		RunE: func(cmd *cobra.Command, _ []string) error {
			ctx := cmd.Context()
			if err := app.ledger.Load(ctx); err != nil {
				return fmt.Errorf("load session ledger: %w", err)
			}

			if day == 0 {
				day = app.currentDay(app.now())
			}
			if day < 1 || day > app.event.Days {
				return fmt.Errorf("day %d is outside the event span of %d day(s)", day, app.event.Days)
			}

			logger, err := buildWatchLogger(verbose)
			if err != nil {
				return err
			}
			defer func() { _ = logger.Sync() }()

			coordinator := application.NewSyncCoordinator(app.agenda, app.ledger, app.session, app.clock, logger, application.SyncConfig{
				EventID:         app.event.ID,
				EventStart:      app.event.Start,
				Day:             day,
				Location:        app.event.Location,
				RefreshInterval: app.event.RefreshInterval,
				ClockInterval:   app.event.ClockInterval,
			})

			if err := coordinator.Start(ctx); err != nil {
				return err
			}
			defer coordinator.Close()

			interval := app.event.ClockInterval
			if interval <= 0 {
				interval = time.Second
			}

			p := tea.NewProgram(
				watchModel{
					coordinator: coordinator,
					interval:    interval,
					day:         day,
					realTime:    realTime,
					board:       coordinator.Snapshot(),
				},
				tea.WithContext(ctx),
				tea.WithOutput(cmd.OutOrStdout()),
				tea.WithAltScreen(),
			)

			_, err = p.Run()
			return err
		},
	}

	cmd.Flags().IntVar(&day, "day", 0, "Event day to watch (1-based, 0 = today)")
	cmd.Flags().BoolVar(&realTime, "realtime", false, "Start with drift-adjusted times")
	cmd.Flags().BoolVar(&verbose, "verbose", false, "Log background sync activity to ~/.runsheet/watch.log")

	return cmd
}

func buildWatchLogger(verbose bool) (*zap.Logger, error) {
	if !verbose {
		return zap.NewNop(), nil
	}

	homeDir, err := os.UserHomeDir()
	if err != nil {
		return nil, fmt.Errorf("resolve home directory: %w", err)
	}

	cfg := zap.NewProductionConfig()
	// The terminal belongs to the live board; logs go to a file.
	cfg.OutputPaths = []string{filepath.Join(homeDir, ".runsheet", "watch.log")}
	cfg.ErrorOutputPaths = cfg.OutputPaths

	logger, err := cfg.Build()
	if err != nil {
		return nil, fmt.Errorf("build watch logger: %w", err)
	}

	return logger, nil
}

type watchTickMsg time.Time

func watchTick(interval time.Duration) tea.Cmd {
	return tea.Tick(interval, func(t time.Time) tea.Msg {
		return watchTickMsg(t)
	})
}

var watchHelpStyle = lipgloss.NewStyle().Faint(true)

type watchModel struct {
	coordinator *application.SyncCoordinator
	interval    time.Duration
	day         int
	realTime    bool
	board       application.Board
}

func (m watchModel) Init() tea.Cmd {
	return watchTick(m.interval)
}

func (m watchModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch msg.String() {
		case "q", "ctrl+c", "esc":
			return m, tea.Quit
		case "r":
			m.realTime = !m.realTime
		}
		return m, nil
	case watchTickMsg:
		m.board = m.coordinator.Snapshot()
		return m, watchTick(m.interval)
	default:
		return m, nil
	}
}

func (m watchModel) View() string {
	view := boardadapter.View(m.board, boardadapter.RenderOptions{Day: m.day, RealTime: m.realTime})
	return view + "\n\n" + watchHelpStyle.Render("r: toggle realtime  q: quit")
}
