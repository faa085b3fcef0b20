package cmd

import (
	"encoding/json"
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	boardadapter "github.com/eventer/runsheet-cli/internal/adapters/render/board"
	"github.com/eventer/runsheet-cli/internal/application"
	"github.com/eventer/runsheet-cli/internal/domain"
)

func newAgendaCmd(app *app) *cobra.Command {
	var (
		day      int
		realTime bool
		allDays  bool
		asJSON   bool
	)

	cmd := &cobra.Command{
		Use:   "agenda",
		Short: "Show the agenda for an event day",
		RunE: func(cmd *cobra.Command, _ []string) error {
			ctx := cmd.Context()
			if err := app.ledger.Load(ctx); err != nil {
				return fmt.Errorf("load session ledger: %w", err)
			}

			if allDays {
				return writeAllDays(cmd, app, realTime, asJSON)
			}

			if day == 0 {
				day = app.currentDay(app.now())
			}
			if day < 1 || day > app.event.Days {
				return fmt.Errorf("day %d is outside the event span of %d day(s)", day, app.event.Days)
			}

			board, err := app.dayBoard(ctx, day)
			if err != nil {
				return err
			}

			return writeBoardOutput(cmd, app, board, boardadapter.RenderOptions{Day: day, RealTime: realTime}, asJSON)
		},
	}

	cmd.Flags().IntVar(&day, "day", 0, "Event day to show (1-based, 0 = today)")
	cmd.Flags().BoolVar(&realTime, "realtime", false, "Show drift-adjusted times instead of planned ones")
	cmd.Flags().BoolVar(&allDays, "all", false, "Show every event day")
	cmd.Flags().BoolVar(&asJSON, "json", false, "Output as JSON")

	return cmd
}

func writeAllDays(cmd *cobra.Command, app *app, realTime, asJSON bool) error {
	ctx := cmd.Context()

	var slots []domain.Slot
	for day := 1; day <= app.event.Days; day++ {
		daySlots, err := app.daySlots(ctx, day)
		if err != nil {
			return err
		}
		slots = append(slots, daySlots...)
	}

	merged := app.ledger.Merge(slots)
	groups := domain.GroupByDay(merged, app.event.Location)

	boards := make([]application.Board, 0, len(groups))
	for _, group := range groups {
		boards = append(boards, application.BuildBoard(group.Slots, app.ledger.Records(), app.now(), app.event.Location))
	}

	if asJSON {
		enc := json.NewEncoder(cmd.OutOrStdout())
		enc.SetIndent("", "  ")
		return enc.Encode(boards)
	}

	sections := make([]string, 0, len(boards))
	for i, board := range boards {
		// Empty days drop out of the grouping, so the day label comes from
		// the group's date, not its position.
		dayNumber := int(groups[i].Date.Sub(app.event.Start).Hours()/24) + 1
		rendered, err := app.boardRenderer(board, boardadapter.RenderOptions{Day: dayNumber, RealTime: realTime})
		if err != nil {
			return fmt.Errorf("render agenda: %w", err)
		}
		sections = append(sections, rendered)
	}
	if len(sections) == 0 {
		sections = append(sections, "No agenda slots for this event.")
	}

	_, err := fmt.Fprintln(cmd.OutOrStdout(), strings.Join(sections, "\n\n"))
	return err
}

func writeBoardOutput(cmd *cobra.Command, app *app, board application.Board, opts boardadapter.RenderOptions, asJSON bool) error {
	if asJSON {
		enc := json.NewEncoder(cmd.OutOrStdout())
		enc.SetIndent("", "  ")
		return enc.Encode(board)
	}

	rendered, err := app.boardRenderer(board, opts)
	if err != nil {
		return fmt.Errorf("render agenda: %w", err)
	}

	_, err = fmt.Fprintln(cmd.OutOrStdout(), rendered)
	return err
}
