package cmd

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/eventer/runsheet-cli/internal/domain"
)

func newEndCmd(app *app) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "end <slot-id>",
		Short: "Mark a session as ended now",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			if err := app.ledger.Load(ctx); err != nil {
				return fmt.Errorf("load session ledger: %w", err)
			}

			slotID := domain.SlotID(args[0])
			slot, err := findSlot(ctx, app, slotID)
			if err != nil {
				return err
			}

			record, err := runEndSpinner(ctx, cmd.ErrOrStderr(), slot, func(ctx context.Context) (domain.SessionEndRecord, error) {
				return app.session.EndSession(ctx, slot)
			})
			if err != nil {
				return err
			}

			_, err = fmt.Fprintf(cmd.OutOrStdout(), "Ended %q at %s (%s)\n",
				slot.Activity,
				domain.FormatClock(record.ActualEnd, app.event.Location),
				domain.FormatDrift(record.DifferenceMinutes),
			)
			return err
		},
	}

	return cmd
}

// findSlot scans the event days in order until the slot turns up.
func findSlot(ctx context.Context, app *app, id domain.SlotID) (domain.Slot, error) {
	for day := 1; day <= app.event.Days; day++ {
		slots, err := app.daySlots(ctx, day)
		if err != nil {
			return domain.Slot{}, err
		}

		for _, slot := range slots {
			if slot.ID == id {
				return slot, nil
			}
		}
	}

	return domain.Slot{}, fmt.Errorf("slot %s: %w", id, domain.ErrSlotNotFound)
}
