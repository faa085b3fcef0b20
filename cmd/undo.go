package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/eventer/runsheet-cli/internal/domain"
)

func newUndoCmd(app *app) *cobra.Command {
	return &cobra.Command{
		Use:   "undo <slot-id>",
		Short: "Take back a recorded session end",
		Long:  "undo removes the local end record for a slot. The backend keeps whatever it already confirmed; an end the backend accepted comes back on the next agenda fetch.",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			if err := app.ledger.Load(ctx); err != nil {
				return fmt.Errorf("load session ledger: %w", err)
			}

			slotID := domain.SlotID(args[0])
			if err := app.session.UndoSession(ctx, domain.Slot{ID: slotID}); err != nil {
				return err
			}

			_, err := fmt.Fprintf(cmd.OutOrStdout(), "Removed end record for slot %s\n", slotID)
			return err
		},
	}
}
