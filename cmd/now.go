package cmd

import (
	"encoding/json"
	"fmt"

	"github.com/spf13/cobra"
)

func newNowCmd(app *app) *cobra.Command {
	var asJSON bool

	cmd := &cobra.Command{
		Use:   "now",
		Short: "Show what is happening right now",
		RunE: func(cmd *cobra.Command, _ []string) error {
			ctx := cmd.Context()
			if err := app.ledger.Load(ctx); err != nil {
				return fmt.Errorf("load session ledger: %w", err)
			}

			day := app.currentDay(app.now())
			board, err := app.dayBoard(ctx, day)
			if err != nil {
				return err
			}

			if asJSON {
				enc := json.NewEncoder(cmd.OutOrStdout())
				enc.SetIndent("", "  ")
				return enc.Encode(board)
			}

			out := cmd.OutOrStdout()

			current, ok := board.Current()
			if !ok {
				_, err := fmt.Fprintf(out, "%s  day %d: no session in progress\n", board.Clock, day)
				return err
			}

			line := fmt.Sprintf("%s  day %d: %s (%s - %s)", board.Clock, day, current.Activity, current.AdjustedStart, current.AdjustedEnd)
			if current.PersonInCharge != "" {
				line += "  " + current.PersonInCharge
			}
			if board.HasAP {
				line += "  " + board.APNotation
			}
			if _, err := fmt.Fprintln(out, line); err != nil {
				return err
			}

			if next, ok := board.Next(); ok {
				if _, err := fmt.Fprintf(out, "next up: %s (%s - %s)\n", next.Activity, next.AdjustedStart, next.AdjustedEnd); err != nil {
					return err
				}
			}

			_, err = fmt.Fprintf(out, "progress: %.0f%%\n", board.Progress)
			return err
		},
	}

	cmd.Flags().BoolVar(&asJSON, "json", false, "Output as JSON")

	return cmd
}
