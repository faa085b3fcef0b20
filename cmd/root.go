package cmd

import "github.com/spf13/cobra"

func Execute() error {
	return newRootCmd().Execute()
}

func newRootCmd() *cobra.Command {
	rootCmd := &cobra.Command{
		Use:           "runsheet",
		Short:         "Run sheet CLI: track live event agendas and schedule drift",
		Long:          "runsheet keeps a live event's agenda honest: record when sessions actually end, see the schedule re-flow in real time, and read the drift in AP notation from the terminal.",
		SilenceUsage:  true,
		SilenceErrors: false,
	}

	app, err := wireApp()
	if err != nil {
		rootCmd.RunE = func(_ *cobra.Command, _ []string) error {
			return err
		}
		return rootCmd
	}

	rootCmd.AddCommand(
		newVersionCmd(),
		newAgendaCmd(app),
		newNowCmd(app),
		newEndCmd(app),
		newUndoCmd(app),
		newWatchCmd(app),
	)

	return rootCmd
}
