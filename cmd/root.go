package cmd

import "github.com/spf13/cobra"

func Execute() error {
	return newRootCmd().Execute()
}

func newRootCmd() *cobra.Command {
	rootCmd := &cobra.Command{
		Use:           "slotbot",
		Short:         "Slot sign-up sheets kept in shared event documents",
		Long:          "slotbot creates event documents with numbered time slots and lets people sign up for or leave slots, one at a time or several in a single timed session.",
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

	rootCmd.PersistentPostRunE = func(_ *cobra.Command, _ []string) error {
		return app.Close()
	}

	rootCmd.AddCommand(
		newVersionCmd(),
		newEventCmd(app),
		newSignUpCmd(app),
		newLeaveCmd(app),
		newRoleCmd(app),
	)

	return rootCmd
}
