package cmd

import (
	"fmt"

	"github.com/bnema/slotbot/internal/adapters/prompt/terminal"
	"github.com/bnema/slotbot/internal/application"
	"github.com/bnema/slotbot/internal/domain"
	"github.com/bnema/slotbot/internal/ports"
	"github.com/spf13/cobra"
)

func newSignUpCmd(app *app) *cobra.Command {
	cmd := newSlotCmd(app, "signup", "Sign up for a slot", application.RequestSignUp)
	cmd.AddCommand(newBatchCmd(app, "Sign up for several slots in one session", application.RequestBatchSignUp))
	return cmd
}

func newLeaveCmd(app *app) *cobra.Command {
	cmd := newSlotCmd(app, "leave", "Leave a slot", application.RequestLeave)
	cmd.AddCommand(newBatchCmd(app, "Leave several slots in one session", application.RequestBatchLeave))
	return cmd
}

func newSlotCmd(app *app, use string, short string, kind application.RequestKind) *cobra.Command {
	var actor actorFlags
	var eventID string
	var slot int

	cmd := &cobra.Command{
		Use:   use,
		Short: short,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return dispatchWithSpinner(cmd, app, application.Request{
				Kind:     kind,
				Actor:    actor.actor(),
				Document: domain.DocumentID(eventID),
				Slot:     slot - 1,
			})
		},
	}

	actor.bind(cmd, false)
	cmd.Flags().StringVar(&eventID, "event", "", "Event id")
	cmd.Flags().IntVar(&slot, "slot", 0, "Slot number, starting at 1")
	_ = cmd.MarkFlagRequired("event")
	_ = cmd.MarkFlagRequired("slot")

	return cmd
}

func newBatchCmd(app *app, short string, kind application.RequestKind) *cobra.Command {
	var actor actorFlags
	var eventID string
	var slots []int

	cmd := &cobra.Command{
		Use:   "batch",
		Short: short,
		Long:  "Presents the slots you can pick and applies your selection in one write. Without --slots an interactive picker opens; nothing changes if the selection window closes first.",
		RunE: func(cmd *cobra.Command, _ []string) error {
			var chooser ports.Chooser = terminal.NewChooser(cmd.InOrStdin(), cmd.ErrOrStderr())
			if cmd.Flags().Changed("slots") {
				selection := make([]int, 0, len(slots))
				for _, number := range slots {
					if number < 1 {
						return fmt.Errorf("invalid slot number %d", number)
					}
					selection = append(selection, number-1)
				}
				chooser = terminal.NewStatic(selection)
			}

			return app.dispatcher(chooser, cmd.OutOrStdout()).Handle(cmd.Context(), application.Request{
				Kind:     kind,
				Actor:    actor.actor(),
				Document: domain.DocumentID(eventID),
			})
		},
	}

	actor.bind(cmd, false)
	cmd.Flags().StringVar(&eventID, "event", "", "Event id")
	cmd.Flags().IntSliceVar(&slots, "slots", nil, "Slot numbers to pick without the interactive picker")
	_ = cmd.MarkFlagRequired("event")

	return cmd
}
