package cmd

import (
	"github.com/bnema/slotbot/internal/application"
	"github.com/bnema/slotbot/internal/domain"
	"github.com/spf13/cobra"
)

func newRoleCmd(app *app) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "role",
		Short: "Configure who may manage events",
	}

	cmd.AddCommand(
		newRoleSetCmd(app),
		newRoleGrantCmd(app),
	)

	return cmd
}

func newRoleSetCmd(app *app) *cobra.Command {
	var actor actorFlags
	var roleID string

	cmd := &cobra.Command{
		Use:   "set",
		Short: "Set the role allowed to create and edit events",
		RunE: func(cmd *cobra.Command, _ []string) error {
			return app.dispatcher(nil, cmd.OutOrStdout()).Handle(cmd.Context(), application.Request{
				Kind:   application.RequestSetManagerRole,
				Actor:  actor.actor(),
				RoleID: roleID,
			})
		},
	}

	actor.bind(cmd, false)
	cmd.Flags().StringVar(&roleID, "role", "", "Manager role id")
	_ = cmd.MarkFlagRequired("role")

	return cmd
}

func newRoleGrantCmd(app *app) *cobra.Command {
	var actor actorFlags
	var target string

	cmd := &cobra.Command{
		Use:   "grant",
		Short: "Allow a single user to create and edit events",
		RunE: func(cmd *cobra.Command, _ []string) error {
			return app.dispatcher(nil, cmd.OutOrStdout()).Handle(cmd.Context(), application.Request{
				Kind:   application.RequestGrantPrivilege,
				Actor:  actor.actor(),
				Target: domain.ActorID(target),
			})
		},
	}

	actor.bind(cmd, false)
	cmd.Flags().StringVar(&target, "user", "", "Numeric id of the user to grant")
	_ = cmd.MarkFlagRequired("user")

	return cmd
}
