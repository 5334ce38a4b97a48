package cmd

import (
	"strings"
	"unicode"

	"github.com/bnema/slotbot/internal/domain"
	"github.com/spf13/cobra"
)

type actorFlags struct {
	id    string
	roles []string
	admin bool
}

func (f *actorFlags) bind(cmd *cobra.Command, withRoles bool) {
	cmd.Flags().StringVar(&f.id, "actor", "", "Numeric id of the acting user")
	if withRoles {
		cmd.Flags().StringSliceVar(&f.roles, "role", nil, "Role id held by the acting user (repeatable)")
	}
	cmd.Flags().BoolVar(&f.admin, "admin", false, "Act with administrator permissions")
	_ = cmd.MarkFlagRequired("actor")
}

func (f actorFlags) actor() domain.Actor {
	roles := make([]string, 0, len(f.roles))
	for _, role := range f.roles {
		if trimmed := strings.TrimSpace(role); trimmed != "" {
			roles = append(roles, trimmed)
		}
	}

	return domain.Actor{
		ID:    domain.ActorID(strings.TrimSpace(f.id)),
		Roles: roles,
		Admin: f.admin,
	}
}

func sanitizeForTerminal(value string) string {
	return strings.Map(func(r rune) rune {
		if unicode.IsControl(r) && r != '\n' {
			return -1
		}
		return r
	}, value)
}
