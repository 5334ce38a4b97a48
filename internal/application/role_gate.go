package application

import (
	"context"
	"fmt"
	"strings"

	"github.com/bnema/slotbot/internal/domain"
	"github.com/bnema/slotbot/internal/ports"
	"github.com/rs/zerolog"
)

// RoleGate grants event management to administrators, to explicitly
// privileged actors and to holders of the configured manager role.
type RoleGate struct {
	settings ports.SettingsRepository
	logger   zerolog.Logger
}

func NewRoleGate(settings ports.SettingsRepository, logger zerolog.Logger) *RoleGate {
	return &RoleGate{settings: settings, logger: logger}
}

func (g *RoleGate) IsPrivileged(ctx context.Context, actor domain.Actor) (bool, error) {
	if actor.Admin {
		return true, nil
	}

	settings, err := g.settings.Get(ctx)
	if err != nil {
		return false, fmt.Errorf("load settings: %w", err)
	}
	if settings.IsPrivilegedActor(actor.ID) {
		return true, nil
	}

	roleID := strings.TrimSpace(settings.ManagerRoleID)
	if roleID == "" {
		g.logger.Warn().Str("actor", string(actor.ID)).Msg("no manager role configured; only administrators can manage events")
		return false, nil
	}

	return actor.HasRole(roleID), nil
}
