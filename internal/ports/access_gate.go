package ports

import (
	"context"

	"github.com/bnema/slotbot/internal/domain"
)

type AccessGate interface {
	IsPrivileged(ctx context.Context, actor domain.Actor) (bool, error)
}

// SettingsRepository holds the access settings. Update runs fn on the
// current settings and stores the result while no other update can
// interleave.
type SettingsRepository interface {
	Get(ctx context.Context) (domain.Settings, error)
	Update(ctx context.Context, fn func(*domain.Settings) error) (domain.Settings, error)
}
