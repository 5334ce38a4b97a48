package ports

import (
	"context"

	"github.com/bnema/slotbot/internal/domain"
)

type Replier interface {
	Reply(ctx context.Context, actor domain.ActorID, message string) error
}
