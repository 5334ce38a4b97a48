package reply

import (
	"context"
	"fmt"
	"io"
	"sync"

	"github.com/bnema/slotbot/internal/domain"
	"github.com/bnema/slotbot/internal/ports"
)

// Writer delivers replies as lines on a stream. Only the requesting actor
// runs the command, so the reply carries no addressee.
type Writer struct {
	out io.Writer
	mu  sync.Mutex
}

var _ ports.Replier = (*Writer)(nil)

func NewWriter(out io.Writer) *Writer {
	return &Writer{out: out}
}

func (w *Writer) Reply(ctx context.Context, _ domain.ActorID, message string) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	w.mu.Lock()
	defer w.mu.Unlock()

	if _, err := fmt.Fprintln(w.out, message); err != nil {
		return fmt.Errorf("write reply: %w", err)
	}
	return nil
}
