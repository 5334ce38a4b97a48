package ports

import (
	"context"
	"errors"
	"time"
)

var (
	// ErrSelectionDismissed is returned when the actor closes the widget
	// without submitting.
	ErrSelectionDismissed = errors.New("selection dismissed")
	// ErrNoMoreSelections is returned by non-interactive choosers asked for a
	// second selection after their preset one was refused.
	ErrNoMoreSelections = errors.New("no further selection available")
)

type ChoiceOption struct {
	Slot  int
	Label string
}

type ChoicePrompt struct {
	Title         string
	Options       []ChoiceOption
	MaxSelections int
	Deadline      time.Time
}

// Chooser presents a multi-select widget and blocks until the actor submits
// one selection or ctx is done. A nil selection with a nil error means the
// widget closed without an answer.
type Chooser interface {
	Choose(ctx context.Context, prompt ChoicePrompt) ([]int, error)
}
