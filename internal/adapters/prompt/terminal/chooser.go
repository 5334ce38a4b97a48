package terminal

import (
	"context"
	"fmt"
	"io"
	"slices"

	"github.com/bnema/slotbot/internal/ports"
	tea "github.com/charmbracelet/bubbletea"
)

// Chooser renders the multi-select prompt on a terminal.
type Chooser struct {
	in  io.Reader
	out io.Writer
}

var _ ports.Chooser = (*Chooser)(nil)

func NewChooser(in io.Reader, out io.Writer) *Chooser {
	return &Chooser{in: in, out: out}
}

func (c *Chooser) Choose(ctx context.Context, prompt ports.ChoicePrompt) ([]int, error) {
	p := tea.NewProgram(
		newModel(prompt, nil),
		tea.WithInput(c.in),
		tea.WithOutput(c.out),
		tea.WithContext(ctx),
	)

	finalModel, err := p.Run()
	if ctxErr := ctx.Err(); ctxErr != nil {
		return nil, ctxErr
	}
	if err != nil {
		return nil, fmt.Errorf("run chooser: %w", err)
	}

	result, ok := finalModel.(model)
	if !ok {
		return nil, fmt.Errorf("unexpected final chooser model type %T", finalModel)
	}
	switch result.outcome {
	case outcomeExpired:
		return nil, context.DeadlineExceeded
	case outcomeCancelled:
		return nil, ports.ErrSelectionDismissed
	}

	return result.Selection(), nil
}

// Static answers the first prompt with a preset selection. A later prompt
// means the preset was refused, so it answers ports.ErrNoMoreSelections. It
// stands in for the interactive widget when slots are given up front.
type Static struct {
	selection []int
	answered  bool
}

var _ ports.Chooser = (*Static)(nil)

func NewStatic(selection []int) *Static {
	return &Static{selection: slices.Clone(selection)}
}

func (s *Static) Choose(ctx context.Context, _ ports.ChoicePrompt) ([]int, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	if s.selection == nil {
		return nil, nil
	}
	if s.answered {
		return nil, ports.ErrNoMoreSelections
	}

	s.answered = true
	return slices.Clone(s.selection), nil
}
