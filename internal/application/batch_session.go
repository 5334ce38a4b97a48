package application

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/bnema/slotbot/internal/codec"
	"github.com/bnema/slotbot/internal/domain"
	"github.com/bnema/slotbot/internal/ports"
	"github.com/google/uuid"
)

type SessionState string

const (
	StatePresenting SessionState = "presenting"
	StateCollecting SessionState = "collecting"
	StateApplying   SessionState = "applying"
	StateReporting  SessionState = "reporting"
	StateExpired    SessionState = "expired"
	StateAborted    SessionState = "aborted"
)

const DefaultCollectionWindow = 60 * time.Second

type BatchConfig struct {
	Window time.Duration
	Clock  ports.Clock
}

// BatchSession lets one actor pick several slots in a single interaction.
// The selection is applied in order against one fresh snapshot and written
// once; if the window closes first nothing is written.
type BatchSession struct {
	id       string
	ledgers  *LedgerService
	chooser  ports.Chooser
	window   time.Duration
	clock    ports.Clock
	document domain.DocumentID
	actor    domain.ActorID
	kind     domain.OpKind

	state  SessionState
	prompt ports.ChoicePrompt
}

func NewBatchSession(ledgers *LedgerService, chooser ports.Chooser, cfg BatchConfig, document domain.DocumentID, actor domain.ActorID, kind domain.OpKind) *BatchSession {
	if cfg.Window <= 0 {
		cfg.Window = DefaultCollectionWindow
	}
	if cfg.Clock == nil {
		cfg.Clock = ports.SystemClock{}
	}

	return &BatchSession{
		id:       uuid.NewString(),
		ledgers:  ledgers,
		chooser:  chooser,
		window:   cfg.Window,
		clock:    cfg.Clock,
		document: document,
		actor:    actor,
		kind:     kind,
		state:    StatePresenting,
	}
}

func (s *BatchSession) ID() string {
	return s.id
}

func (s *BatchSession) State() SessionState {
	return s.state
}

// Present builds the option list from a fresh snapshot. With no legal option
// the session goes straight to reporting and the returned prompt is empty.
func (s *BatchSession) Present(ctx context.Context) (ports.ChoicePrompt, error) {
	if s.state != StatePresenting {
		return ports.ChoicePrompt{}, fmt.Errorf("present: session is %s", s.state)
	}
	if err := s.actor.Validate(); err != nil {
		s.state = StateAborted
		return ports.ChoicePrompt{}, err
	}

	_, ledger, err := s.ledgers.Snapshot(ctx, s.document)
	if err != nil {
		s.state = StateAborted
		return ports.ChoicePrompt{}, err
	}

	indices := ledger.Options(s.actor, s.kind)
	if len(indices) == 0 {
		s.state = StateReporting
		return ports.ChoicePrompt{}, nil
	}

	maxSelections := len(indices)
	if s.kind == domain.OpJoin {
		maxSelections = min(maxSelections, ledger.RemainingCapacity(s.actor))
	}

	options := make([]ports.ChoiceOption, 0, len(indices))
	for _, index := range indices {
		options = append(options, ports.ChoiceOption{Slot: index, Label: optionLabel(ledger.Slots[index])})
	}

	s.prompt = ports.ChoicePrompt{
		Title:         promptTitle(s.kind, maxSelections),
		Options:       options,
		MaxSelections: maxSelections,
	}
	s.state = StateCollecting

	return s.prompt, nil
}

// Collect waits for one valid selection until the window closes. Selections
// outside 1..MaxSelections are ignored and the window stays open. A chooser
// that cannot offer another selection ends the session with the reason the
// last one was refused.
func (s *BatchSession) Collect(ctx context.Context) ([]int, error) {
	if s.state != StateCollecting {
		return nil, fmt.Errorf("collect: session is %s", s.state)
	}

	s.prompt.Deadline = s.clock.Now().Add(s.window)
	collectCtx, cancel := context.WithTimeout(ctx, s.window)
	defer cancel()

	var refused error
	for {
		selection, err := s.chooser.Choose(collectCtx, s.prompt)
		switch {
		case ctx.Err() != nil:
			s.state = StateAborted
			return nil, ctx.Err()
		case err != nil && (errors.Is(err, context.DeadlineExceeded) || collectCtx.Err() != nil):
			s.state = StateExpired
			return nil, domain.ErrCollectionExpired
		case errors.Is(err, ports.ErrSelectionDismissed):
			s.state = StateExpired
			return nil, domain.ErrCollectionDismissed
		case errors.Is(err, ports.ErrNoMoreSelections) && refused != nil:
			s.state = StateAborted
			return nil, refused
		case err != nil:
			s.state = StateAborted
			return nil, fmt.Errorf("collect selection: %w", err)
		case selection == nil:
			s.state = StateExpired
			return nil, domain.ErrCollectionExpired
		}

		if refused = s.checkSelection(selection); refused == nil {
			s.state = StateApplying
			return selection, nil
		}
		if collectCtx.Err() != nil {
			s.state = StateExpired
			return nil, domain.ErrCollectionExpired
		}
	}
}

// SelectionError describes why a submitted selection was refused.
type SelectionError struct {
	Count     int
	Max       int
	Duplicate bool
}

func (e *SelectionError) Error() string {
	if e.Duplicate {
		return fmt.Sprintf("%s: a slot was picked more than once", domain.ErrInvalidSelection)
	}
	return fmt.Sprintf("%s: %d slots picked, 1 to %d allowed", domain.ErrInvalidSelection, e.Count, e.Max)
}

func (e *SelectionError) Unwrap() error {
	return domain.ErrInvalidSelection
}

func (s *BatchSession) checkSelection(selection []int) error {
	seen := make(map[int]struct{}, len(selection))
	for _, slot := range selection {
		if _, ok := seen[slot]; ok {
			return &SelectionError{Count: len(selection), Max: s.prompt.MaxSelections, Duplicate: true}
		}
		seen[slot] = struct{}{}
	}

	if len(selection) < 1 || len(selection) > s.prompt.MaxSelections {
		return &SelectionError{Count: len(selection), Max: s.prompt.MaxSelections}
	}
	return nil
}

// Apply runs the selection in order against a fresh snapshot. Items refused
// by the rules are reported and skipped; the rest are written in one write.
func (s *BatchSession) Apply(ctx context.Context, selection []int) (BatchResult, error) {
	if s.state != StateApplying {
		return BatchResult{}, fmt.Errorf("apply: session is %s", s.state)
	}

	result := BatchResult{SessionID: s.id, Kind: s.kind}
	err := s.ledgers.mutate(ctx, s.document, func(doc domain.Document, ledger domain.Ledger) (string, bool, error) {
		items := make([]BatchItem, 0, len(selection))
		text, working, changed := doc.Text, ledger, false

		for _, slot := range selection {
			next, err := domain.Apply(working, s.actor, domain.Operation{Kind: s.kind, Slot: slot})
			if err != nil {
				var reason domain.RejectReason
				if !errors.As(err, &reason) {
					return "", false, err
				}
				items = append(items, BatchItem{Slot: slot, Rejected: reason})
				continue
			}

			text, err = codec.Encode(next, text)
			if err != nil {
				return "", false, fmt.Errorf("encode ledger: %w", err)
			}
			working = codec.Decode(text)
			changed = true
			items = append(items, BatchItem{Slot: slot})
		}

		result.Items = items
		result.Ledger = working
		return text, changed, nil
	})
	if err != nil {
		s.state = StateAborted
		return BatchResult{}, err
	}

	s.state = StateReporting
	return result, nil
}

func (s *BatchSession) Run(ctx context.Context) (BatchResult, error) {
	if _, err := s.Present(ctx); err != nil {
		return BatchResult{}, err
	}
	if s.state == StateReporting {
		return BatchResult{SessionID: s.id, Kind: s.kind, NoOptions: true}, nil
	}

	selection, err := s.Collect(ctx)
	switch {
	case errors.Is(err, domain.ErrCollectionExpired):
		return BatchResult{SessionID: s.id, Kind: s.kind, Expired: true}, nil
	case errors.Is(err, domain.ErrCollectionDismissed):
		return BatchResult{SessionID: s.id, Kind: s.kind, Dismissed: true}, nil
	}
	if err != nil {
		return BatchResult{}, err
	}

	return s.Apply(ctx, selection)
}

func promptTitle(kind domain.OpKind, maxSelections int) string {
	if kind == domain.OpLeave {
		return fmt.Sprintf("Select up to %d slots to leave", maxSelections)
	}
	return fmt.Sprintf("Select up to %d slots to sign up for", maxSelections)
}
