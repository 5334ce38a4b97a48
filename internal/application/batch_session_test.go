package application

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/bnema/slotbot/internal/domain"
	"github.com/bnema/slotbot/internal/ports"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type scriptedChooser struct {
	responses [][]int
	err       error
	exhausted error
	block     bool
	onChoose  func()
	prompts   []ports.ChoicePrompt
}

func (c *scriptedChooser) Choose(ctx context.Context, prompt ports.ChoicePrompt) ([]int, error) {
	c.prompts = append(c.prompts, prompt)
	if c.onChoose != nil {
		c.onChoose()
		c.onChoose = nil
	}
	if c.block {
		<-ctx.Done()
		return nil, ctx.Err()
	}
	if c.err != nil {
		return nil, c.err
	}
	if len(c.responses) == 0 {
		return nil, c.exhausted
	}
	next := c.responses[0]
	c.responses = c.responses[1:]
	return next, nil
}

func batchConfig() BatchConfig {
	return BatchConfig{Window: time.Second, Clock: fixedClock{now: eventStart}}
}

func TestBatchSessionAppliesSelectionInOneWrite(t *testing.T) {
	store := newMemoryStore(true)
	seedEvent(t, store, "raid", 4, 2, 3)
	ledgers := NewLedgerService(store, testRetry())
	chooser := &scriptedChooser{responses: [][]int{{2, 0, 3}}}

	session := NewBatchSession(ledgers, chooser, batchConfig(), "raid", "100", domain.OpJoin)
	result, err := session.Run(context.Background())
	require.NoError(t, err)

	assert.Equal(t, StateReporting, session.State())
	assert.Equal(t, session.ID(), result.SessionID)
	assert.Equal(t, []int{2, 0, 3}, result.Applied())
	assert.Empty(t, result.Rejections())
	assert.Equal(t, 1, store.writes)

	ledger := store.ledger(t, "raid")
	assert.Equal(t, []int{0, 2, 3}, ledger.Held("100"))
}

func TestBatchSessionPresentLimitsSelectionsToRemainingCapacity(t *testing.T) {
	store := newMemoryStore(true)
	seedEvent(t, store, "raid", 4, 1, 2)
	ledgers := NewLedgerService(store, testRetry())
	_, err := ledgers.SignUp(context.Background(), "raid", "200", 1)
	require.NoError(t, err)
	_, err = ledgers.SignUp(context.Background(), "raid", "100", 3)
	require.NoError(t, err)

	session := NewBatchSession(ledgers, &scriptedChooser{}, batchConfig(), "raid", "100", domain.OpJoin)
	prompt, err := session.Present(context.Background())
	require.NoError(t, err)

	assert.Equal(t, StateCollecting, session.State())
	assert.Equal(t, 1, prompt.MaxSelections)
	require.Len(t, prompt.Options, 2)
	assert.Equal(t, 0, prompt.Options[0].Slot)
	assert.Equal(t, 2, prompt.Options[1].Slot)
	assert.Contains(t, prompt.Options[0].Label, "Slot #1")
	assert.Contains(t, prompt.Options[0].Label, "Sat 14 Mar 18:00 UTC")
}

func TestBatchSessionReportsPartialSuccess(t *testing.T) {
	store := newMemoryStore(true)
	seedEvent(t, store, "raid", 3, 1, 2)
	ledgers := NewLedgerService(store, testRetry())
	chooser := &scriptedChooser{responses: [][]int{{0, 2}}}
	chooser.onChoose = func() {
		_, err := ledgers.SignUp(context.Background(), "raid", "200", 2)
		require.NoError(t, err)
	}

	session := NewBatchSession(ledgers, chooser, batchConfig(), "raid", "100", domain.OpJoin)
	result, err := session.Run(context.Background())
	require.NoError(t, err)

	assert.Equal(t, []int{0}, result.Applied())
	assert.Equal(t, []BatchItem{{Slot: 2, Rejected: domain.RejectSlotFull}}, result.Rejections())

	ledger := store.ledger(t, "raid")
	assert.Equal(t, []domain.ActorID{"100"}, occupants(ledger, 0))
	assert.Equal(t, []domain.ActorID{"200"}, occupants(ledger, 2))
	assert.Equal(t, "You have signed up for slots 1.\nSlot 3: This slot is full.", batchMessage(result))
}

func TestBatchSessionTimeoutWritesNothing(t *testing.T) {
	store := newMemoryStore(true)
	seedEvent(t, store, "raid", 3, 1, 2)
	before := store.text(t, "raid")
	ledgers := NewLedgerService(store, testRetry())
	cfg := batchConfig()
	cfg.Window = 20 * time.Millisecond

	session := NewBatchSession(ledgers, &scriptedChooser{block: true}, cfg, "raid", "100", domain.OpJoin)
	result, err := session.Run(context.Background())
	require.NoError(t, err)

	assert.True(t, result.Expired)
	assert.Equal(t, StateExpired, session.State())
	assert.Equal(t, before, store.text(t, "raid"))
	assert.Equal(t, 0, store.attempts)
}

func TestBatchSessionDismissalExpires(t *testing.T) {
	store := newMemoryStore(true)
	seedEvent(t, store, "raid", 3, 1, 2)
	ledgers := NewLedgerService(store, testRetry())

	session := NewBatchSession(ledgers, &scriptedChooser{}, batchConfig(), "raid", "100", domain.OpJoin)
	_, err := session.Present(context.Background())
	require.NoError(t, err)

	_, err = session.Collect(context.Background())
	require.ErrorIs(t, err, domain.ErrCollectionExpired)
	assert.Equal(t, StateExpired, session.State())
}

func TestBatchSessionKeepsCollectingAfterInvalidSelection(t *testing.T) {
	store := newMemoryStore(true)
	seedEvent(t, store, "raid", 3, 1, 2)
	ledgers := NewLedgerService(store, testRetry())
	chooser := &scriptedChooser{responses: [][]int{{}, {0, 1, 2}, {1, 1}, {1}}}

	session := NewBatchSession(ledgers, chooser, batchConfig(), "raid", "100", domain.OpJoin)
	result, err := session.Run(context.Background())
	require.NoError(t, err)

	assert.Equal(t, []int{1}, result.Applied())
	require.Len(t, chooser.prompts, 4)
	assert.Equal(t, eventStart.Add(time.Second), chooser.prompts[0].Deadline)
	assert.Equal(t, 2, chooser.prompts[0].MaxSelections)
}

func TestBatchSessionReportsRefusedPresetSelection(t *testing.T) {
	tests := []struct {
		name      string
		selection []int
		want      SelectionError
		message   string
	}{
		{
			name:      "too many slots",
			selection: []int{0, 1},
			want:      SelectionError{Count: 2, Max: 1},
			message:   "You can pick at most 1 slot; nothing was changed.",
		},
		{
			name:      "same slot twice",
			selection: []int{0, 0},
			want:      SelectionError{Count: 2, Max: 1, Duplicate: true},
			message:   MessageDuplicatePick,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			store := newMemoryStore(true)
			seedEvent(t, store, "raid", 3, 1, 1)
			before := store.text(t, "raid")
			chooser := &scriptedChooser{responses: [][]int{tt.selection}, exhausted: ports.ErrNoMoreSelections}

			session := NewBatchSession(NewLedgerService(store, testRetry()), chooser, batchConfig(), "raid", "100", domain.OpJoin)
			_, err := session.Run(context.Background())
			require.ErrorIs(t, err, domain.ErrInvalidSelection)

			var selectionErr *SelectionError
			require.ErrorAs(t, err, &selectionErr)
			assert.Equal(t, tt.want, *selectionErr)
			assert.Equal(t, tt.message, selectionMessage(selectionErr))
			assert.Equal(t, StateAborted, session.State())
			assert.Len(t, chooser.prompts, 2)
			assert.Equal(t, before, store.text(t, "raid"))
		})
	}
}

func TestBatchSessionCancelledWidgetIsDismissedNotExpired(t *testing.T) {
	store := newMemoryStore(true)
	seedEvent(t, store, "raid", 3, 1, 2)
	ledgers := NewLedgerService(store, testRetry())

	session := NewBatchSession(ledgers, &scriptedChooser{err: ports.ErrSelectionDismissed}, batchConfig(), "raid", "100", domain.OpJoin)
	result, err := session.Run(context.Background())
	require.NoError(t, err)

	assert.True(t, result.Dismissed)
	assert.False(t, result.Expired)
	assert.Equal(t, StateExpired, session.State())
	assert.Equal(t, MessageDismissed, batchMessage(result))
	assert.Equal(t, 0, store.attempts)
}

func TestBatchSessionLeaveWithoutHeldSlotsReportsNoOptions(t *testing.T) {
	store := newMemoryStore(true)
	seedEvent(t, store, "raid", 3, 1, 2)
	ledgers := NewLedgerService(store, testRetry())
	chooser := &scriptedChooser{}

	session := NewBatchSession(ledgers, chooser, batchConfig(), "raid", "100", domain.OpLeave)
	result, err := session.Run(context.Background())
	require.NoError(t, err)

	assert.True(t, result.NoOptions)
	assert.Equal(t, StateReporting, session.State())
	assert.Empty(t, chooser.prompts)
	assert.Equal(t, MessageNoneHeld, batchMessage(result))
}

func TestBatchSessionLeaveRemovesSelectedSlots(t *testing.T) {
	store := newMemoryStore(true)
	seedEvent(t, store, "raid", 3, 1, 3)
	ledgers := NewLedgerService(store, testRetry())
	for _, slot := range []int{0, 1, 2} {
		_, err := ledgers.SignUp(context.Background(), "raid", "100", slot)
		require.NoError(t, err)
	}
	writes := store.writes

	chooser := &scriptedChooser{responses: [][]int{{2, 0}}}
	session := NewBatchSession(ledgers, chooser, batchConfig(), "raid", "100", domain.OpLeave)
	result, err := session.Run(context.Background())
	require.NoError(t, err)

	assert.Equal(t, 3, chooser.prompts[0].MaxSelections)
	assert.Equal(t, []int{2, 0}, result.Applied())
	assert.Equal(t, []int{1}, store.ledger(t, "raid").Held("100"))
	assert.Equal(t, writes+1, store.writes)
	assert.Equal(t, "You have been removed from slots 3, 1.", batchMessage(result))
}

func TestBatchSessionRetriesApplyAfterConcurrentModification(t *testing.T) {
	store := newMemoryStore(true)
	seedEvent(t, store, "raid", 3, 2, 2)
	ledgers := NewLedgerService(store, testRetry())
	store.beforeWrite = func() {
		_, err := ledgers.SignUp(context.Background(), "raid", "200", 0)
		require.NoError(t, err)
	}

	session := NewBatchSession(ledgers, &scriptedChooser{responses: [][]int{{0, 1}}}, batchConfig(), "raid", "100", domain.OpJoin)
	result, err := session.Run(context.Background())
	require.NoError(t, err)

	assert.Equal(t, []int{0, 1}, result.Applied())
	ledger := store.ledger(t, "raid")
	assert.ElementsMatch(t, []domain.ActorID{"100", "200"}, occupants(ledger, 0))
	assert.Equal(t, []domain.ActorID{"100"}, occupants(ledger, 1))
}

func TestBatchSessionAbortsOnChooserFailure(t *testing.T) {
	store := newMemoryStore(true)
	seedEvent(t, store, "raid", 3, 1, 2)
	ledgers := NewLedgerService(store, testRetry())

	session := NewBatchSession(ledgers, &scriptedChooser{err: errors.New("widget closed")}, batchConfig(), "raid", "100", domain.OpJoin)
	_, err := session.Run(context.Background())
	require.Error(t, err)

	assert.ErrorContains(t, err, "collect selection: widget closed")
	assert.Equal(t, StateAborted, session.State())
}

func TestBatchSessionEnforcesStateOrder(t *testing.T) {
	store := newMemoryStore(true)
	seedEvent(t, store, "raid", 3, 1, 2)
	session := NewBatchSession(NewLedgerService(store, testRetry()), &scriptedChooser{}, batchConfig(), "raid", "100", domain.OpJoin)

	_, err := session.Collect(context.Background())
	assert.ErrorContains(t, err, "collect: session is presenting")

	_, err = session.Apply(context.Background(), []int{0})
	assert.ErrorContains(t, err, "apply: session is presenting")
}
