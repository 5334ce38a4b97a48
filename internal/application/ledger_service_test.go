package application

import (
	"context"
	"errors"
	"testing"

	"github.com/bnema/slotbot/internal/codec"
	"github.com/bnema/slotbot/internal/domain"
	"github.com/bnema/slotbot/internal/ports/mocks"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

func TestLedgerServiceSignUpWritesOccupant(t *testing.T) {
	store := newMemoryStore(true)
	seedEvent(t, store, "raid", 3, 2, 2)
	service := NewLedgerService(store, testRetry())

	receipt, err := service.SignUp(context.Background(), "raid", "100", 1)
	require.NoError(t, err)

	assert.True(t, receipt.Applied())
	assert.Equal(t, domain.Join(1), receipt.Operation)
	assert.Equal(t, []domain.ActorID{"100"}, occupants(receipt.Ledger, 1))
	assert.Equal(t, []domain.ActorID{"100"}, occupants(store.ledger(t, "raid"), 1))
	assert.Contains(t, store.text(t, "raid"), "<@!100>")
	assert.Equal(t, 1, store.writes)
}

func TestLedgerServiceRejectionLeavesDocumentUntouched(t *testing.T) {
	store := newMemoryStore(true)
	seedEvent(t, store, "raid", 2, 1, 1)
	service := NewLedgerService(store, testRetry())

	_, err := service.SignUp(context.Background(), "raid", "200", 0)
	require.NoError(t, err)
	before := store.text(t, "raid")

	receipt, err := service.SignUp(context.Background(), "raid", "100", 0)
	require.NoError(t, err)

	assert.False(t, receipt.Applied())
	assert.Equal(t, domain.RejectSlotFull, receipt.Rejected)
	assert.Equal(t, before, store.text(t, "raid"))
	assert.Equal(t, 1, store.writes)
}

func TestLedgerServiceLeaveRemovesOccupant(t *testing.T) {
	store := newMemoryStore(true)
	seedEvent(t, store, "raid", 2, 2, 2)
	service := NewLedgerService(store, testRetry())

	_, err := service.SignUp(context.Background(), "raid", "100", 0)
	require.NoError(t, err)
	_, err = service.SignUp(context.Background(), "raid", "200", 0)
	require.NoError(t, err)

	receipt, err := service.Leave(context.Background(), "raid", "100", 0)
	require.NoError(t, err)

	assert.True(t, receipt.Applied())
	assert.Equal(t, []domain.ActorID{"200"}, occupants(store.ledger(t, "raid"), 0))
	assert.NotContains(t, store.text(t, "raid"), "<@!100>")
}

func TestLedgerServiceReportsMissingDocument(t *testing.T) {
	service := NewLedgerService(newMemoryStore(true), testRetry())

	_, err := service.SignUp(context.Background(), "missing", "100", 0)
	require.Error(t, err)
	assert.ErrorIs(t, err, domain.ErrDocumentNotFound)
}

func TestLedgerServiceRejectsInvalidActor(t *testing.T) {
	store := newMemoryStore(true)
	seedEvent(t, store, "raid", 1, 1, 1)
	service := NewLedgerService(store, testRetry())

	_, err := service.SignUp(context.Background(), "raid", "not-a-number", 0)
	require.Error(t, err)
	assert.ErrorIs(t, err, domain.ErrInvalidActor)
	assert.Equal(t, 0, store.attempts)
}

func TestLedgerServiceRetriesAfterConcurrentModification(t *testing.T) {
	store := newMemoryStore(true)
	seedEvent(t, store, "raid", 2, 2, 1)
	service := NewLedgerService(store, testRetry())
	other := NewLedgerService(store, testRetry())

	store.beforeWrite = func() {
		_, err := other.SignUp(context.Background(), "raid", "200", 0)
		require.NoError(t, err)
	}

	receipt, err := service.SignUp(context.Background(), "raid", "100", 0)
	require.NoError(t, err)
	require.True(t, receipt.Applied())

	assert.ElementsMatch(t, []domain.ActorID{"100", "200"}, occupants(store.ledger(t, "raid"), 0))
	assert.Equal(t, 3, store.attempts)
	assert.Equal(t, 2, store.writes)
}

func TestLedgerServiceRetryReevaluatesRules(t *testing.T) {
	store := newMemoryStore(true)
	seedEvent(t, store, "raid", 2, 1, 1)
	service := NewLedgerService(store, testRetry())
	other := NewLedgerService(store, testRetry())

	store.beforeWrite = func() {
		_, err := other.SignUp(context.Background(), "raid", "200", 0)
		require.NoError(t, err)
	}

	receipt, err := service.SignUp(context.Background(), "raid", "100", 0)
	require.NoError(t, err)

	assert.Equal(t, domain.RejectSlotFull, receipt.Rejected)
	assert.Equal(t, []domain.ActorID{"200"}, occupants(store.ledger(t, "raid"), 0))
}

// Stores without revisions keep the last write; the concurrent sign-up is lost.
func TestLedgerServiceUnconditionalStoreLosesConcurrentUpdate(t *testing.T) {
	store := newMemoryStore(false)
	seedEvent(t, store, "raid", 2, 2, 1)
	service := NewLedgerService(store, testRetry())
	other := NewLedgerService(store, testRetry())

	store.beforeWrite = func() {
		_, err := other.SignUp(context.Background(), "raid", "200", 0)
		require.NoError(t, err)
	}

	_, err := service.SignUp(context.Background(), "raid", "100", 0)
	require.NoError(t, err)

	assert.Equal(t, []domain.ActorID{"100"}, occupants(store.ledger(t, "raid"), 0))
}

func TestLedgerServiceGivesUpAfterMaxAttempts(t *testing.T) {
	store := newMemoryStore(true)
	seedEvent(t, store, "raid", 1, 1, 1)
	store.writeErr = domain.ErrConcurrentModification
	service := NewLedgerService(store, testRetry())

	_, err := service.SignUp(context.Background(), "raid", "100", 0)
	require.Error(t, err)
	assert.ErrorIs(t, err, domain.ErrConcurrentModification)
	assert.Equal(t, 3, store.attempts)
}

func TestLedgerServiceDoesNotRetryTransportErrors(t *testing.T) {
	store := newMemoryStore(true)
	seedEvent(t, store, "raid", 1, 1, 1)
	store.writeErr = errors.New("connection reset")
	service := NewLedgerService(store, testRetry())

	_, err := service.SignUp(context.Background(), "raid", "100", 0)
	require.Error(t, err)
	assert.ErrorContains(t, err, "write document: connection reset")
	assert.Equal(t, 1, store.attempts)
}

func TestLedgerServiceWritesAgainstFetchedRevision(t *testing.T) {
	text := codec.RenderEvent(domain.EventSpec{ID: "raid", Title: "Raid night", StartTime: eventStart, Slots: 2, PeoplePerSlot: 1, SlotsPerPerson: 1, DurationMinutes: 30})
	docs := mocks.NewMockDocumentStore(t)
	docs.EXPECT().
		Fetch(mockAnyContext(), domain.DocumentID("raid")).
		Return(domain.Document{ID: "raid", Text: text, Revision: "r1"}, nil).
		Twice()
	docs.EXPECT().
		Write(mockAnyContext(), mock.MatchedBy(func(doc domain.Document) bool {
			return doc.Revision == "r1"
		})).
		Return(domain.Document{}, domain.ErrConcurrentModification).
		Once()
	docs.EXPECT().
		Write(mockAnyContext(), mock.MatchedBy(func(doc domain.Document) bool {
			return doc.ID == "raid" && codec.Decode(doc.Text).Slots[1].Has("100")
		})).
		Return(domain.Document{ID: "raid", Revision: "r2"}, nil).
		Once()

	receipt, err := NewLedgerService(docs, testRetry()).SignUp(context.Background(), "raid", "100", 1)
	require.NoError(t, err)
	assert.True(t, receipt.Applied())
}

func TestLedgerServiceSurfacesTransportFailureFromStore(t *testing.T) {
	docs := mocks.NewMockDocumentStore(t)
	docs.EXPECT().
		Fetch(mockAnyContext(), domain.DocumentID("raid")).
		Return(domain.Document{}, errors.New("dial tcp 127.0.0.1:6379: connection refused")).
		Once()

	_, err := NewLedgerService(docs, testRetry()).Leave(context.Background(), "raid", "100", 0)
	require.Error(t, err)
	assert.ErrorContains(t, err, "fetch document: dial tcp")
	assert.NotErrorIs(t, err, domain.ErrConcurrentModification)
}

func TestNewLedgerServiceClampsRetryPolicy(t *testing.T) {
	service := NewLedgerService(newMemoryStore(true), RetryPolicy{})

	assert.Equal(t, 1, service.retry.MaxAttempts)
	assert.Equal(t, DefaultRetryPolicy().InitialInterval, service.retry.InitialInterval)
}
