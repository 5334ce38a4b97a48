package application

import (
	"context"
	"slices"
	"strconv"
	"sync"
	"testing"
	"time"

	"github.com/bnema/slotbot/internal/codec"
	"github.com/bnema/slotbot/internal/domain"
	"github.com/bnema/slotbot/internal/ports"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

type memoryStore struct {
	mu          sync.Mutex
	docs        map[domain.DocumentID]domain.Document
	revs        map[domain.DocumentID]int
	conditional bool
	writes      int
	attempts    int
	fetchErr    error
	writeErr    error
	beforeWrite func()
}

func newMemoryStore(conditional bool) *memoryStore {
	return &memoryStore{
		docs:        map[domain.DocumentID]domain.Document{},
		revs:        map[domain.DocumentID]int{},
		conditional: conditional,
	}
}

func (s *memoryStore) Fetch(_ context.Context, id domain.DocumentID) (domain.Document, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.fetchErr != nil {
		return domain.Document{}, s.fetchErr
	}
	doc, ok := s.docs[id]
	if !ok {
		return domain.Document{}, domain.ErrDocumentNotFound
	}
	return doc, nil
}

func (s *memoryStore) Create(_ context.Context, doc domain.Document) (domain.Document, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.docs[doc.ID]; ok {
		return domain.Document{}, domain.ErrDocumentExists
	}
	return s.storeLocked(doc), nil
}

func (s *memoryStore) Write(_ context.Context, doc domain.Document) (domain.Document, error) {
	s.mu.Lock()
	hook := s.beforeWrite
	s.beforeWrite = nil
	s.mu.Unlock()
	if hook != nil {
		hook()
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	s.attempts++
	if s.writeErr != nil {
		return domain.Document{}, s.writeErr
	}
	current, ok := s.docs[doc.ID]
	if !ok {
		return domain.Document{}, domain.ErrDocumentNotFound
	}
	if s.conditional && doc.Revision != "" && doc.Revision != current.Revision {
		return domain.Document{}, domain.ErrConcurrentModification
	}
	s.writes++
	return s.storeLocked(doc), nil
}

func (s *memoryStore) storeLocked(doc domain.Document) domain.Document {
	s.revs[doc.ID]++
	doc.Revision = strconv.Itoa(s.revs[doc.ID])
	s.docs[doc.ID] = doc
	return doc
}

func (s *memoryStore) text(t *testing.T, id domain.DocumentID) string {
	t.Helper()

	s.mu.Lock()
	defer s.mu.Unlock()
	doc, ok := s.docs[id]
	require.True(t, ok)
	return doc.Text
}

func (s *memoryStore) ledger(t *testing.T, id domain.DocumentID) domain.Ledger {
	t.Helper()
	return codec.Decode(s.text(t, id))
}

type memorySettings struct {
	mu       sync.Mutex
	settings domain.Settings
	getErr   error
	saves    int
}

func (r *memorySettings) Get(context.Context) (domain.Settings, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	if r.getErr != nil {
		return domain.Settings{}, r.getErr
	}
	return r.settings, nil
}

func (r *memorySettings) Update(_ context.Context, fn func(*domain.Settings) error) (domain.Settings, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	if r.getErr != nil {
		return domain.Settings{}, r.getErr
	}
	next := r.settings
	next.PrivilegedActors = slices.Clone(r.settings.PrivilegedActors)
	if err := fn(&next); err != nil {
		return domain.Settings{}, err
	}
	r.settings = next
	r.saves++
	return next, nil
}

type fixedClock struct {
	now time.Time
}

func (c fixedClock) Now() time.Time {
	return c.now
}

var _ ports.Clock = fixedClock{}

var eventStart = time.Date(2026, 3, 14, 18, 0, 0, 0, time.UTC)

func seedEvent(t *testing.T, store *memoryStore, id domain.DocumentID, slots, peoplePerSlot, slotsPerPerson int) {
	t.Helper()

	_, err := store.Create(context.Background(), domain.Document{
		ID: id,
		Text: codec.RenderEvent(domain.EventSpec{
			ID:              id,
			Title:           "Raid night",
			Description:     "Bring consumables.",
			StartTime:       eventStart,
			Slots:           slots,
			PeoplePerSlot:   peoplePerSlot,
			SlotsPerPerson:  slotsPerPerson,
			DurationMinutes: 30,
		}),
	})
	require.NoError(t, err)
}

func testRetry() RetryPolicy {
	return RetryPolicy{MaxAttempts: 3, InitialInterval: time.Millisecond}
}

func occupants(l domain.Ledger, index int) []domain.ActorID {
	return l.Slots[index].Occupants
}

func mockAnyContext() interface{} {
	return mock.Anything
}
