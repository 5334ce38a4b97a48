package application

import (
	"context"
	"fmt"
	"strings"

	"github.com/bnema/slotbot/internal/codec"
	"github.com/bnema/slotbot/internal/domain"
	"github.com/bnema/slotbot/internal/ports"
	"github.com/google/uuid"
)

type EventService struct {
	docs     ports.DocumentStore
	settings ports.SettingsRepository
	clock    ports.Clock
}

func NewEventService(docs ports.DocumentStore, settings ports.SettingsRepository, clock ports.Clock) *EventService {
	if clock == nil {
		clock = ports.SystemClock{}
	}

	return &EventService{docs: docs, settings: settings, clock: clock}
}

// CreateEvent renders a fresh event document. An event without an id gets a random
// one.
func (s *EventService) CreateEvent(ctx context.Context, details domain.EventSpec) (domain.Document, error) {
	if details.ID == "" {
		details.ID = domain.DocumentID(uuid.NewString())
	}
	if err := details.Validate(); err != nil {
		return domain.Document{}, err
	}

	doc, err := s.docs.Create(ctx, domain.Document{ID: details.ID, Text: codec.RenderEvent(details)})
	if err != nil {
		return domain.Document{}, fmt.Errorf("create document: %w", err)
	}

	return doc, nil
}

// EditEvent replaces the document text. The new text must still carry at
// least one slot line, and the write is conditional on the fetched revision.
func (s *EventService) EditEvent(ctx context.Context, id domain.DocumentID, text string) (domain.Document, error) {
	if codec.Decode(text).SlotCount == 0 {
		return domain.Document{}, fmt.Errorf("%w: document has no slot lines", domain.ErrInvalidEvent)
	}

	doc, err := s.docs.Fetch(ctx, id)
	if err != nil {
		return domain.Document{}, fmt.Errorf("fetch document: %w", err)
	}

	doc.Text = text
	written, err := s.docs.Write(ctx, doc)
	if err != nil {
		return domain.Document{}, fmt.Errorf("write document: %w", err)
	}

	return written, nil
}

func (s *EventService) SetManagerRole(ctx context.Context, roleID string) (domain.Settings, error) {
	roleID = strings.TrimSpace(roleID)
	if roleID == "" {
		return domain.Settings{}, fmt.Errorf("%w: role id is required", domain.ErrInvalidSettings)
	}

	return s.updateSettings(ctx, func(settings *domain.Settings) {
		settings.ManagerRoleID = roleID
	})
}

func (s *EventService) GrantPrivilege(ctx context.Context, actor domain.ActorID) (domain.Settings, error) {
	if err := actor.Validate(); err != nil {
		return domain.Settings{}, err
	}

	return s.updateSettings(ctx, func(settings *domain.Settings) {
		settings.PrivilegedActors = append(settings.PrivilegedActors, actor)
	})
}

func (s *EventService) updateSettings(ctx context.Context, update func(*domain.Settings)) (domain.Settings, error) {
	settings, err := s.settings.Update(ctx, func(settings *domain.Settings) error {
		update(settings)
		settings.NormalizePrivilegedActors()
		settings.UpdatedAt = s.clock.Now().UTC()
		return nil
	})
	if err != nil {
		return domain.Settings{}, fmt.Errorf("update settings: %w", err)
	}

	return settings, nil
}
