package application

import (
	"context"
	"errors"
	"fmt"
	"runtime/debug"

	"github.com/bnema/slotbot/internal/domain"
	"github.com/bnema/slotbot/internal/ports"
	"github.com/google/uuid"
	"github.com/rs/zerolog"
)

type DispatcherDeps struct {
	Ledgers *LedgerService
	Events  *EventService
	Gate    ports.AccessGate
	Chooser ports.Chooser
	Replier ports.Replier
	Batch   BatchConfig
	Logger  zerolog.Logger
}

// Dispatcher turns one request into exactly one reply to the requesting
// actor. Faults are logged and answered with a generic message.
type Dispatcher struct {
	ledgers *LedgerService
	events  *EventService
	gate    ports.AccessGate
	chooser ports.Chooser
	replier ports.Replier
	batch   BatchConfig
	logger  zerolog.Logger
}

func NewDispatcher(deps DispatcherDeps) *Dispatcher {
	return &Dispatcher{
		ledgers: deps.Ledgers,
		events:  deps.Events,
		gate:    deps.Gate,
		chooser: deps.Chooser,
		replier: deps.Replier,
		batch:   deps.Batch,
		logger:  deps.Logger,
	}
}

func (d *Dispatcher) Handle(ctx context.Context, req Request) error {
	logger := d.logger.With().
		Str("request_id", uuid.NewString()).
		Str("request", string(req.Kind)).
		Str("actor", string(req.Actor.ID)).
		Str("document", string(req.Document)).
		Logger()

	message := d.safeHandle(ctx, logger, req)
	if err := d.replier.Reply(ctx, req.Actor.ID, message); err != nil {
		logger.Error().Err(err).Msg("reply failed")
		return fmt.Errorf("reply: %w", err)
	}

	return nil
}

func (d *Dispatcher) safeHandle(ctx context.Context, logger zerolog.Logger, req Request) (message string) {
	defer func() {
		if r := recover(); r != nil {
			logger.Error().Interface("panic", r).Str("stack", string(debug.Stack())).Msg("request handler panicked")
			message = MessageGeneric
		}
	}()

	return d.handle(ctx, logger, req)
}

func (d *Dispatcher) handle(ctx context.Context, logger zerolog.Logger, req Request) string {
	if !req.Kind.Valid() {
		logger.Warn().Msg("unknown request kind")
		return MessageGeneric
	}
	if err := req.Actor.ID.Validate(); err != nil {
		logger.Warn().Err(err).Msg("invalid actor")
		return MessageInvalidActor
	}

	if req.Kind.AdminOnly() && !req.Actor.Admin {
		return MessageAdminOnly
	}
	if req.Kind.Privileged() {
		allowed, err := d.gate.IsPrivileged(ctx, req.Actor)
		if err != nil {
			logger.Error().Err(err).Msg("access check failed")
			return MessageGeneric
		}
		if !allowed {
			logger.Info().Msg("actor is not allowed to manage events")
			return MessageNotPrivileged
		}
	}

	switch req.Kind {
	case RequestSignUp, RequestLeave:
		receipt, err := d.ledgers.Execute(ctx, req.Document, req.Actor.ID, domain.Operation{Kind: req.Kind.opKind(), Slot: req.Slot})
		if err != nil {
			return failureMessage(logger, err)
		}
		logger.Info().Int("slot", req.Slot).Bool("applied", receipt.Applied()).Str("reason", string(receipt.Rejected)).Msg("operation handled")
		return receiptMessage(receipt)

	case RequestBatchSignUp, RequestBatchLeave:
		session := NewBatchSession(d.ledgers, d.chooser, d.batch, req.Document, req.Actor.ID, req.Kind.opKind())
		sessionLogger := logger.With().Str("session_id", session.ID()).Logger()
		result, err := session.Run(ctx)
		if err != nil {
			sessionLogger.Debug().Str("state", string(session.State())).Msg("batch session aborted")
			return failureMessage(sessionLogger, err)
		}
		sessionLogger.Info().
			Str("state", string(session.State())).
			Ints("applied", result.Applied()).
			Int("rejected", len(result.Rejections())).
			Msg("batch session finished")
		return batchMessage(result)

	case RequestCreateEvent:
		doc, err := d.events.CreateEvent(ctx, req.Event)
		if err != nil {
			return failureMessage(logger, err)
		}
		logger.Info().Str("event", string(doc.ID)).Msg("event created")
		return fmt.Sprintf("Created event %s.", doc.ID)

	case RequestEditEvent:
		doc, err := d.events.EditEvent(ctx, req.Document, req.Text)
		if err != nil {
			return failureMessage(logger, err)
		}
		logger.Info().Msg("event edited")
		return fmt.Sprintf("Updated event %s.", doc.ID)

	case RequestSetManagerRole:
		settings, err := d.events.SetManagerRole(ctx, req.RoleID)
		if err != nil {
			return failureMessage(logger, err)
		}
		return fmt.Sprintf("Manager role set to %s.", settings.ManagerRoleID)

	case RequestGrantPrivilege:
		if _, err := d.events.GrantPrivilege(ctx, req.Target); err != nil {
			return failureMessage(logger, err)
		}
		return fmt.Sprintf("%s can now manage events.", req.Target.Mention())
	}

	return MessageGeneric
}

func failureMessage(logger zerolog.Logger, err error) string {
	var selectionErr *SelectionError
	switch {
	case errors.As(err, &selectionErr):
		logger.Info().Err(err).Msg("selection refused")
		return selectionMessage(selectionErr)
	case errors.Is(err, domain.ErrDocumentNotFound):
		logger.Info().Err(err).Msg("document not found")
		return MessageNotFound
	case errors.Is(err, domain.ErrConcurrentModification):
		logger.Warn().Err(err).Msg("write attempts exhausted")
		return MessageConflict
	case errors.Is(err, domain.ErrInvalidActor):
		logger.Warn().Err(err).Msg("invalid actor")
		return MessageInvalidActor
	case errors.Is(err, domain.ErrInvalidEvent):
		logger.Info().Err(err).Msg("invalid event")
		return fmt.Sprintf("The event is not valid: %s.", err.Error())
	case errors.Is(err, domain.ErrInvalidSettings):
		logger.Info().Err(err).Msg("invalid settings")
		return fmt.Sprintf("The settings are not valid: %s.", err.Error())
	case errors.Is(err, domain.ErrDocumentExists):
		logger.Info().Err(err).Msg("document exists")
		return "An event with that id already exists."
	case errors.Is(err, context.Canceled):
		logger.Info().Msg("request cancelled")
		return MessageGeneric
	default:
		logger.Error().Err(err).Msg("request failed")
		return MessageTransport
	}
}
