package application

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/bnema/slotbot/internal/codec"
	"github.com/bnema/slotbot/internal/domain"
	"github.com/bnema/slotbot/internal/ports"
	"github.com/cenkalti/backoff/v5"
)

type RetryPolicy struct {
	MaxAttempts     int
	InitialInterval time.Duration
}

func DefaultRetryPolicy() RetryPolicy {
	return RetryPolicy{MaxAttempts: 3, InitialInterval: 50 * time.Millisecond}
}

// LedgerService applies join/leave operations to live documents. Every
// operation re-fetches the document, decodes it, decides, encodes and writes
// it back. A write rejected with domain.ErrConcurrentModification is retried
// from a fresh fetch; stores without revisions accept the last writer.
type LedgerService struct {
	docs  ports.DocumentStore
	retry RetryPolicy
}

func NewLedgerService(docs ports.DocumentStore, retry RetryPolicy) *LedgerService {
	if retry.MaxAttempts < 1 {
		retry.MaxAttempts = 1
	}
	if retry.InitialInterval <= 0 {
		retry.InitialInterval = DefaultRetryPolicy().InitialInterval
	}

	return &LedgerService{docs: docs, retry: retry}
}

func (s *LedgerService) Snapshot(ctx context.Context, id domain.DocumentID) (domain.Document, domain.Ledger, error) {
	doc, err := s.docs.Fetch(ctx, id)
	if err != nil {
		return domain.Document{}, domain.Ledger{}, fmt.Errorf("fetch document: %w", err)
	}

	return doc, codec.Decode(doc.Text), nil
}

func (s *LedgerService) SignUp(ctx context.Context, id domain.DocumentID, actor domain.ActorID, slot int) (Receipt, error) {
	return s.Execute(ctx, id, actor, domain.Join(slot))
}

func (s *LedgerService) Leave(ctx context.Context, id domain.DocumentID, actor domain.ActorID, slot int) (Receipt, error) {
	return s.Execute(ctx, id, actor, domain.Leave(slot))
}

// Execute runs a single operation. A business-rule refusal is reported in the
// receipt with a nil error and leaves the document untouched.
func (s *LedgerService) Execute(ctx context.Context, id domain.DocumentID, actor domain.ActorID, op domain.Operation) (Receipt, error) {
	if err := actor.Validate(); err != nil {
		return Receipt{}, err
	}

	receipt := Receipt{Document: id, Operation: op}
	err := s.mutate(ctx, id, func(doc domain.Document, ledger domain.Ledger) (string, bool, error) {
		receipt.Rejected = ""
		receipt.Ledger = ledger

		next, err := domain.Apply(ledger, actor, op)
		if err != nil {
			var reason domain.RejectReason
			if errors.As(err, &reason) {
				receipt.Rejected = reason
				return "", false, nil
			}
			return "", false, err
		}

		text, err := codec.Encode(next, doc.Text)
		if err != nil {
			return "", false, fmt.Errorf("encode ledger: %w", err)
		}
		receipt.Ledger = next
		return text, true, nil
	})
	if err != nil {
		return Receipt{}, err
	}

	return receipt, nil
}

// mutation derives the next document text from a fresh snapshot. changed
// reports whether the text must be written back.
type mutation func(doc domain.Document, ledger domain.Ledger) (text string, changed bool, err error)

func (s *LedgerService) mutate(ctx context.Context, id domain.DocumentID, fn mutation) error {
	policy := backoff.NewExponentialBackOff()
	policy.InitialInterval = s.retry.InitialInterval

	_, err := backoff.Retry(ctx, func() (struct{}, error) {
		doc, ledger, err := s.Snapshot(ctx, id)
		if err != nil {
			return struct{}{}, backoff.Permanent(err)
		}

		text, changed, err := fn(doc, ledger)
		if err != nil {
			return struct{}{}, backoff.Permanent(err)
		}
		if !changed {
			return struct{}{}, nil
		}

		doc.Text = text
		if _, err := s.docs.Write(ctx, doc); err != nil {
			if errors.Is(err, domain.ErrConcurrentModification) {
				return struct{}{}, err
			}
			return struct{}{}, backoff.Permanent(fmt.Errorf("write document: %w", err))
		}

		return struct{}{}, nil
	}, backoff.WithBackOff(policy), backoff.WithMaxTries(uint(s.retry.MaxAttempts)))

	return err
}
