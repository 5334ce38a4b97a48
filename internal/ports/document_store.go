package ports

import (
	"context"

	"github.com/bnema/slotbot/internal/domain"
)

// DocumentStore owns the shared event documents.
//
// Write replaces the whole text. When doc.Revision is non-empty and the store
// supports conditional writes, the write fails with
// domain.ErrConcurrentModification if the stored revision differs. Missing
// documents yield domain.ErrDocumentNotFound.
type DocumentStore interface {
	Fetch(ctx context.Context, id domain.DocumentID) (domain.Document, error)
	Create(ctx context.Context, doc domain.Document) (domain.Document, error)
	Write(ctx context.Context, doc domain.Document) (domain.Document, error)
}
