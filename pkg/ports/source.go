package ports

import (
	"context"

	"github.com/robertdigital/ml4ir/pkg/signature"
)

// Document is the raw, undecoded signature of one model.
type Document struct {
	Model  string
	Format signature.Format
	Data   []byte
}

// SignatureSource defines how the catalog retrieves signature documents.
type SignatureSource interface {
	// Fetch returns the current document for model.
	// Returns domain.ErrSignatureNotFound if the source has none.
	Fetch(ctx context.Context, model string) (Document, error)

	// List returns the names of all models with a document, sorted.
	List(ctx context.Context) ([]string, error)
}

// SignatureWriter is implemented by sources that can be written to.
type SignatureWriter interface {
	// Put stores doc, replacing any previous document for doc.Model.
	Put(ctx context.Context, doc Document) error

	// Delete removes the document for model. Deleting a missing model is not an error.
	Delete(ctx context.Context, model string) error
}

// SignatureStore is a source that can also be written to.
type SignatureStore interface {
	SignatureSource
	SignatureWriter
}

// Watchable defines an interface for sources that can notify about changes.
type Watchable interface {
	// Watch returns a channel yielding the name of each model whose document
	// changed or disappeared. The channel is closed when ctx is done.
	Watch(ctx context.Context) (<-chan string, error)
}
