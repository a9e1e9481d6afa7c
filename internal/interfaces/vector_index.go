package interfaces

import (
	"context"

	"github.com/ternarybob/docuassist/internal/models"
)

// VectorIndex stores document vectors and supports top-K similarity search.
//
// Implementations wrap an external ANN service (Qdrant) or an in-process
// store for tests and small deployments. Provider failures surface as
// *ProviderError.
type VectorIndex interface {
	// Upsert writes each document's vector, text, and metadata keyed by ID,
	// overwriting any existing entry with the same ID. vectors[i] belongs to
	// docs[i]; the slices must have equal length.
	Upsert(ctx context.Context, docs []models.Document, vectors [][]float32) error

	// Query returns at most topK entries nearest to the given vector,
	// ordered by non-increasing relevance score in [0,1]. An empty index
	// yields an empty slice, not an error.
	Query(ctx context.Context, vector []float32, topK int) ([]models.RetrievedDocument, error)

	// Delete removes the entry with the given ID. Returns false without an
	// error when the ID is absent.
	Delete(ctx context.Context, id string) (bool, error)

	// Health reports index status and the current vector count.
	Health(ctx context.Context) (*models.IndexHealth, error)

	// Close releases resources held by the index client.
	Close() error
}
