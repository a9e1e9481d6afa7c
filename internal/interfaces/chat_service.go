package interfaces

import (
	"context"

	"github.com/ternarybob/docuassist/internal/models"
)

// ChatService runs the retrieval-augmented answer pipeline:
// embed the query, fetch the nearest documents, assemble a context block,
// and generate a grounded completion.
type ChatService interface {
	// Answer processes a query end to end and returns the structured result
	// with a latency breakdown. Validation failures return *ValidationError
	// before any provider call is made; provider failures abort the pipeline
	// with no partial result.
	Answer(ctx context.Context, query models.Query) (*models.QueryResult, error)

	// History returns the user's recent exchanges, oldest first, capped at
	// the history store's bound.
	History(userID string) []models.ConversationEntry

	// Health reports pipeline health including the vector store component.
	Health(ctx context.Context) *models.SystemHealth
}

// DocumentService manages the document index.
type DocumentService interface {
	// Upload embeds and indexes the documents, assigning IDs where absent.
	// Returns the number of documents indexed.
	Upload(ctx context.Context, docs []models.Document) (int, error)

	// Delete removes a document by ID. Returns false when the ID is absent.
	Delete(ctx context.Context, id string) (bool, error)

	// Health reports vector index health.
	Health(ctx context.Context) (*models.IndexHealth, error)
}

// FeedbackService validates and records user feedback on responses.
type FeedbackService interface {
	// Submit validates the rating and text bounds and appends the record.
	// Returns the acknowledgement message shown to the user.
	Submit(ctx context.Context, fb models.Feedback) (string, error)

	// Metrics returns aggregate feedback statistics. Aggregation is not
	// implemented yet; the payload says so.
	Metrics(ctx context.Context) map[string]interface{}
}
