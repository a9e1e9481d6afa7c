package interfaces

import (
	"context"

	"github.com/ternarybob/docuassist/internal/models"
)

// FeedbackStorage persists feedback records append-only. Records are never
// updated or deleted, and duplicate submissions for the same query are kept.
type FeedbackStorage interface {
	// Append stores a feedback record.
	Append(ctx context.Context, fb *models.Feedback) error

	// Count returns the total number of stored records.
	Count(ctx context.Context) (int, error)

	// Close releases the underlying store.
	Close() error
}
