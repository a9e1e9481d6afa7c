package badger

import (
	"context"
	"fmt"

	"github.com/ternarybob/arbor"
	"github.com/timshannon/badgerhold/v4"

	"github.com/ternarybob/docuassist/internal/interfaces"
	"github.com/ternarybob/docuassist/internal/models"
)

// FeedbackStorage persists feedback records append-only in BadgerDB.
// Records are never updated or deleted.
type FeedbackStorage struct {
	db     *BadgerDB
	logger arbor.ILogger
}

// NewFeedbackStorage creates feedback storage over an open connection.
func NewFeedbackStorage(db *BadgerDB, logger arbor.ILogger) *FeedbackStorage {
	return &FeedbackStorage{
		db:     db,
		logger: logger,
	}
}

// Append stores a feedback record under an auto-incremented key.
func (s *FeedbackStorage) Append(ctx context.Context, fb *models.Feedback) error {
	if err := s.db.Store().Insert(badgerhold.NextSequence(), fb); err != nil {
		return fmt.Errorf("failed to store feedback: %w", err)
	}

	s.logger.Debug().
		Str("query_id", fb.QueryID).
		Int("rating", fb.Rating).
		Msg("Feedback record stored")

	return nil
}

// Count returns the total number of stored feedback records.
func (s *FeedbackStorage) Count(ctx context.Context) (int, error) {
	count, err := s.db.Store().Count(&models.Feedback{}, nil)
	if err != nil {
		return 0, fmt.Errorf("failed to count feedback: %w", err)
	}
	return int(count), nil
}

// Close closes the underlying database connection.
func (s *FeedbackStorage) Close() error {
	return s.db.Close()
}

var _ interfaces.FeedbackStorage = (*FeedbackStorage)(nil)
