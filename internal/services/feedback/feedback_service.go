package feedback

import (
	"context"
	"fmt"
	"time"

	"github.com/ternarybob/arbor"

	"github.com/ternarybob/docuassist/internal/interfaces"
	"github.com/ternarybob/docuassist/internal/models"
)

// Service validates and records user feedback on responses. Ratings act as
// a weak supervision signal for later prompt and retrieval tuning; this
// layer only stores them.
type Service struct {
	storage interfaces.FeedbackStorage
	logger  arbor.ILogger
}

// NewService creates a feedback service over the given storage.
func NewService(storage interfaces.FeedbackStorage, logger arbor.ILogger) *Service {
	return &Service{
		storage: storage,
		logger:  logger,
	}
}

// Submit validates the record and appends it. The QueryID reference is not
// checked against stored queries; replayed or unknown IDs are accepted.
// Duplicate submissions for the same query are kept as separate records.
func (s *Service) Submit(ctx context.Context, fb models.Feedback) (string, error) {
	if fb.QueryID == "" || len(fb.QueryID) > models.MaxIdentifierLength {
		return "", interfaces.NewValidationError("Invalid query ID")
	}
	if fb.UserID == "" || len(fb.UserID) > models.MaxIdentifierLength {
		return "", interfaces.NewValidationError("Invalid user ID")
	}
	if fb.Rating < models.MinRating || fb.Rating > models.MaxRating {
		return "", interfaces.NewValidationError("Rating must be an integer between %d and %d", models.MinRating, models.MaxRating)
	}
	if len(fb.FeedbackText) > models.MaxFeedbackTextLen {
		return "", interfaces.NewValidationError("Feedback text is too long (max %d characters)", models.MaxFeedbackTextLen)
	}

	if fb.CreatedAt.IsZero() {
		fb.CreatedAt = time.Now()
	}

	if err := s.storage.Append(ctx, &fb); err != nil {
		s.logger.Error().
			Err(err).
			Str("query_id", fb.QueryID).
			Msg("Failed to record feedback")
		return "", fmt.Errorf("failed to record feedback: %w", err)
	}

	s.logger.Info().
		Str("query_id", fb.QueryID).
		Str("user_id", fb.UserID).
		Int("rating", fb.Rating).
		Msg("Feedback recorded")

	return fmt.Sprintf("Thank you! Your %d-star rating has been recorded.", fb.Rating), nil
}

// Metrics returns aggregate feedback statistics. Aggregation beyond the
// raw count is not implemented yet.
func (s *Service) Metrics(ctx context.Context) map[string]interface{} {
	count, err := s.storage.Count(ctx)
	if err != nil {
		s.logger.Warn().Err(err).Msg("Failed to count feedback records")
		count = 0
	}

	return map[string]interface{}{
		"message": "Metrics aggregation coming in v1.1",
		"metrics": map[string]interface{}{
			"average_rating":    "TBD",
			"feedback_count":    count,
			"improvement_areas": "TBD",
		},
	}
}

var _ interfaces.FeedbackService = (*Service)(nil)
