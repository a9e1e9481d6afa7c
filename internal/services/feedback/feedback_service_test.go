package feedback

import (
	"context"
	"errors"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/ternarybob/arbor"

	"github.com/ternarybob/docuassist/internal/interfaces"
	"github.com/ternarybob/docuassist/internal/models"
)

// mockStorage implements interfaces.FeedbackStorage with optional func fields
type mockStorage struct {
	records    []*models.Feedback
	appendFunc func(ctx context.Context, fb *models.Feedback) error
}

func (m *mockStorage) Append(ctx context.Context, fb *models.Feedback) error {
	if m.appendFunc != nil {
		return m.appendFunc(ctx, fb)
	}
	m.records = append(m.records, fb)
	return nil
}

func (m *mockStorage) Count(ctx context.Context) (int, error) {
	return len(m.records), nil
}

func (m *mockStorage) Close() error { return nil }

func validFeedback() models.Feedback {
	return models.Feedback{
		QueryID: "q1",
		UserID:  "u1",
		Rating:  4,
	}
}

func TestSubmitValidRatings(t *testing.T) {
	t.Log("=== Testing rating bounds ===")

	storage := &mockStorage{}
	svc := NewService(storage, arbor.NewLogger())

	for rating := 1; rating <= 5; rating++ {
		fb := validFeedback()
		fb.Rating = rating
		msg, err := svc.Submit(context.Background(), fb)
		require.NoError(t, err, "rating %d is valid", rating)
		assert.Contains(t, msg, "star rating has been recorded")
	}
	assert.Len(t, storage.records, 5)

	for _, rating := range []int{0, 6, -1} {
		fb := validFeedback()
		fb.Rating = rating
		_, err := svc.Submit(context.Background(), fb)
		require.Error(t, err, "rating %d is invalid", rating)
		var validationErr *interfaces.ValidationError
		require.ErrorAs(t, err, &validationErr)
		assert.Equal(t, "Rating must be an integer between 1 and 5", validationErr.Message)
	}
	assert.Len(t, storage.records, 5, "invalid ratings are not stored")

	t.Log("✅ SUCCESS: ratings 1-5 accepted, out-of-range rejected")
}

func TestSubmitMessageFormat(t *testing.T) {
	svc := NewService(&mockStorage{}, arbor.NewLogger())

	msg, err := svc.Submit(context.Background(), validFeedback())
	require.NoError(t, err)
	assert.Equal(t, "Thank you! Your 4-star rating has been recorded.", msg)
}

func TestSubmitIdentifierValidation(t *testing.T) {
	svc := NewService(&mockStorage{}, arbor.NewLogger())

	fb := validFeedback()
	fb.QueryID = ""
	_, err := svc.Submit(context.Background(), fb)
	require.EqualError(t, err, "Invalid query ID")

	fb = validFeedback()
	fb.QueryID = strings.Repeat("q", 101)
	_, err = svc.Submit(context.Background(), fb)
	require.EqualError(t, err, "Invalid query ID")

	fb = validFeedback()
	fb.UserID = strings.Repeat("u", 101)
	_, err = svc.Submit(context.Background(), fb)
	require.EqualError(t, err, "Invalid user ID")
}

func TestSubmitFeedbackTextLength(t *testing.T) {
	storage := &mockStorage{}
	svc := NewService(storage, arbor.NewLogger())

	fb := validFeedback()
	fb.FeedbackText = strings.Repeat("a", 500)
	_, err := svc.Submit(context.Background(), fb)
	require.NoError(t, err, "500 characters is valid")

	fb.FeedbackText = strings.Repeat("a", 501)
	_, err = svc.Submit(context.Background(), fb)
	require.EqualError(t, err, "Feedback text is too long (max 500 characters)")
}

func TestSubmitUnknownQueryIDAccepted(t *testing.T) {
	storage := &mockStorage{}
	svc := NewService(storage, arbor.NewLogger())

	fb := validFeedback()
	fb.QueryID = "never-issued-by-the-pipeline"
	_, err := svc.Submit(context.Background(), fb)
	require.NoError(t, err, "query IDs are not cross-checked against stored queries")
}

func TestSubmitDuplicatesKept(t *testing.T) {
	storage := &mockStorage{}
	svc := NewService(storage, arbor.NewLogger())

	_, err := svc.Submit(context.Background(), validFeedback())
	require.NoError(t, err)
	_, err = svc.Submit(context.Background(), validFeedback())
	require.NoError(t, err)

	assert.Len(t, storage.records, 2, "duplicate submissions stored as separate records")
}

func TestSubmitSetsCreatedAt(t *testing.T) {
	storage := &mockStorage{}
	svc := NewService(storage, arbor.NewLogger())

	_, err := svc.Submit(context.Background(), validFeedback())
	require.NoError(t, err)
	require.Len(t, storage.records, 1)
	assert.False(t, storage.records[0].CreatedAt.IsZero())
}

func TestSubmitStorageFailure(t *testing.T) {
	storage := &mockStorage{
		appendFunc: func(ctx context.Context, fb *models.Feedback) error {
			return errors.New("disk full")
		},
	}
	svc := NewService(storage, arbor.NewLogger())

	_, err := svc.Submit(context.Background(), validFeedback())
	require.Error(t, err)
}

func TestMetricsPlaceholder(t *testing.T) {
	storage := &mockStorage{}
	svc := NewService(storage, arbor.NewLogger())

	_, err := svc.Submit(context.Background(), validFeedback())
	require.NoError(t, err)

	out := svc.Metrics(context.Background())
	assert.Equal(t, "Metrics aggregation coming in v1.1", out["message"])

	metrics, ok := out["metrics"].(map[string]interface{})
	require.True(t, ok)
	assert.Equal(t, "TBD", metrics["average_rating"])
	assert.Equal(t, 1, metrics["feedback_count"])
}
