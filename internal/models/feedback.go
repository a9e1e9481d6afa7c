package models

import "time"

// Feedback rating bounds and text limit.
const (
	MinRating           = 1
	MaxRating           = 5
	MaxFeedbackTextLen  = 500
	MaxIdentifierLength = 100 // query_id and user_id wire limit
)

// Feedback is a user rating of a prior response. Append-only; the QueryID
// reference is not checked against stored results, so replayed or unknown
// IDs are accepted.
type Feedback struct {
	ID           uint64    `json:"-" badgerhold:"key"`
	QueryID      string    `json:"query_id"`
	UserID       string    `json:"user_id"`
	Rating       int       `json:"rating"` // in [1,5]
	FeedbackText string    `json:"feedback_text,omitempty"`
	CreatedAt    time.Time `json:"created_at"`
}
