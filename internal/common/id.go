package common

import (
	"github.com/google/uuid"
)

// NewQueryID generates a unique query identifier (uuid v4). Feedback
// records reference queries by this value.
func NewQueryID() string {
	return uuid.New().String()
}

// NewDocumentID generates a unique document ID with the "doc_" prefix
// Format: doc_<uuid>
func NewDocumentID() string {
	return "doc_" + uuid.New().String()
}
