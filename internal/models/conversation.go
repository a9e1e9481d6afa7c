package models

import "time"

// MaxHistoryEntries caps the per-user conversation log. The oldest entry
// is evicted when an append exceeds the cap.
const MaxHistoryEntries = 10

// ConversationEntry is one query/response exchange in a user's history.
type ConversationEntry struct {
	QueryID   string    `json:"query_id"`
	Query     string    `json:"query"`
	Response  string    `json:"response"`
	Timestamp time.Time `json:"timestamp"`
}
