package interfaces

import "github.com/ternarybob/docuassist/internal/models"

// HistoryStore keeps a bounded per-user log of recent exchanges.
//
// The store is injected into the pipeline rather than held as package
// state so tests get isolated instances. Contents do not survive a
// process restart.
type HistoryStore interface {
	// Append records an exchange for the user, evicting the oldest entry
	// once the per-user cap is exceeded.
	Append(userID string, entry models.ConversationEntry)

	// Get returns the user's entries in insertion order, oldest first.
	// Unknown users yield an empty slice.
	Get(userID string) []models.ConversationEntry

	// Clear removes all entries for the user.
	Clear(userID string)
}
