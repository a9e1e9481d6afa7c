package history

import (
	"sync"

	"github.com/ternarybob/arbor"

	"github.com/ternarybob/docuassist/internal/interfaces"
	"github.com/ternarybob/docuassist/internal/models"
)

// Store is an in-memory bounded per-user conversation log. Each user keeps
// at most models.MaxHistoryEntries exchanges; the oldest is evicted on
// overflow. Contents do not survive a restart.
//
// The store is injected into the pipeline rather than held as package
// state so tests get isolated instances.
type Store struct {
	mu      sync.RWMutex
	maxSize int
	byUser  map[string][]models.ConversationEntry
	logger  arbor.ILogger
}

// NewStore creates an empty history store. maxSize <= 0 falls back to
// models.MaxHistoryEntries.
func NewStore(maxSize int, logger arbor.ILogger) *Store {
	if maxSize <= 0 {
		maxSize = models.MaxHistoryEntries
	}
	return &Store{
		maxSize: maxSize,
		byUser:  make(map[string][]models.ConversationEntry),
		logger:  logger,
	}
}

// Append records an exchange for the user, evicting the oldest entry once
// the cap is exceeded.
func (s *Store) Append(userID string, entry models.ConversationEntry) {
	if userID == "" {
		return
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	entries := append(s.byUser[userID], entry)
	if len(entries) > s.maxSize {
		entries = entries[len(entries)-s.maxSize:]
	}
	s.byUser[userID] = entries
}

// Get returns the user's entries in insertion order, oldest first. The
// returned slice is a copy; callers may not mutate store state through it.
func (s *Store) Get(userID string) []models.ConversationEntry {
	s.mu.RLock()
	defer s.mu.RUnlock()

	entries := s.byUser[userID]
	out := make([]models.ConversationEntry, len(entries))
	copy(out, entries)
	return out
}

// Clear removes all entries for the user.
func (s *Store) Clear(userID string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.byUser, userID)
}

var _ interfaces.HistoryStore = (*Store)(nil)
