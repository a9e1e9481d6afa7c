package vectorindex

import (
	"context"
	"math"
	"sort"
	"sync"

	"github.com/ternarybob/arbor"

	"github.com/ternarybob/docuassist/internal/interfaces"
	"github.com/ternarybob/docuassist/internal/models"
)

type memoryEntry struct {
	vector   []float32
	text     string
	metadata map[string]interface{}
}

// MemoryIndex is an in-process vector index using exact cosine similarity.
// Suitable for tests and single-node deployments without a Qdrant instance.
type MemoryIndex struct {
	mu      sync.RWMutex
	name    string
	entries map[string]memoryEntry
	logger  arbor.ILogger
}

// NewMemoryIndex creates an empty in-memory index.
func NewMemoryIndex(name string, logger arbor.ILogger) *MemoryIndex {
	return &MemoryIndex{
		name:    name,
		entries: make(map[string]memoryEntry),
		logger:  logger,
	}
}

// Upsert writes each document's vector, text, and metadata keyed by ID.
func (m *MemoryIndex) Upsert(ctx context.Context, docs []models.Document, vectors [][]float32) error {
	if len(docs) != len(vectors) {
		return interfaces.NewValidationError("documents and vectors length mismatch (%d vs %d)", len(docs), len(vectors))
	}

	m.mu.Lock()
	defer m.mu.Unlock()

	for i, doc := range docs {
		m.entries[doc.ID] = memoryEntry{
			vector:   vectors[i],
			text:     doc.Text,
			metadata: doc.Metadata,
		}
	}

	m.logger.Debug().
		Int("count", len(docs)).
		Int("total", len(m.entries)).
		Msg("Upserted documents into memory index")

	return nil
}

// Query returns at most topK entries by descending cosine similarity.
// Scores are clamped to [0,1].
func (m *MemoryIndex) Query(ctx context.Context, vector []float32, topK int) ([]models.RetrievedDocument, error) {
	if topK <= 0 {
		return []models.RetrievedDocument{}, nil
	}

	m.mu.RLock()
	defer m.mu.RUnlock()

	results := make([]models.RetrievedDocument, 0, len(m.entries))
	for _, entry := range m.entries {
		score := clampScore(cosineSimilarity(vector, entry.vector))
		results = append(results, models.RetrievedDocument{
			Text:           entry.text,
			RelevanceScore: score,
		})
	}

	sort.SliceStable(results, func(i, j int) bool {
		return results[i].RelevanceScore > results[j].RelevanceScore
	})

	if len(results) > topK {
		results = results[:topK]
	}
	return results, nil
}

// Delete removes the entry with the given ID. Returns false when absent.
func (m *MemoryIndex) Delete(ctx context.Context, id string) (bool, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	if _, ok := m.entries[id]; !ok {
		return false, nil
	}
	delete(m.entries, id)
	return true, nil
}

// Health reports index status. An empty index is healthy.
func (m *MemoryIndex) Health(ctx context.Context) (*models.IndexHealth, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	return &models.IndexHealth{
		Status:       "healthy",
		TotalVectors: len(m.entries),
		IndexName:    m.name,
	}, nil
}

// Close releases resources. No-op for the in-memory index.
func (m *MemoryIndex) Close() error {
	return nil
}

// cosineSimilarity computes the cosine of the angle between two vectors.
// Mismatched lengths or zero vectors yield 0.
func cosineSimilarity(a, b []float32) float64 {
	if len(a) != len(b) || len(a) == 0 {
		return 0
	}

	var dot, normA, normB float64
	for i := range a {
		dot += float64(a[i]) * float64(b[i])
		normA += float64(a[i]) * float64(a[i])
		normB += float64(b[i]) * float64(b[i])
	}
	if normA == 0 || normB == 0 {
		return 0
	}
	return dot / (math.Sqrt(normA) * math.Sqrt(normB))
}

// clampScore bounds a similarity score to [0,1].
func clampScore(score float64) float64 {
	if score < 0 {
		return 0
	}
	if score > 1 {
		return 1
	}
	return score
}

var _ interfaces.VectorIndex = (*MemoryIndex)(nil)
