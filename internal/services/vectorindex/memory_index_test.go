package vectorindex

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/ternarybob/arbor"

	"github.com/ternarybob/docuassist/internal/models"
)

func TestQueryOrdering(t *testing.T) {
	t.Log("=== Testing similarity ordering ===")

	index := NewMemoryIndex("test", arbor.NewLogger())
	docs := []models.Document{
		{ID: "d1", Text: "exact match"},
		{ID: "d2", Text: "close match"},
		{ID: "d3", Text: "orthogonal"},
	}
	vectors := [][]float32{
		{1, 0, 0},
		{0.9, 0.1, 0},
		{0, 0, 1},
	}
	require.NoError(t, index.Upsert(context.Background(), docs, vectors))

	results, err := index.Query(context.Background(), []float32{1, 0, 0}, 3)
	require.NoError(t, err)
	require.Len(t, results, 3)

	assert.Equal(t, "exact match", results[0].Text)
	assert.InDelta(t, 1.0, results[0].RelevanceScore, 0.001, "identical vector scores 1.0")
	assert.Equal(t, "close match", results[1].Text)
	assert.Equal(t, "orthogonal", results[2].Text)
	assert.InDelta(t, 0.0, results[2].RelevanceScore, 0.001)

	for i := 1; i < len(results); i++ {
		assert.GreaterOrEqual(t, results[i-1].RelevanceScore, results[i].RelevanceScore)
	}

	t.Log("✅ SUCCESS: results sorted by descending cosine similarity")
}

func TestQueryTopKCap(t *testing.T) {
	index := NewMemoryIndex("test", arbor.NewLogger())
	docs := make([]models.Document, 5)
	vectors := make([][]float32, 5)
	for i := range docs {
		docs[i] = models.Document{ID: string(rune('a' + i)), Text: "doc"}
		vectors[i] = []float32{1, float32(i) * 0.1}
	}
	require.NoError(t, index.Upsert(context.Background(), docs, vectors))

	results, err := index.Query(context.Background(), []float32{1, 0}, 2)
	require.NoError(t, err)
	assert.Len(t, results, 2, "fewer than stored when topK is smaller")

	results, err = index.Query(context.Background(), []float32{1, 0}, 10)
	require.NoError(t, err)
	assert.Len(t, results, 5, "all entries when topK exceeds size")
}

func TestQueryEmptyIndex(t *testing.T) {
	index := NewMemoryIndex("test", arbor.NewLogger())

	results, err := index.Query(context.Background(), []float32{1, 0}, 3)
	require.NoError(t, err)
	assert.Empty(t, results, "empty index returns empty results, not an error")
}

func TestUpsertOverwrites(t *testing.T) {
	index := NewMemoryIndex("test", arbor.NewLogger())
	ctx := context.Background()

	require.NoError(t, index.Upsert(ctx, []models.Document{{ID: "d1", Text: "old"}}, [][]float32{{1, 0}}))
	require.NoError(t, index.Upsert(ctx, []models.Document{{ID: "d1", Text: "new"}}, [][]float32{{1, 0}}))

	results, err := index.Query(ctx, []float32{1, 0}, 3)
	require.NoError(t, err)
	require.Len(t, results, 1)
	assert.Equal(t, "new", results[0].Text, "same ID replaces the previous entry")
}

func TestUpsertLengthMismatch(t *testing.T) {
	index := NewMemoryIndex("test", arbor.NewLogger())

	err := index.Upsert(context.Background(), []models.Document{{ID: "d1", Text: "doc"}}, [][]float32{})
	require.Error(t, err)
}

func TestDelete(t *testing.T) {
	index := NewMemoryIndex("test", arbor.NewLogger())
	ctx := context.Background()

	require.NoError(t, index.Upsert(ctx, []models.Document{{ID: "d1", Text: "doc"}}, [][]float32{{1, 0}}))

	deleted, err := index.Delete(ctx, "d1")
	require.NoError(t, err)
	assert.True(t, deleted)

	deleted, err = index.Delete(ctx, "d1")
	require.NoError(t, err)
	assert.False(t, deleted, "absent ID reports false without error")
}

func TestHealth(t *testing.T) {
	index := NewMemoryIndex("docuassist", arbor.NewLogger())
	ctx := context.Background()

	health, err := index.Health(ctx)
	require.NoError(t, err)
	assert.Equal(t, "healthy", health.Status, "empty index is healthy")
	assert.Equal(t, 0, health.TotalVectors)
	assert.Equal(t, "docuassist", health.IndexName)

	require.NoError(t, index.Upsert(ctx, []models.Document{{ID: "d1", Text: "doc"}}, [][]float32{{1, 0}}))
	health, err = index.Health(ctx)
	require.NoError(t, err)
	assert.Equal(t, 1, health.TotalVectors)
}

func TestCosineSimilarityEdgeCases(t *testing.T) {
	assert.Equal(t, 0.0, cosineSimilarity([]float32{1, 0}, []float32{1, 0, 0}), "length mismatch scores 0")
	assert.Equal(t, 0.0, cosineSimilarity([]float32{0, 0}, []float32{1, 0}), "zero vector scores 0")
	assert.Equal(t, 0.0, clampScore(-0.5), "negative similarity clamps to 0")
	assert.Equal(t, 1.0, clampScore(1.2))
}
