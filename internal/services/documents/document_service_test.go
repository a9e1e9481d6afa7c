package documents

import (
	"context"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/ternarybob/arbor"

	"github.com/ternarybob/docuassist/internal/interfaces"
	"github.com/ternarybob/docuassist/internal/models"
	"github.com/ternarybob/docuassist/internal/services/vectorindex"
)

// stubEmbedder maps distinct texts onto distinct axis-aligned vectors so
// the memory index retrieves exact text matches with score 1.0.
type stubEmbedder struct {
	batchCalls int
	axes       map[string]int
}

func newStubEmbedder() *stubEmbedder {
	return &stubEmbedder{axes: make(map[string]int)}
}

func (s *stubEmbedder) vectorFor(text string) []float32 {
	axis, ok := s.axes[text]
	if !ok {
		axis = len(s.axes) % 8
		s.axes[text] = axis
	}
	v := make([]float32, 8)
	v[axis] = 1
	return v
}

func (s *stubEmbedder) GenerateEmbedding(ctx context.Context, text string) ([]float32, error) {
	return s.vectorFor(text), nil
}

func (s *stubEmbedder) BatchEmbed(ctx context.Context, texts []string) ([][]float32, error) {
	s.batchCalls++
	out := make([][]float32, len(texts))
	for i, text := range texts {
		out[i] = s.vectorFor(text)
	}
	return out, nil
}

func (s *stubEmbedder) Dimension() int { return 8 }

func (s *stubEmbedder) HealthCheck(ctx context.Context) error { return nil }

func newTestService() (*Service, *stubEmbedder, *vectorindex.MemoryIndex) {
	embedder := newStubEmbedder()
	index := vectorindex.NewMemoryIndex("test", arbor.NewLogger())
	return NewService(embedder, index, arbor.NewLogger()), embedder, index
}

func TestUploadValidation(t *testing.T) {
	t.Log("=== Testing upload validation ===")

	svc, embedder, _ := newTestService()

	_, err := svc.Upload(context.Background(), []models.Document{})
	require.EqualError(t, err, "No documents provided")

	_, err = svc.Upload(context.Background(), []models.Document{
		{Text: "fine"},
		{Text: "   "},
	})
	require.EqualError(t, err, "Each document must have non-empty 'text' field")

	assert.Equal(t, 0, embedder.batchCalls, "validation happens before any embedding call")

	t.Log("✅ SUCCESS: invalid uploads rejected before embedding")
}

func TestUploadAssignsIDsAndIndexes(t *testing.T) {
	svc, _, index := newTestService()

	count, err := svc.Upload(context.Background(), []models.Document{
		{Text: "password reset instructions"},
		{ID: "doc_custom", Text: "billing overview"},
	})
	require.NoError(t, err)
	assert.Equal(t, 2, count)

	health, err := index.Health(context.Background())
	require.NoError(t, err)
	assert.Equal(t, 2, health.TotalVectors)

	deleted, err := index.Delete(context.Background(), "doc_custom")
	require.NoError(t, err)
	assert.True(t, deleted, "caller-supplied ID is kept")
}

func TestUploadedDocumentIsRetrievable(t *testing.T) {
	t.Log("=== Testing upload then retrieval ===")

	svc, embedder, index := newTestService()

	_, err := svc.Upload(context.Background(), []models.Document{
		{Text: "password reset instructions"},
		{Text: "billing overview"},
	})
	require.NoError(t, err)

	vector, err := embedder.GenerateEmbedding(context.Background(), "password reset instructions")
	require.NoError(t, err)

	results, err := index.Query(context.Background(), vector, 1)
	require.NoError(t, err)
	require.Len(t, results, 1)
	assert.Equal(t, "password reset instructions", results[0].Text)
	assert.InDelta(t, 1.0, results[0].RelevanceScore, 0.001)

	t.Log("✅ SUCCESS: uploaded document comes back as the top match")
}

func TestUploadBatching(t *testing.T) {
	svc, embedder, index := newTestService()

	docs := make([]models.Document, 150)
	for i := range docs {
		docs[i] = models.Document{Text: fmt.Sprintf("document %d", i)}
	}

	count, err := svc.Upload(context.Background(), docs)
	require.NoError(t, err)
	assert.Equal(t, 150, count)
	assert.Equal(t, 2, embedder.batchCalls, "150 documents split into two batches")

	health, err := index.Health(context.Background())
	require.NoError(t, err)
	assert.Equal(t, 150, health.TotalVectors)
}

func TestDeleteAbsent(t *testing.T) {
	svc, _, _ := newTestService()

	deleted, err := svc.Delete(context.Background(), "doc_missing")
	require.NoError(t, err, "absent ID is not an error")
	assert.False(t, deleted)
}

func TestDemoModeGuards(t *testing.T) {
	svc := NewService(nil, nil, arbor.NewLogger())

	_, err := svc.Upload(context.Background(), []models.Document{{Text: "doc"}})
	require.Error(t, err)
	var providerErr *interfaces.ProviderError
	require.ErrorAs(t, err, &providerErr)

	_, err = svc.Delete(context.Background(), "doc_x")
	require.ErrorAs(t, err, &providerErr)

	_, err = svc.Health(context.Background())
	require.ErrorAs(t, err, &providerErr)
}
