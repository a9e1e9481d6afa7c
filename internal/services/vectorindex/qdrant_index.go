package vectorindex

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/google/uuid"
	"github.com/ternarybob/arbor"

	"github.com/ternarybob/docuassist/internal/common"
	"github.com/ternarybob/docuassist/internal/interfaces"
	"github.com/ternarybob/docuassist/internal/models"
)

// QdrantIndex implements interfaces.VectorIndex over the Qdrant REST API.
// The collection is created on first use with cosine distance. Qdrant point
// IDs must be UUIDs, so document IDs are mapped to deterministic v5 UUIDs
// and the original ID travels in the payload.
type QdrantIndex struct {
	baseURL    string
	collection string
	apiKey     string
	dimension  int
	client     *http.Client
	logger     arbor.ILogger
}

// NewQdrantIndex creates a Qdrant-backed index and ensures the collection
// exists with the given vector dimension.
func NewQdrantIndex(cfg *common.QdrantConfig, dimension int, logger arbor.ILogger) (*QdrantIndex, error) {
	timeout, err := time.ParseDuration(cfg.Timeout)
	if err != nil || timeout <= 0 {
		timeout = 10 * time.Second
	}

	q := &QdrantIndex{
		baseURL:    cfg.URL,
		collection: cfg.Collection,
		apiKey:     cfg.APIKey,
		dimension:  dimension,
		client:     &http.Client{Timeout: timeout},
		logger:     logger,
	}

	if err := q.ensureCollection(context.Background()); err != nil {
		return nil, err
	}

	logger.Info().
		Str("url", cfg.URL).
		Str("collection", cfg.Collection).
		Int("dimension", dimension).
		Msg("Connected to Qdrant collection")

	return q, nil
}

func (q *QdrantIndex) ensureCollection(ctx context.Context) error {
	// PUT is idempotent for existing collections with matching params;
	// a conflict means the collection already exists and is usable.
	body := map[string]interface{}{
		"vectors": map[string]interface{}{
			"size":     q.dimension,
			"distance": "Cosine",
		},
	}
	status, _, err := q.do(ctx, http.MethodPut, fmt.Sprintf("/collections/%s", q.collection), body)
	if err != nil {
		return interfaces.NewProviderError("qdrant", err)
	}
	if status != http.StatusOK && status != http.StatusConflict {
		return interfaces.NewProviderError("qdrant", fmt.Errorf("create collection returned status %d", status))
	}
	return nil
}

// pointID maps a document ID to a deterministic Qdrant-compatible UUID.
func pointID(docID string) string {
	return uuid.NewSHA1(uuid.NameSpaceOID, []byte(docID)).String()
}

// Upsert writes document vectors with text and metadata payloads.
func (q *QdrantIndex) Upsert(ctx context.Context, docs []models.Document, vectors [][]float32) error {
	if len(docs) != len(vectors) {
		return interfaces.NewValidationError("documents and vectors length mismatch (%d vs %d)", len(docs), len(vectors))
	}
	if len(docs) == 0 {
		return nil
	}

	points := make([]map[string]interface{}, 0, len(docs))
	for i, doc := range docs {
		points = append(points, map[string]interface{}{
			"id":     pointID(doc.ID),
			"vector": vectors[i],
			"payload": map[string]interface{}{
				"document_id": doc.ID,
				"text":        doc.Text,
				"metadata":    doc.Metadata,
			},
		})
	}

	status, respBody, err := q.do(ctx, http.MethodPut,
		fmt.Sprintf("/collections/%s/points?wait=true", q.collection),
		map[string]interface{}{"points": points})
	if err != nil {
		return interfaces.NewProviderError("qdrant", err)
	}
	if status != http.StatusOK {
		return interfaces.NewProviderError("qdrant", fmt.Errorf("upsert returned status %d: %s", status, respBody))
	}

	q.logger.Debug().
		Int("count", len(points)).
		Msg("Upserted points into Qdrant")

	return nil
}

// Query runs a top-K similarity search and returns results ordered by
// non-increasing score, clamped to [0,1].
func (q *QdrantIndex) Query(ctx context.Context, vector []float32, topK int) ([]models.RetrievedDocument, error) {
	if topK <= 0 {
		return []models.RetrievedDocument{}, nil
	}

	body := map[string]interface{}{
		"vector":       vector,
		"limit":        topK,
		"with_payload": true,
	}
	status, respBody, err := q.do(ctx, http.MethodPost,
		fmt.Sprintf("/collections/%s/points/search", q.collection), body)
	if err != nil {
		return nil, interfaces.NewProviderError("qdrant", err)
	}
	if status != http.StatusOK {
		return nil, interfaces.NewProviderError("qdrant", fmt.Errorf("search returned status %d: %s", status, respBody))
	}

	var parsed struct {
		Result []struct {
			Score   float64                `json:"score"`
			Payload map[string]interface{} `json:"payload"`
		} `json:"result"`
	}
	if err := json.Unmarshal(respBody, &parsed); err != nil {
		return nil, interfaces.NewProviderError("qdrant", fmt.Errorf("failed to decode search response: %w", err))
	}

	results := make([]models.RetrievedDocument, 0, len(parsed.Result))
	for _, hit := range parsed.Result {
		text, _ := hit.Payload["text"].(string)
		results = append(results, models.RetrievedDocument{
			Text:           text,
			RelevanceScore: clampScore(hit.Score),
		})
	}
	return results, nil
}

// Delete removes a document's point. Returns false when the ID is absent.
func (q *QdrantIndex) Delete(ctx context.Context, id string) (bool, error) {
	pid := pointID(id)

	// Check existence first so absent IDs report false rather than a
	// silently-succeeding idempotent delete.
	status, respBody, err := q.do(ctx, http.MethodPost,
		fmt.Sprintf("/collections/%s/points", q.collection),
		map[string]interface{}{"ids": []string{pid}, "with_payload": false})
	if err != nil {
		return false, interfaces.NewProviderError("qdrant", err)
	}
	if status != http.StatusOK {
		return false, interfaces.NewProviderError("qdrant", fmt.Errorf("point lookup returned status %d", status))
	}
	var lookup struct {
		Result []json.RawMessage `json:"result"`
	}
	if err := json.Unmarshal(respBody, &lookup); err != nil {
		return false, interfaces.NewProviderError("qdrant", fmt.Errorf("failed to decode point lookup: %w", err))
	}
	if len(lookup.Result) == 0 {
		return false, nil
	}

	status, respBody, err = q.do(ctx, http.MethodPost,
		fmt.Sprintf("/collections/%s/points/delete?wait=true", q.collection),
		map[string]interface{}{"points": []string{pid}})
	if err != nil {
		return false, interfaces.NewProviderError("qdrant", err)
	}
	if status != http.StatusOK {
		return false, interfaces.NewProviderError("qdrant", fmt.Errorf("delete returned status %d: %s", status, respBody))
	}
	return true, nil
}

// Health reports collection status and point count.
func (q *QdrantIndex) Health(ctx context.Context) (*models.IndexHealth, error) {
	status, respBody, err := q.do(ctx, http.MethodGet,
		fmt.Sprintf("/collections/%s", q.collection), nil)
	if err != nil {
		return nil, interfaces.NewProviderError("qdrant", err)
	}
	if status != http.StatusOK {
		return nil, interfaces.NewProviderError("qdrant", fmt.Errorf("collection info returned status %d", status))
	}

	var parsed struct {
		Result struct {
			PointsCount int `json:"points_count"`
		} `json:"result"`
	}
	if err := json.Unmarshal(respBody, &parsed); err != nil {
		return nil, interfaces.NewProviderError("qdrant", fmt.Errorf("failed to decode collection info: %w", err))
	}

	return &models.IndexHealth{
		Status:       "healthy",
		TotalVectors: parsed.Result.PointsCount,
		IndexName:    q.collection,
	}, nil
}

// Close releases resources held by the index client.
func (q *QdrantIndex) Close() error {
	q.client.CloseIdleConnections()
	return nil
}

// do executes a Qdrant REST request and returns the status and body.
func (q *QdrantIndex) do(ctx context.Context, method, path string, body interface{}) (int, []byte, error) {
	var reader io.Reader
	if body != nil {
		data, err := json.Marshal(body)
		if err != nil {
			return 0, nil, fmt.Errorf("failed to encode request body: %w", err)
		}
		reader = bytes.NewReader(data)
	}

	req, err := http.NewRequestWithContext(ctx, method, q.baseURL+path, reader)
	if err != nil {
		return 0, nil, err
	}
	req.Header.Set("Content-Type", "application/json")
	if q.apiKey != "" {
		req.Header.Set("api-key", q.apiKey)
	}

	resp, err := q.client.Do(req)
	if err != nil {
		return 0, nil, err
	}
	defer resp.Body.Close()

	respBody, err := io.ReadAll(resp.Body)
	if err != nil {
		return resp.StatusCode, nil, err
	}
	return resp.StatusCode, respBody, nil
}

var _ interfaces.VectorIndex = (*QdrantIndex)(nil)
