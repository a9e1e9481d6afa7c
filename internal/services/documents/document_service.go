package documents

import (
	"context"
	"errors"
	"strings"

	"github.com/ternarybob/arbor"

	"github.com/ternarybob/docuassist/internal/common"
	"github.com/ternarybob/docuassist/internal/interfaces"
	"github.com/ternarybob/docuassist/internal/models"
)

// errDemoMode reports that the index is unavailable because the service
// is running without external providers.
var errDemoMode = errors.New("document index unavailable (running in demo mode)")

// Service manages the document index: embedding uploaded documents,
// writing them to the vector index, and deleting them by ID.
type Service struct {
	embedder interfaces.EmbeddingService
	index    interfaces.VectorIndex
	logger   arbor.ILogger
}

// NewService creates a document service over the given embedder and index.
func NewService(embedder interfaces.EmbeddingService, index interfaces.VectorIndex, logger arbor.ILogger) *Service {
	return &Service{
		embedder: embedder,
		index:    index,
		logger:   logger,
	}
}

// Upload embeds and indexes the documents. Documents without an ID get a
// generated doc_{uuid}; an existing ID overwrites the stored entry.
// Returns the number of documents indexed.
func (s *Service) Upload(ctx context.Context, docs []models.Document) (int, error) {
	if len(docs) == 0 {
		return 0, interfaces.NewValidationError("No documents provided")
	}
	if s.embedder == nil || s.index == nil {
		return 0, interfaces.NewProviderError("documents", errDemoMode)
	}

	prepared := make([]models.Document, 0, len(docs))
	texts := make([]string, 0, len(docs))
	for _, doc := range docs {
		if strings.TrimSpace(doc.Text) == "" {
			return 0, interfaces.NewValidationError("Each document must have non-empty 'text' field")
		}
		if doc.ID == "" {
			doc.ID = common.NewDocumentID()
		}
		if doc.Metadata == nil {
			doc.Metadata = map[string]interface{}{}
		}
		prepared = append(prepared, doc)
		texts = append(texts, doc.Text)
	}

	// Batch within the provider's per-request limit
	indexed := 0
	for start := 0; start < len(prepared); start += s.batchSize() {
		end := start + s.batchSize()
		if end > len(prepared) {
			end = len(prepared)
		}

		vectors, err := s.embedder.BatchEmbed(ctx, texts[start:end])
		if err != nil {
			return indexed, err
		}
		if err := s.index.Upsert(ctx, prepared[start:end], vectors); err != nil {
			return indexed, err
		}
		indexed += end - start
	}

	s.logger.Info().
		Int("count", indexed).
		Msg("Documents indexed")

	return indexed, nil
}

func (s *Service) batchSize() int {
	return 100
}

// Delete removes a document by ID. Returns false without error when the
// ID is absent.
func (s *Service) Delete(ctx context.Context, id string) (bool, error) {
	if s.index == nil {
		return false, interfaces.NewProviderError("documents", errDemoMode)
	}

	deleted, err := s.index.Delete(ctx, id)
	if err != nil {
		return false, err
	}

	s.logger.Info().
		Str("document_id", id).
		Bool("deleted", deleted).
		Msg("Document delete processed")

	return deleted, nil
}

// Health reports vector index health.
func (s *Service) Health(ctx context.Context) (*models.IndexHealth, error) {
	if s.index == nil {
		return nil, interfaces.NewProviderError("documents", errDemoMode)
	}
	return s.index.Health(ctx)
}

var _ interfaces.DocumentService = (*Service)(nil)
