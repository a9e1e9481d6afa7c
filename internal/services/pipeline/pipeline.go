package pipeline

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/ternarybob/arbor"

	"github.com/ternarybob/docuassist/internal/common"
	"github.com/ternarybob/docuassist/internal/interfaces"
	"github.com/ternarybob/docuassist/internal/models"
)

// Pipeline composes the embedder, vector index, and completion client into
// the retrieval-augmented answer flow. The three provider calls within one
// Answer invocation run strictly sequentially; the first failure aborts
// with no partial result and no internal retry.
//
// When constructed without providers (demo mode) queries are served from
// the built-in knowledge base instead.
type Pipeline struct {
	embedder interfaces.EmbeddingService
	index    interfaces.VectorIndex
	llm      interfaces.LLMService
	history  interfaces.HistoryStore
	topK     int
	maxDoc   int
	demoMode bool
	logger   arbor.ILogger
}

// Options configures pipeline construction.
type Options struct {
	Embedder        interfaces.EmbeddingService
	Index           interfaces.VectorIndex
	LLM             interfaces.LLMService
	History         interfaces.HistoryStore
	TopK            int
	MaxDocumentSize int
	DemoMode        bool
}

// New creates the pipeline. DemoMode is forced on when any provider is
// missing so the service degrades instead of failing requests.
func New(opts Options, logger arbor.ILogger) *Pipeline {
	topK := opts.TopK
	if topK <= 0 {
		topK = 3
	}

	demoMode := opts.DemoMode
	if opts.Embedder == nil || opts.Index == nil || opts.LLM == nil {
		demoMode = true
	}
	if demoMode {
		logger.Warn().Msg("Pipeline running in demo mode with the built-in knowledge base")
	}

	return &Pipeline{
		embedder: opts.Embedder,
		index:    opts.Index,
		llm:      opts.LLM,
		history:  opts.History,
		topK:     topK,
		maxDoc:   opts.MaxDocumentSize,
		demoMode: demoMode,
		logger:   logger,
	}
}

// Answer processes a query end to end: validate, embed, retrieve, assemble
// context, generate, and record the exchange. Returns the structured
// result with a latency breakdown.
func (p *Pipeline) Answer(ctx context.Context, query models.Query) (*models.QueryResult, error) {
	text := strings.TrimSpace(query.Text)
	if text == "" {
		return nil, interfaces.NewValidationError("Query cannot be empty")
	}
	if len([]rune(text)) > models.MaxQueryLength {
		return nil, interfaces.NewValidationError("Query is too long (max %d characters)", models.MaxQueryLength)
	}
	query.Text = text
	if query.UserID == "" {
		query.UserID = "anonymous"
	}

	queryID := common.NewQueryID()
	startTime := time.Now()

	p.logger.Info().
		Str("query_id", queryID).
		Str("user_id", query.UserID).
		Int("query_length", len(text)).
		Msg("Processing query")

	if p.demoMode {
		return p.answerDemo(query, queryID, startTime), nil
	}

	// Retrieval phase: embed the query, then nearest-neighbor search.
	// Both calls count toward retrieval latency.
	retrievalStart := time.Now()
	vector, err := p.embedder.GenerateEmbedding(ctx, query.Text)
	if err != nil {
		p.logger.Error().Err(err).Str("query_id", queryID).Msg("Query embedding failed")
		return nil, err
	}

	retrieved, err := p.index.Query(ctx, vector, p.topK)
	if err != nil {
		p.logger.Error().Err(err).Str("query_id", queryID).Msg("Vector retrieval failed")
		return nil, err
	}
	retrievalLatency := float64(time.Since(retrievalStart).Microseconds()) / 1000.0

	if len(retrieved) == 0 {
		p.logger.Warn().
			Str("query_id", queryID).
			Msg("No relevant documents found for query")
	}

	// Generation phase: completion conditioned on the retrieved context.
	generationStart := time.Now()
	messages := p.buildMessages(query, retrieved)
	response, err := p.llm.Chat(ctx, messages)
	if err != nil {
		p.logger.Error().Err(err).Str("query_id", queryID).Msg("Response generation failed")
		return nil, err
	}
	generationLatency := float64(time.Since(generationStart).Microseconds()) / 1000.0

	result := &models.QueryResult{
		QueryID:            queryID,
		Response:           response,
		RetrievedDocuments: retrieved,
		Metrics: models.LatencyMetrics{
			RetrievalLatencyMs:  retrievalLatency,
			GenerationLatencyMs: generationLatency,
			TotalLatencyMs:      float64(time.Since(startTime).Microseconds()) / 1000.0,
			DocumentCount:       len(retrieved),
		},
		Success: true,
	}

	p.recordHistory(query, result)

	p.logger.Info().
		Str("query_id", queryID).
		Int("documents", len(retrieved)).
		Float64("retrieval_ms", retrievalLatency).
		Float64("generation_ms", generationLatency).
		Msg("Query processed")

	return result, nil
}

// buildMessages assembles the conversation for the completion model:
// system prompt, prior history for the user, then the current query with
// its context block.
func (p *Pipeline) buildMessages(query models.Query, retrieved []models.RetrievedDocument) []interfaces.Message {
	systemPrompt := query.SystemPrompt
	if systemPrompt == "" {
		systemPrompt = defaultSystemPrompt
	}

	messages := []interfaces.Message{
		{Role: "system", Content: systemPrompt},
	}

	if p.history != nil {
		for _, entry := range p.history.Get(query.UserID) {
			messages = append(messages,
				interfaces.Message{Role: "user", Content: entry.Query},
				interfaces.Message{Role: "assistant", Content: entry.Response},
			)
		}
	}

	contextText := buildContextText(retrieved, p.maxDoc)
	messages = append(messages, interfaces.Message{
		Role:    "user",
		Content: fmt.Sprintf("Context:\n%s\n\nQuestion: %s", contextText, query.Text),
	})

	return messages
}

func (p *Pipeline) recordHistory(query models.Query, result *models.QueryResult) {
	if p.history == nil || query.UserID == "" {
		return
	}
	p.history.Append(query.UserID, models.ConversationEntry{
		QueryID:   result.QueryID,
		Query:     query.Text,
		Response:  result.Response,
		Timestamp: time.Now(),
	})
}

// History returns the user's recent exchanges, oldest first.
func (p *Pipeline) History(userID string) []models.ConversationEntry {
	if p.history == nil {
		return []models.ConversationEntry{}
	}
	return p.history.Get(userID)
}

// Health reports pipeline health including the vector store component.
func (p *Pipeline) Health(ctx context.Context) *models.SystemHealth {
	if p.demoMode {
		return &models.SystemHealth{
			Status: "healthy",
			Components: map[string]interface{}{
				"mode": "demo",
			},
		}
	}

	indexHealth, err := p.index.Health(ctx)
	if err != nil {
		p.logger.Error().Err(err).Msg("Health check failed")
		return &models.SystemHealth{
			Status: "unhealthy",
			Error:  err.Error(),
		}
	}

	return &models.SystemHealth{
		Status: "healthy",
		Components: map[string]interface{}{
			"vector_store": indexHealth,
		},
	}
}

var _ interfaces.ChatService = (*Pipeline)(nil)
