package embeddings

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/openai/openai-go/v3"
	"github.com/openai/openai-go/v3/option"
	"github.com/ternarybob/arbor"
	"golang.org/x/time/rate"

	"github.com/ternarybob/docuassist/internal/common"
	"github.com/ternarybob/docuassist/internal/interfaces"
)

const (
	// DefaultModel is used when no embedding model is configured
	DefaultModel = "text-embedding-3-small"
	// DefaultDimension matches the default model's native dimension
	DefaultDimension = 1536
	// MaxBatchSize is the provider's per-request input limit
	MaxBatchSize = 100
)

// OpenAIEmbedder implements interfaces.EmbeddingService against the OpenAI
// embeddings API. Outbound calls are paced with a rate limiter so bulk
// uploads stay inside the provider's request quota.
type OpenAIEmbedder struct {
	client    openai.Client
	model     string
	dimension int
	timeout   time.Duration
	limiter   *rate.Limiter
	logger    arbor.ILogger
}

// NewOpenAIEmbedder creates an embedder from configuration. The API key is
// resolved env-first (OPENAI_API_KEY, DOCUASSIST_OPENAI_API_KEY) with the
// config value as fallback.
func NewOpenAIEmbedder(cfg *common.EmbeddingsConfig, llmCfg *common.LLMConfig, logger arbor.ILogger) (*OpenAIEmbedder, error) {
	fallback := cfg.APIKey
	if fallback == "" {
		fallback = llmCfg.OpenAIAPIKey
	}
	apiKey, err := common.ResolveAPIKey([]string{"OPENAI_API_KEY", "DOCUASSIST_OPENAI_API_KEY"}, fallback)
	if err != nil {
		return nil, err
	}

	model := cfg.Model
	if model == "" {
		model = DefaultModel
	}
	dimension := cfg.Dimension
	if dimension <= 0 {
		dimension = DefaultDimension
	}

	timeout, err := time.ParseDuration(cfg.Timeout)
	if err != nil || timeout <= 0 {
		timeout = 15 * time.Second
	}

	var limiter *rate.Limiter
	if cfg.RequestsPerSecond > 0 {
		limiter = rate.NewLimiter(rate.Limit(cfg.RequestsPerSecond), cfg.RequestsPerSecond)
	}

	logger.Debug().
		Str("model", model).
		Int("dimension", dimension).
		Dur("timeout", timeout).
		Msg("OpenAI embedding service initialized")

	return &OpenAIEmbedder{
		client:    openai.NewClient(option.WithAPIKey(apiKey)),
		model:     model,
		dimension: dimension,
		timeout:   timeout,
		limiter:   limiter,
		logger:    logger,
	}, nil
}

// GenerateEmbedding converts a single text into its vector representation.
func (e *OpenAIEmbedder) GenerateEmbedding(ctx context.Context, text string) ([]float32, error) {
	if strings.TrimSpace(text) == "" {
		return nil, interfaces.NewValidationError("text cannot be empty")
	}

	embeddings, err := e.BatchEmbed(ctx, []string{text})
	if err != nil {
		return nil, err
	}
	if len(embeddings) == 0 {
		return nil, interfaces.NewProviderError("embedding", errors.New("no embedding returned"))
	}
	return embeddings[0], nil
}

// BatchEmbed converts up to MaxBatchSize texts in a single provider call.
func (e *OpenAIEmbedder) BatchEmbed(ctx context.Context, texts []string) ([][]float32, error) {
	if len(texts) == 0 {
		return nil, interfaces.NewValidationError("no texts provided")
	}
	if len(texts) > MaxBatchSize {
		return nil, interfaces.NewValidationError("batch size exceeds maximum of %d", MaxBatchSize)
	}

	if e.limiter != nil {
		if err := e.limiter.Wait(ctx); err != nil {
			return nil, interfaces.NewTimeoutError("embedding", err)
		}
	}

	timeoutCtx, cancel := context.WithTimeout(ctx, e.timeout)
	defer cancel()

	params := openai.EmbeddingNewParams{
		Model: openai.EmbeddingModel(e.model),
	}
	if len(texts) == 1 {
		params.Input = openai.EmbeddingNewParamsInputUnion{
			OfString: openai.String(texts[0]),
		}
	} else {
		params.Input = openai.EmbeddingNewParamsInputUnion{
			OfArrayOfStrings: texts,
		}
	}
	if e.dimension > 0 {
		params.Dimensions = openai.Int(int64(e.dimension))
	}

	startTime := time.Now()
	resp, err := e.client.Embeddings.New(timeoutCtx, params)
	if err != nil {
		if errors.Is(err, context.DeadlineExceeded) || errors.Is(timeoutCtx.Err(), context.DeadlineExceeded) {
			return nil, interfaces.NewTimeoutError("embedding", err)
		}
		return nil, interfaces.NewProviderError("embedding", err)
	}

	embeddings := make([][]float32, 0, len(resp.Data))
	for _, data := range resp.Data {
		vector := make([]float32, len(data.Embedding))
		for i, v := range data.Embedding {
			vector[i] = float32(v)
		}
		embeddings = append(embeddings, vector)
	}

	if len(embeddings) == 0 {
		return nil, interfaces.NewProviderError("embedding", errors.New("provider returned no embeddings"))
	}

	e.logger.Debug().
		Int("count", len(embeddings)).
		Dur("duration", time.Since(startTime)).
		Msg("Generated embeddings")

	return embeddings, nil
}

// Dimension returns the vector dimension this service produces.
func (e *OpenAIEmbedder) Dimension() int {
	return e.dimension
}

// HealthCheck probes the provider with a minimal embedding request.
func (e *OpenAIEmbedder) HealthCheck(ctx context.Context) error {
	healthCtx, cancel := context.WithTimeout(ctx, 10*time.Second)
	defer cancel()

	if _, err := e.GenerateEmbedding(healthCtx, "ping"); err != nil {
		return err
	}
	return nil
}

var _ interfaces.EmbeddingService = (*OpenAIEmbedder)(nil)
