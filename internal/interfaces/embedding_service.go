package interfaces

import "context"

// EmbeddingService converts text into fixed-length numeric vectors for
// semantic similarity search.
//
// Implementations wrap an external embedding provider. Provider failures
// surface as *ProviderError and deadline overruns as *TimeoutError; no
// retries happen at this layer.
type EmbeddingService interface {
	// GenerateEmbedding converts a single text into its vector representation.
	// Text must be non-empty after trimming.
	GenerateEmbedding(ctx context.Context, text string) ([]float32, error)

	// BatchEmbed converts up to 100 texts in a single provider call.
	// Used by document upload to avoid one round trip per document.
	BatchEmbed(ctx context.Context, texts []string) ([][]float32, error)

	// Dimension returns the vector dimension this service produces.
	Dimension() int

	// HealthCheck verifies the provider is reachable and operational.
	HealthCheck(ctx context.Context) error
}
