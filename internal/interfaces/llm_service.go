package interfaces

import "context"

// Message represents a single message in a conversation with an LLM.
type Message struct {
	Role    string `json:"role"` // "system", "user", or "assistant"
	Content string `json:"content"`
}

// LLMService generates chat completions conditioned on a conversation.
//
// Implementations wrap a single hosted provider (Anthropic, Google, or
// OpenAI). Generation parameters (temperature, max tokens, top_p) come
// from configuration at construction time. Failures surface as
// *ProviderError, deadline overruns as *TimeoutError; implementations do
// not retry.
type LLMService interface {
	// Chat generates a completion for the conversation. The messages slice
	// contains the full context in chronological order including the system
	// prompt, prior exchanges, and the current user message.
	Chat(ctx context.Context, messages []Message) (string, error)

	// HealthCheck verifies the provider is reachable with a lightweight probe.
	HealthCheck(ctx context.Context) error

	// ModelName returns the configured model identifier.
	ModelName() string

	// Close releases any resources held by the client.
	Close() error
}
