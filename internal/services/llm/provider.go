package llm

import (
	"fmt"
	"strings"

	"github.com/ternarybob/arbor"

	"github.com/ternarybob/docuassist/internal/common"
	"github.com/ternarybob/docuassist/internal/interfaces"
)

// DetectProvider determines the completion provider from the model name
// prefix. Supported: "claude-*" (Anthropic), "gemini-*" (Google),
// "gpt-*" / "o*" (OpenAI).
func DetectProvider(model string) (string, error) {
	switch {
	case strings.HasPrefix(model, "claude-"):
		return "claude", nil
	case strings.HasPrefix(model, "gemini-"):
		return "gemini", nil
	case strings.HasPrefix(model, "gpt-"), strings.HasPrefix(model, "o1"), strings.HasPrefix(model, "o3"), strings.HasPrefix(model, "o4"):
		return "openai", nil
	default:
		return "", fmt.Errorf("cannot detect provider for model '%s' (expected claude-*, gemini-*, or gpt-*)", model)
	}
}

// NewLLMService constructs the completion service matching the configured
// model name.
func NewLLMService(cfg *common.LLMConfig, logger arbor.ILogger) (interfaces.LLMService, error) {
	provider, err := DetectProvider(cfg.Model)
	if err != nil {
		return nil, err
	}

	logger.Info().
		Str("provider", provider).
		Str("model", cfg.Model).
		Msg("Initializing LLM service")

	switch provider {
	case "claude":
		return NewClaudeService(cfg, logger)
	case "gemini":
		return NewGeminiService(cfg, logger)
	default:
		return NewOpenAIService(cfg, logger)
	}
}
