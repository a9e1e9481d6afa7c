package llm

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/anthropics/anthropic-sdk-go"
	"github.com/anthropics/anthropic-sdk-go/option"
	"github.com/ternarybob/arbor"

	"github.com/ternarybob/docuassist/internal/common"
	"github.com/ternarybob/docuassist/internal/interfaces"
)

// ClaudeService implements the LLMService interface using the Anthropic API.
type ClaudeService struct {
	config  *common.LLMConfig
	logger  arbor.ILogger
	client  anthropic.Client
	timeout time.Duration
}

// convertMessagesToClaude converts []interfaces.Message to Claude MessageParam
// format. System messages are extracted separately for the System parameter.
// Returns the user/assistant messages and the first system message content.
func convertMessagesToClaude(messages []interfaces.Message) ([]anthropic.MessageParam, string, error) {
	if len(messages) == 0 {
		return nil, "", errors.New("messages cannot be empty")
	}

	claudeMessages := make([]anthropic.MessageParam, 0, len(messages))
	var systemText string
	for _, msg := range messages {
		if msg.Role == "system" {
			if systemText == "" {
				systemText = msg.Content
			}
			continue
		}

		switch msg.Role {
		case "assistant":
			claudeMessages = append(claudeMessages, anthropic.NewAssistantMessage(
				anthropic.NewTextBlock(msg.Content),
			))
		default:
			claudeMessages = append(claudeMessages, anthropic.NewUserMessage(
				anthropic.NewTextBlock(msg.Content),
			))
		}
	}

	if len(claudeMessages) == 0 {
		return nil, "", errors.New("at least one non-system message is required")
	}

	return claudeMessages, systemText, nil
}

// NewClaudeService creates a Claude completion service from configuration.
// The API key is resolved env-first (ANTHROPIC_API_KEY,
// DOCUASSIST_ANTHROPIC_API_KEY) with the config value as fallback.
func NewClaudeService(cfg *common.LLMConfig, logger arbor.ILogger) (*ClaudeService, error) {
	apiKey, err := common.ResolveAPIKey([]string{"ANTHROPIC_API_KEY", "DOCUASSIST_ANTHROPIC_API_KEY"}, cfg.AnthropicAPIKey)
	if err != nil {
		return nil, err
	}

	timeout, err := time.ParseDuration(cfg.Timeout)
	if err != nil || timeout <= 0 {
		timeout = 30 * time.Second
	}

	service := &ClaudeService{
		config:  cfg,
		logger:  logger,
		client:  anthropic.NewClient(option.WithAPIKey(apiKey)),
		timeout: timeout,
	}

	logger.Debug().
		Str("model", cfg.Model).
		Dur("timeout", timeout).
		Float32("temperature", cfg.Temperature).
		Int("max_tokens", cfg.MaxTokens).
		Msg("Claude LLM service initialized")

	return service, nil
}

// Chat generates a completion response based on the conversation history.
func (s *ClaudeService) Chat(ctx context.Context, messages []interfaces.Message) (string, error) {
	if len(messages) == 0 {
		return "", interfaces.NewValidationError("messages cannot be empty for chat completion")
	}

	timeoutCtx, cancel := context.WithTimeout(ctx, s.timeout)
	defer cancel()

	startTime := time.Now()
	response, err := s.generateCompletion(timeoutCtx, messages)
	if err != nil {
		s.logger.Error().
			Err(err).
			Int("message_count", len(messages)).
			Msg("Claude chat completion failed")
		if errors.Is(err, context.DeadlineExceeded) {
			return "", interfaces.NewTimeoutError("claude", err)
		}
		return "", interfaces.NewProviderError("claude", err)
	}

	s.logger.Debug().
		Int("message_count", len(messages)).
		Int("response_length", len(response)).
		Dur("duration", time.Since(startTime)).
		Msg("Claude chat completion completed")

	return response, nil
}

// HealthCheck verifies the Claude API is reachable with a minimal probe.
func (s *ClaudeService) HealthCheck(ctx context.Context) error {
	healthCtx, cancel := context.WithTimeout(ctx, 10*time.Second)
	defer cancel()

	response, err := s.generateCompletion(healthCtx, []interfaces.Message{
		{Role: "user", Content: "ping"},
	})
	if err != nil {
		return interfaces.NewProviderError("claude", err)
	}
	if strings.TrimSpace(response) == "" {
		return interfaces.NewProviderError("claude", errors.New("probe returned empty response"))
	}
	return nil
}

// ModelName returns the configured model identifier.
func (s *ClaudeService) ModelName() string {
	return s.config.Model
}

// Close releases resources held by the client.
func (s *ClaudeService) Close() error {
	// Claude client doesn't require explicit cleanup
	return nil
}

func (s *ClaudeService) generateCompletion(ctx context.Context, messages []interfaces.Message) (string, error) {
	claudeMessages, systemText, err := convertMessagesToClaude(messages)
	if err != nil {
		return "", err
	}

	params := anthropic.MessageNewParams{
		Model:     anthropic.Model(s.config.Model),
		MaxTokens: int64(s.config.MaxTokens),
		Messages:  claudeMessages,
	}
	if s.config.Temperature > 0 {
		params.Temperature = anthropic.Float(float64(s.config.Temperature))
	}
	if s.config.TopP > 0 {
		params.TopP = anthropic.Float(float64(s.config.TopP))
	}
	if systemText != "" {
		params.System = []anthropic.TextBlockParam{
			{Text: systemText},
		}
	}

	resp, err := s.client.Messages.New(ctx, params)
	if err != nil {
		return "", err
	}

	var response strings.Builder
	for _, block := range resp.Content {
		if block.Type == "text" {
			response.WriteString(block.Text)
		}
	}
	if response.Len() == 0 {
		return "", errors.New("no response generated from Claude API")
	}

	return response.String(), nil
}

var _ interfaces.LLMService = (*ClaudeService)(nil)
