package llm

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/openai/openai-go/v3"
	"github.com/openai/openai-go/v3/option"
	"github.com/ternarybob/arbor"

	"github.com/ternarybob/docuassist/internal/common"
	"github.com/ternarybob/docuassist/internal/interfaces"
)

// OpenAIService implements the LLMService interface using the OpenAI chat
// completions API.
type OpenAIService struct {
	config  *common.LLMConfig
	logger  arbor.ILogger
	client  openai.Client
	timeout time.Duration
}

// NewOpenAIService creates an OpenAI completion service from configuration.
// The API key is resolved env-first (OPENAI_API_KEY,
// DOCUASSIST_OPENAI_API_KEY) with the config value as fallback.
func NewOpenAIService(cfg *common.LLMConfig, logger arbor.ILogger) (*OpenAIService, error) {
	apiKey, err := common.ResolveAPIKey([]string{"OPENAI_API_KEY", "DOCUASSIST_OPENAI_API_KEY"}, cfg.OpenAIAPIKey)
	if err != nil {
		return nil, err
	}

	timeout, err := time.ParseDuration(cfg.Timeout)
	if err != nil || timeout <= 0 {
		timeout = 30 * time.Second
	}

	logger.Debug().
		Str("model", cfg.Model).
		Dur("timeout", timeout).
		Float32("temperature", cfg.Temperature).
		Int("max_tokens", cfg.MaxTokens).
		Msg("OpenAI LLM service initialized")

	return &OpenAIService{
		config:  cfg,
		logger:  logger,
		client:  openai.NewClient(option.WithAPIKey(apiKey)),
		timeout: timeout,
	}, nil
}

// Chat generates a completion response based on the conversation history.
func (s *OpenAIService) Chat(ctx context.Context, messages []interfaces.Message) (string, error) {
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
			Msg("OpenAI chat completion failed")
		if errors.Is(err, context.DeadlineExceeded) {
			return "", interfaces.NewTimeoutError("openai", err)
		}
		return "", interfaces.NewProviderError("openai", err)
	}

	s.logger.Debug().
		Int("message_count", len(messages)).
		Int("response_length", len(response)).
		Dur("duration", time.Since(startTime)).
		Msg("OpenAI chat completion completed")

	return response, nil
}

// HealthCheck verifies the OpenAI API is reachable with a minimal probe.
func (s *OpenAIService) HealthCheck(ctx context.Context) error {
	healthCtx, cancel := context.WithTimeout(ctx, 10*time.Second)
	defer cancel()

	response, err := s.generateCompletion(healthCtx, []interfaces.Message{
		{Role: "user", Content: "ping"},
	})
	if err != nil {
		return interfaces.NewProviderError("openai", err)
	}
	if strings.TrimSpace(response) == "" {
		return interfaces.NewProviderError("openai", errors.New("probe returned empty response"))
	}
	return nil
}

// ModelName returns the configured model identifier.
func (s *OpenAIService) ModelName() string {
	return s.config.Model
}

// Close releases resources held by the client.
func (s *OpenAIService) Close() error {
	return nil
}

func (s *OpenAIService) generateCompletion(ctx context.Context, messages []interfaces.Message) (string, error) {
	params := openai.ChatCompletionNewParams{
		Model:    openai.ChatModel(s.config.Model),
		Messages: make([]openai.ChatCompletionMessageParamUnion, 0, len(messages)),
	}
	for _, msg := range messages {
		switch msg.Role {
		case "system":
			params.Messages = append(params.Messages, openai.SystemMessage(msg.Content))
		case "assistant":
			params.Messages = append(params.Messages, openai.AssistantMessage(msg.Content))
		default:
			params.Messages = append(params.Messages, openai.UserMessage(msg.Content))
		}
	}
	if s.config.Temperature > 0 {
		params.Temperature = openai.Float(float64(s.config.Temperature))
	}
	if s.config.MaxTokens > 0 {
		params.MaxTokens = openai.Int(int64(s.config.MaxTokens))
	}
	if s.config.TopP > 0 {
		params.TopP = openai.Float(float64(s.config.TopP))
	}

	resp, err := s.client.Chat.Completions.New(ctx, params)
	if err != nil {
		return "", err
	}
	if len(resp.Choices) == 0 || strings.TrimSpace(resp.Choices[0].Message.Content) == "" {
		return "", errors.New("no response generated from OpenAI API")
	}

	return resp.Choices[0].Message.Content, nil
}

var _ interfaces.LLMService = (*OpenAIService)(nil)
