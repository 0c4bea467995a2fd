package llm

import (
	"context"
	"errors"
	"strings"

	"github.com/tmc/langchaingo/llms"
	"github.com/tmc/langchaingo/llms/openai"

	"github.com/vibin/chat-relay/config"
	"github.com/vibin/chat-relay/internal/core/domain"
	"github.com/vibin/chat-relay/internal/logger"
)

// OpenAIAdapter implements the ProviderPort interface for the paid OpenAI
// tier. Missing credentials are a constructor error: the caller wires the
// tier as absent instead of probing at request time.
type OpenAIAdapter struct {
	client  *openai.LLM
	model   string
	retries int
	logger  logger.Logger
}

// NewOpenAIAdapter creates a new OpenAIAdapter
func NewOpenAIAdapter(cfg *config.OpenAIConfig, retries int, log logger.Logger) (*OpenAIAdapter, error) {
	if cfg.APIKey == "" {
		return nil, errors.New("OPENAI_API_KEY not set")
	}

	log.Info("Initializing OpenAI adapter", "model", cfg.Model)
	client, err := openai.New(
		openai.WithToken(cfg.APIKey),
		openai.WithModel(cfg.Model),
	)
	if err != nil {
		log.Error("Failed to initialize OpenAI client", "error", err)
		return nil, err
	}

	return &OpenAIAdapter{
		client:  client,
		model:   cfg.Model,
		retries: retries,
		logger:  log,
	}, nil
}

// Respond generates a reply for a single user message
func (a *OpenAIAdapter) Respond(ctx context.Context, message string) (string, error) {
	a.logger.Debug("Generating response with OpenAI", "model", a.model)

	reply, err := callWithRetries(ctx, a.retries, func(ctx context.Context) (string, error) {
		return a.client.Call(ctx, message,
			llms.WithMaxTokens(256),
			llms.WithTemperature(0.7),
		)
	})
	if err != nil {
		return "", err
	}
	return strings.TrimSpace(reply), nil
}

// Name returns the provider identity
func (a *OpenAIAdapter) Name() string {
	return domain.ProviderOpenAI
}

// Model returns the configured model identity
func (a *OpenAIAdapter) Model() string {
	return a.model
}
