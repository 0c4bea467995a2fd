package llm

import (
	"context"
	"errors"
	"strings"

	"github.com/tmc/langchaingo/llms"
	"github.com/tmc/langchaingo/llms/anthropic"

	"github.com/vibin/chat-relay/config"
	"github.com/vibin/chat-relay/internal/core/domain"
	"github.com/vibin/chat-relay/internal/logger"
)

// AnthropicAdapter implements the ProviderPort interface for the default
// conversational tier.
type AnthropicAdapter struct {
	client  *anthropic.LLM
	model   string
	retries int
	logger  logger.Logger
}

// NewAnthropicAdapter creates a new AnthropicAdapter
func NewAnthropicAdapter(cfg *config.ClaudeConfig, retries int, log logger.Logger) (*AnthropicAdapter, error) {
	if cfg.APIKey == "" {
		return nil, errors.New("ANTHROPIC_API_KEY not set")
	}

	log.Info("Initializing Anthropic adapter", "model", cfg.Model)
	client, err := anthropic.New(
		anthropic.WithToken(cfg.APIKey),
		anthropic.WithModel(cfg.Model),
	)
	if err != nil {
		log.Error("Failed to initialize Anthropic client", "error", err)
		return nil, err
	}

	return &AnthropicAdapter{
		client:  client,
		model:   cfg.Model,
		retries: retries,
		logger:  log,
	}, nil
}

// Respond generates a reply for a single user message
func (a *AnthropicAdapter) Respond(ctx context.Context, message string) (string, error) {
	a.logger.Debug("Generating response with Anthropic", "model", a.model)

	reply, err := callWithRetries(ctx, a.retries, func(ctx context.Context) (string, error) {
		return a.client.Call(ctx, message,
			llms.WithMaxTokens(256),
		)
	})
	if err != nil {
		return "", err
	}
	return strings.TrimSpace(reply), nil
}

// Name returns the provider identity
func (a *AnthropicAdapter) Name() string {
	return domain.ProviderClaude
}

// Model returns the configured model identity
func (a *AnthropicAdapter) Model() string {
	return a.model
}
