package llm

import (
	"context"
	"errors"
	"strings"

	"github.com/tmc/langchaingo/llms"
	"github.com/tmc/langchaingo/llms/huggingface"

	"github.com/vibin/chat-relay/config"
	"github.com/vibin/chat-relay/internal/core/domain"
	"github.com/vibin/chat-relay/internal/logger"
)

// HuggingFaceAdapter implements the ProviderPort interface for the free-tier
// Hugging Face Inference API.
type HuggingFaceAdapter struct {
	client  *huggingface.LLM
	model   string
	retries int
	logger  logger.Logger
}

// NewHuggingFaceAdapter creates a new HuggingFaceAdapter
func NewHuggingFaceAdapter(cfg *config.HuggingFaceConfig, retries int, log logger.Logger) (*HuggingFaceAdapter, error) {
	if cfg.APIKey == "" {
		return nil, errors.New("HUGGINGFACE_API_KEY not set")
	}

	log.Info("Initializing Hugging Face adapter", "model", cfg.Model)
	client, err := huggingface.New(
		huggingface.WithToken(cfg.APIKey),
		huggingface.WithModel(cfg.Model),
	)
	if err != nil {
		log.Error("Failed to initialize Hugging Face client", "error", err)
		return nil, err
	}

	return &HuggingFaceAdapter{
		client:  client,
		model:   cfg.Model,
		retries: retries,
		logger:  log,
	}, nil
}

// Respond generates a reply for a single user message
func (a *HuggingFaceAdapter) Respond(ctx context.Context, message string) (string, error) {
	a.logger.Debug("Generating response with Hugging Face", "model", a.model)

	reply, err := callWithRetries(ctx, a.retries, func(ctx context.Context) (string, error) {
		return a.client.Call(ctx, message,
			llms.WithModel(a.model),
			llms.WithMaxTokens(256),
		)
	})
	if err != nil {
		return "", err
	}
	return strings.TrimSpace(reply), nil
}

// Name returns the provider identity
func (a *HuggingFaceAdapter) Name() string {
	return domain.ProviderHuggingFace
}

// Model returns the configured model identity
func (a *HuggingFaceAdapter) Model() string {
	return a.model
}
