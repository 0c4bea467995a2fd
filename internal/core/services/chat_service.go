package services

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/vibin/chat-relay/config"
	"github.com/vibin/chat-relay/internal/core/ports"
	"github.com/vibin/chat-relay/internal/logger"
)

// cacheKeyPrefix namespaces reply-cache keys; the raw message is appended
// unmodified, so lookups are exact-match.
const cacheKeyPrefix = "compute:"

// Compile-time interface assertion.
var _ ports.ChatPort = (*ChatService)(nil)

// Providers bundles the per-tier provider adapters. A nil entry means the
// tier is not configured and is skipped by the router.
type Providers struct {
	Task     ports.ProviderPort
	Primary  ports.ProviderPort
	FreeTier ports.ProviderPort
	Default  ports.ProviderPort
}

// ChatService is the response router. Given a message it picks a provider
// tier, shields the caller from provider failures via the circuit breaker
// and per-call deadlines, memoizes default-tier replies, and degrades to
// the deterministic responder when everything else fails.
type ChatService struct {
	providers Providers
	breaker   ports.BreakerStore
	cache     ports.ReplyCache
	metrics   ports.MetricsPort
	config    *config.Config
	logger    logger.Logger
}

// NewChatService creates a new ChatService
func NewChatService(providers Providers, breakerStore ports.BreakerStore, cache ports.ReplyCache, m ports.MetricsPort, cfg *config.Config, log logger.Logger) *ChatService {
	return &ChatService{
		providers: providers,
		breaker:   breakerStore,
		cache:     cache,
		metrics:   m,
		config:    cfg,
		logger:    log,
	}
}

// Respond answers from the deterministic responder only, no providers
func (s *ChatService) Respond(message string) string {
	return ComputeResponse(message)
}

// Chat routes a user message through the provider tiers and returns a
// reply. It never returns an error: any failure that escapes the tiers is
// logged and converted into the deterministic responder's answer.
func (s *ChatService) Chat(ctx context.Context, message string) string {
	reply, err := s.route(ctx, message)
	if err != nil {
		s.logger.Error("Routing failed, falling back to deterministic responder", "error", err)
		return ComputeResponse(message)
	}
	return reply
}

// route walks the tier chain: task-style requests, then the breaker-guarded
// primary provider, then the free tier, then the cached default tier.
func (s *ChatService) route(ctx context.Context, message string) (string, error) {
	msg := strings.ToLower(message)

	if strings.Contains(msg, "book") || strings.Contains(msg, "calculate") {
		if s.providers.Task == nil {
			return "", errors.New("task adapter not available")
		}
		return s.callProvider(ctx, s.providers.Task, message)
	}

	// The primary gate is terminal when enabled: it answers from the
	// provider or from the deterministic responder, never falls through.
	if s.config.OpenAI.Enabled && s.providers.Primary != nil {
		return s.primaryTier(ctx, message), nil
	}

	if s.config.HuggingFace.Enabled && s.providers.FreeTier != nil {
		return s.callProvider(ctx, s.providers.FreeTier, message)
	}

	return s.defaultTier(ctx, message)
}

// primaryTier attempts the breaker-guarded paid provider. Failures are
// absorbed here: the caller always gets a reply, either the provider's or
// the deterministic responder's.
func (s *ChatService) primaryTier(ctx context.Context, message string) string {
	now := time.Now()
	if state, err := s.breaker.State(ctx); err == nil {
		s.metrics.ObserveBreaker(state, now, s.config.Breaker.Cooldown)
	}

	open, err := s.breaker.IsOpen(ctx)
	if err != nil {
		s.logger.Warn("Circuit store check failed, treating circuit as closed", "error", err)
	}
	if open {
		s.logger.Warn("OpenAI circuit is open, falling back to deterministic responder")
		return ComputeResponse(message)
	}

	reply, err := s.callProvider(ctx, s.providers.Primary, message)
	if err == nil {
		// success prunes stale failures; the opened counter is untouched
		if _, perr := s.breaker.Prune(ctx, s.config.Breaker.Window); perr != nil {
			s.logger.Warn("Failed to prune circuit window", "error", perr)
		}
		return reply
	}

	state, rerr := s.breaker.RecordFailure(ctx, time.Now(), s.config.Breaker.Window, s.config.Breaker.Threshold, s.config.Breaker.Cooldown)
	if rerr != nil {
		s.logger.Warn("Failed to record circuit failure", "error", rerr)
	} else {
		s.metrics.ObserveBreaker(state, time.Now(), s.config.Breaker.Cooldown)
		if state.IsOpen(time.Now()) {
			s.logger.Warn("OpenAI circuit opened", "opened_count", state.OpenedCount, "failures", len(state.Failures))
		}
	}

	s.logger.Warn("OpenAI adapter failed, falling back to deterministic responder", "error", err)
	return ComputeResponse(message)
}

// defaultTier serves from the reply cache when possible, otherwise calls
// the default provider. On failure the deterministic reply is computed and
// cached before the error propagates to the router's safety net.
func (s *ChatService) defaultTier(ctx context.Context, message string) (string, error) {
	key := cacheKeyPrefix + message
	if cached, ok := s.cache.Get(key); ok {
		s.logger.Debug("Reply cache hit")
		return cached, nil
	}

	if s.providers.Default == nil {
		fallback := ComputeResponse(message)
		s.cache.Set(key, fallback)
		return "", errors.New("claude adapter not available")
	}

	reply, err := s.callProvider(ctx, s.providers.Default, message)
	if err != nil {
		fallback := ComputeResponse(message)
		s.cache.Set(key, fallback)
		return "", err
	}

	s.cache.Set(key, reply)
	return reply, nil
}

// callProvider runs one timeout-wrapped, instrumented provider call.
// Breaker and metric updates happen here and in the tiers, after the call
// settles — a late completion from a timed-out call is discarded and can
// never touch shared state.
func (s *ChatService) callProvider(ctx context.Context, p ports.ProviderPort, message string) (string, error) {
	start := time.Now()
	reply, err := callWithTimeout(ctx, s.config.Adapter.Timeout, func(ctx context.Context) (string, error) {
		return p.Respond(ctx, message)
	})
	s.metrics.ObserveAdapter(p.Name(), p.Model(), time.Since(start), err)
	if err != nil {
		return "", fmt.Errorf("%s adapter: %w", p.Name(), err)
	}
	return reply, nil
}
