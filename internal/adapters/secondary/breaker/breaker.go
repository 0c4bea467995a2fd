package breaker

import (
	"context"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/vibin/chat-relay/config"
	"github.com/vibin/chat-relay/internal/core/ports"
	"github.com/vibin/chat-relay/internal/logger"
)

// New selects the breaker backend from configuration. A redis URL selects
// the shared store; an unreachable or misconfigured redis falls back to the
// in-process store with a warning rather than failing startup. The second
// return value is the redis store for readiness checks, nil when the
// in-process backend is active.
func New(cfg *config.RedisConfig, log logger.Logger) (ports.BreakerStore, *RedisStore) {
	if cfg.URL == "" {
		return NewMemoryStore(), nil
	}

	opts, err := redis.ParseURL(cfg.URL)
	if err != nil {
		log.Warn("Invalid redis URL, using in-process circuit store", "error", err)
		return NewMemoryStore(), nil
	}

	store := NewRedisStore(redis.NewClient(opts), cfg.KeyPrefix)

	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
	defer cancel()
	if err := store.Ping(ctx); err != nil {
		log.Warn("Redis unreachable, using in-process circuit store", "error", err)
		return NewMemoryStore(), nil
	}

	log.Info("Using redis-backed circuit store", "prefix", cfg.KeyPrefix)
	return NewFallbackStore(store, NewMemoryStore(), log), store
}
