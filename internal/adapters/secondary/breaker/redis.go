package breaker

import (
	"context"
	"strconv"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/vibin/chat-relay/internal/core/domain"
)

// RedisStore implements the breaker contract against a shared redis
// instance so a fleet of relay processes sees one breaker per provider.
// Failure timestamps live in a sorted set scored by unix milliseconds;
// openUntil and openedCount are plain keys under the same prefix.
type RedisStore struct {
	client *redis.Client
	prefix string
}

// NewRedisStore creates a redis-backed breaker store under the given key prefix
func NewRedisStore(client *redis.Client, prefix string) *RedisStore {
	return &RedisStore{client: client, prefix: prefix}
}

// Ping verifies connectivity to the shared store
func (s *RedisStore) Ping(ctx context.Context) error {
	return s.client.Ping(ctx).Err()
}

func (s *RedisStore) failuresKey() string  { return s.prefix + ":failures" }
func (s *RedisStore) openUntilKey() string { return s.prefix + ":openUntil" }
func (s *RedisStore) openedKey() string    { return s.prefix + ":openedCount" }

// IsOpen reports whether the shared breaker is currently short-circuiting
func (s *RedisStore) IsOpen(ctx context.Context) (bool, error) {
	openUntil, err := s.getMillis(ctx, s.openUntilKey())
	if err != nil {
		return false, err
	}
	return time.Now().UnixMilli() < openUntil, nil
}

// RecordFailure appends a failure, prunes the window and opens the breaker
// when the threshold is reached. The append/prune/count sequence runs in one
// MULTI/EXEC pipeline so concurrent instances serialize at the store.
func (s *RedisStore) RecordFailure(ctx context.Context, now time.Time, window time.Duration, threshold int, cooldown time.Duration) (domain.BreakerState, error) {
	nowMs := now.UnixMilli()

	var card *redis.IntCmd
	_, err := s.client.TxPipelined(ctx, func(pipe redis.Pipeliner) error {
		pipe.ZAdd(ctx, s.failuresKey(), redis.Z{
			Score:  float64(nowMs),
			Member: strconv.FormatInt(nowMs, 10),
		})
		pipe.ZRemRangeByScore(ctx, s.failuresKey(), "0", strconv.FormatInt(nowMs-window.Milliseconds(), 10))
		card = pipe.ZCard(ctx, s.failuresKey())
		return nil
	})
	if err != nil {
		return domain.BreakerState{}, err
	}

	if card.Val() >= int64(threshold) {
		openUntil, err := s.getMillis(ctx, s.openUntilKey())
		if err != nil {
			return domain.BreakerState{}, err
		}
		// only a closed-to-open transition moves the counter
		if nowMs >= openUntil {
			until := nowMs + cooldown.Milliseconds()
			if err := s.client.Set(ctx, s.openUntilKey(), strconv.FormatInt(until, 10), 0).Err(); err != nil {
				return domain.BreakerState{}, err
			}
			if err := s.client.Incr(ctx, s.openedKey()).Err(); err != nil {
				return domain.BreakerState{}, err
			}
		}
	}

	return s.State(ctx)
}

// Prune removes failures older than the window and returns the remaining count
func (s *RedisStore) Prune(ctx context.Context, window time.Duration) (int, error) {
	nowMs := time.Now().UnixMilli()
	if err := s.client.ZRemRangeByScore(ctx, s.failuresKey(), "0", strconv.FormatInt(nowMs-window.Milliseconds(), 10)).Err(); err != nil {
		return 0, err
	}
	count, err := s.client.ZCard(ctx, s.failuresKey()).Result()
	if err != nil {
		return 0, err
	}
	return int(count), nil
}

// State returns a snapshot of the shared breaker state
func (s *RedisStore) State(ctx context.Context) (domain.BreakerState, error) {
	members, err := s.client.ZRangeWithScores(ctx, s.failuresKey(), 0, -1).Result()
	if err != nil {
		return domain.BreakerState{}, err
	}
	failures := make([]time.Time, 0, len(members))
	for _, z := range members {
		failures = append(failures, time.UnixMilli(int64(z.Score)))
	}

	openUntil, err := s.getMillis(ctx, s.openUntilKey())
	if err != nil {
		return domain.BreakerState{}, err
	}
	opened, err := s.getMillis(ctx, s.openedKey())
	if err != nil {
		return domain.BreakerState{}, err
	}

	state := domain.BreakerState{
		Failures:    failures,
		OpenedCount: int(opened),
	}
	if openUntil > 0 {
		state.OpenUntil = time.UnixMilli(openUntil)
	}
	return state, nil
}

// getMillis reads an integer key, treating absence as zero
func (s *RedisStore) getMillis(ctx context.Context, key string) (int64, error) {
	val, err := s.client.Get(ctx, key).Result()
	if err == redis.Nil {
		return 0, nil
	}
	if err != nil {
		return 0, err
	}
	n, err := strconv.ParseInt(val, 10, 64)
	if err != nil {
		return 0, nil
	}
	return n, nil
}
