package breaker

import (
	"context"
	"time"

	"github.com/vibin/chat-relay/internal/core/domain"
	"github.com/vibin/chat-relay/internal/core/ports"
	"github.com/vibin/chat-relay/internal/logger"
)

// FallbackStore delegates to a shared primary store and shadows every
// operation onto an in-process store when the primary errors. A flaky redis
// degrades breaker accuracy to per-instance counting instead of disabling
// the breaker outright.
type FallbackStore struct {
	primary ports.BreakerStore
	shadow  ports.BreakerStore
	logger  logger.Logger
}

// NewFallbackStore wraps primary with an in-process shadow store
func NewFallbackStore(primary, shadow ports.BreakerStore, log logger.Logger) *FallbackStore {
	return &FallbackStore{primary: primary, shadow: shadow, logger: log}
}

// IsOpen consults the primary store, falling back to the shadow on error
func (s *FallbackStore) IsOpen(ctx context.Context) (bool, error) {
	open, err := s.primary.IsOpen(ctx)
	if err != nil {
		s.logger.Warn("Shared circuit store unavailable, using in-process state", "error", err)
		return s.shadow.IsOpen(ctx)
	}
	return open, nil
}

// RecordFailure records into the primary store, falling back to the shadow
// on error so failures are never silently dropped.
func (s *FallbackStore) RecordFailure(ctx context.Context, now time.Time, window time.Duration, threshold int, cooldown time.Duration) (domain.BreakerState, error) {
	state, err := s.primary.RecordFailure(ctx, now, window, threshold, cooldown)
	if err != nil {
		s.logger.Warn("Shared circuit store unavailable, recording in-process", "error", err)
		return s.shadow.RecordFailure(ctx, now, window, threshold, cooldown)
	}
	return state, nil
}

// Prune prunes the primary store, falling back to the shadow on error
func (s *FallbackStore) Prune(ctx context.Context, window time.Duration) (int, error) {
	count, err := s.primary.Prune(ctx, window)
	if err != nil {
		return s.shadow.Prune(ctx, window)
	}
	return count, nil
}

// State snapshots the primary store, falling back to the shadow on error
func (s *FallbackStore) State(ctx context.Context) (domain.BreakerState, error) {
	state, err := s.primary.State(ctx)
	if err != nil {
		return s.shadow.State(ctx)
	}
	return state, nil
}
