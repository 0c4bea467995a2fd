package breaker

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/vibin/chat-relay/internal/core/domain"
	"github.com/vibin/chat-relay/internal/logger"
)

var errStoreDown = errors.New("store down")

// failingStore simulates an unreachable shared store
type failingStore struct{}

func (failingStore) IsOpen(ctx context.Context) (bool, error) { return false, errStoreDown }

func (failingStore) RecordFailure(ctx context.Context, now time.Time, window time.Duration, threshold int, cooldown time.Duration) (domain.BreakerState, error) {
	return domain.BreakerState{}, errStoreDown
}

func (failingStore) Prune(ctx context.Context, window time.Duration) (int, error) {
	return 0, errStoreDown
}

func (failingStore) State(ctx context.Context) (domain.BreakerState, error) {
	return domain.BreakerState{}, errStoreDown
}

func TestFallbackStore_ShadowTakesOver(t *testing.T) {
	log := logger.New(slog.LevelError, io.Discard)
	shadow := NewMemoryStore()
	store := NewFallbackStore(failingStore{}, shadow, log)
	ctx := context.Background()
	now := time.Now()

	for i := 0; i < 3; i++ {
		_, err := store.RecordFailure(ctx, now, testWindow, 3, testCooldown)
		require.NoError(t, err)
	}

	open, err := store.IsOpen(ctx)
	require.NoError(t, err)
	assert.True(t, open)

	state, err := store.State(ctx)
	require.NoError(t, err)
	assert.Equal(t, 1, state.OpenedCount)
}

func TestFallbackStore_PrimaryPreferred(t *testing.T) {
	log := logger.New(slog.LevelError, io.Discard)
	primary := NewMemoryStore()
	shadow := NewMemoryStore()
	store := NewFallbackStore(primary, shadow, log)
	ctx := context.Background()

	_, err := store.RecordFailure(ctx, time.Now(), testWindow, 5, testCooldown)
	require.NoError(t, err)

	primaryState, err := primary.State(ctx)
	require.NoError(t, err)
	assert.Len(t, primaryState.Failures, 1)

	shadowState, err := shadow.State(ctx)
	require.NoError(t, err)
	assert.Empty(t, shadowState.Failures)
}
