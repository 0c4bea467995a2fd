package breaker

import (
	"context"
	"fmt"
	"os"
	"testing"
	"time"

	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// newTestRedisStore connects to the redis named by REDIS_URL under a
// test-scoped prefix, skipping the test when no instance is available.
func newTestRedisStore(t *testing.T) *RedisStore {
	t.Helper()

	url := os.Getenv("REDIS_URL")
	if url == "" {
		t.Skip("REDIS_URL not set")
	}

	opts, err := redis.ParseURL(url)
	require.NoError(t, err)
	client := redis.NewClient(opts)

	prefix := fmt.Sprintf("chatrelay_test:%d", time.Now().UnixNano())
	store := NewRedisStore(client, prefix)

	ctx := context.Background()
	if err := store.Ping(ctx); err != nil {
		t.Skipf("redis unreachable: %v", err)
	}

	t.Cleanup(func() {
		client.Del(ctx, store.failuresKey(), store.openUntilKey(), store.openedKey())
		client.Close()
	})

	return store
}

func TestRedisStore_OpensAtThreshold(t *testing.T) {
	store := newTestRedisStore(t)
	ctx := context.Background()

	open, err := store.IsOpen(ctx)
	require.NoError(t, err)
	require.False(t, open)

	now := time.Now()
	for i := 0; i < 3; i++ {
		_, err := store.RecordFailure(ctx, now.Add(time.Duration(i)*time.Millisecond), testWindow, 3, testCooldown)
		require.NoError(t, err)
	}

	open, err = store.IsOpen(ctx)
	require.NoError(t, err)
	assert.True(t, open)

	state, err := store.State(ctx)
	require.NoError(t, err)
	assert.Equal(t, 1, state.OpenedCount)
	assert.Len(t, state.Failures, 3)
}

func TestRedisStore_LazyRecovery(t *testing.T) {
	store := newTestRedisStore(t)
	ctx := context.Background()

	now := time.Now()
	for i := 0; i < 2; i++ {
		_, err := store.RecordFailure(ctx, now.Add(time.Duration(i)*time.Millisecond), testWindow, 2, 50*time.Millisecond)
		require.NoError(t, err)
	}

	open, err := store.IsOpen(ctx)
	require.NoError(t, err)
	require.True(t, open)

	time.Sleep(80 * time.Millisecond)
	open, err = store.IsOpen(ctx)
	require.NoError(t, err)
	assert.False(t, open)
}

func TestRedisStore_Prune(t *testing.T) {
	store := newTestRedisStore(t)
	ctx := context.Background()

	old := time.Now().Add(-2 * testWindow)
	_, err := store.RecordFailure(ctx, old, 10*testWindow, 100, testCooldown)
	require.NoError(t, err)

	count, err := store.Prune(ctx, testWindow)
	require.NoError(t, err)
	assert.Zero(t, count)
}
