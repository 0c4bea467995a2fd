package llm

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCallWithRetries_FirstAttemptSucceeds(t *testing.T) {
	calls := 0
	reply, err := callWithRetries(context.Background(), 2, func(ctx context.Context) (string, error) {
		calls++
		return "ok", nil
	})

	require.NoError(t, err)
	assert.Equal(t, "ok", reply)
	assert.Equal(t, 1, calls)
}

func TestCallWithRetries_RecoversAfterFailure(t *testing.T) {
	calls := 0
	reply, err := callWithRetries(context.Background(), 2, func(ctx context.Context) (string, error) {
		calls++
		if calls < 2 {
			return "", errors.New("transient")
		}
		return "ok", nil
	})

	require.NoError(t, err)
	assert.Equal(t, "ok", reply)
	assert.Equal(t, 2, calls)
}

func TestCallWithRetries_ExhaustsAttempts(t *testing.T) {
	boom := errors.New("boom")
	calls := 0
	_, err := callWithRetries(context.Background(), 2, func(ctx context.Context) (string, error) {
		calls++
		return "", boom
	})

	assert.ErrorIs(t, err, boom)
	assert.Equal(t, 3, calls, "initial attempt plus two retries")
}

func TestCallWithRetries_StopsOnCancellation(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())

	calls := 0
	_, err := callWithRetries(ctx, 5, func(ctx context.Context) (string, error) {
		calls++
		cancel()
		return "", errors.New("transient")
	})

	assert.ErrorIs(t, err, context.Canceled)
	assert.Equal(t, 1, calls, "no retries after the context is cancelled")
}
