package llm

import (
	"context"
	"time"
)

// retryBaseDelay is the backoff unit; attempt n waits retryBaseDelay * 2^n.
const retryBaseDelay = 250 * time.Millisecond

// callWithRetries runs op up to retries+1 times with exponential backoff.
// It stops early when the context is cancelled, so a timed-out adapter call
// does not keep retrying in the background.
func callWithRetries(ctx context.Context, retries int, op func(context.Context) (string, error)) (string, error) {
	var lastErr error
	for attempt := 0; attempt <= retries; attempt++ {
		if attempt > 0 {
			backoff := retryBaseDelay * time.Duration(1<<attempt)
			select {
			case <-time.After(backoff):
			case <-ctx.Done():
				return "", ctx.Err()
			}
		}

		reply, err := op(ctx)
		if err == nil {
			return reply, nil
		}
		lastErr = err
	}
	return "", lastErr
}
