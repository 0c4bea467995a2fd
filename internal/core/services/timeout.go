package services

import (
	"context"
	"errors"
	"time"
)

// ErrAdapterTimeout is returned when a provider call exceeds its deadline.
// The router treats it like any other adapter failure.
var ErrAdapterTimeout = errors.New("adapter timeout")

type callResult struct {
	value string
	err   error
}

// callWithTimeout races op against a hard deadline. The op receives a
// context that is cancelled when the deadline elapses, so adapters that
// honor cancellation abort early. Settlement is at-most-once: if the
// deadline wins, the late completion lands in a buffered channel nobody
// reads and is discarded — it can never reach the breaker or metrics,
// which are updated by the caller after this function returns.
func callWithTimeout(ctx context.Context, timeout time.Duration, op func(context.Context) (string, error)) (string, error) {
	callCtx, cancel := context.WithTimeout(ctx, timeout)
	defer cancel()

	done := make(chan callResult, 1)
	go func() {
		value, err := op(callCtx)
		done <- callResult{value: value, err: err}
	}()

	select {
	case res := <-done:
		// an op that honors cancellation reports the deadline itself;
		// normalize so callers see one timeout error either way
		if res.err != nil && errors.Is(res.err, context.DeadlineExceeded) && ctx.Err() == nil {
			return "", ErrAdapterTimeout
		}
		return res.value, res.err
	case <-callCtx.Done():
		if ctx.Err() != nil {
			return "", ctx.Err()
		}
		return "", ErrAdapterTimeout
	}
}
