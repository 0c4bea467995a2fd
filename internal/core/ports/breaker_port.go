package ports

import (
	"context"
	"time"

	"github.com/vibin/chat-relay/internal/core/domain"
)

// BreakerStore tracks recent failures for a guarded provider and decides
// open/closed state. The store owns all mutation; the router only queries
// IsOpen and reports outcomes. State transitions are lazy: the breaker
// closes again once the cooldown deadline passes, with no explicit reset.
type BreakerStore interface {
	// IsOpen reports whether the breaker is currently short-circuiting
	IsOpen(ctx context.Context) (bool, error)

	// RecordFailure appends a failure at now, prunes events older than
	// window, and opens the breaker for cooldown once the count within the
	// window reaches threshold. It returns the resulting state snapshot.
	RecordFailure(ctx context.Context, now time.Time, window time.Duration, threshold int, cooldown time.Duration) (domain.BreakerState, error)

	// Prune removes failures older than window without recording a new one
	// and returns the remaining count.
	Prune(ctx context.Context, window time.Duration) (int, error)

	// State returns a snapshot for metrics and introspection
	State(ctx context.Context) (domain.BreakerState, error)
}
