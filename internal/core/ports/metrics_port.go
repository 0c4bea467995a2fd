package ports

import (
	"time"

	"github.com/vibin/chat-relay/internal/core/domain"
)

// MetricsPort is the hook point the router uses to publish breaker state
// and per-provider call outcomes. The concrete sink lives outside the core.
type MetricsPort interface {
	// ObserveBreaker updates the breaker gauges from a state snapshot
	ObserveBreaker(state domain.BreakerState, now time.Time, cooldown time.Duration)

	// ObserveAdapter records one provider call outcome
	ObserveAdapter(adapter, model string, elapsed time.Duration, err error)
}
