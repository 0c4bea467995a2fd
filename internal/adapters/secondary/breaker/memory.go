package breaker

import (
	"context"
	"sync"
	"time"

	"github.com/vibin/chat-relay/internal/core/domain"
)

// MemoryStore is the in-process breaker backend. State lives in the struct,
// guarded by a mutex, and is lost on restart. Suitable for single-instance
// deployments and as the runtime fallback when the shared store errors.
type MemoryStore struct {
	mu          sync.Mutex
	failures    []time.Time
	openUntil   time.Time
	openedCount int
	now         func() time.Time
}

// NewMemoryStore creates an in-process breaker store
func NewMemoryStore() *MemoryStore {
	return NewMemoryStoreWithClock(time.Now)
}

// NewMemoryStoreWithClock creates an in-process breaker store with an
// injected clock. Tests use this to control open/close transitions.
func NewMemoryStoreWithClock(now func() time.Time) *MemoryStore {
	return &MemoryStore{now: now}
}

// IsOpen reports whether the breaker is currently short-circuiting.
// Recovery is lazy: once the cooldown deadline passes this starts returning
// false with no explicit reset.
func (s *MemoryStore) IsOpen(ctx context.Context) (bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.now().Before(s.openUntil), nil
}

// RecordFailure appends a failure, prunes the window and opens the breaker
// when the threshold is reached. The opened counter moves only on the
// transition into open, never on further failures while already open.
func (s *MemoryStore) RecordFailure(ctx context.Context, now time.Time, window time.Duration, threshold int, cooldown time.Duration) (domain.BreakerState, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.failures = append(s.failures, now)
	s.failures = pruneBefore(s.failures, now.Add(-window))

	if len(s.failures) >= threshold && !now.Before(s.openUntil) {
		s.openUntil = now.Add(cooldown)
		s.openedCount++
	}

	return s.snapshot(), nil
}

// Prune removes failures older than the window without recording a new one
func (s *MemoryStore) Prune(ctx context.Context, window time.Duration) (int, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.failures = pruneBefore(s.failures, s.now().Add(-window))
	return len(s.failures), nil
}

// State returns a snapshot of the breaker state
func (s *MemoryStore) State(ctx context.Context) (domain.BreakerState, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.snapshot(), nil
}

func (s *MemoryStore) snapshot() domain.BreakerState {
	failures := make([]time.Time, len(s.failures))
	copy(failures, s.failures)
	return domain.BreakerState{
		Failures:    failures,
		OpenUntil:   s.openUntil,
		OpenedCount: s.openedCount,
	}
}

// pruneBefore drops timestamps strictly older than cutoff, preserving order
func pruneBefore(ts []time.Time, cutoff time.Time) []time.Time {
	kept := ts[:0]
	for _, t := range ts {
		if !t.Before(cutoff) {
			kept = append(kept, t)
		}
	}
	return kept
}
