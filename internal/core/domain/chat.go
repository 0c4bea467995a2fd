package domain

import (
	"time"
)

// Provider identities used for routing decisions and metric labels.
const (
	ProviderTask        = "task"
	ProviderOpenAI      = "openai"
	ProviderHuggingFace = "huggingface"
	ProviderClaude      = "claude"
)

// ChatReply represents the relay's answer to a chat request
type ChatReply struct {
	Reply string `json:"reply"`
}

// BreakerState is a snapshot of one provider's circuit-breaker state.
// OpenUntil at the zero value means the breaker is closed.
type BreakerState struct {
	Failures    []time.Time
	OpenUntil   time.Time
	OpenedCount int
}

// IsOpen reports whether the breaker is open at the given instant
func (s BreakerState) IsOpen(now time.Time) bool {
	return now.Before(s.OpenUntil)
}
