package ports

import (
	"context"
)

// ProviderPort defines the interface for a language-model provider adapter.
// Adapters own their own retries and network handling; the router treats a
// provider as an opaque call that either returns a reply or fails.
type ProviderPort interface {
	// Respond generates a reply for a single user message
	Respond(ctx context.Context, message string) (string, error)

	// Name returns the provider identity used for routing and metric labels
	Name() string

	// Model returns the configured model identity used for metric labels
	Model() string
}
