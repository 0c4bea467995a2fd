package ports

import (
	"context"
)

// ChatPort is the primary port exposed to inbound adapters. Chat never
// returns an error: provider outages degrade to the deterministic responder
// inside the router, so the HTTP layer always has a reply to send.
type ChatPort interface {
	// Chat routes a user message through the provider tiers and returns a reply
	Chat(ctx context.Context, message string) string

	// Respond answers from the deterministic responder only, no providers
	Respond(message string) string
}
