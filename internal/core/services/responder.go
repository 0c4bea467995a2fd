package services

import (
	"strings"
)

// Canned replies for the deterministic responder. FallbackReply is a
// contract: other layers detect fallback engagement by matching it.
const (
	GreetingReply = "Hi there! How can I help you today?"
	BookingReply  = "Sure! I can help you make a booking. What date do you want?"
	HelpReply     = "Tell me what you need help with."
	PricingReply  = "Pricing depends on your requirements. Can you tell me more?"
	FallbackReply = "I am not sure I understand. Can you please rephrase?"
)

// ComputeResponse maps a message to a canned reply using fixed keyword rules.
// It is total: any input, including the empty string, yields a reply. Rules
// are evaluated in precedence order with a case-insensitive substring test.
func ComputeResponse(message string) string {
	msg := strings.ToLower(message)

	if strings.Contains(msg, "hello") || strings.Contains(msg, "hi") {
		return GreetingReply
	}
	if strings.Contains(msg, "book") {
		return BookingReply
	}
	if strings.Contains(msg, "help") {
		return HelpReply
	}
	if strings.Contains(msg, "price") || strings.Contains(msg, "cost") {
		return PricingReply
	}

	return FallbackReply
}
