package services

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestComputeResponse_Greeting(t *testing.T) {
	for _, msg := range []string{"hello", "Hello there", "HI", "oh hi mark", "say hello"} {
		assert.Equal(t, GreetingReply, ComputeResponse(msg), "message: %q", msg)
	}
}

func TestComputeResponse_Booking(t *testing.T) {
	assert.Equal(t, BookingReply, ComputeResponse("I want to book a table"))
	assert.Equal(t, BookingReply, ComputeResponse("BOOK me in"))
}

func TestComputeResponse_Help(t *testing.T) {
	assert.Equal(t, HelpReply, ComputeResponse("I need help"))
	assert.Equal(t, HelpReply, ComputeResponse("HELP!"))
}

func TestComputeResponse_Pricing(t *testing.T) {
	assert.Equal(t, PricingReply, ComputeResponse("what is the price"))
	assert.Equal(t, PricingReply, ComputeResponse("how much does it cost"))
}

func TestComputeResponse_Fallback(t *testing.T) {
	reply := ComputeResponse("quantum entanglement")
	assert.Equal(t, FallbackReply, reply)
	assert.Contains(t, reply, "not sure I understand")
}

func TestComputeResponse_Precedence(t *testing.T) {
	// greeting wins over booking when both keywords are present
	assert.Equal(t, GreetingReply, ComputeResponse("hello, I want to book"))
	// booking wins over help
	assert.Equal(t, BookingReply, ComputeResponse("book help"))
}

func TestComputeResponse_Totality(t *testing.T) {
	for _, msg := range []string{"", "   ", "\n", strings.Repeat("x", 10000)} {
		assert.NotEmpty(t, ComputeResponse(msg))
	}
}
