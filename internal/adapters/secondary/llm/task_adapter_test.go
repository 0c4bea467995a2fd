package llm

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/vibin/chat-relay/internal/core/domain"
)

func TestTaskAdapter_Calculation(t *testing.T) {
	a := NewTaskAdapter()

	reply, err := a.Respond(context.Background(), "calculate 2+2")

	require.NoError(t, err)
	assert.Contains(t, reply, "Calculated result")
}

func TestTaskAdapter_Booking(t *testing.T) {
	a := NewTaskAdapter()

	reply, err := a.Respond(context.Background(), "book a room for Friday")

	require.NoError(t, err)
	assert.Contains(t, reply, "booking request")
}

func TestTaskAdapter_Identity(t *testing.T) {
	a := NewTaskAdapter()

	assert.Equal(t, domain.ProviderTask, a.Name())
	assert.Equal(t, "default", a.Model())
}
