package tools

import (
	"context"

	"datachat/internal/llm"
)

// Tool is the single capability exposed to the model in a conversation.
// Implementations must be thread-safe and respect context cancellation.
type Tool interface {
	// Describe returns the tool declaration sent to the model. It is a pure
	// transformation of the tool's metadata: unchanged metadata yields an
	// identical descriptor.
	Describe() llm.ToolDescriptor

	// Execute runs the tool with the parameters supplied by the model and
	// returns a model-readable text payload. Validation failures wrap
	// ErrInvalidInput; upstream failures wrap ErrUnavailable.
	Execute(ctx context.Context, input map[string]any) (string, error)
}
