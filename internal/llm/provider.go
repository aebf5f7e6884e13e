package llm

import "context"

// Provider generates model responses for a conversation. Implementations
// translate between the neutral request/response types and a specific
// vendor SDK.
type Provider interface {
	// Name returns the provider name, e.g. "anthropic".
	Name() string

	// Generate sends the conversation and tool declarations to the model
	// and returns its reply. The call blocks for the duration of the
	// network round-trip; cancellation is controlled by ctx.
	Generate(ctx context.Context, req *GenerateRequest) (*GenerateResponse, error)
}
