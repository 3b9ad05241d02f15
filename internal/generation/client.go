package generation

import "context"

// CompletionRequest carries one completion call to a provider client.
type CompletionRequest struct {
	// Model is the provider-specific model name, e.g. "gpt-4o".
	Model string

	// SystemInstruction is the system message sent ahead of the prompt.
	SystemInstruction string

	// Prompt is the rendered consultation prompt (the user message).
	Prompt string

	// Temperature is the sampling temperature.
	Temperature float64

	// MaxTokens bounds the completion length.
	MaxTokens int
}

// CompletionClient sends a prompt to a language model and returns the raw
// completion text. Implementations classify failures into the sentinel
// errors in this package (ErrAuth, ErrRateLimited, ErrTransient, ErrModel)
// and perform no retries of their own; retry policy is layered on with
// WithRetry.
type CompletionClient interface {
	Complete(ctx context.Context, req CompletionRequest) (string, error)
}

// CompletionFunc adapts a function to the CompletionClient interface,
// mainly for test doubles.
type CompletionFunc func(ctx context.Context, req CompletionRequest) (string, error)

func (f CompletionFunc) Complete(ctx context.Context, req CompletionRequest) (string, error) {
	return f(ctx, req)
}
