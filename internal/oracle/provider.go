package oracle

import "context"

// Provider is a single request/response exchange with a scoring service:
// it takes a prompt and returns the model's free-text content.
type Provider interface {
	Name() string
	Complete(ctx context.Context, prompt string) (string, error)
}
