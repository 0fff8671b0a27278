package llm

import (
	"context"
	"errors"
	"fmt"
)

// Client abstracts the external completion service. Given a prompt it returns
// the raw completion text, which may contain prose around the JSON payload;
// interpreting it is the validator's job, not the client's.
type Client interface {
	Complete(ctx context.Context, prompt string) (string, error)
}

// ErrUnavailable wraps any transport or service failure from the completion
// provider. One best-effort call per request; callers do not retry.
var ErrUnavailable = errors.New("completion service unavailable")

// PlaceholderClient is a stub implementation used when no provider is configured.
type PlaceholderClient struct{}

// Complete always reports the service as unavailable.
func (PlaceholderClient) Complete(ctx context.Context, prompt string) (string, error) {
	_ = ctx
	_ = prompt
	return "", fmt.Errorf("%w: no completion client configured", ErrUnavailable)
}
