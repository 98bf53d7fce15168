package ai

import "context"

// maxOutputTokens caps every vendor call to bound latency and cost.
const maxOutputTokens = 500

// Provider translates a plain prompt into one vendor API call and returns
// the generated text. Failures are always one of HTTPError, APIError or
// MalformedError; vendor-specific payloads never leak past an adapter.
type Provider interface {
	Name() string
	Invoke(ctx context.Context, prompt string) (string, error)
}
