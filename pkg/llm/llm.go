// Package llm defines the chat-completion abstraction used to query a
// language model, plus decorators that add caching and rate limiting.
package llm

import (
	"context"
	"fmt"
	"time"
)

// Request is a single-turn chat completion.
type Request struct {
	// Name identifies the prompt for metrics and logs, e.g. "tender_name".
	Name      string
	System    string
	User      string
	MaxTokens int
}

// Client completes chat requests. Implementations return serrors kinds:
// RATE_LIMITED (with a *RateLimitError), UNAUTHORIZED and UNAVAILABLE.
//
//go:generate mockgen -package mockllm -source=llm.go -destination=mock/mockllm.go *
type Client interface {
	Complete(ctx context.Context, req Request) (string, error)
}

// Cache stores completions by key. A miss is reported with ok == false and a
// nil error.
type Cache interface {
	Get(ctx context.Context, key string) (value string, ok bool, err error)
	Set(ctx context.Context, key, value string, ttl time.Duration) error
}

// RateLimitError carries the provider's retry hint of a rate-limited call.
type RateLimitError struct {
	RetryAfter time.Duration
}

func (e *RateLimitError) Error() string {
	if e.RetryAfter <= 0 {
		return "rate limited"
	}

	return fmt.Sprintf("rate limited, retry after %s", e.RetryAfter)
}
