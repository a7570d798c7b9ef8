package llm

import (
	"context"
	"errors"
	"sync"
	"time"

	"golang.org/x/time/rate"
)

// Limited throttles requests with a token bucket shared by every caller.
// After a rate-limited answer it also holds back all requests until the
// provider's retry hint has passed.
type Limited struct {
	next    Client
	limiter *rate.Limiter

	mu      sync.Mutex
	retryAt time.Time
}

// NewLimited wraps next with a limit of rps requests per second and the given
// burst. A non-positive rps disables the token bucket.
func NewLimited(next Client, rps float64, burst int) *Limited {
	limit := rate.Limit(rps)
	if rps <= 0 {
		limit = rate.Inf
	}

	return &Limited{next: next, limiter: rate.NewLimiter(limit, max(burst, 1))}
}

// Complete implements Client.
func (l *Limited) Complete(ctx context.Context, req Request) (string, error) {
	if err := l.backoff(ctx); err != nil {
		return "", err
	}
	if err := l.limiter.Wait(ctx); err != nil {
		return "", err
	}

	out, err := l.next.Complete(ctx, req)

	var rl *RateLimitError
	if errors.As(err, &rl) && rl.RetryAfter > 0 {
		l.mu.Lock()
		if at := time.Now().Add(rl.RetryAfter); at.After(l.retryAt) {
			l.retryAt = at
		}
		l.mu.Unlock()
	}

	return out, err
}

func (l *Limited) backoff(ctx context.Context) error {
	l.mu.Lock()
	wait := time.Until(l.retryAt)
	l.mu.Unlock()

	if wait <= 0 {
		return nil
	}

	timer := time.NewTimer(wait)
	defer timer.Stop()

	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-timer.C:
		return nil
	}
}

var _ Client = (*Limited)(nil)
