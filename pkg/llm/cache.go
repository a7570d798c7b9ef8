package llm

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"strconv"
	"time"

	"go.uber.org/zap"

	"github.com/sonnq3591/plg-hsdt/pkg/logger"
)

// Cached serves repeated requests from a Cache. Cache failures are logged and
// the request goes to the wrapped client.
type Cached struct {
	next  Client
	cache Cache
	model string
	ttl   time.Duration
}

// NewCached wraps next. model is part of the key so that switching models
// never serves stale answers.
func NewCached(next Client, cache Cache, model string, ttl time.Duration) *Cached {
	return &Cached{next: next, cache: cache, model: model, ttl: ttl}
}

// CacheKey derives the cache key of req for model.
func CacheKey(model string, req Request) string {
	h := sha256.New()
	for _, part := range []string{model, req.System, req.User, strconv.Itoa(req.MaxTokens)} {
		h.Write([]byte(strconv.Itoa(len(part))))
		h.Write([]byte{':'})
		h.Write([]byte(part))
	}

	return "hsdt:llm:" + hex.EncodeToString(h.Sum(nil))
}

// Complete implements Client.
func (c *Cached) Complete(ctx context.Context, req Request) (string, error) {
	key := CacheKey(c.model, req)

	v, ok, err := c.cache.Get(ctx, key)
	switch {
	case err != nil:
		logger.Warn(ctx, "llm cache read failed", zap.String("prompt", req.Name), zap.Error(err))
	case ok:
		logger.Debug(ctx, "llm cache hit", zap.String("prompt", req.Name))

		return v, nil
	}

	out, err := c.next.Complete(ctx, req)
	if err != nil {
		return "", err
	}
	// empty answers are not cached
	if out != "" {
		if err := c.cache.Set(ctx, key, out, c.ttl); err != nil {
			logger.Warn(ctx, "llm cache write failed", zap.String("prompt", req.Name), zap.Error(err))
		}
	}

	return out, nil
}

var _ Client = (*Cached)(nil)
