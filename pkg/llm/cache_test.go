package llm_test

import (
	"context"
	"errors"
	"os"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"

	"github.com/sonnq3591/plg-hsdt/pkg/llm"
	mockllm "github.com/sonnq3591/plg-hsdt/pkg/llm/mock"
	"github.com/sonnq3591/plg-hsdt/pkg/logger"
)

func TestMain(m *testing.M) {
	logger.Setup(logger.DevelopmentEnvironment)
	os.Exit(m.Run())
}

// memCache is an in-memory llm.Cache.
type memCache struct {
	data map[string]string
	err  error
}

func (c *memCache) Get(_ context.Context, key string) (string, bool, error) {
	if c.err != nil {
		return "", false, c.err
	}
	v, ok := c.data[key]

	return v, ok, nil
}

func (c *memCache) Set(_ context.Context, key, value string, _ time.Duration) error {
	if c.err != nil {
		return c.err
	}
	c.data[key] = value

	return nil
}

var req = llm.Request{Name: "tender_name", System: "s", User: "u", MaxTokens: 300} //nolint: gochecknoglobals

func TestCached_MissThenHit(t *testing.T) {
	ctrl := gomock.NewController(t)
	next := mockllm.NewMockClient(ctrl)
	cache := &memCache{data: map[string]string{}}

	next.EXPECT().Complete(gomock.Any(), req).Return("Gói thầu A", nil).Times(1)

	c := llm.NewCached(next, cache, "gpt-4o", time.Hour)
	for range 2 {
		out, err := c.Complete(context.Background(), req)
		require.NoError(t, err)
		require.Equal(t, "Gói thầu A", out)
	}
}

func TestCached_DoesNotCacheEmptyOrErrors(t *testing.T) {
	ctrl := gomock.NewController(t)
	next := mockllm.NewMockClient(ctrl)
	cache := &memCache{data: map[string]string{}}
	boom := errors.New("boom")

	gomock.InOrder(
		next.EXPECT().Complete(gomock.Any(), req).Return("", boom),
		next.EXPECT().Complete(gomock.Any(), req).Return("", nil),
	)

	c := llm.NewCached(next, cache, "gpt-4o", time.Hour)
	_, err := c.Complete(context.Background(), req)
	require.ErrorIs(t, err, boom)
	_, err = c.Complete(context.Background(), req)
	require.NoError(t, err)
	require.Empty(t, cache.data)
}

func TestCached_CacheFailureBypassed(t *testing.T) {
	ctrl := gomock.NewController(t)
	next := mockllm.NewMockClient(ctrl)
	cache := mockllm.NewMockCache(ctrl)

	cache.EXPECT().Get(gomock.Any(), gomock.Any()).Return("", false, errors.New("conn refused"))
	next.EXPECT().Complete(gomock.Any(), req).Return("21", nil)
	cache.EXPECT().Set(gomock.Any(), gomock.Any(), "21", time.Minute).Return(errors.New("conn refused"))

	out, err := llm.NewCached(next, cache, "gpt-4o", time.Minute).Complete(context.Background(), req)
	require.NoError(t, err)
	require.Equal(t, "21", out)
}

func TestCacheKey(t *testing.T) {
	a := llm.CacheKey("gpt-4o", req)
	require.Equal(t, a, llm.CacheKey("gpt-4o", req))
	require.NotEqual(t, a, llm.CacheKey("gpt-4o-mini", req))

	other := req
	other.MaxTokens = 301
	require.NotEqual(t, a, llm.CacheKey("gpt-4o", other))

	// field boundaries are part of the key
	x := llm.Request{System: "ab", User: "c"}
	y := llm.Request{System: "a", User: "bc"}
	require.NotEqual(t, llm.CacheKey("m", x), llm.CacheKey("m", y))
}
