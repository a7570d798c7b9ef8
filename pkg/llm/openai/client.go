// Package openai provides an llm.Client backed by the OpenAI chat completions
// API or any server compatible with it.
package openai

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"strconv"
	"time"

	"github.com/openai/openai-go"
	"github.com/openai/openai-go/option"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/metric"
	"go.uber.org/zap"

	"github.com/sonnq3591/plg-hsdt/pkg/llm"
	"github.com/sonnq3591/plg-hsdt/pkg/logger"
	"github.com/sonnq3591/plg-hsdt/pkg/metrics"
	"github.com/sonnq3591/plg-hsdt/pkg/serrors"
)

// DefaultModel is used when Options.Model is empty.
const DefaultModel = "gpt-4o"

// Options configures the client.
type Options struct {
	APIKey string
	// BaseURL overrides the API endpoint, e.g. for a compatible gateway.
	BaseURL    string
	Model      string
	Timeout    time.Duration
	MaxRetries int
}

// Client implements llm.Client with github.com/openai/openai-go. It is safe
// for concurrent use.
type Client struct {
	api     openai.Client
	model   string
	metrics *metrics.Instruments
}

// New builds a Client. An API key is required.
func New(opts Options) (*Client, error) {
	if opts.APIKey == "" {
		return nil, serrors.With(serrors.ErrBadRequest, "OPENAI_API_KEY is not set")
	}
	if opts.Model == "" {
		opts.Model = DefaultModel
	}

	reqOpts := []option.RequestOption{
		option.WithAPIKey(opts.APIKey),
		option.WithMaxRetries(opts.MaxRetries),
	}
	if opts.BaseURL != "" {
		reqOpts = append(reqOpts, option.WithBaseURL(opts.BaseURL))
	}
	if opts.Timeout > 0 {
		reqOpts = append(reqOpts, option.WithRequestTimeout(opts.Timeout))
	}

	return &Client{
		api:     openai.NewClient(reqOpts...),
		model:   opts.Model,
		metrics: metrics.Default(),
	}, nil
}

// Model returns the configured model name.
func (c *Client) Model() string { return c.model }

// Complete implements llm.Client. The temperature is always 0.
func (c *Client) Complete(ctx context.Context, req llm.Request) (string, error) {
	start := time.Now()

	params := openai.ChatCompletionNewParams{
		Model: openai.ChatModel(c.model),
		Messages: []openai.ChatCompletionMessageParamUnion{
			openai.SystemMessage(req.System),
			openai.UserMessage(req.User),
		},
		Temperature: openai.Float(0),
	}
	if req.MaxTokens > 0 {
		params.MaxTokens = openai.Int(int64(req.MaxTokens))
	}

	resp, err := c.api.Chat.Completions.New(ctx, params)
	c.metrics.LLMLatency.Record(ctx, time.Since(start).Seconds(),
		metric.WithAttributes(attribute.String("prompt", req.Name)))
	if err != nil {
		err = mapError(err)
		c.record(ctx, req.Name, outcome(err))

		return "", err
	}

	c.record(ctx, req.Name, "ok")
	c.metrics.LLMTokens.Add(ctx, resp.Usage.PromptTokens,
		metric.WithAttributes(attribute.String("prompt", req.Name), attribute.String("kind", "prompt")))
	c.metrics.LLMTokens.Add(ctx, resp.Usage.CompletionTokens,
		metric.WithAttributes(attribute.String("prompt", req.Name), attribute.String("kind", "completion")))

	if len(resp.Choices) == 0 {
		return "", serrors.With(serrors.ErrUnavailable, "model returned no choices")
	}

	logger.Debug(ctx, "llm completion",
		zap.String("prompt", req.Name),
		zap.Int64("promptTokens", resp.Usage.PromptTokens),
		zap.Int64("completionTokens", resp.Usage.CompletionTokens),
		zap.String("finishReason", string(resp.Choices[0].FinishReason)),
	)

	return resp.Choices[0].Message.Content, nil
}

func (c *Client) record(ctx context.Context, prompt, outcome string) {
	c.metrics.LLMRequests.Add(ctx, 1, metric.WithAttributes(
		attribute.String("prompt", prompt),
		attribute.String("outcome", outcome),
	))
}

func outcome(err error) string {
	var se *serrors.Error
	if errors.As(err, &se) && se.Kind() != nil {
		return se.Kind().Error()
	}

	return "error"
}

// mapError converts SDK errors into serrors kinds.
func mapError(err error) error {
	if errors.Is(err, context.Canceled) || errors.Is(err, context.DeadlineExceeded) {
		return serrors.Wrap(serrors.ErrTimeout, err, "model request interrupted")
	}

	var apiErr *openai.Error
	if !errors.As(err, &apiErr) {
		return serrors.Wrap(serrors.ErrUnavailable, err, "could not reach model")
	}

	switch code := apiErr.StatusCode; {
	case code == http.StatusTooManyRequests:
		var retryAfter time.Duration
		if apiErr.Response != nil {
			retryAfter = ParseRetryAfter(apiErr.Response.Header.Get("Retry-After"), time.Now())
		}

		return serrors.Wrap(serrors.ErrRateLimited, &llm.RateLimitError{RetryAfter: retryAfter}, "model rate limited")
	case code == http.StatusUnauthorized || code == http.StatusForbidden:
		return serrors.Wrap(serrors.ErrUnauthorized, err, "model rejected credentials")
	case code >= http.StatusInternalServerError:
		return serrors.Wrap(serrors.ErrUnavailable, err, "model unavailable")
	default:
		return fmt.Errorf("model request failed: %w", err)
	}
}

// ParseRetryAfter reads a Retry-After header given in seconds or as an HTTP
// date. Unparseable or past values yield zero.
func ParseRetryAfter(v string, now time.Time) time.Duration {
	if v == "" {
		return 0
	}
	if secs, err := strconv.Atoi(v); err == nil {
		return time.Duration(max(secs, 0)) * time.Second
	}
	if at, err := http.ParseTime(v); err == nil && at.After(now) {
		return at.Sub(now)
	}

	return 0
}

var _ llm.Client = (*Client)(nil)
