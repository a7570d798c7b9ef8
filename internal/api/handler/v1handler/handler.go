package v1handler

import (
	"context"
	"encoding/json"
	"errors"
	"math"
	"net/http"
	"strconv"
	"time"

	"go.uber.org/zap"

	"github.com/sonnq3591/plg-hsdt/internal/config"
	"github.com/sonnq3591/plg-hsdt/internal/filler"
	"github.com/sonnq3591/plg-hsdt/pkg/llm"
	"github.com/sonnq3591/plg-hsdt/pkg/logger"
	"github.com/sonnq3591/plg-hsdt/pkg/serrors"
)

// Deps are the services the handlers call into.
type Deps struct {
	Filler filler.Filler
}

// Options configure request handling.
type Options struct {
	// MaxUploadBytes limits the body of upload requests; zero means no limit.
	MaxUploadBytes int64
}

// NewOptions constructs an Options value from the provided application config.
func NewOptions(cfg *config.Config) Options {
	return Options{MaxUploadBytes: cfg.HTTP.MaxUploadBytes}
}

type Handler struct {
	deps Deps
	opts Options
}

func New(deps Deps, opts Options) *Handler {
	return &Handler{deps: deps, opts: opts}
}

// ErrorResponse is the body of every failed /v1 request.
type ErrorResponse struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}

// ErrorStatus pairs an ErrorResponse with its HTTP status code.
type ErrorStatus struct {
	StatusCode int
	Response   ErrorResponse
	// RetryAfter is set when the model provider told us how long to back off.
	RetryAfter time.Duration
}

// NewError maps err to a status code and a client safe body. Messages of
// internal errors are logged but never returned.
func (h Handler) NewError(ctx context.Context, err error) *ErrorStatus {
	kind := serrors.KindOf(err)
	msg := serrors.MessageOf(err)

	status, fallback := statusOf(kind)
	if status == http.StatusInternalServerError {
		logger.Error(ctx, "request failed", zap.Error(err))
		msg = ""
	} else {
		logger.Debug(ctx, "request rejected", zap.Error(err))
	}
	if msg == "" {
		msg = fallback
	}

	res := &ErrorStatus{
		StatusCode: status,
		Response:   ErrorResponse{Code: kind.Error(), Message: msg},
	}
	var rl *llm.RateLimitError
	if kind == serrors.ErrRateLimited && errors.As(err, &rl) {
		res.RetryAfter = rl.RetryAfter
	}

	return res
}

func statusOf(kind serrors.Kind) (int, string) {
	switch kind {
	case serrors.ErrNotFound:
		return http.StatusNotFound, "resource not found"
	case serrors.ErrUnauthorized:
		return http.StatusUnauthorized, "unauthorized"
	case serrors.ErrForbidden:
		return http.StatusForbidden, "forbidden"
	case serrors.ErrBadRequest:
		return http.StatusBadRequest, "bad request"
	case serrors.ErrConflict:
		return http.StatusConflict, "conflict"
	case serrors.ErrUnprocessable:
		return http.StatusUnprocessableEntity, "document cannot be processed"
	case serrors.ErrTimeout:
		return http.StatusGatewayTimeout, "timed out"
	case serrors.ErrUnavailable:
		return http.StatusServiceUnavailable, "service unavailable"
	case serrors.ErrRateLimited:
		return http.StatusTooManyRequests, "too many requests"
	default:
		return http.StatusInternalServerError, "internal error"
	}
}

// WriteError writes err as an ErrorResponse.
func (h Handler) WriteError(w http.ResponseWriter, r *http.Request, err error) {
	res := h.NewError(r.Context(), err)
	if res.RetryAfter > 0 {
		w.Header().Set("Retry-After", strconv.Itoa(int(math.Ceil(res.RetryAfter.Seconds()))))
	}
	writeJSON(r.Context(), w, res.StatusCode, res.Response)
}

func writeJSON(ctx context.Context, w http.ResponseWriter, status int, body any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(body); err != nil {
		logger.Warn(ctx, "could not write response", zap.Error(err))
	}
}
