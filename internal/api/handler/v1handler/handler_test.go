package v1handler_test

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"os"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/sonnq3591/plg-hsdt/internal/api/handler/v1handler"
	"github.com/sonnq3591/plg-hsdt/pkg/llm"
	"github.com/sonnq3591/plg-hsdt/pkg/logger"
	"github.com/sonnq3591/plg-hsdt/pkg/serrors"
)

func TestMain(m *testing.M) {
	logger.Setup(logger.DevelopmentEnvironment)
	os.Exit(m.Run())
}

func TestNewError(t *testing.T) {
	tests := []struct {
		name    string
		err     error
		status  int
		code    string
		message string
	}{
		{"plain error", errors.New("boom"), http.StatusInternalServerError, "INTERNAL", "internal error"},
		{"bare kind", serrors.ErrNotFound, http.StatusNotFound, "NOT_FOUND", "resource not found"},
		{
			"message kept", serrors.With(serrors.ErrBadRequest, "missing file TBMT.pdf"),
			http.StatusBadRequest, "BAD_REQUEST", "missing file TBMT.pdf",
		},
		{
			"cause dropped", serrors.Wrap(serrors.ErrUnauthorized, errors.New("token is expired"), "invalid token"),
			http.StatusUnauthorized, "UNAUTHORIZED", "invalid token",
		},
		{"forbidden", serrors.KindOnly(serrors.ErrForbidden), http.StatusForbidden, "FORBIDDEN", "forbidden"},
		{
			"conflict", serrors.With(serrors.ErrConflict, "fill is RUNNING"),
			http.StatusConflict, "CONFLICT", "fill is RUNNING",
		},
		{
			"wrapped unprocessable",
			fmt.Errorf("could not run pipeline: %w", serrors.With(serrors.ErrUnprocessable, "could not determine the number of steps")),
			http.StatusUnprocessableEntity, "UNPROCESSABLE", "could not determine the number of steps",
		},
		{"timeout", serrors.KindOnly(serrors.ErrTimeout), http.StatusGatewayTimeout, "TIMEOUT", "timed out"},
		{"unavailable", serrors.KindOnly(serrors.ErrUnavailable), http.StatusServiceUnavailable, "UNAVAILABLE", "service unavailable"},
		{"rate limited", serrors.KindOnly(serrors.ErrRateLimited), http.StatusTooManyRequests, "RATE_LIMITED", "too many requests"},
		{
			"internal message hidden", serrors.With(serrors.ErrInternal, "db password is hunter2"),
			http.StatusInternalServerError, "INTERNAL", "internal error",
		},
	}

	h := v1handler.New(v1handler.Deps{}, v1handler.Options{})
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			res := h.NewError(context.Background(), tt.err)
			require.Equal(t, tt.status, res.StatusCode)
			require.Equal(t, tt.code, res.Response.Code)
			require.Equal(t, tt.message, res.Response.Message)
			require.Zero(t, res.RetryAfter)
		})
	}
}

func TestWriteError_RetryAfter(t *testing.T) {
	h := v1handler.New(v1handler.Deps{}, v1handler.Options{})
	err := fmt.Errorf("could not fill: %w", serrors.Wrap(serrors.ErrRateLimited,
		&llm.RateLimitError{RetryAfter: 1500 * time.Millisecond}, "model rate limited"))

	rec := httptest.NewRecorder()
	h.WriteError(rec, httptest.NewRequest(http.MethodPost, "/v1/documents/fill", nil), err)

	require.Equal(t, http.StatusTooManyRequests, rec.Code)
	require.Equal(t, "2", rec.Header().Get("Retry-After"))
	require.Equal(t, "application/json", rec.Header().Get("Content-Type"))

	body := decode[v1handler.ErrorResponse](t, rec)
	require.Equal(t, "RATE_LIMITED", body.Code)
	require.Equal(t, "model rate limited", body.Message)
}
