package controller_test

import (
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"go.uber.org/zap/zaptest/observer"

	"github.com/sonnq3591/plg-hsdt/pkg/controller"
	"github.com/sonnq3591/plg-hsdt/pkg/logger"
)

func TestGetClientIP(t *testing.T) {
	tests := []struct {
		name    string
		headers map[string]string
		remote  string
		want    string
	}{
		{"forwarded for", map[string]string{"X-Forwarded-For": "1.2.3.4, 5.6.7.8"}, "10.0.0.1:1", "1.2.3.4"},
		{"real ip", map[string]string{"X-Real-IP": "9.8.7.6"}, "10.0.0.1:1", "9.8.7.6"},
		{"remote addr", nil, "10.0.0.1:12345", "10.0.0.1"},
		{"unparsable remote addr", nil, "not-an-addr", "not-an-addr"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := httptest.NewRequest(http.MethodGet, "/", nil)
			req.RemoteAddr = tt.remote
			for k, v := range tt.headers {
				req.Header.Set(k, v)
			}
			require.Equal(t, tt.want, controller.GetClientIP(req))
		})
	}
}

// observe routes the logger middleware's output into an observer by seeding
// the request context with a logger.
func observe(t *testing.T, h http.Handler, req *http.Request) (*httptest.ResponseRecorder, *observer.ObservedLogs) {
	t.Helper()

	core, logs := observer.New(zap.DebugLevel)
	req = req.WithContext(logger.WithLogger(req.Context(), zap.New(core)))
	rec := httptest.NewRecorder()
	controller.WithLogger(h).ServeHTTP(rec, req)

	return rec, logs
}

func TestWithLogger_RequestID(t *testing.T) {
	var seen string
	next := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		seen = controller.RequestID(r.Context())
		w.WriteHeader(http.StatusCreated)
	})

	t.Run("caller supplied", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodPost, "/v1/fills", nil)
		req.Header.Set(controller.RequestIDHeader, "abc-123")

		rec, logs := observe(t, next, req)
		require.Equal(t, http.StatusCreated, rec.Code)
		require.Equal(t, "abc-123", seen)
		require.Equal(t, "abc-123", rec.Header().Get(controller.RequestIDHeader))
		require.Equal(t, "abc-123", logs.All()[0].ContextMap()["requestId"])
	})

	for name, bad := range map[string]string{
		"missing":   "",
		"too long":  strings.Repeat("a", 200),
		"non ascii": "id\nforged log line",
	} {
		t.Run(name, func(t *testing.T) {
			req := httptest.NewRequest(http.MethodGet, "/", nil)
			if bad != "" {
				req.Header[controller.RequestIDHeader] = []string{bad}
			}

			rec, _ := observe(t, next, req)
			require.NotEmpty(t, seen)
			require.NotEqual(t, bad, seen)
			require.Equal(t, seen, rec.Header().Get(controller.RequestIDHeader))
		})
	}
}

func TestWithLogger_AccessLog(t *testing.T) {
	tests := []struct {
		name   string
		status int
		body   string
		level  zapcore.Level
	}{
		{"implicit ok", 0, "filled", zapcore.InfoLevel},
		{"client error", http.StatusConflict, `{"code":"CONFLICT"}`, zapcore.WarnLevel},
		{"server error", http.StatusBadGateway, "", zapcore.ErrorLevel},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			next := http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
				if tt.status != 0 {
					w.WriteHeader(tt.status)
				}
				_, _ = w.Write([]byte(tt.body))
			})

			req := httptest.NewRequest(http.MethodGet, "/v1/fills/1/output?x=1", nil)
			_, logs := observe(t, next, req)

			entries := logs.FilterMessage("access log").All()
			require.Len(t, entries, 1)
			e := entries[0]
			require.Equal(t, tt.level, e.Level)

			want := tt.status
			if want == 0 {
				want = http.StatusOK
			}
			fields := e.ContextMap()
			require.EqualValues(t, want, fields["status"])
			require.EqualValues(t, len(tt.body), fields["bytes"])
			require.Equal(t, "/v1/fills/1/output", fields["path"])
			require.Equal(t, http.MethodGet, fields["method"])
		})
	}
}

func TestRequestID_Empty(t *testing.T) {
	require.Empty(t, controller.RequestID(context.Background()))
}
