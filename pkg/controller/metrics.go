package controller

import (
	"net/http"
	"strconv"
	"time"

	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/metric"
)

const meterName = "github.com/sonnq3591/plg-hsdt/pkg/controller"

// RouteFunc names the route that served a request, e.g. "/v1/fills/{id}".
// It is called after the handler returns.
type RouteFunc func(r *http.Request) string

// WithMetrics returns a middleware that records the count and latency of
// requests on mp, labelled by method, route and status code. Requests
// without a route are recorded as "unmatched".
func WithMetrics(mp metric.MeterProvider, route RouteFunc) (func(http.Handler) http.Handler, error) {
	meter := mp.Meter(meterName)

	duration, err := meter.Float64Histogram("http.server.request.duration",
		metric.WithUnit("s"),
		metric.WithDescription("Duration of HTTP server requests."))
	if err != nil {
		return nil, err //nolint: wrapcheck
	}

	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			start := time.Now()
			rec := &statusRecorder{ResponseWriter: w, status: http.StatusOK}

			next.ServeHTTP(rec, r)

			name := ""
			if route != nil {
				name = route(r)
			}
			if name == "" {
				name = "unmatched"
			}

			duration.Record(r.Context(), time.Since(start).Seconds(), metric.WithAttributes(
				attribute.String("http.request.method", r.Method),
				attribute.String("http.route", name),
				attribute.String("http.response.status_code", strconv.Itoa(rec.status)),
			))
		})
	}, nil
}
