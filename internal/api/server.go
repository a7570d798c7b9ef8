// Package api configures and exposes the HTTP server, routes,
// metrics, docs and related middleware for the document filling service.
package api

import (
	_ "embed"
	"fmt"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/swaggest/swgui/v5emb"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/metric"

	"github.com/sonnq3591/plg-hsdt/internal/api/handler/v1handler"
	"github.com/sonnq3591/plg-hsdt/internal/config"
	"github.com/sonnq3591/plg-hsdt/pkg/controller"
	"github.com/sonnq3591/plg-hsdt/pkg/serrors"
)

// v1Spec contains the embedded OpenAPI specification for version 1 of the API.
//
//go:embed specs/v1.yaml
var v1Spec []byte

const timeoutBody = `{"code":"TIMEOUT","message":"request timed out"}`

// Options holds configuration for the HTTP server and its dependencies.
// It is typically created from a config.Config via NewOptions.
// All durations are used to configure server timeouts, and zero values
// should be considered as using the defaults provided by net/http where applicable.
type Options struct {
	// SecHandlerOptions configures bearer authentication for the API endpoints.
	SecHandlerOptions *v1handler.SecHandlerOptions
	// HandlerOptions configures request handling such as upload limits.
	HandlerOptions v1handler.Options

	// Addr is the TCP address the server listens on, e.g. ":8000".
	Addr string
	// ReadTimeout is the maximum duration for reading the entire request, including the body.
	ReadTimeout time.Duration
	// ReadHeaderTimeout is the amount of time allowed to read request headers.
	ReadHeaderTimeout time.Duration
	// WriteTimeout is the maximum duration before timing out writes of the response.
	WriteTimeout time.Duration
	// IdleTimeout is the maximum amount of time to wait for the next request when keep-alives are enabled.
	IdleTimeout time.Duration
	// RequestTimeout is applied via http.TimeoutHandler to every route but the synchronous fill.
	RequestTimeout time.Duration
	// FillTimeout is applied via http.TimeoutHandler to the synchronous fill routes.
	FillTimeout time.Duration
	// MaxHeaderBytes controls the maximum number of bytes the server
	// will read parsing the request header's keys and values, including the request line.
	MaxHeaderBytes int
	// MetricsPath is the HTTP path at which Prometheus metrics are served.
	MetricsPath string
	// CORSOrigins lists the browser origins allowed to call the API; empty allows any.
	CORSOrigins []string
}

// NewOptions constructs an Options value from the provided application configuration.
// It maps HTTP server-related settings from config.Config to the Options used by the API server.
func NewOptions(cfg *config.Config) Options {
	return Options{
		SecHandlerOptions: v1handler.NewSecHandlerOptions(cfg),
		HandlerOptions:    v1handler.NewOptions(cfg),

		Addr:              cfg.HTTP.Addr,
		ReadTimeout:       cfg.HTTP.ReadTimeout,
		ReadHeaderTimeout: cfg.HTTP.ReadHeaderTimeout,
		WriteTimeout:      cfg.HTTP.WriteTimeout,
		IdleTimeout:       cfg.HTTP.IdleTimeout,
		RequestTimeout:    cfg.HTTP.RequestTimeout,
		FillTimeout:       cfg.HTTP.FillTimeout,
		MaxHeaderBytes:    cfg.HTTP.MaxHeaderBytes,
		MetricsPath:       cfg.HTTP.MetricsPath,
		CORSOrigins:       cfg.HTTP.CORSOrigins,
	}
}

type Deps struct {
	v1handler.Deps

	// MeterProvider receives the HTTP metrics; the global provider is used when nil.
	MeterProvider metric.MeterProvider
}

func withTimeout(d time.Duration) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		if d <= 0 {
			return next
		}

		return http.TimeoutHandler(next, d, timeoutBody)
	}
}

func routePattern(r *http.Request) string {
	if rctx := chi.RouteContext(r.Context()); rctx != nil {
		return rctx.RoutePattern()
	}

	return ""
}

// NewHandler builds the routing tree:
// - Prometheus metrics endpoint (MetricsPath)
// - Embedded OpenAPI v1 spec and Swagger UI
// - the original /api routes and the /v1 API
// - pprof endpoints for profiling
// It also wraps the router with CORS and logging middlewares.
func NewHandler(deps Deps, opts Options) (http.Handler, error) {
	mp := deps.MeterProvider
	if mp == nil {
		mp = otel.GetMeterProvider()
	}
	withMetrics, err := controller.WithMetrics(mp, routePattern)
	if err != nil {
		return nil, fmt.Errorf("could not create http metrics: %w", err)
	}

	secHandler, err := v1handler.NewSecHandler(opts.SecHandlerOptions)
	if err != nil {
		return nil, fmt.Errorf("could not create sec handler: %w", err)
	}
	h := v1handler.New(deps.Deps, opts.HandlerOptions)

	r := chi.NewRouter()
	r.Use(withMetrics)
	r.NotFound(func(w http.ResponseWriter, r *http.Request) {
		h.WriteError(w, r, serrors.With(serrors.ErrNotFound, "route not found"))
	})
	r.MethodNotAllowed(func(w http.ResponseWriter, r *http.Request) {
		h.WriteError(w, r, serrors.With(serrors.ErrBadRequest, "method %s not allowed", r.Method))
	})

	// prometheus metrics server
	r.Handle(opts.MetricsPath, promhttp.Handler())

	// v1 specs file
	r.Get("/specs/v1.yaml", func(w http.ResponseWriter, _ *http.Request) {
		w.Header().Set("Content-Type", "application/yaml")
		_, _ = w.Write(v1Spec)
	})
	// v1 api swagger playground
	r.Handle("/v1/docs/*", v5emb.New(
		"Tender Document Filling Service",
		"/specs/v1.yaml",
		"/v1/docs/",
	))
	r.Get("/docs", http.RedirectHandler("/v1/docs/", http.StatusMovedPermanently).ServeHTTP)

	// pprof
	r.Mount(controller.PprofPrefix, controller.PprofMux())

	r.Group(func(r chi.Router) {
		r.Use(withTimeout(opts.RequestTimeout))

		r.Get("/", h.Root)
		r.Get("/api/health", h.Health)
		r.Get("/v1/health", h.Health)
		r.Get("/api/templates", h.Templates)
		r.Get("/v1/templates", h.Templates)

		r.Route("/v1/fills", func(r chi.Router) {
			r.Use(h.RequireAuth(secHandler))

			r.Post("/", h.CreateFill)
			r.Get("/", h.ListFills)
			r.Get("/{id}", h.GetFill)
			r.Delete("/{id}", h.DeleteFill)
			r.Get("/{id}/output", h.GetFillOutput)
			r.Get("/{id}/report", h.GetFillReport)
		})
	})

	r.Group(func(r chi.Router) {
		r.Use(withTimeout(opts.FillTimeout), h.RequireAuth(secHandler))

		r.Post("/api/process-document", h.ProcessDocument)
		r.Post("/v1/documents/fill", h.ProcessDocument)
	})

	return controller.WithLogger(controller.WithCORS(opts.CORSOrigins...)(r)), nil
}

// NewServer wires up and returns a configured *http.Server using the provided Options.
func NewServer(deps Deps, opts Options) (*http.Server, error) {
	handler, err := NewHandler(deps, opts)
	if err != nil {
		return nil, err
	}

	return &http.Server{
		Addr:              opts.Addr,
		Handler:           handler,
		ReadTimeout:       opts.ReadTimeout,
		ReadHeaderTimeout: opts.ReadHeaderTimeout,
		WriteTimeout:      opts.WriteTimeout,
		IdleTimeout:       opts.IdleTimeout,
		MaxHeaderBytes:    opts.MaxHeaderBytes,
	}, nil
}
