// Package controller holds the net/http middlewares shared by the API server:
// request ids with an access log (WithLogger), CORS for the browser client
// (WithCORS), per route latency (WithMetrics) and the profiling mux
// (PprofMux).
package controller
