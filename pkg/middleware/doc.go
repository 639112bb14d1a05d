// Package middleware provides observability for the a11ydemo server.
//
// This package includes:
//   - Prometheus metrics for HTTP requests and live session activity
//   - OpenTelemetry tracing for HTTP requests and live session events
//
// # Prometheus Metrics
//
// Metrics owns its registry, so several servers (and tests) can run in one
// process without duplicate registration panics:
//
//	metrics := middleware.NewMetrics()
//	r := chi.NewRouter()
//	r.Use(metrics.Instrument)
//	r.Handle("/metrics", metrics.Handler())
//
// The server reports navigations, announcements, focus trap transitions
// and session counts through the Record methods:
//   - a11ydemo_navigations_total{result="not_found"} counts unknown paths
//   - a11ydemo_announcements_total{kind="clear"} counts live region clears
//   - a11ydemo_focus_errors_total{code="A202"} counts restore fallbacks
//
// # OpenTelemetry Tracing
//
//	tracer := middleware.NewTracer(
//	    middleware.WithRequestFilter(func(r *http.Request) bool {
//	        return r.URL.Path != "/healthz"
//	    }),
//	)
//	r.Use(tracer.HTTP)
//
// Live events get their own spans through StartEvent and EndSpan, tagged
// with the session ID and frame type.
package middleware
