package middleware

import (
	"errors"
	"net/http"
	"strconv"
	"time"

	"github.com/go-chi/chi/v5"
	chimw "github.com/go-chi/chi/v5/middleware"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	apperrors "github.com/a11ylab/a11ydemo/internal/errors"
	"github.com/a11ylab/a11ydemo/pkg/announce"
	"github.com/a11ylab/a11ydemo/pkg/focus"
	"github.com/a11ylab/a11ydemo/pkg/router"
)

// MetricsConfig configures the Prometheus metrics.
type MetricsConfig struct {
	// Namespace is the metrics namespace (default: "a11ydemo").
	Namespace string

	// Subsystem is the metrics subsystem (default: "").
	Subsystem string

	// ConstLabels are constant labels added to all metrics.
	ConstLabels prometheus.Labels

	// Buckets are the histogram buckets for request and event duration.
	// Default: prometheus.DefBuckets
	Buckets []float64

	// Registry is the Prometheus registry metrics are registered with and
	// served from. Default: a new registry with the Go and process
	// collectors.
	Registry *prometheus.Registry
}

// MetricsOption configures the Prometheus metrics.
type MetricsOption func(*MetricsConfig)

// WithNamespace sets the metrics namespace.
func WithNamespace(namespace string) MetricsOption {
	return func(c *MetricsConfig) {
		c.Namespace = namespace
	}
}

// WithSubsystem sets the metrics subsystem.
func WithSubsystem(subsystem string) MetricsOption {
	return func(c *MetricsConfig) {
		c.Subsystem = subsystem
	}
}

// WithConstLabels sets constant labels for all metrics.
func WithConstLabels(labels prometheus.Labels) MetricsOption {
	return func(c *MetricsConfig) {
		c.ConstLabels = labels
	}
}

// WithBuckets sets the histogram buckets.
func WithBuckets(buckets []float64) MetricsOption {
	return func(c *MetricsConfig) {
		c.Buckets = buckets
	}
}

// WithRegistry sets the Prometheus registry.
func WithRegistry(registry *prometheus.Registry) MetricsOption {
	return func(c *MetricsConfig) {
		c.Registry = registry
	}
}

// defaultMetricsConfig returns the default metrics configuration.
func defaultMetricsConfig() MetricsConfig {
	return MetricsConfig{
		Namespace: "a11ydemo",
		Buckets:   prometheus.DefBuckets,
	}
}

// Metrics holds the Prometheus metrics of the server. It records HTTP
// requests through Instrument and live session activity through the
// Record methods, which the server calls from session event loops.
type Metrics struct {
	registry *prometheus.Registry

	httpRequests    *prometheus.CounterVec
	httpDuration    *prometheus.HistogramVec
	eventsTotal     *prometheus.CounterVec
	eventDuration   *prometheus.HistogramVec
	navigations     *prometheus.CounterVec
	announcements   *prometheus.CounterVec
	trapTransitions *prometheus.CounterVec
	focusErrors     *prometheus.CounterVec
	activeSessions  prometheus.Gauge
	rejected        prometheus.Counter
	wsErrors        *prometheus.CounterVec
}

// NewMetrics creates and registers the server metrics.
//
// Metrics collected:
//   - a11ydemo_http_requests_total: requests by route, method and status
//   - a11ydemo_http_request_duration_seconds: request duration by route
//   - a11ydemo_events_total: live events by frame type and status
//   - a11ydemo_event_duration_seconds: live event handling duration
//   - a11ydemo_navigations_total: navigations by result (found, not_found)
//   - a11ydemo_announcements_total: live region updates by politeness and kind
//   - a11ydemo_focus_trap_transitions_total: trap state changes
//   - a11ydemo_focus_errors_total: recovered focus errors by code
//   - a11ydemo_active_sessions: open live sessions
//   - a11ydemo_sessions_rejected_total: upgrades refused at the session limit
//   - a11ydemo_websocket_errors_total: WebSocket errors by type
//
// Example:
//
//	metrics := middleware.NewMetrics(middleware.WithNamespace("demo"))
//	r := chi.NewRouter()
//	r.Use(metrics.Instrument)
//	r.Handle("/metrics", metrics.Handler())
func NewMetrics(opts ...MetricsOption) *Metrics {
	config := defaultMetricsConfig()
	for _, opt := range opts {
		opt(&config)
	}
	if config.Registry == nil {
		config.Registry = prometheus.NewRegistry()
		config.Registry.MustRegister(
			collectors.NewGoCollector(),
			collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
		)
	}
	factory := promauto.With(config.Registry)

	counter := func(name, help string, labels ...string) *prometheus.CounterVec {
		return factory.NewCounterVec(prometheus.CounterOpts{
			Namespace:   config.Namespace,
			Subsystem:   config.Subsystem,
			Name:        name,
			Help:        help,
			ConstLabels: config.ConstLabels,
		}, labels)
	}
	histogram := func(name, help string, labels ...string) *prometheus.HistogramVec {
		return factory.NewHistogramVec(prometheus.HistogramOpts{
			Namespace:   config.Namespace,
			Subsystem:   config.Subsystem,
			Name:        name,
			Help:        help,
			ConstLabels: config.ConstLabels,
			Buckets:     config.Buckets,
		}, labels)
	}

	return &Metrics{
		registry:        config.Registry,
		httpRequests:    counter("http_requests_total", "Total HTTP requests", "route", "method", "status"),
		httpDuration:    histogram("http_request_duration_seconds", "HTTP request duration in seconds", "route", "method"),
		eventsTotal:     counter("events_total", "Total live session events processed", "type", "status"),
		eventDuration:   histogram("event_duration_seconds", "Live event handling duration in seconds", "type"),
		navigations:     counter("navigations_total", "Total client-side navigations", "result"),
		announcements:   counter("announcements_total", "Total live region updates", "politeness", "kind"),
		trapTransitions: counter("focus_trap_transitions_total", "Total focus trap state changes", "from", "to"),
		focusErrors:     counter("focus_errors_total", "Total recovered focus errors", "code"),
		activeSessions: factory.NewGauge(prometheus.GaugeOpts{
			Namespace:   config.Namespace,
			Subsystem:   config.Subsystem,
			Name:        "active_sessions",
			Help:        "Number of active live sessions",
			ConstLabels: config.ConstLabels,
		}),
		rejected: factory.NewCounter(prometheus.CounterOpts{
			Namespace:   config.Namespace,
			Subsystem:   config.Subsystem,
			Name:        "sessions_rejected_total",
			Help:        "Total live sessions refused at the session limit",
			ConstLabels: config.ConstLabels,
		}),
		wsErrors: counter("websocket_errors_total", "Total WebSocket errors by type", "type"),
	}
}

// Registry returns the registry the metrics are registered with.
func (m *Metrics) Registry() *prometheus.Registry {
	return m.registry
}

// Handler serves the registry in the Prometheus exposition format.
func (m *Metrics) Handler() http.Handler {
	return promhttp.HandlerFor(m.registry, promhttp.HandlerOpts{Registry: m.registry})
}

// Instrument is chi middleware recording request counts and durations.
// Requests are labelled by route pattern, not raw path, so unknown paths
// do not create new series.
func (m *Metrics) Instrument(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		ww := chimw.NewWrapResponseWriter(w, r.ProtoMajor)

		next.ServeHTTP(ww, r)

		status := ww.Status()
		if status == 0 {
			status = http.StatusOK
		}
		route := routePattern(r)
		m.httpDuration.WithLabelValues(route, r.Method).Observe(time.Since(start).Seconds())
		m.httpRequests.WithLabelValues(route, r.Method, strconv.Itoa(status)).Inc()
	})
}

// routePattern returns the matched chi pattern, or "unmatched".
func routePattern(r *http.Request) string {
	if rctx := chi.RouteContext(r.Context()); rctx != nil {
		if pattern := rctx.RoutePattern(); pattern != "" {
			return pattern
		}
	}
	return "unmatched"
}

// RecordEvent records one handled live event.
func (m *Metrics) RecordEvent(frameType string, d time.Duration, err error) {
	status := "success"
	if err != nil {
		status = categorizeError(err)
	}
	m.eventDuration.WithLabelValues(frameType).Observe(d.Seconds())
	m.eventsTotal.WithLabelValues(frameType, status).Inc()
}

// categorizeError maps an error to a low-cardinality label.
func categorizeError(err error) string {
	if code := apperrors.CodeOf(err); code != "" {
		return code
	}
	return "internal"
}

// RecordNavigation records a completed navigation.
func (m *Metrics) RecordNavigation(change router.Change) {
	result := "found"
	if change.Route.NotFound() {
		result = "not_found"
	}
	m.navigations.WithLabelValues(result).Inc()
}

// RecordAnnouncement records a live region update. Clears are counted
// separately from messages.
func (m *Metrics) RecordAnnouncement(a announce.Announcement) {
	kind := "message"
	if a.Empty() {
		kind = "clear"
	}
	m.announcements.WithLabelValues(string(a.Politeness), kind).Inc()
}

// RecordTrapTransition records a trap state change and any recovered
// focus error it carries.
func (m *Metrics) RecordTrapTransition(tr focus.Transition) {
	if tr.From != tr.To {
		m.trapTransitions.WithLabelValues(tr.From.String(), tr.To.String()).Inc()
	}
	if tr.Err != nil {
		m.focusErrors.WithLabelValues(FocusErrorCode(tr.Err)).Inc()
	}
}

// FocusErrorCode returns the error code of a recovered focus error.
func FocusErrorCode(err error) string {
	switch {
	case errors.Is(err, focus.ErrEmptyFocusableSet):
		return apperrors.CodeEmptyFocusable
	case errors.Is(err, focus.ErrDetachedRestoreTarget):
		return apperrors.CodeDetachedTarget
	default:
		if code := apperrors.CodeOf(err); code != "" {
			return code
		}
		return "unknown"
	}
}

// SessionOpened records a new live session.
func (m *Metrics) SessionOpened() {
	m.activeSessions.Inc()
}

// SessionClosed records a closed live session.
func (m *Metrics) SessionClosed() {
	m.activeSessions.Dec()
}

// SessionRejected records an upgrade refused at the session limit.
func (m *Metrics) SessionRejected() {
	m.rejected.Inc()
}

// RecordWebSocketError records a WebSocket error.
func (m *Metrics) RecordWebSocketError(errorType string) {
	m.wsErrors.WithLabelValues(errorType).Inc()
}
