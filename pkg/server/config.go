package server

import (
	"log/slog"
	"net/http"
	"net/url"
	"time"

	"github.com/a11ylab/a11ydemo/pkg/announce"
	"github.com/a11ylab/a11ydemo/pkg/focus"
	"github.com/a11ylab/a11ydemo/pkg/middleware"
	"github.com/a11ylab/a11ydemo/pkg/router"
	"github.com/a11ylab/a11ydemo/pkg/shell"
	"github.com/a11ylab/a11ydemo/pkg/toast"
)

// Default endpoint paths.
const (
	LivePath         = "/_live"
	ClientScriptPath = "/_client.js"
	HealthPath       = "/healthz"
	MetricsPath      = "/metrics"
)

// SessionConfig holds configuration for individual sessions.
type SessionConfig struct {
	// ReadTimeout is the maximum time to wait for a message or pong from
	// the client. Default: 60 seconds.
	ReadTimeout time.Duration

	// WriteTimeout is the maximum time to wait when sending a message.
	// Default: 10 seconds.
	WriteTimeout time.Duration

	// IdleTimeout is the time after which an inactive session is closed.
	// Default: 10 minutes.
	IdleTimeout time.Duration

	// HeartbeatInterval is the time between heartbeat pings.
	// Default: 30 seconds.
	HeartbeatInterval time.Duration

	// MaxMessageSize is the maximum size of an incoming WebSocket message.
	// Default: 64KB.
	MaxMessageSize int64

	// MaxEventQueue is the size of the event channel buffer.
	// Default: 256.
	MaxEventQueue int

	// ClearDelay is how long announcements stay in the live region.
	// Default: 100ms.
	ClearDelay time.Duration

	// DismissAfter is the notification lifetime. Default: 5 seconds.
	DismissAfter time.Duration

	// Timing holds the page delays.
	Timing shell.Timing
}

// DefaultSessionConfig returns a SessionConfig with sensible defaults.
func DefaultSessionConfig() *SessionConfig {
	return &SessionConfig{
		ReadTimeout:       60 * time.Second,
		WriteTimeout:      10 * time.Second,
		IdleTimeout:       10 * time.Minute,
		HeartbeatInterval: 30 * time.Second,
		MaxMessageSize:    64 * 1024,
		MaxEventQueue:     256,
		ClearDelay:        announce.DefaultClearDelay,
		DismissAfter:      toast.DefaultDismissAfter,
		Timing:            shell.DefaultTiming(),
	}
}

// withDefaults returns a copy of c with unset fields defaulted.
func (c *SessionConfig) withDefaults() *SessionConfig {
	defaults := DefaultSessionConfig()
	if c == nil {
		return defaults
	}
	clone := *c
	if clone.ReadTimeout <= 0 {
		clone.ReadTimeout = defaults.ReadTimeout
	}
	if clone.WriteTimeout <= 0 {
		clone.WriteTimeout = defaults.WriteTimeout
	}
	if clone.IdleTimeout <= 0 {
		clone.IdleTimeout = defaults.IdleTimeout
	}
	if clone.HeartbeatInterval <= 0 {
		clone.HeartbeatInterval = defaults.HeartbeatInterval
	}
	if clone.MaxMessageSize <= 0 {
		clone.MaxMessageSize = defaults.MaxMessageSize
	}
	if clone.MaxEventQueue <= 0 {
		clone.MaxEventQueue = defaults.MaxEventQueue
	}
	if clone.ClearDelay <= 0 {
		clone.ClearDelay = defaults.ClearDelay
	}
	if clone.DismissAfter <= 0 {
		clone.DismissAfter = defaults.DismissAfter
	}
	if clone.Timing.AlertDuration <= 0 {
		clone.Timing.AlertDuration = defaults.Timing.AlertDuration
	}
	if clone.Timing.AsyncDuration <= 0 {
		clone.Timing.AsyncDuration = defaults.Timing.AsyncDuration
	}
	return &clone
}

// Observer receives session activity. *middleware.Metrics implements it.
// Methods are called from session goroutines and must be safe for
// concurrent use.
type Observer interface {
	SessionOpened()
	SessionClosed()
	SessionRejected()
	RecordEvent(frameType string, d time.Duration, err error)
	RecordNavigation(change router.Change)
	RecordAnnouncement(a announce.Announcement)
	RecordTrapTransition(tr focus.Transition)
	RecordWebSocketError(errorType string)
}

var _ Observer = (*middleware.Metrics)(nil)

type nopObserver struct{}

func (nopObserver) SessionOpened()                           {}
func (nopObserver) SessionClosed()                           {}
func (nopObserver) SessionRejected()                         {}
func (nopObserver) RecordEvent(string, time.Duration, error) {}
func (nopObserver) RecordNavigation(router.Change)           {}
func (nopObserver) RecordAnnouncement(announce.Announcement) {}
func (nopObserver) RecordTrapTransition(focus.Transition)    {}
func (nopObserver) RecordWebSocketError(string)              {}

// ServerConfig holds configuration for the HTTP/WebSocket server.
type ServerConfig struct {
	// Address is the listen address. Default: "localhost:8080".
	Address string

	// Routes is the static route table. Required.
	Routes *router.Table

	// Pages maps page IDs to factories. Routes without a factory render
	// the not-found view.
	Pages map[router.PageID]shell.Factory

	// ShellOptions configure every tab's shell (brand, footer).
	ShellOptions []shell.Option

	// SessionConfig configures sessions. Default: DefaultSessionConfig().
	SessionConfig *SessionConfig

	// MaxSessions limits concurrent live sessions. Default: 1000.
	MaxSessions int

	// ReadBufferSize and WriteBufferSize size the WebSocket buffers.
	ReadBufferSize  int
	WriteBufferSize int

	// AllowedOrigins are origins allowed to open live sessions in
	// addition to the server's own.
	AllowedOrigins []string

	// CheckOrigin overrides the WebSocket origin check entirely.
	CheckOrigin func(r *http.Request) bool

	// ShutdownTimeout bounds graceful shutdown. Default: 30 seconds.
	ShutdownTimeout time.Duration

	// ReadHeaderTimeout bounds request header reads. Default: 5 seconds.
	ReadHeaderTimeout time.Duration

	// Lang is the document language. Default: "en".
	Lang string

	// Description fills the description meta tag.
	Description string

	// Styles are inline stylesheets added to every page.
	Styles []string

	// ClientScript is the thin client served at ClientScriptPath.
	ClientScript []byte

	// Logger is the base logger. Default: slog.Default().
	Logger *slog.Logger

	// Metrics enables /metrics, HTTP instrumentation and session metrics.
	Metrics *middleware.Metrics

	// Observer receives session activity. Default: Metrics when set.
	Observer Observer

	// Tracer creates HTTP and event spans. Default: a tracer on the
	// global provider.
	Tracer *middleware.Tracer
}

// DefaultServerConfig returns a ServerConfig with sensible defaults.
func DefaultServerConfig() *ServerConfig {
	return &ServerConfig{
		Address:           "localhost:8080",
		SessionConfig:     DefaultSessionConfig(),
		MaxSessions:       1000,
		ReadBufferSize:    4096,
		WriteBufferSize:   4096,
		ShutdownTimeout:   30 * time.Second,
		ReadHeaderTimeout: 5 * time.Second,
		Lang:              "en",
	}
}

// withDefaults fills unset fields from DefaultServerConfig.
func (c *ServerConfig) withDefaults() {
	defaults := DefaultServerConfig()
	if c.Address == "" {
		c.Address = defaults.Address
	}
	c.SessionConfig = c.SessionConfig.withDefaults()
	if c.MaxSessions <= 0 {
		c.MaxSessions = defaults.MaxSessions
	}
	if c.ReadBufferSize <= 0 {
		c.ReadBufferSize = defaults.ReadBufferSize
	}
	if c.WriteBufferSize <= 0 {
		c.WriteBufferSize = defaults.WriteBufferSize
	}
	if c.ShutdownTimeout <= 0 {
		c.ShutdownTimeout = defaults.ShutdownTimeout
	}
	if c.ReadHeaderTimeout <= 0 {
		c.ReadHeaderTimeout = defaults.ReadHeaderTimeout
	}
	if c.Lang == "" {
		c.Lang = defaults.Lang
	}
	if c.Logger == nil {
		c.Logger = slog.Default()
	}
	if c.Observer == nil {
		if c.Metrics != nil {
			c.Observer = c.Metrics
		} else {
			c.Observer = nopObserver{}
		}
	}
	if c.Tracer == nil {
		c.Tracer = middleware.NewTracer()
	}
	if c.CheckOrigin == nil {
		c.CheckOrigin = OriginChecker(c.AllowedOrigins)
	}
}

// SameOriginCheck validates that the WebSocket request origin matches the host.
func SameOriginCheck(r *http.Request) bool {
	origin := r.Header.Get("Origin")
	if origin == "" {
		// No Origin header (e.g., same-origin request or curl)
		return true
	}

	originURL, err := url.Parse(origin)
	if err != nil {
		return false
	}
	if r.Host == "" {
		return false
	}
	return originURL.Host == r.Host
}

// OriginChecker allows same-origin requests and the listed origins.
func OriginChecker(allowed []string) func(r *http.Request) bool {
	set := make(map[string]bool, len(allowed))
	for _, origin := range allowed {
		set[origin] = true
	}
	return func(r *http.Request) bool {
		if SameOriginCheck(r) {
			return true
		}
		return set[r.Header.Get("Origin")]
	}
}
