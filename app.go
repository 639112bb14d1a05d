package a11ydemo

import (
	"context"
	"log/slog"
	"net/http"

	clientdist "github.com/a11ylab/a11ydemo/client/dist"
	"github.com/a11ylab/a11ydemo/internal/config"
	"github.com/a11ylab/a11ydemo/internal/errors"
	"github.com/a11ylab/a11ydemo/pkg/middleware"
	"github.com/a11ylab/a11ydemo/pkg/pages"
	"github.com/a11ylab/a11ydemo/pkg/router"
	"github.com/a11ylab/a11ydemo/pkg/server"
	"github.com/a11ylab/a11ydemo/pkg/shell"
)

// Description is the description meta tag of every page.
const Description = "Demonstrations of accessible web patterns: semantic markup, " +
	"color independence, accessible maps, live regions and focus traps."

// =============================================================================
// App Type
// =============================================================================

// App is the demo site entry point. It wires the configuration, the route
// table, the demo pages and the live server into a single http.Handler.
//
//	cfg, _ := config.LoadOptional("")
//	app, err := a11ydemo.New(cfg)
//	if err != nil {
//	    log.Fatal(err)
//	}
//	app.Run(ctx)
type App struct {
	config  *config.Config
	table   *router.Table
	catalog *pages.Catalog
	metrics *middleware.Metrics
	server  *server.Server
	logger  *slog.Logger
}

// Option configures an App.
type Option func(*App)

// WithLogger sets the base logger. Default: slog.Default().
func WithLogger(logger *slog.Logger) Option {
	return func(a *App) {
		a.logger = logger
	}
}

// WithMetrics sets the metrics collector used when server.metrics is on.
// By default the App creates its own.
func WithMetrics(m *middleware.Metrics) Option {
	return func(a *App) {
		a.metrics = m
	}
}

// New validates cfg and builds the application. A nil cfg uses defaults.
func New(cfg *config.Config, opts ...Option) (*App, error) {
	if cfg == nil {
		cfg = config.New()
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	a := &App{config: cfg}
	for _, opt := range opts {
		opt(a)
	}
	if a.logger == nil {
		a.logger = slog.Default()
	}
	if !cfg.Server.Metrics {
		a.metrics = nil
	} else if a.metrics == nil {
		a.metrics = middleware.NewMetrics()
	}

	table, err := pages.NewTable()
	if err != nil {
		return nil, errors.New(errors.CodeRouteTable).Wrap(err)
	}
	catalog, err := pages.LoadCatalog()
	if err != nil {
		return nil, errors.New(errors.CodeInvalidContent).Wrap(err)
	}
	a.table = table
	a.catalog = catalog

	srv, err := server.New(a.serverConfig())
	if err != nil {
		return nil, err
	}
	a.server = srv
	return a, nil
}

func (a *App) serverConfig() *server.ServerConfig {
	cfg := a.config
	return &server.ServerConfig{
		Address: cfg.Address(),
		Routes:  a.table,
		Pages:   pages.Factories(a.catalog),
		ShellOptions: []shell.Option{
			shell.WithBrand(cfg.UI.Brand),
			shell.WithFooter(cfg.UI.Footer),
		},
		SessionConfig: &server.SessionConfig{
			IdleTimeout:   cfg.Server.IdleTimeout.Std(),
			MaxEventQueue: cfg.Server.MaxEventQueue,
			ClearDelay:    cfg.Announce.ClearDelay.Std(),
			DismissAfter:  cfg.Announce.DismissAfter.Std(),
			Timing: shell.Timing{
				AlertDuration: cfg.UI.AlertDuration.Std(),
				AsyncDuration: cfg.UI.AsyncDuration.Std(),
			},
		},
		MaxSessions:       cfg.Server.MaxSessions,
		AllowedOrigins:    cfg.Server.AllowedOrigins,
		ShutdownTimeout:   cfg.Server.ShutdownTimeout.Std(),
		ReadHeaderTimeout: cfg.Server.ReadHeaderTimeout.Std(),
		Lang:              cfg.UI.Lang,
		Description:       Description,
		Styles:            []string{clientdist.Stylesheet},
		ClientScript:      clientdist.Script,
		Logger:            a.logger,
		Metrics:           a.metrics,
	}
}

// =============================================================================
// Accessors
// =============================================================================

// Handler returns the HTTP handler serving pages, assets and live sessions.
func (a *App) Handler() http.Handler {
	return a.server.Handler()
}

// ServeHTTP implements http.Handler.
func (a *App) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	a.server.ServeHTTP(w, r)
}

// Routes returns the route table entries in navigation order.
func (a *App) Routes() []router.Route {
	return a.table.Routes()
}

// Server returns the underlying live server.
func (a *App) Server() *server.Server {
	return a.server
}

// Config returns the application configuration.
func (a *App) Config() *config.Config {
	return a.config
}

// Metrics returns the metrics collector, or nil when metrics are disabled.
func (a *App) Metrics() *middleware.Metrics {
	return a.metrics
}

// =============================================================================
// Lifecycle
// =============================================================================

// Run serves until ctx is cancelled or the process receives SIGINT or
// SIGTERM, then shuts down gracefully.
func (a *App) Run(ctx context.Context) error {
	a.logger.Info("serving",
		"url", a.config.URL(),
		"routes", a.table.Len(),
		"metrics", a.metrics != nil)
	return a.server.Run(ctx)
}

// Shutdown closes live sessions and stops the HTTP server.
func (a *App) Shutdown(ctx context.Context) error {
	return a.server.Shutdown(ctx)
}
