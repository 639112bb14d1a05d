package server

import (
	"context"
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"sync"
	"syscall"
	"time"

	"github.com/go-chi/chi/v5"
	chimw "github.com/go-chi/chi/v5/middleware"
	"github.com/gorilla/websocket"

	apperrors "github.com/a11ylab/a11ydemo/internal/errors"
	"github.com/a11ylab/a11ydemo/pkg/announce"
	"github.com/a11ylab/a11ydemo/pkg/render"
	"github.com/a11ylab/a11ydemo/pkg/router"
)

// Server is the HTTP and WebSocket server. It server-renders every path
// and upgrades /_live connections into sessions.
type Server struct {
	config   *ServerConfig
	sessions *SessionManager
	router   chi.Router
	upgrader websocket.Upgrader
	renderer *render.Renderer
	logger   *slog.Logger

	mu         sync.Mutex // Guards httpServer
	httpServer *http.Server
}

// New creates a server. Unset fields of config are defaulted; a route
// table is required.
func New(config *ServerConfig) (*Server, error) {
	if config == nil {
		config = DefaultServerConfig()
	}
	if config.Routes == nil {
		return nil, ErrNoRoutes
	}
	config.withDefaults()

	s := &Server{
		config: config,
		upgrader: websocket.Upgrader{
			ReadBufferSize:  config.ReadBufferSize,
			WriteBufferSize: config.WriteBufferSize,
			CheckOrigin:     config.CheckOrigin,
		},
		renderer: render.NewRenderer(render.RendererConfig{}),
		logger:   config.Logger.With("component", "server"),
	}
	s.sessions = NewSessionManager(config)
	s.router = s.routes()
	return s, nil
}

func (s *Server) routes() chi.Router {
	r := chi.NewRouter()
	r.Use(chimw.RequestID)
	r.Use(chimw.RealIP)
	r.Use(requestLogger(s.logger))
	r.Use(chimw.Recoverer)
	if s.config.Metrics != nil {
		r.Use(s.config.Metrics.Instrument)
	}
	r.Use(s.config.Tracer.HTTP)

	r.Get(HealthPath, s.handleHealth)
	if s.config.Metrics != nil {
		r.Method(http.MethodGet, MetricsPath, s.config.Metrics.Handler())
	}
	r.Get(ClientScriptPath, s.handleClientScript)
	r.Get(LivePath, s.HandleWebSocket)
	r.Get("/", s.HandlePage)
	r.Get("/*", s.HandlePage)
	return r
}

// requestLogger logs one line per request at debug level, and failed
// requests at warn.
func requestLogger(logger *slog.Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			start := time.Now()
			ww := chimw.NewWrapResponseWriter(w, r.ProtoMajor)
			next.ServeHTTP(ww, r)

			status := ww.Status()
			if status == 0 {
				status = http.StatusOK
			}
			level := slog.LevelDebug
			if status >= http.StatusInternalServerError {
				level = slog.LevelWarn
			}
			logger.Log(r.Context(), level, "request",
				"method", r.Method,
				"path", r.URL.Path,
				"status", status,
				"bytes", ww.BytesWritten(),
				"duration", time.Since(start),
				"request_id", chimw.GetReqID(r.Context()),
			)
		})
	}
}

// Handler returns the HTTP handler.
func (s *Server) Handler() http.Handler {
	return s.router
}

// ServeHTTP implements http.Handler.
func (s *Server) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	s.router.ServeHTTP(w, r)
}

// HandlePage server-renders the shell for the request path. Non-canonical
// paths redirect to their canonical form; unknown paths render the
// not-found view with status 404.
func (s *Server) HandlePage(w http.ResponseWriter, r *http.Request) {
	raw := r.URL.EscapedPath()
	canonical, err := router.Canonicalize(raw)
	if err != nil {
		s.logger.Debug("invalid path",
			"path", raw,
			"error", apperrors.New(apperrors.CodeInvalidPath).Wrap(err))
	} else if canonical != raw {
		target := canonical
		if r.URL.RawQuery != "" {
			target += "?" + r.URL.RawQuery
		}
		http.Redirect(w, r, target, http.StatusPermanentRedirect)
		return
	}

	t := newTab(s.config, raw, announce.TimeScheduler, s.logger, nil)
	defer t.close()

	body := t.shell.Frame()
	status := http.StatusOK
	if t.shell.Page() == nil {
		status = http.StatusNotFound
	}

	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.Header().Set("Cache-Control", "no-store")
	w.WriteHeader(status)

	var script string
	if len(s.config.ClientScript) > 0 {
		script = ClientScriptPath
	}
	if err := s.renderer.RenderPage(w, render.PageData{
		Body:         body,
		Title:        t.shell.Title(),
		Lang:         s.config.Lang,
		Description:  s.config.Description,
		Styles:       s.config.Styles,
		ClientScript: script,
		LivePath:     LivePath,
	}); err != nil {
		s.logger.Error("page render failed", "path", raw, "error", err)
	}
}

func (s *Server) handleClientScript(w http.ResponseWriter, r *http.Request) {
	if len(s.config.ClientScript) == 0 {
		http.NotFound(w, r)
		return
	}
	w.Header().Set("Content-Type", "text/javascript; charset=utf-8")
	w.Header().Set("Cache-Control", "no-cache")
	_, _ = w.Write(s.config.ClientScript)
}

func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	_ = json.NewEncoder(w).Encode(struct {
		Status   string       `json:"status"`
		Sessions ManagerStats `json:"sessions"`
	}{
		Status:   "ok",
		Sessions: s.sessions.Stats(),
	})
}

// HandleWebSocket upgrades the request and starts a session at the path
// given by the "path" query parameter.
func (s *Server) HandleWebSocket(w http.ResponseWriter, r *http.Request) {
	conn, err := s.upgrader.Upgrade(w, r, nil)
	if err != nil {
		// Upgrade already replied with an HTTP error.
		s.config.Observer.RecordWebSocketError("upgrade")
		s.logger.Warn("websocket upgrade failed",
			"error", apperrors.New(apperrors.CodeUpgradeFailed).Wrap(err),
			"origin", r.Header.Get("Origin"))
		return
	}

	path := r.URL.Query().Get("path")
	if path == "" {
		path = "/"
	}

	session, err := s.sessions.Create(conn, path)
	if err != nil {
		s.logger.Warn("session rejected", "error", err, "active_sessions", s.sessions.Count())
		s.reject(conn, err)
		return
	}
	session.Start()
}

// reject tells the client why no session was created and closes conn.
func (s *Server) reject(conn *websocket.Conn, err error) {
	deadline := time.Now().Add(s.config.SessionConfig.WriteTimeout)
	if data, merr := json.Marshal(errorFrame(err)); merr == nil {
		_ = conn.SetWriteDeadline(deadline)
		_ = conn.WriteMessage(websocket.TextMessage, data)
	}
	msg := websocket.FormatCloseMessage(websocket.CloseTryAgainLater, "session rejected")
	_ = conn.WriteControl(websocket.CloseMessage, msg, deadline)
	_ = conn.Close()
}

// Run starts the HTTP server and blocks until ctx is cancelled, an
// interrupt or SIGTERM arrives, or the listener fails.
func (s *Server) Run(ctx context.Context) error {
	srv := &http.Server{
		Addr:              s.config.Address,
		Handler:           s.router,
		ReadHeaderTimeout: s.config.ReadHeaderTimeout,
	}
	s.mu.Lock()
	s.httpServer = srv
	s.mu.Unlock()

	// Set up graceful shutdown
	shutdown := make(chan os.Signal, 1)
	signal.Notify(shutdown, os.Interrupt, syscall.SIGTERM)
	defer signal.Stop(shutdown)

	// Error channel for ListenAndServe
	errCh := make(chan error, 1)

	go func() {
		s.logger.Info("server starting", "address", s.config.Address)
		errCh <- srv.ListenAndServe()
	}()

	select {
	case err := <-errCh:
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return err

	case <-shutdown:
		s.logger.Info("shutting down...")
		return s.Shutdown(context.Background())

	case <-ctx.Done():
		s.logger.Info("shutting down...", "reason", ctx.Err())
		return s.Shutdown(context.Background())
	}
}

// Shutdown closes all sessions, then stops the HTTP server, within the
// configured shutdown timeout.
func (s *Server) Shutdown(ctx context.Context) error {
	ctx, cancel := context.WithTimeout(ctx, s.config.ShutdownTimeout)
	defer cancel()

	if err := s.sessions.ShutdownWithContext(ctx); err != nil {
		s.logger.Warn("sessions did not close in time", "error", err)
	}

	s.mu.Lock()
	srv := s.httpServer
	s.mu.Unlock()
	if srv != nil {
		if err := srv.Shutdown(ctx); err != nil {
			s.logger.Error("shutdown error", "error", err)
			return err
		}
	}

	s.logger.Info("server shutdown complete")
	return nil
}

// Sessions returns the session manager.
func (s *Server) Sessions() *SessionManager {
	return s.sessions
}

// Config returns the server configuration with defaults applied.
func (s *Server) Config() *ServerConfig {
	return s.config
}
