package server

import (
	"context"
	"encoding/json"
	"log/slog"
	"sync"
	"sync/atomic"
	"time"

	"github.com/google/uuid"
	"github.com/gorilla/websocket"
	"go.opentelemetry.io/otel/attribute"

	apperrors "github.com/a11ylab/a11ydemo/internal/errors"
	"github.com/a11ylab/a11ydemo/pkg/announce"
	"github.com/a11ylab/a11ydemo/pkg/focus"
	"github.com/a11ylab/a11ydemo/pkg/middleware"
	"github.com/a11ylab/a11ydemo/pkg/render"
	"github.com/a11ylab/a11ydemo/pkg/router"
	"github.com/a11ylab/a11ydemo/pkg/vdom"
)

// Conn is the part of *websocket.Conn a session uses.
type Conn interface {
	ReadMessage() (messageType int, p []byte, err error)
	WriteMessage(messageType int, data []byte) error
	WriteControl(messageType int, data []byte, deadline time.Time) error
	SetReadDeadline(t time.Time) error
	SetWriteDeadline(t time.Time) error
	SetReadLimit(limit int64)
	SetPongHandler(h func(appData string) error)
	Close() error
}

var _ Conn = (*websocket.Conn)(nil)

// Session is one live tab. All component state is owned by the event
// loop goroutine; the read and write loops only move frames.
type Session struct {
	// Identity
	ID        string
	CreatedAt time.Time

	lastActive atomic.Int64

	// Connection
	conn    Conn
	mu      sync.Mutex // Guards writes to conn
	closed  atomic.Bool
	started atomic.Bool

	// Channels
	events     chan *ClientFrame
	dispatchCh chan func()
	done       chan struct{}

	closeOnce    sync.Once
	teardownOnce sync.Once
	onClose      func(*Session)

	// Event loop state
	tab    *tab
	tree   *vdom.VNode
	unsubs []func()

	timersMu sync.Mutex
	timers   map[*sessionTimer]struct{}

	config   *SessionConfig
	observer Observer
	tracer   *middleware.Tracer
	renderer *render.Renderer
	logger   *slog.Logger
}

// newSession creates a session for conn positioned at path. cfg must have
// its defaults applied.
func newSession(conn Conn, path string, cfg *ServerConfig) *Session {
	id := uuid.NewString()
	s := &Session{
		ID:         id,
		CreatedAt:  time.Now(),
		conn:       conn,
		events:     make(chan *ClientFrame, cfg.SessionConfig.MaxEventQueue),
		dispatchCh: make(chan func(), cfg.SessionConfig.MaxEventQueue),
		done:       make(chan struct{}),
		timers:     make(map[*sessionTimer]struct{}),
		config:     cfg.SessionConfig,
		observer:   cfg.Observer,
		tracer:     cfg.Tracer,
		renderer:   render.NewRenderer(render.RendererConfig{}),
		logger:     cfg.Logger.With("session_id", id),
	}
	s.touch()

	s.tab = newTab(cfg, path, s, s.logger, s.onTransition)
	s.unsubs = append(s.unsubs,
		s.tab.env.Announcer.Subscribe(s.onAnnouncement),
		s.tab.env.Router.Subscribe(s.onNavigation),
	)
	return s
}

// touch records client activity.
func (s *Session) touch() {
	s.lastActive.Store(time.Now().UnixNano())
}

// LastActive returns the time of the last client activity.
func (s *Session) LastActive() time.Time {
	return time.Unix(0, s.lastActive.Load())
}

// IsClosed reports whether the session has been closed.
func (s *Session) IsClosed() bool {
	return s.closed.Load()
}

// Done is closed when the session closes.
func (s *Session) Done() <-chan struct{} {
	return s.done
}

// Path returns the current path of the tab. It must only be called from
// the event loop or before Start.
func (s *Session) Path() string {
	return s.tab.shell.Path()
}

// QueueEvent queues a client frame for the event loop. It never blocks.
func (s *Session) QueueEvent(f *ClientFrame) error {
	if s.closed.Load() {
		return ErrSessionClosed
	}
	select {
	case s.events <- f:
		return nil
	default:
		s.logger.Warn("event queue full, dropping frame", "type", f.Type)
		return ErrEventQueueFull
	}
}

// Dispatch runs fn on the event loop and renders afterwards. It blocks
// while the dispatch queue is full and must not be called from the loop.
func (s *Session) Dispatch(fn func()) error {
	if s.closed.Load() {
		return ErrSessionClosed
	}
	select {
	case s.dispatchCh <- fn:
		return nil
	case <-s.done:
		return ErrSessionClosed
	}
}

// Close closes the session and its connection. It is safe to call more
// than once and from any goroutine.
func (s *Session) Close() {
	s.closeOnce.Do(func() {
		s.closed.Store(true)
		close(s.done)

		if s.conn != nil {
			msg := websocket.FormatCloseMessage(websocket.CloseNormalClosure, "")
			_ = s.conn.WriteControl(websocket.CloseMessage, msg, time.Now().Add(time.Second))
			_ = s.conn.Close()
		}

		// Without a running loop nobody else releases the tab.
		if !s.started.Load() {
			s.teardown()
		}
		if s.onClose != nil {
			s.onClose(s)
		}
		s.logger.Debug("session closed")
	})
}

// teardown releases the tab. It runs once, on the event loop when one was
// started.
func (s *Session) teardown() {
	s.teardownOnce.Do(func() {
		for _, unsub := range s.unsubs {
			unsub()
		}
		s.unsubs = nil
		s.tab.close()
		s.stopTimers()
	})
}

// send encodes and writes a frame.
func (s *Session) send(f *ServerFrame) error {
	data, err := json.Marshal(f)
	if err != nil {
		return err
	}

	s.mu.Lock()
	if s.closed.Load() {
		s.mu.Unlock()
		return ErrSessionClosed
	}
	if s.conn == nil {
		s.mu.Unlock()
		return ErrNoConnection
	}
	_ = s.conn.SetWriteDeadline(time.Now().Add(s.config.WriteTimeout))
	err = s.conn.WriteMessage(websocket.TextMessage, data)
	s.mu.Unlock()

	if err != nil {
		s.observer.RecordWebSocketError("write")
		s.logger.Error("write error", "type", f.Type, "error", err)
		s.Close()
		return &SessionError{SessionID: s.ID, Op: "send " + f.Type, Err: err}
	}
	return nil
}

// render renders the frame, installs it as the current tree and sends it.
func (s *Session) render() {
	tree := s.tab.shell.Frame()
	s.tree = tree

	html, err := s.renderer.RenderToString(tree)
	if err != nil {
		s.logger.Error("render failed", "error", err)
		return
	}
	_ = s.send(&ServerFrame{
		Type:  FrameRender,
		HTML:  html,
		Focus: s.tab.env.Document().ActiveHID(),
		Path:  s.tab.shell.Path(),
		Title: s.tab.shell.Title(),
	})
}

// handleFrame applies one client frame on the event loop.
func (s *Session) handleFrame(f *ClientFrame) {
	start := time.Now()
	_, span := s.tracer.StartEvent(context.Background(), s.ID, f.Type,
		attribute.String("a11ydemo.hid", f.HID),
	)

	var err error
	func() {
		defer func() {
			if r := recover(); r != nil {
				s.logger.Error("handler panic", "type", f.Type, "hid", f.HID, "panic", r)
				err = apperrors.New(apperrors.CodeInvalidFrame).WithDetailf("handler panic: %v", r)
			}
		}()
		err = s.applyFrame(f)
	}()

	middleware.EndSpan(span, err)
	s.observer.RecordEvent(f.Type, time.Since(start), err)
	if err != nil {
		s.logger.Warn("frame rejected", "type", f.Type, "hid", f.HID, "error", err)
		_ = s.send(errorFrame(err))
	}
}

func (s *Session) applyFrame(f *ClientFrame) error {
	doc := s.tab.env.Document()

	switch f.Type {
	case FrameEvent:
		err := s.handleEvent(f)
		s.render()
		return err

	case FrameKey:
		if f.HID != "" {
			doc.FocusHID(f.HID)
		}
		res := s.tab.env.Focus.HandleKey(focus.KeyEvent{Key: f.Key, Shift: f.Shift})
		if res.Handled {
			s.render()
		}
		return nil

	case FrameFocus:
		if f.HID == "" {
			doc.Blur()
		} else {
			doc.FocusHID(f.HID)
		}
		if s.focusEscaped() {
			s.render()
		}
		return nil

	case FrameNavigate:
		s.tab.shell.Navigate(f.Path)
		s.render()
		return nil
	}
	return f.Validate()
}

// handleEvent invokes the handler addressed by an event frame.
func (s *Session) handleEvent(f *ClientFrame) error {
	node := vdom.FindByHID(s.tree, f.HID)
	if node == nil {
		return staleHandler(f)
	}
	switch h := node.Props["on"+f.Name].(type) {
	case func():
		// Clicks focus the target first, so a trap opened by the handler
		// records it as the trigger.
		if f.Name == EventClick && focus.Focusable(node) {
			s.tab.env.Document().FocusHID(f.HID)
		}
		h()
	case func(string):
		h(f.Value)
	default:
		return staleHandler(f)
	}
	return nil
}

func staleHandler(f *ClientFrame) error {
	return apperrors.New(apperrors.CodeStaleHandler).WithDetailf("no %s handler on %s", f.Name, f.HID)
}

// focusEscaped reports whether focus left the container of the open trap.
func (s *Session) focusEscaped() bool {
	top := s.tab.env.Focus.Top()
	if top == nil || !top.IsOpen() {
		return false
	}
	doc := s.tab.env.Document()
	return !doc.Within(doc.Find(top.Container()))
}

func (s *Session) onAnnouncement(a announce.Announcement) {
	s.observer.RecordAnnouncement(a)
	_ = s.send(&ServerFrame{
		Type:       FrameLive,
		Politeness: string(a.Politeness),
		Text:       a.Text,
	})
}

func (s *Session) onNavigation(change router.Change) {
	s.observer.RecordNavigation(change)
	s.logger.Info("navigated", "from", change.Previous, "to", change.Path, "not_found", change.Route.NotFound())
}

func (s *Session) onTransition(tr focus.Transition) {
	s.observer.RecordTrapTransition(tr)
	if tr.Err != nil {
		s.logger.Warn("focus recovered",
			"code", middleware.FocusErrorCode(tr.Err),
			"container", tr.Container,
			"focus", tr.Focus,
			"error", tr.Err,
		)
	}
}

// sessionTimer is a timer whose callback runs on the session's event loop.
type sessionTimer struct {
	session *Session
	timer   *time.Timer
	fn      func()
	stopped atomic.Bool
	fired   atomic.Bool
}

// AfterFunc schedules fn on the event loop after d. Session implements
// announce.Scheduler so that page, announcer and notification timers never
// touch component state off the loop.
func (s *Session) AfterFunc(d time.Duration, fn func()) announce.Timer {
	t := &sessionTimer{session: s, fn: fn}
	s.timersMu.Lock()
	s.timers[t] = struct{}{}
	t.timer = time.AfterFunc(d, t.fire)
	s.timersMu.Unlock()
	return t
}

func (t *sessionTimer) fire() {
	_ = t.session.Dispatch(t.run)
}

func (t *sessionTimer) run() {
	if t.stopped.Load() || !t.fired.CompareAndSwap(false, true) {
		return
	}
	t.session.untrack(t)
	t.fn()
}

// Stop cancels the timer. It reports false when the callback already ran
// or the timer was stopped before.
func (t *sessionTimer) Stop() bool {
	if t.fired.Load() || !t.stopped.CompareAndSwap(false, true) {
		return false
	}
	t.session.timersMu.Lock()
	t.timer.Stop()
	delete(t.session.timers, t)
	t.session.timersMu.Unlock()
	return true
}

func (s *Session) untrack(t *sessionTimer) {
	s.timersMu.Lock()
	delete(s.timers, t)
	s.timersMu.Unlock()
}

// stopTimers cancels every pending timer.
func (s *Session) stopTimers() {
	s.timersMu.Lock()
	pending := make([]*sessionTimer, 0, len(s.timers))
	for t := range s.timers {
		pending = append(pending, t)
	}
	s.timersMu.Unlock()

	for _, t := range pending {
		t.Stop()
	}
}

// PendingTimers returns the number of scheduled timers.
func (s *Session) PendingTimers() int {
	s.timersMu.Lock()
	defer s.timersMu.Unlock()
	return len(s.timers)
}
