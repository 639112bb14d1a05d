package server

import (
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	apperrors "github.com/a11ylab/a11ydemo/internal/errors"
	"github.com/a11ylab/a11ydemo/pkg/focus"
)

// startSession starts a session on a fake connection and returns it with
// the initial render frame.
func startSession(t *testing.T, cfg *ServerConfig, path string) (*Session, *fakeConn, *ServerFrame) {
	t.Helper()
	cfg.withDefaults()
	conn := newFakeConn()
	s := newSession(conn, path, cfg)
	s.Start()
	t.Cleanup(s.Close)
	return s, conn, conn.next(t, FrameRender)
}

func TestSessionInitialRender(t *testing.T) {
	_, _, frame := startSession(t, testConfig(t), "/")

	assert.Equal(t, "/", frame.Path)
	assert.Equal(t, "Counter | Accessibility Demo", frame.Title)
	assert.Contains(t, frame.HTML, `id="app"`)
	assert.Contains(t, frame.HTML, "Count 0")
	assert.Empty(t, frame.Focus)
}

func TestSessionClickAnnouncesAndRenders(t *testing.T) {
	_, conn, frame := startSession(t, testConfig(t), "/")

	conn.send(t, ClientFrame{Type: FrameEvent, Name: EventClick, HID: hidOf(t, frame.HTML, "increment")})

	live := conn.next(t, FrameLive)
	assert.Equal(t, "polite", live.Politeness)
	assert.Equal(t, "Counter updated to 1", live.Text)

	render := conn.next(t, FrameRender)
	assert.Contains(t, render.HTML, "Count 1")
	assert.Equal(t, hidOf(t, render.HTML, "increment"), render.Focus)

	// The live region clears after the clear delay.
	cleared := conn.next(t, FrameLive)
	assert.Equal(t, "", cleared.Text)
}

func TestSessionInputPassesValue(t *testing.T) {
	_, conn, frame := startSession(t, testConfig(t), "/")

	conn.send(t, ClientFrame{Type: FrameEvent, Name: EventInput, HID: hidOf(t, frame.HTML, "name"), Value: "Ada"})

	live := conn.next(t, FrameLive)
	assert.Equal(t, "Name is Ada", live.Text)
}

func TestSessionTrapCyclesAndRestores(t *testing.T) {
	_, conn, frame := startSession(t, testConfig(t), "/")
	openHID := hidOf(t, frame.HTML, "open")

	conn.send(t, ClientFrame{Type: FrameEvent, Name: EventClick, HID: openHID})
	frame = conn.next(t, FrameRender)
	require.Contains(t, frame.HTML, `data-trap-open="true"`)
	first, last := hidOf(t, frame.HTML, "first"), hidOf(t, frame.HTML, "last")
	assert.Equal(t, first, frame.Focus, "opening focuses the first candidate")
	assert.Contains(t, frame.HTML, `data-trap-edge="first"`)
	assert.Contains(t, frame.HTML, `data-trap-edge="last"`)

	conn.send(t, ClientFrame{Type: FrameKey, Key: "Tab", HID: last})
	frame = conn.next(t, FrameRender)
	assert.Equal(t, first, frame.Focus, "Tab on the last candidate wraps to the first")

	conn.send(t, ClientFrame{Type: FrameKey, Key: "Tab", Shift: true, HID: first})
	frame = conn.next(t, FrameRender)
	assert.Equal(t, last, frame.Focus, "Shift+Tab on the first candidate wraps to the last")

	conn.send(t, ClientFrame{Type: FrameKey, Key: "Escape", HID: last})
	frame = conn.next(t, FrameRender)
	assert.NotContains(t, frame.HTML, `id="dialog"`)
	assert.Equal(t, hidOf(t, frame.HTML, "open"), frame.Focus, "Escape restores the trigger")
}

func TestSessionFocusEscapingTrapIsPulledBack(t *testing.T) {
	_, conn, frame := startSession(t, testConfig(t), "/")

	conn.send(t, ClientFrame{Type: FrameEvent, Name: EventClick, HID: hidOf(t, frame.HTML, "open")})
	frame = conn.next(t, FrameRender)
	first := hidOf(t, frame.HTML, "first")

	conn.send(t, ClientFrame{Type: FrameFocus, HID: hidOf(t, frame.HTML, "increment")})
	frame = conn.next(t, FrameRender)
	assert.Equal(t, first, frame.Focus)
}

func TestSessionStaleHandler(t *testing.T) {
	_, conn, _ := startSession(t, testConfig(t), "/")

	conn.send(t, ClientFrame{Type: FrameEvent, Name: EventClick, HID: "h9999"})

	conn.next(t, FrameRender)
	errFrame := conn.next(t, FrameError)
	assert.Equal(t, apperrors.CodeStaleHandler, errFrame.Code)
}

func TestSessionInvalidFrame(t *testing.T) {
	_, conn, _ := startSession(t, testConfig(t), "/")

	conn.in <- []byte("not json")

	errFrame := conn.next(t, FrameError)
	assert.Equal(t, apperrors.CodeInvalidFrame, errFrame.Code)
}

func TestSessionNavigate(t *testing.T) {
	cfg := testConfig(t)
	obs := &recordingObserver{}
	cfg.Observer = obs
	_, conn, _ := startSession(t, cfg, "/")

	conn.send(t, ClientFrame{Type: FrameNavigate, Path: "/other/"})

	live := conn.next(t, FrameLive)
	assert.Equal(t, "Other page loaded", live.Text)
	frame := conn.next(t, FrameRender)
	assert.Equal(t, "/other", frame.Path)
	assert.Equal(t, "Other | Accessibility Demo", frame.Title)
	assert.Contains(t, frame.HTML, `id="plain-page"`)
	assert.Equal(t, hidOf(t, frame.HTML, "main-content"), frame.Focus)

	obs.mu.Lock()
	require.Len(t, obs.navigations, 1)
	assert.Equal(t, "/", obs.navigations[0].Previous)
	obs.mu.Unlock()

	assert.Eventually(t, func() bool {
		obs.mu.Lock()
		defer obs.mu.Unlock()
		return len(obs.events) == 1 && obs.events[0] == FrameNavigate
	}, time.Second, 5*time.Millisecond)
}

func TestSessionNavigateUnknownPath(t *testing.T) {
	_, conn, _ := startSession(t, testConfig(t), "/")

	conn.send(t, ClientFrame{Type: FrameNavigate, Path: "/nowhere"})

	live := conn.next(t, FrameLive)
	assert.Equal(t, "Page not found", live.Text)
	frame := conn.next(t, FrameRender)
	assert.Contains(t, frame.HTML, `id="not-found"`)
}

func TestSessionRecordsTrapTransitions(t *testing.T) {
	cfg := testConfig(t)
	obs := &recordingObserver{}
	cfg.Observer = obs
	_, conn, frame := startSession(t, cfg, "/")

	conn.send(t, ClientFrame{Type: FrameEvent, Name: EventClick, HID: hidOf(t, frame.HTML, "open")})
	frame = conn.next(t, FrameRender)
	conn.send(t, ClientFrame{Type: FrameEvent, Name: EventClick, HID: hidOf(t, frame.HTML, "last")})
	conn.next(t, FrameRender)

	obs.mu.Lock()
	defer obs.mu.Unlock()
	require.Len(t, obs.transitions, 2)
	assert.Equal(t, focus.Closed, obs.transitions[0].From)
	assert.Equal(t, focus.Open, obs.transitions[0].To)
	assert.Equal(t, focus.Closed, obs.transitions[1].To)
	assert.Equal(t, "open", obs.transitions[1].Focus)
}

func TestSessionCloseCancelsTimers(t *testing.T) {
	cfg := testConfig(t)
	cfg.SessionConfig = &SessionConfig{ClearDelay: time.Hour}
	s, conn, frame := startSession(t, cfg, "/")

	conn.send(t, ClientFrame{Type: FrameEvent, Name: EventClick, HID: hidOf(t, frame.HTML, "increment")})
	conn.next(t, FrameRender)
	require.Equal(t, 1, s.PendingTimers())

	s.Close()

	assert.True(t, conn.isClosed())
	assert.True(t, s.IsClosed())
	assert.Eventually(t, func() bool { return s.PendingTimers() == 0 }, time.Second, 5*time.Millisecond)
	assert.ErrorIs(t, s.QueueEvent(&ClientFrame{Type: FrameFocus}), ErrSessionClosed)
}

func TestSessionQueueFull(t *testing.T) {
	cfg := testConfig(t)
	cfg.SessionConfig = &SessionConfig{MaxEventQueue: 1}
	cfg.withDefaults()
	s := newSession(newFakeConn(), "/", cfg)
	defer s.Close()

	require.NoError(t, s.QueueEvent(&ClientFrame{Type: FrameFocus}))
	err := s.QueueEvent(&ClientFrame{Type: FrameFocus})
	assert.ErrorIs(t, err, ErrEventQueueFull)
	assert.Equal(t, apperrors.CodeQueueFull, apperrors.CodeOf(err))
}

func TestSessionTimerStop(t *testing.T) {
	cfg := testConfig(t)
	cfg.withDefaults()
	s := newSession(newFakeConn(), "/", cfg)
	defer s.Close()

	timer := s.AfterFunc(time.Hour, func() {})
	assert.Equal(t, 1, s.PendingTimers())
	assert.True(t, timer.Stop())
	assert.False(t, timer.Stop())
	assert.Equal(t, 0, s.PendingTimers())
}

func TestSessionTimerRunsOnLoop(t *testing.T) {
	s, conn, _ := startSession(t, testConfig(t), "/")

	fired := make(chan struct{})
	s.AfterFunc(time.Millisecond, func() { close(fired) })

	select {
	case <-fired:
	case <-time.After(time.Second):
		t.Fatal("timer did not fire")
	}
	// Every dispatched callback is followed by a render.
	conn.next(t, FrameRender)
	assert.Equal(t, 0, s.PendingTimers())
}

func TestSessionCloseWithoutStart(t *testing.T) {
	cfg := testConfig(t)
	cfg.withDefaults()
	conn := newFakeConn()
	s := newSession(conn, "/", cfg)

	s.Close()
	s.Close()

	assert.True(t, conn.isClosed())
	assert.True(t, errors.Is(s.Dispatch(func() {}), ErrSessionClosed))
	select {
	case <-s.Done():
	default:
		t.Fatal("done not closed")
	}
}
