package server

import (
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"regexp"
	"sync"
	"testing"
	"time"

	"github.com/gorilla/websocket"
	"github.com/stretchr/testify/require"

	"github.com/a11ylab/a11ydemo/pkg/announce"
	"github.com/a11ylab/a11ydemo/pkg/focus"
	"github.com/a11ylab/a11ydemo/pkg/router"
	"github.com/a11ylab/a11ydemo/pkg/shell"
	"github.com/a11ylab/a11ydemo/pkg/vdom"
)

// counterPage has a counter that announces its value and a dialog with a
// focus trap.
type counterPage struct {
	env   *shell.Env
	count int
	trap  *focus.Trap
}

func newCounterPage(env *shell.Env) shell.Page {
	p := &counterPage{env: env}
	p.trap = env.Focus.NewTrap("dialog", focus.WithFallback("open"))
	return p
}

func (p *counterPage) Render() *vdom.VNode {
	return vdom.Div(vdom.ID("counter-page"),
		vdom.Button(vdom.ID("increment"), vdom.OnClick(func() {
			p.count++
			p.env.Announce(fmt.Sprintf("Counter updated to %d", p.count))
		}), fmt.Sprintf("Count %d", p.count)),
		vdom.Input(vdom.ID("name"), vdom.Type("text"), vdom.OnInput(func(v string) {
			p.env.Announce("Name is " + v)
		})),
		vdom.Button(vdom.ID("open"), vdom.OnClick(p.trap.Open), "Open dialog"),
		vdom.If(p.trap.IsOpen(), vdom.Div(vdom.ID("dialog"), vdom.Role("dialog"), vdom.AriaModal(true),
			vdom.Button(vdom.ID("first"), "First"),
			vdom.Button(vdom.ID("last"), vdom.OnClick(p.trap.Close), "Close"),
		)),
	)
}

type plainPage struct{}

func (plainPage) Render() *vdom.VNode {
	return vdom.Div(vdom.ID("plain-page"), vdom.H1("Other"))
}

func testConfig(t *testing.T) *ServerConfig {
	t.Helper()
	table, err := router.NewTable(
		router.Route{Path: "/", Page: "counter", Title: "Counter", Label: "Counter"},
		router.Route{Path: "/other", Page: "other", Title: "Other", Label: "Other"},
	)
	require.NoError(t, err)

	cfg := &ServerConfig{
		Routes: table,
		Pages: map[router.PageID]shell.Factory{
			"counter": newCounterPage,
			"other":   func(*shell.Env) shell.Page { return plainPage{} },
		},
		SessionConfig: &SessionConfig{ClearDelay: 20 * time.Millisecond},
		Logger:        slog.New(slog.NewTextHandler(io.Discard, nil)),
	}
	return cfg
}

// fakeConn is an in-memory Conn. Messages queued on in are read by the
// session; frames it writes arrive on out.
type fakeConn struct {
	in        chan []byte
	out       chan []byte
	closed    chan struct{}
	closeOnce sync.Once
}

func newFakeConn() *fakeConn {
	return &fakeConn{
		in:     make(chan []byte, 16),
		out:    make(chan []byte, 256),
		closed: make(chan struct{}),
	}
}

func (c *fakeConn) ReadMessage() (int, []byte, error) {
	select {
	case msg := <-c.in:
		return websocket.TextMessage, msg, nil
	case <-c.closed:
		return 0, nil, &websocket.CloseError{Code: websocket.CloseNormalClosure}
	}
}

func (c *fakeConn) WriteMessage(_ int, data []byte) error {
	select {
	case <-c.closed:
		return websocket.ErrCloseSent
	default:
	}
	c.out <- append([]byte(nil), data...)
	return nil
}

func (c *fakeConn) WriteControl(int, []byte, time.Time) error { return nil }
func (c *fakeConn) SetReadDeadline(time.Time) error           { return nil }
func (c *fakeConn) SetWriteDeadline(time.Time) error          { return nil }
func (c *fakeConn) SetReadLimit(int64)                        {}
func (c *fakeConn) SetPongHandler(func(string) error)         {}

func (c *fakeConn) Close() error {
	c.closeOnce.Do(func() { close(c.closed) })
	return nil
}

func (c *fakeConn) isClosed() bool {
	select {
	case <-c.closed:
		return true
	default:
		return false
	}
}

// send queues a client frame.
func (c *fakeConn) send(t *testing.T, f ClientFrame) {
	t.Helper()
	data, err := json.Marshal(f)
	require.NoError(t, err)
	c.in <- data
}

// next returns the next frame of the given type, skipping others.
func (c *fakeConn) next(t *testing.T, frameType string) *ServerFrame {
	t.Helper()
	timeout := time.After(2 * time.Second)
	for {
		select {
		case data := <-c.out:
			var f ServerFrame
			require.NoError(t, json.Unmarshal(data, &f))
			if f.Type == frameType {
				return &f
			}
		case <-timeout:
			t.Fatalf("no %s frame within timeout", frameType)
			return nil
		}
	}
}

// hidOf returns the hydration ID of the element with the given id in html.
func hidOf(t *testing.T, html, id string) string {
	t.Helper()
	re := regexp.MustCompile(`id="` + regexp.QuoteMeta(id) + `"[^>]*data-hid="(h\d+)"`)
	m := re.FindStringSubmatch(html)
	require.NotNil(t, m, "no element %q in %s", id, html)
	return m[1]
}

// recordingObserver counts session activity.
type recordingObserver struct {
	mu            sync.Mutex
	opened        int
	closed        int
	rejected      int
	events        []string
	navigations   []router.Change
	announcements []string
	transitions   []focus.Transition
}

func (o *recordingObserver) SessionOpened() {
	o.mu.Lock()
	defer o.mu.Unlock()
	o.opened++
}

func (o *recordingObserver) SessionClosed() {
	o.mu.Lock()
	defer o.mu.Unlock()
	o.closed++
}

func (o *recordingObserver) SessionRejected() {
	o.mu.Lock()
	defer o.mu.Unlock()
	o.rejected++
}

func (o *recordingObserver) RecordEvent(frameType string, _ time.Duration, _ error) {
	o.mu.Lock()
	defer o.mu.Unlock()
	o.events = append(o.events, frameType)
}

func (o *recordingObserver) RecordNavigation(c router.Change) {
	o.mu.Lock()
	defer o.mu.Unlock()
	o.navigations = append(o.navigations, c)
}

func (o *recordingObserver) RecordAnnouncement(a announce.Announcement) {
	o.mu.Lock()
	defer o.mu.Unlock()
	o.announcements = append(o.announcements, a.Text)
}

func (o *recordingObserver) RecordTrapTransition(tr focus.Transition) {
	o.mu.Lock()
	defer o.mu.Unlock()
	o.transitions = append(o.transitions, tr)
}

func (o *recordingObserver) RecordWebSocketError(string) {}

func (o *recordingObserver) counts() (opened, closed, rejected int) {
	o.mu.Lock()
	defer o.mu.Unlock()
	return o.opened, o.closed, o.rejected
}
