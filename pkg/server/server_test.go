package server

import (
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/gorilla/websocket"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	apperrors "github.com/a11ylab/a11ydemo/internal/errors"
	"github.com/a11ylab/a11ydemo/pkg/middleware"
)

func newTestServer(t *testing.T, mutate func(*ServerConfig)) (*Server, *httptest.Server) {
	t.Helper()
	cfg := testConfig(t)
	cfg.ClientScript = []byte("console.log('client')")
	cfg.Styles = []string{"body{margin:0}"}
	if mutate != nil {
		mutate(cfg)
	}
	s, err := New(cfg)
	require.NoError(t, err)
	ts := httptest.NewServer(s.Handler())
	t.Cleanup(func() {
		s.Sessions().Shutdown()
		ts.Close()
	})
	return s, ts
}

func get(t *testing.T, url string) (*http.Response, string) {
	t.Helper()
	client := &http.Client{
		CheckRedirect: func(*http.Request, []*http.Request) error { return http.ErrUseLastResponse },
	}
	resp, err := client.Get(url)
	require.NoError(t, err)
	defer resp.Body.Close()
	body, err := io.ReadAll(resp.Body)
	require.NoError(t, err)
	return resp, string(body)
}

func dial(t *testing.T, ts *httptest.Server, path string) *websocket.Conn {
	t.Helper()
	url := "ws" + strings.TrimPrefix(ts.URL, "http") + LivePath + "?path=" + path
	conn, resp, err := websocket.DefaultDialer.Dial(url, nil)
	require.NoError(t, err)
	resp.Body.Close()
	t.Cleanup(func() { conn.Close() })
	return conn
}

func readFrame(t *testing.T, conn *websocket.Conn, frameType string) *ServerFrame {
	t.Helper()
	require.NoError(t, conn.SetReadDeadline(time.Now().Add(2*time.Second)))
	for {
		_, data, err := conn.ReadMessage()
		require.NoError(t, err)
		var f ServerFrame
		require.NoError(t, json.Unmarshal(data, &f))
		if f.Type == frameType {
			return &f
		}
	}
}

func TestNewRequiresRoutes(t *testing.T) {
	_, err := New(&ServerConfig{})
	assert.ErrorIs(t, err, ErrNoRoutes)
}

func TestPageRender(t *testing.T) {
	_, ts := newTestServer(t, nil)

	resp, body := get(t, ts.URL+"/")

	assert.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Equal(t, "text/html; charset=utf-8", resp.Header.Get("Content-Type"))
	assert.Contains(t, body, "<title>Counter | Accessibility Demo</title>")
	assert.Contains(t, body, `<html lang="en">`)
	assert.Contains(t, body, "<style>body{margin:0}</style>")
	assert.Contains(t, body, `<script src="/_client.js" data-live="/_live" defer></script>`)
	assert.Contains(t, body, `id="counter-page"`)
	assert.Contains(t, body, `aria-current="page"`)
}

func TestPageNotFound(t *testing.T) {
	_, ts := newTestServer(t, nil)

	resp, body := get(t, ts.URL+"/othr")

	assert.Equal(t, http.StatusNotFound, resp.StatusCode)
	assert.Contains(t, body, "Page not found")
	assert.Contains(t, body, `id="not-found-suggestion"`)
}

func TestPageRedirectsToCanonicalPath(t *testing.T) {
	_, ts := newTestServer(t, nil)

	resp, _ := get(t, ts.URL+"/other/?x=1")

	assert.Equal(t, http.StatusPermanentRedirect, resp.StatusCode)
	assert.Equal(t, "/other?x=1", resp.Header.Get("Location"))
}

func TestClientScript(t *testing.T) {
	_, ts := newTestServer(t, nil)

	resp, body := get(t, ts.URL+ClientScriptPath)

	assert.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Equal(t, "text/javascript; charset=utf-8", resp.Header.Get("Content-Type"))
	assert.Equal(t, "console.log('client')", body)
}

func TestHealth(t *testing.T) {
	_, ts := newTestServer(t, nil)

	resp, body := get(t, ts.URL+HealthPath)
	require.Equal(t, http.StatusOK, resp.StatusCode)

	var health struct {
		Status   string       `json:"status"`
		Sessions ManagerStats `json:"sessions"`
	}
	require.NoError(t, json.Unmarshal([]byte(body), &health))
	assert.Equal(t, "ok", health.Status)
	assert.Equal(t, 0, health.Sessions.Active)
}

func TestMetricsEndpoint(t *testing.T) {
	_, ts := newTestServer(t, func(cfg *ServerConfig) {
		cfg.Metrics = middleware.NewMetrics()
	})

	get(t, ts.URL+"/")
	resp, body := get(t, ts.URL+MetricsPath)

	assert.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Contains(t, body, "a11ydemo_http_requests_total")
}

func TestMetricsDisabled(t *testing.T) {
	_, ts := newTestServer(t, nil)

	resp, _ := get(t, ts.URL+MetricsPath)

	// Without metrics the path is an ordinary unknown page.
	assert.Equal(t, http.StatusNotFound, resp.StatusCode)
}

func TestWebSocketRoundTrip(t *testing.T) {
	s, ts := newTestServer(t, nil)
	conn := dial(t, ts, "/")

	frame := readFrame(t, conn, FrameRender)
	assert.Equal(t, "/", frame.Path)
	assert.Eventually(t, func() bool { return s.Sessions().Count() == 1 }, time.Second, 5*time.Millisecond)

	click := ClientFrame{Type: FrameEvent, Name: EventClick, HID: hidOf(t, frame.HTML, "increment")}
	require.NoError(t, conn.WriteJSON(click))

	live := readFrame(t, conn, FrameLive)
	assert.Equal(t, "Counter updated to 1", live.Text)
	frame = readFrame(t, conn, FrameRender)
	assert.Contains(t, frame.HTML, "Count 1")

	require.NoError(t, conn.WriteJSON(ClientFrame{Type: FrameNavigate, Path: "/other"}))
	frame = readFrame(t, conn, FrameRender)
	assert.Equal(t, "/other", frame.Path)

	conn.Close()
	assert.Eventually(t, func() bool { return s.Sessions().Count() == 0 }, 2*time.Second, 10*time.Millisecond)
}

func TestWebSocketStartsAtRequestedPath(t *testing.T) {
	_, ts := newTestServer(t, nil)
	conn := dial(t, ts, "/other")

	frame := readFrame(t, conn, FrameRender)
	assert.Equal(t, "/other", frame.Path)
	assert.Contains(t, frame.HTML, `id="plain-page"`)
}

func TestWebSocketSessionLimit(t *testing.T) {
	_, ts := newTestServer(t, func(cfg *ServerConfig) {
		cfg.MaxSessions = 1
	})
	first := dial(t, ts, "/")
	readFrame(t, first, FrameRender)

	second := dial(t, ts, "/")
	errFrame := readFrame(t, second, FrameError)
	assert.Equal(t, apperrors.CodeSessionLimit, errFrame.Code)

	_, _, err := second.ReadMessage()
	assert.True(t, websocket.IsCloseError(err, websocket.CloseTryAgainLater), "got %v", err)
}

func TestWebSocketRejectsForeignOrigin(t *testing.T) {
	_, ts := newTestServer(t, nil)

	url := "ws" + strings.TrimPrefix(ts.URL, "http") + LivePath
	header := http.Header{"Origin": []string{"https://evil.example"}}
	_, resp, err := websocket.DefaultDialer.Dial(url, header)

	require.Error(t, err)
	require.NotNil(t, resp)
	assert.Equal(t, http.StatusForbidden, resp.StatusCode)
}

func TestWebSocketAllowedOrigin(t *testing.T) {
	_, ts := newTestServer(t, func(cfg *ServerConfig) {
		cfg.AllowedOrigins = []string{"https://docs.example"}
	})

	url := "ws" + strings.TrimPrefix(ts.URL, "http") + LivePath
	header := http.Header{"Origin": []string{"https://docs.example"}}
	conn, resp, err := websocket.DefaultDialer.Dial(url, header)
	require.NoError(t, err)
	resp.Body.Close()
	defer conn.Close()

	readFrame(t, conn, FrameRender)
}

func TestSameOriginCheck(t *testing.T) {
	tests := []struct {
		name   string
		origin string
		host   string
		want   bool
	}{
		{"no origin", "", "example.com", true},
		{"same host", "https://example.com", "example.com", true},
		{"same host with port", "http://localhost:8080", "localhost:8080", true},
		{"different host", "https://evil.com", "example.com", false},
		{"different port", "http://localhost:9090", "localhost:8080", false},
		{"malformed origin", "://bad", "example.com", false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			r := httptest.NewRequest(http.MethodGet, "/_live", nil)
			r.Host = tt.host
			if tt.origin != "" {
				r.Header.Set("Origin", tt.origin)
			}
			assert.Equal(t, tt.want, SameOriginCheck(r))
		})
	}
}
