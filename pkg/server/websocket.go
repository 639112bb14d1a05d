package server

import (
	"runtime/debug"
	"time"

	"github.com/gorilla/websocket"
)

// ReadLoop continuously reads frames from the WebSocket connection,
// decodes them and queues them for the event loop. It blocks until the
// connection is closed or an error occurs, then closes the session.
func (s *Session) ReadLoop() {
	defer s.Close()

	s.conn.SetReadLimit(s.config.MaxMessageSize)
	_ = s.conn.SetReadDeadline(time.Now().Add(s.config.ReadTimeout))
	s.conn.SetPongHandler(func(string) error {
		s.touch()
		return s.conn.SetReadDeadline(time.Now().Add(s.config.ReadTimeout))
	})

	for {
		_, msg, err := s.conn.ReadMessage()
		if err != nil {
			if s.closed.Load() {
				return
			}
			if websocket.IsUnexpectedCloseError(err,
				websocket.CloseGoingAway,
				websocket.CloseAbnormalClosure,
				websocket.CloseNormalClosure,
				websocket.CloseNoStatusReceived) {
				s.observer.RecordWebSocketError("read")
				s.logger.Error("read error", "error", err)
			}
			return
		}

		_ = s.conn.SetReadDeadline(time.Now().Add(s.config.ReadTimeout))
		s.touch()

		frame, err := DecodeClientFrame(msg)
		if err != nil {
			s.observer.RecordWebSocketError("decode")
			s.logger.Warn("frame decode error", "error", err)
			_ = s.send(errorFrame(err))
			continue
		}

		if err := s.QueueEvent(frame); err != nil {
			_ = s.send(errorFrame(err))
		}
	}
}

// WriteLoop sends heartbeat pings until the session closes.
func (s *Session) WriteLoop() {
	ticker := time.NewTicker(s.config.HeartbeatInterval)
	defer ticker.Stop()

	for {
		select {
		case <-ticker.C:
			if err := s.sendPing(); err != nil {
				if !s.closed.Load() {
					s.observer.RecordWebSocketError("ping")
					s.logger.Warn("heartbeat failed", "error", err)
					s.Close()
				}
				return
			}

		case <-s.done:
			return
		}
	}
}

// sendPing writes a ping control frame. Control frames may be written
// concurrently with data frames.
func (s *Session) sendPing() error {
	if s.closed.Load() {
		return ErrSessionClosed
	}
	return s.conn.WriteControl(websocket.PingMessage, nil, time.Now().Add(s.config.WriteTimeout))
}

// EventLoop sends the initial render, then processes queued frames and
// dispatched callbacks one at a time until the session closes. It owns
// all component state and releases it on exit.
func (s *Session) EventLoop() {
	defer s.teardown()

	s.render()
	for {
		select {
		case frame := <-s.events:
			s.handleFrame(frame)

		case fn := <-s.dispatchCh:
			s.executeDispatch(fn)

		case <-s.done:
			return
		}
	}
}

// executeDispatch runs a dispatched function with panic recovery and
// renders afterwards.
func (s *Session) executeDispatch(fn func()) {
	defer func() {
		if r := recover(); r != nil {
			stack := debug.Stack()
			s.logger.Error("dispatch panic",
				"panic", r,
				"stack", string(stack))
		}
	}()

	fn()
	s.render()
}

// Start starts all session loops.
func (s *Session) Start() {
	if s.closed.Load() {
		return
	}
	s.started.Store(true)
	go s.ReadLoop()
	go s.WriteLoop()
	go s.EventLoop()
}
