package server

import (
	"context"
	"log/slog"
	"sync"
	"sync/atomic"
	"time"
)

// SessionManager manages all active sessions.
// It handles session creation, lookup, idle cleanup and shutdown.
type SessionManager struct {
	// Sessions map protected by RWMutex
	sessions map[string]*Session
	mu       sync.RWMutex

	config *ServerConfig

	// Cleanup
	cleanupInterval time.Duration
	done            chan struct{}
	cleanupDone     chan struct{}
	shutdownOnce    sync.Once

	// Metrics
	totalCreated atomic.Uint64
	totalClosed  atomic.Uint64
	rejected     atomic.Uint64
	peakSessions int

	// Callbacks
	onSessionCreate func(*Session)
	onSessionClose  func(*Session)

	logger *slog.Logger
}

// ManagerStats is a snapshot of session counters.
type ManagerStats struct {
	Active       int    `json:"active"`
	TotalCreated uint64 `json:"total_created"`
	TotalClosed  uint64 `json:"total_closed"`
	Rejected     uint64 `json:"rejected"`
	Peak         int    `json:"peak"`
}

// NewSessionManager creates a SessionManager and starts its idle cleanup
// loop. cfg must have its defaults applied.
func NewSessionManager(cfg *ServerConfig) *SessionManager {
	interval := cfg.SessionConfig.IdleTimeout / 4
	if interval <= 0 || interval > 30*time.Second {
		interval = 30 * time.Second
	}
	sm := &SessionManager{
		sessions:        make(map[string]*Session),
		config:          cfg,
		cleanupInterval: interval,
		done:            make(chan struct{}),
		cleanupDone:     make(chan struct{}),
		logger:          cfg.Logger.With("component", "session_manager"),
	}
	go sm.cleanupLoop()
	return sm
}

// Create creates and registers a session for conn positioned at path. The
// session is not started.
func (sm *SessionManager) Create(conn Conn, path string) (*Session, error) {
	sm.mu.Lock()
	if len(sm.sessions) >= sm.config.MaxSessions {
		sm.mu.Unlock()
		sm.rejected.Add(1)
		sm.config.Observer.SessionRejected()
		return nil, ErrMaxSessionsReached
	}

	session := newSession(conn, path, sm.config)
	session.onClose = sm.remove
	sm.sessions[session.ID] = session
	if len(sm.sessions) > sm.peakSessions {
		sm.peakSessions = len(sm.sessions)
	}
	active := len(sm.sessions)
	sm.mu.Unlock()

	sm.totalCreated.Add(1)
	sm.config.Observer.SessionOpened()
	if sm.onSessionCreate != nil {
		sm.onSessionCreate(session)
	}

	sm.logger.Info("session created",
		"session_id", session.ID,
		"path", session.Path(),
		"active_sessions", active)
	return session, nil
}

// remove unregisters a closed session. It is the session's close hook.
func (sm *SessionManager) remove(s *Session) {
	sm.mu.Lock()
	_, ok := sm.sessions[s.ID]
	delete(sm.sessions, s.ID)
	sm.mu.Unlock()
	if !ok {
		return
	}

	sm.totalClosed.Add(1)
	sm.config.Observer.SessionClosed()
	if sm.onSessionClose != nil {
		sm.onSessionClose(s)
	}
	sm.logger.Info("session removed",
		"session_id", s.ID,
		"duration", time.Since(s.CreatedAt).Round(time.Millisecond))
}

// Get returns the session with the given ID, or nil.
func (sm *SessionManager) Get(id string) *Session {
	sm.mu.RLock()
	defer sm.mu.RUnlock()
	return sm.sessions[id]
}

// Close closes the session with the given ID.
func (sm *SessionManager) Close(id string) {
	if s := sm.Get(id); s != nil {
		s.Close()
	}
}

// Count returns the number of active sessions.
func (sm *SessionManager) Count() int {
	sm.mu.RLock()
	defer sm.mu.RUnlock()
	return len(sm.sessions)
}

// ForEach iterates over all sessions until fn returns false.
// The callback should not perform long-running operations as it holds the read lock.
func (sm *SessionManager) ForEach(fn func(*Session) bool) {
	sm.mu.RLock()
	defer sm.mu.RUnlock()
	for _, s := range sm.sessions {
		if !fn(s) {
			return
		}
	}
}

// Stats returns a snapshot of the session counters.
func (sm *SessionManager) Stats() ManagerStats {
	sm.mu.RLock()
	active := len(sm.sessions)
	peak := sm.peakSessions
	sm.mu.RUnlock()

	return ManagerStats{
		Active:       active,
		TotalCreated: sm.totalCreated.Load(),
		TotalClosed:  sm.totalClosed.Load(),
		Rejected:     sm.rejected.Load(),
		Peak:         peak,
	}
}

// SetOnSessionCreate sets a callback run after a session is created.
func (sm *SessionManager) SetOnSessionCreate(fn func(*Session)) {
	sm.onSessionCreate = fn
}

// SetOnSessionClose sets a callback run after a session is removed.
func (sm *SessionManager) SetOnSessionClose(fn func(*Session)) {
	sm.onSessionClose = fn
}

func (sm *SessionManager) cleanupLoop() {
	defer close(sm.cleanupDone)

	ticker := time.NewTicker(sm.cleanupInterval)
	defer ticker.Stop()

	for {
		select {
		case <-ticker.C:
			sm.cleanupExpired()
		case <-sm.done:
			return
		}
	}
}

// cleanupExpired closes sessions idle for longer than the idle timeout.
func (sm *SessionManager) cleanupExpired() {
	cutoff := time.Now().Add(-sm.config.SessionConfig.IdleTimeout)

	var expired []*Session
	sm.ForEach(func(s *Session) bool {
		if s.LastActive().Before(cutoff) {
			expired = append(expired, s)
		}
		return true
	})

	for _, s := range expired {
		sm.logger.Info("closing idle session", "session_id", s.ID, "last_active", s.LastActive())
		s.Close()
	}
}

// Shutdown closes all sessions and stops the cleanup loop.
func (sm *SessionManager) Shutdown() {
	_ = sm.ShutdownWithContext(context.Background())
}

// ShutdownWithContext closes all sessions concurrently. It returns the
// context error when ctx ends before every session closed.
func (sm *SessionManager) ShutdownWithContext(ctx context.Context) error {
	sm.shutdownOnce.Do(func() {
		close(sm.done)
	})
	<-sm.cleanupDone

	sm.mu.RLock()
	sessions := make([]*Session, 0, len(sm.sessions))
	for _, s := range sm.sessions {
		sessions = append(sessions, s)
	}
	sm.mu.RUnlock()

	var wg sync.WaitGroup
	for _, session := range sessions {
		wg.Add(1)
		go func(s *Session) {
			defer wg.Done()
			s.Close()
		}(session)
	}

	finished := make(chan struct{})
	go func() {
		wg.Wait()
		close(finished)
	}()

	select {
	case <-finished:
		sm.logger.Info("session manager shutdown", "closed_sessions", len(sessions))
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}
