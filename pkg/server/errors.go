package server

import (
	"errors"
	"fmt"

	apperrors "github.com/a11ylab/a11ydemo/internal/errors"
)

// Sentinel errors for common session and server error conditions. Each
// carries the transport code that is sent to the client.
var (
	// ErrSessionClosed is returned when an operation is attempted on a closed session.
	ErrSessionClosed = apperrors.New(apperrors.CodeSessionClosed)

	// ErrEventQueueFull is returned when the event queue is full and an event is dropped.
	ErrEventQueueFull = apperrors.New(apperrors.CodeQueueFull)

	// ErrMaxSessionsReached is returned when the maximum number of sessions is reached.
	ErrMaxSessionsReached = apperrors.New(apperrors.CodeSessionLimit)

	// ErrNoConnection is returned when attempting to send on a nil connection.
	ErrNoConnection = errors.New("server: no connection")

	// ErrNoRoutes is returned by New when no route table is configured.
	ErrNoRoutes = errors.New("server: route table is required")
)

// SessionError wraps an error with session context for debugging.
type SessionError struct {
	SessionID string
	Op        string // Operation that failed
	Err       error  // Underlying error
}

// Error returns the error message with session context.
func (e *SessionError) Error() string {
	if e.SessionID == "" {
		return fmt.Sprintf("server: %s: %v", e.Op, e.Err)
	}
	return fmt.Sprintf("server: session %s: %s: %v", e.SessionID, e.Op, e.Err)
}

// Unwrap returns the underlying error.
func (e *SessionError) Unwrap() error {
	return e.Err
}

// errorFrame converts err into an error frame for the client. Errors
// without a transport code are reported as invalid frames.
func errorFrame(err error) *ServerFrame {
	var ce *apperrors.CodedError
	if !errors.As(err, &ce) {
		ce = apperrors.New(apperrors.CodeInvalidFrame)
	}
	msg := ce.Message
	if ce.Detail != "" {
		msg += ": " + ce.Detail
	}
	return &ServerFrame{Type: FrameError, Code: ce.Code, Message: msg}
}
