package toast

import (
	"fmt"
	"log/slog"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/a11ylab/a11ydemo/pkg/announce"
)

// Type represents the toast notification type.
type Type string

const (
	TypeSuccess Type = "success"
	TypeError   Type = "error"
	TypeWarning Type = "warning"
	TypeInfo    Type = "info"
)

// Valid reports whether t is a known notification type.
func (t Type) Valid() bool {
	switch t {
	case TypeSuccess, TypeError, TypeWarning, TypeInfo:
		return true
	}
	return false
}

// politeness maps a type to the live-region urgency used to announce it.
func (t Type) politeness() announce.Politeness {
	if t == TypeError {
		return announce.Assertive
	}
	return announce.Polite
}

// DefaultDismissAfter is how long a notification stays visible.
const DefaultDismissAfter = 5 * time.Second

// RemovedMessage is announced when a notification is removed by the user.
const RemovedMessage = "Notification removed"

// Notification is one visible toast.
type Notification struct {
	ID        string
	Type      Type
	Message   string
	CreatedAt time.Time
}

// Announcer is the subset of the live-region announcer the center needs.
type Announcer interface {
	Announce(msg string, politeness ...announce.Politeness) announce.Announcement
}

// Option configures a Center.
type Option func(*Center)

// WithDismissAfter sets the auto-dismiss delay. Non-positive values keep
// the default.
func WithDismissAfter(d time.Duration) Option {
	return func(c *Center) {
		if d > 0 {
			c.dismissAfter = d
		}
	}
}

// WithScheduler sets the scheduler used for dismiss timers.
func WithScheduler(s announce.Scheduler) Option {
	return func(c *Center) {
		if s != nil {
			c.scheduler = s
		}
	}
}

// WithClock sets the clock used for CreatedAt.
func WithClock(now func() time.Time) Option {
	return func(c *Center) {
		if now != nil {
			c.now = now
		}
	}
}

// WithLogger sets the logger.
func WithLogger(logger *slog.Logger) Option {
	return func(c *Center) {
		if logger != nil {
			c.logger = logger
		}
	}
}

// WithObserver registers fn to be called after every change of the list.
func WithObserver(fn func([]Notification)) Option {
	return func(c *Center) {
		c.observer = fn
	}
}

// Center holds the notification list of one tab.
type Center struct {
	mu           sync.Mutex
	items        []Notification
	timers       map[string]announce.Timer
	closed       bool
	announcer    Announcer
	scheduler    announce.Scheduler
	dismissAfter time.Duration
	now          func() time.Time
	logger       *slog.Logger
	observer     func([]Notification)
}

// NewCenter creates a notification center announcing through announcer.
func NewCenter(announcer Announcer, opts ...Option) *Center {
	c := &Center{
		timers:       make(map[string]announce.Timer),
		announcer:    announcer,
		scheduler:    announce.TimeScheduler,
		dismissAfter: DefaultDismissAfter,
		now:          time.Now,
		logger:       slog.Default(),
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// Show adds a notification, announces it and schedules its dismissal.
// Unknown types are shown as info. It returns the zero Notification after
// Close.
func (c *Center) Show(level Type, message string) Notification {
	if !level.Valid() {
		level = TypeInfo
	}

	c.mu.Lock()
	if c.closed {
		c.mu.Unlock()
		return Notification{}
	}
	n := Notification{
		ID:        uuid.NewString(),
		Type:      level,
		Message:   message,
		CreatedAt: c.now(),
	}
	c.items = append(c.items, n)
	id := n.ID
	c.timers[id] = c.scheduler.AfterFunc(c.dismissAfter, func() { c.dismiss(id) })
	list := c.listLocked()
	c.mu.Unlock()

	c.logger.Debug("notification added", "id", id, "type", level)
	if c.announcer != nil {
		c.announcer.Announce(fmt.Sprintf("%s: %s", level, message), level.politeness())
	}
	c.notify(list)
	return n
}

// Success shows a success notification.
func (c *Center) Success(message string) Notification { return c.Show(TypeSuccess, message) }

// Error shows an error notification.
func (c *Center) Error(message string) Notification { return c.Show(TypeError, message) }

// Warning shows a warning notification.
func (c *Center) Warning(message string) Notification { return c.Show(TypeWarning, message) }

// Info shows an info notification.
func (c *Center) Info(message string) Notification { return c.Show(TypeInfo, message) }

// Remove deletes a notification on user request and announces the
// removal. It reports whether the notification existed.
func (c *Center) Remove(id string) bool {
	c.mu.Lock()
	if !c.removeLocked(id) {
		c.mu.Unlock()
		return false
	}
	list := c.listLocked()
	c.mu.Unlock()

	if c.announcer != nil {
		c.announcer.Announce(RemovedMessage)
	}
	c.notify(list)
	return true
}

// dismiss removes an expired notification without announcing.
func (c *Center) dismiss(id string) {
	c.mu.Lock()
	if c.closed || !c.removeLocked(id) {
		c.mu.Unlock()
		return
	}
	list := c.listLocked()
	c.mu.Unlock()

	c.logger.Debug("notification dismissed", "id", id)
	c.notify(list)
}

// List returns the visible notifications, oldest first.
func (c *Center) List() []Notification {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.listLocked()
}

// Len returns the number of visible notifications.
func (c *Center) Len() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return len(c.items)
}

// Close cancels all pending dismiss timers. Later calls to Show are
// ignored.
func (c *Center) Close() {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.closed {
		return
	}
	c.closed = true
	for id, t := range c.timers {
		t.Stop()
		delete(c.timers, id)
	}
}

func (c *Center) removeLocked(id string) bool {
	for i, n := range c.items {
		if n.ID != id {
			continue
		}
		c.items = append(c.items[:i], c.items[i+1:]...)
		if t, ok := c.timers[id]; ok {
			t.Stop()
			delete(c.timers, id)
		}
		return true
	}
	return false
}

func (c *Center) listLocked() []Notification {
	out := make([]Notification, len(c.items))
	copy(out, c.items)
	return out
}

func (c *Center) notify(list []Notification) {
	if c.observer != nil {
		c.observer(list)
	}
}
