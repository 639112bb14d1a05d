package announce

import (
	"log/slog"
	"sync"
	"sync/atomic"
	"time"

	"github.com/google/uuid"
)

// Politeness is the urgency of a live region.
type Politeness string

const (
	// Polite waits until the screen reader is idle.
	Polite Politeness = "polite"
	// Assertive interrupts current speech.
	Assertive Politeness = "assertive"
)

// Valid reports whether p is a known politeness level.
func (p Politeness) Valid() bool {
	return p == Polite || p == Assertive
}

// DefaultClearDelay is how long an announcement stays in the slot.
const DefaultClearDelay = 100 * time.Millisecond

// Announcement is the content of the announcement slot.
type Announcement struct {
	ID         string
	Text       string
	Politeness Politeness
	CreatedAt  time.Time
}

// Empty reports whether the slot holds no text.
func (a Announcement) Empty() bool {
	return a.Text == ""
}

// Option configures an Announcer.
type Option func(*Announcer)

// WithClearDelay sets how long an announcement stays before it is cleared.
// Non-positive values keep the default.
func WithClearDelay(d time.Duration) Option {
	return func(a *Announcer) {
		if d > 0 {
			a.delay = d
		}
	}
}

// WithScheduler sets the scheduler used for clear timers.
func WithScheduler(s Scheduler) Option {
	return func(a *Announcer) {
		if s != nil {
			a.scheduler = s
		}
	}
}

// WithClock sets the clock used for CreatedAt.
func WithClock(now func() time.Time) Option {
	return func(a *Announcer) {
		if now != nil {
			a.now = now
		}
	}
}

// WithLogger sets the logger.
func WithLogger(logger *slog.Logger) Option {
	return func(a *Announcer) {
		if logger != nil {
			a.logger = logger
		}
	}
}

type subscription struct {
	fn     func(Announcement)
	active atomic.Bool
}

// Announcer owns the announcement slot.
type Announcer struct {
	mu        sync.Mutex
	current   Announcement
	timer     Timer
	subs      []*subscription
	closed    bool
	delay     time.Duration
	scheduler Scheduler
	now       func() time.Time
	logger    *slog.Logger
}

// New creates an Announcer with an empty polite slot.
func New(opts ...Option) *Announcer {
	a := &Announcer{
		current:   Announcement{Politeness: Polite},
		delay:     DefaultClearDelay,
		scheduler: TimeScheduler,
		now:       time.Now,
		logger:    slog.Default(),
	}
	for _, opt := range opts {
		opt(a)
	}
	return a
}

// Announce places msg in the slot and schedules it to be cleared. The
// politeness defaults to Polite. Empty messages and announcements after
// Close are ignored and return the zero Announcement.
func (a *Announcer) Announce(msg string, politeness ...Politeness) Announcement {
	level := Polite
	if len(politeness) > 0 && politeness[0].Valid() {
		level = politeness[0]
	}

	a.mu.Lock()
	if a.closed || msg == "" {
		a.mu.Unlock()
		return Announcement{}
	}

	var events []Announcement
	if a.timer != nil {
		a.timer.Stop()
		a.timer = nil
	}
	if !a.current.Empty() {
		a.current = Announcement{
			ID:         a.current.ID,
			Politeness: a.current.Politeness,
			CreatedAt:  a.now(),
		}
		events = append(events, a.current)
	}

	next := Announcement{
		ID:         uuid.NewString(),
		Text:       msg,
		Politeness: level,
		CreatedAt:  a.now(),
	}
	a.current = next
	events = append(events, next)

	id := next.ID
	a.timer = a.scheduler.AfterFunc(a.delay, func() { a.clear(id) })
	subs := a.snapshot()
	a.mu.Unlock()

	a.logger.Debug("announce", "id", id, "politeness", level, "text", msg)
	for _, ev := range events {
		notify(subs, ev)
	}
	return next
}

// clear empties the slot if id is still the current announcement.
func (a *Announcer) clear(id string) {
	a.mu.Lock()
	if a.closed || a.current.ID != id || a.current.Empty() {
		a.mu.Unlock()
		return
	}
	a.timer = nil
	a.current = Announcement{
		ID:         id,
		Politeness: a.current.Politeness,
		CreatedAt:  a.now(),
	}
	cleared := a.current
	subs := a.snapshot()
	a.mu.Unlock()

	notify(subs, cleared)
}

// Current returns the content of the slot.
func (a *Announcer) Current() Announcement {
	a.mu.Lock()
	defer a.mu.Unlock()
	return a.current
}

// Subscribe registers fn for every change of the slot, including clears.
// The returned function removes the subscription and is idempotent.
func (a *Announcer) Subscribe(fn func(Announcement)) (unsubscribe func()) {
	s := &subscription{fn: fn}
	s.active.Store(true)
	a.mu.Lock()
	a.subs = append(a.subs, s)
	a.mu.Unlock()

	return func() {
		a.mu.Lock()
		defer a.mu.Unlock()
		if !s.active.Swap(false) {
			return
		}
		for i, other := range a.subs {
			if other == s {
				a.subs = append(a.subs[:i], a.subs[i+1:]...)
				break
			}
		}
	}
}

// Close stops the pending clear timer. Later announcements are ignored.
func (a *Announcer) Close() {
	a.mu.Lock()
	defer a.mu.Unlock()
	if a.closed {
		return
	}
	a.closed = true
	if a.timer != nil {
		a.timer.Stop()
		a.timer = nil
	}
	a.subs = nil
}

// snapshot copies the subscriber list. Callers hold a.mu.
func (a *Announcer) snapshot() []*subscription {
	subs := make([]*subscription, len(a.subs))
	copy(subs, a.subs)
	return subs
}

func notify(subs []*subscription, ev Announcement) {
	for _, s := range subs {
		if s.active.Load() {
			s.fn(ev)
		}
	}
}
