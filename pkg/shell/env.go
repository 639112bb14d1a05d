package shell

import (
	"log/slog"
	"time"

	"github.com/a11ylab/a11ydemo/pkg/announce"
	"github.com/a11ylab/a11ydemo/pkg/focus"
	"github.com/a11ylab/a11ydemo/pkg/router"
	"github.com/a11ylab/a11ydemo/pkg/toast"
	"github.com/a11ylab/a11ydemo/pkg/vdom"
)

// Page is a mounted demo page.
type Page interface {
	Render() *vdom.VNode
}

// Unmounter is implemented by pages holding resources such as timers.
type Unmounter interface {
	Unmount()
}

// Factory creates a page instance for one mount.
type Factory func(env *Env) Page

// Timing holds the configurable UI delays used by pages.
type Timing struct {
	// AlertDuration is how long form success alerts stay visible.
	AlertDuration time.Duration

	// AsyncDuration is the length of the simulated async operation.
	AsyncDuration time.Duration
}

// DefaultTiming returns the standard delays.
func DefaultTiming() Timing {
	return Timing{
		AlertDuration: 3 * time.Second,
		AsyncDuration: 3 * time.Second,
	}
}

// Env carries the dependencies handed to pages. There are no package-level
// singletons; every tab gets its own Env.
type Env struct {
	Announcer     *announce.Announcer
	Notifications *toast.Center
	Focus         *focus.Manager
	Router        *router.Router
	Scheduler     announce.Scheduler
	Timing        Timing
	Logger        *slog.Logger
}

// Announce forwards to the announcer.
func (e *Env) Announce(msg string, politeness ...announce.Politeness) {
	if e.Announcer != nil {
		e.Announcer.Announce(msg, politeness...)
	}
}

// After schedules fn through the tab's scheduler.
func (e *Env) After(d time.Duration, fn func()) announce.Timer {
	s := e.Scheduler
	if s == nil {
		s = announce.TimeScheduler
	}
	return s.AfterFunc(d, fn)
}

// Document returns the focus document.
func (e *Env) Document() *focus.Document {
	return e.Focus.Document()
}
