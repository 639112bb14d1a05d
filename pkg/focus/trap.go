package focus

import (
	"errors"
	"log/slog"

	"github.com/a11ylab/a11ydemo/pkg/vdom"
)

// Recovered focus errors. They are reported through Transition.Err and
// never returned to callers.
var (
	// ErrEmptyFocusableSet means a trap opened on a container without
	// focusable elements; focus went to the container.
	ErrEmptyFocusableSet = errors.New("focus trap container has no focusable elements")

	// ErrDetachedRestoreTarget means the trigger left the tree before the
	// trap closed; focus went to the fallback.
	ErrDetachedRestoreTarget = errors.New("focus restore target is no longer attached")
)

// State is the state of a Trap.
type State uint8

const (
	Closed State = iota
	Open
)

func (s State) String() string {
	if s == Open {
		return "open"
	}
	return "closed"
}

// Transition describes a state change of a trap, or a recovered error while
// in a state.
type Transition struct {
	Container string
	From      State
	To        State
	// Focus is the key focused as a result of the transition.
	Focus string
	Err   error
}

// KeyEvent is a keydown forwarded by the client.
type KeyEvent struct {
	Key   string
	Shift bool
}

// KeyResult tells the caller how a key was handled.
type KeyResult struct {
	// Handled is false when the trap ignored the key.
	Handled bool

	// PreventDefault is true when the browser's default action must not run.
	PreventDefault bool

	// Focus is the key of the element focused after the key. Empty means
	// the body.
	Focus string

	// Closed is true when the key closed the trap.
	Closed bool
}

// TrapOption configures a Trap.
type TrapOption func(*Trap)

// WithFallback sets the element focused when the trigger is detached at
// close time. The default is the body.
func WithFallback(key string) TrapOption {
	return func(t *Trap) {
		t.fallback = key
	}
}

// WithOnClose registers fn to run whenever the trap closes, whatever closed
// it. Pages use it to hide their overlay.
func WithOnClose(fn func()) TrapOption {
	return func(t *Trap) {
		t.onClose = fn
	}
}

// WithObserver registers fn for transitions of this trap.
func WithObserver(fn func(Transition)) TrapOption {
	return func(t *Trap) {
		t.observer = fn
	}
}

// WithTrapLogger sets the logger.
func WithTrapLogger(logger *slog.Logger) TrapOption {
	return func(t *Trap) {
		if logger != nil {
			t.logger = logger
		}
	}
}

// Trap confines keyboard focus to a container while open.
type Trap struct {
	doc       *Document
	manager   *Manager
	container string
	fallback  string
	state     State
	trigger   string
	bounds    []string
	pending   bool
	listening bool
	onClose   func()
	observer  func(Transition)
	logger    *slog.Logger
}

// NewTrap creates a closed trap for the element whose key is container.
func NewTrap(doc *Document, container string, opts ...TrapOption) *Trap {
	t := &Trap{
		doc:       doc,
		container: container,
		logger:    slog.Default(),
	}
	for _, opt := range opts {
		opt(t)
	}
	return t
}

// State returns the current state.
func (t *Trap) State() State { return t.state }

// IsOpen reports whether the trap is open.
func (t *Trap) IsOpen() bool { return t.state == Open }

// Container returns the container key.
func (t *Trap) Container() string { return t.container }

// Trigger returns the key captured when the trap opened.
func (t *Trap) Trigger() string { return t.trigger }

// Bounds returns the focus keys of the current candidates.
func (t *Trap) Bounds() []string {
	out := make([]string, len(t.bounds))
	copy(out, t.bounds)
	return out
}

// Pending reports whether activation waits for the container to render.
func (t *Trap) Pending() bool { return t.pending }

// Open activates the trap. On a trap that is already open it only
// recomputes the boundaries.
func (t *Trap) Open() {
	if t.state == Open {
		t.rescan()
		return
	}

	t.trigger = t.doc.ActiveKey()
	t.state = Open
	t.listening = true
	if t.manager != nil {
		t.manager.push(t)
	}

	if !t.doc.Attached(t.container) {
		t.pending = true
		t.logger.Debug("focus trap pending render", "container", t.container)
		t.emit(Transition{From: Closed, To: Open, Focus: t.doc.ActiveKey()})
		return
	}
	err := t.activate()
	t.emit(Transition{From: Closed, To: Open, Focus: t.doc.ActiveKey(), Err: err})
}

// activate focuses the first candidate, or the container when there is
// none.
func (t *Trap) activate() error {
	t.pending = false
	t.rescan()

	if len(t.bounds) == 0 {
		t.doc.Focus(t.container)
		t.logger.Debug("focus trap has no candidates", "container", t.container)
		return ErrEmptyFocusableSet
	}
	t.doc.Focus(t.bounds[0])
	return nil
}

// HandleKey applies a keydown to the trap.
func (t *Trap) HandleKey(ev KeyEvent) KeyResult {
	if t.state != Open || !t.listening {
		return KeyResult{}
	}

	switch ev.Key {
	case "Escape", "Esc":
		t.Close()
		return KeyResult{Handled: true, PreventDefault: true, Closed: true, Focus: t.doc.ActiveKey()}
	case "Tab":
		if t.pending {
			return KeyResult{Handled: true, PreventDefault: true, Focus: t.doc.ActiveKey()}
		}
		return t.tab(ev.Shift)
	default:
		return KeyResult{}
	}
}

func (t *Trap) tab(backward bool) KeyResult {
	t.rescan()

	n := len(t.bounds)
	if n == 0 {
		t.doc.Focus(t.container)
		return KeyResult{Handled: true, PreventDefault: true, Focus: t.doc.ActiveKey()}
	}

	first, last := t.bounds[0], t.bounds[n-1]
	idx := indexOf(t.bounds, t.doc.ActiveKey())

	var target string
	prevent := true
	switch {
	case idx < 0 && backward:
		target = last
	case idx < 0:
		target = first
	case backward && idx == 0:
		target = last
	case !backward && idx == n-1:
		target = first
	case backward:
		target, prevent = t.bounds[idx-1], false
	default:
		target, prevent = t.bounds[idx+1], false
	}

	t.doc.Focus(target)
	return KeyResult{Handled: true, PreventDefault: prevent, Focus: t.doc.ActiveKey()}
}

// Close deactivates the trap and restores focus to the trigger. When the
// trigger is gone focus moves to the fallback, or the body.
func (t *Trap) Close() {
	if t.state != Open {
		return
	}

	restore := true
	if t.manager != nil {
		restore = t.manager.remove(t)
	}

	t.state = Closed
	t.bounds = nil
	t.pending = false
	t.listening = false
	trigger := t.trigger
	t.trigger = ""

	var err error
	if restore {
		err = t.restore(trigger)
	}
	t.emit(Transition{From: Open, To: Closed, Focus: t.doc.ActiveKey(), Err: err})

	if t.onClose != nil {
		t.onClose()
	}
	if restore && t.manager != nil {
		t.manager.resume()
	}
}

func (t *Trap) restore(trigger string) error {
	if trigger == "" {
		t.doc.Blur()
		return nil
	}
	if t.doc.Focus(trigger) {
		return nil
	}
	t.logger.Debug("focus trap trigger detached", "container", t.container, "trigger", trigger, "fallback", t.fallback)
	if t.fallback == "" || !t.doc.Focus(t.fallback) {
		t.doc.Blur()
	}
	return ErrDetachedRestoreTarget
}

// Sync brings the trap up to date with the document after a render. It
// finishes a deferred activation, recomputes the boundaries and pulls focus
// back inside when it escaped. A trap whose container disappeared closes.
func (t *Trap) Sync() {
	if t.state != Open {
		return
	}
	if t.pending {
		if !t.doc.Attached(t.container) {
			return
		}
		// The open transition was already reported; only a recovered
		// error is worth another event.
		if err := t.activate(); err != nil {
			t.emit(Transition{From: Open, To: Open, Focus: t.doc.ActiveKey(), Err: err})
		}
		return
	}

	container := t.doc.Find(t.container)
	if container == nil {
		t.Close()
		return
	}
	t.rescan()
	if t.doc.Within(container) {
		return
	}
	if len(t.bounds) > 0 {
		t.doc.Focus(t.bounds[0])
	} else {
		t.doc.Focus(t.container)
	}
}

func (t *Trap) rescan() {
	t.bounds = Keys(Candidates(t.doc.Find(t.container)))
}

func (t *Trap) emit(tr Transition) {
	tr.Container = t.container
	if t.observer != nil {
		t.observer(tr)
	}
	if t.manager != nil && t.manager.observer != nil {
		t.manager.observer(tr)
	}
}

// Decorate marks the trap on tree for the client: the container gets
// data-trap-open and, when it has none, tabindex=-1; the boundary elements
// get data-trap-edge set to "first", "last" or "only".
func (t *Trap) Decorate(tree *vdom.VNode) {
	if t.state != Open || t.pending {
		return
	}
	container := vdom.FindKey(tree, t.container)
	if container == nil {
		return
	}
	container.Props["data-trap-open"] = "true"
	if _, ok := container.Prop("tabindex"); !ok {
		container.Props["tabindex"] = -1
	}

	nodes := Candidates(container)
	switch len(nodes) {
	case 0:
	case 1:
		nodes[0].Props["data-trap-edge"] = "only"
	default:
		nodes[0].Props["data-trap-edge"] = "first"
		nodes[len(nodes)-1].Props["data-trap-edge"] = "last"
	}
}

func indexOf(keys []string, key string) int {
	if key == "" {
		return -1
	}
	for i, k := range keys {
		if k == key {
			return i
		}
	}
	return -1
}
