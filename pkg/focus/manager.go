package focus

import (
	"log/slog"

	"github.com/a11ylab/a11ydemo/pkg/vdom"
)

// ManagerOption configures a Manager.
type ManagerOption func(*Manager)

// WithTransitionObserver registers fn for transitions of every trap
// created by the manager.
func WithTransitionObserver(fn func(Transition)) ManagerOption {
	return func(m *Manager) {
		m.observer = fn
	}
}

// WithLogger sets the logger handed to traps.
func WithLogger(logger *slog.Logger) ManagerOption {
	return func(m *Manager) {
		if logger != nil {
			m.logger = logger
		}
	}
}

// Manager keeps the stack of open traps of one document. The most recently
// opened trap is on top and receives keys.
type Manager struct {
	doc      *Document
	stack    []*Trap
	observer func(Transition)
	logger   *slog.Logger
}

// NewManager creates a manager for doc.
func NewManager(doc *Document, opts ...ManagerOption) *Manager {
	m := &Manager{doc: doc, logger: slog.Default()}
	for _, opt := range opts {
		opt(m)
	}
	return m
}

// Document returns the managed document.
func (m *Manager) Document() *Document {
	return m.doc
}

// NewTrap creates a trap bound to the manager. Opening and closing it
// maintains the stack.
func (m *Manager) NewTrap(container string, opts ...TrapOption) *Trap {
	t := NewTrap(m.doc, container, append([]TrapOption{WithTrapLogger(m.logger)}, opts...)...)
	t.manager = m
	return t
}

// Top returns the trap that currently receives keys, or nil.
func (m *Manager) Top() *Trap {
	if len(m.stack) == 0 {
		return nil
	}
	return m.stack[len(m.stack)-1]
}

// Depth returns the number of open traps.
func (m *Manager) Depth() int {
	return len(m.stack)
}

// Active reports whether any trap is open.
func (m *Manager) Active() bool {
	return len(m.stack) > 0
}

// HandleKey routes a keydown to the top trap.
func (m *Manager) HandleKey(ev KeyEvent) KeyResult {
	top := m.Top()
	if top == nil {
		return KeyResult{}
	}
	return top.HandleKey(ev)
}

// AfterRender installs a freshly rendered tree, synchronises the traps and
// decorates the top trap's boundaries on tree.
func (m *Manager) AfterRender(tree *vdom.VNode) {
	m.doc.SetTree(tree)

	// Suspended traps whose container vanished close without moving focus.
	for i := len(m.stack) - 2; i >= 0; i-- {
		t := m.stack[i]
		if !t.pending && !m.doc.Attached(t.container) {
			t.Close()
		}
	}
	if top := m.Top(); top != nil {
		top.Sync()
	}
	if top := m.Top(); top != nil {
		top.Decorate(tree)
	}
}

// CloseAll closes every trap, top first. Used on navigation.
func (m *Manager) CloseAll() {
	for len(m.stack) > 0 {
		m.Top().Close()
	}
}

// push places t on top of the stack.
func (m *Manager) push(t *Trap) {
	m.remove(t)
	m.stack = append(m.stack, t)
	m.logger.Debug("focus trap opened", "container", t.container, "depth", len(m.stack))
}

// remove drops t from the stack and reports whether it was on top.
func (m *Manager) remove(t *Trap) bool {
	for i := len(m.stack) - 1; i >= 0; i-- {
		if m.stack[i] != t {
			continue
		}
		top := i == len(m.stack)-1
		m.stack = append(m.stack[:i], m.stack[i+1:]...)
		return top
	}
	return false
}

// resume lets the new top trap reclaim focus after the one above it closed.
func (m *Manager) resume() {
	if top := m.Top(); top != nil {
		top.Sync()
	}
}
