package router

import (
	"log/slog"
)

// Change describes a completed navigation.
type Change struct {
	// Previous is the path before the navigation.
	Previous string

	// Path is the new current path.
	Path string

	// Route is the route Path resolved to.
	Route Route
}

// Option configures a Router.
type Option func(*Router)

// WithLogger sets the logger used for navigation events.
func WithLogger(logger *slog.Logger) Option {
	return func(r *Router) {
		if logger != nil {
			r.logger = logger
		}
	}
}

// WithInitialPath sets the path the router starts at. Defaults to "/".
func WithInitialPath(path string) Option {
	return func(r *Router) {
		r.current = normalize(path)
	}
}

type subscriber struct {
	fn     func(Change)
	active bool
}

// Router tracks the current path of one tab and notifies subscribers when
// it changes. It must only be used from the goroutine that owns it.
type Router struct {
	table   *Table
	current string
	route   Route
	subs    []*subscriber
	logger  *slog.Logger
}

// New creates a router over table.
func New(table *Table, opts ...Option) *Router {
	r := &Router{
		table:   table,
		current: "/",
		logger:  slog.Default(),
	}
	for _, opt := range opts {
		opt(r)
	}
	r.route = table.Resolve(r.current)
	return r
}

// Navigate makes path the current path and synchronously notifies
// subscribers in subscription order. Unknown paths resolve to the
// not-found route; Navigate never fails.
func (r *Router) Navigate(path string) Route {
	previous := r.current
	r.current = normalize(path)
	r.route = r.table.Resolve(r.current)

	if r.route.NotFound() {
		r.logger.Debug("navigation not found", "path", r.current)
	} else {
		r.logger.Debug("navigate", "from", previous, "to", r.current, "page", r.route.Page)
	}

	change := Change{Previous: previous, Path: r.current, Route: r.route}
	// Snapshot so callbacks may subscribe or unsubscribe while we iterate.
	subs := make([]*subscriber, len(r.subs))
	copy(subs, r.subs)
	for _, s := range subs {
		if s.active {
			s.fn(change)
		}
	}
	return r.route
}

// Subscribe registers fn for navigation changes. The returned function
// removes the subscription; calling it more than once is a no-op.
func (r *Router) Subscribe(fn func(Change)) (unsubscribe func()) {
	s := &subscriber{fn: fn, active: true}
	r.subs = append(r.subs, s)
	return func() {
		if !s.active {
			return
		}
		s.active = false
		for i, other := range r.subs {
			if other == s {
				r.subs = append(r.subs[:i], r.subs[i+1:]...)
				break
			}
		}
	}
}

// CurrentPath returns the current path.
func (r *Router) CurrentPath() string {
	return r.current
}

// Current returns the route the current path resolves to.
func (r *Router) Current() Route {
	return r.route
}

// Table returns the route table.
func (r *Router) Table() *Table {
	return r.table
}

// normalize returns the canonical form of path, or path itself when it
// cannot be canonicalized.
func normalize(path string) string {
	canonical, err := Canonicalize(path)
	if err != nil {
		return path
	}
	return canonical
}
