package router

import (
	"errors"
	"fmt"
)

// PageID identifies a page implementation.
type PageID string

// NotFoundPage is the page every unknown path resolves to.
const NotFoundPage PageID = "not-found"

// Route binds a canonical path to a page.
type Route struct {
	// Path is the canonical request path, e.g. "/semantic".
	Path string

	// Page identifies the page rendered for Path.
	Page PageID

	// Title is the document title.
	Title string

	// Label is the text of the navigation link. Routes without a label are
	// reachable but not listed in the navigation landmark.
	Label string
}

// NotFound reports whether r is the not-found route.
func (r Route) NotFound() bool {
	return r.Page == NotFoundPage
}

// Route table errors.
var (
	ErrDuplicateRoute = errors.New("duplicate route path")
	ErrInvalidRoute   = errors.New("invalid route")
)

// NotFoundTitle is the document title of the not-found view.
const NotFoundTitle = "Page not found"

// Table is the static, immutable route table.
type Table struct {
	routes []Route
	byPath map[string]int
}

// NewTable builds a route table. Paths must be canonical and unique and
// every route needs a page ID other than NotFoundPage.
func NewTable(routes ...Route) (*Table, error) {
	t := &Table{
		routes: make([]Route, 0, len(routes)),
		byPath: make(map[string]int, len(routes)),
	}
	for _, r := range routes {
		if r.Page == "" || r.Page == NotFoundPage {
			return nil, fmt.Errorf("%w: %q has page ID %q", ErrInvalidRoute, r.Path, r.Page)
		}
		if !IsCanonical(r.Path) {
			return nil, fmt.Errorf("%w: path %q is not canonical", ErrInvalidRoute, r.Path)
		}
		if _, ok := t.byPath[r.Path]; ok {
			return nil, fmt.Errorf("%w: %s", ErrDuplicateRoute, r.Path)
		}
		t.byPath[r.Path] = len(t.routes)
		t.routes = append(t.routes, r)
	}
	return t, nil
}

// Lookup returns the route registered for the canonical form of path.
func (t *Table) Lookup(path string) (Route, bool) {
	canonical, err := Canonicalize(path)
	if err != nil {
		return Route{}, false
	}
	i, ok := t.byPath[canonical]
	if !ok {
		return Route{}, false
	}
	return t.routes[i], true
}

// Resolve returns the route for path. Unknown or invalid paths resolve to
// a not-found route carrying the requested path.
func (t *Table) Resolve(path string) Route {
	if r, ok := t.Lookup(path); ok {
		return r
	}
	return Route{Path: path, Page: NotFoundPage, Title: NotFoundTitle}
}

// Routes returns the registered routes in registration order.
func (t *Table) Routes() []Route {
	out := make([]Route, len(t.routes))
	copy(out, t.routes)
	return out
}

// Len returns the number of registered routes.
func (t *Table) Len() int {
	return len(t.routes)
}
