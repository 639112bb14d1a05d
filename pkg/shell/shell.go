package shell

import (
	"fmt"
	"log/slog"

	"github.com/a11ylab/a11ydemo/pkg/announce"
	"github.com/a11ylab/a11ydemo/pkg/router"
	"github.com/a11ylab/a11ydemo/pkg/vdom"
)

// Element IDs of the shell landmarks.
const (
	AppID             = "app"
	MainID            = "main-content"
	NavID             = "main-nav"
	PoliteRegionID    = "live-polite"
	AssertiveRegionID = "live-assertive"
)

// DefaultBrand is the banner title.
const DefaultBrand = "Accessibility Demo"

// Option configures a Shell.
type Option func(*Shell)

// WithBrand sets the banner title.
func WithBrand(brand string) Option {
	return func(s *Shell) {
		s.brand = brand
	}
}

// WithFooter sets the footer text.
func WithFooter(text string) Option {
	return func(s *Shell) {
		s.footer = text
	}
}

// WithNavigationObserver registers fn for every completed navigation,
// after the new page is mounted.
func WithNavigationObserver(fn func(router.Change)) Option {
	return func(s *Shell) {
		s.observer = fn
	}
}

// Shell is the page frame of one tab.
type Shell struct {
	env       *Env
	factories map[router.PageID]Factory
	page      Page
	live      map[announce.Politeness]string
	brand     string
	footer    string
	observer  func(router.Change)
	unsubs    []func()
	logger    *slog.Logger
}

// New creates the shell for env and mounts the page of the router's
// current route. env.Router, env.Focus and env.Announcer must be set.
func New(env *Env, factories map[router.PageID]Factory, opts ...Option) *Shell {
	s := &Shell{
		env:       env,
		factories: factories,
		live:      make(map[announce.Politeness]string),
		brand:     DefaultBrand,
		footer:    "Built to demonstrate accessible patterns for keyboard and screen reader users.",
		logger:    env.Logger,
	}
	if s.logger == nil {
		s.logger = slog.Default()
	}
	for _, opt := range opts {
		opt(s)
	}

	s.unsubs = append(s.unsubs,
		env.Router.Subscribe(s.onNavigate),
		env.Announcer.Subscribe(s.onAnnouncement),
	)
	s.mount(env.Router.Current())
	return s
}

// Navigate navigates the tab to path.
func (s *Shell) Navigate(path string) router.Route {
	return s.env.Router.Navigate(path)
}

// Title returns the document title for the current route.
func (s *Shell) Title() string {
	route := s.env.Router.Current()
	if route.Title == "" {
		return s.brand
	}
	return fmt.Sprintf("%s | %s", route.Title, s.brand)
}

// Path returns the current path.
func (s *Shell) Path() string {
	return s.env.Router.CurrentPath()
}

// Page returns the mounted page, or nil on the not-found view.
func (s *Shell) Page() Page {
	return s.page
}

// LiveText returns the current content of the live region for p.
func (s *Shell) LiveText(p announce.Politeness) string {
	return s.live[p]
}

// Close unmounts the current page and drops the subscriptions.
func (s *Shell) Close() {
	for _, unsub := range s.unsubs {
		unsub()
	}
	s.unsubs = nil
	s.unmount()
}

func (s *Shell) onNavigate(change router.Change) {
	// Re-activating the current link keeps the mounted page and its state.
	if change.Previous == change.Path && s.page != nil {
		return
	}
	s.env.Focus.CloseAll()
	s.unmount()
	s.mount(change.Route)

	if change.Route.NotFound() {
		s.env.Announce(router.NotFoundTitle)
	} else {
		s.env.Announce(change.Route.Title + " page loaded")
	}
	s.env.Document().Focus(MainID)

	if s.observer != nil {
		s.observer(change)
	}
}

func (s *Shell) onAnnouncement(a announce.Announcement) {
	s.live[a.Politeness] = a.Text
}

func (s *Shell) mount(route router.Route) {
	if route.NotFound() {
		s.page = nil
		return
	}
	factory, ok := s.factories[route.Page]
	if !ok {
		s.logger.Warn("no page registered for route", "path", route.Path, "page", route.Page)
		s.page = nil
		return
	}
	s.page = factory(s.env)
}

func (s *Shell) unmount() {
	if u, ok := s.page.(Unmounter); ok {
		u.Unmount()
	}
	s.page = nil
}

// Frame renders the frame and runs the post-render pipeline: components
// are expanded, hydration IDs assigned in document order, focus traps
// synchronised and their boundaries marked. The result is ready for HTML
// serialisation.
func (s *Shell) Frame() *vdom.VNode {
	tree := vdom.Expand(s.Render())
	vdom.AssignHIDs(tree, vdom.NewHIDGenerator())
	s.env.Focus.AfterRender(tree)
	return tree
}

// Render renders the full frame for the current route.
func (s *Shell) Render() *vdom.VNode {
	return vdom.Div(vdom.ID(AppID), vdom.Class("app"),
		vdom.A(vdom.Class("skip-link"), vdom.Href("#"+MainID),
			vdom.OnClick(func() { s.env.Document().Focus(MainID) }),
			"Skip to main content",
		),
		vdom.Header(vdom.Role("banner"), vdom.Class("site-header"),
			vdom.Div(vdom.Class("container"),
				vdom.P(vdom.Class("site-title"), s.brand),
			),
		),
		s.renderNav(),
		vdom.Main(vdom.ID(MainID), vdom.TabIndex(-1), vdom.Class("site-main"),
			s.renderContent(),
		),
		vdom.Footer(vdom.Role("contentinfo"), vdom.Class("site-footer"),
			vdom.Div(vdom.Class("container"), vdom.P(s.footer)),
		),
		s.renderLiveRegions(),
	)
}

func (s *Shell) renderContent() *vdom.VNode {
	route := s.env.Router.Current()
	if route.NotFound() || s.page == nil {
		return s.renderNotFound(s.env.Router.CurrentPath())
	}
	return s.page.Render()
}

func (s *Shell) renderLiveRegions() *vdom.VNode {
	return vdom.Fragment(
		vdom.Div(vdom.ID(PoliteRegionID), vdom.Class("sr-only"), vdom.Role("status"),
			vdom.AriaLive(string(announce.Polite)), vdom.AriaAtomic(true),
			s.live[announce.Polite],
		),
		vdom.Div(vdom.ID(AssertiveRegionID), vdom.Class("sr-only"), vdom.Role("alert"),
			vdom.AriaLive(string(announce.Assertive)), vdom.AriaAtomic(true),
			s.live[announce.Assertive],
		),
	)
}
