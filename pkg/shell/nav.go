package shell

import (
	"github.com/a11ylab/a11ydemo/pkg/router"
	"github.com/a11ylab/a11ydemo/pkg/vdom"
)

// renderNav renders the main navigation landmark. The active item is
// marked with aria-current="page" in addition to its styling.
func (s *Shell) renderNav() *vdom.VNode {
	current := s.env.Router.CurrentPath()
	var items []*vdom.VNode
	for _, route := range s.env.Router.Table().Routes() {
		if route.Label == "" {
			continue
		}
		items = append(items, s.navItem(route, route.Path == current))
	}

	return vdom.Nav(vdom.ID(NavID), vdom.Class("navigation"), vdom.AriaLabel("Main navigation"),
		vdom.Div(vdom.Class("container"),
			vdom.Ul(vdom.Class("nav-list"), items),
		),
	)
}

func (s *Shell) navItem(route router.Route, active bool) *vdom.VNode {
	path := route.Path
	return vdom.Li(
		vdom.A(vdom.Href(path),
			vdom.Class("nav-link"),
			vdom.ClassIf(active, "active"),
			vdom.AttrIf(active, vdom.AriaCurrent("page")),
			vdom.OnClick(func() { s.Navigate(path) }),
			route.Label,
		),
	)
}
