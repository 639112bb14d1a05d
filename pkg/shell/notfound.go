package shell

import (
	"github.com/a11ylab/a11ydemo/pkg/vdom"
)

// renderNotFound renders the not-found view for path.
func (s *Shell) renderNotFound(path string) *vdom.VNode {
	table := s.env.Router.Table()
	suggestion, ok := table.Suggest(path)

	return vdom.Div(vdom.ID("not-found"), vdom.Class("container not-found"),
		vdom.H1("Page not found"),
		vdom.P("No page exists at ", vdom.Code(path), "."),
		vdom.If(ok, vdom.P(vdom.ID("not-found-suggestion"),
			"Did you mean ",
			vdom.A(vdom.Href(suggestion.Path), vdom.OnClick(func() { s.Navigate(suggestion.Path) }), pageName(suggestion.Label, suggestion.Title)),
			"?",
		)),
		vdom.P(vdom.A(vdom.ID("not-found-home"), vdom.Href("/"), vdom.Class("button"), vdom.OnClick(func() { s.Navigate("/") }), "Go to the home page")),
	)
}

func pageName(label, title string) string {
	if label != "" {
		return label
	}
	return title
}
