package pages

import (
	"github.com/a11ylab/a11ydemo/pkg/shell"
	. "github.com/a11ylab/a11ydemo/pkg/vdom"
)

// pageLink renders an in-app link. The href keeps it usable without the
// client; the click handler navigates the live session.
func pageLink(env *shell.Env, path string, args ...any) *VNode {
	args = append([]any{Href(path), OnClick(func() { env.Router.Navigate(path) })}, args...)
	return A(args...)
}

// field renders a labelled form control with an optional hidden help text.
func field(id, label string, required bool, control *VNode, help string) *VNode {
	return Div(Class("form-group"),
		Label(For(id), Class("form-label"),
			label,
			If(required, Fragment(" ", Span(AriaLabel("required"), "*"))),
		),
		control,
		If(help != "", Div(ID(id+"-help"), Class("sr-only"), help)),
	)
}

// stopTimer stops t if it is set and reports whether it was pending.
func stopTimer(t interface{ Stop() bool }) bool {
	if t == nil {
		return false
	}
	return t.Stop()
}
