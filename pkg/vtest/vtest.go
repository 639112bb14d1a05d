package vtest

import (
	"strings"
	"testing"

	"github.com/a11ylab/a11ydemo/pkg/render"
	"github.com/a11ylab/a11ydemo/pkg/vdom"
)

// RenderToString renders a VNode without hydration markers and returns the
// HTML string.
func RenderToString(node *vdom.VNode) string {
	r := render.NewRenderer(render.RendererConfig{OmitHIDs: true})
	html, err := r.RenderToString(node)
	if err != nil {
		return ""
	}
	return html
}

// ExpectContains asserts that rendered output contains expected substring.
func ExpectContains(t testing.TB, node *vdom.VNode, expected string) {
	t.Helper()
	html := RenderToString(node)
	if !strings.Contains(html, expected) {
		t.Errorf("expected rendered output to contain %q, got:\n%s", expected, truncate(html, 500))
	}
}

// ExpectNotContains asserts that rendered output does not contain substring.
func ExpectNotContains(t testing.TB, node *vdom.VNode, unexpected string) {
	t.Helper()
	html := RenderToString(node)
	if strings.Contains(html, unexpected) {
		t.Errorf("expected rendered output to NOT contain %q, got:\n%s", unexpected, truncate(html, 500))
	}
}

// ExpectElement asserts that rendered output contains a specific tag.
func ExpectElement(t testing.TB, node *vdom.VNode, tag string) {
	t.Helper()
	html := RenderToString(node)
	if !strings.Contains(html, "<"+tag) {
		t.Errorf("expected rendered output to contain <%s> element, got:\n%s", tag, truncate(html, 500))
	}
}

// ExpectAttribute asserts that rendered output contains an attribute value.
func ExpectAttribute(t testing.TB, node *vdom.VNode, attr, value string) {
	t.Helper()
	html := RenderToString(node)
	needle := attr + `="` + value + `"`
	if !strings.Contains(html, needle) {
		t.Errorf("expected attribute %s=%q not found, got:\n%s", attr, value, truncate(html, 500))
	}
}

// Find returns the element with the given id, expanding components first.
// The test fails when no such element exists.
func Find(t testing.TB, node *vdom.VNode, id string) *vdom.VNode {
	t.Helper()
	el := vdom.FindByID(vdom.Expand(node), id)
	if el == nil {
		t.Fatalf("no element with id %q in:\n%s", id, truncate(RenderToString(node), 500))
	}
	return el
}

// Click invokes the click handler of the element with the given id.
func Click(t testing.TB, node *vdom.VNode, id string) {
	t.Helper()
	el := Find(t, node, id)
	handler, ok := el.Props["onclick"].(func())
	if !ok {
		t.Fatalf("element %q has no click handler", id)
	}
	handler()
}

// Submit invokes the submit handler of the form with the given id.
func Submit(t testing.TB, node *vdom.VNode, id string) {
	t.Helper()
	el := Find(t, node, id)
	handler, ok := el.Props["onsubmit"].(func())
	if !ok {
		t.Fatalf("element %q has no submit handler", id)
	}
	handler()
}

// Input invokes the input handler of the element with the given id,
// falling back to its change handler.
func Input(t testing.TB, node *vdom.VNode, id, value string) {
	t.Helper()
	el := Find(t, node, id)
	for _, key := range []string{"oninput", "onchange"} {
		if handler, ok := el.Props[key].(func(string)); ok {
			handler(value)
			return
		}
	}
	t.Fatalf("element %q has no input handler", id)
}

// truncate truncates a string to max length with ellipsis.
func truncate(s string, max int) string {
	if len(s) <= max {
		return s
	}
	return s[:max] + "..."
}
