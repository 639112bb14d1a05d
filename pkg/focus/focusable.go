package focus

import (
	"github.com/a11ylab/a11ydemo/pkg/vdom"
)

// Candidates returns the focusable descendants of container in document
// order. The container itself is never included.
//
// Focusable elements are buttons, links and areas with an href, inputs
// other than type=hidden, selects, textareas, summaries and any element
// with tabindex >= 0. Disabled elements and elements with a negative
// tabindex are skipped, as are subtrees that are hidden, aria-hidden or
// inert.
func Candidates(container *vdom.VNode) []*vdom.VNode {
	if container == nil {
		return nil
	}
	var out []*vdom.VNode
	for _, child := range container.Children {
		vdom.Walk(child, func(n *vdom.VNode) bool {
			if n.Kind != vdom.KindElement {
				return n.Kind == vdom.KindFragment
			}
			if excludedSubtree(n) {
				return false
			}
			if Focusable(n) {
				out = append(out, n)
			}
			return true
		})
	}
	return out
}

// Keys returns the focus keys of nodes.
func Keys(nodes []*vdom.VNode) []string {
	keys := make([]string, len(nodes))
	for i, n := range nodes {
		keys[i] = vdom.NodeKey(n)
	}
	return keys
}

// Focusable reports whether a single element takes part in sequential
// keyboard navigation. Ancestors are not considered.
func Focusable(n *vdom.VNode) bool {
	if n == nil || n.Kind != vdom.KindElement {
		return false
	}
	if n.BoolProp("disabled") {
		return false
	}
	if idx, ok := n.IntProp("tabindex"); ok {
		return idx >= 0
	}
	switch n.Tag {
	case "button", "select", "textarea", "summary":
		return true
	case "input":
		return n.StringProp("type") != "hidden"
	case "a", "area":
		_, ok := n.Prop("href")
		return ok
	}
	return false
}

func excludedSubtree(n *vdom.VNode) bool {
	return n.BoolProp("hidden") || n.BoolProp("inert") || n.StringProp("aria-hidden") == "true"
}
