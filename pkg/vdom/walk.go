package vdom

// Walk visits node and its descendants in document order (pre-order).
// Returning false from fn skips the node's children. Component nodes are
// not rendered by Walk; call Expand first.
func Walk(node *VNode, fn func(*VNode) bool) {
	if node == nil {
		return
	}
	if !fn(node) {
		return
	}
	for _, child := range node.Children {
		Walk(child, fn)
	}
}

// Expand renders every component in the tree in place and returns the
// resulting tree. Components rendering nil become empty fragments.
func Expand(node *VNode) *VNode {
	if node == nil {
		return nil
	}
	if node.Kind == KindComponent {
		if node.Comp == nil {
			return Fragment()
		}
		out := Expand(node.Comp.Render())
		if out == nil {
			return Fragment()
		}
		return out
	}
	for i, child := range node.Children {
		node.Children[i] = Expand(child)
	}
	return node
}

// FindByID returns the element with the given id attribute.
func FindByID(node *VNode, id string) *VNode {
	return findFirst(node, func(n *VNode) bool {
		return n.Kind == KindElement && n.ID() == id
	})
}

// FindKey returns the element whose NodeKey equals key.
func FindKey(node *VNode, key string) *VNode {
	if key == "" {
		return nil
	}
	return findFirst(node, func(n *VNode) bool {
		return n.Kind == KindElement && NodeKey(n) == key
	})
}

// Contains reports whether descendant is node itself or lies beneath it.
func Contains(node, descendant *VNode) bool {
	if node == nil || descendant == nil {
		return false
	}
	return findFirst(node, func(n *VNode) bool { return n == descendant }) != nil
}

// TextContent concatenates the text of all descendant text nodes.
func TextContent(node *VNode) string {
	var out []byte
	Walk(node, func(n *VNode) bool {
		if n.Kind == KindText {
			out = append(out, n.Text...)
		}
		return true
	})
	return string(out)
}

func findFirst(node *VNode, match func(*VNode) bool) *VNode {
	var found *VNode
	Walk(node, func(n *VNode) bool {
		if found != nil {
			return false
		}
		if match(n) {
			found = n
			return false
		}
		return true
	})
	return found
}
