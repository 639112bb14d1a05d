package focus

import (
	"github.com/a11ylab/a11ydemo/pkg/vdom"
)

// Document tracks the rendered tree and the active element.
// It is owned by the session event loop and not safe for concurrent use.
type Document struct {
	tree   *vdom.VNode
	active string
}

// NewDocument returns a document with no tree and focus on the body.
func NewDocument() *Document {
	return &Document{}
}

// SetTree installs a freshly rendered tree. Components must already be
// expanded and hydration IDs assigned. If the active element is no longer
// part of the tree, focus falls back to the body as it does in a browser.
func (d *Document) SetTree(tree *vdom.VNode) {
	d.tree = tree
	if d.active != "" && !d.Attached(d.active) {
		d.active = ""
	}
}

// Tree returns the current tree.
func (d *Document) Tree() *vdom.VNode {
	return d.tree
}

// Find returns the attached element with the given key.
func (d *Document) Find(key string) *vdom.VNode {
	if d.tree == nil {
		return nil
	}
	return vdom.FindKey(d.tree, key)
}

// Attached reports whether an element with the given key is in the tree.
func (d *Document) Attached(key string) bool {
	return d.Find(key) != nil
}

// Focus moves focus to the element with the given key. It reports false and
// leaves focus unchanged when the element is not attached.
func (d *Document) Focus(key string) bool {
	if key == "" || !d.Attached(key) {
		return false
	}
	d.active = key
	return true
}

// FocusHID moves focus to the element with the given hydration ID, as
// reported by the client.
func (d *Document) FocusHID(hid string) bool {
	el := vdom.FindByHID(d.tree, hid)
	if el == nil {
		return false
	}
	return d.Focus(vdom.NodeKey(el))
}

// Blur moves focus to the body.
func (d *Document) Blur() {
	d.active = ""
}

// ActiveKey returns the key of the focused element; "" is the body.
func (d *Document) ActiveKey() string {
	return d.active
}

// Active returns the focused element, or nil for the body.
func (d *Document) Active() *vdom.VNode {
	if d.active == "" {
		return nil
	}
	return d.Find(d.active)
}

// ActiveHID returns the hydration ID of the focused element, which is what
// the client uses to apply focus.
func (d *Document) ActiveHID() string {
	if el := d.Active(); el != nil {
		return el.HID
	}
	return ""
}

// Within reports whether the focused element is container or one of its
// descendants.
func (d *Document) Within(container *vdom.VNode) bool {
	active := d.Active()
	if active == nil || container == nil {
		return false
	}
	return vdom.Contains(container, active)
}
