package vdom

import "fmt"

// HIDGenerator generates hydration IDs in document order.
// A generator is owned by a single render pass and is not safe for
// concurrent use.
type HIDGenerator struct {
	counter uint32
}

// NewHIDGenerator creates a new HIDGenerator.
func NewHIDGenerator() *HIDGenerator {
	return &HIDGenerator{}
}

// Next returns the next hydration ID (e.g., "h1", "h2", ...).
func (g *HIDGenerator) Next() string {
	g.counter++
	return fmt.Sprintf("h%d", g.counter)
}

// Reset resets the counter to 0.
func (g *HIDGenerator) Reset() {
	g.counter = 0
}

// AssignHIDs assigns a HID to every element of the tree in document order.
// Every element is addressable so that focus can be reported for
// non-interactive targets such as the main landmark.
func AssignHIDs(node *VNode, gen *HIDGenerator) {
	Walk(node, func(n *VNode) bool {
		if n.Kind == KindElement {
			n.HID = gen.Next()
		}
		return true
	})
}

// FindByHID finds a node by its HID in the tree.
func FindByHID(node *VNode, hid string) *VNode {
	if hid == "" {
		return nil
	}
	var found *VNode
	Walk(node, func(n *VNode) bool {
		if found != nil {
			return false
		}
		if n.HID == hid {
			found = n
			return false
		}
		return true
	})
	return found
}
