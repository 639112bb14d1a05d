package vdom

import (
	"strconv"
	"strings"
)

// VKind is the node type discriminator.
type VKind uint8

const (
	KindElement   VKind = iota // <div>, <button>, etc.
	KindText                   // Plain text node
	KindFragment               // Grouping without wrapper
	KindComponent              // Nested component
	KindRaw                    // Raw HTML (dangerous)
)

// String returns the string representation of the VKind.
func (k VKind) String() string {
	switch k {
	case KindElement:
		return "Element"
	case KindText:
		return "Text"
	case KindFragment:
		return "Fragment"
	case KindComponent:
		return "Component"
	case KindRaw:
		return "Raw"
	default:
		return "Unknown"
	}
}

// VNode is a node of the element tree.
type VNode struct {
	Kind     VKind     // Node type
	Tag      string    // Element tag name (e.g., "div")
	Props    Props     // Attributes and event handlers
	Children []*VNode  // Child nodes
	Text     string    // For KindText and KindRaw
	Comp     Component // For KindComponent
	HID      string    // Hydration ID (assigned before render)
}

// Props holds attributes and event handlers.
type Props map[string]any

// Prop returns the raw value of an attribute.
func (v *VNode) Prop(key string) (any, bool) {
	if v == nil || v.Props == nil {
		return nil, false
	}
	value, ok := v.Props[key]
	return value, ok
}

// StringProp returns an attribute rendered as a string.
// Missing attributes return "".
func (v *VNode) StringProp(key string) string {
	value, ok := v.Prop(key)
	if !ok || value == nil {
		return ""
	}
	switch x := value.(type) {
	case string:
		return x
	case bool:
		return strconv.FormatBool(x)
	case int:
		return strconv.Itoa(x)
	default:
		return ""
	}
}

// BoolProp reports whether a boolean attribute is present and not false.
func (v *VNode) BoolProp(key string) bool {
	value, ok := v.Prop(key)
	if !ok {
		return false
	}
	switch x := value.(type) {
	case bool:
		return x
	case string:
		return x != "false"
	default:
		return value != nil
	}
}

// IntProp parses a numeric attribute such as tabindex.
func (v *VNode) IntProp(key string) (int, bool) {
	value, ok := v.Prop(key)
	if !ok {
		return 0, false
	}
	switch x := value.(type) {
	case int:
		return x, true
	case string:
		n, err := strconv.Atoi(strings.TrimSpace(x))
		if err != nil {
			return 0, false
		}
		return n, true
	default:
		return 0, false
	}
}

// ID returns the element's id attribute.
func (v *VNode) ID() string {
	return v.StringProp("id")
}

// NodeKey returns the identity used to track focus: the id attribute when
// present, else the hydration ID.
func NodeKey(v *VNode) string {
	if v == nil {
		return ""
	}
	if id := v.ID(); id != "" {
		return id
	}
	return v.HID
}

// Attr represents a single attribute.
type Attr struct {
	Key   string
	Value any
}

// IsEmpty returns true if this is an empty/nil attribute.
func (a Attr) IsEmpty() bool {
	return a.Key == ""
}

// EventHandler represents an event handler.
type EventHandler struct {
	Event   string // "onclick", "oninput", etc.
	Handler any    // func() or func(string)
}

// IsHandler reports whether value is a supported handler function.
func IsHandler(value any) bool {
	switch value.(type) {
	case func(), func(string):
		return true
	default:
		return false
	}
}

// Component is anything that can render to a VNode.
type Component interface {
	Render() *VNode
}

// FuncComponent wraps a render function.
type FuncComponent struct {
	render func() *VNode
}

// Render implements Component.
func (f *FuncComponent) Render() *VNode {
	return f.render()
}

// Func creates a component from a render function.
func Func(render func() *VNode) Component {
	return &FuncComponent{render: render}
}
