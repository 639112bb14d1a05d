// Package vdom provides the in-memory element tree that every a11ydemo page
// renders into.
//
// The tree lives on the server. It is serialised to HTML by package render,
// walked in document order by package focus to find tab stops, and its
// interactive elements carry hydration IDs (HIDs) so that events reported by
// the thin client can be routed back to their Go handlers.
//
// # Element API
//
// Elements are created with variadic factory functions:
//
//	Nav(AriaLabel("Main navigation"),
//	    Ul(
//	        Li(A(Href("/"), AriaCurrent("page"), Text("Home"))),
//	    ),
//	)
//
// Arguments may be attributes (Attr), event handlers (EventHandler), child
// nodes, slices of nodes, components or plain strings.
//
// # Identity
//
// NodeKey returns the stable identity used for focus tracking: the element's
// id attribute when set, otherwise its HID. Elements that must keep focus
// across re-renders should carry an id.
package vdom
