// Package render serialises vdom trees to HTML.
//
// It handles text and attribute escaping, void elements, boolean attributes
// and the data-hid / data-on-* markers the thin client uses to report events.
//
//	renderer := render.NewRenderer(render.RendererConfig{})
//	html, err := renderer.RenderToString(node)
//
// RenderPage wraps a body tree in a complete document with the client script.
package render
