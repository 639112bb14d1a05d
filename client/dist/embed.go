// Package clientdist embeds the browser side of a11ydemo: the thin client
// script served at /_client.js and the site stylesheet inlined into every
// page.
package clientdist

import _ "embed"

// Script is the thin client. It forwards DOM events over the live
// WebSocket and applies render and live frames.
//
//go:embed a11y.js
var Script []byte

// Stylesheet is the site CSS.
//
//go:embed a11y.css
var Stylesheet string
