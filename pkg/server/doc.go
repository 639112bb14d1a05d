// Package server provides the HTTP and WebSocket transport of a11ydemo.
//
// Every browser tab gets a Session. A session owns the tab's shell, router,
// announcer, notification center and focus manager, and mutates them only
// from its event loop goroutine. Handlers therefore run to completion
// before the next event is processed, which gives pages the same
// single-threaded model a browser UI thread has.
//
// # Request flow
//
//	GET /semantic           server-rendered HTML (404 for unknown paths)
//	GET /_client.js         thin client
//	GET /_live?path=/x      WebSocket upgrade, one Session per tab
//	GET /healthz            liveness probe
//	GET /metrics            Prometheus exposition (optional)
//
// # Wire protocol
//
// Frames are JSON text messages. The client sends:
//
//	{"type":"event","hid":"h12","name":"click"}
//	{"type":"event","hid":"h14","name":"input","value":"Ada"}
//	{"type":"key","key":"Tab","shift":true,"hid":"h20"}
//	{"type":"focus","hid":"h9"}
//	{"type":"navigate","path":"/map"}
//
// The server answers with:
//
//	{"type":"render","html":"<div id=\"app\" ...>","focus":"h20","path":"/map","title":"Map Accessibility | Accessibility Demo"}
//	{"type":"live","politeness":"polite","text":"Modal dialog opened"}
//	{"type":"error","code":"A302","message":"Handler not found"}
//
// Timers created by pages (alert auto-hide, notification dismissal,
// live region clearing) fire through Session.Dispatch, so their callbacks
// run on the event loop as well.
package server
