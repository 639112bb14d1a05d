// Package focus implements keyboard focus management for server-rendered
// pages: a model of the focused element, focusable-element scanning and
// modal focus traps.
//
// # Document
//
// Document mirrors what the browser considers document.activeElement. It
// holds the most recently rendered tree and the key of the active element
// (its id attribute, else its hydration ID). The empty key stands for the
// document body. Elements that must keep focus across renders, such as
// dialog buttons, should carry an id.
//
// # Traps
//
// A Trap confines Tab and Shift+Tab to the focusable elements of a
// container while it is open:
//
//	Closed --Open()--> Open --Close() / Escape--> Closed
//
// Opening captures the currently focused element as the trigger and moves
// focus to the first focusable element, or to the container itself when it
// has none. Closing restores focus to the trigger, or to a fallback when
// the trigger is no longer in the tree. Neither case is an error for the
// caller; both are reported to the transition observer.
//
// Pages usually open a trap in the same handler that makes the container
// visible. The container is not in the tree yet, so the scan is deferred
// until the next render reaches Sync.
//
// # Manager
//
// Manager stacks traps. The most recently opened trap receives keys;
// closing it restores its trigger and resumes the trap below. The session
// calls AfterRender after every render so traps can recompute their
// boundaries and Decorate can mark the edges for the thin client, which
// must decide synchronously whether to prevent the browser's default Tab.
package focus
