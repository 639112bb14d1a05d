// Package shell composes the persistent page frame: a skip link, the
// banner, the main navigation landmark, the main landmark holding the
// current page, the footer and the live regions.
//
// The shell owns the tab's Router. Pages are registered as factories keyed
// by router.PageID; on every navigation the previous page is unmounted
// (pages implementing Unmounter cancel their timers there), open focus
// traps are closed, the new page is mounted, "<Title> page loaded" is
// announced and focus moves to the main landmark.
//
// Unknown paths render the not-found view, announced as "Page not found",
// with a suggestion for the closest known route.
package shell
