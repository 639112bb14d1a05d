// Package announce implements the live-region announcer.
//
// An Announcer owns a single announcement slot that the shell renders into
// an aria-live region. Announce sets the slot and schedules a clear after a
// short delay (100ms by default) so that announcing the same message again
// changes the region's content and is read out a second time. When the slot
// is still occupied, Announce first clears it, so two identical
// announcements within the delay are observed as "" → M → "" → M.
//
// There is no queue. The most recent announcement wins and only its clear
// timer has any effect.
//
// Timers go through a Scheduler. The session layer installs a scheduler
// that dispatches expirations onto the session event loop, so subscriber
// callbacks always run on the goroutine that owns the UI state.
package announce
