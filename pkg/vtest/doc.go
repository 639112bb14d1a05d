// Package vtest provides testing helpers for pages and the accessibility
// core.
//
// # Render Assertions
//
// Assert on rendered HTML output:
//
//	vtest.ExpectContains(t, page.Render(), "Notifications (1)")
//	vtest.ExpectNotContains(t, page.Render(), `role="dialog"`)
//	vtest.ExpectAttribute(t, page.Render(), "aria-pressed", "true")
//
// # Driving Handlers
//
// Handlers are invoked directly on the tree, the way the session does it
// when a client event arrives:
//
//	vtest.Click(t, page.Render(), "open-modal")
//	vtest.Input(t, page.Render(), "email", "user@example.com")
//
// # Manual Time
//
// Scheduler is a deterministic announce.Scheduler. Timers fire only when
// the test advances the clock:
//
//	sched := vtest.NewScheduler()
//	a := announce.New(announce.WithScheduler(sched), announce.WithClock(sched.Now))
//	a.Announce("saved")
//	sched.Advance(100 * time.Millisecond)
package vtest
