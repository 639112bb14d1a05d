// Package toast provides transient notifications announced to assistive
// technology.
//
// A Center keeps the visible notification list of one tab. Adding a
// notification announces "<level>: <message>" through the live-region
// announcer and schedules its removal after five seconds. Removing a
// notification by hand announces "Notification removed".
//
//	center := toast.NewCenter(announcer, toast.WithScheduler(sched))
//	center.Success("Form submitted successfully!")
//	for _, n := range center.List() {
//	    // render n.Message with role="alert"
//	}
//
// Close cancels every pending dismiss timer; the session calls it when the
// tab goes away.
package toast
