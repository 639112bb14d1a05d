// Package errors provides coded, actionable error messages for a11ydemo.
//
// Every error carries a code that identifies the failing subsystem:
//   - A1xx: navigation (unknown routes, invalid paths, route table problems)
//   - A2xx: focus (trap containers, restore targets)
//   - A3xx: transport (WebSocket frames, sessions)
//   - A4xx: config (files, values, embedded content)
//
// Navigation and focus errors are recovered where they happen; they are
// built here so that logs and observers report the same codes the CLI
// prints. Transport errors are also sent to the browser in error frames.
//
// # Usage
//
//	err := errors.New(errors.CodeInvalidDuration).
//	    WithDetail(`announce.clear_delay: "fast" is not a duration`).
//	    WithSuggestion(`Use a Go duration string such as "100ms"`)
//
//	errors.PrintError(err)
//	// ERROR A403: Invalid duration
//	//
//	//   announce.clear_delay: "fast" is not a duration
//	//
//	//   Hint: Use a Go duration string such as "100ms"
package errors
