package vdom

// event creates an EventHandler with the given name and handler.
// The name is prefixed with "on" (e.g., "click" becomes "onclick").
func event(name string, handler any) EventHandler {
	return EventHandler{Event: "on" + name, Handler: handler}
}

// OnClick handles click events. handler is func().
func OnClick(handler func()) EventHandler { return event("click", handler) }

// OnInput handles input events. handler receives the control's value.
func OnInput(handler func(string)) EventHandler { return event("input", handler) }

// OnChange handles change events. handler receives the control's value
// ("true"/"false" for checkboxes).
func OnChange(handler func(string)) EventHandler { return event("change", handler) }

// OnSubmit handles form submit events. The client always prevents the
// browser's default submission.
func OnSubmit(handler func()) EventHandler { return event("submit", handler) }
