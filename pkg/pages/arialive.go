package pages

import (
	"fmt"
	"strconv"

	"github.com/a11ylab/a11ydemo/pkg/announce"
	"github.com/a11ylab/a11ydemo/pkg/focus"
	"github.com/a11ylab/a11ydemo/pkg/shell"
	"github.com/a11ylab/a11ydemo/pkg/toast"
	. "github.com/a11ylab/a11ydemo/pkg/vdom"
)

// Element IDs of the focus trap demo.
const (
	OpenModalID    = "open-modal"
	ModalID        = "modal-content"
	ModalCancelID  = "modal-cancel"
	ModalSubmitID  = "modal-submit"
	AsyncButtonID  = "async-button"
	CounterID      = "counter-increment"
	CounterResetID = "counter-reset"
)

// Announcement texts of the ARIA live page.
const (
	ModalOpenedMessage    = "Modal dialog opened"
	ModalClosedMessage    = "Modal dialog closed"
	LoadingStartedMessage = "Loading started..."
	LoadingDoneMessage    = "Loading completed successfully!"
	FormSubmittedMessage  = "Form submitted successfully!"
)

var notificationButtons = []struct {
	level   toast.Type
	label   string
	message string
}{
	{toast.TypeSuccess, "Add Success Notification", "Success! Operation completed."},
	{toast.TypeWarning, "Add Warning Notification", "Warning: Please check your input."},
	{toast.TypeError, "Add Error Notification", "Error: Something went wrong!"},
	{toast.TypeInfo, "Add Info Notification", "Info: System update available."},
}

type modalForm struct {
	Name       string
	Email      string
	Message    string
	Newsletter bool
}

type ariaLivePage struct {
	env       *shell.Env
	trap      *focus.Trap
	modalOpen bool
	modal     modalForm
	counter   int
	loading   bool
	async     announce.Timer
}

func newAriaLivePage(env *shell.Env) *ariaLivePage {
	p := &ariaLivePage{env: env}
	p.trap = env.Focus.NewTrap(ModalID,
		focus.WithFallback(OpenModalID),
		focus.WithOnClose(p.onModalClosed),
		focus.WithTrapLogger(env.Logger),
	)
	return p
}

func (p *ariaLivePage) openModal() {
	if p.modalOpen {
		return
	}
	p.modalOpen = true
	p.modal = modalForm{}
	p.env.Announce(ModalOpenedMessage)
	p.trap.Open()
}

// closeModal closes the dialog through the trap so that focus returns to
// the trigger. Escape takes the same path via the focus manager.
func (p *ariaLivePage) closeModal() {
	if p.trap.IsOpen() {
		p.trap.Close()
		return
	}
	p.onModalClosed()
}

func (p *ariaLivePage) onModalClosed() {
	if !p.modalOpen {
		return
	}
	p.modalOpen = false
	p.env.Announce(ModalClosedMessage)
}

func (p *ariaLivePage) submitModal() {
	p.env.Notifications.Success(FormSubmittedMessage)
	p.closeModal()
}

func (p *ariaLivePage) increment() {
	p.counter++
	p.env.Announce("Counter updated to " + strconv.Itoa(p.counter))
}

func (p *ariaLivePage) reset() {
	p.counter = 0
	p.env.Announce("Counter reset to 0")
}

func (p *ariaLivePage) startAsync() {
	if p.loading {
		return
	}
	p.loading = true
	p.env.Announce(LoadingStartedMessage)
	p.async = p.env.After(p.env.Timing.AsyncDuration, func() {
		p.loading = false
		p.async = nil
		p.env.Announce(LoadingDoneMessage)
	})
}

// Unmount cancels the async operation and closes the dialog.
func (p *ariaLivePage) Unmount() {
	stopTimer(p.async)
	p.async = nil
	if p.trap.IsOpen() {
		p.trap.Close()
	}
}

func (p *ariaLivePage) Render() *VNode {
	return Div(ID("aria-live-page"), Class("container"),
		H1("Focus Trap & ARIA Live Regions Demo"),
		Nav(AriaLabel("Page sections"),
			Ul(
				Li(A(Href("#focus-trap-demo"), "Focus Trap Demo")),
				Li(A(Href("#aria-live-demo"), "ARIA Live Demo")),
			),
		),
		Section(ID("focus-trap-demo"), AriaLabelledBy("focus-heading"),
			H2(ID("focus-heading"), "Focus Trap Demo"),
			P("Focus traps ensure keyboard users can't accidentally navigate outside of modal dialogs."),
			Div(Class("demo-section"),
				Button(ID(OpenModalID), Type("button"), Class("open-modal-button"), OnClick(p.openModal), "Open Modal Dialog"),
				Div(Class("focus-trap-info"),
					H4("Focus Trap Features:"),
					Ul(
						Li("✅ Focus stays within modal"),
						Li("✅ Tab cycles through focusable elements"),
						Li("✅ Shift+Tab cycles backwards"),
						Li("✅ Escape key closes modal"),
						Li("✅ Focus returns to trigger button"),
						Li("✅ Screen reader announces modal opening/closing"),
					),
				),
			),
		),
		p.renderLiveDemo(),
		Aside(Role("complementary"), AriaLabelledBy("tips-heading"),
			H2(ID("tips-heading"), "Focus Trap & ARIA Live Tips"),
			Div(Class("tips-grid"),
				Div(
					H3("Focus Traps"),
					Ul(
						Li(Strong("Capture Tab/Shift+Tab"), " - Prevent escape from modal"),
						Li(Strong("Handle Escape key"), " - Close modal on Escape"),
						Li(Strong("Return focus"), " - Focus trigger element when closing"),
						Li(Strong("Announce changes"), " - Use live regions for modal state"),
						Li(Strong("Test with keyboard"), " - Ensure full keyboard navigation"),
					),
				),
				Div(
					H3("ARIA Live Regions"),
					Ul(
						Li(Strong(`aria-live="polite"`), " - Waits for user to finish current task"),
						Li(Strong(`aria-live="assertive"`), " - Interrupts immediately (use sparingly)"),
						Li(Strong(`aria-atomic="true"`), " - Announces entire content change"),
						Li(Strong(`role="alert"`), " - Implicitly assertive live region"),
						Li(Strong(`role="log"`), " - For chat logs, notifications"),
					),
				),
			),
		),
		When(p.modalOpen, p.renderModal),
	)
}

func (p *ariaLivePage) renderLiveDemo() *VNode {
	var addButtons []*VNode
	for _, b := range notificationButtons {
		addButtons = append(addButtons, Button(ID("add-"+string(b.level)), Type("button"),
			OnClick(func() { p.env.Notifications.Show(b.level, b.message) }),
			b.label,
		))
	}

	asyncLabel := "Simulate Async Operation"
	if p.loading {
		asyncLabel = "Loading..."
	}

	list := p.env.Notifications.List()
	var items []*VNode
	for _, n := range list {
		id := n.ID
		items = append(items, Div(ID("notification-"+id), Class("notification", string(n.Type)), Role("alert"),
			Span(Class("notification-message"), n.Message),
			Button(Type("button"), ID("remove-"+id), Class("remove-button"),
				AriaLabel(fmt.Sprintf("Remove %s notification", n.Type)),
				OnClick(func() { p.env.Notifications.Remove(id) }),
				"×",
			),
		))
	}

	return Section(ID("aria-live-demo"), AriaLabelledBy("live-heading"),
		H2(ID("live-heading"), "ARIA Live Regions Demo"),
		P("ARIA live regions announce dynamic content changes to screen readers without interrupting their current task."),
		Div(Class("demo-section"),
			H3("Dynamic Content Examples"),
			Div(Class("button-group"), addButtons),
			Div(Class("button-group"),
				Button(ID(AsyncButtonID), Type("button"), AttrIf(p.loading, Disabled()), AriaBusy(p.loading),
					OnClick(p.startAsync), asyncLabel),
				Button(ID(CounterID), Type("button"), OnClick(p.increment),
					"Increment Counter ("+strconv.Itoa(p.counter)+")"),
				Button(ID(CounterResetID), Type("button"), OnClick(p.reset), "Reset Counter"),
			),
			Div(Class("notifications-container"),
				H4(ID("notifications-heading"), "Notifications ("+strconv.Itoa(len(list))+")"),
				Div(ID("notifications-list"), Class("notifications-list"), Role("log"), AriaLive("polite"), AriaLabel("Notifications"),
					items,
				),
			),
		),
	)
}

func (p *ariaLivePage) renderModal() *VNode {
	return Div(ID("modal-overlay"), Class("modal-overlay"),
		Role("dialog"), AriaModal(true),
		AriaLabelledBy("modal-title"), AriaDescribedBy("modal-description"),
		OnClick(p.closeModal),
		// Clicks inside the dialog stop here instead of reaching the overlay.
		Div(ID(ModalID), Class("modal-content"), OnClick(func() {}),
			H2(ID("modal-title"), "Accessible Modal Dialog"),
			P(ID("modal-description"),
				"This modal demonstrates proper focus trapping. Use Tab to navigate through the form elements, "+
					"and press Escape to close the modal."),
			Form(Class("modal-form"),
				Div(Class("form-group"),
					Label(For("modal-name"), "Name:"),
					Input(Type("text"), ID("modal-name"), Name("name"), Placeholder("Enter your name"),
						Value(p.modal.Name), OnInput(func(v string) { p.modal.Name = v })),
				),
				Div(Class("form-group"),
					Label(For("modal-email"), "Email:"),
					Input(Type("email"), ID("modal-email"), Name("email"), Placeholder("Enter your email"),
						Value(p.modal.Email), OnInput(func(v string) { p.modal.Email = v })),
				),
				Div(Class("form-group"),
					Label(For("modal-message"), "Message:"),
					Textarea(ID("modal-message"), Name("message"), Rows(3), Placeholder("Enter your message"),
						OnInput(func(v string) { p.modal.Message = v }), p.modal.Message),
				),
				Div(Class("form-group"),
					Label(
						Input(Type("checkbox"), ID("modal-newsletter"), Name("newsletter"),
							AttrIf(p.modal.Newsletter, Checked()),
							OnChange(func(v string) { p.modal.Newsletter = v == "true" })),
						" Subscribe to newsletter",
					),
				),
			),
			Div(Class("modal-actions"),
				Button(ID(ModalCancelID), Type("button"), Class("secondary-button"), OnClick(p.closeModal), "Cancel"),
				Button(ID(ModalSubmitID), Type("button"), Class("primary-button"), OnClick(p.submitModal), "Submit"),
			),
		),
	)
}
