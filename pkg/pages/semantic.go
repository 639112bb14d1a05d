package pages

import (
	"github.com/a11ylab/a11ydemo/pkg/announce"
	"github.com/a11ylab/a11ydemo/pkg/shell"
	. "github.com/a11ylab/a11ydemo/pkg/vdom"
)

// contactForm is the name/email/message form shared by the semantic and
// non-semantic pages.
type contactForm struct {
	Name    string
	Email   string
	Message string
}

type semanticPage struct {
	env       *shell.Env
	form      contactForm
	showAlert bool
	alert     announce.Timer
}

func newSemanticPage(env *shell.Env) *semanticPage {
	return &semanticPage{env: env}
}

func (p *semanticPage) submit() {
	stopTimer(p.alert)
	p.showAlert = true
	p.alert = p.env.After(p.env.Timing.AlertDuration, func() {
		p.showAlert = false
		p.alert = nil
	})
}

// Unmount cancels the pending alert timer.
func (p *semanticPage) Unmount() {
	stopTimer(p.alert)
	p.alert = nil
}

func (p *semanticPage) Render() *VNode {
	return Div(ID("semantic-page"), Class("semantic-page"),
		Div(Class("container"),
			Header(
				H1("Semantic HTML Demo"),
				P(Class("demo-description"),
					"This page uses proper semantic HTML5 elements. Notice how screen readers can navigate by landmarks, "+
						"understand the page structure, and properly announce form elements."),
			),
			Section(Class("demo-section"), AriaLabelledBy("article-heading"),
				H2(ID("article-heading"), "Latest News Article"),
				Article(
					Header(
						H3("Web Accessibility Guidelines Updated"),
						Div(Class("article-meta"),
							Time_(DateTime("2024-01-15"), "January 15, 2024"),
							Span(" by "),
							Span("Accessibility Team"),
						),
					),
					Div(Class("article-content"),
						P("The World Wide Web Consortium (W3C) has released updated accessibility guidelines "+
							"that emphasize the importance of semantic HTML for screen reader users."),
						P("These guidelines highlight how proper use of HTML5 semantic elements like ",
							Code("<header>"), ", ", Code("<nav>"), ", ", Code("<main>"), ", ",
							Code("<section>"), ", and ", Code("<article>"),
							" can significantly improve the user experience for people using assistive technologies."),
						P("Screen readers can navigate these elements using landmark navigation, "+
							"making it much easier for users to understand and navigate web content."),
					),
				),
			),
			Aside(Class("demo-section"), AriaLabelledBy("sidebar-heading"),
				H2(ID("sidebar-heading"), "Related Information"),
				Nav(AriaLabel("Related links"),
					Ul(
						Li(A(Href("#wcag"), "WCAG 2.1 Guidelines")),
						Li(A(Href("#aria"), "ARIA Best Practices")),
						Li(A(Href("#testing"), "Accessibility Testing Tools")),
					),
				),
			),
			Section(Class("demo-section"), AriaLabelledBy("contact-heading"),
				H2(ID("contact-heading"), "Contact Form"),
				P("This form demonstrates proper form labeling and structure:"),
				If(p.showAlert, Div(ID("contact-success"), Class("alert alert-success"), Role("alert"), AriaLive("polite"),
					Strong("Success!"), " Your message has been submitted.",
				)),
				Form(ID("contact-form"), AriaLabelledBy("contact-heading"), OnSubmit(p.submit),
					Fieldset(
						Legend(Class("sr-only"), "Contact Information"),
						field("name", "Full Name", true,
							Input(Type("text"), ID("name"), Name("name"), Value(p.form.Name), Class("form-input"),
								Required(), AriaDescribedBy("name-help"),
								OnInput(func(v string) { p.form.Name = v })),
							"Enter your full name as it appears on official documents"),
						field("email", "Email Address", true,
							Input(Type("email"), ID("email"), Name("email"), Value(p.form.Email), Class("form-input"),
								Required(), AriaDescribedBy("email-help"),
								OnInput(func(v string) { p.form.Email = v })),
							"We'll use this to respond to your message"),
						field("message", "Message", true,
							Textarea(ID("message"), Name("message"), Class("form-input"), Rows(4),
								Required(), AriaDescribedBy("message-help"),
								OnInput(func(v string) { p.form.Message = v }),
								p.form.Message),
							"Tell us about your accessibility needs or questions"),
						Button(Type("submit"), ID("contact-submit"), Class("button"), "Send Message"),
					),
				),
			),
			Footer(Class("demo-section"),
				H2("Page Features Demonstrated"),
				Ul(
					Li(Strong("Landmarks:"), " header, main, section, aside, footer"),
					Li(Strong("Headings:"), " Proper h1-h6 hierarchy"),
					Li(Strong("Form Labels:"), " Properly associated with inputs"),
					Li(Strong("ARIA:"), " aria-labelledby, aria-describedby, role attributes"),
					Li(Strong("Semantic Elements:"), " article, time, nav, fieldset, legend"),
					Li(Strong("Live Regions:"), " aria-live for dynamic content"),
				),
			),
		),
	)
}
