package pages

import (
	"github.com/a11ylab/a11ydemo/pkg/announce"
	"github.com/a11ylab/a11ydemo/pkg/shell"
	. "github.com/a11ylab/a11ydemo/pkg/vdom"
)

// nonSemanticPage renders the same content as semanticPage using only
// generic containers. The missing structure is the point of the page.
type nonSemanticPage struct {
	env       *shell.Env
	form      contactForm
	showAlert bool
	alert     announce.Timer
}

func newNonSemanticPage(env *shell.Env) *nonSemanticPage {
	return &nonSemanticPage{env: env}
}

func (p *nonSemanticPage) submit() {
	stopTimer(p.alert)
	p.showAlert = true
	p.alert = p.env.After(p.env.Timing.AlertDuration, func() {
		p.showAlert = false
		p.alert = nil
	})
}

// Unmount cancels the pending alert timer.
func (p *nonSemanticPage) Unmount() {
	stopTimer(p.alert)
	p.alert = nil
}

func (p *nonSemanticPage) Render() *VNode {
	return Div(ID("non-semantic-page"), Class("non-semantic-page"),
		Div(Class("container"),
			Div(
				Div(
					H1("Non-Semantic HTML Demo"),
					Div("This page uses only div and span elements with no semantic meaning. "+
						"Notice how screen readers struggle to understand the page structure "+
						"and cannot navigate by landmarks."),
				),
				Div(
					Div(
						H2("Latest News Article"),
						Div(
							Div(
								Div("Web Accessibility Guidelines Updated"),
								Div(Span("January 15, 2024"), Span(" by "), Span("Accessibility Team")),
							),
							Div(
								Div("The World Wide Web Consortium (W3C) has released updated accessibility guidelines "+
									"that emphasize the importance of semantic HTML for screen reader users."),
								Div("These guidelines highlight how proper use of HTML5 semantic elements like "+
									"header, nav, main, section, and article can significantly "+
									"improve the user experience for people using assistive technologies."),
								Div("Screen readers can navigate these elements using landmark navigation, "+
									"making it much easier for users to understand and navigate web content."),
							),
						),
					),
					Div(
						H2("Related Information"),
						Div(
							Div(Span("WCAG 2.1 Guidelines")),
							Div(Span("ARIA Best Practices")),
							Div(Span("Accessibility Testing Tools")),
						),
					),
					Div(
						H2("Contact Form"),
						Div("This form demonstrates poor form structure without proper labeling:"),
						If(p.showAlert, Div(ID("ns-success"), Span("Success!"), " Your message has been submitted.")),
						Div(
							Div(Div("Full Name *"),
								Div(Input(Type("text"), ID("ns-name"), Name("name"), Value(p.form.Name), Class("form-input"),
									OnInput(func(v string) { p.form.Name = v }))),
							),
							Div(Div("Email Address *"),
								Div(Input(Type("email"), ID("ns-email"), Name("email"), Value(p.form.Email), Class("form-input"),
									OnInput(func(v string) { p.form.Email = v }))),
							),
							Div(Div("Message *"),
								Div(Div(ID("ns-message"), Class("form-input editable"),
									Attr{Key: "contenteditable", Value: "true"},
									OnInput(func(v string) { p.form.Message = v }),
									p.form.Message,
								)),
							),
							Div(Div(ID("ns-submit"), Class("button"), StyleAttr("cursor: pointer"), OnClick(p.submit), "Send Message")),
						),
					),
				),
				Div(
					H2("Problems with This Approach"),
					Div(
						Div("No landmarks available for navigation"),
						Div("Screen reader reads through content linearly"),
						Div("No heading structure announced"),
						Div("Form elements not properly labeled"),
						Div("Difficult to understand page structure"),
						Div("No semantic meaning for assistive technologies"),
						Div("Poor user experience for screen reader users"),
					),
				),
			),
		),
	)
}
