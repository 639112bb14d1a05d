package pages

import (
	"strings"

	"github.com/a11ylab/a11ydemo/pkg/shell"
	. "github.com/a11ylab/a11ydemo/pkg/vdom"
)

type homePage struct {
	env *shell.Env
}

func newHomePage(env *shell.Env) *homePage {
	return &homePage{env: env}
}

var overview = []struct{ name, text string }{
	{"Semantic HTML", "Uses proper HTML5 semantic elements like <header>, <nav>, <main>, <section>, <article>, <aside>, and <footer>"},
	{"Non-Semantic HTML", "Uses only <div> and <span> elements with no semantic meaning"},
	{"Color Accessibility", "Demonstrates how color-blind users experience forms with color-only error indicators"},
	{"Map Accessibility", "Shows how color-blind users might miss critical information on maps with color-only markers"},
	{"ARIA Live & Focus Trap", "Demonstrates dynamic content announcements and modal dialog accessibility"},
	{"Accessibility Checklist", "Common accessibility issues and their solutions with code examples"},
}

var startLinks = []struct{ path, label, color string }{
	{"/semantic", "View Semantic HTML Demo", ""},
	{"/non-semantic", "View Non-Semantic HTML Demo", "#e74c3c"},
	{"/color-blind", "View Color Accessibility Demo", "#9b59b6"},
	{"/map", "View Map Accessibility Demo", "#27ae60"},
	{"/aria-live", "View ARIA Live & Focus Trap Demo", "#e67e22"},
	{"/checklist", "View Accessibility Checklist", "#6f42c1"},
}

func (p *homePage) Render() *VNode {
	var items []*VNode
	for _, o := range overview {
		items = append(items, Li(Strong(o.name+":"), " ", o.text))
	}

	var links []*VNode
	for _, l := range startLinks {
		links = append(links, pageLink(p.env, l.path,
			ID("start"+strings.ReplaceAll(l.path, "/", "-")),
			Class("button"),
			AttrIf(l.color != "", StyleAttr("background: "+l.color)),
			l.label,
		))
	}

	return Div(ID("home-page"), Class("container"),
		Header(
			H1("Accessibility Demo: Multiple Accessibility Topics"),
			P(Class("demo-description"),
				"This demo showcases various accessibility concepts including semantic HTML for screen readers, "+
					"color accessibility for color-blind users, and the impact of proper accessibility patterns."),
		),
		Section(Class("demo-section"),
			H2("Demo Overview"),
			P("This demonstration includes multiple accessibility scenarios:"),
			Ul(items),
		),
		Section(Class("demo-section"),
			H2("How to Test with Screen Readers"),
			Ol(
				Li(Strong("NVDA (Windows):"), " Download from ", externalLink("https://www.nvaccess.org/", "nvaccess.org")),
				Li(Strong("JAWS (Windows):"), " Download trial from ", externalLink("https://www.freedomscientific.com/", "freedomscientific.com")),
				Li(Strong("VoiceOver (Mac):"), " Enable in System Preferences → Accessibility → VoiceOver"),
				Li(Strong("Orca (Linux):"), " Install with ", Code("sudo apt install orca")),
			),
			H3("Testing Steps:"),
			Ol(
				Li(`Navigate to the "Semantic HTML" page`),
				Li("Use screen reader shortcuts to navigate by landmarks, headings, and form elements"),
				Li("Notice how the screen reader announces the page structure"),
				Li(`Navigate to the "Non-Semantic HTML" page`),
				Li("Compare the navigation experience - notice the lack of landmarks and structure"),
			),
		),
		Section(Class("demo-section"),
			H2("Key Differences You'll Notice"),
			Div(Class("comparison-grid"),
				Div(
					H3("✅ Semantic HTML"),
					Ul(
						Li("Screen readers can navigate by landmarks"),
						Li("Proper heading hierarchy is announced"),
						Li("Form labels are properly associated"),
						Li("Content structure is clear"),
						Li("ARIA roles and properties work correctly"),
					),
				),
				Div(
					H3("❌ Non-Semantic HTML"),
					Ul(
						Li("No landmarks available for navigation"),
						Li("Screen reader reads through content linearly"),
						Li("No heading structure announced"),
						Li("Form elements may not be properly labeled"),
						Li("Difficult to understand page structure"),
					),
				),
			),
		),
		Section(Class("demo-section"),
			H2("Get Started"),
			P("Choose a page to explore:"),
			Div(ID("start-links"), Class("button-row"), links),
		),
	)
}

func externalLink(href, text string) *VNode {
	return A(Href(href), Target("_blank"), Rel("noopener noreferrer"), text)
}
