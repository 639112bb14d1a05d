package pages

import (
	"fmt"
	"strconv"

	"github.com/a11ylab/a11ydemo/pkg/shell"
	. "github.com/a11ylab/a11ydemo/pkg/vdom"
)

const chartImage = "data:image/svg+xml;base64,PHN2ZyB3aWR0aD0iMTAwIiBoZWlnaHQ9IjUwIiB2aWV3Qm94PSIwIDAgMTAwIDUwIiBmaWxsPSJub25lIiB4bWxucz0iaHR0cDovL3d3dy53My5vcmcvMjAwMC9zdmciPgo8cmVjdCB3aWR0aD0iMTAwIiBoZWlnaHQ9IjUwIiBmaWxsPSIjRjVGNUY1Ii8+Cjx0ZXh0IHg9IjUwIiB5PSIyNSIgZm9udC1mYW1pbHk9IkFyaWFsIiBmb250LXNpemU9IjEyIiBmaWxsPSIjMzMzIiB0ZXh0LWFuY2hvcj0ibWlkZGxlIj5DaGFydDwvdGV4dD4KPC9zdmc+"

const defaultChartAlt = "Sales chart showing 25% increase from Q1 to Q2"

type checklistPage struct {
	env        *shell.Env
	catalog    *Catalog
	expanded   map[string]bool
	divClicks  int
	btnClicks  int
	imageAlt   string
	name       string
	email      string
	formErrors map[string]string
}

func newChecklistPage(env *shell.Env, catalog *Catalog) *checklistPage {
	return &checklistPage{
		env:        env,
		catalog:    catalog,
		expanded:   map[string]bool{},
		imageAlt:   defaultChartAlt,
		formErrors: map[string]string{},
	}
}

func (p *checklistPage) toggle(id string) {
	p.expanded[id] = !p.expanded[id]
}

func (p *checklistPage) submitForm() {
	errs := map[string]string{}
	if p.name == "" {
		errs["name"] = "Name is required"
	}
	if p.email == "" {
		errs["email"] = "Email is required"
	}
	p.formErrors = errs
	if len(errs) > 0 {
		p.env.Announce(fmt.Sprintf("Form has %d errors", len(errs)))
	}
}

func (p *checklistPage) Render() *VNode {
	var items []*VNode
	for _, item := range p.catalog.Checklist {
		items = append(items, p.renderItem(item))
	}

	return Div(ID("checklist-page"), Class("container"),
		Section(ID("checklist"), AriaLabelledBy("checklist-heading"),
			H1("Accessibility Checklist"),
			H2(ID("checklist-heading"), "Common Accessibility Issues & Solutions"),
			P("This checklist covers the most common accessibility issues and their solutions. "+
				"Click on any item to see detailed examples and benefits."),
			Div(Class("checklist-container"), items),
		),
		Aside(Role("complementary"), AriaLabelledBy("tips-heading"),
			H2(ID("tips-heading"), "Quick Accessibility Tips"),
			Div(Class("quick-tips"),
				tipCard("🎯 Test with Keyboard", "Navigate your entire interface using only Tab, Shift+Tab, Enter, and Space keys."),
				tipCard("🔍 Use Screen Reader", "Test with NVDA, JAWS, or VoiceOver to experience how users with visual impairments navigate."),
				tipCard("🎨 Check Contrast", "Use tools like WebAIM's contrast checker to ensure 4.5:1 ratio for normal text."),
				tipCard("📱 Test on Mobile", "Ensure touch targets are at least 44px and content is readable without zooming."),
			),
		),
	)
}

func tipCard(title, text string) *VNode {
	return Div(Class("tip-card"), H3(title), P(text))
}

func (p *checklistPage) renderItem(item ChecklistItem) *VNode {
	id := item.ID
	open := p.expanded[id]
	icon := "+"
	if open {
		icon = "−"
	}

	var benefits []*VNode
	for _, b := range item.Benefits {
		benefits = append(benefits, Li(b))
	}

	return Div(Class("checklist-item"),
		Button(ID("toggle-"+id), Type("button"), Class("checklist-header"),
			AriaExpanded(open), AriaControls("content-"+id),
			OnClick(func() { p.toggle(id) }),
			Span(Class("checklist-title"),
				Span(Class("problem"), item.Problem),
				" ",
				Span(Class("solution"), item.Solution),
			),
			Span(Class("expand-icon"), AriaHidden(true), icon),
		),
		If(open, Div(ID("content-"+id), Class("checklist-content"),
			P(Class("description"), item.Description),
			If(item.Example != "", Div(Class("interactive-section"), p.renderExample(item.Example))),
			Div(Class("examples"),
				H4("Code Examples:"),
				Div(Class("code-examples"),
					Div(Class("bad-example"), H4("❌ Bad:"), Pre(Code(item.Bad))),
					Div(Class("good-example"), H4("✅ Good:"), Pre(Code(item.Good))),
				),
			),
			Div(Class("benefits"),
				H4("Benefits:"),
				Ul(benefits),
			),
		)),
	)
}

func (p *checklistPage) renderExample(kind string) *VNode {
	var body *VNode
	switch kind {
	case "buttons":
		body = p.buttonsExample()
	case "alt-text":
		body = p.altTextExample()
	case "contrast":
		body = contrastExample()
	case "form-labels":
		body = p.formExample()
	default:
		return nil
	}
	return Div(Class("interactive-example"), H4("Try it yourself:"), body)
}

func (p *checklistPage) buttonsExample() *VNode {
	return Fragment(
		Div(Class("example-buttons"),
			Div(ID("div-button"), Class("bad-button"), OnClick(func() { p.divClicks++ }),
				"❌ Div Button (Clicks: "+strconv.Itoa(p.divClicks)+")"),
			Button(ID("real-button"), Type("button"), Class("good-button"), OnClick(func() { p.btnClicks++ }),
				"✅ Real Button (Clicks: "+strconv.Itoa(p.btnClicks)+")"),
		),
		P(Class("example-note"),
			Strong("Try:"), " Use Tab to navigate - notice the div doesn't get focus, but the button does!"),
	)
}

func (p *checklistPage) altTextExample() *VNode {
	spoken := `Screen reader: "Image" (no description)`
	if p.imageAlt != "" {
		spoken = fmt.Sprintf("Screen reader: %q", p.imageAlt)
	}
	return Div(Class("image-examples"),
		Div(Class("bad-image"),
			H4("❌ No alt text:"),
			Img(Src(chartImage), Class("example-image")),
			P(Class("example-note"), `Screen reader: "Image" (no description)`),
		),
		Div(Class("good-image"),
			H4("✅ With alt text:"),
			Img(ID("alt-preview"), Src(chartImage), Alt(p.imageAlt), Class("example-image")),
			Label(For("alt-input"), "Alt text:"),
			Input(Type("text"), ID("alt-input"), Value(p.imageAlt), OnInput(func(v string) { p.imageAlt = v })),
			P(ID("alt-spoken"), Class("example-note"), spoken),
		),
	)
}

func contrastExample() *VNode {
	sample := func(class, heading, fg, text string) *VNode {
		ratio, _ := ContrastRatio(fg, "#fff")
		return Div(Class(class),
			H4(fmt.Sprintf("%s (%.1f:1 ratio):", heading, ratio)),
			P(Class("contrast-text"), StyleAttr("color: "+fg+"; background: #fff"), text),
		)
	}
	return Div(Class("contrast-examples"),
		sample("bad-contrast", "❌ Poor contrast", "#999", "This text is hard to read"),
		sample("good-contrast", "✅ Good contrast", "#333", "This text is easy to read"),
	)
}

func (p *checklistPage) formExample() *VNode {
	setName := func(v string) { p.name = v }
	setEmail := func(v string) { p.email = v }
	nameErr, nameInvalid := p.formErrors["name"]
	emailErr, emailInvalid := p.formErrors["email"]

	return Div(Class("form-examples"),
		Div(Class("bad-form"),
			H4("❌ No labels:"),
			Form(ID("unlabelled-form"), Novalidate(), OnSubmit(p.submitForm),
				Input(Type("text"), ID("unlabelled-name"), Placeholder("Name"), Value(p.name), OnInput(setName)),
				Input(Type("email"), ID("unlabelled-email"), Placeholder("Email"), Value(p.email), OnInput(setEmail)),
				Button(Type("submit"), "Submit"),
			),
			P(Class("example-note"), `Screen reader: "Edit" (no context)`),
		),
		Div(Class("good-form"),
			H4("✅ With labels:"),
			Form(ID("labelled-form"), Novalidate(), OnSubmit(p.submitForm),
				Label(For("name-field"), "Name:"),
				Input(Type("text"), ID("name-field"), Value(p.name), OnInput(setName),
					AriaInvalid(nameInvalid), AttrIf(nameInvalid, AriaDescribedBy("name-field-error"))),
				If(nameInvalid, Span(ID("name-field-error"), Class("error-message"), Role("alert"), nameErr)),
				Label(For("email-field"), "Email:"),
				Input(Type("email"), ID("email-field"), Value(p.email), OnInput(setEmail),
					AriaInvalid(emailInvalid), AttrIf(emailInvalid, AriaDescribedBy("email-field-error"))),
				If(emailInvalid, Span(ID("email-field-error"), Class("error-message"), Role("alert"), emailErr)),
				Button(Type("submit"), "Submit"),
			),
			P(Class("example-note"), `Screen reader: "Name, edit" (clear context)`),
		),
	)
}
