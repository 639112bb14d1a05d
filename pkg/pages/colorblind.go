package pages

import (
	"fmt"
	"regexp"
	"strconv"
	"strings"

	"github.com/a11ylab/a11ydemo/pkg/shell"
	. "github.com/a11ylab/a11ydemo/pkg/vdom"
)

// SignupForm holds the fields of the colour page form.
type SignupForm struct {
	Email           string
	Password        string
	ConfirmPassword string
	Phone           string
	Age             string
}

// Field names used as validation error keys.
const (
	FieldEmail           = "email"
	FieldPassword        = "password"
	FieldConfirmPassword = "confirmPassword"
	FieldPhone           = "phone"
	FieldAge             = "age"
)

var emailPattern = regexp.MustCompile(`\S+@\S+\.\S+`)

// ValidateSignup returns the error message per invalid field. An empty
// map means the form is valid.
func ValidateSignup(f SignupForm) map[string]string {
	errs := make(map[string]string)

	switch {
	case f.Email == "":
		errs[FieldEmail] = "Email is required"
	case !emailPattern.MatchString(f.Email):
		errs[FieldEmail] = "Invalid email format"
	}

	switch {
	case f.Password == "":
		errs[FieldPassword] = "Password is required"
	case len([]rune(f.Password)) < 8:
		errs[FieldPassword] = "Password must be at least 8 characters"
	}

	if f.Password != f.ConfirmPassword {
		errs[FieldConfirmPassword] = "Passwords do not match"
	}

	if f.Phone == "" {
		errs[FieldPhone] = "Phone number is required"
	}

	if f.Age == "" {
		errs[FieldAge] = "Age is required"
	} else if age, err := strconv.ParseFloat(strings.TrimSpace(f.Age), 64); err != nil || age < 18 {
		errs[FieldAge] = "Must be 18 or older"
	}

	return errs
}

type colorPage struct {
	env        *shell.Env
	colorBlind bool
	form       SignupForm
	errors     map[string]string
}

func newColorPage(env *shell.Env) *colorPage {
	return &colorPage{env: env, errors: map[string]string{}}
}

func (p *colorPage) toggle() {
	p.colorBlind = !p.colorBlind
}

func (p *colorPage) submit() {
	p.errors = ValidateSignup(p.form)
}

var contrastSamples = []struct{ fg, bg, text string }{
	{"#000000", "#FFFFFF", "Black text (#000000) on white background (#FFFFFF)"},
	{"#555555", "#FFFFFF", "Dark gray text (#555555) on white background"},
	{"#999999", "#FFFFFF", "Light gray text (#999999) on white background"},
}

func (p *colorPage) Render() *VNode {
	toggleLabel := "Color Blind Simulation Mode"
	instruction := "👁️ Normal Vision: All errors are clearly visible with red colors"
	if p.colorBlind {
		toggleLabel = "Normal Vision Mode"
		instruction = "🔍 Color Blind Mode: Notice how error states become nearly invisible!"
	}

	return Div(ID("color-page"), Class("container"),
		Section(AriaLabelledBy("demo-heading"),
			H1("Color Accessibility Demo"),
			H2(ID("demo-heading"), "Color-Only Error Indicators vs. Accessible Patterns"),
			Div(Class("demo-controls"),
				Button(ID("color-blind-toggle"), Type("button"),
					Class("toggle-button"), ClassIf(p.colorBlind, "active"),
					AriaPressed(p.colorBlind),
					OnClick(p.toggle),
					toggleLabel,
				),
				P(Class("demo-instruction"), instruction),
			),
			Div(ID("color-simulator"), Class("color-blind-simulator"), ClassIf(p.colorBlind, "active"),
				Div(Class("demo-section"),
					H3("❌ Problem: Color-Only Error Indicators"),
					P("This form uses only red text and red borders to indicate errors. Color-blind users may not see these errors!"),
					Form(ID("problem-form"), Class("problematic-form"), Novalidate(), OnSubmit(p.submit),
						p.problemField(FieldEmail, "Email Address *", "email", p.form.Email, func(v string) { p.form.Email = v }),
						p.problemField(FieldPassword, "Password *", "password", p.form.Password, func(v string) { p.form.Password = v }),
						p.problemField(FieldConfirmPassword, "Confirm Password *", "password", p.form.ConfirmPassword, func(v string) { p.form.ConfirmPassword = v }),
						p.problemField(FieldPhone, "Phone Number *", "tel", p.form.Phone, func(v string) { p.form.Phone = v }),
						p.problemField(FieldAge, "Age *", "number", p.form.Age, func(v string) { p.form.Age = v }),
						Button(Type("submit"), ID("problem-submit"), Class("submit-button"), "Submit Form"),
					),
				),
				Div(Class("demo-section"),
					H3("✅ Solution: Accessible Error Patterns"),
					P("This form uses multiple indicators: icons, text, borders, and ARIA attributes for comprehensive accessibility."),
					Form(ID("accessible-form"), Class("accessible-form"),
						accessibleField("accessible-email", "Email Address *", "email", "Email is required and must be valid"),
						accessibleField("accessible-password", "Password *", "password", "Password must be at least 8 characters long"),
						accessibleField("accessible-confirm", "Confirm Password *", "password", "Passwords do not match"),
						accessibleField("accessible-phone", "Phone Number *", "tel", "Phone number is required"),
						accessibleField("accessible-age", "Age *", "number", "Must be 18 or older"),
						Button(Type("button"), Class("submit-button"), "Submit Form"),
					),
				),
			),
			Aside(Role("complementary"), AriaLabelledBy("tips-heading"),
				H2(ID("tips-heading"), "Accessibility Tips"),
				Ul(
					Li(Strong("Don't rely on color alone"), " - Use icons, text, and patterns"),
					Li(Strong("Provide multiple indicators"), " - Visual, textual, and programmatic"),
					Li(Strong("Use ARIA attributes"), " - ", Code("aria-invalid"), ", ", Code("aria-describedby")),
					Li(Strong(`Include role="alert"`), " - For dynamic error announcements"),
					Li(Strong("Test with color-blind simulation"), " - Ensure all users can see errors"),
				),
			),
		),
		p.renderContrast(),
	)
}

func (p *colorPage) problemField(name, label, kind, value string, set func(string)) *VNode {
	msg, invalid := p.errors[name]
	return Div(Class("form-group"),
		Label(For(name), label),
		Input(Type(kind), ID(name), Name(name), Value(value),
			ClassIf(invalid, "error-input"),
			AriaInvalid(invalid),
			OnInput(set),
		),
		If(invalid, Span(ID(name+"-error"), Class("error-text"), msg)),
	)
}

func accessibleField(id, label, kind, msg string) *VNode {
	errID := id + "-error"
	return Div(Class("form-group"),
		Label(For(id), label),
		Div(Class("input-container"),
			Input(Type(kind), ID(id), Name(id), Class("error-input"), AriaInvalid(true), AriaDescribedBy(errID)),
			Span(Class("error-icon"), AriaHidden(true), "⚠️"),
		),
		Div(ID(errID), Class("error-message"), Role("alert"), Strong("Error:"), " ", msg),
	)
}

func (p *colorPage) renderContrast() *VNode {
	var samples []*VNode
	for _, s := range contrastSamples {
		info := "→ unknown"
		if ratio, err := ContrastRatio(s.fg, s.bg); err == nil {
			info = fmt.Sprintf("→ %.1f:1 (%s)", ratio, ContrastVerdict(ratio))
		}
		samples = append(samples, Div(Class("contrast-sample"),
			Div(Class("sample-text"), StyleAttr(fmt.Sprintf("color: %s; background-color: %s", s.fg, s.bg)), s.text),
			Div(Class("ratio-info"), info),
		))
	}

	return Section(ID("contrast-info"), AriaLabelledBy("contrast-heading"), Class("contrast-info-section"),
		H2(ID("contrast-heading"), "Understanding Color Contrast Ratios"),
		Div(Class("contrast-explanation"),
			H3("4.5:1 contrast ratio comes from the WCAG 2.1 guidelines."),
			P("Here's what it means:"),
			Ul(
				Li("It's the ratio between the luminance (perceived brightness) of text and its background."),
				Li("A ratio of 4.5:1 means the text color is 4.5 times brighter or darker than the background."),
				Li("This ensures people with low vision or color deficiencies can still read the text comfortably."),
			),
		),
		Div(Class("contrast-examples"),
			H3("✅ Examples:"),
			Div(Class("example-grid"), samples),
		),
		Div(Class("wcag-rules"),
			H3("📌 WCAG Rules:"),
			Ul(
				Li(Strong("AA standard (normal text):"), " needs at least 4.5:1"),
				Li(Strong("AA standard (large text ≥18pt or 14pt bold):"), " needs at least 3:1"),
				Li(Strong("AAA standard:"), " needs 7:1 for normal text"),
			),
		),
	)
}
