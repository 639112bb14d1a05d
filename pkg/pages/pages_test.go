package pages_test

import (
	"testing"
	"testing/fstest"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/a11ylab/a11ydemo/pkg/announce"
	"github.com/a11ylab/a11ydemo/pkg/focus"
	"github.com/a11ylab/a11ydemo/pkg/pages"
	"github.com/a11ylab/a11ydemo/pkg/router"
	"github.com/a11ylab/a11ydemo/pkg/shell"
	"github.com/a11ylab/a11ydemo/pkg/toast"
	"github.com/a11ylab/a11ydemo/pkg/vdom"
	"github.com/a11ylab/a11ydemo/pkg/vtest"
)

type fixture struct {
	t     *testing.T
	env   *shell.Env
	shell *shell.Shell
	sched *vtest.Scheduler
	tree  *vdom.VNode
}

func newFixture(t *testing.T, path string) *fixture {
	t.Helper()
	table, err := pages.NewTable()
	require.NoError(t, err)
	catalog, err := pages.LoadCatalog()
	require.NoError(t, err)

	sched := vtest.NewScheduler()
	announcer := announce.New(announce.WithScheduler(sched))
	f := &fixture{t: t, sched: sched}
	f.env = &shell.Env{
		Announcer:     announcer,
		Notifications: toast.NewCenter(announcer, toast.WithScheduler(sched)),
		Focus:         focus.NewManager(focus.NewDocument()),
		Router:        router.New(table, router.WithInitialPath(path)),
		Scheduler:     sched,
		Timing:        shell.DefaultTiming(),
	}
	f.shell = shell.New(f.env, pages.Factories(catalog))
	f.render()
	return f
}

func (f *fixture) render() *vdom.VNode {
	f.tree = f.shell.Frame()
	return f.tree
}

// click focuses the target like a browser would, runs its handler and
// renders the next frame.
func (f *fixture) click(id string) {
	f.t.Helper()
	f.env.Document().Focus(id)
	vtest.Click(f.t, f.tree, id)
	f.render()
}

func (f *fixture) input(id, value string) {
	f.t.Helper()
	vtest.Input(f.t, f.tree, id, value)
	f.render()
}

func (f *fixture) submit(id string) {
	f.t.Helper()
	vtest.Submit(f.t, f.tree, id)
	f.render()
}

func (f *fixture) key(key string, shift bool) focus.KeyResult {
	res := f.env.Focus.HandleKey(focus.KeyEvent{Key: key, Shift: shift})
	f.render()
	return res
}

func (f *fixture) polite() string {
	return f.shell.LiveText(announce.Polite)
}

func (f *fixture) text(id string) string {
	f.t.Helper()
	return vdom.TextContent(vtest.Find(f.t, f.tree, id))
}

func (f *fixture) has(id string) bool {
	return vdom.FindByID(f.tree, id) != nil
}

func TestRoutesHaveFactories(t *testing.T) {
	table, err := pages.NewTable()
	require.NoError(t, err)
	assert.Equal(t, 7, table.Len())

	factories := pages.Factories(pages.MustLoadCatalog())
	for _, route := range table.Routes() {
		assert.NotEmpty(t, route.Label, route.Path)
		assert.Contains(t, factories, route.Page, route.Path)
	}
}

func TestLoadCatalog(t *testing.T) {
	catalog, err := pages.LoadCatalog()
	require.NoError(t, err)

	assert.Len(t, catalog.Markers, 8)
	assert.Len(t, catalog.Checklist, 10)
	for _, s := range []pages.Severity{pages.SeverityHigh, pages.SeverityMedium, pages.SeverityLow} {
		assert.NotEmpty(t, catalog.Style(s).Symbol, s)
	}
	assert.Equal(t, "Critical System Error", catalog.Markers[0].Message)
	assert.Equal(t, "buttons", catalog.Checklist[0].ID)
}

func TestLoadCatalogFSRejectsBadContent(t *testing.T) {
	checklist := &fstest.MapFile{Data: []byte("items:\n  - id: a\n")}
	tests := []struct {
		name    string
		markers string
	}{
		{"unknown severity", "markers:\n  - {id: 1, x: 1, y: 1, severity: urgent}\nseverities:\n  high: {color: red}\n"},
		{"duplicate id", "markers:\n  - {id: 1, x: 1, y: 1, severity: high}\n  - {id: 1, x: 2, y: 2, severity: high}\nseverities:\n  high: {color: red}\n"},
		{"off the map", "markers:\n  - {id: 1, x: 101, y: 1, severity: high}\nseverities:\n  high: {color: red}\n"},
		{"malformed", "markers: [\n"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			fsys := fstest.MapFS{
				"markers.yaml":   &fstest.MapFile{Data: []byte(tt.markers)},
				"checklist.yaml": checklist,
			}
			_, err := pages.LoadCatalogFS(fsys)
			assert.Error(t, err)
		})
	}

	_, err := pages.LoadCatalogFS(fstest.MapFS{})
	assert.Error(t, err, "missing files")
}

func TestValidateSignup(t *testing.T) {
	valid := pages.SignupForm{
		Email:           "ada@example.com",
		Password:        "correct horse",
		ConfirmPassword: "correct horse",
		Phone:           "555-0100",
		Age:             "36",
	}
	assert.Empty(t, pages.ValidateSignup(valid))

	tests := []struct {
		name   string
		modify func(*pages.SignupForm)
		field  string
		want   string
	}{
		{"email required", func(f *pages.SignupForm) { f.Email = "" }, pages.FieldEmail, "Email is required"},
		{"email format", func(f *pages.SignupForm) { f.Email = "ada@example" }, pages.FieldEmail, "Invalid email format"},
		{"password required", func(f *pages.SignupForm) { f.Password, f.ConfirmPassword = "", "" }, pages.FieldPassword, "Password is required"},
		{"password short", func(f *pages.SignupForm) { f.Password, f.ConfirmPassword = "short", "short" }, pages.FieldPassword, "Password must be at least 8 characters"},
		{"mismatch", func(f *pages.SignupForm) { f.ConfirmPassword = "other" }, pages.FieldConfirmPassword, "Passwords do not match"},
		{"phone required", func(f *pages.SignupForm) { f.Phone = "" }, pages.FieldPhone, "Phone number is required"},
		{"age required", func(f *pages.SignupForm) { f.Age = "" }, pages.FieldAge, "Age is required"},
		{"age not a number", func(f *pages.SignupForm) { f.Age = "old" }, pages.FieldAge, "Must be 18 or older"},
		{"age too young", func(f *pages.SignupForm) { f.Age = "17" }, pages.FieldAge, "Must be 18 or older"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			form := valid
			tt.modify(&form)
			errs := pages.ValidateSignup(form)
			assert.Equal(t, tt.want, errs[tt.field])
			assert.Len(t, errs, 1)
		})
	}
}

func TestContrastRatio(t *testing.T) {
	tests := []struct {
		fg, bg string
		want   float64
	}{
		{"#000000", "#FFFFFF", 21},
		{"#fff", "#000", 21},
		{"#555555", "#ffffff", 7.45},
		{"#999", "#fff", 2.85},
		{"#777", "#777", 1},
	}
	for _, tt := range tests {
		got, err := pages.ContrastRatio(tt.fg, tt.bg)
		require.NoError(t, err)
		assert.InDelta(t, tt.want, got, 0.01, "%s on %s", tt.fg, tt.bg)
	}

	_, err := pages.ContrastRatio("#12", "#fff")
	assert.Error(t, err)
	_, err = pages.ContrastRatio("#fff", "#gggggg")
	assert.Error(t, err)

	assert.Equal(t, "passes AA and AAA", pages.ContrastVerdict(7.46))
	assert.Equal(t, "fails AA", pages.ContrastVerdict(2.85))
	assert.Equal(t, "fails AA, large text only", pages.ContrastVerdict(3.5))
}

func TestHomeLinksNavigate(t *testing.T) {
	f := newFixture(t, "/")
	vtest.ExpectContains(t, f.tree, "Accessibility Demo: Multiple Accessibility Topics")

	f.click("start-semantic")

	assert.Equal(t, "/semantic", f.env.Router.CurrentPath())
	assert.Equal(t, "Semantic HTML page loaded", f.polite())
	assert.Equal(t, shell.MainID, f.env.Document().ActiveKey())
	assert.True(t, f.has("semantic-page"))
}

func TestSemanticFormAlert(t *testing.T) {
	f := newFixture(t, "/semantic")
	vtest.ExpectElement(t, f.tree, "article")
	vtest.ExpectElement(t, f.tree, "aside")

	f.input("name", "Ada")
	vtest.ExpectAttribute(t, f.tree, "value", "Ada")

	f.submit("contact-form")
	require.True(t, f.has("contact-success"))
	vtest.ExpectAttribute(t, vtest.Find(t, f.tree, "contact-success"), "role", "alert")

	f.sched.Advance(2 * time.Second)
	f.render()
	assert.True(t, f.has("contact-success"))

	f.sched.Advance(time.Second)
	f.render()
	assert.False(t, f.has("contact-success"))
}

func TestNonSemanticDivSubmit(t *testing.T) {
	f := newFixture(t, "/non-semantic")
	vtest.ExpectNotContains(t, f.tree, "<article")
	vtest.ExpectNotContains(t, f.tree, "<label")

	f.input("ns-message", "Hello")
	assert.Equal(t, "Hello", f.text("ns-message"))

	f.click("ns-submit")
	assert.True(t, f.has("ns-success"))
	f.sched.Advance(3 * time.Second)
	f.render()
	assert.False(t, f.has("ns-success"))
}

func TestColorPageToggleAndValidation(t *testing.T) {
	f := newFixture(t, "/color-blind")
	toggle := vtest.Find(t, f.tree, "color-blind-toggle")
	vtest.ExpectAttribute(t, toggle, "aria-pressed", "false")

	f.click("color-blind-toggle")
	toggle = vtest.Find(t, f.tree, "color-blind-toggle")
	vtest.ExpectAttribute(t, toggle, "aria-pressed", "true")
	assert.Equal(t, "Normal Vision Mode", vdom.TextContent(toggle))
	vtest.ExpectAttribute(t, vtest.Find(t, f.tree, "color-simulator"), "class", "color-blind-simulator active")

	f.input("email", "not-an-email")
	f.submit("problem-form")
	assert.Equal(t, "Invalid email format", f.text("email-error"))
	assert.Equal(t, "Age is required", f.text("age-error"))
	assert.Equal(t, "Password is required", f.text("password-error"))
	assert.False(t, f.has("confirmPassword-error"))
	vtest.ExpectAttribute(t, vtest.Find(t, f.tree, "email"), "aria-invalid", "true")

	vtest.ExpectContains(t, f.tree, "21.0:1 (maximum contrast)")
	vtest.ExpectContains(t, f.tree, "(fails AA)")
}

func TestMapMarkerDetails(t *testing.T) {
	f := newFixture(t, "/map")
	assert.False(t, f.has("marker-details"))
	vtest.ExpectAttribute(t, vtest.Find(t, f.tree, "marker-1"), "aria-label", "Error marker: Critical System Error")
	vtest.ExpectAttribute(t, vtest.Find(t, f.tree, "accessible-marker-6"), "aria-label", "low priority error: API Rate Limit Exceeded")

	f.click("accessible-marker-3")
	require.True(t, f.has("marker-details"))
	vtest.ExpectContains(t, vtest.Find(t, f.tree, "marker-details"), "Server 3")
	assert.Equal(t, "Error details: Service Unavailable, medium priority", f.polite())

	f.click("marker-close")
	assert.False(t, f.has("marker-details"))
	assert.Equal(t, "accessible-marker-3", f.env.Document().ActiveKey())
}

func TestMapColorBlindMarkersGreyOut(t *testing.T) {
	f := newFixture(t, "/map")
	vtest.ExpectContains(t, vtest.Find(t, f.tree, "marker-1"), "#dc3545")

	f.click("color-blind-toggle")
	vtest.ExpectContains(t, vtest.Find(t, f.tree, "marker-1"), "background-color: #999")
	vtest.ExpectContains(t, vtest.Find(t, f.tree, "accessible-marker-1"), "#dc3545")
}

func TestModalFocusTrap(t *testing.T) {
	f := newFixture(t, "/aria-live")
	assert.False(t, f.has(pages.ModalID))

	f.click(pages.OpenModalID)
	require.True(t, f.has(pages.ModalID))
	assert.Equal(t, "modal-name", f.env.Document().ActiveKey())
	assert.Equal(t, pages.ModalOpenedMessage, f.polite())
	vtest.ExpectAttribute(t, vtest.Find(t, f.tree, pages.ModalID), "data-trap-open", "true")

	res := f.key("Tab", true)
	assert.True(t, res.PreventDefault)
	assert.Equal(t, pages.ModalSubmitID, f.env.Document().ActiveKey())

	res = f.key("Tab", false)
	assert.True(t, res.PreventDefault)
	assert.Equal(t, "modal-name", f.env.Document().ActiveKey())

	res = f.key("Tab", false)
	assert.False(t, res.PreventDefault)
	assert.Equal(t, "modal-email", f.env.Document().ActiveKey())

	res = f.key("Escape", false)
	assert.True(t, res.Closed)
	assert.False(t, f.has(pages.ModalID))
	assert.Equal(t, pages.OpenModalID, f.env.Document().ActiveKey())
	assert.Equal(t, pages.ModalClosedMessage, f.polite())

	f.sched.Advance(announce.DefaultClearDelay)
	assert.Equal(t, "", f.polite())
}

func TestModalCancelAndOverlay(t *testing.T) {
	f := newFixture(t, "/aria-live")

	f.click(pages.OpenModalID)
	f.click(pages.ModalCancelID)
	assert.False(t, f.has(pages.ModalID))
	assert.Equal(t, pages.OpenModalID, f.env.Document().ActiveKey())

	f.click(pages.OpenModalID)
	f.click(pages.ModalID)
	assert.True(t, f.has(pages.ModalID), "clicks inside the dialog keep it open")

	f.click("modal-overlay")
	assert.False(t, f.has(pages.ModalID))
	assert.Equal(t, 0, f.env.Focus.Depth())
}

func TestModalSubmitAddsNotification(t *testing.T) {
	f := newFixture(t, "/aria-live")

	f.click(pages.OpenModalID)
	f.input("modal-name", "Ada")
	assert.Equal(t, "Ada", vtest.Find(t, f.tree, "modal-name").Props["value"])
	f.click(pages.ModalSubmitID)

	assert.False(t, f.has(pages.ModalID))
	require.Equal(t, 1, f.env.Notifications.Len())
	assert.Equal(t, pages.FormSubmittedMessage, f.env.Notifications.List()[0].Message)
	assert.Equal(t, "Notifications (1)", f.text("notifications-heading"))

	f.sched.Advance(toast.DefaultDismissAfter)
	f.render()
	assert.Equal(t, "Notifications (0)", f.text("notifications-heading"))
}

func TestNavigationClosesModal(t *testing.T) {
	f := newFixture(t, "/aria-live")
	f.click(pages.OpenModalID)
	require.Equal(t, 1, f.env.Focus.Depth())

	f.shell.Navigate("/")
	f.render()
	assert.Equal(t, 0, f.env.Focus.Depth())
	assert.Equal(t, shell.MainID, f.env.Document().ActiveKey())
	assert.Equal(t, "Home page loaded", f.polite())
}

func TestNotificationsAnnounce(t *testing.T) {
	f := newFixture(t, "/aria-live")

	f.click("add-error")
	assert.Equal(t, "error: Error: Something went wrong!", f.shell.LiveText(announce.Assertive))

	list := f.env.Notifications.List()
	require.Len(t, list, 1)
	remove := vtest.Find(t, f.tree, "remove-"+list[0].ID)
	vtest.ExpectAttribute(t, remove, "aria-label", "Remove error notification")

	f.click("remove-" + list[0].ID)
	assert.Equal(t, 0, f.env.Notifications.Len())
	assert.Equal(t, toast.RemovedMessage, f.polite())
	assert.Equal(t, "", f.shell.LiveText(announce.Assertive))

	f.click("add-info")
	assert.Equal(t, "info: Info: System update available.", f.polite())
}

func TestCounterAndAsync(t *testing.T) {
	f := newFixture(t, "/aria-live")

	f.click(pages.CounterID)
	f.click(pages.CounterID)
	assert.Equal(t, "Increment Counter (2)", f.text(pages.CounterID))
	assert.Equal(t, "Counter updated to 2", f.polite())

	f.click(pages.CounterResetID)
	assert.Equal(t, "Increment Counter (0)", f.text(pages.CounterID))
	assert.Equal(t, "Counter reset to 0", f.polite())

	f.click(pages.AsyncButtonID)
	button := vtest.Find(t, f.tree, pages.AsyncButtonID)
	assert.Equal(t, true, button.Props["disabled"])
	assert.Equal(t, "Loading...", vdom.TextContent(button))
	assert.Equal(t, pages.LoadingStartedMessage, f.polite())

	f.sched.Advance(f.env.Timing.AsyncDuration)
	f.render()
	button = vtest.Find(t, f.tree, pages.AsyncButtonID)
	assert.NotContains(t, button.Props, "disabled")
	assert.Equal(t, pages.LoadingDoneMessage, f.polite())
}

func TestNavigateToCurrentPageKeepsState(t *testing.T) {
	f := newFixture(t, "/aria-live")
	f.click(pages.CounterID)
	f.click(pages.CounterID)

	f.shell.Navigate("/aria-live")
	f.render()
	assert.Equal(t, "Increment Counter (2)", f.text(pages.CounterID))
	assert.Equal(t, "Counter updated to 2", f.polite())
}

func TestAsyncCancelledOnUnmount(t *testing.T) {
	f := newFixture(t, "/aria-live")
	f.click(pages.AsyncButtonID)
	f.shell.Navigate("/checklist")

	f.sched.Advance(f.env.Timing.AsyncDuration)
	assert.NotEqual(t, pages.LoadingDoneMessage, f.polite())
}

func TestChecklistExpand(t *testing.T) {
	f := newFixture(t, "/checklist")
	toggle := vtest.Find(t, f.tree, "toggle-buttons")
	vtest.ExpectAttribute(t, toggle, "aria-expanded", "false")
	vtest.ExpectAttribute(t, toggle, "aria-controls", "content-buttons")
	assert.False(t, f.has("content-buttons"))

	f.click("toggle-buttons")
	vtest.ExpectAttribute(t, vtest.Find(t, f.tree, "toggle-buttons"), "aria-expanded", "true")
	require.True(t, f.has("content-buttons"))

	f.click("div-button")
	f.click("real-button")
	f.click("real-button")
	assert.Equal(t, "❌ Div Button (Clicks: 1)", f.text("div-button"))
	assert.Equal(t, "✅ Real Button (Clicks: 2)", f.text("real-button"))

	f.click("toggle-buttons")
	assert.False(t, f.has("content-buttons"))
}

func TestChecklistFormErrors(t *testing.T) {
	f := newFixture(t, "/checklist")
	f.click("toggle-form-labels")

	f.submit("labelled-form")
	assert.Equal(t, "Name is required", f.text("name-field-error"))
	assert.Equal(t, "Email is required", f.text("email-field-error"))
	vtest.ExpectAttribute(t, vtest.Find(t, f.tree, "name-field"), "aria-describedby", "name-field-error")
	assert.Equal(t, "Form has 2 errors", f.polite())

	f.input("unlabelled-name", "Ada")
	f.submit("unlabelled-form")
	assert.False(t, f.has("name-field-error"))
	assert.Equal(t, "Ada", vtest.Find(t, f.tree, "name-field").Props["value"])
}

func TestChecklistAltText(t *testing.T) {
	f := newFixture(t, "/checklist")
	f.click("toggle-alt-text")
	assert.Equal(t, `Screen reader: "Sales chart showing 25% increase from Q1 to Q2"`, f.text("alt-spoken"))

	f.input("alt-input", "")
	assert.Equal(t, `Screen reader: "Image" (no description)`, f.text("alt-spoken"))
	vtest.ExpectContains(t, vtest.Find(t, f.tree, "alt-preview"), `alt=""`)

	f.input("alt-input", "Quarterly sales")
	assert.Equal(t, "Quarterly sales", vtest.Find(t, f.tree, "alt-preview").Props["alt"])
}
