package focus

import (
	"errors"
	"testing"

	"github.com/a11ylab/a11ydemo/pkg/vdom"
)

// page builds a tree with a trigger button, a main landmark and, when
// children are given, a dialog container holding them.
func page(dialog bool, children ...any) *vdom.VNode {
	tree := vdom.Div(vdom.ID("app"),
		vdom.Button(vdom.ID("trigger"), "Open"),
		vdom.Main(vdom.ID("main"), vdom.TabIndex(-1)),
		vdom.If(dialog, vdom.Div(append([]any{vdom.ID("dialog"), vdom.Role("dialog")}, children...)...)),
	)
	vdom.AssignHIDs(tree, vdom.NewHIDGenerator())
	return tree
}

func abc() []any {
	return []any{
		vdom.Button(vdom.ID("a"), "A"),
		vdom.Input(vdom.ID("b")),
		vdom.A(vdom.ID("c"), vdom.Href("#"), "C"),
	}
}

func setup(t *testing.T, children ...any) (*Document, *Trap, *[]Transition) {
	t.Helper()
	doc := NewDocument()
	doc.SetTree(page(true, children...))
	doc.Focus("trigger")

	var transitions []Transition
	trap := NewTrap(doc, "dialog", WithObserver(func(tr Transition) {
		transitions = append(transitions, tr)
	}))
	return doc, trap, &transitions
}

func TestOpenFocusesFirstCandidate(t *testing.T) {
	doc, trap, transitions := setup(t, abc()...)

	trap.Open()
	if !trap.IsOpen() {
		t.Fatal("trap should be open")
	}
	if doc.ActiveKey() != "a" {
		t.Fatalf("focus = %q, want a", doc.ActiveKey())
	}
	if trap.Trigger() != "trigger" {
		t.Errorf("Trigger() = %q, want trigger", trap.Trigger())
	}
	if len(*transitions) != 1 || (*transitions)[0].To != Open || (*transitions)[0].Err != nil {
		t.Errorf("transitions = %+v", *transitions)
	}
}

func TestShiftTabFromFirstWrapsToLast(t *testing.T) {
	doc, trap, _ := setup(t, abc()...)
	trap.Open()

	res := trap.HandleKey(KeyEvent{Key: "Tab", Shift: true})
	if !res.PreventDefault || res.Focus != "c" || doc.ActiveKey() != "c" {
		t.Fatalf("Shift+Tab on first: %+v, focus %q", res, doc.ActiveKey())
	}

	res = trap.HandleKey(KeyEvent{Key: "Tab"})
	if !res.PreventDefault || doc.ActiveKey() != "a" {
		t.Fatalf("Tab on last: %+v, focus %q", res, doc.ActiveKey())
	}
}

func TestTabCycleScenario(t *testing.T) {
	doc, trap, _ := setup(t, abc()...)
	trap.Open()

	steps := []struct {
		shift   bool
		focus   string
		prevent bool
	}{
		{false, "b", false},
		{false, "c", false},
		{false, "a", true},
		{true, "c", true},
		{true, "b", false},
	}
	for i, step := range steps {
		res := trap.HandleKey(KeyEvent{Key: "Tab", Shift: step.shift})
		if doc.ActiveKey() != step.focus {
			t.Fatalf("step %d: focus = %q, want %q", i, doc.ActiveKey(), step.focus)
		}
		if res.PreventDefault != step.prevent {
			t.Errorf("step %d: PreventDefault = %v, want %v", i, res.PreventDefault, step.prevent)
		}
	}
}

func TestSingleCandidate(t *testing.T) {
	doc, trap, _ := setup(t, vdom.Button(vdom.ID("only"), "OK"))
	trap.Open()

	for _, shift := range []bool{false, true} {
		res := trap.HandleKey(KeyEvent{Key: "Tab", Shift: shift})
		if !res.PreventDefault || doc.ActiveKey() != "only" {
			t.Errorf("shift=%v: %+v focus %q", shift, res, doc.ActiveKey())
		}
	}
}

func TestEmptyContainerFocusesContainer(t *testing.T) {
	doc, trap, transitions := setup(t, vdom.P("Nothing to focus"))

	trap.Open()
	if doc.ActiveKey() != "dialog" {
		t.Fatalf("focus = %q, want dialog", doc.ActiveKey())
	}
	if len(*transitions) != 1 || !errors.Is((*transitions)[0].Err, ErrEmptyFocusableSet) {
		t.Fatalf("transitions = %+v, want ErrEmptyFocusableSet", *transitions)
	}

	res := trap.HandleKey(KeyEvent{Key: "Tab"})
	if !res.PreventDefault || doc.ActiveKey() != "dialog" {
		t.Errorf("Tab in empty trap: %+v focus %q", res, doc.ActiveKey())
	}
}

func TestEscapeClosesAndRestores(t *testing.T) {
	closed := 0
	doc, _, transitions := setup(t, abc()...)
	trap := NewTrap(doc, "dialog", WithOnClose(func() { closed++ }), WithObserver(func(tr Transition) {
		*transitions = append(*transitions, tr)
	}))

	trap.Open()
	trap.HandleKey(KeyEvent{Key: "Tab"})
	res := trap.HandleKey(KeyEvent{Key: "Escape"})

	if !res.Closed || !res.PreventDefault {
		t.Errorf("Escape result = %+v", res)
	}
	if trap.IsOpen() {
		t.Fatal("trap should be closed")
	}
	if doc.ActiveKey() != "trigger" {
		t.Errorf("focus = %q, want trigger", doc.ActiveKey())
	}
	if closed != 1 {
		t.Errorf("onClose ran %d times, want 1", closed)
	}
	if len(trap.Bounds()) != 0 || trap.Trigger() != "" {
		t.Errorf("boundaries not cleared")
	}

	// Closed traps ignore keys and repeated closes.
	if res := trap.HandleKey(KeyEvent{Key: "Tab"}); res.Handled {
		t.Errorf("closed trap handled a key: %+v", res)
	}
	trap.Close()
	if closed != 1 {
		t.Errorf("Close on a closed trap ran onClose again")
	}
}

func TestOtherKeysIgnored(t *testing.T) {
	doc, trap, _ := setup(t, abc()...)
	trap.Open()

	if res := trap.HandleKey(KeyEvent{Key: "Enter"}); res.Handled || res.PreventDefault {
		t.Errorf("Enter result = %+v", res)
	}
	if doc.ActiveKey() != "a" {
		t.Errorf("focus moved to %q", doc.ActiveKey())
	}
}

func TestDetachedTriggerFallsBack(t *testing.T) {
	tests := []struct {
		name     string
		fallback string
		want     string
	}{
		{"body", "", ""},
		{"main landmark", "main", "main"},
		{"missing fallback", "nowhere", ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			doc := NewDocument()
			doc.SetTree(page(true, abc()...))
			doc.Focus("trigger")

			var last Transition
			trap := NewTrap(doc, "dialog", WithFallback(tt.fallback), WithObserver(func(tr Transition) { last = tr }))
			trap.Open()

			// Re-render without the trigger button.
			tree := vdom.Div(vdom.ID("app"),
				vdom.Main(vdom.ID("main"), vdom.TabIndex(-1)),
				vdom.Div(append([]any{vdom.ID("dialog")}, abc()...)...),
			)
			vdom.AssignHIDs(tree, vdom.NewHIDGenerator())
			doc.SetTree(tree)

			trap.Close()
			if doc.ActiveKey() != tt.want {
				t.Errorf("focus = %q, want %q", doc.ActiveKey(), tt.want)
			}
			if !errors.Is(last.Err, ErrDetachedRestoreTarget) {
				t.Errorf("last transition err = %v, want ErrDetachedRestoreTarget", last.Err)
			}
		})
	}
}

func TestOpenFromBodyRestoresBody(t *testing.T) {
	doc, trap, transitions := setup(t, abc()...)
	doc.Blur()

	trap.Open()
	trap.Close()
	if doc.ActiveKey() != "" {
		t.Errorf("focus = %q, want body", doc.ActiveKey())
	}
	if last := (*transitions)[len(*transitions)-1]; last.Err != nil {
		t.Errorf("restoring to the body is not an error: %v", last.Err)
	}
}

func TestDeferredOpenActivatesOnSync(t *testing.T) {
	doc := NewDocument()
	doc.SetTree(page(false))
	doc.Focus("trigger")
	trap := NewTrap(doc, "dialog")

	trap.Open()
	if !trap.Pending() || !trap.IsOpen() {
		t.Fatalf("trap should be open and pending")
	}
	if doc.ActiveKey() != "trigger" {
		t.Fatalf("focus moved before render: %q", doc.ActiveKey())
	}
	if res := trap.HandleKey(KeyEvent{Key: "Tab"}); !res.PreventDefault {
		t.Errorf("Tab while pending should be held: %+v", res)
	}

	doc.SetTree(page(true, abc()...))
	trap.Sync()
	if trap.Pending() {
		t.Fatal("trap still pending after Sync")
	}
	if doc.ActiveKey() != "a" {
		t.Errorf("focus = %q, want a", doc.ActiveKey())
	}

	trap.Close()
	if doc.ActiveKey() != "trigger" {
		t.Errorf("focus = %q, want trigger", doc.ActiveKey())
	}
}

func TestReentrantOpenRecomputesOnly(t *testing.T) {
	doc, trap, transitions := setup(t, abc()...)
	trap.Open()
	trap.HandleKey(KeyEvent{Key: "Tab"})

	// The dialog grows a fourth control before the second open.
	tree := page(true, append(abc(), vdom.Button(vdom.ID("d"), "D"))...)
	doc.SetTree(tree)
	trap.Open()

	if trap.Trigger() != "trigger" {
		t.Errorf("trigger re-captured as %q", trap.Trigger())
	}
	if doc.ActiveKey() != "b" {
		t.Errorf("re-entrant Open moved focus to %q", doc.ActiveKey())
	}
	if got := trap.Bounds(); len(got) != 4 || got[3] != "d" {
		t.Errorf("Bounds() = %v", got)
	}
	if !trap.listening {
		t.Error("key listener should stay attached")
	}
	if len(*transitions) != 1 {
		t.Errorf("re-entrant Open reported %d transitions", len(*transitions))
	}
}

func TestSyncPullsEscapedFocusBack(t *testing.T) {
	doc, trap, _ := setup(t, abc()...)
	trap.Open()

	doc.Focus("trigger")
	trap.Sync()
	if doc.ActiveKey() != "a" {
		t.Errorf("focus = %q, want a", doc.ActiveKey())
	}

	// Tab from outside the set enters at the edge.
	doc.Focus("trigger")
	res := trap.HandleKey(KeyEvent{Key: "Tab", Shift: true})
	if !res.PreventDefault || doc.ActiveKey() != "c" {
		t.Errorf("Shift+Tab from outside: %+v focus %q", res, doc.ActiveKey())
	}
}

func TestSyncClosesWhenContainerRemoved(t *testing.T) {
	doc, trap, _ := setup(t, abc()...)
	trap.Open()

	doc.SetTree(page(false))
	trap.Sync()
	if trap.IsOpen() {
		t.Fatal("trap should close when its container disappears")
	}
	if doc.ActiveKey() != "trigger" {
		t.Errorf("focus = %q, want trigger", doc.ActiveKey())
	}
}

func TestDecorate(t *testing.T) {
	doc, trap, _ := setup(t, abc()...)
	trap.Open()

	tree := doc.Tree()
	trap.Decorate(tree)

	dialog := vdom.FindByID(tree, "dialog")
	if dialog.StringProp("data-trap-open") != "true" {
		t.Error("container not marked open")
	}
	if idx, _ := dialog.IntProp("tabindex"); idx != -1 {
		t.Errorf("container tabindex = %d, want -1", idx)
	}
	if got := vdom.FindByID(tree, "a").StringProp("data-trap-edge"); got != "first" {
		t.Errorf("a edge = %q", got)
	}
	if got := vdom.FindByID(tree, "b").StringProp("data-trap-edge"); got != "" {
		t.Errorf("b edge = %q", got)
	}
	if got := vdom.FindByID(tree, "c").StringProp("data-trap-edge"); got != "last" {
		t.Errorf("c edge = %q", got)
	}
}

func TestDecorateSingle(t *testing.T) {
	doc, trap, _ := setup(t, vdom.Button(vdom.ID("only"), "OK"))
	trap.Open()
	trap.Decorate(doc.Tree())

	if got := vdom.FindByID(doc.Tree(), "only").StringProp("data-trap-edge"); got != "only" {
		t.Errorf("edge = %q, want only", got)
	}
}
