package errors

import (
	"bytes"
	stderrors "errors"
	"fmt"
	"strings"
	"testing"
)

func TestNew(t *testing.T) {
	tests := []struct {
		name    string
		code    string
		wantMsg string
		wantCat Category
	}{
		{
			name:    "navigation error",
			code:    CodeRouteNotFound,
			wantMsg: "Route not found",
			wantCat: CategoryNavigation,
		},
		{
			name:    "focus error",
			code:    CodeDetachedTarget,
			wantMsg: "Focus restore target is no longer attached",
			wantCat: CategoryFocus,
		},
		{
			name:    "transport error",
			code:    CodeStaleHandler,
			wantMsg: "Handler not found",
			wantCat: CategoryTransport,
		},
		{
			name:    "config error",
			code:    CodeInvalidDuration,
			wantMsg: "Invalid duration",
			wantCat: CategoryConfig,
		},
		{
			name:    "unknown error code",
			code:    "A999",
			wantMsg: "Unknown error",
			wantCat: "",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := New(tt.code)
			if err.Message != tt.wantMsg {
				t.Errorf("Message = %q, want %q", err.Message, tt.wantMsg)
			}
			if err.Category != tt.wantCat {
				t.Errorf("Category = %q, want %q", err.Category, tt.wantCat)
			}
			if err.Code != tt.code {
				t.Errorf("Code = %q, want %q", err.Code, tt.code)
			}
		})
	}
}

func TestCodePrefixesMatchCategory(t *testing.T) {
	prefixes := map[Category]string{
		CategoryNavigation: "A1",
		CategoryFocus:      "A2",
		CategoryTransport:  "A3",
		CategoryConfig:     "A4",
	}
	for _, code := range GetAllCodes() {
		tmpl, _ := GetTemplate(code)
		if want := prefixes[tmpl.Category]; !strings.HasPrefix(code, want) {
			t.Errorf("code %s has category %s, want prefix %s", code, tmpl.Category, want)
		}
	}
}

func TestCodedError_Error(t *testing.T) {
	err := New(CodeConfigValue).WithDetail("server.max_sessions must be positive")
	want := "A402: Invalid config value: server.max_sessions must be positive"
	if err.Error() != want {
		t.Errorf("Error() = %q, want %q", err.Error(), want)
	}

	plain := Newf(CategoryCLI, "file %q not found", "a11ydemo.json")
	if plain.Error() != `file "a11ydemo.json" not found` {
		t.Errorf("Error() = %q", plain.Error())
	}
}

func TestWrapAndUnwrap(t *testing.T) {
	cause := fmt.Errorf("open a11ydemo.json: permission denied")
	err := New(CodeConfigFile).Wrap(cause)

	if !stderrors.Is(err, cause) {
		t.Error("errors.Is should find the wrapped cause")
	}
	if !strings.HasSuffix(err.Error(), "permission denied") {
		t.Errorf("Error() = %q, want cause suffix", err.Error())
	}

	outer := fmt.Errorf("load config: %w", err)
	if !stderrors.Is(outer, New(CodeConfigFile)) {
		t.Error("errors.Is should match by code through fmt wrapping")
	}
	if stderrors.Is(outer, New(CodeConfigValue)) {
		t.Error("errors.Is should not match a different code")
	}
	if CodeOf(outer) != CodeConfigFile {
		t.Errorf("CodeOf = %q, want %q", CodeOf(outer), CodeConfigFile)
	}
	if CodeOf(cause) != "" {
		t.Errorf("CodeOf(plain) = %q, want empty", CodeOf(cause))
	}
}

func TestFromError(t *testing.T) {
	if FromError(nil, CodeInvalidFrame) != nil {
		t.Error("FromError(nil) should be nil")
	}

	coded := New(CodeQueueFull)
	if got := FromError(fmt.Errorf("dispatch: %w", coded), CodeInvalidFrame); got != coded {
		t.Error("FromError should return the CodedError already in the chain")
	}

	got := FromError(stderrors.New("unexpected end of JSON input"), CodeInvalidFrame)
	if got.Code != CodeInvalidFrame {
		t.Errorf("Code = %q, want %q", got.Code, CodeInvalidFrame)
	}
	if got.Wrapped == nil {
		t.Error("FromError should wrap the original error")
	}
}

func TestFormat(t *testing.T) {
	DisableColors()
	defer EnableColors()

	err := New(CodeInvalidDuration).
		WithDetailf("announce.clear_delay: %q is not a duration", "fast")
	formatted := err.Format()

	for _, want := range []string{
		"ERROR A403: Invalid duration",
		`announce.clear_delay: "fast" is not a duration`,
		"Hint: Use a Go duration string",
	} {
		if !strings.Contains(formatted, want) {
			t.Errorf("Format() missing %q in:\n%s", want, formatted)
		}
	}
	if strings.Contains(formatted, "\033[") {
		t.Error("Format() should not contain ANSI codes when colors are disabled")
	}
}

func TestFormatCompact(t *testing.T) {
	err := New(CodeInvalidPath).WithDetail("/a\\b")
	want := `A102: Invalid path (/a\b)`
	if got := err.FormatCompact(); got != want {
		t.Errorf("FormatCompact() = %q, want %q", got, want)
	}
}

func TestFormatJSON(t *testing.T) {
	json := New(CodeSessionLimit).Wrap(stderrors.New("100 sessions")).FormatJSON()
	for _, want := range []string{
		`"code":"A303"`,
		`"category":"transport"`,
		`"message":"Session limit reached"`,
		`"cause":"100 sessions"`,
	} {
		if !strings.Contains(json, want) {
			t.Errorf("FormatJSON() = %s, missing %s", json, want)
		}
	}
}

func TestFprintError(t *testing.T) {
	DisableColors()
	defer EnableColors()

	var buf bytes.Buffer
	FprintError(&buf, fmt.Errorf("serve: %w", New(CodeSessionLimit)))
	if !strings.Contains(buf.String(), "ERROR A303: Session limit reached") {
		t.Errorf("coded output = %q", buf.String())
	}

	buf.Reset()
	FprintError(&buf, stderrors.New("boom"))
	if !strings.Contains(buf.String(), "ERROR: boom") {
		t.Errorf("plain output = %q", buf.String())
	}
}

func TestWrapText(t *testing.T) {
	lines := wrapText("the quick brown fox jumps over the lazy dog", 10)
	for _, line := range lines {
		if len(line) > 10 {
			t.Errorf("line %q exceeds width", line)
		}
	}
	if strings.Join(lines, " ") != "the quick brown fox jumps over the lazy dog" {
		t.Errorf("wrapText lost words: %v", lines)
	}
	if wrapText("", 10) != nil {
		t.Error("wrapText of empty text should be nil")
	}
}
