package server

import (
	"encoding/json"

	apperrors "github.com/a11ylab/a11ydemo/internal/errors"
)

// Frame types sent by the client.
const (
	FrameEvent    = "event"
	FrameKey      = "key"
	FrameFocus    = "focus"
	FrameNavigate = "navigate"
)

// Frame types sent by the server.
const (
	FrameRender = "render"
	FrameLive   = "live"
	FrameError  = "error"
)

// Event names carried by event frames. They match the on* props of
// vdom elements.
const (
	EventClick  = "click"
	EventInput  = "input"
	EventChange = "change"
	EventSubmit = "submit"
)

// ClientFrame is a message from the browser.
type ClientFrame struct {
	Type string `json:"type"`

	// HID is the hydration ID of the target element. For key frames it is
	// the element focused when the key was pressed.
	HID string `json:"hid,omitempty"`

	// Name is the DOM event name of event frames.
	Name string `json:"name,omitempty"`

	// Value is the control value of input and change events.
	Value string `json:"value,omitempty"`

	// Key and Shift describe key frames.
	Key   string `json:"key,omitempty"`
	Shift bool   `json:"shift,omitempty"`

	// Path is the target of navigate frames.
	Path string `json:"path,omitempty"`
}

// ServerFrame is a message to the browser.
type ServerFrame struct {
	Type string `json:"type"`

	// Render frames.
	HTML  string `json:"html,omitempty"`
	Focus string `json:"focus,omitempty"`
	Path  string `json:"path,omitempty"`
	Title string `json:"title,omitempty"`

	// Live frames. Text is empty when the region is cleared, so it is
	// always encoded.
	Politeness string `json:"politeness,omitempty"`
	Text       string `json:"text"`

	// Error frames.
	Code    string `json:"code,omitempty"`
	Message string `json:"message,omitempty"`
}

// DecodeClientFrame parses and validates a client frame.
func DecodeClientFrame(data []byte) (*ClientFrame, error) {
	var f ClientFrame
	if err := json.Unmarshal(data, &f); err != nil {
		return nil, apperrors.New(apperrors.CodeInvalidFrame).Wrap(err)
	}
	if err := f.Validate(); err != nil {
		return nil, err
	}
	return &f, nil
}

// Validate checks that the fields required by the frame type are set.
func (f *ClientFrame) Validate() error {
	invalid := func(format string, args ...any) error {
		return apperrors.New(apperrors.CodeInvalidFrame).WithDetailf(format, args...)
	}
	switch f.Type {
	case FrameEvent:
		if f.HID == "" {
			return invalid("event frame without hid")
		}
		switch f.Name {
		case EventClick, EventInput, EventChange, EventSubmit:
		default:
			return invalid("unsupported event %q", f.Name)
		}
	case FrameKey:
		if f.Key == "" {
			return invalid("key frame without key")
		}
	case FrameFocus:
	case FrameNavigate:
		if f.Path == "" {
			return invalid("navigate frame without path")
		}
	default:
		return invalid("unknown frame type %q", f.Type)
	}
	return nil
}
