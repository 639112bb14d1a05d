package errors

import "sort"

// Registered error codes.
const (
	CodeRouteNotFound   = "A101"
	CodeInvalidPath     = "A102"
	CodeRouteTable      = "A103"
	CodeEmptyFocusable  = "A201"
	CodeDetachedTarget  = "A202"
	CodeMissingTrap     = "A203"
	CodeInvalidFrame    = "A301"
	CodeStaleHandler    = "A302"
	CodeSessionLimit    = "A303"
	CodeQueueFull       = "A304"
	CodeSessionClosed   = "A305"
	CodeUpgradeFailed   = "A306"
	CodeConfigFile      = "A401"
	CodeConfigValue     = "A402"
	CodeInvalidDuration = "A403"
	CodeInvalidContent  = "A404"
)

// ErrorTemplate defines a registered error type.
type ErrorTemplate struct {
	Category   Category
	Message    string
	Suggestion string
}

// registry maps error codes to their templates.
var registry = map[string]ErrorTemplate{
	CodeRouteNotFound: {
		Category: CategoryNavigation,
		Message:  "Route not found",
	},
	CodeInvalidPath: {
		Category: CategoryNavigation,
		Message:  "Invalid path",
	},
	CodeRouteTable: {
		Category:   CategoryNavigation,
		Message:    "Invalid route table",
		Suggestion: "Every route needs a unique canonical path and a page ID",
	},

	CodeEmptyFocusable: {
		Category: CategoryFocus,
		Message:  "Focus trap container has no focusable elements",
	},
	CodeDetachedTarget: {
		Category: CategoryFocus,
		Message:  "Focus restore target is no longer attached",
	},
	CodeMissingTrap: {
		Category: CategoryFocus,
		Message:  "Focus trap container is not rendered",
	},

	CodeInvalidFrame: {
		Category: CategoryTransport,
		Message:  "Invalid frame",
	},
	CodeStaleHandler: {
		Category: CategoryTransport,
		Message:  "Handler not found",
	},
	CodeSessionLimit: {
		Category:   CategoryTransport,
		Message:    "Session limit reached",
		Suggestion: "Raise server.max_sessions or lower server.idle_timeout",
	},
	CodeQueueFull: {
		Category: CategoryTransport,
		Message:  "Event queue full",
	},
	CodeSessionClosed: {
		Category: CategoryTransport,
		Message:  "Session closed",
	},
	CodeUpgradeFailed: {
		Category: CategoryTransport,
		Message:  "WebSocket upgrade failed",
	},

	CodeConfigFile: {
		Category:   CategoryConfig,
		Message:    "Cannot read config file",
		Suggestion: "Check the path passed to --config",
	},
	CodeConfigValue: {
		Category: CategoryConfig,
		Message:  "Invalid config value",
	},
	CodeInvalidDuration: {
		Category:   CategoryConfig,
		Message:    "Invalid duration",
		Suggestion: `Use a Go duration string such as "100ms" or "3s"`,
	},
	CodeInvalidContent: {
		Category: CategoryConfig,
		Message:  "Invalid embedded content",
	},
}

// GetAllCodes returns all registered error codes in ascending order.
func GetAllCodes() []string {
	codes := make([]string, 0, len(registry))
	for code := range registry {
		codes = append(codes, code)
	}
	sort.Strings(codes)
	return codes
}

// GetTemplate returns the template for an error code.
func GetTemplate(code string) (ErrorTemplate, bool) {
	t, ok := registry[code]
	return t, ok
}
