package router

import (
	"errors"
	"strings"
)

// Path canonicalization errors.
var (
	ErrBackslashInPath      = errors.New("path contains backslash")
	ErrNullByteInPath       = errors.New("path contains null byte")
	ErrInvalidPercentEscape = errors.New("invalid percent escape sequence")
	ErrPathEscapesRoot      = errors.New("path escapes root via ..")
)

// Canonicalize normalizes a navigation path:
//   - the query string and fragment are dropped
//   - a leading "/" is added when missing
//   - repeated slashes collapse (/a//b → /a/b)
//   - "." segments are removed and ".." segments resolved
//   - the trailing slash is removed (except for "/")
//
// Backslashes, NUL bytes (literal or %00), malformed percent escapes and
// ".." above the root are rejected.
func Canonicalize(input string) (string, error) {
	path, _, _ := strings.Cut(input, "#")
	path, _, _ = strings.Cut(path, "?")
	if path == "" {
		return "/", nil
	}

	if strings.Contains(path, "\\") {
		return "", ErrBackslashInPath
	}
	if strings.Contains(path, "\x00") || strings.Contains(strings.ToUpper(path), "%00") {
		return "", ErrNullByteInPath
	}
	if strings.Contains(path, "%") && !validEscapes(path) {
		return "", ErrInvalidPercentEscape
	}

	segments := make([]string, 0, strings.Count(path, "/")+1)
	for _, seg := range strings.Split(path, "/") {
		switch seg {
		case "", ".":
		case "..":
			if len(segments) == 0 {
				return "", ErrPathEscapesRoot
			}
			segments = segments[:len(segments)-1]
		default:
			segments = append(segments, seg)
		}
	}
	return "/" + strings.Join(segments, "/"), nil
}

// IsCanonical reports whether path is already in canonical form.
func IsCanonical(path string) bool {
	canonical, err := Canonicalize(path)
	return err == nil && canonical == path
}

func validEscapes(path string) bool {
	for i := 0; i < len(path); i++ {
		if path[i] != '%' {
			continue
		}
		if i+2 >= len(path) || !isHex(path[i+1]) || !isHex(path[i+2]) {
			return false
		}
		i += 2
	}
	return true
}

func isHex(c byte) bool {
	return (c >= '0' && c <= '9') || (c >= 'a' && c <= 'f') || (c >= 'A' && c <= 'F')
}
