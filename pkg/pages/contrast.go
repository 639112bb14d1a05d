package pages

import (
	"fmt"
	"math"
	"strconv"
	"strings"
)

// WCAG 2.1 contrast thresholds.
const (
	ContrastAA      = 4.5
	ContrastAALarge = 3.0
	ContrastAAA     = 7.0
)

// ParseHexColor parses #rgb or #rrggbb into 8-bit channels.
func ParseHexColor(s string) (r, g, b uint8, err error) {
	hex := strings.TrimPrefix(strings.TrimSpace(s), "#")
	if len(hex) == 3 {
		hex = string([]byte{hex[0], hex[0], hex[1], hex[1], hex[2], hex[2]})
	}
	if len(hex) != 6 {
		return 0, 0, 0, fmt.Errorf("pages: invalid color %q", s)
	}
	v, err := strconv.ParseUint(hex, 16, 32)
	if err != nil {
		return 0, 0, 0, fmt.Errorf("pages: invalid color %q", s)
	}
	return uint8(v >> 16), uint8(v >> 8), uint8(v), nil
}

// RelativeLuminance returns the WCAG relative luminance of a colour.
func RelativeLuminance(r, g, b uint8) float64 {
	channel := func(c uint8) float64 {
		v := float64(c) / 255
		if v <= 0.03928 {
			return v / 12.92
		}
		return math.Pow((v+0.055)/1.055, 2.4)
	}
	return 0.2126*channel(r) + 0.7152*channel(g) + 0.0722*channel(b)
}

// ContrastRatio returns the contrast ratio between two hex colours, in
// the range 1 to 21.
func ContrastRatio(fg, bg string) (float64, error) {
	r1, g1, b1, err := ParseHexColor(fg)
	if err != nil {
		return 0, err
	}
	r2, g2, b2, err := ParseHexColor(bg)
	if err != nil {
		return 0, err
	}
	l1 := RelativeLuminance(r1, g1, b1)
	l2 := RelativeLuminance(r2, g2, b2)
	if l1 < l2 {
		l1, l2 = l2, l1
	}
	return (l1 + 0.05) / (l2 + 0.05), nil
}

// ContrastVerdict describes which WCAG levels ratio satisfies for normal
// text.
func ContrastVerdict(ratio float64) string {
	ratio = math.Round(ratio*100) / 100
	switch {
	case ratio >= 21:
		return "maximum contrast"
	case ratio >= ContrastAAA:
		return "passes AA and AAA"
	case ratio >= ContrastAA:
		return "passes AA"
	case ratio >= ContrastAALarge:
		return "fails AA, large text only"
	default:
		return "fails AA"
	}
}
