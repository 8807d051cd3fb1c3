package aggregate

import (
	"fmt"
	"strconv"
	"strings"
)

// namedColors covers the CSS named colors that show up in practice in
// declared values (theme-color metas, legacy stylesheets). Computed styles
// arrive as rgb()/rgba() so this table stays small on purpose.
var namedColors = map[string]string{
	"black":         "#000000",
	"white":         "#FFFFFF",
	"red":           "#FF0000",
	"green":         "#008000",
	"blue":          "#0000FF",
	"yellow":        "#FFFF00",
	"orange":        "#FFA500",
	"purple":        "#800080",
	"gray":          "#808080",
	"grey":          "#808080",
	"silver":        "#C0C0C0",
	"maroon":        "#800000",
	"olive":         "#808000",
	"lime":          "#00FF00",
	"aqua":          "#00FFFF",
	"cyan":          "#00FFFF",
	"teal":          "#008080",
	"navy":          "#000080",
	"fuchsia":       "#FF00FF",
	"magenta":       "#FF00FF",
	"gold":          "#FFD700",
	"pink":          "#FFC0CB",
	"brown":         "#A52A2A",
	"beige":         "#F5F5DC",
	"ivory":         "#FFFFF0",
	"coral":         "#FF7F50",
	"salmon":        "#FA8072",
	"khaki":         "#F0E68C",
	"indigo":        "#4B0082",
	"violet":        "#EE82EE",
	"turquoise":     "#40E0D0",
	"crimson":       "#DC143C",
	"chocolate":     "#D2691E",
	"lavender":      "#E6E6FA",
	"rebeccapurple": "#663399",
}

// NormalizeColor reduces any of the notations the browser (or markup) reports
// into canonical uppercase #RRGGBB hex plus a separate alpha channel.
// Equality on the returned hex is the color identity used for merging.
// ok is false for values that are not a concrete color (transparent,
// gradients, unsupported functions).
func NormalizeColor(raw string) (hex string, alpha float64, ok bool) {
	s := strings.ToLower(strings.TrimSpace(raw))
	if s == "" || s == "transparent" || s == "currentcolor" || s == "inherit" || s == "initial" {
		return "", 0, false
	}

	if h, found := namedColors[s]; found {
		return h, 1, true
	}

	if strings.HasPrefix(s, "#") {
		return normalizeHex(s)
	}

	if strings.HasPrefix(s, "rgb(") || strings.HasPrefix(s, "rgba(") {
		return normalizeRGB(s)
	}

	return "", 0, false
}

func normalizeHex(s string) (string, float64, bool) {
	h := s[1:]
	switch len(h) {
	case 3, 4: // #rgb / #rgba → expand each nibble
		var expanded strings.Builder
		for _, c := range h {
			expanded.WriteRune(c)
			expanded.WriteRune(c)
		}
		h = expanded.String()
	case 6, 8:
	default:
		return "", 0, false
	}

	rgb := h[:6]
	if _, err := strconv.ParseUint(rgb, 16, 32); err != nil {
		return "", 0, false
	}

	alpha := 1.0
	if len(h) == 8 {
		a, err := strconv.ParseUint(h[6:8], 16, 16)
		if err != nil {
			return "", 0, false
		}
		alpha = roundAlpha(float64(a) / 255)
	}
	return "#" + strings.ToUpper(rgb), alpha, true
}

func normalizeRGB(s string) (string, float64, bool) {
	open := strings.IndexByte(s, '(')
	end := strings.LastIndexByte(s, ')')
	if open < 0 || end <= open {
		return "", 0, false
	}
	body := s[open+1 : end]
	// Accept both the legacy comma form and the modern space/slash form.
	body = strings.ReplaceAll(body, "/", " ")
	body = strings.ReplaceAll(body, ",", " ")
	parts := strings.Fields(body)
	if len(parts) != 3 && len(parts) != 4 {
		return "", 0, false
	}

	var channels [3]int
	for i := 0; i < 3; i++ {
		v, err := strconv.ParseFloat(strings.TrimSuffix(parts[i], "%"), 64)
		if err != nil {
			return "", 0, false
		}
		if strings.HasSuffix(parts[i], "%") {
			v = v * 255 / 100
		}
		channels[i] = clampChannel(v)
	}

	alpha := 1.0
	if len(parts) == 4 {
		a, err := strconv.ParseFloat(strings.TrimSuffix(parts[3], "%"), 64)
		if err != nil {
			return "", 0, false
		}
		if strings.HasSuffix(parts[3], "%") {
			a /= 100
		}
		alpha = roundAlpha(clampUnit(a))
	}

	return fmt.Sprintf("#%02X%02X%02X", channels[0], channels[1], channels[2]), alpha, true
}

func clampChannel(v float64) int {
	if v < 0 {
		return 0
	}
	if v > 255 {
		return 255
	}
	return int(v + 0.5)
}

func clampUnit(v float64) float64 {
	if v < 0 {
		return 0
	}
	if v > 1 {
		return 1
	}
	return v
}

// roundAlpha keeps alpha to two decimals so 0.50000001-style float noise does
// not leak into output.
func roundAlpha(a float64) float64 {
	return float64(int(a*100+0.5)) / 100
}
