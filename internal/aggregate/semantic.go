package aggregate

import "dtex/internal/collector"

// Semantic role names recognized for promotion. A color is promoted when its
// originating context maps unambiguously onto one of these roles, independent
// of where it ranks in the palette.
const (
	RolePrimary    = "primary"
	RoleBackground = "background"
	RoleText       = "text"
	RoleAccent     = "accent"
	RoleLink       = "link"
)

var brandContexts = map[string]bool{"logo": true, "brand": true, "theme": true}
var surfaceContexts = map[string]bool{"body": true, "generic": true}
var textContexts = map[string]bool{"body": true, "generic": true, "heading": true}

// semanticRoles maps the fixed role set onto concrete colors from the raw
// observations. Each role takes the highest-count matching color; ties go to
// the first seen.
func semanticRoles(obs []collector.ColorObservation) map[string]string {
	roles := map[string]string{}

	if c := pickColor(obs, func(o collector.ColorObservation) bool {
		return brandContexts[o.Context]
	}); c != "" {
		roles[RolePrimary] = c
	}
	if c := pickColor(obs, func(o collector.ColorObservation) bool {
		return o.Property == "background" && surfaceContexts[o.Context]
	}); c != "" {
		roles[RoleBackground] = c
	}
	if c := pickColor(obs, func(o collector.ColorObservation) bool {
		return o.Property == "text" && textContexts[o.Context]
	}); c != "" {
		roles[RoleText] = c
	}
	if c := pickColor(obs, func(o collector.ColorObservation) bool {
		return o.Property == "background" && o.Context == "button"
	}); c != "" {
		roles[RoleAccent] = c
	}
	if c := pickColor(obs, func(o collector.ColorObservation) bool {
		return o.Property == "text" && o.Context == "link"
	}); c != "" {
		roles[RoleLink] = c
	}

	if len(roles) == 0 {
		return nil
	}
	return roles
}

// pickColor sums counts per canonical hex over matching observations and
// returns the highest-count hex, first seen winning ties.
func pickColor(obs []collector.ColorObservation, match func(collector.ColorObservation) bool) string {
	counts := map[string]int{}
	var order []string
	for _, o := range obs {
		if !match(o) {
			continue
		}
		hex, _, ok := NormalizeColor(o.Color)
		if !ok {
			continue
		}
		if _, seen := counts[hex]; !seen {
			order = append(order, hex)
		}
		counts[hex] += o.Count
	}

	best := ""
	bestCount := 0
	for _, hex := range order {
		if counts[hex] > bestCount {
			best = hex
			bestCount = counts[hex]
		}
	}
	return best
}
