package aggregate

import (
	"sort"

	"dtex/internal/collector"
	"dtex/internal/score"
	"dtex/internal/tokens"
)

// Hard caps per category, applied after ranking and after tier filtering so
// truncation can never drop a higher-ranked entry for a lower-ranked one.
const (
	maxPalette    = 30
	maxTypography = 10
	maxSpacing    = 12
	maxRadius     = 6
	maxBorders    = 10
	maxShadows    = 6
)

// Colors merges raw color observations by canonical hex identity, ranks the
// palette by count, drops low-tier entries, caps at maxPalette, and promotes
// unambiguous semantic roles. Returns nil when nothing qualifies.
func Colors(obs []collector.ColorObservation, scorer *score.Scorer) *tokens.ColorBundle {
	type acc struct {
		hex       string
		count     int
		conf      tokens.Confidence
		context   string
		alpha     float64
		bestCount int // count of the occurrence whose alpha is recorded
	}

	accs := map[string]*acc{}
	var order []string

	for _, o := range obs {
		hex, alpha, ok := NormalizeColor(o.Color)
		if !ok {
			continue
		}
		conf := scorer.Score(o.Context, o.Count)
		a, seen := accs[hex]
		if !seen {
			a = &acc{hex: hex, conf: conf, context: o.Context, alpha: alpha, bestCount: o.Count}
			accs[hex] = a
			order = append(order, hex)
			a.count = o.Count
			continue
		}
		// Identity merge: counts sum, confidence is the max of the inputs
		// (never re-derived from the summed count), and the context follows
		// the winning confidence. Alpha follows the highest-count occurrence.
		a.count += o.Count
		if conf.Rank() > a.conf.Rank() {
			a.conf = conf
			a.context = o.Context
		}
		if o.Count > a.bestCount {
			a.bestCount = o.Count
			a.alpha = alpha
		}
	}

	entries := make([]tokens.PaletteEntry, 0, len(order))
	for _, hex := range order {
		a := accs[hex]
		e := tokens.PaletteEntry{
			Color:      a.hex,
			Count:      a.count,
			Confidence: a.conf,
			Context:    a.context,
		}
		if a.alpha > 0 && a.alpha < 1 {
			e.Alpha = a.alpha
		}
		entries = append(entries, e)
	}

	rankPalette(entries)
	palette := capPalette(filterPalette(entries, tokens.ConfidenceMedium), maxPalette)
	semantic := semanticRoles(obs)

	if len(palette) == 0 && len(semantic) == 0 {
		return nil
	}
	return &tokens.ColorBundle{Palette: palette, Semantic: semantic}
}

// rankPalette sorts by count descending; the stable sort keeps first-seen
// order among ties so output is deterministic for identical input.
func rankPalette(entries []tokens.PaletteEntry) {
	sort.SliceStable(entries, func(i, j int) bool {
		return entries[i].Count > entries[j].Count
	})
}

func filterPalette(entries []tokens.PaletteEntry, min tokens.Confidence) []tokens.PaletteEntry {
	out := entries[:0:0]
	for _, e := range entries {
		if e.Confidence.AtLeast(min) {
			out = append(out, e)
		}
	}
	return out
}

func capPalette(entries []tokens.PaletteEntry, n int) []tokens.PaletteEntry {
	if len(entries) > n {
		return entries[:n]
	}
	return entries
}

// Typography merges identical computed font declarations, ranks by count and
// caps at maxTypography. All tiers are kept: a site's body font is genuine
// even when its context scores low.
func Typography(obs []collector.TypographyObservation, scorer *score.Scorer) *tokens.TypographyBundle {
	type acc struct {
		style tokens.TypographyStyle
		conf  tokens.Confidence
	}

	accs := map[string]*acc{}
	var order []string

	for _, o := range obs {
		if o.Family == "" {
			continue
		}
		key := o.Family + "|" + o.Size + "|" + o.Weight + "|" + o.LineHeight + "|" + o.LetterSpacing
		conf := scorer.Score(o.Context, o.Count)
		a, seen := accs[key]
		if !seen {
			accs[key] = &acc{
				style: tokens.TypographyStyle{
					Family:        o.Family,
					Size:          o.Size,
					Weight:        o.Weight,
					LineHeight:    o.LineHeight,
					LetterSpacing: o.LetterSpacing,
					Context:       o.Context,
					Count:         o.Count,
					Confidence:    conf,
				},
			}
			order = append(order, key)
			continue
		}
		a.style.Count += o.Count
		if conf.Rank() > a.style.Confidence.Rank() {
			a.style.Confidence = conf
			a.style.Context = o.Context
		}
	}

	styles := make([]tokens.TypographyStyle, 0, len(order))
	for _, key := range order {
		styles = append(styles, accs[key].style)
	}
	sort.SliceStable(styles, func(i, j int) bool { return styles[i].Count > styles[j].Count })
	if len(styles) > maxTypography {
		styles = styles[:maxTypography]
	}
	if len(styles) == 0 {
		return nil
	}
	return &tokens.TypographyBundle{Styles: styles}
}

// dimensions merges raw lengths by value, ranks by count and caps at n.
func dimensions(obs []collector.DimensionObservation, scorer *score.Scorer, n int) []tokens.DimensionValue {
	type acc struct {
		value string
		count int
		conf  tokens.Confidence
	}

	accs := map[string]*acc{}
	var order []string

	for _, o := range obs {
		if o.Value == "" {
			continue
		}
		conf := scorer.Score(o.Context, o.Count)
		a, seen := accs[o.Value]
		if !seen {
			accs[o.Value] = &acc{value: o.Value, count: o.Count, conf: conf}
			order = append(order, o.Value)
			continue
		}
		a.count += o.Count
		a.conf = tokens.Max(a.conf, conf)
	}

	values := make([]tokens.DimensionValue, 0, len(order))
	for _, key := range order {
		a := accs[key]
		values = append(values, tokens.DimensionValue{Value: a.value, Count: a.count, Confidence: a.conf})
	}
	sort.SliceStable(values, func(i, j int) bool { return values[i].Count > values[j].Count })
	if len(values) > n {
		values = values[:n]
	}
	return values
}

// Spacing ranks the most common padding/margin values.
func Spacing(obs []collector.DimensionObservation, scorer *score.Scorer) *tokens.SpacingBundle {
	values := dimensions(obs, scorer, maxSpacing)
	if len(values) == 0 {
		return nil
	}
	return &tokens.SpacingBundle{CommonValues: values}
}

// Radius ranks the most common corner radii.
func Radius(obs []collector.DimensionObservation, scorer *score.Scorer) *tokens.BorderRadiusBundle {
	values := dimensions(obs, scorer, maxRadius)
	if len(values) == 0 {
		return nil
	}
	return &tokens.BorderRadiusBundle{Values: values}
}

// Borders splits raw border observations into ranked widths, colors and
// width+style+color combinations. Border colors go through the same hex
// identity merge and low-tier filter as the palette.
func Borders(obs []collector.BorderObservation, scorer *score.Scorer) *tokens.BorderBundle {
	var widths []collector.DimensionObservation
	var colors []collector.ColorObservation
	for _, o := range obs {
		widths = append(widths, collector.DimensionObservation{Value: o.Width, Context: o.Context, Count: o.Count})
		colors = append(colors, collector.ColorObservation{Color: o.Color, Property: "border", Context: o.Context, Count: o.Count})
	}

	bundle := &tokens.BorderBundle{
		Widths:       dimensions(widths, scorer, maxBorders),
		Combinations: borderCombinations(obs),
	}

	if cb := Colors(colors, scorer); cb != nil {
		if len(cb.Palette) > maxBorders {
			cb.Palette = cb.Palette[:maxBorders]
		}
		bundle.Colors = cb.Palette
	}

	if len(bundle.Widths) == 0 && len(bundle.Colors) == 0 && len(bundle.Combinations) == 0 {
		return nil
	}
	return bundle
}

func borderCombinations(obs []collector.BorderObservation) []tokens.BorderCombination {
	type acc struct {
		combo tokens.BorderCombination
	}

	accs := map[string]*acc{}
	var order []string

	for _, o := range obs {
		hex, _, ok := NormalizeColor(o.Color)
		if !ok {
			continue
		}
		key := o.Width + "|" + o.Style + "|" + hex
		a, seen := accs[key]
		if !seen {
			accs[key] = &acc{combo: tokens.BorderCombination{Width: o.Width, Style: o.Style, Color: hex, Count: o.Count}}
			order = append(order, key)
			continue
		}
		a.combo.Count += o.Count
	}

	combos := make([]tokens.BorderCombination, 0, len(order))
	for _, key := range order {
		combos = append(combos, accs[key].combo)
	}
	sort.SliceStable(combos, func(i, j int) bool { return combos[i].Count > combos[j].Count })
	if len(combos) > maxBorders {
		combos = combos[:maxBorders]
	}
	return combos
}

// Shadows merges identical box-shadow declarations and caps at maxShadows.
// Declarations are kept verbatim; shadows rarely repeat and every distinct
// one is a deliberate choice, so no tier filter applies.
func Shadows(obs []collector.ShadowObservation, scorer *score.Scorer) *tokens.ShadowBundle {
	type acc struct {
		entry tokens.ShadowEntry
	}

	accs := map[string]*acc{}
	var order []string

	for _, o := range obs {
		if o.Shadow == "" || o.Shadow == "none" {
			continue
		}
		conf := scorer.Score(o.Context, o.Count)
		a, seen := accs[o.Shadow]
		if !seen {
			accs[o.Shadow] = &acc{entry: tokens.ShadowEntry{Shadow: o.Shadow, Count: o.Count, Confidence: conf}}
			order = append(order, o.Shadow)
			continue
		}
		a.entry.Count += o.Count
		a.entry.Confidence = tokens.Max(a.entry.Confidence, conf)
	}

	shadows := make([]tokens.ShadowEntry, 0, len(order))
	for _, key := range order {
		shadows = append(shadows, accs[key].entry)
	}
	sort.SliceStable(shadows, func(i, j int) bool { return shadows[i].Count > shadows[j].Count })
	if len(shadows) > maxShadows {
		shadows = shadows[:maxShadows]
	}
	if len(shadows) == 0 {
		return nil
	}
	return &tokens.ShadowBundle{Shadows: shadows}
}

// Logo picks the best-scored candidate; ties go to the first seen.
func Logo(candidates []collector.LogoCandidate) *tokens.Logo {
	best := -1
	for i, c := range candidates {
		if c.URL == "" && c.Kind != "svg" {
			continue
		}
		if best < 0 || c.Score > candidates[best].Score {
			best = i
		}
	}
	if best < 0 {
		return nil
	}
	c := candidates[best]
	return &tokens.Logo{
		URL:    c.URL,
		Alt:    c.Alt,
		Kind:   c.Kind,
		Width:  int(c.Width + 0.5),
		Height: int(c.Height + 0.5),
	}
}
