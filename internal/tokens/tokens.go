package tokens

import "time"

// Confidence rates how likely an observation reflects a deliberate design
// decision rather than incidental CSS noise.
type Confidence string

const (
	ConfidenceHigh   Confidence = "high"
	ConfidenceMedium Confidence = "medium"
	ConfidenceLow    Confidence = "low"
)

// Rank maps a tier onto an ordinal scale (high > medium > low).
// Unknown tiers rank below low.
func (c Confidence) Rank() int {
	switch c {
	case ConfidenceHigh:
		return 3
	case ConfidenceMedium:
		return 2
	case ConfidenceLow:
		return 1
	default:
		return 0
	}
}

// AtLeast reports whether c is at or above min on the ordinal scale.
func (c Confidence) AtLeast(min Confidence) bool {
	return c.Rank() >= min.Rank()
}

// Max returns the higher of the two tiers.
func Max(a, b Confidence) Confidence {
	if b.Rank() > a.Rank() {
		return b
	}
	return a
}

// PaletteEntry is one deduplicated color with its aggregate frequency.
// Color is always canonical uppercase hex (#RRGGBB); Alpha is recorded only
// when the winning occurrence was translucent.
type PaletteEntry struct {
	Color      string     `json:"color"`
	Alpha      float64    `json:"alpha,omitempty"`
	Count      int        `json:"count"`
	Confidence Confidence `json:"confidence"`
	Context    string     `json:"context,omitempty"`
}

// ColorBundle groups the ranked palette with semantic role assignments
// (e.g. "primary", "background", "text").
type ColorBundle struct {
	Palette  []PaletteEntry    `json:"palette"`
	Semantic map[string]string `json:"semantic,omitempty"`
}

// TypographyStyle is one deduplicated font declaration.
type TypographyStyle struct {
	Family        string     `json:"family"`
	Size          string     `json:"size,omitempty"`
	Weight        string     `json:"weight,omitempty"`
	LineHeight    string     `json:"lineHeight,omitempty"`
	LetterSpacing string     `json:"letterSpacing,omitempty"`
	Context       string     `json:"context,omitempty"`
	Count         int        `json:"count"`
	Confidence    Confidence `json:"confidence"`
}

// TypographyBundle holds the ranked type styles.
type TypographyBundle struct {
	Styles []TypographyStyle `json:"styles"`
}

// DimensionValue is one deduplicated CSS length (spacing, radius, border width).
type DimensionValue struct {
	Value      string     `json:"value"`
	Count      int        `json:"count"`
	Confidence Confidence `json:"confidence"`
}

// SpacingBundle holds the most common padding/margin values, ranked by frequency.
type SpacingBundle struct {
	CommonValues []DimensionValue `json:"commonValues"`
}

// BorderRadiusBundle holds the most common corner radii.
type BorderRadiusBundle struct {
	Values []DimensionValue `json:"values"`
}

// BorderCombination pairs a border's width, style, and color as observed together.
type BorderCombination struct {
	Width string `json:"width"`
	Style string `json:"style"`
	Color string `json:"color"`
	Count int    `json:"count"`
}

// BorderBundle holds deduplicated border widths and colors plus the
// width+style+color combinations seen on real elements.
type BorderBundle struct {
	Widths       []DimensionValue    `json:"widths,omitempty"`
	Colors       []PaletteEntry      `json:"colors,omitempty"`
	Combinations []BorderCombination `json:"combinations,omitempty"`
}

// ShadowEntry is one deduplicated box-shadow declaration, kept verbatim.
type ShadowEntry struct {
	Shadow     string     `json:"shadow"`
	Count      int        `json:"count"`
	Confidence Confidence `json:"confidence"`
}

// ShadowBundle holds the ranked shadow declarations.
type ShadowBundle struct {
	Shadows []ShadowEntry `json:"shadows"`
}

// Logo describes the best logo candidate found on the page.
type Logo struct {
	URL    string `json:"url,omitempty"`
	Alt    string `json:"alt,omitempty"`
	Kind   string `json:"kind,omitempty"` // img, svg or background
	Width  int    `json:"width,omitempty"`
	Height int    `json:"height,omitempty"`
}

// ExtractionResult is the root record of one extraction run. Category fields
// are pointers so that a category which produced no qualifying observations
// is omitted from JSON output entirely rather than emitted as an empty
// placeholder. The record is immutable once assembled.
type ExtractionResult struct {
	URL          string              `json:"url"`
	ExtractedAt  time.Time           `json:"extractedAt"`
	Logo         *Logo               `json:"logo,omitempty"`
	Colors       *ColorBundle        `json:"colors,omitempty"`
	Typography   *TypographyBundle   `json:"typography,omitempty"`
	Spacing      *SpacingBundle      `json:"spacing,omitempty"`
	BorderRadius *BorderRadiusBundle `json:"borderRadius,omitempty"`
	Borders      *BorderBundle       `json:"borders,omitempty"`
	Shadows      *ShadowBundle       `json:"shadows,omitempty"`
}
