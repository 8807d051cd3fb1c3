package collector

import (
	"context"
	"encoding/json"
	"fmt"
)

// Category names one independent signal collection pass.
type Category string

const (
	CategoryColors     Category = "colors"
	CategoryTypography Category = "typography"
	CategorySpacing    Category = "spacing"
	CategoryRadius     Category = "borderRadius"
	CategoryBorders    Category = "borders"
	CategoryShadows    Category = "shadows"
	CategoryLogo       Category = "logo"
)

// Evaluator runs a script in page context and returns its value as JSON.
// It is the only page capability collectors need; they never mutate the page.
type Evaluator interface {
	Evaluate(ctx context.Context, js string) ([]byte, error)
}

// ColorObservation is one raw color signal: a computed color as the browser
// reports it, the CSS property it came from, and how many visible elements
// shared it within one context.
type ColorObservation struct {
	Color    string `json:"color"`
	Property string `json:"property"` // background, text or border
	Context  string `json:"context"`
	Count    int    `json:"count"`
}

// TypographyObservation is one raw computed font declaration.
type TypographyObservation struct {
	Family        string `json:"family"`
	Size          string `json:"size"`
	Weight        string `json:"weight"`
	LineHeight    string `json:"lineHeight"`
	LetterSpacing string `json:"letterSpacing"`
	Context       string `json:"context"`
	Count         int    `json:"count"`
}

// DimensionObservation is one raw CSS length (spacing or radius).
type DimensionObservation struct {
	Value   string `json:"value"`
	Context string `json:"context"`
	Count   int    `json:"count"`
}

// BorderObservation is one raw width+style+color border as seen on an element.
type BorderObservation struct {
	Width   string `json:"width"`
	Style   string `json:"style"`
	Color   string `json:"color"`
	Context string `json:"context"`
	Count   int    `json:"count"`
}

// ShadowObservation is one raw box-shadow declaration, verbatim.
type ShadowObservation struct {
	Shadow  string `json:"shadow"`
	Context string `json:"context"`
	Count   int    `json:"count"`
}

// LogoCandidate is one possible logo element with its heuristic score.
type LogoCandidate struct {
	URL    string  `json:"url"`
	Alt    string  `json:"alt"`
	Kind   string  `json:"kind"` // img, svg or background
	Width  float64 `json:"width"`
	Height float64 `json:"height"`
	Score  float64 `json:"score"`
}

// Raw holds every unscored observation gathered from one page. Each category
// collector fills only its own field; Merge combines per-category results.
type Raw struct {
	Colors     []ColorObservation
	Typography []TypographyObservation
	Spacing    []DimensionObservation
	Radius     []DimensionObservation
	Borders    []BorderObservation
	Shadows    []ShadowObservation
	Logos      []LogoCandidate
}

// Merge appends other's observations onto r, preserving discovery order.
func (r *Raw) Merge(other *Raw) {
	if other == nil {
		return
	}
	r.Colors = append(r.Colors, other.Colors...)
	r.Typography = append(r.Typography, other.Typography...)
	r.Spacing = append(r.Spacing, other.Spacing...)
	r.Radius = append(r.Radius, other.Radius...)
	r.Borders = append(r.Borders, other.Borders...)
	r.Shadows = append(r.Shadows, other.Shadows...)
	r.Logos = append(r.Logos, other.Logos...)
}

type entry struct {
	js     string
	decode func(data []byte, dst *Raw) error
}

var (
	registry = map[Category]entry{}
	order    []Category
)

func register(cat Category, js string, decode func([]byte, *Raw) error) {
	registry[cat] = entry{js: js, decode: decode}
	order = append(order, cat)
}

// Categories returns every registered category in registration order.
func Categories() []Category {
	out := make([]Category, len(order))
	copy(out, order)
	return out
}

// Script returns the page script for a category. Exposed so tests can match
// evaluation calls back to their category.
func Script(cat Category) string {
	return registry[cat].js
}

// Collect runs one category's script against the page and decodes the result.
// A failure is local to the category: callers drop the category and continue.
func Collect(ctx context.Context, page Evaluator, cat Category) (*Raw, error) {
	e, ok := registry[cat]
	if !ok {
		return nil, fmt.Errorf("unknown category: %s", cat)
	}
	data, err := page.Evaluate(ctx, e.js)
	if err != nil {
		return nil, fmt.Errorf("failed to evaluate %s script: %w", cat, err)
	}
	raw := &Raw{}
	if err := e.decode(data, raw); err != nil {
		return nil, fmt.Errorf("failed to decode %s observations: %w", cat, err)
	}
	return raw, nil
}

func decodeColors(data []byte, dst *Raw) error {
	return json.Unmarshal(data, &dst.Colors)
}

func decodeTypography(data []byte, dst *Raw) error {
	return json.Unmarshal(data, &dst.Typography)
}

func decodeSpacing(data []byte, dst *Raw) error {
	return json.Unmarshal(data, &dst.Spacing)
}

func decodeRadius(data []byte, dst *Raw) error {
	return json.Unmarshal(data, &dst.Radius)
}

func decodeBorders(data []byte, dst *Raw) error {
	return json.Unmarshal(data, &dst.Borders)
}

func decodeShadows(data []byte, dst *Raw) error {
	return json.Unmarshal(data, &dst.Shadows)
}

func decodeLogos(data []byte, dst *Raw) error {
	return json.Unmarshal(data, &dst.Logos)
}
