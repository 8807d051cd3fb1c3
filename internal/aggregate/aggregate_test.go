package aggregate

import (
	"testing"

	"dtex/internal/collector"
	"dtex/internal/score"
	"dtex/internal/tokens"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newScorer() *score.Scorer {
	return score.New(nil)
}

func TestColorsMergeSumsCountsAndKeepsMaxConfidence(t *testing.T) {
	obs := []collector.ColorObservation{
		{Color: "#FF0000", Property: "background", Context: "div", Count: 10},
		{Color: "#FF0000", Property: "background", Context: "logo", Count: 1},
	}

	bundle := Colors(obs, newScorer())
	require.NotNil(t, bundle)
	require.Len(t, bundle.Palette, 1)

	entry := bundle.Palette[0]
	assert.Equal(t, "#FF0000", entry.Color)
	assert.Equal(t, 11, entry.Count)
	// Confidence comes from the logo context, never re-derived from the sum.
	assert.Equal(t, tokens.ConfidenceHigh, entry.Confidence)
	assert.Equal(t, "logo", entry.Context)
}

func TestColorsMergeAcrossNotations(t *testing.T) {
	obs := []collector.ColorObservation{
		{Color: "rgb(255, 0, 0)", Property: "background", Context: "button", Count: 3},
		{Color: "#ff0000", Property: "text", Context: "button", Count: 2},
		{Color: "rgba(255, 0, 0, 0.5)", Property: "background", Context: "button", Count: 1},
	}

	bundle := Colors(obs, newScorer())
	require.NotNil(t, bundle)
	require.Len(t, bundle.Palette, 1)
	assert.Equal(t, 6, bundle.Palette[0].Count)
	// Alpha tracks the highest-count occurrence, which was opaque.
	assert.Zero(t, bundle.Palette[0].Alpha)
}

func TestColorsAlphaFollowsWinningOccurrence(t *testing.T) {
	obs := []collector.ColorObservation{
		{Color: "rgba(0, 0, 255, 0.5)", Property: "background", Context: "button", Count: 9},
		{Color: "rgb(0, 0, 255)", Property: "background", Context: "button", Count: 2},
	}

	bundle := Colors(obs, newScorer())
	require.NotNil(t, bundle)
	require.Len(t, bundle.Palette, 1)
	assert.Equal(t, "#0000FF", bundle.Palette[0].Color)
	assert.InDelta(t, 0.5, bundle.Palette[0].Alpha, 0.001)
}

func TestColorsDropLowBeforeCapWithoutBackfill(t *testing.T) {
	// Two qualifying colors plus a pile of low-confidence ones. The low tier
	// is filtered before the cap, so the result has two entries, never
	// backfilled from the low pool.
	obs := []collector.ColorObservation{
		{Color: "#111111", Property: "background", Context: "button", Count: 5},
		{Color: "#222222", Property: "background", Context: "button", Count: 4},
	}
	for i := 0; i < 10; i++ {
		obs = append(obs, collector.ColorObservation{
			Color:    "rgb(200, 200, " + string(rune('0'+i)) + string(rune('0'+i)) + ")",
			Property: "background", Context: "generic", Count: 1,
		})
	}

	bundle := Colors(obs, newScorer())
	require.NotNil(t, bundle)
	assert.Len(t, bundle.Palette, 2)
	for _, e := range bundle.Palette {
		assert.True(t, e.Confidence.AtLeast(tokens.ConfidenceMedium))
	}
}

func TestColorsCapKeepsHighestRanked(t *testing.T) {
	var obs []collector.ColorObservation
	for i := 0; i < 40; i++ {
		obs = append(obs, collector.ColorObservation{
			Color:    rgbForIndex(i),
			Property: "background",
			Context:  "button",
			Count:    100 - i, // strictly decreasing counts
		})
	}

	bundle := Colors(obs, newScorer())
	require.NotNil(t, bundle)
	require.Len(t, bundle.Palette, 30)
	for i := 1; i < len(bundle.Palette); i++ {
		assert.GreaterOrEqual(t, bundle.Palette[i-1].Count, bundle.Palette[i].Count)
	}
	// The dropped entries are exactly the lowest-ranked ones.
	assert.Equal(t, 100, bundle.Palette[0].Count)
	assert.Equal(t, 71, bundle.Palette[29].Count)
}

func rgbForIndex(i int) string {
	return "rgb(" + itoa(i) + ", " + itoa(i*3) + ", " + itoa(i*5) + ")"
}

func itoa(i int) string {
	if i == 0 {
		return "0"
	}
	var digits []byte
	for i > 0 {
		digits = append([]byte{byte('0' + i%10)}, digits...)
		i /= 10
	}
	return string(digits)
}

func TestColorsTruncationIdempotent(t *testing.T) {
	var obs []collector.ColorObservation
	for i := 0; i < 40; i++ {
		obs = append(obs, collector.ColorObservation{
			Color:    rgbForIndex(i),
			Property: "background",
			Context:  "button",
			Count:    100 - i,
		})
	}

	once := Colors(obs, newScorer())
	require.NotNil(t, once)
	require.Len(t, once.Palette, 30)

	// Feeding the capped palette back through produces the same palette:
	// truncating twice is the same as truncating once.
	refed := make([]collector.ColorObservation, 0, len(once.Palette))
	for _, e := range once.Palette {
		refed = append(refed, collector.ColorObservation{
			Color: e.Color, Property: "background", Context: e.Context, Count: e.Count,
		})
	}
	twice := Colors(refed, newScorer())
	require.NotNil(t, twice)
	assert.Equal(t, once.Palette, twice.Palette)
}

func TestSpacingTruncationIdempotent(t *testing.T) {
	var obs []collector.DimensionObservation
	for i := 1; i <= 20; i++ {
		obs = append(obs, collector.DimensionObservation{
			Value: itoa(i*2) + "px", Context: "generic", Count: 21 - i,
		})
	}

	once := Spacing(obs, newScorer())
	require.NotNil(t, once)
	require.Len(t, once.CommonValues, 12)

	refed := make([]collector.DimensionObservation, 0, len(once.CommonValues))
	for _, v := range once.CommonValues {
		refed = append(refed, collector.DimensionObservation{
			Value: v.Value, Context: "generic", Count: v.Count,
		})
	}
	twice := Spacing(refed, newScorer())
	require.NotNil(t, twice)
	assert.Equal(t, once, twice)
}

func TestColorsDeterministicAcrossRuns(t *testing.T) {
	obs := []collector.ColorObservation{
		{Color: "#AA0000", Property: "background", Context: "button", Count: 2},
		{Color: "#00BB00", Property: "background", Context: "button", Count: 2},
		{Color: "#0000CC", Property: "text", Context: "heading", Count: 2},
		{Color: "#AA0000", Property: "text", Context: "nav", Count: 1},
	}

	first := Colors(obs, newScorer())
	second := Colors(obs, newScorer())
	assert.Equal(t, first, second)
}

func TestSpacingRankAndTieBreak(t *testing.T) {
	obs := []collector.DimensionObservation{
		{Value: "4px", Context: "generic", Count: 1},
		{Value: "8px", Context: "generic", Count: 1},
		{Value: "8px", Context: "generic", Count: 1},
		{Value: "16px", Context: "generic", Count: 1},
	}

	bundle := Spacing(obs, newScorer())
	require.NotNil(t, bundle)
	require.Len(t, bundle.CommonValues, 3)
	assert.Equal(t, "8px", bundle.CommonValues[0].Value)
	assert.Equal(t, 2, bundle.CommonValues[0].Count)
	// Ties among count-1 entries break by first-seen order.
	assert.Equal(t, "4px", bundle.CommonValues[1].Value)
	assert.Equal(t, "16px", bundle.CommonValues[2].Value)
}

func TestSpacingCap(t *testing.T) {
	var obs []collector.DimensionObservation
	for i := 1; i <= 20; i++ {
		obs = append(obs, collector.DimensionObservation{
			Value: itoa(i*2) + "px", Context: "generic", Count: 21 - i,
		})
	}
	bundle := Spacing(obs, newScorer())
	require.NotNil(t, bundle)
	assert.Len(t, bundle.CommonValues, 12)
	assert.Equal(t, "2px", bundle.CommonValues[0].Value)
}

func TestSemanticPromotionIndependentOfPaletteRank(t *testing.T) {
	obs := []collector.ColorObservation{
		{Color: "#EEEEEE", Property: "background", Context: "generic", Count: 500},
		{Color: "#E91E63", Property: "background", Context: "logo", Count: 1},
		{Color: "#333333", Property: "text", Context: "body", Count: 200},
		{Color: "#1A73E8", Property: "text", Context: "link", Count: 30},
		{Color: "#1A73E8", Property: "background", Context: "button", Count: 12},
	}

	bundle := Colors(obs, newScorer())
	require.NotNil(t, bundle)
	require.NotNil(t, bundle.Semantic)
	assert.Equal(t, "#E91E63", bundle.Semantic["primary"])
	assert.Equal(t, "#EEEEEE", bundle.Semantic["background"])
	assert.Equal(t, "#333333", bundle.Semantic["text"])
	assert.Equal(t, "#1A73E8", bundle.Semantic["accent"])
	assert.Equal(t, "#1A73E8", bundle.Semantic["link"])
}

func TestTypographyMergeAndRank(t *testing.T) {
	obs := []collector.TypographyObservation{
		{Family: "Inter, sans-serif", Size: "16px", Weight: "400", LineHeight: "24px", Context: "body", Count: 40},
		{Family: "Inter, sans-serif", Size: "16px", Weight: "400", LineHeight: "24px", Context: "heading", Count: 2},
		{Family: "Inter, sans-serif", Size: "32px", Weight: "700", LineHeight: "40px", Context: "heading", Count: 3},
	}

	bundle := Typography(obs, newScorer())
	require.NotNil(t, bundle)
	require.Len(t, bundle.Styles, 2)
	assert.Equal(t, 42, bundle.Styles[0].Count)
	assert.Equal(t, "16px", bundle.Styles[0].Size)
	assert.Equal(t, "32px", bundle.Styles[1].Size)
}

func TestBordersCombinationsMergeOnNormalizedColor(t *testing.T) {
	obs := []collector.BorderObservation{
		{Width: "1px", Style: "solid", Color: "rgb(221, 221, 221)", Context: "generic", Count: 12},
		{Width: "1px", Style: "solid", Color: "#dddddd", Context: "generic", Count: 5},
		{Width: "2px", Style: "dashed", Color: "rgb(0, 0, 0)", Context: "button", Count: 1},
	}

	bundle := Borders(obs, newScorer())
	require.NotNil(t, bundle)
	require.Len(t, bundle.Combinations, 2)
	assert.Equal(t, tokens.BorderCombination{Width: "1px", Style: "solid", Color: "#DDDDDD", Count: 17}, bundle.Combinations[0])
	assert.Equal(t, "1px", bundle.Widths[0].Value)
}

func TestShadowsMergeVerbatim(t *testing.T) {
	decl := "rgba(0, 0, 0, 0.1) 0px 2px 4px 0px"
	obs := []collector.ShadowObservation{
		{Shadow: decl, Context: "generic", Count: 3},
		{Shadow: decl, Context: "button", Count: 1},
		{Shadow: "none", Context: "generic", Count: 9},
	}

	bundle := Shadows(obs, newScorer())
	require.NotNil(t, bundle)
	require.Len(t, bundle.Shadows, 1)
	assert.Equal(t, decl, bundle.Shadows[0].Shadow)
	assert.Equal(t, 4, bundle.Shadows[0].Count)
}

func TestEmptyCategoriesReturnNil(t *testing.T) {
	s := newScorer()
	assert.Nil(t, Colors(nil, s))
	assert.Nil(t, Typography(nil, s))
	assert.Nil(t, Spacing(nil, s))
	assert.Nil(t, Radius(nil, s))
	assert.Nil(t, Borders(nil, s))
	assert.Nil(t, Shadows(nil, s))
	assert.Nil(t, Logo(nil))
}

func TestLogoInlineSVGCandidate(t *testing.T) {
	// An inline SVG logo has no URL; it must still beat a weaker img candidate.
	candidates := []collector.LogoCandidate{
		{URL: "https://a.example/banner.png", Kind: "img", Score: 1},
		{Alt: "Acme", Kind: "svg", Score: 4, Width: 96, Height: 32},
	}

	logo := Logo(candidates)
	require.NotNil(t, logo)
	assert.Equal(t, "svg", logo.Kind)
	assert.Empty(t, logo.URL)
	assert.Equal(t, "Acme", logo.Alt)
	assert.Equal(t, 96, logo.Width)
	assert.Equal(t, 32, logo.Height)
}

func TestLogoPicksBestScoreFirstSeenOnTies(t *testing.T) {
	candidates := []collector.LogoCandidate{
		{URL: "https://a.example/icon.png", Kind: "img", Score: 1},
		{URL: "https://a.example/logo.svg", Kind: "img", Score: 5, Width: 120.4, Height: 39.8, Alt: "Acme"},
		{URL: "https://a.example/other.png", Kind: "img", Score: 5},
	}

	logo := Logo(candidates)
	require.NotNil(t, logo)
	assert.Equal(t, "https://a.example/logo.svg", logo.URL)
	assert.Equal(t, "Acme", logo.Alt)
	assert.Equal(t, 120, logo.Width)
	assert.Equal(t, 40, logo.Height)
}
