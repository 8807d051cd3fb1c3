package tokens

import (
	"encoding/json"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestConfidenceOrdering(t *testing.T) {
	assert.Greater(t, ConfidenceHigh.Rank(), ConfidenceMedium.Rank())
	assert.Greater(t, ConfidenceMedium.Rank(), ConfidenceLow.Rank())
	assert.Greater(t, ConfidenceLow.Rank(), Confidence("bogus").Rank())

	assert.True(t, ConfidenceHigh.AtLeast(ConfidenceLow))
	assert.True(t, ConfidenceMedium.AtLeast(ConfidenceMedium))
	assert.False(t, ConfidenceLow.AtLeast(ConfidenceMedium))

	assert.Equal(t, ConfidenceHigh, Max(ConfidenceLow, ConfidenceHigh))
	assert.Equal(t, ConfidenceMedium, Max(ConfidenceMedium, ConfidenceLow))
}

func TestExtractionResultOmitsEmptyCategories(t *testing.T) {
	res := ExtractionResult{
		URL:         "https://example.com",
		ExtractedAt: time.Date(2026, 1, 2, 3, 4, 5, 0, time.UTC),
		Colors: &ColorBundle{
			Palette: []PaletteEntry{{Color: "#FF0000", Count: 3, Confidence: ConfidenceHigh}},
		},
	}

	data, err := json.Marshal(res)
	require.NoError(t, err)

	var m map[string]any
	require.NoError(t, json.Unmarshal(data, &m))

	assert.Contains(t, m, "url")
	assert.Contains(t, m, "colors")
	// Absent categories are omitted entirely, not emitted as empty objects.
	assert.NotContains(t, m, "typography")
	assert.NotContains(t, m, "spacing")
	assert.NotContains(t, m, "borderRadius")
	assert.NotContains(t, m, "borders")
	assert.NotContains(t, m, "shadows")
	assert.NotContains(t, m, "logo")
}

func TestPaletteEntryOmitsOpaqueAlpha(t *testing.T) {
	data, err := json.Marshal(PaletteEntry{Color: "#000000", Count: 1, Confidence: ConfidenceLow})
	require.NoError(t, err)
	assert.NotContains(t, string(data), "alpha")

	data, err = json.Marshal(PaletteEntry{Color: "#000000", Alpha: 0.5, Count: 1, Confidence: ConfidenceLow})
	require.NoError(t, err)
	assert.Contains(t, string(data), `"alpha":0.5`)
}
