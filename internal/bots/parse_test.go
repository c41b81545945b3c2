package bots

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/yourusername/trackside/internal/models"
)

// TestParseTripTrouble tests decoding of trip-trouble responses
func TestParseTripTrouble(t *testing.T) {
	raw := `{"flags":[{"program_number":5,"issue":"boxed in 2 of last 3","masked_ability":true}]}`

	analysis, err := ParseTripTrouble(raw, 8)
	require.NoError(t, err)
	require.Len(t, analysis.Flags, 1)
	assert.Equal(t, 5, analysis.Flags[0].ProgramNumber)
	assert.True(t, analysis.Flags[0].MaskedAbility)
}

// TestParseTripTroubleMarkdownFences tests fence stripping
func TestParseTripTroubleMarkdownFences(t *testing.T) {
	raw := "```json\n{\"flags\":[]}\n```"

	analysis, err := ParseTripTrouble(raw, 8)
	require.NoError(t, err)
	assert.Empty(t, analysis.Flags)
}

// TestParseTripTroubleDropsOutOfFieldFlags tests flag filtering
func TestParseTripTroubleDropsOutOfFieldFlags(t *testing.T) {
	raw := `{"flags":[{"program_number":12,"issue":"wide trip","masked_ability":true},{"program_number":3,"issue":"slow break","masked_ability":false}]}`

	analysis, err := ParseTripTrouble(raw, 8)
	require.NoError(t, err)
	require.Len(t, analysis.Flags, 1)
	assert.Equal(t, 3, analysis.Flags[0].ProgramNumber)
}

// TestParseTripTroubleProse tests rejection of non-JSON responses
func TestParseTripTroubleProse(t *testing.T) {
	_, err := ParseTripTrouble("I could not find any trouble lines.", 8)
	assert.ErrorIs(t, err, ErrInvalidAnalysis)
}

// TestParsePace tests decoding of pace responses
func TestParsePace(t *testing.T) {
	raw := `{"pace_projection":"HOT","advantaged_styles":["S","P"],"disadvantaged_styles":["E"],"lone_speed_exception":false,"lone_speed_program":0,"speed_duel_likely":true}`

	analysis, err := ParsePace(raw, 8)
	require.NoError(t, err)
	assert.Equal(t, models.PaceHot, analysis.PaceProjection)
	assert.True(t, analysis.Advantages(models.StyleSustained))
	assert.True(t, analysis.Disadvantages(models.StyleEarly))
	assert.True(t, analysis.SpeedDuelLikely)
}

// TestParsePaceUnknownProjection tests enum validation
func TestParsePaceUnknownProjection(t *testing.T) {
	raw := `{"pace_projection":"BLISTERING","advantaged_styles":[],"disadvantaged_styles":[]}`

	_, err := ParsePace(raw, 8)
	assert.ErrorIs(t, err, ErrInvalidAnalysis)
}

// TestParsePaceLoneSpeedRequiresProgram tests lone-speed sanity checks
func TestParsePaceLoneSpeedRequiresProgram(t *testing.T) {
	raw := `{"pace_projection":"SLOW","lone_speed_exception":true,"lone_speed_program":0}`

	analysis, err := ParsePace(raw, 8)
	require.NoError(t, err)
	assert.False(t, analysis.LoneSpeedException)
}

// TestParsePaceDropsUnknownStyles tests style filtering
func TestParsePaceDropsUnknownStyles(t *testing.T) {
	raw := `{"pace_projection":"MODERATE","advantaged_styles":["S","X"],"disadvantaged_styles":["Z"]}`

	analysis, err := ParsePace(raw, 8)
	require.NoError(t, err)
	assert.Equal(t, []models.RunningStyle{models.StyleSustained}, analysis.AdvantagedStyles)
	assert.Empty(t, analysis.DisadvantagedStyles)
}

// TestParseVulnerableFavorite tests decoding of favorite responses
func TestParseVulnerableFavorite(t *testing.T) {
	raw := `{"is_vulnerable":true,"reasons":["class rise","90 day layoff"],"confidence":"HIGH"}`

	analysis, err := ParseVulnerableFavorite(raw)
	require.NoError(t, err)
	assert.True(t, analysis.IsVulnerable)
	assert.Len(t, analysis.Reasons, 2)
	assert.Equal(t, models.BotConfidenceHigh, analysis.Confidence)
}

// TestParseVulnerableFavoriteNoReasons tests that a reasonless verdict is discarded
func TestParseVulnerableFavoriteNoReasons(t *testing.T) {
	raw := `{"is_vulnerable":true,"reasons":[],"confidence":"HIGH"}`

	analysis, err := ParseVulnerableFavorite(raw)
	require.NoError(t, err)
	assert.False(t, analysis.IsVulnerable)
}

// TestParseVulnerableFavoriteBadConfidence tests enum validation
func TestParseVulnerableFavoriteBadConfidence(t *testing.T) {
	raw := `{"is_vulnerable":false,"reasons":[],"confidence":"MAYBE"}`

	_, err := ParseVulnerableFavorite(raw)
	assert.ErrorIs(t, err, ErrInvalidAnalysis)
}

// TestParseFieldSpread tests decoding of field-spread responses
func TestParseFieldSpread(t *testing.T) {
	raw := `{"field_type":"WIDE_OPEN","top_tier_count":6,"recommended_spread":"WIDE"}`

	analysis, err := ParseFieldSpread(raw, 10)
	require.NoError(t, err)
	assert.Equal(t, models.FieldWideOpen, analysis.FieldType)
	assert.Equal(t, 6, analysis.TopTierCount)
	assert.Equal(t, models.SpreadWide, analysis.RecommendedSpread)
}

// TestParseFieldSpreadClampsTierCount tests tier count clamping
func TestParseFieldSpreadClampsTierCount(t *testing.T) {
	raw := `{"field_type":"TIGHT","top_tier_count":40,"recommended_spread":"NARROW"}`

	analysis, err := ParseFieldSpread(raw, 8)
	require.NoError(t, err)
	assert.Equal(t, 8, analysis.TopTierCount)
}

// TestParseFieldSpreadDefaultsSpread tests spread fallback
func TestParseFieldSpreadDefaultsSpread(t *testing.T) {
	raw := `{"field_type":"COMPETITIVE","top_tier_count":3,"recommended_spread":"HUGE"}`

	analysis, err := ParseFieldSpread(raw, 8)
	require.NoError(t, err)
	assert.Equal(t, models.SpreadMedium, analysis.RecommendedSpread)
}

// TestParseFieldSpreadUnknownType tests enum validation
func TestParseFieldSpreadUnknownType(t *testing.T) {
	raw := `{"field_type":"CHAOTIC","top_tier_count":3}`

	_, err := ParseFieldSpread(raw, 8)
	assert.ErrorIs(t, err, ErrInvalidAnalysis)
}
