package combiner

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/yourusername/trackside/internal/models"
)

func scoresWithValues(values ...float64) []models.HorseScore {
	scores := make([]models.HorseScore, len(values))
	for i, v := range values {
		scores[i] = models.HorseScore{
			ProgramNumber: i + 1,
			Rank:          i + 1,
			FinalScore:    v,
		}
	}
	return scores
}

func TestDeriveRaceTypeFromFieldSpread(t *testing.T) {
	tests := []struct {
		fieldType models.FieldType
		expected  models.RaceType
	}{
		{models.FieldDominant, models.RaceTypeChalk},
		{models.FieldSeparated, models.RaceTypeChalk},
		{models.FieldCompetitive, models.RaceTypeCompetitive},
		{models.FieldMixed, models.RaceTypeCompetitive},
		{models.FieldWideOpen, models.RaceTypeWideOpen},
		{models.FieldTight, models.RaceTypeWideOpen},
	}

	for _, tt := range tests {
		t.Run(string(tt.fieldType), func(t *testing.T) {
			spread := &models.FieldSpreadAnalysis{FieldType: tt.fieldType}
			got := DeriveRaceType(spread, scoresWithValues(200, 100))
			assert.Equal(t, tt.expected, got)
		})
	}
}

func TestDeriveRaceTypeScoreGapFallback(t *testing.T) {
	// top six inside a 30-point band reads wide open
	tight := scoresWithValues(200, 195, 190, 185, 180, 175, 100)
	assert.Equal(t, models.RaceTypeWideOpen, DeriveRaceType(nil, tight))

	// separated scores default to competitive, never chalk
	separated := scoresWithValues(240, 190, 170, 150, 140, 120)
	assert.Equal(t, models.RaceTypeCompetitive, DeriveRaceType(nil, separated))

	// small fields use as many scores as exist
	pair := scoresWithValues(200, 180)
	assert.Equal(t, models.RaceTypeWideOpen, DeriveRaceType(nil, pair))

	assert.Equal(t, models.RaceTypeCompetitive, DeriveRaceType(nil, nil))
}

func TestDetermineFavoriteStatus(t *testing.T) {
	status, flags := DetermineFavoriteStatus(nil)
	assert.Equal(t, models.FavoriteSolid, status)
	assert.Empty(t, flags)

	status, _ = DetermineFavoriteStatus(&models.VulnerableFavoriteAnalysis{IsVulnerable: false})
	assert.Equal(t, models.FavoriteSolid, status)

	// low confidence is noise regardless of flag count
	status, flags = DetermineFavoriteStatus(&models.VulnerableFavoriteAnalysis{
		IsVulnerable: true,
		Reasons:      []string{"bounce candidate", "pace compromised", "class jump"},
		Confidence:   models.BotConfidenceLow,
	})
	assert.Equal(t, models.FavoriteSolid, status)
	assert.Empty(t, flags)

	status, flags = DetermineFavoriteStatus(&models.VulnerableFavoriteAnalysis{
		IsVulnerable: true,
		Reasons:      []string{"bounce candidate", "pace compromised"},
		Confidence:   models.BotConfidenceMedium,
	})
	assert.Equal(t, models.FavoriteVulnerable, status)
	assert.Len(t, flags, 2)
}

func TestIsRankingAffecting(t *testing.T) {
	assert.False(t, IsRankingAffecting(nil))

	// high confidence with two flags is the only promoting combination
	assert.True(t, IsRankingAffecting(&models.VulnerableFavoriteAnalysis{
		IsVulnerable: true,
		Reasons:      []string{"bounce candidate", "pace compromised"},
		Confidence:   models.BotConfidenceHigh,
	}))

	assert.False(t, IsRankingAffecting(&models.VulnerableFavoriteAnalysis{
		IsVulnerable: true,
		Reasons:      []string{"bounce candidate"},
		Confidence:   models.BotConfidenceHigh,
	}))

	assert.False(t, IsRankingAffecting(&models.VulnerableFavoriteAnalysis{
		IsVulnerable: true,
		Reasons:      []string{"bounce candidate", "pace compromised"},
		Confidence:   models.BotConfidenceMedium,
	}))
}
