package combiner

import (
	"github.com/yourusername/trackside/internal/models"
)

// scoreGapBand is the top-6 score band (in points) inside which a race
// with no field-spread signal is considered wide open.
const scoreGapBand = 30.0

// DeriveRaceType classifies race competitiveness. When the field-spread
// bot produced a result its classification wins; otherwise the score gaps
// among the top six ranked horses decide. CHALK is never inferred from
// score gaps alone: it requires a positive field-spread classification.
func DeriveRaceType(fieldSpread *models.FieldSpreadAnalysis, scores []models.HorseScore) models.RaceType {
	if fieldSpread != nil {
		switch fieldSpread.FieldType {
		case models.FieldDominant, models.FieldSeparated:
			return models.RaceTypeChalk
		case models.FieldCompetitive, models.FieldMixed:
			return models.RaceTypeCompetitive
		case models.FieldWideOpen:
			return models.RaceTypeWideOpen
		case models.FieldTight:
			// TIGHT means scores bunched with no separation, the same
			// condition the 30-point score-gap fallback maps to WIDE_OPEN.
			return models.RaceTypeWideOpen
		}
	}

	if len(scores) == 0 {
		return models.RaceTypeCompetitive
	}

	top := topScoresDescending(scores, 6)
	if len(top) > 1 && top[0]-top[len(top)-1] <= scoreGapBand {
		return models.RaceTypeWideOpen
	}
	return models.RaceTypeCompetitive
}

// DetermineFavoriteStatus judges the top-ranked horse from the
// vulnerable-favorite bot's output. A LOW-confidence flag is treated as
// noise and yields SOLID regardless of how many reasons it lists.
func DetermineFavoriteStatus(vf *models.VulnerableFavoriteAnalysis) (models.FavoriteStatus, []string) {
	if vf == nil || !vf.IsVulnerable {
		return models.FavoriteSolid, nil
	}
	if vf.Confidence == models.BotConfidenceLow {
		return models.FavoriteSolid, nil
	}
	return models.FavoriteVulnerable, vf.Reasons
}

// IsRankingAffecting reports whether the vulnerability is strong enough to
// demote the favorite in ticket construction. This is a stricter gate than
// DetermineFavoriteStatus: the display layer flags MEDIUM-confidence
// vulnerability, but only HIGH confidence with at least two distinct flags
// selects Template B.
func IsRankingAffecting(vf *models.VulnerableFavoriteAnalysis) bool {
	if vf == nil || !vf.IsVulnerable {
		return false
	}
	return vf.Confidence == models.BotConfidenceHigh && len(vf.Reasons) >= 2
}

func topScoresDescending(scores []models.HorseScore, n int) []float64 {
	vals := make([]float64, 0, len(scores))
	for _, s := range scores {
		vals = append(vals, s.FinalScore)
	}
	// insertion sort, fields are small
	for i := 1; i < len(vals); i++ {
		for j := i; j > 0 && vals[j] > vals[j-1]; j-- {
			vals[j], vals[j-1] = vals[j-1], vals[j]
		}
	}
	if n > len(vals) {
		n = len(vals)
	}
	return vals[:n]
}
