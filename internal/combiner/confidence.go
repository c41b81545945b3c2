package combiner

import (
	"github.com/yourusername/trackside/internal/models"
)

// Confidence scoring weights. Base 65, clamped to [0, 100] after all
// bonuses and penalties.
const (
	confidenceBase       = 65
	agreementBonusPerBot = 5
	agreementBonusMax    = 20
	marginBonusMax       = 15
	cleanFavoriteBonus   = 10
	wideOpenPenalty      = 15
	vulnerablePenalty    = 15
	negativeFlagPenalty  = 5
	negativeFlagCap      = 15
	tierHighFloor        = 80
	tierMediumFloor      = 60
)

// CalculateConfidenceScore produces the 0-100 confidence for a race.
func CalculateConfidenceScore(raceType models.RaceType, signals *models.MultiBotResults, race *models.ParsedRace, scoring *models.RaceScoringResult) int {
	score := confidenceBase

	score += agreementBonus(raceType, signals, race, scoring)
	score += marginBonus(scoring)
	if isCleanFavorite(raceType, signals, race, scoring) {
		score += cleanFavoriteBonus
	}

	if raceType == models.RaceTypeWideOpen {
		score -= wideOpenPenalty
	}
	if signals != nil && IsRankingAffecting(signals.VulnerableFavorite) {
		score -= vulnerablePenalty
	}
	score -= negativeFlagPenalties(signals, race, scoring)

	if score < 0 {
		score = 0
	}
	if score > 100 {
		score = 100
	}
	return score
}

// TierForScore maps a numeric confidence to a display tier. A PASS
// template short-circuits to MINIMAL regardless of the number.
func TierForScore(score int, template models.Template) models.ConfidenceTier {
	if template == models.TemplatePass {
		return models.ConfidenceMinimal
	}
	switch {
	case score >= tierHighFloor:
		return models.ConfidenceHigh
	case score >= tierMediumFloor:
		return models.ConfidenceMedium
	default:
		return models.ConfidenceLow
	}
}

// agreementBonus grants +5 for each bot that ran and does not contradict
// the algorithm's top pick, up to +20 for four of four.
func agreementBonus(raceType models.RaceType, signals *models.MultiBotResults, race *models.ParsedRace, scoring *models.RaceScoringResult) int {
	if signals == nil || scoring == nil {
		return 0
	}
	bonus := 0

	if signals.TripTrouble != nil && !hasTroubleInRanks(signals.TripTrouble, scoring, 2, 4) {
		bonus += agreementBonusPerBot
	}
	if signals.Pace != nil && !paceNegativeForRank(signals.Pace, race, scoring, 1) {
		bonus += agreementBonusPerBot
	}
	if vf := signals.VulnerableFavorite; vf != nil {
		if !vf.IsVulnerable || vf.Confidence == models.BotConfidenceLow {
			bonus += agreementBonusPerBot
		}
	}
	if signals.FieldSpread != nil && raceType == models.RaceTypeChalk {
		bonus += agreementBonusPerBot
	}

	if bonus > agreementBonusMax {
		bonus = agreementBonusMax
	}
	return bonus
}

// marginBonus rewards a clear gap between the top two ranked scores.
func marginBonus(scoring *models.RaceScoringResult) int {
	if scoring == nil {
		return 0
	}
	first := scoring.ByRank(1)
	second := scoring.ByRank(2)
	if first == nil || second == nil {
		return 0
	}
	gap := first.FinalScore - second.FinalScore
	switch {
	case gap >= 20:
		return marginBonusMax
	case gap >= 12:
		return 10
	case gap >= 6:
		return 5
	default:
		return 0
	}
}

// isCleanFavorite reports a solid favorite in a non-wide-open race with no
// trip or pace negative against the top pick.
func isCleanFavorite(raceType models.RaceType, signals *models.MultiBotResults, race *models.ParsedRace, scoring *models.RaceScoringResult) bool {
	if raceType == models.RaceTypeWideOpen || scoring == nil {
		return false
	}
	var vf *models.VulnerableFavoriteAnalysis
	if signals != nil {
		vf = signals.VulnerableFavorite
	}
	if status, _ := DetermineFavoriteStatus(vf); status != models.FavoriteSolid {
		return false
	}
	if signals == nil {
		return true
	}
	top := scoring.ByRank(1)
	if top == nil {
		return false
	}
	if signals.TripTrouble != nil && signals.TripTrouble.FlagFor(top.ProgramNumber) != nil {
		return false
	}
	if paceNegativeForRank(signals.Pace, race, scoring, 1) {
		return false
	}
	return true
}

// negativeFlagPenalties deducts 5 points per trip or pace negative on the
// ranks 2-4 contenders, capped at 15.
func negativeFlagPenalties(signals *models.MultiBotResults, race *models.ParsedRace, scoring *models.RaceScoringResult) int {
	if signals == nil || scoring == nil {
		return 0
	}
	penalty := 0
	for rank := 2; rank <= 4; rank++ {
		s := scoring.ByRank(rank)
		if s == nil {
			continue
		}
		if signals.TripTrouble != nil && signals.TripTrouble.FlagFor(s.ProgramNumber) != nil {
			penalty += negativeFlagPenalty
		}
		if paceNegativeForRank(signals.Pace, race, scoring, rank) {
			penalty += negativeFlagPenalty
		}
	}
	if penalty > negativeFlagCap {
		penalty = negativeFlagCap
	}
	return penalty
}

func hasTroubleInRanks(trip *models.TripTroubleAnalysis, scoring *models.RaceScoringResult, lo, hi int) bool {
	for rank := lo; rank <= hi; rank++ {
		if s := scoring.ByRank(rank); s != nil && trip.FlagFor(s.ProgramNumber) != nil {
			return true
		}
	}
	return false
}

// paceNegativeForRank reports whether the horse at the given rank runs a
// pace-disadvantaged style.
func paceNegativeForRank(pace *models.PaceAnalysis, race *models.ParsedRace, scoring *models.RaceScoringResult, rank int) bool {
	if pace == nil || race == nil || scoring == nil {
		return false
	}
	s := scoring.ByRank(rank)
	if s == nil {
		return false
	}
	entry := race.HorseByProgram(s.ProgramNumber)
	if entry == nil || entry.RunningStyle == "" {
		return false
	}
	return pace.Disadvantages(entry.RunningStyle)
}
