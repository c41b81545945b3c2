package combiner

import (
	"fmt"

	"github.com/yourusername/trackside/internal/models"
)

// Value label vocabulary. The labels are contractual display strings;
// keep them centralized here.
const (
	LabelBestBet   = "BEST BET"
	LabelTopPick   = "TOP PICK"
	LabelFairPrice = "FAIR PRICE"
	LabelValuePlay = "VALUE PLAY"
	LabelContender = "CONTENDER"
	LabelOutsider  = "OUTSIDER"
	LabelSkip      = "SKIP"
	LabelNoChance  = "NO CHANCE"
)

// maxContenders fixes the contender count at the algorithm's top four
// (or the whole field when smaller). The field-spread bot's recommended
// spread is advisory for ticket width only and never changes this.
const maxContenders = 4

// ComposeInsights builds the per-horse display records. ProjectedFinish is
// copied verbatim from the algorithm rank for every horse; no signal ever
// changes it.
func ComposeInsights(race *models.ParsedRace, scoring *models.RaceScoringResult, signals *models.MultiBotResults, favStatus models.FavoriteStatus, value models.ValueHorseIdentification) []models.HorseInsight {
	if scoring == nil {
		return nil
	}
	fieldSize := scoring.FieldSize()
	contenders := maxContenders
	if fieldSize < contenders {
		contenders = fieldSize
	}
	bottomThirdStart := fieldSize - fieldSize/3 + 1

	insights := make([]models.HorseInsight, 0, fieldSize)
	for _, score := range scoring.Scores {
		insight := models.HorseInsight{
			ProgramNumber:   score.ProgramNumber,
			HorseName:       score.HorseName,
			ProjectedFinish: score.Rank,
			IsContender:     score.Rank <= contenders,
		}

		isValueHorse := value.Identified && value.ProgramNumber == score.ProgramNumber
		insight.ValueLabel = valueLabel(score.Rank, fieldSize, bottomThirdStart, contenders, favStatus, signals, isValueHorse)
		insight.AvoidFlag = insight.ValueLabel == LabelSkip || insight.ValueLabel == LabelNoChance
		insight.OneLiner = oneLiner(score, favStatus, isValueHorse, value)
		insight.KeyStrength = keyStrength(score)
		insight.KeyWeakness = keyWeakness(score, race, signals)

		insights = append(insights, insight)
	}
	return insights
}

func valueLabel(rank, fieldSize, bottomThirdStart, contenders int, favStatus models.FavoriteStatus, signals *models.MultiBotResults, isValueHorse bool) string {
	if rank == 1 {
		if favStatus == models.FavoriteVulnerable {
			return LabelFairPrice
		}
		if signals != nil && signals.CompletedCount() > 0 {
			return LabelBestBet
		}
		return LabelTopPick
	}
	if isValueHorse {
		return LabelValuePlay
	}
	if rank <= contenders {
		return LabelContender
	}
	if fieldSize >= 3 && rank >= bottomThirdStart {
		if rank == fieldSize {
			return LabelNoChance
		}
		return LabelSkip
	}
	return LabelOutsider
}

func oneLiner(score models.HorseScore, favStatus models.FavoriteStatus, isValueHorse bool, value models.ValueHorseIdentification) string {
	switch {
	case score.Rank == 1 && favStatus == models.FavoriteVulnerable:
		return fmt.Sprintf("Ranked 1st at %.0f but flagged vulnerable - fair price only", score.FinalScore)
	case score.Rank == 1:
		return fmt.Sprintf("Clear top figure at %.0f", score.FinalScore)
	case isValueHorse:
		return value.Angle
	default:
		return fmt.Sprintf("Ranked %s with a %.0f figure", ordinal(score.Rank), score.FinalScore)
	}
}

// keyStrength names the horse's best scoring factor. Factors are
// walked in a fixed order so ties always resolve to the same label.
func keyStrength(score models.HorseScore) string {
	factors := []struct {
		name string
		val  float64
	}{
		{"speed/class figures", score.Breakdown.SpeedClass},
		{"post position", score.Breakdown.PostPosition},
		{"distance/surface", score.Breakdown.DistanceSurface},
		{"recent form", score.Breakdown.RecentForm},
		{"track record", score.Breakdown.TrackSpecialist},
	}

	best := ""
	bestVal := 0.0
	for _, f := range factors {
		if f.val > bestVal {
			best, bestVal = f.name, f.val
		}
	}
	if best == "" {
		return ""
	}
	return fmt.Sprintf("Strong %s", best)
}

// keyWeakness prefers a concrete signal negative over the weakest factor.
func keyWeakness(score models.HorseScore, race *models.ParsedRace, signals *models.MultiBotResults) string {
	if signals == nil {
		return ""
	}
	if signals.TripTrouble != nil {
		if flag := signals.TripTrouble.FlagFor(score.ProgramNumber); flag != nil && !flag.MaskedAbility {
			return flag.Issue
		}
	}
	if signals.Pace != nil && race != nil {
		if entry := race.HorseByProgram(score.ProgramNumber); entry != nil && entry.RunningStyle != "" {
			if signals.Pace.Disadvantages(entry.RunningStyle) {
				return fmt.Sprintf("Pace setup works against %s types", entry.RunningStyle)
			}
		}
	}
	return ""
}

func ordinal(rank int) string {
	switch rank {
	case 1:
		return "1st"
	case 2:
		return "2nd"
	case 3:
		return "3rd"
	default:
		return fmt.Sprintf("%dth", rank)
	}
}
