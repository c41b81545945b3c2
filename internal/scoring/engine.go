// Package scoring computes the deterministic multi-factor handicapping
// score and rank for every horse on a card. The resulting ranking is the
// ground truth ordering for all downstream signal combination.
package scoring

import (
	"sort"

	"github.com/sirupsen/logrus"

	"github.com/yourusername/trackside/internal/models"
)

// Engine aggregates the per-factor scores into a ranked result
type Engine struct {
	logger *logrus.Logger
}

// NewEngine creates a scoring engine
func NewEngine(logger *logrus.Logger) *Engine {
	return &Engine{logger: logger}
}

// Score produces the ranked scoring result for one race. Ranks are dense
// and unique: ties break by program number ascending so the output is
// stable for identical input.
func (e *Engine) Score(race *models.ParsedRace) *models.RaceScoringResult {
	result := &models.RaceScoringResult{}
	if race == nil || len(race.Horses) == 0 {
		return result
	}

	for i := range race.Horses {
		entry := &race.Horses[i]
		score := e.scoreEntry(entry, race)
		result.Scores = append(result.Scores, score)
	}

	sort.SliceStable(result.Scores, func(i, j int) bool {
		a, b := result.Scores[i], result.Scores[j]
		if a.FinalScore != b.FinalScore {
			return a.FinalScore > b.FinalScore
		}
		return a.ProgramNumber < b.ProgramNumber
	})
	for i := range result.Scores {
		result.Scores[i].Rank = i + 1
		result.Scores[i].ConfidenceTier = tierForPosition(i, result.Scores)
	}

	result.Analysis = analyze(result.Scores)

	if e.logger != nil {
		e.logger.WithFields(logrus.Fields{
			"track":      race.Header.TrackCode,
			"race":       race.Header.RaceNumber,
			"field_size": len(result.Scores),
			"top_score":  result.Analysis.TopScore,
			"spread":     result.Analysis.ScoreSpread,
		}).Debug("Race scored")
	}
	return result
}

func (e *Engine) scoreEntry(entry *models.HorseEntry, race *models.ParsedRace) models.HorseScore {
	score := models.HorseScore{
		ProgramNumber: entry.ProgramNumber,
		HorseName:     entry.HorseName,
	}

	add := func(value float64, note string, target *float64) {
		*target = value
		score.FinalScore += value
		if note != "" {
			score.Reasoning = append(score.Reasoning, note)
		}
	}

	speed, speedNote := scoreSpeedClass(entry)
	add(speed, speedNote, &score.Breakdown.SpeedClass)

	post, postNote := scorePostPosition(entry, race)
	add(post, postNote, &score.Breakdown.PostPosition)

	surface, surfaceNote := scoreDistanceSurface(entry)
	add(surface, surfaceNote, &score.Breakdown.DistanceSurface)

	form, formNote := scoreRecentForm(entry)
	add(form, formNote, &score.Breakdown.RecentForm)

	specialist, specialistNote := scoreTrackSpecialist(entry)
	add(specialist, specialistNote, &score.Breakdown.TrackSpecialist)

	sex, sexNote := scoreSexRestriction(entry, race)
	add(sex, sexNote, &score.Breakdown.SexRestriction)

	return score
}

// tierForPosition grades confidence by the gap to the next horse down.
func tierForPosition(i int, scores []models.HorseScore) models.ConfidenceTier {
	if i+1 >= len(scores) {
		return models.ConfidenceLow
	}
	gap := scores[i].FinalScore - scores[i+1].FinalScore
	switch {
	case gap >= 20:
		return models.ConfidenceHigh
	case gap >= 8:
		return models.ConfidenceMedium
	default:
		return models.ConfidenceLow
	}
}

func analyze(scores []models.HorseScore) models.RaceAnalysis {
	analysis := models.RaceAnalysis{FieldSize: len(scores)}
	if len(scores) == 0 {
		return analysis
	}
	total := 0.0
	low := scores[0].FinalScore
	for _, s := range scores {
		total += s.FinalScore
		if s.FinalScore < low {
			low = s.FinalScore
		}
	}
	analysis.TopScore = scores[0].FinalScore
	analysis.ScoreSpread = scores[0].FinalScore - low
	analysis.AverageScore = total / float64(len(scores))
	return analysis
}
