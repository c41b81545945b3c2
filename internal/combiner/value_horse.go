package combiner

import (
	"fmt"
	"strings"

	"github.com/yourusername/trackside/internal/models"
)

const (
	// valueOddsFloor is the minimum morning-line decimal odds for a
	// horse to be worth backing as a value play
	valueOddsFloor = 4.0
	// protectedRanks is the algorithm's top band that is never eligible
	// as a value horse
	protectedRanks = 4
)

type valueCandidate struct {
	program  int
	sources  []models.SignalSource
	strength models.SignalStrength
	angle    string
}

// IdentifyValueHorse scans the trip-trouble and pace signals for a single
// lower-ranked horse with a hidden edge. Horses inside the algorithm's top
// four are never candidates, with one exception: a lone-speed horse on a
// slow pace projection qualifies from any rank, since lone speed is a
// tactical certainty rather than a soft signal. Ties are not broken; zero
// or multiple equally strong candidates yield no identification.
func IdentifyValueHorse(trip *models.TripTroubleAnalysis, pace *models.PaceAnalysis, race *models.ParsedRace, scoring *models.RaceScoringResult) models.ValueHorseIdentification {
	none := models.ValueHorseIdentification{Identified: false, Strength: models.StrengthNone}
	if scoring == nil || len(scoring.Scores) == 0 {
		return none
	}

	candidates := make(map[int]*valueCandidate)

	loneSpeed := 0
	if pace != nil && pace.LoneSpeedException && pace.PaceProjection == models.PaceSlow {
		loneSpeed = pace.LoneSpeedProgram
	}

	for _, score := range scoring.Scores {
		program := score.ProgramNumber
		isLoneSpeed := loneSpeed != 0 && program == loneSpeed

		if !isLoneSpeed {
			if score.Rank <= protectedRanks {
				continue
			}
			if race != nil {
				entry := race.HorseByProgram(program)
				if entry == nil || !entry.IsLongshot() {
					continue
				}
			}
		}

		if trip != nil {
			if flag := trip.FlagFor(program); flag != nil && flag.MaskedAbility {
				addEvidence(candidates, program, models.SourceTripTrouble,
					tripStrength(flag.Issue),
					fmt.Sprintf("Trouble trips masked ability: %s", flag.Issue))
			}
		}

		if isLoneSpeed {
			addEvidence(candidates, program, models.SourcePace, models.StrengthStrong,
				"Lone speed on a slow pace projection")
		} else if pace != nil && race != nil {
			entry := race.HorseByProgram(program)
			if entry != nil && entry.RunningStyle != "" && pace.Advantages(entry.RunningStyle) {
				addEvidence(candidates, program, models.SourcePace, models.StrengthModerate,
					fmt.Sprintf("Pace setup favors %s types", entry.RunningStyle))
			}
		}
	}

	if len(candidates) == 0 {
		return none
	}

	best, tie := strongestCandidate(candidates)
	if tie {
		return none
	}

	return models.ValueHorseIdentification{
		Identified:    true,
		ProgramNumber: best.program,
		Sources:       best.sources,
		Strength:      best.strength,
		Angle:         best.angle,
	}
}

// tripStrength grades the trouble evidence: repeated trouble reads as
// STRONG, a single incident as MODERATE.
func tripStrength(issue string) models.SignalStrength {
	lower := strings.ToLower(issue)
	for _, marker := range []string{"2 of", "consecutive", "multiple"} {
		if strings.Contains(lower, marker) {
			return models.StrengthStrong
		}
	}
	return models.StrengthModerate
}

func addEvidence(candidates map[int]*valueCandidate, program int, source models.SignalSource, strength models.SignalStrength, angle string) {
	c, ok := candidates[program]
	if !ok {
		c = &valueCandidate{program: program, strength: models.StrengthNone}
		candidates[program] = c
	}
	for _, s := range c.sources {
		if s == source {
			return
		}
	}
	c.sources = append(c.sources, source)
	if strengthRank(strength) > strengthRank(c.strength) {
		c.strength = strength
		c.angle = angle
	}
}

func strongestCandidate(candidates map[int]*valueCandidate) (*valueCandidate, bool) {
	var best *valueCandidate
	tie := false
	for _, c := range candidates {
		switch {
		case best == nil:
			best = c
		case strengthRank(c.strength) > strengthRank(best.strength):
			best = c
			tie = false
		case strengthRank(c.strength) == strengthRank(best.strength):
			tie = true
		}
	}
	return best, tie
}

func strengthRank(s models.SignalStrength) int {
	switch s {
	case models.StrengthStrong:
		return 2
	case models.StrengthModerate:
		return 1
	default:
		return 0
	}
}
