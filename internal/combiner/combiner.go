// Package combiner merges the deterministic algorithm ranking with the
// four independent heuristic bot analyses into a final betting
// recommendation with exotic-ticket construction.
//
// Every function in the package is pure: no globals, no caches, no
// cross-race state. Any subset of the bot signals may be nil and the
// combiner still produces a fully populated, conservative result. The
// algorithm ranking is never reordered; signals only choose which ranks
// participate in a ticket or carry a flag.
package combiner

import (
	"time"

	"github.com/shopspring/decimal"
	"github.com/sirupsen/logrus"

	"github.com/yourusername/trackside/internal/models"
)

// Combiner runs the signal-combination engine. Safe for concurrent use
// across independent races.
type Combiner struct {
	exactaUnit   decimal.Decimal
	trifectaUnit decimal.Decimal
	logger       *logrus.Logger
}

// NewCombiner creates a combiner with standard track unit stakes.
func NewCombiner(logger *logrus.Logger) *Combiner {
	return &Combiner{
		exactaUnit:   DefaultExactaUnit,
		trifectaUnit: DefaultTrifectaUnit,
		logger:       logger,
	}
}

// WithUnits overrides the per-combination unit stakes.
func (c *Combiner) WithUnits(exacta, trifecta decimal.Decimal) *Combiner {
	c.exactaUnit = exacta
	c.trifectaUnit = trifecta
	return c
}

// Combine produces the final recommendation for one race. The scoring
// result is ground truth for ordering; signals is tolerated as nil or
// partially populated.
func (c *Combiner) Combine(race *models.ParsedRace, scoring *models.RaceScoringResult, signals *models.MultiBotResults) *models.CombinedResult {
	if signals == nil {
		signals = &models.MultiBotResults{}
	}

	result := &models.CombinedResult{
		GeneratedAt: time.Now(),
	}
	if race != nil {
		result.RaceID = race.ID
	}

	if scoring == nil || len(scoring.Scores) == 0 {
		return c.degradedResult(result)
	}

	raceType := DeriveRaceType(signals.FieldSpread, scoring.Scores)
	favStatus, favFlags := DetermineFavoriteStatus(signals.VulnerableFavorite)
	value := IdentifyValueHorse(signals.TripTrouble, signals.Pace, race, scoring)

	template, reason := SelectTemplate(raceType, favStatus, signals.VulnerableFavorite, &value)

	fieldSize := scoring.FieldSize()
	exacta := BuildExactaTicket(template, fieldSize, c.exactaUnit)
	trifecta := BuildTrifectaTicket(template, fieldSize, c.trifectaUnit)

	confidenceScore := CalculateConfidenceScore(raceType, signals, race, scoring)
	tier := TierForScore(confidenceScore, template)

	result.RaceType = raceType
	result.TopPick = c.topPick(template, scoring)
	result.VulnerableFavorite = favStatus == models.FavoriteVulnerable
	result.ValueHorse = value
	if value.Identified {
		result.ValuePlay = value.ProgramNumber
	}
	result.Confidence = tier
	result.ConfidenceScore = confidenceScore
	result.BettableRace = template != models.TemplatePass && !exacta.IsEmpty()
	result.HorseInsights = ComposeInsights(race, scoring, signals, favStatus, value)
	result.RaceNarrative = ComposeNarrative(template, scoring, signals.VulnerableFavorite, value)
	result.Ticket = models.TicketConstruction{
		Template:        template,
		TemplateReason:  reason,
		Exacta:          exacta,
		Trifecta:        trifecta,
		ConfidenceScore: confidenceScore,
	}

	if c.logger != nil {
		c.logger.WithFields(logrus.Fields{
			"race_id":          result.RaceID,
			"template":         template,
			"race_type":        raceType,
			"favorite_status":  favStatus,
			"favorite_flags":   len(favFlags),
			"value_identified": value.Identified,
			"confidence":       confidenceScore,
			"bettable":         result.BettableRace,
		}).Info("Signal combination complete")
	}

	return result
}

// topPick returns the top pick's program number. Template B is the only
// path that moves it, to the algorithm's rank 2; the underlying ranking
// itself is untouched.
func (c *Combiner) topPick(template models.Template, scoring *models.RaceScoringResult) int {
	rank := 1
	if template == models.TemplateB && scoring.FieldSize() >= 2 {
		rank = 2
	}
	if s := scoring.ByRank(rank); s != nil {
		return s.ProgramNumber
	}
	return 0
}

// degradedResult is the conservative output for an empty or missing
// scoring result: PASS template, no wagers, minimal confidence.
func (c *Combiner) degradedResult(result *models.CombinedResult) *models.CombinedResult {
	result.RaceType = models.RaceTypeCompetitive
	result.ValueHorse = models.ValueHorseIdentification{Identified: false, Strength: models.StrengthNone}
	result.Confidence = models.ConfidenceMinimal
	result.ConfidenceScore = 0
	result.BettableRace = false
	result.RaceNarrative = ComposeNarrative(models.TemplatePass, nil, nil, result.ValueHorse)
	result.Ticket = models.TicketConstruction{
		Template:       models.TemplatePass,
		TemplateReason: "No scored field - nothing to wager on.",
		Exacta:         BuildExactaTicket(models.TemplatePass, 0, c.exactaUnit),
		Trifecta:       BuildTrifectaTicket(models.TemplatePass, 0, c.trifectaUnit),
	}
	return result
}
