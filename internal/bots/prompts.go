package bots

import (
	"fmt"
	"strings"

	"github.com/yourusername/trackside/internal/models"
)

// BotName identifies one of the four analysis bots
type BotName string

const (
	BotTripTrouble        BotName = "trip_trouble"
	BotPace               BotName = "pace"
	BotVulnerableFavorite BotName = "vulnerable_favorite"
	BotFieldSpread        BotName = "field_spread"
)

// AllBots lists the bots the orchestrator runs for every race
var AllBots = []BotName{BotTripTrouble, BotPace, BotVulnerableFavorite, BotFieldSpread}

// raceCardSummary renders the card as compact lines the prompts share.
// One line per horse, ordered by program number.
func raceCardSummary(race *models.ParsedRace) string {
	var b strings.Builder
	fmt.Fprintf(&b, "Track %s race %d, %.1f furlongs, surface %s, class %s, field of %d.\n",
		race.Header.TrackCode, race.Header.RaceNumber, race.Header.DistanceFurlongs,
		race.Header.Surface, race.Header.RaceClass, race.FieldSize())

	for i := range race.Horses {
		h := &race.Horses[i]
		fmt.Fprintf(&b, "#%d %s | style %s | ML %s | best fig %d | record %d-%d | layoff %dd\n",
			h.ProgramNumber, h.HorseName, h.RunningStyle, h.MorningLineText,
			h.BestSpeedFigure(), h.CareerWins, h.CareerStarts, h.GetLayoff())
	}
	return b.String()
}

// scoringSummary renders the engine's ranked order for prompts that
// need to reason about the favorite or field separation.
func scoringSummary(scoring *models.RaceScoringResult) string {
	var b strings.Builder
	for _, s := range scoring.Scores {
		fmt.Fprintf(&b, "rank %d: #%d %s score %.1f\n", s.Rank, s.ProgramNumber, s.HorseName, s.FinalScore)
	}
	return b.String()
}

func buildTripTroublePrompt(race *models.ParsedRace) string {
	return fmt.Sprintf(`You are a horse racing trip handicapper. Review the card below and flag
horses whose recent races hid their true ability through traffic trouble,
wide trips, bad breaks, or troubled starts. Only flag a horse when the
trouble plausibly masked ability.

%s
Respond with JSON only, shaped exactly as:
{"flags":[{"program_number":1,"issue":"boxed in 2 of last 3 starts","masked_ability":true}]}
Return {"flags":[]} when nothing qualifies.`, raceCardSummary(race))
}

func buildPacePrompt(race *models.ParsedRace) string {
	return fmt.Sprintf(`You are a horse racing pace analyst. Project the early pace of the race
below from the running styles (E early, EP early presser, P presser,
S sustained closer). Identify which styles the projected pace favors and
hurts, whether one lone early-speed horse gets an uncontested lead, and
whether a speed duel is likely.

%s
Respond with JSON only, shaped exactly as:
{"pace_projection":"HOT","advantaged_styles":["S"],"disadvantaged_styles":["E"],"lone_speed_exception":false,"lone_speed_program":0,"speed_duel_likely":true}
pace_projection must be HOT, MODERATE or SLOW.`, raceCardSummary(race))
}

func buildVulnerableFavoritePrompt(race *models.ParsedRace, scoring *models.RaceScoringResult) string {
	return fmt.Sprintf(`You are a horse racing handicapper hunting vulnerable favorites. The
top-ranked horse below is the favorite. Decide whether it is vulnerable
today: look for class rises, long layoffs, poor pace fit, declining
figures, or thin form at the distance and surface.

%s
Ranked order:
%s
Respond with JSON only, shaped exactly as:
{"is_vulnerable":true,"reasons":["class rise","90 day layoff"],"confidence":"HIGH"}
confidence must be HIGH, MEDIUM or LOW. Use {"is_vulnerable":false,"reasons":[],"confidence":"LOW"} for a solid favorite.`,
		raceCardSummary(race), scoringSummary(scoring))
}

func buildFieldSpreadPrompt(race *models.ParsedRace, scoring *models.RaceScoringResult) string {
	return fmt.Sprintf(`You are a horse racing ticket strategist. Classify how the field below
separates on ability and recommend how wide exotic tickets should spread.

%s
Ranked order:
%s
Respond with JSON only, shaped exactly as:
{"field_type":"COMPETITIVE","top_tier_count":3,"recommended_spread":"MEDIUM"}
field_type must be one of TIGHT, SEPARATED, COMPETITIVE, MIXED, DOMINANT, WIDE_OPEN.
recommended_spread must be NARROW, MEDIUM or WIDE.`,
		raceCardSummary(race), scoringSummary(scoring))
}

// PromptFor builds the prompt for a named bot
func PromptFor(name BotName, race *models.ParsedRace, scoring *models.RaceScoringResult) string {
	switch name {
	case BotTripTrouble:
		return buildTripTroublePrompt(race)
	case BotPace:
		return buildPacePrompt(race)
	case BotVulnerableFavorite:
		return buildVulnerableFavoritePrompt(race, scoring)
	case BotFieldSpread:
		return buildFieldSpreadPrompt(race, scoring)
	default:
		return ""
	}
}
