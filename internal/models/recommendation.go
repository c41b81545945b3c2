package models

import (
	"encoding/json"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// Template is one of the four fixed wagering strategies
type Template string

const (
	// TemplateA keys the solid favorite over the contenders with an
	// identified value horse in the mix
	TemplateA Template = "A"
	// TemplateB demotes a vulnerable favorite to the place slot
	TemplateB Template = "B"
	// TemplateC boxes the contenders in a wide-open race
	TemplateC Template = "C"
	// TemplatePass declines to construct a wager
	TemplatePass Template = "PASS"
)

// RaceType is the derived competitiveness classification of a race
type RaceType string

const (
	RaceTypeChalk       RaceType = "CHALK"
	RaceTypeCompetitive RaceType = "COMPETITIVE"
	RaceTypeWideOpen    RaceType = "WIDE_OPEN"
)

// FavoriteStatus is the derived solidity judgment on the top-ranked horse
type FavoriteStatus string

const (
	FavoriteSolid      FavoriteStatus = "SOLID"
	FavoriteVulnerable FavoriteStatus = "VULNERABLE"
)

// SignalSource names a heuristic that contributed to a value-horse call
type SignalSource string

const (
	SourceTripTrouble SignalSource = "TRIP_TROUBLE"
	SourcePace        SignalSource = "PACE"
)

// SignalStrength tiers the evidence behind a value-horse call
type SignalStrength string

const (
	StrengthNone     SignalStrength = "NONE"
	StrengthModerate SignalStrength = "MODERATE"
	StrengthStrong   SignalStrength = "STRONG"
)

// ValueHorseIdentification records whether a single lower-ranked horse has
// a strong enough hidden edge to be worth backing
type ValueHorseIdentification struct {
	Identified    bool           `json:"identified"`
	ProgramNumber int            `json:"program_number,omitempty"`
	Sources       []SignalSource `json:"sources,omitempty"`
	Strength      SignalStrength `json:"strength"`
	Angle         string         `json:"angle,omitempty"`
}

// TicketStructure describes one wager as position sets of algorithm ranks.
// Position sets hold ranks 1..5, never program numbers; rendering to
// program numbers happens at display time.
type TicketStructure struct {
	BetType        string          `json:"bet_type"`
	WinPositions   []int           `json:"win_positions"`
	PlacePositions []int           `json:"place_positions"`
	ShowPositions  []int           `json:"show_positions,omitempty"`
	Combinations   int             `json:"combinations"`
	EstimatedCost  decimal.Decimal `json:"estimated_cost"`
}

// IsEmpty reports whether the ticket carries no combinations
func (t *TicketStructure) IsEmpty() bool {
	return t.Combinations == 0
}

// TicketConstruction bundles the selected template and its wagers
type TicketConstruction struct {
	Template        Template        `json:"template"`
	TemplateReason  string          `json:"template_reason"`
	Exacta          TicketStructure `json:"exacta"`
	Trifecta        TicketStructure `json:"trifecta"`
	ConfidenceScore int             `json:"confidence_score"`
}

// TotalCost returns the combined cost of both wagers
func (tc *TicketConstruction) TotalCost() decimal.Decimal {
	return tc.Exacta.EstimatedCost.Add(tc.Trifecta.EstimatedCost)
}

// HorseInsight is the per-horse display result. ProjectedFinish always
// equals the algorithm rank; signals never reorder it.
type HorseInsight struct {
	ProgramNumber   int    `json:"program_number"`
	HorseName       string `json:"horse_name"`
	ProjectedFinish int    `json:"projected_finish"`
	ValueLabel      string `json:"value_label"`
	OneLiner        string `json:"one_liner"`
	KeyStrength     string `json:"key_strength,omitempty"`
	KeyWeakness     string `json:"key_weakness,omitempty"`
	IsContender     bool   `json:"is_contender"`
	AvoidFlag       bool   `json:"avoid_flag"`
}

// CombinedResult is the final output of the signal-combination engine
type CombinedResult struct {
	RaceID             uuid.UUID                `json:"race_id"`
	TopPick            int                      `json:"top_pick"`
	ValuePlay          int                      `json:"value_play,omitempty"`
	VulnerableFavorite bool                     `json:"vulnerable_favorite"`
	RaceType           RaceType                 `json:"race_type"`
	Confidence         ConfidenceTier           `json:"confidence"`
	ConfidenceScore    int                      `json:"confidence_score"`
	BettableRace       bool                     `json:"bettable_race"`
	ValueHorse         ValueHorseIdentification `json:"value_horse"`
	HorseInsights      []HorseInsight           `json:"horse_insights"`
	RaceNarrative      string                   `json:"race_narrative"`
	Ticket             TicketConstruction       `json:"ticket_construction"`
	GeneratedAt        time.Time                `json:"generated_at"`
}

// Recommendation is the persisted form of a CombinedResult
type Recommendation struct {
	ID              uuid.UUID       `db:"id" json:"id" validate:"required"`
	RaceID          uuid.UUID       `db:"race_id" json:"race_id" validate:"required"`
	Template        Template        `db:"template" json:"template" validate:"required,oneof=A B C PASS"`
	TopPick         int             `db:"top_pick" json:"top_pick"`
	ConfidenceScore int             `db:"confidence_score" json:"confidence_score" validate:"gte=0,lte=100"`
	Bettable        bool            `db:"bettable" json:"bettable"`
	Payload         json.RawMessage `db:"payload" json:"payload"`
	CreatedAt       time.Time       `db:"created_at" json:"created_at"`
}
