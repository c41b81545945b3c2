package models

// PaceProjection classifies the expected early-pace heat of a race
type PaceProjection string

const (
	PaceHot      PaceProjection = "HOT"
	PaceModerate PaceProjection = "MODERATE"
	PaceSlow     PaceProjection = "SLOW"
)

// BotConfidence is the self-reported confidence of a heuristic analysis
type BotConfidence string

const (
	BotConfidenceHigh   BotConfidence = "HIGH"
	BotConfidenceMedium BotConfidence = "MEDIUM"
	BotConfidenceLow    BotConfidence = "LOW"
)

// FieldType classifies how the scored field separates
type FieldType string

const (
	FieldTight       FieldType = "TIGHT"
	FieldSeparated   FieldType = "SEPARATED"
	FieldCompetitive FieldType = "COMPETITIVE"
	FieldMixed       FieldType = "MIXED"
	FieldDominant    FieldType = "DOMINANT"
	FieldWideOpen    FieldType = "WIDE_OPEN"
)

// SpreadWidth is the field-spread bot's advisory ticket-width suggestion
type SpreadWidth string

const (
	SpreadNarrow SpreadWidth = "NARROW"
	SpreadMedium SpreadWidth = "MEDIUM"
	SpreadWide   SpreadWidth = "WIDE"
)

// TripTroubleFlag marks one horse whose recent trips hid its ability
type TripTroubleFlag struct {
	ProgramNumber int    `json:"program_number" validate:"required,gt=0"`
	Issue         string `json:"issue"`
	MaskedAbility bool   `json:"masked_ability"`
}

// TripTroubleAnalysis is the trip-trouble bot's output
type TripTroubleAnalysis struct {
	Flags []TripTroubleFlag `json:"flags"`
}

// FlagFor returns the trouble flag for a program number, or nil
func (t *TripTroubleAnalysis) FlagFor(program int) *TripTroubleFlag {
	for i := range t.Flags {
		if t.Flags[i].ProgramNumber == program {
			return &t.Flags[i]
		}
	}
	return nil
}

// PaceAnalysis is the pace-scenario bot's output
type PaceAnalysis struct {
	AdvantagedStyles    []RunningStyle `json:"advantaged_styles"`
	DisadvantagedStyles []RunningStyle `json:"disadvantaged_styles"`
	PaceProjection      PaceProjection `json:"pace_projection"`
	LoneSpeedException  bool           `json:"lone_speed_exception"`
	LoneSpeedProgram    int            `json:"lone_speed_program"`
	SpeedDuelLikely     bool           `json:"speed_duel_likely"`
}

// Advantages reports whether the given style is pace-advantaged
func (p *PaceAnalysis) Advantages(style RunningStyle) bool {
	for _, s := range p.AdvantagedStyles {
		if s == style {
			return true
		}
	}
	return false
}

// Disadvantages reports whether the given style is pace-disadvantaged
func (p *PaceAnalysis) Disadvantages(style RunningStyle) bool {
	for _, s := range p.DisadvantagedStyles {
		if s == style {
			return true
		}
	}
	return false
}

// VulnerableFavoriteAnalysis is the vulnerable-favorite bot's output
type VulnerableFavoriteAnalysis struct {
	IsVulnerable bool          `json:"is_vulnerable"`
	Reasons      []string      `json:"reasons"`
	Confidence   BotConfidence `json:"confidence"`
}

// FieldSpreadAnalysis is the field-spread bot's output
type FieldSpreadAnalysis struct {
	FieldType         FieldType   `json:"field_type"`
	TopTierCount      int         `json:"top_tier_count"`
	RecommendedSpread SpreadWidth `json:"recommended_spread"`
}

// MultiBotResults bundles the four independent heuristic analyses. Any
// field may be nil: a nil field means that bot did not run, failed, or
// abstained, and consumers must treat it as "no evidence".
type MultiBotResults struct {
	TripTrouble        *TripTroubleAnalysis        `json:"trip_trouble,omitempty"`
	Pace               *PaceAnalysis               `json:"pace,omitempty"`
	VulnerableFavorite *VulnerableFavoriteAnalysis `json:"vulnerable_favorite,omitempty"`
	FieldSpread        *FieldSpreadAnalysis        `json:"field_spread,omitempty"`
}

// CompletedCount returns how many of the four bots produced a result
func (m *MultiBotResults) CompletedCount() int {
	count := 0
	if m.TripTrouble != nil {
		count++
	}
	if m.Pace != nil {
		count++
	}
	if m.VulnerableFavorite != nil {
		count++
	}
	if m.FieldSpread != nil {
		count++
	}
	return count
}
