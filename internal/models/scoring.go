package models

// ConfidenceTier buckets a numeric confidence score for display
type ConfidenceTier string

const (
	ConfidenceHigh    ConfidenceTier = "HIGH"
	ConfidenceMedium  ConfidenceTier = "MEDIUM"
	ConfidenceLow     ConfidenceTier = "LOW"
	ConfidenceMinimal ConfidenceTier = "MINIMAL"
)

// ScoreBreakdown holds the per-factor sub-scores that sum to the final score
type ScoreBreakdown struct {
	SpeedClass      float64 `json:"speed_class"`
	PostPosition    float64 `json:"post_position"`
	DistanceSurface float64 `json:"distance_surface"`
	RecentForm      float64 `json:"recent_form"`
	TrackSpecialist float64 `json:"track_specialist"`
	SexRestriction  float64 `json:"sex_restriction"`
}

// HorseScore is the deterministic scoring output for a single horse.
// Rank is dense and unique within a race; it is the algorithm ranking that
// every downstream component treats as ground truth.
type HorseScore struct {
	ProgramNumber  int            `json:"program_number" validate:"required,gt=0"`
	HorseName      string         `json:"horse_name"`
	Rank           int            `json:"rank" validate:"required,gt=0"`
	FinalScore     float64        `json:"final_score"`
	ConfidenceTier ConfidenceTier `json:"confidence_tier"`
	Breakdown      ScoreBreakdown `json:"breakdown"`
	Reasoning      []string       `json:"reasoning,omitempty"`
}

// RaceAnalysis summarizes the shape of the scored field
type RaceAnalysis struct {
	FieldSize    int     `json:"field_size"`
	TopScore     float64 `json:"top_score"`
	ScoreSpread  float64 `json:"score_spread"`
	AverageScore float64 `json:"average_score"`
}

// RaceScoringResult is the aggregate output of the deterministic scoring
// engine: scores sorted by rank ascending plus field-level analysis.
type RaceScoringResult struct {
	Scores   []HorseScore `json:"scores" validate:"required,min=1,dive"`
	Analysis RaceAnalysis `json:"analysis"`
}

// ByRank returns the score at the given rank (1-based), or nil
func (r *RaceScoringResult) ByRank(rank int) *HorseScore {
	for i := range r.Scores {
		if r.Scores[i].Rank == rank {
			return &r.Scores[i]
		}
	}
	return nil
}

// TopRanked returns up to n scores ordered by rank ascending
func (r *RaceScoringResult) TopRanked(n int) []HorseScore {
	if n > len(r.Scores) {
		n = len(r.Scores)
	}
	top := make([]HorseScore, 0, n)
	for rank := 1; rank <= len(r.Scores) && len(top) < n; rank++ {
		if s := r.ByRank(rank); s != nil {
			top = append(top, *s)
		}
	}
	return top
}

// FieldSize returns the number of scored horses
func (r *RaceScoringResult) FieldSize() int {
	return len(r.Scores)
}
