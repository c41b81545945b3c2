package models

// HorseEntry represents a single horse on a race card
type HorseEntry struct {
	ProgramNumber   int          `db:"program_number" json:"program_number" validate:"required,gt=0,lt=25"`
	PostPosition    int          `db:"post_position" json:"post_position" validate:"required,gt=0,lt=25"`
	HorseName       string       `db:"horse_name" json:"horse_name" validate:"required"`
	MorningLineText string       `db:"morning_line_text" json:"morning_line_text"`
	MorningLineOdds float64      `db:"morning_line_odds" json:"morning_line_odds" validate:"gte=0"`
	RunningStyle    RunningStyle `db:"running_style" json:"running_style"`
	Sex             string       `db:"sex" json:"sex"`
	Age             int          `db:"age" json:"age" validate:"gte=0,lt=25"`
	Jockey          string       `db:"jockey" json:"jockey"`
	Trainer         string       `db:"trainer" json:"trainer"`
	Weight          int          `db:"weight" json:"weight"`
	CareerStarts    int          `db:"career_starts" json:"career_starts"`
	CareerWins      int          `db:"career_wins" json:"career_wins"`
	TrackStarts     int          `db:"track_starts" json:"track_starts"`
	TrackWins       int          `db:"track_wins" json:"track_wins"`
	SpeedFigures    []int        `db:"-" json:"speed_figures,omitempty"`
	DaysSinceLast   *int         `db:"days_since_last" json:"days_since_last"`
}

// BestSpeedFigure returns the highest recent speed figure, or 0 if none
func (h *HorseEntry) BestSpeedFigure() int {
	best := 0
	for _, fig := range h.SpeedFigures {
		if fig > best {
			best = fig
		}
	}
	return best
}

// WinRate returns career wins over starts, or 0 for a first-time starter
func (h *HorseEntry) WinRate() float64 {
	if h.CareerStarts <= 0 {
		return 0
	}
	return float64(h.CareerWins) / float64(h.CareerStarts)
}

// GetLayoff returns days since the last start or a high number if unknown
func (h *HorseEntry) GetLayoff() int {
	if h.DaysSinceLast == nil {
		return 999
	}
	return *h.DaysSinceLast
}

// IsLongshot reports whether the morning line is 4.0 decimal or higher,
// the odds floor used by the value-horse scan
func (h *HorseEntry) IsLongshot() bool {
	return h.MorningLineOdds >= 4.0
}
