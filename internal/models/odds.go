package models

import (
	"time"

	"github.com/google/uuid"
)

// OddsSnapshot is one observed win price for one horse at a moment in
// time, taken from the live odds feed
type OddsSnapshot struct {
	ID            uuid.UUID `db:"id" json:"id" validate:"required"`
	RaceID        uuid.UUID `db:"race_id" json:"race_id" validate:"required"`
	ProgramNumber int       `db:"program_number" json:"program_number" validate:"required,gt=0"`
	DecimalOdds   float64   `db:"decimal_odds" json:"decimal_odds" validate:"required,gt=0"`
	Source        string    `db:"source" json:"source"`
	TakenAt       time.Time `db:"taken_at" json:"taken_at"`
}

// IsDrifting reports whether this snapshot shows a longer price than a
// previous one for the same horse
func (o *OddsSnapshot) IsDrifting(previous *OddsSnapshot) bool {
	if previous == nil {
		return false
	}
	return o.DecimalOdds > previous.DecimalOdds
}
