package models

import (
	"time"

	"github.com/google/uuid"
)

// RunningStyle classifies a horse's early-pace style from its past performances
type RunningStyle string

const (
	// StyleEarly is a front-running, need-the-lead type
	StyleEarly RunningStyle = "E"
	// StyleEarlyPresser sits just off the leaders
	StyleEarlyPresser RunningStyle = "EP"
	// StylePresser stalks from mid-pack
	StylePresser RunningStyle = "P"
	// StyleSustained closes from the back
	StyleSustained RunningStyle = "S"
)

// RaceHeader represents the card-level metadata for a single race
type RaceHeader struct {
	TrackCode        string    `db:"track_code" json:"track_code" validate:"required,len=3"`
	RaceNumber       int       `db:"race_number" json:"race_number" validate:"required,gt=0,lt=20"`
	RaceDate         time.Time `db:"race_date" json:"race_date" validate:"required"`
	Surface          string    `db:"surface" json:"surface" validate:"required,surface"`
	DistanceFurlongs float64   `db:"distance_furlongs" json:"distance_furlongs" validate:"required,gt=0"`
	RaceClass        string    `db:"race_class" json:"race_class"`
	PurseUSD         int       `db:"purse_usd" json:"purse_usd" validate:"gte=0"`
	Conditions       string    `db:"conditions" json:"conditions"`
	SexRestriction   string    `db:"sex_restriction" json:"sex_restriction"`
}

// ParsedRace is the structured output of the DRF card parser: one race
// header plus its ordered list of entries. Downstream components treat it
// as read-only.
type ParsedRace struct {
	ID         uuid.UUID    `db:"id" json:"id" validate:"required"`
	Header     RaceHeader   `json:"header" validate:"required"`
	Horses     []HorseEntry `json:"horses" validate:"required,min=1,dive"`
	SourceFile string       `db:"source_file" json:"source_file"`
	CreatedAt  time.Time    `db:"created_at" json:"created_at"`
	UpdatedAt  time.Time    `db:"updated_at" json:"updated_at"`
}

// FieldSize returns the number of entries on the card
func (r *ParsedRace) FieldSize() int {
	return len(r.Horses)
}

// HorseByProgram returns the entry with the given program number, or nil
func (r *ParsedRace) HorseByProgram(program int) *HorseEntry {
	for i := range r.Horses {
		if r.Horses[i].ProgramNumber == program {
			return &r.Horses[i]
		}
	}
	return nil
}

// IsSprint reports whether the race is shorter than a mile
func (r *ParsedRace) IsSprint() bool {
	return r.Header.DistanceFurlongs < 8.0
}
