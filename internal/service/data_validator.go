package service

import (
	"fmt"
	"log"

	"github.com/yourusername/trackside/internal/config"
	"github.com/yourusername/trackside/internal/models"
)

// DataValidator validates parsed race cards before they enter the
// analysis pipeline
type DataValidator struct {
	structural *config.CustomValidator
	logger     *log.Logger
}

// NewDataValidator creates a new data validator
func NewDataValidator(logger *log.Logger) *DataValidator {
	return &DataValidator{
		structural: config.NewValidator(),
		logger:     logger,
	}
}

// ValidateRace validates a parsed race for required fields and
// constraints, returning all problems found
func (v *DataValidator) ValidateRace(race *models.ParsedRace) []string {
	var errors []string

	if err := v.structural.ValidateStruct(race); err != nil {
		errors = append(errors, err.Error())
	}

	if race.Header.DistanceFurlongs < 2.0 || race.Header.DistanceFurlongs > 16.0 {
		errors = append(errors, fmt.Sprintf("distance out of range (2-16 furlongs), got %.1f", race.Header.DistanceFurlongs))
	}

	if race.FieldSize() < 2 {
		errors = append(errors, fmt.Sprintf("field too small to handicap, got %d entries", race.FieldSize()))
	}

	if race.FieldSize() > 20 {
		errors = append(errors, fmt.Sprintf("field too large, got %d entries", race.FieldSize()))
	}

	seen := make(map[int]bool, race.FieldSize())
	for i := range race.Horses {
		program := race.Horses[i].ProgramNumber
		if seen[program] {
			errors = append(errors, fmt.Sprintf("duplicate program number %d", program))
		}
		seen[program] = true
	}

	for i := range race.Horses {
		errors = append(errors, v.ValidateEntry(&race.Horses[i])...)
	}

	return errors
}

// ValidateEntry validates a single entry for field constraints
func (v *DataValidator) ValidateEntry(entry *models.HorseEntry) []string {
	var errors []string

	if entry.HorseName == "" {
		errors = append(errors, fmt.Sprintf("entry #%d has no horse name", entry.ProgramNumber))
	}

	if entry.CareerWins > entry.CareerStarts {
		errors = append(errors, fmt.Sprintf("#%d has more wins than starts (%d > %d)",
			entry.ProgramNumber, entry.CareerWins, entry.CareerStarts))
	}

	if entry.TrackWins > entry.TrackStarts {
		errors = append(errors, fmt.Sprintf("#%d has more track wins than track starts (%d > %d)",
			entry.ProgramNumber, entry.TrackWins, entry.TrackStarts))
	}

	if entry.DaysSinceLast != nil && *entry.DaysSinceLast < 0 {
		errors = append(errors, fmt.Sprintf("#%d days_since_last cannot be negative", entry.ProgramNumber))
	}

	for _, fig := range entry.SpeedFigures {
		if fig < 0 || fig > 130 {
			errors = append(errors, fmt.Sprintf("#%d speed figure out of range, got %d", entry.ProgramNumber, fig))
			break
		}
	}

	return errors
}

// ValidateRaceUniqueness checks whether a race already exists on the
// same track, date, and race number
func (v *DataValidator) ValidateRaceUniqueness(race *models.ParsedRace, existing []*models.ParsedRace) error {
	for _, other := range existing {
		if other.Header.TrackCode == race.Header.TrackCode &&
			other.Header.RaceDate.Equal(race.Header.RaceDate) &&
			other.Header.RaceNumber == race.Header.RaceNumber {
			return fmt.Errorf("race already exists: %s race %d on %s",
				race.Header.TrackCode, race.Header.RaceNumber,
				race.Header.RaceDate.Format("2006-01-02"))
		}
	}
	return nil
}
