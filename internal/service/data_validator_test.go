package service

import (
	"io"
	"log"
	"strings"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/yourusername/trackside/internal/models"
)

func testValidator() *DataValidator {
	return NewDataValidator(log.New(io.Discard, "", 0))
}

func serviceRace(fieldSize int) *models.ParsedRace {
	race := &models.ParsedRace{
		ID: uuid.New(),
		Header: models.RaceHeader{
			TrackCode:        "SAR",
			RaceNumber:       5,
			RaceDate:         time.Date(2026, 8, 15, 0, 0, 0, 0, time.UTC),
			Surface:          "D",
			DistanceFurlongs: 6.0,
			RaceClass:        "ALW",
			PurseUSD:         80000,
		},
		CreatedAt: time.Now(),
		UpdatedAt: time.Now(),
	}

	styles := []models.RunningStyle{models.StyleEarly, models.StyleEarlyPresser, models.StylePresser, models.StyleSustained}
	names := []string{"Bold Venture", "Gallant Fox", "War Admiral", "Whirlaway", "Citation", "Secretariat",
		"Seattle Slew", "Affirmed", "Alydar", "Spectacular Bid", "Sunday Silence", "Easy Goer"}
	for i := 0; i < fieldSize; i++ {
		days := 30 + i*7
		race.Horses = append(race.Horses, models.HorseEntry{
			ProgramNumber:   i + 1,
			PostPosition:    i + 1,
			HorseName:       names[i%len(names)],
			MorningLineText: "5-2",
			MorningLineOdds: 2.5 + float64(i),
			RunningStyle:    styles[i%len(styles)],
			Age:             4,
			Weight:          120,
			CareerStarts:    12,
			CareerWins:      3,
			TrackStarts:     4,
			TrackWins:       1,
			SpeedFigures:    []int{88 - i, 85 - i, 82 - i},
			DaysSinceLast:   &days,
		})
	}
	return race
}

func TestValidateRaceAcceptsWellFormedRace(t *testing.T) {
	v := testValidator()
	problems := v.ValidateRace(serviceRace(8))
	assert.Empty(t, problems)
}

func TestValidateRaceRejectsDistanceOutOfRange(t *testing.T) {
	v := testValidator()

	race := serviceRace(8)
	race.Header.DistanceFurlongs = 1.5

	problems := v.ValidateRace(race)
	require.NotEmpty(t, problems)
	assert.Contains(t, problems[0], "distance out of range")
}

func TestValidateRaceRejectsShortField(t *testing.T) {
	v := testValidator()

	race := serviceRace(1)
	problems := v.ValidateRace(race)

	requireProblem(t, problems, "field too small")
}

func TestValidateRaceRejectsDuplicateProgramNumbers(t *testing.T) {
	v := testValidator()

	race := serviceRace(6)
	race.Horses[3].ProgramNumber = race.Horses[0].ProgramNumber

	requireProblem(t, v.ValidateRace(race), "duplicate program number")
}

func TestValidateEntryRejectsImpossibleRecord(t *testing.T) {
	v := testValidator()

	race := serviceRace(4)
	race.Horses[1].CareerWins = race.Horses[1].CareerStarts + 5

	requireProblem(t, v.ValidateRace(race), "more wins than starts")
}

func TestValidateEntryRejectsSpeedFigureOutOfRange(t *testing.T) {
	v := testValidator()

	race := serviceRace(4)
	race.Horses[2].SpeedFigures = []int{88, 150}

	requireProblem(t, v.ValidateRace(race), "speed figure out of range")
}

func TestValidateRaceRejectsBadSurface(t *testing.T) {
	v := testValidator()

	race := serviceRace(4)
	race.Header.Surface = "X"

	require.NotEmpty(t, v.ValidateRace(race))
}

func TestValidateRaceUniqueness(t *testing.T) {
	v := testValidator()
	race := serviceRace(6)

	other := serviceRace(8)
	other.Header.RaceNumber = race.Header.RaceNumber + 1

	assert.NoError(t, v.ValidateRaceUniqueness(race, []*models.ParsedRace{other}))

	dup := serviceRace(8)
	err := v.ValidateRaceUniqueness(race, []*models.ParsedRace{other, dup})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "already exists")
}

func requireProblem(t *testing.T, problems []string, substr string) {
	t.Helper()
	for _, p := range problems {
		if strings.Contains(p, substr) {
			return
		}
	}
	t.Fatalf("expected a problem containing %q, got %v", substr, problems)
}
