package parser

import (
	"strconv"
	"strings"
	"testing"

	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/yourusername/trackside/internal/models"
)

// buildRecord fills a DRF-width record with the given positional values.
func buildRecord(values map[int]string) string {
	fields := make([]string, fieldSpeedFigStart+speedFigCount)
	for idx, v := range values {
		fields[idx] = v
	}
	return strings.Join(fields, ",")
}

func entryRecord(raceNumber int, program int, name string, extra map[int]string) string {
	values := map[int]string{
		fieldTrackCode:     "SAR",
		fieldRaceDate:      "20260815",
		fieldRaceNumber:    "5",
		fieldPostPosition:  "3",
		fieldDistanceYards: "1320", // six furlongs
		fieldSurface:       "D",
		fieldRaceClass:     "ALW",
		fieldPurse:         "80000",
		fieldProgramNumber: "1",
		fieldMorningLine:   "5-2",
		fieldHorseName:     "Bold Venture",
		fieldSex:           "C",
		fieldAge:           "4",
		fieldWeight:        "122",
		fieldCareerStarts:  "12",
		fieldCareerWins:    "4",
		fieldTrackStarts:   "5",
		fieldTrackWins:     "2",
		fieldRunningStyle:  "EP",
		fieldDaysSinceLast: "21",
	}
	values[fieldRaceNumber] = strconv.Itoa(raceNumber)
	values[fieldProgramNumber] = strconv.Itoa(program)
	values[fieldHorseName] = name
	for idx, v := range extra {
		values[idx] = v
	}
	return buildRecord(values)
}

func testParser() *Parser {
	logger := logrus.New()
	logger.SetLevel(logrus.ErrorLevel)
	return NewParser(logger)
}

func TestParseGroupsEntriesIntoRaces(t *testing.T) {
	input := strings.Join([]string{
		entryRecord(5, 1, "Bold Venture", nil),
		entryRecord(5, 2, "Gallant Fox", nil),
		entryRecord(6, 1, "War Admiral", map[int]string{fieldSurface: "T"}),
	}, "\n")

	races, err := testParser().Parse(strings.NewReader(input))
	require.NoError(t, err)
	require.Len(t, races, 2)

	first := races[0]
	assert.Equal(t, "SAR", first.Header.TrackCode)
	assert.Equal(t, 5, first.Header.RaceNumber)
	assert.Equal(t, "D", first.Header.Surface)
	assert.InDelta(t, 6.0, first.Header.DistanceFurlongs, 0.001)
	require.Len(t, first.Horses, 2)
	assert.Equal(t, "Bold Venture", first.Horses[0].HorseName)
	assert.Equal(t, 1, first.Horses[0].ProgramNumber)
	assert.InDelta(t, 2.5, first.Horses[0].MorningLineOdds, 0.0001)
	assert.Equal(t, models.StyleEarlyPresser, first.Horses[0].RunningStyle)

	second := races[1]
	assert.Equal(t, 6, second.Header.RaceNumber)
	assert.Equal(t, "T", second.Header.Surface)
}

func TestParseClampsMalformedNumerics(t *testing.T) {
	input := entryRecord(5, 1, "Bold Venture", map[int]string{
		fieldCareerStarts: "10",
		fieldCareerWins:   "15", // wins > starts
		fieldPurse:        "-500",
		fieldAge:          "not-a-number",
	})

	races, err := testParser().Parse(strings.NewReader(input))
	require.NoError(t, err)
	require.Len(t, races, 1)

	horse := races[0].Horses[0]
	assert.Equal(t, 10, horse.CareerStarts)
	assert.Equal(t, 10, horse.CareerWins, "wins clamp to starts")
	assert.Equal(t, 0, races[0].Header.PurseUSD)
	assert.Equal(t, 0, horse.Age)
}

func TestParseSkipsEntriesWithoutNames(t *testing.T) {
	input := strings.Join([]string{
		entryRecord(5, 1, "Bold Venture", nil),
		entryRecord(5, 2, "", nil),
	}, "\n")

	races, err := testParser().Parse(strings.NewReader(input))
	require.NoError(t, err)
	require.Len(t, races[0].Horses, 1)
}

func TestParseBadOddsDefaultToZero(t *testing.T) {
	input := entryRecord(5, 1, "Bold Venture", map[int]string{fieldMorningLine: "garbage"})

	races, err := testParser().Parse(strings.NewReader(input))
	require.NoError(t, err)
	assert.Zero(t, races[0].Horses[0].MorningLineOdds)
	assert.Equal(t, "garbage", races[0].Horses[0].MorningLineText)
}

func TestParseEmptyInput(t *testing.T) {
	_, err := testParser().Parse(strings.NewReader(""))
	assert.ErrorIs(t, err, models.ErrEmptyCard)
}

func TestParseMorningLine(t *testing.T) {
	tests := []struct {
		text     string
		expected float64
	}{
		{"5-2", 2.5},
		{"7/2", 3.5},
		{"9-5", 1.8},
		{"12-1", 12},
		{"EVEN", 1},
		{"3.5", 3.5},
	}
	for _, tt := range tests {
		t.Run(tt.text, func(t *testing.T) {
			got, err := ParseMorningLine(tt.text)
			require.NoError(t, err)
			assert.InDelta(t, tt.expected, got, 0.0001)
		})
	}

	for _, bad := range []string{"", "abc", "5-0", "-5-2"} {
		_, err := ParseMorningLine(bad)
		assert.Error(t, err, "expected error for %q", bad)
	}
}
