// Package parser reads DRF-format race card files into structured races.
// The format is a comma-separated export with a fixed field layout; one
// line per entry, races grouped by track, date and race number.
//
// The parser never fails a whole card over one bad value: malformed
// numerics clamp to the safest neutral value and parsing continues.
package parser

import (
	"encoding/csv"
	"fmt"
	"io"
	"os"
	"sort"
	"strconv"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"

	"github.com/yourusername/trackside/internal/models"
)

// Field offsets into a DRF record. The layout is positional; these are
// the only fields this system consumes.
const (
	fieldTrackCode      = 0
	fieldRaceDate       = 1
	fieldRaceNumber     = 2
	fieldPostPosition   = 3
	fieldDistanceYards  = 5
	fieldSurface        = 6
	fieldRaceClass      = 8
	fieldPurse          = 11
	fieldSexRestriction = 12
	fieldTrainer        = 27
	fieldJockey         = 32
	fieldProgramNumber  = 42
	fieldMorningLine    = 43
	fieldHorseName      = 44
	fieldSex            = 48
	fieldAge            = 49
	fieldWeight         = 50
	fieldCareerStarts   = 96
	fieldCareerWins     = 97
	fieldTrackStarts    = 101
	fieldTrackWins      = 102
	fieldRunningStyle   = 209
	fieldDaysSinceLast  = 223

	// last-10 speed figures occupy a contiguous block
	fieldSpeedFigStart = 845
	speedFigCount      = 10

	// minimum record width to accept a line at all
	minRecordFields = fieldDaysSinceLast + 1
)

const yardsPerFurlong = 220.0

// Parser reads DRF card files
type Parser struct {
	logger *logrus.Logger
}

// NewParser creates a DRF parser
func NewParser(logger *logrus.Logger) *Parser {
	return &Parser{logger: logger}
}

// ParseFile reads one DRF card file and returns its races in card order.
func (p *Parser) ParseFile(path string) ([]*models.ParsedRace, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open card file: %w", err)
	}
	defer f.Close()

	races, err := p.Parse(f)
	if err != nil {
		return nil, err
	}
	for _, race := range races {
		race.SourceFile = path
	}
	return races, nil
}

// Parse reads DRF records from r and groups entries into races.
func (p *Parser) Parse(r io.Reader) ([]*models.ParsedRace, error) {
	reader := csv.NewReader(r)
	reader.FieldsPerRecord = -1
	reader.LazyQuotes = true

	grouped := make(map[string]*models.ParsedRace)
	var order []string

	lineNo := 0
	for {
		record, err := reader.Read()
		if err == io.EOF {
			break
		}
		lineNo++
		if err != nil {
			p.warn(lineNo, "unreadable record", err)
			continue
		}
		if len(record) < minRecordFields {
			p.warn(lineNo, fmt.Sprintf("record too short (%d fields)", len(record)), nil)
			continue
		}

		header := p.parseHeader(record)
		entry := p.parseEntry(record, lineNo)
		if entry == nil {
			continue
		}

		key := fmt.Sprintf("%s|%s|%d", header.TrackCode, header.RaceDate.Format("20060102"), header.RaceNumber)
		race, ok := grouped[key]
		if !ok {
			race = &models.ParsedRace{
				ID:        uuid.New(),
				Header:    header,
				CreatedAt: time.Now(),
				UpdatedAt: time.Now(),
			}
			grouped[key] = race
			order = append(order, key)
		}
		race.Horses = append(race.Horses, *entry)
	}

	races := make([]*models.ParsedRace, 0, len(order))
	for _, key := range order {
		race := grouped[key]
		sort.SliceStable(race.Horses, func(i, j int) bool {
			return race.Horses[i].ProgramNumber < race.Horses[j].ProgramNumber
		})
		races = append(races, race)
	}
	if len(races) == 0 {
		return nil, models.ErrEmptyCard
	}
	return races, nil
}

func (p *Parser) parseHeader(record []string) models.RaceHeader {
	raceDate, err := time.Parse("20060102", strings.TrimSpace(record[fieldRaceDate]))
	if err != nil {
		raceDate = time.Time{}
	}

	yards := clampInt(atoi(record[fieldDistanceYards]), 0, 10000)
	return models.RaceHeader{
		TrackCode:        strings.ToUpper(strings.TrimSpace(record[fieldTrackCode])),
		RaceNumber:       clampInt(atoi(record[fieldRaceNumber]), 1, 19),
		RaceDate:         raceDate,
		Surface:          normalizeSurface(record[fieldSurface]),
		DistanceFurlongs: float64(yards) / yardsPerFurlong,
		RaceClass:        strings.TrimSpace(record[fieldRaceClass]),
		PurseUSD:         clampInt(atoi(record[fieldPurse]), 0, 100000000),
		SexRestriction:   strings.TrimSpace(record[fieldSexRestriction]),
	}
}

func (p *Parser) parseEntry(record []string, lineNo int) *models.HorseEntry {
	name := strings.TrimSpace(record[fieldHorseName])
	if name == "" {
		p.warn(lineNo, "entry missing horse name", models.ErrHorseNameRequired)
		return nil
	}

	mlText := strings.TrimSpace(record[fieldMorningLine])
	mlOdds, err := ParseMorningLine(mlText)
	if err != nil {
		p.warn(lineNo, fmt.Sprintf("unparsable morning line %q", mlText), err)
		mlOdds = 0
	}

	starts := clampInt(atoi(record[fieldCareerStarts]), 0, 500)
	wins := clampInt(atoi(record[fieldCareerWins]), 0, starts)
	trackStarts := clampInt(atoi(record[fieldTrackStarts]), 0, starts)
	trackWins := clampInt(atoi(record[fieldTrackWins]), 0, trackStarts)

	entry := &models.HorseEntry{
		ProgramNumber:   clampInt(atoi(record[fieldProgramNumber]), 1, 24),
		PostPosition:    clampInt(atoi(record[fieldPostPosition]), 1, 24),
		HorseName:       name,
		MorningLineText: mlText,
		MorningLineOdds: mlOdds,
		RunningStyle:    normalizeStyle(record[fieldRunningStyle]),
		Sex:             strings.TrimSpace(record[fieldSex]),
		Age:             clampInt(atoi(record[fieldAge]), 0, 24),
		Jockey:          strings.TrimSpace(record[fieldJockey]),
		Trainer:         strings.TrimSpace(record[fieldTrainer]),
		Weight:          clampInt(atoi(record[fieldWeight]), 0, 200),
		CareerStarts:    starts,
		CareerWins:      wins,
		TrackStarts:     trackStarts,
		TrackWins:       trackWins,
	}

	if days := atoi(record[fieldDaysSinceLast]); days > 0 {
		entry.DaysSinceLast = &days
	}

	for i := 0; i < speedFigCount; i++ {
		idx := fieldSpeedFigStart + i
		if idx >= len(record) {
			break
		}
		if fig := atoi(record[idx]); fig > 0 {
			entry.SpeedFigures = append(entry.SpeedFigures, clampInt(fig, 0, 130))
		}
	}

	return entry
}

func (p *Parser) warn(lineNo int, msg string, err error) {
	if p.logger == nil {
		return
	}
	entry := p.logger.WithField("line", lineNo)
	if err != nil {
		entry = entry.WithError(err)
	}
	entry.Warn(msg)
}

// normalizeSurface maps DRF surface codes to D (dirt), T (turf), A (all
// weather); anything unknown defaults to dirt.
func normalizeSurface(raw string) string {
	switch strings.ToUpper(strings.TrimSpace(raw)) {
	case "T", "TURF":
		return "T"
	case "A", "AW", "ALL WEATHER":
		return "A"
	default:
		return "D"
	}
}

func normalizeStyle(raw string) models.RunningStyle {
	switch strings.ToUpper(strings.TrimSpace(raw)) {
	case "E":
		return models.StyleEarly
	case "EP", "E/P":
		return models.StyleEarlyPresser
	case "P":
		return models.StylePresser
	case "S":
		return models.StyleSustained
	default:
		return ""
	}
}

func atoi(raw string) int {
	n, err := strconv.Atoi(strings.TrimSpace(raw))
	if err != nil {
		return 0
	}
	return n
}

func clampInt(v, lo, hi int) int {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}
