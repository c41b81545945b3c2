package service

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/yourusername/trackside/internal/parser"
)

// drfLine builds one positional DRF record with the given field values.
// Offsets mirror the card layout the parser consumes.
func drfLine(raceNumber, program int, name string) string {
	fields := make([]string, 860)
	fields[0] = "SAR"                         // track
	fields[1] = "20260815"                    // date
	fields[2] = fmt.Sprintf("%d", raceNumber) // race number
	fields[3] = fmt.Sprintf("%d", program)    // post
	fields[5] = "1320"                        // six furlongs in yards
	fields[6] = "D"                           // surface
	fields[8] = "ALW"                         // class
	fields[11] = "80000"                      // purse
	fields[42] = fmt.Sprintf("%d", program)   // program number
	fields[43] = "5-2"                        // morning line
	fields[44] = name                         // horse name
	fields[49] = "4"                          // age
	fields[50] = "120"                        // weight
	fields[96] = "12"                         // career starts
	fields[97] = "3"                          // career wins
	fields[101] = "4"                         // track starts
	fields[102] = "1"                         // track wins
	fields[209] = "P"                         // running style
	fields[223] = "35"                        // days since last
	fields[845], fields[846], fields[847] = "85", "82", "80"
	return strings.Join(fields, ",")
}

func writeCardFile(t *testing.T, name string, lines []string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	require.NoError(t, os.WriteFile(path, []byte(strings.Join(lines, "\n")+"\n"), 0o644))
	return path
}

func newIngestionService() *IngestionService {
	log := quietLogger()
	validator := testValidator()
	analysis := newAnalysisService(nil)
	return NewIngestionService(parser.NewParser(log), validator, analysis, nil, nil, log)
}

func TestIngestFileAnalyzesEveryRace(t *testing.T) {
	var lines []string
	for race := 1; race <= 2; race++ {
		for program := 1; program <= 7; program++ {
			lines = append(lines, drfLine(race, program, fmt.Sprintf("Runner %d-%d", race, program)))
		}
	}
	path := writeCardFile(t, "card.csv", lines)

	svc := newIngestionService()
	results, m, err := svc.IngestFile(context.Background(), path)

	require.NoError(t, err)
	require.Len(t, results, 2)
	assert.Equal(t, 2, m.TotalRaces)
	assert.Equal(t, 2, m.SuccessfulRaces)
	assert.Equal(t, 14, m.TotalHorses)
	assert.Zero(t, m.Errors)
}

func TestIngestFileSkipsInvalidRace(t *testing.T) {
	lines := []string{drfLine(1, 1, "Lonely Runner")}
	for program := 1; program <= 6; program++ {
		lines = append(lines, drfLine(2, program, fmt.Sprintf("Runner %d", program)))
	}
	path := writeCardFile(t, "card.csv", lines)

	svc := newIngestionService()
	results, m, err := svc.IngestFile(context.Background(), path)

	require.NoError(t, err)
	assert.Len(t, results, 1)
	assert.Equal(t, 1, m.ValidationErrors)
	assert.Equal(t, 1, m.SuccessfulRaces)
}

func TestIngestFileMissingFile(t *testing.T) {
	svc := newIngestionService()

	_, _, err := svc.IngestFile(context.Background(), filepath.Join(t.TempDir(), "missing.csv"))
	assert.Error(t, err)
}

func TestIngestDirectorySkipsNonCardFiles(t *testing.T) {
	dir := t.TempDir()

	var lines []string
	for program := 1; program <= 6; program++ {
		lines = append(lines, drfLine(1, program, fmt.Sprintf("Runner %d", program)))
	}
	require.NoError(t, os.WriteFile(filepath.Join(dir, "card.csv"),
		[]byte(strings.Join(lines, "\n")+"\n"), 0o644))
	require.NoError(t, os.WriteFile(filepath.Join(dir, "notes.txt"), []byte("scratch sheet"), 0o644))

	svc := newIngestionService()
	m, err := svc.IngestDirectory(context.Background(), dir)

	require.NoError(t, err)
	assert.Equal(t, 1, m.TotalRaces)
	assert.Equal(t, 1, m.SuccessfulRaces)
}

func TestIngestDirectoryMissingDir(t *testing.T) {
	svc := newIngestionService()

	_, err := svc.IngestDirectory(context.Background(), filepath.Join(t.TempDir(), "nope"))
	assert.Error(t, err)
}
