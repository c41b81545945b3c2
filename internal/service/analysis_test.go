package service

import (
	"context"
	"io"
	"testing"

	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/yourusername/trackside/internal/combiner"
	"github.com/yourusername/trackside/internal/models"
	"github.com/yourusername/trackside/internal/scoring"
)

type stubAnalyzer struct {
	results *models.MultiBotResults
	calls   int
}

func (s *stubAnalyzer) Analyze(_ context.Context, _ *models.ParsedRace, _ *models.RaceScoringResult) *models.MultiBotResults {
	s.calls++
	if s.results == nil {
		return &models.MultiBotResults{}
	}
	return s.results
}

func quietLogger() *logrus.Logger {
	log := logrus.New()
	log.SetOutput(io.Discard)
	return log
}

func newAnalysisService(bots BotAnalyzer) *AnalysisService {
	log := quietLogger()
	return NewAnalysisService(scoring.NewEngine(log), bots, combiner.NewCombiner(log), nil, log)
}

func TestAnalyzeRaceProducesRecommendation(t *testing.T) {
	svc := newAnalysisService(nil)

	race := serviceRace(8)
	result, err := svc.AnalyzeRace(context.Background(), race)

	require.NoError(t, err)
	require.NotNil(t, result)
	assert.Equal(t, race.ID, result.RaceID)
	assert.Greater(t, result.TopPick, 0)
	assert.Len(t, result.HorseInsights, race.FieldSize())
	assert.NotEmpty(t, result.Ticket.Template)
}

func TestAnalyzeRaceRunsBotsWhenConfigured(t *testing.T) {
	bots := &stubAnalyzer{}
	svc := newAnalysisService(bots)

	_, err := svc.AnalyzeRace(context.Background(), serviceRace(8))

	require.NoError(t, err)
	assert.Equal(t, 1, bots.calls)
}

func TestAnalyzeRaceNilRace(t *testing.T) {
	svc := newAnalysisService(nil)

	_, err := svc.AnalyzeRace(context.Background(), nil)
	assert.Error(t, err)
}

func TestAnalyzeRaceVulnerableFavoriteSignalFlowsThrough(t *testing.T) {
	race := serviceRace(8)

	signals := &models.MultiBotResults{
		VulnerableFavorite: &models.VulnerableFavoriteAnalysis{
			IsVulnerable: true,
			Confidence:   models.BotConfidenceHigh,
			Reasons:      []string{"pace meltdown likely", "class rise off a layoff"},
		},
	}
	svc := newAnalysisService(&stubAnalyzer{results: signals})

	result, err := svc.AnalyzeRace(context.Background(), race)

	require.NoError(t, err)
	assert.True(t, result.VulnerableFavorite)
}
