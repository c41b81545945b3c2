package bots

import (
	"context"
	"errors"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/yourusername/trackside/internal/models"
)

// stubGenerator routes prompts to canned responses by bot persona
type stubGenerator struct {
	mu        sync.Mutex
	calls     int
	responses map[BotName]string
	errs      map[BotName]error
}

func (g *stubGenerator) Generate(ctx context.Context, prompt string) (string, error) {
	g.mu.Lock()
	g.calls++
	g.mu.Unlock()

	name := botForPrompt(prompt)
	if err, ok := g.errs[name]; ok {
		return "", err
	}
	return g.responses[name], nil
}

func botForPrompt(prompt string) BotName {
	switch {
	case strings.Contains(prompt, "trip handicapper"):
		return BotTripTrouble
	case strings.Contains(prompt, "pace analyst"):
		return BotPace
	case strings.Contains(prompt, "vulnerable favorites"):
		return BotVulnerableFavorite
	case strings.Contains(prompt, "ticket strategist"):
		return BotFieldSpread
	default:
		return ""
	}
}

func goodResponses() map[BotName]string {
	return map[BotName]string{
		BotTripTrouble:        `{"flags":[{"program_number":2,"issue":"wide both turns","masked_ability":true}]}`,
		BotPace:               `{"pace_projection":"MODERATE","advantaged_styles":["P"],"disadvantaged_styles":[]}`,
		BotVulnerableFavorite: `{"is_vulnerable":false,"reasons":[],"confidence":"LOW"}`,
		BotFieldSpread:        `{"field_type":"COMPETITIVE","top_tier_count":3,"recommended_spread":"MEDIUM"}`,
	}
}

func orchestratorRace(n int) *models.ParsedRace {
	race := &models.ParsedRace{
		ID: uuid.New(),
		Header: models.RaceHeader{
			TrackCode:        "AQU",
			RaceNumber:       4,
			Surface:          "D",
			DistanceFurlongs: 6.0,
			RaceClass:        "CLM25000",
		},
	}
	for i := 1; i <= n; i++ {
		race.Horses = append(race.Horses, models.HorseEntry{
			ProgramNumber:   i,
			PostPosition:    i,
			HorseName:       "Runner",
			MorningLineText: "5-1",
			MorningLineOdds: 5.0,
			RunningStyle:    models.StylePresser,
		})
	}
	return race
}

func orchestratorScoring(race *models.ParsedRace) *models.RaceScoringResult {
	result := &models.RaceScoringResult{}
	for i := range race.Horses {
		result.Scores = append(result.Scores, models.HorseScore{
			ProgramNumber: race.Horses[i].ProgramNumber,
			HorseName:     race.Horses[i].HorseName,
			Rank:          i + 1,
			FinalScore:    float64(100 - i*10),
		})
	}
	return result
}

func testOrchestrator(gen Generator, cache *AnalysisCache) *Orchestrator {
	logger := logrus.New()
	logger.SetLevel(logrus.FatalLevel)
	breaker := NewCircuitBreaker(CircuitBreakerConfig{MaxFailureCount: 100}, logger)
	return NewOrchestrator(gen, cache, breaker, logger)
}

// TestAnalyzeAllBotsSucceed tests a full four-bot sweep
func TestAnalyzeAllBotsSucceed(t *testing.T) {
	gen := &stubGenerator{responses: goodResponses()}
	race := orchestratorRace(8)
	o := testOrchestrator(gen, nil)

	results := o.Analyze(context.Background(), race, orchestratorScoring(race))

	require.NotNil(t, results)
	assert.Equal(t, 4, results.CompletedCount())
	require.NotNil(t, results.TripTrouble)
	assert.Equal(t, 2, results.TripTrouble.Flags[0].ProgramNumber)
	assert.Equal(t, models.PaceModerate, results.Pace.PaceProjection)
	assert.False(t, results.VulnerableFavorite.IsVulnerable)
	assert.Equal(t, models.FieldCompetitive, results.FieldSpread.FieldType)
}

// TestAnalyzeToleratesBotFailure tests partial results on bot errors
func TestAnalyzeToleratesBotFailure(t *testing.T) {
	gen := &stubGenerator{
		responses: goodResponses(),
		errs:      map[BotName]error{BotPace: errors.New("rate limited")},
	}
	race := orchestratorRace(8)
	o := testOrchestrator(gen, nil)

	results := o.Analyze(context.Background(), race, orchestratorScoring(race))

	require.NotNil(t, results)
	assert.Equal(t, 3, results.CompletedCount())
	assert.Nil(t, results.Pace)
	assert.NotNil(t, results.TripTrouble)
}

// TestAnalyzeToleratesGarbageResponse tests partial results on parse failures
func TestAnalyzeToleratesGarbageResponse(t *testing.T) {
	responses := goodResponses()
	responses[BotVulnerableFavorite] = "the favorite looks fine to me"
	gen := &stubGenerator{responses: responses}
	race := orchestratorRace(8)
	o := testOrchestrator(gen, nil)

	results := o.Analyze(context.Background(), race, orchestratorScoring(race))

	assert.Nil(t, results.VulnerableFavorite)
	assert.Equal(t, 3, results.CompletedCount())
}

// TestAnalyzeCachesFullSweeps tests that complete results are cached
func TestAnalyzeCachesFullSweeps(t *testing.T) {
	gen := &stubGenerator{responses: goodResponses()}
	cache := NewAnalysisCache(time.Hour, 100)
	defer cache.Clear()
	race := orchestratorRace(8)
	scoring := orchestratorScoring(race)
	o := testOrchestrator(gen, cache)

	first := o.Analyze(context.Background(), race, scoring)
	require.Equal(t, 4, first.CompletedCount())
	assert.Equal(t, 4, gen.calls)

	second := o.Analyze(context.Background(), race, scoring)
	assert.Equal(t, 4, second.CompletedCount())
	assert.Equal(t, 4, gen.calls, "cached sweep must not call the model again")
}

// TestAnalyzeDoesNotCachePartialSweeps tests retry of failed bots
func TestAnalyzeDoesNotCachePartialSweeps(t *testing.T) {
	gen := &stubGenerator{
		responses: goodResponses(),
		errs:      map[BotName]error{BotFieldSpread: errors.New("unavailable")},
	}
	cache := NewAnalysisCache(time.Hour, 100)
	defer cache.Clear()
	race := orchestratorRace(8)
	scoring := orchestratorScoring(race)
	o := testOrchestrator(gen, cache)

	first := o.Analyze(context.Background(), race, scoring)
	assert.Equal(t, 3, first.CompletedCount())

	delete(gen.errs, BotFieldSpread)
	second := o.Analyze(context.Background(), race, scoring)
	assert.Equal(t, 4, second.CompletedCount())
}

// TestAnalyzeSkipsWhenCircuitOpen tests circuit breaker integration
func TestAnalyzeSkipsWhenCircuitOpen(t *testing.T) {
	gen := &stubGenerator{responses: goodResponses()}
	logger := logrus.New()
	logger.SetLevel(logrus.FatalLevel)
	breaker := NewCircuitBreaker(CircuitBreakerConfig{
		MaxFailureCount:   1,
		FailureTimeWindow: time.Minute,
		CooldownPeriod:    time.Hour,
	}, logger)
	breaker.RecordFailure()
	require.Equal(t, CircuitOpen, breaker.State())

	o := NewOrchestrator(gen, nil, breaker, logger)
	race := orchestratorRace(8)

	results := o.Analyze(context.Background(), race, orchestratorScoring(race))

	assert.Equal(t, 0, results.CompletedCount())
	assert.Equal(t, 0, gen.calls)
}

// TestCacheInvalidate tests per-race invalidation
func TestCacheInvalidate(t *testing.T) {
	cache := NewAnalysisCache(time.Hour, 100)
	defer cache.Clear()
	ctx := context.Background()

	raceA := uuid.New()
	raceB := uuid.New()
	cache.Set(ctx, CacheKey{RaceID: raceA, Bot: "all"}, &models.MultiBotResults{})
	cache.Set(ctx, CacheKey{RaceID: raceB, Bot: "all"}, &models.MultiBotResults{})

	cache.Invalidate(ctx, raceA)

	assert.Nil(t, cache.Get(ctx, CacheKey{RaceID: raceA, Bot: "all"}))
	assert.NotNil(t, cache.Get(ctx, CacheKey{RaceID: raceB, Bot: "all"}))
}
