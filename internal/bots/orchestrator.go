package bots

import (
	"context"
	"sync"
	"time"

	"github.com/sirupsen/logrus"

	"github.com/yourusername/trackside/internal/models"
)

// Orchestrator fans a race out to the four analysis bots and collects
// their results. Bot failures never fail the race: a bot that errors,
// times out, or returns garbage contributes a nil field and downstream
// consumers treat that as no evidence.
type Orchestrator struct {
	generator Generator
	cache     *AnalysisCache
	breaker   *CircuitBreaker
	logger    *logrus.Logger
}

// NewOrchestrator creates a bot orchestrator
func NewOrchestrator(generator Generator, cache *AnalysisCache, breaker *CircuitBreaker, logger *logrus.Logger) *Orchestrator {
	return &Orchestrator{
		generator: generator,
		cache:     cache,
		breaker:   breaker,
		logger:    logger,
	}
}

// Analyze runs all four bots concurrently for a race. The returned
// results are never nil; individual fields are nil for bots that did
// not produce a valid analysis.
func (o *Orchestrator) Analyze(ctx context.Context, race *models.ParsedRace, scoring *models.RaceScoringResult) *models.MultiBotResults {
	if o.cache != nil {
		if cached := o.cache.Get(ctx, CacheKey{RaceID: race.ID, Bot: "all"}); cached != nil {
			o.logger.WithField("race_id", race.ID).Debug("Bot analysis cache hit")
			return cached
		}
	}

	results := &models.MultiBotResults{}
	var mu sync.Mutex
	var wg sync.WaitGroup

	for _, name := range AllBots {
		wg.Add(1)
		go func(name BotName) {
			defer wg.Done()
			o.runBot(ctx, name, race, scoring, results, &mu)
		}(name)
	}
	wg.Wait()

	completed := results.CompletedCount()
	o.logger.WithFields(logrus.Fields{
		"race_id":   race.ID,
		"completed": completed,
	}).Info("Bot analysis finished")

	// Cache only full sweeps so a transient failure gets retried on the
	// next pass over the card.
	if o.cache != nil && completed == len(AllBots) {
		o.cache.Set(ctx, CacheKey{RaceID: race.ID, Bot: "all"}, results)
	}

	return results
}

func (o *Orchestrator) runBot(ctx context.Context, name BotName, race *models.ParsedRace, scoring *models.RaceScoringResult, results *models.MultiBotResults, mu *sync.Mutex) {
	log := o.logger.WithFields(logrus.Fields{"bot": string(name), "race_id": race.ID})

	if o.breaker != nil && !o.breaker.Allow() {
		BotCallsTotal.WithLabelValues(string(name), "skipped").Inc()
		log.Warn("Bot call skipped, circuit open")
		return
	}

	prompt := PromptFor(name, race, scoring)
	start := time.Now()
	raw, err := o.generator.Generate(ctx, prompt)
	BotCallLatency.WithLabelValues(string(name)).Observe(time.Since(start).Seconds())
	if err != nil {
		if o.breaker != nil {
			o.breaker.RecordFailure()
		}
		BotCallsTotal.WithLabelValues(string(name), "failure").Inc()
		log.WithError(err).Warn("Bot call failed")
		return
	}
	if o.breaker != nil {
		o.breaker.RecordSuccess()
	}

	fieldSize := race.FieldSize()
	mu.Lock()
	defer mu.Unlock()

	switch name {
	case BotTripTrouble:
		analysis, perr := ParseTripTrouble(raw, fieldSize)
		if perr != nil {
			o.recordParseFailure(name, log, perr)
			return
		}
		results.TripTrouble = analysis
	case BotPace:
		analysis, perr := ParsePace(raw, fieldSize)
		if perr != nil {
			o.recordParseFailure(name, log, perr)
			return
		}
		results.Pace = analysis
	case BotVulnerableFavorite:
		analysis, perr := ParseVulnerableFavorite(raw)
		if perr != nil {
			o.recordParseFailure(name, log, perr)
			return
		}
		results.VulnerableFavorite = analysis
	case BotFieldSpread:
		analysis, perr := ParseFieldSpread(raw, fieldSize)
		if perr != nil {
			o.recordParseFailure(name, log, perr)
			return
		}
		results.FieldSpread = analysis
	}
	BotCallsTotal.WithLabelValues(string(name), "success").Inc()
}

func (o *Orchestrator) recordParseFailure(name BotName, log *logrus.Entry, err error) {
	BotParseFailuresTotal.WithLabelValues(string(name)).Inc()
	BotCallsTotal.WithLabelValues(string(name), "failure").Inc()
	log.WithError(err).Warn("Bot response rejected")
}
