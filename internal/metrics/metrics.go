// Package metrics provides centralized Prometheus metrics registry for the handicapping pipeline.
package metrics

import (
	"net/http"
	"sync"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Global registry instance
var (
	registry *prometheus.Registry
	once     sync.Once
)

// Counter metrics
var (
	CardsIngestedTotal = prometheus.NewCounter(prometheus.CounterOpts{
		Namespace: "trackside",
		Name:      "cards_ingested_total",
		Help:      "Total number of card files ingested",
	})
	RacesParsedTotal = prometheus.NewCounter(prometheus.CounterOpts{
		Namespace: "trackside",
		Name:      "races_parsed_total",
		Help:      "Total number of races parsed from card files",
	})
	RacesScoredTotal = prometheus.NewCounter(prometheus.CounterOpts{
		Namespace: "trackside",
		Name:      "races_scored_total",
		Help:      "Total number of races run through the scoring engine",
	})
	ParseFailuresTotal = prometheus.NewCounter(prometheus.CounterOpts{
		Namespace: "trackside",
		Name:      "parse_failures_total",
		Help:      "Total number of card files that failed to parse",
	})
	PersistFailuresTotal = prometheus.NewCounter(prometheus.CounterOpts{
		Namespace: "trackside",
		Name:      "persist_failures_total",
		Help:      "Total number of database persistence failures",
	})
)

// Gauge metrics
var (
	ActiveRaces = prometheus.NewGauge(prometheus.GaugeOpts{
		Namespace: "trackside",
		Name:      "active_races",
		Help:      "Number of races on today's analyzed cards",
	})
	LastCardSync = prometheus.NewGauge(prometheus.GaugeOpts{
		Namespace: "trackside",
		Name:      "last_card_sync_timestamp",
		Help:      "Unix timestamp of the last successful card sync",
	})
	OddsFeedConnected = prometheus.NewGauge(prometheus.GaugeOpts{
		Namespace: "trackside",
		Name:      "odds_feed_connected",
		Help:      "Whether the live odds stream is connected (1) or not (0)",
	})
)

// Histogram metrics
var (
	CardParseDuration = prometheus.NewHistogram(prometheus.HistogramOpts{
		Namespace: "trackside",
		Name:      "card_parse_duration_seconds",
		Help:      "Duration of card file parsing in seconds",
		Buckets:   prometheus.DefBuckets,
	})
	RaceAnalysisDuration = prometheus.NewHistogram(prometheus.HistogramOpts{
		Namespace: "trackside",
		Name:      "race_analysis_duration_seconds",
		Help:      "Duration of full race analysis in seconds",
		Buckets:   []float64{0.1, 0.5, 1, 2, 5, 10, 30, 60},
	})
)

// InitRegistry initializes the global Prometheus registry.
func InitRegistry() *prometheus.Registry {
	once.Do(func() {
		registry = prometheus.NewRegistry()

		registry.MustRegister(CardsIngestedTotal)
		registry.MustRegister(RacesParsedTotal)
		registry.MustRegister(RacesScoredTotal)
		registry.MustRegister(ParseFailuresTotal)
		registry.MustRegister(PersistFailuresTotal)

		registry.MustRegister(ActiveRaces)
		registry.MustRegister(LastCardSync)
		registry.MustRegister(OddsFeedConnected)

		registry.MustRegister(CardParseDuration)
		registry.MustRegister(RaceAnalysisDuration)

		registry.MustRegister(RecommendationsByTemplate)
		registry.MustRegister(RecommendationConfidence)
		registry.MustRegister(TicketCost)
		registry.MustRegister(PassesTotal)
	})
	return registry
}

// GetRegistry returns the global Prometheus registry.
func GetRegistry() *prometheus.Registry {
	if registry == nil {
		return InitRegistry()
	}
	return registry
}

// Handler returns the Prometheus HTTP handler.
func Handler() http.Handler {
	return promhttp.HandlerFor(GetRegistry(), promhttp.HandlerOpts{})
}

// RecordCardIngested records a card ingestion event.
func RecordCardIngested(races int, durationSeconds float64) {
	CardsIngestedTotal.Inc()
	RacesParsedTotal.Add(float64(races))
	CardParseDuration.Observe(durationSeconds)
}

// RecordParseFailure records a card parse failure.
func RecordParseFailure() {
	ParseFailuresTotal.Inc()
}

// RecordRaceScored records a scoring engine run.
func RecordRaceScored() {
	RacesScoredTotal.Inc()
}

// RecordPersistFailure records a database persistence failure.
func RecordPersistFailure() {
	PersistFailuresTotal.Inc()
}

// RecordAnalysisDuration records the duration of a full race analysis.
func RecordAnalysisDuration(durationSeconds float64) {
	RaceAnalysisDuration.Observe(durationSeconds)
}

// UpdateActiveRaces updates the active races gauge.
func UpdateActiveRaces(count float64) {
	ActiveRaces.Set(count)
}

// UpdateLastCardSync updates the last card sync timestamp gauge.
func UpdateLastCardSync(unixSeconds float64) {
	LastCardSync.Set(unixSeconds)
}

// UpdateOddsFeedConnected updates the odds feed connection gauge.
func UpdateOddsFeedConnected(connected bool) {
	if connected {
		OddsFeedConnected.Set(1)
	} else {
		OddsFeedConnected.Set(0)
	}
}
