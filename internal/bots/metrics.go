// Package bots provides Prometheus metrics for bot operations.
package bots

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	// BotCallsTotal tracks Gemini calls per bot and outcome
	BotCallsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "trackside_bot_calls_total",
			Help: "Total number of analysis bot calls",
		},
		[]string{"bot", "status"}, // status: success, failure, skipped
	)

	// BotCallLatency tracks bot call latency
	BotCallLatency = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "trackside_bot_call_latency_seconds",
			Help:    "Analysis bot call latency in seconds",
			Buckets: prometheus.DefBuckets,
		},
		[]string{"bot"},
	)

	// BotParseFailuresTotal tracks unparseable bot responses
	BotParseFailuresTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "trackside_bot_parse_failures_total",
			Help: "Total number of bot responses that failed validation",
		},
		[]string{"bot"},
	)

	// BotCacheHitRatio tracks analysis cache hit ratio
	BotCacheHitRatio = promauto.NewGauge(
		prometheus.GaugeOpts{
			Name: "trackside_bot_cache_hit_ratio",
			Help: "Analysis cache hit ratio",
		},
	)

	// BotCircuitOpenTotal tracks circuit breaker trips
	BotCircuitOpenTotal = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "trackside_bot_circuit_open_total",
			Help: "Total number of times the bot circuit breaker opened",
		},
	)
)
