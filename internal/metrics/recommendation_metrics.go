// Package metrics provides Prometheus metrics for wagering recommendations.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
)

var (
	// RecommendationsByTemplate tracks recommendations by wagering template
	RecommendationsByTemplate = prometheus.NewCounterVec(prometheus.CounterOpts{
		Namespace: "trackside",
		Name:      "recommendations_total",
		Help:      "Total number of recommendations by template",
	}, []string{"template", "race_type"})

	// RecommendationConfidence tracks the confidence score distribution
	RecommendationConfidence = prometheus.NewHistogram(prometheus.HistogramOpts{
		Namespace: "trackside",
		Name:      "recommendation_confidence_score",
		Help:      "Distribution of recommendation confidence scores",
		Buckets:   []float64{10, 20, 30, 40, 50, 60, 70, 80, 90, 100},
	})

	// TicketCost tracks recommended ticket costs in dollars
	TicketCost = prometheus.NewHistogram(prometheus.HistogramOpts{
		Namespace: "trackside",
		Name:      "ticket_cost_dollars",
		Help:      "Distribution of recommended ticket costs",
		Buckets:   []float64{5, 10, 20, 30, 50, 75, 100, 150},
	})

	// PassesTotal tracks races passed with no bettable edge
	PassesTotal = prometheus.NewCounter(prometheus.CounterOpts{
		Namespace: "trackside",
		Name:      "passes_total",
		Help:      "Total number of races passed with no recommendation",
	})
)

// RecordRecommendation records an issued recommendation.
func RecordRecommendation(template, raceType string, confidenceScore int, ticketCost float64) {
	RecommendationsByTemplate.WithLabelValues(template, raceType).Inc()
	RecommendationConfidence.Observe(float64(confidenceScore))
	TicketCost.Observe(ticketCost)
}

// RecordPass records a race passed with no wager.
func RecordPass() {
	PassesTotal.Inc()
}
