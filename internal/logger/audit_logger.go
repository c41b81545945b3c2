// Package logger provides audit logging.
package logger

import (
	"time"

	"github.com/sirupsen/logrus"
)

// AuditLogger provides dedicated audit trail logging.
type AuditLogger struct {
	*logrus.Entry
}

// NewAuditLogger creates a new audit logger.
func NewAuditLogger(baseLogger *logrus.Logger) *AuditLogger {
	return &AuditLogger{
		Entry: baseLogger.WithField("component", "audit"),
	}
}

// LogRecommendationIssued records an issued wagering recommendation.
func (al *AuditLogger) LogRecommendationIssued(recommendationID, raceID, template string, confidenceScore int, tier string, ticketCost float64, timestamp time.Time) {
	al.WithFields(logrus.Fields{
		"recommendation_id": recommendationID,
		"race_id":           raceID,
		"template":          template,
		"confidence_score":  confidenceScore,
		"confidence_tier":   tier,
		"ticket_cost":       ticketCost,
		"timestamp":         timestamp.Unix(),
	}).Info("Recommendation issued")
}

// LogTemplateOverride records a signal overriding the default template.
func (al *AuditLogger) LogTemplateOverride(raceID, fromTemplate, toTemplate, reason string) {
	al.WithFields(logrus.Fields{
		"race_id":       raceID,
		"from_template": fromTemplate,
		"to_template":   toTemplate,
		"reason":        reason,
	}).Info("Template override recorded")
}

// LogPassDecision records a race passed with no bettable edge.
func (al *AuditLogger) LogPassDecision(raceID, reason string) {
	al.WithFields(logrus.Fields{
		"race_id": raceID,
		"reason":  reason,
	}).Info("Race passed")
}

// LogCircuitBreakerEvent logs circuit breaker events.
func (al *AuditLogger) LogCircuitBreakerEvent(eventType, reason string, metricsSnapshot map[string]interface{}, actionTaken string) {
	al.WithFields(logrus.Fields{
		"event_type":       eventType,
		"reason":           reason,
		"metrics_snapshot": metricsSnapshot,
		"action_taken":     actionTaken,
	}).Warn("Circuit breaker event recorded")
}
