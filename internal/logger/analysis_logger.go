// Package logger provides analysis-specific logging.
package logger

import (
	"github.com/sirupsen/logrus"
)

// AnalysisLogger provides dedicated logging for card analysis operations.
type AnalysisLogger struct {
	*logrus.Entry
}

// NewAnalysisLogger creates a new analysis logger.
func NewAnalysisLogger(baseLogger *logrus.Logger) *AnalysisLogger {
	return &AnalysisLogger{
		Entry: baseLogger.WithField("component", "analysis"),
	}
}

// LogCardParsed logs the outcome of parsing a card file.
func (al *AnalysisLogger) LogCardParsed(sourceFile string, racesParsed, horsesParsed, recordsSkipped int, durationMs float64) {
	al.WithFields(logrus.Fields{
		"source_file":       sourceFile,
		"races_parsed":      racesParsed,
		"horses_parsed":     horsesParsed,
		"records_skipped":   recordsSkipped,
		"parse_duration_ms": durationMs,
	}).Info("Card file parsed")
}

// LogRaceScored logs a scoring engine run for one race.
func (al *AnalysisLogger) LogRaceScored(raceID, trackCode string, raceNumber, fieldSize int, topScore, scoreSpread float64) {
	al.WithFields(logrus.Fields{
		"race_id":      raceID,
		"track_code":   trackCode,
		"race_number":  raceNumber,
		"field_size":   fieldSize,
		"top_score":    topScore,
		"score_spread": scoreSpread,
	}).Info("Race scored")
}

// LogBotSweep logs the outcome of a multi-bot analysis pass.
func (al *AnalysisLogger) LogBotSweep(raceID string, botsCompleted, botsFailed int, durationMs float64) {
	al.WithFields(logrus.Fields{
		"race_id":           raceID,
		"bots_completed":    botsCompleted,
		"bots_failed":       botsFailed,
		"sweep_duration_ms": durationMs,
	}).Info("Bot sweep completed")
}

// LogRecommendation logs the combined recommendation for a race.
func (al *AnalysisLogger) LogRecommendation(raceID, template, raceType string, confidenceScore int, tier string, totalCost float64) {
	al.WithFields(logrus.Fields{
		"race_id":          raceID,
		"template":         template,
		"race_type":        raceType,
		"confidence_score": confidenceScore,
		"confidence_tier":  tier,
		"ticket_cost":      totalCost,
	}).Info("Recommendation produced")
}
