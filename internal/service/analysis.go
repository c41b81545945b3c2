package service

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"

	"github.com/yourusername/trackside/internal/combiner"
	"github.com/yourusername/trackside/internal/logger"
	"github.com/yourusername/trackside/internal/metrics"
	"github.com/yourusername/trackside/internal/models"
	"github.com/yourusername/trackside/internal/repository"
	"github.com/yourusername/trackside/internal/scoring"
)

// BotAnalyzer runs the heuristic bots for a race. Satisfied by
// bots.Orchestrator; a nil analyzer means bots are disabled and every
// race is combined from the deterministic score alone.
type BotAnalyzer interface {
	Analyze(ctx context.Context, race *models.ParsedRace, scoring *models.RaceScoringResult) *models.MultiBotResults
}

// AnalysisService runs the full per-race pipeline: deterministic
// scoring, bot sweep, signal combination, and persistence.
type AnalysisService struct {
	engine      *scoring.Engine
	bots        BotAnalyzer
	combiner    *combiner.Combiner
	repos       *repository.Repositories
	analysisLog *logger.AnalysisLogger
	auditLog    *logger.AuditLogger
	log         *logrus.Logger
}

// NewAnalysisService creates an analysis service. repos may be nil for
// report-only runs; bots may be nil when the bot feature is disabled.
func NewAnalysisService(
	engine *scoring.Engine,
	botAnalyzer BotAnalyzer,
	comb *combiner.Combiner,
	repos *repository.Repositories,
	log *logrus.Logger,
) *AnalysisService {
	return &AnalysisService{
		engine:      engine,
		bots:        botAnalyzer,
		combiner:    comb,
		repos:       repos,
		analysisLog: logger.NewAnalysisLogger(log),
		auditLog:    logger.NewAuditLogger(log),
		log:         log,
	}
}

// AnalyzeRace runs the complete analysis for one parsed race
func (s *AnalysisService) AnalyzeRace(ctx context.Context, race *models.ParsedRace) (*models.CombinedResult, error) {
	if race == nil {
		return nil, fmt.Errorf("race is required")
	}

	start := time.Now()

	scores := s.engine.Score(race)
	metrics.RecordRaceScored()
	s.analysisLog.LogRaceScored(race.ID.String(), race.Header.TrackCode, race.Header.RaceNumber,
		race.FieldSize(), scores.Analysis.TopScore, scores.Analysis.ScoreSpread)

	var signals *models.MultiBotResults
	if s.bots != nil {
		sweepStart := time.Now()
		signals = s.bots.Analyze(ctx, race, scores)
		completed := signals.CompletedCount()
		s.analysisLog.LogBotSweep(race.ID.String(), completed, 4-completed,
			float64(time.Since(sweepStart).Milliseconds()))
	}

	result := s.combiner.Combine(race, scores, signals)

	s.recordOutcome(race, result)

	if s.repos != nil {
		if err := s.persist(ctx, race, scores, result); err != nil {
			metrics.RecordPersistFailure()
			return result, fmt.Errorf("analysis persisted partially: %w", err)
		}
	}

	metrics.RecordAnalysisDuration(time.Since(start).Seconds())
	return result, nil
}

func (s *AnalysisService) recordOutcome(race *models.ParsedRace, result *models.CombinedResult) {
	template := result.Ticket.Template
	cost, _ := result.Ticket.TotalCost().Float64()

	s.analysisLog.LogRecommendation(race.ID.String(), string(template), string(result.RaceType),
		result.ConfidenceScore, string(result.Confidence), cost)

	if template == models.TemplatePass {
		metrics.RecordPass()
		s.auditLog.LogPassDecision(race.ID.String(), result.Ticket.TemplateReason)
		return
	}

	metrics.RecordRecommendation(string(template), string(result.RaceType), result.ConfidenceScore, cost)
}

func (s *AnalysisService) persist(ctx context.Context, race *models.ParsedRace, scores *models.RaceScoringResult, result *models.CombinedResult) error {
	if err := s.repos.Score.SaveScores(ctx, race.ID, scores.Scores); err != nil {
		return fmt.Errorf("failed to save scores: %w", err)
	}

	payload, err := json.Marshal(result)
	if err != nil {
		return fmt.Errorf("failed to marshal recommendation payload: %w", err)
	}

	rec := &models.Recommendation{
		ID:              uuid.New(),
		RaceID:          race.ID,
		Template:        result.Ticket.Template,
		TopPick:         result.TopPick,
		ConfidenceScore: result.ConfidenceScore,
		Bettable:        result.BettableRace,
		Payload:         payload,
	}

	if err := s.repos.Recommendation.Create(ctx, rec); err != nil {
		return fmt.Errorf("failed to save recommendation: %w", err)
	}

	cost, _ := result.Ticket.TotalCost().Float64()
	s.auditLog.LogRecommendationIssued(rec.ID.String(), race.ID.String(),
		string(rec.Template), rec.ConfidenceScore, string(result.Confidence), cost, time.Now())

	return nil
}
