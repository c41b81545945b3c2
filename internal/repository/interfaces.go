package repository

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/yourusername/trackside/internal/models"
)

// RaceRepository defines the interface for parsed race data access
type RaceRepository interface {
	Create(ctx context.Context, race *models.ParsedRace) error
	GetByID(ctx context.Context, id uuid.UUID) (*models.ParsedRace, error)
	GetByTrackAndDate(ctx context.Context, trackCode string, date time.Time) ([]*models.ParsedRace, error)
	GetByDate(ctx context.Context, date time.Time) ([]*models.ParsedRace, error)
	Delete(ctx context.Context, id uuid.UUID) error
}

// ScoreRepository defines the interface for scoring result data access
type ScoreRepository interface {
	SaveScores(ctx context.Context, raceID uuid.UUID, scores []models.HorseScore) error
	GetByRaceID(ctx context.Context, raceID uuid.UUID) ([]models.HorseScore, error)
}

// RecommendationRepository defines the interface for recommendation data access
type RecommendationRepository interface {
	Create(ctx context.Context, rec *models.Recommendation) error
	GetByRaceID(ctx context.Context, raceID uuid.UUID) (*models.Recommendation, error)
	GetRecent(ctx context.Context, limit int) ([]*models.Recommendation, error)
	GetByTemplate(ctx context.Context, template models.Template, start, end time.Time) ([]*models.Recommendation, error)
}

// OddsRepository defines the interface for live odds data access
type OddsRepository interface {
	Insert(ctx context.Context, snapshot *models.OddsSnapshot) error
	InsertBatch(ctx context.Context, snapshots []*models.OddsSnapshot) error
	GetLatest(ctx context.Context, raceID uuid.UUID, programNumber int) (*models.OddsSnapshot, error)
	GetByRaceID(ctx context.Context, raceID uuid.UUID, start, end time.Time) ([]*models.OddsSnapshot, error)
}
