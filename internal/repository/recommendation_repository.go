package repository

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/yourusername/trackside/internal/database"
	"github.com/yourusername/trackside/internal/models"
)

const errScanRecommendation = "failed to scan recommendation: %w"

// PostgresRecommendationRepository implements RecommendationRepository for PostgreSQL
type PostgresRecommendationRepository struct {
	db *database.DB
}

// NewPostgresRecommendationRepository creates a new recommendation repository
func NewPostgresRecommendationRepository(db *database.DB) RecommendationRepository {
	return &PostgresRecommendationRepository{db: db}
}

// Create inserts a recommendation, replacing any earlier one for the
// same race so re-analysis always leaves a single current verdict
func (r *PostgresRecommendationRepository) Create(ctx context.Context, rec *models.Recommendation) error {
	query := `
		INSERT INTO recommendations (id, race_id, template, top_pick, confidence_score, bettable, payload)
		VALUES ($1, $2, $3, $4, $5, $6, $7)
		ON CONFLICT (race_id) DO UPDATE SET
			id = EXCLUDED.id,
			template = EXCLUDED.template,
			top_pick = EXCLUDED.top_pick,
			confidence_score = EXCLUDED.confidence_score,
			bettable = EXCLUDED.bettable,
			payload = EXCLUDED.payload,
			created_at = NOW()
	`

	_, err := r.db.GetPool().Exec(ctx, query,
		rec.ID, rec.RaceID, string(rec.Template), rec.TopPick,
		rec.ConfidenceScore, rec.Bettable, rec.Payload,
	)
	if err != nil {
		return fmt.Errorf("failed to create recommendation: %w", err)
	}

	return nil
}

// GetByRaceID retrieves the recommendation for a race
func (r *PostgresRecommendationRepository) GetByRaceID(ctx context.Context, raceID uuid.UUID) (*models.Recommendation, error) {
	query := `
		SELECT id, race_id, template, top_pick, confidence_score, bettable, payload, created_at
		FROM recommendations WHERE race_id = $1
	`

	rec := &models.Recommendation{}
	var template string
	err := r.db.GetPool().QueryRow(ctx, query, raceID).Scan(
		&rec.ID, &rec.RaceID, &template, &rec.TopPick,
		&rec.ConfidenceScore, &rec.Bettable, &rec.Payload, &rec.CreatedAt,
	)
	if err == pgx.ErrNoRows {
		return nil, models.ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get recommendation: %w", err)
	}
	rec.Template = models.Template(template)

	return rec, nil
}

// GetRecent retrieves the most recent recommendations
func (r *PostgresRecommendationRepository) GetRecent(ctx context.Context, limit int) ([]*models.Recommendation, error) {
	query := `
		SELECT id, race_id, template, top_pick, confidence_score, bettable, payload, created_at
		FROM recommendations
		ORDER BY created_at DESC
		LIMIT $1
	`

	return r.queryRecommendations(ctx, query, limit)
}

// GetByTemplate retrieves recommendations for one template in a time range
func (r *PostgresRecommendationRepository) GetByTemplate(ctx context.Context, template models.Template, start, end time.Time) ([]*models.Recommendation, error) {
	query := `
		SELECT id, race_id, template, top_pick, confidence_score, bettable, payload, created_at
		FROM recommendations
		WHERE template = $1 AND created_at >= $2 AND created_at <= $3
		ORDER BY created_at ASC
	`

	return r.queryRecommendations(ctx, query, string(template), start, end)
}

func (r *PostgresRecommendationRepository) queryRecommendations(ctx context.Context, query string, args ...interface{}) ([]*models.Recommendation, error) {
	rows, err := r.db.GetPool().Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to query recommendations: %w", err)
	}
	defer rows.Close()

	var recs []*models.Recommendation
	for rows.Next() {
		rec := &models.Recommendation{}
		var template string
		err := rows.Scan(
			&rec.ID, &rec.RaceID, &template, &rec.TopPick,
			&rec.ConfidenceScore, &rec.Bettable, &rec.Payload, &rec.CreatedAt,
		)
		if err != nil {
			return nil, fmt.Errorf(errScanRecommendation, err)
		}
		rec.Template = models.Template(template)
		recs = append(recs, rec)
	}

	return recs, rows.Err()
}
