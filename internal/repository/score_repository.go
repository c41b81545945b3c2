package repository

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/google/uuid"
	"github.com/yourusername/trackside/internal/database"
	"github.com/yourusername/trackside/internal/models"
)

// PostgresScoreRepository implements ScoreRepository for PostgreSQL
type PostgresScoreRepository struct {
	db *database.DB
}

// NewPostgresScoreRepository creates a new score repository
func NewPostgresScoreRepository(db *database.DB) ScoreRepository {
	return &PostgresScoreRepository{db: db}
}

// SaveScores replaces the stored scores for a race. Re-scoring a race
// after a card update overwrites the previous run.
func (r *PostgresScoreRepository) SaveScores(ctx context.Context, raceID uuid.UUID, scores []models.HorseScore) error {
	tx, err := r.db.GetPool().Begin(ctx)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback(ctx)

	if _, err := tx.Exec(ctx, "DELETE FROM scores WHERE race_id = $1", raceID); err != nil {
		return fmt.Errorf("failed to clear previous scores: %w", err)
	}

	query := `
		INSERT INTO scores (race_id, program_number, horse_name, rank, final_score,
		                    confidence_tier, breakdown, reasoning)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
	`

	for i := range scores {
		s := &scores[i]
		breakdown, err := json.Marshal(s.Breakdown)
		if err != nil {
			return fmt.Errorf("failed to marshal breakdown: %w", err)
		}

		_, err = tx.Exec(ctx, query,
			raceID, s.ProgramNumber, s.HorseName, s.Rank, s.FinalScore,
			string(s.ConfidenceTier), breakdown, s.Reasoning,
		)
		if err != nil {
			return fmt.Errorf("failed to save score for #%d: %w", s.ProgramNumber, err)
		}
	}

	if err := tx.Commit(ctx); err != nil {
		return fmt.Errorf("failed to commit scores: %w", err)
	}

	return nil
}

// GetByRaceID retrieves the stored scores for a race ordered by rank
func (r *PostgresScoreRepository) GetByRaceID(ctx context.Context, raceID uuid.UUID) ([]models.HorseScore, error) {
	query := `
		SELECT program_number, horse_name, rank, final_score, confidence_tier,
		       breakdown, reasoning
		FROM scores
		WHERE race_id = $1
		ORDER BY rank ASC
	`

	rows, err := r.db.GetPool().Query(ctx, query, raceID)
	if err != nil {
		return nil, fmt.Errorf("failed to query scores: %w", err)
	}
	defer rows.Close()

	var scores []models.HorseScore
	for rows.Next() {
		var s models.HorseScore
		var tier string
		var breakdown []byte
		err := rows.Scan(
			&s.ProgramNumber, &s.HorseName, &s.Rank, &s.FinalScore, &tier,
			&breakdown, &s.Reasoning,
		)
		if err != nil {
			return nil, fmt.Errorf("failed to scan score: %w", err)
		}
		s.ConfidenceTier = models.ConfidenceTier(tier)
		if err := json.Unmarshal(breakdown, &s.Breakdown); err != nil {
			return nil, fmt.Errorf("failed to unmarshal breakdown: %w", err)
		}
		scores = append(scores, s)
	}

	return scores, rows.Err()
}
