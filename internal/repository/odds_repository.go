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

const errScanOdds = "failed to scan odds snapshot: %w"

// PostgresOddsRepository implements OddsRepository for PostgreSQL
type PostgresOddsRepository struct {
	db *database.DB
}

// NewPostgresOddsRepository creates a new odds repository
func NewPostgresOddsRepository(db *database.DB) OddsRepository {
	return &PostgresOddsRepository{db: db}
}

// Insert stores a single odds snapshot
func (r *PostgresOddsRepository) Insert(ctx context.Context, snapshot *models.OddsSnapshot) error {
	query := `
		INSERT INTO odds_snapshots (id, race_id, program_number, decimal_odds, source, taken_at)
		VALUES ($1, $2, $3, $4, $5, $6)
	`

	_, err := r.db.GetPool().Exec(ctx, query,
		snapshot.ID, snapshot.RaceID, snapshot.ProgramNumber,
		snapshot.DecimalOdds, snapshot.Source, snapshot.TakenAt,
	)
	if err != nil {
		return fmt.Errorf("failed to insert odds snapshot: %w", err)
	}

	return nil
}

// InsertBatch stores a batch of odds snapshots from one polling pass
func (r *PostgresOddsRepository) InsertBatch(ctx context.Context, snapshots []*models.OddsSnapshot) error {
	if len(snapshots) == 0 {
		return nil
	}

	batch := &pgx.Batch{}
	query := `
		INSERT INTO odds_snapshots (id, race_id, program_number, decimal_odds, source, taken_at)
		VALUES ($1, $2, $3, $4, $5, $6)
	`
	for _, s := range snapshots {
		batch.Queue(query, s.ID, s.RaceID, s.ProgramNumber, s.DecimalOdds, s.Source, s.TakenAt)
	}

	results := r.db.GetPool().SendBatch(ctx, batch)
	defer results.Close()

	for range snapshots {
		if _, err := results.Exec(); err != nil {
			return fmt.Errorf("failed to insert odds batch: %w", err)
		}
	}

	return nil
}

// GetLatest retrieves the most recent snapshot for one horse
func (r *PostgresOddsRepository) GetLatest(ctx context.Context, raceID uuid.UUID, programNumber int) (*models.OddsSnapshot, error) {
	query := `
		SELECT id, race_id, program_number, decimal_odds, source, taken_at
		FROM odds_snapshots
		WHERE race_id = $1 AND program_number = $2
		ORDER BY taken_at DESC
		LIMIT 1
	`

	snapshot := &models.OddsSnapshot{}
	err := r.db.GetPool().QueryRow(ctx, query, raceID, programNumber).Scan(
		&snapshot.ID, &snapshot.RaceID, &snapshot.ProgramNumber,
		&snapshot.DecimalOdds, &snapshot.Source, &snapshot.TakenAt,
	)
	if err == pgx.ErrNoRows {
		return nil, models.ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get latest odds: %w", err)
	}

	return snapshot, nil
}

// GetByRaceID retrieves snapshots for a race within a time range
func (r *PostgresOddsRepository) GetByRaceID(ctx context.Context, raceID uuid.UUID, start, end time.Time) ([]*models.OddsSnapshot, error) {
	query := `
		SELECT id, race_id, program_number, decimal_odds, source, taken_at
		FROM odds_snapshots
		WHERE race_id = $1 AND taken_at >= $2 AND taken_at <= $3
		ORDER BY taken_at ASC
	`

	rows, err := r.db.GetPool().Query(ctx, query, raceID, start, end)
	if err != nil {
		return nil, fmt.Errorf("failed to query odds snapshots: %w", err)
	}
	defer rows.Close()

	var snapshots []*models.OddsSnapshot
	for rows.Next() {
		s := &models.OddsSnapshot{}
		err := rows.Scan(&s.ID, &s.RaceID, &s.ProgramNumber, &s.DecimalOdds, &s.Source, &s.TakenAt)
		if err != nil {
			return nil, fmt.Errorf(errScanOdds, err)
		}
		snapshots = append(snapshots, s)
	}

	return snapshots, rows.Err()
}
