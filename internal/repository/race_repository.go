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

const errScanRace = "failed to scan race: %w"

// PostgresRaceRepository implements RaceRepository for PostgreSQL
type PostgresRaceRepository struct {
	db *database.DB
}

// NewPostgresRaceRepository creates a new race repository
func NewPostgresRaceRepository(db *database.DB) RaceRepository {
	return &PostgresRaceRepository{db: db}
}

// Create inserts a race and its entries in one transaction
func (r *PostgresRaceRepository) Create(ctx context.Context, race *models.ParsedRace) error {
	tx, err := r.db.GetPool().Begin(ctx)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback(ctx)

	query := `
		INSERT INTO races (id, track_code, race_number, race_date, surface, distance_furlongs,
		                   race_class, purse_usd, conditions, sex_restriction, source_file)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11)
	`

	_, err = tx.Exec(ctx, query,
		race.ID, race.Header.TrackCode, race.Header.RaceNumber, race.Header.RaceDate,
		race.Header.Surface, race.Header.DistanceFurlongs, race.Header.RaceClass,
		race.Header.PurseUSD, race.Header.Conditions, race.Header.SexRestriction,
		race.SourceFile,
	)
	if err != nil {
		return fmt.Errorf("failed to create race: %w", err)
	}

	entryQuery := `
		INSERT INTO entries (race_id, program_number, post_position, horse_name,
		                     morning_line_text, morning_line_odds, running_style, sex, age,
		                     jockey, trainer, weight, career_starts, career_wins,
		                     track_starts, track_wins, speed_figures, days_since_last)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15, $16, $17, $18)
	`

	for i := range race.Horses {
		h := &race.Horses[i]
		_, err = tx.Exec(ctx, entryQuery,
			race.ID, h.ProgramNumber, h.PostPosition, h.HorseName,
			h.MorningLineText, h.MorningLineOdds, string(h.RunningStyle), h.Sex, h.Age,
			h.Jockey, h.Trainer, h.Weight, h.CareerStarts, h.CareerWins,
			h.TrackStarts, h.TrackWins, h.SpeedFigures, h.DaysSinceLast,
		)
		if err != nil {
			return fmt.Errorf("failed to create entry #%d: %w", h.ProgramNumber, err)
		}
	}

	if err := tx.Commit(ctx); err != nil {
		return fmt.Errorf("failed to commit race: %w", err)
	}

	return nil
}

// GetByID retrieves a race and its entries by ID
func (r *PostgresRaceRepository) GetByID(ctx context.Context, id uuid.UUID) (*models.ParsedRace, error) {
	query := `
		SELECT id, track_code, race_number, race_date, surface, distance_furlongs,
		       race_class, purse_usd, conditions, sex_restriction, source_file,
		       created_at, updated_at
		FROM races WHERE id = $1
	`

	race := &models.ParsedRace{}
	err := r.db.GetPool().QueryRow(ctx, query, id).Scan(
		&race.ID, &race.Header.TrackCode, &race.Header.RaceNumber, &race.Header.RaceDate,
		&race.Header.Surface, &race.Header.DistanceFurlongs, &race.Header.RaceClass,
		&race.Header.PurseUSD, &race.Header.Conditions, &race.Header.SexRestriction,
		&race.SourceFile, &race.CreatedAt, &race.UpdatedAt,
	)
	if err == pgx.ErrNoRows {
		return nil, models.ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get race: %w", err)
	}

	if err := r.loadEntries(ctx, race); err != nil {
		return nil, err
	}

	return race, nil
}

// GetByTrackAndDate retrieves a track's races for one card date,
// ordered by race number. Used for deduplication on re-ingestion.
func (r *PostgresRaceRepository) GetByTrackAndDate(ctx context.Context, trackCode string, date time.Time) ([]*models.ParsedRace, error) {
	query := `
		SELECT id, track_code, race_number, race_date, surface, distance_furlongs,
		       race_class, purse_usd, conditions, sex_restriction, source_file,
		       created_at, updated_at
		FROM races
		WHERE track_code = $1 AND race_date = $2
		ORDER BY race_number ASC
	`

	return r.queryRaces(ctx, query, trackCode, date)
}

// GetByDate retrieves all races on a card date across tracks
func (r *PostgresRaceRepository) GetByDate(ctx context.Context, date time.Time) ([]*models.ParsedRace, error) {
	query := `
		SELECT id, track_code, race_number, race_date, surface, distance_furlongs,
		       race_class, purse_usd, conditions, sex_restriction, source_file,
		       created_at, updated_at
		FROM races
		WHERE race_date = $1
		ORDER BY track_code ASC, race_number ASC
	`

	return r.queryRaces(ctx, query, date)
}

// Delete removes a race and, through cascade, its entries
func (r *PostgresRaceRepository) Delete(ctx context.Context, id uuid.UUID) error {
	result, err := r.db.GetPool().Exec(ctx, "DELETE FROM races WHERE id = $1", id)
	if err != nil {
		return fmt.Errorf("failed to delete race: %w", err)
	}
	if result.RowsAffected() == 0 {
		return models.ErrNotFound
	}
	return nil
}

func (r *PostgresRaceRepository) queryRaces(ctx context.Context, query string, args ...interface{}) ([]*models.ParsedRace, error) {
	rows, err := r.db.GetPool().Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to query races: %w", err)
	}
	defer rows.Close()

	var races []*models.ParsedRace
	for rows.Next() {
		race := &models.ParsedRace{}
		err := rows.Scan(
			&race.ID, &race.Header.TrackCode, &race.Header.RaceNumber, &race.Header.RaceDate,
			&race.Header.Surface, &race.Header.DistanceFurlongs, &race.Header.RaceClass,
			&race.Header.PurseUSD, &race.Header.Conditions, &race.Header.SexRestriction,
			&race.SourceFile, &race.CreatedAt, &race.UpdatedAt,
		)
		if err != nil {
			return nil, fmt.Errorf(errScanRace, err)
		}
		races = append(races, race)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}

	for _, race := range races {
		if err := r.loadEntries(ctx, race); err != nil {
			return nil, err
		}
	}

	return races, nil
}

func (r *PostgresRaceRepository) loadEntries(ctx context.Context, race *models.ParsedRace) error {
	query := `
		SELECT program_number, post_position, horse_name, morning_line_text,
		       morning_line_odds, running_style, sex, age, jockey, trainer, weight,
		       career_starts, career_wins, track_starts, track_wins, speed_figures,
		       days_since_last
		FROM entries
		WHERE race_id = $1
		ORDER BY program_number ASC
	`

	rows, err := r.db.GetPool().Query(ctx, query, race.ID)
	if err != nil {
		return fmt.Errorf("failed to query entries: %w", err)
	}
	defer rows.Close()

	race.Horses = nil
	for rows.Next() {
		var h models.HorseEntry
		var style string
		err := rows.Scan(
			&h.ProgramNumber, &h.PostPosition, &h.HorseName, &h.MorningLineText,
			&h.MorningLineOdds, &style, &h.Sex, &h.Age, &h.Jockey, &h.Trainer, &h.Weight,
			&h.CareerStarts, &h.CareerWins, &h.TrackStarts, &h.TrackWins, &h.SpeedFigures,
			&h.DaysSinceLast,
		)
		if err != nil {
			return fmt.Errorf("failed to scan entry: %w", err)
		}
		h.RunningStyle = models.RunningStyle(style)
		race.Horses = append(race.Horses, h)
	}

	return rows.Err()
}
