package repository

import (
	"fmt"

	"github.com/yourusername/trackside/internal/database"
)

// Repositories holds all repository implementations
type Repositories struct {
	Race           RaceRepository
	Score          ScoreRepository
	Recommendation RecommendationRepository
	Odds           OddsRepository
}

// NewRepositories creates and returns all repository implementations
func NewRepositories(db *database.DB) (*Repositories, error) {
	if db == nil {
		return nil, fmt.Errorf("database connection is required")
	}

	return &Repositories{
		Race:           NewPostgresRaceRepository(db),
		Score:          NewPostgresScoreRepository(db),
		Recommendation: NewPostgresRecommendationRepository(db),
		Odds:           NewPostgresOddsRepository(db),
	}, nil
}
