package repository

import (
	"testing"
)

const skipIntegrationMsg = "Integration test - requires database setup"

// TestRaceRepositoryRoundTrip tests race creation and retrieval
func TestRaceRepositoryRoundTrip(t *testing.T) {
	// db := database.SetupTestDB(t)
	// defer database.TeardownTestDB(t, db)

	// repos, err := NewRepositories(db)
	// if err != nil {
	// 	t.Fatalf("failed to create repositories: %v", err)
	// }

	// race := &models.ParsedRace{
	// 	ID: uuid.New(),
	// 	Header: models.RaceHeader{
	// 		TrackCode:        "AQU",
	// 		RaceNumber:       4,
	// 		RaceDate:         time.Now().Truncate(24 * time.Hour),
	// 		Surface:          "D",
	// 		DistanceFurlongs: 6.0,
	// 		RaceClass:        "CLM25000",
	// 	},
	// 	Horses: []models.HorseEntry{
	// 		{ProgramNumber: 1, PostPosition: 1, HorseName: "First Call", MorningLineOdds: 2.5},
	// 	},
	// 	SourceFile: "cards/AQU0830.drf",
	// }

	// ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	// defer cancel()

	// if err := repos.Race.Create(ctx, race); err != nil {
	// 	t.Fatalf("failed to create race: %v", err)
	// }

	// retrieved, err := repos.Race.GetByID(ctx, race.ID)
	// if err != nil {
	// 	t.Fatalf("failed to retrieve race: %v", err)
	// }

	// if retrieved.FieldSize() != 1 {
	// 	t.Errorf("expected 1 entry, got %d", retrieved.FieldSize())
	// }
	t.Skip(skipIntegrationMsg)
}

// TestRecommendationRepositoryUpsert tests recommendation replacement
func TestRecommendationRepositoryUpsert(t *testing.T) {
	// Re-analysis of a race must leave one current recommendation:
	// insert twice for the same race ID and verify GetByRaceID returns
	// the second template.
	t.Skip(skipIntegrationMsg)
}

// TestOddsRepositoryBatch tests batch odds insertion
func TestOddsRepositoryBatch(t *testing.T) {
	// Insert a polling pass worth of snapshots via InsertBatch and read
	// them back with GetByRaceID over the pass window.
	t.Skip(skipIntegrationMsg)
}
