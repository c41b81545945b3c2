package service

import (
	"context"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/yourusername/trackside/internal/models"
)

func TestWriteRaceRendersRecommendation(t *testing.T) {
	race := serviceRace(8)
	svc := newAnalysisService(nil)
	result, err := svc.AnalyzeRace(context.Background(), race)
	require.NoError(t, err)

	report := NewReportWriter().WriteRace(race, result)

	assert.Contains(t, report, "SAR Race 5")
	assert.Contains(t, report, "6.0f dirt")
	assert.Contains(t, report, "Horses:")
	for _, horse := range race.Horses {
		assert.Contains(t, report, horse.HorseName)
	}
	assert.Contains(t, report, "Recommendation:")
}

func TestWriteRacePassRace(t *testing.T) {
	race := serviceRace(4)
	result := &models.CombinedResult{
		RaceID:   race.ID,
		RaceType: models.RaceTypeCompetitive,
		Ticket: models.TicketConstruction{
			Template:       models.TemplatePass,
			TemplateReason: "no separation in the field",
		},
	}

	report := NewReportWriter().WriteRace(race, result)

	assert.Contains(t, report, "PASS")
	assert.Contains(t, report, "no separation in the field")
	assert.NotContains(t, report, "Exacta")
}

func TestWriteCardJoinsRacesInOrder(t *testing.T) {
	first := serviceRace(6)
	second := serviceRace(6)
	second.Header.RaceNumber = 6

	svc := newAnalysisService(nil)
	r1, err := svc.AnalyzeRace(context.Background(), first)
	require.NoError(t, err)
	r2, err := svc.AnalyzeRace(context.Background(), second)
	require.NoError(t, err)

	report := NewReportWriter().WriteCard(
		[]*models.ParsedRace{first, second},
		[]*models.CombinedResult{r1, r2},
	)

	assert.Less(t, strings.Index(report, "Race 5"), strings.Index(report, "Race 6"))
}
