package combiner

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/yourusername/trackside/internal/models"
)

func highTwoFlagVulnerable() *models.VulnerableFavoriteAnalysis {
	return &models.VulnerableFavoriteAnalysis{
		IsVulnerable: true,
		Reasons:      []string{"bounce candidate", "pace compromised"},
		Confidence:   models.BotConfidenceHigh,
	}
}

func identifiedValue() *models.ValueHorseIdentification {
	return &models.ValueHorseIdentification{
		Identified:    true,
		ProgramNumber: 6,
		Sources:       []models.SignalSource{models.SourceTripTrouble},
		Strength:      models.StrengthStrong,
		Angle:         "Trouble trips masked ability",
	}
}

func TestSelectTemplateWideOpenTakesPrecedence(t *testing.T) {
	// wide open wins even with a demotable favorite and a value horse
	template, reason := SelectTemplate(models.RaceTypeWideOpen, models.FavoriteVulnerable, highTwoFlagVulnerable(), identifiedValue())
	assert.Equal(t, models.TemplateC, template)
	assert.Contains(t, reason, "Wide open")
}

func TestSelectTemplateVulnerableFavorite(t *testing.T) {
	template, reason := SelectTemplate(models.RaceTypeCompetitive, models.FavoriteVulnerable, highTwoFlagVulnerable(), nil)
	assert.Equal(t, models.TemplateB, template)
	assert.Contains(t, reason, "Vulnerable favorite")
	assert.Contains(t, reason, "2 flags")
}

func TestSelectTemplateWeakVulnerabilityFallsThrough(t *testing.T) {
	oneFlag := &models.VulnerableFavoriteAnalysis{
		IsVulnerable: true,
		Reasons:      []string{"bounce candidate"},
		Confidence:   models.BotConfidenceHigh,
	}

	// with a value horse the weakly flagged favorite still plays Template A
	template, _ := SelectTemplate(models.RaceTypeCompetitive, models.FavoriteVulnerable, oneFlag, identifiedValue())
	assert.Equal(t, models.TemplateA, template)

	// without one there is no edge
	template, reason := SelectTemplate(models.RaceTypeCompetitive, models.FavoriteVulnerable, oneFlag, nil)
	assert.Equal(t, models.TemplatePass, template)
	assert.Contains(t, reason, "no betting edge")
}

func TestSelectTemplateSolidWithValueHorse(t *testing.T) {
	template, reason := SelectTemplate(models.RaceTypeCompetitive, models.FavoriteSolid, nil, identifiedValue())
	assert.Equal(t, models.TemplateA, template)
	assert.Contains(t, reason, "#6")
	assert.Contains(t, reason, "Trouble trips masked ability")
}

func TestSelectTemplateDefaultPass(t *testing.T) {
	template, _ := SelectTemplate(models.RaceTypeCompetitive, models.FavoriteSolid, nil, nil)
	assert.Equal(t, models.TemplatePass, template)

	notIdentified := &models.ValueHorseIdentification{Identified: false, Strength: models.StrengthNone}
	template, _ = SelectTemplate(models.RaceTypeChalk, models.FavoriteSolid, nil, notIdentified)
	assert.Equal(t, models.TemplatePass, template)
}

func TestSelectTemplateExclusivity(t *testing.T) {
	raceTypes := []models.RaceType{models.RaceTypeChalk, models.RaceTypeCompetitive, models.RaceTypeWideOpen}
	statuses := []models.FavoriteStatus{models.FavoriteSolid, models.FavoriteVulnerable}
	vulns := []*models.VulnerableFavoriteAnalysis{nil, highTwoFlagVulnerable()}
	values := []*models.ValueHorseIdentification{nil, identifiedValue()}

	valid := map[models.Template]bool{
		models.TemplateA: true, models.TemplateB: true,
		models.TemplateC: true, models.TemplatePass: true,
	}

	for _, rt := range raceTypes {
		for _, st := range statuses {
			for _, vf := range vulns {
				for _, v := range values {
					template, reason := SelectTemplate(rt, st, vf, v)
					assert.True(t, valid[template], "unexpected template %q", template)
					assert.NotEmpty(t, reason)
				}
			}
		}
	}
}
