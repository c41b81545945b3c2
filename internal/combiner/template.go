package combiner

import (
	"fmt"
	"strings"

	"github.com/yourusername/trackside/internal/models"
)

// SelectTemplate picks exactly one wagering template for a race. The
// precedence order encodes business priority and must not be reordered:
// a wide-open field boxes the contenders no matter what the favorite
// signals say, and an edge is never fabricated from absent data.
func SelectTemplate(raceType models.RaceType, favStatus models.FavoriteStatus, vf *models.VulnerableFavoriteAnalysis, value *models.ValueHorseIdentification) (models.Template, string) {
	if raceType == models.RaceTypeWideOpen {
		return models.TemplateC, "Wide open field - box the contenders."
	}

	if favStatus == models.FavoriteVulnerable && IsRankingAffecting(vf) {
		return models.TemplateB, fmt.Sprintf(
			"Vulnerable favorite (%d flags): %s",
			len(vf.Reasons), strings.Join(vf.Reasons, "; "))
	}

	// A vulnerability too weak to demote the favorite is treated as solid
	// from here down.
	if value != nil && value.Identified {
		return models.TemplateA, fmt.Sprintf(
			"Solid favorite with value horse #%d: %s",
			value.ProgramNumber, value.Angle)
	}

	return models.TemplatePass, "Solid favorite, no identified value horse - no betting edge."
}
