package combiner

import (
	"fmt"
	"strings"

	"github.com/yourusername/trackside/internal/models"
)

// Narrative marker vocabulary. Tests and downstream report rendering
// assert on these literal strings; change them only together with every
// consumer.
const (
	markerTemplateA     = "TEMPLATE A"
	markerTemplateB     = "TEMPLATE B"
	markerTemplateC     = "TEMPLATE C"
	markerTemplatePass  = "TEMPLATE PASS"
	markerConfirm       = "CONFIRM"
	markerOverride      = "OVERRIDE"
	markerMinimalTier   = "MINIMAL TIER"
	markerVulnerableFav = "Vulnerable Favorite"
	markerDemotePrefix  = "Demote #"
	markerKeyPrefix     = "Key #"
)

// ComposeNarrative renders the template-keyed race narrative. The per-
// template skeleton is fixed; only horse identities and flag summaries
// are substituted in.
func ComposeNarrative(template models.Template, scoring *models.RaceScoringResult, vf *models.VulnerableFavoriteAnalysis, value models.ValueHorseIdentification) string {
	first := rankedProgram(scoring, 1)
	second := rankedProgram(scoring, 2)

	switch template {
	case models.TemplateA:
		return fmt.Sprintf("%s | %s: #%d holds the top figure. Value horse #%d keyed underneath: %s",
			markerTemplateA, markerConfirm, first, value.ProgramNumber, value.Angle)

	case models.TemplateB:
		summary := ""
		if vf != nil {
			summary = strings.Join(vf.Reasons, "; ")
		}
		return fmt.Sprintf("%s | %s: %s%d to the place slot. %s%d on top. Flags: %s",
			markerTemplateB, markerVulnerableFav, markerDemotePrefix, first, markerKeyPrefix, second, summary)

	case models.TemplateC:
		contenders := 4
		if scoring != nil && scoring.FieldSize() < contenders {
			contenders = scoring.FieldSize()
		}
		return fmt.Sprintf("%s | %s: Wide open field - box the top %d contenders.",
			markerTemplateC, markerOverride, contenders)

	default:
		return fmt.Sprintf("%s | %s: Solid favorite, no identified value horse - no wager recommended.",
			markerTemplatePass, markerMinimalTier)
	}
}

// rankedProgram resolves the program number at a rank, or 0
func rankedProgram(scoring *models.RaceScoringResult, rank int) int {
	if scoring == nil {
		return 0
	}
	if s := scoring.ByRank(rank); s != nil {
		return s.ProgramNumber
	}
	return 0
}
