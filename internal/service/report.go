package service

import (
	"fmt"
	"strings"

	"github.com/yourusername/trackside/internal/models"
)

// ReportWriter renders combined results as a plain-text card report for
// the one-shot CLI.
type ReportWriter struct{}

func NewReportWriter() *ReportWriter {
	return &ReportWriter{}
}

// WriteCard renders one report section per race, in card order.
func (w *ReportWriter) WriteCard(races []*models.ParsedRace, results []*models.CombinedResult) string {
	byRaceID := make(map[string]*models.ParsedRace, len(races))
	for _, race := range races {
		byRaceID[race.ID.String()] = race
	}

	var sb strings.Builder
	for i, result := range results {
		race := byRaceID[result.RaceID.String()]
		if race == nil {
			continue
		}
		if i > 0 {
			sb.WriteString("\n")
		}
		sb.WriteString(w.WriteRace(race, result))
	}
	return sb.String()
}

// WriteRace renders the full analysis section for one race.
func (w *ReportWriter) WriteRace(race *models.ParsedRace, result *models.CombinedResult) string {
	var sb strings.Builder

	fmt.Fprintf(&sb, "=== %s Race %d | %.1ff %s | %s ===\n",
		race.Header.TrackCode, race.Header.RaceNumber,
		race.Header.DistanceFurlongs, surfaceName(race.Header.Surface),
		race.Header.RaceDate.Format("2006-01-02"))

	fmt.Fprintf(&sb, "Race type: %s | Confidence: %s (%d/100)\n",
		result.RaceType, result.Confidence, result.ConfidenceScore)

	if result.RaceNarrative != "" {
		fmt.Fprintf(&sb, "%s\n", result.RaceNarrative)
	}

	sb.WriteString("\nHorses:\n")
	for _, insight := range result.HorseInsights {
		marker := " "
		switch {
		case insight.AvoidFlag:
			marker = "x"
		case insight.IsContender:
			marker = "*"
		}
		fmt.Fprintf(&sb, "  %s #%-2d %-20s proj %d  %s", marker,
			insight.ProgramNumber, insight.HorseName, insight.ProjectedFinish, insight.ValueLabel)
		if insight.OneLiner != "" {
			fmt.Fprintf(&sb, " | %s", insight.OneLiner)
		}
		sb.WriteString("\n")
	}

	if result.ValueHorse.Identified {
		fmt.Fprintf(&sb, "\nValue horse: #%d (%s", result.ValueHorse.ProgramNumber, result.ValueHorse.Strength)
		if result.ValueHorse.Angle != "" {
			fmt.Fprintf(&sb, ", %s", result.ValueHorse.Angle)
		}
		sb.WriteString(")\n")
	}
	if result.VulnerableFavorite {
		sb.WriteString("Favorite flagged vulnerable\n")
	}

	sb.WriteString("\n")
	w.writeTicket(&sb, result)
	return sb.String()
}

func (w *ReportWriter) writeTicket(sb *strings.Builder, result *models.CombinedResult) {
	ticket := result.Ticket
	if ticket.Template == models.TemplatePass {
		fmt.Fprintf(sb, "Recommendation: PASS (%s)\n", ticket.TemplateReason)
		return
	}

	fmt.Fprintf(sb, "Recommendation: Template %s (%s)\n", ticket.Template, ticket.TemplateReason)

	programs := rankPrograms(result)
	if !ticket.Exacta.IsEmpty() {
		fmt.Fprintf(sb, "  Exacta:   %s / %s  (%d combos, $%s)\n",
			renderPositions(ticket.Exacta.WinPositions, programs),
			renderPositions(ticket.Exacta.PlacePositions, programs),
			ticket.Exacta.Combinations, ticket.Exacta.EstimatedCost.StringFixed(2))
	}
	if !ticket.Trifecta.IsEmpty() {
		fmt.Fprintf(sb, "  Trifecta: %s / %s / %s  (%d combos, $%s)\n",
			renderPositions(ticket.Trifecta.WinPositions, programs),
			renderPositions(ticket.Trifecta.PlacePositions, programs),
			renderPositions(ticket.Trifecta.ShowPositions, programs),
			ticket.Trifecta.Combinations, ticket.Trifecta.EstimatedCost.StringFixed(2))
	}
	fmt.Fprintf(sb, "  Total cost: $%s\n", ticket.TotalCost().StringFixed(2))
}

// rankPrograms maps projected finish rank to program number using the
// race insights. Ticket position sets are rank based and need this
// translation for display.
func rankPrograms(result *models.CombinedResult) map[int]int {
	programs := make(map[int]int, len(result.HorseInsights))
	for _, insight := range result.HorseInsights {
		programs[insight.ProjectedFinish] = insight.ProgramNumber
	}
	return programs
}

func renderPositions(ranks []int, programs map[int]int) string {
	if len(ranks) == 0 {
		return "-"
	}
	parts := make([]string, 0, len(ranks))
	for _, rank := range ranks {
		if program, ok := programs[rank]; ok {
			parts = append(parts, fmt.Sprintf("%d", program))
		}
	}
	if len(parts) == 0 {
		return "-"
	}
	return strings.Join(parts, ",")
}

func surfaceName(code string) string {
	switch code {
	case "D":
		return "dirt"
	case "T":
		return "turf"
	case "A":
		return "all-weather"
	}
	return code
}
