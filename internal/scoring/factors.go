package scoring

import (
	"fmt"

	"github.com/yourusername/trackside/internal/models"
)

// Each factor is a pure tiered lookup producing a sub-score and a short
// reasoning string. The tiers are fixed handicapping heuristics, not
// fitted parameters.

// scoreSpeedClass grades the best recent speed figure.
func scoreSpeedClass(entry *models.HorseEntry) (float64, string) {
	fig := entry.BestSpeedFigure()
	switch {
	case fig >= 100:
		return 90, fmt.Sprintf("Elite speed figure (%d)", fig)
	case fig >= 90:
		return 75, fmt.Sprintf("Strong speed figure (%d)", fig)
	case fig >= 80:
		return 60, fmt.Sprintf("Competitive speed figure (%d)", fig)
	case fig >= 70:
		return 45, fmt.Sprintf("Modest speed figure (%d)", fig)
	case fig > 0:
		return 30, fmt.Sprintf("Weak speed figure (%d)", fig)
	default:
		// no figures: neutral, usually a first-time starter
		return 40, "No speed figures on record"
	}
}

// scorePostPosition grades the draw for the distance. Inside draws help
// in sprints; middle posts are safest going long.
func scorePostPosition(entry *models.HorseEntry, race *models.ParsedRace) (float64, string) {
	post := entry.PostPosition
	if race.IsSprint() {
		switch {
		case post <= 3:
			return 20, fmt.Sprintf("Inside draw (post %d) in a sprint", post)
		case post <= 8:
			return 15, fmt.Sprintf("Workable draw (post %d)", post)
		default:
			return 5, fmt.Sprintf("Wide draw (post %d) in a sprint", post)
		}
	}
	switch {
	case post >= 4 && post <= 8:
		return 18, fmt.Sprintf("Ideal route draw (post %d)", post)
	case post <= 3:
		return 14, fmt.Sprintf("Inside route draw (post %d)", post)
	default:
		return 8, fmt.Sprintf("Wide route draw (post %d)", post)
	}
}

// scoreDistanceSurface grades proven ability over today's track.
func scoreDistanceSurface(entry *models.HorseEntry) (float64, string) {
	if entry.TrackStarts == 0 {
		return 10, "Unraced over this track"
	}
	rate := float64(entry.TrackWins) / float64(entry.TrackStarts)
	switch {
	case rate >= 0.25:
		return 25, fmt.Sprintf("Proven over track (%d for %d)", entry.TrackWins, entry.TrackStarts)
	case rate >= 0.15:
		return 15, fmt.Sprintf("Handles the track (%d for %d)", entry.TrackWins, entry.TrackStarts)
	case rate > 0:
		return 8, fmt.Sprintf("Has won here (%d for %d)", entry.TrackWins, entry.TrackStarts)
	default:
		return 5, fmt.Sprintf("Winless over track (0 for %d)", entry.TrackStarts)
	}
}

// scoreRecentForm grades freshness and the career win rate together.
func scoreRecentForm(entry *models.HorseEntry) (float64, string) {
	layoff := entry.GetLayoff()
	var score float64
	var note string
	switch {
	case layoff <= 30:
		score, note = 20, fmt.Sprintf("Fresh form (%d days)", layoff)
	case layoff <= 60:
		score, note = 12, fmt.Sprintf("Reasonable layoff (%d days)", layoff)
	case layoff <= 180:
		score, note = 5, fmt.Sprintf("Extended layoff (%d days)", layoff)
	default:
		score, note = 0, "Long layoff or unknown"
	}

	rate := entry.WinRate()
	switch {
	case rate >= 0.30:
		score += 15
	case rate >= 0.15:
		score += 8
	}
	return score, note
}

// scoreTrackSpecialist rewards repeat winners at today's oval.
func scoreTrackSpecialist(entry *models.HorseEntry) (float64, string) {
	if entry.TrackStarts < 3 {
		return 0, ""
	}
	rate := float64(entry.TrackWins) / float64(entry.TrackStarts)
	if entry.TrackWins >= 2 && rate >= 0.30 {
		return 15, fmt.Sprintf("Track specialist (%d wins here)", entry.TrackWins)
	}
	return 0, ""
}

// scoreSexRestriction penalizes entries that fit a restriction awkwardly,
// e.g. a filly facing open company.
func scoreSexRestriction(entry *models.HorseEntry, race *models.ParsedRace) (float64, string) {
	restriction := race.Header.SexRestriction
	if restriction == "" || restriction == "O" {
		if entry.Sex == "F" || entry.Sex == "M" {
			return -10, "Filly or mare facing open company"
		}
		return 0, ""
	}
	return 0, ""
}
