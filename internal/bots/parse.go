package bots

import (
	"encoding/json"
	"fmt"
	"strings"

	"github.com/yourusername/trackside/internal/models"
)

// extractJSON pulls the JSON object out of a model response. Responses
// sometimes arrive wrapped in markdown fences or prose despite the JSON
// mime type, so this trims to the outermost braces before decoding.
func extractJSON(raw string) (string, error) {
	s := strings.TrimSpace(raw)
	s = strings.TrimPrefix(s, "```json")
	s = strings.TrimPrefix(s, "```")
	s = strings.TrimSuffix(s, "```")
	s = strings.TrimSpace(s)

	start := strings.Index(s, "{")
	end := strings.LastIndex(s, "}")
	if start < 0 || end <= start {
		return "", fmt.Errorf("%w: no JSON object in response", ErrInvalidAnalysis)
	}
	return s[start : end+1], nil
}

// ParseTripTrouble decodes the trip-trouble bot response. Flags with a
// program number outside the field are dropped rather than failing the
// whole analysis.
func ParseTripTrouble(raw string, fieldSize int) (*models.TripTroubleAnalysis, error) {
	payload, err := extractJSON(raw)
	if err != nil {
		return nil, err
	}

	var analysis models.TripTroubleAnalysis
	if err := json.Unmarshal([]byte(payload), &analysis); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidAnalysis, err)
	}

	kept := analysis.Flags[:0]
	for _, f := range analysis.Flags {
		if f.ProgramNumber >= 1 && f.ProgramNumber <= fieldSize {
			kept = append(kept, f)
		}
	}
	analysis.Flags = kept
	return &analysis, nil
}

// ParsePace decodes the pace bot response
func ParsePace(raw string, fieldSize int) (*models.PaceAnalysis, error) {
	payload, err := extractJSON(raw)
	if err != nil {
		return nil, err
	}

	var analysis models.PaceAnalysis
	if err := json.Unmarshal([]byte(payload), &analysis); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidAnalysis, err)
	}

	switch analysis.PaceProjection {
	case models.PaceHot, models.PaceModerate, models.PaceSlow:
	default:
		return nil, fmt.Errorf("%w: unknown pace projection %q", ErrInvalidAnalysis, analysis.PaceProjection)
	}

	analysis.AdvantagedStyles = validStyles(analysis.AdvantagedStyles)
	analysis.DisadvantagedStyles = validStyles(analysis.DisadvantagedStyles)

	if analysis.LoneSpeedProgram < 0 || analysis.LoneSpeedProgram > fieldSize {
		analysis.LoneSpeedException = false
		analysis.LoneSpeedProgram = 0
	}
	if analysis.LoneSpeedException && analysis.LoneSpeedProgram == 0 {
		analysis.LoneSpeedException = false
	}
	return &analysis, nil
}

// ParseVulnerableFavorite decodes the vulnerable-favorite bot response
func ParseVulnerableFavorite(raw string) (*models.VulnerableFavoriteAnalysis, error) {
	payload, err := extractJSON(raw)
	if err != nil {
		return nil, err
	}

	var analysis models.VulnerableFavoriteAnalysis
	if err := json.Unmarshal([]byte(payload), &analysis); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidAnalysis, err)
	}

	switch analysis.Confidence {
	case models.BotConfidenceHigh, models.BotConfidenceMedium, models.BotConfidenceLow:
	default:
		return nil, fmt.Errorf("%w: unknown confidence %q", ErrInvalidAnalysis, analysis.Confidence)
	}

	// A vulnerability verdict with no stated reason carries no weight.
	if analysis.IsVulnerable && len(analysis.Reasons) == 0 {
		analysis.IsVulnerable = false
	}
	return &analysis, nil
}

// ParseFieldSpread decodes the field-spread bot response
func ParseFieldSpread(raw string, fieldSize int) (*models.FieldSpreadAnalysis, error) {
	payload, err := extractJSON(raw)
	if err != nil {
		return nil, err
	}

	var analysis models.FieldSpreadAnalysis
	if err := json.Unmarshal([]byte(payload), &analysis); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidAnalysis, err)
	}

	switch analysis.FieldType {
	case models.FieldTight, models.FieldSeparated, models.FieldCompetitive,
		models.FieldMixed, models.FieldDominant, models.FieldWideOpen:
	default:
		return nil, fmt.Errorf("%w: unknown field type %q", ErrInvalidAnalysis, analysis.FieldType)
	}

	switch analysis.RecommendedSpread {
	case models.SpreadNarrow, models.SpreadMedium, models.SpreadWide:
	default:
		analysis.RecommendedSpread = models.SpreadMedium
	}

	if analysis.TopTierCount < 0 {
		analysis.TopTierCount = 0
	}
	if analysis.TopTierCount > fieldSize {
		analysis.TopTierCount = fieldSize
	}
	return &analysis, nil
}

func validStyles(styles []models.RunningStyle) []models.RunningStyle {
	kept := styles[:0]
	for _, s := range styles {
		switch s {
		case models.StyleEarly, models.StyleEarlyPresser, models.StylePresser, models.StyleSustained:
			kept = append(kept, s)
		}
	}
	return kept
}
