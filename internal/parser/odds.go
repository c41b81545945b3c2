package parser

import (
	"fmt"
	"strings"

	"github.com/shopspring/decimal"
)

// ParseMorningLine converts fractional morning-line text ("5-2", "7/2",
// "9-5", or a bare number) to decimal odds-to-one. An even-money line
// parses to 1.0.
func ParseMorningLine(text string) (float64, error) {
	cleaned := strings.TrimSpace(text)
	if cleaned == "" {
		return 0, fmt.Errorf("empty morning line")
	}
	if strings.EqualFold(cleaned, "EVEN") || strings.EqualFold(cleaned, "EVENS") {
		return 1.0, nil
	}

	sep := ""
	switch {
	case strings.Contains(cleaned, "-"):
		sep = "-"
	case strings.Contains(cleaned, "/"):
		sep = "/"
	}

	if sep == "" {
		value, err := decimal.NewFromString(cleaned)
		if err != nil || value.IsNegative() {
			return 0, fmt.Errorf("invalid morning line %q", text)
		}
		f, _ := value.Float64()
		return f, nil
	}

	parts := strings.SplitN(cleaned, sep, 2)
	numerator, err := decimal.NewFromString(strings.TrimSpace(parts[0]))
	if err != nil {
		return 0, fmt.Errorf("invalid morning line numerator %q", text)
	}
	denominator, err := decimal.NewFromString(strings.TrimSpace(parts[1]))
	if err != nil || denominator.IsZero() {
		return 0, fmt.Errorf("invalid morning line denominator %q", text)
	}
	if numerator.IsNegative() || denominator.IsNegative() {
		return 0, fmt.Errorf("negative morning line %q", text)
	}

	f, _ := numerator.Div(denominator).Round(4).Float64()
	return f, nil
}
