package combiner

import (
	"github.com/shopspring/decimal"

	"github.com/yourusername/trackside/internal/models"
)

// Per-combination unit stakes in dollars. These match standard track
// minimums and are adjustable at the Combiner level.
var (
	DefaultExactaUnit   = decimal.NewFromInt(2)
	DefaultTrifectaUnit = decimal.NewFromInt(1)
)

// BuildExactaTicket constructs the exacta position sets for a template.
// Position sets hold algorithm ranks, clamped to the field size; a PASS
// template or a field too small for an exacta yields an empty ticket.
func BuildExactaTicket(template models.Template, fieldSize int, unit decimal.Decimal) models.TicketStructure {
	var win, place []int
	switch template {
	case models.TemplateA:
		win = ranks(1, 1, fieldSize)
		place = ranks(2, 4, fieldSize)
	case models.TemplateB:
		win = ranks(2, 4, fieldSize)
		place = ranks(1, 4, fieldSize)
	case models.TemplateC:
		win = ranks(1, 4, fieldSize)
		place = ranks(1, 4, fieldSize)
	}

	combos := CalculateExactaCombinations(win, place)
	if combos == 0 {
		win, place = nil, nil
	}
	return models.TicketStructure{
		BetType:        "EXACTA",
		WinPositions:   win,
		PlacePositions: place,
		Combinations:   combos,
		EstimatedCost:  unit.Mul(decimal.NewFromInt(int64(combos))),
	}
}

// BuildTrifectaTicket constructs the trifecta position sets for a template.
func BuildTrifectaTicket(template models.Template, fieldSize int, unit decimal.Decimal) models.TicketStructure {
	var win, place, show []int
	switch template {
	case models.TemplateA:
		win = ranks(1, 1, fieldSize)
		place = ranks(2, 4, fieldSize)
		show = ranks(2, 4, fieldSize)
	case models.TemplateB:
		win = ranks(2, 4, fieldSize)
		place = ranks(1, 4, fieldSize)
		show = ranks(1, 4, fieldSize)
	case models.TemplateC:
		win = ranks(1, 5, fieldSize)
		place = ranks(1, 5, fieldSize)
		show = ranks(1, 5, fieldSize)
	}

	combos := CalculateTrifectaCombinations(win, place, show)
	if combos == 0 {
		win, place, show = nil, nil, nil
	}
	return models.TicketStructure{
		BetType:        "TRIFECTA",
		WinPositions:   win,
		PlacePositions: place,
		ShowPositions:  show,
		Combinations:   combos,
		EstimatedCost:  unit.Mul(decimal.NewFromInt(int64(combos))),
	}
}

// CalculateExactaCombinations counts ordered (win, place) pairs with the
// two horses distinct: |win|*|place| minus the self-pairs.
func CalculateExactaCombinations(win, place []int) int {
	count := 0
	for _, w := range win {
		for _, p := range place {
			if w != p {
				count++
			}
		}
	}
	return count
}

// CalculateTrifectaCombinations counts ordered (win, place, show) triples
// with all three horses mutually distinct. For an n-horse box this reduces
// to n*(n-1)*(n-2).
func CalculateTrifectaCombinations(win, place, show []int) int {
	count := 0
	for _, w := range win {
		for _, p := range place {
			if p == w {
				continue
			}
			for _, s := range show {
				if s != w && s != p {
					count++
				}
			}
		}
	}
	return count
}

// ranks returns the inclusive rank range [lo, hi] clamped to the field
func ranks(lo, hi, fieldSize int) []int {
	if hi > fieldSize {
		hi = fieldSize
	}
	if lo > hi {
		return nil
	}
	out := make([]int, 0, hi-lo+1)
	for r := lo; r <= hi; r++ {
		out = append(out, r)
	}
	return out
}
