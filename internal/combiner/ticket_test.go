package combiner

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"

	"github.com/yourusername/trackside/internal/models"
)

func TestCalculateExactaCombinations(t *testing.T) {
	tests := []struct {
		name     string
		win      []int
		place    []int
		expected int
	}{
		{"key one over three", []int{1}, []int{2, 3, 4}, 3},
		{"four horse box", []int{1, 2, 3, 4}, []int{1, 2, 3, 4}, 12},
		{"three over four", []int{2, 3, 4}, []int{1, 2, 3, 4}, 9},
		{"empty sets", nil, nil, 0},
		{"single horse both slots", []int{1}, []int{1}, 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, CalculateExactaCombinations(tt.win, tt.place))
		})
	}
}

func TestCalculateTrifectaCombinations(t *testing.T) {
	tests := []struct {
		name     string
		win      []int
		place    []int
		show     []int
		expected int
	}{
		{"key one over three", []int{1}, []int{2, 3, 4}, []int{2, 3, 4}, 6},
		{"five horse box", []int{1, 2, 3, 4, 5}, []int{1, 2, 3, 4, 5}, []int{1, 2, 3, 4, 5}, 60},
		{"demoted favorite shape", []int{2, 3, 4}, []int{1, 2, 3, 4}, []int{1, 2, 3, 4}, 18},
		{"four horse box", []int{1, 2, 3, 4}, []int{1, 2, 3, 4}, []int{1, 2, 3, 4}, 24},
		{"two horses cannot fill three slots", []int{1, 2}, []int{1, 2}, []int{1, 2}, 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, CalculateTrifectaCombinations(tt.win, tt.place, tt.show))
		})
	}
}

func TestBuildExactaTicketTemplates(t *testing.T) {
	unit := DefaultExactaUnit

	a := BuildExactaTicket(models.TemplateA, 8, unit)
	assert.Equal(t, []int{1}, a.WinPositions)
	assert.Equal(t, []int{2, 3, 4}, a.PlacePositions)
	assert.Equal(t, 3, a.Combinations)
	assert.True(t, a.EstimatedCost.Equal(decimal.NewFromInt(6)))

	b := BuildExactaTicket(models.TemplateB, 8, unit)
	assert.Equal(t, []int{2, 3, 4}, b.WinPositions)
	assert.Equal(t, []int{1, 2, 3, 4}, b.PlacePositions)
	assert.Equal(t, 9, b.Combinations)
	assert.True(t, b.EstimatedCost.Equal(decimal.NewFromInt(18)))

	c := BuildExactaTicket(models.TemplateC, 8, unit)
	assert.Equal(t, 12, c.Combinations)
	assert.True(t, c.EstimatedCost.Equal(decimal.NewFromInt(24)))
}

func TestBuildTrifectaTicketTemplates(t *testing.T) {
	unit := DefaultTrifectaUnit

	a := BuildTrifectaTicket(models.TemplateA, 8, unit)
	assert.Equal(t, 6, a.Combinations)
	assert.True(t, a.EstimatedCost.Equal(decimal.NewFromInt(6)))

	b := BuildTrifectaTicket(models.TemplateB, 8, unit)
	assert.Equal(t, 18, b.Combinations)
	assert.True(t, b.EstimatedCost.Equal(decimal.NewFromInt(18)))

	c := BuildTrifectaTicket(models.TemplateC, 8, unit)
	assert.Equal(t, []int{1, 2, 3, 4, 5}, c.WinPositions)
	assert.Equal(t, 60, c.Combinations)
	assert.True(t, c.EstimatedCost.Equal(decimal.NewFromInt(60)))
}

func TestPassTemplateYieldsEmptyTickets(t *testing.T) {
	exacta := BuildExactaTicket(models.TemplatePass, 8, DefaultExactaUnit)
	trifecta := BuildTrifectaTicket(models.TemplatePass, 8, DefaultTrifectaUnit)

	assert.True(t, exacta.IsEmpty())
	assert.True(t, trifecta.IsEmpty())
	assert.Empty(t, exacta.WinPositions)
	assert.Empty(t, trifecta.ShowPositions)
	assert.True(t, exacta.EstimatedCost.IsZero())
	assert.True(t, trifecta.EstimatedCost.IsZero())
}

func TestTicketsClampToFieldSize(t *testing.T) {
	// 3-horse field: template C box shrinks, trifecta still possible
	c := BuildExactaTicket(models.TemplateC, 3, DefaultExactaUnit)
	assert.Equal(t, []int{1, 2, 3}, c.WinPositions)
	assert.Equal(t, 6, c.Combinations)

	tri := BuildTrifectaTicket(models.TemplateC, 3, DefaultTrifectaUnit)
	assert.Equal(t, 6, tri.Combinations)

	// one-horse field: no exotic wager is possible
	one := BuildExactaTicket(models.TemplateA, 1, DefaultExactaUnit)
	assert.True(t, one.IsEmpty())
	assert.Empty(t, one.WinPositions)

	empty := BuildTrifectaTicket(models.TemplateB, 0, DefaultTrifectaUnit)
	assert.True(t, empty.IsEmpty())
}

func TestNoHorseOutsideTopFiveOnTickets(t *testing.T) {
	for _, template := range []models.Template{models.TemplateA, models.TemplateB, models.TemplateC} {
		exacta := BuildExactaTicket(template, 12, DefaultExactaUnit)
		trifecta := BuildTrifectaTicket(template, 12, DefaultTrifectaUnit)
		for _, set := range [][]int{
			exacta.WinPositions, exacta.PlacePositions,
			trifecta.WinPositions, trifecta.PlacePositions, trifecta.ShowPositions,
		} {
			for _, rank := range set {
				assert.LessOrEqual(t, rank, 5, "template %s leaked rank %d", template, rank)
			}
		}
	}
}
