package payroll

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
)

func TestTotalAndRenumber(t *testing.T) {
	lines := Renumber([]Line{
		{Code: LinePerDiem, Amount: decimal.NewFromInt(375)},
		{Code: LineAvailability, Amount: decimal.RequireFromString("12.50")},
		{Code: LineProductivity, Amount: decimal.RequireFromString("0.25")},
	})

	assert.True(t, decimal.RequireFromString("387.75").Equal(Total(lines)))
	assert.Equal(t, 1, lines[0].Position)
	assert.Equal(t, 3, lines[2].Position)
	assert.True(t, Total(nil).IsZero())
}

func TestLineCode_IsPerDiem(t *testing.T) {
	assert.True(t, LinePerDiem.IsPerDiem())
	assert.True(t, LineCommercialPerDiem.IsPerDiem())
	assert.False(t, LineFixedPerDiemLegacy.IsPerDiem())
	assert.False(t, LineIncentives.IsPerDiem())
}
