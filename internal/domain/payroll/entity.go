package payroll

import (
	"time"

	"github.com/shopspring/decimal"
)

// LineCode is the concept code printed on a payslip line.
type LineCode string

const (
	LinePerDiem            LineCode = "PER_DIEM"
	LineAvailability       LineCode = "AVAILABILITY"
	LineProductivity       LineCode = "PRODUCTIVITY"
	LineOvertime           LineCode = "OVERTIME"
	LineCommercialVariable LineCode = "COMMERCIAL_VARIABLE"
	LineCommercialPerDiem  LineCode = "COMMERCIAL_PER_DIEM"
	LineFixedProductivity  LineCode = "FIXED_PRODUCTIVITY"
	LineIncentives         LineCode = "INCENTIVES"
	LineFixedPerDiemLegacy LineCode = "FIXED_PER_DIEM_LEGACY"
)

// IsPerDiem reports whether the line already pays a per-diem, which suppresses
// the generic per-diem fallback.
func (c LineCode) IsPerDiem() bool {
	return c == LinePerDiem || c == LineCommercialPerDiem
}

// Line is one monetary row of a payslip. Amount is quantity times rate,
// rounded to cents, unless Notes say otherwise.
type Line struct {
	Position    int
	Code        LineCode
	Description string
	Quantity    decimal.Decimal
	Rate        decimal.Decimal
	Amount      decimal.Decimal
	Notes       string
}

type Payslip struct {
	ID          string
	EmployeeID  string
	Year        int
	Month       int
	TotalAmount decimal.Decimal
	Lines       []Line
	GeneratedAt time.Time
	CreatedAt   time.Time
	UpdatedAt   time.Time

	// Joined fields
	EmployeeName *string
	EmployeeCode *string
}

// Total sums line amounts.
func Total(lines []Line) decimal.Decimal {
	total := decimal.Zero
	for _, l := range lines {
		total = total.Add(l.Amount)
	}
	return total
}

// Renumber assigns 1-based positions in slice order.
func Renumber(lines []Line) []Line {
	for i := range lines {
		lines[i].Position = i + 1
	}
	return lines
}
