package payroll

import (
	"github.com/shopspring/decimal"
)

var hundred = decimal.NewFromInt(100)

// DriverInputs are the resolved metrics and rates a driver or mechanic payslip
// is computed from.
type DriverInputs struct {
	Kilometers          decimal.Decimal
	Unloadings          int
	Trips               int
	KmRate              decimal.Decimal
	UnloadingRate       decimal.Decimal
	TripRate            decimal.Decimal
	PerDiemAddend       decimal.Decimal
	PerDiemCap          decimal.Decimal
	ProductivityPercent decimal.Decimal
	VacationDays        int
	OtherAbsenceDays    int
	VacationRate        decimal.Decimal
	AbsenceRate         decimal.Decimal
}

// DriverBreakdown is the pot split. PerDiem + Availability + ProductivityGross
// always equals Pot, and PerDiem never exceeds the cap.
type DriverBreakdown struct {
	Pot               decimal.Decimal
	PerDiem           decimal.Decimal
	Remainder         decimal.Decimal
	Availability      decimal.Decimal
	ProductivityGross decimal.Decimal
	Deduction         decimal.Decimal
	Productivity      decimal.Decimal
}

// SplitDriverPot caps the per-diem, splits the remainder and applies absence
// deductions to the productivity share only.
func SplitDriverPot(in DriverInputs) DriverBreakdown {
	var b DriverBreakdown

	b.Pot = in.Kilometers.Mul(in.KmRate).
		Add(decimal.NewFromInt(int64(in.Unloadings)).Mul(in.UnloadingRate)).
		Add(decimal.NewFromInt(int64(in.Trips)).Mul(in.TripRate)).
		Add(in.PerDiemAddend)

	capped := decimal.Max(decimal.Zero, in.PerDiemCap)
	b.PerDiem = decimal.Min(capped, decimal.Max(decimal.Zero, b.Pot))
	b.Remainder = decimal.Max(decimal.Zero, b.Pot.Sub(b.PerDiem))

	pct := ClampPercent(in.ProductivityPercent)
	b.ProductivityGross = b.Remainder.Mul(pct).Div(hundred)
	b.Availability = b.Remainder.Sub(b.ProductivityGross)

	b.Deduction = decimal.NewFromInt(int64(in.OtherAbsenceDays)).Mul(in.AbsenceRate).
		Add(decimal.NewFromInt(int64(in.VacationDays)).Mul(in.VacationRate))
	b.Productivity = decimal.Max(decimal.Zero, b.ProductivityGross.Sub(b.Deduction))

	return b
}

// ClampPercent bounds a percentage to [0, 100].
func ClampPercent(pct decimal.Decimal) decimal.Decimal {
	return decimal.Min(hundred, decimal.Max(decimal.Zero, pct))
}
