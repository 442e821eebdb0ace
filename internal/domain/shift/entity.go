package shift

import (
	"time"

	"github.com/shopspring/decimal"
)

type Status string

const (
	StatusOpen       Status = "open"
	StatusClosed     Status = "closed"
	StatusAutoClosed Status = "auto_closed"
)

// Shift is one clock-in/clock-out pair for one employee on one calendar day.
type Shift struct {
	ID          string
	EmployeeID  string
	Date        time.Time
	ClockIn     time.Time
	ClockOut    *time.Time
	TotalHours  *decimal.Decimal
	Status      Status
	TruckUsages []TruckUsage
	CreatedAt   time.Time
	UpdatedAt   time.Time
}

func (s Shift) IsOpen() bool {
	return s.ClockOut == nil
}

// WorkedMinutes uses now as a provisional clock-out for open shifts.
func (s Shift) WorkedMinutes(now time.Time) int {
	end := now
	if s.ClockOut != nil {
		end = *s.ClockOut
	}
	minutes := int(end.Sub(s.ClockIn).Minutes())
	if minutes < 0 {
		return 0
	}
	return minutes
}

// HoursFromMinutes converts worked minutes to hours rounded to two decimals.
func HoursFromMinutes(minutes int) decimal.Decimal {
	return decimal.NewFromInt(int64(minutes)).Div(decimal.NewFromInt(60)).Round(2)
}

// TruckUsage is a sub-interval of a shift during which a truck was operated.
type TruckUsage struct {
	ID            string
	ShiftID       string
	TruckID       string
	StartedAt     time.Time
	EndedAt       *time.Time
	OdometerStart *decimal.Decimal
	OdometerEnd   *decimal.Decimal
	DistanceKm    *decimal.Decimal
	FuelLiters    decimal.Decimal
	Trips         int
	Unloadings    int
	CreatedAt     time.Time
}

// Kilometers prefers the explicit distance and falls back to the odometer delta.
func (u TruckUsage) Kilometers() decimal.Decimal {
	if u.DistanceKm != nil {
		return *u.DistanceKm
	}
	if u.OdometerStart == nil || u.OdometerEnd == nil {
		return decimal.Zero
	}
	delta := u.OdometerEnd.Sub(*u.OdometerStart)
	if delta.IsNegative() {
		return decimal.Zero
	}
	return delta
}

func (u TruckUsage) DrivingMinutes(now time.Time) int {
	end := now
	if u.EndedAt != nil {
		end = *u.EndedAt
	}
	minutes := int(end.Sub(u.StartedAt).Minutes())
	if minutes < 0 {
		return 0
	}
	return minutes
}

// UsageTotals aggregates truck usage across shifts.
type UsageTotals struct {
	Kilometers     decimal.Decimal
	FuelLiters     decimal.Decimal
	Trips          int
	Unloadings     int
	DrivingMinutes int
}

func SumUsage(shifts []Shift, now time.Time) UsageTotals {
	totals := UsageTotals{Kilometers: decimal.Zero, FuelLiters: decimal.Zero}
	for _, s := range shifts {
		for _, u := range s.TruckUsages {
			totals.Kilometers = totals.Kilometers.Add(u.Kilometers())
			totals.FuelLiters = totals.FuelLiters.Add(u.FuelLiters)
			totals.Trips += u.Trips
			totals.Unloadings += u.Unloadings
			totals.DrivingMinutes += u.DrivingMinutes(now)
		}
	}
	return totals
}
