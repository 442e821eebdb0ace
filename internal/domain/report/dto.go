package report

import (
	"time"

	"github.com/haulops/payroll-engine/internal/domain/attendance"
	"github.com/haulops/payroll-engine/internal/pkg/validator"
	"github.com/shopspring/decimal"
)

// ========================================
// DAILY REPORT
// ========================================

type DailyReportRequest struct {
	Date string `json:"date"`
}

func (r *DailyReportRequest) Validate() error {
	if _, ok := validator.IsValidDate(r.Date); !ok {
		return validator.ValidationErrors{{Field: "date", Message: "date must be in YYYY-MM-DD format"}}
	}
	return nil
}

func (r *DailyReportRequest) Day() time.Time {
	day, _ := validator.IsValidDate(r.Date)
	return day
}

type DailyReport struct {
	Date        string     `json:"date"`
	GeneratedAt string     `json:"generated_at"`
	Rows        []DailyRow `json:"rows"`
}

type DailyRow struct {
	Employee EmployeeInfo                  `json:"employee"`
	Day      *attendance.DayRecordResponse `json:"day,omitempty"`
	Unknown  bool                          `json:"unknown"`
}

// ========================================
// MONTHLY REPORT
// ========================================

type MonthlyReportRequest struct {
	Year  int `json:"year"`
	Month int `json:"month"`
}

func (r *MonthlyReportRequest) Validate() error {
	if !validator.IsValidPeriod(r.Year, r.Month) {
		return validator.ValidationErrors{{Field: "period", Message: "year and month must form a valid period"}}
	}
	return nil
}

type MonthlyReport struct {
	Year        int          `json:"year"`
	Month       int          `json:"month"`
	PeriodStart string       `json:"period_start"`
	PeriodEnd   string       `json:"period_end"`
	GeneratedAt string       `json:"generated_at"`
	Rows        []MonthlyRow `json:"rows"`
	Totals      UsageTotals  `json:"totals"`
}

type MonthlyRow struct {
	Employee EmployeeInfo                `json:"employee"`
	Summary  *attendance.SummaryResponse `json:"summary,omitempty"`
	Usage    UsageTotals                 `json:"usage"`
	Unknown  bool                        `json:"unknown"`
}

type EmployeeInfo struct {
	ID       string `json:"id"`
	Code     string `json:"code"`
	FullName string `json:"full_name"`
	Role     string `json:"role"`
}

type UsageTotals struct {
	Kilometers     decimal.Decimal `json:"kilometers"`
	FuelLiters     decimal.Decimal `json:"fuel_liters"`
	Trips          int             `json:"trips"`
	Unloadings     int             `json:"unloadings"`
	DrivingMinutes int             `json:"driving_minutes"`
}

func (u UsageTotals) Add(o UsageTotals) UsageTotals {
	return UsageTotals{
		Kilometers:     u.Kilometers.Add(o.Kilometers),
		FuelLiters:     u.FuelLiters.Add(o.FuelLiters),
		Trips:          u.Trips + o.Trips,
		Unloadings:     u.Unloadings + o.Unloadings,
		DrivingMinutes: u.DrivingMinutes + o.DrivingMinutes,
	}
}
