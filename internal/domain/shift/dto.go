package shift

import (
	"time"

	"github.com/haulops/payroll-engine/internal/pkg/validator"
	"github.com/shopspring/decimal"
)

type ClockInRequest struct {
	EmployeeID string     `json:"employee_id"`
	At         *time.Time `json:"at,omitempty"`
}

func (r *ClockInRequest) Validate() error {
	var errs validator.ValidationErrors
	if validator.IsEmpty(r.EmployeeID) {
		errs = append(errs, validator.ValidationError{Field: "employee_id", Message: "is required"})
	}
	if len(errs) > 0 {
		return errs
	}
	return nil
}

type ClockOutRequest struct {
	EmployeeID string     `json:"employee_id"`
	At         *time.Time `json:"at,omitempty"`
}

func (r *ClockOutRequest) Validate() error {
	var errs validator.ValidationErrors
	if validator.IsEmpty(r.EmployeeID) {
		errs = append(errs, validator.ValidationError{Field: "employee_id", Message: "is required"})
	}
	if len(errs) > 0 {
		return errs
	}
	return nil
}

type RecordTruckUsageRequest struct {
	ShiftID       string           `json:"-"`
	ActorID       string           `json:"-"`
	ActorManager  bool             `json:"-"`
	TruckID       string           `json:"truck_id"`
	StartedAt     time.Time        `json:"started_at"`
	EndedAt       *time.Time       `json:"ended_at,omitempty"`
	OdometerStart *decimal.Decimal `json:"odometer_start,omitempty"`
	OdometerEnd   *decimal.Decimal `json:"odometer_end,omitempty"`
	DistanceKm    *decimal.Decimal `json:"distance_km,omitempty"`
	FuelLiters    decimal.Decimal  `json:"fuel_liters"`
	Trips         int              `json:"trips"`
	Unloadings    int              `json:"unloadings"`
}

func (r *RecordTruckUsageRequest) Validate() error {
	var errs validator.ValidationErrors

	if validator.IsEmpty(r.ShiftID) {
		errs = append(errs, validator.ValidationError{Field: "shift_id", Message: "is required"})
	}
	if validator.IsEmpty(r.TruckID) {
		errs = append(errs, validator.ValidationError{Field: "truck_id", Message: "is required"})
	}
	if r.StartedAt.IsZero() {
		errs = append(errs, validator.ValidationError{Field: "started_at", Message: "is required"})
	}
	if r.EndedAt != nil && r.EndedAt.Before(r.StartedAt) {
		errs = append(errs, validator.ValidationError{Field: "ended_at", Message: "must not be before started_at"})
	}
	if r.OdometerStart != nil && r.OdometerEnd != nil && r.OdometerEnd.LessThan(*r.OdometerStart) {
		errs = append(errs, validator.ValidationError{Field: "odometer_end", Message: "must not be below odometer_start"})
	}
	if r.DistanceKm != nil && r.DistanceKm.IsNegative() {
		errs = append(errs, validator.ValidationError{Field: "distance_km", Message: "must be non-negative"})
	}
	if r.FuelLiters.IsNegative() {
		errs = append(errs, validator.ValidationError{Field: "fuel_liters", Message: "must be non-negative"})
	}
	if r.Trips < 0 {
		errs = append(errs, validator.ValidationError{Field: "trips", Message: "must be non-negative"})
	}
	if r.Unloadings < 0 {
		errs = append(errs, validator.ValidationError{Field: "unloadings", Message: "must be non-negative"})
	}

	if len(errs) > 0 {
		return errs
	}
	return nil
}

type TruckUsageResponse struct {
	ID         string          `json:"id"`
	ShiftID    string          `json:"shift_id"`
	TruckID    string          `json:"truck_id"`
	StartedAt  string          `json:"started_at"`
	EndedAt    *string         `json:"ended_at,omitempty"`
	Kilometers decimal.Decimal `json:"kilometers"`
	FuelLiters decimal.Decimal `json:"fuel_liters"`
	Trips      int             `json:"trips"`
	Unloadings int             `json:"unloadings"`
}

type ShiftResponse struct {
	ID          string               `json:"id"`
	EmployeeID  string               `json:"employee_id"`
	Date        string               `json:"date"`
	ClockIn     string               `json:"clock_in"`
	ClockOut    *string              `json:"clock_out,omitempty"`
	TotalHours  *decimal.Decimal     `json:"total_hours,omitempty"`
	Status      string               `json:"status"`
	TruckUsages []TruckUsageResponse `json:"truck_usages,omitempty"`
}
