package tariff

import (
	"time"

	"github.com/haulops/payroll-engine/internal/domain/employee"
	"github.com/shopspring/decimal"
)

// ConceptCode identifies a payroll concept a tariff is configured for.
type ConceptCode string

const (
	ConceptKmRate                ConceptCode = "KM_RATE"
	ConceptUnloadingRate         ConceptCode = "UNLOADING_RATE"
	ConceptTripRate              ConceptCode = "TRIP_RATE"
	ConceptDriverPerDiemAddend   ConceptCode = "DRIVER_PER_DIEM_ADDEND"
	ConceptPerDiemCap            ConceptCode = "PER_DIEM_CAP"
	ConceptProductivityPercent   ConceptCode = "PRODUCTIVITY_PERCENT"
	ConceptAbsenceDeductionRate  ConceptCode = "ABSENCE_DEDUCTION_RATE"
	ConceptVacationDeductionRate ConceptCode = "VACATION_DEDUCTION_RATE"
	ConceptOfficeOvertimeRate    ConceptCode = "OFFICE_OVERTIME_RATE"
	ConceptLiterRate             ConceptCode = "LITER_RATE"
	ConceptCommercialPerDiem     ConceptCode = "COMMERCIAL_PER_DIEM"
	ConceptFixedProductivity     ConceptCode = "FIXED_PRODUCTIVITY"
	ConceptIncentives            ConceptCode = "INCENTIVES"
	ConceptPerDiem               ConceptCode = "PER_DIEM"
	ConceptFixedPerDiemLegacy    ConceptCode = "FIXED_PER_DIEM_LEGACY"
)

// Scope is the level a rate is configured at.
type Scope string

const (
	ScopeEmployee Scope = "employee"
	ScopeRole     Scope = "role"
	ScopeGlobal   Scope = "global"
	ScopeNone     Scope = "none"
)

type Concept struct {
	ID          string
	Code        ConceptCode
	Name        string
	Description *string
	CreatedAt   time.Time
}

// Rate is the value of a concept for one scope. Role and EmployeeID are never both set.
type Rate struct {
	ID            string
	ConceptID     string
	ConceptCode   ConceptCode
	Role          *employee.Role
	EmployeeID    *string
	Value         decimal.Decimal
	IsActive      bool
	EffectiveFrom *time.Time
	EffectiveTo   *time.Time
	CreatedAt     time.Time
}

func (r Rate) Scope() Scope {
	switch {
	case r.EmployeeID != nil:
		return ScopeEmployee
	case r.Role != nil:
		return ScopeRole
	default:
		return ScopeGlobal
	}
}

// EffectiveOn reports whether the rate is active and its window contains day.
func (r Rate) EffectiveOn(day time.Time) bool {
	if !r.IsActive {
		return false
	}
	if r.EffectiveFrom != nil && day.Before(*r.EffectiveFrom) {
		return false
	}
	if r.EffectiveTo != nil && day.After(*r.EffectiveTo) {
		return false
	}
	return true
}

// Resolution is the outcome of walking the employee > role > global hierarchy.
// Found is false when nothing is configured; Value is then zero.
type Resolution struct {
	Value decimal.Decimal
	Scope Scope
	Found bool
}

func NotConfigured() Resolution {
	return Resolution{Value: decimal.Zero, Scope: ScopeNone}
}

// Positive reports whether the resolution contributes a non-zero amount.
func (r Resolution) Positive() bool {
	return r.Found && r.Value.IsPositive()
}

// OrDefault substitutes fallback when the value is missing or zero. An
// explicitly configured zero is treated the same as a missing value.
func (r Resolution) OrDefault(fallback decimal.Decimal) decimal.Decimal {
	if !r.Found || r.Value.IsZero() {
		return fallback
	}
	return r.Value
}
