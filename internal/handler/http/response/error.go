package response

import (
	"errors"
	"net/http"

	"github.com/haulops/payroll-engine/internal/domain/attendance"
	"github.com/haulops/payroll-engine/internal/domain/employee"
	"github.com/haulops/payroll-engine/internal/domain/payroll"
	"github.com/haulops/payroll-engine/internal/domain/shift"
	"github.com/haulops/payroll-engine/internal/domain/tariff"
	"github.com/haulops/payroll-engine/internal/pkg/jwt"
	"github.com/haulops/payroll-engine/internal/pkg/validator"
)

// HandleError maps domain errors to HTTP responses
func HandleError(w http.ResponseWriter, err error) {
	// Check if it's a validation error
	var validationErrs validator.ValidationErrors
	if errors.As(err, &validationErrs) {
		ValidationError(w, validationErrs.ToMap())
		return
	}

	switch {
	// Auth errors
	case errors.Is(err, jwt.ErrInvalidToken), errors.Is(err, jwt.ErrMissingClaims):
		Unauthorized(w, err.Error())

	// Employee domain errors
	case errors.Is(err, employee.ErrEmployeeNotFound):
		NotFound(w, "Employee not found")
	case errors.Is(err, employee.ErrEmployeeInactive):
		Forbidden(w, "Employee is inactive")

	// Shift domain errors
	case errors.Is(err, shift.ErrShiftNotFound):
		NotFound(w, "Shift not found")
	case errors.Is(err, shift.ErrShiftAlreadyOpen):
		Conflict(w, "A shift is already open")
	case errors.Is(err, shift.ErrAlreadyClockedInToday):
		Conflict(w, "Already clocked in today")
	case errors.Is(err, shift.ErrShiftNotOwned):
		Forbidden(w, "Shift belongs to another employee")
	case errors.Is(err, shift.ErrNoOpenShift),
		errors.Is(err, shift.ErrClockOutBeforeClockIn),
		errors.Is(err, shift.ErrUsageOutsideShift):
		BadRequest(w, err.Error(), nil)

	// Attendance and payroll period errors
	case errors.Is(err, attendance.ErrInvalidPeriod),
		errors.Is(err, attendance.ErrPeriodTooLong),
		errors.Is(err, payroll.ErrInvalidPeriod):
		BadRequest(w, err.Error(), nil)

	// Payroll and tariff errors
	case errors.Is(err, payroll.ErrPayslipNotFound):
		NotFound(w, "Payslip not found")
	case errors.Is(err, tariff.ErrConceptNotFound):
		NotFound(w, "Payroll concept not found")
	case errors.Is(err, tariff.ErrInvalidRateScope):
		BadRequest(w, err.Error(), nil)

	// Default
	default:
		InternalServerError(w, "An unexpected error occurred")
	}
}
