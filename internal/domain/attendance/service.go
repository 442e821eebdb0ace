package attendance

import (
	"context"
	"time"

	"github.com/haulops/payroll-engine/internal/domain/employee"
)

// AttendanceService loads raw records and runs the reconstruction. Payroll and
// the reports go through the same path so they always agree.
type AttendanceService interface {
	// Reconstruct returns employee.ErrEmployeeNotFound for unknown ids
	Reconstruct(ctx context.Context, employeeID string, start, end time.Time) (Ledger, error)

	// ReconstructFor skips the employee lookup when the caller already has it
	ReconstructFor(ctx context.Context, emp employee.Employee, start, end time.Time) (Ledger, error)

	GetMonthly(ctx context.Context, employeeID string, year int, month time.Month) (Ledger, error)
}
