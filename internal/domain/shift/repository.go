package shift

import (
	"context"
	"time"

	"github.com/shopspring/decimal"
)

type ShiftRepository interface {
	Create(ctx context.Context, shift Shift) (Shift, error)

	// GetByID returns ErrShiftNotFound when missing; truck usages are loaded
	GetByID(ctx context.Context, id string) (Shift, error)

	// GetOpenByEmployee returns nil when the employee has no open shift
	GetOpenByEmployee(ctx context.Context, employeeID string) (*Shift, error)

	ExistsOnDate(ctx context.Context, employeeID string, date time.Time) (bool, error)

	Close(ctx context.Context, id string, clockOut time.Time, totalHours decimal.Decimal, status Status) (Shift, error)

	// ListByEmployeeAndRange returns shifts whose date is within [start, end], with truck usages
	ListByEmployeeAndRange(ctx context.Context, employeeID string, start, end time.Time) ([]Shift, error)

	// ListOpenBefore returns open shifts dated strictly before the given day
	ListOpenBefore(ctx context.Context, day time.Time) ([]Shift, error)

	AddTruckUsage(ctx context.Context, usage TruckUsage) (TruckUsage, error)
}
