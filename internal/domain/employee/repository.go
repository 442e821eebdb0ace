package employee

import (
	"context"

	"github.com/shopspring/decimal"
)

// EmployeeRepository is the read side the engine needs plus the balance
// mutation used by holiday compensation. Employees are never deleted.
type EmployeeRepository interface {
	// GetByID returns ErrEmployeeNotFound when the id is unknown
	GetByID(ctx context.Context, id string) (Employee, error)

	// ListActive returns every active employee ordered by employee code
	ListActive(ctx context.Context) ([]Employee, error)

	// AddBalances increments the accumulated extra vacation days and extra hours
	AddBalances(ctx context.Context, id string, vacationDays, hours decimal.Decimal) error
}
