package holiday

import (
	"context"

	"github.com/haulops/payroll-engine/internal/domain/shift"
)

// CompensationService grants the one-time balance for working on a holiday.
type CompensationService interface {
	CompensateShift(ctx context.Context, closed shift.Shift) (Result, error)
}
