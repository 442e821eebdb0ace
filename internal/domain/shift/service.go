package shift

import (
	"context"
	"time"
)

// ShiftService handles the shift lifecycle. Closing a shift triggers holiday
// compensation as best-effort bookkeeping.
type ShiftService interface {
	// ClockIn opens a shift, force-closing a stale open shift from a prior day
	ClockIn(ctx context.Context, req ClockInRequest) (ShiftResponse, error)

	// ClockOut closes the employee's open shift
	ClockOut(ctx context.Context, req ClockOutRequest) (ShiftResponse, error)

	// RecordTruckUsage attaches a truck usage to a shift
	RecordTruckUsage(ctx context.Context, req RecordTruckUsageRequest) (TruckUsageResponse, error)

	// CloseStaleShifts force-closes every open shift dated before today
	CloseStaleShifts(ctx context.Context, now time.Time) (int, error)
}
