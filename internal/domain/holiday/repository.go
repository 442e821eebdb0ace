package holiday

import (
	"context"
	"time"
)

type HolidayRepository interface {
	// ListActive returns all active holidays, recurring and one-off
	ListActive(ctx context.Context) ([]LocalHoliday, error)

	// FindActiveForDate returns the active holiday matching day, or nil
	FindActiveForDate(ctx context.Context, day time.Time) (*LocalHoliday, error)
}

type CompensationRepository interface {
	// GetByShiftID returns nil when the shift has no compensation
	GetByShiftID(ctx context.Context, shiftID string) (*Compensation, error)

	// CreateIfAbsent inserts the compensation unless one already exists for
	// the shift. created is false when another writer got there first.
	CreateIfAbsent(ctx context.Context, compensation Compensation) (Compensation, bool, error)
}
