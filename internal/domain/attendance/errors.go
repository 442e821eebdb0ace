package attendance

import "errors"

var (
	ErrInvalidPeriod = errors.New("period end must not be before period start")
	ErrPeriodTooLong = errors.New("period must not exceed 366 days")
)

// MaxPeriodDays bounds a single reconstruction.
const MaxPeriodDays = 366
