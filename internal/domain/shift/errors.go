package shift

import "errors"

var (
	ErrShiftNotFound         = errors.New("shift not found")
	ErrShiftAlreadyOpen      = errors.New("you already have an open shift today")
	ErrAlreadyClockedInToday = errors.New("you have already worked a shift today")
	ErrNoOpenShift           = errors.New("you have not clocked in yet")
	ErrClockOutBeforeClockIn = errors.New("clock-out cannot be earlier than clock-in")
	ErrUsageOutsideShift     = errors.New("truck usage must fall inside the shift")
	ErrShiftNotOwned         = errors.New("shift belongs to another employee")
)
