package holiday

import "errors"

var (
	ErrAlreadyCompensated = errors.New("shift already compensated")
	ErrShiftNotClosed     = errors.New("only closed shifts can be compensated")
)
