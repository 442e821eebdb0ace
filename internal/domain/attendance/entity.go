package attendance

import (
	"time"

	"github.com/haulops/payroll-engine/internal/domain/absence"
	"github.com/shopspring/decimal"
)

// DayType classifies a calendar day. Precedence is weekend, holiday, absence, normal.
type DayType string

const (
	DayNormal  DayType = "NORMAL"
	DayWeekend DayType = "WEEKEND"
	DayHoliday DayType = "HOLIDAY"
	DayAbsence DayType = "ABSENCE"
	DayUnknown DayType = "UNKNOWN"
)

// DayRecord is one line of the reconstructed ledger.
type DayRecord struct {
	Date            time.Time
	Type            DayType
	AbsenceType     *absence.Type
	HolidayName     *string
	ShiftID         *string
	ClockIn         *time.Time
	ClockOut        *time.Time
	ShiftOpen       bool
	ExpectedMinutes int
	WorkedMinutes   int
	OvertimeMinutes int
	// Punctuality is clock-in minus scheduled start in minutes; positive is late.
	// Nil on days without expected work.
	Punctuality    *int
	DrivingMinutes int
}

func (d DayRecord) HasShift() bool {
	return d.ShiftID != nil
}

type Summary struct {
	WorkedMinutes      int
	OvertimeMinutes    int
	WorkedHours        decimal.Decimal
	OvertimeHours      decimal.Decimal
	DaysWorked         int
	AveragePunctuality *int
	UnknownDays        int
}

// Ledger is the reconstruction of one employee over one period.
type Ledger struct {
	EmployeeID  string
	PeriodStart time.Time
	PeriodEnd   time.Time
	Days        []DayRecord
	Summary     Summary
}
