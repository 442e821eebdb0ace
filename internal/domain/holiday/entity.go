package holiday

import (
	"time"

	"github.com/shopspring/decimal"
)

type LocalHoliday struct {
	ID          string
	Name        string
	Date        time.Time
	IsRecurring bool
	IsActive    bool
	CreatedAt   time.Time
}

// Matches compares by day and month for recurring holidays and by exact date otherwise.
func (h LocalHoliday) Matches(day time.Time) bool {
	if !h.IsActive {
		return false
	}
	if h.IsRecurring {
		return h.Date.Month() == day.Month() && h.Date.Day() == day.Day()
	}
	return h.Date.Year() == day.Year() && h.Date.Month() == day.Month() && h.Date.Day() == day.Day()
}

// Find returns the first active holiday matching day, or nil.
func Find(holidays []LocalHoliday, day time.Time) *LocalHoliday {
	for i := range holidays {
		if holidays[i].Matches(day) {
			return &holidays[i]
		}
	}
	return nil
}

type GrantType string

const (
	GrantVacationDay   GrantType = "VACATION_DAY"
	GrantOvertimeHours GrantType = "OVERTIME_HOURS"
)

// Compensation is keyed by shift; at most one exists per shift.
type Compensation struct {
	ID         string
	ShiftID    string
	EmployeeID string
	HolidayID  string
	GrantType  GrantType
	Amount     decimal.Decimal
	CreatedAt  time.Time
}

// Outcome describes what CompensateShift did.
type Outcome string

const (
	OutcomeNoHoliday          Outcome = "no_holiday"
	OutcomeAlreadyCompensated Outcome = "already_compensated"
	OutcomeCompensated        Outcome = "compensated"
)

type Result struct {
	Outcome      Outcome
	Compensation *Compensation
}
