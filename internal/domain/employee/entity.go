package employee

import (
	"fmt"
	"time"

	"github.com/shopspring/decimal"
)

type Employee struct {
	ID                string
	EmployeeCode      string
	FullName          string
	Role              Role
	Schedule          Schedule
	ExtraVacationDays decimal.Decimal
	ExtraHours        decimal.Decimal
	IsActive          bool
	CreatedAt         time.Time
	UpdatedAt         time.Time
}

// Role is the closed set of job roles payroll and compensation rules branch on.
type Role string

const (
	RoleDriver     Role = "DRIVER"
	RoleMechanic   Role = "MECHANIC"
	RoleOffice     Role = "OFFICE"
	RoleCommercial Role = "COMMERCIAL"
	RoleAdmin      Role = "ADMIN"
)

func (r Role) IsValid() bool {
	switch r {
	case RoleDriver, RoleMechanic, RoleOffice, RoleCommercial, RoleAdmin:
		return true
	}
	return false
}

// IsFieldRole reports whether the role works on the road or in the workshop.
func (r Role) IsFieldRole() bool {
	return r == RoleDriver || r == RoleMechanic
}

// DefaultExpectedMinutes applies when an employee has no schedule at all.
const DefaultExpectedMinutes = 8 * 60

// TimeOfDay is a wall-clock time expressed in minutes after midnight.
type TimeOfDay int

func NewTimeOfDay(hour, minute int) TimeOfDay {
	return TimeOfDay(hour*60 + minute)
}

// ParseTimeOfDay accepts "15:04" or "15:04:05".
func ParseTimeOfDay(value string) (TimeOfDay, error) {
	for _, layout := range []string{"15:04", "15:04:05"} {
		if t, err := time.Parse(layout, value); err == nil {
			return NewTimeOfDay(t.Hour(), t.Minute()), nil
		}
	}
	return 0, fmt.Errorf("invalid time of day %q", value)
}

func (t TimeOfDay) Hour() int   { return int(t) / 60 }
func (t TimeOfDay) Minute() int { return int(t) % 60 }

func (t TimeOfDay) String() string {
	return fmt.Sprintf("%02d:%02d", t.Hour(), t.Minute())
}

// On returns the instant of t on the calendar day of date, in loc.
func (t TimeOfDay) On(date time.Time, loc *time.Location) time.Time {
	return time.Date(date.Year(), date.Month(), date.Day(), t.Hour(), t.Minute(), 0, 0, loc)
}

// Window is one contiguous block of scheduled work.
type Window struct {
	Start TimeOfDay
	End   TimeOfDay
}

func (w Window) Minutes() int {
	if w.End <= w.Start {
		return 0
	}
	return int(w.End - w.Start)
}

// Schedule is the expected working day. A nil Afternoon means one continuous shift.
type Schedule struct {
	Morning   *Window
	Afternoon *Window
}

func (s Schedule) IsConfigured() bool {
	return s.Morning != nil || s.Afternoon != nil
}

// ExpectedMinutes is the sum of the window spans; the gap between windows is not counted.
func (s Schedule) ExpectedMinutes() int {
	if !s.IsConfigured() {
		return DefaultExpectedMinutes
	}
	total := 0
	if s.Morning != nil {
		total += s.Morning.Minutes()
	}
	if s.Afternoon != nil {
		total += s.Afternoon.Minutes()
	}
	return total
}

// Start returns the scheduled start of the working day.
func (s Schedule) Start() (TimeOfDay, bool) {
	if s.Morning != nil {
		return s.Morning.Start, true
	}
	if s.Afternoon != nil {
		return s.Afternoon.Start, true
	}
	return 0, false
}

// End returns the scheduled end of the working day.
func (s Schedule) End() (TimeOfDay, bool) {
	if s.Afternoon != nil {
		return s.Afternoon.End, true
	}
	if s.Morning != nil {
		return s.Morning.End, true
	}
	return 0, false
}
