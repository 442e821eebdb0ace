package absence

import (
	"time"

	"github.com/haulops/payroll-engine/internal/pkg/utils"
)

type Type string

const (
	TypeVacation  Type = "VACATION"
	TypeSickLeave Type = "SICK_LEAVE"
	TypePersonal  Type = "PERSONAL"
	TypeOther     Type = "OTHER"
)

type Status string

const (
	StatusPending  Status = "PENDING"
	StatusApproved Status = "APPROVED"
	StatusDenied   Status = "DENIED"
)

// Absence is a leave period for one employee. Only approved absences count.
type Absence struct {
	ID         string
	EmployeeID string
	Type       Type
	Status     Status
	StartDate  time.Time
	EndDate    time.Time
	Notes      *string
	CreatedAt  time.Time
}

func (a Absence) IsApproved() bool {
	return a.Status == StatusApproved
}

func (a Absence) IsVacation() bool {
	return a.Type == TypeVacation
}

// Covers reports whether day falls inside the absence range.
func (a Absence) Covers(day time.Time) bool {
	day = utils.Day(day)
	return !day.Before(utils.Day(a.StartDate)) && !day.After(utils.Day(a.EndDate))
}

// OverlapDays counts the days of the absence inside [start, end].
func (a Absence) OverlapDays(start, end time.Time) int {
	from, to, ok := utils.ClampRange(a.StartDate, a.EndDate, start, end)
	if !ok {
		return 0
	}
	return utils.DaysInclusive(from, to)
}

// FindCovering returns the first approved absence covering day.
func FindCovering(absences []Absence, day time.Time) *Absence {
	for i := range absences {
		if absences[i].IsApproved() && absences[i].Covers(day) {
			return &absences[i]
		}
	}
	return nil
}

// DayCounts splits the days of [start, end] covered by an approved absence
// into vacation and other leave. Each day counts once, attributed to the
// absence FindCovering picks for it.
func DayCounts(absences []Absence, start, end time.Time) (vacation, other int) {
	for _, d := range utils.EachDay(start, end) {
		a := FindCovering(absences, d)
		if a == nil {
			continue
		}
		if a.IsVacation() {
			vacation++
		} else {
			other++
		}
	}
	return vacation, other
}
