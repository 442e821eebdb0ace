package attendance

import (
	"math"
	"sort"
	"time"

	"github.com/haulops/payroll-engine/internal/domain/absence"
	"github.com/haulops/payroll-engine/internal/domain/attendance"
	"github.com/haulops/payroll-engine/internal/domain/employee"
	"github.com/haulops/payroll-engine/internal/domain/holiday"
	"github.com/haulops/payroll-engine/internal/domain/shift"
	"github.com/haulops/payroll-engine/internal/pkg/utils"
)

// Input is everything a reconstruction depends on.
type Input struct {
	Employee employee.Employee
	Start    time.Time
	End      time.Time
	Shifts   []shift.Shift
	Absences []absence.Absence
	Holidays []holiday.LocalHoliday
	Now      time.Time
	Location *time.Location
}

// Reconstruct walks every day of [Start, End] and builds the ledger. It does
// no I/O and returns the same ledger for the same input.
func Reconstruct(in Input) attendance.Ledger {
	loc := in.Location
	if loc == nil {
		loc = time.UTC
	}
	byDay := shiftsByDay(in.Shifts)

	ledger := attendance.Ledger{
		EmployeeID:  in.Employee.ID,
		PeriodStart: utils.Day(in.Start),
		PeriodEnd:   utils.Day(in.End),
	}
	for _, day := range utils.EachDay(in.Start, in.End) {
		record := reconstructDay(in, day, byDay[day], loc)
		ledger.Days = append(ledger.Days, record)
	}
	ledger.Summary = Summarize(ledger.Days)
	return ledger
}

func reconstructDay(in Input, day time.Time, s *shift.Shift, loc *time.Location) attendance.DayRecord {
	record := attendance.DayRecord{Date: day, Type: attendance.DayNormal}

	switch h := holiday.Find(in.Holidays, day); {
	case utils.IsWeekend(day):
		record.Type = attendance.DayWeekend
	case h != nil:
		record.Type = attendance.DayHoliday
		name := h.Name
		record.HolidayName = &name
	default:
		if a := absence.FindCovering(in.Absences, day); a != nil {
			record.Type = attendance.DayAbsence
			t := a.Type
			record.AbsenceType = &t
		}
	}

	if record.Type == attendance.DayNormal {
		record.ExpectedMinutes = in.Employee.Schedule.ExpectedMinutes()
	}

	if s == nil {
		return record
	}
	if s.ClockIn.IsZero() {
		record.Type = attendance.DayUnknown
		record.ExpectedMinutes = 0
		record.ShiftID = &s.ID
		return record
	}

	id := s.ID
	clockIn := s.ClockIn
	record.ShiftID = &id
	record.ClockIn = &clockIn
	record.ClockOut = s.ClockOut
	record.ShiftOpen = s.IsOpen()
	record.WorkedMinutes = s.WorkedMinutes(in.Now)
	record.OvertimeMinutes = max(0, record.WorkedMinutes-record.ExpectedMinutes)
	for _, u := range s.TruckUsages {
		record.DrivingMinutes += u.DrivingMinutes(in.Now)
	}

	if start, ok := in.Employee.Schedule.Start(); ok && record.ExpectedMinutes > 0 {
		local := clockIn.In(loc)
		actual := employee.NewTimeOfDay(local.Hour(), local.Minute())
		punctuality := int(actual - start)
		record.Punctuality = &punctuality
	}

	return record
}

// shiftsByDay keeps the earliest clock-in for each shift date.
func shiftsByDay(shifts []shift.Shift) map[time.Time]*shift.Shift {
	sorted := make([]shift.Shift, len(shifts))
	copy(sorted, shifts)
	sort.SliceStable(sorted, func(i, j int) bool {
		return sorted[i].ClockIn.Before(sorted[j].ClockIn)
	})

	byDay := make(map[time.Time]*shift.Shift, len(sorted))
	for i := range sorted {
		day := utils.Day(sorted[i].Date)
		if _, taken := byDay[day]; !taken {
			byDay[day] = &sorted[i]
		}
	}
	return byDay
}

// Summarize totals a ledger. Average punctuality covers only days where it is defined.
func Summarize(days []attendance.DayRecord) attendance.Summary {
	var summary attendance.Summary
	punctualitySum, punctualityDays := 0, 0

	for _, d := range days {
		if d.Type == attendance.DayUnknown {
			summary.UnknownDays++
			continue
		}
		summary.WorkedMinutes += d.WorkedMinutes
		summary.OvertimeMinutes += d.OvertimeMinutes
		if d.HasShift() {
			summary.DaysWorked++
		}
		if d.Punctuality != nil {
			punctualitySum += *d.Punctuality
			punctualityDays++
		}
	}

	summary.WorkedHours = shift.HoursFromMinutes(summary.WorkedMinutes)
	summary.OvertimeHours = shift.HoursFromMinutes(summary.OvertimeMinutes)
	if punctualityDays > 0 {
		avg := int(math.Round(float64(punctualitySum) / float64(punctualityDays)))
		summary.AveragePunctuality = &avg
	}
	return summary
}
