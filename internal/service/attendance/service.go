package attendance

import (
	"context"
	"fmt"
	"time"

	"github.com/haulops/payroll-engine/internal/domain/absence"
	"github.com/haulops/payroll-engine/internal/domain/attendance"
	"github.com/haulops/payroll-engine/internal/domain/employee"
	"github.com/haulops/payroll-engine/internal/domain/holiday"
	"github.com/haulops/payroll-engine/internal/domain/shift"
	"github.com/haulops/payroll-engine/internal/pkg/utils"
)

type AttendanceServiceImpl struct {
	employeeRepo employee.EmployeeRepository
	shiftRepo    shift.ShiftRepository
	absenceRepo  absence.AbsenceRepository
	holidayRepo  holiday.HolidayRepository
	loc          *time.Location
	now          func() time.Time
}

func NewAttendanceService(
	employeeRepo employee.EmployeeRepository,
	shiftRepo shift.ShiftRepository,
	absenceRepo absence.AbsenceRepository,
	holidayRepo holiday.HolidayRepository,
	loc *time.Location,
) attendance.AttendanceService {
	return &AttendanceServiceImpl{
		employeeRepo: employeeRepo,
		shiftRepo:    shiftRepo,
		absenceRepo:  absenceRepo,
		holidayRepo:  holidayRepo,
		loc:          loc,
		now:          time.Now,
	}
}

// Reconstruct implements attendance.AttendanceService.
func (s *AttendanceServiceImpl) Reconstruct(ctx context.Context, employeeID string, start, end time.Time) (attendance.Ledger, error) {
	emp, err := s.employeeRepo.GetByID(ctx, employeeID)
	if err != nil {
		return attendance.Ledger{}, err
	}
	return s.ReconstructFor(ctx, emp, start, end)
}

// ReconstructFor implements attendance.AttendanceService.
func (s *AttendanceServiceImpl) ReconstructFor(ctx context.Context, emp employee.Employee, start, end time.Time) (attendance.Ledger, error) {
	start, end = utils.Day(start), utils.Day(end)
	if end.Before(start) {
		return attendance.Ledger{}, attendance.ErrInvalidPeriod
	}
	if utils.DaysInclusive(start, end) > attendance.MaxPeriodDays {
		return attendance.Ledger{}, attendance.ErrPeriodTooLong
	}

	shifts, err := s.shiftRepo.ListByEmployeeAndRange(ctx, emp.ID, start, end)
	if err != nil {
		return attendance.Ledger{}, fmt.Errorf("failed to list shifts: %w", err)
	}
	absences, err := s.absenceRepo.ListApprovedOverlapping(ctx, emp.ID, start, end)
	if err != nil {
		return attendance.Ledger{}, fmt.Errorf("failed to list absences: %w", err)
	}
	holidays, err := s.holidayRepo.ListActive(ctx)
	if err != nil {
		return attendance.Ledger{}, fmt.Errorf("failed to list holidays: %w", err)
	}

	return Reconstruct(Input{
		Employee: emp,
		Start:    start,
		End:      end,
		Shifts:   shifts,
		Absences: absences,
		Holidays: holidays,
		Now:      s.now(),
		Location: s.loc,
	}), nil
}

// GetMonthly implements attendance.AttendanceService.
func (s *AttendanceServiceImpl) GetMonthly(ctx context.Context, employeeID string, year int, month time.Month) (attendance.Ledger, error) {
	start, end := utils.MonthBounds(year, month)
	return s.Reconstruct(ctx, employeeID, start, end)
}
