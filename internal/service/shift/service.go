package shift

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/haulops/payroll-engine/internal/domain/employee"
	"github.com/haulops/payroll-engine/internal/domain/holiday"
	"github.com/haulops/payroll-engine/internal/domain/shift"
	"github.com/haulops/payroll-engine/internal/pkg/utils"
)

type ShiftServiceImpl struct {
	shiftRepo    shift.ShiftRepository
	employeeRepo employee.EmployeeRepository
	compensator  holiday.CompensationService
	loc          *time.Location
	now          func() time.Time
}

func NewShiftService(
	shiftRepo shift.ShiftRepository,
	employeeRepo employee.EmployeeRepository,
	compensator holiday.CompensationService,
	loc *time.Location,
) shift.ShiftService {
	return &ShiftServiceImpl{
		shiftRepo:    shiftRepo,
		employeeRepo: employeeRepo,
		compensator:  compensator,
		loc:          loc,
		now:          time.Now,
	}
}

func timeToString(t *time.Time) *string {
	if t == nil {
		return nil
	}
	s := t.Format(time.RFC3339)
	return &s
}

func (s *ShiftServiceImpl) instant(at *time.Time) time.Time {
	if at != nil {
		return at.UTC()
	}
	return s.now().UTC()
}

// ClockIn implements shift.ShiftService.
func (s *ShiftServiceImpl) ClockIn(ctx context.Context, req shift.ClockInRequest) (shift.ShiftResponse, error) {
	if err := req.Validate(); err != nil {
		return shift.ShiftResponse{}, err
	}
	at := s.instant(req.At)

	emp, err := s.employeeRepo.GetByID(ctx, req.EmployeeID)
	if err != nil {
		return shift.ShiftResponse{}, err
	}
	if !emp.IsActive {
		return shift.ShiftResponse{}, employee.ErrEmployeeInactive
	}

	today := utils.DateOf(at, s.loc)

	open, err := s.shiftRepo.GetOpenByEmployee(ctx, emp.ID)
	if err != nil {
		return shift.ShiftResponse{}, fmt.Errorf("failed to get open shift: %w", err)
	}
	if open != nil {
		if utils.SameDay(open.Date, today) {
			return shift.ShiftResponse{}, shift.ErrShiftAlreadyOpen
		}
		if _, err := s.forceClose(ctx, emp, *open); err != nil {
			return shift.ShiftResponse{}, err
		}
	}

	worked, err := s.shiftRepo.ExistsOnDate(ctx, emp.ID, today)
	if err != nil {
		return shift.ShiftResponse{}, fmt.Errorf("failed to check today's shift: %w", err)
	}
	if worked {
		return shift.ShiftResponse{}, shift.ErrAlreadyClockedInToday
	}

	created, err := s.shiftRepo.Create(ctx, shift.Shift{
		EmployeeID: emp.ID,
		Date:       today,
		ClockIn:    at,
		Status:     shift.StatusOpen,
	})
	if err != nil {
		return shift.ShiftResponse{}, fmt.Errorf("failed to create shift: %w", err)
	}

	return toShiftResponse(created), nil
}

// ClockOut implements shift.ShiftService.
func (s *ShiftServiceImpl) ClockOut(ctx context.Context, req shift.ClockOutRequest) (shift.ShiftResponse, error) {
	if err := req.Validate(); err != nil {
		return shift.ShiftResponse{}, err
	}
	at := s.instant(req.At)

	open, err := s.shiftRepo.GetOpenByEmployee(ctx, req.EmployeeID)
	if err != nil {
		return shift.ShiftResponse{}, fmt.Errorf("failed to get open shift: %w", err)
	}
	if open == nil {
		return shift.ShiftResponse{}, shift.ErrNoOpenShift
	}
	if at.Before(open.ClockIn) {
		return shift.ShiftResponse{}, shift.ErrClockOutBeforeClockIn
	}

	closed, err := s.closeShift(ctx, *open, at, shift.StatusClosed)
	if err != nil {
		return shift.ShiftResponse{}, err
	}
	return toShiftResponse(closed), nil
}

// RecordTruckUsage implements shift.ShiftService.
func (s *ShiftServiceImpl) RecordTruckUsage(ctx context.Context, req shift.RecordTruckUsageRequest) (shift.TruckUsageResponse, error) {
	if err := req.Validate(); err != nil {
		return shift.TruckUsageResponse{}, err
	}

	parent, err := s.shiftRepo.GetByID(ctx, req.ShiftID)
	if err != nil {
		return shift.TruckUsageResponse{}, err
	}
	if !req.ActorManager && parent.EmployeeID != req.ActorID {
		return shift.TruckUsageResponse{}, shift.ErrShiftNotOwned
	}

	if req.StartedAt.Before(parent.ClockIn) {
		return shift.TruckUsageResponse{}, shift.ErrUsageOutsideShift
	}
	if parent.ClockOut != nil {
		if req.StartedAt.After(*parent.ClockOut) || (req.EndedAt != nil && req.EndedAt.After(*parent.ClockOut)) {
			return shift.TruckUsageResponse{}, shift.ErrUsageOutsideShift
		}
	}

	usage, err := s.shiftRepo.AddTruckUsage(ctx, shift.TruckUsage{
		ShiftID:       parent.ID,
		TruckID:       req.TruckID,
		StartedAt:     req.StartedAt.UTC(),
		EndedAt:       req.EndedAt,
		OdometerStart: req.OdometerStart,
		OdometerEnd:   req.OdometerEnd,
		DistanceKm:    req.DistanceKm,
		FuelLiters:    req.FuelLiters,
		Trips:         req.Trips,
		Unloadings:    req.Unloadings,
	})
	if err != nil {
		return shift.TruckUsageResponse{}, fmt.Errorf("failed to record truck usage: %w", err)
	}

	return toUsageResponse(usage), nil
}

// CloseStaleShifts implements shift.ShiftService.
func (s *ShiftServiceImpl) CloseStaleShifts(ctx context.Context, now time.Time) (int, error) {
	today := utils.DateOf(now, s.loc)
	stale, err := s.shiftRepo.ListOpenBefore(ctx, today)
	if err != nil {
		return 0, fmt.Errorf("failed to list stale shifts: %w", err)
	}

	closed := 0
	var errs []error
	for _, open := range stale {
		emp, err := s.employeeRepo.GetByID(ctx, open.EmployeeID)
		if err != nil {
			errs = append(errs, fmt.Errorf("shift %s: %w", open.ID, err))
			continue
		}
		if _, err := s.forceClose(ctx, emp, open); err != nil {
			errs = append(errs, fmt.Errorf("shift %s: %w", open.ID, err))
			continue
		}
		closed++
	}
	return closed, errors.Join(errs...)
}

// forceClose ends a forgotten shift at the scheduled end of its own day.
func (s *ShiftServiceImpl) forceClose(ctx context.Context, emp employee.Employee, open shift.Shift) (shift.Shift, error) {
	closeAt := open.ClockIn
	if end, ok := emp.Schedule.End(); ok {
		if scheduled := end.On(open.Date, s.loc); scheduled.After(open.ClockIn) {
			closeAt = scheduled.UTC()
		}
	}

	closed, err := s.closeShift(ctx, open, closeAt, shift.StatusAutoClosed)
	if err != nil {
		return shift.Shift{}, err
	}
	slog.Warn("stale shift auto-closed",
		"shift_id", open.ID,
		"employee_id", emp.ID,
		"date", open.Date.Format("2006-01-02"),
		"clock_out", closeAt.Format(time.RFC3339),
	)
	return closed, nil
}

// closeShift persists the close, then runs holiday compensation. Compensation
// failures are logged and never undo the close.
func (s *ShiftServiceImpl) closeShift(ctx context.Context, open shift.Shift, at time.Time, status shift.Status) (shift.Shift, error) {
	hours := shift.HoursFromMinutes(open.WorkedMinutes(at))

	closed, err := s.shiftRepo.Close(ctx, open.ID, at, hours, status)
	if err != nil {
		return shift.Shift{}, fmt.Errorf("failed to close shift: %w", err)
	}

	result, err := s.compensator.CompensateShift(ctx, closed)
	if err != nil {
		slog.Error("holiday compensation failed",
			"shift_id", closed.ID,
			"employee_id", closed.EmployeeID,
			"error", err,
		)
	} else if result.Outcome == holiday.OutcomeAlreadyCompensated {
		slog.Debug("holiday compensation skipped", "shift_id", closed.ID)
	}

	return closed, nil
}

func toUsageResponse(u shift.TruckUsage) shift.TruckUsageResponse {
	return shift.TruckUsageResponse{
		ID:         u.ID,
		ShiftID:    u.ShiftID,
		TruckID:    u.TruckID,
		StartedAt:  u.StartedAt.Format(time.RFC3339),
		EndedAt:    timeToString(u.EndedAt),
		Kilometers: u.Kilometers(),
		FuelLiters: u.FuelLiters,
		Trips:      u.Trips,
		Unloadings: u.Unloadings,
	}
}

func toShiftResponse(s shift.Shift) shift.ShiftResponse {
	resp := shift.ShiftResponse{
		ID:         s.ID,
		EmployeeID: s.EmployeeID,
		Date:       s.Date.Format("2006-01-02"),
		ClockIn:    s.ClockIn.Format(time.RFC3339),
		ClockOut:   timeToString(s.ClockOut),
		TotalHours: s.TotalHours,
		Status:     string(s.Status),
	}
	for _, u := range s.TruckUsages {
		resp.TruckUsages = append(resp.TruckUsages, toUsageResponse(u))
	}
	return resp
}
