package holiday

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"github.com/haulops/payroll-engine/internal/domain/employee"
	"github.com/haulops/payroll-engine/internal/domain/holiday"
	"github.com/haulops/payroll-engine/internal/domain/shift"
	"github.com/haulops/payroll-engine/internal/pkg/database"
	"github.com/shopspring/decimal"
)

type CompensationServiceImpl struct {
	tx               database.Transactor
	holidayRepo      holiday.HolidayRepository
	compensationRepo holiday.CompensationRepository
	employeeRepo     employee.EmployeeRepository
}

func NewCompensationService(
	tx database.Transactor,
	holidayRepo holiday.HolidayRepository,
	compensationRepo holiday.CompensationRepository,
	employeeRepo employee.EmployeeRepository,
) holiday.CompensationService {
	return &CompensationServiceImpl{
		tx:               tx,
		holidayRepo:      holidayRepo,
		compensationRepo: compensationRepo,
		employeeRepo:     employeeRepo,
	}
}

// CompensateShift implements holiday.CompensationService.
func (s *CompensationServiceImpl) CompensateShift(ctx context.Context, closed shift.Shift) (holiday.Result, error) {
	if closed.IsOpen() {
		return holiday.Result{}, holiday.ErrShiftNotClosed
	}

	matched, err := s.holidayRepo.FindActiveForDate(ctx, closed.Date)
	if err != nil {
		return holiday.Result{}, fmt.Errorf("failed to look up holiday: %w", err)
	}
	if matched == nil {
		return holiday.Result{Outcome: holiday.OutcomeNoHoliday}, nil
	}

	// Fast path only; the unique key on shift_id is what prevents duplicates.
	existing, err := s.compensationRepo.GetByShiftID(ctx, closed.ID)
	if err != nil {
		return holiday.Result{}, fmt.Errorf("failed to check existing compensation: %w", err)
	}
	if existing != nil {
		return holiday.Result{Outcome: holiday.OutcomeAlreadyCompensated, Compensation: existing}, nil
	}

	emp, err := s.employeeRepo.GetByID(ctx, closed.EmployeeID)
	if err != nil {
		return holiday.Result{}, err
	}

	grant := Grant(emp, closed, matched.ID)
	result := holiday.Result{Outcome: holiday.OutcomeAlreadyCompensated}

	err = s.tx.WithinTx(ctx, func(txCtx context.Context) error {
		created, ok, err := s.compensationRepo.CreateIfAbsent(txCtx, grant)
		if err != nil {
			return err
		}
		if !ok {
			return nil
		}

		vacationDays, hours := decimal.Zero, decimal.Zero
		if created.GrantType == holiday.GrantVacationDay {
			vacationDays = created.Amount
		} else {
			hours = created.Amount
		}
		if err := s.employeeRepo.AddBalances(txCtx, emp.ID, vacationDays, hours); err != nil {
			return fmt.Errorf("failed to update employee balances: %w", err)
		}

		result = holiday.Result{Outcome: holiday.OutcomeCompensated, Compensation: &created}
		return nil
	})
	if errors.Is(err, holiday.ErrAlreadyCompensated) {
		return holiday.Result{Outcome: holiday.OutcomeAlreadyCompensated}, nil
	}
	if err != nil {
		return holiday.Result{}, fmt.Errorf("failed to record compensation: %w", err)
	}

	if result.Outcome == holiday.OutcomeCompensated {
		slog.Info("holiday compensation granted",
			"shift_id", closed.ID,
			"employee_id", emp.ID,
			"holiday", matched.Name,
			"grant_type", grant.GrantType,
			"amount", grant.Amount.String(),
		)
	}
	return result, nil
}

// Grant builds the compensation for a closed shift. Field roles earn one
// vacation day; every other role earns the hours recorded at close.
func Grant(emp employee.Employee, closed shift.Shift, holidayID string) holiday.Compensation {
	c := holiday.Compensation{
		ShiftID:    closed.ID,
		EmployeeID: emp.ID,
		HolidayID:  holidayID,
	}
	if emp.Role.IsFieldRole() {
		c.GrantType = holiday.GrantVacationDay
		c.Amount = decimal.NewFromInt(1)
		return c
	}

	c.GrantType = holiday.GrantOvertimeHours
	if closed.TotalHours != nil {
		c.Amount = *closed.TotalHours
	} else {
		c.Amount = shift.HoursFromMinutes(closed.WorkedMinutes(*closed.ClockOut))
	}
	return c
}
