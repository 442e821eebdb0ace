package holiday

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/haulops/payroll-engine/internal/domain/employee"
	"github.com/haulops/payroll-engine/internal/domain/holiday"
	"github.com/haulops/payroll-engine/internal/domain/shift"
	"github.com/haulops/payroll-engine/internal/mocks"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

var (
	holidayDate = time.Date(2025, time.March, 19, 0, 0, 0, 0, time.UTC)
	saintJoseph = holiday.LocalHoliday{ID: "h1", Name: "San José", Date: time.Date(2024, time.March, 19, 0, 0, 0, 0, time.UTC), IsRecurring: true, IsActive: true}
)

type fixture struct {
	tx            *mocks.Transactor
	holidays      *mocks.HolidayRepository
	compensations *mocks.CompensationRepository
	employees     *mocks.EmployeeRepository
	svc           holiday.CompensationService
}

func newFixture() fixture {
	f := fixture{
		tx:            &mocks.Transactor{},
		holidays:      new(mocks.HolidayRepository),
		compensations: new(mocks.CompensationRepository),
		employees:     new(mocks.EmployeeRepository),
	}
	f.svc = NewCompensationService(f.tx, f.holidays, f.compensations, f.employees)
	return f
}

func tenHourShift(id, employeeID string) shift.Shift {
	in := holidayDate.Add(8 * time.Hour)
	out := in.Add(10 * time.Hour)
	hours := decimal.NewFromInt(10)
	return shift.Shift{ID: id, EmployeeID: employeeID, Date: holidayDate, ClockIn: in, ClockOut: &out, TotalHours: &hours, Status: shift.StatusClosed}
}

func TestCompensateShift_DriverGetsVacationDay(t *testing.T) {
	f := newFixture()
	closed := tenHourShift("s1", "driver")

	f.holidays.On("FindActiveForDate", mock.Anything, holidayDate).Return(&saintJoseph, nil)
	f.compensations.On("GetByShiftID", mock.Anything, "s1").Return(nil, nil)
	f.employees.On("GetByID", mock.Anything, "driver").Return(employee.Employee{ID: "driver", Role: employee.RoleDriver}, nil)
	f.compensations.On("CreateIfAbsent", mock.Anything, mock.Anything).
		Return(func(_ context.Context, c holiday.Compensation) holiday.Compensation { return c }, true, nil)
	f.employees.On("AddBalances", mock.Anything, "driver", decimal.NewFromInt(1), decimal.Zero).Return(nil)

	result, err := f.svc.CompensateShift(context.Background(), closed)

	require.NoError(t, err)
	assert.Equal(t, holiday.OutcomeCompensated, result.Outcome)
	require.NotNil(t, result.Compensation)
	assert.Equal(t, holiday.GrantVacationDay, result.Compensation.GrantType)
	assert.True(t, decimal.NewFromInt(1).Equal(result.Compensation.Amount))
	assert.Equal(t, 1, f.tx.Calls)
	f.employees.AssertExpectations(t)
}

func TestCompensateShift_OfficeGetsWorkedHours(t *testing.T) {
	f := newFixture()
	closed := tenHourShift("s2", "office")

	f.holidays.On("FindActiveForDate", mock.Anything, holidayDate).Return(&saintJoseph, nil)
	f.compensations.On("GetByShiftID", mock.Anything, "s2").Return(nil, nil)
	f.employees.On("GetByID", mock.Anything, "office").Return(employee.Employee{ID: "office", Role: employee.RoleOffice}, nil)
	f.compensations.On("CreateIfAbsent", mock.Anything, mock.MatchedBy(func(c holiday.Compensation) bool {
		return c.GrantType == holiday.GrantOvertimeHours && c.Amount.Equal(decimal.NewFromInt(10)) && c.HolidayID == "h1"
	})).Return(func(_ context.Context, c holiday.Compensation) holiday.Compensation { return c }, true, nil)
	f.employees.On("AddBalances", mock.Anything, "office", decimal.Zero, decimal.NewFromInt(10)).Return(nil)

	result, err := f.svc.CompensateShift(context.Background(), closed)

	require.NoError(t, err)
	assert.Equal(t, holiday.OutcomeCompensated, result.Outcome)
	f.compensations.AssertExpectations(t)
	f.employees.AssertExpectations(t)
}

func TestCompensateShift_NoHoliday(t *testing.T) {
	f := newFixture()
	f.holidays.On("FindActiveForDate", mock.Anything, holidayDate).Return(nil, nil)

	result, err := f.svc.CompensateShift(context.Background(), tenHourShift("s1", "driver"))

	require.NoError(t, err)
	assert.Equal(t, holiday.OutcomeNoHoliday, result.Outcome)
	f.compensations.AssertNotCalled(t, "GetByShiftID", mock.Anything, mock.Anything)
	assert.Zero(t, f.tx.Calls)
}

func TestCompensateShift_ExistingRecordIsNoOp(t *testing.T) {
	f := newFixture()
	existing := &holiday.Compensation{ID: "c1", ShiftID: "s1"}
	f.holidays.On("FindActiveForDate", mock.Anything, holidayDate).Return(&saintJoseph, nil)
	f.compensations.On("GetByShiftID", mock.Anything, "s1").Return(existing, nil)

	result, err := f.svc.CompensateShift(context.Background(), tenHourShift("s1", "driver"))

	require.NoError(t, err)
	assert.Equal(t, holiday.OutcomeAlreadyCompensated, result.Outcome)
	assert.Same(t, existing, result.Compensation)
	f.employees.AssertNotCalled(t, "AddBalances", mock.Anything, mock.Anything, mock.Anything, mock.Anything)
}

func TestCompensateShift_LostRaceIsNoOp(t *testing.T) {
	f := newFixture()
	f.holidays.On("FindActiveForDate", mock.Anything, holidayDate).Return(&saintJoseph, nil)
	f.compensations.On("GetByShiftID", mock.Anything, "s1").Return(nil, nil)
	f.employees.On("GetByID", mock.Anything, "driver").Return(employee.Employee{ID: "driver", Role: employee.RoleDriver}, nil)
	f.compensations.On("CreateIfAbsent", mock.Anything, mock.Anything).Return(holiday.Compensation{}, false, nil)

	result, err := f.svc.CompensateShift(context.Background(), tenHourShift("s1", "driver"))

	require.NoError(t, err)
	assert.Equal(t, holiday.OutcomeAlreadyCompensated, result.Outcome)
	f.employees.AssertNotCalled(t, "AddBalances", mock.Anything, mock.Anything, mock.Anything, mock.Anything)
}

func TestCompensateShift_DuplicateKeyIsNoOp(t *testing.T) {
	f := newFixture()
	f.holidays.On("FindActiveForDate", mock.Anything, holidayDate).Return(&saintJoseph, nil)
	f.compensations.On("GetByShiftID", mock.Anything, "s1").Return(nil, nil)
	f.employees.On("GetByID", mock.Anything, "driver").Return(employee.Employee{ID: "driver", Role: employee.RoleDriver}, nil)
	f.compensations.On("CreateIfAbsent", mock.Anything, mock.Anything).Return(holiday.Compensation{}, false, holiday.ErrAlreadyCompensated)

	result, err := f.svc.CompensateShift(context.Background(), tenHourShift("s1", "driver"))

	require.NoError(t, err)
	assert.Equal(t, holiday.OutcomeAlreadyCompensated, result.Outcome)
}

func TestCompensateShift_Errors(t *testing.T) {
	t.Run("open shift", func(t *testing.T) {
		f := newFixture()
		open := shift.Shift{ID: "s1", Date: holidayDate, ClockIn: holidayDate}

		_, err := f.svc.CompensateShift(context.Background(), open)
		assert.ErrorIs(t, err, holiday.ErrShiftNotClosed)
	})

	t.Run("lookup failure", func(t *testing.T) {
		f := newFixture()
		boom := errors.New("db down")
		f.holidays.On("FindActiveForDate", mock.Anything, holidayDate).Return(nil, boom)

		_, err := f.svc.CompensateShift(context.Background(), tenHourShift("s1", "driver"))
		assert.ErrorIs(t, err, boom)
	})

	t.Run("balance failure", func(t *testing.T) {
		f := newFixture()
		boom := errors.New("deadlock")
		f.holidays.On("FindActiveForDate", mock.Anything, holidayDate).Return(&saintJoseph, nil)
		f.compensations.On("GetByShiftID", mock.Anything, "s1").Return(nil, nil)
		f.employees.On("GetByID", mock.Anything, "driver").Return(employee.Employee{ID: "driver", Role: employee.RoleMechanic}, nil)
		f.compensations.On("CreateIfAbsent", mock.Anything, mock.Anything).
			Return(func(_ context.Context, c holiday.Compensation) holiday.Compensation { return c }, true, nil)
		f.employees.On("AddBalances", mock.Anything, "driver", mock.Anything, mock.Anything).Return(boom)

		_, err := f.svc.CompensateShift(context.Background(), tenHourShift("s1", "driver"))
		assert.ErrorIs(t, err, boom)
	})
}

func TestGrant_FallsBackToWorkedMinutes(t *testing.T) {
	closed := tenHourShift("s1", "office")
	closed.TotalHours = nil

	c := Grant(employee.Employee{ID: "office", Role: employee.RoleCommercial}, closed, "h1")

	assert.Equal(t, holiday.GrantOvertimeHours, c.GrantType)
	assert.True(t, decimal.NewFromInt(10).Equal(c.Amount))
}
