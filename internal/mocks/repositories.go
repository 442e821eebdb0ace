// Package mocks holds testify mocks of the domain repository interfaces.
package mocks

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/haulops/payroll-engine/internal/domain/absence"
	"github.com/haulops/payroll-engine/internal/domain/employee"
	"github.com/haulops/payroll-engine/internal/domain/holiday"
	"github.com/haulops/payroll-engine/internal/domain/payroll"
	"github.com/haulops/payroll-engine/internal/domain/shift"
	"github.com/haulops/payroll-engine/internal/domain/tariff"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/mock"
)

// get extracts a typed return value, tolerating nil for pointer and slice results.
func get[T any](args mock.Arguments, i int) T {
	var zero T
	v := args.Get(i)
	if v == nil {
		return zero
	}
	typed, ok := v.(T)
	if !ok {
		panic(fmt.Sprintf("mock return %d: expected %T, got %T", i, zero, v))
	}
	return typed
}

// Transactor runs fn directly and counts calls.
type Transactor struct {
	mu    sync.Mutex
	Calls int
}

func (t *Transactor) WithinTx(ctx context.Context, fn func(txCtx context.Context) error) error {
	t.mu.Lock()
	t.Calls++
	t.mu.Unlock()
	return fn(ctx)
}

type EmployeeRepository struct {
	mock.Mock
}

func (m *EmployeeRepository) GetByID(ctx context.Context, id string) (employee.Employee, error) {
	args := m.Called(ctx, id)
	return get[employee.Employee](args, 0), args.Error(1)
}

func (m *EmployeeRepository) ListActive(ctx context.Context) ([]employee.Employee, error) {
	args := m.Called(ctx)
	return get[[]employee.Employee](args, 0), args.Error(1)
}

func (m *EmployeeRepository) AddBalances(ctx context.Context, id string, vacationDays, hours decimal.Decimal) error {
	args := m.Called(ctx, id, vacationDays, hours)
	return args.Error(0)
}

type ShiftRepository struct {
	mock.Mock
}

func (m *ShiftRepository) Create(ctx context.Context, s shift.Shift) (shift.Shift, error) {
	args := m.Called(ctx, s)
	return get[shift.Shift](args, 0), args.Error(1)
}

func (m *ShiftRepository) GetByID(ctx context.Context, id string) (shift.Shift, error) {
	args := m.Called(ctx, id)
	return get[shift.Shift](args, 0), args.Error(1)
}

func (m *ShiftRepository) GetOpenByEmployee(ctx context.Context, employeeID string) (*shift.Shift, error) {
	args := m.Called(ctx, employeeID)
	return get[*shift.Shift](args, 0), args.Error(1)
}

func (m *ShiftRepository) ExistsOnDate(ctx context.Context, employeeID string, date time.Time) (bool, error) {
	args := m.Called(ctx, employeeID, date)
	return args.Bool(0), args.Error(1)
}

func (m *ShiftRepository) Close(ctx context.Context, id string, clockOut time.Time, totalHours decimal.Decimal, status shift.Status) (shift.Shift, error) {
	args := m.Called(ctx, id, clockOut, totalHours, status)
	return get[shift.Shift](args, 0), args.Error(1)
}

func (m *ShiftRepository) ListByEmployeeAndRange(ctx context.Context, employeeID string, start, end time.Time) ([]shift.Shift, error) {
	args := m.Called(ctx, employeeID, start, end)
	return get[[]shift.Shift](args, 0), args.Error(1)
}

func (m *ShiftRepository) ListOpenBefore(ctx context.Context, day time.Time) ([]shift.Shift, error) {
	args := m.Called(ctx, day)
	return get[[]shift.Shift](args, 0), args.Error(1)
}

func (m *ShiftRepository) AddTruckUsage(ctx context.Context, usage shift.TruckUsage) (shift.TruckUsage, error) {
	args := m.Called(ctx, usage)
	return get[shift.TruckUsage](args, 0), args.Error(1)
}

type AbsenceRepository struct {
	mock.Mock
}

func (m *AbsenceRepository) ListApprovedOverlapping(ctx context.Context, employeeID string, start, end time.Time) ([]absence.Absence, error) {
	args := m.Called(ctx, employeeID, start, end)
	return get[[]absence.Absence](args, 0), args.Error(1)
}

type HolidayRepository struct {
	mock.Mock
}

func (m *HolidayRepository) ListActive(ctx context.Context) ([]holiday.LocalHoliday, error) {
	args := m.Called(ctx)
	return get[[]holiday.LocalHoliday](args, 0), args.Error(1)
}

func (m *HolidayRepository) FindActiveForDate(ctx context.Context, day time.Time) (*holiday.LocalHoliday, error) {
	args := m.Called(ctx, day)
	return get[*holiday.LocalHoliday](args, 0), args.Error(1)
}

type CompensationRepository struct {
	mock.Mock
}

func (m *CompensationRepository) GetByShiftID(ctx context.Context, shiftID string) (*holiday.Compensation, error) {
	args := m.Called(ctx, shiftID)
	return get[*holiday.Compensation](args, 0), args.Error(1)
}

// CreateIfAbsent accepts either a Compensation or a func echoing the input as its first return.
func (m *CompensationRepository) CreateIfAbsent(ctx context.Context, c holiday.Compensation) (holiday.Compensation, bool, error) {
	args := m.Called(ctx, c)
	if fn, ok := args.Get(0).(func(context.Context, holiday.Compensation) holiday.Compensation); ok {
		return fn(ctx, c), args.Bool(1), args.Error(2)
	}
	return get[holiday.Compensation](args, 0), args.Bool(1), args.Error(2)
}

type TariffRepository struct {
	mock.Mock
}

func (m *TariffRepository) ListActiveRates(ctx context.Context, code tariff.ConceptCode) ([]tariff.Rate, error) {
	args := m.Called(ctx, code)
	return get[[]tariff.Rate](args, 0), args.Error(1)
}

func (m *TariffRepository) UpsertConcept(ctx context.Context, concept tariff.Concept) (tariff.Concept, error) {
	args := m.Called(ctx, concept)
	return get[tariff.Concept](args, 0), args.Error(1)
}

func (m *TariffRepository) ReplaceRate(ctx context.Context, rate tariff.Rate) (tariff.Rate, error) {
	args := m.Called(ctx, rate)
	return get[tariff.Rate](args, 0), args.Error(1)
}

type PayslipRepository struct {
	mock.Mock
}

func (m *PayslipRepository) UpsertHeader(ctx context.Context, p payroll.Payslip) (payroll.Payslip, error) {
	args := m.Called(ctx, p)
	return get[payroll.Payslip](args, 0), args.Error(1)
}

func (m *PayslipRepository) ReplaceLines(ctx context.Context, payslipID string, lines []payroll.Line) error {
	args := m.Called(ctx, payslipID, lines)
	return args.Error(0)
}

func (m *PayslipRepository) GetByID(ctx context.Context, id string) (payroll.Payslip, error) {
	args := m.Called(ctx, id)
	return get[payroll.Payslip](args, 0), args.Error(1)
}

func (m *PayslipRepository) List(ctx context.Context, filter payroll.PayslipFilter) ([]payroll.Payslip, error) {
	args := m.Called(ctx, filter)
	return get[[]payroll.Payslip](args, 0), args.Error(1)
}

type LitersRepository struct {
	mock.Mock
}

func (m *LitersRepository) GetLiters(ctx context.Context, employeeID string, year, month int) (decimal.Decimal, error) {
	args := m.Called(ctx, employeeID, year, month)
	return get[decimal.Decimal](args, 0), args.Error(1)
}
