package mocks

import (
	"context"
	"time"

	"github.com/haulops/payroll-engine/internal/domain/attendance"
	"github.com/haulops/payroll-engine/internal/domain/employee"
	"github.com/haulops/payroll-engine/internal/domain/payroll"
	"github.com/haulops/payroll-engine/internal/domain/shift"
	"github.com/haulops/payroll-engine/internal/domain/tariff"
	"github.com/stretchr/testify/mock"
)

type AttendanceService struct {
	mock.Mock
}

func (m *AttendanceService) Reconstruct(ctx context.Context, employeeID string, start, end time.Time) (attendance.Ledger, error) {
	args := m.Called(ctx, employeeID, start, end)
	return get[attendance.Ledger](args, 0), args.Error(1)
}

func (m *AttendanceService) ReconstructFor(ctx context.Context, emp employee.Employee, start, end time.Time) (attendance.Ledger, error) {
	args := m.Called(ctx, emp, start, end)
	return get[attendance.Ledger](args, 0), args.Error(1)
}

func (m *AttendanceService) GetMonthly(ctx context.Context, employeeID string, year int, month time.Month) (attendance.Ledger, error) {
	args := m.Called(ctx, employeeID, year, month)
	return get[attendance.Ledger](args, 0), args.Error(1)
}

type ShiftService struct {
	mock.Mock
}

func (m *ShiftService) ClockIn(ctx context.Context, req shift.ClockInRequest) (shift.ShiftResponse, error) {
	args := m.Called(ctx, req)
	return get[shift.ShiftResponse](args, 0), args.Error(1)
}

func (m *ShiftService) ClockOut(ctx context.Context, req shift.ClockOutRequest) (shift.ShiftResponse, error) {
	args := m.Called(ctx, req)
	return get[shift.ShiftResponse](args, 0), args.Error(1)
}

func (m *ShiftService) RecordTruckUsage(ctx context.Context, req shift.RecordTruckUsageRequest) (shift.TruckUsageResponse, error) {
	args := m.Called(ctx, req)
	return get[shift.TruckUsageResponse](args, 0), args.Error(1)
}

func (m *ShiftService) CloseStaleShifts(ctx context.Context, now time.Time) (int, error) {
	args := m.Called(ctx, now)
	return args.Int(0), args.Error(1)
}

type PayrollService struct {
	mock.Mock
}

func (m *PayrollService) Generate(ctx context.Context, employeeID string, year, month int) ([]payroll.Line, error) {
	args := m.Called(ctx, employeeID, year, month)
	return get[[]payroll.Line](args, 0), args.Error(1)
}

func (m *PayrollService) Preview(ctx context.Context, req payroll.PeriodRequest) (payroll.PayslipResponse, error) {
	args := m.Called(ctx, req)
	return get[payroll.PayslipResponse](args, 0), args.Error(1)
}

func (m *PayrollService) Publish(ctx context.Context, req payroll.PeriodRequest) (payroll.PayslipResponse, error) {
	args := m.Called(ctx, req)
	return get[payroll.PayslipResponse](args, 0), args.Error(1)
}

func (m *PayrollService) PublishMonth(ctx context.Context, req payroll.MonthRequest) (payroll.BatchResponse, error) {
	args := m.Called(ctx, req)
	return get[payroll.BatchResponse](args, 0), args.Error(1)
}

func (m *PayrollService) GetPayslip(ctx context.Context, id string) (payroll.PayslipResponse, error) {
	args := m.Called(ctx, id)
	return get[payroll.PayslipResponse](args, 0), args.Error(1)
}

func (m *PayrollService) ListPayslips(ctx context.Context, filter payroll.PayslipFilter) ([]payroll.PayslipResponse, error) {
	args := m.Called(ctx, filter)
	return get[[]payroll.PayslipResponse](args, 0), args.Error(1)
}

func (m *PayrollService) RenderPayslipPDF(ctx context.Context, id string) ([]byte, string, error) {
	args := m.Called(ctx, id)
	return get[[]byte](args, 0), args.String(1), args.Error(2)
}

type TariffService struct {
	mock.Mock
}

func (m *TariffService) Resolve(ctx context.Context, code tariff.ConceptCode, role employee.Role, employeeID string, asOf time.Time) (tariff.Resolution, error) {
	args := m.Called(ctx, code, role, employeeID, asOf)
	return get[tariff.Resolution](args, 0), args.Error(1)
}

func (m *TariffService) ResolveForEmployee(ctx context.Context, req tariff.ResolveRequest) (tariff.ResolutionResponse, error) {
	args := m.Called(ctx, req)
	return get[tariff.ResolutionResponse](args, 0), args.Error(1)
}

func (m *TariffService) Import(ctx context.Context, doc tariff.ImportDocument) (tariff.ImportSummary, error) {
	args := m.Called(ctx, doc)
	return get[tariff.ImportSummary](args, 0), args.Error(1)
}
