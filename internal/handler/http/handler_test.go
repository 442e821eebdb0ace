package http

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/haulops/payroll-engine/internal/config"
	"github.com/haulops/payroll-engine/internal/domain/attendance"
	"github.com/haulops/payroll-engine/internal/domain/employee"
	"github.com/haulops/payroll-engine/internal/domain/payroll"
	"github.com/haulops/payroll-engine/internal/domain/shift"
	"github.com/haulops/payroll-engine/internal/mocks"
	"github.com/haulops/payroll-engine/internal/pkg/jwt"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

const (
	handlerTestSecret = "test-secret-key-for-jwt"
	driverID          = "0b8f7d9e-3c44-4a51-9a57-0d6f2b1e4c10"
	adminID           = "6a1d2c3b-8e7f-4d60-b5a4-93c2e1f0a7b8"
	payslipID         = "c7e6d5f4-1a2b-4c3d-8e9f-0a1b2c3d4e5f"
)

type routerFixture struct {
	router     http.Handler
	jwt        jwt.Service
	shifts     *mocks.ShiftService
	attendance *mocks.AttendanceService
	payroll    *mocks.PayrollService
}

func newRouterFixture(t *testing.T) *routerFixture {
	t.Helper()
	cfg := &config.Config{App: config.AppConfig{
		Env:            "test",
		LogLevel:       "error",
		AllowedOrigins: []string{"http://localhost:3000"},
	}}

	f := &routerFixture{
		jwt:        jwt.NewJWTService(handlerTestSecret, "1h"),
		shifts:     &mocks.ShiftService{},
		attendance: &mocks.AttendanceService{},
		payroll:    &mocks.PayrollService{},
	}
	f.router = NewRouter(cfg, f.jwt, Handlers{
		Shift:      NewShiftHandler(f.shifts),
		Attendance: NewAttendanceHandler(f.attendance),
		Tariff:     NewTariffHandler(nil),
		Payroll:    NewPayrollHandler(f.payroll),
		Report:     NewReportHandler(nil),
	})
	return f
}

func (f *routerFixture) do(t *testing.T, method, path string, role employee.Role, employeeID string, body any) *httptest.ResponseRecorder {
	t.Helper()
	var buf bytes.Buffer
	if body != nil {
		require.NoError(t, json.NewEncoder(&buf).Encode(body))
	}
	req := httptest.NewRequest(method, path, &buf)
	req.Header.Set("Content-Type", "application/json")
	if employeeID != "" {
		token, _, err := f.jwt.GenerateAccessToken(employeeID, role)
		require.NoError(t, err)
		req.Header.Set("Authorization", "Bearer "+token)
	}

	rec := httptest.NewRecorder()
	f.router.ServeHTTP(rec, req)
	return rec
}

func TestRouter_RequiresToken(t *testing.T) {
	f := newRouterFixture(t)

	rec := f.do(t, http.MethodPost, "/api/v1/shifts/clock-in", "", "", map[string]any{})

	assert.Equal(t, http.StatusUnauthorized, rec.Code)
	f.shifts.AssertNotCalled(t, "ClockIn", mock.Anything, mock.Anything)
}

func TestRouter_Heartbeat(t *testing.T) {
	f := newRouterFixture(t)

	rec := f.do(t, http.MethodGet, "/health", "", "", nil)

	assert.Equal(t, http.StatusOK, rec.Code)
}

func TestShiftHandler_ClockIn(t *testing.T) {
	t.Run("defaults to the caller", func(t *testing.T) {
		f := newRouterFixture(t)
		f.shifts.On("ClockIn", mock.Anything, shift.ClockInRequest{EmployeeID: driverID}).
			Return(shift.ShiftResponse{ID: "s-1", EmployeeID: driverID, Status: "open"}, nil).Once()

		rec := f.do(t, http.MethodPost, "/api/v1/shifts/clock-in", employee.RoleDriver, driverID, map[string]any{})

		assert.Equal(t, http.StatusCreated, rec.Code)
		assert.Contains(t, rec.Body.String(), `"id":"s-1"`)
		f.shifts.AssertExpectations(t)
	})

	t.Run("driver cannot clock in someone else", func(t *testing.T) {
		f := newRouterFixture(t)

		rec := f.do(t, http.MethodPost, "/api/v1/shifts/clock-in", employee.RoleDriver, driverID,
			map[string]any{"employee_id": adminID})

		assert.Equal(t, http.StatusForbidden, rec.Code)
		f.shifts.AssertNotCalled(t, "ClockIn", mock.Anything, mock.Anything)
	})

	t.Run("manager may clock in someone else", func(t *testing.T) {
		f := newRouterFixture(t)
		f.shifts.On("ClockIn", mock.Anything, shift.ClockInRequest{EmployeeID: driverID}).
			Return(shift.ShiftResponse{ID: "s-2", EmployeeID: driverID}, nil).Once()

		rec := f.do(t, http.MethodPost, "/api/v1/shifts/clock-in", employee.RoleAdmin, adminID,
			map[string]any{"employee_id": driverID})

		assert.Equal(t, http.StatusCreated, rec.Code)
		f.shifts.AssertExpectations(t)
	})

	t.Run("open shift conflicts", func(t *testing.T) {
		f := newRouterFixture(t)
		f.shifts.On("ClockIn", mock.Anything, mock.Anything).
			Return(shift.ShiftResponse{}, shift.ErrShiftAlreadyOpen).Once()

		rec := f.do(t, http.MethodPost, "/api/v1/shifts/clock-in", employee.RoleDriver, driverID, map[string]any{})

		assert.Equal(t, http.StatusConflict, rec.Code)
	})

	t.Run("malformed body", func(t *testing.T) {
		f := newRouterFixture(t)
		token, _, err := f.jwt.GenerateAccessToken(driverID, employee.RoleDriver)
		require.NoError(t, err)
		req := httptest.NewRequest(http.MethodPost, "/api/v1/shifts/clock-in", bytes.NewBufferString("{"))
		req.Header.Set("Authorization", "Bearer "+token)
		rec := httptest.NewRecorder()

		f.router.ServeHTTP(rec, req)

		assert.Equal(t, http.StatusBadRequest, rec.Code)
	})
}

func TestShiftHandler_ClockOutWithoutOpenShift(t *testing.T) {
	f := newRouterFixture(t)
	f.shifts.On("ClockOut", mock.Anything, shift.ClockOutRequest{EmployeeID: driverID}).
		Return(shift.ShiftResponse{}, shift.ErrNoOpenShift).Once()

	rec := f.do(t, http.MethodPost, "/api/v1/shifts/clock-out", employee.RoleDriver, driverID, map[string]any{})

	assert.Equal(t, http.StatusBadRequest, rec.Code)
	f.shifts.AssertExpectations(t)
}

func TestShiftHandler_RecordTruckUsageTakesShiftFromPath(t *testing.T) {
	f := newRouterFixture(t)
	f.shifts.On("RecordTruckUsage", mock.Anything, mock.MatchedBy(func(req shift.RecordTruckUsageRequest) bool {
		return req.ShiftID == "shift-42" && req.ActorID == driverID && !req.ActorManager
	})).Return(shift.TruckUsageResponse{}, nil).Once()

	rec := f.do(t, http.MethodPost, "/api/v1/shifts/shift-42/truck-usages", employee.RoleDriver, driverID,
		map[string]any{"trips": 2})

	assert.Equal(t, http.StatusCreated, rec.Code)
	f.shifts.AssertExpectations(t)
}

func TestShiftHandler_RecordTruckUsageOnForeignShiftIsForbidden(t *testing.T) {
	f := newRouterFixture(t)
	f.shifts.On("RecordTruckUsage", mock.Anything, mock.MatchedBy(func(req shift.RecordTruckUsageRequest) bool {
		return req.ShiftID == "shift-77" && req.ActorID == driverID
	})).Return(shift.TruckUsageResponse{}, shift.ErrShiftNotOwned).Once()

	rec := f.do(t, http.MethodPost, "/api/v1/shifts/shift-77/truck-usages", employee.RoleDriver, driverID,
		map[string]any{"trips": 1})

	assert.Equal(t, http.StatusForbidden, rec.Code)
	f.shifts.AssertExpectations(t)
}

func TestAttendanceHandler_GetMyMonth(t *testing.T) {
	t.Run("uses the caller", func(t *testing.T) {
		f := newRouterFixture(t)
		f.attendance.On("GetMonthly", mock.Anything, driverID, 2024, time.May).
			Return(attendance.Ledger{EmployeeID: driverID}, nil).Once()

		rec := f.do(t, http.MethodGet, "/api/v1/attendance/me?year=2024&month=5", employee.RoleDriver, driverID, nil)

		assert.Equal(t, http.StatusOK, rec.Code)
		f.attendance.AssertExpectations(t)
	})

	t.Run("rejects a bad month", func(t *testing.T) {
		f := newRouterFixture(t)

		rec := f.do(t, http.MethodGet, "/api/v1/attendance/me?year=2024&month=13", employee.RoleDriver, driverID, nil)

		assert.Equal(t, http.StatusBadRequest, rec.Code)
	})

	t.Run("unknown employee", func(t *testing.T) {
		f := newRouterFixture(t)
		f.attendance.On("GetMonthly", mock.Anything, driverID, 2024, time.May).
			Return(attendance.Ledger{}, employee.ErrEmployeeNotFound).Once()

		rec := f.do(t, http.MethodGet, "/api/v1/attendance/me?year=2024&month=5", employee.RoleDriver, driverID, nil)

		assert.Equal(t, http.StatusNotFound, rec.Code)
	})
}

func TestAttendanceHandler_EmployeeLedgerIsManagerOnly(t *testing.T) {
	f := newRouterFixture(t)

	rec := f.do(t, http.MethodGet, "/api/v1/attendance/employees/"+adminID+"?start_date=2024-05-01&end_date=2024-05-31",
		employee.RoleDriver, driverID, nil)

	assert.Equal(t, http.StatusForbidden, rec.Code)
	f.attendance.AssertNotCalled(t, "Reconstruct", mock.Anything, mock.Anything, mock.Anything, mock.Anything)
}

func TestPayrollHandler(t *testing.T) {
	t.Run("non-manager is rejected", func(t *testing.T) {
		f := newRouterFixture(t)

		rec := f.do(t, http.MethodGet, "/api/v1/payroll/payslips", employee.RoleDriver, driverID, nil)

		assert.Equal(t, http.StatusForbidden, rec.Code)
	})

	t.Run("publish", func(t *testing.T) {
		f := newRouterFixture(t)
		req := payroll.PeriodRequest{EmployeeID: driverID, Year: 2024, Month: 5}
		f.payroll.On("Publish", mock.Anything, req).
			Return(payroll.PayslipResponse{ID: payslipID, EmployeeID: driverID, Year: 2024, Month: 5}, nil).Once()

		rec := f.do(t, http.MethodPost, "/api/v1/payroll/payslips", employee.RoleAdmin, adminID, req)

		assert.Equal(t, http.StatusCreated, rec.Code)
		assert.Contains(t, rec.Body.String(), payslipID)
		f.payroll.AssertExpectations(t)
	})

	t.Run("list filters by employee and year", func(t *testing.T) {
		f := newRouterFixture(t)
		f.payroll.On("ListPayslips", mock.Anything, mock.MatchedBy(func(filter payroll.PayslipFilter) bool {
			return filter.EmployeeID != nil && *filter.EmployeeID == driverID && filter.Year != nil && *filter.Year == 2024
		})).Return([]payroll.PayslipResponse{{ID: payslipID}}, nil).Once()

		rec := f.do(t, http.MethodGet, "/api/v1/payroll/payslips?employee_id="+driverID+"&year=2024",
			employee.RoleAdmin, adminID, nil)

		assert.Equal(t, http.StatusOK, rec.Code)
		assert.Contains(t, rec.Body.String(), `"total_items":1`)
		f.payroll.AssertExpectations(t)
	})

	t.Run("get with invalid id", func(t *testing.T) {
		f := newRouterFixture(t)

		rec := f.do(t, http.MethodGet, "/api/v1/payroll/payslips/not-a-uuid", employee.RoleAdmin, adminID, nil)

		assert.Equal(t, http.StatusBadRequest, rec.Code)
	})

	t.Run("missing payslip", func(t *testing.T) {
		f := newRouterFixture(t)
		f.payroll.On("GetPayslip", mock.Anything, payslipID).
			Return(payroll.PayslipResponse{}, payroll.ErrPayslipNotFound).Once()

		rec := f.do(t, http.MethodGet, "/api/v1/payroll/payslips/"+payslipID, employee.RoleAdmin, adminID, nil)

		assert.Equal(t, http.StatusNotFound, rec.Code)
	})

	t.Run("pdf download", func(t *testing.T) {
		f := newRouterFixture(t)
		f.payroll.On("RenderPayslipPDF", mock.Anything, payslipID).
			Return([]byte("%PDF-1.3"), "payslip-A-004-2024-05.pdf", nil).Once()

		rec := f.do(t, http.MethodGet, "/api/v1/payroll/payslips/"+payslipID+"/pdf", employee.RoleAdmin, adminID, nil)

		assert.Equal(t, http.StatusOK, rec.Code)
		assert.Equal(t, "application/pdf", rec.Header().Get("Content-Type"))
		assert.Contains(t, rec.Header().Get("Content-Disposition"), "payslip-A-004-2024-05.pdf")
		assert.Equal(t, "%PDF-1.3", rec.Body.String())
	})
}
