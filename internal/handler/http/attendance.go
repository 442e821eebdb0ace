package http

import (
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/haulops/payroll-engine/internal/domain/attendance"
	"github.com/haulops/payroll-engine/internal/handler/http/response"
	"github.com/haulops/payroll-engine/internal/pkg/jwt"
	"github.com/haulops/payroll-engine/internal/pkg/validator"
)

type AttendanceHandler interface {
	GetMyMonth(w http.ResponseWriter, r *http.Request)
	GetEmployeeLedger(w http.ResponseWriter, r *http.Request)
}

type attendanceHandlerImpl struct {
	attendanceService attendance.AttendanceService
}

func NewAttendanceHandler(attendanceService attendance.AttendanceService) AttendanceHandler {
	return &attendanceHandlerImpl{attendanceService: attendanceService}
}

func (h *attendanceHandlerImpl) GetMyMonth(w http.ResponseWriter, r *http.Request) {
	id, err := jwt.IdentityFromContext(r.Context())
	if err != nil {
		response.HandleError(w, err)
		return
	}

	year, month, ok := validator.ParsePeriod(r.URL.Query().Get("year"), r.URL.Query().Get("month"))
	if !ok {
		response.BadRequest(w, "year and month are required", map[string]string{"period": "must be a valid year and month"})
		return
	}

	ledger, err := h.attendanceService.GetMonthly(r.Context(), id.EmployeeID, year, time.Month(month))
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Success(w, attendance.NewLedgerResponse(ledger))
}

func (h *attendanceHandlerImpl) GetEmployeeLedger(w http.ResponseWriter, r *http.Request) {
	req := attendance.PeriodRequest{
		EmployeeID: chi.URLParam(r, "id"),
		StartDate:  r.URL.Query().Get("start_date"),
		EndDate:    r.URL.Query().Get("end_date"),
	}
	if err := req.Validate(); err != nil {
		response.HandleError(w, err)
		return
	}

	start, end := req.Range()
	ledger, err := h.attendanceService.Reconstruct(r.Context(), req.EmployeeID, start, end)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Success(w, attendance.NewLedgerResponse(ledger))
}
