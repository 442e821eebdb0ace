package http

import (
	"encoding/json"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/haulops/payroll-engine/internal/domain/shift"
	"github.com/haulops/payroll-engine/internal/handler/http/response"
	"github.com/haulops/payroll-engine/internal/pkg/jwt"
)

type ShiftHandler interface {
	ClockIn(w http.ResponseWriter, r *http.Request)
	ClockOut(w http.ResponseWriter, r *http.Request)
	RecordTruckUsage(w http.ResponseWriter, r *http.Request)
}

type shiftHandlerImpl struct {
	shiftService shift.ShiftService
}

func NewShiftHandler(shiftService shift.ShiftService) ShiftHandler {
	return &shiftHandlerImpl{shiftService: shiftService}
}

// actingEmployee resolves whom a clock request is for. Only managers may act
// for someone else.
func actingEmployee(r *http.Request, requested string) (string, bool, error) {
	id, err := jwt.IdentityFromContext(r.Context())
	if err != nil {
		return "", false, err
	}
	if requested == "" || requested == id.EmployeeID {
		return id.EmployeeID, true, nil
	}
	return requested, id.IsManager(), nil
}

func (h *shiftHandlerImpl) ClockIn(w http.ResponseWriter, r *http.Request) {
	var req shift.ClockInRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		response.BadRequest(w, "Invalid request body", nil)
		return
	}

	employeeID, allowed, err := actingEmployee(r, req.EmployeeID)
	if err != nil {
		response.HandleError(w, err)
		return
	}
	if !allowed {
		response.Forbidden(w, "Cannot clock in for another employee")
		return
	}
	req.EmployeeID = employeeID

	result, err := h.shiftService.ClockIn(r.Context(), req)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Created(w, "Clocked in", result)
}

func (h *shiftHandlerImpl) ClockOut(w http.ResponseWriter, r *http.Request) {
	var req shift.ClockOutRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		response.BadRequest(w, "Invalid request body", nil)
		return
	}

	employeeID, allowed, err := actingEmployee(r, req.EmployeeID)
	if err != nil {
		response.HandleError(w, err)
		return
	}
	if !allowed {
		response.Forbidden(w, "Cannot clock out for another employee")
		return
	}
	req.EmployeeID = employeeID

	result, err := h.shiftService.ClockOut(r.Context(), req)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.SuccessWithMessage(w, "Clocked out", result)
}

func (h *shiftHandlerImpl) RecordTruckUsage(w http.ResponseWriter, r *http.Request) {
	var req shift.RecordTruckUsageRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		response.BadRequest(w, "Invalid request body", nil)
		return
	}
	req.ShiftID = chi.URLParam(r, "id")

	id, err := jwt.IdentityFromContext(r.Context())
	if err != nil {
		response.HandleError(w, err)
		return
	}
	req.ActorID = id.EmployeeID
	req.ActorManager = id.IsManager()

	result, err := h.shiftService.RecordTruckUsage(r.Context(), req)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Created(w, "Truck usage recorded", result)
}
