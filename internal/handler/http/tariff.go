package http

import (
	"net/http"

	"github.com/haulops/payroll-engine/internal/domain/tariff"
	"github.com/haulops/payroll-engine/internal/handler/http/response"
)

type TariffHandler interface {
	Resolve(w http.ResponseWriter, r *http.Request)
}

type tariffHandlerImpl struct {
	tariffService tariff.TariffService
}

func NewTariffHandler(tariffService tariff.TariffService) TariffHandler {
	return &tariffHandlerImpl{tariffService: tariffService}
}

func (h *tariffHandlerImpl) Resolve(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()
	req := tariff.ResolveRequest{
		Concept:    q.Get("concept"),
		EmployeeID: q.Get("employee_id"),
		AsOf:       q.Get("as_of"),
	}

	result, err := h.tariffService.ResolveForEmployee(r.Context(), req)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Success(w, result)
}
