package http

import (
	"net/http"

	"github.com/haulops/payroll-engine/internal/domain/report"
	"github.com/haulops/payroll-engine/internal/handler/http/response"
	"github.com/haulops/payroll-engine/internal/pkg/validator"
)

const xlsxContentType = "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet"

type ReportHandler interface {
	Daily(w http.ResponseWriter, r *http.Request)
	Monthly(w http.ResponseWriter, r *http.Request)
	ExportMonthly(w http.ResponseWriter, r *http.Request)
}

type reportHandlerImpl struct {
	reportService report.ReportService
}

func NewReportHandler(reportService report.ReportService) ReportHandler {
	return &reportHandlerImpl{reportService: reportService}
}

func (h *reportHandlerImpl) Daily(w http.ResponseWriter, r *http.Request) {
	req := report.DailyReportRequest{Date: r.URL.Query().Get("date")}

	result, err := h.reportService.DailyReport(r.Context(), req)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Success(w, result)
}

func monthlyRequest(r *http.Request) (report.MonthlyReportRequest, bool) {
	year, month, ok := validator.ParsePeriod(r.URL.Query().Get("year"), r.URL.Query().Get("month"))
	return report.MonthlyReportRequest{Year: year, Month: month}, ok
}

func (h *reportHandlerImpl) Monthly(w http.ResponseWriter, r *http.Request) {
	req, ok := monthlyRequest(r)
	if !ok {
		response.BadRequest(w, "year and month are required", nil)
		return
	}

	result, err := h.reportService.MonthlyReport(r.Context(), req)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Success(w, result)
}

func (h *reportHandlerImpl) ExportMonthly(w http.ResponseWriter, r *http.Request) {
	req, ok := monthlyRequest(r)
	if !ok {
		response.BadRequest(w, "year and month are required", nil)
		return
	}

	body, filename, err := h.reportService.ExportMonthlyReport(r.Context(), req)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.File(w, xlsxContentType, filename, body)
}
