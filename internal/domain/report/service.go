package report

import "context"

// ReportService aggregates attendance across all active employees. It is read-only.
type ReportService interface {
	DailyReport(ctx context.Context, req DailyReportRequest) (DailyReport, error)
	MonthlyReport(ctx context.Context, req MonthlyReportRequest) (MonthlyReport, error)

	// ExportMonthlyReport renders the monthly report as an XLSX workbook
	ExportMonthlyReport(ctx context.Context, req MonthlyReportRequest) ([]byte, string, error)
}
