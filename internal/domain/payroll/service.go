package payroll

import (
	"context"
)

// Generator turns one employee-month into payslip lines. It never writes.
type Generator interface {
	Generate(ctx context.Context, employeeID string, year, month int) ([]Line, error)
}

type PayrollService interface {
	Generator

	// Preview generates lines without persisting them
	Preview(ctx context.Context, req PeriodRequest) (PayslipResponse, error)

	// Publish regenerates and replaces the payslip atomically
	Publish(ctx context.Context, req PeriodRequest) (PayslipResponse, error)

	// PublishMonth publishes for every active employee
	PublishMonth(ctx context.Context, req MonthRequest) (BatchResponse, error)

	GetPayslip(ctx context.Context, id string) (PayslipResponse, error)
	ListPayslips(ctx context.Context, filter PayslipFilter) ([]PayslipResponse, error)

	// RenderPayslipPDF returns the PDF bytes and a suggested file name
	RenderPayslipPDF(ctx context.Context, id string) ([]byte, string, error)
}
