package payroll

import (
	"context"

	"github.com/shopspring/decimal"
)

type PayslipRepository interface {
	// UpsertHeader creates the (employee, year, month) payslip or refreshes its
	// total and generation time
	UpsertHeader(ctx context.Context, payslip Payslip) (Payslip, error)

	// ReplaceLines deletes every line of the payslip and inserts lines
	ReplaceLines(ctx context.Context, payslipID string, lines []Line) error

	// GetByID returns ErrPayslipNotFound when missing; lines are loaded in order
	GetByID(ctx context.Context, id string) (Payslip, error)

	List(ctx context.Context, filter PayslipFilter) ([]Payslip, error)
}

type LitersRepository interface {
	// GetLiters returns zero when nothing was recorded for the month
	GetLiters(ctx context.Context, employeeID string, year, month int) (decimal.Decimal, error)
}
