package export

import (
	"bytes"
	"testing"
	"time"

	"github.com/haulops/payroll-engine/internal/domain/attendance"
	"github.com/haulops/payroll-engine/internal/domain/payroll"
	"github.com/haulops/payroll-engine/internal/domain/report"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/xuri/excelize/v2"
)

func TestPayslipPDF(t *testing.T) {
	name := "José Martínez"
	code := "D-001"
	p := payroll.Payslip{
		ID:           "p1",
		EmployeeID:   "e1",
		Year:         2024,
		Month:        5,
		TotalAmount:  decimal.RequireFromString("1000.00"),
		GeneratedAt:  time.Date(2024, 6, 1, 9, 0, 0, 0, time.UTC),
		EmployeeName: &name,
		EmployeeCode: &code,
		Lines: []payroll.Line{
			{Position: 1, Code: payroll.LinePerDiem, Description: "Per-diem", Quantity: decimal.NewFromInt(1), Rate: decimal.NewFromInt(375), Amount: decimal.NewFromInt(375), Notes: "pot 1000 capped at 375"},
			{Position: 2, Code: payroll.LineAvailability, Description: "Availability", Quantity: decimal.NewFromInt(625), Rate: decimal.RequireFromString("0.5"), Amount: decimal.RequireFromString("312.5")},
		},
	}

	out, err := PayslipPDF(p)
	require.NoError(t, err)
	assert.True(t, bytes.HasPrefix(out, []byte("%PDF-")))
	assert.Equal(t, "payslip-D-001-2024-05.pdf", PayslipFileName(p))

	p.EmployeeCode = nil
	assert.Equal(t, "payslip-e1-2024-05.pdf", PayslipFileName(p))
}

func TestMonthlyReportXLSX(t *testing.T) {
	avg := 3
	r := report.MonthlyReport{
		Year:  2024,
		Month: 5,
		Rows: []report.MonthlyRow{
			{
				Employee: report.EmployeeInfo{ID: "e1", Code: "D-001", FullName: "Ana", Role: "DRIVER"},
				Summary: &attendance.SummaryResponse{
					DaysWorked:         20,
					WorkedHours:        decimal.NewFromInt(160),
					OvertimeHours:      decimal.RequireFromString("2.5"),
					AveragePunctuality: &avg,
				},
				Usage: report.UsageTotals{Kilometers: decimal.NewFromInt(1200), Trips: 10, Unloadings: 4},
			},
			{
				Employee: report.EmployeeInfo{ID: "e2", Code: "O-002", FullName: "Luis", Role: "OFFICE"},
				Unknown:  true,
			},
		},
		Totals: report.UsageTotals{Kilometers: decimal.NewFromInt(1200), Trips: 10, Unloadings: 4},
	}

	out, err := MonthlyReportXLSX(r)
	require.NoError(t, err)

	f, err := excelize.OpenReader(bytes.NewReader(out))
	require.NoError(t, err)
	defer f.Close()

	rows, err := f.GetRows(monthlySheet)
	require.NoError(t, err)
	require.Len(t, rows, 4)
	assert.Equal(t, "Code", rows[0][0])
	assert.Equal(t, "D-001", rows[1][0])
	assert.Equal(t, "20", rows[1][3])
	assert.Equal(t, "unknown", rows[2][3])
	assert.Equal(t, "TOTAL", rows[3][0])
	assert.Equal(t, "1200", rows[3][7])
	assert.Equal(t, "attendance-2024-05.xlsx", MonthlyReportFileName(2024, 5))
}
