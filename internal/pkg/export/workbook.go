package export

import (
	"fmt"

	"github.com/haulops/payroll-engine/internal/domain/report"
	"github.com/xuri/excelize/v2"
)

const monthlySheet = "Monthly"

var monthlyHeader = []interface{}{
	"Code", "Employee", "Role", "Days worked", "Worked hours", "Overtime hours",
	"Avg punctuality (min)", "Kilometers", "Fuel (l)", "Trips", "Unloadings", "Driving minutes",
}

// MonthlyReportXLSX renders one row per employee plus a totals row.
func MonthlyReportXLSX(r report.MonthlyReport) ([]byte, error) {
	f := excelize.NewFile()
	defer f.Close()

	if err := f.SetSheetName("Sheet1", monthlySheet); err != nil {
		return nil, fmt.Errorf("failed to name sheet: %w", err)
	}
	if err := f.SetSheetRow(monthlySheet, "A1", &monthlyHeader); err != nil {
		return nil, fmt.Errorf("failed to write header: %w", err)
	}
	bold, err := f.NewStyle(&excelize.Style{Font: &excelize.Font{Bold: true}})
	if err != nil {
		return nil, fmt.Errorf("failed to create style: %w", err)
	}
	lastCol, _ := excelize.ColumnNumberToName(len(monthlyHeader))
	if err := f.SetCellStyle(monthlySheet, "A1", lastCol+"1", bold); err != nil {
		return nil, fmt.Errorf("failed to style header: %w", err)
	}
	_ = f.SetColWidth(monthlySheet, "B", "B", 30)

	rowNum := 2
	for _, row := range r.Rows {
		values := []interface{}{row.Employee.Code, row.Employee.FullName, row.Employee.Role}
		if row.Summary != nil {
			var punctuality interface{}
			if row.Summary.AveragePunctuality != nil {
				punctuality = *row.Summary.AveragePunctuality
			}
			values = append(values,
				row.Summary.DaysWorked,
				row.Summary.WorkedHours.InexactFloat64(),
				row.Summary.OvertimeHours.InexactFloat64(),
				punctuality,
			)
		} else {
			values = append(values, "unknown", nil, nil, nil)
		}
		values = append(values,
			row.Usage.Kilometers.InexactFloat64(),
			row.Usage.FuelLiters.InexactFloat64(),
			row.Usage.Trips,
			row.Usage.Unloadings,
			row.Usage.DrivingMinutes,
		)

		cell, _ := excelize.CoordinatesToCellName(1, rowNum)
		if err := f.SetSheetRow(monthlySheet, cell, &values); err != nil {
			return nil, fmt.Errorf("failed to write row %d: %w", rowNum, err)
		}
		rowNum++
	}

	totals := []interface{}{
		"TOTAL", "", "", nil, nil, nil, nil,
		r.Totals.Kilometers.InexactFloat64(),
		r.Totals.FuelLiters.InexactFloat64(),
		r.Totals.Trips,
		r.Totals.Unloadings,
		r.Totals.DrivingMinutes,
	}
	cell, _ := excelize.CoordinatesToCellName(1, rowNum)
	if err := f.SetSheetRow(monthlySheet, cell, &totals); err != nil {
		return nil, fmt.Errorf("failed to write totals: %w", err)
	}
	end, _ := excelize.CoordinatesToCellName(len(monthlyHeader), rowNum)
	if err := f.SetCellStyle(monthlySheet, cell, end, bold); err != nil {
		return nil, fmt.Errorf("failed to style totals: %w", err)
	}

	buf, err := f.WriteToBuffer()
	if err != nil {
		return nil, fmt.Errorf("failed to write workbook: %w", err)
	}
	return buf.Bytes(), nil
}

// MonthlyReportFileName is the download name of a monthly report workbook.
func MonthlyReportFileName(year, month int) string {
	return fmt.Sprintf("attendance-%04d-%02d.xlsx", year, month)
}
