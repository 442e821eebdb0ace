package report

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/haulops/payroll-engine/internal/domain/attendance"
	"github.com/haulops/payroll-engine/internal/domain/employee"
	"github.com/haulops/payroll-engine/internal/domain/report"
	"github.com/haulops/payroll-engine/internal/domain/shift"
	"github.com/haulops/payroll-engine/internal/pkg/export"
	"github.com/haulops/payroll-engine/internal/pkg/utils"
	"github.com/shopspring/decimal"
	"golang.org/x/sync/errgroup"
)

type ReportServiceImpl struct {
	employeeRepo  employee.EmployeeRepository
	shiftRepo     shift.ShiftRepository
	attendanceSvc attendance.AttendanceService
	concurrency   int
	now           func() time.Time
}

func NewReportService(
	employeeRepo employee.EmployeeRepository,
	shiftRepo shift.ShiftRepository,
	attendanceSvc attendance.AttendanceService,
	concurrency int,
) report.ReportService {
	if concurrency <= 0 {
		concurrency = 1
	}
	return &ReportServiceImpl{
		employeeRepo:  employeeRepo,
		shiftRepo:     shiftRepo,
		attendanceSvc: attendanceSvc,
		concurrency:   concurrency,
		now:           time.Now,
	}
}

func employeeInfo(e employee.Employee) report.EmployeeInfo {
	return report.EmployeeInfo{
		ID:       e.ID,
		Code:     e.EmployeeCode,
		FullName: e.FullName,
		Role:     string(e.Role),
	}
}

// DailyReport reconstructs one day for every active employee. A failure for
// one employee marks that row unknown instead of failing the report.
func (s *ReportServiceImpl) DailyReport(ctx context.Context, req report.DailyReportRequest) (report.DailyReport, error) {
	if err := req.Validate(); err != nil {
		return report.DailyReport{}, err
	}
	day := req.Day()

	employees, err := s.employeeRepo.ListActive(ctx)
	if err != nil {
		return report.DailyReport{}, fmt.Errorf("failed to list employees: %w", err)
	}

	rows := make([]report.DailyRow, len(employees))
	var g errgroup.Group
	g.SetLimit(s.concurrency)
	for i, emp := range employees {
		i, emp := i, emp
		g.Go(func() error {
			row := report.DailyRow{Employee: employeeInfo(emp)}
			ledger, err := s.attendanceSvc.ReconstructFor(ctx, emp, day, day)
			if err != nil || len(ledger.Days) == 0 {
				slog.Warn("daily report row unavailable", "employee_id", emp.ID, "date", req.Date, "error", err)
				row.Unknown = true
			} else {
				rec := attendance.NewDayRecordResponse(ledger.Days[0])
				row.Day = &rec
				row.Unknown = ledger.Days[0].Type == attendance.DayUnknown
			}
			rows[i] = row
			return nil
		})
	}
	_ = g.Wait()

	if err := ctx.Err(); err != nil {
		return report.DailyReport{}, err
	}

	return report.DailyReport{
		Date:        day.Format("2006-01-02"),
		GeneratedAt: s.now().UTC().Format(time.RFC3339),
		Rows:        rows,
	}, nil
}

func (s *ReportServiceImpl) MonthlyReport(ctx context.Context, req report.MonthlyReportRequest) (report.MonthlyReport, error) {
	if err := req.Validate(); err != nil {
		return report.MonthlyReport{}, err
	}
	start, end := utils.MonthBounds(req.Year, time.Month(req.Month))

	employees, err := s.employeeRepo.ListActive(ctx)
	if err != nil {
		return report.MonthlyReport{}, fmt.Errorf("failed to list employees: %w", err)
	}

	rows := make([]report.MonthlyRow, len(employees))
	var g errgroup.Group
	g.SetLimit(s.concurrency)
	for i, emp := range employees {
		i, emp := i, emp
		g.Go(func() error {
			rows[i] = s.monthlyRow(ctx, emp, start, end)
			return nil
		})
	}
	_ = g.Wait()

	if err := ctx.Err(); err != nil {
		return report.MonthlyReport{}, err
	}

	totals := report.UsageTotals{Kilometers: decimal.Zero, FuelLiters: decimal.Zero}
	for _, row := range rows {
		totals = totals.Add(row.Usage)
	}

	return report.MonthlyReport{
		Year:        req.Year,
		Month:       req.Month,
		PeriodStart: start.Format("2006-01-02"),
		PeriodEnd:   end.Format("2006-01-02"),
		GeneratedAt: s.now().UTC().Format(time.RFC3339),
		Rows:        rows,
		Totals:      totals,
	}, nil
}

func (s *ReportServiceImpl) monthlyRow(ctx context.Context, emp employee.Employee, start, end time.Time) report.MonthlyRow {
	row := report.MonthlyRow{
		Employee: employeeInfo(emp),
		Usage:    report.UsageTotals{Kilometers: decimal.Zero, FuelLiters: decimal.Zero},
	}

	ledger, err := s.attendanceSvc.ReconstructFor(ctx, emp, start, end)
	if err != nil {
		slog.Warn("monthly report row unavailable", "employee_id", emp.ID, "error", err)
		row.Unknown = true
		return row
	}
	summary := attendance.NewSummaryResponse(ledger.Summary)
	row.Summary = &summary

	shifts, err := s.shiftRepo.ListByEmployeeAndRange(ctx, emp.ID, start, end)
	if err != nil {
		slog.Warn("monthly report usage unavailable", "employee_id", emp.ID, "error", err)
		row.Unknown = true
		return row
	}
	u := shift.SumUsage(shifts, s.now())
	row.Usage = report.UsageTotals{
		Kilometers:     u.Kilometers,
		FuelLiters:     u.FuelLiters,
		Trips:          u.Trips,
		Unloadings:     u.Unloadings,
		DrivingMinutes: u.DrivingMinutes,
	}
	return row
}

func (s *ReportServiceImpl) ExportMonthlyReport(ctx context.Context, req report.MonthlyReportRequest) ([]byte, string, error) {
	r, err := s.MonthlyReport(ctx, req)
	if err != nil {
		return nil, "", err
	}

	out, err := export.MonthlyReportXLSX(r)
	if err != nil {
		return nil, "", err
	}
	return out, export.MonthlyReportFileName(req.Year, req.Month), nil
}
