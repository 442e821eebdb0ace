package app

import (
	"github.com/haulops/payroll-engine/internal/config"
	"github.com/haulops/payroll-engine/internal/domain/attendance"
	"github.com/haulops/payroll-engine/internal/domain/employee"
	"github.com/haulops/payroll-engine/internal/domain/payroll"
	"github.com/haulops/payroll-engine/internal/domain/report"
	"github.com/haulops/payroll-engine/internal/domain/shift"
	"github.com/haulops/payroll-engine/internal/domain/tariff"
	"github.com/haulops/payroll-engine/internal/pkg/database"
	"github.com/haulops/payroll-engine/internal/repository/postgresql"
	attendanceService "github.com/haulops/payroll-engine/internal/service/attendance"
	holidayService "github.com/haulops/payroll-engine/internal/service/holiday"
	payrollService "github.com/haulops/payroll-engine/internal/service/payroll"
	reportService "github.com/haulops/payroll-engine/internal/service/report"
	shiftService "github.com/haulops/payroll-engine/internal/service/shift"
	tariffService "github.com/haulops/payroll-engine/internal/service/tariff"
)

// Services is the wired service graph shared by the API server and payrollctl.
type Services struct {
	Employees  employee.EmployeeRepository
	Shift      shift.ShiftService
	Attendance attendance.AttendanceService
	Tariff     tariff.TariffService
	Payroll    payroll.PayrollService
	Report     report.ReportService
}

func NewServices(cfg *config.Config, db *database.DB) *Services {
	loc := cfg.Location()
	tx := postgresql.NewTransactor(db)

	employeeRepo := postgresql.NewEmployeeRepository(db)
	shiftRepo := postgresql.NewShiftRepository(db)
	absenceRepo := postgresql.NewAbsenceRepository(db)
	holidayRepo := postgresql.NewHolidayRepository(db)
	compensationRepo := postgresql.NewCompensationRepository(db)
	tariffRepo := postgresql.NewTariffRepository(db)
	payslipRepo := postgresql.NewPayslipRepository(db)
	litersRepo := postgresql.NewLitersRepository(db)

	compensationSvc := holidayService.NewCompensationService(tx, holidayRepo, compensationRepo, employeeRepo)
	shiftSvc := shiftService.NewShiftService(shiftRepo, employeeRepo, compensationSvc, loc)
	attendanceSvc := attendanceService.NewAttendanceService(employeeRepo, shiftRepo, absenceRepo, holidayRepo, loc)
	tariffSvc := tariffService.NewTariffService(tx, tariffRepo, employeeRepo, loc)

	generator := payrollService.NewGenerator(
		employeeRepo,
		shiftRepo,
		absenceRepo,
		litersRepo,
		tariffSvc,
		attendanceSvc,
		payrollService.Settings{
			DefaultPerDiemCap:          cfg.Payroll.DefaultPerDiemCap,
			DefaultProductivityPercent: cfg.Payroll.DefaultProductivityPercent,
			Concurrency:                cfg.Payroll.ReportConcurrency,
		},
	)

	return &Services{
		Employees:  employeeRepo,
		Shift:      shiftSvc,
		Attendance: attendanceSvc,
		Tariff:     tariffSvc,
		Payroll:    payrollService.NewPayrollService(tx, payslipRepo, employeeRepo, generator),
		Report:     reportService.NewReportService(employeeRepo, shiftRepo, attendanceSvc, cfg.Payroll.ReportConcurrency),
	}
}

// OpenDB connects to PostgreSQL using the configured pool limits.
func OpenDB(cfg *config.Config) (*database.DB, error) {
	return database.NewPostgreSQLDB(cfg.DatabaseURL(), database.PoolOptions{
		MaxConns: cfg.Database.MaxConns,
		MinConns: cfg.Database.MinConns,
	})
}
