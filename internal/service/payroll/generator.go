package payroll

import (
	"context"
	"fmt"
	"time"

	"github.com/haulops/payroll-engine/internal/domain/absence"
	"github.com/haulops/payroll-engine/internal/domain/attendance"
	"github.com/haulops/payroll-engine/internal/domain/employee"
	"github.com/haulops/payroll-engine/internal/domain/payroll"
	"github.com/haulops/payroll-engine/internal/domain/shift"
	"github.com/haulops/payroll-engine/internal/domain/tariff"
	"github.com/haulops/payroll-engine/internal/pkg/precedence"
	"github.com/haulops/payroll-engine/internal/pkg/utils"
	"github.com/shopspring/decimal"
)

// Settings are the fallbacks used when a tariff is not configured.
type Settings struct {
	DefaultPerDiemCap          decimal.Decimal
	DefaultProductivityPercent decimal.Decimal
	Concurrency                int
}

// Generator builds payslip lines. It reads only and keeps no state between calls.
type Generator struct {
	employeeRepo  employee.EmployeeRepository
	shiftRepo     shift.ShiftRepository
	absenceRepo   absence.AbsenceRepository
	litersRepo    payroll.LitersRepository
	resolver      tariff.Resolver
	attendanceSvc attendance.AttendanceService
	settings      Settings
	now           func() time.Time
}

func NewGenerator(
	employeeRepo employee.EmployeeRepository,
	shiftRepo shift.ShiftRepository,
	absenceRepo absence.AbsenceRepository,
	litersRepo payroll.LitersRepository,
	resolver tariff.Resolver,
	attendanceSvc attendance.AttendanceService,
	settings Settings,
) *Generator {
	return &Generator{
		employeeRepo:  employeeRepo,
		shiftRepo:     shiftRepo,
		absenceRepo:   absenceRepo,
		litersRepo:    litersRepo,
		resolver:      resolver,
		attendanceSvc: attendanceSvc,
		settings:      settings,
		now:           time.Now,
	}
}

// period is one employee-month being generated.
type period struct {
	emp   employee.Employee
	year  int
	month time.Month
	start time.Time
	end   time.Time
}

// accrual is the role-specific part of a payslip.
type accrual interface {
	lines(ctx context.Context, g *Generator, p period) ([]payroll.Line, error)
}

func accrualFor(role employee.Role) accrual {
	switch role {
	case employee.RoleDriver, employee.RoleMechanic:
		return fieldAccrual{}
	case employee.RoleOffice:
		return officeAccrual{}
	case employee.RoleCommercial:
		return commercialAccrual{}
	default:
		return noAccrual{}
	}
}

// Generate implements payroll.Generator.
func (g *Generator) Generate(ctx context.Context, employeeID string, year, month int) ([]payroll.Line, error) {
	if !validPeriod(year, month) {
		return nil, payroll.ErrInvalidPeriod
	}

	emp, err := g.employeeRepo.GetByID(ctx, employeeID)
	if err != nil {
		return nil, err
	}

	start, end := utils.MonthBounds(year, time.Month(month))
	p := period{emp: emp, year: year, month: time.Month(month), start: start, end: end}

	lines, err := accrualFor(emp.Role).lines(ctx, g, p)
	if err != nil {
		return nil, err
	}

	common, err := g.commonLines(ctx, p, lines)
	if err != nil {
		return nil, err
	}

	return payroll.Renumber(append(lines, common...)), nil
}

func validPeriod(year, month int) bool {
	return year >= 2000 && year <= 9999 && month >= 1 && month <= 12
}

// resolve uses the last day of the period as the tariff reference date.
func (g *Generator) resolve(ctx context.Context, p period, code tariff.ConceptCode) (tariff.Resolution, error) {
	r, err := g.resolver.Resolve(ctx, code, p.emp.Role, p.emp.ID, p.end)
	if err != nil {
		return tariff.Resolution{}, fmt.Errorf("failed to resolve %s: %w", code, err)
	}
	return r, nil
}

// commonLines are appended for every role when configured above zero.
func (g *Generator) commonLines(ctx context.Context, p period, roleLines []payroll.Line) ([]payroll.Line, error) {
	var lines []payroll.Line

	hasPerDiem := false
	for _, l := range roleLines {
		if l.Code.IsPerDiem() {
			hasPerDiem = true
			break
		}
	}

	flat := []struct {
		concept     tariff.ConceptCode
		code        payroll.LineCode
		description string
		skip        bool
	}{
		{tariff.ConceptFixedProductivity, payroll.LineFixedProductivity, "Fixed productivity", false},
		{tariff.ConceptIncentives, payroll.LineIncentives, "Incentives", false},
		{tariff.ConceptPerDiem, payroll.LinePerDiem, "Per-diem", hasPerDiem},
		{tariff.ConceptFixedPerDiemLegacy, payroll.LineFixedPerDiemLegacy, "Fixed per-diem", false},
	}

	for _, f := range flat {
		if f.skip {
			continue
		}
		r, err := g.resolve(ctx, p, f.concept)
		if err != nil {
			return nil, err
		}
		if !r.Positive() {
			continue
		}
		lines = append(lines, flatLine(f.code, f.description, r.Value, fmt.Sprintf("configured at %s scope", r.Scope)))
	}
	return lines, nil
}

func flatLine(code payroll.LineCode, description string, amount decimal.Decimal, notes string) payroll.Line {
	amount = money(amount)
	return payroll.Line{
		Code:        code,
		Description: description,
		Quantity:    decimal.NewFromInt(1),
		Rate:        amount,
		Amount:      amount,
		Notes:       notes,
	}
}

func money(d decimal.Decimal) decimal.Decimal {
	return d.Round(2)
}

type fieldAccrual struct{}

func (fieldAccrual) lines(ctx context.Context, g *Generator, p period) ([]payroll.Line, error) {
	shifts, err := g.shiftRepo.ListByEmployeeAndRange(ctx, p.emp.ID, p.start, p.end)
	if err != nil {
		return nil, fmt.Errorf("failed to list shifts: %w", err)
	}
	absences, err := g.absenceRepo.ListApprovedOverlapping(ctx, p.emp.ID, p.start, p.end)
	if err != nil {
		return nil, fmt.Errorf("failed to list absences: %w", err)
	}
	ledger, err := g.attendanceSvc.ReconstructFor(ctx, p.emp, p.start, p.end)
	if err != nil {
		return nil, fmt.Errorf("failed to reconstruct attendance: %w", err)
	}

	usage := shift.SumUsage(shifts, g.now())
	vacationDays, otherDays := absence.DayCounts(absences, p.start, p.end)

	codes := []tariff.ConceptCode{
		tariff.ConceptKmRate,
		tariff.ConceptUnloadingRate,
		tariff.ConceptTripRate,
		tariff.ConceptDriverPerDiemAddend,
		tariff.ConceptPerDiemCap,
		tariff.ConceptProductivityPercent,
		tariff.ConceptAbsenceDeductionRate,
		tariff.ConceptVacationDeductionRate,
	}
	rates := make(map[tariff.ConceptCode]tariff.Resolution, len(codes))
	for _, code := range codes {
		r, err := g.resolve(ctx, p, code)
		if err != nil {
			return nil, err
		}
		rates[code] = r
	}

	capRes := rates[tariff.ConceptPerDiemCap]
	perDiemCap, err := precedence.FirstMatch(
		precedence.Static("tariff", capRes.Value, capRes.Found),
		precedence.Static("default", g.settings.DefaultPerDiemCap, true),
	)
	if err != nil {
		return nil, err
	}
	pct := ClampPercent(rates[tariff.ConceptProductivityPercent].OrDefault(g.settings.DefaultProductivityPercent))

	b := SplitDriverPot(DriverInputs{
		Kilometers:          usage.Kilometers,
		Unloadings:          usage.Unloadings,
		Trips:               usage.Trips,
		KmRate:              rates[tariff.ConceptKmRate].Value,
		UnloadingRate:       rates[tariff.ConceptUnloadingRate].Value,
		TripRate:            rates[tariff.ConceptTripRate].Value,
		PerDiemAddend:       rates[tariff.ConceptDriverPerDiemAddend].Value,
		PerDiemCap:          perDiemCap.Value,
		ProductivityPercent: pct,
		VacationDays:        vacationDays,
		OtherAbsenceDays:    otherDays,
		VacationRate:        rates[tariff.ConceptVacationDeductionRate].Value,
		AbsenceRate:         rates[tariff.ConceptAbsenceDeductionRate].Value,
	})

	deductionNote := "no deduction"
	if b.Deduction.IsPositive() {
		deductionNote = fmt.Sprintf("deduction %s (%d other absence days x %s, %d vacation days x %s)",
			money(b.Deduction), otherDays, rates[tariff.ConceptAbsenceDeductionRate].Value,
			vacationDays, rates[tariff.ConceptVacationDeductionRate].Value)
	}

	var lines []payroll.Line
	if b.PerDiem.IsPositive() {
		lines = append(lines, flatLine(payroll.LinePerDiem, "Per-diem",
			b.PerDiem,
			fmt.Sprintf("%s km, %d unloadings, %d trips over %d days worked; pot %s capped at %s; %s",
				usage.Kilometers, usage.Unloadings, usage.Trips, ledger.Summary.DaysWorked,
				money(b.Pot), money(perDiemCap.Value), deductionNote),
		))
	}
	if amount := money(b.Availability); amount.IsPositive() {
		lines = append(lines, payroll.Line{
			Code:        payroll.LineAvailability,
			Description: "Availability",
			Quantity:    money(b.Remainder),
			Rate:        hundred.Sub(pct).Div(hundred),
			Amount:      amount,
			Notes:       fmt.Sprintf("%s%% of remainder %s", hundred.Sub(pct), money(b.Remainder)),
		})
	}
	if amount := money(b.Productivity); amount.IsPositive() {
		lines = append(lines, payroll.Line{
			Code:        payroll.LineProductivity,
			Description: "Productivity",
			Quantity:    money(b.Remainder),
			Rate:        pct.Div(hundred),
			Amount:      amount,
			Notes:       fmt.Sprintf("%s%% of remainder %s; %s", pct, money(b.Remainder), deductionNote),
		})
	}
	return lines, nil
}

type officeAccrual struct{}

func (officeAccrual) lines(ctx context.Context, g *Generator, p period) ([]payroll.Line, error) {
	if !p.emp.ExtraHours.IsPositive() {
		return nil, nil
	}
	r, err := g.resolve(ctx, p, tariff.ConceptOfficeOvertimeRate)
	if err != nil {
		return nil, err
	}
	amount := money(p.emp.ExtraHours.Mul(r.Value))
	if !amount.IsPositive() {
		return nil, nil
	}
	return []payroll.Line{{
		Code:        payroll.LineOvertime,
		Description: "Overtime",
		Quantity:    p.emp.ExtraHours,
		Rate:        r.Value,
		Amount:      amount,
		Notes:       fmt.Sprintf("%s accumulated extra hours", p.emp.ExtraHours),
	}}, nil
}

type commercialAccrual struct{}

func (commercialAccrual) lines(ctx context.Context, g *Generator, p period) ([]payroll.Line, error) {
	var lines []payroll.Line

	liters, err := g.litersRepo.GetLiters(ctx, p.emp.ID, p.year, int(p.month))
	if err != nil {
		return nil, fmt.Errorf("failed to get liters sold: %w", err)
	}
	if liters.IsPositive() {
		r, err := g.resolve(ctx, p, tariff.ConceptLiterRate)
		if err != nil {
			return nil, err
		}
		if amount := money(liters.Mul(r.Value)); amount.IsPositive() {
			lines = append(lines, payroll.Line{
				Code:        payroll.LineCommercialVariable,
				Description: "Variable pay",
				Quantity:    liters,
				Rate:        r.Value,
				Amount:      amount,
				Notes:       fmt.Sprintf("%s liters sold in %04d-%02d", liters, p.year, int(p.month)),
			})
		}
	}

	perDiem, err := g.resolve(ctx, p, tariff.ConceptCommercialPerDiem)
	if err != nil {
		return nil, err
	}
	if perDiem.Positive() {
		lines = append(lines, flatLine(payroll.LineCommercialPerDiem, "Commercial per-diem", perDiem.Value,
			fmt.Sprintf("configured at %s scope", perDiem.Scope)))
	}
	return lines, nil
}

type noAccrual struct{}

func (noAccrual) lines(context.Context, *Generator, period) ([]payroll.Line, error) {
	return nil, nil
}
