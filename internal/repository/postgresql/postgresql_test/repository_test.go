package postgresql_test

import (
	"context"
	"testing"
	"time"

	"github.com/haulops/payroll-engine/internal/domain/employee"
	"github.com/haulops/payroll-engine/internal/domain/holiday"
	"github.com/haulops/payroll-engine/internal/domain/payroll"
	"github.com/haulops/payroll-engine/internal/domain/shift"
	"github.com/haulops/payroll-engine/internal/domain/tariff"
	"github.com/haulops/payroll-engine/internal/repository/postgresql"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestEmployeeRepository(t *testing.T) {
	setup := NewTestDatabase(t)
	ctx := context.Background()
	repo := postgresql.NewEmployeeRepository(setup.DB)

	id, err := setup.insertEmployee(ctx, "D-001", "DRIVER")
	require.NoError(t, err)

	e, err := repo.GetByID(ctx, id)
	require.NoError(t, err)
	assert.Equal(t, employee.RoleDriver, e.Role)
	require.NotNil(t, e.Schedule.Afternoon)
	assert.Equal(t, employee.NewTimeOfDay(17, 0), e.Schedule.Afternoon.End)
	assert.Equal(t, 480, e.Schedule.ExpectedMinutes())

	require.NoError(t, repo.AddBalances(ctx, id, decimal.NewFromInt(1), decimal.RequireFromString("2.5")))
	e, err = repo.GetByID(ctx, id)
	require.NoError(t, err)
	assert.True(t, e.ExtraVacationDays.Equal(decimal.NewFromInt(1)))
	assert.True(t, e.ExtraHours.Equal(decimal.RequireFromString("2.5")))

	_, err = repo.GetByID(ctx, "0190a8f2-0000-7000-8000-00000000ffff")
	assert.ErrorIs(t, err, employee.ErrEmployeeNotFound)
}

func TestShiftRepository_Lifecycle(t *testing.T) {
	setup := NewTestDatabase(t)
	ctx := context.Background()
	repo := postgresql.NewShiftRepository(setup.DB)

	empID, err := setup.insertEmployee(ctx, "D-002", "DRIVER")
	require.NoError(t, err)
	truckID, err := setup.insertTruck(ctx, "1234-ABC")
	require.NoError(t, err)

	day := time.Date(2024, time.May, 6, 0, 0, 0, 0, time.UTC)
	in := time.Date(2024, time.May, 6, 6, 0, 0, 0, time.UTC)

	open, err := repo.Create(ctx, shift.Shift{EmployeeID: empID, Date: day, ClockIn: in, Status: shift.StatusOpen})
	require.NoError(t, err)
	require.NotEmpty(t, open.ID)

	_, err = repo.Create(ctx, shift.Shift{EmployeeID: empID, Date: day, ClockIn: in.Add(time.Hour), Status: shift.StatusOpen})
	assert.ErrorIs(t, err, shift.ErrShiftAlreadyOpen)

	found, err := repo.GetOpenByEmployee(ctx, empID)
	require.NoError(t, err)
	require.NotNil(t, found)
	assert.Equal(t, open.ID, found.ID)

	exists, err := repo.ExistsOnDate(ctx, empID, day)
	require.NoError(t, err)
	assert.True(t, exists)

	distance := decimal.NewFromInt(250)
	ended := in.Add(3 * time.Hour)
	_, err = repo.AddTruckUsage(ctx, shift.TruckUsage{
		ShiftID: open.ID, TruckID: truckID, StartedAt: in, EndedAt: &ended,
		DistanceKm: &distance, FuelLiters: decimal.NewFromInt(60), Trips: 2, Unloadings: 1,
	})
	require.NoError(t, err)

	out := in.Add(9 * time.Hour)
	closed, err := repo.Close(ctx, open.ID, out, decimal.NewFromInt(9), shift.StatusClosed)
	require.NoError(t, err)
	assert.Equal(t, shift.StatusClosed, closed.Status)
	require.NotNil(t, closed.ClockOut)
	assert.True(t, closed.ClockOut.Equal(out))
	require.Len(t, closed.TruckUsages, 1)

	_, err = repo.Close(ctx, open.ID, out, decimal.NewFromInt(9), shift.StatusClosed)
	assert.ErrorIs(t, err, shift.ErrNoOpenShift)

	shifts, err := repo.ListByEmployeeAndRange(ctx, empID, day, day)
	require.NoError(t, err)
	require.Len(t, shifts, 1)
	require.Len(t, shifts[0].TruckUsages, 1)
	assert.True(t, shifts[0].TruckUsages[0].Kilometers().Equal(distance))

	stale, err := repo.ListOpenBefore(ctx, day.AddDate(0, 0, 1))
	require.NoError(t, err)
	assert.Empty(t, stale)
}

func TestCompensationRepository_CreateIfAbsent(t *testing.T) {
	setup := NewTestDatabase(t)
	ctx := context.Background()

	empID, err := setup.insertEmployee(ctx, "D-003", "DRIVER")
	require.NoError(t, err)
	var holidayID string
	require.NoError(t, setup.DB.QueryRow(ctx,
		`INSERT INTO local_holidays (name, date, is_recurring) VALUES ('Fiesta local', '2020-05-15', TRUE) RETURNING id`,
	).Scan(&holidayID))

	holidays := postgresql.NewHolidayRepository(setup.DB)
	h, err := holidays.FindActiveForDate(ctx, time.Date(2024, time.May, 15, 0, 0, 0, 0, time.UTC))
	require.NoError(t, err)
	require.NotNil(t, h)
	assert.Equal(t, holidayID, h.ID)

	shifts := postgresql.NewShiftRepository(setup.DB)
	in := time.Date(2024, time.May, 15, 7, 0, 0, 0, time.UTC)
	s, err := shifts.Create(ctx, shift.Shift{EmployeeID: empID, Date: time.Date(2024, time.May, 15, 0, 0, 0, 0, time.UTC), ClockIn: in, Status: shift.StatusOpen})
	require.NoError(t, err)

	repo := postgresql.NewCompensationRepository(setup.DB)
	c := holiday.Compensation{ShiftID: s.ID, EmployeeID: empID, HolidayID: holidayID, GrantType: holiday.GrantVacationDay, Amount: decimal.NewFromInt(1)}

	first, created, err := repo.CreateIfAbsent(ctx, c)
	require.NoError(t, err)
	assert.True(t, created)
	assert.NotEmpty(t, first.ID)

	_, created, err = repo.CreateIfAbsent(ctx, c)
	require.NoError(t, err)
	assert.False(t, created)

	existing, err := repo.GetByShiftID(ctx, s.ID)
	require.NoError(t, err)
	require.NotNil(t, existing)
	assert.Equal(t, first.ID, existing.ID)
}

func TestTariffRepository_ReplaceRate(t *testing.T) {
	setup := NewTestDatabase(t)
	ctx := context.Background()
	repo := postgresql.NewTariffRepository(setup.DB)

	concept, err := repo.UpsertConcept(ctx, tariff.Concept{Code: tariff.ConceptKmRate, Name: "Km rate"})
	require.NoError(t, err)

	driver := employee.RoleDriver
	_, err = repo.ReplaceRate(ctx, tariff.Rate{ConceptID: concept.ID, Role: &driver, Value: decimal.RequireFromString("0.10")})
	require.NoError(t, err)
	_, err = repo.ReplaceRate(ctx, tariff.Rate{ConceptID: concept.ID, Role: &driver, Value: decimal.RequireFromString("0.12")})
	require.NoError(t, err)
	_, err = repo.ReplaceRate(ctx, tariff.Rate{ConceptID: concept.ID, Value: decimal.RequireFromString("0.08")})
	require.NoError(t, err)

	rates, err := repo.ListActiveRates(ctx, tariff.ConceptKmRate)
	require.NoError(t, err)
	require.Len(t, rates, 2)
	assert.True(t, rates[0].Value.Equal(decimal.RequireFromString("0.12")))
	assert.Equal(t, tariff.ScopeRole, rates[0].Scope())
	assert.Equal(t, tariff.ScopeGlobal, rates[1].Scope())

	empty, err := repo.ListActiveRates(ctx, tariff.ConceptLiterRate)
	require.NoError(t, err)
	assert.Empty(t, empty)
}

func TestPayslipRepository_PublishTwiceReplacesLines(t *testing.T) {
	setup := NewTestDatabase(t)
	ctx := context.Background()
	repo := postgresql.NewPayslipRepository(setup.DB)
	tx := postgresql.NewTransactor(setup.DB)

	empID, err := setup.insertEmployee(ctx, "C-001", "COMMERCIAL")
	require.NoError(t, err)

	publish := func(lines []payroll.Line) payroll.Payslip {
		var stored payroll.Payslip
		require.NoError(t, tx.WithinTx(ctx, func(txCtx context.Context) error {
			header, err := repo.UpsertHeader(txCtx, payroll.Payslip{
				EmployeeID: empID, Year: 2024, Month: 5, TotalAmount: payroll.Total(lines), GeneratedAt: time.Now().UTC(),
			})
			if err != nil {
				return err
			}
			stored = header
			return repo.ReplaceLines(txCtx, header.ID, payroll.Renumber(lines))
		}))
		return stored
	}

	line := func(code payroll.LineCode, amount string) payroll.Line {
		a := decimal.RequireFromString(amount)
		return payroll.Line{Code: code, Description: string(code), Quantity: decimal.NewFromInt(1), Rate: a, Amount: a}
	}

	first := publish([]payroll.Line{line(payroll.LineCommercialVariable, "100"), line(payroll.LineCommercialPerDiem, "40")})
	second := publish([]payroll.Line{line(payroll.LineCommercialVariable, "120")})
	assert.Equal(t, first.ID, second.ID)

	p, err := repo.GetByID(ctx, second.ID)
	require.NoError(t, err)
	require.Len(t, p.Lines, 1)
	assert.True(t, p.TotalAmount.Equal(decimal.NewFromInt(120)))
	require.NotNil(t, p.EmployeeCode)
	assert.Equal(t, "C-001", *p.EmployeeCode)

	year := 2024
	list, err := repo.List(ctx, payroll.PayslipFilter{EmployeeID: &empID, Year: &year})
	require.NoError(t, err)
	assert.Len(t, list, 1)

	_, err = repo.GetByID(ctx, "0190a8f2-0000-7000-8000-00000000ffff")
	assert.ErrorIs(t, err, payroll.ErrPayslipNotFound)

	liters := postgresql.NewLitersRepository(setup.DB)
	l, err := liters.GetLiters(ctx, empID, 2024, 5)
	require.NoError(t, err)
	assert.True(t, l.IsZero())
}
