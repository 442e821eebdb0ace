package tariff

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/haulops/payroll-engine/internal/domain/employee"
	"github.com/haulops/payroll-engine/internal/domain/tariff"
	"github.com/haulops/payroll-engine/internal/mocks"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

const (
	driverID = "0190a8f2-0000-7000-8000-000000000001"
	otherID  = "0190a8f2-0000-7000-8000-000000000002"
)

var asOf = time.Date(2024, time.May, 15, 0, 0, 0, 0, time.UTC)

func ptr[T any](v T) *T { return &v }

func rate(value string, opts ...func(*tariff.Rate)) tariff.Rate {
	r := tariff.Rate{Value: decimal.RequireFromString(value), IsActive: true}
	for _, opt := range opts {
		opt(&r)
	}
	return r
}

func forEmployee(id string) func(*tariff.Rate) {
	return func(r *tariff.Rate) { r.EmployeeID = ptr(id) }
}

func forRole(role employee.Role) func(*tariff.Rate) {
	return func(r *tariff.Rate) { r.Role = ptr(role) }
}

func from(y int, m time.Month, d int) func(*tariff.Rate) {
	return func(r *tariff.Rate) { r.EffectiveFrom = ptr(time.Date(y, m, d, 0, 0, 0, 0, time.UTC)) }
}

func until(y int, m time.Month, d int) func(*tariff.Rate) {
	return func(r *tariff.Rate) { r.EffectiveTo = ptr(time.Date(y, m, d, 0, 0, 0, 0, time.UTC)) }
}

func TestSelectRate_Precedence(t *testing.T) {
	rates := []tariff.Rate{
		rate("0.10"),
		rate("0.20", forRole(employee.RoleDriver)),
		rate("0.30", forEmployee(driverID)),
	}

	got := SelectRate(rates, employee.RoleDriver, driverID, asOf)
	assert.True(t, got.Found)
	assert.Equal(t, tariff.ScopeEmployee, got.Scope)
	assert.True(t, decimal.RequireFromString("0.30").Equal(got.Value))

	got = SelectRate(rates, employee.RoleDriver, otherID, asOf)
	assert.Equal(t, tariff.ScopeRole, got.Scope)
	assert.True(t, decimal.RequireFromString("0.20").Equal(got.Value))

	got = SelectRate(rates, employee.RoleOffice, otherID, asOf)
	assert.Equal(t, tariff.ScopeGlobal, got.Scope)
	assert.True(t, decimal.RequireFromString("0.10").Equal(got.Value))
}

func TestSelectRate_NotConfigured(t *testing.T) {
	got := SelectRate(nil, employee.RoleDriver, driverID, asOf)

	assert.False(t, got.Found)
	assert.Equal(t, tariff.ScopeNone, got.Scope)
	assert.True(t, got.Value.IsZero())
}

func TestSelectRate_ExplicitZeroIsConfigured(t *testing.T) {
	rates := []tariff.Rate{rate("0", forEmployee(driverID)), rate("5")}

	got := SelectRate(rates, employee.RoleDriver, driverID, asOf)

	assert.True(t, got.Found)
	assert.Equal(t, tariff.ScopeEmployee, got.Scope)
	assert.True(t, got.Value.IsZero())
}

func TestSelectRate_EffectiveWindows(t *testing.T) {
	rates := []tariff.Rate{
		rate("1", from(2023, time.January, 1)),
		rate("2", from(2024, time.January, 1)),
		rate("3", from(2024, time.June, 1)),
		rate("9", forEmployee(driverID), until(2024, time.April, 30)),
	}

	got := SelectRate(rates, employee.RoleDriver, driverID, asOf)

	assert.Equal(t, tariff.ScopeGlobal, got.Scope)
	assert.True(t, decimal.NewFromInt(2).Equal(got.Value))
}

func TestSelectRate_InactiveIgnored(t *testing.T) {
	inactive := rate("7", forEmployee(driverID))
	inactive.IsActive = false

	got := SelectRate([]tariff.Rate{inactive, rate("4")}, employee.RoleDriver, driverID, asOf)

	assert.Equal(t, tariff.ScopeGlobal, got.Scope)
	assert.True(t, decimal.NewFromInt(4).Equal(got.Value))
}

func TestResolve_RepositoryError(t *testing.T) {
	repo := new(mocks.TariffRepository)
	boom := errors.New("connection refused")
	repo.On("ListActiveRates", mock.Anything, tariff.ConceptKmRate).Return(nil, boom)

	svc := NewTariffService(&mocks.Transactor{}, repo, new(mocks.EmployeeRepository), time.UTC)
	_, err := svc.Resolve(context.Background(), tariff.ConceptKmRate, employee.RoleDriver, driverID, asOf)

	assert.ErrorIs(t, err, boom)
}

func TestResolveForEmployee(t *testing.T) {
	repo := new(mocks.TariffRepository)
	employees := new(mocks.EmployeeRepository)
	employees.On("GetByID", mock.Anything, driverID).Return(employee.Employee{ID: driverID, Role: employee.RoleDriver}, nil)
	repo.On("ListActiveRates", mock.Anything, tariff.ConceptKmRate).Return([]tariff.Rate{rate("0.15", forRole(employee.RoleDriver))}, nil)

	svc := NewTariffService(&mocks.Transactor{}, repo, employees, time.UTC)
	resp, err := svc.ResolveForEmployee(context.Background(), tariff.ResolveRequest{
		Concept:    string(tariff.ConceptKmRate),
		EmployeeID: driverID,
		AsOf:       "2024-05-15",
	})

	require.NoError(t, err)
	assert.Equal(t, "role", resp.Scope)
	assert.Equal(t, "DRIVER", resp.Role)
	assert.Equal(t, "2024-05-15", resp.AsOf)
	assert.True(t, resp.Configured)
	assert.True(t, decimal.RequireFromString("0.15").Equal(resp.Value))
}

func TestResolveForEmployee_UnknownEmployee(t *testing.T) {
	employees := new(mocks.EmployeeRepository)
	employees.On("GetByID", mock.Anything, driverID).Return(employee.Employee{}, employee.ErrEmployeeNotFound)

	svc := NewTariffService(&mocks.Transactor{}, new(mocks.TariffRepository), employees, time.UTC)
	_, err := svc.ResolveForEmployee(context.Background(), tariff.ResolveRequest{Concept: "KM_RATE", EmployeeID: driverID})

	assert.ErrorIs(t, err, employee.ErrEmployeeNotFound)
}

func TestImport(t *testing.T) {
	repo := new(mocks.TariffRepository)
	tx := &mocks.Transactor{}
	repo.On("UpsertConcept", mock.Anything, mock.MatchedBy(func(c tariff.Concept) bool {
		return c.Code == tariff.ConceptKmRate
	})).Return(tariff.Concept{ID: "c1", Code: tariff.ConceptKmRate}, nil)
	repo.On("ReplaceRate", mock.Anything, mock.MatchedBy(func(r tariff.Rate) bool {
		return r.ConceptID == "c1" && r.IsActive
	})).Return(tariff.Rate{}, nil).Twice()

	svc := NewTariffService(tx, repo, new(mocks.EmployeeRepository), time.UTC)
	summary, err := svc.Import(context.Background(), tariff.ImportDocument{Concepts: []tariff.ImportConcept{{
		Code: "KM_RATE",
		Name: "Per kilometre",
		Rates: []tariff.ImportRate{
			{Value: "0.10"},
			{Value: "0.12", Role: "DRIVER", EffectiveFrom: "2024-01-01"},
		},
	}}})

	require.NoError(t, err)
	assert.Equal(t, tariff.ImportSummary{Concepts: 1, Rates: 2}, summary)
	assert.Equal(t, 1, tx.Calls)
	repo.AssertExpectations(t)
}

func TestImport_InvalidDocument(t *testing.T) {
	repo := new(mocks.TariffRepository)
	svc := NewTariffService(&mocks.Transactor{}, repo, new(mocks.EmployeeRepository), time.UTC)

	_, err := svc.Import(context.Background(), tariff.ImportDocument{Concepts: []tariff.ImportConcept{{Code: "", Name: ""}}})

	assert.Error(t, err)
	repo.AssertNotCalled(t, "UpsertConcept", mock.Anything, mock.Anything)
}
