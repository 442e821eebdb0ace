package cli

import (
	"bytes"
	"context"
	"encoding/json"
	"os"
	"path/filepath"
	"testing"

	"github.com/haulops/payroll-engine/internal/app"
	"github.com/haulops/payroll-engine/internal/config"
	"github.com/haulops/payroll-engine/internal/domain/employee"
	"github.com/haulops/payroll-engine/internal/domain/payroll"
	"github.com/haulops/payroll-engine/internal/domain/tariff"
	"github.com/haulops/payroll-engine/internal/mocks"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

const cliEmployeeID = "0b8f7d9e-3c44-4a51-9a57-0d6f2b1e4c10"

type cliFixture struct {
	employees  *mocks.EmployeeRepository
	attendance *mocks.AttendanceService
	tariffs    *mocks.TariffService
	payroll    *mocks.PayrollService
	loads      int
}

func newCLIFixture() *cliFixture {
	return &cliFixture{
		employees:  &mocks.EmployeeRepository{},
		attendance: &mocks.AttendanceService{},
		tariffs:    &mocks.TariffService{},
		payroll:    &mocks.PayrollService{},
	}
}

func (f *cliFixture) load(ctx context.Context) (*Env, func(), error) {
	f.loads++
	return &Env{
		Config: &config.Config{JWT: config.JWTConfig{Secret: "cli-secret", AccessExpiration: "1h"}},
		Services: &app.Services{
			Employees:  f.employees,
			Attendance: f.attendance,
			Tariff:     f.tariffs,
			Payroll:    f.payroll,
		},
	}, func() {}, nil
}

func (f *cliFixture) run(t *testing.T, args ...string) (string, error) {
	t.Helper()
	cmd := NewRootCommand(f.load)
	var out bytes.Buffer
	cmd.SetOut(&out)
	cmd.SetErr(&out)
	cmd.SetArgs(args)
	err := cmd.Execute()
	return out.String(), err
}

func TestCommandPresence(t *testing.T) {
	cmd := NewRootCommand(newCLIFixture().load)

	for _, path := range [][]string{
		{"migrate"},
		{"reconstruct"},
		{"payslip", "preview"},
		{"payslip", "publish"},
		{"payslip", "publish-month"},
		{"tariffs", "import"},
		{"tariffs", "resolve"},
		{"token"},
	} {
		sub, _, err := cmd.Find(path)
		require.NoError(t, err, "command %v should exist", path)
		assert.Equal(t, path[len(path)-1], sub.Name())
	}
}

func TestPayslipPublish(t *testing.T) {
	f := newCLIFixture()
	req := payroll.PeriodRequest{EmployeeID: cliEmployeeID, Year: 2024, Month: 5}
	f.payroll.On("Publish", mock.Anything, req).
		Return(payroll.PayslipResponse{ID: "p-1", EmployeeID: cliEmployeeID, Year: 2024, Month: 5}, nil).Once()

	out, err := f.run(t, "payslip", "publish", "--employee", cliEmployeeID, "--year", "2024", "--month", "5")

	require.NoError(t, err)
	var decoded payroll.PayslipResponse
	require.NoError(t, json.Unmarshal([]byte(out), &decoded))
	assert.Equal(t, "p-1", decoded.ID)
	f.payroll.AssertExpectations(t)
}

func TestPayslipPreviewRejectsBadArguments(t *testing.T) {
	f := newCLIFixture()

	_, err := f.run(t, "payslip", "preview", "--employee", "nope", "--year", "2024", "--month", "5")
	require.Error(t, err)
	assert.Equal(t, ExitCommandError, GetExitCode(err))

	_, err = f.run(t, "payslip", "preview", "--employee", cliEmployeeID, "--year", "2024", "--month", "13")
	require.Error(t, err)
	assert.Equal(t, ExitCommandError, GetExitCode(err))

	assert.Zero(t, f.loads)
}

func TestPublishMonthFailuresSetExitCode(t *testing.T) {
	f := newCLIFixture()
	f.payroll.On("PublishMonth", mock.Anything, payroll.MonthRequest{Year: 2024, Month: 5}).
		Return(payroll.BatchResponse{Year: 2024, Month: 5, Published: 2, Failed: 1}, nil).Once()

	out, err := f.run(t, "payslip", "publish-month", "--year", "2024", "--month", "5")

	require.Error(t, err)
	assert.Equal(t, ExitFailure, GetExitCode(err))
	assert.Contains(t, out, `"published": 2`)
}

func TestTariffsImport(t *testing.T) {
	path := filepath.Join(t.TempDir(), "tariffs.yaml")
	require.NoError(t, os.WriteFile(path, []byte(`concepts:
  - code: KM_RATE
    name: Kilometre rate
    rates:
      - value: "0.10"
        role: DRIVER
      - value: "0.12"
        employee_id: 0b8f7d9e-3c44-4a51-9a57-0d6f2b1e4c10
        effective_from: "2024-01-01"
`), 0o600))

	f := newCLIFixture()
	f.tariffs.On("Import", mock.Anything, mock.MatchedBy(func(doc tariff.ImportDocument) bool {
		return len(doc.Concepts) == 1 &&
			doc.Concepts[0].Code == "KM_RATE" &&
			len(doc.Concepts[0].Rates) == 2 &&
			doc.Concepts[0].Rates[1].EffectiveFrom == "2024-01-01"
	})).Return(tariff.ImportSummary{Concepts: 1, Rates: 2}, nil).Once()

	out, err := f.run(t, "tariffs", "import", path)

	require.NoError(t, err)
	assert.Contains(t, out, `"rates": 2`)
	f.tariffs.AssertExpectations(t)
}

func TestTariffsImportMissingFile(t *testing.T) {
	f := newCLIFixture()

	_, err := f.run(t, "tariffs", "import", filepath.Join(t.TempDir(), "missing.yaml"))

	require.Error(t, err)
	assert.Equal(t, ExitCommandError, GetExitCode(err))
}

func TestTariffsResolve(t *testing.T) {
	f := newCLIFixture()
	f.tariffs.On("ResolveForEmployee", mock.Anything, tariff.ResolveRequest{Concept: "KM_RATE", EmployeeID: cliEmployeeID}).
		Return(tariff.ResolutionResponse{Concept: "KM_RATE", Scope: "role", Configured: true}, nil).Once()

	out, err := f.run(t, "tariffs", "resolve", "--concept", "KM_RATE", "--employee", cliEmployeeID)

	require.NoError(t, err)
	assert.Contains(t, out, `"scope": "role"`)
}

func TestTokenUsesEmployeeRole(t *testing.T) {
	f := newCLIFixture()
	f.employees.On("GetByID", mock.Anything, cliEmployeeID).
		Return(employee.Employee{ID: cliEmployeeID, Role: employee.RoleAdmin}, nil).Once()

	out, err := f.run(t, "token", "--employee", cliEmployeeID)

	require.NoError(t, err)
	var decoded map[string]any
	require.NoError(t, json.Unmarshal([]byte(out), &decoded))
	assert.Equal(t, "ADMIN", decoded["role"])
	assert.NotEmpty(t, decoded["access_token"])
}

func TestTokenRejectsUnknownRole(t *testing.T) {
	f := newCLIFixture()

	_, err := f.run(t, "token", "--employee", cliEmployeeID, "--role", "PILOT")

	require.Error(t, err)
	assert.Equal(t, ExitCommandError, GetExitCode(err))
}

func TestMigrateNeedsDatabase(t *testing.T) {
	f := newCLIFixture()

	_, err := f.run(t, "migrate")

	require.Error(t, err)
	assert.Equal(t, ExitCommandError, GetExitCode(err))
}
