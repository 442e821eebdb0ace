package postgresql_test

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"testing"

	"github.com/haulops/payroll-engine/internal/pkg/database"
)

// TestDatabaseSetup holds a migrated connection to the test database.
type TestDatabaseSetup struct {
	DB *database.DB
}

// NewTestDatabase connects to TEST_DATABASE_URL and applies the migrations.
// The test is skipped when the variable is not set.
func NewTestDatabase(t *testing.T) *TestDatabaseSetup {
	t.Helper()
	dsn := os.Getenv("TEST_DATABASE_URL")
	if dsn == "" {
		t.Skip("TEST_DATABASE_URL not set")
	}

	db, err := database.NewPostgreSQLDB(dsn, database.PoolOptions{MaxConns: 4, MinConns: 1})
	if err != nil {
		t.Fatalf("failed to connect to test database: %v", err)
	}
	t.Cleanup(db.Close)

	ctx := context.Background()
	if _, err := db.Migrate(ctx, filepath.Join("..", "..", "..", "..", "migrations")); err != nil {
		t.Fatalf("failed to migrate test database: %v", err)
	}

	setup := &TestDatabaseSetup{DB: db}
	if err := setup.TruncateAllTables(ctx); err != nil {
		t.Fatalf("%v", err)
	}
	return setup
}

// TruncateAllTables empties every table the engine writes.
func (t *TestDatabaseSetup) TruncateAllTables(ctx context.Context) error {
	tx, err := t.DB.BeginTx(ctx)
	if err != nil {
		return err
	}
	defer tx.Rollback(ctx)

	tables := []string{
		"payslip_lines",
		"payslips",
		"commercial_liters",
		"tariff_rates",
		"payroll_concepts",
		"holiday_compensations",
		"local_holidays",
		"absences",
		"truck_usages",
		"shifts",
		"trucks",
		"employees",
	}

	for _, table := range tables {
		if _, err := tx.Exec(ctx, fmt.Sprintf("TRUNCATE TABLE %s CASCADE", table)); err != nil {
			return fmt.Errorf("failed to truncate table %s: %w", table, err)
		}
	}

	return tx.Commit(ctx)
}

func (t *TestDatabaseSetup) insertEmployee(ctx context.Context, code, role string) (string, error) {
	var id string
	err := t.DB.QueryRow(ctx, `
		INSERT INTO employees (employee_code, full_name, role, morning_start, morning_end, afternoon_start, afternoon_end)
		VALUES ($1, $2, $3, '08:00', '12:00', '13:00', '17:00')
		RETURNING id
	`, code, "Employee "+code, role).Scan(&id)
	return id, err
}

func (t *TestDatabaseSetup) insertTruck(ctx context.Context, plate string) (string, error) {
	var id string
	err := t.DB.QueryRow(ctx, `INSERT INTO trucks (plate) VALUES ($1) RETURNING id`, plate).Scan(&id)
	return id, err
}
