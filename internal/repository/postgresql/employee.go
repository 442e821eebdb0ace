package postgresql

import (
	"context"
	"errors"
	"fmt"

	"github.com/haulops/payroll-engine/internal/domain/employee"
	"github.com/haulops/payroll-engine/internal/pkg/database"
	"github.com/jackc/pgx/v5"
	"github.com/shopspring/decimal"
)

type employeeRepositoryImpl struct {
	db *database.DB
}

func NewEmployeeRepository(db *database.DB) employee.EmployeeRepository {
	return &employeeRepositoryImpl{db: db}
}

const employeeColumns = `
	id, employee_code, full_name, role,
	to_char(morning_start, 'HH24:MI'), to_char(morning_end, 'HH24:MI'),
	to_char(afternoon_start, 'HH24:MI'), to_char(afternoon_end, 'HH24:MI'),
	extra_vacation_days, extra_hours, is_active, created_at, updated_at
`

func scanEmployee(row pgx.Row) (employee.Employee, error) {
	var e employee.Employee
	var morningStart, morningEnd, afternoonStart, afternoonEnd *string

	err := row.Scan(
		&e.ID, &e.EmployeeCode, &e.FullName, &e.Role,
		&morningStart, &morningEnd, &afternoonStart, &afternoonEnd,
		&e.ExtraVacationDays, &e.ExtraHours, &e.IsActive, &e.CreatedAt, &e.UpdatedAt,
	)
	if err != nil {
		return employee.Employee{}, err
	}

	if e.Schedule.Morning, err = window(morningStart, morningEnd); err != nil {
		return employee.Employee{}, err
	}
	if e.Schedule.Afternoon, err = window(afternoonStart, afternoonEnd); err != nil {
		return employee.Employee{}, err
	}
	return e, nil
}

// window returns nil unless both bounds are set.
func window(start, end *string) (*employee.Window, error) {
	if start == nil || end == nil {
		return nil, nil
	}
	s, err := employee.ParseTimeOfDay(*start)
	if err != nil {
		return nil, err
	}
	e, err := employee.ParseTimeOfDay(*end)
	if err != nil {
		return nil, err
	}
	return &employee.Window{Start: s, End: e}, nil
}

func (r *employeeRepositoryImpl) GetByID(ctx context.Context, id string) (employee.Employee, error) {
	q := GetQuerier(ctx, r.db)

	query := `SELECT ` + employeeColumns + ` FROM employees WHERE id = $1`

	e, err := scanEmployee(q.QueryRow(ctx, query, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return employee.Employee{}, employee.ErrEmployeeNotFound
		}
		return employee.Employee{}, fmt.Errorf("failed to get employee: %w", err)
	}
	return e, nil
}

func (r *employeeRepositoryImpl) ListActive(ctx context.Context) ([]employee.Employee, error) {
	q := GetQuerier(ctx, r.db)

	query := `SELECT ` + employeeColumns + ` FROM employees WHERE is_active ORDER BY employee_code`

	rows, err := q.Query(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("failed to list employees: %w", err)
	}
	defer rows.Close()

	var employees []employee.Employee
	for rows.Next() {
		e, err := scanEmployee(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan employee: %w", err)
		}
		employees = append(employees, e)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate employees: %w", err)
	}
	return employees, nil
}

func (r *employeeRepositoryImpl) AddBalances(ctx context.Context, id string, vacationDays, hours decimal.Decimal) error {
	q := GetQuerier(ctx, r.db)

	query := `
		UPDATE employees
		SET extra_vacation_days = extra_vacation_days + $2,
			extra_hours = extra_hours + $3,
			updated_at = NOW()
		WHERE id = $1
	`

	tag, err := q.Exec(ctx, query, id, vacationDays, hours)
	if err != nil {
		return fmt.Errorf("failed to update employee balances: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return employee.ErrEmployeeNotFound
	}
	return nil
}
