package postgresql

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/haulops/payroll-engine/internal/domain/payroll"
	"github.com/haulops/payroll-engine/internal/pkg/database"
	"github.com/jackc/pgx/v5"
	"github.com/shopspring/decimal"
)

type payslipRepositoryImpl struct {
	db *database.DB
}

func NewPayslipRepository(db *database.DB) payroll.PayslipRepository {
	return &payslipRepositoryImpl{db: db}
}

func (r *payslipRepositoryImpl) UpsertHeader(ctx context.Context, p payroll.Payslip) (payroll.Payslip, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		INSERT INTO payslips (employee_id, period_year, period_month, total_amount, generated_at)
		VALUES ($1, $2, $3, $4, $5)
		ON CONFLICT (employee_id, period_year, period_month) DO UPDATE
		SET total_amount = EXCLUDED.total_amount,
			generated_at = EXCLUDED.generated_at,
			updated_at = NOW()
		RETURNING id, created_at, updated_at
	`

	err := q.QueryRow(ctx, query, p.EmployeeID, p.Year, p.Month, p.TotalAmount, p.GeneratedAt).
		Scan(&p.ID, &p.CreatedAt, &p.UpdatedAt)
	if err != nil {
		return payroll.Payslip{}, fmt.Errorf("failed to upsert payslip: %w", err)
	}
	return p, nil
}

// ReplaceLines must run inside a transaction together with UpsertHeader.
func (r *payslipRepositoryImpl) ReplaceLines(ctx context.Context, payslipID string, lines []payroll.Line) error {
	q := GetQuerier(ctx, r.db)

	if _, err := q.Exec(ctx, `DELETE FROM payslip_lines WHERE payslip_id = $1`, payslipID); err != nil {
		return fmt.Errorf("failed to delete payslip lines: %w", err)
	}

	query := `
		INSERT INTO payslip_lines (payslip_id, position, concept_code, description, quantity, rate, amount, notes)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
	`
	for _, l := range lines {
		if _, err := q.Exec(ctx, query, payslipID, l.Position, l.Code, l.Description, l.Quantity, l.Rate, l.Amount, l.Notes); err != nil {
			return fmt.Errorf("failed to insert payslip line %d: %w", l.Position, err)
		}
	}
	return nil
}

const payslipColumns = `
	p.id, p.employee_id, p.period_year, p.period_month, p.total_amount,
	p.generated_at, p.created_at, p.updated_at, e.full_name, e.employee_code
`

func scanPayslip(row pgx.Row) (payroll.Payslip, error) {
	var p payroll.Payslip
	err := row.Scan(
		&p.ID, &p.EmployeeID, &p.Year, &p.Month, &p.TotalAmount,
		&p.GeneratedAt, &p.CreatedAt, &p.UpdatedAt, &p.EmployeeName, &p.EmployeeCode,
	)
	return p, err
}

func (r *payslipRepositoryImpl) GetByID(ctx context.Context, id string) (payroll.Payslip, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		SELECT ` + payslipColumns + `
		FROM payslips p
		LEFT JOIN employees e ON e.id = p.employee_id
		WHERE p.id = $1
	`

	p, err := scanPayslip(q.QueryRow(ctx, query, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return payroll.Payslip{}, payroll.ErrPayslipNotFound
		}
		return payroll.Payslip{}, fmt.Errorf("failed to get payslip: %w", err)
	}

	rows, err := q.Query(ctx, `
		SELECT position, concept_code, description, quantity, rate, amount, notes
		FROM payslip_lines
		WHERE payslip_id = $1
		ORDER BY position
	`, id)
	if err != nil {
		return payroll.Payslip{}, fmt.Errorf("failed to list payslip lines: %w", err)
	}
	defer rows.Close()

	for rows.Next() {
		var l payroll.Line
		if err := rows.Scan(&l.Position, &l.Code, &l.Description, &l.Quantity, &l.Rate, &l.Amount, &l.Notes); err != nil {
			return payroll.Payslip{}, fmt.Errorf("failed to scan payslip line: %w", err)
		}
		p.Lines = append(p.Lines, l)
	}
	if err := rows.Err(); err != nil {
		return payroll.Payslip{}, fmt.Errorf("failed to iterate payslip lines: %w", err)
	}
	return p, nil
}

// List returns headers only, newest period first.
func (r *payslipRepositoryImpl) List(ctx context.Context, filter payroll.PayslipFilter) ([]payroll.Payslip, error) {
	q := GetQuerier(ctx, r.db)

	var conditions []string
	var args []interface{}
	if filter.EmployeeID != nil {
		args = append(args, *filter.EmployeeID)
		conditions = append(conditions, fmt.Sprintf("p.employee_id = $%d", len(args)))
	}
	if filter.Year != nil {
		args = append(args, *filter.Year)
		conditions = append(conditions, fmt.Sprintf("p.period_year = $%d", len(args)))
	}

	var sb strings.Builder
	sb.WriteString(`SELECT ` + payslipColumns + ` FROM payslips p LEFT JOIN employees e ON e.id = p.employee_id`)
	if len(conditions) > 0 {
		sb.WriteString(" WHERE " + strings.Join(conditions, " AND "))
	}
	sb.WriteString(" ORDER BY p.period_year DESC, p.period_month DESC, e.employee_code")

	rows, err := q.Query(ctx, sb.String(), args...)
	if err != nil {
		return nil, fmt.Errorf("failed to list payslips: %w", err)
	}
	defer rows.Close()

	var payslips []payroll.Payslip
	for rows.Next() {
		p, err := scanPayslip(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan payslip: %w", err)
		}
		payslips = append(payslips, p)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate payslips: %w", err)
	}
	return payslips, nil
}

type litersRepositoryImpl struct {
	db *database.DB
}

func NewLitersRepository(db *database.DB) payroll.LitersRepository {
	return &litersRepositoryImpl{db: db}
}

func (r *litersRepositoryImpl) GetLiters(ctx context.Context, employeeID string, year, month int) (decimal.Decimal, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		SELECT liters
		FROM commercial_liters
		WHERE employee_id = $1 AND period_year = $2 AND period_month = $3
	`

	var liters decimal.Decimal
	if err := q.QueryRow(ctx, query, employeeID, year, month).Scan(&liters); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return decimal.Zero, nil
		}
		return decimal.Decimal{}, fmt.Errorf("failed to get liters: %w", err)
	}
	return liters, nil
}
