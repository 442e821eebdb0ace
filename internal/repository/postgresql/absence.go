package postgresql

import (
	"context"
	"fmt"
	"time"

	"github.com/haulops/payroll-engine/internal/domain/absence"
	"github.com/haulops/payroll-engine/internal/pkg/database"
)

type absenceRepositoryImpl struct {
	db *database.DB
}

func NewAbsenceRepository(db *database.DB) absence.AbsenceRepository {
	return &absenceRepositoryImpl{db: db}
}

func (r *absenceRepositoryImpl) ListApprovedOverlapping(ctx context.Context, employeeID string, start, end time.Time) ([]absence.Absence, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		SELECT id, employee_id, type, status, start_date, end_date, notes, created_at
		FROM absences
		WHERE employee_id = $1
		  AND status = 'APPROVED'
		  AND start_date <= $3
		  AND end_date >= $2
		ORDER BY start_date
	`

	rows, err := q.Query(ctx, query, employeeID, start, end)
	if err != nil {
		return nil, fmt.Errorf("failed to list absences: %w", err)
	}
	defer rows.Close()

	var absences []absence.Absence
	for rows.Next() {
		var a absence.Absence
		if err := rows.Scan(&a.ID, &a.EmployeeID, &a.Type, &a.Status, &a.StartDate, &a.EndDate, &a.Notes, &a.CreatedAt); err != nil {
			return nil, fmt.Errorf("failed to scan absence: %w", err)
		}
		absences = append(absences, a)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate absences: %w", err)
	}
	return absences, nil
}
