package postgresql

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/haulops/payroll-engine/internal/domain/holiday"
	"github.com/haulops/payroll-engine/internal/pkg/database"
	"github.com/jackc/pgx/v5"
)

type holidayRepositoryImpl struct {
	db *database.DB
}

func NewHolidayRepository(db *database.DB) holiday.HolidayRepository {
	return &holidayRepositoryImpl{db: db}
}

func (r *holidayRepositoryImpl) ListActive(ctx context.Context) ([]holiday.LocalHoliday, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		SELECT id, name, date, is_recurring, is_active, created_at
		FROM local_holidays
		WHERE is_active
		ORDER BY date
	`

	rows, err := q.Query(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("failed to list holidays: %w", err)
	}
	defer rows.Close()

	var holidays []holiday.LocalHoliday
	for rows.Next() {
		var h holiday.LocalHoliday
		if err := rows.Scan(&h.ID, &h.Name, &h.Date, &h.IsRecurring, &h.IsActive, &h.CreatedAt); err != nil {
			return nil, fmt.Errorf("failed to scan holiday: %w", err)
		}
		holidays = append(holidays, h)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate holidays: %w", err)
	}
	return holidays, nil
}

// FindActiveForDate matches one-off holidays on the exact date and recurring
// ones on day and month. One-off holidays win when both match.
func (r *holidayRepositoryImpl) FindActiveForDate(ctx context.Context, day time.Time) (*holiday.LocalHoliday, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		SELECT id, name, date, is_recurring, is_active, created_at
		FROM local_holidays
		WHERE is_active
		  AND (
			(NOT is_recurring AND date = $1)
			OR (is_recurring AND EXTRACT(MONTH FROM date) = $2 AND EXTRACT(DAY FROM date) = $3)
		  )
		ORDER BY is_recurring, created_at
		LIMIT 1
	`

	var h holiday.LocalHoliday
	err := q.QueryRow(ctx, query, day, int(day.Month()), day.Day()).
		Scan(&h.ID, &h.Name, &h.Date, &h.IsRecurring, &h.IsActive, &h.CreatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to find holiday: %w", err)
	}
	return &h, nil
}

type compensationRepositoryImpl struct {
	db *database.DB
}

func NewCompensationRepository(db *database.DB) holiday.CompensationRepository {
	return &compensationRepositoryImpl{db: db}
}

func (r *compensationRepositoryImpl) GetByShiftID(ctx context.Context, shiftID string) (*holiday.Compensation, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		SELECT id, shift_id, employee_id, holiday_id, grant_type, amount, created_at
		FROM holiday_compensations
		WHERE shift_id = $1
	`

	var c holiday.Compensation
	err := q.QueryRow(ctx, query, shiftID).
		Scan(&c.ID, &c.ShiftID, &c.EmployeeID, &c.HolidayID, &c.GrantType, &c.Amount, &c.CreatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to get compensation: %w", err)
	}
	return &c, nil
}

// CreateIfAbsent relies on uk_holiday_compensation_shift; a conflicting insert
// returns no row.
func (r *compensationRepositoryImpl) CreateIfAbsent(ctx context.Context, c holiday.Compensation) (holiday.Compensation, bool, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		INSERT INTO holiday_compensations (shift_id, employee_id, holiday_id, grant_type, amount)
		VALUES ($1, $2, $3, $4, $5)
		ON CONFLICT (shift_id) DO NOTHING
		RETURNING id, created_at
	`

	err := q.QueryRow(ctx, query, c.ShiftID, c.EmployeeID, c.HolidayID, c.GrantType, c.Amount).Scan(&c.ID, &c.CreatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return holiday.Compensation{}, false, nil
		}
		if isUniqueViolation(err, "uk_holiday_compensation_shift") {
			return holiday.Compensation{}, false, holiday.ErrAlreadyCompensated
		}
		return holiday.Compensation{}, false, fmt.Errorf("failed to create compensation: %w", err)
	}
	return c, true, nil
}
