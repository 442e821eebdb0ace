package postgresql

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/haulops/payroll-engine/internal/domain/shift"
	"github.com/haulops/payroll-engine/internal/pkg/database"
	"github.com/jackc/pgx/v5"
	"github.com/shopspring/decimal"
)

type shiftRepositoryImpl struct {
	db *database.DB
}

func NewShiftRepository(db *database.DB) shift.ShiftRepository {
	return &shiftRepositoryImpl{db: db}
}

const shiftColumns = `id, employee_id, date, clock_in, clock_out, total_hours, status, created_at, updated_at`

func scanShift(row pgx.Row) (shift.Shift, error) {
	var s shift.Shift
	var total decimal.NullDecimal
	err := row.Scan(&s.ID, &s.EmployeeID, &s.Date, &s.ClockIn, &s.ClockOut, &total, &s.Status, &s.CreatedAt, &s.UpdatedAt)
	if err != nil {
		return shift.Shift{}, err
	}
	if total.Valid {
		s.TotalHours = &total.Decimal
	}
	s.ClockIn = s.ClockIn.UTC()
	if s.ClockOut != nil {
		out := s.ClockOut.UTC()
		s.ClockOut = &out
	}
	return s, nil
}

func (r *shiftRepositoryImpl) Create(ctx context.Context, s shift.Shift) (shift.Shift, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		INSERT INTO shifts (employee_id, date, clock_in, status)
		VALUES ($1, $2, $3, $4)
		RETURNING id, created_at, updated_at
	`

	err := q.QueryRow(ctx, query, s.EmployeeID, s.Date, s.ClockIn, s.Status).Scan(&s.ID, &s.CreatedAt, &s.UpdatedAt)
	if err != nil {
		if isUniqueViolation(err, "uk_shifts_one_open") {
			return shift.Shift{}, shift.ErrShiftAlreadyOpen
		}
		return shift.Shift{}, fmt.Errorf("failed to create shift: %w", err)
	}
	return s, nil
}

func (r *shiftRepositoryImpl) GetByID(ctx context.Context, id string) (shift.Shift, error) {
	q := GetQuerier(ctx, r.db)

	query := `SELECT ` + shiftColumns + ` FROM shifts WHERE id = $1`

	s, err := scanShift(q.QueryRow(ctx, query, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return shift.Shift{}, shift.ErrShiftNotFound
		}
		return shift.Shift{}, fmt.Errorf("failed to get shift: %w", err)
	}

	shifts := []shift.Shift{s}
	if err := r.attachUsages(ctx, shifts); err != nil {
		return shift.Shift{}, err
	}
	return shifts[0], nil
}

func (r *shiftRepositoryImpl) GetOpenByEmployee(ctx context.Context, employeeID string) (*shift.Shift, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		SELECT ` + shiftColumns + `
		FROM shifts
		WHERE employee_id = $1 AND clock_out IS NULL
		ORDER BY clock_in DESC
		LIMIT 1
	`

	s, err := scanShift(q.QueryRow(ctx, query, employeeID))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to get open shift: %w", err)
	}
	return &s, nil
}

func (r *shiftRepositoryImpl) ExistsOnDate(ctx context.Context, employeeID string, date time.Time) (bool, error) {
	q := GetQuerier(ctx, r.db)

	var exists bool
	err := q.QueryRow(ctx, `SELECT EXISTS (SELECT 1 FROM shifts WHERE employee_id = $1 AND date = $2)`, employeeID, date).Scan(&exists)
	if err != nil {
		return false, fmt.Errorf("failed to check shift existence: %w", err)
	}
	return exists, nil
}

// Close only touches a shift that is still open.
func (r *shiftRepositoryImpl) Close(ctx context.Context, id string, clockOut time.Time, totalHours decimal.Decimal, status shift.Status) (shift.Shift, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		UPDATE shifts
		SET clock_out = $2, total_hours = $3, status = $4, updated_at = NOW()
		WHERE id = $1 AND clock_out IS NULL
		RETURNING ` + shiftColumns

	s, err := scanShift(q.QueryRow(ctx, query, id, clockOut, totalHours, status))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return shift.Shift{}, shift.ErrNoOpenShift
		}
		return shift.Shift{}, fmt.Errorf("failed to close shift: %w", err)
	}

	shifts := []shift.Shift{s}
	if err := r.attachUsages(ctx, shifts); err != nil {
		return shift.Shift{}, err
	}
	return shifts[0], nil
}

func (r *shiftRepositoryImpl) ListByEmployeeAndRange(ctx context.Context, employeeID string, start, end time.Time) ([]shift.Shift, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		SELECT ` + shiftColumns + `
		FROM shifts
		WHERE employee_id = $1 AND date BETWEEN $2 AND $3
		ORDER BY date, clock_in
	`

	shifts, err := r.collect(ctx, q, query, employeeID, start, end)
	if err != nil {
		return nil, err
	}
	if err := r.attachUsages(ctx, shifts); err != nil {
		return nil, err
	}
	return shifts, nil
}

func (r *shiftRepositoryImpl) ListOpenBefore(ctx context.Context, day time.Time) ([]shift.Shift, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		SELECT ` + shiftColumns + `
		FROM shifts
		WHERE clock_out IS NULL AND date < $1
		ORDER BY date, employee_id
	`

	return r.collect(ctx, q, query, day)
}

func (r *shiftRepositoryImpl) collect(ctx context.Context, q database.Querier, query string, args ...interface{}) ([]shift.Shift, error) {
	rows, err := q.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to list shifts: %w", err)
	}
	defer rows.Close()

	var shifts []shift.Shift
	for rows.Next() {
		s, err := scanShift(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan shift: %w", err)
		}
		shifts = append(shifts, s)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate shifts: %w", err)
	}
	return shifts, nil
}

const usageColumns = `
	id, shift_id, truck_id, started_at, ended_at,
	odometer_start, odometer_end, distance_km, fuel_liters, trips, unloadings, created_at
`

func scanUsage(row pgx.Row) (shift.TruckUsage, error) {
	var u shift.TruckUsage
	var odoStart, odoEnd, distance decimal.NullDecimal
	err := row.Scan(
		&u.ID, &u.ShiftID, &u.TruckID, &u.StartedAt, &u.EndedAt,
		&odoStart, &odoEnd, &distance, &u.FuelLiters, &u.Trips, &u.Unloadings, &u.CreatedAt,
	)
	if err != nil {
		return shift.TruckUsage{}, err
	}
	u.OdometerStart = nullable(odoStart)
	u.OdometerEnd = nullable(odoEnd)
	u.DistanceKm = nullable(distance)
	u.StartedAt = u.StartedAt.UTC()
	if u.EndedAt != nil {
		ended := u.EndedAt.UTC()
		u.EndedAt = &ended
	}
	return u, nil
}

func nullable(d decimal.NullDecimal) *decimal.Decimal {
	if !d.Valid {
		return nil
	}
	return &d.Decimal
}

// attachUsages loads the truck usages of all shifts in one query.
func (r *shiftRepositoryImpl) attachUsages(ctx context.Context, shifts []shift.Shift) error {
	if len(shifts) == 0 {
		return nil
	}
	q := GetQuerier(ctx, r.db)

	ids := make([]string, len(shifts))
	index := make(map[string]int, len(shifts))
	for i, s := range shifts {
		ids[i] = s.ID
		index[s.ID] = i
	}

	query := `SELECT ` + usageColumns + ` FROM truck_usages WHERE shift_id = ANY($1::uuid[]) ORDER BY started_at`

	rows, err := q.Query(ctx, query, ids)
	if err != nil {
		return fmt.Errorf("failed to list truck usages: %w", err)
	}
	defer rows.Close()

	for rows.Next() {
		u, err := scanUsage(rows)
		if err != nil {
			return fmt.Errorf("failed to scan truck usage: %w", err)
		}
		if i, ok := index[u.ShiftID]; ok {
			shifts[i].TruckUsages = append(shifts[i].TruckUsages, u)
		}
	}
	return rows.Err()
}

func (r *shiftRepositoryImpl) AddTruckUsage(ctx context.Context, u shift.TruckUsage) (shift.TruckUsage, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		INSERT INTO truck_usages (
			shift_id, truck_id, started_at, ended_at,
			odometer_start, odometer_end, distance_km, fuel_liters, trips, unloadings
		) VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)
		RETURNING id, created_at
	`

	err := q.QueryRow(ctx, query,
		u.ShiftID, u.TruckID, u.StartedAt, u.EndedAt,
		u.OdometerStart, u.OdometerEnd, u.DistanceKm, u.FuelLiters, u.Trips, u.Unloadings,
	).Scan(&u.ID, &u.CreatedAt)
	if err != nil {
		return shift.TruckUsage{}, fmt.Errorf("failed to add truck usage: %w", err)
	}
	return u, nil
}
