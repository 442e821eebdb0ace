package postgresql

import (
	"context"
	"fmt"

	"github.com/haulops/payroll-engine/internal/domain/employee"
	"github.com/haulops/payroll-engine/internal/domain/tariff"
	"github.com/haulops/payroll-engine/internal/pkg/database"
)

type tariffRepositoryImpl struct {
	db *database.DB
}

func NewTariffRepository(db *database.DB) tariff.TariffRepository {
	return &tariffRepositoryImpl{db: db}
}

func (r *tariffRepositoryImpl) ListActiveRates(ctx context.Context, code tariff.ConceptCode) ([]tariff.Rate, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		SELECT r.id, r.concept_id, c.code, r.role, r.employee_id, r.value, r.is_active,
			   r.effective_from, r.effective_to, r.created_at
		FROM tariff_rates r
		JOIN payroll_concepts c ON c.id = r.concept_id
		WHERE c.code = $1 AND r.is_active
		ORDER BY r.created_at
	`

	rows, err := q.Query(ctx, query, code)
	if err != nil {
		return nil, fmt.Errorf("failed to list rates: %w", err)
	}
	defer rows.Close()

	var rates []tariff.Rate
	for rows.Next() {
		var rate tariff.Rate
		var role *string
		if err := rows.Scan(
			&rate.ID, &rate.ConceptID, &rate.ConceptCode, &role, &rate.EmployeeID, &rate.Value, &rate.IsActive,
			&rate.EffectiveFrom, &rate.EffectiveTo, &rate.CreatedAt,
		); err != nil {
			return nil, fmt.Errorf("failed to scan rate: %w", err)
		}
		if role != nil {
			r := employee.Role(*role)
			rate.Role = &r
		}
		rates = append(rates, rate)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate rates: %w", err)
	}
	return rates, nil
}

func (r *tariffRepositoryImpl) UpsertConcept(ctx context.Context, concept tariff.Concept) (tariff.Concept, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		INSERT INTO payroll_concepts (code, name, description)
		VALUES ($1, $2, $3)
		ON CONFLICT (code) DO UPDATE SET name = EXCLUDED.name, description = EXCLUDED.description
		RETURNING id, created_at
	`

	err := q.QueryRow(ctx, query, concept.Code, concept.Name, concept.Description).Scan(&concept.ID, &concept.CreatedAt)
	if err != nil {
		return tariff.Concept{}, fmt.Errorf("failed to upsert concept %s: %w", concept.Code, err)
	}
	return concept, nil
}

func (r *tariffRepositoryImpl) ReplaceRate(ctx context.Context, rate tariff.Rate) (tariff.Rate, error) {
	if rate.Role != nil && rate.EmployeeID != nil {
		return tariff.Rate{}, tariff.ErrInvalidRateScope
	}
	q := GetQuerier(ctx, r.db)

	var role *string
	if rate.Role != nil {
		s := string(*rate.Role)
		role = &s
	}

	deactivate := `
		UPDATE tariff_rates
		SET is_active = FALSE
		WHERE concept_id = $1
		  AND is_active
		  AND role IS NOT DISTINCT FROM $2
		  AND employee_id IS NOT DISTINCT FROM $3::uuid
		  AND effective_from IS NOT DISTINCT FROM $4::date
	`
	if _, err := q.Exec(ctx, deactivate, rate.ConceptID, role, rate.EmployeeID, rate.EffectiveFrom); err != nil {
		return tariff.Rate{}, fmt.Errorf("failed to deactivate previous rate: %w", err)
	}

	insert := `
		INSERT INTO tariff_rates (concept_id, role, employee_id, value, is_active, effective_from, effective_to)
		VALUES ($1, $2, $3, $4, TRUE, $5, $6)
		RETURNING id, created_at
	`
	err := q.QueryRow(ctx, insert, rate.ConceptID, role, rate.EmployeeID, rate.Value, rate.EffectiveFrom, rate.EffectiveTo).
		Scan(&rate.ID, &rate.CreatedAt)
	if err != nil {
		return tariff.Rate{}, fmt.Errorf("failed to insert rate: %w", err)
	}
	rate.IsActive = true
	return rate, nil
}
