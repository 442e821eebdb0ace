package tariff

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/haulops/payroll-engine/internal/domain/employee"
	"github.com/haulops/payroll-engine/internal/domain/tariff"
	"github.com/haulops/payroll-engine/internal/pkg/database"
	"github.com/haulops/payroll-engine/internal/pkg/precedence"
	"github.com/haulops/payroll-engine/internal/pkg/utils"
)

type TariffServiceImpl struct {
	tx           database.Transactor
	tariffRepo   tariff.TariffRepository
	employeeRepo employee.EmployeeRepository
	loc          *time.Location
	now          func() time.Time
}

func NewTariffService(
	tx database.Transactor,
	tariffRepo tariff.TariffRepository,
	employeeRepo employee.EmployeeRepository,
	loc *time.Location,
) tariff.TariffService {
	return &TariffServiceImpl{
		tx:           tx,
		tariffRepo:   tariffRepo,
		employeeRepo: employeeRepo,
		loc:          loc,
		now:          time.Now,
	}
}

// Resolve implements tariff.Resolver.
func (s *TariffServiceImpl) Resolve(ctx context.Context, code tariff.ConceptCode, role employee.Role, employeeID string, asOf time.Time) (tariff.Resolution, error) {
	rates, err := s.tariffRepo.ListActiveRates(ctx, code)
	if err != nil {
		return tariff.NotConfigured(), fmt.Errorf("failed to list rates for %s: %w", code, err)
	}
	return SelectRate(rates, role, employeeID, asOf), nil
}

// SelectRate walks employee, role and global scopes over rates effective on asOf.
func SelectRate(rates []tariff.Rate, role employee.Role, employeeID string, asOf time.Time) tariff.Resolution {
	day := utils.Day(asOf)
	eligible := make([]tariff.Rate, 0, len(rates))
	for _, r := range rates {
		if r.EffectiveOn(day) {
			eligible = append(eligible, r)
		}
	}

	match, _ := precedence.FirstMatch(
		scopeLevel(tariff.ScopeEmployee, eligible, func(r tariff.Rate) bool {
			return r.EmployeeID != nil && *r.EmployeeID == employeeID
		}),
		scopeLevel(tariff.ScopeRole, eligible, func(r tariff.Rate) bool {
			return r.EmployeeID == nil && r.Role != nil && *r.Role == role
		}),
		scopeLevel(tariff.ScopeGlobal, eligible, func(r tariff.Rate) bool {
			return r.EmployeeID == nil && r.Role == nil
		}),
	)
	if !match.Found {
		return tariff.NotConfigured()
	}
	return tariff.Resolution{Value: match.Value.Value, Scope: tariff.Scope(match.Level), Found: true}
}

func scopeLevel(scope tariff.Scope, rates []tariff.Rate, in func(tariff.Rate) bool) precedence.Level[tariff.Rate] {
	return precedence.Level[tariff.Rate]{
		Name: string(scope),
		Lookup: func() (tariff.Rate, bool, error) {
			best, ok := latest(rates, in)
			return best, ok, nil
		},
	}
}

// latest picks the rate with the newest effective_from; open-ended starts sort
// oldest and ties go to the newest row.
func latest(rates []tariff.Rate, in func(tariff.Rate) bool) (tariff.Rate, bool) {
	var best tariff.Rate
	found := false
	for _, r := range rates {
		if !in(r) {
			continue
		}
		if !found || newer(r, best) {
			best = r
			found = true
		}
	}
	return best, found
}

func newer(a, b tariff.Rate) bool {
	switch {
	case a.EffectiveFrom == nil && b.EffectiveFrom != nil:
		return false
	case a.EffectiveFrom != nil && b.EffectiveFrom == nil:
		return true
	case a.EffectiveFrom != nil && !a.EffectiveFrom.Equal(*b.EffectiveFrom):
		return a.EffectiveFrom.After(*b.EffectiveFrom)
	}
	return a.CreatedAt.After(b.CreatedAt)
}

// ResolveForEmployee implements tariff.TariffService.
func (s *TariffServiceImpl) ResolveForEmployee(ctx context.Context, req tariff.ResolveRequest) (tariff.ResolutionResponse, error) {
	if err := req.Validate(); err != nil {
		return tariff.ResolutionResponse{}, err
	}

	emp, err := s.employeeRepo.GetByID(ctx, req.EmployeeID)
	if err != nil {
		return tariff.ResolutionResponse{}, err
	}

	asOf := req.AsOfDate(utils.DateOf(s.now(), s.loc))
	resolution, err := s.Resolve(ctx, tariff.ConceptCode(req.Concept), emp.Role, emp.ID, asOf)
	if err != nil {
		return tariff.ResolutionResponse{}, err
	}

	return tariff.ResolutionResponse{
		Concept:    req.Concept,
		EmployeeID: emp.ID,
		Role:       string(emp.Role),
		AsOf:       asOf.Format("2006-01-02"),
		Value:      resolution.Value,
		Scope:      string(resolution.Scope),
		Configured: resolution.Found,
	}, nil
}

// Import implements tariff.TariffService.
func (s *TariffServiceImpl) Import(ctx context.Context, doc tariff.ImportDocument) (tariff.ImportSummary, error) {
	if err := doc.Validate(); err != nil {
		return tariff.ImportSummary{}, err
	}

	var summary tariff.ImportSummary
	err := s.tx.WithinTx(ctx, func(txCtx context.Context) error {
		for _, c := range doc.Concepts {
			concept := tariff.Concept{Code: tariff.ConceptCode(c.Code), Name: c.Name}
			if c.Description != "" {
				description := c.Description
				concept.Description = &description
			}

			saved, err := s.tariffRepo.UpsertConcept(txCtx, concept)
			if err != nil {
				return fmt.Errorf("failed to upsert concept %s: %w", c.Code, err)
			}
			summary.Concepts++

			for _, r := range c.Rates {
				if _, err := s.tariffRepo.ReplaceRate(txCtx, r.ToRate(saved)); err != nil {
					return fmt.Errorf("failed to save rate for %s: %w", c.Code, err)
				}
				summary.Rates++
			}
		}
		return nil
	})
	if err != nil {
		return tariff.ImportSummary{}, err
	}

	slog.Info("tariffs imported", "concepts", summary.Concepts, "rates", summary.Rates)
	return summary, nil
}
