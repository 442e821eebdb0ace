package tariff

import (
	"context"
	"time"

	"github.com/haulops/payroll-engine/internal/domain/employee"
)

// Resolver returns the single effective rate of a concept for an employee.
// Missing configuration is not an error.
type Resolver interface {
	Resolve(ctx context.Context, code ConceptCode, role employee.Role, employeeID string, asOf time.Time) (Resolution, error)
}

type TariffService interface {
	Resolver

	// ResolveForEmployee loads the employee to learn its role, then resolves
	ResolveForEmployee(ctx context.Context, req ResolveRequest) (ResolutionResponse, error)

	// Import upserts concepts and replaces their rates
	Import(ctx context.Context, doc ImportDocument) (ImportSummary, error)
}
