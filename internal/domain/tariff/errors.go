package tariff

import "errors"

var (
	ErrConceptNotFound  = errors.New("payroll concept not found")
	ErrInvalidRateScope = errors.New("a rate cannot be scoped to both a role and an employee")
)
