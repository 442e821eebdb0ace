package tariff

import (
	"fmt"
	"time"

	"github.com/haulops/payroll-engine/internal/domain/employee"
	"github.com/haulops/payroll-engine/internal/pkg/validator"
	"github.com/shopspring/decimal"
)

type ResolveRequest struct {
	Concept    string `json:"concept"`
	EmployeeID string `json:"employee_id"`
	AsOf       string `json:"as_of"`
}

func (r *ResolveRequest) Validate() error {
	var errs validator.ValidationErrors

	if validator.IsEmpty(r.Concept) {
		errs = append(errs, validator.ValidationError{Field: "concept", Message: "concept is required"})
	}
	if validator.IsEmpty(r.EmployeeID) {
		errs = append(errs, validator.ValidationError{Field: "employee_id", Message: "employee_id is required"})
	} else if !validator.IsValidUUID(r.EmployeeID) {
		errs = append(errs, validator.ValidationError{Field: "employee_id", Message: "employee_id must be a valid UUID"})
	}
	if r.AsOf != "" {
		if _, ok := validator.IsValidDate(r.AsOf); !ok {
			errs = append(errs, validator.ValidationError{Field: "as_of", Message: "as_of must be in YYYY-MM-DD format"})
		}
	}

	if len(errs) > 0 {
		return errs
	}
	return nil
}

// AsOfDate returns the parsed as_of date, or fallback when it was omitted.
func (r *ResolveRequest) AsOfDate(fallback time.Time) time.Time {
	if t, ok := validator.IsValidDate(r.AsOf); ok {
		return t
	}
	return fallback
}

type ResolutionResponse struct {
	Concept    string          `json:"concept"`
	EmployeeID string          `json:"employee_id"`
	Role       string          `json:"role"`
	AsOf       string          `json:"as_of"`
	Value      decimal.Decimal `json:"value"`
	Scope      string          `json:"scope"`
	Configured bool            `json:"configured"`
}

// ImportDocument is the YAML layout accepted by the tariff importer.
type ImportDocument struct {
	Concepts []ImportConcept `yaml:"concepts"`
}

type ImportConcept struct {
	Code        string       `yaml:"code"`
	Name        string       `yaml:"name"`
	Description string       `yaml:"description"`
	Rates       []ImportRate `yaml:"rates"`
}

type ImportRate struct {
	Value         string `yaml:"value"`
	Role          string `yaml:"role,omitempty"`
	EmployeeID    string `yaml:"employee_id,omitempty"`
	EffectiveFrom string `yaml:"effective_from,omitempty"`
	EffectiveTo   string `yaml:"effective_to,omitempty"`
}

func (d *ImportDocument) Validate() error {
	var errs validator.ValidationErrors

	for i, c := range d.Concepts {
		prefix := fmt.Sprintf("concepts[%d]", i)
		if validator.IsEmpty(c.Code) {
			errs = append(errs, validator.ValidationError{Field: prefix + ".code", Message: "code is required"})
		}
		if validator.IsEmpty(c.Name) {
			errs = append(errs, validator.ValidationError{Field: prefix + ".name", Message: "name is required"})
		}
		for j, r := range c.Rates {
			field := fmt.Sprintf("%s.rates[%d]", prefix, j)
			if _, err := decimal.NewFromString(r.Value); err != nil {
				errs = append(errs, validator.ValidationError{Field: field + ".value", Message: "value must be a decimal number"})
			}
			if r.Role != "" && r.EmployeeID != "" {
				errs = append(errs, validator.ValidationError{Field: field, Message: ErrInvalidRateScope.Error()})
			}
			if r.Role != "" && !employee.Role(r.Role).IsValid() {
				errs = append(errs, validator.ValidationError{Field: field + ".role", Message: "unknown role"})
			}
			if r.EmployeeID != "" && !validator.IsValidUUID(r.EmployeeID) {
				errs = append(errs, validator.ValidationError{Field: field + ".employee_id", Message: "employee_id must be a valid UUID"})
			}
			from, fromOK := validator.IsValidDate(r.EffectiveFrom)
			if r.EffectiveFrom != "" && !fromOK {
				errs = append(errs, validator.ValidationError{Field: field + ".effective_from", Message: "must be in YYYY-MM-DD format"})
			}
			to, toOK := validator.IsValidDate(r.EffectiveTo)
			if r.EffectiveTo != "" && !toOK {
				errs = append(errs, validator.ValidationError{Field: field + ".effective_to", Message: "must be in YYYY-MM-DD format"})
			}
			if fromOK && toOK && to.Before(from) {
				errs = append(errs, validator.ValidationError{Field: field + ".effective_to", Message: "must not be before effective_from"})
			}
		}
	}

	if len(errs) > 0 {
		return errs
	}
	return nil
}

// ToRate converts a validated import row into a Rate.
func (r ImportRate) ToRate(concept Concept) Rate {
	value, _ := decimal.NewFromString(r.Value)
	rate := Rate{
		ConceptID:   concept.ID,
		ConceptCode: concept.Code,
		Value:       value,
		IsActive:    true,
	}
	if r.Role != "" {
		role := employee.Role(r.Role)
		rate.Role = &role
	}
	if r.EmployeeID != "" {
		id := r.EmployeeID
		rate.EmployeeID = &id
	}
	if t, ok := validator.IsValidDate(r.EffectiveFrom); ok {
		rate.EffectiveFrom = &t
	}
	if t, ok := validator.IsValidDate(r.EffectiveTo); ok {
		rate.EffectiveTo = &t
	}
	return rate
}

type ImportSummary struct {
	Concepts int `json:"concepts"`
	Rates    int `json:"rates"`
}
