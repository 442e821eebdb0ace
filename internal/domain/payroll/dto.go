package payroll

import (
	"time"

	"github.com/haulops/payroll-engine/internal/pkg/validator"
	"github.com/shopspring/decimal"
)

// ========== REQUEST DTOs ==========

type PeriodRequest struct {
	EmployeeID string `json:"employee_id"`
	Year       int    `json:"year"`
	Month      int    `json:"month"`
}

func (r *PeriodRequest) Validate() error {
	var errs validator.ValidationErrors

	if !validator.IsValidUUID(r.EmployeeID) {
		errs = append(errs, validator.ValidationError{Field: "employee_id", Message: "must be a valid UUID"})
	}
	if !validator.IsValidPeriod(r.Year, r.Month) {
		errs = append(errs, validator.ValidationError{Field: "period", Message: ErrInvalidPeriod.Error()})
	}

	if len(errs) > 0 {
		return errs
	}
	return nil
}

type MonthRequest struct {
	Year  int `json:"year"`
	Month int `json:"month"`
}

func (r *MonthRequest) Validate() error {
	if !validator.IsValidPeriod(r.Year, r.Month) {
		return validator.ValidationErrors{{Field: "period", Message: ErrInvalidPeriod.Error()}}
	}
	return nil
}

type PayslipFilter struct {
	EmployeeID *string
	Year       *int
}

// ========== RESPONSE DTOs ==========

type LineResponse struct {
	Position    int             `json:"position"`
	Code        string          `json:"code"`
	Description string          `json:"description"`
	Quantity    decimal.Decimal `json:"quantity"`
	Rate        decimal.Decimal `json:"rate"`
	Amount      decimal.Decimal `json:"amount"`
	Notes       string          `json:"notes,omitempty"`
}

type PayslipResponse struct {
	ID           string          `json:"id,omitempty"`
	EmployeeID   string          `json:"employee_id"`
	EmployeeName *string         `json:"employee_name,omitempty"`
	EmployeeCode *string         `json:"employee_code,omitempty"`
	Year         int             `json:"year"`
	Month        int             `json:"month"`
	TotalAmount  decimal.Decimal `json:"total_amount"`
	Lines        []LineResponse  `json:"lines"`
	GeneratedAt  *string         `json:"generated_at,omitempty"`
}

type BatchOutcome struct {
	EmployeeID  string           `json:"employee_id"`
	PayslipID   string           `json:"payslip_id,omitempty"`
	TotalAmount *decimal.Decimal `json:"total_amount,omitempty"`
	Error       string           `json:"error,omitempty"`
}

type BatchResponse struct {
	Year      int            `json:"year"`
	Month     int            `json:"month"`
	Published int            `json:"published"`
	Failed    int            `json:"failed"`
	Outcomes  []BatchOutcome `json:"outcomes"`
}

func NewLineResponses(lines []Line) []LineResponse {
	resp := make([]LineResponse, 0, len(lines))
	for _, l := range lines {
		resp = append(resp, LineResponse{
			Position:    l.Position,
			Code:        string(l.Code),
			Description: l.Description,
			Quantity:    l.Quantity,
			Rate:        l.Rate,
			Amount:      l.Amount,
			Notes:       l.Notes,
		})
	}
	return resp
}

func NewPayslipResponse(p Payslip) PayslipResponse {
	resp := PayslipResponse{
		ID:           p.ID,
		EmployeeID:   p.EmployeeID,
		EmployeeName: p.EmployeeName,
		EmployeeCode: p.EmployeeCode,
		Year:         p.Year,
		Month:        p.Month,
		TotalAmount:  p.TotalAmount,
		Lines:        NewLineResponses(p.Lines),
	}
	if !p.GeneratedAt.IsZero() {
		s := p.GeneratedAt.Format(time.RFC3339)
		resp.GeneratedAt = &s
	}
	return resp
}
