package attendance

import (
	"time"

	"github.com/haulops/payroll-engine/internal/pkg/utils"
	"github.com/haulops/payroll-engine/internal/pkg/validator"
	"github.com/shopspring/decimal"
)

type PeriodRequest struct {
	EmployeeID string `json:"employee_id"`
	StartDate  string `json:"start_date"`
	EndDate    string `json:"end_date"`
}

func (r *PeriodRequest) Validate() error {
	var errs validator.ValidationErrors

	if !validator.IsValidUUID(r.EmployeeID) {
		errs = append(errs, validator.ValidationError{Field: "employee_id", Message: "employee_id must be a valid UUID"})
	}
	start, startOK := validator.IsValidDate(r.StartDate)
	if !startOK {
		errs = append(errs, validator.ValidationError{Field: "start_date", Message: "start_date must be in YYYY-MM-DD format"})
	}
	end, endOK := validator.IsValidDate(r.EndDate)
	if !endOK {
		errs = append(errs, validator.ValidationError{Field: "end_date", Message: "end_date must be in YYYY-MM-DD format"})
	}
	if startOK && endOK {
		if end.Before(start) {
			errs = append(errs, validator.ValidationError{Field: "end_date", Message: ErrInvalidPeriod.Error()})
		} else if utils.DaysInclusive(start, end) > MaxPeriodDays {
			errs = append(errs, validator.ValidationError{Field: "end_date", Message: ErrPeriodTooLong.Error()})
		}
	}

	if len(errs) > 0 {
		return errs
	}
	return nil
}

// Range returns the parsed bounds; call after Validate.
func (r *PeriodRequest) Range() (time.Time, time.Time) {
	start, _ := validator.IsValidDate(r.StartDate)
	end, _ := validator.IsValidDate(r.EndDate)
	return start, end
}

type DayRecordResponse struct {
	Date            string  `json:"date"`
	Type            string  `json:"type"`
	AbsenceType     *string `json:"absence_type,omitempty"`
	HolidayName     *string `json:"holiday_name,omitempty"`
	ShiftID         *string `json:"shift_id,omitempty"`
	ClockIn         *string `json:"clock_in,omitempty"`
	ClockOut        *string `json:"clock_out,omitempty"`
	ShiftOpen       bool    `json:"shift_open"`
	ExpectedMinutes int     `json:"expected_minutes"`
	WorkedMinutes   int     `json:"worked_minutes"`
	OvertimeMinutes int     `json:"overtime_minutes"`
	Punctuality     *int    `json:"punctuality_minutes,omitempty"`
	DrivingMinutes  int     `json:"driving_minutes"`
}

type SummaryResponse struct {
	WorkedMinutes      int             `json:"worked_minutes"`
	OvertimeMinutes    int             `json:"overtime_minutes"`
	WorkedHours        decimal.Decimal `json:"worked_hours"`
	OvertimeHours      decimal.Decimal `json:"overtime_hours"`
	DaysWorked         int             `json:"days_worked"`
	AveragePunctuality *int            `json:"average_punctuality_minutes,omitempty"`
	UnknownDays        int             `json:"unknown_days"`
}

type LedgerResponse struct {
	EmployeeID  string              `json:"employee_id"`
	PeriodStart string              `json:"period_start"`
	PeriodEnd   string              `json:"period_end"`
	Days        []DayRecordResponse `json:"days"`
	Summary     SummaryResponse     `json:"summary"`
}

func NewDayRecordResponse(d DayRecord) DayRecordResponse {
	resp := DayRecordResponse{
		Date:            d.Date.Format("2006-01-02"),
		Type:            string(d.Type),
		HolidayName:     d.HolidayName,
		ShiftID:         d.ShiftID,
		ShiftOpen:       d.ShiftOpen,
		ExpectedMinutes: d.ExpectedMinutes,
		WorkedMinutes:   d.WorkedMinutes,
		OvertimeMinutes: d.OvertimeMinutes,
		Punctuality:     d.Punctuality,
		DrivingMinutes:  d.DrivingMinutes,
	}
	if d.AbsenceType != nil {
		t := string(*d.AbsenceType)
		resp.AbsenceType = &t
	}
	if d.ClockIn != nil {
		s := d.ClockIn.Format(time.RFC3339)
		resp.ClockIn = &s
	}
	if d.ClockOut != nil {
		s := d.ClockOut.Format(time.RFC3339)
		resp.ClockOut = &s
	}
	return resp
}

func NewSummaryResponse(s Summary) SummaryResponse {
	return SummaryResponse{
		WorkedMinutes:      s.WorkedMinutes,
		OvertimeMinutes:    s.OvertimeMinutes,
		WorkedHours:        s.WorkedHours,
		OvertimeHours:      s.OvertimeHours,
		DaysWorked:         s.DaysWorked,
		AveragePunctuality: s.AveragePunctuality,
		UnknownDays:        s.UnknownDays,
	}
}

func NewLedgerResponse(l Ledger) LedgerResponse {
	days := make([]DayRecordResponse, 0, len(l.Days))
	for _, d := range l.Days {
		days = append(days, NewDayRecordResponse(d))
	}
	return LedgerResponse{
		EmployeeID:  l.EmployeeID,
		PeriodStart: l.PeriodStart.Format("2006-01-02"),
		PeriodEnd:   l.PeriodEnd.Format("2006-01-02"),
		Days:        days,
		Summary:     NewSummaryResponse(l.Summary),
	}
}
