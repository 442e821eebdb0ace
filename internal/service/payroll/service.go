package payroll

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"github.com/haulops/payroll-engine/internal/domain/employee"
	"github.com/haulops/payroll-engine/internal/domain/payroll"
	"github.com/haulops/payroll-engine/internal/pkg/database"
	"github.com/haulops/payroll-engine/internal/pkg/export"
	"golang.org/x/sync/errgroup"
)

type PayrollServiceImpl struct {
	*Generator
	tx           database.Transactor
	payslipRepo  payroll.PayslipRepository
	employeeRepo employee.EmployeeRepository
	concurrency  int
}

func NewPayrollService(
	tx database.Transactor,
	payslipRepo payroll.PayslipRepository,
	employeeRepo employee.EmployeeRepository,
	generator *Generator,
) payroll.PayrollService {
	concurrency := generator.settings.Concurrency
	if concurrency <= 0 {
		concurrency = 1
	}
	return &PayrollServiceImpl{
		Generator:    generator,
		tx:           tx,
		payslipRepo:  payslipRepo,
		employeeRepo: employeeRepo,
		concurrency:  concurrency,
	}
}

func (s *PayrollServiceImpl) Preview(ctx context.Context, req payroll.PeriodRequest) (payroll.PayslipResponse, error) {
	if err := req.Validate(); err != nil {
		return payroll.PayslipResponse{}, err
	}

	lines, err := s.Generate(ctx, req.EmployeeID, req.Year, req.Month)
	if err != nil {
		return payroll.PayslipResponse{}, err
	}

	return payroll.NewPayslipResponse(payroll.Payslip{
		EmployeeID:  req.EmployeeID,
		Year:        req.Year,
		Month:       req.Month,
		TotalAmount: payroll.Total(lines),
		Lines:       lines,
	}), nil
}

func (s *PayrollServiceImpl) Publish(ctx context.Context, req payroll.PeriodRequest) (payroll.PayslipResponse, error) {
	if err := req.Validate(); err != nil {
		return payroll.PayslipResponse{}, err
	}

	p, err := s.publish(ctx, req.EmployeeID, req.Year, req.Month)
	if err != nil {
		return payroll.PayslipResponse{}, err
	}
	return payroll.NewPayslipResponse(p), nil
}

// publish replaces the stored payslip with freshly generated lines in one
// transaction, so readers see either the old or the new set.
func (s *PayrollServiceImpl) publish(ctx context.Context, employeeID string, year, month int) (payroll.Payslip, error) {
	lines, err := s.Generate(ctx, employeeID, year, month)
	if err != nil {
		return payroll.Payslip{}, err
	}

	var stored payroll.Payslip
	err = s.tx.WithinTx(ctx, func(txCtx context.Context) error {
		header, err := s.payslipRepo.UpsertHeader(txCtx, payroll.Payslip{
			EmployeeID:  employeeID,
			Year:        year,
			Month:       month,
			TotalAmount: payroll.Total(lines),
			GeneratedAt: s.now().UTC(),
		})
		if err != nil {
			return fmt.Errorf("failed to upsert payslip: %w", err)
		}
		if err := s.payslipRepo.ReplaceLines(txCtx, header.ID, lines); err != nil {
			return fmt.Errorf("failed to replace payslip lines: %w", err)
		}
		header.Lines = lines
		stored = header
		return nil
	})
	if err != nil {
		return payroll.Payslip{}, err
	}

	slog.Info("payslip published",
		"payslip_id", stored.ID,
		"employee_id", employeeID,
		"period", fmt.Sprintf("%04d-%02d", year, month),
		"lines", len(lines),
		"total", stored.TotalAmount.String(),
	)
	return stored, nil
}

func (s *PayrollServiceImpl) PublishMonth(ctx context.Context, req payroll.MonthRequest) (payroll.BatchResponse, error) {
	if err := req.Validate(); err != nil {
		return payroll.BatchResponse{}, err
	}

	employees, err := s.employeeRepo.ListActive(ctx)
	if err != nil {
		return payroll.BatchResponse{}, fmt.Errorf("failed to list employees: %w", err)
	}

	outcomes := make([]payroll.BatchOutcome, len(employees))
	var g errgroup.Group
	g.SetLimit(s.concurrency)
	for i, emp := range employees {
		i, emp := i, emp
		g.Go(func() error {
			outcome := payroll.BatchOutcome{EmployeeID: emp.ID}
			if err := ctx.Err(); err != nil {
				outcome.Error = err.Error()
				outcomes[i] = outcome
				return nil
			}
			p, err := s.publish(ctx, emp.ID, req.Year, req.Month)
			if err != nil {
				slog.Error("failed to publish payslip", "employee_id", emp.ID, "error", err)
				outcome.Error = err.Error()
			} else {
				total := p.TotalAmount
				outcome.PayslipID = p.ID
				outcome.TotalAmount = &total
			}
			outcomes[i] = outcome
			return nil
		})
	}
	_ = g.Wait()

	resp := payroll.BatchResponse{Year: req.Year, Month: req.Month, Outcomes: outcomes}
	for _, o := range outcomes {
		if o.Error == "" {
			resp.Published++
		} else {
			resp.Failed++
		}
	}
	return resp, nil
}

func (s *PayrollServiceImpl) GetPayslip(ctx context.Context, id string) (payroll.PayslipResponse, error) {
	p, err := s.payslipRepo.GetByID(ctx, id)
	if err != nil {
		return payroll.PayslipResponse{}, err
	}
	return payroll.NewPayslipResponse(p), nil
}

func (s *PayrollServiceImpl) ListPayslips(ctx context.Context, filter payroll.PayslipFilter) ([]payroll.PayslipResponse, error) {
	payslips, err := s.payslipRepo.List(ctx, filter)
	if err != nil {
		return nil, fmt.Errorf("failed to list payslips: %w", err)
	}

	resp := make([]payroll.PayslipResponse, 0, len(payslips))
	for _, p := range payslips {
		resp = append(resp, payroll.NewPayslipResponse(p))
	}
	return resp, nil
}

func (s *PayrollServiceImpl) RenderPayslipPDF(ctx context.Context, id string) ([]byte, string, error) {
	p, err := s.payslipRepo.GetByID(ctx, id)
	if err != nil {
		return nil, "", err
	}
	if p.EmployeeName == nil {
		emp, err := s.employeeRepo.GetByID(ctx, p.EmployeeID)
		if err != nil && !errors.Is(err, employee.ErrEmployeeNotFound) {
			return nil, "", err
		}
		if err == nil {
			p.EmployeeName = &emp.FullName
			p.EmployeeCode = &emp.EmployeeCode
		}
	}

	out, err := export.PayslipPDF(p)
	if err != nil {
		return nil, "", err
	}
	return out, export.PayslipFileName(p), nil
}
