package cli

import (
	"context"
	"fmt"

	"github.com/google/uuid"
	"github.com/haulops/payroll-engine/internal/domain/payroll"
	"github.com/spf13/cobra"
)

func newPayslipCommand(opts *RootOptions) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "payslip",
		Short: "Preview and publish monthly payslips",
	}

	cmd.AddCommand(newPayslipPeriodCommand(opts, "preview", "Generate a payslip without saving it",
		func(ctx context.Context, svc payroll.PayrollService, req payroll.PeriodRequest) (payroll.PayslipResponse, error) {
			return svc.Preview(ctx, req)
		}))
	cmd.AddCommand(newPayslipPeriodCommand(opts, "publish", "Generate and store a payslip, replacing any previous one",
		func(ctx context.Context, svc payroll.PayrollService, req payroll.PeriodRequest) (payroll.PayslipResponse, error) {
			return svc.Publish(ctx, req)
		}))
	cmd.AddCommand(newPublishMonthCommand(opts))

	return cmd
}

type periodAction func(ctx context.Context, svc payroll.PayrollService, req payroll.PeriodRequest) (payroll.PayslipResponse, error)

func newPayslipPeriodCommand(opts *RootOptions, use, short string, action periodAction) *cobra.Command {
	var req payroll.PeriodRequest

	cmd := &cobra.Command{
		Use:   use,
		Short: short,
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if _, err := uuid.Parse(req.EmployeeID); err != nil {
				return WrapExitError(ExitCommandError, "invalid --employee", err)
			}
			if err := req.Validate(); err != nil {
				return WrapExitError(ExitCommandError, "invalid arguments", err)
			}
			return opts.withEnv(cmd, func(ctx context.Context, env *Env) error {
				result, err := action(ctx, env.Services.Payroll, req)
				if err != nil {
					return err
				}
				return printJSON(cmd, result)
			})
		},
	}

	cmd.Flags().StringVar(&req.EmployeeID, "employee", "", "employee id (required)")
	cmd.Flags().IntVar(&req.Year, "year", 0, "payroll year (required)")
	cmd.Flags().IntVar(&req.Month, "month", 0, "payroll month 1-12 (required)")
	_ = cmd.MarkFlagRequired("employee")
	_ = cmd.MarkFlagRequired("year")
	_ = cmd.MarkFlagRequired("month")

	return cmd
}

func newPublishMonthCommand(opts *RootOptions) *cobra.Command {
	var req payroll.MonthRequest

	cmd := &cobra.Command{
		Use:   "publish-month",
		Short: "Publish payslips for every active employee",
		Long: `Publish payslips for every active employee of the month.

A failure for one employee does not stop the others. The command exits
with code 1 when any employee failed.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := req.Validate(); err != nil {
				return WrapExitError(ExitCommandError, "invalid arguments", err)
			}
			return opts.withEnv(cmd, func(ctx context.Context, env *Env) error {
				result, err := env.Services.Payroll.PublishMonth(ctx, req)
				if err != nil {
					return err
				}
				if err := printJSON(cmd, result); err != nil {
					return err
				}
				if result.Failed > 0 {
					return WrapExitError(ExitFailure, fmt.Sprintf("%d of %d payslips failed", result.Failed, result.Failed+result.Published), nil)
				}
				return nil
			})
		},
	}

	cmd.Flags().IntVar(&req.Year, "year", 0, "payroll year (required)")
	cmd.Flags().IntVar(&req.Month, "month", 0, "payroll month 1-12 (required)")
	_ = cmd.MarkFlagRequired("year")
	_ = cmd.MarkFlagRequired("month")

	return cmd
}
