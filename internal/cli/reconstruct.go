package cli

import (
	"context"

	"github.com/haulops/payroll-engine/internal/domain/attendance"
	"github.com/spf13/cobra"
)

func newReconstructCommand(opts *RootOptions) *cobra.Command {
	var req attendance.PeriodRequest

	cmd := &cobra.Command{
		Use:     "reconstruct",
		Short:   "Print the day-by-day attendance ledger of an employee",
		Example: `  payrollctl reconstruct --employee 0b8f7d9e-3c44-4a51-9a57-0d6f2b1e4c10 --start 2024-05-01 --end 2024-05-31`,
		Args:    cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := req.Validate(); err != nil {
				return WrapExitError(ExitCommandError, "invalid arguments", err)
			}
			return opts.withEnv(cmd, func(ctx context.Context, env *Env) error {
				start, end := req.Range()
				ledger, err := env.Services.Attendance.Reconstruct(ctx, req.EmployeeID, start, end)
				if err != nil {
					return err
				}
				return printJSON(cmd, attendance.NewLedgerResponse(ledger))
			})
		},
	}

	cmd.Flags().StringVar(&req.EmployeeID, "employee", "", "employee id (required)")
	cmd.Flags().StringVar(&req.StartDate, "start", "", "first day, YYYY-MM-DD (required)")
	cmd.Flags().StringVar(&req.EndDate, "end", "", "last day, YYYY-MM-DD (required)")
	_ = cmd.MarkFlagRequired("employee")
	_ = cmd.MarkFlagRequired("start")
	_ = cmd.MarkFlagRequired("end")

	return cmd
}
