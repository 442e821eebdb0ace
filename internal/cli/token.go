package cli

import (
	"context"
	"fmt"

	"github.com/google/uuid"
	"github.com/haulops/payroll-engine/internal/domain/employee"
	"github.com/haulops/payroll-engine/internal/pkg/jwt"
	"github.com/spf13/cobra"
)

func newTokenCommand(opts *RootOptions) *cobra.Command {
	var employeeID, role string

	cmd := &cobra.Command{
		Use:   "token",
		Short: "Mint an access token for an employee",
		Long: `Mint an access token for an employee.

The role is read from the employee record unless --role is given.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if _, err := uuid.Parse(employeeID); err != nil {
				return WrapExitError(ExitCommandError, "invalid --employee", err)
			}
			if role != "" && !employee.Role(role).IsValid() {
				return WrapExitError(ExitCommandError, fmt.Sprintf("invalid --role %q", role), nil)
			}
			return opts.withEnv(cmd, func(ctx context.Context, env *Env) error {
				tokenRole := employee.Role(role)
				if tokenRole == "" {
					emp, err := env.Services.Employees.GetByID(ctx, employeeID)
					if err != nil {
						return err
					}
					tokenRole = emp.Role
				}

				svc := jwt.NewJWTService(env.Config.JWT.Secret, env.Config.JWT.AccessExpiration)
				token, expiresAt, err := svc.GenerateAccessToken(employeeID, tokenRole)
				if err != nil {
					return err
				}
				return printJSON(cmd, map[string]any{
					"access_token": token,
					"expires_at":   expiresAt,
					"role":         tokenRole,
				})
			})
		},
	}

	cmd.Flags().StringVar(&employeeID, "employee", "", "employee id (required)")
	cmd.Flags().StringVar(&role, "role", "", "override the role claim")
	_ = cmd.MarkFlagRequired("employee")

	return cmd
}
