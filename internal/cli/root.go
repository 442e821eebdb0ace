package cli

import (
	"context"
	"fmt"

	"github.com/haulops/payroll-engine/internal/app"
	"github.com/haulops/payroll-engine/internal/config"
	"github.com/haulops/payroll-engine/internal/pkg/database"
	"github.com/spf13/cobra"
)

// Env is what a command needs to run. DB is nil when the loader was built
// without a database, as in tests.
type Env struct {
	Config   *config.Config
	DB       *database.DB
	Services *app.Services
}

// EnvLoader builds an Env and returns a cleanup func to run when the command
// finishes.
type EnvLoader func(ctx context.Context) (*Env, func(), error)

type RootOptions struct {
	Verbose bool
	load    EnvLoader
}

// DefaultLoader reads configuration from the environment and connects to
// PostgreSQL.
func DefaultLoader(ctx context.Context) (*Env, func(), error) {
	cfg, err := config.Load()
	if err != nil {
		return nil, nil, err
	}
	db, err := app.OpenDB(cfg)
	if err != nil {
		return nil, nil, fmt.Errorf("connect database: %w", err)
	}
	return &Env{
		Config:   cfg,
		DB:       db,
		Services: app.NewServices(cfg, db),
	}, db.Close, nil
}

func NewRootCommand(load EnvLoader) *cobra.Command {
	opts := &RootOptions{load: load}

	cmd := &cobra.Command{
		Use:   "payrollctl",
		Short: "Operate the haulage payroll engine",
		Long: `payrollctl runs migrations, reconstructs attendance, publishes payslips
and manages tariffs against the payroll database.`,
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	cmd.PersistentFlags().BoolVarP(&opts.Verbose, "verbose", "v", false, "verbose output")

	cmd.AddCommand(newMigrateCommand(opts))
	cmd.AddCommand(newReconstructCommand(opts))
	cmd.AddCommand(newPayslipCommand(opts))
	cmd.AddCommand(newTariffsCommand(opts))
	cmd.AddCommand(newTokenCommand(opts))

	return cmd
}

// withEnv loads the Env, runs fn and releases it.
func (o *RootOptions) withEnv(cmd *cobra.Command, fn func(ctx context.Context, env *Env) error) error {
	ctx := cmd.Context()
	if ctx == nil {
		ctx = context.Background()
	}

	env, cleanup, err := o.load(ctx)
	if err != nil {
		return WrapExitError(ExitCommandError, "failed to initialise", err)
	}
	if cleanup != nil {
		defer cleanup()
	}
	return fn(ctx, env)
}
