package cli

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"
)

func newMigrateCommand(opts *RootOptions) *cobra.Command {
	var dir string

	cmd := &cobra.Command{
		Use:   "migrate",
		Short: "Apply pending SQL migrations",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return opts.withEnv(cmd, func(ctx context.Context, env *Env) error {
				if env.DB == nil {
					return WrapExitError(ExitCommandError, "migrate needs a database connection", nil)
				}
				if dir == "" {
					dir = env.Config.App.MigrationsDir
				}
				applied, err := env.DB.Migrate(ctx, dir)
				if err != nil {
					return WrapExitError(ExitCommandError, "migration failed", err)
				}
				fmt.Fprintf(cmd.OutOrStdout(), "applied %d migration(s) from %s\n", applied, dir)
				return nil
			})
		},
	}

	cmd.Flags().StringVar(&dir, "dir", "", "migrations directory (defaults to MIGRATIONS_DIR)")

	return cmd
}
