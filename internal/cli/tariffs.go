package cli

import (
	"context"
	"fmt"
	"os"

	"github.com/haulops/payroll-engine/internal/domain/tariff"
	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"
)

func newTariffsCommand(opts *RootOptions) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "tariffs",
		Short: "Import and inspect tariff rates",
	}

	cmd.AddCommand(newTariffsImportCommand(opts))
	cmd.AddCommand(newTariffsResolveCommand(opts))

	return cmd
}

// LoadImportDocument parses a tariff YAML file.
func LoadImportDocument(path string) (tariff.ImportDocument, error) {
	var doc tariff.ImportDocument

	raw, err := os.ReadFile(path)
	if err != nil {
		return doc, err
	}
	if err := yaml.Unmarshal(raw, &doc); err != nil {
		return doc, fmt.Errorf("parse %s: %w", path, err)
	}
	return doc, nil
}

func newTariffsImportCommand(opts *RootOptions) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "import <file>",
		Short: "Upsert concepts and replace their rates from a YAML file",
		Example: `  payrollctl tariffs import tariffs.yaml

  # tariffs.yaml
  concepts:
    - code: KM_RATE
      name: Kilometre rate
      rates:
        - value: "0.10"
          role: DRIVER`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			doc, err := LoadImportDocument(args[0])
			if err != nil {
				return WrapExitError(ExitCommandError, "failed to read tariffs", err)
			}
			if err := doc.Validate(); err != nil {
				return WrapExitError(ExitCommandError, "invalid tariff file", err)
			}
			return opts.withEnv(cmd, func(ctx context.Context, env *Env) error {
				summary, err := env.Services.Tariff.Import(ctx, doc)
				if err != nil {
					return err
				}
				return printJSON(cmd, summary)
			})
		},
	}

	return cmd
}

func newTariffsResolveCommand(opts *RootOptions) *cobra.Command {
	var req tariff.ResolveRequest

	cmd := &cobra.Command{
		Use:   "resolve",
		Short: "Show which rate applies to an employee",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return opts.withEnv(cmd, func(ctx context.Context, env *Env) error {
				result, err := env.Services.Tariff.ResolveForEmployee(ctx, req)
				if err != nil {
					return err
				}
				return printJSON(cmd, result)
			})
		},
	}

	cmd.Flags().StringVar(&req.Concept, "concept", "", "concept code, e.g. KM_RATE (required)")
	cmd.Flags().StringVar(&req.EmployeeID, "employee", "", "employee id (required)")
	cmd.Flags().StringVar(&req.AsOf, "as-of", "", "date to resolve at, YYYY-MM-DD (defaults to today)")
	_ = cmd.MarkFlagRequired("concept")
	_ = cmd.MarkFlagRequired("employee")

	return cmd
}
