package cmd

import (
	"log/slog"

	"github.com/spf13/cobra"

	"github.com/cmmoran/buildgen/internal/diag"
	"github.com/cmmoran/buildgen/pkg/action/generate"
)

func init() {
	rootCmd.AddCommand(NewGenerateCommand())
}

func NewGenerateCommand() *cobra.Command {
	var (
		flags  runFlags
		force  bool
		dryRun bool
	)

	var generateCmd = &cobra.Command{
		Use:   "generate [patterns...]",
		Short: "generate builders",
		Long:  "Generate the <builder>_gen.go file of every //buildgen:builder directive found in the given package patterns (default ./...)",
		RunE: func(c *cobra.Command, args []string) error {
			opts, err := flags.options(c.Flags(), args)
			if err != nil {
				return err
			}
			opts.Force = opts.Force || force
			opts.DryRun = dryRun
			minSev, err := flags.minSeverity()
			if err != nil {
				return err
			}
			results, err := generate.Generate(c.Context(), opts, diag.NewConsoleReporter(slog.Default(), minSev))
			written := 0
			for _, r := range results {
				if r.Written {
					written++
				}
			}
			slog.Info("done", "builders", len(results), "written", written)
			return err
		},
	}
	flags.register(generateCmd.Flags())
	generateCmd.Flags().BoolVarP(&force, "force", "f", false, "regenerate builders whose fingerprint is unchanged")
	generateCmd.Flags().BoolVarP(&dryRun, "dry-run", "n", false, "render without writing files or the manifest")

	return generateCmd
}
