package cmd

import (
	"errors"
	"fmt"
	"log/slog"

	"github.com/spf13/cobra"

	"github.com/cmmoran/buildgen/internal/diag"
	"github.com/cmmoran/buildgen/pkg/action/diff"
)

var ErrOutOfDate = errors.New("generated builders are out of date")

func init() {
	rootCmd.AddCommand(NewDiffCommand())
}

func NewDiffCommand() *cobra.Command {
	var flags runFlags

	var diffCmd = &cobra.Command{
		Use:   "diff [patterns...]",
		Short: "show stale builders",
		Long:  "Render every builder in memory and print how it differs from the file on disk; exits non-zero when any file is out of date",
		RunE: func(c *cobra.Command, args []string) error {
			opts, err := flags.options(c.Flags(), args)
			if err != nil {
				return err
			}
			minSev, err := flags.minSeverity()
			if err != nil {
				return err
			}
			diffs, err := diff.Diff(c.Context(), opts, diag.NewConsoleReporter(slog.Default(), minSev))
			if err != nil {
				return err
			}
			for _, d := range diffs {
				status := "modified"
				if d.Missing {
					status = "missing"
				}
				_, _ = fmt.Fprintf(c.OutOrStdout(), "%s (%s) %s\n%s\n", d.File, d.Builder, status, d.Diff)
			}
			if len(diffs) > 0 {
				return fmt.Errorf("%w: %d file(s)", ErrOutOfDate, len(diffs))
			}
			return nil
		},
	}
	flags.register(diffCmd.Flags())

	return diffCmd
}
