package cmd

import (
	"fmt"
	"strings"

	"github.com/spf13/pflag"
	"github.com/spf13/viper"

	"github.com/cmmoran/buildgen/internal/diag"
	options "github.com/cmmoran/buildgen/pkg/parser"
)

// runFlags are the flags shared by commands that load builders.
type runFlags struct {
	dir         string
	manifest    string
	nilChecking string
	severity    string
}

func (f *runFlags) register(fs *pflag.FlagSet) {
	fs.StringVarP(&f.dir, "dir", "C", ".", "directory patterns are resolved against")
	fs.StringVar(&f.manifest, "manifest", ".buildgen.yaml", "fingerprint manifest, relative to --dir; empty disables skipping")
	fs.StringVar(&f.nilChecking, "nil-checking", "auto", "emit nilaway suppressions: auto (detect from go.mod), on, off")
	fs.StringVar(&f.severity, "severity", "info", "lowest diagnostic severity printed (info, warning, error)")
}

// options merges the config file under the flags the user set explicitly.
func (f *runFlags) options(fs *pflag.FlagSet, patterns []string) (*options.Options, error) {
	o := options.NewOptions()
	if err := viper.Unmarshal(o); err != nil {
		return nil, fmt.Errorf("config: %w", err)
	}
	if fs.Changed("dir") || o.Dir == "" {
		o.Dir = f.dir
	}
	if fs.Changed("manifest") {
		o.Manifest = f.manifest
	}
	if len(patterns) > 0 {
		o.Patterns = patterns
	}
	switch strings.ToLower(f.nilChecking) {
	case "auto":
	case "on", "true":
		options.WithNilChecking(true)(o)
	case "off", "false":
		options.WithNilChecking(false)(o)
	default:
		return nil, fmt.Errorf("invalid --nil-checking %q", f.nilChecking)
	}
	return o, nil
}

func (f *runFlags) minSeverity() (diag.Severity, error) {
	switch strings.ToLower(f.severity) {
	case "info":
		return diag.SeverityInfo, nil
	case "warning", "warn":
		return diag.SeverityWarning, nil
	case "error":
		return diag.SeverityError, nil
	}
	return 0, fmt.Errorf("invalid --severity %q", f.severity)
}
