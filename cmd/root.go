package cmd

import (
	"fmt"
	"log/slog"
	"os"
	"strings"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

const (
	levelTrace = slog.Level(-8)
	envPrefix  = "BUILDGEN"
)

var (
	configFiles []string
	level       string
)

var rootCmd = &cobra.Command{
	Use:          "buildgen",
	Short:        "generate fluent test-data builders for Go types",
	SilenceUsage: true,
	PersistentPreRunE: func(c *cobra.Command, _ []string) error {
		return setup(c)
	},
}

// Execute runs the command line and exits non-zero on failure.
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

func init() {
	pf := rootCmd.PersistentFlags()
	pf.StringVarP(&level, "level", "l", "info", "log level (trace, debug, info, warn, error, debug+1, etc)")
	pf.StringSliceVar(&configFiles, "config", nil, "config file(s); later files override earlier ones")
}

func parseLevel(s string) (slog.Level, error) {
	if strings.EqualFold(s, "trace") {
		return levelTrace, nil
	}
	var ll slog.Level
	err := ll.UnmarshalText([]byte(s))
	return ll, err
}

func newLogger(ll slog.Level) *slog.Logger {
	return slog.New(slog.NewJSONHandler(os.Stderr, &slog.HandlerOptions{Level: ll}))
}

// setup installs the default logger and loads configuration into viper.
func setup(c *cobra.Command) error {
	ll, err := parseLevel(level)
	if err != nil {
		return fmt.Errorf("invalid log level %q: %w", level, err)
	}
	slog.SetDefault(newLogger(ll))

	if err = loadConfig(viper.GetViper(), configFiles); err != nil {
		return err
	}

	// the config file only sets the level when --level was left alone
	if cfgLevel := viper.GetString("common.log.level"); cfgLevel != "" && !c.Flags().Changed("level") {
		if ll, err = parseLevel(cfgLevel); err != nil {
			return fmt.Errorf("invalid common.log.level %q: %w", cfgLevel, err)
		}
		slog.SetDefault(newLogger(ll))
	}
	return nil
}

// loadConfig reads buildgen.yaml from the working directory, or the given
// files merged in order, plus BUILDGEN_* environment variables. A missing
// default config file is not an error.
func loadConfig(v *viper.Viper, files []string) error {
	v.SetEnvPrefix(envPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer("-", "_", ".", "_"))
	v.AutomaticEnv()

	if len(files) == 0 {
		v.AddConfigPath(".")
		v.SetConfigType("yaml")
		v.SetConfigName("buildgen")
		if err := v.ReadInConfig(); err != nil {
			slog.Debug("no config file", "error", err)
		}
		return nil
	}

	for i, file := range files {
		v.SetConfigFile(file)
		read := v.MergeInConfig
		if i == 0 {
			read = v.ReadInConfig
		}
		if err := read(); err != nil {
			return fmt.Errorf("read config %s: %w", file, err)
		}
		slog.Debug("loaded config file", "file", file)
	}
	return nil
}
