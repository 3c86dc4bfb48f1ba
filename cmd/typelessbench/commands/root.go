package commands

import (
	"context"
	"fmt"
	"strings"

	"github.com/spf13/cobra"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"

	"github.com/pavanmanishd/typeless/internal/bench"
)

// options holds the flags that are not part of bench.Config.
type options struct {
	configFile string
	logLevel   string
}

// newRootCmd builds the command tree with fresh flag state.
func newRootCmd() *cobra.Command {
	opts := &options{}
	cmd := &cobra.Command{
		Use:   "typelessbench",
		Short: "Benchmark the type-erased vector",
		Long: `Benchmark the type-erased vector against a builtin slice.

Each row pushes N transforms into every contender, erasing the newest
element periodically, then clears it. Row r uses (r+1)*max-entries/rows
entries.

Example:
  # Time 10 rows up to 1M entries and save the table
  typelessbench --rows 10 --max-entries 1000000 -o timings.json

  # Measure reserved memory with vectors drawing from an arena
  typelessbench --mode memory --allocator arena`,
		SilenceUsage:  true,
		SilenceErrors: true,
		Args:          cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runBench(cmd, opts)
		},
	}
	cmd.PersistentFlags().StringVarP(&opts.configFile, "config", "c", "", "YAML configuration file")
	cmd.PersistentFlags().StringVar(&opts.logLevel, "log-level", "info", "log level: debug, info, warn or error")
	bench.RegisterFlags(cmd.PersistentFlags())
	cmd.AddCommand(newConfigCmd(opts))
	return cmd
}

// Execute runs the root command.
func Execute(ctx context.Context) error {
	return newRootCmd().ExecuteContext(ctx)
}

// loadConfig resolves the configuration for cmd.
func loadConfig(cmd *cobra.Command, opts *options) (*bench.Config, error) {
	return bench.Load(opts.configFile, cmd.Flags())
}

// newLogger builds a console logger writing to stderr so results on stdout
// stay machine readable.
func newLogger(level string) (*zap.Logger, error) {
	lvl, err := parseLogLevel(level)
	if err != nil {
		return nil, err
	}
	cfg := zap.NewDevelopmentConfig()
	cfg.Level = zap.NewAtomicLevelAt(lvl)
	cfg.DisableStacktrace = true
	cfg.OutputPaths = []string{"stderr"}
	cfg.EncoderConfig.EncodeLevel = zapcore.CapitalColorLevelEncoder
	return cfg.Build()
}

func parseLogLevel(level string) (zapcore.Level, error) {
	switch strings.ToLower(level) {
	case "debug":
		return zapcore.DebugLevel, nil
	case "info", "":
		return zapcore.InfoLevel, nil
	case "warn", "warning":
		return zapcore.WarnLevel, nil
	case "error":
		return zapcore.ErrorLevel, nil
	default:
		return zapcore.InfoLevel, fmt.Errorf("unknown log level %q", level)
	}
}
