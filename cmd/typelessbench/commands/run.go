package commands

import (
	"context"
	"errors"
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/pavanmanishd/typeless/internal/bench"
)

func runBench(cmd *cobra.Command, opts *options) error {
	logger, err := newLogger(opts.logLevel)
	if err != nil {
		return err
	}
	defer func() { _ = logger.Sync() }()

	cfg, err := loadConfig(cmd, opts)
	if err != nil {
		return err
	}
	logger.Info("starting benchmark",
		zap.String("mode", cfg.Mode),
		zap.Int("rows", cfg.Rows),
		zap.Int("max_entries", cfg.MaxEntries),
		zap.Strings("contenders", cfg.Contenders),
		zap.String("allocator", cfg.Allocator))

	table, runErr := bench.NewRunner(cfg, logger).Run(cmd.Context())
	if runErr != nil && !errors.Is(runErr, context.Canceled) {
		return runErr
	}
	if runErr != nil {
		logger.Warn("benchmark interrupted, writing completed rows", zap.Int("rows", table.Rows()))
	}

	if err := writeTable(cmd, cfg.Output, table); err != nil {
		return err
	}
	if cfg.MetricsFile != "" {
		if err := table.WriteTextfile(cfg.MetricsFile); err != nil {
			return fmt.Errorf("failed to write metrics file: %w", err)
		}
		logger.Info("metrics written", zap.String("path", cfg.MetricsFile))
	}
	return runErr
}

func writeTable(cmd *cobra.Command, path string, table *bench.Table) error {
	if path == "" || path == "-" {
		return table.WriteJSON(cmd.OutOrStdout())
	}
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("failed to create output file: %w", err)
	}
	if err := table.WriteJSON(f); err != nil {
		f.Close()
		return fmt.Errorf("failed to write output file: %w", err)
	}
	return f.Close()
}
