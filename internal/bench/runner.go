package bench

import (
	"context"
	"fmt"

	"go.uber.org/zap"
)

// Runner measures every configured contender across the configured rows.
type Runner struct {
	cfg    *Config
	logger *zap.Logger
}

// NewRunner creates a runner. A nil logger discards output.
func NewRunner(cfg *Config, logger *zap.Logger) *Runner {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Runner{cfg: cfg, logger: logger}
}

// Run measures all rows in order. Cancellation is checked between runs;
// on cancellation the rows completed so far are returned with ctx's error.
func (r *Runner) Run(ctx context.Context) (*Table, error) {
	workloads := make([]workload, len(r.cfg.Contenders))
	for i, name := range r.cfg.Contenders {
		w, err := r.workload(name)
		if err != nil {
			return nil, err
		}
		workloads[i] = w
	}

	entries := r.cfg.Entries()
	table := NewTable(r.cfg.Mode, r.cfg.Contenders, entries)
	for row, n := range entries {
		values := make([]float64, len(workloads))
		for col, w := range workloads {
			if err := ctx.Err(); err != nil {
				return table, err
			}
			s, err := w(n, r.cfg.ErasePeriod)
			if err != nil {
				return table, fmt.Errorf("%s with %d entries: %w", r.cfg.Contenders[col], n, err)
			}
			values[col] = r.value(s)
		}
		table.AddRow(values)
		r.logger.Info("row measured",
			zap.Int("row", row+1),
			zap.Int("rows", len(entries)),
			zap.Int("entries", n),
			zap.Float64s("values", values))
	}
	return table, nil
}

func (r *Runner) value(s Sample) float64 {
	if r.cfg.Mode == ModeMemory {
		return float64(s.Bytes)
	}
	return float64(s.Elapsed.Nanoseconds()) / 1e6
}
