package bench

import (
	"errors"
	"fmt"
	"slices"
	"strings"

	"github.com/spf13/pflag"
	"github.com/spf13/viper"
)

// Measurement modes.
const (
	ModeTime   = "time"   // milliseconds per run
	ModeMemory = "memory" // reserved bytes left after the run
)

// Allocators selectable for the vector contenders.
const (
	AllocatorHeap     = "heap"
	AllocatorArena    = "arena"
	AllocatorTracking = "tracking"
)

// EnvPrefix prefixes environment overrides, e.g. TYPELESSBENCH_ROWS.
const EnvPrefix = "TYPELESSBENCH"

// Config represents the benchmark configuration
type Config struct {
	Mode        string   `mapstructure:"mode" yaml:"mode"`
	Rows        int      `mapstructure:"rows" yaml:"rows"`
	MaxEntries  int      `mapstructure:"max_entries" yaml:"max_entries"`
	ErasePeriod int      `mapstructure:"erase_period" yaml:"erase_period"`
	Contenders  []string `mapstructure:"contenders" yaml:"contenders"`
	Allocator   string   `mapstructure:"allocator" yaml:"allocator"`
	ChunkSize   int      `mapstructure:"chunk_size" yaml:"chunk_size"`
	Output      string   `mapstructure:"output" yaml:"output"`
	MetricsFile string   `mapstructure:"metrics_file" yaml:"metrics_file"`
}

// DefaultConfig returns the configuration used when nothing overrides it.
func DefaultConfig() Config {
	return Config{
		Mode:        ModeTime,
		Rows:        50,
		MaxEntries:  10_000_000,
		ErasePeriod: 4,
		Contenders:  []string{StandardVector, TypelessVector, TypesafeTypelessVector},
		Allocator:   AllocatorHeap,
		ChunkSize:   1 << 20,
		Output:      "-",
	}
}

// flagKeys maps configuration keys to flag names.
var flagKeys = map[string]string{
	"mode":         "mode",
	"rows":         "rows",
	"max_entries":  "max-entries",
	"erase_period": "erase-period",
	"contenders":   "contenders",
	"allocator":    "allocator",
	"chunk_size":   "chunk-size",
	"output":       "output",
	"metrics_file": "metrics-file",
}

// RegisterFlags defines the configuration flags on fs.
func RegisterFlags(fs *pflag.FlagSet) {
	d := DefaultConfig()
	fs.String("mode", d.Mode, "measurement mode: time or memory")
	fs.Int("rows", d.Rows, "number of rows (entry counts) to measure")
	fs.Int("max-entries", d.MaxEntries, "entries pushed in the last row")
	fs.Int("erase-period", d.ErasePeriod, "erase the newest element once every this many pushes")
	fs.StringSlice("contenders", d.Contenders, "containers to measure")
	fs.String("allocator", d.Allocator, "allocator for vector contenders: heap, arena or tracking")
	fs.Int("chunk-size", d.ChunkSize, "arena chunk size in bytes")
	fs.StringP("output", "o", d.Output, "results file (pandas split JSON), - for stdout")
	fs.String("metrics-file", d.MetricsFile, "also write results in Prometheus textfile format")
}

// Load builds the configuration from defaults, the YAML file at path (if
// any), TYPELESSBENCH_* environment variables and the flags set on fs, in
// increasing order of precedence.
func Load(path string, fs *pflag.FlagSet) (*Config, error) {
	v := viper.New()

	d := DefaultConfig()
	v.SetDefault("mode", d.Mode)
	v.SetDefault("rows", d.Rows)
	v.SetDefault("max_entries", d.MaxEntries)
	v.SetDefault("erase_period", d.ErasePeriod)
	v.SetDefault("contenders", d.Contenders)
	v.SetDefault("allocator", d.Allocator)
	v.SetDefault("chunk_size", d.ChunkSize)
	v.SetDefault("output", d.Output)
	v.SetDefault("metrics_file", d.MetricsFile)

	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer("-", "_"))
	v.AutomaticEnv()

	if path != "" {
		v.SetConfigFile(path)
		v.SetConfigType("yaml")
		if err := v.ReadInConfig(); err != nil {
			return nil, fmt.Errorf("failed to read config file: %w", err)
		}
	}

	if fs != nil {
		for key, name := range flagKeys {
			if f := fs.Lookup(name); f != nil {
				if err := v.BindPFlag(key, f); err != nil {
					return nil, fmt.Errorf("failed to bind flag %s: %w", name, err)
				}
			}
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("failed to unmarshal config: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}
	return &cfg, nil
}

// Validate validates the configuration
func (c *Config) Validate() error {
	var errs []error
	if c.Mode != ModeTime && c.Mode != ModeMemory {
		errs = append(errs, fmt.Errorf("mode must be %q or %q, got %q", ModeTime, ModeMemory, c.Mode))
	}
	if c.Rows <= 0 {
		errs = append(errs, fmt.Errorf("rows must be greater than 0"))
	}
	if c.MaxEntries < c.Rows {
		errs = append(errs, fmt.Errorf("max_entries (%d) must be at least rows (%d)", c.MaxEntries, c.Rows))
	}
	if c.ErasePeriod <= 0 {
		errs = append(errs, fmt.Errorf("erase_period must be greater than 0"))
	}
	if len(c.Contenders) == 0 {
		errs = append(errs, fmt.Errorf("at least one contender must be configured"))
	}
	for _, name := range c.Contenders {
		if !slices.Contains(ContenderNames(), name) {
			errs = append(errs, fmt.Errorf("unknown contender %q", name))
		}
	}
	switch c.Allocator {
	case AllocatorHeap, AllocatorArena, AllocatorTracking:
	default:
		errs = append(errs, fmt.Errorf("unknown allocator %q", c.Allocator))
	}
	if c.ChunkSize < 0 {
		errs = append(errs, fmt.Errorf("chunk_size must not be negative"))
	}
	return errors.Join(errs...)
}

// Entries returns the entry count of each row: row r measures
// (r+1)*MaxEntries/Rows entries.
func (c *Config) Entries() []int {
	entries := make([]int, c.Rows)
	for i := range entries {
		entries[i] = (i + 1) * c.MaxEntries / c.Rows
	}
	return entries
}
