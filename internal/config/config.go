// Package config holds the benchmark parameters and loads them from
// defaults, an optional YAML file and RANGEBENCH_* environment variables.
// Command-line flags are applied on top by cmd/rangebench.
package config

import (
	"errors"
	"fmt"
	"os"
	"strconv"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/Krishna8167/rangecache/internal/workload"
)

// ErrInvalidConfig is wrapped by every Validate failure.
var ErrInvalidConfig = errors.New("invalid configuration")

// EnvPrefix is prepended to every environment variable name.
const EnvPrefix = "RANGEBENCH_"

// Config is the full set of benchmark parameters.
type Config struct {
	N        int     `yaml:"n"`
	Q        int     `yaml:"q"`
	Capacity int     `yaml:"capacity"`
	Seed     uint64  `yaml:"seed"`
	HotPool  int     `yaml:"hot_pool"`
	PHot     float64 `yaml:"p_hot"`
	PUpdate  float64 `yaml:"p_update"`

	LogLevel    string `yaml:"log_level"`
	LogFormat   string `yaml:"log_format"`
	MetricsAddr string `yaml:"metrics_addr"`
	ReportFile  string `yaml:"report_file"`
}

// Default returns the stock benchmark: 100k elements, 50k queries, a
// 1000-entry cache and seed 42.
func Default() Config {
	return Config{
		N:         100_000,
		Q:         50_000,
		Capacity:  1000,
		Seed:      42,
		HotPool:   30,
		PHot:      0.95,
		PUpdate:   0.03,
		LogLevel:  "info",
		LogFormat: "text",
	}
}

// Load starts from Default, overlays the YAML file at path when path is
// non-empty, then overlays environment variables.
func Load(path string) (Config, error) {
	cfg := Default()

	if path != "" {
		data, err := os.ReadFile(path)
		if err != nil {
			return cfg, fmt.Errorf("config: read %s: %w", path, err)
		}
		if err := yaml.Unmarshal(data, &cfg); err != nil {
			return cfg, fmt.Errorf("config: parse %s: %w", path, err)
		}
	}

	if err := cfg.ApplyEnv(os.LookupEnv); err != nil {
		return cfg, err
	}
	return cfg, nil
}

// ApplyEnv overrides fields from RANGEBENCH_<NAME> variables, where NAME is
// the upper-cased YAML key. lookup is usually os.LookupEnv.
func (c *Config) ApplyEnv(lookup func(string) (string, bool)) error {
	ints := map[string]*int{
		"N":        &c.N,
		"Q":        &c.Q,
		"CAPACITY": &c.Capacity,
		"HOT_POOL": &c.HotPool,
	}
	for name, dst := range ints {
		if v, ok := lookup(EnvPrefix + name); ok {
			n, err := strconv.Atoi(strings.TrimSpace(v))
			if err != nil {
				return fmt.Errorf("config: %s%s: %w", EnvPrefix, name, err)
			}
			*dst = n
		}
	}

	floats := map[string]*float64{
		"P_HOT":    &c.PHot,
		"P_UPDATE": &c.PUpdate,
	}
	for name, dst := range floats {
		if v, ok := lookup(EnvPrefix + name); ok {
			f, err := strconv.ParseFloat(strings.TrimSpace(v), 64)
			if err != nil {
				return fmt.Errorf("config: %s%s: %w", EnvPrefix, name, err)
			}
			*dst = f
		}
	}

	if v, ok := lookup(EnvPrefix + "SEED"); ok {
		s, err := strconv.ParseUint(strings.TrimSpace(v), 10, 64)
		if err != nil {
			return fmt.Errorf("config: %sSEED: %w", EnvPrefix, err)
		}
		c.Seed = s
	}

	strs := map[string]*string{
		"LOG_LEVEL":    &c.LogLevel,
		"LOG_FORMAT":   &c.LogFormat,
		"METRICS_ADDR": &c.MetricsAddr,
		"REPORT_FILE":  &c.ReportFile,
	}
	for name, dst := range strs {
		if v, ok := lookup(EnvPrefix + name); ok {
			*dst = v
		}
	}
	return nil
}

// Workload returns the generator parameters carried by c.
func (c Config) Workload() workload.Params {
	return workload.Params{
		N:       c.N,
		Q:       c.Q,
		HotPool: c.HotPool,
		PHot:    c.PHot,
		PUpdate: c.PUpdate,
	}
}

// Validate rejects configurations the benchmark cannot run.
func (c Config) Validate() error {
	if c.Capacity < 1 {
		return fmt.Errorf("%w: capacity must be at least 1, got %d", ErrInvalidConfig, c.Capacity)
	}
	if err := c.Workload().Validate(); err != nil {
		return fmt.Errorf("%w: %v", ErrInvalidConfig, err)
	}

	switch strings.ToLower(c.LogLevel) {
	case "debug", "info", "warn", "error":
	default:
		return fmt.Errorf("%w: log level %q", ErrInvalidConfig, c.LogLevel)
	}

	switch strings.ToLower(c.LogFormat) {
	case "text", "json":
	default:
		return fmt.Errorf("%w: log format %q", ErrInvalidConfig, c.LogFormat)
	}
	return nil
}
