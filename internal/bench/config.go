package bench

import (
	"errors"
	"fmt"
	"os"

	yaml "github.com/goccy/go-yaml"

	"richards/internal/logx"
	"richards/internal/sched"
)

// Config mirrors config.yml
type Config struct {
	Iterations int    `yaml:"iterations"` // measured iterations, 100 by default
	Warmup     int    `yaml:"warmup"`     // unmeasured iterations run first
	Inner      int    `yaml:"inner"`      // simulation runs per iteration, 100 by default
	Count      int    `yaml:"count"`      // idle countdown per run, 10000 by default
	Parallel   int    `yaml:"parallel"`   // concurrent runs within an iteration
	Verify     bool   `yaml:"verify"`     // check every run against the known checksum
	Trace      bool   `yaml:"trace"`      // print the dispatch trace of a single run
	CSVPath    string `yaml:"csv_path"`   // per-iteration results, disabled when empty
	SpansFile  string `yaml:"spans_file"` // OpenTelemetry stdout export, disabled when empty

	Log LogConfig `yaml:"log"`
}

type LogConfig struct {
	Level   string `yaml:"level"`
	Console bool   `yaml:"console"`
	File    string `yaml:"file"`
}

// Logx converts to the logging package's config.
func (c LogConfig) Logx() logx.Config {
	return logx.Config{
		Level:   c.Level,
		Console: c.Console,
		File:    logx.FileConfig{Enabled: c.File != "", Path: c.File},
	}
}

// DefaultConfig is used when no config file exists.
func DefaultConfig() Config {
	return Config{
		Iterations: 100,
		Warmup:     0,
		Inner:      100,
		Count:      sched.DefaultCount,
		Parallel:   1,
		Verify:     true,
		Log: LogConfig{
			Level:   "info",
			Console: true,
		},
	}
}

// Load reads YAML over the defaults; empty path or a missing file = defaults only.
func Load(path string) (Config, error) {
	cfg := DefaultConfig()

	if path == "" {
		return cfg, nil
	}
	data, err := os.ReadFile(path)
	if errors.Is(err, os.ErrNotExist) {
		return cfg, nil
	}
	if err != nil {
		return cfg, fmt.Errorf("read config: %w", err)
	}
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return cfg, fmt.Errorf("parse config %s: %w", path, err)
	}
	return cfg.Normalize(), nil
}

// Normalize applies sanity clamps.
func (c Config) Normalize() Config {
	if c.Iterations <= 0 {
		c.Iterations = 100
	}
	if c.Warmup < 0 {
		c.Warmup = 0
	}
	if c.Inner <= 0 {
		c.Inner = 100
	}
	if c.Count <= 0 {
		c.Count = sched.DefaultCount
	}
	if c.Parallel <= 0 {
		c.Parallel = 1
	}
	// a trace is only readable for one run
	if c.Trace {
		c.Iterations = 1
		c.Warmup = 0
		c.Inner = 1
		c.Parallel = 1
	}
	return c
}
