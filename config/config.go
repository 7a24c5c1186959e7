// Package config loads run settings and assembles the simulation platform
// that executes a program.
package config

import (
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"strings"

	"github.com/sarchlab/flowmatic/core"
	"gopkg.in/yaml.v3"
)

// LogConfig selects the log handler.
type LogConfig struct {
	Level  string `yaml:"level"`
	Format string `yaml:"format"`
}

// Config holds the settings of one run.
type Config struct {
	DataDir     string    `yaml:"data_dir"`
	FrequencyHz float64   `yaml:"frequency_hz"`
	MaxSteps    uint64    `yaml:"max_steps"`
	Strict      bool      `yaml:"strict"`
	LenientLoad bool      `yaml:"lenient_load"`
	Printer     string    `yaml:"printer"`
	Log         LogConfig `yaml:"log"`
}

// Default returns the settings used when no file is given.
func Default() Config {
	return Config{
		DataDir:     ".",
		FrequencyHz: 1e9,
		MaxSteps:    1_000_000,
		Printer:     "-",
		Log: LogConfig{
			Level:  "warn",
			Format: "text",
		},
	}
}

// Load reads a YAML file on top of the defaults. Unknown keys are errors.
func Load(path string) (Config, error) {
	cfg := Default()

	f, err := os.Open(path)
	if err != nil {
		return cfg, fmt.Errorf("failed to open config: %w", err)
	}
	defer f.Close()

	dec := yaml.NewDecoder(f)
	dec.KnownFields(true)
	if err := dec.Decode(&cfg); err != nil && !errors.Is(err, io.EOF) {
		return cfg, fmt.Errorf("failed to parse config %s: %w", path, err)
	}

	return cfg, cfg.Validate()
}

// Validate checks the settings.
func (c Config) Validate() error {
	var errs []error

	if c.FrequencyHz <= 0 {
		errs = append(errs, fmt.Errorf("frequency_hz must be positive, got %v", c.FrequencyHz))
	}

	if _, err := ParseLevel(c.Log.Level); err != nil {
		errs = append(errs, err)
	}

	switch c.Log.Format {
	case "text", "json":
	default:
		errs = append(errs, fmt.Errorf("log.format must be text or json, got %q", c.Log.Format))
	}

	return errors.Join(errs...)
}

// ParseLevel maps a level name to a slog level. "trace" is core.LevelTrace.
func ParseLevel(name string) (slog.Level, error) {
	switch strings.ToLower(name) {
	case "trace":
		return core.LevelTrace, nil
	case "debug":
		return slog.LevelDebug, nil
	case "info", "":
		return slog.LevelInfo, nil
	case "warn", "warning":
		return slog.LevelWarn, nil
	case "error":
		return slog.LevelError, nil
	default:
		return 0, fmt.Errorf("unknown log level %q", name)
	}
}

// Handler creates the slog handler the settings describe.
func (l LogConfig) Handler(w io.Writer) (slog.Handler, error) {
	level, err := ParseLevel(l.Level)
	if err != nil {
		return nil, err
	}

	opts := &slog.HandlerOptions{Level: level}
	if l.Format == "json" {
		return slog.NewJSONHandler(w, opts), nil
	}

	return slog.NewTextHandler(w, opts), nil
}
