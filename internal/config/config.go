// Package config loads sessionctl configuration from YAML.
package config

import (
	"fmt"
	"log/slog"
	"os"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/wasapi-go/sessionctl/pkg/sessioninfo"
)

// Data flow directions accepted by SelectConfig.DataFlow.
const (
	FlowRender  = "render"
	FlowCapture = "capture"
)

// Config is the sessionctl configuration file.
type Config struct {
	// LogLevel is one of debug, info, warn, error.
	LogLevel string `yaml:"log_level"`

	Capture CaptureConfig `yaml:"capture"`
	Select  SelectConfig  `yaml:"select"`
	Metrics MetricsConfig `yaml:"metrics"`
}

// CaptureConfig controls session event capture.
type CaptureConfig struct {
	// Path of the .alog capture file. Empty disables file capture.
	Path string `yaml:"path"`

	// Console mirrors captured events to the operational log.
	Console bool `yaml:"console"`
}

// SelectConfig chooses which sessions commands operate on.
type SelectConfig struct {
	sessioninfo.Selector `yaml:",inline"`

	// DataFlow is the endpoint direction to enumerate: render or capture.
	DataFlow string `yaml:"data_flow"`
}

// MetricsConfig controls OpenTelemetry metrics.
type MetricsConfig struct {
	Enabled bool `yaml:"enabled"`
}

// LoadError reports a configuration file that could not be used.
type LoadError struct {
	// File is the path to the file that failed to load.
	File string

	// Message describes the error.
	Message string

	// Cause is the underlying error, if any.
	Cause error
}

func (e *LoadError) Error() string {
	if e.Cause != nil {
		return e.File + ": " + e.Message + ": " + e.Cause.Error()
	}
	return e.File + ": " + e.Message
}

func (e *LoadError) Unwrap() error {
	return e.Cause
}

// Default returns the configuration used when no file is given.
func Default() *Config {
	return &Config{
		LogLevel: "info",
		Select: SelectConfig{
			Selector: sessioninfo.Selector{IncludeSystemSounds: true},
			DataFlow: FlowRender,
		},
	}
}

// Parse decodes YAML on top of Default and validates the result.
func Parse(data []byte) (*Config, error) {
	cfg := Default()
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, &LoadError{Message: "failed to parse YAML", Cause: err}
	}
	if err := cfg.Validate(); err != nil {
		return nil, &LoadError{Message: "invalid configuration", Cause: err}
	}
	return cfg, nil
}

// Load reads and parses the file at path.
func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, &LoadError{File: path, Message: "failed to read file", Cause: err}
	}

	cfg, err := Parse(data)
	if err != nil {
		if le, ok := err.(*LoadError); ok {
			le.File = path
			return nil, le
		}
		return nil, &LoadError{File: path, Message: err.Error()}
	}
	return cfg, nil
}

// Validate checks field values.
func (c *Config) Validate() error {
	if _, err := ParseLevel(c.LogLevel); err != nil {
		return err
	}
	switch strings.ToLower(c.Select.DataFlow) {
	case FlowRender, FlowCapture:
	default:
		return fmt.Errorf("unknown data_flow %q (want %s or %s)", c.Select.DataFlow, FlowRender, FlowCapture)
	}
	return nil
}

// SlogLevel returns the configured log level. Validate has already rejected
// unknown names, so they fall back to info here.
func (c *Config) SlogLevel() slog.Level {
	lvl, err := ParseLevel(c.LogLevel)
	if err != nil {
		return slog.LevelInfo
	}
	return lvl
}

// ParseLevel maps a level name to a slog.Level. The empty string is info.
func ParseLevel(name string) (slog.Level, error) {
	switch strings.ToLower(name) {
	case "debug":
		return slog.LevelDebug, nil
	case "", "info":
		return slog.LevelInfo, nil
	case "warn", "warning":
		return slog.LevelWarn, nil
	case "error":
		return slog.LevelError, nil
	default:
		return slog.LevelInfo, fmt.Errorf("unknown log_level %q", name)
	}
}
