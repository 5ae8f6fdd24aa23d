// Package config holds the configuration of the economize command.
package config

import (
	"errors"
	"fmt"
	"log/slog"
	"math"
	"os"
	"path/filepath"
	"strings"

	"github.com/BurntSushi/toml"
	"gopkg.in/yaml.v3"
)

// EnvConfig is the environment variable holding the default configuration file.
const EnvConfig = "ECONOMIZE_CONFIG"

// ErrInvalidConfig is returned by Validate and Load on a malformed configuration.
var ErrInvalidConfig = errors.New("config: invalid configuration")

// Output formats.
const (
	FormatTable    = "table"
	FormatMarkdown = "markdown"
	FormatYAML     = "yaml"
	FormatJSON     = "json"
)

// Config holds the complete configuration.
type Config struct {
	Approximation ApproximationConfig `toml:"approximation" yaml:"approximation"`
	Search        SearchConfig        `toml:"search" yaml:"search"`
	Log           LogConfig           `toml:"log" yaml:"log"`
	Output        OutputConfig        `toml:"output" yaml:"output"`
}

// ApproximationConfig holds the defaults of a single approximation.
type ApproximationConfig struct {
	TaylorDegree int     `toml:"taylor_degree" yaml:"taylor_degree"`
	Point        float64 `toml:"point" yaml:"point"`
	Precision    uint    `toml:"precision" yaml:"precision"`
	Step         float64 `toml:"step" yaml:"step"`
}

// SearchConfig holds the settings of the best approximation search.
type SearchConfig struct {
	MaxIterations int `toml:"max_iterations" yaml:"max_iterations"`
}

// LogConfig holds the logging settings.
type LogConfig struct {
	Level  string `toml:"level" yaml:"level"`
	Format string `toml:"format" yaml:"format"`
}

// OutputConfig holds the rendering settings.
type OutputConfig struct {
	Format string `toml:"format" yaml:"format"`
}

// Default returns the default configuration.
func Default() *Config {
	return &Config{
		Approximation: ApproximationConfig{
			TaylorDegree: 20,
			Point:        0,
			Precision:    256,
			Step:         0.01,
		},
		Search: SearchConfig{
			MaxIterations: 64,
		},
		Log: LogConfig{
			Level:  "info",
			Format: "text",
		},
		Output: OutputConfig{
			Format: FormatTable,
		},
	}
}

// Load reads the configuration file at path on top of Default.
// The format is selected by the extension: .yaml and .yml are read as YAML,
// anything else as TOML.
func Load(path string) (*Config, error) {

	path = os.ExpandEnv(path)

	content, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read config: %w", err)
	}

	cfg := Default()

	switch strings.ToLower(filepath.Ext(path)) {
	case ".yaml", ".yml":
		if err = yaml.Unmarshal(content, cfg); err != nil {
			return nil, fmt.Errorf("%w: failed to parse %s: %w", ErrInvalidConfig, path, err)
		}
	default:
		if _, err = toml.Decode(string(content), cfg); err != nil {
			return nil, fmt.Errorf("%w: failed to parse %s: %w", ErrInvalidConfig, path, err)
		}
	}

	if err = cfg.Validate(); err != nil {
		return nil, err
	}

	return cfg, nil
}

// LoadFromEnv loads the file named by EnvConfig, or returns Default if the
// variable is not set.
func LoadFromEnv() (*Config, error) {
	if path := os.Getenv(EnvConfig); path != "" {
		return Load(path)
	}
	return Default(), nil
}

// Validate returns an error wrapping ErrInvalidConfig listing every invalid value.
func (c *Config) Validate() error {

	var problems []string

	if c.Approximation.TaylorDegree < 1 {
		problems = append(problems, fmt.Sprintf("approximation.taylor_degree must be positive, got %d", c.Approximation.TaylorDegree))
	}

	if math.IsNaN(c.Approximation.Point) || math.IsInf(c.Approximation.Point, 0) {
		problems = append(problems, "approximation.point must be finite")
	}

	if c.Approximation.Precision < 53 {
		problems = append(problems, fmt.Sprintf("approximation.precision must be at least 53 bits, got %d", c.Approximation.Precision))
	}

	if !(c.Approximation.Step > 0) || math.IsInf(c.Approximation.Step, 0) {
		problems = append(problems, fmt.Sprintf("approximation.step must be positive, got %v", c.Approximation.Step))
	}

	if c.Search.MaxIterations < 0 {
		problems = append(problems, fmt.Sprintf("search.max_iterations must be non-negative, got %d", c.Search.MaxIterations))
	}

	if _, err := c.Log.SlogLevel(); err != nil {
		problems = append(problems, err.Error())
	}

	switch c.Log.Format {
	case "text", "json":
	default:
		problems = append(problems, fmt.Sprintf("log.format must be text or json, got %q", c.Log.Format))
	}

	switch c.Output.Format {
	case FormatTable, FormatMarkdown, FormatYAML, FormatJSON:
	default:
		problems = append(problems, fmt.Sprintf("output.format must be one of %s, %s, %s or %s, got %q",
			FormatTable, FormatMarkdown, FormatYAML, FormatJSON, c.Output.Format))
	}

	if len(problems) != 0 {
		return fmt.Errorf("%w: %s", ErrInvalidConfig, strings.Join(problems, "; "))
	}

	return nil
}

// SlogLevel returns the slog level named by Level.
func (c LogConfig) SlogLevel() (level slog.Level, err error) {
	if err = level.UnmarshalText([]byte(c.Level)); err != nil {
		return level, fmt.Errorf("log.level: %w", err)
	}
	return
}
