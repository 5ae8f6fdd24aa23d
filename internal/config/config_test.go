package config

import (
	"log/slog"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"
)

func writeFile(t *testing.T, name, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	return path
}

func TestDefault(t *testing.T) {
	cfg := Default()
	require.NoError(t, cfg.Validate())
	require.Equal(t, 20, cfg.Approximation.TaylorDegree)
	require.Equal(t, uint(256), cfg.Approximation.Precision)
	require.Equal(t, 0.01, cfg.Approximation.Step)
	require.Equal(t, 64, cfg.Search.MaxIterations)
	require.Equal(t, FormatTable, cfg.Output.Format)

	level, err := cfg.Log.SlogLevel()
	require.NoError(t, err)
	require.Equal(t, slog.LevelInfo, level)
}

func TestLoad(t *testing.T) {

	t.Run("TOML", func(t *testing.T) {
		path := writeFile(t, "economize.toml", `
[approximation]
taylor_degree = 12
point = 0.5

[search]
max_iterations = 8

[log]
level = "debug"
format = "json"
`)
		cfg, err := Load(path)
		require.NoError(t, err)
		require.Equal(t, 12, cfg.Approximation.TaylorDegree)
		require.Equal(t, 0.5, cfg.Approximation.Point)
		require.Equal(t, 8, cfg.Search.MaxIterations)
		require.Equal(t, "json", cfg.Log.Format)

		// Unset values keep their defaults.
		require.Equal(t, uint(256), cfg.Approximation.Precision)
		require.Equal(t, 0.01, cfg.Approximation.Step)
		require.Equal(t, FormatTable, cfg.Output.Format)
	})

	t.Run("YAML", func(t *testing.T) {
		path := writeFile(t, "economize.yml", `
approximation:
  precision: 512
  step: 0.05
output:
  format: yaml
`)
		cfg, err := Load(path)
		require.NoError(t, err)
		require.Equal(t, uint(512), cfg.Approximation.Precision)
		require.Equal(t, 0.05, cfg.Approximation.Step)
		require.Equal(t, FormatYAML, cfg.Output.Format)
		require.Equal(t, 20, cfg.Approximation.TaylorDegree)
	})

	t.Run("Missing", func(t *testing.T) {
		_, err := Load(filepath.Join(t.TempDir(), "missing.toml"))
		require.ErrorIs(t, err, os.ErrNotExist)
	})

	t.Run("Malformed", func(t *testing.T) {
		_, err := Load(writeFile(t, "bad.toml", "[approximation\ntaylor_degree = "))
		require.ErrorIs(t, err, ErrInvalidConfig)

		_, err = Load(writeFile(t, "bad.yaml", "approximation: [1, 2"))
		require.ErrorIs(t, err, ErrInvalidConfig)
	})

	t.Run("Invalid", func(t *testing.T) {
		_, err := Load(writeFile(t, "invalid.toml", "[approximation]\nstep = -1.0\n"))
		require.ErrorIs(t, err, ErrInvalidConfig)
	})

	t.Run("Env", func(t *testing.T) {
		t.Setenv(EnvConfig, "")
		cfg, err := LoadFromEnv()
		require.NoError(t, err)
		require.Equal(t, Default(), cfg)

		t.Setenv(EnvConfig, writeFile(t, "env.toml", "[search]\nmax_iterations = 3\n"))
		cfg, err = LoadFromEnv()
		require.NoError(t, err)
		require.Equal(t, 3, cfg.Search.MaxIterations)
	})
}

func TestValidate(t *testing.T) {

	testCases := []struct {
		name   string
		modify func(*Config)
	}{
		{"TaylorDegree", func(c *Config) { c.Approximation.TaylorDegree = 0 }},
		{"Precision", func(c *Config) { c.Approximation.Precision = 32 }},
		{"Step", func(c *Config) { c.Approximation.Step = 0 }},
		{"MaxIterations", func(c *Config) { c.Search.MaxIterations = -1 }},
		{"LogLevel", func(c *Config) { c.Log.Level = "verbose" }},
		{"LogFormat", func(c *Config) { c.Log.Format = "xml" }},
		{"OutputFormat", func(c *Config) { c.Output.Format = "csv" }},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			cfg := Default()
			tc.modify(cfg)
			require.ErrorIs(t, cfg.Validate(), ErrInvalidConfig)
		})
	}
}
