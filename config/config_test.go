package config

import (
	"log/slog"
	"os"
	"path/filepath"
	"testing"

	"github.com/go-playground/validator/v10"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeConfig(t *testing.T, body string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "ontograph.yaml")
	require.NoError(t, os.WriteFile(path, []byte(body), 0o644))
	return path
}

func TestDefault(t *testing.T) {
	cfg := Default()
	assert.Equal(t, "auto", cfg.Format)
	assert.Equal(t, "info", cfg.LogLevel)
	assert.Equal(t, []string{"owl:Thing", "HP:0000001"}, cfg.SentinelRoots)
	assert.Error(t, cfg.Validate(), "input is required")

	cfg.Input = "hp.obo"
	assert.NoError(t, cfg.Validate())
}

func TestLoad(t *testing.T) {
	path := writeConfig(t, `
input: hp.obo
format: obo
workers: 4
root: HP:0000118
log_level: debug
pretty: true
`)
	cfg, err := Load(path)
	require.NoError(t, err)
	require.NoError(t, cfg.Validate())

	assert.Equal(t, "hp.obo", cfg.Input)
	assert.Equal(t, "obo", cfg.Format)
	assert.Equal(t, 4, cfg.Workers)
	assert.Equal(t, "HP:0000118", cfg.Root)
	assert.Equal(t, slog.LevelDebug, cfg.SlogLevel())
	assert.True(t, cfg.Pretty)
	assert.Equal(t, []string{"owl:Thing", "HP:0000001"}, cfg.SentinelRoots, "defaults survive")
}

func TestLoad_Errors(t *testing.T) {
	_, err := Load(filepath.Join(t.TempDir(), "missing.yaml"))
	assert.ErrorIs(t, err, os.ErrNotExist)

	_, err = Load(writeConfig(t, "inptu: typo.obo\n"))
	assert.Error(t, err)

	cfg, err := Load(writeConfig(t, ""))
	require.NoError(t, err)
	assert.Equal(t, Default(), cfg)
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(*Config)
		field  string
	}{
		{"bad format", func(c *Config) { c.Format = "json" }, "Format"},
		{"negative workers", func(c *Config) { c.Workers = -1 }, "Workers"},
		{"bad root", func(c *Config) { c.Root = "HP0000118" }, "Root"},
		{"bad sentinel", func(c *Config) { c.SentinelRoots = []string{"owl:Thing", "nope"} }, "SentinelRoots[1]"},
		{"bad log level", func(c *Config) { c.LogLevel = "trace" }, "LogLevel"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := Default()
			cfg.Input = "hp.obo"
			tt.mutate(&cfg)

			err := cfg.Validate()
			require.Error(t, err)
			var verrs validator.ValidationErrors
			require.ErrorAs(t, err, &verrs)
			assert.Equal(t, tt.field, verrs[0].Field())
		})
	}
}

func TestBuilderOptions(t *testing.T) {
	cfg := Default()
	cfg.Root = "HP:0000118"
	opts, err := cfg.BuilderOptions()
	require.NoError(t, err)
	assert.Len(t, opts, 3)

	cfg.Root = ""
	opts, err = cfg.BuilderOptions()
	require.NoError(t, err)
	assert.Len(t, opts, 2)

	cfg.SentinelRoots = []string{"bad"}
	_, err = cfg.BuilderOptions()
	assert.Error(t, err)
}

func TestSlogLevel(t *testing.T) {
	for level, want := range map[string]slog.Level{
		"debug": slog.LevelDebug,
		"info":  slog.LevelInfo,
		"warn":  slog.LevelWarn,
		"error": slog.LevelError,
		"":      slog.LevelInfo,
	} {
		assert.Equal(t, want, Config{LogLevel: level}.SlogLevel(), level)
	}
}
