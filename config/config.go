// Package config loads the ontograph command configuration from YAML.
package config

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"

	"github.com/go-playground/validator/v10"
	"gopkg.in/yaml.v3"

	"github.com/nodeadmin/ontograph/ontology"
)

// Config is the file and flag configuration of the command.
//
// Flags override file values; Validate runs after both are merged.
type Config struct {
	Input         string   `yaml:"input" validate:"required"`
	Format        string   `yaml:"format" validate:"oneof=auto obo owl"`
	Workers       int      `yaml:"workers" validate:"gte=0,lte=4096"`
	SentinelRoots []string `yaml:"sentinel_roots" validate:"dive,termid"`
	Root          string   `yaml:"root" validate:"omitempty,termid"`
	LogLevel      string   `yaml:"log_level" validate:"oneof=debug info warn error"`
	Pretty        bool     `yaml:"pretty"`
}

var validate *validator.Validate

func init() {
	validate = validator.New()
	_ = validate.RegisterValidation("termid", validateTermID)
}

// validateTermID accepts strings that parse as "prefix:local".
func validateTermID(fl validator.FieldLevel) bool {
	_, err := ontology.ParseTermID(fl.Field().String())
	return err == nil
}

// Default returns the configuration used when no file is given.
func Default() Config {
	sentinels := make([]string, len(ontology.DefaultSentinelRoots))
	for i, id := range ontology.DefaultSentinelRoots {
		sentinels[i] = id.String()
	}
	return Config{
		Format:        "auto",
		SentinelRoots: sentinels,
		LogLevel:      "info",
	}
}

// Load reads a YAML file on top of Default. Unknown keys are rejected.
// The result is not validated; call Validate after applying flags.
func Load(path string) (Config, error) {
	cfg := Default()
	data, err := os.ReadFile(path)
	if err != nil {
		return cfg, fmt.Errorf("read config: %w", err)
	}
	dec := yaml.NewDecoder(bytes.NewReader(data))
	dec.KnownFields(true)
	if err := dec.Decode(&cfg); err != nil && !errors.Is(err, io.EOF) {
		return cfg, fmt.Errorf("parse config %s: %w", path, err)
	}
	return cfg, nil
}

// Validate checks field constraints.
func (c Config) Validate() error {
	if err := validate.Struct(c); err != nil {
		return fmt.Errorf("invalid config: %w", err)
	}
	return nil
}

// BuilderOptions translates the configuration into ontology builder options.
func (c Config) BuilderOptions() ([]ontology.BuilderOption, error) {
	opts := []ontology.BuilderOption{ontology.WithWorkers(c.Workers)}

	sentinels := make([]ontology.TermID, 0, len(c.SentinelRoots))
	for _, s := range c.SentinelRoots {
		id, err := ontology.ParseTermID(s)
		if err != nil {
			return nil, fmt.Errorf("sentinel root: %w", err)
		}
		sentinels = append(sentinels, id)
	}
	opts = append(opts, ontology.WithSentinelRoots(sentinels...))

	if c.Root != "" {
		id, err := ontology.ParseTermID(c.Root)
		if err != nil {
			return nil, fmt.Errorf("root: %w", err)
		}
		opts = append(opts, ontology.WithRoot(id))
	}
	return opts, nil
}

// SlogLevel maps LogLevel to a slog.Level. Unknown values map to Info.
func (c Config) SlogLevel() slog.Level {
	switch c.LogLevel {
	case "debug":
		return slog.LevelDebug
	case "warn":
		return slog.LevelWarn
	case "error":
		return slog.LevelError
	default:
		return slog.LevelInfo
	}
}
