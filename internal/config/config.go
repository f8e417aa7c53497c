// Package config provides configuration types, defaults and validation for creational.
package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/zjrosen/creational/internal/log"
	"github.com/zjrosen/creational/internal/tracing"
)

// ErrInvalid wraps every validation failure.
var ErrInvalid = errors.New("invalid configuration")

// DefaultPrimitive is the primitive value of the reference scenario.
const DefaultPrimitive = 245

// Config holds all configuration options for creational.
type Config struct {
	Debug      bool             `mapstructure:"debug"`
	LogFile    string           `mapstructure:"log_file"`
	LogLevel   string           `mapstructure:"log_level"`
	Prototype  PrototypeConfig  `mapstructure:"prototype"`
	Prototypes []NamedPrototype `mapstructure:"prototypes"`
	Registry   RegistryConfig   `mapstructure:"registry"`
	Tracing    tracing.Config   `mapstructure:"tracing"`
}

// PrototypeConfig drives the `prototype` command.
type PrototypeConfig struct {
	Value  int    `mapstructure:"value"`
	Label  string `mapstructure:"label"`  // component label
	Copies int    `mapstructure:"copies"` // clones produced per run
}

// NamedPrototype is a prototype registered at startup for the `clone` command.
type NamedPrototype struct {
	Name  string `mapstructure:"name"`
	Value int    `mapstructure:"value"`
	Label string `mapstructure:"label"`
}

// RegistryConfig controls how long registered prototypes are kept.
type RegistryConfig struct {
	TTL             time.Duration `mapstructure:"ttl"` // 0 keeps entries forever
	CleanupInterval time.Duration `mapstructure:"cleanup_interval"`
}

// Defaults returns a Config with sensible default values.
func Defaults() Config {
	tc := tracing.DefaultConfig()
	tc.FilePath = DefaultTracesFilePath()

	return Config{
		Debug:    false,
		LogFile:  "debug.log",
		LogLevel: "debug",
		Prototype: PrototypeConfig{
			Value:  DefaultPrimitive,
			Label:  "created",
			Copies: 1,
		},
		Prototypes: []NamedPrototype{
			{Name: "reference", Value: DefaultPrimitive, Label: "reference"},
		},
		Registry: RegistryConfig{
			TTL:             0,
			CleanupInterval: 30 * time.Minute,
		},
		Tracing: tc,
	}
}

// DefaultTracesFilePath returns ~/.config/creational/traces/traces.jsonl,
// or an empty string if the home directory is unavailable.
func DefaultTracesFilePath() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return ""
	}
	return filepath.Join(home, ".config", "creational", "traces", "traces.jsonl")
}

// Validate checks the whole configuration. Errors wrap ErrInvalid.
func Validate(c Config) error {
	if err := ValidateLogLevel(c.LogLevel); err != nil {
		return err
	}
	if err := ValidatePrototype(c.Prototype); err != nil {
		return err
	}
	if err := ValidatePrototypes(c.Prototypes); err != nil {
		return err
	}
	if err := ValidateRegistry(c.Registry); err != nil {
		return err
	}
	return ValidateTracing(c.Tracing)
}

// ValidateLogLevel rejects level names other than debug, info, warn(ing) and error.
func ValidateLogLevel(level string) error {
	if !log.ValidLevel(level) {
		return fmt.Errorf("%w: log_level must be \"debug\", \"info\", \"warn\", or \"error\", got %q", ErrInvalid, level)
	}
	return nil
}

// ValidatePrototype checks the `prototype` section.
func ValidatePrototype(p PrototypeConfig) error {
	if p.Copies < 1 {
		return fmt.Errorf("%w: prototype.copies must be at least 1, got %d", ErrInvalid, p.Copies)
	}
	return nil
}

// ValidatePrototypes checks that every named prototype has a unique, non-empty name.
func ValidatePrototypes(protos []NamedPrototype) error {
	seen := make(map[string]int, len(protos))
	for i, p := range protos {
		name := strings.TrimSpace(p.Name)
		if name == "" {
			return fmt.Errorf("%w: prototypes[%d]: name is required", ErrInvalid, i)
		}
		if prev, dup := seen[name]; dup {
			return fmt.Errorf("%w: prototypes[%d]: name %q already used by prototypes[%d]", ErrInvalid, i, name, prev)
		}
		seen[name] = i
	}
	return nil
}

// ValidateRegistry rejects negative durations.
func ValidateRegistry(r RegistryConfig) error {
	if r.TTL < 0 {
		return fmt.Errorf("%w: registry.ttl must not be negative, got %s", ErrInvalid, r.TTL)
	}
	if r.CleanupInterval < 0 {
		return fmt.Errorf("%w: registry.cleanup_interval must not be negative, got %s", ErrInvalid, r.CleanupInterval)
	}
	return nil
}

// ValidateTracing checks tracing configuration. Empty values use defaults.
func ValidateTracing(t tracing.Config) error {
	if t.SampleRate < 0.0 || t.SampleRate > 1.0 {
		return fmt.Errorf("%w: tracing.sample_rate must be between 0.0 and 1.0, got %v", ErrInvalid, t.SampleRate)
	}

	switch t.Exporter {
	case "", tracing.ExporterNone, tracing.ExporterFile, tracing.ExporterStdout, tracing.ExporterOTLP:
	default:
		return fmt.Errorf("%w: tracing.exporter must be \"none\", \"file\", \"stdout\", or \"otlp\", got %q", ErrInvalid, t.Exporter)
	}

	if t.Enabled && t.Exporter == tracing.ExporterFile && t.FilePath == "" {
		return fmt.Errorf("%w: tracing.file_path is required when exporter is \"file\"", ErrInvalid)
	}
	return nil
}
