package config

import (
	"bytes"
	"fmt"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"

	"github.com/zjrosen/creational/internal/log"
)

const configHeader = `creational configuration
Lookup order: --config flag, .creational/config.yaml, ~/.config/creational/config.yaml.
Durations use Go syntax (e.g. 90s, 10m). registry.ttl 0 keeps prototypes forever.`

// DefaultConfigYAML renders Defaults() as commented YAML.
func DefaultConfigYAML() ([]byte, error) {
	return renderYAML(Defaults())
}

func renderYAML(c Config) ([]byte, error) {
	protos := make([]map[string]any, 0, len(c.Prototypes))
	for _, p := range c.Prototypes {
		protos = append(protos, map[string]any{
			"name":  p.Name,
			"value": p.Value,
			"label": p.Label,
		})
	}

	doc := map[string]any{
		"debug":     c.Debug,
		"log_file":  c.LogFile,
		"log_level": c.LogLevel,
		"prototype": map[string]any{
			"value":  c.Prototype.Value,
			"label":  c.Prototype.Label,
			"copies": c.Prototype.Copies,
		},
		"prototypes": protos,
		"registry": map[string]any{
			"ttl":              c.Registry.TTL.String(),
			"cleanup_interval": c.Registry.CleanupInterval.String(),
		},
		"tracing": c.Tracing,
	}

	var node yaml.Node
	if err := node.Encode(doc); err != nil {
		return nil, fmt.Errorf("encoding config: %w", err)
	}
	node.HeadComment = configHeader

	var buf bytes.Buffer
	enc := yaml.NewEncoder(&buf)
	enc.SetIndent(2)
	if err := enc.Encode(&node); err != nil {
		return nil, fmt.Errorf("marshaling config: %w", err)
	}
	_ = enc.Close()
	return buf.Bytes(), nil
}

// WriteDefaultConfig creates a config file at configPath with default settings.
// Creates the parent directory if it doesn't exist. An existing file is
// left untouched unless overwrite is set.
func WriteDefaultConfig(configPath string, overwrite bool) error {
	log.Debug(log.CatConfig, "Writing default config", "path", configPath)

	if !overwrite {
		if _, err := os.Stat(configPath); err == nil {
			return fmt.Errorf("config file %s already exists", configPath)
		}
	}

	data, err := DefaultConfigYAML()
	if err != nil {
		return err
	}

	dir := filepath.Dir(configPath)
	if err := os.MkdirAll(dir, 0o750); err != nil {
		log.ErrorErr(log.CatConfig, "Failed to create config directory", err, "dir", dir)
		return fmt.Errorf("creating config directory: %w", err)
	}

	if err := os.WriteFile(configPath, data, 0o600); err != nil {
		log.ErrorErr(log.CatConfig, "Failed to write config file", err, "path", configPath)
		return fmt.Errorf("writing config file: %w", err)
	}

	log.Info(log.CatConfig, "Created default config", "path", configPath)
	return nil
}
