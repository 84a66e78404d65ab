// Package config handles reading and writing .persona/config.yaml.
package config

import (
	"fmt"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"
)

// Config is the top-level structure for .persona/config.yaml.
type Config struct {
	Version  int            `yaml:"version"`
	Store    StoreConfig    `yaml:"store"`
	Emulator EmulatorConfig `yaml:"emulator"`
	Autosave AutosaveConfig `yaml:"autosave"`
}

// StoreConfig identifies the remote response store.
type StoreConfig struct {
	Endpoint string `yaml:"endpoint"` // base URL of the document store API
	Project  string `yaml:"project"`  // project identifier sent with every request
}

// EmulatorConfig controls the local document-store emulator.
// When enabled, the client talks to host:port instead of Store.Endpoint.
type EmulatorConfig struct {
	Enabled bool   `yaml:"enabled"`
	Host    string `yaml:"host"`
	Port    int    `yaml:"port"`
}

// AutosaveConfig controls the draft auto-save debounce.
type AutosaveConfig struct {
	DebounceMs int `yaml:"debounce_ms"`
}

// configFileName is the path relative to the base directory.
const configDir = ".persona"
const configFile = "config.yaml"

// ReadConfig reads .persona/config.yaml from the given base directory.
// dir is the directory containing .persona/ (not .persona/ itself).
// Returns an error if the file is not found or YAML is malformed.
func ReadConfig(dir string) (*Config, error) {
	path := filepath.Join(dir, configDir, configFile)

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading config: %w", err)
	}

	var cfg Config
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("parsing config: %w", err)
	}

	return &cfg, nil
}

// WriteConfig writes cfg to .persona/config.yaml in the given base directory.
// Creates the .persona/ directory if it does not exist.
func WriteConfig(dir string, cfg *Config) error {
	dirPath := filepath.Join(dir, configDir)
	if err := os.MkdirAll(dirPath, 0755); err != nil {
		return fmt.Errorf("creating config directory: %w", err)
	}

	data, err := yaml.Marshal(cfg)
	if err != nil {
		return fmt.Errorf("marshalling config: %w", err)
	}

	path := filepath.Join(dirPath, configFile)
	if err := os.WriteFile(path, data, 0644); err != nil {
		return fmt.Errorf("writing config: %w", err)
	}

	return nil
}

// StoreURL returns the base URL the document-store client should use,
// honouring the emulator toggle.
func (c *Config) StoreURL() string {
	if c.Emulator.Enabled {
		return fmt.Sprintf("http://%s:%d", c.Emulator.Host, c.Emulator.Port)
	}
	return c.Store.Endpoint
}

// DefaultConfig returns a Config populated with sensible defaults.
func DefaultConfig() *Config {
	return &Config{
		Version: 1,
		Store: StoreConfig{
			Endpoint: "http://localhost:8787",
			Project:  "persona-local",
		},
		Emulator: EmulatorConfig{
			Enabled: false,
			Host:    "localhost",
			Port:    8787,
		},
		Autosave: AutosaveConfig{
			DebounceMs: 1000,
		},
	}
}
