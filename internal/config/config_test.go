package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/persona-dev/persona/internal/testutil"
)

func TestConfigYAMLRoundTrip(t *testing.T) {
	tmpDir := t.TempDir()

	cfg := DefaultConfig()
	cfg.Store.Project = "acceptance"
	cfg.Emulator.Enabled = true
	cfg.Emulator.Port = 9090

	if err := WriteConfig(tmpDir, cfg); err != nil {
		t.Fatalf("WriteConfig failed: %v", err)
	}

	loaded, err := ReadConfig(tmpDir)
	if err != nil {
		t.Fatalf("ReadConfig failed: %v", err)
	}

	if loaded.Store.Project != "acceptance" {
		t.Errorf("Store.Project: got %q, want %q", loaded.Store.Project, "acceptance")
	}
	if !loaded.Emulator.Enabled {
		t.Error("Emulator.Enabled: got false, want true")
	}
	if loaded.Emulator.Port != 9090 {
		t.Errorf("Emulator.Port: got %d, want 9090", loaded.Emulator.Port)
	}
}

func TestReadConfigMissingFile(t *testing.T) {
	tmpDir := t.TempDir()

	if _, err := ReadConfig(tmpDir); err == nil {
		t.Error("expected error for missing config file, got nil")
	}
}

func TestStoreURLHonoursEmulatorToggle(t *testing.T) {
	cfg := DefaultConfig()
	cfg.Store.Endpoint = "https://store.example.com"
	cfg.Emulator.Host = "localhost"
	cfg.Emulator.Port = 8787

	cfg.Emulator.Enabled = false
	if got := cfg.StoreURL(); got != "https://store.example.com" {
		t.Errorf("StoreURL with emulator off: got %q", got)
	}

	cfg.Emulator.Enabled = true
	if got := cfg.StoreURL(); got != "http://localhost:8787" {
		t.Errorf("StoreURL with emulator on: got %q", got)
	}
}

func TestDefaultConfigDebounce(t *testing.T) {
	cfg := DefaultConfig()
	if cfg.Autosave.DebounceMs != 1000 {
		t.Errorf("default Autosave.DebounceMs: got %d, want 1000", cfg.Autosave.DebounceMs)
	}
}

func TestBackwardCompatibility(t *testing.T) {
	// Simulate an old config file without the autosave section.
	tmpDir := t.TempDir()
	oldConfig := `version: 1
store:
  endpoint: http://localhost:8787
  project: persona-local
emulator:
  enabled: false
  host: localhost
  port: 8787
`
	configPath := filepath.Join(tmpDir, ".persona")
	if err := os.MkdirAll(configPath, 0755); err != nil {
		t.Fatalf("failed to create dir: %v", err)
	}
	if err := os.WriteFile(filepath.Join(configPath, "config.yaml"), []byte(oldConfig), 0644); err != nil {
		t.Fatalf("failed to write old config: %v", err)
	}

	cfg, err := ReadConfig(tmpDir)
	if err != nil {
		t.Fatalf("ReadConfig failed on old config: %v", err)
	}
	if cfg.Store.Project != "persona-local" {
		t.Errorf("Store.Project: got %q, want %q", cfg.Store.Project, "persona-local")
	}
	if cfg.Autosave.DebounceMs != 0 {
		t.Errorf("missing autosave section should zero-value, got %d", cfg.Autosave.DebounceMs)
	}
}

func TestReadConfigFromSeededFile(t *testing.T) {
	dir := testutil.TempData(t, testutil.ConfigFile("https://store.example.com", "acceptance"))

	cfg, err := ReadConfig(dir)
	if err != nil {
		t.Fatalf("ReadConfig failed: %v", err)
	}
	if cfg.Store.Endpoint != "https://store.example.com" {
		t.Errorf("Store.Endpoint: got %q", cfg.Store.Endpoint)
	}
	if cfg.Store.Project != "acceptance" {
		t.Errorf("Store.Project: got %q", cfg.Store.Project)
	}
	if cfg.Autosave.DebounceMs != 250 {
		t.Errorf("Autosave.DebounceMs: got %d, want 250", cfg.Autosave.DebounceMs)
	}
}
