// Package testutil provides test helper utilities for persona tests.
package testutil

import (
	"os"
	"path/filepath"
	"testing"
)

// TempData creates a temporary data directory with the given files and
// returns its path. Files is a map of path relative to the data root
// (the directory holding .persona/) -> content. Directories are created
// as needed. The directory is cleaned up when the test finishes.
func TempData(t *testing.T, files map[string]string) string {
	t.Helper()
	dir := t.TempDir()

	for relPath, content := range files {
		absPath := filepath.Join(dir, relPath)
		if err := os.MkdirAll(filepath.Dir(absPath), 0755); err != nil {
			t.Fatalf("creating directory for %s: %v", relPath, err)
		}
		if err := os.WriteFile(absPath, []byte(content), 0644); err != nil {
			t.Fatalf("writing %s: %v", relPath, err)
		}
	}

	return dir
}

// SeededUserFiles returns the on-disk layout of a data directory with a
// stored profile and a recoverable in-progress draft, as a previous run
// of the app would have left them.
func SeededUserFiles(name string) map[string]string {
	return map[string]string{
		filepath.Join(".persona", "local", "userData.json"): `{
  "name": "` + name + `",
  "createdAt": "2026-08-01T09:00:00Z",
  "lastUpdated": "2026-08-01T09:00:00Z"
}`,
		filepath.Join(".persona", "local", "currentDraft.json"): `{
  "name": "` + name + `",
  "strengths": ["curious", "diligent"],
  "weaknesses": ["impatient"],
  "habits": "reads daily",
  "speechTone": "Formal",
  "nature": "Introvert",
  "savedAt": "2026-08-01T09:05:00Z"
}`,
	}
}

// SeededHistoryFiles returns the on-disk layout of a data directory whose
// response history already holds one submitted entry.
func SeededHistoryFiles(name string) map[string]string {
	return map[string]string{
		filepath.Join(".persona", "local", "responseHistory.json"): `[
  {
    "id": "resp-1",
    "name": "` + name + `",
    "strength": "curious, diligent",
    "weakness": "impatient",
    "habits": "reads daily",
    "speechTone": "Formal",
    "nature": "Introvert",
    "status": "submitted",
    "createdAt": "2026-08-01T09:00:00Z",
    "submittedAt": "2026-08-01T10:00:00Z"
  }
]`,
	}
}

// ConfigFile returns the on-disk layout of a data directory with a config
// file pointing the store at the given endpoint and project.
func ConfigFile(endpoint, project string) map[string]string {
	return map[string]string{
		filepath.Join(".persona", "config.yaml"): `version: 1
store:
  endpoint: ` + endpoint + `
  project: ` + project + `
autosave:
  debounce_ms: 250
`,
	}
}
