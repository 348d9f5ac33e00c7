package config

import (
	"os"
	"path/filepath"
	"testing"
)

func TestLoadApp_EmptyPath_ReturnsDefaults(t *testing.T) {
	// When
	cfg, err := LoadApp("")

	// Then
	if err != nil {
		t.Fatalf("expected no error, got %v", err)
	}
	if cfg.Company != "Vertekal" {
		t.Errorf("expected Company=Vertekal, got %s", cfg.Company)
	}
	if len(cfg.Reports) != 5 {
		t.Errorf("expected 5 default reports, got %d", len(cfg.Reports))
	}
	if cfg.MSR.CompletedDir == "" {
		t.Error("expected a default MSR completed dir")
	}
	if filepath.Base(cfg.MSR.CompletedDir) != "completed" {
		t.Errorf("expected completed dir under the base dir, got %s", cfg.MSR.CompletedDir)
	}
}

func TestLoadApp_ValidYAML_OverridesDefaults(t *testing.T) {
	// Given
	dir := t.TempDir()
	path := filepath.Join(dir, "app.yaml")
	// No indentation inside the backtick block to avoid YAML parsing errors
	content := `company: "Acme Subcontracting"
reports:
- "TO1"
- "TO4"
msr:
  base_dir: "/srv/msrs"
default_rate: 150.5`
	err := os.WriteFile(path, []byte(content), 0o644)
	if err != nil {
		t.Fatalf("failed to write test config: %v", err)
	}

	// When
	cfg, err := LoadApp(path)

	// Then
	if err != nil {
		t.Fatalf("expected no error, got %v", err)
	}
	if cfg.Company != "Acme Subcontracting" {
		t.Errorf("expected overridden company, got %s", cfg.Company)
	}
	if len(cfg.Reports) != 2 {
		t.Errorf("expected 2 reports, got %d", len(cfg.Reports))
	}
	if cfg.MSR.CompletedDir != filepath.Join("/srv/msrs", "completed") {
		t.Errorf("expected completed dir derived from base_dir, got %s", cfg.MSR.CompletedDir)
	}
	if cfg.DefaultRate != 150.5 {
		t.Errorf("expected DefaultRate=150.5, got %v", cfg.DefaultRate)
	}
	// Untouched keys keep their defaults.
	if len(cfg.ExcludedCodes) != 2 {
		t.Errorf("expected default excluded codes, got %v", cfg.ExcludedCodes)
	}
}

func TestLoadApp_MissingFile_ReturnsError(t *testing.T) {
	// When
	_, err := LoadApp(filepath.Join(t.TempDir(), "nope.yaml"))

	// Then
	if err == nil {
		t.Error("expected error for missing config file, got nil")
	}
}
