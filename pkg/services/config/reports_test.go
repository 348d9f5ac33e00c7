package config

import (
	"os"
	"path/filepath"
	"testing"
)

func TestDefaultSettings_CoversAllReportTypes(t *testing.T) {
	// When
	cfg := DefaultSettings()

	// Then
	if len(cfg.Reports) != 5 {
		t.Fatalf("expected 5 report layouts, got %d", len(cfg.Reports))
	}
	byID := map[string]Report{}
	for _, r := range cfg.Reports {
		byID[r.ID] = r
	}
	if len(byID["TO4"].Sheets) != 2 {
		t.Errorf("expected TO4 to span two CLIN sheets, got %d", len(byID["TO4"].Sheets))
	}
	if byID["TO8"].FallbackFill == "" {
		t.Error("expected TO8 to carry a fallback fill")
	}
	if byID["EMMETT"].Highlight == "" {
		t.Error("expected EMMETT to carry a highlight fill")
	}
	if cfg.WSR.DetailSheet != "CLIN Level Detail" {
		t.Errorf("unexpected WSR detail sheet %q", cfg.WSR.DetailSheet)
	}
	if cfg.WSR.ScanFrom >= cfg.WSR.ScanTo {
		t.Errorf("expected an ordered WSR scan range, got %d..%d", cfg.WSR.ScanFrom, cfg.WSR.ScanTo)
	}
}

func TestLoadSettings_EmptyPath_ReturnsDefaults(t *testing.T) {
	// When
	cfg, err := LoadSettings("")

	// Then
	if err != nil {
		t.Fatalf("expected no error, got %v", err)
	}
	if len(cfg.Reports) != 5 {
		t.Errorf("expected default report set, got %d reports", len(cfg.Reports))
	}
}

func TestLoadSettings_FileReplacesReportList(t *testing.T) {
	// Given
	dir := t.TempDir()
	path := filepath.Join(dir, "settings.yaml")
	// No indentation inside the backtick block to avoid YAML parsing errors
	content := `reports:
- id: "TO9"
  sheets:
  - name: "Base MSR"
    status_row: 5
    date_header_row: 4
wsr:
  scan_from: 1
  scan_to: 50`
	err := os.WriteFile(path, []byte(content), 0o644)
	if err != nil {
		t.Fatalf("failed to write settings file: %v", err)
	}

	// When
	cfg, err := LoadSettings(path)

	// Then
	if err != nil {
		t.Fatalf("expected no error, got %v", err)
	}
	if len(cfg.Reports) != 1 || cfg.Reports[0].ID != "TO9" {
		t.Errorf("expected the file's report list to replace the defaults, got %+v", cfg.Reports)
	}
	if cfg.WSR.ScanFrom != 1 || cfg.WSR.ScanTo != 50 {
		t.Errorf("expected overridden scan range, got %d..%d", cfg.WSR.ScanFrom, cfg.WSR.ScanTo)
	}
	// WSR keys the file does not set keep their defaults.
	if cfg.WSR.DetailSheet != "CLIN Level Detail" {
		t.Errorf("expected default detail sheet to survive, got %q", cfg.WSR.DetailSheet)
	}
}
