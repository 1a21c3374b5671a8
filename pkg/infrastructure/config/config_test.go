package config

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func TestLoad_MissingFileUsesDefaults(t *testing.T) {
	cfg, err := Load(filepath.Join(t.TempDir(), "absent.yaml"))
	if err != nil {
		t.Fatalf("Failed to load: %v", err)
	}
	if cfg.DataDir != "data" || cfg.Ledger.FirstLotNumber != 1001 || cfg.Ledger.IDWidth != 4 {
		t.Errorf("Unexpected defaults: %+v", cfg)
	}
	if !cfg.Backup.Enabled {
		t.Errorf("Expected startup backup enabled by default")
	}
}

func TestLoad_OverridesDefaults(t *testing.T) {
	path := filepath.Join(t.TempDir(), "natraj.yaml")
	content := `data_dir: /srv/natraj
web:
  port: 9000
ledger:
  first_lot_number: 5001
labels:
  dir: /var/labels
scale:
  reading_file: /run/scale/weight
`
	if err := os.WriteFile(path, []byte(content), 0644); err != nil {
		t.Fatal(err)
	}

	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("Failed to load: %v", err)
	}
	if cfg.DataDir != "/srv/natraj" || cfg.Web.Port != 9000 || cfg.Ledger.FirstLotNumber != 5001 {
		t.Errorf("Overrides not applied: %+v", cfg)
	}
	if cfg.Ledger.IDWidth != 4 || cfg.Web.Host != "127.0.0.1" {
		t.Errorf("Expected unspecified fields to keep defaults: %+v", cfg)
	}
	if cfg.LabelsDir() != "/var/labels" {
		t.Errorf("Expected absolute labels dir kept, got %s", cfg.LabelsDir())
	}
	if cfg.Scale.ReadingFile != "/run/scale/weight" {
		t.Errorf("Unexpected scale reading file %q", cfg.Scale.ReadingFile)
	}
}

func TestLoad_RejectsInvalidValues(t *testing.T) {
	tests := []struct {
		name    string
		content string
		wantMsg string
	}{
		{"bad_yaml", "data_dir: [unclosed", "parse"},
		{"zero_lot", "ledger:\n  first_lot_number: 0\n", "first_lot_number"},
		{"wide_ids", "ledger:\n  id_width: 40\n", "id_width"},
		{"empty_data_dir", "data_dir: \"\"\n", "data_dir"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			path := filepath.Join(t.TempDir(), "natraj.yaml")
			if err := os.WriteFile(path, []byte(tt.content), 0644); err != nil {
				t.Fatal(err)
			}
			_, err := Load(path)
			if err == nil || !strings.Contains(err.Error(), tt.wantMsg) {
				t.Errorf("Expected error mentioning %q, got %v", tt.wantMsg, err)
			}
		})
	}
}

func TestConfig_SaveRoundTrip(t *testing.T) {
	path := filepath.Join(t.TempDir(), "natraj.yaml")
	cfg := Defaults()
	cfg.Web.AllowedOrigins = []string{"http://192.168.1.20:3000"}
	cfg.Labels.Enabled = false

	if err := cfg.Save(path); err != nil {
		t.Fatalf("Failed to save: %v", err)
	}
	loaded, err := Load(path)
	if err != nil {
		t.Fatalf("Failed to reload: %v", err)
	}
	if len(loaded.Web.AllowedOrigins) != 1 || loaded.Web.AllowedOrigins[0] != "http://192.168.1.20:3000" {
		t.Errorf("Unexpected origins %v", loaded.Web.AllowedOrigins)
	}
	if loaded.Labels.Enabled {
		t.Errorf("Expected labels disabled after reload")
	}
	if loaded.LabelsDir() != filepath.Join("data", "labels") {
		t.Errorf("Expected relative labels dir under data, got %s", loaded.LabelsDir())
	}
}
