package config

import (
	"os"
	"path/filepath"
	"reflect"
	"strings"
	"testing"
)

// TestDefaultConfig verifies default configuration values
func TestDefaultConfig(t *testing.T) {
	cfg := DefaultConfig()

	if cfg.InputDir != "./InputSheets" {
		t.Errorf("InputDir = %q, want %q", cfg.InputDir, "./InputSheets")
	}
	if cfg.CumulativeFile != "all_grouped_data.xlsx" {
		t.Errorf("CumulativeFile = %q, want all_grouped_data.xlsx", cfg.CumulativeFile)
	}
	if cfg.AverageFile != "mean_data.xlsx" {
		t.Errorf("AverageFile = %q, want mean_data.xlsx", cfg.AverageFile)
	}
	if cfg.LogLevel != "info" {
		t.Errorf("LogLevel = %q, want %q", cfg.LogLevel, "info")
	}
	if cfg.TreatmentMode != TreatmentSequence {
		t.Errorf("TreatmentMode = %q, want %q", cfg.TreatmentMode, TreatmentSequence)
	}
	if len(cfg.Behaviors.Targets) != 7 {
		t.Errorf("len(Targets) = %d, want 7", len(cfg.Behaviors.Targets))
	}
	if got := cfg.Behaviors.Aliases["Grooming other"]; !reflect.DeepEqual([]string(got), []string{"Grooming-O", "Grooming- O"}) {
		t.Errorf("Grooming other aliases = %v", got)
	}
	if err := cfg.Validate(); err != nil {
		t.Errorf("default config should validate, got: %v", err)
	}
}

// TestLoadConfigValidFile tests loading a valid YAML config file
func TestLoadConfigValidFile(t *testing.T) {
	tmpDir := t.TempDir()
	configPath := filepath.Join(tmpDir, "config.yaml")

	configContent := `input_dir: /data/in
output_dir: /data/out
format: csv
log_level: debug
large_file_rows: 0
treatment_mode: filename
history:
  enabled: true
  db_path: /data/history.db
behaviors:
  targets: [Stationary, Trophallaxis]
  aliases:
    Stationary: Still
    Social interaction: [Social contact, Contact]
`
	if err := os.WriteFile(configPath, []byte(configContent), 0644); err != nil {
		t.Fatalf("failed to write test config: %v", err)
	}

	cfg, err := LoadConfig(configPath)
	if err != nil {
		t.Fatalf("LoadConfig() error = %v", err)
	}

	if cfg.InputDir != "/data/in" {
		t.Errorf("InputDir = %q, want /data/in", cfg.InputDir)
	}
	if cfg.Format != "csv" {
		t.Errorf("Format = %q, want csv", cfg.Format)
	}
	if cfg.LargeFileRows != 0 {
		t.Errorf("LargeFileRows = %d, want explicit 0", cfg.LargeFileRows)
	}
	if cfg.TreatmentMode != TreatmentFilename {
		t.Errorf("TreatmentMode = %q, want filename", cfg.TreatmentMode)
	}
	if !cfg.History.Enabled || cfg.History.DBPath != "/data/history.db" {
		t.Errorf("History = %+v", cfg.History)
	}
	if !reflect.DeepEqual(cfg.Behaviors.Targets, []string{"Stationary", "Trophallaxis"}) {
		t.Errorf("Targets = %v", cfg.Behaviors.Targets)
	}
	if got := cfg.Behaviors.Aliases["Stationary"]; !reflect.DeepEqual([]string(got), []string{"Still"}) {
		t.Errorf("scalar alias = %v, want [Still]", got)
	}
	if got := cfg.Behaviors.Aliases["Social interaction"]; len(got) != 2 {
		t.Errorf("list alias = %v, want 2 entries", got)
	}
	if _, ok := cfg.Behaviors.Aliases["Grooming other"]; ok {
		t.Error("aliases section should replace the defaults")
	}
	// Unset keys keep defaults
	if cfg.CumulativeFile != "all_grouped_data.xlsx" {
		t.Errorf("CumulativeFile = %q, want default", cfg.CumulativeFile)
	}
}

// TestLoadConfigFileNotExists tests fallback to defaults when file doesn't exist
func TestLoadConfigFileNotExists(t *testing.T) {
	cfg, err := LoadConfig("/nonexistent/path/config.yaml")
	if err != nil {
		t.Fatalf("LoadConfig() should not error on missing file, got: %v", err)
	}
	if !reflect.DeepEqual(cfg, DefaultConfig()) {
		t.Error("expected default config")
	}
}

// TestLoadConfigMalformed tests error handling for invalid YAML
func TestLoadConfigMalformed(t *testing.T) {
	tmpDir := t.TempDir()
	configPath := filepath.Join(tmpDir, "config.yaml")
	if err := os.WriteFile(configPath, []byte("behaviors:\n  aliases:\n    Stationary: {a: b}\n"), 0644); err != nil {
		t.Fatalf("failed to write test config: %v", err)
	}

	if _, err := LoadConfig(configPath); err == nil {
		t.Error("LoadConfig() should fail for a mapping alias value")
	}
}

func TestLoadConfigFromDir(t *testing.T) {
	tmpDir := t.TempDir()
	if err := os.MkdirAll(filepath.Join(tmpDir, ".ethogram"), 0755); err != nil {
		t.Fatal(err)
	}
	if err := os.WriteFile(filepath.Join(tmpDir, ".ethogram", "config.yaml"), []byte("format: json\n"), 0644); err != nil {
		t.Fatal(err)
	}

	cfg, err := LoadConfigFromDir(tmpDir)
	if err != nil {
		t.Fatalf("LoadConfigFromDir() error = %v", err)
	}
	if cfg.Format != "json" {
		t.Errorf("Format = %q, want json", cfg.Format)
	}
}

func TestMergeWithFlags(t *testing.T) {
	cfg := DefaultConfig()
	in, format, history := "/in", "html", true

	cfg.MergeWithFlags(&in, nil, &format, nil, &history)

	if cfg.InputDir != "/in" {
		t.Errorf("InputDir = %q, want /in", cfg.InputDir)
	}
	if cfg.OutputDir != "OutputSheets" {
		t.Errorf("OutputDir = %q, nil flag must not override", cfg.OutputDir)
	}
	if cfg.Format != "html" || !cfg.History.Enabled {
		t.Errorf("Format = %q, History.Enabled = %v", cfg.Format, cfg.History.Enabled)
	}
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name    string
		mutate  func(*Config)
		wantErr string
	}{
		{name: "valid", mutate: func(c *Config) {}},
		{name: "md alias", mutate: func(c *Config) { c.Format = "MD" }},
		{name: "bad level", mutate: func(c *Config) { c.LogLevel = "loud" }, wantErr: "log_level"},
		{name: "bad format", mutate: func(c *Config) { c.Format = "pdf" }, wantErr: "format"},
		{name: "bad treatment mode", mutate: func(c *Config) { c.TreatmentMode = "random" }, wantErr: "treatment_mode"},
		{name: "same output names", mutate: func(c *Config) { c.AverageFile = c.CumulativeFile }, wantErr: "must differ"},
		{
			name: "names collide after extension swap",
			mutate: func(c *Config) {
				c.CumulativeFile, c.AverageFile, c.Format = "results.xlsx", "results.json", "csv"
			},
			wantErr: "both are written to",
		},
		{
			name: "names differ by extension only for xlsx",
			mutate: func(c *Config) {
				c.CumulativeFile, c.AverageFile, c.Format = "results.xlsx", "results.json", "xlsx"
			},
			wantErr: "both are written to",
		},
		{
			name: "distinct stems with csv",
			mutate: func(c *Config) {
				c.CumulativeFile, c.AverageFile, c.Format = "cumulative.xlsx", "average.xlsx", "csv"
			},
		},
		{name: "negative rows", mutate: func(c *Config) { c.LargeFileRows = -1 }, wantErr: "large_file_rows"},
		{name: "history without path", mutate: func(c *Config) { c.History.Enabled = true; c.History.DBPath = "" }, wantErr: "db_path"},
		{
			name: "ambiguous alias",
			mutate: func(c *Config) {
				c.Behaviors.Aliases["Stationary"] = AliasList{"Scenting"}
			},
			wantErr: "aliases",
		},
		{name: "empty target", mutate: func(c *Config) { c.Behaviors.Targets = []string{" "} }, wantErr: "targets[0]"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := DefaultConfig()
			tt.mutate(cfg)
			err := cfg.Validate()
			if tt.wantErr == "" {
				if err != nil {
					t.Errorf("Validate() unexpected error: %v", err)
				}
				return
			}
			if err == nil || !strings.Contains(err.Error(), tt.wantErr) {
				t.Errorf("Validate() error = %v, want containing %q", err, tt.wantErr)
			}
		})
	}
}

func TestHomeResolution(t *testing.T) {
	home := t.TempDir()
	t.Setenv(HomeEnvVar, home)

	got, err := GetHome()
	if err != nil || got != home {
		t.Errorf("GetHome() = %q, %v; want %q", got, err, home)
	}

	path, err := DefaultConfigPath()
	if err != nil || path != filepath.Join(home, "config.yaml") {
		t.Errorf("DefaultConfigPath() = %q, %v", path, err)
	}

	cfg := DefaultConfig()
	cfg.ResolveHomePaths()
	if cfg.LogDir != filepath.Join(home, "logs") {
		t.Errorf("LogDir = %q", cfg.LogDir)
	}
	if cfg.History.DBPath != filepath.Join(home, "history.db") {
		t.Errorf("DBPath = %q", cfg.History.DBPath)
	}
}
