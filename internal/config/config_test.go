package config

import (
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/javiermolinar/ultraday/internal/slot"
)

func TestDefault(t *testing.T) {
	cfg := Default()

	if cfg.Planner.StartTime != "08:00" {
		t.Errorf("expected start_time 08:00, got %s", cfg.Planner.StartTime)
	}
	if cfg.Planner.EndTime != "18:00" {
		t.Errorf("expected end_time 18:00, got %s", cfg.Planner.EndTime)
	}
	if cfg.Planner.Interval != 30 {
		t.Errorf("expected interval 30, got %d", cfg.Planner.Interval)
	}
	if len(cfg.Planner.WorkingDays) != 5 {
		t.Errorf("expected 5 working days, got %d", len(cfg.Planner.WorkingDays))
	}
	if cfg.Export.Language != "en" {
		t.Errorf("expected export language en, got %s", cfg.Export.Language)
	}
	if cfg.LLM.Provider != "copilot" {
		t.Errorf("expected provider copilot, got %s", cfg.LLM.Provider)
	}
	if cfg.Server.Addr != "127.0.0.1:7070" {
		t.Errorf("expected server addr 127.0.0.1:7070, got %s", cfg.Server.Addr)
	}
	if err := cfg.Validate(); err != nil {
		t.Errorf("default config should validate: %v", err)
	}
}

func TestLoadFrom_FileNotExists(t *testing.T) {
	cfg, err := LoadFrom("/nonexistent/path/config.toml")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	// Should return defaults
	if cfg.Planner.StartTime != "08:00" {
		t.Errorf("expected default start_time, got %s", cfg.Planner.StartTime)
	}
}

func TestLoadFrom_ValidFile(t *testing.T) {
	tmpDir := t.TempDir()
	configPath := filepath.Join(tmpDir, "config.toml")

	content := `
[planner]
start_time = "07:00"
end_time = "15:00"
interval = 15
working_days = ["monday", "tuesday", "wednesday"]

[storage]
db_path = "/tmp/test.db"

[export]
dir = "/tmp/exports"
language = "de"
author = "Ada"

[llm]
provider = "ollama"
model = "llama3"
base_url = "http://localhost:11435"

[server]
addr = ":9000"
`
	if err := os.WriteFile(configPath, []byte(content), 0o644); err != nil {
		t.Fatalf("failed to write test config: %v", err)
	}

	cfg, err := LoadFrom(configPath)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if cfg.Planner.StartTime != "07:00" || cfg.Planner.EndTime != "15:00" {
		t.Errorf("expected 07:00-15:00, got %s-%s", cfg.Planner.StartTime, cfg.Planner.EndTime)
	}
	if cfg.Planner.Interval != 15 {
		t.Errorf("expected interval 15, got %d", cfg.Planner.Interval)
	}
	if len(cfg.Planner.WorkingDays) != 3 {
		t.Errorf("expected 3 working days, got %d", len(cfg.Planner.WorkingDays))
	}
	if cfg.Storage.DBPath != "/tmp/test.db" {
		t.Errorf("expected db_path /tmp/test.db, got %s", cfg.Storage.DBPath)
	}
	if cfg.Export.Dir != "/tmp/exports" || cfg.Export.Language != "de" || cfg.Export.Author != "Ada" {
		t.Errorf("unexpected export config: %+v", cfg.Export)
	}
	if cfg.LLM.Provider != "ollama" || cfg.LLM.Model != "llama3" {
		t.Errorf("unexpected llm config: %+v", cfg.LLM)
	}
	if cfg.Server.Addr != ":9000" {
		t.Errorf("expected addr :9000, got %s", cfg.Server.Addr)
	}
	// Sections left out of the file keep their defaults.
	if cfg.UI.Theme != "mocha" {
		t.Errorf("expected default theme mocha, got %s", cfg.UI.Theme)
	}
}

func TestLoadFrom_EnvOverrides(t *testing.T) {
	tmpDir := t.TempDir()
	configPath := filepath.Join(tmpDir, "config.toml")

	content := `
[planner]
start_time = "07:00"
end_time = "16:00"

[storage]
db_path = "/tmp/test.db"
`
	if err := os.WriteFile(configPath, []byte(content), 0o644); err != nil {
		t.Fatalf("failed to write test config: %v", err)
	}

	t.Setenv("ULTRADAY_START_TIME", "09:00")
	t.Setenv("ULTRADAY_INTERVAL", "45")
	t.Setenv("ULTRADAY_WORKING_DAYS", "monday, friday")
	t.Setenv("ULTRADAY_LLM_MODEL", "gpt-3.5-turbo")
	t.Setenv("ULTRADAY_SERVER_ADDR", ":8081")

	cfg, err := LoadFrom(configPath)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	// Env should override file
	if cfg.Planner.StartTime != "09:00" {
		t.Errorf("expected start_time 09:00 from env, got %s", cfg.Planner.StartTime)
	}
	// File value should be kept when no env override
	if cfg.Planner.EndTime != "16:00" {
		t.Errorf("expected end_time 16:00 from file, got %s", cfg.Planner.EndTime)
	}
	if cfg.Planner.Interval != 45 {
		t.Errorf("expected interval 45 from env, got %d", cfg.Planner.Interval)
	}
	if len(cfg.Planner.WorkingDays) != 2 || cfg.Planner.WorkingDays[1] != "friday" {
		t.Errorf("expected [monday friday], got %v", cfg.Planner.WorkingDays)
	}
	if cfg.LLM.Model != "gpt-3.5-turbo" {
		t.Errorf("expected model gpt-3.5-turbo from env, got %s", cfg.LLM.Model)
	}
	if cfg.Server.Addr != ":8081" {
		t.Errorf("expected addr :8081 from env, got %s", cfg.Server.Addr)
	}
}

func TestLoadFrom_BadIntervalEnv(t *testing.T) {
	t.Setenv("ULTRADAY_INTERVAL", "half-hour")

	_, err := LoadFrom(filepath.Join(t.TempDir(), "missing.toml"))
	if !errors.Is(err, slot.ErrInvalidInterval) {
		t.Errorf("expected ErrInvalidInterval, got %v", err)
	}
}

func TestLoadFrom_InvalidFile(t *testing.T) {
	configPath := filepath.Join(t.TempDir(), "config.toml")
	if err := os.WriteFile(configPath, []byte("[planner\nstart_time = "), 0o644); err != nil {
		t.Fatalf("failed to write test config: %v", err)
	}

	if _, err := LoadFrom(configPath); err == nil {
		t.Error("expected parse error for malformed toml")
	}
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name    string
		mutate  func(*Config)
		wantErr error
	}{
		{"default", func(*Config) {}, nil},
		{"start without leading zero", func(c *Config) { c.Planner.StartTime = "9:00" }, slot.ErrInvalidTime},
		{"end hour out of range", func(c *Config) { c.Planner.EndTime = "24:00" }, slot.ErrInvalidTime},
		{"zero interval", func(c *Config) { c.Planner.Interval = 0 }, slot.ErrInvalidInterval},
		{"negative interval", func(c *Config) { c.Planner.Interval = -15 }, slot.ErrInvalidInterval},
		{"unknown working day", func(c *Config) { c.Planner.WorkingDays = []string{"monday", "funday"} }, slot.ErrInvalidWorkday},
		{"interval outside ui options", func(c *Config) { c.Planner.Interval = 20 }, nil},
		{"start after end", func(c *Config) { c.Planner.StartTime = "18:00"; c.Planner.EndTime = "09:00" }, nil},
		{"german day aliases", func(c *Config) { c.Planner.WorkingDays = []string{"Mo", "Di", "Mi"} }, nil},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			cfg := Default()
			tc.mutate(cfg)
			err := cfg.Validate()
			if tc.wantErr == nil {
				if err != nil {
					t.Errorf("unexpected error: %v", err)
				}
				return
			}
			if !errors.Is(err, tc.wantErr) {
				t.Errorf("expected %v, got %v", tc.wantErr, err)
			}
		})
	}
}

func TestValidate_Other(t *testing.T) {
	cfg := Default()
	cfg.Export.Language = "fr"
	if err := cfg.Validate(); err == nil {
		t.Error("expected validation error for unsupported export language")
	}

	cfg = Default()
	cfg.Log.Level = "verbose"
	if err := cfg.Validate(); err == nil {
		t.Error("expected validation error for unknown log level")
	}

	cfg = Default()
	cfg.Storage.DBPath = ""
	if err := cfg.Validate(); err == nil {
		t.Error("expected validation error for empty db_path")
	}
}

func TestIsWorkday(t *testing.T) {
	cfg := Default()

	tests := []struct {
		day  string
		want bool
	}{
		{"monday", true},
		{"Monday", true},
		{"FRIDAY", true},
		{"Fr", true},
		{"saturday", false},
		{"sunday", false},
		{"someday", false},
	}

	for _, tc := range tests {
		t.Run(tc.day, func(t *testing.T) {
			got := cfg.IsWorkday(tc.day)
			if got != tc.want {
				t.Errorf("IsWorkday(%q) = %v, want %v", tc.day, got, tc.want)
			}
		})
	}
}

func TestExpandPath(t *testing.T) {
	home, _ := os.UserHomeDir()

	tests := []struct {
		input string
		want  string
	}{
		{"~/test.db", filepath.Join(home, "test.db")},
		{"/absolute/path.db", "/absolute/path.db"},
		{"relative/path.db", "relative/path.db"},
	}

	for _, tc := range tests {
		t.Run(tc.input, func(t *testing.T) {
			got := expandPath(tc.input)
			if got != tc.want {
				t.Errorf("expandPath(%q) = %q, want %q", tc.input, got, tc.want)
			}
		})
	}
}

func TestSaveAndLoad(t *testing.T) {
	tmpDir := t.TempDir()
	configPath := filepath.Join(tmpDir, "nested", "config.toml")

	cfg := Default()
	cfg.Planner.StartTime = "07:30"
	cfg.Planner.EndTime = "15:30"
	cfg.Planner.Interval = 60
	cfg.Planner.WorkingDays = []string{"monday", "tuesday", "wednesday", "thursday"}
	cfg.Export.Language = "de"

	if err := cfg.SaveTo(configPath); err != nil {
		t.Fatalf("failed to save config: %v", err)
	}

	loaded, err := LoadFrom(configPath)
	if err != nil {
		t.Fatalf("failed to load config: %v", err)
	}

	if loaded.Planner.StartTime != "07:30" {
		t.Errorf("expected start_time 07:30, got %s", loaded.Planner.StartTime)
	}
	if loaded.Planner.EndTime != "15:30" {
		t.Errorf("expected end_time 15:30, got %s", loaded.Planner.EndTime)
	}
	if loaded.Planner.Interval != 60 {
		t.Errorf("expected interval 60, got %d", loaded.Planner.Interval)
	}
	if len(loaded.Planner.WorkingDays) != 4 {
		t.Errorf("expected 4 working days, got %d", len(loaded.Planner.WorkingDays))
	}
	if loaded.Export.Language != "de" {
		t.Errorf("expected language de, got %s", loaded.Export.Language)
	}
}
