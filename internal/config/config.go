// Package config handles configuration loading from files, defaults, and environment variables.
package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/pelletier/go-toml/v2"

	"github.com/javiermolinar/ultraday/internal/slot"
)

// Config holds the application configuration.
type Config struct {
	Planner slot.Settings `toml:"planner"`
	Storage StorageConfig `toml:"storage"`
	Export  ExportConfig  `toml:"export"`
	LLM     LLMConfig     `toml:"llm"`
	Server  ServerConfig  `toml:"server"`
	UI      UIConfig      `toml:"ui"`
	Log     LogConfig     `toml:"log"`
}

// StorageConfig holds database settings.
type StorageConfig struct {
	DBPath string `toml:"db_path"`
}

// ExportConfig holds document export settings.
type ExportConfig struct {
	Dir      string `toml:"dir"`      // where exported files are written
	Language string `toml:"language"` // "en" or "de"
	Author   string `toml:"author"`
}

// LLMConfig holds LLM provider settings.
type LLMConfig struct {
	Provider string `toml:"provider"` // "copilot", "ollama", "lmstudio"
	Model    string `toml:"model"`    // e.g., "gpt-4o"
	BaseURL  string `toml:"base_url"` // e.g., "http://localhost:11434"
}

// ServerConfig holds HTTP API settings.
type ServerConfig struct {
	Addr string `toml:"addr"`
}

// UIConfig holds TUI settings.
type UIConfig struct {
	Theme string `toml:"theme"` // "mocha", "latte"
}

// LogConfig holds logging settings.
type LogConfig struct {
	Level string `toml:"level"` // "debug", "info", "warn", "error"
	File  string `toml:"file"`
}

var validLanguages = map[string]bool{"en": true, "de": true}

var validLevels = map[string]bool{"debug": true, "info": true, "warn": true, "error": true}

// Default returns the default configuration.
func Default() *Config {
	return &Config{
		Planner: slot.DefaultSettings(),
		Storage: StorageConfig{
			DBPath: defaultDataPath("ultraday.db"),
		},
		Export: ExportConfig{
			Dir:      ".",
			Language: "en",
		},
		LLM: LLMConfig{
			Provider: "copilot",
			Model:    "gpt-4o",
			BaseURL:  "http://localhost:11434",
		},
		Server: ServerConfig{
			Addr: "127.0.0.1:7070",
		},
		UI: UIConfig{
			Theme: "mocha",
		},
		Log: LogConfig{
			Level: "warn",
			File:  defaultDataPath("ultraday.log"),
		},
	}
}

// defaultDataPath returns a path inside the default data directory.
func defaultDataPath(name string) string {
	home, err := os.UserHomeDir()
	if err != nil {
		return name
	}
	return filepath.Join(home, ".local", "share", "ultraday", name)
}

// DefaultConfigPath returns the default config file path.
func DefaultConfigPath() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return "config.toml"
	}
	return filepath.Join(home, ".config", "ultraday", "config.toml")
}

// Load loads configuration from the default path, merging with defaults and env vars.
func Load() (*Config, error) {
	return LoadFrom(DefaultConfigPath())
}

// LoadFrom loads configuration from the specified path.
// It starts with defaults, overlays file config if it exists, then applies env overrides.
func LoadFrom(path string) (*Config, error) {
	cfg := Default()

	// Try to load from file (not an error if it doesn't exist)
	if err := loadFromFile(path, cfg); err != nil {
		return nil, err
	}

	if err := applyEnvOverrides(cfg); err != nil {
		return nil, err
	}

	cfg.Storage.DBPath = expandPath(cfg.Storage.DBPath)
	cfg.Export.Dir = expandPath(cfg.Export.Dir)
	cfg.Log.File = expandPath(cfg.Log.File)

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid config: %w", err)
	}

	return cfg, nil
}

// loadFromFile loads config from a file if it exists.
func loadFromFile(path string, cfg *Config) error {
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil // File doesn't exist, use defaults
		}
		return fmt.Errorf("reading config file: %w", err)
	}

	if err := toml.Unmarshal(data, cfg); err != nil {
		return fmt.Errorf("parsing config file: %w", err)
	}

	return nil
}

// applyEnvOverrides applies environment variable overrides to the config.
// Environment variables take precedence over file config.
func applyEnvOverrides(cfg *Config) error {
	// Planner overrides
	if v := os.Getenv("ULTRADAY_START_TIME"); v != "" {
		cfg.Planner.StartTime = v
	}
	if v := os.Getenv("ULTRADAY_END_TIME"); v != "" {
		cfg.Planner.EndTime = v
	}
	if v := os.Getenv("ULTRADAY_INTERVAL"); v != "" {
		n, err := strconv.Atoi(v)
		if err != nil {
			return fmt.Errorf("ULTRADAY_INTERVAL: %w", slot.ErrInvalidInterval)
		}
		cfg.Planner.Interval = n
	}
	if v := os.Getenv("ULTRADAY_WORKING_DAYS"); v != "" {
		cfg.Planner.WorkingDays = splitList(v)
	}

	if v := os.Getenv("ULTRADAY_DB_PATH"); v != "" {
		cfg.Storage.DBPath = v
	}
	if v := os.Getenv("ULTRADAY_EXPORT_DIR"); v != "" {
		cfg.Export.Dir = v
	}
	if v := os.Getenv("ULTRADAY_EXPORT_LANGUAGE"); v != "" {
		cfg.Export.Language = v
	}

	// LLM overrides
	if v := os.Getenv("ULTRADAY_LLM_PROVIDER"); v != "" {
		cfg.LLM.Provider = v
	}
	if v := os.Getenv("ULTRADAY_LLM_MODEL"); v != "" {
		cfg.LLM.Model = v
	}
	if v := os.Getenv("ULTRADAY_LLM_BASE_URL"); v != "" {
		cfg.LLM.BaseURL = v
	}

	if v := os.Getenv("ULTRADAY_SERVER_ADDR"); v != "" {
		cfg.Server.Addr = v
	}
	if v := os.Getenv("ULTRADAY_UI_THEME"); v != "" {
		cfg.UI.Theme = v
	}
	if v := os.Getenv("ULTRADAY_LOG_LEVEL"); v != "" {
		cfg.Log.Level = v
	}
	return nil
}

func splitList(s string) []string {
	parts := strings.Split(s, ",")
	result := make([]string, 0, len(parts))
	for _, p := range parts {
		p = strings.TrimSpace(p)
		if p != "" {
			result = append(result, p)
		}
	}
	return result
}

// expandPath expands ~ to the user's home directory.
func expandPath(path string) string {
	if strings.HasPrefix(path, "~/") {
		home, err := os.UserHomeDir()
		if err != nil {
			return path
		}
		return filepath.Join(home, path[2:])
	}
	return path
}

// Validate checks if the configuration is valid.
func (c *Config) Validate() error {
	if err := c.Planner.Validate(); err != nil {
		return fmt.Errorf("planner: %w", err)
	}
	if c.Storage.DBPath == "" {
		return errors.New("db_path must be set")
	}
	if !validLanguages[strings.ToLower(c.Export.Language)] {
		return fmt.Errorf("export language must be en or de, got %q", c.Export.Language)
	}
	if c.Log.Level != "" && !validLevels[strings.ToLower(c.Log.Level)] {
		return fmt.Errorf("invalid log level: %s", c.Log.Level)
	}
	return nil
}

// IsWorkday returns true if the given weekday name is a configured working day.
func (c *Config) IsWorkday(weekday string) bool {
	want, ok := slot.NormalizeWeekday(weekday)
	if !ok {
		return false
	}
	for _, d := range c.Planner.WorkingDays {
		if name, _ := slot.NormalizeWeekday(d); name == want {
			return true
		}
	}
	return false
}

// Save writes the configuration to the default path.
func (c *Config) Save() error {
	return c.SaveTo(DefaultConfigPath())
}

// SaveTo writes the configuration to the specified path.
func (c *Config) SaveTo(path string) error {
	// Ensure directory exists
	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return fmt.Errorf("creating config directory: %w", err)
	}

	data, err := toml.Marshal(c)
	if err != nil {
		return fmt.Errorf("marshaling config: %w", err)
	}

	if err := os.WriteFile(path, data, 0o644); err != nil {
		return fmt.Errorf("writing config file: %w", err)
	}

	return nil
}
