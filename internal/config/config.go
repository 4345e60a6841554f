// Package config handles configuration loading from files, defaults, and environment variables.
package config

import (
	"errors"
	"fmt"
	"net/url"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/pelletier/go-toml/v2"
	"github.com/rs/zerolog"

	"github.com/javiermolinar/stationboard/internal/stations"
	"github.com/javiermolinar/stationboard/internal/tui/theme"
)

// EnvPrefix prefixes every environment override.
const EnvPrefix = "STATIONBOARD_"

// Config holds the application configuration.
type Config struct {
	API     APIConfig     `toml:"api"`
	UI      UIConfig      `toml:"ui"`
	MockAPI MockAPIConfig `toml:"mockapi"`
	Log     LogConfig     `toml:"log"`
}

// APIConfig holds the stations API settings.
type APIConfig struct {
	StationsURL string `toml:"stations_url"`
	Timeout     string `toml:"timeout"` // Go duration, e.g. "15s"
}

// UIConfig holds TUI settings.
type UIConfig struct {
	Theme          string `toml:"theme"` // "mocha", "macchiato", "frappe", "latte"
	DebounceMS     int    `toml:"debounce_ms"`
	MaxSuggestions int    `toml:"max_suggestions"`
}

// MockAPIConfig holds settings for the local stand-in API.
type MockAPIConfig struct {
	Addr   string `toml:"addr"`
	DBPath string `toml:"db_path"`
	Seed   bool   `toml:"seed"`
}

// LogConfig holds logging settings.
type LogConfig struct {
	Level string `toml:"level"` // zerolog level name
}

// Default returns the default configuration.
func Default() *Config {
	return &Config{
		API: APIConfig{
			StationsURL: stations.DefaultURL,
			Timeout:     "15s",
		},
		UI: UIConfig{
			Theme:          theme.DefaultName,
			DebounceMS:     300,
			MaxSuggestions: 6,
		},
		MockAPI: MockAPIConfig{
			Addr:   "127.0.0.1:8080",
			DBPath: defaultDBPath(),
			Seed:   true,
		},
		Log: LogConfig{
			Level: "debug",
		},
	}
}

// defaultDBPath returns the default mock API database path.
func defaultDBPath() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return "stationboard.db"
	}
	return filepath.Join(home, ".local", "share", "stationboard", "mockapi.db")
}

// DefaultConfigPath returns the default config file path.
func DefaultConfigPath() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return "config.toml"
	}
	return filepath.Join(home, ".config", "stationboard", "config.toml")
}

// Load loads configuration from the default path, merging with defaults and env vars.
func Load() (*Config, error) {
	return LoadFrom(DefaultConfigPath())
}

// LoadFrom loads configuration from the specified path.
// It starts with defaults, overlays the file if it exists, loads a .env
// file next to it, then applies environment overrides.
func LoadFrom(path string) (*Config, error) {
	cfg := Default()

	if err := loadFromFile(path, cfg); err != nil {
		return nil, err
	}

	if err := loadDotEnv(filepath.Join(filepath.Dir(path), ".env")); err != nil {
		return nil, err
	}
	if err := applyEnvOverrides(cfg); err != nil {
		return nil, err
	}

	cfg.MockAPI.DBPath = expandPath(cfg.MockAPI.DBPath)

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
			return nil
		}
		return fmt.Errorf("reading config file: %w", err)
	}

	if err := toml.Unmarshal(data, cfg); err != nil {
		return fmt.Errorf("parsing config file: %w", err)
	}

	return nil
}

// loadDotEnv sets variables from a .env file. Variables already present in
// the environment win.
func loadDotEnv(path string) error {
	if err := godotenv.Load(path); err != nil && !os.IsNotExist(err) {
		return fmt.Errorf("loading .env file: %w", err)
	}
	return nil
}

// applyEnvOverrides applies environment variable overrides to the config.
// Environment variables take precedence over file config.
func applyEnvOverrides(cfg *Config) error {
	if v := getEnv("API_URL"); v != "" {
		cfg.API.StationsURL = v
	}
	if v := getEnv("API_TIMEOUT"); v != "" {
		cfg.API.Timeout = v
	}

	if v := getEnv("UI_THEME"); v != "" {
		cfg.UI.Theme = v
	}
	if v := getEnv("UI_DEBOUNCE_MS"); v != "" {
		n, err := strconv.Atoi(v)
		if err != nil {
			return fmt.Errorf("%sUI_DEBOUNCE_MS: %w", EnvPrefix, err)
		}
		cfg.UI.DebounceMS = n
	}
	if v := getEnv("UI_MAX_SUGGESTIONS"); v != "" {
		n, err := strconv.Atoi(v)
		if err != nil {
			return fmt.Errorf("%sUI_MAX_SUGGESTIONS: %w", EnvPrefix, err)
		}
		cfg.UI.MaxSuggestions = n
	}

	if v := getEnv("MOCKAPI_ADDR"); v != "" {
		cfg.MockAPI.Addr = v
	}
	if v := getEnv("MOCKAPI_DB_PATH"); v != "" {
		cfg.MockAPI.DBPath = v
	}
	if v := getEnv("MOCKAPI_SEED"); v != "" {
		b, err := strconv.ParseBool(v)
		if err != nil {
			return fmt.Errorf("%sMOCKAPI_SEED: %w", EnvPrefix, err)
		}
		cfg.MockAPI.Seed = b
	}

	if v := getEnv("LOG_LEVEL"); v != "" {
		cfg.Log.Level = v
	}
	return nil
}

func getEnv(key string) string {
	return strings.TrimSpace(os.Getenv(EnvPrefix + key))
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
	if c.API.StationsURL == "" {
		return errors.New("stations_url must be set")
	}
	if _, err := url.ParseRequestURI(c.API.StationsURL); err != nil {
		return fmt.Errorf("stations_url: %w", err)
	}
	d, err := time.ParseDuration(c.API.Timeout)
	if err != nil {
		return fmt.Errorf("timeout must be a duration, got %q", c.API.Timeout)
	}
	if d <= 0 {
		return errors.New("timeout must be positive")
	}

	if !theme.IsAvailable(c.UI.Theme) {
		return fmt.Errorf("unknown theme: %s", c.UI.Theme)
	}
	if c.UI.DebounceMS < 1 {
		return errors.New("debounce_ms must be at least 1")
	}
	if c.UI.MaxSuggestions < 1 {
		return errors.New("max_suggestions must be at least 1")
	}

	if c.MockAPI.Addr == "" {
		return errors.New("mockapi addr must be set")
	}
	if c.MockAPI.DBPath == "" {
		return errors.New("mockapi db_path must be set")
	}

	if _, err := zerolog.ParseLevel(c.Log.Level); err != nil {
		return fmt.Errorf("log level: %w", err)
	}
	return nil
}

// Timeout returns the API request timeout. Call Validate first.
func (c *Config) Timeout() time.Duration {
	d, err := time.ParseDuration(c.API.Timeout)
	if err != nil {
		return 0
	}
	return d
}

// Debounce returns the autocomplete quiet period.
func (c *Config) Debounce() time.Duration {
	return time.Duration(c.UI.DebounceMS) * time.Millisecond
}

// LogLevel returns the configured zerolog level, or debug if it is invalid.
func (c *Config) LogLevel() zerolog.Level {
	lvl, err := zerolog.ParseLevel(c.Log.Level)
	if err != nil || lvl == zerolog.NoLevel {
		return zerolog.DebugLevel
	}
	return lvl
}

// SaveTo writes the configuration to the specified path.
func (c *Config) SaveTo(path string) error {
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
