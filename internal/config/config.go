// Package config loads server and CLI settings from defaults, an optional
// TOML file and environment variables, in that order of precedence.
package config

import (
	"errors"
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/BurntSushi/toml"
	"github.com/castlemilk/pfinance-forecast/internal/store"
)

// Config holds application configuration
type Config struct {
	Port      string `toml:"port"`
	LogLevel  string `toml:"log_level"`
	LogFormat string `toml:"log_format"`

	StoreBackend    string `toml:"store_backend"`
	DatabaseURL     string `toml:"database_url"`
	SQLitePath      string `toml:"sqlite_path"`
	ProjectID       string `toml:"google_cloud_project"`
	CredentialsFile string `toml:"firestore_credentials_file"`

	// CalendarFile is a local path or a gs://bucket/object URI. Empty selects
	// the built-in table.
	CalendarFile string `toml:"calendar_file"`

	Currency        string        `toml:"currency"`
	Concurrency     int           `toml:"forecast_concurrency"`
	CategoryTimeout time.Duration `toml:"forecast_category_timeout"`

	AllowedOrigins []string `toml:"allowed_origins"`
}

// Default returns the configuration used when nothing is overridden.
func Default() Config {
	return Config{
		Port:            "8111",
		LogLevel:        "info",
		LogFormat:       "json",
		StoreBackend:    store.BackendFirestore,
		SQLitePath:      "forecast.db",
		Currency:        "TND",
		Concurrency:     4,
		CategoryTimeout: 30 * time.Second,
		AllowedOrigins: []string{
			"http://localhost:1234",
			"http://127.0.0.1:1234",
		},
	}
}

// Load builds the configuration from defaults, the TOML file named by
// CONFIG_FILE (if any) and the environment.
func Load() (*Config, error) {
	cfg := Default()

	if path := getEnv("CONFIG_FILE", ""); path != "" {
		if err := cfg.loadFile(path); err != nil {
			return nil, err
		}
	}
	if err := cfg.applyEnv(); err != nil {
		return nil, err
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

func (c *Config) loadFile(path string) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("reading config: %w", err)
	}
	if _, err := toml.Decode(string(data), c); err != nil {
		return fmt.Errorf("parsing config %s: %w", path, err)
	}
	return nil
}

func (c *Config) applyEnv() error {
	c.Port = getEnv("PORT", c.Port)
	c.LogLevel = getEnv("LOG_LEVEL", c.LogLevel)
	c.LogFormat = getEnv("LOG_FORMAT", c.LogFormat)
	c.StoreBackend = getEnv("STORE_BACKEND", c.StoreBackend)
	c.DatabaseURL = getEnv("DATABASE_URL", c.DatabaseURL)
	c.SQLitePath = getEnv("SQLITE_PATH", c.SQLitePath)
	c.ProjectID = getEnv("GOOGLE_CLOUD_PROJECT", c.ProjectID)
	c.CredentialsFile = getEnv("FIRESTORE_CREDENTIALS_FILE", c.CredentialsFile)
	c.CalendarFile = getEnv("CALENDAR_FILE", c.CalendarFile)
	c.Currency = getEnv("CURRENCY", c.Currency)

	// Local development shortcuts.
	if getEnv("USE_MEMORY_STORE", "") == "true" || getEnv("ENV", "") == "local" {
		c.StoreBackend = store.BackendMemory
	}

	if v, ok := os.LookupEnv("FORECAST_CONCURRENCY"); ok {
		n, err := strconv.Atoi(v)
		if err != nil {
			return fmt.Errorf("FORECAST_CONCURRENCY: %w", err)
		}
		c.Concurrency = n
	}
	if v, ok := os.LookupEnv("FORECAST_CATEGORY_TIMEOUT"); ok {
		d, err := time.ParseDuration(v)
		if err != nil {
			return fmt.Errorf("FORECAST_CATEGORY_TIMEOUT: %w", err)
		}
		c.CategoryTimeout = d
	}
	if v, ok := os.LookupEnv("ALLOWED_ORIGINS"); ok {
		c.AllowedOrigins = splitList(v)
	}
	return nil
}

// Validate reports the first invalid setting.
func (c *Config) Validate() error {
	if c.Port == "" {
		return errors.New("PORT is required")
	}
	switch c.StoreBackend {
	case store.BackendMemory, store.BackendFirestore:
	case store.BackendSQLite:
		if c.SQLitePath == "" {
			return errors.New("SQLITE_PATH is required for the sqlite backend")
		}
	case store.BackendPostgres:
		if c.DatabaseURL == "" {
			return errors.New("DATABASE_URL is required for the postgres backend")
		}
	default:
		return fmt.Errorf("unknown STORE_BACKEND %q", c.StoreBackend)
	}
	switch c.LogFormat {
	case "json", "text":
	default:
		return fmt.Errorf("unknown LOG_FORMAT %q", c.LogFormat)
	}
	if c.Concurrency < 0 {
		return fmt.Errorf("FORECAST_CONCURRENCY must not be negative, got %d", c.Concurrency)
	}
	if c.CategoryTimeout < 0 {
		return fmt.Errorf("FORECAST_CATEGORY_TIMEOUT must not be negative, got %s", c.CategoryTimeout)
	}
	return nil
}

// StoreOptions converts the storage settings for store.Open.
func (c *Config) StoreOptions() store.Options {
	return store.Options{
		Backend:         c.StoreBackend,
		ProjectID:       c.ProjectID,
		CredentialsFile: c.CredentialsFile,
		DatabaseURL:     c.DatabaseURL,
		SQLitePath:      c.SQLitePath,
	}
}

func splitList(v string) []string {
	var out []string
	for _, s := range strings.Split(v, ",") {
		if s = strings.TrimSpace(s); s != "" {
			out = append(out, s)
		}
	}
	return out
}

func getEnv(key, defaultVal string) string {
	if value, exists := os.LookupEnv(key); exists {
		return value
	}
	return defaultVal
}
