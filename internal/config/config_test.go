package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/castlemilk/pfinance-forecast/internal/store"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var envKeys = []string{
	"CONFIG_FILE", "PORT", "LOG_LEVEL", "LOG_FORMAT", "STORE_BACKEND", "DATABASE_URL",
	"SQLITE_PATH", "GOOGLE_CLOUD_PROJECT", "FIRESTORE_CREDENTIALS_FILE", "CALENDAR_FILE",
	"CURRENCY", "USE_MEMORY_STORE", "ENV", "FORECAST_CONCURRENCY",
	"FORECAST_CATEGORY_TIMEOUT", "ALLOWED_ORIGINS",
}

// clearEnv unsets every key Load reads, restoring them after the test.
func clearEnv(t *testing.T) {
	t.Helper()
	for _, k := range envKeys {
		t.Setenv(k, "")
		require.NoError(t, os.Unsetenv(k))
	}
}

func TestLoadDefaults(t *testing.T) {
	clearEnv(t)

	cfg, err := Load()
	require.NoError(t, err)
	assert.Equal(t, "8111", cfg.Port)
	assert.Equal(t, store.BackendFirestore, cfg.StoreBackend)
	assert.Equal(t, "TND", cfg.Currency)
	assert.Equal(t, 4, cfg.Concurrency)
	assert.Equal(t, 30*time.Second, cfg.CategoryTimeout)
}

func TestLoadLocalShortcuts(t *testing.T) {
	t.Run("USE_MEMORY_STORE", func(t *testing.T) {
		clearEnv(t)
		t.Setenv("USE_MEMORY_STORE", "true")
		cfg, err := Load()
		require.NoError(t, err)
		assert.Equal(t, store.BackendMemory, cfg.StoreBackend)
	})

	t.Run("ENV=local beats STORE_BACKEND", func(t *testing.T) {
		clearEnv(t)
		t.Setenv("ENV", "local")
		t.Setenv("STORE_BACKEND", store.BackendPostgres)
		cfg, err := Load()
		require.NoError(t, err)
		assert.Equal(t, store.BackendMemory, cfg.StoreBackend)
	})
}

func TestLoadFileThenEnv(t *testing.T) {
	clearEnv(t)

	path := filepath.Join(t.TempDir(), "forecast.toml")
	require.NoError(t, os.WriteFile(path, []byte(`
port = "9000"
store_backend = "sqlite"
sqlite_path = "/tmp/forecast.db"
currency = "EUR"
forecast_concurrency = 8
forecast_category_timeout = "45s"
allowed_origins = ["https://example.com"]
`), 0o600))

	t.Setenv("CONFIG_FILE", path)
	t.Setenv("CURRENCY", "USD")
	t.Setenv("ALLOWED_ORIGINS", "https://a.example, https://b.example,")

	cfg, err := Load()
	require.NoError(t, err)
	assert.Equal(t, "9000", cfg.Port)
	assert.Equal(t, store.BackendSQLite, cfg.StoreBackend)
	assert.Equal(t, "/tmp/forecast.db", cfg.SQLitePath)
	assert.Equal(t, "USD", cfg.Currency, "environment overrides the file")
	assert.Equal(t, 8, cfg.Concurrency)
	assert.Equal(t, 45*time.Second, cfg.CategoryTimeout)
	assert.Equal(t, []string{"https://a.example", "https://b.example"}, cfg.AllowedOrigins)

	opts := cfg.StoreOptions()
	assert.Equal(t, store.BackendSQLite, opts.Backend)
	assert.Equal(t, "/tmp/forecast.db", opts.SQLitePath)
}

func TestLoadErrors(t *testing.T) {
	tests := []struct {
		name    string
		env     map[string]string
		wantErr string
	}{
		{"bad concurrency", map[string]string{"FORECAST_CONCURRENCY": "many"}, "FORECAST_CONCURRENCY"},
		{"negative concurrency", map[string]string{"FORECAST_CONCURRENCY": "-1"}, "must not be negative"},
		{"bad timeout", map[string]string{"FORECAST_CATEGORY_TIMEOUT": "soon"}, "FORECAST_CATEGORY_TIMEOUT"},
		{"unknown backend", map[string]string{"STORE_BACKEND": "cassandra"}, "unknown STORE_BACKEND"},
		{"postgres without dsn", map[string]string{"STORE_BACKEND": "postgres"}, "DATABASE_URL is required"},
		{"unknown log format", map[string]string{"LOG_FORMAT": "xml"}, "unknown LOG_FORMAT"},
		{"missing config file", map[string]string{"CONFIG_FILE": "/does/not/exist.toml"}, "reading config"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			clearEnv(t)
			for k, v := range tt.env {
				t.Setenv(k, v)
			}
			_, err := Load()
			assert.ErrorContains(t, err, tt.wantErr)
		})
	}
}
