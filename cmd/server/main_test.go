package main

import (
	"context"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/castlemilk/pfinance-forecast/internal/config"
	"github.com/castlemilk/pfinance-forecast/internal/store"
	"github.com/sirupsen/logrus/hooks/test"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testConfig(t *testing.T) *config.Config {
	t.Helper()
	cfg := config.Default()
	cfg.Port = "0"
	cfg.StoreBackend = store.BackendSQLite
	cfg.SQLitePath = filepath.Join(t.TempDir(), "forecast.db")
	return &cfg
}

func TestRunReturnsStartupErrors(t *testing.T) {
	logger, _ := test.NewNullLogger()

	t.Run("store", func(t *testing.T) {
		cfg := testConfig(t)
		cfg.StoreBackend = "cassandra"
		err := run(context.Background(), cfg, logger)
		assert.ErrorContains(t, err, "open cassandra store")
	})

	t.Run("calendar", func(t *testing.T) {
		cfg := testConfig(t)
		cfg.CalendarFile = filepath.Join(t.TempDir(), "missing.toml")
		err := run(context.Background(), cfg, logger)
		require.ErrorContains(t, err, "load calendar")

		_, statErr := os.Stat(cfg.SQLitePath)
		assert.NoError(t, statErr, "store was opened before the calendar failed")
	})
}

func TestRunStopsOnCancel(t *testing.T) {
	logger, hook := test.NewNullLogger()
	ctx, cancel := context.WithCancel(context.Background())

	done := make(chan error, 1)
	go func() { done <- run(ctx, testConfig(t), logger) }()
	cancel()

	select {
	case err := <-done:
		require.NoError(t, err)
	case <-time.After(5 * time.Second):
		t.Fatal("run did not return after cancellation")
	}
	for _, e := range hook.AllEntries() {
		assert.NotEqual(t, "closing store", e.Message)
	}
}
