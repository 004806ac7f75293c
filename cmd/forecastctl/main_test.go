package main

import (
	"bytes"
	"encoding/json"
	"path/filepath"
	"sort"
	"testing"

	"github.com/castlemilk/pfinance-forecast/internal/service"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func run(t *testing.T, args ...string) (string, error) {
	t.Helper()
	var out bytes.Buffer
	cmd := newRootCmd()
	cmd.SetOut(&out)
	cmd.SetErr(&bytes.Buffer{})
	cmd.SetArgs(args)
	err := cmd.Execute()
	return out.String(), err
}

func useSQLite(t *testing.T) {
	t.Helper()
	t.Setenv("CONFIG_FILE", "")
	t.Setenv("ENV", "")
	t.Setenv("USE_MEMORY_STORE", "")
	t.Setenv("STORE_BACKEND", "sqlite")
	t.Setenv("SQLITE_PATH", filepath.Join(t.TempDir(), "forecast.db"))
	t.Setenv("CALENDAR_FILE", "")
	t.Setenv("LOG_LEVEL", "error")
}

func TestSeedThenPredict(t *testing.T) {
	useSQLite(t)

	out, err := run(t, "seed", "demo-user", "--now", "2025-03-20", "--months", "6")
	require.NoError(t, err)
	assert.Contains(t, out, "for demo-user")

	out, err = run(t, "predict", "demo-user", "--now", "2025-03-20")
	require.NoError(t, err)

	var resp service.PredictExpensesResponse
	require.NoError(t, json.Unmarshal([]byte(out), &resp))

	var categories []string
	for _, p := range resp.Predictions {
		assert.False(t, p.Failed(), "%s: %s", p.Category, p.Error)
		assert.NotEmpty(t, p.Explanation)
		categories = append(categories, p.Category)
	}
	assert.True(t, sort.StringsAreSorted(categories))
	assert.Equal(t, []string{"Groceries", "Health", "Leisure", "Rent", "Shopping", "Subscription", "Transport"}, categories)
}

func TestPredictUnknownUser(t *testing.T) {
	useSQLite(t)

	_, err := run(t, "predict", "ghost")
	assert.ErrorIs(t, err, service.ErrNoData)
}

func TestInvalidNow(t *testing.T) {
	useSQLite(t)

	_, err := run(t, "seed", "u1", "--now", "20/03/2025")
	assert.ErrorContains(t, err, "invalid --now")
}

func TestCalendarCommand(t *testing.T) {
	useSQLite(t)

	out, err := run(t, "calendar")
	require.NoError(t, err)
	assert.Contains(t, out, "DATE")
	assert.Contains(t, out, "2025-03-20")
	assert.Contains(t, out, "independance")
}

func TestCalendarCommandNextPeriod(t *testing.T) {
	useSQLite(t)

	out, err := run(t, "calendar", "--next", "--now", "2025-02-10")
	require.NoError(t, err)
	assert.Contains(t, out, "2025-03-20")
	assert.Contains(t, out, "ramadan")
	assert.NotContains(t, out, "martyrs")
	assert.NotContains(t, out, "2025-07-")
}
