package forecast

import (
	"testing"
	"time"

	"github.com/castlemilk/pfinance-forecast/internal/model"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func record(category string, d *time.Time, amount *float64) *model.ExpenseRecord {
	return &model.ExpenseRecord{Category: category, Date: d, Amount: amount}
}

func ptrTime(t time.Time) *time.Time { return &t }

func ptrFloat(v float64) *float64 { return &v }

func TestGroupByCategory(t *testing.T) {
	records := []*model.ExpenseRecord{
		record("Groceries", ptrTime(time.Date(2025, 3, 10, 18, 30, 0, 0, time.UTC)), ptrFloat(40)),
		record("Groceries", ptrTime(date(2025, 3, 2)), ptrFloat(25)),
		record("  Rent ", ptrTime(date(2025, 3, 1)), ptrFloat(300)),
		record("", ptrTime(date(2025, 3, 4)), ptrFloat(12)),
		record("Transport", nil, ptrFloat(5)),
		record("Transport", ptrTime(date(2025, 3, 4)), nil),
		record("Gifts", ptrTime(date(2025, 3, 4)), ptrFloat(0)),
		nil,
	}

	grouped := GroupByCategory(records)

	require.Len(t, grouped, 3)
	assert.NotContains(t, grouped, "Transport")
	assert.NotContains(t, grouped, "Gifts", "zero amounts are not observations")

	groceries := grouped["Groceries"]
	require.Len(t, groceries, 2)
	assert.Equal(t, date(2025, 3, 2), groceries[0].Date)
	assert.Equal(t, date(2025, 3, 10), groceries[1].Date, "time of day is dropped")

	assert.Len(t, grouped["Rent"], 1)
	assert.Len(t, grouped[FallbackCategory], 1)
}

func TestGroupByCategoryEmpty(t *testing.T) {
	assert.Empty(t, GroupByCategory(nil))
}

func TestSeriesStats(t *testing.T) {
	s := series(
		pt(date(2025, 2, 27), 10),
		pt(date(2025, 3, 1), 20),
		pt(date(2025, 3, 1), 5),
		pt(date(2025, 3, 9), 15),
	)

	assert.Equal(t, 3, s.DistinctDays())
	assert.Equal(t, 50.0, s.Total())
	assert.Equal(t, 40.0, s.TotalInMonth(date(2025, 3, 20)))
	assert.Equal(t, 0.0, s.TotalInMonth(date(2024, 3, 20)), "same month of another year")
	assert.Equal(t, date(2025, 3, 9), s.Last())
	assert.True(t, Series(nil).Last().IsZero())
}
