package forecast

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestIsRecurringCategory(t *testing.T) {
	for _, c := range []string{"rent", "RENT", " Housing ", "Subscription", "utilities"} {
		assert.True(t, IsRecurringCategory(c), c)
	}
	for _, c := range []string{"Groceries", "rental car", "", FallbackCategory} {
		assert.False(t, IsRecurringCategory(c), c)
	}
}

func TestRecurringEstimate(t *testing.T) {
	rent := series(
		pt(date(2025, 1, 1), 300),
		pt(date(2025, 2, 1), 310),
		pt(date(2025, 3, 1), 290),
	)

	got, ok := recurringEstimate("Rent", rent, 0.4)
	assert.True(t, ok)
	assert.Equal(t, 300.0, got)

	_, ok = recurringEstimate("Rent", rent, 1)
	assert.False(t, ok, "prediction at epsilon is kept")

	_, ok = recurringEstimate("Groceries", rent, 0)
	assert.False(t, ok, "not a recurring category")

	_, ok = recurringEstimate("Rent", series(pt(date(2025, 1, 1), 0), pt(date(2025, 2, 1), 0)), 0)
	assert.False(t, ok, "no historical spending")

	got, ok = recurringEstimate("internet", series(), 0)
	assert.False(t, ok)
	assert.Zero(t, got)
}
