package forecast

import (
	"strings"

	"golang.org/x/text/cases"
)

// recurringCategories are fixed costs the oracle tends to under-forecast
// because their series are nearly constant.
var recurringCategories = []string{"housing", "subscription", "rent", "utilities"}

// IsRecurringCategory reports whether category is one of the fixed recurring
// costs, ignoring case.
func IsRecurringCategory(category string) bool {
	// A Caser is stateful, so each call gets its own.
	folded := cases.Fold().String(strings.TrimSpace(category))
	for _, c := range recurringCategories {
		if folded == c {
			return true
		}
	}
	return false
}

// recurringEstimate replaces a near-zero prediction for a recurring category
// with the historical average per observation. ok is false when the override
// does not apply.
func recurringEstimate(category string, s Series, predicted float64) (estimate float64, ok bool) {
	if !IsRecurringCategory(category) || len(s) == 0 {
		return 0, false
	}
	total := s.Total()
	if total <= 0 || predicted >= Epsilon {
		return 0, false
	}
	return roundMoney(total / float64(len(s))), true
}
