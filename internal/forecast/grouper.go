package forecast

import (
	"sort"
	"strings"
	"time"

	"github.com/castlemilk/pfinance-forecast/internal/model"
	"github.com/castlemilk/pfinance-forecast/internal/oracle"
)

// FallbackCategory labels records that carry no category.
const FallbackCategory = "Other"

// Series is the chronologically ordered history of one category.
type Series []oracle.Point

// DistinctDays counts the distinct calendar dates in the series.
func (s Series) DistinctDays() int {
	days := make(map[time.Time]struct{}, len(s))
	for _, p := range s {
		days[model.Day(p.Date)] = struct{}{}
	}
	return len(days)
}

// Total sums every observed value.
func (s Series) Total() float64 {
	var total float64
	for _, p := range s {
		total += p.Value
	}
	return total
}

// TotalInMonth sums observed values dated in ref's calendar month.
func (s Series) TotalInMonth(ref time.Time) float64 {
	var total float64
	for _, p := range s {
		if model.SameMonth(p.Date, ref) {
			total += p.Value
		}
	}
	return total
}

// Last returns the date of the latest observation.
func (s Series) Last() time.Time {
	if len(s) == 0 {
		return time.Time{}
	}
	return s[len(s)-1].Date
}

// GroupByCategory partitions records into per-category series sorted by date.
// Records lacking a date or a non-zero amount are dropped.
func GroupByCategory(records []*model.ExpenseRecord) map[string]Series {
	grouped := make(map[string]Series)
	for _, r := range records {
		if r == nil || r.Date == nil || r.Amount == nil || *r.Amount == 0 {
			continue
		}
		category := strings.TrimSpace(r.Category)
		if category == "" {
			category = FallbackCategory
		}
		grouped[category] = append(grouped[category], oracle.Point{
			Date:  model.Day(*r.Date),
			Value: *r.Amount,
		})
	}

	for _, s := range grouped {
		sort.SliceStable(s, func(i, j int) bool {
			return s[i].Date.Before(s[j].Date)
		})
	}
	return grouped
}
