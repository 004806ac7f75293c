package forecast

import (
	"fmt"
	"math"
	"strings"

	"github.com/castlemilk/pfinance-forecast/internal/calendar"
	"github.com/shopspring/decimal"
)

const (
	// Epsilon is the smallest amount treated as real spending.
	Epsilon = 1.0
	// IncreaseThreshold and DecreaseThreshold bound the "stable" band, in percent.
	IncreaseThreshold = 10.0
	DecreaseThreshold = -10.0
)

// Trend is the classification behind an explanation.
type Trend int

const (
	TrendInsufficientData Trend = iota + 1
	TrendNearZeroNone
	TrendNearZeroNew
	TrendSeasonalIncrease
	TrendReligiousIncrease
	TrendEventLinkedIncrease
	TrendPlainIncrease
	TrendDecrease
	TrendStable
	TrendRecurring
)

var trendNames = map[Trend]string{
	TrendInsufficientData:    "insufficient_data",
	TrendNearZeroNone:        "near_zero_none",
	TrendNearZeroNew:         "near_zero_new",
	TrendSeasonalIncrease:    "seasonal_increase",
	TrendReligiousIncrease:   "religious_increase",
	TrendEventLinkedIncrease: "event_linked_increase",
	TrendPlainIncrease:       "plain_increase",
	TrendDecrease:            "decrease",
	TrendStable:              "stable",
	TrendRecurring:           "recurring",
}

func (t Trend) String() string {
	if name, ok := trendNames[t]; ok {
		return name
	}
	return fmt.Sprintf("trend(%d)", int(t))
}

// Signals are the statistics a classification is derived from.
type Signals struct {
	Insufficient bool
	Baseline     float64
	Predicted    float64
	// Events are the calendar events matched inside the next period.
	Events []calendar.Event
}

// Classification is the outcome of Classify.
type Classification struct {
	Trend Trend
	// ChangePct is only meaningful when the baseline is at least Epsilon.
	ChangePct float64
	Events    []calendar.Event
}

// Classify applies the explanation precedence rules. It never formats text.
func Classify(s Signals) Classification {
	if s.Insufficient {
		return Classification{Trend: TrendInsufficientData}
	}
	if s.Baseline < Epsilon {
		if s.Predicted < Epsilon {
			return Classification{Trend: TrendNearZeroNone}
		}
		return Classification{Trend: TrendNearZeroNew}
	}

	change := (s.Predicted - s.Baseline) / s.Baseline * 100
	c := Classification{ChangePct: change}
	switch {
	case change > IncreaseThreshold:
		c.Events = s.Events
		switch {
		case calendar.HasKind(s.Events, calendar.KindSummer):
			c.Trend = TrendSeasonalIncrease
		case calendar.HasKind(s.Events, calendar.KindFasting):
			c.Trend = TrendReligiousIncrease
		case len(s.Events) > 0:
			c.Trend = TrendEventLinkedIncrease
		default:
			c.Trend = TrendPlainIncrease
		}
	case change < DecreaseThreshold:
		c.Trend = TrendDecrease
	default:
		c.Trend = TrendStable
	}
	return c
}

type message struct {
	Category  string
	Currency  string
	Amount    string
	ChangePct string
	Labels    []string
	Summer    string
	Fasting   string
}

var templates = map[Trend]func(m message) string{
	TrendInsufficientData: func(m message) string {
		return fmt.Sprintf("Not enough data for a reliable prediction for %s.", m.Category)
	},
	TrendNearZeroNone: func(m message) string {
		return fmt.Sprintf("Little or no spending expected for %s.", m.Category)
	},
	TrendNearZeroNew: func(m message) string {
		return fmt.Sprintf("New spending (~%s %s) expected for %s, while last period was near zero.", m.Amount, m.Currency, m.Category)
	},
	TrendSeasonalIncrease: func(m message) string {
		return fmt.Sprintf("Spending on %s will likely increase (~%s%%) because of the summer holidays (%s).", m.Category, m.ChangePct, m.Summer)
	},
	TrendReligiousIncrease: func(m message) string {
		return fmt.Sprintf("Increase (~%s%%) expected for %s during %s.", m.ChangePct, m.Category, m.Fasting)
	},
	TrendEventLinkedIncrease: func(m message) string {
		return fmt.Sprintf("Increase (~%s%%) for %s possibly linked to: %s.", m.ChangePct, m.Category, strings.Join(m.Labels, ", "))
	},
	TrendPlainIncrease: func(m message) string {
		return fmt.Sprintf("Increase (~%s%%) for %s compared to the current month.", m.ChangePct, m.Category)
	},
	TrendDecrease: func(m message) string {
		return fmt.Sprintf("Decrease (~%s%%) expected in %s spending.", m.ChangePct, m.Category)
	},
	TrendStable: func(m message) string {
		return fmt.Sprintf("Stable spending expected for %s.", m.Category)
	},
	TrendRecurring: func(m message) string {
		return fmt.Sprintf("Recurring expense detected for %s. Estimated at %s %s.", m.Category, m.Amount, m.Currency)
	},
}

// Explain renders the message for a classification. amount is the final
// predicted total shown to the user.
func Explain(category, currency string, c Classification, amount float64) string {
	render, ok := templates[c.Trend]
	if !ok {
		return ""
	}
	m := message{
		Category:  category,
		Currency:  currency,
		Amount:    formatMoney(amount),
		ChangePct: formatPercent(math.Abs(c.ChangePct)),
		Labels:    calendar.UniqueLabels(c.Events),
	}
	if e, ok := calendar.FirstOfKind(c.Events, calendar.KindSummer); ok {
		m.Summer = e.Label
	}
	if e, ok := calendar.FirstOfKind(c.Events, calendar.KindFasting); ok {
		m.Fasting = e.Label
	}
	return render(m)
}

func formatMoney(v float64) string {
	return decimal.NewFromFloat(v).StringFixed(2)
}

func formatPercent(v float64) string {
	return decimal.NewFromFloat(v).StringFixed(1)
}

// roundMoney rounds to cents, half away from zero.
func roundMoney(v float64) float64 {
	return decimal.NewFromFloat(v).Round(2).InexactFloat64()
}
