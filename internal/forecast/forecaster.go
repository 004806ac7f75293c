// Package forecast turns a user's expense history into per-category
// predictions for the next calendar month, with a short explanation of the
// expected trend.
package forecast

import (
	"context"
	"fmt"
	"io"
	"math"
	"sort"
	"time"

	"github.com/castlemilk/pfinance-forecast/internal/calendar"
	"github.com/castlemilk/pfinance-forecast/internal/model"
	"github.com/castlemilk/pfinance-forecast/internal/oracle"
	"github.com/sirupsen/logrus"
	"golang.org/x/sync/errgroup"
)

// MinHorizonDays is the shortest horizon requested from the oracle.
const MinHorizonDays = 30

// Options tunes a Forecaster. The zero value is usable.
type Options struct {
	// Currency is the code printed next to amounts in explanations.
	Currency string
	// Concurrency caps how many categories are forecast at once. <= 1 runs
	// them one after the other.
	Concurrency int
	// CategoryTimeout bounds one category's oracle call. Zero means no limit.
	CategoryTimeout time.Duration
}

// Forecaster drives the oracle for each category of a user's history.
// It holds no mutable state and is safe for concurrent use.
type Forecaster struct {
	oracle   oracle.Oracle
	calendar calendar.Table
	log      *logrus.Logger
	opts     Options
}

// NewForecaster creates a forecaster. A nil logger discards output.
func NewForecaster(o oracle.Oracle, cal calendar.Table, log *logrus.Logger, opts Options) *Forecaster {
	if log == nil {
		log = logrus.New()
		log.SetOutput(io.Discard)
	}
	if opts.Currency == "" {
		opts.Currency = "TND"
	}
	return &Forecaster{
		oracle:   o,
		calendar: cal,
		log:      log,
		opts:     opts,
	}
}

// NextPeriod returns the first and last day of the month after now's month.
func NextPeriod(now time.Time) (start, end time.Time) {
	start = model.MonthStart(now).AddDate(0, 1, 0)
	end = start.AddDate(0, 1, -1)
	return start, end
}

// PredictAll forecasts every category. Results are sorted by category name;
// a failure in one category is reported in its own slot only.
func (f *Forecaster) PredictAll(ctx context.Context, grouped map[string]Series, now time.Time) []model.CategoryPrediction {
	names := make([]string, 0, len(grouped))
	for name := range grouped {
		names = append(names, name)
	}
	sort.Strings(names)

	out := make([]model.CategoryPrediction, len(names))
	var g errgroup.Group
	g.SetLimit(max(1, f.opts.Concurrency))
	for i, name := range names {
		g.Go(func() error {
			out[i] = f.PredictCategory(ctx, name, grouped[name], now)
			return nil
		})
	}
	_ = g.Wait()
	return out
}

// PredictCategory forecasts a single category for the month after now.
func (f *Forecaster) PredictCategory(ctx context.Context, category string, s Series, now time.Time) model.CategoryPrediction {
	log := f.log.WithField("category", category)

	if s.DistinctDays() < 2 {
		c := Classify(Signals{Insufficient: true})
		return model.CategoryPrediction{
			Category:       category,
			PredictedTotal: 0,
			Explanation:    Explain(category, f.opts.Currency, c, 0),
		}
	}

	start, end := NextPeriod(now)
	curve, err := f.runOracle(ctx, s, horizonDays(s.Last(), end))
	if err != nil {
		log.WithError(err).Warn("category forecast failed")
		return model.CategoryPrediction{
			Category: category,
			Error:    fmt.Sprintf("prediction error: %v", err),
		}
	}

	var predicted float64
	dates := make(map[time.Time]struct{})
	for _, p := range curve {
		d := model.Day(p.Date)
		if d.Before(start) || d.After(end) {
			continue
		}
		predicted += p.Value
		dates[d] = struct{}{}
	}

	baseline := s.TotalInMonth(now)
	c := Classify(Signals{
		Baseline:  baseline,
		Predicted: predicted,
		Events:    f.calendar.Matching(dates),
	})
	if c.Trend == TrendNearZeroNone {
		predicted = 0
	}

	if estimate, ok := recurringEstimate(category, s, predicted); ok {
		log.WithFields(logrus.Fields{
			"raw_prediction": predicted,
			"estimate":       estimate,
		}).Debug("recurring category override")
		predicted = estimate
		c = Classification{Trend: TrendRecurring}
	}

	total := roundMoney(predicted)
	log.WithFields(logrus.Fields{
		"trend":     c.Trend.String(),
		"baseline":  baseline,
		"predicted": total,
	}).Debug("category forecast")

	return model.CategoryPrediction{
		Category:       category,
		PredictedTotal: total,
		Explanation:    Explain(category, f.opts.Currency, c, total),
	}
}

type oracleResult struct {
	points []oracle.Point
	err    error
}

// runOracle fits and predicts in its own goroutine so a slow oracle cannot
// hold the caller past CategoryTimeout or ctx cancellation.
func (f *Forecaster) runOracle(ctx context.Context, s Series, horizon int) ([]oracle.Point, error) {
	if f.opts.CategoryTimeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, f.opts.CategoryTimeout)
		defer cancel()
	}

	done := make(chan oracleResult, 1)
	go func() {
		defer func() {
			if r := recover(); r != nil {
				done <- oracleResult{err: fmt.Errorf("oracle panic: %v", r)}
			}
		}()
		m, err := f.oracle.Fit(ctx, s, f.calendar.Events())
		if err != nil {
			done <- oracleResult{err: fmt.Errorf("fit: %w", err)}
			return
		}
		points, err := f.oracle.Predict(ctx, m, horizon)
		if err != nil {
			done <- oracleResult{err: fmt.Errorf("predict: %w", err)}
			return
		}
		done <- oracleResult{points: points}
	}()

	select {
	case r := <-done:
		return r.points, r.err
	case <-ctx.Done():
		return nil, fmt.Errorf("oracle: %w", ctx.Err())
	}
}

// horizonDays covers at least MinHorizonDays and reaches the end of the
// next period.
func horizonDays(last, periodEnd time.Time) int {
	days := int(math.Round(model.Day(periodEnd).Sub(model.Day(last)).Hours() / 24))
	return max(days, MinHorizonDays)
}
