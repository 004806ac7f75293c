package oracle

import (
	"context"
	"math"
	"testing"
	"time"

	"github.com/castlemilk/pfinance-forecast/internal/calendar"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func day(y int, m time.Month, d int) time.Time {
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

func TestRegressionConstantSeries(t *testing.T) {
	var series []Point
	start := day(2025, 1, 1)
	for i := 0; i < 56; i++ {
		series = append(series, Point{Date: start.AddDate(0, 0, i), Value: 10})
	}

	r := NewRegression()
	m, err := r.Fit(context.Background(), series, nil)
	require.NoError(t, err)

	preds, err := r.Predict(context.Background(), m, 30)
	require.NoError(t, err)
	require.Len(t, preds, 30)

	assert.Equal(t, start.AddDate(0, 0, 56), preds[0].Date, "first prediction is the day after the last observation")
	for _, p := range preds {
		assert.InDelta(t, 10, p.Value, 0.01)
	}
}

func TestRegressionWeeklyPattern(t *testing.T) {
	// Saturdays only, 12 weeks.
	var series []Point
	start := day(2025, 1, 4)
	require.Equal(t, time.Saturday, start.Weekday())
	for w := 0; w < 12; w++ {
		series = append(series, Point{Date: start.AddDate(0, 0, 7*w), Value: 50})
	}

	r := NewRegression()
	m, err := r.Fit(context.Background(), series, nil)
	require.NoError(t, err)

	preds, err := r.Predict(context.Background(), m, 7)
	require.NoError(t, err)
	for _, p := range preds {
		if p.Date.Weekday() == time.Saturday {
			assert.InDelta(t, 50, p.Value, 2)
		} else {
			assert.InDelta(t, 0, p.Value, 2)
		}
	}
}

func TestRegressionEventEffect(t *testing.T) {
	var series []Point
	var events []calendar.Event
	start := day(2025, 1, 1)
	for i := 0; i < 90; i++ {
		d := start.AddDate(0, 0, i)
		v := 5.0
		if d.Day() == 15 {
			v = 105
			events = append(events, calendar.Event{Date: d, Label: "payday", Kind: calendar.KindHoliday})
		}
		series = append(series, Point{Date: d, Value: v})
	}
	// Future occurrence of the same label.
	events = append(events, calendar.Event{Date: day(2025, 4, 15), Label: "payday", Kind: calendar.KindHoliday})

	r := NewRegression()
	m, err := r.Fit(context.Background(), series, events)
	require.NoError(t, err)

	preds, err := r.Predict(context.Background(), m, 30)
	require.NoError(t, err)
	for _, p := range preds {
		if p.Date.Equal(day(2025, 4, 15)) {
			assert.Greater(t, p.Value, 50.0)
		} else {
			assert.Less(t, p.Value, 20.0)
		}
	}
}

func TestRegressionFitErrors(t *testing.T) {
	r := NewRegression()
	ctx := context.Background()

	_, err := r.Fit(ctx, []Point{{Date: day(2025, 1, 1), Value: 1}}, nil)
	assert.ErrorIs(t, err, ErrTooFewPoints)

	_, err = r.Fit(ctx, []Point{
		{Date: day(2025, 1, 1), Value: 1},
		{Date: day(2025, 1, 1), Value: 2},
	}, nil)
	assert.ErrorIs(t, err, ErrTooFewPoints, "same-day points count once")

	_, err = r.Fit(ctx, []Point{
		{Date: day(2025, 1, 1), Value: 1},
		{Date: day(2025, 1, 2), Value: math.NaN()},
	}, nil)
	assert.ErrorContains(t, err, "non-finite")

	cancelled, cancel := context.WithCancel(ctx)
	cancel()
	_, err = r.Fit(cancelled, []Point{
		{Date: day(2025, 1, 1), Value: 1},
		{Date: day(2025, 1, 2), Value: 2},
	}, nil)
	assert.ErrorIs(t, err, context.Canceled)
}

func TestRegressionPredictErrors(t *testing.T) {
	r := NewRegression()
	ctx := context.Background()

	_, err := r.Predict(ctx, "not a model", 10)
	assert.ErrorContains(t, err, "unexpected model type")

	m, err := r.Fit(ctx, []Point{
		{Date: day(2025, 1, 1), Value: 1},
		{Date: day(2025, 1, 2), Value: 2},
	}, nil)
	require.NoError(t, err)
	_, err = r.Predict(ctx, m, 0)
	assert.ErrorContains(t, err, "horizon must be positive")
}

func TestSolveSingular(t *testing.T) {
	_, err := solve([][]float64{{1, 2}, {2, 4}}, []float64{1, 2})
	assert.ErrorIs(t, err, ErrNotConverged)

	x, err := solve([][]float64{{2, 1}, {1, 3}}, []float64{3, 5})
	require.NoError(t, err)
	assert.InDelta(t, 0.8, x[0], 1e-9)
	assert.InDelta(t, 1.4, x[1], 1e-9)
}
