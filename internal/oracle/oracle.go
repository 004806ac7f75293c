// Package oracle defines the fit/predict contract of the time-series model used
// by the forecaster, and a default additive regression implementation.
package oracle

import (
	"context"
	"time"

	"github.com/castlemilk/pfinance-forecast/internal/calendar"
)

// Point is a dated value, either observed or predicted.
type Point struct {
	Date  time.Time
	Value float64
}

// Model is an opaque fitted model; only the Oracle that produced it can use it.
type Model interface{}

// Oracle fits a model to a daily series and predicts future daily values.
// Predict returns one point per day for the horizonDays days following the
// last fitted date.
type Oracle interface {
	Fit(ctx context.Context, series []Point, events []calendar.Event) (Model, error)
	Predict(ctx context.Context, model Model, horizonDays int) ([]Point, error)
}
