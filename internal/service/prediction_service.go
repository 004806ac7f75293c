package service

import (
	"context"
	"errors"
	"strings"

	"github.com/castlemilk/pfinance-forecast/internal/cache"
	"github.com/castlemilk/pfinance-forecast/internal/forecast"
	"github.com/castlemilk/pfinance-forecast/internal/model"
	"github.com/castlemilk/pfinance-forecast/internal/store"
	"github.com/sirupsen/logrus"
)

var (
	// ErrNoData means the user has no expense records at all.
	ErrNoData = errors.New("no expenses found for user")
	// ErrMissingUserID is returned for an empty user identifier.
	ErrMissingUserID = errors.New("user_id is required")
)

// PredictionService runs the forecasting pipeline for one user per request:
// cache lookup, expense fetch, per-category forecast, cache write.
type PredictionService struct {
	expenses   store.ExpenseStore
	cache      *cache.ResultCache
	forecaster *forecast.Forecaster
	log        *logrus.Logger
}

// NewPredictionService wires the pipeline. cacheOpts tune the result cache.
func NewPredictionService(s store.Store, f *forecast.Forecaster, log *logrus.Logger, cacheOpts ...cache.Option) *PredictionService {
	if log == nil {
		log = logrus.StandardLogger()
	}
	return &PredictionService{
		expenses:   s,
		cache:      cache.New(s, cacheOpts...),
		forecaster: f,
		log:        log,
	}
}

// Predict returns the next-month predictions for userID, from the cache when
// a fresh entry exists.
func (s *PredictionService) Predict(ctx context.Context, userID string) ([]model.CategoryPrediction, error) {
	userID = strings.TrimSpace(userID)
	if userID == "" {
		return nil, ErrMissingUserID
	}
	log := loggerFrom(ctx, s.log).WithField("user_id", userID)

	cached, ok, err := s.cache.Get(ctx, userID)
	if err != nil {
		return nil, err
	}
	if ok {
		log.Debug("serving cached predictions")
		return cached, nil
	}

	records, err := s.expenses.ListExpenses(ctx, userID)
	if err != nil {
		return nil, store.WrapError("list expenses", err)
	}
	if len(records) == 0 {
		return nil, ErrNoData
	}

	now := s.cache.Now()
	predictions := s.forecaster.PredictAll(ctx, forecast.GroupByCategory(records), now)

	if err := s.cache.Put(ctx, userID, predictions); err != nil {
		return nil, err
	}

	failed := 0
	for _, p := range predictions {
		if p.Failed() {
			failed++
		}
	}
	log.WithFields(logrus.Fields{
		"records":    len(records),
		"categories": len(predictions),
		"failed":     failed,
	}).Info("predictions computed")
	return predictions, nil
}
