// Package cache serves recently computed prediction sets so repeated
// requests inside the freshness window skip recomputation.
package cache

import (
	"context"
	"errors"
	"time"

	"github.com/castlemilk/pfinance-forecast/internal/model"
	"github.com/castlemilk/pfinance-forecast/internal/store"
)

// FreshnessWindow is how long a computed result is served from the cache.
const FreshnessWindow = time.Hour

// ResultCache wraps a CacheStore with the freshness policy. The zero
// value is not usable; call New.
type ResultCache struct {
	store  store.CacheStore
	window time.Duration
	now    func() time.Time
}

// Option configures a ResultCache.
type Option func(*ResultCache)

// WithClock replaces time.Now, for tests.
func WithClock(now func() time.Time) Option {
	return func(c *ResultCache) { c.now = now }
}

// WithWindow overrides FreshnessWindow.
func WithWindow(d time.Duration) Option {
	return func(c *ResultCache) { c.window = d }
}

// New creates a cache over s.
func New(s store.CacheStore, opts ...Option) *ResultCache {
	c := &ResultCache{
		store:  s,
		window: FreshnessWindow,
		now:    time.Now,
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// Get returns the cached predictions for userID when they were computed less
// than the window ago. ok is false on a miss, a stale entry, or an entry
// stamped after the current time.
func (c *ResultCache) Get(ctx context.Context, userID string) (predictions []model.CategoryPrediction, ok bool, err error) {
	cached, err := c.store.GetCachedResult(ctx, userID)
	if errors.Is(err, store.ErrNotFound) {
		return nil, false, nil
	}
	if err != nil {
		return nil, false, store.WrapError("get cached result", err)
	}
	if age := c.now().Sub(cached.ComputedAt); age < 0 || age >= c.window {
		return nil, false, nil
	}
	return cached.Predictions, true, nil
}

// Put records predictions for userID, stamped with the current time.
func (c *ResultCache) Put(ctx context.Context, userID string, predictions []model.CategoryPrediction) error {
	err := c.store.UpsertCachedResult(ctx, &model.CachedResult{
		UserID:      userID,
		Predictions: predictions,
		ComputedAt:  c.now().UTC(),
	})
	return store.WrapError("store cached result", err)
}

// Now returns the cache's notion of the current time.
func (c *ResultCache) Now() time.Time {
	return c.now()
}
