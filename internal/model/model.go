// Package model holds the data types shared by the forecaster, the stores and
// the request surface.
package model

import (
	"encoding/json"
	"time"
)

// ExpenseRecord is a single expense as read from the expense store.
// A nil Date or Amount marks a record that cannot be forecast.
type ExpenseRecord struct {
	ID       string     `json:"id" firestore:"id"`
	UserID   string     `json:"user_id" firestore:"userId"`
	Category string     `json:"category" firestore:"category"`
	Date     *time.Time `json:"date,omitempty" firestore:"date"`
	Amount   *float64   `json:"amount,omitempty" firestore:"amount"`
}

// CategoryPrediction is the forecast for one category. Error is set instead of
// PredictedTotal/Explanation when the forecast for that category failed.
type CategoryPrediction struct {
	Category       string  `json:"category" firestore:"category"`
	PredictedTotal float64 `json:"predicted_total" firestore:"predictedTotal"`
	Explanation    string  `json:"explanation,omitempty" firestore:"explanation,omitempty"`
	Error          string  `json:"error,omitempty" firestore:"error,omitempty"`
}

// Failed reports whether the prediction carries a per-category error.
func (p CategoryPrediction) Failed() bool {
	return p.Error != ""
}

// MarshalJSON emits {category, error} for failed predictions and
// {category, predicted_total, explanation} otherwise.
func (p CategoryPrediction) MarshalJSON() ([]byte, error) {
	if p.Failed() {
		return json.Marshal(struct {
			Category string `json:"category"`
			Error    string `json:"error"`
		}{p.Category, p.Error})
	}
	return json.Marshal(struct {
		Category       string  `json:"category"`
		PredictedTotal float64 `json:"predicted_total"`
		Explanation    string  `json:"explanation"`
	}{p.Category, p.PredictedTotal, p.Explanation})
}

// CachedResult is the last computed prediction set for a user.
type CachedResult struct {
	UserID      string               `json:"user_id" firestore:"userId"`
	Predictions []CategoryPrediction `json:"predictions" firestore:"predictions"`
	ComputedAt  time.Time            `json:"computed_at" firestore:"computedAt"`
}

// Day truncates t to its calendar date in UTC.
func Day(t time.Time) time.Time {
	t = t.UTC()
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC)
}

// MonthStart returns the first day of t's month in UTC.
func MonthStart(t time.Time) time.Time {
	t = t.UTC()
	return time.Date(t.Year(), t.Month(), 1, 0, 0, 0, 0, time.UTC)
}

// SameMonth reports whether a and b fall in the same calendar month.
func SameMonth(a, b time.Time) bool {
	a, b = a.UTC(), b.UTC()
	return a.Year() == b.Year() && a.Month() == b.Month()
}
