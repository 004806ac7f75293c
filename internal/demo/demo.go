// Package demo generates a reproducible expense history for trying the
// forecaster against an empty store.
package demo

import (
	"fmt"
	"math/rand/v2"
	"time"

	"github.com/castlemilk/pfinance-forecast/internal/model"
	"github.com/google/uuid"
)

type profile struct {
	category string
	min, max int
}

// Variable spending, drawn PerMonth times a month.
var profiles = []profile{
	{"Groceries", 5, 25},
	{"Transport", 10, 40},
	{"Leisure", 20, 100},
	{"Health", 10, 60},
	{"Shopping", 15, 120},
}

// Fixed monthly charges: category, day of month, amount.
var fixed = []struct {
	category string
	day      int
	amount   float64
}{
	{"Rent", 1, 450},
	{"Subscription", 5, 15},
}

var idNamespace = uuid.MustParse("6f1b8a52-3c1e-4f0a-9d8e-2b7c4a1e5f30")

// Options shapes the generated history.
type Options struct {
	Months   int
	PerMonth int
	Seed     uint64
}

// DefaultOptions covers a year with six draws per category and month.
func DefaultOptions() Options {
	return Options{Months: 12, PerMonth: 6, Seed: 42}
}

// Generate returns the history of userID for the Months full months before
// now plus the current month up to now. Identical arguments yield identical
// records, IDs included.
func Generate(userID string, now time.Time, opts Options) []*model.ExpenseRecord {
	if opts.Months <= 0 {
		opts.Months = DefaultOptions().Months
	}
	if opts.PerMonth <= 0 {
		opts.PerMonth = DefaultOptions().PerMonth
	}
	rng := rand.New(rand.NewPCG(opts.Seed, opts.Seed^0x9e3779b97f4a7c15))
	today := model.Day(now)
	start := model.MonthStart(now).AddDate(0, -opts.Months, 0)

	var records []*model.ExpenseRecord
	add := func(category string, d time.Time, amount float64) {
		if d.After(today) {
			return
		}
		id := uuid.NewSHA1(idNamespace, []byte(fmt.Sprintf("%s/%d", userID, len(records))))
		records = append(records, &model.ExpenseRecord{
			ID:       id.String(),
			UserID:   userID,
			Category: category,
			Date:     &d,
			Amount:   &amount,
		})
	}

	for i := 0; i <= opts.Months; i++ {
		month := start.AddDate(0, i, 0)
		for _, f := range fixed {
			add(f.category, month.AddDate(0, 0, f.day-1), f.amount)
		}
		for j := 0; j < opts.PerMonth; j++ {
			// Days 1..28 exist in every month.
			d := month.AddDate(0, 0, rng.IntN(28))
			for _, p := range profiles {
				add(p.category, d, float64(rng.IntN(p.max-p.min+1)+p.min))
			}
		}
	}
	return records
}
