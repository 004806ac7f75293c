package store

import (
	"context"
	"errors"
	"fmt"

	"github.com/castlemilk/pfinance-forecast/internal/model"
)

//go:generate mockgen -source=store.go -destination=store_mock.go -package=store

// ErrNotFound is returned when a requested document does not exist.
var ErrNotFound = errors.New("not found")

// ExpenseStore reads and seeds the raw expense history.
type ExpenseStore interface {
	// ListExpenses returns every expense of userID. An unknown user yields an
	// empty slice, not an error.
	ListExpenses(ctx context.Context, userID string) ([]*model.ExpenseRecord, error)
	// CreateExpenses inserts records, replacing any with the same ID. Records
	// without an ID are given one.
	CreateExpenses(ctx context.Context, records []*model.ExpenseRecord) error
}

// CacheStore keeps the last computed prediction set per user.
type CacheStore interface {
	// GetCachedResult returns ErrNotFound when userID has no entry.
	GetCachedResult(ctx context.Context, userID string) (*model.CachedResult, error)
	// UpsertCachedResult replaces the entry for result.UserID.
	UpsertCachedResult(ctx context.Context, result *model.CachedResult) error
}

// Store defines the interface for all database operations used by the service
type Store interface {
	ExpenseStore
	CacheStore
	Close() error
}

// WrapError annotates err with the failed operation, keeping ErrNotFound
// reachable through errors.Is.
func WrapError(op string, err error) error {
	if err == nil {
		return nil
	}
	return fmt.Errorf("failed to %s: %w", op, err)
}
