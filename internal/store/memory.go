package store

import (
	"context"
	"sort"
	"sync"

	"github.com/castlemilk/pfinance-forecast/internal/model"
	"github.com/google/uuid"
)

// MemoryStore implements Store interface with in-memory storage
type MemoryStore struct {
	mu sync.RWMutex

	expenses map[string]*model.ExpenseRecord
	cache    map[string]*model.CachedResult
}

// NewMemoryStore creates a new in-memory store
func NewMemoryStore() *MemoryStore {
	return &MemoryStore{
		expenses: make(map[string]*model.ExpenseRecord),
		cache:    make(map[string]*model.CachedResult),
	}
}

// Expense operations

func (m *MemoryStore) CreateExpenses(ctx context.Context, records []*model.ExpenseRecord) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	for _, r := range records {
		if r == nil {
			continue
		}
		if r.ID == "" {
			r.ID = uuid.New().String()
		}
		m.expenses[r.ID] = copyRecord(r)
	}
	return nil
}

func (m *MemoryStore) ListExpenses(ctx context.Context, userID string) ([]*model.ExpenseRecord, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	var ids []string
	for id, r := range m.expenses {
		if r.UserID == userID {
			ids = append(ids, id)
		}
	}
	sort.Strings(ids)

	result := make([]*model.ExpenseRecord, 0, len(ids))
	for _, id := range ids {
		result = append(result, copyRecord(m.expenses[id]))
	}
	return result, nil
}

// Cache operations

func (m *MemoryStore) GetCachedResult(ctx context.Context, userID string) (*model.CachedResult, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	cached, ok := m.cache[userID]
	if !ok {
		return nil, ErrNotFound
	}
	return copyResult(cached), nil
}

func (m *MemoryStore) UpsertCachedResult(ctx context.Context, result *model.CachedResult) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.cache[result.UserID] = copyResult(result)
	return nil
}

func (m *MemoryStore) Close() error {
	return nil
}

func copyRecord(r *model.ExpenseRecord) *model.ExpenseRecord {
	out := *r
	if r.Date != nil {
		d := *r.Date
		out.Date = &d
	}
	if r.Amount != nil {
		a := *r.Amount
		out.Amount = &a
	}
	return &out
}

func copyResult(r *model.CachedResult) *model.CachedResult {
	out := *r
	if r.Predictions != nil {
		out.Predictions = make([]model.CategoryPrediction, len(r.Predictions))
		copy(out.Predictions, r.Predictions)
	}
	return &out
}
