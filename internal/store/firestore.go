package store

import (
	"context"
	"errors"
	"fmt"

	"cloud.google.com/go/firestore"
	"github.com/castlemilk/pfinance-forecast/internal/model"
	"github.com/google/uuid"
	"google.golang.org/api/iterator"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"
)

const (
	expensesCollection = "expenses"
	cacheCollection    = "prediction_cache"
)

// FirestoreStore implements the Store interface using Firestore
type FirestoreStore struct {
	client *firestore.Client
}

// NewFirestoreStore creates a new Firestore-backed store
func NewFirestoreStore(client *firestore.Client) *FirestoreStore {
	return &FirestoreStore{
		client: client,
	}
}

// CreateExpenses writes records to Firestore, keyed by record ID
func (s *FirestoreStore) CreateExpenses(ctx context.Context, records []*model.ExpenseRecord) error {
	for _, r := range records {
		if r == nil {
			continue
		}
		if r.ID == "" {
			r.ID = uuid.New().String()
		}
		if _, err := s.client.Collection(expensesCollection).Doc(r.ID).Set(ctx, r); err != nil {
			return fmt.Errorf("failed to write expense %s: %w", r.ID, err)
		}
	}
	return nil
}

// ListExpenses lists a user's expenses from Firestore
func (s *FirestoreStore) ListExpenses(ctx context.Context, userID string) ([]*model.ExpenseRecord, error) {
	// Field names follow the firestore struct tags on model.ExpenseRecord.
	iter := s.client.Collection(expensesCollection).
		Where("userId", "==", userID).
		Documents(ctx)
	defer iter.Stop()

	var records []*model.ExpenseRecord
	for {
		doc, err := iter.Next()
		if errors.Is(err, iterator.Done) {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("failed to list expenses: %w", err)
		}

		var r model.ExpenseRecord
		if err := doc.DataTo(&r); err != nil {
			return nil, fmt.Errorf("failed to parse expense %s: %w", doc.Ref.ID, err)
		}
		r.ID = doc.Ref.ID
		records = append(records, &r)
	}
	return records, nil
}

// GetCachedResult reads the cache document whose ID is the user ID
func (s *FirestoreStore) GetCachedResult(ctx context.Context, userID string) (*model.CachedResult, error) {
	doc, err := s.client.Collection(cacheCollection).Doc(userID).Get(ctx)
	if status.Code(err) == codes.NotFound {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get cached result: %w", err)
	}

	var cached model.CachedResult
	if err := doc.DataTo(&cached); err != nil {
		return nil, fmt.Errorf("failed to parse cached result: %w", err)
	}
	return &cached, nil
}

// UpsertCachedResult overwrites the user's cache document
func (s *FirestoreStore) UpsertCachedResult(ctx context.Context, result *model.CachedResult) error {
	_, err := s.client.Collection(cacheCollection).Doc(result.UserID).Set(ctx, result)
	return err
}

// Close releases the Firestore client
func (s *FirestoreStore) Close() error {
	return s.client.Close()
}
