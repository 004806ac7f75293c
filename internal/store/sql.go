package store

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"github.com/castlemilk/pfinance-forecast/internal/model"
	"github.com/google/uuid"

	_ "github.com/lib/pq"  // register postgres driver
	_ "modernc.org/sqlite" // register sqlite driver
)

// Dialect selects the SQL driver and placeholder style.
type Dialect string

const (
	DialectSQLite   Dialect = "sqlite"
	DialectPostgres Dialect = "postgres"
)

const dateLayout = "2006-01-02"

const schemaSQL = `
CREATE TABLE IF NOT EXISTS expenses (
	id       TEXT PRIMARY KEY,
	user_id  TEXT NOT NULL,
	category TEXT NOT NULL DEFAULT '',
	date     TEXT,
	amount   DOUBLE PRECISION
);
CREATE INDEX IF NOT EXISTS idx_expenses_user ON expenses (user_id);
CREATE TABLE IF NOT EXISTS prediction_cache (
	user_id     TEXT PRIMARY KEY,
	predictions TEXT NOT NULL,
	computed_at TEXT NOT NULL
);
`

// SQLStore implements Store on database/sql for SQLite and PostgreSQL.
type SQLStore struct {
	db      *sql.DB
	dialect Dialect
}

// OpenSQLite opens or creates the SQLite database at path.
func OpenSQLite(path string) (*SQLStore, error) {
	if dir := filepath.Dir(path); dir != "." {
		if err := os.MkdirAll(dir, 0o750); err != nil {
			return nil, fmt.Errorf("creating database dir: %w", err)
		}
	}
	db, err := sql.Open("sqlite", path+"?_pragma=journal_mode(wal)&_pragma=synchronous(normal)&_pragma=busy_timeout(5000)")
	if err != nil {
		return nil, fmt.Errorf("opening sqlite db: %w", err)
	}
	return newSQLStore(db, DialectSQLite)
}

// OpenPostgres connects to the database described by dsn.
func OpenPostgres(ctx context.Context, dsn string) (*SQLStore, error) {
	db, err := sql.Open("postgres", dsn)
	if err != nil {
		return nil, fmt.Errorf("opening postgres db: %w", err)
	}
	if err := db.PingContext(ctx); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("connecting to postgres: %w", err)
	}
	return newSQLStore(db, DialectPostgres)
}

func newSQLStore(db *sql.DB, dialect Dialect) (*SQLStore, error) {
	// Both drivers accept several statements in one Exec without arguments.
	if _, err := db.Exec(schemaSQL); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("creating schema: %w", err)
	}
	return &SQLStore{db: db, dialect: dialect}, nil
}

// rebind rewrites ? placeholders as $n for PostgreSQL.
func (s *SQLStore) rebind(query string) string {
	if s.dialect != DialectPostgres {
		return query
	}
	var b strings.Builder
	n := 0
	for _, r := range query {
		if r == '?' {
			n++
			b.WriteByte('$')
			b.WriteString(strconv.Itoa(n))
			continue
		}
		b.WriteRune(r)
	}
	return b.String()
}

func (s *SQLStore) CreateExpenses(ctx context.Context, records []*model.ExpenseRecord) error {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return err
	}
	defer func() { _ = tx.Rollback() }()

	stmt, err := tx.PrepareContext(ctx, s.rebind(`INSERT INTO expenses (id, user_id, category, date, amount)
		VALUES (?, ?, ?, ?, ?)
		ON CONFLICT (id) DO UPDATE SET
			user_id = excluded.user_id,
			category = excluded.category,
			date = excluded.date,
			amount = excluded.amount`))
	if err != nil {
		return err
	}
	defer func() { _ = stmt.Close() }()

	for _, r := range records {
		if r == nil {
			continue
		}
		if r.ID == "" {
			r.ID = uuid.New().String()
		}
		var date sql.NullString
		if r.Date != nil {
			date = sql.NullString{String: r.Date.UTC().Format(dateLayout), Valid: true}
		}
		var amount sql.NullFloat64
		if r.Amount != nil {
			amount = sql.NullFloat64{Float64: *r.Amount, Valid: true}
		}
		if _, err := stmt.ExecContext(ctx, r.ID, r.UserID, r.Category, date, amount); err != nil {
			return fmt.Errorf("inserting expense %s: %w", r.ID, err)
		}
	}
	return tx.Commit()
}

func (s *SQLStore) ListExpenses(ctx context.Context, userID string) ([]*model.ExpenseRecord, error) {
	rows, err := s.db.QueryContext(ctx, s.rebind(
		"SELECT id, user_id, category, date, amount FROM expenses WHERE user_id = ? ORDER BY id"), userID)
	if err != nil {
		return nil, err
	}
	defer func() { _ = rows.Close() }()

	var records []*model.ExpenseRecord
	for rows.Next() {
		var (
			r      model.ExpenseRecord
			date   sql.NullString
			amount sql.NullFloat64
		)
		if err := rows.Scan(&r.ID, &r.UserID, &r.Category, &date, &amount); err != nil {
			return nil, err
		}
		if date.Valid {
			d, err := time.Parse(dateLayout, date.String)
			if err != nil {
				return nil, fmt.Errorf("expense %s: invalid date %q: %w", r.ID, date.String, err)
			}
			r.Date = &d
		}
		if amount.Valid {
			a := amount.Float64
			r.Amount = &a
		}
		records = append(records, &r)
	}
	return records, rows.Err()
}

func (s *SQLStore) GetCachedResult(ctx context.Context, userID string) (*model.CachedResult, error) {
	var predictions, computedAt string
	err := s.db.QueryRowContext(ctx, s.rebind(
		"SELECT predictions, computed_at FROM prediction_cache WHERE user_id = ?"), userID).
		Scan(&predictions, &computedAt)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, err
	}

	cached := &model.CachedResult{UserID: userID}
	if err := json.Unmarshal([]byte(predictions), &cached.Predictions); err != nil {
		return nil, fmt.Errorf("decoding cached predictions: %w", err)
	}
	if cached.ComputedAt, err = time.Parse(time.RFC3339Nano, computedAt); err != nil {
		return nil, fmt.Errorf("decoding computed_at: %w", err)
	}
	return cached, nil
}

func (s *SQLStore) UpsertCachedResult(ctx context.Context, result *model.CachedResult) error {
	predictions, err := json.Marshal(result.Predictions)
	if err != nil {
		return fmt.Errorf("encoding predictions: %w", err)
	}
	_, err = s.db.ExecContext(ctx, s.rebind(`INSERT INTO prediction_cache (user_id, predictions, computed_at)
		VALUES (?, ?, ?)
		ON CONFLICT (user_id) DO UPDATE SET
			predictions = excluded.predictions,
			computed_at = excluded.computed_at`),
		result.UserID, string(predictions), result.ComputedAt.UTC().Format(time.RFC3339Nano))
	return err
}

// Close closes the database.
func (s *SQLStore) Close() error {
	return s.db.Close()
}
