// Package sqlite provides a SQLite-backed implementation of the storage.Store interface.
package sqlite

import (
	"context"
	"database/sql"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/shopspring/decimal"
	_ "modernc.org/sqlite" // Pure Go SQLite driver (no CGO)

	"github.com/mmynk/splitledger/internal/models"
	"github.com/mmynk/splitledger/internal/storage"
)

// Ensure SQLiteStore implements storage.Store
var _ storage.Store = (*SQLiteStore)(nil)

// SQLiteStore implements storage.Store using SQLite.
type SQLiteStore struct {
	db *sql.DB
}

// querier is satisfied by both *sql.DB and *sql.Tx.
type querier interface {
	ExecContext(ctx context.Context, query string, args ...any) (sql.Result, error)
	QueryContext(ctx context.Context, query string, args ...any) (*sql.Rows, error)
	QueryRowContext(ctx context.Context, query string, args ...any) *sql.Row
}

// New creates a new SQLiteStore with the given database path.
// It creates the parent directories and runs migrations automatically.
func New(dbPath string) (*SQLiteStore, error) {
	// Create parent directory if it doesn't exist
	dir := filepath.Dir(dbPath)
	if err := os.MkdirAll(dir, 0755); err != nil {
		return nil, fmt.Errorf("failed to create database directory: %w", err)
	}

	if err := runMigrations(dbPath); err != nil {
		return nil, fmt.Errorf("failed to run migrations: %w", err)
	}

	// Foreign keys are per connection, so enable them for every pooled one.
	db, err := sql.Open("sqlite", dbPath+"?_pragma=foreign_keys(1)&_pragma=busy_timeout(5000)")
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}
	if err := db.Ping(); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to connect to database: %w", err)
	}

	return &SQLiteStore{db: db}, nil
}

// Close closes the database connection.
func (s *SQLiteStore) Close() error {
	return s.db.Close()
}

// Revision returns the write counter.
func (s *SQLiteStore) Revision(ctx context.Context) (int64, error) {
	var rev int64
	if err := s.db.QueryRowContext(ctx, "SELECT revision FROM ledger_meta WHERE id = 1").Scan(&rev); err != nil {
		return 0, fmt.Errorf("failed to read revision: %w", err)
	}
	return rev, nil
}

// bumpRevision must run inside every write transaction.
func bumpRevision(ctx context.Context, tx *sql.Tx) error {
	if _, err := tx.ExecContext(ctx, "UPDATE ledger_meta SET revision = revision + 1 WHERE id = 1"); err != nil {
		return fmt.Errorf("failed to bump revision: %w", err)
	}
	return nil
}

// withTx runs fn in a transaction, committing only if fn succeeds.
func (s *SQLiteStore) withTx(ctx context.Context, fn func(tx *sql.Tx) error) error {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback()

	if err := fn(tx); err != nil {
		return err
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("failed to commit transaction: %w", err)
	}
	return nil
}

// insertMembers writes participants and custom shares into the given tables,
// keyed by ownerCol, preserving their order.
func insertMembers(ctx context.Context, tx *sql.Tx, table, ownerCol, ownerID string, participants []string, shares []models.Share) error {
	for i, name := range participants {
		_, err := tx.ExecContext(ctx,
			fmt.Sprintf("INSERT INTO %s_participants (%s, position, name) VALUES (?, ?, ?)", table, ownerCol),
			ownerID, i, name,
		)
		if err != nil {
			return fmt.Errorf("failed to insert participant: %w", err)
		}
	}
	for i, sh := range shares {
		_, err := tx.ExecContext(ctx,
			fmt.Sprintf("INSERT INTO %s_shares (%s, position, name, value) VALUES (?, ?, ?, ?)", table, ownerCol),
			ownerID, i, sh.Person, sh.Value.String(),
		)
		if err != nil {
			return fmt.Errorf("failed to insert share: %w", err)
		}
	}
	return nil
}

// members holds participants and shares loaded for a batch of owners.
type members struct {
	participants map[string][]string
	shares       map[string][]models.Share
}

// loadMembers reads participants and shares for every owner ID in ids.
func loadMembers(ctx context.Context, q querier, table, ownerCol string, ids []string) (members, error) {
	m := members{
		participants: make(map[string][]string, len(ids)),
		shares:       make(map[string][]models.Share),
	}
	for start := 0; start < len(ids); start += batchSize {
		batch := ids[start:min(start+batchSize, len(ids))]
		args := make([]any, len(batch))
		for i, id := range batch {
			args[i] = id
		}
		in := repeatPlaceholder(len(batch))

		rows, err := q.QueryContext(ctx,
			fmt.Sprintf("SELECT %[2]s, name FROM %[1]s_participants WHERE %[2]s IN (%[3]s) ORDER BY %[2]s, position", table, ownerCol, in),
			args...,
		)
		if err != nil {
			return m, fmt.Errorf("failed to get participants: %w", err)
		}
		for rows.Next() {
			var owner, name string
			if err := rows.Scan(&owner, &name); err != nil {
				rows.Close()
				return m, fmt.Errorf("failed to scan participant: %w", err)
			}
			m.participants[owner] = append(m.participants[owner], name)
		}
		rows.Close()
		if err := rows.Err(); err != nil {
			return m, fmt.Errorf("failed to iterate participants: %w", err)
		}

		rows, err = q.QueryContext(ctx,
			fmt.Sprintf("SELECT %[2]s, name, value FROM %[1]s_shares WHERE %[2]s IN (%[3]s) ORDER BY %[2]s, position", table, ownerCol, in),
			args...,
		)
		if err != nil {
			return m, fmt.Errorf("failed to get shares: %w", err)
		}
		for rows.Next() {
			var owner, name, value string
			if err := rows.Scan(&owner, &name, &value); err != nil {
				rows.Close()
				return m, fmt.Errorf("failed to scan share: %w", err)
			}
			v, err := decimal.NewFromString(value)
			if err != nil {
				rows.Close()
				return m, fmt.Errorf("failed to parse share value %q: %w", value, err)
			}
			m.shares[owner] = append(m.shares[owner], models.Share{Person: name, Value: v})
		}
		rows.Close()
		if err := rows.Err(); err != nil {
			return m, fmt.Errorf("failed to iterate shares: %w", err)
		}
	}
	return m, nil
}

// batchSize bounds the number of bound parameters in one IN clause.
const batchSize = 500

// repeatPlaceholder returns "?, ?, ?" with n placeholders.
func repeatPlaceholder(n int) string {
	if n <= 0 {
		return ""
	}
	return strings.Repeat("?, ", n-1) + "?"
}
