// Package storage provides abstractions for persistent data storage.
package storage

import (
	"context"
	"errors"

	"github.com/mmynk/splitledger/internal/models"
)

// ErrNotFound is returned when a requested record does not exist.
var ErrNotFound = errors.New("not found")

// ExpenseFilter narrows ListExpenses. Zero fields match everything.
type ExpenseFilter struct {
	// From and To bound the expense date, inclusive.
	From models.Date
	To   models.Date

	// Person matches expenses the person paid for or participates in.
	Person string

	Category string
}

// Store defines the interface for expense storage operations.
// This abstraction allows swapping storage backends (SQLite, PostgreSQL, etc.)
// without changing the service layer.
type Store interface {
	// CreateExpense persists a new expense. An empty expense.ID is populated by
	// the store; a preset ID is kept.
	CreateExpense(ctx context.Context, expense *models.Expense) error

	// GetExpense retrieves an expense by its ID.
	// Returns ErrNotFound if the expense does not exist.
	GetExpense(ctx context.Context, expenseID string) (*models.Expense, error)

	// ListExpenses returns the matching expenses ordered by date, then ID. All
	// rows are read in one transaction, so the result is a consistent snapshot.
	ListExpenses(ctx context.Context, filter ExpenseFilter) ([]models.Expense, error)

	// DeleteExpense removes an expense.
	// Returns ErrNotFound if the expense does not exist.
	DeleteExpense(ctx context.Context, expenseID string) error

	// ListPeople returns every identifier seen as payer or participant, in
	// canonical order.
	ListPeople(ctx context.Context) ([]string, error)

	// CreateRecurringRule persists a new rule. rule.ID and rule.CreatedAt are
	// populated by the store.
	CreateRecurringRule(ctx context.Context, rule *models.RecurringRule) error

	// ListRecurringRules returns all rules ordered by creation time.
	ListRecurringRules(ctx context.Context) ([]models.RecurringRule, error)

	// UpdateRecurringLastRun records the date of the last materialized occurrence.
	// Returns ErrNotFound if the rule does not exist.
	UpdateRecurringLastRun(ctx context.Context, ruleID string, lastRun models.Date) error

	// Revision returns a counter that changes on every write. Callers use it
	// to key cached results.
	Revision(ctx context.Context) (int64, error)

	// Close releases any resources held by the store.
	Close() error
}
