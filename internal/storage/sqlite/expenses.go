package sqlite

import (
	"context"
	"database/sql"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/mmynk/splitledger/internal/models"
	"github.com/mmynk/splitledger/internal/storage"
)

const expenseColumns = "id, amount, description, paid_by, share_type, category, date"

// CreateExpense persists a new expense to the database.
func (s *SQLiteStore) CreateExpense(ctx context.Context, expense *models.Expense) error {
	// Generate ID if not set
	if expense.ID == "" {
		expense.ID = uuid.New().String()
	}

	return s.withTx(ctx, func(tx *sql.Tx) error {
		_, err := tx.ExecContext(ctx,
			`INSERT INTO expenses (id, amount, description, paid_by, share_type, category, date, created_at)
			 VALUES (?, ?, ?, ?, ?, ?, ?, ?)`,
			expense.ID, int64(expense.Amount), expense.Description, expense.PaidBy,
			string(expense.ShareType), expense.Category, expense.Date.String(), time.Now().Unix(),
		)
		if err != nil {
			return fmt.Errorf("failed to insert expense: %w", err)
		}

		if err := insertMembers(ctx, tx, "expense", "expense_id", expense.ID, expense.Participants, expense.CustomShares); err != nil {
			return err
		}
		return bumpRevision(ctx, tx)
	})
}

// GetExpense retrieves an expense by ID, including participants and shares.
func (s *SQLiteStore) GetExpense(ctx context.Context, expenseID string) (*models.Expense, error) {
	rows, err := s.db.QueryContext(ctx,
		"SELECT "+expenseColumns+" FROM expenses WHERE id = ?",
		expenseID,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to get expense: %w", err)
	}
	expenses, err := scanExpenses(rows)
	if err != nil {
		return nil, err
	}
	if len(expenses) == 0 {
		return nil, fmt.Errorf("%w: expense %s", storage.ErrNotFound, expenseID)
	}

	if err := attachMembers(ctx, s.db, expenses); err != nil {
		return nil, err
	}
	return &expenses[0], nil
}

// ListExpenses returns the expenses matching filter, ordered by date then ID.
func (s *SQLiteStore) ListExpenses(ctx context.Context, filter storage.ExpenseFilter) ([]models.Expense, error) {
	var (
		where []string
		args  []any
	)
	if !filter.From.IsZero() {
		where = append(where, "e.date >= ?")
		args = append(args, filter.From.String())
	}
	if !filter.To.IsZero() {
		where = append(where, "e.date <= ?")
		args = append(args, filter.To.String())
	}
	if filter.Category != "" {
		where = append(where, "e.category = ?")
		args = append(args, filter.Category)
	}
	if filter.Person != "" {
		where = append(where,
			"(e.paid_by = ? OR EXISTS (SELECT 1 FROM expense_participants p WHERE p.expense_id = e.id AND p.name = ?))")
		args = append(args, filter.Person, filter.Person)
	}

	query := "SELECT " + prefixColumns("e.", expenseColumns) + " FROM expenses e"
	if len(where) > 0 {
		query += " WHERE " + strings.Join(where, " AND ")
	}
	query += " ORDER BY e.date, e.id"

	var expenses []models.Expense
	// One transaction so expense rows and their members come from the same snapshot.
	err := s.withTx(ctx, func(tx *sql.Tx) error {
		rows, err := tx.QueryContext(ctx, query, args...)
		if err != nil {
			return fmt.Errorf("failed to list expenses: %w", err)
		}
		expenses, err = scanExpenses(rows)
		if err != nil {
			return err
		}
		return attachMembers(ctx, tx, expenses)
	})
	if err != nil {
		return nil, err
	}
	return expenses, nil
}

// DeleteExpense removes an expense and its participants and shares.
func (s *SQLiteStore) DeleteExpense(ctx context.Context, expenseID string) error {
	return s.withTx(ctx, func(tx *sql.Tx) error {
		res, err := tx.ExecContext(ctx, "DELETE FROM expenses WHERE id = ?", expenseID)
		if err != nil {
			return fmt.Errorf("failed to delete expense: %w", err)
		}
		n, err := res.RowsAffected()
		if err != nil {
			return fmt.Errorf("failed to check deleted rows: %w", err)
		}
		if n == 0 {
			return fmt.Errorf("%w: expense %s", storage.ErrNotFound, expenseID)
		}
		return bumpRevision(ctx, tx)
	})
}

// ListPeople returns everyone who paid for or shares an expense.
func (s *SQLiteStore) ListPeople(ctx context.Context) ([]string, error) {
	rows, err := s.db.QueryContext(ctx,
		"SELECT paid_by FROM expenses UNION SELECT name FROM expense_participants",
	)
	if err != nil {
		return nil, fmt.Errorf("failed to list people: %w", err)
	}
	defer rows.Close()

	people := []string{}
	for rows.Next() {
		var name string
		if err := rows.Scan(&name); err != nil {
			return nil, fmt.Errorf("failed to scan person: %w", err)
		}
		people = append(people, name)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate people: %w", err)
	}

	models.SortPeople(people)
	return people, nil
}

// scanExpenses reads expense rows and closes them.
func scanExpenses(rows *sql.Rows) ([]models.Expense, error) {
	defer rows.Close()

	expenses := []models.Expense{}
	for rows.Next() {
		var (
			e         models.Expense
			amount    int64
			shareType string
			date      string
		)
		if err := rows.Scan(&e.ID, &amount, &e.Description, &e.PaidBy, &shareType, &e.Category, &date); err != nil {
			return nil, fmt.Errorf("failed to scan expense: %w", err)
		}
		d, err := models.ParseDate(date)
		if err != nil {
			return nil, fmt.Errorf("failed to parse date of expense %s: %w", e.ID, err)
		}
		e.Amount = models.Amount(amount)
		e.ShareType = models.ShareType(shareType)
		e.Date = d
		expenses = append(expenses, e)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate expenses: %w", err)
	}
	return expenses, nil
}

func attachMembers(ctx context.Context, q querier, expenses []models.Expense) error {
	if len(expenses) == 0 {
		return nil
	}
	ids := make([]string, len(expenses))
	for i, e := range expenses {
		ids[i] = e.ID
	}

	m, err := loadMembers(ctx, q, "expense", "expense_id", ids)
	if err != nil {
		return err
	}
	for i := range expenses {
		expenses[i].Participants = m.participants[expenses[i].ID]
		expenses[i].CustomShares = m.shares[expenses[i].ID]
	}
	return nil
}

func prefixColumns(prefix, columns string) string {
	cols := strings.Split(columns, ", ")
	for i, c := range cols {
		cols[i] = prefix + c
	}
	return strings.Join(cols, ", ")
}
