package sqlite

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/mmynk/splitledger/internal/models"
	"github.com/mmynk/splitledger/internal/storage"
)

// CreateRecurringRule persists a new recurring rule.
func (s *SQLiteStore) CreateRecurringRule(ctx context.Context, rule *models.RecurringRule) error {
	if rule.ID == "" {
		rule.ID = uuid.New().String()
	}
	if rule.CreatedAt == 0 {
		rule.CreatedAt = time.Now().Unix()
	}

	t := rule.Template
	return s.withTx(ctx, func(tx *sql.Tx) error {
		_, err := tx.ExecContext(ctx,
			`INSERT INTO recurring_rules
			 (id, amount, description, paid_by, share_type, category, frequency, start_date, end_date, last_run, created_at)
			 VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
			rule.ID, int64(t.Amount), t.Description, t.PaidBy, string(t.ShareType), t.Category,
			string(rule.Frequency), rule.StartDate.String(), rule.EndDate.String(), rule.LastRun.String(),
			rule.CreatedAt,
		)
		if err != nil {
			return fmt.Errorf("failed to insert recurring rule: %w", err)
		}

		if err := insertMembers(ctx, tx, "recurring", "rule_id", rule.ID, t.Participants, t.CustomShares); err != nil {
			return err
		}
		return bumpRevision(ctx, tx)
	})
}

// ListRecurringRules returns all rules, oldest first.
func (s *SQLiteStore) ListRecurringRules(ctx context.Context) ([]models.RecurringRule, error) {
	var rules []models.RecurringRule
	err := s.withTx(ctx, func(tx *sql.Tx) error {
		rows, err := tx.QueryContext(ctx,
			`SELECT id, amount, description, paid_by, share_type, category, frequency, start_date, end_date, last_run, created_at
			 FROM recurring_rules ORDER BY created_at, id`,
		)
		if err != nil {
			return fmt.Errorf("failed to list recurring rules: %w", err)
		}
		rules, err = scanRules(rows)
		if err != nil {
			return err
		}

		ids := make([]string, len(rules))
		for i, r := range rules {
			ids[i] = r.ID
		}
		m, err := loadMembers(ctx, tx, "recurring", "rule_id", ids)
		if err != nil {
			return err
		}
		for i := range rules {
			rules[i].Template.Participants = m.participants[rules[i].ID]
			rules[i].Template.CustomShares = m.shares[rules[i].ID]
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return rules, nil
}

// UpdateRecurringLastRun records the last materialized occurrence of a rule.
func (s *SQLiteStore) UpdateRecurringLastRun(ctx context.Context, ruleID string, lastRun models.Date) error {
	return s.withTx(ctx, func(tx *sql.Tx) error {
		res, err := tx.ExecContext(ctx,
			"UPDATE recurring_rules SET last_run = ? WHERE id = ?",
			lastRun.String(), ruleID,
		)
		if err != nil {
			return fmt.Errorf("failed to update last run: %w", err)
		}
		n, err := res.RowsAffected()
		if err != nil {
			return fmt.Errorf("failed to check updated rows: %w", err)
		}
		if n == 0 {
			return fmt.Errorf("%w: recurring rule %s", storage.ErrNotFound, ruleID)
		}
		return bumpRevision(ctx, tx)
	})
}

func scanRules(rows *sql.Rows) ([]models.RecurringRule, error) {
	defer rows.Close()

	rules := []models.RecurringRule{}
	for rows.Next() {
		var (
			r                        models.RecurringRule
			amount                   int64
			shareType, frequency     string
			startDate, endDate, last string
		)
		if err := rows.Scan(&r.ID, &amount, &r.Template.Description, &r.Template.PaidBy, &shareType,
			&r.Template.Category, &frequency, &startDate, &endDate, &last, &r.CreatedAt); err != nil {
			return nil, fmt.Errorf("failed to scan recurring rule: %w", err)
		}

		var err error
		if r.StartDate, err = models.ParseDate(startDate); err != nil {
			return nil, fmt.Errorf("failed to parse start date of rule %s: %w", r.ID, err)
		}
		if r.EndDate, err = models.ParseDate(endDate); err != nil {
			return nil, fmt.Errorf("failed to parse end date of rule %s: %w", r.ID, err)
		}
		if r.LastRun, err = models.ParseDate(last); err != nil {
			return nil, fmt.Errorf("failed to parse last run of rule %s: %w", r.ID, err)
		}
		r.Template.Amount = models.Amount(amount)
		r.Template.ShareType = models.ShareType(shareType)
		r.Frequency = models.Frequency(frequency)
		rules = append(rules, r)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate recurring rules: %w", err)
	}
	return rules, nil
}
