package recurring

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/mmynk/splitledger/internal/models"
	"github.com/mmynk/splitledger/internal/storage"
)

// RuleStore is the subset of storage.Store the processor needs.
type RuleStore interface {
	ListRecurringRules(ctx context.Context) ([]models.RecurringRule, error)
	GetExpense(ctx context.Context, expenseID string) (*models.Expense, error)
	CreateExpense(ctx context.Context, expense *models.Expense) error
	UpdateRecurringLastRun(ctx context.Context, ruleID string, lastRun models.Date) error
}

// Processor materializes due occurrences of every stored rule.
type Processor struct {
	store RuleStore
}

// NewProcessor creates a new recurring rule processor.
func NewProcessor(store RuleStore) *Processor {
	return &Processor{store: store}
}

// ProcessDue stores every occurrence due on or before now's date and advances
// each rule's LastRun. Occurrences already stored are skipped, so a run
// interrupted between creating an expense and advancing LastRun is safe to
// repeat. It returns the number of expenses created.
func (p *Processor) ProcessDue(ctx context.Context, now time.Time) (int, error) {
	if p.store == nil {
		return 0, fmt.Errorf("processor not properly initialized")
	}

	rules, err := p.store.ListRecurringRules(ctx)
	if err != nil {
		return 0, fmt.Errorf("failed to list recurring rules: %w", err)
	}

	today := models.DateOf(now)
	slog.InfoContext(ctx, "Processing recurring rules",
		"total_rules", len(rules),
		"processing_date", today.String())

	created := 0
	for _, rule := range rules {
		n, err := p.processRule(ctx, rule, today)
		created += n
		if err != nil {
			slog.ErrorContext(ctx, "Failed to process recurring rule",
				"rule_id", rule.ID,
				"description", rule.Template.Description,
				"error", err)
		}
	}

	slog.InfoContext(ctx, "Recurring rule processing complete",
		"created", created,
		"total_checked", len(rules))

	return created, nil
}

func (p *Processor) processRule(ctx context.Context, rule models.RecurringRule, today models.Date) (int, error) {
	dates := Occurrences(rule, today)
	if len(dates) == 0 {
		return 0, nil
	}

	created := 0
	lastRun := rule.LastRun
	defer func() {
		if !lastRun.After(rule.LastRun) {
			return
		}
		if err := p.store.UpdateRecurringLastRun(ctx, rule.ID, lastRun); err != nil {
			slog.ErrorContext(ctx, "Failed to update last run date",
				"rule_id", rule.ID,
				"error", err)
		}
	}()

	for _, d := range dates {
		if err := ctx.Err(); err != nil {
			return created, err
		}

		expense := Materialize(rule, d)
		_, err := p.store.GetExpense(ctx, expense.ID)
		switch {
		case err == nil:
			lastRun = d
			continue
		case !errors.Is(err, storage.ErrNotFound):
			return created, fmt.Errorf("failed to check expense %s: %w", expense.ID, err)
		}

		if err := p.store.CreateExpense(ctx, &expense); err != nil {
			return created, fmt.Errorf("failed to create expense for %s: %w", d, err)
		}
		lastRun = d
		created++
		slog.InfoContext(ctx, "Created expense from recurring rule",
			"rule_id", rule.ID,
			"expense_id", expense.ID,
			"date", d.String(),
			"amount", expense.Amount.String(),
			"frequency", rule.Frequency)
	}
	return created, nil
}
