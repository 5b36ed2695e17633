package service

import (
	"context"
	"errors"
	"log/slog"
	"strings"

	"connectrpc.com/connect"

	"github.com/mmynk/splitledger/internal/calculator"
	"github.com/mmynk/splitledger/internal/middleware"
	"github.com/mmynk/splitledger/internal/models"
	"github.com/mmynk/splitledger/internal/storage"
	"github.com/mmynk/splitledger/pkg/api/ledgerv1"
)

// ExpenseService implements the Connect ExpenseService.
type ExpenseService struct {
	ledgerv1.UnimplementedExpenseServiceHandler
	store storage.Store
}

// NewExpenseService creates a new ExpenseService with the given storage backend.
func NewExpenseService(store storage.Store) *ExpenseService {
	return &ExpenseService{store: store}
}

// prepareExpense normalizes an incoming expense and rejects it unless its
// shares reconcile with its amount, so stored expenses always split cleanly.
func prepareExpense(in models.Expense) (models.Expense, error) {
	e, err := models.NewExpense(in)
	if err != nil {
		return models.Expense{}, err
	}
	if _, err := calculator.CalculateSplit(e); err != nil {
		return models.Expense{}, err
	}
	return e, nil
}

// CreateExpense validates and stores a new expense.
func (s *ExpenseService) CreateExpense(ctx context.Context, req *connect.Request[ledgerv1.CreateExpenseRequest]) (*connect.Response[ledgerv1.CreateExpenseResponse], error) {
	in := req.Msg.Expense
	in.ID = "" // assigned by the store

	expense, err := prepareExpense(in)
	if err != nil {
		return nil, connect.NewError(connect.CodeInvalidArgument, err)
	}

	if err := s.store.CreateExpense(ctx, &expense); err != nil {
		slog.Error("Failed to create expense", "error", err)
		return nil, connect.NewError(connect.CodeInternal, err)
	}

	slog.Info("Expense created",
		"expense_id", expense.ID,
		"amount", expense.Amount.String(),
		"paid_by", expense.PaidBy,
		"participants", len(expense.Participants),
		"share_type", expense.ShareType,
		"user_id", middleware.GetUserID(ctx),
	)

	return connect.NewResponse(&ledgerv1.CreateExpenseResponse{Expense: expense}), nil
}

// GetExpense retrieves a stored expense.
func (s *ExpenseService) GetExpense(ctx context.Context, req *connect.Request[ledgerv1.GetExpenseRequest]) (*connect.Response[ledgerv1.GetExpenseResponse], error) {
	id := strings.TrimSpace(req.Msg.ID)
	if id == "" {
		return nil, connect.NewError(connect.CodeInvalidArgument, errors.New("id is required"))
	}

	expense, err := s.store.GetExpense(ctx, id)
	if err != nil {
		return nil, toConnectError(err)
	}

	return connect.NewResponse(&ledgerv1.GetExpenseResponse{Expense: *expense}), nil
}

// ListExpenses returns stored expenses matching the filter, ordered by date.
func (s *ExpenseService) ListExpenses(ctx context.Context, req *connect.Request[ledgerv1.ListExpensesRequest]) (*connect.Response[ledgerv1.ListExpensesResponse], error) {
	filter, err := storageFilter(req.Msg.Filter)
	if err != nil {
		return nil, toConnectError(err)
	}

	expenses, err := s.store.ListExpenses(ctx, filter)
	if err != nil {
		slog.Error("Failed to list expenses", "error", err)
		return nil, toConnectError(err)
	}

	return connect.NewResponse(&ledgerv1.ListExpensesResponse{Expenses: expenses}), nil
}

// DeleteExpense removes a stored expense.
func (s *ExpenseService) DeleteExpense(ctx context.Context, req *connect.Request[ledgerv1.DeleteExpenseRequest]) (*connect.Response[ledgerv1.DeleteExpenseResponse], error) {
	id := strings.TrimSpace(req.Msg.ID)
	if id == "" {
		return nil, connect.NewError(connect.CodeInvalidArgument, errors.New("id is required"))
	}

	if err := s.store.DeleteExpense(ctx, id); err != nil {
		return nil, toConnectError(err)
	}

	slog.Info("Expense deleted", "expense_id", id, "user_id", middleware.GetUserID(ctx))
	return connect.NewResponse(&ledgerv1.DeleteExpenseResponse{}), nil
}

// ListPeople returns every person seen on a stored expense.
func (s *ExpenseService) ListPeople(ctx context.Context, req *connect.Request[ledgerv1.ListPeopleRequest]) (*connect.Response[ledgerv1.ListPeopleResponse], error) {
	people, err := s.store.ListPeople(ctx)
	if err != nil {
		slog.Error("Failed to list people", "error", err)
		return nil, toConnectError(err)
	}
	return connect.NewResponse(&ledgerv1.ListPeopleResponse{People: people}), nil
}

// CreateRecurringRule validates and stores a recurring rule. Its occurrences
// are materialized by the recurring worker.
func (s *ExpenseService) CreateRecurringRule(ctx context.Context, req *connect.Request[ledgerv1.CreateRecurringRuleRequest]) (*connect.Response[ledgerv1.CreateRecurringRuleResponse], error) {
	rule := req.Msg.Rule
	rule.ID = ""
	rule.LastRun = models.Date{}
	rule.CreatedAt = 0

	tmpl := rule.Template
	tmpl.ID = ""
	tmpl.Date = rule.StartDate
	tmpl, err := prepareExpense(tmpl)
	if err != nil {
		return nil, connect.NewError(connect.CodeInvalidArgument, err)
	}
	tmpl.Date = models.Date{}
	rule.Template = tmpl

	if err := rule.Validate(); err != nil {
		return nil, connect.NewError(connect.CodeInvalidArgument, err)
	}

	if err := s.store.CreateRecurringRule(ctx, &rule); err != nil {
		slog.Error("Failed to create recurring rule", "error", err)
		return nil, connect.NewError(connect.CodeInternal, err)
	}

	slog.Info("Recurring rule created",
		"rule_id", rule.ID,
		"frequency", rule.Frequency,
		"start_date", rule.StartDate.String(),
		"user_id", middleware.GetUserID(ctx),
	)
	return connect.NewResponse(&ledgerv1.CreateRecurringRuleResponse{Rule: rule}), nil
}

// ListRecurringRules returns all stored rules.
func (s *ExpenseService) ListRecurringRules(ctx context.Context, req *connect.Request[ledgerv1.ListRecurringRulesRequest]) (*connect.Response[ledgerv1.ListRecurringRulesResponse], error) {
	rules, err := s.store.ListRecurringRules(ctx)
	if err != nil {
		slog.Error("Failed to list recurring rules", "error", err)
		return nil, toConnectError(err)
	}
	return connect.NewResponse(&ledgerv1.ListRecurringRulesResponse{Rules: rules}), nil
}
