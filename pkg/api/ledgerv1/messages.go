package ledgerv1

import (
	"github.com/mmynk/splitledger/internal/analytics"
	"github.com/mmynk/splitledger/internal/models"
)

// ExpenseFilter selects stored expenses. Zero fields match everything.
type ExpenseFilter struct {
	From     models.Date `json:"from"`
	To       models.Date `json:"to"`
	Person   string      `json:"person,omitempty"`
	Category string      `json:"category,omitempty"`
}

// Expense service messages.

type CreateExpenseRequest struct {
	Expense models.Expense `json:"expense"`
}

type CreateExpenseResponse struct {
	Expense models.Expense `json:"expense"`
}

type GetExpenseRequest struct {
	ID string `json:"id"`
}

type GetExpenseResponse struct {
	Expense models.Expense `json:"expense"`
}

type ListExpensesRequest struct {
	Filter ExpenseFilter `json:"filter"`
}

type ListExpensesResponse struct {
	Expenses []models.Expense `json:"expenses"`
}

type DeleteExpenseRequest struct {
	ID string `json:"id"`
}

type DeleteExpenseResponse struct{}

type ListPeopleRequest struct{}

type ListPeopleResponse struct {
	People []string `json:"people"`
}

type CreateRecurringRuleRequest struct {
	Rule models.RecurringRule `json:"rule"`
}

type CreateRecurringRuleResponse struct {
	Rule models.RecurringRule `json:"rule"`
}

type ListRecurringRulesRequest struct{}

type ListRecurringRulesResponse struct {
	Rules []models.RecurringRule `json:"rules"`
}

// Ledger service messages. Every query that reads stored expenses carries a
// Filter; its From/To also serve as the date range of range-based analytics.

type ComputeSplitRequest struct {
	Expense models.Expense `json:"expense"`
}

type ComputeSplitResponse struct {
	Split models.Split `json:"split"`
}

type ComputeBalancesRequest struct {
	Filter ExpenseFilter `json:"filter"`
}

type ComputeBalancesResponse struct {
	Balances map[string]models.Balance `json:"balances"`
}

// ComputeSettlementsRequest settles the given Balances when present, otherwise
// the balances of the expenses matching Filter.
type ComputeSettlementsRequest struct {
	Filter   ExpenseFilter             `json:"filter"`
	Balances map[string]models.Balance `json:"balances,omitempty"`
}

type ComputeSettlementsResponse struct {
	Settlements []models.Settlement `json:"settlements"`
}

type MonthlySummaryRequest struct {
	Filter ExpenseFilter `json:"filter"`
	Year   int           `json:"year"`
	Month  int           `json:"month"`
}

type MonthlySummaryResponse struct {
	Summary analytics.MonthSummary `json:"summary"`
}

type CategorySummaryRequest struct {
	Filter ExpenseFilter `json:"filter"`
	Ranked bool          `json:"ranked,omitempty"`
}

type CategorySummaryResponse struct {
	Categories []analytics.CategoryTotal `json:"categories"`
}

type SpendingPatternsRequest struct {
	Filter ExpenseFilter `json:"filter"`
	Person string        `json:"person,omitempty"`
}

type SpendingPatternsResponse struct {
	Spending analytics.Spending `json:"spending"`
}

type TopExpensesRequest struct {
	Filter    ExpenseFilter       `json:"filter"`
	Limit     int                 `json:"limit,omitempty"`
	Category  string              `json:"category,omitempty"`
	Timeframe analytics.Timeframe `json:"timeframe,omitempty"`
}

type TopExpensesResponse struct {
	Expenses []models.Expense `json:"expenses"`
}

type IndividualVsGroupRequest struct {
	Filter ExpenseFilter `json:"filter"`
}

type IndividualVsGroupResponse struct {
	Comparison analytics.Comparison `json:"comparison"`
}
