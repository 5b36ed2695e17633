package service

import (
	"context"
	"log/slog"
	"time"

	"connectrpc.com/connect"

	"github.com/mmynk/splitledger/internal/analytics"
	"github.com/mmynk/splitledger/internal/calculator"
	"github.com/mmynk/splitledger/internal/models"
	"github.com/mmynk/splitledger/internal/storage"
	"github.com/mmynk/splitledger/pkg/api/ledgerv1"
)

// LedgerService implements the Connect LedgerService. Every query reads one
// consistent snapshot of the store and hands it to the engine packages.
type LedgerService struct {
	ledgerv1.UnimplementedLedgerServiceHandler
	store storage.Store
	cache *resultCache
	now   func() time.Time
}

// NewLedgerService creates a new LedgerService. Results are cached for
// cacheTTL; 0 disables caching.
func NewLedgerService(store storage.Store, cacheTTL time.Duration) *LedgerService {
	return &LedgerService{
		store: store,
		cache: newResultCache(cacheTTL),
		now:   time.Now,
	}
}

// query loads the expenses matching filter and computes a result from them.
// The result is cached under (procedure, store revision, keyData).
func query[T any](ctx context.Context, s *LedgerService, procedure string, filter ledgerv1.ExpenseFilter, keyData any, compute func([]models.Expense) (T, error)) (T, error) {
	var zero T

	f, err := storageFilter(filter)
	if err != nil {
		return zero, err
	}
	rev, err := s.store.Revision(ctx)
	if err != nil {
		return zero, err
	}
	key, err := cacheKey(procedure, rev, keyData)
	if err != nil {
		return zero, err
	}

	return cached(s.cache, key, func() (T, error) {
		expenses, err := s.store.ListExpenses(ctx, f)
		if err != nil {
			return zero, err
		}
		slog.Debug("Computing ledger query",
			"procedure", procedure,
			"revision", rev,
			"expenses", len(expenses),
		)
		return compute(expenses)
	})
}

// ComputeSplit divides one expense among its participants. The expense is
// taken from the request and need not be stored.
func (s *LedgerService) ComputeSplit(ctx context.Context, req *connect.Request[ledgerv1.ComputeSplitRequest]) (*connect.Response[ledgerv1.ComputeSplitResponse], error) {
	split, err := calculator.CalculateSplit(req.Msg.Expense)
	if err != nil {
		slog.Warn("ComputeSplit failed", "error", err)
		return nil, toConnectError(err)
	}
	return connect.NewResponse(&ledgerv1.ComputeSplitResponse{Split: split}), nil
}

// ComputeBalances returns the paid, owed and net position of everyone on the
// matching expenses.
func (s *LedgerService) ComputeBalances(ctx context.Context, req *connect.Request[ledgerv1.ComputeBalancesRequest]) (*connect.Response[ledgerv1.ComputeBalancesResponse], error) {
	balances, err := query(ctx, s, ledgerv1.LedgerServiceComputeBalancesProcedure, req.Msg.Filter, req.Msg,
		calculator.CalculateBalances)
	if err != nil {
		return nil, toConnectError(err)
	}
	return connect.NewResponse(&ledgerv1.ComputeBalancesResponse{Balances: balances}), nil
}

// ComputeSettlements returns the payments that settle the given balances, or
// the balances of the matching expenses when none are given.
func (s *LedgerService) ComputeSettlements(ctx context.Context, req *connect.Request[ledgerv1.ComputeSettlementsRequest]) (*connect.Response[ledgerv1.ComputeSettlementsResponse], error) {
	var (
		settlements []models.Settlement
		err         error
	)
	if len(req.Msg.Balances) > 0 {
		balances := make(map[string]models.Balance, len(req.Msg.Balances))
		for person, b := range req.Msg.Balances {
			b.Person = person
			balances[person] = b
		}
		settlements, err = calculator.MinimizeSettlements(balances)
	} else {
		settlements, err = query(ctx, s, ledgerv1.LedgerServiceComputeSettlementsProcedure, req.Msg.Filter, req.Msg,
			func(expenses []models.Expense) ([]models.Settlement, error) {
				balances, err := calculator.CalculateBalances(expenses)
				if err != nil {
					return nil, err
				}
				return calculator.MinimizeSettlements(balances)
			})
	}
	if err != nil {
		return nil, toConnectError(err)
	}

	slog.Debug("Settlements computed", "count", len(settlements))
	return connect.NewResponse(&ledgerv1.ComputeSettlementsResponse{Settlements: settlements}), nil
}

// MonthlySummary totals the matching expenses of one calendar month.
func (s *LedgerService) MonthlySummary(ctx context.Context, req *connect.Request[ledgerv1.MonthlySummaryRequest]) (*connect.Response[ledgerv1.MonthlySummaryResponse], error) {
	month := time.Month(req.Msg.Month)
	// Fail on bad parameters before touching the store.
	if _, err := analytics.MonthlySummary(nil, req.Msg.Year, month); err != nil {
		return nil, toConnectError(err)
	}

	summary, err := query(ctx, s, ledgerv1.LedgerServiceMonthlySummaryProcedure, req.Msg.Filter, req.Msg,
		func(expenses []models.Expense) (analytics.MonthSummary, error) {
			return analytics.MonthlySummary(expenses, req.Msg.Year, month)
		})
	if err != nil {
		return nil, toConnectError(err)
	}
	return connect.NewResponse(&ledgerv1.MonthlySummaryResponse{Summary: summary}), nil
}

// CategorySummary totals the matching expenses per category.
func (s *LedgerService) CategorySummary(ctx context.Context, req *connect.Request[ledgerv1.CategorySummaryRequest]) (*connect.Response[ledgerv1.CategorySummaryResponse], error) {
	q := analytics.CategoryQuery{Range: dateRange(req.Msg.Filter), Ranked: req.Msg.Ranked}
	categories, err := query(ctx, s, ledgerv1.LedgerServiceCategorySummaryProcedure, req.Msg.Filter, req.Msg,
		func(expenses []models.Expense) ([]analytics.CategoryTotal, error) {
			return analytics.CategorySummary(expenses, q)
		})
	if err != nil {
		return nil, toConnectError(err)
	}
	return connect.NewResponse(&ledgerv1.CategorySummaryResponse{Categories: categories}), nil
}

// SpendingPatterns breaks down what each payer paid per category.
func (s *LedgerService) SpendingPatterns(ctx context.Context, req *connect.Request[ledgerv1.SpendingPatternsRequest]) (*connect.Response[ledgerv1.SpendingPatternsResponse], error) {
	q := analytics.SpendingQuery{Person: req.Msg.Person, Range: dateRange(req.Msg.Filter)}
	spending, err := query(ctx, s, ledgerv1.LedgerServiceSpendingPatternsProcedure, req.Msg.Filter, req.Msg,
		func(expenses []models.Expense) (analytics.Spending, error) {
			return analytics.SpendingPatterns(expenses, q)
		})
	if err != nil {
		return nil, toConnectError(err)
	}
	return connect.NewResponse(&ledgerv1.SpendingPatternsResponse{Spending: spending}), nil
}

// TopExpenses ranks the matching expenses by amount. Timeframes are anchored
// on the server's current date.
func (s *LedgerService) TopExpenses(ctx context.Context, req *connect.Request[ledgerv1.TopExpensesRequest]) (*connect.Response[ledgerv1.TopExpensesResponse], error) {
	q := analytics.TopQuery{
		Limit:     req.Msg.Limit,
		Category:  req.Msg.Category,
		Timeframe: req.Msg.Timeframe,
		Now:       models.DateOf(s.now()),
	}
	// Fail on bad parameters before touching the store.
	if _, err := analytics.TopExpenses(nil, q); err != nil {
		return nil, toConnectError(err)
	}

	keyData := struct {
		Req   *ledgerv1.TopExpensesRequest
		Today models.Date
	}{req.Msg, q.Now}
	expenses, err := query(ctx, s, ledgerv1.LedgerServiceTopExpensesProcedure, req.Msg.Filter, keyData,
		func(expenses []models.Expense) ([]models.Expense, error) {
			return analytics.TopExpenses(expenses, q)
		})
	if err != nil {
		return nil, toConnectError(err)
	}
	return connect.NewResponse(&ledgerv1.TopExpensesResponse{Expenses: expenses}), nil
}

// IndividualVsGroup compares single-participant expenses with shared ones.
func (s *LedgerService) IndividualVsGroup(ctx context.Context, req *connect.Request[ledgerv1.IndividualVsGroupRequest]) (*connect.Response[ledgerv1.IndividualVsGroupResponse], error) {
	r := dateRange(req.Msg.Filter)
	comparison, err := query(ctx, s, ledgerv1.LedgerServiceIndividualVsGroupProcedure, req.Msg.Filter, req.Msg,
		func(expenses []models.Expense) (analytics.Comparison, error) {
			return analytics.IndividualVsGroup(expenses, r)
		})
	if err != nil {
		return nil, toConnectError(err)
	}
	return connect.NewResponse(&ledgerv1.IndividualVsGroupResponse{Comparison: comparison}), nil
}
