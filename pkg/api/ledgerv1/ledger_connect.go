package ledgerv1

import (
	"context"
	"errors"
	"net/http"
	"strings"

	"connectrpc.com/connect"
)

// LedgerServiceName is the fully-qualified name of the LedgerService service.
const LedgerServiceName = "splitledger.v1.LedgerService"

// Procedure paths of the LedgerService RPCs.
const (
	LedgerServiceComputeSplitProcedure       = "/splitledger.v1.LedgerService/ComputeSplit"
	LedgerServiceComputeBalancesProcedure    = "/splitledger.v1.LedgerService/ComputeBalances"
	LedgerServiceComputeSettlementsProcedure = "/splitledger.v1.LedgerService/ComputeSettlements"
	LedgerServiceMonthlySummaryProcedure     = "/splitledger.v1.LedgerService/MonthlySummary"
	LedgerServiceCategorySummaryProcedure    = "/splitledger.v1.LedgerService/CategorySummary"
	LedgerServiceSpendingPatternsProcedure   = "/splitledger.v1.LedgerService/SpendingPatterns"
	LedgerServiceTopExpensesProcedure        = "/splitledger.v1.LedgerService/TopExpenses"
	LedgerServiceIndividualVsGroupProcedure  = "/splitledger.v1.LedgerService/IndividualVsGroup"
)

// LedgerServiceHandler computes splits, balances, settlements and analytics over stored expenses.
type LedgerServiceHandler interface {
	ComputeSplit(context.Context, *connect.Request[ComputeSplitRequest]) (*connect.Response[ComputeSplitResponse], error)
	ComputeBalances(context.Context, *connect.Request[ComputeBalancesRequest]) (*connect.Response[ComputeBalancesResponse], error)
	ComputeSettlements(context.Context, *connect.Request[ComputeSettlementsRequest]) (*connect.Response[ComputeSettlementsResponse], error)
	MonthlySummary(context.Context, *connect.Request[MonthlySummaryRequest]) (*connect.Response[MonthlySummaryResponse], error)
	CategorySummary(context.Context, *connect.Request[CategorySummaryRequest]) (*connect.Response[CategorySummaryResponse], error)
	SpendingPatterns(context.Context, *connect.Request[SpendingPatternsRequest]) (*connect.Response[SpendingPatternsResponse], error)
	TopExpenses(context.Context, *connect.Request[TopExpensesRequest]) (*connect.Response[TopExpensesResponse], error)
	IndividualVsGroup(context.Context, *connect.Request[IndividualVsGroupRequest]) (*connect.Response[IndividualVsGroupResponse], error)
}

// NewLedgerServiceHandler builds an HTTP handler from the service implementation. It
// returns the path on which to mount the handler and the handler itself.
func NewLedgerServiceHandler(svc LedgerServiceHandler, opts ...connect.HandlerOption) (string, http.Handler) {
	opts = handlerOptions(opts)
	computeSplitHandler := connect.NewUnaryHandler(LedgerServiceComputeSplitProcedure, svc.ComputeSplit, opts...)
	computeBalancesHandler := connect.NewUnaryHandler(LedgerServiceComputeBalancesProcedure, svc.ComputeBalances, opts...)
	computeSettlementsHandler := connect.NewUnaryHandler(LedgerServiceComputeSettlementsProcedure, svc.ComputeSettlements, opts...)
	monthlySummaryHandler := connect.NewUnaryHandler(LedgerServiceMonthlySummaryProcedure, svc.MonthlySummary, opts...)
	categorySummaryHandler := connect.NewUnaryHandler(LedgerServiceCategorySummaryProcedure, svc.CategorySummary, opts...)
	spendingPatternsHandler := connect.NewUnaryHandler(LedgerServiceSpendingPatternsProcedure, svc.SpendingPatterns, opts...)
	topExpensesHandler := connect.NewUnaryHandler(LedgerServiceTopExpensesProcedure, svc.TopExpenses, opts...)
	individualVsGroupHandler := connect.NewUnaryHandler(LedgerServiceIndividualVsGroupProcedure, svc.IndividualVsGroup, opts...)
	return "/splitledger.v1.LedgerService/", http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		switch r.URL.Path {
		case LedgerServiceComputeSplitProcedure:
			computeSplitHandler.ServeHTTP(w, r)
		case LedgerServiceComputeBalancesProcedure:
			computeBalancesHandler.ServeHTTP(w, r)
		case LedgerServiceComputeSettlementsProcedure:
			computeSettlementsHandler.ServeHTTP(w, r)
		case LedgerServiceMonthlySummaryProcedure:
			monthlySummaryHandler.ServeHTTP(w, r)
		case LedgerServiceCategorySummaryProcedure:
			categorySummaryHandler.ServeHTTP(w, r)
		case LedgerServiceSpendingPatternsProcedure:
			spendingPatternsHandler.ServeHTTP(w, r)
		case LedgerServiceTopExpensesProcedure:
			topExpensesHandler.ServeHTTP(w, r)
		case LedgerServiceIndividualVsGroupProcedure:
			individualVsGroupHandler.ServeHTTP(w, r)
		default:
			http.NotFound(w, r)
		}
	})
}

// LedgerServiceClient is a client for the splitledger.v1.LedgerService service.
type LedgerServiceClient interface {
	ComputeSplit(context.Context, *connect.Request[ComputeSplitRequest]) (*connect.Response[ComputeSplitResponse], error)
	ComputeBalances(context.Context, *connect.Request[ComputeBalancesRequest]) (*connect.Response[ComputeBalancesResponse], error)
	ComputeSettlements(context.Context, *connect.Request[ComputeSettlementsRequest]) (*connect.Response[ComputeSettlementsResponse], error)
	MonthlySummary(context.Context, *connect.Request[MonthlySummaryRequest]) (*connect.Response[MonthlySummaryResponse], error)
	CategorySummary(context.Context, *connect.Request[CategorySummaryRequest]) (*connect.Response[CategorySummaryResponse], error)
	SpendingPatterns(context.Context, *connect.Request[SpendingPatternsRequest]) (*connect.Response[SpendingPatternsResponse], error)
	TopExpenses(context.Context, *connect.Request[TopExpensesRequest]) (*connect.Response[TopExpensesResponse], error)
	IndividualVsGroup(context.Context, *connect.Request[IndividualVsGroupRequest]) (*connect.Response[IndividualVsGroupResponse], error)
}

// NewLedgerServiceClient constructs a client for the splitledger.v1.LedgerService service. The
// baseURL is the server root, e.g. http://localhost:8080.
func NewLedgerServiceClient(httpClient connect.HTTPClient, baseURL string, opts ...connect.ClientOption) LedgerServiceClient {
	baseURL = strings.TrimRight(baseURL, "/")
	opts = clientOptions(opts)
	return &ledgerServiceClient{
		computeSplit: connect.NewClient[ComputeSplitRequest, ComputeSplitResponse](httpClient, baseURL+LedgerServiceComputeSplitProcedure, opts...),
		computeBalances: connect.NewClient[ComputeBalancesRequest, ComputeBalancesResponse](httpClient, baseURL+LedgerServiceComputeBalancesProcedure, opts...),
		computeSettlements: connect.NewClient[ComputeSettlementsRequest, ComputeSettlementsResponse](httpClient, baseURL+LedgerServiceComputeSettlementsProcedure, opts...),
		monthlySummary: connect.NewClient[MonthlySummaryRequest, MonthlySummaryResponse](httpClient, baseURL+LedgerServiceMonthlySummaryProcedure, opts...),
		categorySummary: connect.NewClient[CategorySummaryRequest, CategorySummaryResponse](httpClient, baseURL+LedgerServiceCategorySummaryProcedure, opts...),
		spendingPatterns: connect.NewClient[SpendingPatternsRequest, SpendingPatternsResponse](httpClient, baseURL+LedgerServiceSpendingPatternsProcedure, opts...),
		topExpenses: connect.NewClient[TopExpensesRequest, TopExpensesResponse](httpClient, baseURL+LedgerServiceTopExpensesProcedure, opts...),
		individualVsGroup: connect.NewClient[IndividualVsGroupRequest, IndividualVsGroupResponse](httpClient, baseURL+LedgerServiceIndividualVsGroupProcedure, opts...),
	}
}

type ledgerServiceClient struct {
	computeSplit       *connect.Client[ComputeSplitRequest, ComputeSplitResponse]
	computeBalances    *connect.Client[ComputeBalancesRequest, ComputeBalancesResponse]
	computeSettlements *connect.Client[ComputeSettlementsRequest, ComputeSettlementsResponse]
	monthlySummary     *connect.Client[MonthlySummaryRequest, MonthlySummaryResponse]
	categorySummary    *connect.Client[CategorySummaryRequest, CategorySummaryResponse]
	spendingPatterns   *connect.Client[SpendingPatternsRequest, SpendingPatternsResponse]
	topExpenses        *connect.Client[TopExpensesRequest, TopExpensesResponse]
	individualVsGroup  *connect.Client[IndividualVsGroupRequest, IndividualVsGroupResponse]
}

func (c *ledgerServiceClient) ComputeSplit(ctx context.Context, req *connect.Request[ComputeSplitRequest]) (*connect.Response[ComputeSplitResponse], error) {
	return c.computeSplit.CallUnary(ctx, req)
}

func (c *ledgerServiceClient) ComputeBalances(ctx context.Context, req *connect.Request[ComputeBalancesRequest]) (*connect.Response[ComputeBalancesResponse], error) {
	return c.computeBalances.CallUnary(ctx, req)
}

func (c *ledgerServiceClient) ComputeSettlements(ctx context.Context, req *connect.Request[ComputeSettlementsRequest]) (*connect.Response[ComputeSettlementsResponse], error) {
	return c.computeSettlements.CallUnary(ctx, req)
}

func (c *ledgerServiceClient) MonthlySummary(ctx context.Context, req *connect.Request[MonthlySummaryRequest]) (*connect.Response[MonthlySummaryResponse], error) {
	return c.monthlySummary.CallUnary(ctx, req)
}

func (c *ledgerServiceClient) CategorySummary(ctx context.Context, req *connect.Request[CategorySummaryRequest]) (*connect.Response[CategorySummaryResponse], error) {
	return c.categorySummary.CallUnary(ctx, req)
}

func (c *ledgerServiceClient) SpendingPatterns(ctx context.Context, req *connect.Request[SpendingPatternsRequest]) (*connect.Response[SpendingPatternsResponse], error) {
	return c.spendingPatterns.CallUnary(ctx, req)
}

func (c *ledgerServiceClient) TopExpenses(ctx context.Context, req *connect.Request[TopExpensesRequest]) (*connect.Response[TopExpensesResponse], error) {
	return c.topExpenses.CallUnary(ctx, req)
}

func (c *ledgerServiceClient) IndividualVsGroup(ctx context.Context, req *connect.Request[IndividualVsGroupRequest]) (*connect.Response[IndividualVsGroupResponse], error) {
	return c.individualVsGroup.CallUnary(ctx, req)
}

// UnimplementedLedgerServiceHandler returns CodeUnimplemented from all methods.
type UnimplementedLedgerServiceHandler struct{}

func (UnimplementedLedgerServiceHandler) ComputeSplit(context.Context, *connect.Request[ComputeSplitRequest]) (*connect.Response[ComputeSplitResponse], error) {
	return nil, connect.NewError(connect.CodeUnimplemented, errors.New("splitledger.v1.LedgerService.ComputeSplit is not implemented"))
}

func (UnimplementedLedgerServiceHandler) ComputeBalances(context.Context, *connect.Request[ComputeBalancesRequest]) (*connect.Response[ComputeBalancesResponse], error) {
	return nil, connect.NewError(connect.CodeUnimplemented, errors.New("splitledger.v1.LedgerService.ComputeBalances is not implemented"))
}

func (UnimplementedLedgerServiceHandler) ComputeSettlements(context.Context, *connect.Request[ComputeSettlementsRequest]) (*connect.Response[ComputeSettlementsResponse], error) {
	return nil, connect.NewError(connect.CodeUnimplemented, errors.New("splitledger.v1.LedgerService.ComputeSettlements is not implemented"))
}

func (UnimplementedLedgerServiceHandler) MonthlySummary(context.Context, *connect.Request[MonthlySummaryRequest]) (*connect.Response[MonthlySummaryResponse], error) {
	return nil, connect.NewError(connect.CodeUnimplemented, errors.New("splitledger.v1.LedgerService.MonthlySummary is not implemented"))
}

func (UnimplementedLedgerServiceHandler) CategorySummary(context.Context, *connect.Request[CategorySummaryRequest]) (*connect.Response[CategorySummaryResponse], error) {
	return nil, connect.NewError(connect.CodeUnimplemented, errors.New("splitledger.v1.LedgerService.CategorySummary is not implemented"))
}

func (UnimplementedLedgerServiceHandler) SpendingPatterns(context.Context, *connect.Request[SpendingPatternsRequest]) (*connect.Response[SpendingPatternsResponse], error) {
	return nil, connect.NewError(connect.CodeUnimplemented, errors.New("splitledger.v1.LedgerService.SpendingPatterns is not implemented"))
}

func (UnimplementedLedgerServiceHandler) TopExpenses(context.Context, *connect.Request[TopExpensesRequest]) (*connect.Response[TopExpensesResponse], error) {
	return nil, connect.NewError(connect.CodeUnimplemented, errors.New("splitledger.v1.LedgerService.TopExpenses is not implemented"))
}

func (UnimplementedLedgerServiceHandler) IndividualVsGroup(context.Context, *connect.Request[IndividualVsGroupRequest]) (*connect.Response[IndividualVsGroupResponse], error) {
	return nil, connect.NewError(connect.CodeUnimplemented, errors.New("splitledger.v1.LedgerService.IndividualVsGroup is not implemented"))
}
