package ledgerv1

import (
	"context"
	"errors"
	"net/http"
	"strings"

	"connectrpc.com/connect"
)

// ExpenseServiceName is the fully-qualified name of the ExpenseService service.
const ExpenseServiceName = "splitledger.v1.ExpenseService"

// Procedure paths of the ExpenseService RPCs.
const (
	ExpenseServiceCreateExpenseProcedure       = "/splitledger.v1.ExpenseService/CreateExpense"
	ExpenseServiceGetExpenseProcedure          = "/splitledger.v1.ExpenseService/GetExpense"
	ExpenseServiceListExpensesProcedure        = "/splitledger.v1.ExpenseService/ListExpenses"
	ExpenseServiceDeleteExpenseProcedure       = "/splitledger.v1.ExpenseService/DeleteExpense"
	ExpenseServiceListPeopleProcedure          = "/splitledger.v1.ExpenseService/ListPeople"
	ExpenseServiceCreateRecurringRuleProcedure = "/splitledger.v1.ExpenseService/CreateRecurringRule"
	ExpenseServiceListRecurringRulesProcedure  = "/splitledger.v1.ExpenseService/ListRecurringRules"
)

// ExpenseServiceHandler stores expenses and recurring rules.
type ExpenseServiceHandler interface {
	CreateExpense(context.Context, *connect.Request[CreateExpenseRequest]) (*connect.Response[CreateExpenseResponse], error)
	GetExpense(context.Context, *connect.Request[GetExpenseRequest]) (*connect.Response[GetExpenseResponse], error)
	ListExpenses(context.Context, *connect.Request[ListExpensesRequest]) (*connect.Response[ListExpensesResponse], error)
	DeleteExpense(context.Context, *connect.Request[DeleteExpenseRequest]) (*connect.Response[DeleteExpenseResponse], error)
	ListPeople(context.Context, *connect.Request[ListPeopleRequest]) (*connect.Response[ListPeopleResponse], error)
	CreateRecurringRule(context.Context, *connect.Request[CreateRecurringRuleRequest]) (*connect.Response[CreateRecurringRuleResponse], error)
	ListRecurringRules(context.Context, *connect.Request[ListRecurringRulesRequest]) (*connect.Response[ListRecurringRulesResponse], error)
}

// NewExpenseServiceHandler builds an HTTP handler from the service implementation. It
// returns the path on which to mount the handler and the handler itself.
func NewExpenseServiceHandler(svc ExpenseServiceHandler, opts ...connect.HandlerOption) (string, http.Handler) {
	opts = handlerOptions(opts)
	createExpenseHandler := connect.NewUnaryHandler(ExpenseServiceCreateExpenseProcedure, svc.CreateExpense, opts...)
	getExpenseHandler := connect.NewUnaryHandler(ExpenseServiceGetExpenseProcedure, svc.GetExpense, opts...)
	listExpensesHandler := connect.NewUnaryHandler(ExpenseServiceListExpensesProcedure, svc.ListExpenses, opts...)
	deleteExpenseHandler := connect.NewUnaryHandler(ExpenseServiceDeleteExpenseProcedure, svc.DeleteExpense, opts...)
	listPeopleHandler := connect.NewUnaryHandler(ExpenseServiceListPeopleProcedure, svc.ListPeople, opts...)
	createRecurringRuleHandler := connect.NewUnaryHandler(ExpenseServiceCreateRecurringRuleProcedure, svc.CreateRecurringRule, opts...)
	listRecurringRulesHandler := connect.NewUnaryHandler(ExpenseServiceListRecurringRulesProcedure, svc.ListRecurringRules, opts...)
	return "/splitledger.v1.ExpenseService/", http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		switch r.URL.Path {
		case ExpenseServiceCreateExpenseProcedure:
			createExpenseHandler.ServeHTTP(w, r)
		case ExpenseServiceGetExpenseProcedure:
			getExpenseHandler.ServeHTTP(w, r)
		case ExpenseServiceListExpensesProcedure:
			listExpensesHandler.ServeHTTP(w, r)
		case ExpenseServiceDeleteExpenseProcedure:
			deleteExpenseHandler.ServeHTTP(w, r)
		case ExpenseServiceListPeopleProcedure:
			listPeopleHandler.ServeHTTP(w, r)
		case ExpenseServiceCreateRecurringRuleProcedure:
			createRecurringRuleHandler.ServeHTTP(w, r)
		case ExpenseServiceListRecurringRulesProcedure:
			listRecurringRulesHandler.ServeHTTP(w, r)
		default:
			http.NotFound(w, r)
		}
	})
}

// ExpenseServiceClient is a client for the splitledger.v1.ExpenseService service.
type ExpenseServiceClient interface {
	CreateExpense(context.Context, *connect.Request[CreateExpenseRequest]) (*connect.Response[CreateExpenseResponse], error)
	GetExpense(context.Context, *connect.Request[GetExpenseRequest]) (*connect.Response[GetExpenseResponse], error)
	ListExpenses(context.Context, *connect.Request[ListExpensesRequest]) (*connect.Response[ListExpensesResponse], error)
	DeleteExpense(context.Context, *connect.Request[DeleteExpenseRequest]) (*connect.Response[DeleteExpenseResponse], error)
	ListPeople(context.Context, *connect.Request[ListPeopleRequest]) (*connect.Response[ListPeopleResponse], error)
	CreateRecurringRule(context.Context, *connect.Request[CreateRecurringRuleRequest]) (*connect.Response[CreateRecurringRuleResponse], error)
	ListRecurringRules(context.Context, *connect.Request[ListRecurringRulesRequest]) (*connect.Response[ListRecurringRulesResponse], error)
}

// NewExpenseServiceClient constructs a client for the splitledger.v1.ExpenseService service. The
// baseURL is the server root, e.g. http://localhost:8080.
func NewExpenseServiceClient(httpClient connect.HTTPClient, baseURL string, opts ...connect.ClientOption) ExpenseServiceClient {
	baseURL = strings.TrimRight(baseURL, "/")
	opts = clientOptions(opts)
	return &expenseServiceClient{
		createExpense: connect.NewClient[CreateExpenseRequest, CreateExpenseResponse](httpClient, baseURL+ExpenseServiceCreateExpenseProcedure, opts...),
		getExpense: connect.NewClient[GetExpenseRequest, GetExpenseResponse](httpClient, baseURL+ExpenseServiceGetExpenseProcedure, opts...),
		listExpenses: connect.NewClient[ListExpensesRequest, ListExpensesResponse](httpClient, baseURL+ExpenseServiceListExpensesProcedure, opts...),
		deleteExpense: connect.NewClient[DeleteExpenseRequest, DeleteExpenseResponse](httpClient, baseURL+ExpenseServiceDeleteExpenseProcedure, opts...),
		listPeople: connect.NewClient[ListPeopleRequest, ListPeopleResponse](httpClient, baseURL+ExpenseServiceListPeopleProcedure, opts...),
		createRecurringRule: connect.NewClient[CreateRecurringRuleRequest, CreateRecurringRuleResponse](httpClient, baseURL+ExpenseServiceCreateRecurringRuleProcedure, opts...),
		listRecurringRules: connect.NewClient[ListRecurringRulesRequest, ListRecurringRulesResponse](httpClient, baseURL+ExpenseServiceListRecurringRulesProcedure, opts...),
	}
}

type expenseServiceClient struct {
	createExpense       *connect.Client[CreateExpenseRequest, CreateExpenseResponse]
	getExpense          *connect.Client[GetExpenseRequest, GetExpenseResponse]
	listExpenses        *connect.Client[ListExpensesRequest, ListExpensesResponse]
	deleteExpense       *connect.Client[DeleteExpenseRequest, DeleteExpenseResponse]
	listPeople          *connect.Client[ListPeopleRequest, ListPeopleResponse]
	createRecurringRule *connect.Client[CreateRecurringRuleRequest, CreateRecurringRuleResponse]
	listRecurringRules  *connect.Client[ListRecurringRulesRequest, ListRecurringRulesResponse]
}

func (c *expenseServiceClient) CreateExpense(ctx context.Context, req *connect.Request[CreateExpenseRequest]) (*connect.Response[CreateExpenseResponse], error) {
	return c.createExpense.CallUnary(ctx, req)
}

func (c *expenseServiceClient) GetExpense(ctx context.Context, req *connect.Request[GetExpenseRequest]) (*connect.Response[GetExpenseResponse], error) {
	return c.getExpense.CallUnary(ctx, req)
}

func (c *expenseServiceClient) ListExpenses(ctx context.Context, req *connect.Request[ListExpensesRequest]) (*connect.Response[ListExpensesResponse], error) {
	return c.listExpenses.CallUnary(ctx, req)
}

func (c *expenseServiceClient) DeleteExpense(ctx context.Context, req *connect.Request[DeleteExpenseRequest]) (*connect.Response[DeleteExpenseResponse], error) {
	return c.deleteExpense.CallUnary(ctx, req)
}

func (c *expenseServiceClient) ListPeople(ctx context.Context, req *connect.Request[ListPeopleRequest]) (*connect.Response[ListPeopleResponse], error) {
	return c.listPeople.CallUnary(ctx, req)
}

func (c *expenseServiceClient) CreateRecurringRule(ctx context.Context, req *connect.Request[CreateRecurringRuleRequest]) (*connect.Response[CreateRecurringRuleResponse], error) {
	return c.createRecurringRule.CallUnary(ctx, req)
}

func (c *expenseServiceClient) ListRecurringRules(ctx context.Context, req *connect.Request[ListRecurringRulesRequest]) (*connect.Response[ListRecurringRulesResponse], error) {
	return c.listRecurringRules.CallUnary(ctx, req)
}

// UnimplementedExpenseServiceHandler returns CodeUnimplemented from all methods.
type UnimplementedExpenseServiceHandler struct{}

func (UnimplementedExpenseServiceHandler) CreateExpense(context.Context, *connect.Request[CreateExpenseRequest]) (*connect.Response[CreateExpenseResponse], error) {
	return nil, connect.NewError(connect.CodeUnimplemented, errors.New("splitledger.v1.ExpenseService.CreateExpense is not implemented"))
}

func (UnimplementedExpenseServiceHandler) GetExpense(context.Context, *connect.Request[GetExpenseRequest]) (*connect.Response[GetExpenseResponse], error) {
	return nil, connect.NewError(connect.CodeUnimplemented, errors.New("splitledger.v1.ExpenseService.GetExpense is not implemented"))
}

func (UnimplementedExpenseServiceHandler) ListExpenses(context.Context, *connect.Request[ListExpensesRequest]) (*connect.Response[ListExpensesResponse], error) {
	return nil, connect.NewError(connect.CodeUnimplemented, errors.New("splitledger.v1.ExpenseService.ListExpenses is not implemented"))
}

func (UnimplementedExpenseServiceHandler) DeleteExpense(context.Context, *connect.Request[DeleteExpenseRequest]) (*connect.Response[DeleteExpenseResponse], error) {
	return nil, connect.NewError(connect.CodeUnimplemented, errors.New("splitledger.v1.ExpenseService.DeleteExpense is not implemented"))
}

func (UnimplementedExpenseServiceHandler) ListPeople(context.Context, *connect.Request[ListPeopleRequest]) (*connect.Response[ListPeopleResponse], error) {
	return nil, connect.NewError(connect.CodeUnimplemented, errors.New("splitledger.v1.ExpenseService.ListPeople is not implemented"))
}

func (UnimplementedExpenseServiceHandler) CreateRecurringRule(context.Context, *connect.Request[CreateRecurringRuleRequest]) (*connect.Response[CreateRecurringRuleResponse], error) {
	return nil, connect.NewError(connect.CodeUnimplemented, errors.New("splitledger.v1.ExpenseService.CreateRecurringRule is not implemented"))
}

func (UnimplementedExpenseServiceHandler) ListRecurringRules(context.Context, *connect.Request[ListRecurringRulesRequest]) (*connect.Response[ListRecurringRulesResponse], error) {
	return nil, connect.NewError(connect.CodeUnimplemented, errors.New("splitledger.v1.ExpenseService.ListRecurringRules is not implemented"))
}
