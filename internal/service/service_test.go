package service

import (
	"context"
	"net/http"
	"net/http/httptest"
	"os"
	"testing"
	"time"

	"connectrpc.com/connect"

	"github.com/mmynk/splitledger/internal/middleware"
	"github.com/mmynk/splitledger/internal/models"
	"github.com/mmynk/splitledger/internal/storage/sqlite"
	"github.com/mmynk/splitledger/pkg/api/ledgerv1"
)

// testAuthInterceptor returns a Connect interceptor that sets a test user ID in the context.
func testAuthInterceptor() connect.UnaryInterceptorFunc {
	return func(next connect.UnaryFunc) connect.UnaryFunc {
		return func(ctx context.Context, req connect.AnyRequest) (connect.AnyResponse, error) {
			ctx = context.WithValue(ctx, middleware.UserIDKey, "Alice")
			return next(ctx, req)
		}
	}
}

type testServer struct {
	expenses  ledgerv1.ExpenseServiceClient
	ledger    ledgerv1.LedgerServiceClient
	store     *sqlite.SQLiteStore
	ledgerSvc *LedgerService
}

// setupTestServer creates a test server backed by a temporary SQLite database.
func setupTestServer(t *testing.T, cacheTTL time.Duration) *testServer {
	t.Helper()

	// Create temp database
	tmpFile, err := os.CreateTemp("", "test-*.db")
	if err != nil {
		t.Fatalf("failed to create temp file: %v", err)
	}
	tmpFile.Close()

	store, err := sqlite.New(tmpFile.Name())
	if err != nil {
		os.Remove(tmpFile.Name())
		t.Fatalf("failed to create store: %v", err)
	}

	// Create services and handlers with test auth interceptor
	interceptors := connect.WithInterceptors(testAuthInterceptor(), middleware.LoggingInterceptor())
	expensePath, expenseHandler := ledgerv1.NewExpenseServiceHandler(NewExpenseService(store), interceptors)

	ledgerSvc := NewLedgerService(store, cacheTTL)
	ledgerSvc.now = func() time.Time { return time.Date(2024, time.March, 31, 12, 0, 0, 0, time.UTC) }
	ledgerPath, ledgerHandler := ledgerv1.NewLedgerServiceHandler(ledgerSvc, interceptors)

	mux := http.NewServeMux()
	mux.Handle(expensePath, expenseHandler)
	mux.Handle(ledgerPath, ledgerHandler)

	server := httptest.NewServer(mux)

	t.Cleanup(func() {
		server.Close()
		store.Close()
		os.Remove(tmpFile.Name())
	})

	return &testServer{
		expenses:  ledgerv1.NewExpenseServiceClient(http.DefaultClient, server.URL),
		ledger:    ledgerv1.NewLedgerServiceClient(http.DefaultClient, server.URL),
		store:     store,
		ledgerSvc: ledgerSvc,
	}
}

// createExpense stores an expense through the API and returns it.
func (ts *testServer) createExpense(t *testing.T, e models.Expense) models.Expense {
	t.Helper()
	resp, err := ts.expenses.CreateExpense(context.Background(), connect.NewRequest(&ledgerv1.CreateExpenseRequest{Expense: e}))
	if err != nil {
		t.Fatalf("CreateExpense failed: %v", err)
	}
	return resp.Msg.Expense
}

func equalExpense(amount models.Amount, paidBy, category string, date models.Date, participants ...string) models.Expense {
	return models.Expense{
		Amount:       amount,
		Description:  category + " expense",
		PaidBy:       paidBy,
		Participants: participants,
		ShareType:    models.ShareEqual,
		Category:     category,
		Date:         date,
	}
}

func march(day int) models.Date {
	return models.NewDate(2024, time.March, day)
}

// seedLedger stores three expenses:
//
//	2024-02-15  Carol paid 60.00 food       for Alice, Carol
//	2024-03-10  Alice paid 90.00 food       for Alice, Bob, Carol
//	2024-03-20  Bob   paid 30.00 transport  for Bob
func seedLedger(t *testing.T, ts *testServer) {
	t.Helper()
	ts.createExpense(t, equalExpense(6000, "Carol", "food", models.NewDate(2024, time.February, 15), "Alice", "Carol"))
	ts.createExpense(t, equalExpense(9000, "Alice", "food", march(10), "Alice", "Bob", "Carol"))
	ts.createExpense(t, equalExpense(3000, "Bob", "transport", march(20), "Bob"))
}
