package middleware

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"connectrpc.com/connect"
	"github.com/prometheus/client_golang/prometheus/testutil"

	"github.com/mmynk/splitledger/internal/auth"
	"github.com/mmynk/splitledger/internal/models"
	"github.com/mmynk/splitledger/pkg/api/ledgerv1"
)

// echoLedger answers ComputeSplit with the caller's user ID as the only share.
type echoLedger struct {
	ledgerv1.UnimplementedLedgerServiceHandler
}

func (echoLedger) ComputeSplit(ctx context.Context, req *connect.Request[ledgerv1.ComputeSplitRequest]) (*connect.Response[ledgerv1.ComputeSplitResponse], error) {
	split := models.Split{{Person: GetUserID(ctx), Amount: req.Msg.Expense.Amount}}
	return connect.NewResponse(&ledgerv1.ComputeSplitResponse{Split: split}), nil
}

func setupTestServer(t *testing.T, opts ...connect.HandlerOption) ledgerv1.LedgerServiceClient {
	t.Helper()

	mux := http.NewServeMux()
	path, handler := ledgerv1.NewLedgerServiceHandler(echoLedger{}, opts...)
	mux.Handle(path, handler)

	server := httptest.NewServer(CORS(LogRequests(mux)))
	t.Cleanup(server.Close)

	return ledgerv1.NewLedgerServiceClient(http.DefaultClient, server.URL)
}

func TestRequireAuth(t *testing.T) {
	jwtManager := auth.NewJWTManager("test-secret", time.Hour)
	client := setupTestServer(t, connect.WithInterceptors(
		LoggingInterceptor(),
		RequireAuth(jwtManager),
	))

	token, err := jwtManager.Generate("alice", "")
	if err != nil {
		t.Fatalf("Generate failed: %v", err)
	}

	tests := []struct {
		name     string
		header   string
		wantCode connect.Code
		wantUser string
	}{
		{name: "missing token", wantCode: connect.CodeUnauthenticated},
		{name: "not bearer", header: "Basic abc", wantCode: connect.CodeUnauthenticated},
		{name: "bad token", header: "Bearer nope", wantCode: connect.CodeUnauthenticated},
		{name: "valid token", header: "Bearer " + token, wantUser: "alice"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := connect.NewRequest(&ledgerv1.ComputeSplitRequest{Expense: models.Expense{Amount: 100}})
			if tt.header != "" {
				req.Header().Set("Authorization", tt.header)
			}

			resp, err := client.ComputeSplit(context.Background(), req)
			if tt.wantCode != 0 {
				if connect.CodeOf(err) != tt.wantCode {
					t.Fatalf("code = %v, want %v (err %v)", connect.CodeOf(err), tt.wantCode, err)
				}
				return
			}
			if err != nil {
				t.Fatalf("ComputeSplit failed: %v", err)
			}
			if got := resp.Msg.Split[0].Person; got != tt.wantUser {
				t.Errorf("user = %q, want %q", got, tt.wantUser)
			}
		})
	}
}

func TestRequireAuth_PublicProcedure(t *testing.T) {
	jwtManager := auth.NewJWTManager("test-secret", time.Hour)
	client := setupTestServer(t, connect.WithInterceptors(
		RequireAuth(jwtManager, ledgerv1.LedgerServiceComputeSplitProcedure),
	))

	resp, err := client.ComputeSplit(context.Background(), connect.NewRequest(&ledgerv1.ComputeSplitRequest{}))
	if err != nil {
		t.Fatalf("public procedure rejected: %v", err)
	}
	if resp.Msg.Split[0].Person != "" {
		t.Errorf("expected anonymous caller, got %q", resp.Msg.Split[0].Person)
	}

	// A bad token is still rejected on a public procedure.
	req := connect.NewRequest(&ledgerv1.ComputeSplitRequest{})
	req.Header().Set("Authorization", "Bearer nope")
	if _, err := client.ComputeSplit(context.Background(), req); connect.CodeOf(err) != connect.CodeUnauthenticated {
		t.Errorf("code = %v, want Unauthenticated", connect.CodeOf(err))
	}
}

func TestMetricsInterceptor(t *testing.T) {
	client := setupTestServer(t, connect.WithInterceptors(MetricsInterceptor()))
	procedure := ledgerv1.LedgerServiceComputeSplitProcedure
	before := testutil.ToFloat64(rpcRequests.WithLabelValues(procedure, "ok"))

	for i := 0; i < 3; i++ {
		if _, err := client.ComputeSplit(context.Background(), connect.NewRequest(&ledgerv1.ComputeSplitRequest{})); err != nil {
			t.Fatalf("ComputeSplit failed: %v", err)
		}
	}

	if got := testutil.ToFloat64(rpcRequests.WithLabelValues(procedure, "ok")) - before; got != 3 {
		t.Errorf("ok requests = %v, want 3", got)
	}

	_, err := client.TopExpenses(context.Background(), connect.NewRequest(&ledgerv1.TopExpensesRequest{}))
	if connect.CodeOf(err) != connect.CodeUnimplemented {
		t.Fatalf("code = %v, want Unimplemented", connect.CodeOf(err))
	}
	if got := testutil.ToFloat64(rpcRequests.WithLabelValues(ledgerv1.LedgerServiceTopExpensesProcedure, "unimplemented")); got < 1 {
		t.Errorf("unimplemented requests = %v, want >= 1", got)
	}
}

func TestCORS(t *testing.T) {
	handler := CORS(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusTeapot)
	}))

	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, httptest.NewRequest(http.MethodOptions, "/", nil))
	if rec.Code != http.StatusOK {
		t.Errorf("preflight status = %d, want 200", rec.Code)
	}
	if rec.Header().Get("Access-Control-Allow-Origin") != "*" {
		t.Error("missing Access-Control-Allow-Origin")
	}

	rec = httptest.NewRecorder()
	handler.ServeHTTP(rec, httptest.NewRequest(http.MethodPost, "/", nil))
	if rec.Code != http.StatusTeapot {
		t.Errorf("status = %d, want pass-through 418", rec.Code)
	}
}
