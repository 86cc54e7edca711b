package service

import (
	"context"
	"net/http"
	"net/http/httptest"
	"os"
	"testing"
	"time"

	"connectrpc.com/connect"

	"github.com/orbiapp/splitease/internal/auth"
	"github.com/orbiapp/splitease/internal/ledger"
	"github.com/orbiapp/splitease/internal/middleware"
	"github.com/orbiapp/splitease/internal/rpc"
	"github.com/orbiapp/splitease/internal/settlement"
	"github.com/orbiapp/splitease/internal/storage"
	"github.com/orbiapp/splitease/internal/storage/sqlite"
)

// testIdentity injects a fixed user identity handler-side, standing in for
// the JWT interceptor so tests exercise the services, not token parsing.
func testIdentity(userID, email string) connect.UnaryInterceptorFunc {
	return func(next connect.UnaryFunc) connect.UnaryFunc {
		return func(ctx context.Context, req connect.AnyRequest) (connect.AnyResponse, error) {
			if userID != "" {
				ctx = context.WithValue(ctx, middleware.UserIDKey, userID)
			}
			if email != "" {
				ctx = context.WithValue(ctx, middleware.EmailKey, email)
			}
			return next(ctx, req)
		}
	}
}

type testEnv struct {
	server *httptest.Server
	store  storage.Store
}

// newTestEnv starts an in-process server with all three services mounted.
// Requests carry the given identity; pass empty strings for anonymous.
func newTestEnv(t *testing.T, userID, email string) *testEnv {
	t.Helper()

	tmpFile, err := os.CreateTemp("", "service-test-*.db")
	if err != nil {
		t.Fatalf("failed to create temp file: %v", err)
	}
	tmpFile.Close()

	store, err := sqlite.New(tmpFile.Name())
	if err != nil {
		os.Remove(tmpFile.Name())
		t.Fatalf("failed to create store: %v", err)
	}

	ledgerCore := ledger.New(store)
	workflow := settlement.NewWorkflow(store)
	jwtManager := auth.NewJWTManager("test-secret", time.Hour)
	authenticator := auth.NewPasswordAuthenticator(store)

	identity := connect.WithInterceptors(testIdentity(userID, email))

	mux := http.NewServeMux()
	ledgerPath, ledgerHandler := NewLedgerServiceHandler(
		NewLedgerService(ledgerCore, workflow, store), identity)
	mux.Handle(ledgerPath, ledgerHandler)
	settlementPath, settlementHandler := NewSettlementServiceHandler(
		NewSettlementService(ledgerCore, workflow, store), identity)
	mux.Handle(settlementPath, settlementHandler)
	authPath, authHandler := NewAuthServiceHandler(
		NewAuthService(authenticator, jwtManager, store), identity)
	mux.Handle(authPath, authHandler)

	server := httptest.NewServer(mux)
	t.Cleanup(func() {
		server.Close()
		store.Close()
		os.Remove(tmpFile.Name())
	})

	return &testEnv{server: server, store: store}
}

// call issues a unary RPC against the test server with the JSON codec.
func call[Req, Res any](t *testing.T, env *testEnv, procedure string, req *Req) (*Res, error) {
	t.Helper()
	client := connect.NewClient[Req, Res](env.server.Client(), env.server.URL+procedure, rpc.Codec())
	res, err := client.CallUnary(context.Background(), connect.NewRequest(req))
	if err != nil {
		return nil, err
	}
	return res.Msg, nil
}

// wantCode fails the test unless err is a connect error with the given code.
func wantCode(t *testing.T, err error, code connect.Code) {
	t.Helper()
	if err == nil {
		t.Fatalf("expected %v error, got nil", code)
	}
	if got := connect.CodeOf(err); got != code {
		t.Fatalf("error code = %v, want %v (err: %v)", got, code, err)
	}
}
