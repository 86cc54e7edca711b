package main

import (
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"time"

	"connectrpc.com/connect"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"golang.org/x/net/http2"
	"golang.org/x/net/http2/h2c"

	"github.com/orbiapp/splitease/internal/auth"
	"github.com/orbiapp/splitease/internal/ledger"
	"github.com/orbiapp/splitease/internal/middleware"
	"github.com/orbiapp/splitease/internal/relay"
	"github.com/orbiapp/splitease/internal/service"
	"github.com/orbiapp/splitease/internal/settlement"
	"github.com/orbiapp/splitease/internal/storage/sqlite"
	"github.com/orbiapp/splitease/pkg/logging"
)

const tokenDuration = 24 * time.Hour

func getEnv(key, fallback string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return fallback
}

func main() {
	logging.Setup()

	dbPath := getEnv("DB_PATH", "./data/splitease.db")
	jwtSecret := getEnv("JWT_SECRET", "")
	if jwtSecret == "" {
		slog.Error("JWT_SECRET is required")
		os.Exit(1)
	}
	port := getEnv("PORT", "8080")
	gatewayURL := getEnv("SMS_GATEWAY_URL", "https://www.fast2sms.com/dev/bulkV2")
	gatewayKey := getEnv("SMS_API_KEY", "")

	// Initialize SQLite storage
	store, err := sqlite.New(dbPath)
	if err != nil {
		slog.Error("Failed to initialize storage", "error", err)
		os.Exit(1)
	}
	defer store.Close()
	slog.Info("Storage initialized", "database", dbPath)

	// Core components
	ledgerCore := ledger.New(store)
	workflow := settlement.NewWorkflow(store)

	// Identity collaborator
	jwtManager := auth.NewJWTManager(jwtSecret, tokenDuration)
	authenticator := auth.NewPasswordAuthenticator(store)

	logged := connect.WithInterceptors(middleware.LoggingInterceptor())
	authed := connect.WithInterceptors(
		middleware.LoggingInterceptor(),
		middleware.RequireAuth(jwtManager),
	)

	mux := http.NewServeMux()

	// Register RPC services
	ledgerPath, ledgerHandler := service.NewLedgerServiceHandler(
		service.NewLedgerService(ledgerCore, workflow, store), authed)
	mux.Handle(ledgerPath, ledgerHandler)

	settlementPath, settlementHandler := service.NewSettlementServiceHandler(
		service.NewSettlementService(ledgerCore, workflow, store), authed)
	mux.Handle(settlementPath, settlementHandler)

	authPath, authHandler := service.NewAuthServiceHandler(
		service.NewAuthService(authenticator, jwtManager, store), logged)
	mux.Handle(authPath, authHandler)

	// SMS relay (thin pass-through, not part of the ledger core)
	if gatewayKey != "" {
		mux.Handle("/api/send-sms", relay.NewHandler(gatewayURL, gatewayKey))
		slog.Info("SMS relay enabled", "gateway", gatewayURL)
	} else {
		slog.Warn("SMS relay disabled: SMS_API_KEY not set")
	}

	// Prometheus metrics
	mux.Handle("/metrics", promhttp.Handler())

	handler := corsMiddleware(mux)

	// Wrap with h2c for HTTP/2 without TLS (required for Connect)
	h2cHandler := h2c.NewHandler(handler, &http2.Server{})

	addr := fmt.Sprintf(":%s", port)
	slog.Info("SplitEase server starting", "address", addr)
	if err := http.ListenAndServe(addr, h2cHandler); err != nil {
		slog.Error("Server failed", "error", err)
		os.Exit(1)
	}
}

// corsMiddleware adds CORS headers for browser access
func corsMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Access-Control-Allow-Origin", "*")
		w.Header().Set("Access-Control-Allow-Methods", "POST, GET, OPTIONS")
		w.Header().Set("Access-Control-Allow-Headers", "Authorization, Content-Type, Connect-Protocol-Version, Connect-Timeout-Ms")
		w.Header().Set("Access-Control-Expose-Headers", "Connect-Protocol-Version, Connect-Timeout-Ms")

		if r.Method == "OPTIONS" {
			w.WriteHeader(http.StatusOK)
			return
		}

		next.ServeHTTP(w, r)
	})
}
