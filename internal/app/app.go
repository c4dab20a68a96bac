// Package app wires configuration, storage and transport into a runnable server.
package app

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"
	"strings"
	"time"

	"connectrpc.com/connect"

	"github.com/mmynk/tripledger/internal/auth"
	"github.com/mmynk/tripledger/internal/config"
	"github.com/mmynk/tripledger/internal/metrics"
	"github.com/mmynk/tripledger/internal/middleware"
	"github.com/mmynk/tripledger/internal/realtime"
	"github.com/mmynk/tripledger/internal/service"
	"github.com/mmynk/tripledger/internal/storage"
	"github.com/mmynk/tripledger/internal/storage/postgres"
	"github.com/mmynk/tripledger/internal/storage/sqlite"
)

// OpenStore opens the store selected by cfg.
func OpenStore(ctx context.Context, cfg config.DatabaseConfig) (storage.Store, error) {
	switch strings.ToLower(cfg.Driver) {
	case config.DriverSQLite:
		store, err := sqlite.New(cfg.Path)
		if err != nil {
			return nil, err
		}
		return store, nil
	case config.DriverPostgres:
		store, err := postgres.New(ctx, cfg.URL)
		if err != nil {
			return nil, err
		}
		return store, nil
	default:
		return nil, fmt.Errorf("unknown database driver %q", cfg.Driver)
	}
}

// Server holds the long-lived pieces behind the HTTP handler.
type Server struct {
	Hub     *realtime.Hub
	Metrics *metrics.Metrics
	handler http.Handler
}

// NewServer builds the HTTP surface: the Connect ledger service, the realtime
// websocket endpoint and /metrics.
func NewServer(cfg config.Config, store storage.Store) *Server {
	s := &Server{
		Hub:     realtime.NewHub(),
		Metrics: metrics.New(),
	}

	interceptors := []connect.Interceptor{
		middleware.LoggingInterceptor(),
		middleware.MetricsInterceptor(s.Metrics),
	}
	if cfg.Auth.JWTSecret != "" {
		verifier := auth.NewVerifier(cfg.Auth.JWTSecret, cfg.Auth.Issuer, cfg.Auth.Leeway.Duration)
		interceptors = append(interceptors, middleware.RequireAuth(verifier))
	} else {
		slog.Warn("JWT_SECRET not set, ledger API is unauthenticated")
	}

	svc := service.NewLedgerService(store,
		service.WithNotifier(s.Hub),
		service.WithMetrics(s.Metrics),
		service.WithBaseCurrency(cfg.Ledger.BaseCurrency),
	)

	mux := http.NewServeMux()
	path, handler := service.NewLedgerServiceHandler(svc, connect.WithInterceptors(interceptors...))
	mux.Handle(path, handler)
	mux.Handle("GET /ws/trips/{tripID}", s.Hub)
	mux.Handle("GET /metrics", s.Metrics.Handler())
	mux.HandleFunc("GET /healthz", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte("ok"))
	})

	s.handler = loggingMiddleware(corsMiddleware(mux))
	return s
}

func (s *Server) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	s.handler.ServeHTTP(w, r)
}

// Close disconnects realtime subscribers.
func (s *Server) Close() error {
	return s.Hub.Close()
}

// loggingMiddleware logs all incoming requests
func loggingMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()

		slog.Debug("Request received",
			"method", r.Method,
			"path", r.URL.Path,
			"remote_addr", r.RemoteAddr,
			"user_agent", r.UserAgent(),
		)

		next.ServeHTTP(w, r)

		slog.Debug("Request completed",
			"method", r.Method,
			"path", r.URL.Path,
			"duration_ms", time.Since(start).Milliseconds(),
		)
	})
}

// corsMiddleware adds CORS headers for browser access
func corsMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Access-Control-Allow-Origin", "*")
		w.Header().Set("Access-Control-Allow-Methods", "POST, GET, OPTIONS")
		w.Header().Set("Access-Control-Allow-Headers", "Authorization, Content-Type, Connect-Protocol-Version, Connect-Timeout-Ms")
		w.Header().Set("Access-Control-Expose-Headers", "Connect-Protocol-Version, Connect-Timeout-Ms")

		if r.Method == http.MethodOptions {
			w.WriteHeader(http.StatusOK)
			return
		}

		next.ServeHTTP(w, r)
	})
}
