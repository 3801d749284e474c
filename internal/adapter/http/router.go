package http

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	chimiddleware "github.com/go-chi/chi/v5/middleware"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/osei/papertrade/internal/adapter/http/handler"
	"github.com/osei/papertrade/internal/adapter/http/middleware"
	"github.com/osei/papertrade/internal/infrastructure/auth"
	"github.com/osei/papertrade/internal/usecase"
)

// RouterConfig holds dependencies for the router.
type RouterConfig struct {
	TradeHandler     *handler.TradeHandler
	PortfolioHandler *handler.PortfolioHandler
	AccountHandler   *handler.AccountHandler
	HealthHandler    *handler.HealthHandler
	JWTManager       *auth.JWTManager
	IdempotencyStore usecase.IdempotencyStore
	RateLimiter      *middleware.RateLimiter
	Logging          *middleware.LoggingMiddleware
	Metrics          *middleware.MetricsMiddleware
}

// NewRouter creates a new HTTP router.
func NewRouter(cfg RouterConfig) http.Handler {
	r := chi.NewRouter()

	// Global middleware
	r.Use(chimiddleware.RequestID)
	r.Use(chimiddleware.RealIP)
	r.Use(middleware.Recovery)

	if cfg.Logging != nil {
		r.Use(cfg.Logging.Wrap)
	}

	if cfg.Metrics != nil {
		r.Use(cfg.Metrics.Wrap)
	}

	if cfg.RateLimiter != nil {
		r.Use(cfg.RateLimiter.Limit)
	}

	// Health and metrics endpoints
	r.Get("/health", cfg.HealthHandler.Liveness)
	r.Get("/ready", cfg.HealthHandler.Readiness)
	r.Handle("/metrics", promhttp.Handler())

	// API v1
	r.Route("/api/v1", func(r chi.Router) {
		r.Use(middleware.AuthMiddleware(cfg.JWTManager))

		// Idempotency middleware for mutating requests
		if cfg.IdempotencyStore != nil {
			idempotencyMiddleware := middleware.NewIdempotencyMiddleware(cfg.IdempotencyStore)
			r.Use(idempotencyMiddleware.Wrap)
		}

		r.Post("/trades", cfg.TradeHandler.Execute)
		r.Get("/portfolio", cfg.PortfolioHandler.Get)

		r.Route("/account", func(r chi.Router) {
			r.Get("/", cfg.AccountHandler.Get)
			r.Get("/transactions", cfg.PortfolioHandler.ListTransactions)
		})
	})

	return r
}
