package main

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	"github.com/rs/zerolog/log"

	httpAdapter "github.com/osei/papertrade/internal/adapter/http"
	"github.com/osei/papertrade/internal/adapter/http/handler"
	"github.com/osei/papertrade/internal/adapter/http/middleware"
	"github.com/osei/papertrade/internal/adapter/quote"
	postgresRepo "github.com/osei/papertrade/internal/adapter/repository/postgres"
	redisRepo "github.com/osei/papertrade/internal/adapter/repository/redis"
	"github.com/osei/papertrade/internal/infrastructure/auth"
	"github.com/osei/papertrade/internal/infrastructure/config"
	"github.com/osei/papertrade/internal/infrastructure/logger"
	"github.com/osei/papertrade/internal/infrastructure/metrics"
	"github.com/osei/papertrade/internal/infrastructure/postgres"
	"github.com/osei/papertrade/internal/infrastructure/redis"
	"github.com/osei/papertrade/internal/usecase"
)

func main() {
	// Load configuration
	cfg, err := config.Load()
	if err != nil {
		log.Fatal().Err(err).Msg("failed to load configuration")
	}

	// Setup logger
	appLogger := logger.New(logger.Config{Level: cfg.LogLevel, Format: cfg.LogFormat})
	log.Logger = appLogger

	ctx := context.Background()

	// Run migrations
	if cfg.MigrationsPath != "" {
		if err := postgres.RunMigrations(cfg.DatabaseURL, cfg.MigrationsPath); err != nil {
			log.Fatal().Err(err).Msg("failed to run migrations")
		}
	}

	// Connect to PostgreSQL
	pool, err := postgres.NewPool(ctx, cfg.DatabaseURL, cfg.DatabaseMaxConns, cfg.DatabaseMinConns)
	if err != nil {
		log.Fatal().Err(err).Msg("failed to connect to postgres")
	}
	defer pool.Close()
	log.Info().Msg("connected to postgres")

	// Connect to Redis
	redisClient, err := redis.NewClient(ctx, cfg.RedisURL)
	if err != nil {
		log.Fatal().Err(err).Msg("failed to connect to redis")
	}
	defer redisClient.Close()
	log.Info().Msg("connected to redis")

	// Initialize repositories
	txManager := postgresRepo.NewTxManager(pool)
	accountRepo := postgresRepo.NewAccountRepository(pool)
	transactionRepo := postgresRepo.NewTransactionRepository(pool)
	idempotencyStore := redisRepo.NewIdempotencyStore(redisClient)
	idGen := postgresRepo.NewULIDGenerator()
	retrier := postgresRepo.NewRetrier(appLogger)

	// Quote sources: trades always price against the feed directly;
	// portfolio valuation tolerates a short cache.
	feed := quote.NewFeedClient(cfg.QuoteFeedURL, cfg.QuoteTimeout, appLogger)
	cachedFeed := redisRepo.NewCachedQuoteSource(feed, redisClient, cfg.QuoteCacheTTL)

	// Initialize use cases
	tradeUC := usecase.NewTradeUseCase(txManager, accountRepo, transactionRepo, feed, idGen, retrier, appLogger)
	portfolioUC := usecase.NewPortfolioUseCase(transactionRepo, cachedFeed, appLogger)
	accountUC := usecase.NewAccountUseCase(txManager, accountRepo, appLogger)

	// Initialize handlers
	tradeHandler := handler.NewTradeHandler(tradeUC)
	portfolioHandler := handler.NewPortfolioHandler(portfolioUC)
	accountHandler := handler.NewAccountHandler(accountUC)
	healthHandler := handler.NewHealthHandler(pool, redisClient)

	// JWT verification is optional; without a secret the server trusts
	// the X-User-ID header from an authenticating gateway.
	var jwtManager *auth.JWTManager
	if cfg.JWTSecret != "" {
		jwtManager = auth.NewJWTManager(cfg.JWTSecret, cfg.JWTExpiration)
	} else {
		log.Warn().Msg("JWT_SECRET not set, trusting X-User-ID header")
	}

	appMetrics := metrics.New()

	// Create router
	router := httpAdapter.NewRouter(httpAdapter.RouterConfig{
		TradeHandler:     tradeHandler,
		PortfolioHandler: portfolioHandler,
		AccountHandler:   accountHandler,
		HealthHandler:    healthHandler,
		JWTManager:       jwtManager,
		IdempotencyStore: idempotencyStore,
		RateLimiter:      middleware.NewRateLimiter(cfg.RateLimitPerSecond, cfg.RateLimitBurst),
		Logging:          middleware.NewLoggingMiddleware(appLogger),
		Metrics:          middleware.NewMetricsMiddleware(appMetrics),
	})

	// Create server
	server := &http.Server{
		Addr:         fmt.Sprintf(":%s", cfg.HTTPPort),
		Handler:      router,
		ReadTimeout:  cfg.HTTPReadTimeout,
		WriteTimeout: cfg.HTTPWriteTimeout,
		IdleTimeout:  cfg.HTTPIdleTimeout,
	}

	// Start server in goroutine
	go func() {
		log.Info().Str("port", cfg.HTTPPort).Msg("starting server")
		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatal().Err(err).Msg("server failed")
		}
	}()

	// Wait for interrupt signal
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Info().Msg("shutting down server...")

	// Graceful shutdown
	shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.HTTPShutdownTimeout)
	defer cancel()

	if err := server.Shutdown(shutdownCtx); err != nil {
		log.Fatal().Err(err).Msg("server forced to shutdown")
	}

	log.Info().Msg("server stopped")
}
