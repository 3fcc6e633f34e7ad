package main

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	"github.com/liquicity/transferd/internal/adapter/bridge"
	httpAdapter "github.com/liquicity/transferd/internal/adapter/http"
	"github.com/liquicity/transferd/internal/adapter/http/handler"
	"github.com/liquicity/transferd/internal/adapter/http/middleware"
	"github.com/liquicity/transferd/internal/adapter/provider"
	postgresRepo "github.com/liquicity/transferd/internal/adapter/repository/postgres"
	redisRepo "github.com/liquicity/transferd/internal/adapter/repository/redis"
	"github.com/liquicity/transferd/internal/infrastructure/alerting"
	"github.com/liquicity/transferd/internal/infrastructure/config"
	"github.com/liquicity/transferd/internal/infrastructure/logger"
	"github.com/liquicity/transferd/internal/infrastructure/metrics"
	"github.com/liquicity/transferd/internal/infrastructure/postgres"
	"github.com/liquicity/transferd/internal/infrastructure/redis"
	"github.com/liquicity/transferd/internal/usecase"
)

func main() {
	// Load configuration
	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "failed to load configuration: %v\n", err)
		os.Exit(1)
	}

	// Setup logger
	log := logger.New(logger.Config{
		Level:  cfg.LogLevel,
		Format: cfg.LogFormat,
	})

	ctx := context.Background()

	// Connect to PostgreSQL
	connectCtx, cancelConnect := context.WithTimeout(ctx, cfg.DatabaseTimeout)
	pool, err := postgres.NewPool(connectCtx, cfg.DatabaseURL, cfg.DatabaseMaxConns, cfg.DatabaseMinConns)
	cancelConnect()
	if err != nil {
		log.Fatal().Err(err).Msg("failed to connect to postgres")
	}
	defer pool.Close()
	log.Info().Msg("connected to postgres")

	// Run migrations
	if err := postgres.RunMigrations(cfg.DatabaseURL, "migrations"); err != nil {
		log.Fatal().Err(err).Msg("failed to run migrations")
	}

	// Connect to Redis
	redisClient, err := redis.NewClient(ctx, cfg.RedisURL)
	if err != nil {
		log.Fatal().Err(err).Msg("failed to connect to redis")
	}
	defer redisClient.Close()
	log.Info().Msg("connected to redis")

	// Initialize repositories
	txManager := postgresRepo.NewTxManager(pool)
	outcomeRepo := postgresRepo.NewOutcomeRepository(pool)
	retrier := postgresRepo.NewRetrier()
	idGen := postgresRepo.NewULIDGenerator()
	idempotencyStore := redisRepo.NewIdempotencyStore(redisClient)
	cache := redisRepo.NewCache(redisClient)

	// Initialize payment backends and bridge
	registry := provider.NewRegistry(provider.Config{
		Treasury: provider.TreasuryConfig{
			BaseURL: cfg.TreasuryBaseURL,
			APIKey:  cfg.TreasuryAPIKey,
			OrgID:   cfg.TreasuryOrgID,
			Sandbox: cfg.ProviderSandboxMode,
			Timeout: cfg.TreasuryTimeout,
		},
		CardNetwork: provider.CardNetworkConfig{
			BaseURL:   cfg.CardNetworkBaseURL,
			APIKey:    cfg.CardNetworkAPIKey,
			SecretKey: cfg.CardNetworkSecretKey,
			Sandbox:   cfg.ProviderSandboxMode,
			Timeout:   cfg.CardNetworkTimeout,
		},
		Bridge: bridge.Config{
			RPCEndpoints:    cfg.BridgeRPCEndpoints,
			SigningKey:      cfg.BridgeSigningKey,
			SlippageBps:     cfg.BridgeSlippageBps,
			MockMode:        cfg.BridgeMockMode,
			SettlementDelay: cfg.OfframpSettlementTime,
			Timeout:         cfg.BridgeTimeout,
		},
	}, log)

	// Initialize use cases
	m := metrics.New()
	saga := usecase.NewTransferSaga(usecase.TransferSagaConfig{
		Registry:                registry,
		Ledger:                  usecase.NewLedgerPorts(registry),
		IDGenerator:             idGen,
		Observer:                m,
		Logger:                  log,
		DefaultSourceChain:      cfg.DefaultSourceChain,
		DefaultDestinationChain: cfg.DefaultDestinationChain,
	})
	outcomeUC := usecase.NewOutcomeUseCase(txManager, outcomeRepo, retrier, cache)

	// Start the review-alert poller
	pollerCtx, stopPoller := context.WithCancel(ctx)
	defer stopPoller()

	poller := alerting.NewPoller(alerting.Config{
		Source:    outcomeUC,
		Publisher: alerting.NewLogPublisher(log),
		Logger:    log,
		BatchSize: cfg.AlertBatchSize,
		Interval:  cfg.AlertPollInterval,
	})
	go func() {
		if err := poller.Start(pollerCtx); err != nil && err != context.Canceled {
			log.Error().Err(err).Msg("alert poller stopped")
		}
	}()

	// Initialize handlers
	transferHandler := handler.NewTransferHandler(saga, outcomeUC, registry, log)
	healthHandler := handler.NewHealthHandler(pool, redisClient)

	// Create router
	router := httpAdapter.NewRouter(httpAdapter.RouterConfig{
		TransferHandler:  transferHandler,
		HealthHandler:    healthHandler,
		IdempotencyStore: idempotencyStore,
		IdempotencyTTL:   cfg.IdempotencyTTL,
		RateLimiter:      middleware.NewRateLimiter(cfg.RateLimitPerSecond, cfg.RateLimitBurst),
		Logger:           log,
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
	stopPoller()

	// Graceful shutdown
	shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.HTTPShutdownTimeout)
	defer cancel()

	if err := server.Shutdown(shutdownCtx); err != nil {
		log.Fatal().Err(err).Msg("server forced to shutdown")
	}

	log.Info().Msg("server stopped")
}
