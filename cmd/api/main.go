package main

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/chicsouqsa-collab/Spay-sub002/config"
	stripeGateway "github.com/chicsouqsa-collab/Spay-sub002/internal/adapter/gateway/stripe"
	httpHandler "github.com/chicsouqsa-collab/Spay-sub002/internal/adapter/http/handler"
	pgStorage "github.com/chicsouqsa-collab/Spay-sub002/internal/adapter/storage/postgres"
	redisStorage "github.com/chicsouqsa-collab/Spay-sub002/internal/adapter/storage/redis"
	"github.com/chicsouqsa-collab/Spay-sub002/internal/core/domain"
	"github.com/chicsouqsa-collab/Spay-sub002/internal/core/ports"
	"github.com/chicsouqsa-collab/Spay-sub002/internal/service"
	"github.com/chicsouqsa-collab/Spay-sub002/pkg/logger"
	"github.com/chicsouqsa-collab/Spay-sub002/pkg/metrics"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
)

// eventCacheTTL bounds the fast-path dedup marker; the ledger stays
// authoritative long after it lapses.
const eventCacheTTL = 24 * time.Hour

func main() {
	// Load configuration
	cfg, err := config.Load("")
	if err != nil {
		fmt.Fprintf(os.Stderr, "failed to load config: %v\n", err)
		os.Exit(1)
	}

	// Initialize logger
	log := logger.New(cfg.Log.Level, cfg.Log.Pretty)

	log.Info().
		Str("mode", cfg.Stripe.Mode).
		Int("port", cfg.Server.Port).
		Msg("Starting subscription webhook service")

	ctx := context.Background()

	// Initialize PostgreSQL pool
	pool, err := pgStorage.NewPool(ctx, cfg.Database, log)
	if err != nil {
		log.Fatal().Err(err).Msg("Failed to connect to PostgreSQL")
	}
	defer pool.Close()
	log.Info().Msg("PostgreSQL connected")

	// Initialize Redis client
	rdb, err := redisStorage.NewClient(ctx, cfg.Redis, log)
	if err != nil {
		log.Fatal().Err(err).Msg("Failed to connect to Redis")
	}
	defer rdb.Close()
	log.Info().Msg("Redis connected")

	// Initialize repositories
	ledgerRepo := pgStorage.NewLedgerRepo(pool)
	subRepo := pgStorage.NewSubscriptionRepo(pool)
	jobQueue := pgStorage.NewJobRepo(pool)
	transactor := pgStorage.NewTransactor(pool)
	eventCache := redisStorage.NewEventCache(rdb, eventCacheTTL)

	// Metrics registry
	reg := prometheus.NewRegistry()
	reg.MustRegister(collectors.NewGoCollector())
	reg.MustRegister(collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}))
	m := metrics.New(reg, "spay")

	// Gateway adapter
	codec := stripeGateway.NewCodec(cfg.Stripe.WebhookSecret(), domain.GatewayMode(cfg.Stripe.Mode))
	gatewayClient := stripeGateway.NewClient(cfg.Stripe.APIKey())

	// Ops auth
	hashSvc := service.NewArgon2HashService()
	tokenSvc := service.NewJWTTokenService(cfg.Ops.JWTSecret, cfg.Ops.JWTExpiry, cfg.Ops.JWTIssuer)
	authSvc := service.NewOpsAuthService(cfg.Ops.KeyHash, hashSvc, tokenSvc, log)

	// Transition scheduling + state machine
	scheduler := service.NewTransitionCoordinator(jobQueue, m, log)
	subSvc := service.NewSubscriptionService(subRepo, gatewayClient, scheduler, log)
	runner := service.NewTransitionRunner(subSvc, jobQueue, cfg.Jobs.MaxAttempts, cfg.Jobs.RetryBackoff, m, log)

	// Event handlers
	registry := service.NewHandlerRegistry()
	mustRegister := func(eventType string, h ports.EventHandler) {
		if err := registry.Register(eventType, h); err != nil {
			log.Fatal().Err(err).Str("event_type", eventType).Msg("Failed to register event handler")
		}
	}
	mustRegister(domain.EventSubscriptionUpdated, service.NewSubscriptionUpdatedHandler(subRepo, scheduler, log))
	mustRegister(domain.EventSubscriptionDeleted, service.NewSubscriptionDeletedHandler(subRepo, scheduler, log))
	mustRegister(domain.EventAccountUpdated, service.NewAccountUpdatedHandler(cfg.Stripe.AccountID, log))
	mustRegister(domain.EventInvoicePaymentFailed, service.NewInvoicePaymentFailedHandler(subRepo, scheduler, log))

	ingestSvc := service.NewIngestService(codec, registry, ledgerRepo, eventCache, transactor, m, log)

	// Transition worker
	worker := service.NewWorker(jobQueue, runner, cfg.Jobs.PollInterval, cfg.Jobs.ClaimTimeout, cfg.Jobs.BatchSize, log)
	workerCtx, stopWorker := context.WithCancel(ctx)
	defer stopWorker()
	go worker.Run(workerCtx) //nolint:errcheck

	// Initialize health checkers
	pgHealth := pgStorage.NewHealthCheck(pool)
	redisHealth := redisStorage.NewHealthCheck(rdb)

	// Setup Gin router with all routes
	router := httpHandler.SetupRouter(httpHandler.RouterDeps{
		IngestSvc:      ingestSvc,
		AuthSvc:        authSvc,
		TokenSvc:       tokenSvc,
		LedgerRepo:     ledgerRepo,
		JobQueue:       jobQueue,
		HealthCheckers: []ports.HealthChecker{pgHealth, redisHealth},
		MetricsReg:     reg,
		Logger:         log,
	})

	// HTTP Server with graceful shutdown
	addr := fmt.Sprintf("%s:%d", cfg.Server.Host, cfg.Server.Port)
	srv := &http.Server{
		Addr:    addr,
		Handler: router,
	}

	// Start server in goroutine
	go func() {
		log.Info().Str("addr", addr).Msg("HTTP server listening")
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatal().Err(err).Msg("HTTP server failed")
		}
	}()

	// Graceful shutdown
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	log.Info().Msg("Shutting down server...")

	stopWorker()

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.Error().Err(err).Msg("Server forced to shutdown")
	}

	log.Info().Msg("Server exited")
}
