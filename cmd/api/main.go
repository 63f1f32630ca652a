package main

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"shared-wallet-service/config"
	httpHandler "shared-wallet-service/internal/adapter/http/handler"
	"shared-wallet-service/internal/adapter/storage/kv"
	"shared-wallet-service/internal/adapter/storage/memory"
	pgStorage "shared-wallet-service/internal/adapter/storage/postgres"
	redisStorage "shared-wallet-service/internal/adapter/storage/redis"
	"shared-wallet-service/internal/core/ports"
	"shared-wallet-service/internal/service"
	"shared-wallet-service/pkg/logger"
)

func main() {
	// Load configuration
	cfg, err := config.Load("")
	if err != nil {
		fmt.Fprintf(os.Stderr, "failed to load config: %v\n", err)
		os.Exit(1)
	}

	// Initialize logger
	log := logger.New(cfg.Log.Level, cfg.Log.Pretty)

	if cfg.Auth.Salt == "" {
		log.Fatal().Msg("auth salt must be configured (SWL_AUTH_SALT)")
	}

	log.Info().
		Str("mode", cfg.Server.Mode).
		Str("storage", cfg.Storage.Driver).
		Int("port", cfg.Server.Port).
		Msg("Starting Shared Wallet Service")

	ctx := context.Background()

	// Initialize the key-value store backend
	var (
		store          ports.KeyValueStore
		healthCheckers []ports.HealthChecker
		cleanup        func()
	)
	switch cfg.Storage.Driver {
	case "redis":
		rdb, err := redisStorage.NewClient(ctx, cfg.Redis, log)
		if err != nil {
			log.Fatal().Err(err).Msg("Failed to connect to Redis")
		}
		cleanup = func() { _ = rdb.Close() }
		store = redisStorage.NewStore(rdb)
		healthCheckers = append(healthCheckers, redisStorage.NewHealthCheck(rdb))
		log.Info().Msg("Redis connected")

	case "postgres":
		pool, err := pgStorage.NewPool(ctx, cfg.Database, log)
		if err != nil {
			log.Fatal().Err(err).Msg("Failed to connect to PostgreSQL")
		}
		cleanup = pool.Close
		pgStore := pgStorage.NewStore(pool)
		if err := pgStore.EnsureSchema(ctx); err != nil {
			log.Fatal().Err(err).Msg("Failed to ensure PostgreSQL schema")
		}
		store = pgStore
		healthCheckers = append(healthCheckers, pgStorage.NewHealthCheck(pool))
		log.Info().Msg("PostgreSQL connected")

	case "memory":
		// Volatile, single-process. Development and tests only.
		store = memory.NewStore()
		cleanup = func() {}
		log.Warn().Msg("Using in-memory storage, data will not survive a restart")

	default:
		log.Fatal().Str("driver", cfg.Storage.Driver).Msg("Unknown storage driver")
	}
	defer cleanup()

	// Initialize repositories
	userRepo := kv.NewUserRepo(store)
	credRepo := kv.NewCredentialRepo(store)
	walletRepo := kv.NewWalletRepo(store)
	txRepo := kv.NewTransactionRepo(store)

	// Initialize services
	tokenSvc := service.NewDigestTokenService(cfg.Auth.Salt, userRepo)
	authSvc := service.NewAuthService(credRepo, userRepo, tokenSvc, cfg.Auth.Salt, log)
	userSvc := service.NewUserService(userRepo, credRepo)
	walletSvc := service.NewWalletService(walletRepo, userRepo, log)
	accessSvc := service.NewAccessService(walletRepo, userRepo, log)
	txSvc := service.NewTransactionService(txRepo, walletRepo, log)

	// Setup Gin router with all routes
	router := httpHandler.SetupRouter(httpHandler.RouterDeps{
		AuthSvc:        authSvc,
		UserSvc:        userSvc,
		WalletSvc:      walletSvc,
		AccessSvc:      accessSvc,
		TxSvc:          txSvc,
		TokenSvc:       tokenSvc,
		HealthCheckers: healthCheckers,
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

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.Error().Err(err).Msg("Server forced to shutdown")
	}

	log.Info().Msg("Server exited")
}
