// cmd/assistant-server/main.go
package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"go.uber.org/zap"

	"fieldscope/internal/common/config"
	"fieldscope/internal/common/database"
	"fieldscope/internal/common/logger"
	"fieldscope/internal/common/observability"
	"fieldscope/internal/dataservice"
	"fieldscope/internal/handlers/canvass"
	"fieldscope/internal/handlers/compare"
	"fieldscope/internal/handlers/district"
	"fieldscope/internal/handlers/precinct"
	"fieldscope/internal/nlu/matcher"
	"fieldscope/internal/router"
	"fieldscope/internal/server"
	"fieldscope/pkg/registry"
)

// retryWithBackoff attempts to execute a function with exponential backoff
func retryWithBackoff(operation func() error, maxRetries int, initialDelay time.Duration, log *zap.Logger, operationName string) error {
	var err error
	delay := initialDelay

	for i := 0; i < maxRetries; i++ {
		err = operation()
		if err == nil {
			return nil
		}

		if i < maxRetries-1 {
			log.Warn(fmt.Sprintf("%s failed, retrying...", operationName),
				zap.Error(err),
				zap.Int("attempt", i+1),
				zap.Int("maxRetries", maxRetries),
				zap.Duration("nextRetryIn", delay),
			)
			time.Sleep(delay)
			delay *= 2 // Exponential backoff
		}
	}

	return fmt.Errorf("%s failed after %d attempts: %w", operationName, maxRetries, err)
}

func main() {
	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "config load failed: %v\n", err)
		os.Exit(1)
	}

	zapLog := logger.New(cfg.Logging.Level, cfg.Logging.Format)
	defer zapLog.Sync()
	log := logger.NewZapAdapter(zapLog)

	zapLog.Info("Starting assistant server...",
		zap.String("name", cfg.App.Name),
		zap.String("environment", cfg.App.Environment),
	)

	obs := observability.New("assistant-server")
	defer obs.Shutdown()

	ctx := context.Background()

	// --- Data Service ---
	// Postgres and Redis back the data service when configured; otherwise the
	// seeded in-memory reference data serves every handler.
	data, cleanup := buildDataService(ctx, cfg, zapLog, log)
	defer cleanup()

	// --- Intent Matcher ---
	defs := matcher.DefaultDefinitions()
	if cfg.Router.RegistryPath != "" {
		reg, err := registry.LoadRegistry(cfg.Router.RegistryPath)
		if err != nil {
			zapLog.Fatal("intent registry load failed", zap.Error(err))
		}
		defs = reg.Definitions()
		zapLog.Info("intent registry loaded",
			zap.String("path", cfg.Router.RegistryPath),
			zap.Int("intents", len(defs)),
		)
	}
	m, err := matcher.New(defs)
	if err != nil {
		zapLog.Fatal("intent matcher construction failed", zap.Error(err))
	}

	// --- Handlers & Router ---
	handlers := []router.Handler{
		canvass.NewHandler(canvass.FromAppConfig(cfg), data, log),
		compare.NewHandler(compare.DefaultConfig(), data, log),
		district.NewHandler(data, log),
		precinct.NewHandler(precinct.FromAppConfig(cfg), data, log),
	}
	r, err := router.New(m, handlers, cfg.Router.MinConfidence, log)
	if err != nil {
		zapLog.Fatal("router construction failed", zap.Error(err))
	}
	zapLog.Info("All handlers registered successfully", zap.Int("handlers", len(handlers)))

	// --- HTTP Server ---
	srv := server.New(cfg.Server, r, obs, log)
	go func() {
		if err := srv.Start(); err != nil {
			zapLog.Fatal("http server failed", zap.Error(err))
		}
	}()

	// --- Graceful Shutdown ---
	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, os.Interrupt, syscall.SIGTERM)
	<-sigCh

	zapLog.Info("Shutdown signal received, stopping server...")
	shutdownCtx, cancel := context.WithTimeout(context.Background(),
		time.Duration(cfg.Server.ShutdownTimeout)*time.Millisecond)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		zapLog.Error("Error shutting down http server", zap.Error(err))
	}

	zapLog.Info("Assistant server stopped gracefully")
}

// buildDataService connects Postgres (and Redis for caching) with retry, or
// falls back to the in-memory service when no database is configured. The
// returned cleanup closes whatever was opened.
func buildDataService(ctx context.Context, cfg *config.Config, zapLog *zap.Logger, log logger.Logger) (dataservice.DataService, func()) {
	if !cfg.Database.Postgres.Configured() {
		zapLog.Info("No database configured, using in-memory reference data")
		return dataservice.NewMemoryService(), func() {}
	}

	var pg *database.PostgresClient
	err := retryWithBackoff(func() error {
		var err error
		pg, err = database.NewPostgres(cfg.Database.Postgres)
		if err != nil {
			return err
		}
		return pg.Ping(ctx)
	}, 5, 2*time.Second, zapLog, "PostgreSQL connection")
	if err != nil {
		zapLog.Fatal("PostgreSQL connection failed", zap.Error(err))
	}
	zapLog.Info("PostgreSQL connected")

	cleanup := func() { pg.Close() }

	var redisClient *database.RedisClient
	if cfg.Database.Redis.Address != "" {
		err = retryWithBackoff(func() error {
			var err error
			redisClient, err = database.NewRedis(cfg.Database.Redis)
			if err != nil {
				return err
			}
			return redisClient.Ping(ctx)
		}, 5, 2*time.Second, zapLog, "Redis connection")
		if err != nil {
			// cache is optional, reads go straight to Postgres
			zapLog.Warn("Redis unavailable, running without cache", zap.Error(err))
			redisClient = nil
		} else {
			zapLog.Info("Redis connected")
			pgCleanup := cleanup
			cleanup = func() {
				redisClient.Close()
				pgCleanup()
			}
		}
	}

	cacheTTL := time.Duration(cfg.Database.Redis.CacheTTL) * time.Second
	if redisClient != nil {
		return dataservice.NewPostgresService(pg.GetDB(), redisClient.GetClient(), cacheTTL, log), cleanup
	}
	return dataservice.NewPostgresService(pg.GetDB(), nil, cacheTTL, log), cleanup
}
