// Package main is the entrypoint for the tunehub API server.
package main

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/kiranshivaraju/tunehub/internal/api"
	"github.com/kiranshivaraju/tunehub/internal/api/handler"
	mw "github.com/kiranshivaraju/tunehub/internal/api/middleware"
	"github.com/kiranshivaraju/tunehub/internal/api/response"
	"github.com/kiranshivaraju/tunehub/internal/cache"
	"github.com/kiranshivaraju/tunehub/internal/config"
	"github.com/kiranshivaraju/tunehub/internal/finetune"
	"github.com/kiranshivaraju/tunehub/internal/store"
)

const shutdownTimeout = 30 * time.Second

func main() {
	logger := slog.New(slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{
		Level: slog.LevelInfo,
	}))
	slog.SetDefault(logger)

	if err := run(); err != nil {
		slog.Error("server failed", "error", err)
		os.Exit(1)
	}
}

func run() error {
	// 1. Load config, fail fast
	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("load config: %w", err)
	}
	slog.Info("config loaded", "providers", cfg.Providers.Enabled, "data_dir", cfg.Data.Dir, "env", cfg.Server.Env)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	// 2. Connect to the API key database
	pool, err := store.Connect(ctx, cfg.Database)
	if err != nil {
		return fmt.Errorf("connect database: %w", err)
	}
	defer pool.Close()
	slog.Info("database connected")

	if err := store.RunMigrations(cfg.Database.URL, "migrations"); err != nil {
		return fmt.Errorf("run migrations: %w", err)
	}
	slog.Info("database migrations applied")

	// 3. Redis backs the rate limiter
	redisCache, err := cache.NewRedisCache(cfg.Redis.URL)
	if err != nil {
		return fmt.Errorf("create redis cache: %w", err)
	}
	defer redisCache.Close()

	if err := redisCache.Ping(ctx); err != nil {
		return fmt.Errorf("ping redis: %w", err)
	}
	slog.Info("redis connected")

	// 4. Catalog and providers
	catalog, err := finetune.LoadCatalog(cfg.Data.CatalogPath)
	if err != nil {
		return fmt.Errorf("load model catalog: %w", err)
	}
	slog.Info("model catalog loaded", "providers", catalog.Providers())

	providers, err := finetune.NewProviders(cfg.Providers)
	if err != nil {
		return fmt.Errorf("create finetune providers: %w", err)
	}
	for _, p := range providers {
		slog.Info("finetune provider initialized", "provider", p.Name())
	}

	// 5. Task tree on disk
	if err := os.MkdirAll(cfg.Data.Dir, 0o755); err != nil {
		return fmt.Errorf("create data dir: %w", err)
	}
	files := store.NewFileStore(cfg.Data.Dir)
	keys := store.NewPostgresStore(pool)

	svc := finetune.NewService(catalog, files, providers...)
	finetunes := handler.NewFinetunes(svc, files)

	// 6. Router
	deps := api.Dependencies{
		Auth:      mw.NewAuth(keys),
		RateLimit: mw.NewRateLimit(redisCache, cfg.Server.RateLimitPerMinute),

		HealthHandler: healthHandler(files, keys, redisCache),

		ProviderParameters: finetunes.Parameters(),
		ValidateParameters: finetunes.ValidateParameters(),
		CheckModel:         finetunes.CheckModel(),

		CreateFinetune: finetunes.Create(),
		ListFinetunes:  finetunes.List(),
		GetFinetune:    finetunes.Get(),
		FinetuneStatus: finetunes.Status(),
	}

	router := api.NewRouter(deps)

	// 7. Start HTTP server
	addr := fmt.Sprintf(":%d", cfg.Server.Port)
	srv := &http.Server{
		Addr:         addr,
		Handler:      router,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 2 * cfg.Providers.OpenAI.Timeout,
		IdleTimeout:  60 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		slog.Info("server listening", "addr", addr)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
		close(errCh)
	}()

	select {
	case err := <-errCh:
		return fmt.Errorf("server error: %w", err)
	case <-ctx.Done():
		slog.Info("shutdown signal received, draining connections...")
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("server shutdown: %w", err)
	}

	slog.Info("server stopped gracefully")
	return nil
}

type pinger interface {
	Ping(ctx context.Context) error
}

// healthHandler checks the data dir, database and cache.
func healthHandler(files, db, c pinger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		checks := map[string]string{
			"storage":  "ok",
			"database": "ok",
			"cache":    "ok",
		}

		if err := files.Ping(r.Context()); err != nil {
			checks["storage"] = "degraded"
		}
		if err := db.Ping(r.Context()); err != nil {
			checks["database"] = "degraded"
		}
		if err := c.Ping(r.Context()); err != nil {
			checks["cache"] = "degraded"
		}

		for _, status := range checks {
			if status != "ok" {
				response.Error(w, http.StatusServiceUnavailable, response.CodeDegraded,
					"One or more services degraded", checks)
				return
			}
		}

		response.JSON(w, map[string]any{
			"status":   "ok",
			"services": checks,
		})
	}
}
