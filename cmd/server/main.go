package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/rs/zerolog"

	"github.com/DigiCred-Holdings/credential-analysis/internal/config"
	"github.com/DigiCred-Holdings/credential-analysis/internal/database"
	"github.com/DigiCred-Holdings/credential-analysis/internal/handler"
	"github.com/DigiCred-Holdings/credential-analysis/internal/logger"
	"github.com/DigiCred-Holdings/credential-analysis/internal/narrative"
	"github.com/DigiCred-Holdings/credential-analysis/internal/registry"
	"github.com/DigiCred-Holdings/credential-analysis/internal/router"
	"github.com/DigiCred-Holdings/credential-analysis/internal/service"
	"github.com/DigiCred-Holdings/credential-analysis/internal/validator"
	"github.com/DigiCred-Holdings/credential-analysis/internal/worker"
)

func main() {
	// ─── Load Configuration ────────────────────────────────────────────
	cfg := config.Load()

	// ─── Initialize Logger ─────────────────────────────────────────────
	log := logger.Setup(cfg.LogLevel, cfg.LogFormat)
	log.Info().
		Str("port", cfg.ServerPort).
		Str("mode", cfg.GinMode).
		Str("log_level", cfg.LogLevel).
		Msg("Starting Credential Analysis")

	// ─── Initialize Validator ──────────────────────────────────────────
	validator.Setup()

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	workerCtx, workerCancel := context.WithCancel(context.Background())
	defer workerCancel()

	// ─── Registry Provider ─────────────────────────────────────────────
	// File mode serves a local snapshot without PostgreSQL or Redis;
	// otherwise the catalog lives in PostgreSQL behind a Redis cache.
	var (
		provider registry.Provider
		lister   service.CatalogLister
	)

	if cfg.RegistryFile != "" {
		fileProvider, err := registry.NewFileProvider(cfg.RegistryFile)
		if err != nil {
			log.Fatal().Err(err).Str("path", cfg.RegistryFile).Msg("Failed to load registry file")
		}
		provider = fileProvider
		log.Info().Str("path", cfg.RegistryFile).Msg("Serving registry from snapshot file")
	} else {
		pool, err := database.NewPostgresPool(ctx, cfg, log)
		if err != nil {
			log.Fatal().Err(err).Msg("Failed to connect to PostgreSQL")
		}
		defer pool.Close()

		rdb, err := database.NewRedisClient(ctx, cfg, log)
		if err != nil {
			log.Fatal().Err(err).Msg("Failed to connect to Redis")
		}
		defer rdb.Close()

		pgProvider := registry.NewPostgresProvider(pool)
		cached := registry.NewCachedProvider(pgProvider, rdb, cfg.RegistryCacheTTL, log)

		// Warm the catalog cache BEFORE accepting traffic so the first
		// requests don't all stampede PostgreSQL.
		if err := cached.Prewarm(ctx); err != nil {
			log.Warn().Err(err).Msg("Registry cache prewarm failed")
		}

		refreshWorker := worker.NewRegistryRefreshWorker(cached, cfg.RegistryRefresh, log)
		go refreshWorker.Start(workerCtx)

		provider = cached
		lister = pgProvider
	}

	// ─── Narrative Generator ───────────────────────────────────────────
	var generator narrative.Generator = narrative.Disabled{}
	if cfg.GeminiAPIKey != "" {
		gemini, err := narrative.NewGeminiGenerator(ctx, cfg.GeminiAPIKey, cfg.NarrativeModel, log)
		if err != nil {
			log.Fatal().Err(err).Msg("Failed to initialize narrative generator")
		}
		generator = gemini
		log.Info().Str("model", cfg.NarrativeModel).Msg("Narrative summaries enabled")
	} else {
		log.Info().Msg("Narrative summaries disabled (no GEMINI_API_KEY)")
	}

	// ─── Initialize Services ──────────────────────────────────────────
	analysisService := service.NewAnalysisService(provider, generator, cfg, log)
	registryService := service.NewRegistryService(provider, lister, log)

	// ─── Initialize Handlers ──────────────────────────────────────────
	handlers := &router.Handlers{
		Analysis: handler.NewAnalysisHandler(analysisService, log),
		Registry: handler.NewRegistryHandler(registryService),
		WS:       handler.NewWSHandler(analysisService, log, cfg.AllowedOrigins),
	}

	r := router.SetupRouter(handlers, cfg)

	srv := &http.Server{
		Addr:    ":" + cfg.ServerPort,
		Handler: r,
	}

	// ─── Start Server in Goroutine ─────────────────────────────────────
	go func() {
		log.Info().Str("addr", ":"+cfg.ServerPort).Msg("Server listening")
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatal().Err(err).Msg("Server error")
		}
	}()

	// ─── Graceful Shutdown ─────────────────────────────────────────────
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	sig := <-quit

	log.Info().Str("signal", sig.String()).Msg("Shutting down gracefully...")

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer shutdownCancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.Error().Err(err).Msg("HTTP server shutdown error")
	}

	workerCancel()

	log.Info().Msg("Shutdown complete")
}

// init sets zerolog global defaults before main runs.
func init() {
	zerolog.TimeFieldFormat = time.RFC3339
}
