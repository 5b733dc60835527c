package main

import (
	"context"
	"net"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog"

	"github.com/elimufine/elimu-backend/internal/config"
	"github.com/elimufine/elimu-backend/internal/database"
	"github.com/elimufine/elimu-backend/internal/generation"
	"github.com/elimufine/elimu-backend/internal/handler"
	"github.com/elimufine/elimu-backend/internal/i18n"
	"github.com/elimufine/elimu-backend/internal/logger"
	"github.com/elimufine/elimu-backend/internal/metrics"
	"github.com/elimufine/elimu-backend/internal/middleware"
	"github.com/elimufine/elimu-backend/internal/repository"
	"github.com/elimufine/elimu-backend/internal/router"
	"github.com/elimufine/elimu-backend/internal/service"
	"github.com/elimufine/elimu-backend/internal/validator"
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
		Str("generator", cfg.GeneratorBackend).
		Msg("Starting ELIMU FINE backend")

	// ─── Initialize Validator ──────────────────────────────────────────
	validator.Setup()

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	// ─── Metrics ───────────────────────────────────────────────────────
	reg := prometheus.NewRegistry()
	reg.MustRegister(collectors.NewGoCollector(), collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}))
	m := metrics.New(reg)

	// ─── Rate Limit Store ──────────────────────────────────────────────
	// Redis shares limits across instances; without it each process
	// keeps its own buckets.
	var (
		rdb     *redis.Client
		limiter middleware.Limiter
	)
	if cfg.RedisURL != "" {
		var err error
		rdb, err = database.NewRedisClient(ctx, cfg, log)
		if err != nil {
			log.Fatal().Err(err).Msg("Failed to connect to Redis")
		}
		defer rdb.Close()
		limiter = middleware.NewRedisLimiter(rdb, "generate", cfg.RateLimitPerMinute, time.Minute)
	} else {
		log.Warn().Msg("REDIS_URL not set, rate limits are per process")
		limiter = middleware.NewRateLimiter(ctx, cfg.RateLimitPerMinute, time.Minute)
	}

	// ─── Generator ─────────────────────────────────────────────────────
	gen, err := generation.FromConfig(ctx, cfg, log, m)
	if err != nil {
		log.Fatal().Err(err).Msg("Failed to build generator")
	}

	// ─── Initialize Services ──────────────────────────────────────────
	catalog := i18n.MustLoad()
	generationService := service.NewGenerationService(gen, log)
	dashboardService := service.NewDashboardService(repository.NewDashboardRepository(), catalog)
	shellService := service.NewShellService(catalog)

	// ─── Initialize Handlers ──────────────────────────────────────────
	handlers := &router.Handlers{
		Generation: handler.NewGenerationHandler(generationService, log),
		Dashboard:  handler.NewDashboardHandler(dashboardService),
		Shell:      handler.NewShellHandler(shellService),
		WS:         handler.NewWSHandler(generationService, limiter, log, cfg.AllowedOrigins),
		System:     handler.NewSystemHandler(rdb, cfg.GeneratorBackend, log),
	}

	// ─── Setup Router ──────────────────────────────────────────────────
	r := router.SetupRouter(handlers, &router.Deps{
		Catalog:  catalog,
		Limiter:  limiter,
		Metrics:  m,
		Gatherer: reg,
		Log:      log,
	}, cfg)

	// ─── Create HTTP Server ────────────────────────────────────────────
	srv := &http.Server{
		Addr:              ":" + cfg.ServerPort,
		Handler:           r,
		ReadHeaderTimeout: 10 * time.Second,
		BaseContext:       func(net.Listener) context.Context { return ctx },
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

	// Shutdown does not wait for hijacked WebSocket connections; their
	// generations end when ctx is canceled below.
	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer shutdownCancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.Error().Err(err).Msg("HTTP server shutdown error")
	}
	cancel()

	log.Info().Msg("Shutdown complete")
}

// init sets zerolog global defaults before main runs.
func init() {
	zerolog.TimeFieldFormat = time.RFC3339
}
