package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os/signal"
	"syscall"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	goredis "github.com/redis/go-redis/v9"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
	"golang.org/x/sync/errgroup"

	httpAdapter "github.com/iho/txrecon/internal/adapter/http"
	"github.com/iho/txrecon/internal/adapter/http/handler"
	"github.com/iho/txrecon/internal/adapter/http/middleware"
	"github.com/iho/txrecon/internal/adapter/loader"
	"github.com/iho/txrecon/internal/adapter/report"
	redisRepo "github.com/iho/txrecon/internal/adapter/repository/redis"
	"github.com/iho/txrecon/internal/infrastructure/config"
	"github.com/iho/txrecon/internal/infrastructure/idgen"
	"github.com/iho/txrecon/internal/infrastructure/logger"
	"github.com/iho/txrecon/internal/infrastructure/metrics"
	"github.com/iho/txrecon/internal/infrastructure/redis"
	"github.com/iho/txrecon/internal/infrastructure/scheduler"
	"github.com/iho/txrecon/internal/usecase"
)

// limiterIdleTimeout is how long a client's rate limiter survives without requests.
const limiterIdleTimeout = 10 * time.Minute

func main() {
	// Load configuration
	cfg, err := config.Load()
	if err != nil {
		log.Fatal().Err(err).Msg("failed to load configuration")
	}

	// Setup logger
	log.Logger = logger.New(logger.Config{Level: cfg.LogLevel, Format: cfg.LogFormat})

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	if err := run(ctx, cfg, log.Logger); err != nil {
		log.Fatal().Err(err).Msg("server failed")
	}

	log.Info().Msg("server stopped")
}

// app is the wired server.
type app struct {
	server      *http.Server
	scheduler   *scheduler.Scheduler
	reconciler  *usecase.ReconciliationUseCase
	rateLimiter *middleware.RateLimiter
}

// newApp wires the server from configuration. redisClient may be nil.
func newApp(cfg *config.Config, logger zerolog.Logger, registry *prometheus.Registry, redisClient *goredis.Client) *app {
	m := metrics.New(registry)

	// Reconciliation
	sink := report.NewFileSink(cfg.ReportDumpPath, cfg.ReportCSVPath, report.NewRetrier(logger))
	reconciler := usecase.NewReconciliationUseCase(
		loader.NewXMLLoader(cfg.PrimaryPath),
		loader.NewCSVLoader(cfg.CompanionPath),
		sink,
		idgen.NewULIDGenerator(),
		m,
	)

	// Report serving
	var cache usecase.ReportCache
	if redisClient != nil {
		cache = redisRepo.NewReportCache(redisClient)
	}
	reportUC := usecase.NewReportUseCase(report.NewFileStore(cfg.ReportCSVPath), cache, cfg.ReportCacheTTL)

	var rateLimiter *middleware.RateLimiter
	if cfg.RateLimitRPS > 0 {
		rateLimiter = middleware.NewRateLimiter(cfg.RateLimitRPS, cfg.RateLimitBurst, m.RateLimitHits)
	}

	router := httpAdapter.NewRouter(httpAdapter.RouterConfig{
		ReportHandler:  handler.NewReportHandler(reportUC),
		HealthHandler:  handler.NewHealthHandler(cfg.ReportCSVPath, redisClient),
		RateLimiter:    rateLimiter,
		Metrics:        m,
		MetricsHandler: promhttp.HandlerFor(registry, promhttp.HandlerOpts{Registry: registry}),
		Logger:         logger,
		RequestTimeout: cfg.HTTPRequestTimeout,
	})

	server := &http.Server{
		Addr:         fmt.Sprintf(":%s", cfg.HTTPPort),
		Handler:      router,
		ReadTimeout:  cfg.HTTPReadTimeout,
		WriteTimeout: cfg.HTTPWriteTimeout,
		IdleTimeout:  cfg.HTTPIdleTimeout,
	}

	sched := scheduler.New(scheduler.Config{
		Runner:     reconciler,
		Logger:     logger,
		RunOnStart: cfg.ReconcileOnStart,
		Interval:   cfg.ReconcileInterval,
		Timeout:    cfg.ReconcileTimeout,
	})

	return &app{
		server:      server,
		scheduler:   sched,
		reconciler:  reconciler,
		rateLimiter: rateLimiter,
	}
}

func run(ctx context.Context, cfg *config.Config, logger zerolog.Logger) error {
	registry := prometheus.NewRegistry()
	registry.MustRegister(
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
	)

	// Connect to Redis
	var redisClient *goredis.Client
	if cfg.CacheEnabled() {
		client, err := redis.NewClient(ctx, cfg.RedisURL, cfg.RedisDialTimeout)
		if err != nil {
			return fmt.Errorf("failed to connect to redis: %w", err)
		}
		defer client.Close()
		redisClient = client
		logger.Info().Msg("connected to redis")
	}

	a := newApp(cfg, logger, registry, redisClient)

	g, gctx := errgroup.WithContext(ctx)

	g.Go(func() error {
		logger.Info().Str("port", cfg.HTTPPort).Msg("starting server")
		if err := a.server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			return err
		}
		return nil
	})

	g.Go(func() error {
		if err := a.scheduler.Start(gctx); err != nil && !errors.Is(err, context.Canceled) {
			return err
		}
		return nil
	})

	if a.rateLimiter != nil {
		g.Go(func() error {
			ticker := time.NewTicker(limiterIdleTimeout)
			defer ticker.Stop()
			for {
				select {
				case <-gctx.Done():
					return nil
				case <-ticker.C:
					a.rateLimiter.CleanupLimiters(limiterIdleTimeout)
				}
			}
		})
	}

	g.Go(func() error {
		<-gctx.Done()
		logger.Info().Msg("shutting down server...")

		// Graceful shutdown
		shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.HTTPShutdownTimeout)
		defer cancel()

		if err := a.server.Shutdown(shutdownCtx); err != nil {
			return fmt.Errorf("server forced to shutdown: %w", err)
		}
		return nil
	})

	return g.Wait()
}
