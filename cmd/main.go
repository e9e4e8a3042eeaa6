package main

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	"prism-ads/internal/adapter/gpt"
	httpadapter "prism-ads/internal/adapter/http"
	"prism-ads/internal/adapter/postgres"
	redisstore "prism-ads/internal/adapter/redis"
	s3store "prism-ads/internal/adapter/s3"
	"prism-ads/internal/adapter/usecase"
	"prism-ads/internal/config"
	"prism-ads/internal/db"
	"prism-ads/internal/metrics"
)

// main is the entry point of the ad platform. It loads configuration,
// optionally runs database migrations, wires the adapters and use cases,
// then serves HTTP until a termination signal arrives.
func main() {
	cfg, err := config.Load()
	if err != nil {
		slog.Error("failed to load config", slog.Any("error", err))
		os.Exit(1)
	}

	var logger *slog.Logger
	{
		var handler slog.Handler
		level := cfg.Log.SlogLevel()
		switch cfg.Log.SlogFormat() {
		case "json":
			handler = slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{Level: level})
		default:
			handler = slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{Level: level})
		}
		logger = slog.New(handler)
	}

	if cfg.Psql.RunMigrations {
		if err = db.Migrate(cfg.Psql.Addr.String()); err != nil {
			logger.Error("migration error", slog.Any("error", err))
			os.Exit(1)
		}
		logger.Info("migrations applied successfully")
	}

	ctx, cancel := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer cancel()

	pool, err := db.NewPostgresPool(ctx, cfg.Psql)
	if err != nil {
		logger.Error("database connection error", slog.Any("error", err))
		os.Exit(1)
	}
	defer pool.Close()

	if cfg.Psql.SeedDemo {
		if err = db.Seed(ctx, pool); err != nil {
			logger.Error("seed error", slog.Any("error", err))
			os.Exit(1)
		}
		logger.Info("demo data seeded")
	}

	redisClient, err := db.NewRedisClient(ctx, cfg.Redis)
	if err != nil {
		logger.Error("redis connection error", slog.Any("error", err))
		os.Exit(1)
	}
	defer redisClient.Close()

	fileStore, err := s3store.NewFileStore(ctx, cfg.S3)
	if err != nil {
		logger.Error("object storage error", slog.Any("error", err))
		os.Exit(1)
	}

	// Outbound adapters.
	clientRepo := postgres.NewClientRepository(pool)
	advertiserRepo := postgres.NewAdvertiserRepository(pool)
	relevanceRepo := postgres.NewRelevanceRepository(pool)
	campaignRepo := postgres.NewCampaignRepository(pool)
	adRepo := postgres.NewAdRepository(pool)
	statsRepo := postgres.NewStatsRepository(pool)

	dayStore := redisstore.NewDayStore(redisClient)
	metricsCache := redisstore.NewMetricsCache(redisClient)
	verdictStore := redisstore.NewVerdictStore(redisClient)

	gptClient := gpt.NewClient(cfg.GPT)
	moderation := gpt.NewModerationFilter(gptClient, verdictStore, logger, cfg.GPT.ModerationEnabled)
	generator := gpt.NewTextGenerator(gptClient)

	// Use cases.
	adSvc := usecase.NewAdService(clientRepo, campaignRepo, adRepo, dayStore, logger)
	campaignSvc := usecase.NewCampaignService(campaignRepo, advertiserRepo, dayStore, moderation, fileStore, generator, logger)
	statSvc := usecase.NewStatService(campaignRepo, advertiserRepo, statsRepo, metricsCache, logger)
	daySvc := usecase.NewDayService(dayStore, logger)
	directorySvc := usecase.NewDirectoryService(clientRepo, advertiserRepo, relevanceRepo)

	m := metrics.New("prism_ads")

	handler := httpadapter.NewHandler(adSvc, campaignSvc, statSvc, daySvc, directorySvc, moderation, m, logger)
	srv := &http.Server{
		Addr:    fmt.Sprintf(":%d", cfg.HTTP.Port),
		Handler: handler.Router(),
	}

	go func() {
		logger.Info("server listening", slog.Int("port", int(cfg.HTTP.Port)))
		if err = srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logger.Error("server error", slog.Any("error", err))
			cancel()
		}
	}()

	<-ctx.Done()

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), cfg.HTTP.ShutdownTimeout)
	defer shutdownCancel()
	if err = srv.Shutdown(shutdownCtx); err != nil {
		logger.Error("server shutdown error", slog.Any("error", err))
		return
	}
	logger.Info("server gracefully stopped")
}
