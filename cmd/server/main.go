package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/vytor/lexiflash/internal/api"
	"github.com/vytor/lexiflash/internal/config"
	"github.com/vytor/lexiflash/internal/cron"
	"github.com/vytor/lexiflash/internal/db"
	"github.com/vytor/lexiflash/internal/jobs"
	"github.com/vytor/lexiflash/internal/logger"
	"github.com/vytor/lexiflash/internal/ratelimit"
	"github.com/vytor/lexiflash/internal/repository/sqlstore"
	"github.com/vytor/lexiflash/internal/services"
	"github.com/vytor/lexiflash/internal/srs"
	"github.com/vytor/lexiflash/internal/worker"
)

func main() {
	cfg, err := config.Load(os.Args[1:])
	if err != nil {
		os.Exit(2)
	}

	log := logger.New(
		logger.WithLevel(logger.ParseLevel(cfg.LogLevel)),
		logger.WithColors(!cfg.LogJSON),
	)
	logger.SetDefault(log)

	if err := cfg.Validate(); err != nil {
		log.Error("invalid configuration: %v", err)
		os.Exit(2)
	}

	log.WithFields(map[string]any{
		"addr":                      cfg.Addr,
		"db_driver":                 cfg.DBDriver,
		"leech_threshold":           cfg.LeechThreshold,
		"deep_dive_leech_threshold": cfg.DeepDiveLeechThreshold,
		"near_future_days":          cfg.NearFutureDays,
		"promote_near_future":       cfg.PromoteNearFuture,
		"workers":                   cfg.WorkerCount,
		"rating_retention_days":     cfg.RatingRetentionDays,
		"rate_limit_per_minute":     cfg.RateLimitPerMinute,
	}).Info("lexiflash starting")

	database, err := db.Open(cfg.DBDriver, cfg.DBPath)
	if err != nil {
		log.Error("failed to open database: %v", err)
		os.Exit(1)
	}
	defer database.Close()

	page := sqlstore.WithPageSize(cfg.StorePageSize)
	catalog := sqlstore.NewCatalogRepository(database.DB, page)
	progress := sqlstore.NewProgressRepository(database.DB, page)
	ratings := sqlstore.NewRatingRepository(database.DB, page)
	summary := sqlstore.NewSummaryRepository(database.DB, page)
	views := sqlstore.NewDeepDiveRepository(database.DB, page)

	opts := srsOptions(cfg)
	seed := cfg.RandomSeed
	if seed == 0 {
		seed = uint64(time.Now().UnixNano())
	}
	spacer := srs.NewSpacer(opts.Classifier(), opts.LeechMinSpacing, srs.NewSeededSource(seed))
	clock := srs.RealNower{}

	limits := ratelimit.NewCounter()
	limiter := ratelimit.New(limits, cfg.RateLimitPerMinute, time.Minute)

	pool := worker.NewPool(cfg.WorkerCount, cfg.QueueSize)
	queue := jobs.NewWorkerQueue(pool, ratings, limits, time.Duration(cfg.RatingRetentionDays)*24*time.Hour, clock)
	scheduler := cron.New(queue, "")

	srv := &api.Server{
		DeckService:     services.NewDeckService(catalog),
		QueueService:    services.NewQueueService(catalog, progress, spacer, opts),
		MetricsService:  services.NewMetricsService(catalog, progress, opts),
		DeepDiveService: services.NewDeepDiveService(catalog, progress, views, spacer, opts),
		HeatmapService:  services.NewHeatmapService(catalog, progress, opts),
		SessionService:  services.NewSessionService(progress, ratings, summary),
		ActivityService: services.NewActivityService(summary),
		DB:              database,
		Limiter:         limiter,
		Clock:           clock,
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	pool.Start(ctx)
	defer pool.Stop()
	if err := scheduler.Start(); err != nil {
		log.Error("failed to start scheduler: %v", err)
		return
	}
	defer scheduler.Stop()

	httpServer := &http.Server{
		Addr:         cfg.Addr,
		Handler:      srv.Routes(),
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 45 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	serveErr := make(chan error, 1)
	go func() {
		log.Info("listening on %s", cfg.Addr)
		serveErr <- httpServer.ListenAndServe()
	}()

	select {
	case err := <-serveErr:
		if !errors.Is(err, http.ErrServerClosed) {
			log.Error("http server: %v", err)
		}
		return
	case <-ctx.Done():
		log.Info("shutdown requested")
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()
	if err := httpServer.Shutdown(shutdownCtx); err != nil {
		log.Error("http shutdown: %v", err)
	}
	log.Info("lexiflash stopped")
}

func srsOptions(cfg config.Config) srs.Options {
	opts := srs.DefaultOptions()
	opts.LeechThreshold = cfg.LeechThreshold
	opts.DeepDiveLeechThreshold = cfg.DeepDiveLeechThreshold
	opts.NearFutureDays = cfg.NearFutureDays
	opts.LeechMinSpacing = cfg.LeechMinSpacing
	opts.PromoteNearFuture = cfg.PromoteNearFuture
	return opts
}
