package main

import (
	"context"
	"log"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"newsdigest/db"
	"newsdigest/internal/app"
	"newsdigest/internal/config"
	"newsdigest/internal/logger"
	"newsdigest/internal/repository"
	"newsdigest/internal/worker"

	"github.com/robfig/cron/v3"
)

func main() {

	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("error loading config: %v", err)
	}

	logr := logger.New(cfg.LogLevel)
	slog.SetDefault(logr)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	err = db.ConnectRedis(ctx, cfg.RedisURL)
	if err != nil {
		log.Fatalf("error connecting to Redis: %v", err)
	}
	defer db.CloseRedis()

	err = db.Connect(cfg.DatabaseURL)
	if err != nil {
		log.Fatalf("error connecting to DB: %v", err)
	}
	defer db.Close()

	coordinator, err := app.NewCoordinator(cfg, logr)
	if err != nil {
		log.Fatalf("error configuring pipeline: %v", err)
	}

	queue := db.NewQueue(db.Redis, db.DigestQueueKey)
	digestRepository := repository.NewDigestRepository(db.DB)
	w := worker.New(queue, coordinator, digestRepository, logr)

	if len(cfg.Watchlist) > 0 {
		scheduler := cron.New()
		_, err := scheduler.AddFunc(cfg.DigestSchedule, func() {
			w.EnqueueWatchlist(ctx, cfg.Watchlist)
		})
		if err != nil {
			log.Fatalf("invalid DIGEST_SCHEDULE %q: %v", cfg.DigestSchedule, err)
		}
		scheduler.Start()
		defer scheduler.Stop()
		slog.Info("watchlist scheduled", "schedule", cfg.DigestSchedule, "tickers", cfg.Watchlist)
	}

	slog.Info("worker started", "queue", db.DigestQueueKey)
	if err := w.Run(ctx); err != nil {
		slog.Error("worker stopped", "error", err)
		os.Exit(1)
	}
	slog.Info("worker shut down")
}
