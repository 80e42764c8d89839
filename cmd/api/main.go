package main

import (
	"context"
	"log"
	"log/slog"

	"newsdigest/db"
	"newsdigest/internal/app"
	"newsdigest/internal/config"
	"newsdigest/internal/handler"
	"newsdigest/internal/logger"
	"newsdigest/internal/repository"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
)

func main() {

	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("error loading config: %v", err)
	}

	logr := logger.New(cfg.LogLevel)
	slog.SetDefault(logr)

	coordinator, err := app.NewCoordinator(cfg, logr)
	if err != nil {
		log.Fatalf("error configuring pipeline: %v", err)
	}

	var store handler.DigestStore
	if cfg.DatabaseURL != "" {
		if err := db.Connect(cfg.DatabaseURL); err != nil {
			log.Fatalf("error connecting to DB: %v", err)
		}
		defer db.Close()
		store = repository.NewDigestRepository(db.DB)
	} else {
		slog.Warn("DATABASE_URL not set, digest history disabled")
	}

	var queue handler.JobQueue
	if cfg.RedisURL != "" {
		if err := db.ConnectRedis(context.Background(), cfg.RedisURL); err != nil {
			log.Fatalf("error connecting to Redis: %v", err)
		}
		defer db.CloseRedis()
		queue = db.NewQueue(db.Redis, db.DigestQueueKey)
	} else {
		slog.Warn("REDIS_URL not set, background digest jobs disabled")
	}

	digestHandler := handler.NewDigestHandler(coordinator, store, queue)

	r := gin.Default()

	allowedOrigins := []string{"http://localhost:3000"}

	if cfg.FrontendURL != "" {
		allowedOrigins = append(allowedOrigins, cfg.FrontendURL)
	}

	slog.Info("AllowOrigins URL:", "urls", allowedOrigins)

	r.Use(cors.New(cors.Config{
		AllowOrigins: allowedOrigins,
		AllowMethods: []string{"GET", "POST", "OPTIONS"},
		AllowHeaders: []string{"Origin", "Content-Type"},
	}))

	r.GET("/news/digest", digestHandler.GetDigest)
	r.POST("/news/digest/jobs", digestHandler.CreateDigestJob)
	r.GET("/news/digests", digestHandler.GetDigestHistory)
	r.GET("/health", digestHandler.GetHealth)

	err = r.Run(cfg.HTTPAddr)
	if err != nil {
		log.Fatalf("error starting server: %v", err)
	}
}
