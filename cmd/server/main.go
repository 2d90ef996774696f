package main

import (
	"context"
	"log"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"github.com/gofiber/fiber/v3"

	"wordbubble/internal/config"
	"wordbubble/internal/db"
	"wordbubble/internal/jobs"
	"wordbubble/internal/keywords"
	"wordbubble/internal/logging"
	"wordbubble/internal/metrics"
	"wordbubble/internal/middleware"
	"wordbubble/internal/retriever"
	"wordbubble/internal/server"
	"wordbubble/internal/validation"
)

func main() {
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	cfg := config.Load()

	logger := logging.New(cfg.LogLevel)
	if !cfg.IsDev() {
		logger = logging.NewJSON(cfg.LogLevel)
	}
	slog.SetDefault(logger)

	// Load shared scoring resources
	resourcesFile, err := config.LoadResourcesConfig(cfg.ResourcesFile)
	if err != nil {
		log.Fatalf("Failed to load resources file: %v", err)
	}
	resources, err := keywords.LoadResources(keywords.ResourceOptions{
		ExtraStopwords:  resourcesFile.ExtraStopwords(),
		RemoveStopwords: resourcesFile.RemovedStopwords(),
	})
	if err != nil {
		log.Fatalf("Failed to load keyword resources: %v", err)
	}
	log.Printf("Loaded %d stopwords", len(resources.Stopwords()))

	// Document retriever
	if valid, msg := validation.ValidateURL(cfg.RetrieverBaseURL); !valid {
		log.Fatalf("Invalid RETRIEVER_BASE_URL: %s", msg)
	}
	docs := retriever.NewHTTP(nil, retriever.Config{
		BaseURL:   cfg.RetrieverBaseURL,
		UserAgent: cfg.RetrieverUserAgent,
		Timeout:   cfg.RetrieverTimeout,
	})

	scorer, err := keywords.NewScorer(resources, docs,
		keywords.WithTopN(resourcesFile.TopN()),
		keywords.WithLogger(logger.With("component", "scorer")),
	)
	if err != nil {
		log.Fatalf("Failed to create scorer: %v", err)
	}

	// Optional analysis history
	var database *db.DB
	if cfg.HistoryEnabled() {
		database, err = db.New(ctx, cfg.DatabaseURL)
		if err != nil {
			log.Fatalf("Failed to connect to database: %v", err)
		}
		defer database.Close()

		if err := database.RunMigrations(cfg.DatabaseURL); err != nil {
			log.Fatalf("Failed to run migrations: %v", err)
		}
		log.Println("Migrations completed successfully")

		metrics.Init(database)

		pruner := jobs.NewHistoryPruner(database, cfg.PruneInterval, cfg.HistoryRetention)
		go pruner.Start(ctx)
	}

	// Optional shared rate limit storage
	var limiterStorage fiber.Storage
	if cfg.RateLimitStorageEnabled() {
		storage, err := middleware.NewRedisStorage(cfg.RedisURL)
		if err != nil {
			log.Fatalf("Failed to connect to Redis: %v", err)
		}
		defer storage.Close()
		limiterStorage = storage
		log.Println("Rate limit counters stored in Redis")
	}

	srv := server.New(cfg)
	srv.RegisterRoutes(server.Deps{
		Analyzer:         scorer,
		DB:               database,
		RateLimitStorage: limiterStorage,
		RetrieverBaseURL: docs.BaseURL(),
	})

	// Graceful shutdown
	go func() {
		if err := srv.Start(); err != nil {
			log.Printf("Server error: %v", err)
		}
	}()

	log.Printf("Server started on %s", cfg.ServerAddr)

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Println("Shutting down server...")
	cancel()
	if err := srv.Shutdown(); err != nil {
		log.Printf("Server forced to shutdown: %v", err)
	}
	metrics.Flush()
	log.Println("Server exited")
}
