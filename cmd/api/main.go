package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/joho/godotenv"
	"github.com/redis/go-redis/v9"

	"github.com/pageza/recipebox/backend/config"
	"github.com/pageza/recipebox/backend/internal/database"
	"github.com/pageza/recipebox/backend/internal/logger"
	"github.com/pageza/recipebox/backend/internal/router"
	"github.com/pageza/recipebox/backend/internal/scheduler"
	"github.com/pageza/recipebox/backend/internal/scraper"
	"github.com/pageza/recipebox/backend/internal/server"
	"github.com/pageza/recipebox/backend/internal/service"
)

func main() {
	// A missing .env is fine; the environment may already be set.
	_ = godotenv.Load()

	cfg, err := config.LoadConfig()
	if err != nil {
		logger.L().Fatalf("Failed to load configuration: %v", err)
	}

	logger.SetDefault(logger.New(cfg.LogLevel, cfg.IsProduction(), os.Stdout))
	log := logger.For("main")

	db, err := database.Open(cfg)
	if err != nil {
		log.Fatalf("Failed to connect to database: %v", err)
	}
	if err := database.RunMigrations(db); err != nil {
		log.Fatalf("Failed to run migrations: %v", err)
	}

	var redisClient *redis.Client
	if client, err := database.NewRedisClient(cfg); err != nil {
		log.WithError(err).Warn("Redis unavailable: rate limiting and display caching are disabled")
	} else {
		redisClient = client
		defer redisClient.Close()
	}

	images := service.NewImageService(nil)
	if cfg.S3Bucket != "" {
		s3Config, err := config.NewS3Config(context.Background(), cfg)
		if err != nil {
			log.WithError(err).Warn("Image storage unavailable")
		} else {
			images = service.NewImageService(s3Config)
		}
	}

	auth, err := service.NewAuthService(cfg.JWTSecret, cfg.APIKey)
	if err != nil {
		log.Fatalf("Failed to initialize auth: %v", err)
	}
	if !auth.RequiresAPIKey() {
		log.Warn("API_KEY is not set: write endpoints are open")
	}

	recipes := service.NewRecipeService(db)
	srv := server.New(cfg, router.Deps{
		DB:        db,
		Redis:     redisClient,
		Auth:      auth,
		Recipes:   recipes,
		Groceries: service.NewGroceryService(db),
		Usage:     service.NewUsageService(db),
		Display:   service.NewDisplayService(redisClient, cfg.DisplayCacheTTL),
		Images:    images,
		Importer:  service.NewImportService(scraper.New(nil), recipes),
	})

	ctx, stop := context.WithCancel(context.Background())
	defer stop()
	go scheduler.NewPurger(recipes, cfg.PurgeInterval, cfg.TrashRetention).Run(ctx)

	// Channel to listen for errors coming from the server
	errChan := make(chan error, 1)
	go func() {
		log.Info("Starting server...")
		errChan <- srv.Start()
	}()

	// Channel to listen for an interrupt or terminate signal from the OS
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)

	// Block until we receive a signal or error
	select {
	case err := <-errChan:
		if err != nil {
			log.Fatalf("Server error: %v", err)
		}
	case sig := <-quit:
		log.Infof("Received signal: %v", sig)
	}

	stop()
	log.Info("Shutting down server...")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.Fatalf("Server shutdown error: %v", err)
	}
	log.Info("Server stopped")
}
