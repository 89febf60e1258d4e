package main

import (
	"context"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/BerylCAtieno/file-query-client/internal/config"
	"github.com/BerylCAtieno/file-query-client/internal/db"
	"github.com/BerylCAtieno/file-query-client/internal/handlers"
	"github.com/BerylCAtieno/file-query-client/internal/predictor"
	"github.com/BerylCAtieno/file-query-client/internal/repository"
	"github.com/BerylCAtieno/file-query-client/internal/router"
	"github.com/BerylCAtieno/file-query-client/internal/services"
	"github.com/BerylCAtieno/file-query-client/internal/session"
	"github.com/BerylCAtieno/file-query-client/internal/storage"
	"github.com/BerylCAtieno/file-query-client/internal/utils"
	"github.com/BerylCAtieno/file-query-client/internal/web"

	"github.com/joho/godotenv"
)

func main() {
	// Optional .env file
	_ = godotenv.Load()

	// Load configuration
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}

	// Initialize logger
	logger := utils.NewLogger(cfg.LogLevel)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	// Prediction service client
	client, err := predictor.New(cfg.ServiceURL, logger,
		predictor.WithTimeout(cfg.RequestTimeout),
		predictor.WithLimiter(predictor.NewLimiter(cfg.SubmitRate)),
	)
	if err != nil {
		logger.Fatal("Failed to create prediction client", "error", err)
	}

	// Submission history
	var repo repository.Repository
	if cfg.HistoryEnabled {
		database, err := db.NewSQLiteDB(cfg.DatabaseURL)
		if err != nil {
			logger.Fatal("Failed to connect to database", "error", err)
		}
		defer database.Close()

		if err := db.RunMigrations(database); err != nil {
			logger.Fatal("Failed to run migrations", "error", err)
		}

		repo = repository.NewRepository(database)
	}

	var store storage.Storage
	if cfg.ArchiveEnabled() {
		store, err = storage.NewS3Storage(ctx, storage.S3Options{
			Endpoint:        cfg.S3Endpoint,
			AccessKeyID:     cfg.S3AccessKeyID,
			SecretAccessKey: cfg.S3SecretAccessKey,
			BucketName:      cfg.S3BucketName,
			UseSSL:          cfg.S3UseSSL,
		})
		if err != nil {
			logger.Fatal("Failed to initialize S3 storage", "error", err)
		}
	}

	queryService := services.NewService(client, repo, store, logger)

	// Form sessions
	sessions := session.NewManager(queryService, logger)
	go sessions.Run(ctx, time.Minute, cfg.SessionTTL)

	renderer, err := web.NewRenderer(cfg.RenderMarkdown)
	if err != nil {
		logger.Fatal("Failed to load templates", "error", err)
	}

	// Setup HTTP router
	handler := router.NewRouter(
		handlers.NewFormHandler(sessions, renderer, logger, cfg.MaxFileSize, cfg.SessionTTL),
		handlers.NewSubmissionHandler(queryService, logger),
		logger,
	)

	// Create HTTP server
	srv := &http.Server{
		Addr:              ":" + cfg.Port,
		Handler:           handler,
		ReadHeaderTimeout: 15 * time.Second,
		IdleTimeout:       60 * time.Second,
	}

	// Start server
	go func() {
		logger.Info("Starting server",
			"port", cfg.Port,
			"service_url", cfg.ServiceURL,
			"history", cfg.HistoryEnabled,
			"archive", cfg.ArchiveEnabled())
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logger.Fatal("Server failed to start", "error", err)
		}
	}()

	<-ctx.Done()

	logger.Info("Shutting down server...")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		logger.Error("Server forced to shutdown", "error", err)
	}

	logger.Info("Server exited")
}
