package main

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"warranty-vault/internal/config"
	"warranty-vault/internal/database"
	"warranty-vault/internal/handler"
	"warranty-vault/internal/repository"
	"warranty-vault/internal/router"
	"warranty-vault/internal/service"
	"warranty-vault/internal/storage"
)

func main() {
	if err := run(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func run() error {
	// Load configuration
	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("failed to load configuration: %w", err)
	}

	// Initialize logger
	logger := config.NewLogger(cfg.Logger)
	logger.Info().Msg("starting warranty-vault API server")

	// Create context for application lifecycle
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	// Apply schema migrations before opening the pool
	if err := database.Migrate(cfg.Database, logger); err != nil {
		return fmt.Errorf("failed to migrate database: %w", err)
	}

	// Initialize database connection pool
	pool, err := database.NewPool(ctx, cfg.Database, logger)
	if err != nil {
		return fmt.Errorf("failed to initialize database: %w", err)
	}
	defer pool.Close()

	// Initialize repositories
	productRepo := repository.NewProductRepository(pool, logger)
	categoryRepo := repository.NewCategoryRepository(pool, logger)
	claimRepo := repository.NewClaimRepository(pool, logger)
	profileRepo := repository.NewProfileRepository(pool, logger)

	// Initialize attachment storage with S3 and local fallback
	var store storage.AttachmentStore
	if cfg.Storage.S3Enabled {
		s3Store, err := storage.NewS3Store(
			ctx,
			cfg.Storage.Bucket,
			cfg.Storage.Region,
			cfg.Storage.Prefix,
			time.Duration(cfg.Storage.PresignTTLMin)*time.Minute,
			logger,
		)
		if err != nil {
			logger.Warn().
				Err(err).
				Msg("failed to initialise S3 attachment store, falling back to local file system")
			store, err = storage.NewLocalStore(cfg.Storage.LocalDir, logger)
			if err != nil {
				return fmt.Errorf("failed to initialize attachment storage: %w", err)
			}
		} else {
			store = s3Store
		}
	} else {
		store, err = storage.NewLocalStore(cfg.Storage.LocalDir, logger)
		if err != nil {
			return fmt.Errorf("failed to initialize attachment storage: %w", err)
		}
		logger.Info().Msg("using local file system for attachments (S3 disabled)")
	}

	// Initialize services
	productService := service.NewProductService(productRepo, categoryRepo, cfg.App.DefaultLanguage, cfg.App.DefaultCurrency, logger)
	dashboardService := service.NewDashboardService(productRepo, categoryRepo, cfg.App.UpcomingLimit, cfg.App.RecentLimit, logger)
	categoryService := service.NewCategoryService(categoryRepo, logger)
	claimService := service.NewClaimService(claimRepo, productRepo, logger)
	profileService := service.NewProfileService(profileRepo, cfg.App.DefaultCurrency, cfg.App.DefaultLanguage, logger)
	attachmentService := service.NewAttachmentService(productRepo, store, logger)

	// Initialize HTTP handlers
	handlers := router.Handlers{
		Product:    handler.NewProductHandler(productService, logger),
		Dashboard:  handler.NewDashboardHandler(dashboardService, logger),
		Category:   handler.NewCategoryHandler(categoryService, logger),
		Claim:      handler.NewClaimHandler(claimService, logger),
		Profile:    handler.NewProfileHandler(profileService, logger),
		Attachment: handler.NewAttachmentHandler(attachmentService, logger),
	}

	// Initialize router
	mux := router.New(handlers, cfg.Auth.APIKey, logger)

	// Create HTTP server
	server := &http.Server{
		Addr:         cfg.Server.Address(),
		Handler:      mux,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 15 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	// Channel to listen for errors from the server
	serverErrors := make(chan error, 1)

	// Start HTTP server in a goroutine
	go func() {
		logger.Info().
			Str("address", cfg.Server.Address()).
			Msg("HTTP server started")
		serverErrors <- server.ListenAndServe()
	}()

	// Channel to listen for interrupt signals
	shutdown := make(chan os.Signal, 1)
	signal.Notify(shutdown, os.Interrupt, syscall.SIGTERM)

	// Block until we receive a signal or an error
	select {
	case err := <-serverErrors:
		return fmt.Errorf("server error: %w", err)

	case sig := <-shutdown:
		logger.Info().
			Str("signal", sig.String()).
			Msg("shutdown signal received, starting graceful shutdown")

		// Create a context with timeout for shutdown
		shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 30*time.Second)
		defer shutdownCancel()

		// Attempt graceful shutdown
		if err := server.Shutdown(shutdownCtx); err != nil {
			logger.Error().Err(err).Msg("failed to shutdown server gracefully")
			// Force close
			if closeErr := server.Close(); closeErr != nil {
				logger.Error().Err(closeErr).Msg("failed to close server")
			}
			return fmt.Errorf("server shutdown failed: %w", err)
		}

		logger.Info().Msg("server shutdown completed")
	}

	return nil
}
