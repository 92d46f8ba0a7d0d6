package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/timmy/artfolio/internal/api"
	"github.com/timmy/artfolio/internal/config"
	"github.com/timmy/artfolio/internal/logger"
	"github.com/timmy/artfolio/internal/repository"
	"github.com/timmy/artfolio/internal/service"
	"github.com/timmy/artfolio/internal/source/artic"
	"github.com/timmy/artfolio/internal/storage"
)

func main() {
	appLogger := logger.NewDefault()
	logger.SetDefaultLogger(appLogger)
	defer logger.Sync()

	// CONFIG_PATH overrides the default config search for deployments.
	cfg, err := config.Load(os.Getenv("CONFIG_PATH"))
	if err != nil {
		appLogger.WithError(err).Fatal("Failed to load config")
	}

	db, err := repository.InitDB(&cfg.Database)
	if err != nil {
		appLogger.WithError(err).Fatal("Failed to initialize database")
	}

	savedRepo := repository.NewSavedArtworkRepository(db)
	dislikedRepo := repository.NewDislikedArtworkRepository(db)
	historyRepo := repository.NewHistoryRepository(savedRepo, dislikedRepo)

	museum := artic.NewAdapter(&artic.Config{
		BaseURL:          cfg.Museum.BaseURL,
		IIIFURL:          cfg.Museum.IIIFURL,
		Timeout:          cfg.Museum.Timeout,
		UserAgent:        cfg.Museum.UserAgent,
		RateLimit:        cfg.Museum.RateLimit,
		Burst:            cfg.Museum.Burst,
		FailureThreshold: cfg.Museum.Breaker.FailureThreshold,
		BreakerTimeout:   cfg.Museum.Breaker.Timeout,
	})
	appLogger.WithField(logger.FieldSource, museum.GetSourceID()).
		Infof("Using %s collection API at %s", museum.GetDisplayName(), cfg.Museum.BaseURL)

	var mirrorService *service.MirrorService
	if cfg.Storage.Enabled {
		objectStorage, err := storage.NewStorage(&cfg.Storage)
		if err != nil {
			appLogger.WithError(err).Fatal("Failed to initialize storage")
		}
		if s3Storage, ok := objectStorage.(*storage.S3Storage); ok {
			ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
			err := s3Storage.EnsureBucket(ctx)
			cancel()
			if err != nil {
				appLogger.WithError(err).Fatal("Failed to ensure storage bucket")
			}
		}
		mirrorService = service.NewMirrorService(objectStorage, appLogger, &service.MirrorConfig{
			Timeout:   cfg.Museum.Timeout,
			UserAgent: cfg.Museum.UserAgent,
		})
		appLogger.WithField("bucket", cfg.Storage.Bucket).Info("Image mirroring enabled")
	}

	deps := &api.Dependencies{
		DB:             db,
		CatalogService: service.NewCatalogService(museum, appLogger),
		RecommendationService: service.NewRecommendationService(historyRepo, museum, appLogger, &service.RecommendConfig{
			FetchTimeout: cfg.Recommend.FetchTimeout,
		}),
		CollectionService: service.NewCollectionService(museum, savedRepo, dislikedRepo, mirrorService, appLogger),
	}

	router := api.SetupRouter(deps, &cfg.Server, appLogger)

	srv := &http.Server{
		Addr:              fmt.Sprintf(":%d", cfg.Server.Port),
		Handler:           router,
		ReadHeaderTimeout: 10 * time.Second,
	}

	go func() {
		appLogger.WithFields(logger.Fields{
			"port": cfg.Server.Port,
			"mode": cfg.Server.Mode,
		}).Info("Starting API server")
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			appLogger.WithError(err).Fatal("Failed to start server")
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	appLogger.Info("Shutting down server...")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		appLogger.WithError(err).Error("Server forced to shutdown")
	}

	if sqlDB, err := db.DB(); err == nil {
		sqlDB.Close()
	}

	appLogger.Info("Server exited")
}
