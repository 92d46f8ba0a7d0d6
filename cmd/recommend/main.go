package main

import (
	"context"
	"encoding/json"
	"errors"
	"flag"
	"fmt"
	"os"
	"os/signal"
	"strconv"
	"strings"
	"syscall"

	"github.com/timmy/artfolio/internal/config"
	"github.com/timmy/artfolio/internal/logger"
	"github.com/timmy/artfolio/internal/repository"
	"github.com/timmy/artfolio/internal/service"
	"github.com/timmy/artfolio/internal/source/artic"
)

func main() {
	// Logs go to stderr so stdout carries only the JSON result.
	appLogger := logger.New(&logger.Config{
		Level:       "info",
		Format:      "text",
		Output:      os.Stderr,
		ServiceName: "artfolio-recommend",
	})
	logger.SetDefaultLogger(appLogger)

	configPath := flag.String("config", "", "Path to config file")
	saveIDs := flag.String("save", "", "Comma-separated artwork IDs to save before recommending")
	dislikeIDs := flag.String("dislike", "", "Comma-separated artwork IDs to dislike before recommending")
	pretty := flag.Bool("pretty", false, "Indent JSON output")
	flag.Parse()

	toSave, err := parseIDs(*saveIDs)
	if err != nil {
		appLogger.WithError(err).Fatal("Invalid -save value")
	}
	toDislike, err := parseIDs(*dislikeIDs)
	if err != nil {
		appLogger.WithError(err).Fatal("Invalid -dislike value")
	}

	cfg, err := config.Load(*configPath)
	if err != nil {
		appLogger.WithError(err).Fatal("Failed to load config")
	}

	db, err := repository.InitDB(&cfg.Database)
	if err != nil {
		appLogger.WithError(err).Fatal("Failed to initialize database")
	}

	savedRepo := repository.NewSavedArtworkRepository(db)
	dislikedRepo := repository.NewDislikedArtworkRepository(db)

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

	ctx, cancel := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer cancel()

	collection := service.NewCollectionService(museum, savedRepo, dislikedRepo, nil, appLogger)
	for _, id := range toSave {
		if _, _, err := collection.Save(ctx, id); err != nil {
			appLogger.WithError(err).WithField(logger.FieldArtworkID, id).Warn("Failed to save artwork")
		}
	}
	for _, id := range toDislike {
		if _, _, err := collection.Dislike(ctx, id); err != nil {
			appLogger.WithError(err).WithField(logger.FieldArtworkID, id).Warn("Failed to dislike artwork")
		}
	}

	recommender := service.NewRecommendationService(
		repository.NewHistoryRepository(savedRepo, dislikedRepo),
		museum,
		appLogger,
		&service.RecommendConfig{FetchTimeout: cfg.Recommend.FetchTimeout},
	)

	result, err := recommender.Generate(ctx)
	if err != nil {
		code := 1
		if errors.Is(err, service.ErrHistoryUnavailable) {
			code = 2
		}
		appLogger.WithError(err).Error("Failed to generate recommendations")
		os.Exit(code)
	}

	encoder := json.NewEncoder(os.Stdout)
	if *pretty {
		encoder.SetIndent("", "  ")
	}
	if err := encoder.Encode(result); err != nil {
		appLogger.WithError(err).Fatal("Failed to write result")
	}
}

// parseIDs parses a comma-separated list of artwork IDs.
func parseIDs(raw string) ([]int, error) {
	if strings.TrimSpace(raw) == "" {
		return nil, nil
	}
	parts := strings.Split(raw, ",")
	ids := make([]int, 0, len(parts))
	for _, part := range parts {
		part = strings.TrimSpace(part)
		if part == "" {
			continue
		}
		id, err := strconv.Atoi(part)
		if err != nil || id <= 0 {
			return nil, fmt.Errorf("invalid artwork ID %q", part)
		}
		ids = append(ids, id)
	}
	return ids, nil
}
