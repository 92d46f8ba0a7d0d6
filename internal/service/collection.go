package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/timmy/artfolio/internal/domain"
	"github.com/timmy/artfolio/internal/logger"
	"github.com/timmy/artfolio/internal/repository"
	"github.com/timmy/artfolio/internal/source"
)

// CollectionService manages the saved and disliked collections.
type CollectionService struct {
	catalog      source.Catalog
	savedRepo    *repository.SavedArtworkRepository
	dislikedRepo *repository.DislikedArtworkRepository
	mirror       *MirrorService // nil when mirroring is disabled
	logger       *logger.Logger
	now          func() time.Time
}

// NewCollectionService creates a new collection service.
// Parameters:
//   - catalog: museum catalog used to resolve artwork IDs.
//   - savedRepo: repository for saved artworks.
//   - dislikedRepo: repository for disliked artworks.
//   - mirror: optional image mirror; nil disables mirroring.
//   - log: logger instance.
//
// Returns:
//   - *CollectionService: initialized collection service.
func NewCollectionService(
	catalog source.Catalog,
	savedRepo *repository.SavedArtworkRepository,
	dislikedRepo *repository.DislikedArtworkRepository,
	mirror *MirrorService,
	log *logger.Logger,
) *CollectionService {
	return &CollectionService{
		catalog:      catalog,
		savedRepo:    savedRepo,
		dislikedRepo: dislikedRepo,
		mirror:       mirror,
		logger:       log,
		now:          time.Now,
	}
}

// Save adds an artwork to the saved collection. Saving an already saved
// artwork returns the existing record unchanged.
// Parameters:
//   - ctx: context for cancellation and deadlines.
//   - id: museum artwork ID.
//
// Returns:
//   - *domain.SavedArtwork: the saved record.
//   - bool: true if the artwork was newly saved.
//   - error: wraps source.ErrNotFound for unknown artworks.
func (s *CollectionService) Save(ctx context.Context, id int) (*domain.SavedArtwork, bool, error) {
	ctx = logger.WithField(ctx, logger.FieldArtworkID, id)

	existing, err := s.savedRepo.Get(ctx, id)
	if err == nil {
		return existing, false, nil
	}
	if !errors.Is(err, repository.ErrNotFound) {
		return nil, false, fmt.Errorf("failed to check saved artwork: %w", err)
	}

	artwork, err := s.catalog.GetArtwork(ctx, id)
	if err != nil {
		return nil, false, fmt.Errorf("failed to look up artwork %d: %w", id, err)
	}

	saved := &domain.SavedArtwork{
		Artwork: *artwork,
		SavedAt: s.now().UnixMilli(),
	}

	if s.mirror != nil && artwork.HasImage() {
		result, err := s.mirror.Mirror(ctx, artwork)
		if err != nil {
			logger.CtxWarn(ctx, "Failed to mirror artwork image: %v", err)
		} else {
			saved.MirrorURL = result.URL
			saved.Width = result.Width
			saved.Height = result.Height
		}
	}

	created, err := s.savedRepo.Add(ctx, saved)
	if err != nil {
		return nil, false, fmt.Errorf("failed to save artwork: %w", err)
	}
	if !created {
		// Lost a race with a concurrent save; report the stored record.
		existing, err := s.savedRepo.Get(ctx, id)
		if err != nil {
			return nil, false, fmt.Errorf("failed to load saved artwork: %w", err)
		}
		return existing, false, nil
	}

	logger.CtxInfo(ctx, "Artwork saved: %s", artwork.Title)
	return saved, true, nil
}

// Unsave removes an artwork from the saved collection and drops its
// mirrored image. Returns repository.ErrNotFound if it was not saved.
func (s *CollectionService) Unsave(ctx context.Context, id int) error {
	ctx = logger.WithField(ctx, logger.FieldArtworkID, id)

	saved, err := s.savedRepo.Get(ctx, id)
	if err != nil {
		return err
	}
	if err := s.savedRepo.Remove(ctx, id); err != nil {
		return err
	}

	if s.mirror != nil && saved.MirrorURL != "" {
		if err := s.mirror.Remove(ctx, id, saved.MirrorURL); err != nil {
			logger.CtxWarn(ctx, "Failed to delete mirrored image: %v", err)
		}
	}
	logger.CtxInfo(ctx, "Artwork removed from saved collection")
	return nil
}

// ListSaved returns the saved collection, newest first.
func (s *CollectionService) ListSaved(ctx context.Context) ([]domain.SavedArtwork, error) {
	return s.savedRepo.List(ctx)
}

// IsSaved reports whether an artwork is in the saved collection.
func (s *CollectionService) IsSaved(ctx context.Context, id int) (bool, error) {
	return s.savedRepo.Exists(ctx, id)
}

// Dislike marks an artwork as disliked so it is never recommended.
// The saved collection is left untouched.
func (s *CollectionService) Dislike(ctx context.Context, id int) (*domain.DislikedArtwork, bool, error) {
	ctx = logger.WithField(ctx, logger.FieldArtworkID, id)

	artwork, err := s.catalog.GetArtwork(ctx, id)
	if err != nil {
		return nil, false, fmt.Errorf("failed to look up artwork %d: %w", id, err)
	}

	disliked := &domain.DislikedArtwork{
		Artwork:    *artwork,
		DislikedAt: s.now().UnixMilli(),
	}
	created, err := s.dislikedRepo.Add(ctx, disliked)
	if err != nil {
		return nil, false, fmt.Errorf("failed to dislike artwork: %w", err)
	}
	if created {
		logger.CtxInfo(ctx, "Artwork disliked: %s", artwork.Title)
	}
	return disliked, created, nil
}

// Undislike removes an artwork from the disliked collection.
func (s *CollectionService) Undislike(ctx context.Context, id int) error {
	return s.dislikedRepo.Remove(ctx, id)
}

// ListDisliked returns the disliked collection, newest first.
func (s *CollectionService) ListDisliked(ctx context.Context) ([]domain.DislikedArtwork, error) {
	return s.dislikedRepo.List(ctx)
}
