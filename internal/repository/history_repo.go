package repository

import (
	"context"
	"fmt"

	"github.com/timmy/artfolio/internal/domain"
)

// HistoryRepository exposes the saved and disliked collections as one
// read-only history for the recommendation engine.
type HistoryRepository struct {
	saved    *SavedArtworkRepository
	disliked *DislikedArtworkRepository
}

// NewHistoryRepository creates a new HistoryRepository.
func NewHistoryRepository(saved *SavedArtworkRepository, disliked *DislikedArtworkRepository) *HistoryRepository {
	return &HistoryRepository{saved: saved, disliked: disliked}
}

// GetSaved returns every saved artwork.
func (r *HistoryRepository) GetSaved(ctx context.Context) ([]domain.SavedArtwork, error) {
	saved, err := r.saved.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to list saved artworks: %w", err)
	}
	return saved, nil
}

// GetDisliked returns every disliked artwork.
func (r *HistoryRepository) GetDisliked(ctx context.Context) ([]domain.DislikedArtwork, error) {
	disliked, err := r.disliked.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to list disliked artworks: %w", err)
	}
	return disliked, nil
}
