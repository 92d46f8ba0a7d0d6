package repository

import (
	"context"

	"github.com/timmy/artfolio/internal/domain"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// DislikedArtworkRepository handles artworks the user marked as disliked.
type DislikedArtworkRepository struct {
	db *gorm.DB
}

// NewDislikedArtworkRepository creates a new DislikedArtworkRepository.
func NewDislikedArtworkRepository(db *gorm.DB) *DislikedArtworkRepository {
	return &DislikedArtworkRepository{db: db}
}

// Add inserts a disliked artwork; an existing record is left unchanged.
func (r *DislikedArtworkRepository) Add(ctx context.Context, disliked *domain.DislikedArtwork) (bool, error) {
	result := r.db.WithContext(ctx).
		Clauses(clause.OnConflict{DoNothing: true}).
		Create(disliked)
	if result.Error != nil {
		return false, result.Error
	}
	return result.RowsAffected > 0, nil
}

// Exists checks if an artwork is disliked.
func (r *DislikedArtworkRepository) Exists(ctx context.Context, id int) (bool, error) {
	var count int64
	if err := r.db.WithContext(ctx).Model(&domain.DislikedArtwork{}).Where("id = ?", id).Count(&count).Error; err != nil {
		return false, err
	}
	return count > 0, nil
}

// List returns all disliked artworks, newest first.
func (r *DislikedArtworkRepository) List(ctx context.Context) ([]domain.DislikedArtwork, error) {
	var disliked []domain.DislikedArtwork
	if err := r.db.WithContext(ctx).Order("disliked_at DESC").Order("id").Find(&disliked).Error; err != nil {
		return nil, err
	}
	return disliked, nil
}

// Remove deletes a disliked artwork. Returns ErrNotFound if it was not disliked.
func (r *DislikedArtworkRepository) Remove(ctx context.Context, id int) error {
	result := r.db.WithContext(ctx).Delete(&domain.DislikedArtwork{}, "id = ?", id)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return ErrNotFound
	}
	return nil
}
