package repository

import (
	"context"
	"errors"

	"github.com/timmy/artfolio/internal/domain"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// SavedArtworkRepository handles the user's saved artwork collection.
type SavedArtworkRepository struct {
	db *gorm.DB
}

// NewSavedArtworkRepository creates a new SavedArtworkRepository.
// Parameters:
//   - db: GORM database handle used for queries.
//
// Returns:
//   - *SavedArtworkRepository: repository instance bound to db.
func NewSavedArtworkRepository(db *gorm.DB) *SavedArtworkRepository {
	return &SavedArtworkRepository{db: db}
}

// Add inserts a saved artwork. Saving an artwork twice keeps the first record.
// Parameters:
//   - ctx: context for cancellation and deadlines.
//   - saved: saved artwork record to persist.
//
// Returns:
//   - bool: true if a new record was inserted.
//   - error: non-nil if the insert fails.
func (r *SavedArtworkRepository) Add(ctx context.Context, saved *domain.SavedArtwork) (bool, error) {
	result := r.db.WithContext(ctx).
		Clauses(clause.OnConflict{DoNothing: true}).
		Create(saved)
	if result.Error != nil {
		return false, result.Error
	}
	return result.RowsAffected > 0, nil
}

// Get retrieves a saved artwork by its museum ID.
// Returns ErrNotFound if the artwork is not saved.
func (r *SavedArtworkRepository) Get(ctx context.Context, id int) (*domain.SavedArtwork, error) {
	var saved domain.SavedArtwork
	if err := r.db.WithContext(ctx).First(&saved, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return &saved, nil
}

// Exists checks if an artwork is saved.
func (r *SavedArtworkRepository) Exists(ctx context.Context, id int) (bool, error) {
	var count int64
	if err := r.db.WithContext(ctx).Model(&domain.SavedArtwork{}).Where("id = ?", id).Count(&count).Error; err != nil {
		return false, err
	}
	return count > 0, nil
}

// List returns all saved artworks, newest first.
func (r *SavedArtworkRepository) List(ctx context.Context) ([]domain.SavedArtwork, error) {
	var saved []domain.SavedArtwork
	if err := r.db.WithContext(ctx).Order("saved_at DESC").Order("id").Find(&saved).Error; err != nil {
		return nil, err
	}
	return saved, nil
}

// Count returns the number of saved artworks.
func (r *SavedArtworkRepository) Count(ctx context.Context) (int64, error) {
	var count int64
	if err := r.db.WithContext(ctx).Model(&domain.SavedArtwork{}).Count(&count).Error; err != nil {
		return 0, err
	}
	return count, nil
}

// Remove deletes a saved artwork. Returns ErrNotFound if it was not saved.
func (r *SavedArtworkRepository) Remove(ctx context.Context, id int) error {
	result := r.db.WithContext(ctx).Delete(&domain.SavedArtwork{}, "id = ?", id)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return ErrNotFound
	}
	return nil
}
