package repository

import (
	"context"
	"fmt"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"glucolog/internal/apperrors"
	"glucolog/internal/domain"
)

// CorrectionBandRepository handles correction scale persistence
type CorrectionBandRepository struct {
	db *gorm.DB
}

// NewCorrectionBandRepository creates a new correction band repository
func NewCorrectionBandRepository(db *gorm.DB) *CorrectionBandRepository {
	return &CorrectionBandRepository{db: db}
}

func (r *CorrectionBandRepository) Save(ctx context.Context, band *domain.CorrectionBand) error {
	if err := r.db.WithContext(ctx).Save(band).Error; err != nil {
		return fmt.Errorf("failed to save correction band: %w", err)
	}
	return nil
}

func (r *CorrectionBandRepository) Delete(ctx context.Context, ownerID, id uuid.UUID) error {
	result := r.db.WithContext(ctx).
		Where("user_id = ? AND id = ?", ownerID, id).
		Delete(&domain.CorrectionBand{})
	if result.Error != nil {
		return fmt.Errorf("failed to delete correction band: %w", result.Error)
	}
	if result.RowsAffected == 0 {
		return apperrors.ErrNotFound
	}
	return nil
}

func (r *CorrectionBandRepository) ListBands(ctx context.Context, ownerID uuid.UUID) ([]domain.CorrectionBand, error) {
	var bands []domain.CorrectionBand
	err := r.db.WithContext(ctx).
		Where("user_id = ?", ownerID).
		Order("lower_bound ASC").
		Find(&bands).Error
	if err != nil {
		return nil, fmt.Errorf("failed to list correction bands: %w", err)
	}
	return bands, nil
}
