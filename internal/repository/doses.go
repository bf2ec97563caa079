package repository

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"glucolog/internal/apperrors"
	"glucolog/internal/domain"
)

// DoseRepository handles insulin dose persistence
type DoseRepository struct {
	db *gorm.DB
}

// NewDoseRepository creates a new dose repository
func NewDoseRepository(db *gorm.DB) *DoseRepository {
	return &DoseRepository{db: db}
}

func (r *DoseRepository) Create(ctx context.Context, dose *domain.Dose) error {
	if err := r.db.WithContext(ctx).Create(dose).Error; err != nil {
		return fmt.Errorf("failed to create insulin dose: %w", err)
	}
	return nil
}

func (r *DoseRepository) Update(ctx context.Context, dose *domain.Dose) error {
	result := r.db.WithContext(ctx).
		Model(&domain.Dose{}).
		Where("user_id = ? AND id = ?", dose.UserID, dose.ID).
		Updates(map[string]interface{}{
			"occurred_at":      dose.OccurredAt,
			"base_units":       dose.BaseUnits,
			"correction_units": dose.CorrectionUnits,
			"insulin_type_id":  dose.InsulinTypeID,
			"notes":            dose.Notes,
			"last_modified_by": dose.LastModifiedBy,
		})
	if result.Error != nil {
		return fmt.Errorf("failed to update insulin dose: %w", result.Error)
	}
	if result.RowsAffected == 0 {
		return apperrors.ErrNotFound
	}
	return nil
}

func (r *DoseRepository) Delete(ctx context.Context, ownerID, id uuid.UUID) error {
	result := r.db.WithContext(ctx).
		Where("user_id = ? AND id = ?", ownerID, id).
		Delete(&domain.Dose{})
	if result.Error != nil {
		return fmt.Errorf("failed to delete insulin dose: %w", result.Error)
	}
	if result.RowsAffected == 0 {
		return apperrors.ErrNotFound
	}
	return nil
}

func (r *DoseRepository) GetByID(ctx context.Context, ownerID, id uuid.UUID) (*domain.Dose, error) {
	var dose domain.Dose
	err := r.db.WithContext(ctx).
		Preload("InsulinType").
		Where("user_id = ? AND id = ?", ownerID, id).
		First(&dose).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, apperrors.ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get insulin dose: %w", err)
	}
	return &dose, nil
}

func (r *DoseRepository) ListRange(ctx context.Context, ownerID uuid.UUID, start, end time.Time) ([]domain.Dose, error) {
	var doses []domain.Dose
	tx := r.db.WithContext(ctx).Preload("InsulinType").Where("user_id = ?", ownerID)
	tx = applyRange(tx, start, end)
	if err := tx.Order("occurred_at DESC, created_at DESC").Find(&doses).Error; err != nil {
		return nil, fmt.Errorf("failed to list insulin doses: %w", err)
	}
	return doses, nil
}
