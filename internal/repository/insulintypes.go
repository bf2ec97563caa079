package repository

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"glucolog/internal/apperrors"
	"glucolog/internal/domain"
)

// InsulinTypeRepository handles insulin type persistence
type InsulinTypeRepository struct {
	db *gorm.DB
}

// NewInsulinTypeRepository creates a new insulin type repository
func NewInsulinTypeRepository(db *gorm.DB) *InsulinTypeRepository {
	return &InsulinTypeRepository{db: db}
}

func (r *InsulinTypeRepository) Create(ctx context.Context, t *domain.InsulinType) error {
	if err := r.db.WithContext(ctx).Create(t).Error; err != nil {
		return fmt.Errorf("failed to create insulin type: %w", err)
	}
	return nil
}

func (r *InsulinTypeRepository) Update(ctx context.Context, t *domain.InsulinType) error {
	result := r.db.WithContext(ctx).
		Model(&domain.InsulinType{}).
		Where("user_id = ? AND id = ?", t.UserID, t.ID).
		Updates(map[string]interface{}{
			"name":             t.Name,
			"kind":             t.Kind,
			"notes":            t.Notes,
			"is_default":       t.IsDefault,
			"last_modified_by": t.LastModifiedBy,
		})
	if result.Error != nil {
		return fmt.Errorf("failed to update insulin type: %w", result.Error)
	}
	if result.RowsAffected == 0 {
		return apperrors.ErrNotFound
	}
	return nil
}

func (r *InsulinTypeRepository) Delete(ctx context.Context, ownerID, id uuid.UUID) error {
	result := r.db.WithContext(ctx).
		Where("user_id = ? AND id = ?", ownerID, id).
		Delete(&domain.InsulinType{})
	if result.Error != nil {
		return fmt.Errorf("failed to delete insulin type: %w", result.Error)
	}
	if result.RowsAffected == 0 {
		return apperrors.ErrNotFound
	}
	return nil
}

func (r *InsulinTypeRepository) GetByID(ctx context.Context, ownerID, id uuid.UUID) (*domain.InsulinType, error) {
	var t domain.InsulinType
	err := r.db.WithContext(ctx).
		Where("user_id = ? AND id = ?", ownerID, id).
		First(&t).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, apperrors.ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get insulin type: %w", err)
	}
	return &t, nil
}

func (r *InsulinTypeRepository) List(ctx context.Context, ownerID uuid.UUID) ([]domain.InsulinType, error) {
	var types []domain.InsulinType
	err := r.db.WithContext(ctx).
		Where("user_id = ?", ownerID).
		Order("name ASC").
		Find(&types).Error
	if err != nil {
		return nil, fmt.Errorf("failed to list insulin types: %w", err)
	}
	return types, nil
}

func (r *InsulinTypeRepository) ClearDefault(ctx context.Context, ownerID uuid.UUID) error {
	err := r.db.WithContext(ctx).
		Model(&domain.InsulinType{}).
		Where("user_id = ? AND is_default = ?", ownerID, true).
		Update("is_default", false).Error
	if err != nil {
		return fmt.Errorf("failed to clear default insulin type: %w", err)
	}
	return nil
}
