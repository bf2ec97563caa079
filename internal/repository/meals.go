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

// MealRepository handles meal persistence
type MealRepository struct {
	db *gorm.DB
}

// NewMealRepository creates a new meal repository
func NewMealRepository(db *gorm.DB) *MealRepository {
	return &MealRepository{db: db}
}

func (r *MealRepository) Create(ctx context.Context, meal *domain.Meal) error {
	if err := r.db.WithContext(ctx).Create(meal).Error; err != nil {
		return fmt.Errorf("failed to create meal: %w", err)
	}
	return nil
}

func (r *MealRepository) Update(ctx context.Context, meal *domain.Meal) error {
	result := r.db.WithContext(ctx).
		Model(&domain.Meal{}).
		Where("user_id = ? AND id = ?", meal.UserID, meal.ID).
		Updates(map[string]interface{}{
			"occurred_at":      meal.OccurredAt,
			"meal_type":        meal.MealType,
			"description":      meal.Description,
			"carbs_grams":      meal.CarbsGrams,
			"notes":            meal.Notes,
			"last_modified_by": meal.LastModifiedBy,
		})
	if result.Error != nil {
		return fmt.Errorf("failed to update meal: %w", result.Error)
	}
	if result.RowsAffected == 0 {
		return apperrors.ErrNotFound
	}
	return nil
}

func (r *MealRepository) Delete(ctx context.Context, ownerID, id uuid.UUID) error {
	result := r.db.WithContext(ctx).
		Where("user_id = ? AND id = ?", ownerID, id).
		Delete(&domain.Meal{})
	if result.Error != nil {
		return fmt.Errorf("failed to delete meal: %w", result.Error)
	}
	if result.RowsAffected == 0 {
		return apperrors.ErrNotFound
	}
	return nil
}

func (r *MealRepository) GetByID(ctx context.Context, ownerID, id uuid.UUID) (*domain.Meal, error) {
	var meal domain.Meal
	err := r.db.WithContext(ctx).
		Where("user_id = ? AND id = ?", ownerID, id).
		First(&meal).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, apperrors.ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get meal: %w", err)
	}
	return &meal, nil
}

func (r *MealRepository) ListRange(ctx context.Context, ownerID uuid.UUID, start, end time.Time) ([]domain.Meal, error) {
	var meals []domain.Meal
	tx := r.db.WithContext(ctx).Where("user_id = ?", ownerID)
	tx = applyRange(tx, start, end)
	if err := tx.Order("occurred_at DESC, created_at DESC").Find(&meals).Error; err != nil {
		return nil, fmt.Errorf("failed to list meals: %w", err)
	}
	return meals, nil
}
