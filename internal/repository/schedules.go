package repository

import (
	"context"
	"fmt"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"glucolog/internal/apperrors"
	"glucolog/internal/domain"
)

// ScheduleRepository handles insulin schedule persistence
type ScheduleRepository struct {
	db *gorm.DB
}

// NewScheduleRepository creates a new schedule repository
func NewScheduleRepository(db *gorm.DB) *ScheduleRepository {
	return &ScheduleRepository{db: db}
}

func (r *ScheduleRepository) Create(ctx context.Context, entry *domain.ScheduleEntry) error {
	if err := r.db.WithContext(ctx).Create(entry).Error; err != nil {
		return fmt.Errorf("failed to create schedule entry: %w", err)
	}
	return nil
}

func (r *ScheduleRepository) Update(ctx context.Context, entry *domain.ScheduleEntry) error {
	result := r.db.WithContext(ctx).
		Model(&domain.ScheduleEntry{}).
		Where("user_id = ? AND id = ?", entry.UserID, entry.ID).
		Updates(map[string]interface{}{
			"time_of_day":      entry.TimeOfDay,
			"label":            entry.Label,
			"insulin_type_id":  entry.InsulinTypeID,
			"base_units":       entry.BaseUnits,
			"notes":            entry.Notes,
			"last_modified_by": entry.LastModifiedBy,
		})
	if result.Error != nil {
		return fmt.Errorf("failed to update schedule entry: %w", result.Error)
	}
	if result.RowsAffected == 0 {
		return apperrors.ErrNotFound
	}
	return nil
}

func (r *ScheduleRepository) Delete(ctx context.Context, ownerID, id uuid.UUID) error {
	result := r.db.WithContext(ctx).
		Where("user_id = ? AND id = ?", ownerID, id).
		Delete(&domain.ScheduleEntry{})
	if result.Error != nil {
		return fmt.Errorf("failed to delete schedule entry: %w", result.Error)
	}
	if result.RowsAffected == 0 {
		return apperrors.ErrNotFound
	}
	return nil
}

func (r *ScheduleRepository) List(ctx context.Context, ownerID uuid.UUID) ([]domain.ScheduleEntry, error) {
	var entries []domain.ScheduleEntry
	err := r.db.WithContext(ctx).
		Preload("InsulinType").
		Where("user_id = ?", ownerID).
		Order("time_of_day ASC").
		Find(&entries).Error
	if err != nil {
		return nil, fmt.Errorf("failed to list schedule entries: %w", err)
	}
	return entries, nil
}
