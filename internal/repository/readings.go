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

// ReadingRepository handles glucose reading persistence
type ReadingRepository struct {
	db *gorm.DB
}

// NewReadingRepository creates a new reading repository
func NewReadingRepository(db *gorm.DB) *ReadingRepository {
	return &ReadingRepository{db: db}
}

func (r *ReadingRepository) Create(ctx context.Context, reading *domain.Reading) error {
	if err := r.db.WithContext(ctx).Create(reading).Error; err != nil {
		return fmt.Errorf("failed to create glucose reading: %w", err)
	}
	return nil
}

func (r *ReadingRepository) Update(ctx context.Context, reading *domain.Reading) error {
	result := r.db.WithContext(ctx).
		Model(&domain.Reading{}).
		Where("user_id = ? AND id = ?", reading.UserID, reading.ID).
		Updates(map[string]interface{}{
			"occurred_at":      reading.OccurredAt,
			"value":            reading.Value,
			"unit":             reading.Unit,
			"notes":            reading.Notes,
			"last_modified_by": reading.LastModifiedBy,
		})
	if result.Error != nil {
		return fmt.Errorf("failed to update glucose reading: %w", result.Error)
	}
	if result.RowsAffected == 0 {
		return apperrors.ErrNotFound
	}
	return nil
}

func (r *ReadingRepository) Delete(ctx context.Context, ownerID, id uuid.UUID) error {
	result := r.db.WithContext(ctx).
		Where("user_id = ? AND id = ?", ownerID, id).
		Delete(&domain.Reading{})
	if result.Error != nil {
		return fmt.Errorf("failed to delete glucose reading: %w", result.Error)
	}
	if result.RowsAffected == 0 {
		return apperrors.ErrNotFound
	}
	return nil
}

func (r *ReadingRepository) GetByID(ctx context.Context, ownerID, id uuid.UUID) (*domain.Reading, error) {
	var reading domain.Reading
	err := r.db.WithContext(ctx).
		Where("user_id = ? AND id = ?", ownerID, id).
		First(&reading).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, apperrors.ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get glucose reading: %w", err)
	}
	return &reading, nil
}

// ListRange returns the owner's readings inside [start, end), newest
// first with creation order as tiebreak. Zero bounds are open.
func (r *ReadingRepository) ListRange(ctx context.Context, ownerID uuid.UUID, start, end time.Time) ([]domain.Reading, error) {
	var readings []domain.Reading
	tx := r.db.WithContext(ctx).Where("user_id = ?", ownerID)
	tx = applyRange(tx, start, end)
	if err := tx.Order("occurred_at DESC, created_at DESC").Find(&readings).Error; err != nil {
		return nil, fmt.Errorf("failed to list glucose readings: %w", err)
	}
	return readings, nil
}

// applyRange adds the half-open occurred_at window shared by all
// record repositories.
func applyRange(tx *gorm.DB, start, end time.Time) *gorm.DB {
	if !start.IsZero() {
		tx = tx.Where("occurred_at >= ?", start)
	}
	if !end.IsZero() {
		tx = tx.Where("occurred_at < ?", end)
	}
	return tx
}
