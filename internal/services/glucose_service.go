package services

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"

	"glucolog/internal/domain"
)

// GlucoseService handles glucose reading operations
type GlucoseService struct {
	readings domain.ReadingRepository
}

// NewGlucoseService creates a new glucose service
func NewGlucoseService(readings domain.ReadingRepository) *GlucoseService {
	return &GlucoseService{readings: readings}
}

// AddReading validates and stores a new glucose reading
func (s *GlucoseService) AddReading(ctx context.Context, user *domain.User, reading *domain.Reading) error {
	reading.ID = uuid.New()
	reading.UserID = user.ID
	reading.LastModifiedBy = user.ID
	if reading.OccurredAt.IsZero() {
		reading.OccurredAt = time.Now()
	}
	if err := reading.Validate(); err != nil {
		return fmt.Errorf("invalid glucose reading: %w", err)
	}
	return s.readings.Create(ctx, reading)
}

// UpdateReading validates and stores changes to an owned reading
func (s *GlucoseService) UpdateReading(ctx context.Context, user *domain.User, reading *domain.Reading) error {
	reading.UserID = user.ID
	reading.LastModifiedBy = user.ID
	if err := reading.Validate(); err != nil {
		return fmt.Errorf("invalid glucose reading: %w", err)
	}
	return s.readings.Update(ctx, reading)
}

// DeleteReading removes an owned reading
func (s *GlucoseService) DeleteReading(ctx context.Context, user *domain.User, id uuid.UUID) error {
	return s.readings.Delete(ctx, user.ID, id)
}

// GetReading fetches a single owned reading
func (s *GlucoseService) GetReading(ctx context.Context, user *domain.User, id uuid.UUID) (*domain.Reading, error) {
	return s.readings.GetByID(ctx, user.ID, id)
}

// ListAll returns the user's readings filtered and sorted per the query,
// without pagination. Charts and export consume this exact set.
func (s *GlucoseService) ListAll(ctx context.Context, user *domain.User, q domain.Query) ([]domain.Reading, error) {
	start, end := q.Bounds(user.Location())
	readings, err := s.readings.ListRange(ctx, user.ID, start, end)
	if err != nil {
		return nil, err
	}
	domain.SortReadings(readings, q.Sort, q.Dir)
	return readings, nil
}

// List returns one page of the user's readings for table display
func (s *GlucoseService) List(ctx context.Context, user *domain.User, q domain.Query) (Page[domain.Reading], error) {
	readings, err := s.ListAll(ctx, user, q)
	if err != nil {
		return Page[domain.Reading]{}, err
	}
	return paginate(readings, q), nil
}
