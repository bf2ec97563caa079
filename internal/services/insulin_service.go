package services

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"

	"glucolog/internal/domain"
)

// InsulinService handles insulin dose and insulin type operations
type InsulinService struct {
	doses domain.DoseRepository
	types domain.InsulinTypeRepository
}

// NewInsulinService creates a new insulin service
func NewInsulinService(doses domain.DoseRepository, types domain.InsulinTypeRepository) *InsulinService {
	return &InsulinService{doses: doses, types: types}
}

// AddDose validates and stores a new insulin dose
func (s *InsulinService) AddDose(ctx context.Context, user *domain.User, dose *domain.Dose) error {
	dose.ID = uuid.New()
	dose.UserID = user.ID
	dose.LastModifiedBy = user.ID
	if dose.OccurredAt.IsZero() {
		dose.OccurredAt = time.Now()
	}
	if err := dose.Validate(); err != nil {
		return fmt.Errorf("invalid insulin dose: %w", err)
	}
	if _, err := s.types.GetByID(ctx, user.ID, dose.InsulinTypeID); err != nil {
		return fmt.Errorf("insulin type lookup failed: %w", err)
	}
	return s.doses.Create(ctx, dose)
}

// UpdateDose validates and stores changes to an owned dose
func (s *InsulinService) UpdateDose(ctx context.Context, user *domain.User, dose *domain.Dose) error {
	dose.UserID = user.ID
	dose.LastModifiedBy = user.ID
	if err := dose.Validate(); err != nil {
		return fmt.Errorf("invalid insulin dose: %w", err)
	}
	return s.doses.Update(ctx, dose)
}

// DeleteDose removes an owned dose
func (s *InsulinService) DeleteDose(ctx context.Context, user *domain.User, id uuid.UUID) error {
	return s.doses.Delete(ctx, user.ID, id)
}

// GetDose fetches a single owned dose
func (s *InsulinService) GetDose(ctx context.Context, user *domain.User, id uuid.UUID) (*domain.Dose, error) {
	return s.doses.GetByID(ctx, user.ID, id)
}

// ListAllDoses returns the user's doses filtered and sorted per the
// query, without pagination
func (s *InsulinService) ListAllDoses(ctx context.Context, user *domain.User, q domain.Query) ([]domain.Dose, error) {
	start, end := q.Bounds(user.Location())
	doses, err := s.doses.ListRange(ctx, user.ID, start, end)
	if err != nil {
		return nil, err
	}
	domain.SortDoses(doses, q.Sort, q.Dir)
	return doses, nil
}

// ListDoses returns one page of the user's doses for table display
func (s *InsulinService) ListDoses(ctx context.Context, user *domain.User, q domain.Query) (Page[domain.Dose], error) {
	doses, err := s.ListAllDoses(ctx, user, q)
	if err != nil {
		return Page[domain.Dose]{}, err
	}
	return paginate(doses, q), nil
}

// AddInsulinType stores a new insulin type. Marking it default clears
// any previous default first, keeping at most one per user.
func (s *InsulinService) AddInsulinType(ctx context.Context, user *domain.User, t *domain.InsulinType) error {
	t.ID = uuid.New()
	t.UserID = user.ID
	t.LastModifiedBy = user.ID
	if err := t.Validate(); err != nil {
		return fmt.Errorf("invalid insulin type: %w", err)
	}
	if t.IsDefault {
		if err := s.types.ClearDefault(ctx, user.ID); err != nil {
			return err
		}
	}
	return s.types.Create(ctx, t)
}

// UpdateInsulinType stores changes to an owned insulin type
func (s *InsulinService) UpdateInsulinType(ctx context.Context, user *domain.User, t *domain.InsulinType) error {
	t.UserID = user.ID
	t.LastModifiedBy = user.ID
	if err := t.Validate(); err != nil {
		return fmt.Errorf("invalid insulin type: %w", err)
	}
	if t.IsDefault {
		if err := s.types.ClearDefault(ctx, user.ID); err != nil {
			return err
		}
	}
	return s.types.Update(ctx, t)
}

// DeleteInsulinType removes an owned insulin type
func (s *InsulinService) DeleteInsulinType(ctx context.Context, user *domain.User, id uuid.UUID) error {
	return s.types.Delete(ctx, user.ID, id)
}

// ListInsulinTypes returns the user's insulin types ordered by name
func (s *InsulinService) ListInsulinTypes(ctx context.Context, user *domain.User) ([]domain.InsulinType, error) {
	return s.types.List(ctx, user.ID)
}
