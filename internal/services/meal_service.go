package services

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"

	"glucolog/internal/domain"
)

// MealService handles meal operations
type MealService struct {
	meals domain.MealRepository
}

// NewMealService creates a new meal service
func NewMealService(meals domain.MealRepository) *MealService {
	return &MealService{meals: meals}
}

// AddMeal validates and stores a new meal
func (s *MealService) AddMeal(ctx context.Context, user *domain.User, meal *domain.Meal) error {
	meal.ID = uuid.New()
	meal.UserID = user.ID
	meal.LastModifiedBy = user.ID
	if meal.OccurredAt.IsZero() {
		meal.OccurredAt = time.Now()
	}
	if err := meal.Validate(); err != nil {
		return fmt.Errorf("invalid meal: %w", err)
	}
	return s.meals.Create(ctx, meal)
}

// UpdateMeal validates and stores changes to an owned meal
func (s *MealService) UpdateMeal(ctx context.Context, user *domain.User, meal *domain.Meal) error {
	meal.UserID = user.ID
	meal.LastModifiedBy = user.ID
	if err := meal.Validate(); err != nil {
		return fmt.Errorf("invalid meal: %w", err)
	}
	return s.meals.Update(ctx, meal)
}

// DeleteMeal removes an owned meal
func (s *MealService) DeleteMeal(ctx context.Context, user *domain.User, id uuid.UUID) error {
	return s.meals.Delete(ctx, user.ID, id)
}

// GetMeal fetches a single owned meal
func (s *MealService) GetMeal(ctx context.Context, user *domain.User, id uuid.UUID) (*domain.Meal, error) {
	return s.meals.GetByID(ctx, user.ID, id)
}

// ListAll returns the user's meals filtered and sorted per the query,
// without pagination
func (s *MealService) ListAll(ctx context.Context, user *domain.User, q domain.Query) ([]domain.Meal, error) {
	start, end := q.Bounds(user.Location())
	meals, err := s.meals.ListRange(ctx, user.ID, start, end)
	if err != nil {
		return nil, err
	}
	domain.SortMeals(meals, q.Sort, q.Dir)
	return meals, nil
}

// List returns one page of the user's meals for table display
func (s *MealService) List(ctx context.Context, user *domain.User, q domain.Query) (Page[domain.Meal], error) {
	meals, err := s.ListAll(ctx, user, q)
	if err != nil {
		return Page[domain.Meal]{}, err
	}
	return paginate(meals, q), nil
}
