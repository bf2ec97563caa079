package services

import (
	"context"
	"sort"
	"time"

	"glucolog/internal/domain"
)

// ActivityKind tags a merged activity entry with its record type
type ActivityKind string

const (
	ActivityGlucose ActivityKind = "glucose"
	ActivityInsulin ActivityKind = "insulin"
	ActivityMeal    ActivityKind = "meal"
)

// ActivityEntry is one row of the merged chronological view. Exactly one
// of Reading, Dose or Meal is set, matching Kind.
type ActivityEntry struct {
	Kind       ActivityKind    `json:"kind"`
	OccurredAt time.Time       `json:"occurredAt"`
	Reading    *domain.Reading `json:"reading,omitempty"`
	Dose       *domain.Dose    `json:"dose,omitempty"`
	Meal       *domain.Meal    `json:"meal,omitempty"`
}

// ActivityService merges readings, doses and meals into one
// chronological stream
type ActivityService struct {
	readings domain.ReadingRepository
	doses    domain.DoseRepository
	meals    domain.MealRepository
}

// NewActivityService creates a new activity service
func NewActivityService(readings domain.ReadingRepository, doses domain.DoseRepository, meals domain.MealRepository) *ActivityService {
	return &ActivityService{readings: readings, doses: doses, meals: meals}
}

// ListAll returns every entry in the query's date range, merged across
// record types and ordered by occurrence time (the activity view sorts
// by time only).
func (s *ActivityService) ListAll(ctx context.Context, user *domain.User, q domain.Query) ([]ActivityEntry, error) {
	start, end := q.Bounds(user.Location())

	readings, err := s.readings.ListRange(ctx, user.ID, start, end)
	if err != nil {
		return nil, err
	}
	doses, err := s.doses.ListRange(ctx, user.ID, start, end)
	if err != nil {
		return nil, err
	}
	meals, err := s.meals.ListRange(ctx, user.ID, start, end)
	if err != nil {
		return nil, err
	}

	entries := make([]ActivityEntry, 0, len(readings)+len(doses)+len(meals))
	for i := range readings {
		entries = append(entries, ActivityEntry{Kind: ActivityGlucose, OccurredAt: readings[i].OccurredAt, Reading: &readings[i]})
	}
	for i := range doses {
		entries = append(entries, ActivityEntry{Kind: ActivityInsulin, OccurredAt: doses[i].OccurredAt, Dose: &doses[i]})
	}
	for i := range meals {
		entries = append(entries, ActivityEntry{Kind: ActivityMeal, OccurredAt: meals[i].OccurredAt, Meal: &meals[i]})
	}

	sort.SliceStable(entries, func(i, j int) bool {
		if q.Dir == domain.SortAsc {
			return entries[i].OccurredAt.Before(entries[j].OccurredAt)
		}
		return entries[i].OccurredAt.After(entries[j].OccurredAt)
	})
	return entries, nil
}

// List returns one page of the merged activity stream
func (s *ActivityService) List(ctx context.Context, user *domain.User, q domain.Query) (Page[ActivityEntry], error) {
	entries, err := s.ListAll(ctx, user, q)
	if err != nil {
		return Page[ActivityEntry]{}, err
	}
	return paginate(entries, q), nil
}

// Recent returns the newest n entries across all record types
func (s *ActivityService) Recent(ctx context.Context, user *domain.User, n int) ([]ActivityEntry, error) {
	entries, err := s.ListAll(ctx, user, domain.DefaultQuery())
	if err != nil {
		return nil, err
	}
	if len(entries) > n {
		entries = entries[:n]
	}
	return entries, nil
}
