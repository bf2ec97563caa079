// Package memory provides in-memory implementations of the domain
// repository ports, used by tests and local development.
package memory

import (
	"context"
	"sort"
	"sync"
	"time"

	"github.com/google/uuid"

	"glucolog/internal/apperrors"
	"glucolog/internal/domain"
)

// Store holds all records for all owners in process memory. Slices keep
// insertion order so stable-sort guarantees can be exercised in tests.
type Store struct {
	mu       sync.RWMutex
	users    map[uuid.UUID]domain.User
	readings []domain.Reading
	doses    []domain.Dose
	meals    []domain.Meal
	bands    []domain.CorrectionBand
	schedule []domain.ScheduleEntry
	types    []domain.InsulinType
}

// NewStore creates an empty in-memory store
func NewStore() *Store {
	return &Store{users: make(map[uuid.UUID]domain.User)}
}

func inRange(t time.Time, start, end time.Time) bool {
	if !start.IsZero() && t.Before(start) {
		return false
	}
	if !end.IsZero() && !t.Before(end) {
		return false
	}
	return true
}

// Readings returns the reading port backed by this store
func (s *Store) Readings() domain.ReadingRepository { return (*readingRepo)(s) }

// Doses returns the dose port backed by this store
func (s *Store) Doses() domain.DoseRepository { return (*doseRepo)(s) }

// Meals returns the meal port backed by this store
func (s *Store) Meals() domain.MealRepository { return (*mealRepo)(s) }

// Bands returns the correction band port backed by this store
func (s *Store) Bands() domain.CorrectionBandRepository { return (*bandRepo)(s) }

// Schedule returns the schedule port backed by this store
func (s *Store) Schedule() domain.ScheduleRepository { return (*scheduleRepo)(s) }

// InsulinTypes returns the insulin type port backed by this store
func (s *Store) InsulinTypes() domain.InsulinTypeRepository { return (*typeRepo)(s) }

// Users returns the user port backed by this store
func (s *Store) Users() domain.UserRepository { return (*userRepo)(s) }

type readingRepo Store

func (r *readingRepo) Create(_ context.Context, reading *domain.Reading) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.readings = append(r.readings, *reading)
	return nil
}

func (r *readingRepo) Update(_ context.Context, reading *domain.Reading) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	for i := range r.readings {
		if r.readings[i].ID == reading.ID && r.readings[i].UserID == reading.UserID {
			r.readings[i] = *reading
			return nil
		}
	}
	return apperrors.ErrNotFound
}

func (r *readingRepo) Delete(_ context.Context, ownerID, id uuid.UUID) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	for i := range r.readings {
		if r.readings[i].ID == id && r.readings[i].UserID == ownerID {
			r.readings = append(r.readings[:i], r.readings[i+1:]...)
			return nil
		}
	}
	return apperrors.ErrNotFound
}

func (r *readingRepo) GetByID(_ context.Context, ownerID, id uuid.UUID) (*domain.Reading, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	for i := range r.readings {
		if r.readings[i].ID == id && r.readings[i].UserID == ownerID {
			reading := r.readings[i]
			return &reading, nil
		}
	}
	return nil, apperrors.ErrNotFound
}

func (r *readingRepo) ListRange(_ context.Context, ownerID uuid.UUID, start, end time.Time) ([]domain.Reading, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	var out []domain.Reading
	for _, reading := range r.readings {
		if reading.UserID == ownerID && inRange(reading.OccurredAt, start, end) {
			out = append(out, reading)
		}
	}
	sort.SliceStable(out, func(i, j int) bool { return out[i].OccurredAt.After(out[j].OccurredAt) })
	return out, nil
}

type doseRepo Store

func (r *doseRepo) Create(_ context.Context, dose *domain.Dose) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.doses = append(r.doses, *dose)
	return nil
}

func (r *doseRepo) Update(_ context.Context, dose *domain.Dose) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	for i := range r.doses {
		if r.doses[i].ID == dose.ID && r.doses[i].UserID == dose.UserID {
			r.doses[i] = *dose
			return nil
		}
	}
	return apperrors.ErrNotFound
}

func (r *doseRepo) Delete(_ context.Context, ownerID, id uuid.UUID) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	for i := range r.doses {
		if r.doses[i].ID == id && r.doses[i].UserID == ownerID {
			r.doses = append(r.doses[:i], r.doses[i+1:]...)
			return nil
		}
	}
	return apperrors.ErrNotFound
}

func (r *doseRepo) GetByID(_ context.Context, ownerID, id uuid.UUID) (*domain.Dose, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	for i := range r.doses {
		if r.doses[i].ID == id && r.doses[i].UserID == ownerID {
			dose := r.doses[i]
			return &dose, nil
		}
	}
	return nil, apperrors.ErrNotFound
}

func (r *doseRepo) ListRange(_ context.Context, ownerID uuid.UUID, start, end time.Time) ([]domain.Dose, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	var out []domain.Dose
	for _, dose := range r.doses {
		if dose.UserID == ownerID && inRange(dose.OccurredAt, start, end) {
			out = append(out, dose)
		}
	}
	sort.SliceStable(out, func(i, j int) bool { return out[i].OccurredAt.After(out[j].OccurredAt) })
	return out, nil
}

type mealRepo Store

func (r *mealRepo) Create(_ context.Context, meal *domain.Meal) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.meals = append(r.meals, *meal)
	return nil
}

func (r *mealRepo) Update(_ context.Context, meal *domain.Meal) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	for i := range r.meals {
		if r.meals[i].ID == meal.ID && r.meals[i].UserID == meal.UserID {
			r.meals[i] = *meal
			return nil
		}
	}
	return apperrors.ErrNotFound
}

func (r *mealRepo) Delete(_ context.Context, ownerID, id uuid.UUID) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	for i := range r.meals {
		if r.meals[i].ID == id && r.meals[i].UserID == ownerID {
			r.meals = append(r.meals[:i], r.meals[i+1:]...)
			return nil
		}
	}
	return apperrors.ErrNotFound
}

func (r *mealRepo) GetByID(_ context.Context, ownerID, id uuid.UUID) (*domain.Meal, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	for i := range r.meals {
		if r.meals[i].ID == id && r.meals[i].UserID == ownerID {
			meal := r.meals[i]
			return &meal, nil
		}
	}
	return nil, apperrors.ErrNotFound
}

func (r *mealRepo) ListRange(_ context.Context, ownerID uuid.UUID, start, end time.Time) ([]domain.Meal, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	var out []domain.Meal
	for _, meal := range r.meals {
		if meal.UserID == ownerID && inRange(meal.OccurredAt, start, end) {
			out = append(out, meal)
		}
	}
	sort.SliceStable(out, func(i, j int) bool { return out[i].OccurredAt.After(out[j].OccurredAt) })
	return out, nil
}

type bandRepo Store

func (r *bandRepo) Save(_ context.Context, band *domain.CorrectionBand) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	for i := range r.bands {
		if r.bands[i].ID == band.ID {
			r.bands[i] = *band
			return nil
		}
	}
	r.bands = append(r.bands, *band)
	return nil
}

func (r *bandRepo) Delete(_ context.Context, ownerID, id uuid.UUID) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	for i := range r.bands {
		if r.bands[i].ID == id && r.bands[i].UserID == ownerID {
			r.bands = append(r.bands[:i], r.bands[i+1:]...)
			return nil
		}
	}
	return apperrors.ErrNotFound
}

func (r *bandRepo) ListBands(_ context.Context, ownerID uuid.UUID) ([]domain.CorrectionBand, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	var out []domain.CorrectionBand
	for _, band := range r.bands {
		if band.UserID == ownerID {
			out = append(out, band)
		}
	}
	sort.SliceStable(out, func(i, j int) bool { return out[i].LowerBound.LessThan(out[j].LowerBound) })
	return out, nil
}

type scheduleRepo Store

func (r *scheduleRepo) Create(_ context.Context, entry *domain.ScheduleEntry) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.schedule = append(r.schedule, *entry)
	return nil
}

func (r *scheduleRepo) Update(_ context.Context, entry *domain.ScheduleEntry) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	for i := range r.schedule {
		if r.schedule[i].ID == entry.ID && r.schedule[i].UserID == entry.UserID {
			r.schedule[i] = *entry
			return nil
		}
	}
	return apperrors.ErrNotFound
}

func (r *scheduleRepo) Delete(_ context.Context, ownerID, id uuid.UUID) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	for i := range r.schedule {
		if r.schedule[i].ID == id && r.schedule[i].UserID == ownerID {
			r.schedule = append(r.schedule[:i], r.schedule[i+1:]...)
			return nil
		}
	}
	return apperrors.ErrNotFound
}

func (r *scheduleRepo) List(_ context.Context, ownerID uuid.UUID) ([]domain.ScheduleEntry, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	var out []domain.ScheduleEntry
	for _, entry := range r.schedule {
		if entry.UserID == ownerID {
			out = append(out, entry)
		}
	}
	domain.SortSchedule(out)
	return out, nil
}

type typeRepo Store

func (r *typeRepo) Create(_ context.Context, t *domain.InsulinType) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.types = append(r.types, *t)
	return nil
}

func (r *typeRepo) Update(_ context.Context, t *domain.InsulinType) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	for i := range r.types {
		if r.types[i].ID == t.ID && r.types[i].UserID == t.UserID {
			r.types[i] = *t
			return nil
		}
	}
	return apperrors.ErrNotFound
}

func (r *typeRepo) Delete(_ context.Context, ownerID, id uuid.UUID) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	for i := range r.types {
		if r.types[i].ID == id && r.types[i].UserID == ownerID {
			r.types = append(r.types[:i], r.types[i+1:]...)
			return nil
		}
	}
	return apperrors.ErrNotFound
}

func (r *typeRepo) GetByID(_ context.Context, ownerID, id uuid.UUID) (*domain.InsulinType, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	for i := range r.types {
		if r.types[i].ID == id && r.types[i].UserID == ownerID {
			t := r.types[i]
			return &t, nil
		}
	}
	return nil, apperrors.ErrNotFound
}

func (r *typeRepo) List(_ context.Context, ownerID uuid.UUID) ([]domain.InsulinType, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	var out []domain.InsulinType
	for _, t := range r.types {
		if t.UserID == ownerID {
			out = append(out, t)
		}
	}
	sort.SliceStable(out, func(i, j int) bool { return out[i].Name < out[j].Name })
	return out, nil
}

func (r *typeRepo) ClearDefault(_ context.Context, ownerID uuid.UUID) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	for i := range r.types {
		if r.types[i].UserID == ownerID {
			r.types[i].IsDefault = false
		}
	}
	return nil
}

type userRepo Store

func (r *userRepo) GetByID(_ context.Context, id uuid.UUID) (*domain.User, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	if u, ok := r.users[id]; ok {
		return &u, nil
	}
	return nil, apperrors.ErrNotFound
}

func (r *userRepo) GetOrCreate(_ context.Context, u *domain.User) (*domain.User, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, existing := range r.users {
		if existing.Email == u.Email {
			e := existing
			return &e, nil
		}
	}
	if u.ID == uuid.Nil {
		u.ID = uuid.New()
	}
	r.users[u.ID] = *u
	return u, nil
}
