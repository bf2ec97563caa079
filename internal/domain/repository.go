package domain

import (
	"context"
	"time"

	"github.com/google/uuid"
)

// Repository ports. Every query is owner-scoped: implementations must
// never return another user's records. Range arguments follow the
// half-open [start, end) convention produced by Query.Bounds; a zero
// time leaves that side unbounded.

// ReadingRepository is the port for glucose reading persistence
type ReadingRepository interface {
	Create(ctx context.Context, r *Reading) error
	Update(ctx context.Context, r *Reading) error
	Delete(ctx context.Context, ownerID, id uuid.UUID) error
	GetByID(ctx context.Context, ownerID, id uuid.UUID) (*Reading, error)
	ListRange(ctx context.Context, ownerID uuid.UUID, start, end time.Time) ([]Reading, error)
}

// DoseRepository is the port for insulin dose persistence
type DoseRepository interface {
	Create(ctx context.Context, d *Dose) error
	Update(ctx context.Context, d *Dose) error
	Delete(ctx context.Context, ownerID, id uuid.UUID) error
	GetByID(ctx context.Context, ownerID, id uuid.UUID) (*Dose, error)
	ListRange(ctx context.Context, ownerID uuid.UUID, start, end time.Time) ([]Dose, error)
}

// MealRepository is the port for meal persistence
type MealRepository interface {
	Create(ctx context.Context, m *Meal) error
	Update(ctx context.Context, m *Meal) error
	Delete(ctx context.Context, ownerID, id uuid.UUID) error
	GetByID(ctx context.Context, ownerID, id uuid.UUID) (*Meal, error)
	ListRange(ctx context.Context, ownerID uuid.UUID, start, end time.Time) ([]Meal, error)
}

// CorrectionBandRepository is the port for correction scale persistence
type CorrectionBandRepository interface {
	Save(ctx context.Context, b *CorrectionBand) error
	Delete(ctx context.Context, ownerID, id uuid.UUID) error
	ListBands(ctx context.Context, ownerID uuid.UUID) ([]CorrectionBand, error)
}

// ScheduleRepository is the port for insulin schedule persistence
type ScheduleRepository interface {
	Create(ctx context.Context, e *ScheduleEntry) error
	Update(ctx context.Context, e *ScheduleEntry) error
	Delete(ctx context.Context, ownerID, id uuid.UUID) error
	List(ctx context.Context, ownerID uuid.UUID) ([]ScheduleEntry, error)
}

// InsulinTypeRepository is the port for insulin type persistence
type InsulinTypeRepository interface {
	Create(ctx context.Context, t *InsulinType) error
	Update(ctx context.Context, t *InsulinType) error
	Delete(ctx context.Context, ownerID, id uuid.UUID) error
	GetByID(ctx context.Context, ownerID, id uuid.UUID) (*InsulinType, error)
	List(ctx context.Context, ownerID uuid.UUID) ([]InsulinType, error)
	// ClearDefault unsets IsDefault on all of the owner's types, keeping
	// the at-most-one-default rule enforceable on save.
	ClearDefault(ctx context.Context, ownerID uuid.UUID) error
}

// UserRepository is the port for user lookup
type UserRepository interface {
	GetByID(ctx context.Context, id uuid.UUID) (*User, error)
	GetOrCreate(ctx context.Context, u *User) (*User, error)
}
