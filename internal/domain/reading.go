package domain

import (
	"errors"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// Reading represents a single blood glucose measurement
type Reading struct {
	ID             uuid.UUID       `gorm:"type:uuid;primaryKey" json:"id"`
	UserID         uuid.UUID       `gorm:"type:uuid;index:idx_readings_owner_time,priority:1" json:"-"`
	OccurredAt     time.Time       `gorm:"index:idx_readings_owner_time,priority:2,sort:desc" json:"occurredAt"`
	Value          decimal.Decimal `gorm:"type:numeric(5,1)" json:"value"`
	Unit           Unit            `json:"unit"`
	Notes          string          `json:"notes,omitempty"`
	LastModifiedBy uuid.UUID       `gorm:"type:uuid" json:"-"`
	CreatedAt      time.Time       `json:"createdAt"`
	UpdatedAt      time.Time       `json:"updatedAt"`
}

// Validate ensures the reading adheres to domain rules
func (r *Reading) Validate() error {
	if !r.Value.IsPositive() {
		return errors.New("glucose value must be positive")
	}
	if r.Unit != UnitMgdl && r.Unit != UnitMmol {
		return errors.New("unit must be mg/dL or mmol/L")
	}
	if r.OccurredAt.IsZero() {
		return errors.New("occurred_at is required")
	}
	return nil
}

// ValueIn returns the reading's value converted and rounded for display
// in the given unit.
func (r *Reading) ValueIn(u Unit) decimal.Decimal {
	return DisplayRound(Convert(r.Value, r.Unit, u), u)
}
