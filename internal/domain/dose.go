package domain

import (
	"errors"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// Dose represents an administered insulin dose, split into the scheduled
// base amount and any correction added on top of it.
type Dose struct {
	ID              uuid.UUID       `gorm:"type:uuid;primaryKey" json:"id"`
	UserID          uuid.UUID       `gorm:"type:uuid;index:idx_doses_owner_time,priority:1" json:"-"`
	OccurredAt      time.Time       `gorm:"index:idx_doses_owner_time,priority:2,sort:desc" json:"occurredAt"`
	BaseUnits       decimal.Decimal `gorm:"type:numeric(5,2)" json:"baseUnits"`
	CorrectionUnits decimal.Decimal `gorm:"type:numeric(5,2)" json:"correctionUnits"`
	InsulinTypeID   uuid.UUID       `gorm:"type:uuid" json:"insulinTypeId"`
	InsulinType     *InsulinType    `json:"insulinType,omitempty"`
	Notes           string          `json:"notes,omitempty"`
	LastModifiedBy  uuid.UUID       `gorm:"type:uuid" json:"-"`
	CreatedAt       time.Time       `json:"createdAt"`
	UpdatedAt       time.Time       `json:"updatedAt"`
}

// TotalUnits returns base plus correction units
func (d *Dose) TotalUnits() decimal.Decimal {
	return d.BaseUnits.Add(d.CorrectionUnits)
}

// Validate ensures the dose adheres to domain rules
func (d *Dose) Validate() error {
	if d.BaseUnits.IsNegative() || d.CorrectionUnits.IsNegative() {
		return errors.New("insulin units cannot be negative")
	}
	if d.BaseUnits.IsZero() && d.CorrectionUnits.IsZero() {
		return errors.New("at least one of base or correction units must be non-zero")
	}
	if d.InsulinTypeID == uuid.Nil {
		return errors.New("insulin type is required")
	}
	if d.OccurredAt.IsZero() {
		return errors.New("occurred_at is required")
	}
	return nil
}
