package domain

import (
	"errors"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// MealType classifies a meal entry
type MealType string

const (
	MealBreakfast MealType = "breakfast"
	MealLunch     MealType = "lunch"
	MealDinner    MealType = "dinner"
	MealSnack     MealType = "snack"
)

// Meal represents a meal or snack entry
type Meal struct {
	ID             uuid.UUID       `gorm:"type:uuid;primaryKey" json:"id"`
	UserID         uuid.UUID       `gorm:"type:uuid;index:idx_meals_owner_time,priority:1" json:"-"`
	OccurredAt     time.Time       `gorm:"index:idx_meals_owner_time,priority:2,sort:desc" json:"occurredAt"`
	MealType       MealType        `json:"mealType"`
	Description    string          `json:"description"`
	CarbsGrams     decimal.Decimal `gorm:"type:numeric(6,1)" json:"carbsGrams"`
	Notes          string          `json:"notes,omitempty"`
	LastModifiedBy uuid.UUID       `gorm:"type:uuid" json:"-"`
	CreatedAt      time.Time       `json:"createdAt"`
	UpdatedAt      time.Time       `json:"updatedAt"`
}

// Validate ensures the meal adheres to domain rules
func (m *Meal) Validate() error {
	switch m.MealType {
	case MealBreakfast, MealLunch, MealDinner, MealSnack:
	default:
		return errors.New("meal type must be breakfast, lunch, dinner or snack")
	}
	if m.CarbsGrams.IsNegative() {
		return errors.New("carbs cannot be negative")
	}
	if m.OccurredAt.IsZero() {
		return errors.New("occurred_at is required")
	}
	return nil
}
