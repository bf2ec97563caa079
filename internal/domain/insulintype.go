package domain

import (
	"errors"
	"time"

	"github.com/google/uuid"
)

// InsulinKind is the pharmacological classification of an insulin type
type InsulinKind string

const (
	InsulinRapid        InsulinKind = "rapid"
	InsulinShort        InsulinKind = "short"
	InsulinIntermediate InsulinKind = "intermediate"
	InsulinLong         InsulinKind = "long"
	InsulinUltraLong    InsulinKind = "ultra_long"
	InsulinPremixed     InsulinKind = "premixed"
)

// InsulinType names an insulin product a user doses with. Referenced by
// doses and schedule entries, never computed over.
type InsulinType struct {
	ID             uuid.UUID   `gorm:"type:uuid;primaryKey" json:"id"`
	UserID         uuid.UUID   `gorm:"type:uuid;index" json:"-"`
	Name           string      `json:"name"`
	Kind           InsulinKind `json:"kind"`
	Notes          string      `json:"notes,omitempty"`
	IsDefault      bool        `json:"isDefault"`
	LastModifiedBy uuid.UUID   `gorm:"type:uuid" json:"-"`
	CreatedAt      time.Time   `json:"createdAt"`
	UpdatedAt      time.Time   `json:"updatedAt"`
}

// Validate ensures the insulin type adheres to domain rules
func (t *InsulinType) Validate() error {
	if t.Name == "" {
		return errors.New("insulin type name is required")
	}
	switch t.Kind {
	case InsulinRapid, InsulinShort, InsulinIntermediate, InsulinLong, InsulinUltraLong, InsulinPremixed:
		return nil
	}
	return errors.New("unknown insulin kind")
}
