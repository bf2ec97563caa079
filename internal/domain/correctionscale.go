package domain

import (
	"errors"
	"fmt"
	"sort"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"glucolog/internal/apperrors"
)

// CorrectionBand is one row of a user's correction scale: the insulin
// units to add when a glucose value falls inside [LowerBound, UpperBound).
// A nil UpperBound means the band is open-ended.
type CorrectionBand struct {
	ID         uuid.UUID        `gorm:"type:uuid;primaryKey" json:"id"`
	UserID     uuid.UUID        `gorm:"type:uuid;index" json:"-"`
	Unit       Unit             `json:"unit"`
	LowerBound decimal.Decimal  `gorm:"type:numeric(5,1)" json:"lowerBound"`
	UpperBound *decimal.Decimal `gorm:"type:numeric(5,1)" json:"upperBound,omitempty"`
	DoseUnits  decimal.Decimal  `gorm:"type:numeric(5,2)" json:"doseUnits"`
	CreatedAt  time.Time        `json:"createdAt"`
	UpdatedAt  time.Time        `json:"updatedAt"`
}

// CorrectionScale is a validated, ordered band table. Bands are
// contiguous and non-overlapping, and the last band is unbounded, so
// exactly one band covers any value at or above the first lower bound.
type CorrectionScale struct {
	Unit  Unit
	Bands []CorrectionBand
}

// NewCorrectionScale sorts the given bands by lower bound and checks the
// contiguity invariant. An empty band set is a valid (unconfigured)
// scale; resolution against it fails with ErrNoScaleConfigured.
func NewCorrectionScale(unit Unit, bands []CorrectionBand) (*CorrectionScale, error) {
	if unit != UnitMgdl && unit != UnitMmol {
		return nil, errors.New("correction scale unit must be mg/dL or mmol/L")
	}

	sorted := make([]CorrectionBand, len(bands))
	copy(sorted, bands)
	sort.SliceStable(sorted, func(i, j int) bool {
		return sorted[i].LowerBound.LessThan(sorted[j].LowerBound)
	})

	for i, b := range sorted {
		if b.DoseUnits.IsNegative() {
			return nil, errors.New("band dose units cannot be negative")
		}
		last := i == len(sorted)-1
		if last {
			if b.UpperBound != nil {
				return nil, errors.New("last band must be open-ended")
			}
			continue
		}
		if b.UpperBound == nil {
			return nil, errors.New("only the last band may be open-ended")
		}
		if !b.UpperBound.GreaterThan(b.LowerBound) {
			return nil, fmt.Errorf("band upper bound %s must exceed lower bound %s", b.UpperBound, b.LowerBound)
		}
		next := sorted[i+1]
		if !b.UpperBound.Equal(next.LowerBound) {
			return nil, fmt.Errorf("bands must be contiguous: %s ends at %s but next starts at %s",
				b.LowerBound, b.UpperBound, next.LowerBound)
		}
	}

	return &CorrectionScale{Unit: unit, Bands: sorted}, nil
}

// Resolve maps a glucose reading to the correction units the scale
// recommends. The reading is converted into the scale's unit first. A
// value below the first band resolves to zero (no correction needed); an
// exact boundary belongs to the band it opens.
func (s *CorrectionScale) Resolve(value decimal.Decimal, unit Unit) (decimal.Decimal, error) {
	if len(s.Bands) == 0 {
		return decimal.Zero, apperrors.ErrNoScaleConfigured
	}

	v := Convert(value, unit, s.Unit)
	if v.LessThan(s.Bands[0].LowerBound) {
		return decimal.Zero, nil
	}
	for _, b := range s.Bands {
		if v.GreaterThanOrEqual(b.LowerBound) && (b.UpperBound == nil || v.LessThan(*b.UpperBound)) {
			return b.DoseUnits, nil
		}
	}
	// Unreachable for a scale built through NewCorrectionScale.
	return decimal.Zero, fmt.Errorf("no band covers value %s %s", v, s.Unit)
}
