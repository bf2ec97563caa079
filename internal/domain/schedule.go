package domain

import (
	"errors"
	"sort"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// ScheduleEntry is a fixed time-of-day insulin dose. Shown for operator
// reference only; the system never applies it to a dose record
// automatically.
type ScheduleEntry struct {
	ID             uuid.UUID       `gorm:"type:uuid;primaryKey" json:"id"`
	UserID         uuid.UUID       `gorm:"type:uuid;index:idx_schedule_owner_time,unique,priority:1" json:"-"`
	TimeOfDay      string          `gorm:"index:idx_schedule_owner_time,unique,priority:2" json:"timeOfDay"` // "HH:MM" local
	Label          string          `json:"label,omitempty"`
	InsulinTypeID  uuid.UUID       `gorm:"type:uuid" json:"insulinTypeId"`
	InsulinType    *InsulinType    `json:"insulinType,omitempty"`
	BaseUnits      decimal.Decimal `gorm:"type:numeric(5,2)" json:"baseUnits"`
	Notes          string          `json:"notes,omitempty"`
	LastModifiedBy uuid.UUID       `gorm:"type:uuid" json:"-"`
	CreatedAt      time.Time       `json:"createdAt"`
	UpdatedAt      time.Time       `json:"updatedAt"`
}

// Validate ensures the schedule entry adheres to domain rules
func (e *ScheduleEntry) Validate() error {
	if _, err := time.Parse("15:04", e.TimeOfDay); err != nil {
		return errors.New("time of day must be in HH:MM format")
	}
	if e.BaseUnits.IsNegative() {
		return errors.New("base units cannot be negative")
	}
	if e.InsulinTypeID == uuid.Nil {
		return errors.New("insulin type is required")
	}
	return nil
}

// minutesOfDay converts an "HH:MM" string to minutes since midnight
func minutesOfDay(timeStr string) int {
	t, _ := time.Parse("15:04", timeStr)
	return t.Hour()*60 + t.Minute()
}

// SortSchedule orders entries by time of day for presentation
func SortSchedule(entries []ScheduleEntry) {
	sort.SliceStable(entries, func(i, j int) bool {
		return minutesOfDay(entries[i].TimeOfDay) < minutesOfDay(entries[j].TimeOfDay)
	})
}

// NextScheduled returns the first entry at or after the given local
// time of day, wrapping to the earliest entry when the day's entries are
// exhausted. Returns nil for an empty schedule.
func NextScheduled(entries []ScheduleEntry, at string) *ScheduleEntry {
	if len(entries) == 0 {
		return nil
	}
	sorted := make([]ScheduleEntry, len(entries))
	copy(sorted, entries)
	SortSchedule(sorted)

	now := minutesOfDay(at)
	for i := range sorted {
		if minutesOfDay(sorted[i].TimeOfDay) >= now {
			return &sorted[i]
		}
	}
	return &sorted[0]
}
