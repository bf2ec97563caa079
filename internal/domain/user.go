package domain

import (
	"time"

	"github.com/google/uuid"
)

// User represents an account in the system. Authentication happens
// upstream; the engine only needs the identity and timezone preference.
type User struct {
	ID        uuid.UUID `gorm:"type:uuid;primaryKey"`
	Email     string    `gorm:"uniqueIndex"`
	Name      string
	Timezone  string // IANA name, e.g. "America/Vancouver"
	CreatedAt time.Time
	UpdatedAt time.Time
}

// Location resolves the user's timezone preference, falling back to UTC
// when unset or unknown.
func (u *User) Location() *time.Location {
	if u == nil || u.Timezone == "" {
		return time.UTC
	}
	loc, err := time.LoadLocation(u.Timezone)
	if err != nil {
		return time.UTC
	}
	return loc
}
