package services

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/require"

	"glucolog/internal/domain"
	"glucolog/internal/repository/memory"
)

func dec(s string) decimal.Decimal { return decimal.RequireFromString(s) }

func decPtr(s string) *decimal.Decimal {
	d := dec(s)
	return &d
}

func testUser() *domain.User {
	return &domain.User{ID: uuid.New(), Email: "test@example.com", Timezone: "UTC"}
}

func seedReading(t *testing.T, store *memory.Store, user *domain.User, at time.Time, value string, unit domain.Unit) domain.Reading {
	t.Helper()
	reading := domain.Reading{
		ID:         uuid.New(),
		UserID:     user.ID,
		OccurredAt: at,
		Value:      dec(value),
		Unit:       unit,
	}
	require.NoError(t, store.Readings().Create(context.Background(), &reading))
	return reading
}

func seedBand(t *testing.T, store *memory.Store, user *domain.User, lower string, upper *decimal.Decimal, doseUnits string, unit domain.Unit) domain.CorrectionBand {
	t.Helper()
	band := domain.CorrectionBand{
		ID:         uuid.New(),
		UserID:     user.ID,
		Unit:       unit,
		LowerBound: dec(lower),
		UpperBound: upper,
		DoseUnits:  dec(doseUnits),
	}
	require.NoError(t, store.Bands().Save(context.Background(), &band))
	return band
}

func seedInsulinType(t *testing.T, store *memory.Store, user *domain.User, name string) domain.InsulinType {
	t.Helper()
	it := domain.InsulinType{
		ID:     uuid.New(),
		UserID: user.ID,
		Name:   name,
		Kind:   domain.InsulinRapid,
	}
	require.NoError(t, store.InsulinTypes().Create(context.Background(), &it))
	return it
}
