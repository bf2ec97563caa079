package services

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"glucolog/internal/domain"
	"glucolog/internal/repository/memory"
)

func newActivityService(store *memory.Store) *ActivityService {
	return NewActivityService(store.Readings(), store.Doses(), store.Meals())
}

func seedActivity(t *testing.T, store *memory.Store, user *domain.User, base time.Time) {
	t.Helper()
	seedReading(t, store, user, base, "6.2", domain.UnitMmol)
	require.NoError(t, store.Doses().Create(context.Background(), &domain.Dose{
		ID:            uuid.New(),
		UserID:        user.ID,
		OccurredAt:    base.Add(time.Hour),
		BaseUnits:     dec("8"),
		InsulinTypeID: uuid.New(),
	}))
	require.NoError(t, store.Meals().Create(context.Background(), &domain.Meal{
		ID:         uuid.New(),
		UserID:     user.ID,
		OccurredAt: base.Add(30 * time.Minute),
		MealType:   domain.MealBreakfast,
		CarbsGrams: dec("45"),
	}))
}

func TestActivityMergesRecordTypes(t *testing.T) {
	store := memory.NewStore()
	user := testUser()
	svc := newActivityService(store)

	base := time.Date(2024, 3, 10, 7, 0, 0, 0, time.UTC)
	seedActivity(t, store, user, base)

	entries, err := svc.ListAll(context.Background(), user, domain.DefaultQuery())
	require.NoError(t, err)
	require.Len(t, entries, 3)

	// Newest first: dose, meal, reading.
	assert.Equal(t, ActivityInsulin, entries[0].Kind)
	assert.Equal(t, ActivityMeal, entries[1].Kind)
	assert.Equal(t, ActivityGlucose, entries[2].Kind)

	assert.NotNil(t, entries[0].Dose)
	assert.NotNil(t, entries[1].Meal)
	assert.NotNil(t, entries[2].Reading)
}

func TestActivityAscending(t *testing.T) {
	store := memory.NewStore()
	user := testUser()
	svc := newActivityService(store)

	base := time.Date(2024, 3, 10, 7, 0, 0, 0, time.UTC)
	seedActivity(t, store, user, base)

	q := domain.DefaultQuery()
	q.Dir = domain.SortAsc

	entries, err := svc.ListAll(context.Background(), user, q)
	require.NoError(t, err)
	require.Len(t, entries, 3)
	assert.Equal(t, ActivityGlucose, entries[0].Kind)
	assert.Equal(t, ActivityInsulin, entries[2].Kind)
}

func TestActivityRecentTruncates(t *testing.T) {
	store := memory.NewStore()
	user := testUser()
	svc := newActivityService(store)

	base := time.Date(2024, 3, 10, 7, 0, 0, 0, time.UTC)
	for i := 0; i < 5; i++ {
		seedReading(t, store, user, base.Add(time.Duration(i)*time.Hour), "6.0", domain.UnitMmol)
	}

	entries, err := svc.Recent(context.Background(), user, 3)
	require.NoError(t, err)
	require.Len(t, entries, 3)
	assert.Equal(t, base.Add(4*time.Hour), entries[0].OccurredAt)
}
