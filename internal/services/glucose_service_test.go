package services

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"glucolog/internal/domain"
	"glucolog/internal/repository/memory"
)

func TestAddReading(t *testing.T) {
	store := memory.NewStore()
	user := testUser()
	svc := NewGlucoseService(store.Readings())

	reading := &domain.Reading{Value: dec("6.2"), Unit: domain.UnitMmol}
	require.NoError(t, svc.AddReading(context.Background(), user, reading))

	assert.NotZero(t, reading.ID)
	assert.Equal(t, user.ID, reading.UserID)
	assert.Equal(t, user.ID, reading.LastModifiedBy)
	assert.False(t, reading.OccurredAt.IsZero(), "missing timestamp defaults to now")

	stored, err := svc.GetReading(context.Background(), user, reading.ID)
	require.NoError(t, err)
	assert.True(t, stored.Value.Equal(dec("6.2")))
}

func TestAddReadingInvalid(t *testing.T) {
	store := memory.NewStore()
	svc := NewGlucoseService(store.Readings())

	err := svc.AddReading(context.Background(), testUser(), &domain.Reading{Value: dec("0"), Unit: domain.UnitMmol})
	assert.Error(t, err)
}

func TestReadingsAreOwnerScoped(t *testing.T) {
	store := memory.NewStore()
	alice, bob := testUser(), testUser()
	svc := NewGlucoseService(store.Readings())

	reading := seedReading(t, store, alice, time.Now(), "6.2", domain.UnitMmol)

	_, err := svc.GetReading(context.Background(), bob, reading.ID)
	assert.Error(t, err)
	assert.Error(t, svc.DeleteReading(context.Background(), bob, reading.ID))

	readings, err := svc.ListAll(context.Background(), bob, domain.DefaultQuery())
	require.NoError(t, err)
	assert.Empty(t, readings)
}

func TestListAllSortsByQuery(t *testing.T) {
	store := memory.NewStore()
	user := testUser()
	svc := NewGlucoseService(store.Readings())

	base := time.Date(2024, 3, 10, 8, 0, 0, 0, time.UTC)
	seedReading(t, store, user, base, "9.0", domain.UnitMmol)
	seedReading(t, store, user, base.Add(time.Hour), "4.2", domain.UnitMmol)
	seedReading(t, store, user, base.Add(2*time.Hour), "6.5", domain.UnitMmol)

	q := domain.DefaultQuery()
	q.Sort = domain.SortValue
	q.Dir = domain.SortAsc

	readings, err := svc.ListAll(context.Background(), user, q)
	require.NoError(t, err)
	require.Len(t, readings, 3)
	assert.Equal(t, "4.2", readings[0].Value.String())
	assert.Equal(t, "9.0", readings[2].Value.String())
}

func TestListPaginates(t *testing.T) {
	store := memory.NewStore()
	user := testUser()
	svc := NewGlucoseService(store.Readings())

	base := time.Date(2024, 3, 1, 8, 0, 0, 0, time.UTC)
	for i := 0; i < 30; i++ {
		seedReading(t, store, user, base.Add(time.Duration(i)*time.Hour), "6.0", domain.UnitMmol)
	}

	q := domain.DefaultQuery()
	q.PageSize = 25

	page, err := svc.List(context.Background(), user, q)
	require.NoError(t, err)
	assert.Len(t, page.Items, 25)
	assert.Equal(t, 30, page.TotalCount)
	assert.Equal(t, 2, page.TotalPages)

	// Newest first by default.
	assert.Equal(t, base.Add(29*time.Hour), page.Items[0].OccurredAt)
}

func TestUpdateReadingMissing(t *testing.T) {
	store := memory.NewStore()
	svc := NewGlucoseService(store.Readings())

	reading := &domain.Reading{OccurredAt: time.Now(), Value: dec("6.2"), Unit: domain.UnitMmol}
	assert.Error(t, svc.UpdateReading(context.Background(), testUser(), reading))
}
