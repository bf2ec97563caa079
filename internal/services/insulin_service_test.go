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

func TestAddDose(t *testing.T) {
	store := memory.NewStore()
	user := testUser()
	svc := NewInsulinService(store.Doses(), store.InsulinTypes())
	it := seedInsulinType(t, store, user, "NovoRapid")

	dose := &domain.Dose{
		OccurredAt:      time.Now(),
		BaseUnits:       dec("8"),
		CorrectionUnits: dec("2"),
		InsulinTypeID:   it.ID,
	}
	require.NoError(t, svc.AddDose(context.Background(), user, dose))
	assert.Equal(t, user.ID, dose.UserID)

	stored, err := svc.GetDose(context.Background(), user, dose.ID)
	require.NoError(t, err)
	assert.Equal(t, "10", stored.TotalUnits().String())
}

func TestAddDoseUnknownInsulinType(t *testing.T) {
	store := memory.NewStore()
	svc := NewInsulinService(store.Doses(), store.InsulinTypes())

	dose := &domain.Dose{
		OccurredAt:    time.Now(),
		BaseUnits:     dec("8"),
		InsulinTypeID: uuid.New(),
	}
	assert.Error(t, svc.AddDose(context.Background(), testUser(), dose))
}

func TestListDosesSortByTotalUnits(t *testing.T) {
	store := memory.NewStore()
	user := testUser()
	svc := NewInsulinService(store.Doses(), store.InsulinTypes())
	it := seedInsulinType(t, store, user, "NovoRapid")

	at := time.Date(2024, 3, 10, 8, 0, 0, 0, time.UTC)
	for _, units := range []string{"6", "2", "10"} {
		dose := &domain.Dose{OccurredAt: at, BaseUnits: dec(units), InsulinTypeID: it.ID}
		require.NoError(t, svc.AddDose(context.Background(), user, dose))
		at = at.Add(time.Minute)
	}

	q := domain.DefaultQuery()
	q.Sort = domain.SortTotalUnits
	q.Dir = domain.SortDesc

	page, err := svc.ListDoses(context.Background(), user, q)
	require.NoError(t, err)
	require.Len(t, page.Items, 3)
	assert.Equal(t, "10", page.Items[0].TotalUnits().String())
	assert.Equal(t, "2", page.Items[2].TotalUnits().String())
}

func TestSingleDefaultInsulinType(t *testing.T) {
	store := memory.NewStore()
	user := testUser()
	svc := NewInsulinService(store.Doses(), store.InsulinTypes())

	first := &domain.InsulinType{Name: "Lantus", Kind: domain.InsulinLong, IsDefault: true}
	require.NoError(t, svc.AddInsulinType(context.Background(), user, first))

	second := &domain.InsulinType{Name: "NovoRapid", Kind: domain.InsulinRapid, IsDefault: true}
	require.NoError(t, svc.AddInsulinType(context.Background(), user, second))

	types, err := svc.ListInsulinTypes(context.Background(), user)
	require.NoError(t, err)
	require.Len(t, types, 2)

	defaults := 0
	for _, it := range types {
		if it.IsDefault {
			defaults++
			assert.Equal(t, "NovoRapid", it.Name)
		}
	}
	assert.Equal(t, 1, defaults)
}
