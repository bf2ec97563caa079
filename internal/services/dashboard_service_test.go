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

func newDashboardService(store *memory.Store) *DashboardService {
	activity := newActivityService(store)
	dosing := newDosingService(store)
	return NewDashboardService(activity, dosing, store.Readings())
}

func TestDashboardEmptyAccount(t *testing.T) {
	store := memory.NewStore()
	svc := newDashboardService(store)

	dash, err := svc.Get(context.Background(), testUser())
	require.NoError(t, err)

	assert.Empty(t, dash.Recent)
	assert.Empty(t, dash.Schedule)
	assert.Empty(t, dash.Scale)
	assert.Nil(t, dash.Suggestion)
	assert.NotEmpty(t, dash.Guidance)
}

func TestDashboardSuggestionFromLatestReading(t *testing.T) {
	store := memory.NewStore()
	user := testUser()
	svc := newDashboardService(store)
	seedScale(t, store, user)

	base := time.Date(2024, 3, 10, 7, 0, 0, 0, time.UTC)
	seedReading(t, store, user, base, "4.0", domain.UnitMmol)
	seedReading(t, store, user, base.Add(time.Hour), "9.5", domain.UnitMmol)

	dash, err := svc.Get(context.Background(), user)
	require.NoError(t, err)

	require.NotNil(t, dash.Suggestion)
	assert.Equal(t, "9.5", dash.Suggestion.ReadingValue.String())
	assert.Equal(t, "4", dash.Suggestion.CorrectionUnits.String())
}

func TestDashboardNoScaleIsGuidanceNotError(t *testing.T) {
	store := memory.NewStore()
	user := testUser()
	svc := newDashboardService(store)

	seedReading(t, store, user, time.Now(), "9.5", domain.UnitMmol)

	dash, err := svc.Get(context.Background(), user)
	require.NoError(t, err)
	assert.Nil(t, dash.Suggestion)
	assert.NotEmpty(t, dash.Guidance)
	assert.Len(t, dash.Recent, 1)
}
