package server

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"glucolog/internal/domain"
	"glucolog/internal/repository/memory"
	"glucolog/internal/services"
)

func decimalFromString(t *testing.T, s string) decimal.Decimal {
	t.Helper()
	d, err := decimal.NewFromString(s)
	require.NoError(t, err)
	return d
}

type testEnv struct {
	store   *memory.Store
	user    *domain.User
	handler http.Handler
}

func newTestEnv(t *testing.T) *testEnv {
	t.Helper()
	store := memory.NewStore()

	user, err := store.Users().GetOrCreate(context.Background(), &domain.User{
		Email:    "test@example.com",
		Timezone: "UTC",
	})
	require.NoError(t, err)

	glucose := services.NewGlucoseService(store.Readings())
	insulin := services.NewInsulinService(store.Doses(), store.InsulinTypes())
	meals := services.NewMealService(store.Meals())
	dosing := services.NewDosingService(store.Bands(), store.Schedule(), store.InsulinTypes())
	analytics := services.NewAnalyticsService(store.Readings())
	activity := services.NewActivityService(store.Readings(), store.Doses(), store.Meals())
	dashboard := services.NewDashboardService(activity, dosing, store.Readings())
	export := services.NewExportService()

	srv := New(store.Users(), glucose, insulin, meals, dosing, analytics, activity, dashboard, export)
	return &testEnv{store: store, user: user, handler: srv.Handler()}
}

func (e *testEnv) do(method, target, body string) *httptest.ResponseRecorder {
	var req *http.Request
	if body != "" {
		req = httptest.NewRequest(method, target, strings.NewReader(body))
	} else {
		req = httptest.NewRequest(method, target, nil)
	}
	req.Header.Set("X-User-ID", e.user.ID.String())
	rec := httptest.NewRecorder()
	e.handler.ServeHTTP(rec, req)
	return rec
}

func TestHealth(t *testing.T) {
	env := newTestEnv(t)
	rec := env.do(http.MethodGet, "/api/health", "")
	assert.Equal(t, http.StatusOK, rec.Code)
}

func TestUnknownUserRejected(t *testing.T) {
	env := newTestEnv(t)

	req := httptest.NewRequest(http.MethodGet, "/api/readings", nil)
	rec := httptest.NewRecorder()
	env.handler.ServeHTTP(rec, req)
	assert.Equal(t, http.StatusUnauthorized, rec.Code)

	req = httptest.NewRequest(http.MethodGet, "/api/readings", nil)
	req.Header.Set("X-User-ID", uuid.NewString())
	rec = httptest.NewRecorder()
	env.handler.ServeHTTP(rec, req)
	assert.Equal(t, http.StatusUnauthorized, rec.Code)
}

func TestReadingRoundTrip(t *testing.T) {
	env := newTestEnv(t)

	body := `{"occurredAt":"2024-03-10T07:30:00Z","value":"6.2","unit":"mmol/L","notes":"fasting"}`
	rec := env.do(http.MethodPost, "/api/readings", body)
	require.Equal(t, http.StatusCreated, rec.Code, rec.Body.String())

	rec = env.do(http.MethodGet, "/api/readings", "")
	require.Equal(t, http.StatusOK, rec.Code)

	var page struct {
		Items      []domain.Reading `json:"items"`
		TotalCount int              `json:"totalCount"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &page))
	require.Len(t, page.Items, 1)
	assert.Equal(t, 1, page.TotalCount)
	assert.Equal(t, "fasting", page.Items[0].Notes)
	assert.Equal(t, domain.UnitMmol, page.Items[0].Unit)
}

func TestReadingCreateRejectsInvalid(t *testing.T) {
	env := newTestEnv(t)

	rec := env.do(http.MethodPost, "/api/readings", `{"occurredAt":"2024-03-10T07:30:00Z","value":"0","unit":"mmol/L"}`)
	assert.Equal(t, http.StatusBadRequest, rec.Code)

	rec = env.do(http.MethodPost, "/api/readings", `{"occurredAt":"2024-03-10T07:30:00Z","value":"6.2","unit":"stones"}`)
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestReadingDelete(t *testing.T) {
	env := newTestEnv(t)

	reading := domain.Reading{
		ID:         uuid.New(),
		UserID:     env.user.ID,
		OccurredAt: time.Now(),
		Value:      decimalFromString(t, "6.2"),
		Unit:       domain.UnitMmol,
	}
	require.NoError(t, env.store.Readings().Create(context.Background(), &reading))

	rec := env.do(http.MethodDelete, "/api/readings/"+reading.ID.String(), "")
	assert.Equal(t, http.StatusNoContent, rec.Code)

	rec = env.do(http.MethodDelete, "/api/readings/"+reading.ID.String(), "")
	assert.Equal(t, http.StatusNotFound, rec.Code)

	rec = env.do(http.MethodDelete, "/api/readings/not-a-uuid", "")
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestMalformedListParamsFallBackToDefaults(t *testing.T) {
	env := newTestEnv(t)

	rec := env.do(http.MethodGet, "/api/readings?page=zebra&page_size=7&sort=unknown&dir=sideways&start_date=garbage", "")
	require.Equal(t, http.StatusOK, rec.Code)

	var page struct {
		Page     int `json:"page"`
		PageSize int `json:"pageSize"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &page))
	assert.Equal(t, 1, page.Page)
	assert.Equal(t, domain.DefaultPageSize, page.PageSize)
}

func TestTodayFilterPreset(t *testing.T) {
	env := newTestEnv(t)

	fixed := time.Date(2024, 3, 10, 15, 0, 0, 0, time.UTC)
	orig := timeNow
	timeNow = func() time.Time { return fixed }
	defer func() { timeNow = orig }()

	for _, at := range []time.Time{fixed.Add(-2 * time.Hour), fixed.AddDate(0, 0, -3)} {
		reading := domain.Reading{
			ID:         uuid.New(),
			UserID:     env.user.ID,
			OccurredAt: at,
			Value:      decimalFromString(t, "6.2"),
			Unit:       domain.UnitMmol,
		}
		require.NoError(t, env.store.Readings().Create(context.Background(), &reading))
	}

	rec := env.do(http.MethodGet, "/api/readings?filter=today", "")
	require.Equal(t, http.StatusOK, rec.Code)

	var page struct {
		TotalCount int `json:"totalCount"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &page))
	assert.Equal(t, 1, page.TotalCount)
}

func TestExportUnsupportedFormat(t *testing.T) {
	env := newTestEnv(t)

	rec := env.do(http.MethodGet, "/api/readings/export?format=pdf", "")
	assert.Equal(t, http.StatusBadRequest, rec.Code)

	rec = env.do(http.MethodGet, "/api/readings/export", "")
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestExportCSV(t *testing.T) {
	env := newTestEnv(t)

	reading := domain.Reading{
		ID:         uuid.New(),
		UserID:     env.user.ID,
		OccurredAt: time.Date(2024, 3, 10, 7, 30, 0, 0, time.UTC),
		Value:      decimalFromString(t, "6.2"),
		Unit:       domain.UnitMmol,
	}
	require.NoError(t, env.store.Readings().Create(context.Background(), &reading))

	rec := env.do(http.MethodGet, "/api/readings/export?format=csv", "")
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "text/csv", rec.Header().Get("Content-Type"))
	assert.Contains(t, rec.Header().Get("Content-Disposition"), "attachment")
	assert.Contains(t, rec.Body.String(), "6.2")
}

func TestDoseSuggestionUnconfigured(t *testing.T) {
	env := newTestEnv(t)

	rec := env.do(http.MethodGet, "/api/dosing/suggestion?value=9.5&unit=mmol/L", "")
	require.Equal(t, http.StatusOK, rec.Code)

	var resp struct {
		Configured bool   `json:"configured"`
		Guidance   string `json:"guidance"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	assert.False(t, resp.Configured)
	assert.NotEmpty(t, resp.Guidance)
}

func TestDoseSuggestionInvalidValue(t *testing.T) {
	env := newTestEnv(t)

	rec := env.do(http.MethodGet, "/api/dosing/suggestion?value=high&unit=mmol/L", "")
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestChartsEmpty(t *testing.T) {
	env := newTestEnv(t)

	for _, path := range []string{"/api/charts/timeline", "/api/charts/overlay", "/api/charts/daily"} {
		rec := env.do(http.MethodGet, path, "")
		assert.Equal(t, http.StatusOK, rec.Code, path)
		assert.NotContains(t, rec.Body.String(), "null", path)
	}
}

func TestChartRejectsUnknownUnit(t *testing.T) {
	env := newTestEnv(t)

	rec := env.do(http.MethodGet, "/api/charts/timeline?unit=stones", "")
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestDashboard(t *testing.T) {
	env := newTestEnv(t)

	rec := env.do(http.MethodGet, "/api/dashboard", "")
	require.Equal(t, http.StatusOK, rec.Code)

	var dash struct {
		Guidance string `json:"guidance"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &dash))
	assert.NotEmpty(t, dash.Guidance)
}

func TestInsulinTypeCRUD(t *testing.T) {
	env := newTestEnv(t)

	rec := env.do(http.MethodPost, "/api/insulin-types", `{"name":"NovoRapid","kind":"rapid","isDefault":true}`)
	require.Equal(t, http.StatusCreated, rec.Code, rec.Body.String())

	var created domain.InsulinType
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &created))
	require.NotZero(t, created.ID)

	rec = env.do(http.MethodGet, "/api/insulin-types", "")
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), "NovoRapid")

	rec = env.do(http.MethodDelete, "/api/insulin-types/"+created.ID.String(), "")
	assert.Equal(t, http.StatusNoContent, rec.Code)
}

func TestScheduleCreateRequiresKnownInsulinType(t *testing.T) {
	env := newTestEnv(t)

	body := fmt.Sprintf(`{"timeOfDay":"07:30","label":"morning","insulinTypeId":%q,"baseUnits":"12"}`, uuid.NewString())
	rec := env.do(http.MethodPost, "/api/schedule", body)
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestCorrectionScaleSaveAndResolve(t *testing.T) {
	env := newTestEnv(t)

	bands := []string{
		`{"unit":"mmol/L","lowerBound":"0","upperBound":"8","doseUnits":"0"}`,
		`{"unit":"mmol/L","lowerBound":"8","doseUnits":"3"}`,
	}
	// The first band alone is bounded, which an empty scale rejects;
	// build the scale from the open-ended band down instead.
	rec := env.do(http.MethodPost, "/api/correction-scale", bands[1])
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())
	rec = env.do(http.MethodPost, "/api/correction-scale", bands[0])
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())

	rec = env.do(http.MethodGet, "/api/dosing/suggestion?value=9.5&unit=mmol/L", "")
	require.Equal(t, http.StatusOK, rec.Code)

	var resp struct {
		Configured      bool   `json:"configured"`
		CorrectionUnits string `json:"correctionUnits"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	assert.True(t, resp.Configured)
	assert.Equal(t, "3", resp.CorrectionUnits)
}
