package server

import (
	"net/http"

	"glucolog/internal/domain"
	"glucolog/internal/services"
)

// Server is the HTTP adapter that routes requests to the engine
// services. It parses and normalises request parameters, leaving all
// filtering, sorting, aggregation and rendering to the services.
type Server struct {
	users     domain.UserRepository
	glucose   *services.GlucoseService
	insulin   *services.InsulinService
	meals     *services.MealService
	dosing    *services.DosingService
	analytics *services.AnalyticsService
	activity  *services.ActivityService
	dashboard *services.DashboardService
	export    *services.ExportService
}

// New creates a Server wired to the given services
func New(
	users domain.UserRepository,
	glucose *services.GlucoseService,
	insulin *services.InsulinService,
	meals *services.MealService,
	dosing *services.DosingService,
	analytics *services.AnalyticsService,
	activity *services.ActivityService,
	dashboard *services.DashboardService,
	export *services.ExportService,
) *Server {
	return &Server{
		users:     users,
		glucose:   glucose,
		insulin:   insulin,
		meals:     meals,
		dosing:    dosing,
		analytics: analytics,
		activity:  activity,
		dashboard: dashboard,
		export:    export,
	}
}

// Handler returns the root http.Handler for the application
func (s *Server) Handler() http.Handler {
	mux := http.NewServeMux()

	mux.HandleFunc("GET /api/health", func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, http.StatusOK, map[string]any{"ok": true})
	})

	mux.HandleFunc("GET /api/dashboard", s.withUser(s.handleDashboard))
	mux.HandleFunc("GET /api/activity", s.withUser(s.handleActivityList))

	mux.HandleFunc("GET /api/readings", s.withUser(s.handleReadingList))
	mux.HandleFunc("POST /api/readings", s.withUser(s.handleReadingCreate))
	mux.HandleFunc("PUT /api/readings/{id}", s.withUser(s.handleReadingUpdate))
	mux.HandleFunc("DELETE /api/readings/{id}", s.withUser(s.handleReadingDelete))
	mux.HandleFunc("GET /api/readings/export", s.withUser(s.handleReadingExport))

	mux.HandleFunc("GET /api/doses", s.withUser(s.handleDoseList))
	mux.HandleFunc("POST /api/doses", s.withUser(s.handleDoseCreate))
	mux.HandleFunc("PUT /api/doses/{id}", s.withUser(s.handleDoseUpdate))
	mux.HandleFunc("DELETE /api/doses/{id}", s.withUser(s.handleDoseDelete))
	mux.HandleFunc("GET /api/doses/export", s.withUser(s.handleDoseExport))

	mux.HandleFunc("GET /api/meals", s.withUser(s.handleMealList))
	mux.HandleFunc("POST /api/meals", s.withUser(s.handleMealCreate))
	mux.HandleFunc("PUT /api/meals/{id}", s.withUser(s.handleMealUpdate))
	mux.HandleFunc("DELETE /api/meals/{id}", s.withUser(s.handleMealDelete))
	mux.HandleFunc("GET /api/meals/export", s.withUser(s.handleMealExport))

	mux.HandleFunc("GET /api/charts/timeline", s.withUser(s.handleChartTimeline))
	mux.HandleFunc("GET /api/charts/overlay", s.withUser(s.handleChartOverlay))
	mux.HandleFunc("GET /api/charts/daily", s.withUser(s.handleChartDaily))

	mux.HandleFunc("GET /api/dosing/suggestion", s.withUser(s.handleDoseSuggestion))
	mux.HandleFunc("GET /api/schedule", s.withUser(s.handleScheduleList))
	mux.HandleFunc("POST /api/schedule", s.withUser(s.handleScheduleCreate))
	mux.HandleFunc("PUT /api/schedule/{id}", s.withUser(s.handleScheduleUpdate))
	mux.HandleFunc("DELETE /api/schedule/{id}", s.withUser(s.handleScheduleDelete))

	mux.HandleFunc("GET /api/correction-scale", s.withUser(s.handleScaleList))
	mux.HandleFunc("POST /api/correction-scale", s.withUser(s.handleScaleSave))
	mux.HandleFunc("DELETE /api/correction-scale/{id}", s.withUser(s.handleScaleDelete))

	mux.HandleFunc("GET /api/insulin-types", s.withUser(s.handleInsulinTypeList))
	mux.HandleFunc("POST /api/insulin-types", s.withUser(s.handleInsulinTypeCreate))
	mux.HandleFunc("PUT /api/insulin-types/{id}", s.withUser(s.handleInsulinTypeUpdate))
	mux.HandleFunc("DELETE /api/insulin-types/{id}", s.withUser(s.handleInsulinTypeDelete))

	return withLogging(mux)
}
