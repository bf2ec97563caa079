package server

import (
	"net/http"

	"glucolog/internal/domain"
	"glucolog/internal/services"
)

// chartUnit picks the display unit for chart endpoints. A missing
// parameter means mmol/L; an unrecognised one is a client error.
func chartUnit(r *http.Request) (domain.Unit, error) {
	raw := r.URL.Query().Get("unit")
	if raw == "" {
		return domain.UnitMmol, nil
	}
	return domain.ParseUnit(raw)
}

func (s *Server) handleChartTimeline(w http.ResponseWriter, r *http.Request) {
	user := userFromContext(r)
	q := services.ParseReadingQuery(listValues(r, user))

	unit, err := chartUnit(r)
	if err != nil {
		writeError(w, http.StatusBadRequest, err)
		return
	}
	seq, err := s.analytics.Timeline(r.Context(), user, q, unit)
	if err != nil {
		writeError(w, http.StatusInternalServerError, err)
		return
	}

	points := []services.TimelinePoint{}
	for p := range seq {
		points = append(points, p)
	}
	writeJSON(w, http.StatusOK, map[string]any{"unit": unit, "points": points})
}

func (s *Server) handleChartOverlay(w http.ResponseWriter, r *http.Request) {
	user := userFromContext(r)
	q := services.ParseReadingQuery(listValues(r, user))

	unit, err := chartUnit(r)
	if err != nil {
		writeError(w, http.StatusBadRequest, err)
		return
	}
	series, err := s.analytics.Overlay(r.Context(), user, q, unit)
	if err != nil {
		writeError(w, http.StatusInternalServerError, err)
		return
	}
	if series == nil {
		series = []services.OverlaySeries{}
	}
	writeJSON(w, http.StatusOK, map[string]any{"unit": unit, "series": series})
}

func (s *Server) handleChartDaily(w http.ResponseWriter, r *http.Request) {
	user := userFromContext(r)
	q := services.ParseReadingQuery(listValues(r, user))

	unit, err := chartUnit(r)
	if err != nil {
		writeError(w, http.StatusBadRequest, err)
		return
	}
	days, err := s.analytics.DailyAverages(r.Context(), user, q, unit)
	if err != nil {
		writeError(w, http.StatusInternalServerError, err)
		return
	}
	if days == nil {
		days = []services.DailyPoint{}
	}
	writeJSON(w, http.StatusOK, map[string]any{"unit": unit, "days": days})
}
