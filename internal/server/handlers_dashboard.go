package server

import (
	"net/http"

	"glucolog/internal/services"
)

func (s *Server) handleDashboard(w http.ResponseWriter, r *http.Request) {
	user := userFromContext(r)
	dash, err := s.dashboard.Get(r.Context(), user)
	if err != nil {
		writeError(w, http.StatusInternalServerError, err)
		return
	}
	writeJSON(w, http.StatusOK, dash)
}

func (s *Server) handleActivityList(w http.ResponseWriter, r *http.Request) {
	user := userFromContext(r)
	q := services.ParseActivityQuery(listValues(r, user))

	page, err := s.activity.List(r.Context(), user, q)
	if err != nil {
		writeError(w, http.StatusInternalServerError, err)
		return
	}
	writeJSON(w, http.StatusOK, toPageResponse(page))
}
