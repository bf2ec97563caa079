package server

import (
	"fmt"
	"net/http"
	"time"

	"github.com/shopspring/decimal"

	"glucolog/internal/domain"
	"glucolog/internal/services"
)

type readingRequest struct {
	OccurredAt time.Time       `json:"occurredAt"`
	Value      decimal.Decimal `json:"value"`
	Unit       string          `json:"unit"`
	Notes      string          `json:"notes"`
}

func (s *Server) handleReadingList(w http.ResponseWriter, r *http.Request) {
	user := userFromContext(r)
	q := services.ParseReadingQuery(listValues(r, user))

	page, err := s.glucose.List(r.Context(), user, q)
	if err != nil {
		writeError(w, http.StatusInternalServerError, err)
		return
	}
	writeJSON(w, http.StatusOK, toPageResponse(page))
}

func (s *Server) handleReadingCreate(w http.ResponseWriter, r *http.Request) {
	user := userFromContext(r)

	var req readingRequest
	if err := parseJSON(r, &req); err != nil {
		writeError(w, http.StatusBadRequest, err)
		return
	}
	unit, err := domain.ParseUnit(req.Unit)
	if err != nil {
		writeError(w, http.StatusBadRequest, err)
		return
	}

	reading := &domain.Reading{
		OccurredAt: req.OccurredAt,
		Value:      req.Value,
		Unit:       unit,
		Notes:      req.Notes,
	}
	if err := s.glucose.AddReading(r.Context(), user, reading); err != nil {
		writeError(w, http.StatusBadRequest, err)
		return
	}
	writeJSON(w, http.StatusCreated, reading)
}

func (s *Server) handleReadingUpdate(w http.ResponseWriter, r *http.Request) {
	user := userFromContext(r)
	id, err := pathID(r)
	if err != nil {
		writeError(w, http.StatusBadRequest, err)
		return
	}

	var req readingRequest
	if err := parseJSON(r, &req); err != nil {
		writeError(w, http.StatusBadRequest, err)
		return
	}
	unit, err := domain.ParseUnit(req.Unit)
	if err != nil {
		writeError(w, http.StatusBadRequest, err)
		return
	}

	reading := &domain.Reading{
		ID:         id,
		OccurredAt: req.OccurredAt,
		Value:      req.Value,
		Unit:       unit,
		Notes:      req.Notes,
	}
	if err := s.glucose.UpdateReading(r.Context(), user, reading); err != nil {
		writeError(w, http.StatusBadRequest, err)
		return
	}
	writeJSON(w, http.StatusOK, reading)
}

func (s *Server) handleReadingDelete(w http.ResponseWriter, r *http.Request) {
	user := userFromContext(r)
	id, err := pathID(r)
	if err != nil {
		writeError(w, http.StatusBadRequest, err)
		return
	}
	if err := s.glucose.DeleteReading(r.Context(), user, id); err != nil {
		writeError(w, http.StatusNotFound, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func (s *Server) handleReadingExport(w http.ResponseWriter, r *http.Request) {
	user := userFromContext(r)
	values := listValues(r, user)
	q := services.ParseReadingQuery(values)

	format, err := services.ParseExportFormat(values.Get("format"))
	if err != nil {
		writeError(w, http.StatusBadRequest, err)
		return
	}
	opts := services.ExportOptions{
		IncludeUnits: values.Get("include_units") != "false" && values.Get("include_units") != "0",
		DateFormat:   services.DateFormat(values.Get("date_format")),
	}

	readings, err := s.glucose.ListAll(r.Context(), user, q)
	if err != nil {
		writeError(w, http.StatusInternalServerError, err)
		return
	}
	export, err := s.export.Readings(readings, format, opts, user.Location())
	if err != nil {
		writeError(w, http.StatusBadRequest, err)
		return
	}
	serveExport(w, export)
}

func serveExport(w http.ResponseWriter, export *services.Export) {
	w.Header().Set("Content-Type", export.ContentType)
	w.Header().Set("Content-Disposition", fmt.Sprintf("attachment; filename=%q", export.Filename))
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write(export.Data)
}
