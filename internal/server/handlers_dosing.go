package server

import (
	"errors"
	"fmt"
	"net/http"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"glucolog/internal/apperrors"
	"glucolog/internal/domain"
)

func (s *Server) handleDoseSuggestion(w http.ResponseWriter, r *http.Request) {
	user := userFromContext(r)

	value, err := decimal.NewFromString(r.URL.Query().Get("value"))
	if err != nil {
		writeError(w, http.StatusBadRequest, fmt.Errorf("invalid value: %w", err))
		return
	}
	unit, err := domain.ParseUnit(r.URL.Query().Get("unit"))
	if err != nil {
		writeError(w, http.StatusBadRequest, err)
		return
	}

	units, err := s.dosing.SuggestCorrection(r.Context(), user, value, unit)
	if err != nil {
		// Missing configuration is a normal state for a new account,
		// reported as guidance rather than failure.
		if errors.Is(err, apperrors.ErrNoScaleConfigured) {
			writeJSON(w, http.StatusOK, map[string]any{
				"configured": false,
				"guidance":   "no correction scale configured",
			})
			return
		}
		writeError(w, http.StatusInternalServerError, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{
		"configured":      true,
		"correctionUnits": units,
	})
}

type scheduleRequest struct {
	TimeOfDay     string          `json:"timeOfDay"`
	Label         string          `json:"label"`
	InsulinTypeID uuid.UUID       `json:"insulinTypeId"`
	BaseUnits     decimal.Decimal `json:"baseUnits"`
	Notes         string          `json:"notes"`
}

func (req *scheduleRequest) toEntry() *domain.ScheduleEntry {
	return &domain.ScheduleEntry{
		TimeOfDay:     req.TimeOfDay,
		Label:         req.Label,
		InsulinTypeID: req.InsulinTypeID,
		BaseUnits:     req.BaseUnits,
		Notes:         req.Notes,
	}
}

func (s *Server) handleScheduleList(w http.ResponseWriter, r *http.Request) {
	user := userFromContext(r)
	entries, err := s.dosing.Schedule(r.Context(), user)
	if err != nil {
		writeError(w, http.StatusInternalServerError, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{"items": entries})
}

func (s *Server) handleScheduleCreate(w http.ResponseWriter, r *http.Request) {
	user := userFromContext(r)

	var req scheduleRequest
	if err := parseJSON(r, &req); err != nil {
		writeError(w, http.StatusBadRequest, err)
		return
	}
	entry := req.toEntry()
	if err := s.dosing.AddScheduleEntry(r.Context(), user, entry); err != nil {
		writeError(w, http.StatusBadRequest, err)
		return
	}
	writeJSON(w, http.StatusCreated, entry)
}

func (s *Server) handleScheduleUpdate(w http.ResponseWriter, r *http.Request) {
	user := userFromContext(r)
	id, err := pathID(r)
	if err != nil {
		writeError(w, http.StatusBadRequest, err)
		return
	}

	var req scheduleRequest
	if err := parseJSON(r, &req); err != nil {
		writeError(w, http.StatusBadRequest, err)
		return
	}
	entry := req.toEntry()
	entry.ID = id
	if err := s.dosing.UpdateScheduleEntry(r.Context(), user, entry); err != nil {
		writeError(w, http.StatusBadRequest, err)
		return
	}
	writeJSON(w, http.StatusOK, entry)
}

func (s *Server) handleScheduleDelete(w http.ResponseWriter, r *http.Request) {
	user := userFromContext(r)
	id, err := pathID(r)
	if err != nil {
		writeError(w, http.StatusBadRequest, err)
		return
	}
	if err := s.dosing.DeleteScheduleEntry(r.Context(), user, id); err != nil {
		writeError(w, http.StatusNotFound, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

type bandRequest struct {
	ID         uuid.UUID        `json:"id"`
	Unit       string           `json:"unit"`
	LowerBound decimal.Decimal  `json:"lowerBound"`
	UpperBound *decimal.Decimal `json:"upperBound"`
	DoseUnits  decimal.Decimal  `json:"doseUnits"`
}

func (s *Server) handleScaleList(w http.ResponseWriter, r *http.Request) {
	user := userFromContext(r)
	scale, err := s.dosing.Scale(r.Context(), user)
	if err != nil {
		writeError(w, http.StatusInternalServerError, err)
		return
	}
	bands := scale.Bands
	if bands == nil {
		bands = []domain.CorrectionBand{}
	}
	writeJSON(w, http.StatusOK, map[string]any{"unit": scale.Unit, "bands": bands})
}

func (s *Server) handleScaleSave(w http.ResponseWriter, r *http.Request) {
	user := userFromContext(r)

	var req bandRequest
	if err := parseJSON(r, &req); err != nil {
		writeError(w, http.StatusBadRequest, err)
		return
	}
	unit, err := domain.ParseUnit(req.Unit)
	if err != nil {
		writeError(w, http.StatusBadRequest, err)
		return
	}
	band := &domain.CorrectionBand{
		ID:         req.ID,
		Unit:       unit,
		LowerBound: req.LowerBound,
		UpperBound: req.UpperBound,
		DoseUnits:  req.DoseUnits,
	}
	if err := s.dosing.SaveBand(r.Context(), user, band); err != nil {
		writeError(w, http.StatusBadRequest, err)
		return
	}
	writeJSON(w, http.StatusOK, band)
}

func (s *Server) handleScaleDelete(w http.ResponseWriter, r *http.Request) {
	user := userFromContext(r)
	id, err := pathID(r)
	if err != nil {
		writeError(w, http.StatusBadRequest, err)
		return
	}
	if err := s.dosing.DeleteBand(r.Context(), user, id); err != nil {
		writeError(w, http.StatusBadRequest, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}
