package server

import (
	"net/http"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"glucolog/internal/domain"
	"glucolog/internal/services"
)

type doseRequest struct {
	OccurredAt      time.Time       `json:"occurredAt"`
	BaseUnits       decimal.Decimal `json:"baseUnits"`
	CorrectionUnits decimal.Decimal `json:"correctionUnits"`
	InsulinTypeID   uuid.UUID       `json:"insulinTypeId"`
	Notes           string          `json:"notes"`
}

func (req *doseRequest) toDose() *domain.Dose {
	return &domain.Dose{
		OccurredAt:      req.OccurredAt,
		BaseUnits:       req.BaseUnits,
		CorrectionUnits: req.CorrectionUnits,
		InsulinTypeID:   req.InsulinTypeID,
		Notes:           req.Notes,
	}
}

func (s *Server) handleDoseList(w http.ResponseWriter, r *http.Request) {
	user := userFromContext(r)
	q := services.ParseDoseQuery(listValues(r, user))

	page, err := s.insulin.ListDoses(r.Context(), user, q)
	if err != nil {
		writeError(w, http.StatusInternalServerError, err)
		return
	}
	writeJSON(w, http.StatusOK, toPageResponse(page))
}

func (s *Server) handleDoseCreate(w http.ResponseWriter, r *http.Request) {
	user := userFromContext(r)

	var req doseRequest
	if err := parseJSON(r, &req); err != nil {
		writeError(w, http.StatusBadRequest, err)
		return
	}
	dose := req.toDose()
	if err := s.insulin.AddDose(r.Context(), user, dose); err != nil {
		writeError(w, http.StatusBadRequest, err)
		return
	}
	writeJSON(w, http.StatusCreated, dose)
}

func (s *Server) handleDoseUpdate(w http.ResponseWriter, r *http.Request) {
	user := userFromContext(r)
	id, err := pathID(r)
	if err != nil {
		writeError(w, http.StatusBadRequest, err)
		return
	}

	var req doseRequest
	if err := parseJSON(r, &req); err != nil {
		writeError(w, http.StatusBadRequest, err)
		return
	}
	dose := req.toDose()
	dose.ID = id
	if err := s.insulin.UpdateDose(r.Context(), user, dose); err != nil {
		writeError(w, http.StatusBadRequest, err)
		return
	}
	writeJSON(w, http.StatusOK, dose)
}

func (s *Server) handleDoseDelete(w http.ResponseWriter, r *http.Request) {
	user := userFromContext(r)
	id, err := pathID(r)
	if err != nil {
		writeError(w, http.StatusBadRequest, err)
		return
	}
	if err := s.insulin.DeleteDose(r.Context(), user, id); err != nil {
		writeError(w, http.StatusNotFound, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func (s *Server) handleDoseExport(w http.ResponseWriter, r *http.Request) {
	user := userFromContext(r)
	values := listValues(r, user)
	q := services.ParseDoseQuery(values)

	format, err := services.ParseExportFormat(values.Get("format"))
	if err != nil {
		writeError(w, http.StatusBadRequest, err)
		return
	}

	doses, err := s.insulin.ListAllDoses(r.Context(), user, q)
	if err != nil {
		writeError(w, http.StatusInternalServerError, err)
		return
	}
	export, err := s.export.Doses(doses, format, user.Location())
	if err != nil {
		writeError(w, http.StatusBadRequest, err)
		return
	}
	serveExport(w, export)
}

type insulinTypeRequest struct {
	Name      string             `json:"name"`
	Kind      domain.InsulinKind `json:"kind"`
	Notes     string             `json:"notes"`
	IsDefault bool               `json:"isDefault"`
}

func (s *Server) handleInsulinTypeList(w http.ResponseWriter, r *http.Request) {
	user := userFromContext(r)
	types, err := s.insulin.ListInsulinTypes(r.Context(), user)
	if err != nil {
		writeError(w, http.StatusInternalServerError, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{"items": types})
}

func (s *Server) handleInsulinTypeCreate(w http.ResponseWriter, r *http.Request) {
	user := userFromContext(r)

	var req insulinTypeRequest
	if err := parseJSON(r, &req); err != nil {
		writeError(w, http.StatusBadRequest, err)
		return
	}
	t := &domain.InsulinType{Name: req.Name, Kind: req.Kind, Notes: req.Notes, IsDefault: req.IsDefault}
	if err := s.insulin.AddInsulinType(r.Context(), user, t); err != nil {
		writeError(w, http.StatusBadRequest, err)
		return
	}
	writeJSON(w, http.StatusCreated, t)
}

func (s *Server) handleInsulinTypeUpdate(w http.ResponseWriter, r *http.Request) {
	user := userFromContext(r)
	id, err := pathID(r)
	if err != nil {
		writeError(w, http.StatusBadRequest, err)
		return
	}

	var req insulinTypeRequest
	if err := parseJSON(r, &req); err != nil {
		writeError(w, http.StatusBadRequest, err)
		return
	}
	t := &domain.InsulinType{ID: id, Name: req.Name, Kind: req.Kind, Notes: req.Notes, IsDefault: req.IsDefault}
	if err := s.insulin.UpdateInsulinType(r.Context(), user, t); err != nil {
		writeError(w, http.StatusBadRequest, err)
		return
	}
	writeJSON(w, http.StatusOK, t)
}

func (s *Server) handleInsulinTypeDelete(w http.ResponseWriter, r *http.Request) {
	user := userFromContext(r)
	id, err := pathID(r)
	if err != nil {
		writeError(w, http.StatusBadRequest, err)
		return
	}
	if err := s.insulin.DeleteInsulinType(r.Context(), user, id); err != nil {
		writeError(w, http.StatusNotFound, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}
