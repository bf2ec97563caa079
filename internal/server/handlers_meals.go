package server

import (
	"net/http"
	"time"

	"github.com/shopspring/decimal"

	"glucolog/internal/domain"
	"glucolog/internal/services"
)

type mealRequest struct {
	OccurredAt  time.Time       `json:"occurredAt"`
	MealType    domain.MealType `json:"mealType"`
	Description string          `json:"description"`
	CarbsGrams  decimal.Decimal `json:"carbsGrams"`
	Notes       string          `json:"notes"`
}

func (req *mealRequest) toMeal() *domain.Meal {
	return &domain.Meal{
		OccurredAt:  req.OccurredAt,
		MealType:    req.MealType,
		Description: req.Description,
		CarbsGrams:  req.CarbsGrams,
		Notes:       req.Notes,
	}
}

func (s *Server) handleMealList(w http.ResponseWriter, r *http.Request) {
	user := userFromContext(r)
	q := services.ParseMealQuery(listValues(r, user))

	page, err := s.meals.List(r.Context(), user, q)
	if err != nil {
		writeError(w, http.StatusInternalServerError, err)
		return
	}
	writeJSON(w, http.StatusOK, toPageResponse(page))
}

func (s *Server) handleMealCreate(w http.ResponseWriter, r *http.Request) {
	user := userFromContext(r)

	var req mealRequest
	if err := parseJSON(r, &req); err != nil {
		writeError(w, http.StatusBadRequest, err)
		return
	}
	meal := req.toMeal()
	if err := s.meals.AddMeal(r.Context(), user, meal); err != nil {
		writeError(w, http.StatusBadRequest, err)
		return
	}
	writeJSON(w, http.StatusCreated, meal)
}

func (s *Server) handleMealUpdate(w http.ResponseWriter, r *http.Request) {
	user := userFromContext(r)
	id, err := pathID(r)
	if err != nil {
		writeError(w, http.StatusBadRequest, err)
		return
	}

	var req mealRequest
	if err := parseJSON(r, &req); err != nil {
		writeError(w, http.StatusBadRequest, err)
		return
	}
	meal := req.toMeal()
	meal.ID = id
	if err := s.meals.UpdateMeal(r.Context(), user, meal); err != nil {
		writeError(w, http.StatusBadRequest, err)
		return
	}
	writeJSON(w, http.StatusOK, meal)
}

func (s *Server) handleMealDelete(w http.ResponseWriter, r *http.Request) {
	user := userFromContext(r)
	id, err := pathID(r)
	if err != nil {
		writeError(w, http.StatusBadRequest, err)
		return
	}
	if err := s.meals.DeleteMeal(r.Context(), user, id); err != nil {
		writeError(w, http.StatusNotFound, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func (s *Server) handleMealExport(w http.ResponseWriter, r *http.Request) {
	user := userFromContext(r)
	values := listValues(r, user)
	q := services.ParseMealQuery(values)

	format, err := services.ParseExportFormat(values.Get("format"))
	if err != nil {
		writeError(w, http.StatusBadRequest, err)
		return
	}

	meals, err := s.meals.ListAll(r.Context(), user, q)
	if err != nil {
		writeError(w, http.StatusInternalServerError, err)
		return
	}
	export, err := s.export.Meals(meals, format, user.Location())
	if err != nil {
		writeError(w, http.StatusBadRequest, err)
		return
	}
	serveExport(w, export)
}
