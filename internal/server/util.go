package server

import (
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"

	"github.com/google/uuid"

	"glucolog/internal/domain"
	"glucolog/internal/services"
)

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

func writeError(w http.ResponseWriter, status int, err error) {
	writeJSON(w, status, map[string]any{"error": err.Error()})
}

func parseJSON(r *http.Request, dst any) error {
	dec := json.NewDecoder(r.Body)
	dec.DisallowUnknownFields()
	if err := dec.Decode(dst); err != nil {
		return fmt.Errorf("invalid json: %w", err)
	}
	return nil
}

// listValues resolves quick-filter presets into explicit start/end dates
// before query parsing, so presets ride the same date-range path as
// custom ranges.
func listValues(r *http.Request, user *domain.User) url.Values {
	values := r.URL.Query()
	var days int
	switch values.Get("filter") {
	case "today":
		days = 1
	case "2days":
		days = 2
	default:
		return values
	}
	start, end := domain.PresetDays(days, timeNow(), user.Location())
	values.Set("start_date", start)
	values.Set("end_date", end)
	return values
}

// pageResponse is the JSON shape of every paginated table view
type pageResponse[T any] struct {
	Items      []T    `json:"items"`
	Page       int    `json:"page"`
	PageSize   int    `json:"pageSize"`
	TotalCount int    `json:"totalCount"`
	TotalPages int    `json:"totalPages"`
	Token      string `json:"token"`
	NextToken  string `json:"nextToken,omitempty"`
	PrevToken  string `json:"prevToken,omitempty"`
}

func pathID(r *http.Request) (uuid.UUID, error) {
	id, err := uuid.Parse(r.PathValue("id"))
	if err != nil {
		return uuid.Nil, fmt.Errorf("invalid id: %w", err)
	}
	return id, nil
}

func toPageResponse[T any](p services.Page[T]) pageResponse[T] {
	return pageResponse[T]{
		Items:      p.Items,
		Page:       p.Page,
		PageSize:   p.PageSize,
		TotalCount: p.TotalCount,
		TotalPages: p.TotalPages,
		Token:      p.Token,
		NextToken:  p.NextToken,
		PrevToken:  p.PrevToken,
	}
}
