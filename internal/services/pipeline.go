package services

import (
	"net/url"

	"glucolog/internal/domain"
)

// Page is one page of a filtered, sorted record set plus the navigation
// tokens the surrounding layer embeds in links. Tokens are the Query
// itself re-encoded, so filter and sort survive pagination and export
// unchanged.
type Page[T any] struct {
	Items      []T
	Page       int
	PageSize   int
	TotalCount int
	TotalPages int
	Token      string
	NextToken  string
	PrevToken  string
}

// paginate slices an already filtered and sorted record set. An
// out-of-range page clamps to the last page rather than failing.
func paginate[T any](items []T, q domain.Query) Page[T] {
	total := len(items)
	totalPages := (total + q.PageSize - 1) / q.PageSize
	if totalPages == 0 {
		totalPages = 1
	}

	page := q.Page
	if page > totalPages {
		page = totalPages
	}
	q = q.WithPage(page)

	lo := (page - 1) * q.PageSize
	hi := lo + q.PageSize
	if lo > total {
		lo = total
	}
	if hi > total {
		hi = total
	}

	p := Page[T]{
		Items:      items[lo:hi],
		Page:       page,
		PageSize:   q.PageSize,
		TotalCount: total,
		TotalPages: totalPages,
		Token:      q.Encode(),
	}
	if page < totalPages {
		p.NextToken = q.WithPage(page + 1).Encode()
	}
	if page > 1 {
		p.PrevToken = q.WithPage(page - 1).Encode()
	}
	return p
}

// ParseReadingQuery normalises list parameters for glucose readings
func ParseReadingQuery(values url.Values) domain.Query {
	return domain.ParseQuery(values, domain.SortValue)
}

// ParseDoseQuery normalises list parameters for insulin doses
func ParseDoseQuery(values url.Values) domain.Query {
	return domain.ParseQuery(values, domain.SortTotalUnits)
}

// ParseMealQuery normalises list parameters for meals
func ParseMealQuery(values url.Values) domain.Query {
	return domain.ParseQuery(values, domain.SortCarbs)
}

// ParseActivityQuery normalises list parameters for the merged activity
// view, which sorts by time only.
func ParseActivityQuery(values url.Values) domain.Query {
	return domain.ParseQuery(values)
}
