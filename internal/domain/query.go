package domain

import (
	"net/url"
	"strconv"
	"time"
)

// SortColumn names a sortable field of a record type
type SortColumn string

const (
	SortOccurredAt SortColumn = "occurred_at"
	SortValue      SortColumn = "value"       // readings
	SortTotalUnits SortColumn = "total_units" // doses
	SortCarbs      SortColumn = "carbs"       // meals
)

// SortDirection is the ordering direction of a sort
type SortDirection string

const (
	SortAsc  SortDirection = "asc"
	SortDesc SortDirection = "desc"
)

const (
	// DefaultPageSize is used when the caller supplies none or an
	// unsupported value.
	DefaultPageSize = 50

	dateLayout = "2006-01-02"
)

var allowedPageSizes = map[int]bool{10: true, 25: true, 50: true, 100: true}

// Query is the immutable filter+sort+page state of a list request. It is
// threaded explicitly through pagination, link generation and export so
// every surface sees the same record set, and it round-trips through
// Values/ParseQuery as the navigation token.
type Query struct {
	StartDate string // "2006-01-02" local calendar date, empty = from earliest
	EndDate   string // "2006-01-02" local calendar date, empty = through now
	Sort      SortColumn
	Dir       SortDirection
	Page      int
	PageSize  int
}

// DefaultQuery returns the documented defaults: no date bounds, newest
// first, first page of fifty.
func DefaultQuery() Query {
	return Query{
		Sort:     SortOccurredAt,
		Dir:      SortDesc,
		Page:     1,
		PageSize: DefaultPageSize,
	}
}

// ParseQuery normalises caller-supplied URL parameters into a Query.
// Malformed values fall back to defaults rather than failing the
// request. Columns other than occurred_at must be listed in sortable to
// be accepted, since each record type exposes different fields.
func ParseQuery(values url.Values, sortable ...SortColumn) Query {
	q := DefaultQuery()

	if s := values.Get("start_date"); s != "" {
		if _, err := time.Parse(dateLayout, s); err == nil {
			q.StartDate = s
		}
	}
	if s := values.Get("end_date"); s != "" {
		if _, err := time.Parse(dateLayout, s); err == nil {
			q.EndDate = s
		}
	}

	if col := SortColumn(values.Get("sort")); col != "" && col != SortOccurredAt {
		for _, allowed := range sortable {
			if col == allowed {
				q.Sort = col
				break
			}
		}
	}
	if dir := SortDirection(values.Get("dir")); dir == SortAsc || dir == SortDesc {
		q.Dir = dir
	}

	if n, err := strconv.Atoi(values.Get("page")); err == nil && n >= 1 {
		q.Page = n
	}
	if n, err := strconv.Atoi(values.Get("page_size")); err == nil && allowedPageSizes[n] {
		q.PageSize = n
	}

	return q
}

// Values encodes the query as URL parameters. ParseQuery over the result
// reproduces the query exactly, which is what lets navigation and export
// links carry the active filter and sort verbatim.
func (q Query) Values() url.Values {
	v := url.Values{}
	if q.StartDate != "" {
		v.Set("start_date", q.StartDate)
	}
	if q.EndDate != "" {
		v.Set("end_date", q.EndDate)
	}
	v.Set("sort", string(q.Sort))
	v.Set("dir", string(q.Dir))
	v.Set("page", strconv.Itoa(q.Page))
	v.Set("page_size", strconv.Itoa(q.PageSize))
	return v
}

// Encode returns the query string form of the navigation token
func (q Query) Encode() string {
	return q.Values().Encode()
}

// WithPage returns a copy of the query pointing at another page
func (q Query) WithPage(page int) Query {
	q.Page = page
	return q
}

// Bounds resolves the calendar-date range to absolute instants in the
// given timezone. The range is inclusive of whole local days: start is
// midnight on StartDate, end is midnight after EndDate (exclusive).
// Zero times mean the bound is open. Using time.Date here keeps the
// day boundary correct across DST transitions.
func (q Query) Bounds(loc *time.Location) (start, end time.Time) {
	if q.StartDate != "" {
		if d, err := time.Parse(dateLayout, q.StartDate); err == nil {
			start = time.Date(d.Year(), d.Month(), d.Day(), 0, 0, 0, 0, loc)
		}
	}
	if q.EndDate != "" {
		if d, err := time.Parse(dateLayout, q.EndDate); err == nil {
			end = time.Date(d.Year(), d.Month(), d.Day(), 0, 0, 0, 0, loc).AddDate(0, 0, 1)
		}
	}
	return start, end
}

// Contains reports whether an instant falls inside the resolved range
func (q Query) Contains(t time.Time, loc *time.Location) bool {
	start, end := q.Bounds(loc)
	if !start.IsZero() && t.Before(start) {
		return false
	}
	if !end.IsZero() && !t.Before(end) {
		return false
	}
	return true
}

// PresetDays computes the start/end dates covering today and the n-1
// preceding local calendar days, for quick filters like "Today" (n=1)
// and "2 Days" (n=2). Presets go through the same date-range path as
// explicit bounds.
func PresetDays(n int, now time.Time, loc *time.Location) (startDate, endDate string) {
	if n < 1 {
		n = 1
	}
	local := now.In(loc)
	return local.AddDate(0, 0, -(n - 1)).Format(dateLayout), local.Format(dateLayout)
}
