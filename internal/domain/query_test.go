package domain

import (
	"net/url"
	"strconv"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseQueryDefaults(t *testing.T) {
	q := ParseQuery(url.Values{})

	assert.Equal(t, DefaultQuery(), q)
	assert.Equal(t, SortOccurredAt, q.Sort)
	assert.Equal(t, SortDesc, q.Dir)
	assert.Equal(t, 1, q.Page)
	assert.Equal(t, DefaultPageSize, q.PageSize)
}

func TestParseQueryMalformedValuesFallBack(t *testing.T) {
	q := ParseQuery(url.Values{
		"start_date": {"yesterday"},
		"end_date":   {"2024-13-45"},
		"sort":       {"secret_column"},
		"dir":        {"sideways"},
		"page":       {"-3"},
		"page_size":  {"7"},
	}, SortValue)

	assert.Equal(t, DefaultQuery(), q)
}

func TestParseQuerySortableWhitelist(t *testing.T) {
	values := url.Values{"sort": {"value"}}

	q := ParseQuery(values, SortValue)
	assert.Equal(t, SortValue, q.Sort)

	// Columns of other record types are not accepted.
	q = ParseQuery(values, SortCarbs)
	assert.Equal(t, SortOccurredAt, q.Sort)
}

func TestParseQueryPageSizeWhitelist(t *testing.T) {
	for _, n := range []int{10, 25, 50, 100} {
		q := ParseQuery(url.Values{"page_size": {strconv.Itoa(n)}})
		assert.Equal(t, n, q.PageSize)
	}
	q := ParseQuery(url.Values{"page_size": {"33"}})
	assert.Equal(t, DefaultPageSize, q.PageSize)
}

func TestQueryRoundTrip(t *testing.T) {
	q := Query{
		StartDate: "2024-03-01",
		EndDate:   "2024-03-10",
		Sort:      SortValue,
		Dir:       SortAsc,
		Page:      3,
		PageSize:  25,
	}

	parsed := ParseQuery(q.Values(), SortValue)
	assert.Equal(t, q, parsed)
}

func TestQueryBounds(t *testing.T) {
	loc, err := time.LoadLocation("America/New_York")
	require.NoError(t, err)

	q := Query{StartDate: "2024-03-10", EndDate: "2024-03-10"}
	start, end := q.Bounds(loc)

	assert.Equal(t, time.Date(2024, 3, 10, 0, 0, 0, 0, loc), start)
	assert.Equal(t, time.Date(2024, 3, 11, 0, 0, 0, 0, loc), end)

	// The whole local day is covered, up to but excluding next midnight.
	assert.True(t, q.Contains(time.Date(2024, 3, 10, 23, 59, 59, 0, loc), loc))
	assert.False(t, q.Contains(time.Date(2024, 3, 11, 0, 0, 1, 0, loc), loc))
	assert.False(t, q.Contains(end, loc))
}

func TestQueryBoundsOpenEnded(t *testing.T) {
	q := Query{}
	start, end := q.Bounds(time.UTC)
	assert.True(t, start.IsZero())
	assert.True(t, end.IsZero())
	assert.True(t, q.Contains(time.Date(1999, 1, 1, 0, 0, 0, 0, time.UTC), time.UTC))
}

func TestPresetDays(t *testing.T) {
	loc := time.UTC
	now := time.Date(2024, 3, 10, 15, 0, 0, 0, loc)

	start, end := PresetDays(1, now, loc)
	assert.Equal(t, "2024-03-10", start)
	assert.Equal(t, "2024-03-10", end)

	start, end = PresetDays(2, now, loc)
	assert.Equal(t, "2024-03-09", start)
	assert.Equal(t, "2024-03-10", end)
}

func TestWithPage(t *testing.T) {
	q := DefaultQuery()
	next := q.WithPage(4)

	assert.Equal(t, 4, next.Page)
	assert.Equal(t, 1, q.Page)
}
