package domain

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestSortReadingsByTime(t *testing.T) {
	base := time.Date(2024, 3, 10, 8, 0, 0, 0, time.UTC)
	rs := []Reading{
		{Notes: "a", OccurredAt: base.Add(2 * time.Hour)},
		{Notes: "b", OccurredAt: base},
		{Notes: "c", OccurredAt: base.Add(time.Hour)},
	}

	SortReadings(rs, SortOccurredAt, SortDesc)
	assert.Equal(t, []string{"a", "c", "b"}, readingNotes(rs))

	SortReadings(rs, SortOccurredAt, SortAsc)
	assert.Equal(t, []string{"b", "c", "a"}, readingNotes(rs))
}

func TestSortReadingsByValueAcrossUnits(t *testing.T) {
	at := time.Now()
	rs := []Reading{
		{Notes: "high", OccurredAt: at, Value: dec("10.0"), Unit: UnitMmol}, // ~180 mg/dL
		{Notes: "low", OccurredAt: at, Value: dec("90"), Unit: UnitMgdl},
		{Notes: "mid", OccurredAt: at, Value: dec("120"), Unit: UnitMgdl},
	}

	SortReadings(rs, SortValue, SortAsc)
	assert.Equal(t, []string{"low", "mid", "high"}, readingNotes(rs))
}

func TestSortReadingsStable(t *testing.T) {
	at := time.Date(2024, 3, 10, 8, 0, 0, 0, time.UTC)
	rs := []Reading{
		{Notes: "first", OccurredAt: at},
		{Notes: "second", OccurredAt: at},
		{Notes: "third", OccurredAt: at},
	}

	// Equal keys keep insertion order in both directions.
	SortReadings(rs, SortOccurredAt, SortDesc)
	assert.Equal(t, []string{"first", "second", "third"}, readingNotes(rs))

	SortReadings(rs, SortOccurredAt, SortAsc)
	assert.Equal(t, []string{"first", "second", "third"}, readingNotes(rs))
}

func TestSortDosesByTotalUnits(t *testing.T) {
	at := time.Now()
	ds := []Dose{
		{Notes: "big", OccurredAt: at, BaseUnits: dec("10"), CorrectionUnits: dec("4")},
		{Notes: "small", OccurredAt: at, BaseUnits: dec("2")},
		{Notes: "mid", OccurredAt: at, BaseUnits: dec("6"), CorrectionUnits: dec("1")},
	}

	SortDoses(ds, SortTotalUnits, SortDesc)
	assert.Equal(t, "big", ds[0].Notes)
	assert.Equal(t, "mid", ds[1].Notes)
	assert.Equal(t, "small", ds[2].Notes)
}

func TestSortMealsByCarbs(t *testing.T) {
	at := time.Now()
	ms := []Meal{
		{Description: "pasta", OccurredAt: at, CarbsGrams: dec("80")},
		{Description: "salad", OccurredAt: at, CarbsGrams: dec("12")},
	}

	SortMeals(ms, SortCarbs, SortAsc)
	assert.Equal(t, "salad", ms[0].Description)
}

func readingNotes(rs []Reading) []string {
	out := make([]string, len(rs))
	for i, r := range rs {
		out[i] = r.Notes
	}
	return out
}
