package domain

import (
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestScheduleEntryValidate(t *testing.T) {
	entry := ScheduleEntry{
		TimeOfDay:     "07:30",
		InsulinTypeID: uuid.New(),
		BaseUnits:     dec("12"),
	}
	assert.NoError(t, entry.Validate())

	bad := entry
	bad.TimeOfDay = "7:30pm"
	assert.Error(t, bad.Validate())

	bad = entry
	bad.BaseUnits = dec("-1")
	assert.Error(t, bad.Validate())

	bad = entry
	bad.InsulinTypeID = uuid.Nil
	assert.Error(t, bad.Validate())
}

func TestSortSchedule(t *testing.T) {
	entries := []ScheduleEntry{
		{TimeOfDay: "22:00"},
		{TimeOfDay: "07:30"},
		{TimeOfDay: "13:00"},
	}
	SortSchedule(entries)

	assert.Equal(t, "07:30", entries[0].TimeOfDay)
	assert.Equal(t, "13:00", entries[1].TimeOfDay)
	assert.Equal(t, "22:00", entries[2].TimeOfDay)
}

func TestNextScheduled(t *testing.T) {
	entries := []ScheduleEntry{
		{TimeOfDay: "07:30", Label: "morning"},
		{TimeOfDay: "22:00", Label: "night"},
	}

	next := NextScheduled(entries, "08:00")
	require.NotNil(t, next)
	assert.Equal(t, "night", next.Label)

	// Exact match counts as the next entry.
	next = NextScheduled(entries, "07:30")
	require.NotNil(t, next)
	assert.Equal(t, "morning", next.Label)

	// Past the last entry wraps to the earliest.
	next = NextScheduled(entries, "23:15")
	require.NotNil(t, next)
	assert.Equal(t, "morning", next.Label)

	assert.Nil(t, NextScheduled(nil, "08:00"))
}
