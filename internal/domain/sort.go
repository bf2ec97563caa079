package domain

import (
	"sort"
	"time"
)

// Stable sorts per record type. sort.SliceStable keeps records with
// equal keys in their incoming (creation) order, so repeated sorts and
// exports stay deterministic.

// SortReadings orders readings by the given column and direction
func SortReadings(rs []Reading, col SortColumn, dir SortDirection) {
	sort.SliceStable(rs, func(i, j int) bool {
		var c int
		switch col {
		case SortValue:
			// Mixed-unit sets compare in a common unit.
			c = Convert(rs[i].Value, rs[i].Unit, UnitMgdl).Cmp(Convert(rs[j].Value, rs[j].Unit, UnitMgdl))
		default:
			c = compareTimes(rs[i].OccurredAt, rs[j].OccurredAt)
		}
		return orient(c, dir)
	})
}

// SortDoses orders doses by the given column and direction
func SortDoses(ds []Dose, col SortColumn, dir SortDirection) {
	sort.SliceStable(ds, func(i, j int) bool {
		var c int
		switch col {
		case SortTotalUnits:
			c = ds[i].TotalUnits().Cmp(ds[j].TotalUnits())
		default:
			c = compareTimes(ds[i].OccurredAt, ds[j].OccurredAt)
		}
		return orient(c, dir)
	})
}

// SortMeals orders meals by the given column and direction
func SortMeals(ms []Meal, col SortColumn, dir SortDirection) {
	sort.SliceStable(ms, func(i, j int) bool {
		var c int
		switch col {
		case SortCarbs:
			c = ms[i].CarbsGrams.Cmp(ms[j].CarbsGrams)
		default:
			c = compareTimes(ms[i].OccurredAt, ms[j].OccurredAt)
		}
		return orient(c, dir)
	})
}

func compareTimes(a, b time.Time) int {
	return a.Compare(b)
}

// orient maps a three-way comparison onto a less() result for the
// requested direction. Equal keys report false either way, which is
// what keeps SliceStable from reordering them.
func orient(c int, dir SortDirection) bool {
	if dir == SortAsc {
		return c < 0
	}
	return c > 0
}
