package services

import (
	"context"
	"iter"
	"sort"
	"time"

	"github.com/shopspring/decimal"

	"glucolog/internal/domain"
)

// AnalyticsService builds the chart views from a user's readings. All
// three views operate on the date-filtered set only; display sorting
// never applies here.
type AnalyticsService struct {
	readings domain.ReadingRepository
}

// NewAnalyticsService creates a new analytics service
func NewAnalyticsService(readings domain.ReadingRepository) *AnalyticsService {
	return &AnalyticsService{readings: readings}
}

// TimelinePoint is a single reading plotted on the timeline chart
type TimelinePoint struct {
	At    time.Time       `json:"at"`
	Value decimal.Decimal `json:"value"`
}

// OverlayPoint is a reading positioned by time of day only
type OverlayPoint struct {
	Seconds int             `json:"seconds"` // seconds since local midnight
	Value   decimal.Decimal `json:"value"`
}

// OverlaySeries is one calendar day's readings on the shared 0-24h axis
type OverlaySeries struct {
	Day    string         `json:"day"` // local calendar date, "2006-01-02"
	Points []OverlayPoint `json:"points"`
}

// DailyPoint is the mean of one local calendar day's readings
type DailyPoint struct {
	Day   string          `json:"day"`
	Mean  decimal.Decimal `json:"mean"`
	Count int             `json:"count"`
}

func (s *AnalyticsService) filtered(ctx context.Context, user *domain.User, q domain.Query) ([]domain.Reading, error) {
	start, end := q.Bounds(user.Location())
	return s.readings.ListRange(ctx, user.ID, start, end)
}

// Timeline returns the filtered readings as a restartable sequence of
// points in ascending time order, one per reading, values converted to
// the display unit. An empty filtered set yields an empty sequence.
func (s *AnalyticsService) Timeline(ctx context.Context, user *domain.User, q domain.Query, unit domain.Unit) (iter.Seq[TimelinePoint], error) {
	readings, err := s.filtered(ctx, user, q)
	if err != nil {
		return nil, err
	}
	sort.SliceStable(readings, func(i, j int) bool {
		return readings[i].OccurredAt.Before(readings[j].OccurredAt)
	})
	return func(yield func(TimelinePoint) bool) {
		for _, r := range readings {
			if !yield(TimelinePoint{At: r.OccurredAt, Value: r.ValueIn(unit)}) {
				return
			}
		}
	}, nil
}

// Overlay strips the calendar date from each reading and groups the
// filtered range into one series per represented local day. Readings at
// the same time of day on different days stay on separate series.
func (s *AnalyticsService) Overlay(ctx context.Context, user *domain.User, q domain.Query, unit domain.Unit) ([]OverlaySeries, error) {
	readings, err := s.filtered(ctx, user, q)
	if err != nil {
		return nil, err
	}

	loc := user.Location()
	byDay := make(map[string][]OverlayPoint)
	for _, r := range readings {
		local := r.OccurredAt.In(loc)
		day := local.Format("2006-01-02")
		secs := local.Hour()*3600 + local.Minute()*60 + local.Second()
		byDay[day] = append(byDay[day], OverlayPoint{Seconds: secs, Value: r.ValueIn(unit)})
	}

	series := make([]OverlaySeries, 0, len(byDay))
	for day, points := range byDay {
		sort.SliceStable(points, func(i, j int) bool { return points[i].Seconds < points[j].Seconds })
		series = append(series, OverlaySeries{Day: day, Points: points})
	}
	sort.Slice(series, func(i, j int) bool { return series[i].Day < series[j].Day })
	return series, nil
}

// DailyAverages groups readings by local calendar day and returns one
// mean per day that has readings. Values are normalised to the display
// unit before averaging; days without readings are omitted.
func (s *AnalyticsService) DailyAverages(ctx context.Context, user *domain.User, q domain.Query, unit domain.Unit) ([]DailyPoint, error) {
	readings, err := s.filtered(ctx, user, q)
	if err != nil {
		return nil, err
	}

	loc := user.Location()
	sums := make(map[string]decimal.Decimal)
	counts := make(map[string]int)
	for _, r := range readings {
		day := r.OccurredAt.In(loc).Format("2006-01-02")
		sums[day] = sums[day].Add(domain.Convert(r.Value, r.Unit, unit))
		counts[day]++
	}

	points := make([]DailyPoint, 0, len(sums))
	for day, sum := range sums {
		n := counts[day]
		mean := domain.DisplayRound(sum.Div(decimal.NewFromInt(int64(n))), unit)
		points = append(points, DailyPoint{Day: day, Mean: mean, Count: n})
	}
	sort.Slice(points, func(i, j int) bool { return points[i].Day < points[j].Day })
	return points, nil
}
