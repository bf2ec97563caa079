package services

import (
	"context"
	"errors"
	"time"

	"github.com/shopspring/decimal"

	"glucolog/internal/apperrors"
	"glucolog/internal/domain"
)

const recentEntryCount = 10

// DoseSuggestion is the correction resolved for the user's latest
// reading, shown alongside the schedule for operator judgement
type DoseSuggestion struct {
	ReadingValue    decimal.Decimal `json:"readingValue"`
	ReadingUnit     domain.Unit     `json:"readingUnit"`
	CorrectionUnits decimal.Decimal `json:"correctionUnits"`
}

// Dashboard bundles the landing-page reference data
type Dashboard struct {
	Recent     []ActivityEntry        `json:"recent"`
	Schedule   []domain.ScheduleEntry `json:"schedule"`
	Scale      []domain.CorrectionBand `json:"scale"`
	Suggestion *DoseSuggestion        `json:"suggestion,omitempty"`
	Guidance   string                 `json:"guidance,omitempty"`
}

// DashboardService assembles the dashboard view
type DashboardService struct {
	activity *ActivityService
	dosing   *DosingService
	readings domain.ReadingRepository
}

// NewDashboardService creates a new dashboard service
func NewDashboardService(activity *ActivityService, dosing *DosingService, readings domain.ReadingRepository) *DashboardService {
	return &DashboardService{activity: activity, dosing: dosing, readings: readings}
}

// Get builds the dashboard. Missing configuration (no scale, no
// schedule) surfaces as guidance text on the result, never as an error.
func (s *DashboardService) Get(ctx context.Context, user *domain.User) (*Dashboard, error) {
	recent, err := s.activity.Recent(ctx, user, recentEntryCount)
	if err != nil {
		return nil, err
	}
	schedule, err := s.dosing.Schedule(ctx, user)
	if err != nil {
		return nil, err
	}
	scale, err := s.dosing.Scale(ctx, user)
	if err != nil {
		return nil, err
	}

	d := &Dashboard{Recent: recent, Schedule: schedule, Scale: scale.Bands}
	if len(schedule) == 0 {
		d.Guidance = "Add your insulin schedule to see scheduled doses here."
	}

	latest, err := s.latestReading(ctx, user)
	if err != nil {
		return nil, err
	}
	if latest == nil {
		return d, nil
	}
	units, err := scale.Resolve(latest.Value, latest.Unit)
	if err != nil {
		if errors.Is(err, apperrors.ErrNoScaleConfigured) {
			d.Guidance = "Set up a correction scale to get dose suggestions."
			return d, nil
		}
		return nil, err
	}
	d.Suggestion = &DoseSuggestion{
		ReadingValue:    latest.Value,
		ReadingUnit:     latest.Unit,
		CorrectionUnits: units,
	}
	return d, nil
}

// latestReading finds the user's most recent glucose reading, if any
func (s *DashboardService) latestReading(ctx context.Context, user *domain.User) (*domain.Reading, error) {
	readings, err := s.readings.ListRange(ctx, user.ID, time.Time{}, time.Time{})
	if err != nil {
		return nil, err
	}
	if len(readings) == 0 {
		return nil, nil
	}
	return &readings[0], nil
}
