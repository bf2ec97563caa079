package services

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"glucolog/internal/apperrors"
	"glucolog/internal/domain"
)

// DosingService manages the correction scale and insulin schedule and
// resolves dose suggestions against them. Suggestions are reference
// material for the operator; nothing here writes a dose record.
type DosingService struct {
	bands    domain.CorrectionBandRepository
	schedule domain.ScheduleRepository
	types    domain.InsulinTypeRepository
}

// NewDosingService creates a new dosing service
func NewDosingService(bands domain.CorrectionBandRepository, schedule domain.ScheduleRepository, types domain.InsulinTypeRepository) *DosingService {
	return &DosingService{bands: bands, schedule: schedule, types: types}
}

// Scale loads and validates the user's correction scale
func (s *DosingService) Scale(ctx context.Context, user *domain.User) (*domain.CorrectionScale, error) {
	bands, err := s.bands.ListBands(ctx, user.ID)
	if err != nil {
		return nil, err
	}
	unit := domain.UnitMmol
	if len(bands) > 0 {
		unit = bands[0].Unit
	}
	scale, err := domain.NewCorrectionScale(unit, bands)
	if err != nil {
		return nil, fmt.Errorf("stored correction scale is inconsistent: %w", err)
	}
	return scale, nil
}

// SuggestCorrection resolves a glucose value against the user's
// correction scale. Returns ErrNoScaleConfigured when no bands exist.
func (s *DosingService) SuggestCorrection(ctx context.Context, user *domain.User, value decimal.Decimal, unit domain.Unit) (decimal.Decimal, error) {
	scale, err := s.Scale(ctx, user)
	if err != nil {
		return decimal.Zero, err
	}
	return scale.Resolve(value, unit)
}

// SaveBand validates that the band set including the new or changed band
// still forms a contiguous scale before persisting it. The check runs
// against the stored bands so an inconsistent table can never be saved.
func (s *DosingService) SaveBand(ctx context.Context, user *domain.User, band *domain.CorrectionBand) error {
	if band.ID == uuid.Nil {
		band.ID = uuid.New()
	}
	band.UserID = user.ID

	existing, err := s.bands.ListBands(ctx, user.ID)
	if err != nil {
		return err
	}
	merged := make([]domain.CorrectionBand, 0, len(existing)+1)
	for _, b := range existing {
		if b.ID != band.ID {
			merged = append(merged, b)
		}
	}
	merged = append(merged, *band)

	unit := band.Unit
	if len(existing) > 0 {
		unit = existing[0].Unit
	}
	if band.Unit != unit {
		return apperrors.NewValidationError("band unit must match the scale's unit")
	}
	if _, err := domain.NewCorrectionScale(unit, merged); err != nil {
		return apperrors.NewValidationError(err.Error())
	}

	return s.bands.Save(ctx, band)
}

// DeleteBand removes a band, requiring the remaining set to stay
// contiguous
func (s *DosingService) DeleteBand(ctx context.Context, user *domain.User, id uuid.UUID) error {
	existing, err := s.bands.ListBands(ctx, user.ID)
	if err != nil {
		return err
	}
	remaining := make([]domain.CorrectionBand, 0, len(existing))
	var unit domain.Unit = domain.UnitMmol
	for _, b := range existing {
		if b.ID != id {
			remaining = append(remaining, b)
			unit = b.Unit
		}
	}
	if len(remaining) > 0 {
		if _, err := domain.NewCorrectionScale(unit, remaining); err != nil {
			return apperrors.NewValidationError(fmt.Sprintf("removing this band would leave a gap: %v", err))
		}
	}
	return s.bands.Delete(ctx, user.ID, id)
}

// AddScheduleEntry validates and stores a scheduled dose time, enforcing
// one entry per time of day
func (s *DosingService) AddScheduleEntry(ctx context.Context, user *domain.User, entry *domain.ScheduleEntry) error {
	entry.ID = uuid.New()
	entry.UserID = user.ID
	entry.LastModifiedBy = user.ID
	if err := entry.Validate(); err != nil {
		return fmt.Errorf("invalid schedule entry: %w", err)
	}
	if _, err := s.types.GetByID(ctx, user.ID, entry.InsulinTypeID); err != nil {
		return fmt.Errorf("insulin type lookup failed: %w", err)
	}

	existing, err := s.schedule.List(ctx, user.ID)
	if err != nil {
		return err
	}
	for _, e := range existing {
		if e.TimeOfDay == entry.TimeOfDay {
			return apperrors.NewValidationError(fmt.Sprintf("an entry already exists at %s", entry.TimeOfDay))
		}
	}
	return s.schedule.Create(ctx, entry)
}

// UpdateScheduleEntry validates and stores changes to a schedule entry
func (s *DosingService) UpdateScheduleEntry(ctx context.Context, user *domain.User, entry *domain.ScheduleEntry) error {
	entry.UserID = user.ID
	entry.LastModifiedBy = user.ID
	if err := entry.Validate(); err != nil {
		return fmt.Errorf("invalid schedule entry: %w", err)
	}

	existing, err := s.schedule.List(ctx, user.ID)
	if err != nil {
		return err
	}
	for _, e := range existing {
		if e.ID != entry.ID && e.TimeOfDay == entry.TimeOfDay {
			return apperrors.NewValidationError(fmt.Sprintf("an entry already exists at %s", entry.TimeOfDay))
		}
	}
	return s.schedule.Update(ctx, entry)
}

// DeleteScheduleEntry removes a schedule entry
func (s *DosingService) DeleteScheduleEntry(ctx context.Context, user *domain.User, id uuid.UUID) error {
	return s.schedule.Delete(ctx, user.ID, id)
}

// Schedule returns the user's scheduled doses sorted by time of day
func (s *DosingService) Schedule(ctx context.Context, user *domain.User) ([]domain.ScheduleEntry, error) {
	entries, err := s.schedule.List(ctx, user.ID)
	if err != nil {
		return nil, err
	}
	domain.SortSchedule(entries)
	return entries, nil
}

// NextScheduled returns the next scheduled dose at or after the given
// instant in the user's timezone. Returns ErrNoScheduleConfigured when
// the schedule is empty.
func (s *DosingService) NextScheduled(ctx context.Context, user *domain.User, at time.Time) (*domain.ScheduleEntry, error) {
	entries, err := s.schedule.List(ctx, user.ID)
	if err != nil {
		return nil, err
	}
	next := domain.NextScheduled(entries, at.In(user.Location()).Format("15:04"))
	if next == nil {
		return nil, apperrors.ErrNoScheduleConfigured
	}
	return next, nil
}
