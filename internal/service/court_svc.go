package service

import (
	"context"
	"fmt"

	"github.com/you/facility-booking/internal/domain"
)

// CourtSvc is the thin CRUD layer for courts and their block rules. Court
// metadata stays deliberately small here; the interesting consumers are the
// availability pipeline's RuleSet and DaySheet.
type CourtSvc struct {
	courts CourtStore
	blocks BlockStore
}

func NewCourtSvc(courts CourtStore, blocks BlockStore) *CourtSvc {
	return &CourtSvc{courts: courts, blocks: blocks}
}

func (s *CourtSvc) Create(ctx context.Context, in domain.Court) (*domain.Court, error) {
	if err := validateClocks(in.OpenFrom, in.OpenTo); err != nil {
		return nil, err
	}
	if err := s.courts.Create(ctx, &in); err != nil {
		return nil, err
	}
	return &in, nil
}

func (s *CourtSvc) Get(ctx context.Context, id string) (*domain.Court, error) {
	return s.courts.ByID(ctx, id)
}

func (s *CourtSvc) List(ctx context.Context, page, size int32, venue string) ([]domain.Court, error) {
	return s.courts.List(ctx, page, size, venue)
}

func (s *CourtSvc) Update(ctx context.Context, in domain.Court) (*domain.Court, error) {
	if err := validateClocks(in.OpenFrom, in.OpenTo); err != nil {
		return nil, err
	}
	if err := s.courts.Update(ctx, &in); err != nil {
		return nil, err
	}
	return &in, nil
}

func (s *CourtSvc) Delete(ctx context.Context, id string) error {
	return s.courts.Delete(ctx, id)
}

// AddOneOffBlock records a single-date closure. startClock/endClock may both
// be empty, which blocks the entire day.
func (s *CourtSvc) AddOneOffBlock(ctx context.Context, courtID, date, startClock, endClock, reason string) (*domain.OneOffBlock, error) {
	day, err := domain.ParseDate(date)
	if err != nil {
		return nil, err
	}
	if _, err := s.courts.ByID(ctx, courtID); err != nil {
		return nil, err
	}
	b := &domain.OneOffBlock{CourtID: courtID, Date: date, Reason: reason}
	if startClock != "" || endClock != "" {
		start, err := domain.AtClock(day, startClock)
		if err != nil {
			return nil, err
		}
		end, err := domain.AtClock(day, endClock)
		if err != nil {
			return nil, err
		}
		if !(domain.TimeRange{Start: start, End: end}).Valid() {
			return nil, domain.ErrInvalidRange
		}
		b.StartTime, b.EndTime = &start, &end
	}
	if err := s.blocks.CreateOneOff(ctx, b); err != nil {
		return nil, err
	}
	return b, nil
}

func (s *CourtSvc) ListOneOffBlocks(ctx context.Context, courtID string) ([]domain.OneOffBlock, error) {
	return s.blocks.ListOneOff(ctx, courtID)
}

func (s *CourtSvc) RemoveOneOffBlock(ctx context.Context, id string) error {
	return s.blocks.DeleteOneOff(ctx, id)
}

// AddRecurringBlock records a weekly closure pattern, created active.
func (s *CourtSvc) AddRecurringBlock(ctx context.Context, courtID string, dayOfWeek int32, startClock, endClock string) (*domain.RecurringBlock, error) {
	if dayOfWeek < 0 || dayOfWeek > 6 {
		return nil, fmt.Errorf("%w: day of week %d", domain.ErrInvalidRange, dayOfWeek)
	}
	if err := validateClocks(startClock, endClock); err != nil {
		return nil, err
	}
	if _, err := s.courts.ByID(ctx, courtID); err != nil {
		return nil, err
	}
	b := &domain.RecurringBlock{
		CourtID:    courtID,
		DayOfWeek:  dayOfWeek,
		StartClock: startClock,
		EndClock:   endClock,
		Active:     true,
	}
	if err := s.blocks.CreateRecurring(ctx, b); err != nil {
		return nil, err
	}
	return b, nil
}

func (s *CourtSvc) ListRecurringBlocks(ctx context.Context, courtID string) ([]domain.RecurringBlock, error) {
	return s.blocks.ListRecurring(ctx, courtID)
}

func (s *CourtSvc) SetRecurringBlockActive(ctx context.Context, id string, active bool) error {
	return s.blocks.SetRecurringActive(ctx, id, active)
}

func validateClocks(from, to string) error {
	ref, err := domain.ParseDate("2000-01-01")
	if err != nil {
		return err
	}
	start, err := domain.AtClock(ref, from)
	if err != nil {
		return err
	}
	end, err := domain.AtClock(ref, to)
	if err != nil {
		return err
	}
	if !(domain.TimeRange{Start: start, End: end}).Valid() {
		return domain.ErrInvalidRange
	}
	return nil
}
