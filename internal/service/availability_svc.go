package service

import (
	"context"
	"errors"
	"sort"
	"time"

	"go.uber.org/zap"

	"github.com/you/facility-booking/internal/domain"
)

const reasonAlreadyBooked = "already booked"
const reasonWeeklyClosure = "weekly closure"
const reasonBlocked = "blocked"

// AvailabilitySvc materializes a day's timeslot grid and narrows it to what
// is actually bookable. Two requests may both see a slot as bookable here;
// the reservation commit is the authority on who gets it.
type AvailabilitySvc struct {
	courts CourtStore
	slots  TimeslotStore
	blocks BlockStore
	resv   ReservationStore
	log    *zap.Logger
}

func NewAvailabilitySvc(courts CourtStore, slots TimeslotStore, blocks BlockStore, resv ReservationStore, log *zap.Logger) *AvailabilitySvc {
	return &AvailabilitySvc{courts: courts, slots: slots, blocks: blocks, resv: resv, log: log}
}

// ResolveOpts carries the caller-specific knobs of a resolve.
type ResolveOpts struct {
	// ForUserID enables the one-per-user-per-day rule for that user.
	ForUserID string
	// ExcludeResvID names a reservation being edited; its own slot stays
	// offered and its holdings don't count against the user.
	ExcludeResvID string
}

// MaterializeDay returns the day's candidate grid ordered by start time,
// seeded from the court's business hours. Seeding is insert-or-ignore on the
// slot tuple, so it runs on every call: rows created out of band (free-form
// picks, concurrent first references) merge with the grid instead of
// suppressing it.
func (s *AvailabilitySvc) MaterializeDay(ctx context.Context, courtID, date string) ([]domain.Timeslot, error) {
	day, err := domain.ParseDate(date)
	if err != nil {
		return nil, err
	}
	court, err := s.courts.ByID(ctx, courtID)
	if err != nil {
		return nil, err
	}
	grid, err := buildGrid(court, date, day)
	if err != nil {
		return nil, err
	}
	if len(grid) > 0 {
		if err := s.slots.SeedGrid(ctx, grid); err != nil {
			return nil, err
		}
	}
	return s.slots.ForDay(ctx, courtID, date)
}

func buildGrid(c *domain.Court, date string, day time.Time) ([]domain.Timeslot, error) {
	rules := c.Rules()
	open, err := domain.AtClock(day, rules.OpenFrom)
	if err != nil {
		return nil, err
	}
	until, err := domain.AtClock(day, rules.OpenTo)
	if err != nil {
		return nil, err
	}
	var out []domain.Timeslot
	for t := open; !t.Add(rules.SlotDuration).After(until); t = t.Add(rules.SlotDuration) {
		out = append(out, domain.Timeslot{
			CourtID:   c.ID,
			Date:      date,
			StartTime: t,
			EndTime:   t.Add(rules.SlotDuration),
		})
	}
	return out, nil
}

// EnsureSlot backs the free-form flow where the user picks an arbitrary
// start/end instead of a grid slot. Find-or-create on the unique tuple.
func (s *AvailabilitySvc) EnsureSlot(ctx context.Context, courtID, date, startClock, endClock string) (*domain.Timeslot, error) {
	day, err := domain.ParseDate(date)
	if err != nil {
		return nil, err
	}
	if _, err := s.courts.ByID(ctx, courtID); err != nil {
		return nil, err
	}
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
	return s.slots.FindOrCreate(ctx, courtID, date, start, end)
}

// Day is the one-call form used by handlers: materialize, load the block
// sheet, resolve.
func (s *AvailabilitySvc) Day(ctx context.Context, courtID, date string, asOf time.Time, opts ResolveOpts) ([]domain.AvailableSlot, error) {
	court, err := s.courts.ByID(ctx, courtID)
	if err != nil {
		return nil, err
	}
	candidates, err := s.MaterializeDay(ctx, courtID, date)
	if err != nil {
		return nil, err
	}
	sheet, err := s.blocks.Sheet(ctx, courtID, date)
	if err != nil {
		return nil, err
	}
	return s.Resolve(ctx, courtID, date, candidates, court.Rules(), sheet, asOf, opts)
}

// Resolve runs the filtering pipeline over a candidate grid. Stage order is
// fixed: date window, rolling window, per-user-per-day, existing
// reservations, one-off blocks, weekly blocks, then re-offering the edited
// reservation's own slot. Any store failure aborts the resolve so the day
// reads as unavailable rather than wide open.
func (s *AvailabilitySvc) Resolve(ctx context.Context, courtID, date string, candidates []domain.Timeslot, rules domain.RuleSet, sheet *domain.DaySheet, asOf time.Time, opts ResolveOpts) ([]domain.AvailableSlot, error) {
	day, err := domain.ParseDate(date)
	if err != nil {
		return nil, err
	}

	// 1. Date window: the whole day is out of range, no per-slot annotation.
	today := domain.DateOf(asOf)
	lastDay := today.AddDate(0, 0, int(rules.BookingWindowDays)-1)
	if day.Before(today) || day.After(lastDay) {
		return []domain.AvailableSlot{}, nil
	}

	// 2. Rolling window: only starts strictly within the next 24h survive.
	keep := candidates
	if rules.Rolling {
		keep = make([]domain.Timeslot, 0, len(candidates))
		horizon := asOf.Add(24 * time.Hour)
		for _, slot := range candidates {
			if slot.StartTime.After(asOf) && slot.StartTime.Before(horizon) {
				keep = append(keep, slot)
			}
		}
	}

	// 3. One booking per user per day: a hard stop for the whole day unless
	// the only holding is the reservation being edited.
	if rules.OnePerUserPerDay && opts.ForUserID != "" {
		held, err := s.resv.ActiveForUserOnDate(ctx, courtID, opts.ForUserID, date)
		if err != nil {
			return nil, err
		}
		for _, r := range held {
			if r.ID != opts.ExcludeResvID {
				return []domain.AvailableSlot{}, nil
			}
		}
	}

	// 4. Existing reservations: annotate, don't hide. Editing keeps the
	// reservation's own slot selectable.
	taken, err := s.resv.ActiveBySlot(ctx, courtID, date)
	if err != nil {
		return nil, err
	}

	out := make([]domain.AvailableSlot, 0, len(keep))
	for _, slot := range keep {
		av := domain.AvailableSlot{Slot: slot, Bookable: true}
		if held, ok := taken[slot.ID]; ok && held.ID != opts.ExcludeResvID {
			av.Bookable, av.Reason = false, reasonAlreadyBooked
		}

		// 5. One-off blocks for this date.
		if av.Bookable {
			for _, b := range sheet.OneOff {
				if b.Range(day).Overlaps(slot.Range()) {
					reason := b.Reason
					if reason == "" {
						reason = reasonBlocked
					}
					av.Bookable, av.Reason = false, reason
					break
				}
			}
		}

		// 6. Weekly blocks whose day-of-week matches.
		if av.Bookable {
			for _, b := range sheet.Weekly {
				if !b.Active || time.Weekday(b.DayOfWeek) != day.Weekday() {
					continue
				}
				br, err := b.Range(day)
				if err != nil {
					return nil, err
				}
				if br.Overlaps(slot.Range()) {
					av.Bookable, av.Reason = false, reasonWeeklyClosure
					break
				}
			}
		}

		out = append(out, av)
	}

	// 7. When editing, the reservation's current slot must always be on
	// offer, even if it never made it into the grid.
	if opts.ExcludeResvID != "" {
		out, err = s.reofferOwnSlot(ctx, out, courtID, date, opts.ExcludeResvID)
		if err != nil {
			return nil, err
		}
	}
	return out, nil
}

func (s *AvailabilitySvc) reofferOwnSlot(ctx context.Context, out []domain.AvailableSlot, courtID, date, resvID string) ([]domain.AvailableSlot, error) {
	own, err := s.resv.ByID(ctx, resvID)
	if errors.Is(err, domain.ErrNotFound) {
		return out, nil
	}
	if err != nil {
		return nil, err
	}
	if own.CourtID != courtID || own.Date != date {
		return out, nil
	}
	for i := range out {
		if out[i].Slot.ID == own.TimeslotID {
			out[i].Bookable, out[i].Reason = true, ""
			return out, nil
		}
	}
	slot, err := s.slots.ByID(ctx, own.TimeslotID)
	if err != nil {
		return nil, err
	}
	out = append(out, domain.AvailableSlot{Slot: *slot, Bookable: true})
	sort.Slice(out, func(i, j int) bool {
		return out[i].Slot.StartTime.Before(out[j].Slot.StartTime)
	})
	return out, nil
}
