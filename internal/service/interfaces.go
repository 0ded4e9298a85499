package service

import (
	"context"
	"time"

	"github.com/you/facility-booking/internal/domain"
)

type CourtStore interface {
	Create(ctx context.Context, c *domain.Court) error
	ByID(ctx context.Context, id string) (*domain.Court, error)
	List(ctx context.Context, page, size int32, venue string) ([]domain.Court, error)
	Update(ctx context.Context, c *domain.Court) error
	Delete(ctx context.Context, id string) error
}

type TimeslotStore interface {
	ByID(ctx context.Context, id string) (*domain.Timeslot, error)
	ForDay(ctx context.Context, courtID, date string) ([]domain.Timeslot, error)
	SeedGrid(ctx context.Context, slots []domain.Timeslot) error
	FindOrCreate(ctx context.Context, courtID, date string, start, end time.Time) (*domain.Timeslot, error)
}

type BlockStore interface {
	Sheet(ctx context.Context, courtID, date string) (*domain.DaySheet, error)
	CreateOneOff(ctx context.Context, b *domain.OneOffBlock) error
	ListOneOff(ctx context.Context, courtID string) ([]domain.OneOffBlock, error)
	DeleteOneOff(ctx context.Context, id string) error
	CreateRecurring(ctx context.Context, b *domain.RecurringBlock) error
	ListRecurring(ctx context.Context, courtID string) ([]domain.RecurringBlock, error)
	SetRecurringActive(ctx context.Context, id string, active bool) error
}

type ReservationStore interface {
	CreateActive(ctx context.Context, res *domain.Reservation) error
	ByID(ctx context.Context, id string) (*domain.Reservation, error)
	UpdateStatus(ctx context.Context, id string, to domain.Status) (*domain.Reservation, error)
	ActiveBySlot(ctx context.Context, courtID, date string) (map[string]domain.Reservation, error)
	ActiveForUserOnDate(ctx context.Context, courtID, userID, date string) ([]domain.Reservation, error)
	List(ctx context.Context, page, size int32, userID, courtID, date string) ([]domain.Reservation, int64, error)
}

type EventPublisher interface {
	PublishJSON(ctx context.Context, key string, v any) error
}
