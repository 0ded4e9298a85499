package repository

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/you/facility-booking/internal/domain"
)

type TimeslotRepo struct {
	db *gorm.DB
}

func NewTimeslotRepo(db *gorm.DB) *TimeslotRepo {
	return &TimeslotRepo{db: db}
}

func (r *TimeslotRepo) Migrate() error {
	return r.db.AutoMigrate(&domain.Timeslot{})
}

func (r *TimeslotRepo) ByID(ctx context.Context, id string) (*domain.Timeslot, error) {
	var s domain.Timeslot
	if err := r.db.WithContext(ctx).First(&s, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, domain.ErrNotFound
		}
		return nil, err
	}
	return &s, nil
}

// ForDay returns the materialized grid for (court, date) ordered by start.
func (r *TimeslotRepo) ForDay(ctx context.Context, courtID, date string) ([]domain.Timeslot, error) {
	var out []domain.Timeslot
	err := r.db.WithContext(ctx).
		Where("court_id = ? AND date = ?", courtID, date).
		Order("start_time ASC").
		Find(&out).Error
	if err != nil {
		return nil, err
	}
	return out, nil
}

// SeedGrid inserts a pre-computed grid, skipping rows another writer already
// materialized. Safe to call repeatedly for the same day.
func (r *TimeslotRepo) SeedGrid(ctx context.Context, slots []domain.Timeslot) error {
	if len(slots) == 0 {
		return nil
	}
	for i := range slots {
		if slots[i].ID == "" {
			slots[i].ID = uuid.NewString()
		}
	}
	return r.db.WithContext(ctx).
		Clauses(clause.OnConflict{DoNothing: true}).
		Create(&slots).Error
}

// FindOrCreate resolves the unique (court, date, start, end) row, inserting
// it on first use. Losing a concurrent insert is treated as "found": the
// unique index on the tuple is the source of truth, so a duplicate-key
// failure just means the winner's row is the one we want.
func (r *TimeslotRepo) FindOrCreate(ctx context.Context, courtID, date string, start, end time.Time) (*domain.Timeslot, error) {
	lookup := func() (*domain.Timeslot, error) {
		var s domain.Timeslot
		err := r.db.WithContext(ctx).
			Where("court_id = ? AND date = ? AND start_time = ? AND end_time = ?", courtID, date, start, end).
			First(&s).Error
		if err != nil {
			return nil, err
		}
		return &s, nil
	}

	s, err := lookup()
	if err == nil {
		return s, nil
	}
	if !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, err
	}

	fresh := &domain.Timeslot{
		ID:        uuid.NewString(),
		CourtID:   courtID,
		Date:      date,
		StartTime: start,
		EndTime:   end,
	}
	err = r.db.WithContext(ctx).Create(fresh).Error
	if err == nil {
		return fresh, nil
	}
	if errors.Is(err, gorm.ErrDuplicatedKey) {
		return lookup()
	}
	return nil, err
}
