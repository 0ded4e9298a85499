package repository

import (
	"context"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/you/facility-booking/internal/domain"
)

type BlockRepo struct {
	db *gorm.DB
}

func NewBlockRepo(db *gorm.DB) *BlockRepo {
	return &BlockRepo{db: db}
}

func (r *BlockRepo) Migrate() error {
	return r.db.AutoMigrate(&domain.OneOffBlock{}, &domain.RecurringBlock{})
}

// Sheet loads everything the resolver needs for one (court, date): the
// date's one-off blocks plus the court's full weekly pattern. Weekday and
// active filtering happen in the resolver, not here.
func (r *BlockRepo) Sheet(ctx context.Context, courtID, date string) (*domain.DaySheet, error) {
	var sheet domain.DaySheet
	if err := r.db.WithContext(ctx).
		Where("court_id = ? AND date = ?", courtID, date).
		Find(&sheet.OneOff).Error; err != nil {
		return nil, err
	}
	if err := r.db.WithContext(ctx).
		Where("court_id = ?", courtID).
		Find(&sheet.Weekly).Error; err != nil {
		return nil, err
	}
	return &sheet, nil
}

func (r *BlockRepo) CreateOneOff(ctx context.Context, b *domain.OneOffBlock) error {
	if b.ID == "" {
		b.ID = uuid.NewString()
	}
	return r.db.WithContext(ctx).Create(b).Error
}

func (r *BlockRepo) ListOneOff(ctx context.Context, courtID string) ([]domain.OneOffBlock, error) {
	var out []domain.OneOffBlock
	err := r.db.WithContext(ctx).
		Where("court_id = ?", courtID).
		Order("date ASC").
		Find(&out).Error
	return out, err
}

func (r *BlockRepo) DeleteOneOff(ctx context.Context, id string) error {
	return r.db.WithContext(ctx).Delete(&domain.OneOffBlock{}, "id = ?", id).Error
}

func (r *BlockRepo) CreateRecurring(ctx context.Context, b *domain.RecurringBlock) error {
	if b.ID == "" {
		b.ID = uuid.NewString()
	}
	return r.db.WithContext(ctx).Create(b).Error
}

func (r *BlockRepo) ListRecurring(ctx context.Context, courtID string) ([]domain.RecurringBlock, error) {
	var out []domain.RecurringBlock
	err := r.db.WithContext(ctx).
		Where("court_id = ?", courtID).
		Order("day_of_week ASC, start_clock ASC").
		Find(&out).Error
	return out, err
}

// SetRecurringActive toggles a weekly block without deleting it, so a
// disabled pattern can be turned back on later.
func (r *BlockRepo) SetRecurringActive(ctx context.Context, id string, active bool) error {
	res := r.db.WithContext(ctx).
		Model(&domain.RecurringBlock{}).
		Where("id = ?", id).
		Update("active", active)
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return domain.ErrNotFound
	}
	return nil
}
