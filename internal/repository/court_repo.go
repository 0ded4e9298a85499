package repository

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/you/facility-booking/internal/domain"
)

type CourtRepo struct {
	db *gorm.DB
}

func NewCourtRepo(db *gorm.DB) *CourtRepo {
	return &CourtRepo{db: db}
}

func (r *CourtRepo) Migrate() error {
	return r.db.AutoMigrate(&domain.Court{})
}

func (r *CourtRepo) Create(ctx context.Context, c *domain.Court) error {
	if c.ID == "" {
		c.ID = uuid.NewString()
	}
	return r.db.WithContext(ctx).Create(c).Error
}

func (r *CourtRepo) ByID(ctx context.Context, id string) (*domain.Court, error) {
	var c domain.Court
	if err := r.db.WithContext(ctx).First(&c, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, domain.ErrCourtNotFound
		}
		return nil, err
	}
	return &c, nil
}

func (r *CourtRepo) List(ctx context.Context, page, size int32, venue string) ([]domain.Court, error) {
	if size <= 0 {
		size = 20
	}
	if page < 0 {
		page = 0
	}
	qb := r.db.WithContext(ctx).Model(&domain.Court{})
	if venue != "" {
		qb = qb.Where("venue LIKE ?", "%"+venue+"%")
	}
	var out []domain.Court
	if err := qb.Order("name ASC").Limit(int(size)).Offset(int(page * size)).Find(&out).Error; err != nil {
		return nil, err
	}
	return out, nil
}

// Update writes the mutable columns explicitly so zero values (cleared
// venue, rule flags turned back off) are persisted; a struct Updates would
// silently skip them.
func (r *CourtRepo) Update(ctx context.Context, c *domain.Court) error {
	res := r.db.WithContext(ctx).Model(&domain.Court{}).Where("id = ?", c.ID).
		Select("name", "venue", "open_from", "open_to",
			"slot_duration_minutes", "booking_window_days",
			"booking_rolling", "one_per_user_per_day").
		Updates(c)
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return domain.ErrCourtNotFound
	}
	return nil
}

func (r *CourtRepo) Delete(ctx context.Context, id string) error {
	return r.db.WithContext(ctx).Delete(&domain.Court{}, "id = ?", id).Error
}
