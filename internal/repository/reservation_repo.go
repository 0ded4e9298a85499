package repository

import (
	"context"
	"errors"
	"fmt"

	"gorm.io/gorm"

	"github.com/you/facility-booking/internal/domain"
)

type ReservationRepo struct {
	db *gorm.DB
}

func NewReservationRepo(db *gorm.DB) *ReservationRepo {
	return &ReservationRepo{db: db}
}

// Migrate creates the table plus the partial unique index that guarantees
// at most one active reservation per timeslot. The index, not application
// logic, is what makes concurrent commits safe across engine instances.
func (r *ReservationRepo) Migrate() error {
	if err := r.db.AutoMigrate(&domain.Reservation{}); err != nil {
		return err
	}
	return r.db.Exec(`CREATE UNIQUE INDEX IF NOT EXISTS uq_reservation_active_slot
		ON reservations (timeslot_id)
		WHERE status IN ('PENDING','CONFIRMED','ONGOING')`).Error
}

// CreateActive inserts a new reservation in an active status. The existence
// check is advisory defense-in-depth; the partial unique index decides the
// race, and either failure surfaces as domain.ErrSlotTaken.
func (r *ReservationRepo) CreateActive(ctx context.Context, res *domain.Reservation) error {
	var held domain.Reservation
	err := r.db.WithContext(ctx).
		Where("timeslot_id = ? AND status IN ?", res.TimeslotID, domain.ActiveStatuses()).
		Take(&held).Error
	if err == nil {
		return domain.ErrSlotTaken
	}
	if !errors.Is(err, gorm.ErrRecordNotFound) {
		return err
	}
	if err := r.db.WithContext(ctx).Create(res).Error; err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return domain.ErrSlotTaken
		}
		return err
	}
	return nil
}

func (r *ReservationRepo) ByID(ctx context.Context, id string) (*domain.Reservation, error) {
	var res domain.Reservation
	if err := r.db.WithContext(ctx).First(&res, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, domain.ErrNotFound
		}
		return nil, err
	}
	return &res, nil
}

// UpdateStatus moves a reservation through the lifecycle, re-validating the
// transition inside the transaction so two racing updates cannot both apply.
func (r *ReservationRepo) UpdateStatus(ctx context.Context, id string, to domain.Status) (*domain.Reservation, error) {
	var res domain.Reservation
	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.First(&res, "id = ?", id).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return domain.ErrNotFound
			}
			return err
		}
		if !domain.CanTransition(res.Status, to) {
			return fmt.Errorf("%w: %s -> %s", domain.ErrBadTransition, res.Status, to)
		}
		res.Status = to
		return tx.Save(&res).Error
	})
	if err != nil {
		return nil, err
	}
	return &res, nil
}

// ActiveBySlot maps timeslot IDs to their active reservation for one
// (court, date), for the resolver's already-booked annotation.
func (r *ReservationRepo) ActiveBySlot(ctx context.Context, courtID, date string) (map[string]domain.Reservation, error) {
	var rows []domain.Reservation
	if err := r.db.WithContext(ctx).
		Where("court_id = ? AND date = ? AND status IN ?", courtID, date, domain.ActiveStatuses()).
		Find(&rows).Error; err != nil {
		return nil, err
	}
	out := make(map[string]domain.Reservation, len(rows))
	for _, row := range rows {
		out[row.TimeslotID] = row
	}
	return out, nil
}

// ActiveForUserOnDate backs the one-booking-per-user-per-day rule.
func (r *ReservationRepo) ActiveForUserOnDate(ctx context.Context, courtID, userID, date string) ([]domain.Reservation, error) {
	var out []domain.Reservation
	err := r.db.WithContext(ctx).
		Where("court_id = ? AND user_id = ? AND date = ? AND status IN ?", courtID, userID, date, domain.ActiveStatuses()).
		Find(&out).Error
	if err != nil {
		return nil, err
	}
	return out, nil
}

func (r *ReservationRepo) List(ctx context.Context, page, size int32, userID, courtID, date string) ([]domain.Reservation, int64, error) {
	if size <= 0 {
		size = 20
	}
	if page < 0 {
		page = 0
	}
	qb := r.db.WithContext(ctx).Model(&domain.Reservation{})
	if userID != "" {
		qb = qb.Where("user_id = ?", userID)
	}
	if courtID != "" {
		qb = qb.Where("court_id = ?", courtID)
	}
	if date != "" {
		qb = qb.Where("date = ?", date)
	}
	var total int64
	if err := qb.Count(&total).Error; err != nil {
		return nil, 0, err
	}
	var out []domain.Reservation
	if err := qb.Order("created_at DESC").Limit(int(size)).Offset(int(page * size)).Find(&out).Error; err != nil {
		return nil, 0, err
	}
	return out, total, nil
}
