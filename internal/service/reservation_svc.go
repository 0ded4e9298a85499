package service

import (
	"context"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/you/facility-booking/internal/domain"
	"github.com/you/facility-booking/internal/events"
)

// ReservationSvc commits reservations and applies lifecycle transitions.
// Commit is deliberately a bare insert: availability was already resolved by
// the caller and may be stale, so the store's uniqueness guard decides.
type ReservationSvc struct {
	resv  ReservationStore
	slots TimeslotStore
	pub   EventPublisher
	log   *zap.Logger
}

func NewReservationSvc(resv ReservationStore, slots TimeslotStore, pub EventPublisher, log *zap.Logger) *ReservationSvc {
	return &ReservationSvc{resv: resv, slots: slots, pub: pub, log: log}
}

// Commit books the timeslot for the user. On domain.ErrSlotTaken the caller
// re-resolves and asks the user to pick again; there is no retry here.
func (s *ReservationSvc) Commit(ctx context.Context, timeslotID, userID string) (*domain.Reservation, error) {
	slot, err := s.slots.ByID(ctx, timeslotID)
	if err != nil {
		return nil, err
	}
	res := &domain.Reservation{
		ID:          uuid.NewString(),
		TimeslotID:  slot.ID,
		CourtID:     slot.CourtID,
		UserID:      userID,
		Date:        slot.Date,
		Status:      domain.StatusPending,
		CheckInCode: uuid.NewString(),
	}
	if err := s.resv.CreateActive(ctx, res); err != nil {
		return nil, err
	}

	_ = s.pub.PublishJSON(ctx, events.RKReservationCreated, events.ReservationCreated{
		ReservationID: res.ID,
		UserID:        res.UserID,
		CourtID:       res.CourtID,
		Start:         slot.StartTime.Unix(),
		End:           slot.EndTime.Unix(),
	})
	s.log.Info("reservation committed",
		zap.String("reservation_id", res.ID),
		zap.String("timeslot_id", slot.ID),
		zap.String("court_id", res.CourtID))
	return res, nil
}

// Transition applies one lifecycle step. Legality is validated inside the
// store transaction against the current row, not the caller's stale view.
func (s *ReservationSvc) Transition(ctx context.Context, id string, to domain.Status) (*domain.Reservation, error) {
	res, err := s.resv.UpdateStatus(ctx, id, to)
	if err != nil {
		return nil, err
	}
	_ = s.pub.PublishJSON(ctx, routingKey(to), events.ReservationChanged{
		ReservationID: res.ID,
		Status:        string(res.Status),
	})
	return res, nil
}

// CheckIn moves a confirmed reservation to ONGOING after verifying the
// opaque code handed out at commit time.
func (s *ReservationSvc) CheckIn(ctx context.Context, id, code string) (*domain.Reservation, error) {
	res, err := s.resv.ByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if res.CheckInCode != code {
		return nil, domain.ErrBadCheckInCode
	}
	return s.Transition(ctx, id, domain.StatusOngoing)
}

func (s *ReservationSvc) Get(ctx context.Context, id string) (*domain.Reservation, error) {
	return s.resv.ByID(ctx, id)
}

func (s *ReservationSvc) List(ctx context.Context, page, size int32, userID, courtID, date string) ([]domain.Reservation, int64, error) {
	return s.resv.List(ctx, page, size, userID, courtID, date)
}

func routingKey(to domain.Status) string {
	switch to {
	case domain.StatusConfirmed:
		return events.RKReservationConfirmed
	case domain.StatusOngoing:
		return events.RKReservationCheckedIn
	case domain.StatusCompleted:
		return events.RKReservationCompleted
	case domain.StatusCancelled:
		return events.RKReservationCancelled
	case domain.StatusNoShow:
		return events.RKReservationNoShow
	}
	return "reservation.updated"
}
