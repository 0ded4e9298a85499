package service

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/you/facility-booking/internal/domain"
	"github.com/you/facility-booking/internal/events"
)

type fakePub struct {
	keys []string
}

func (f *fakePub) PublishJSON(_ context.Context, key string, _ any) error {
	f.keys = append(f.keys, key)
	return nil
}

func newResvSvc(t *testing.T, resv *fakeResv, slots *fakeSlots) (*ReservationSvc, *fakePub) {
	t.Helper()
	pub := &fakePub{}
	return NewReservationSvc(resv, slots, pub, zap.NewNop()), pub
}

func TestCommit(t *testing.T) {
	slot := slotAt(t, "s1", "2024-06-02", "09:00", "10:00")
	resv := newFakeResv()
	svc, pub := newResvSvc(t, resv, newFakeSlots(slot))

	res, err := svc.Commit(context.Background(), "s1", "user-1")
	require.NoError(t, err)
	assert.Equal(t, domain.StatusPending, res.Status)
	assert.Equal(t, "s1", res.TimeslotID)
	assert.Equal(t, courtID, res.CourtID)
	assert.Equal(t, "2024-06-02", res.Date)
	assert.NotEmpty(t, res.ID)
	assert.NotEmpty(t, res.CheckInCode)
	assert.Equal(t, []string{events.RKReservationCreated}, pub.keys)
}

func TestCommitConflict(t *testing.T) {
	slot := slotAt(t, "s1", "2024-06-02", "09:00", "10:00")
	held := domain.Reservation{ID: "r1", TimeslotID: "s1", CourtID: courtID, Date: "2024-06-02", Status: domain.StatusConfirmed}
	svc, pub := newResvSvc(t, newFakeResv(held), newFakeSlots(slot))

	_, err := svc.Commit(context.Background(), "s1", "user-2")
	assert.ErrorIs(t, err, domain.ErrSlotTaken)
	assert.Empty(t, pub.keys) // no event for a failed commit
}

func TestCommitUnknownSlot(t *testing.T) {
	svc, _ := newResvSvc(t, newFakeResv(), newFakeSlots())
	_, err := svc.Commit(context.Background(), "ghost", "user-1")
	assert.ErrorIs(t, err, domain.ErrNotFound)
}

func TestTransitionPublishes(t *testing.T) {
	held := domain.Reservation{ID: "r1", TimeslotID: "s1", CourtID: courtID, Date: "2024-06-02", Status: domain.StatusPending}
	svc, pub := newResvSvc(t, newFakeResv(held), newFakeSlots())

	res, err := svc.Transition(context.Background(), "r1", domain.StatusConfirmed)
	require.NoError(t, err)
	assert.Equal(t, domain.StatusConfirmed, res.Status)
	assert.Equal(t, []string{events.RKReservationConfirmed}, pub.keys)
}

func TestTransitionIllegal(t *testing.T) {
	held := domain.Reservation{ID: "r1", TimeslotID: "s1", CourtID: courtID, Date: "2024-06-02", Status: domain.StatusCancelled}
	svc, pub := newResvSvc(t, newFakeResv(held), newFakeSlots())

	_, err := svc.Transition(context.Background(), "r1", domain.StatusConfirmed)
	assert.ErrorIs(t, err, domain.ErrBadTransition)
	assert.Empty(t, pub.keys)
}

func TestCheckIn(t *testing.T) {
	held := domain.Reservation{
		ID: "r1", TimeslotID: "s1", CourtID: courtID, Date: "2024-06-02",
		Status: domain.StatusConfirmed, CheckInCode: "code-123",
	}
	svc, pub := newResvSvc(t, newFakeResv(held), newFakeSlots())

	_, err := svc.CheckIn(context.Background(), "r1", "wrong")
	assert.ErrorIs(t, err, domain.ErrBadCheckInCode)
	assert.Empty(t, pub.keys)

	res, err := svc.CheckIn(context.Background(), "r1", "code-123")
	require.NoError(t, err)
	assert.Equal(t, domain.StatusOngoing, res.Status)
	assert.Equal(t, []string{events.RKReservationCheckedIn}, pub.keys)
}
