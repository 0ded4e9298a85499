package domain

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestIsActive(t *testing.T) {
	assert.True(t, IsActive(StatusPending))
	assert.True(t, IsActive(StatusConfirmed))
	assert.True(t, IsActive(StatusOngoing))
	assert.False(t, IsActive(StatusCompleted))
	assert.False(t, IsActive(StatusCancelled))
	assert.False(t, IsActive(StatusNoShow))
	assert.False(t, IsActive(Status("BOGUS")))
}

func TestCanTransition(t *testing.T) {
	cases := []struct {
		from, to Status
		want     bool
	}{
		{StatusPending, StatusConfirmed, true},
		{StatusPending, StatusCancelled, true},
		{StatusPending, StatusCompleted, false},
		{StatusPending, StatusOngoing, false},
		{StatusConfirmed, StatusOngoing, true},
		{StatusConfirmed, StatusCompleted, true},
		{StatusConfirmed, StatusCancelled, true},
		{StatusConfirmed, StatusNoShow, true},
		{StatusOngoing, StatusCompleted, true},
		{StatusOngoing, StatusCancelled, true},
		{StatusOngoing, StatusNoShow, false},
		{StatusCancelled, StatusConfirmed, false},
		{StatusCompleted, StatusCancelled, false},
		{StatusNoShow, StatusPending, false},
	}
	for _, tc := range cases {
		assert.Equalf(t, tc.want, CanTransition(tc.from, tc.to), "%s -> %s", tc.from, tc.to)
	}
}

func TestTerminal(t *testing.T) {
	for _, s := range []Status{StatusCompleted, StatusCancelled, StatusNoShow} {
		assert.Truef(t, s.Terminal(), "%s", s)
		assert.Emptyf(t, transitions[s], "terminal state %s must have no outgoing transitions", s)
	}
	for _, s := range []Status{StatusPending, StatusConfirmed, StatusOngoing} {
		assert.Falsef(t, s.Terminal(), "%s", s)
		assert.Truef(t, CanTransition(s, StatusCancelled), "non-terminal %s must allow cancel", s)
	}
}

func TestCourtRulesDefaults(t *testing.T) {
	c := Court{OpenFrom: "09:00", OpenTo: "17:00"}
	r := c.Rules()
	assert.EqualValues(t, 1, r.BookingWindowDays)
	assert.Equal(t, "09:00", r.OpenFrom)
	assert.NotZero(t, r.SlotDuration)

	c = Court{BookingWindowDays: 7, SlotDurationMinutes: 30, BookingRolling: true, OnePerUserPerDay: true}
	r = c.Rules()
	assert.EqualValues(t, 7, r.BookingWindowDays)
	assert.True(t, r.Rolling)
	assert.True(t, r.OnePerUserPerDay)
	assert.Equal(t, "30m0s", r.SlotDuration.String())
}
