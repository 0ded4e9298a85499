package events

import (
	"encoding/json"
	"fmt"
)

// Routing keys published on the reservation exchange.
const (
	RKReservationCreated   = "reservation.created"
	RKReservationConfirmed = "reservation.confirmed"
	RKReservationCheckedIn = "reservation.checked_in"
	RKReservationCompleted = "reservation.completed"
	RKReservationCancelled = "reservation.cancelled"
	RKReservationNoShow    = "reservation.no_show"
)

// ReservationCreated carries enough detail for a notification message.
type ReservationCreated struct {
	ReservationID string `json:"reservation_id"`
	UserID        string `json:"user_id"`
	CourtID       string `json:"court_id"`
	Start         int64  `json:"start"` // unix seconds
	End           int64  `json:"end"`
}

// ReservationChanged is the payload for every lifecycle transition.
type ReservationChanged struct {
	ReservationID string `json:"reservation_id"`
	Status        string `json:"status"`
}

func Decode[T any](b []byte) (T, error) {
	var t T
	if err := json.Unmarshal(b, &t); err != nil {
		var zero T
		return zero, fmt.Errorf("decode payload: %w", err)
	}
	return t, nil
}
