package domain

import "time"

// Status is the canonical reservation lifecycle state. The engine owns this
// enum; every surface maps to it rather than keeping its own encoding.
type Status string

const (
	StatusPending   Status = "PENDING"
	StatusConfirmed Status = "CONFIRMED"
	StatusOngoing   Status = "ONGOING"
	StatusCompleted Status = "COMPLETED"
	StatusCancelled Status = "CANCELLED"
	StatusNoShow    Status = "NO_SHOW"
)

// IsActive reports whether a reservation in this status still occupies its
// timeslot.
func IsActive(s Status) bool {
	switch s {
	case StatusPending, StatusConfirmed, StatusOngoing:
		return true
	}
	return false
}

// ActiveStatuses is the set IsActive accepts, in query-friendly form.
func ActiveStatuses() []Status {
	return []Status{StatusPending, StatusConfirmed, StatusOngoing}
}

func (s Status) Terminal() bool {
	switch s {
	case StatusCompleted, StatusCancelled, StatusNoShow:
		return true
	}
	return false
}

var transitions = map[Status][]Status{
	StatusPending:   {StatusConfirmed, StatusCancelled},
	StatusConfirmed: {StatusOngoing, StatusCompleted, StatusCancelled, StatusNoShow},
	StatusOngoing:   {StatusCompleted, StatusCancelled},
}

// CanTransition validates a lifecycle transition requested by the CRUD
// layer. The engine never drives transitions itself.
func CanTransition(from, to Status) bool {
	for _, next := range transitions[from] {
		if next == to {
			return true
		}
	}
	return false
}

// Reservation links a user to exactly one timeslot. At most one reservation
// in an active status may reference a timeslot at any time; a partial unique
// index on timeslot_id enforces that in the store (see repository.Migrate),
// application checks are only advisory.
type Reservation struct {
	ID         string `gorm:"primaryKey"`
	TimeslotID string `gorm:"index"`
	CourtID    string `gorm:"index"`
	UserID     string `gorm:"index"`
	Date       string `gorm:"index"` // YYYY-MM-DD, denormalized from the timeslot
	Status     Status `gorm:"index"`

	// CheckInCode is an opaque reference presented at the desk to move the
	// reservation to ONGOING.
	CheckInCode string

	CreatedAt time.Time
	UpdatedAt time.Time
}
