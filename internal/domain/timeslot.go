package domain

import "time"

// Timeslot is a concrete bookable interval for one court on one date.
// The composite unique index is the source of truth for identity: two rows
// must never describe the same wall-clock interval for the same court.
// Rows are created lazily (grid seeding or first free-form use) and are
// never mutated or deleted afterwards.
type Timeslot struct {
	ID        string    `gorm:"primaryKey"`
	CourtID   string    `gorm:"index;uniqueIndex:uq_court_date_slot"`
	Date      string    `gorm:"uniqueIndex:uq_court_date_slot"` // YYYY-MM-DD
	StartTime time.Time `gorm:"uniqueIndex:uq_court_date_slot"`
	EndTime   time.Time `gorm:"uniqueIndex:uq_court_date_slot"`
	CreatedAt time.Time
}

func (s Timeslot) Range() TimeRange {
	return TimeRange{Start: s.StartTime, End: s.EndTime}
}

// AvailableSlot is one resolver result. Unavailable slots are annotated with
// a reason rather than dropped, so callers can render them disabled.
type AvailableSlot struct {
	Slot     Timeslot `json:"slot"`
	Bookable bool     `json:"bookable"`
	Reason   string   `json:"reason,omitempty"`
}
