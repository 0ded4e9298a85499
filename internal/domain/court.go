package domain

import "time"

// Court is a bookable physical asset. Rows are written by the admin CRUD
// surface; the booking engine only reads them.
type Court struct {
	ID       string `gorm:"primaryKey"`
	OrgID    string `gorm:"index"`
	Name     string
	Venue    string
	OpenFrom string // HH:mm
	OpenTo   string // HH:mm

	SlotDurationMinutes int32
	BookingWindowDays   int32 // calendar days bookable ahead, today included
	BookingRolling      bool  // only the next 24h from "now" are bookable
	OnePerUserPerDay    bool

	OwnerID   string // from JWT (role OWNER/ADMIN)
	CreatedAt time.Time
	UpdatedAt time.Time
}

// Rules derives the immutable rule set the availability pipeline consumes.
// Called once at the boundary so loose per-row values are normalized in a
// single place.
func (c *Court) Rules() RuleSet {
	days := c.BookingWindowDays
	if days < 1 {
		days = 1
	}
	dur := time.Duration(c.SlotDurationMinutes) * time.Minute
	if dur <= 0 {
		dur = time.Hour
	}
	return RuleSet{
		BookingWindowDays: days,
		Rolling:           c.BookingRolling,
		OnePerUserPerDay:  c.OnePerUserPerDay,
		SlotDuration:      dur,
		OpenFrom:          c.OpenFrom,
		OpenTo:            c.OpenTo,
	}
}

// RuleSet is the validated, strongly-typed view of a court's booking rules.
// It is passed by value through the pipeline and never mutated.
type RuleSet struct {
	BookingWindowDays int32
	Rolling           bool
	OnePerUserPerDay  bool
	SlotDuration      time.Duration
	OpenFrom          string // HH:mm
	OpenTo            string // HH:mm
}
