package domain

import "time"

// OneOffBlock is an exceptional unavailability tied to a single calendar
// date. Missing start/end times mean the whole day is blocked.
type OneOffBlock struct {
	ID        string `gorm:"primaryKey"`
	CourtID   string `gorm:"index"`
	Date      string `gorm:"index"` // YYYY-MM-DD
	StartTime *time.Time
	EndTime   *time.Time
	Reason    string
	CreatedAt time.Time
}

// Range returns the blocked interval on the given day.
func (b OneOffBlock) Range(day time.Time) TimeRange {
	if b.StartTime == nil || b.EndTime == nil {
		return DayRange(day)
	}
	return TimeRange{Start: *b.StartTime, End: *b.EndTime}
}

// RecurringBlock is a weekly unavailability pattern. Disabled rows
// (Active=false) are kept but ignored by the resolver.
type RecurringBlock struct {
	ID         string `gorm:"primaryKey"`
	CourtID    string `gorm:"index"`
	DayOfWeek  int32  `gorm:"index"` // 0=Sunday .. 6=Saturday
	StartClock string // HH:mm
	EndClock   string // HH:mm
	Active     bool   `gorm:"index"`
	CreatedAt  time.Time
	UpdatedAt  time.Time
}

// Range projects the weekly pattern onto a concrete day.
func (b RecurringBlock) Range(day time.Time) (TimeRange, error) {
	start, err := AtClock(day, b.StartClock)
	if err != nil {
		return TimeRange{}, err
	}
	end, err := AtClock(day, b.EndClock)
	if err != nil {
		return TimeRange{}, err
	}
	return TimeRange{Start: start, End: end}, nil
}

// DaySheet bundles every block record relevant to one (court, date) so the
// resolver can run without further lookups.
type DaySheet struct {
	OneOff []OneOffBlock
	Weekly []RecurringBlock
}
