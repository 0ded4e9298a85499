package domain

import (
	"fmt"
	"time"
)

const (
	DateLayout  = "2006-01-02"
	ClockLayout = "15:04"
)

// TimeRange is a half-open interval [Start, End) on the UTC timeline.
type TimeRange struct {
	Start time.Time
	End   time.Time
}

// Overlaps reports whether two half-open ranges share any instant.
// Touching endpoints do not count as overlap.
func (r TimeRange) Overlaps(o TimeRange) bool {
	return r.Start.Before(o.End) && r.End.After(o.Start)
}

func (r TimeRange) Valid() bool {
	return r.End.After(r.Start)
}

// ParseDate parses a YYYY-MM-DD calendar date as midnight UTC.
func ParseDate(s string) (time.Time, error) {
	d, err := time.Parse(DateLayout, s)
	if err != nil {
		return time.Time{}, fmt.Errorf("%w: %q", ErrInvalidDate, s)
	}
	return d, nil
}

// AtClock combines a calendar day with an HH:mm wall-clock value into a UTC instant.
func AtClock(day time.Time, clock string) (time.Time, error) {
	c, err := time.Parse(ClockLayout, clock)
	if err != nil {
		return time.Time{}, fmt.Errorf("%w: clock %q", ErrInvalidRange, clock)
	}
	return time.Date(day.Year(), day.Month(), day.Day(), c.Hour(), c.Minute(), 0, 0, time.UTC), nil
}

// DayRange covers the whole calendar day of d.
func DayRange(day time.Time) TimeRange {
	start := time.Date(day.Year(), day.Month(), day.Day(), 0, 0, 0, 0, time.UTC)
	return TimeRange{Start: start, End: start.Add(24 * time.Hour)}
}

// DateOf truncates an instant to its UTC calendar day.
func DateOf(t time.Time) time.Time {
	t = t.UTC()
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC)
}
