package domain

import "errors"

var (
	// ErrSlotTaken means the chosen timeslot gained an active reservation
	// between resolve and commit. The caller should re-resolve and offer the
	// user another slot; there is nothing to retry.
	ErrSlotTaken = errors.New("slot already booked")

	ErrNotFound       = errors.New("not found")
	ErrCourtNotFound  = errors.New("court not found")
	ErrInvalidDate    = errors.New("invalid date")
	ErrInvalidRange   = errors.New("invalid time range")
	ErrBadTransition  = errors.New("illegal status transition")
	ErrBadCheckInCode = errors.New("check-in code mismatch")
)
