package attendance

import (
	"errors"
	"fmt"
)

// Attendance domain errors
var (
	ErrAlreadyCheckedIn  = errors.New("you have already checked in today")
	ErrAlreadyCheckedOut = errors.New("you have already checked out today")
	ErrNotCheckedIn      = errors.New("you have not checked in yet")

	ErrRecordNotFound = errors.New("attendance record not found")

	// ErrCheckOutBeforeCheckIn rejects an edit that would store a
	// check-out earlier than the record's check-in.
	ErrCheckOutBeforeCheckIn = errors.New("check-out time must not precede check-in time")
)

// LocationOutOfRangeError rejects a check-in/out taken outside the
// office geofence. It carries the measured distance and the required
// radius so the caller can decide to request remote-work approval.
type LocationOutOfRangeError struct {
	DistanceMeters float64
	RequiredMeters float64
}

func (e *LocationOutOfRangeError) Error() string {
	return fmt.Sprintf("location is %.0fm from the office, outside the allowed %.0fm radius",
		e.DistanceMeters, e.RequiredMeters)
}
