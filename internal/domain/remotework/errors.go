package remotework

import "errors"

var (
	ErrRequestNotFound  = errors.New("remote work request not found")
	ErrAlreadyProcessed = errors.New("remote work request has already been approved or rejected")
	// ErrOverlappingRequest rejects a new range that shares any day with
	// an existing pending or approved request of the same employee.
	ErrOverlappingRequest = errors.New("remote work request overlaps an existing request")
	ErrInvalidDateRange   = errors.New("end date must not be before start date")
)
