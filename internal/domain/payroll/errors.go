package payroll

import "errors"

var (
	ErrRunNotFound    = errors.New("payroll run not found")
	ErrRecordNotFound = errors.New("payroll record not found")
	// ErrRunInProgress is returned when a run for the same period is
	// already being generated. The advisory lock in the repository makes
	// the race observable.
	ErrRunInProgress = errors.New("payroll run for this period is already in progress")
)
