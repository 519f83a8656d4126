package correction

import "errors"

var (
	ErrCorrectionNotFound = errors.New("correction request not found")
	// ErrAlreadyProcessed guards the single pending->resolved transition.
	ErrAlreadyProcessed = errors.New("correction request has already been approved or rejected")
)
