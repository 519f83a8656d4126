package leave

import "errors"

var (
	ErrLeaveNotFound       = errors.New("leave request not found")
	ErrAlreadyProcessed    = errors.New("leave request has already been resolved")
	ErrInsufficientBalance = errors.New("insufficient leave balance")
	ErrOverlappingLeave    = errors.New("leave request overlaps an existing request")
	ErrCancelNotAllowed    = errors.New("only pending leave requests can be canceled")
)
