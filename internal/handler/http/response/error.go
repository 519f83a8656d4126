package response

import (
	"errors"
	"fmt"
	"net/http"

	"github.com/nimbus-hcm/hcm-backend-go/internal/domain/attendance"
	"github.com/nimbus-hcm/hcm-backend-go/internal/domain/correction"
	"github.com/nimbus-hcm/hcm-backend-go/internal/domain/employee"
	"github.com/nimbus-hcm/hcm-backend-go/internal/domain/leave"
	"github.com/nimbus-hcm/hcm-backend-go/internal/domain/payroll"
	"github.com/nimbus-hcm/hcm-backend-go/internal/domain/remotework"
	"github.com/nimbus-hcm/hcm-backend-go/internal/pkg/validator"
)

// HandleError maps domain errors to HTTP responses
func HandleError(w http.ResponseWriter, err error) {
	// Check if it's a validation error
	var validationErrs validator.ValidationErrors
	if errors.As(err, &validationErrs) {
		ValidationError(w, validationErrs.ToMap())
		return
	}

	// A rejected geofence carries the measured distance so clients can
	// show how far off the employee was.
	var locErr *attendance.LocationOutOfRangeError
	if errors.As(err, &locErr) {
		BadRequest(w, locErr.Error(), map[string]string{
			"distance_meters": fmt.Sprintf("%.0f", locErr.DistanceMeters),
			"required_meters": fmt.Sprintf("%.0f", locErr.RequiredMeters),
		})
		return
	}

	switch {
	// Employee domain errors
	case errors.Is(err, employee.ErrEmployeeNotFound):
		NotFound(w, "Employee not found")
	case errors.Is(err, employee.ErrEmployeeInactive):
		Forbidden(w, "Employee is not active")

	// Attendance domain errors
	case errors.Is(err, attendance.ErrAlreadyCheckedIn):
		Conflict(w, "Already checked in today")
	case errors.Is(err, attendance.ErrAlreadyCheckedOut):
		Conflict(w, "Already checked out today")
	case errors.Is(err, attendance.ErrNotCheckedIn):
		BadRequest(w, "No open check-in for today", nil)
	case errors.Is(err, attendance.ErrRecordNotFound):
		NotFound(w, "Attendance record not found")
	case errors.Is(err, attendance.ErrCheckOutBeforeCheckIn):
		BadRequest(w, "Check-out time must not precede check-in time", nil)

	// Correction domain errors
	case errors.Is(err, correction.ErrCorrectionNotFound):
		NotFound(w, "Correction request not found")
	case errors.Is(err, correction.ErrAlreadyProcessed):
		Conflict(w, "Correction request already processed")

	// Remote work domain errors
	case errors.Is(err, remotework.ErrRequestNotFound):
		NotFound(w, "Remote work request not found")
	case errors.Is(err, remotework.ErrAlreadyProcessed):
		Conflict(w, "Remote work request already processed")
	case errors.Is(err, remotework.ErrOverlappingRequest):
		Conflict(w, "Remote work request overlaps an existing request")
	case errors.Is(err, remotework.ErrInvalidDateRange):
		BadRequest(w, "End date must not be before start date", nil)

	// Leave domain errors
	case errors.Is(err, leave.ErrLeaveNotFound):
		NotFound(w, "Leave request not found")
	case errors.Is(err, leave.ErrAlreadyProcessed):
		Conflict(w, "Leave request already processed")
	case errors.Is(err, leave.ErrInsufficientBalance):
		BadRequest(w, "Insufficient leave balance", nil)
	case errors.Is(err, leave.ErrOverlappingLeave):
		Conflict(w, "Leave request overlaps an existing request")
	case errors.Is(err, leave.ErrCancelNotAllowed):
		Conflict(w, "Only pending leave requests can be canceled")

	// Payroll domain errors
	case errors.Is(err, payroll.ErrRunNotFound):
		NotFound(w, "Payroll run not found")
	case errors.Is(err, payroll.ErrRecordNotFound):
		NotFound(w, "Payroll record not found")
	case errors.Is(err, payroll.ErrRunInProgress):
		Conflict(w, "A payroll run for this period is already in progress")

	// Default
	default:
		InternalServerError(w, "An unexpected error occurred")
	}
}
