package attendance

import (
	"strings"

	"github.com/nimbus-hcm/hcm-backend-go/internal/domain/correction"
	"github.com/nimbus-hcm/hcm-backend-go/internal/pkg/validator"
)

// ========================================
// ATTENDANCE DTOs
// ========================================

type CheckInRequest struct {
	Latitude  float64 `json:"latitude"`
	Longitude float64 `json:"longitude"`
}

func (r *CheckInRequest) Validate() error {
	var errs validator.ValidationErrors

	if !validator.IsValidLatitude(r.Latitude) {
		errs = append(errs, validator.ValidationError{
			Field:   "latitude",
			Message: "latitude must be a finite number between -90 and 90",
		})
	}

	if !validator.IsValidLongitude(r.Longitude) {
		errs = append(errs, validator.ValidationError{
			Field:   "longitude",
			Message: "longitude must be a finite number between -180 and 180",
		})
	}

	if len(errs) > 0 {
		return errs
	}

	return nil
}

type CheckOutRequest struct {
	Latitude  float64 `json:"latitude"`
	Longitude float64 `json:"longitude"`
}

func (r *CheckOutRequest) Validate() error {
	in := CheckInRequest{Latitude: r.Latitude, Longitude: r.Longitude}
	return in.Validate()
}

type RecordResponse struct {
	ID                string   `json:"id"`
	EmployeeID        int64    `json:"employee_id"`
	EmployeeName      *string  `json:"employee_name,omitempty"`
	Date              string   `json:"date"`
	CheckInTime       *string  `json:"check_in_time,omitempty"`
	CheckOutTime      *string  `json:"check_out_time,omitempty"`
	Status            string   `json:"status"`
	DistanceMeters    *float64 `json:"distance_meters,omitempty"`
	LateMinutes       *int     `json:"late_minutes,omitempty"`
	EarlyLeaveMinutes *int     `json:"early_leave_minutes,omitempty"`
	OvertimeMinutes   *int     `json:"overtime_minutes,omitempty"`
	WorkedHours       *float64 `json:"worked_hours,omitempty"`
}

// MonthSummary aggregates one employee-month of records.
type MonthSummary struct {
	PresentDays    int     `json:"present_days"`
	LateDays       int     `json:"late_days"`
	AbsentDays     int     `json:"absent_days"`
	HalfDays       int     `json:"half_days"`
	TotalHours     float64 `json:"total_hours"`
	OvertimeHours  float64 `json:"overtime_hours"`
	AttendanceRate float64 `json:"attendance_rate"`
}

type MonthResponse struct {
	Today       *RecordResponse       `json:"today,omitempty"`
	Summary     MonthSummary          `json:"summary"`
	Records     []RecordResponse      `json:"records"`
	Corrections []correction.Response `json:"corrections"`
}

// DayEntry is one roster row in a manager-facing day view. Employees
// with no record for the date are synthesized as absent at query time.
type DayEntry struct {
	EmployeeID   int64   `json:"employee_id"`
	EmployeeName string  `json:"employee_name"`
	Status       string  `json:"status"`
	CheckInTime  *string `json:"check_in_time,omitempty"`
	CheckOutTime *string `json:"check_out_time,omitempty"`
}

type DayResponse struct {
	Date    string     `json:"date"`
	Entries []DayEntry `json:"entries"`
}

// UpdateRecordRequest is the explicit admin edit of a single record.
type UpdateRecordRequest struct {
	ID           string  `json:"-"`
	CheckInTime  *string `json:"check_in_time,omitempty"`  // RFC3339
	CheckOutTime *string `json:"check_out_time,omitempty"` // RFC3339
	Status       *string `json:"status,omitempty"`
}

func (r *UpdateRecordRequest) Validate() error {
	var errs validator.ValidationErrors

	if validator.IsEmpty(r.ID) {
		errs = append(errs, validator.ValidationError{
			Field:   "id",
			Message: "record id is required",
		})
	}

	if r.Status != nil {
		validStatuses := []string{"present", "late", "absent", "half_day"}
		if !validator.IsInSlice(strings.ToLower(*r.Status), validStatuses) {
			errs = append(errs, validator.ValidationError{
				Field:   "status",
				Message: "status must be one of: present, late, absent, half_day",
			})
		}
	}

	if len(errs) > 0 {
		return errs
	}

	return nil
}
