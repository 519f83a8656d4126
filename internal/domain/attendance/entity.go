package attendance

import (
	"time"

	"github.com/nimbus-hcm/hcm-backend-go/internal/pkg/shiftclock"
)

// Record is one row per (employee, calendar date). At most one exists
// per pair; the store's uniqueness constraint is the concurrency guard.
type Record struct {
	ID                string
	EmployeeID        int64
	Date              time.Time
	CheckIn           *time.Time
	CheckOut          *time.Time
	Status            shiftclock.Status
	CheckInLatitude   *float64
	CheckInLongitude  *float64
	CheckOutLatitude  *float64
	CheckOutLongitude *float64
	LateMinutes       *int
	EarlyLeaveMinutes *int
	OvertimeMinutes   *int
	WorkMinutes       *int
	CreatedAt         time.Time
	UpdatedAt         time.Time

	// Joined for day views
	EmployeeName *string
}
