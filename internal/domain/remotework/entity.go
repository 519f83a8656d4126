package remotework

import "time"

type State string

const (
	StatePending  State = "pending"
	StateApproved State = "approved"
	StateRejected State = "rejected"
)

// Request is an inclusive date range during which geofence checks are
// suppressed for the employee once the request is approved.
type Request struct {
	ID         string
	EmployeeID int64
	StartDate  time.Time
	EndDate    time.Time
	Reason     *string
	State      State
	ResolvedBy *int64
	ResolvedAt *time.Time
	CreatedAt  time.Time
	UpdatedAt  time.Time
}
