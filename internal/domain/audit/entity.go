package audit

import "time"

type Action string

const (
	ActionCheckIn            Action = "attendance.check_in"
	ActionCheckOut           Action = "attendance.check_out"
	ActionRecordUpdated      Action = "attendance.record_updated"
	ActionRecordDeleted      Action = "attendance.record_deleted"
	ActionCorrectionResolved Action = "correction.resolved"
	ActionRemoteWorkResolved Action = "remote_work.resolved"
	ActionLeaveResolved      Action = "leave.resolved"
	ActionPayrollGenerated   Action = "payroll.generated"
	ActionPayrollRecUpdated  Action = "payroll.record_updated"
)

// Event is an append-only trail entry. Detail carries a small
// free-form JSON payload describing the change.
type Event struct {
	ID         string
	ActorID    int64
	Action     Action
	EntityID   string
	Detail     map[string]any
	OccurredAt time.Time
}
