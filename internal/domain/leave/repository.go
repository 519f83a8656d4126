package leave

import (
	"context"
	"time"
)

type LeaveRepository interface {
	Create(ctx context.Context, l Leave) (Leave, error)
	GetByID(ctx context.Context, id string) (Leave, error)
	// Resolve moves a leave from one state to another; a row not in the
	// expected prior state yields ErrAlreadyProcessed.
	Resolve(ctx context.Context, id string, from, to State, resolvedBy int64, resolvedAt time.Time) (Leave, error)
	Cancel(ctx context.Context, id string, employeeID int64) (Leave, error)
	ListOverlapping(ctx context.Context, employeeID int64, start, end time.Time) ([]Leave, error)
	ListByEmployee(ctx context.Context, employeeID int64) ([]Leave, error)
	// ListApprovedInRange returns every approved leave of any employee
	// whose range overlaps [start, end]. Payroll uses it to count unpaid
	// days per employee inside a period.
	ListApprovedInRange(ctx context.Context, start, end time.Time) ([]Leave, error)
}
