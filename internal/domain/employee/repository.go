package employee

import "context"

type EmployeeRepository interface {
	GetByID(ctx context.Context, id int64) (Employee, error)
	ListActive(ctx context.Context) ([]Employee, error)
	// AdjustLeaveBalance adds delta (possibly negative) to the
	// employee's leave balance. Used only by leave approval/rejection.
	AdjustLeaveBalance(ctx context.Context, id int64, delta int) error
}
