package remotework

import (
	"context"
	"time"
)

type RemoteWorkRepository interface {
	Create(ctx context.Context, r Request) (Request, error)
	GetByID(ctx context.Context, id string) (Request, error)
	Resolve(ctx context.Context, id string, state State, resolvedBy int64, resolvedAt time.Time) (Request, error)
	// ListOverlapping returns the employee's pending and approved
	// requests whose inclusive range shares at least one day with
	// [start, end].
	ListOverlapping(ctx context.Context, employeeID int64, start, end time.Time) ([]Request, error)
	// HasApprovedForDate reports whether the employee holds an approved
	// request covering the given calendar date.
	HasApprovedForDate(ctx context.Context, employeeID int64, date time.Time) (bool, error)
	ListByEmployee(ctx context.Context, employeeID int64) ([]Request, error)
}
