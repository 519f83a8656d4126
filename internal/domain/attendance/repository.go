package attendance

import (
	"context"
	"time"
)

type AttendanceRepository interface {
	// Create inserts the day's record. The unique (employee_id, date)
	// constraint serializes concurrent check-ins; the loser gets
	// ErrAlreadyCheckedIn, never a duplicate row.
	Create(ctx context.Context, record Record) (Record, error)
	GetByID(ctx context.Context, id string) (Record, error)
	GetByEmployeeAndDate(ctx context.Context, employeeID int64, date time.Time) (*Record, error)
	Update(ctx context.Context, record Record) error
	ListMonth(ctx context.Context, employeeID int64, year int, month time.Month) ([]Record, error)
	ListByDate(ctx context.Context, date time.Time) ([]Record, error)
	Delete(ctx context.Context, id string) error
}
