package attendance

import (
	"context"
	"time"
)

type AttendanceService interface {
	CheckIn(ctx context.Context, employeeID int64, req CheckInRequest) (RecordResponse, error)
	CheckOut(ctx context.Context, employeeID int64, req CheckOutRequest) (RecordResponse, error)
	GetMonth(ctx context.Context, employeeID int64, year int, month time.Month) (MonthResponse, error)
	GetDay(ctx context.Context, date time.Time) (DayResponse, error)
	UpdateRecord(ctx context.Context, adminID int64, req UpdateRecordRequest) (RecordResponse, error)
	DeleteRecord(ctx context.Context, adminID int64, id string) error
}
