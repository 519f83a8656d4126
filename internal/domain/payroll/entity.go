package payroll

import (
	"fmt"
	"strings"
	"time"

	"github.com/shopspring/decimal"
)

type RunStatus string

const (
	RunStatusProcessing RunStatus = "processing"
	RunStatusProcessed  RunStatus = "processed"
)

type RecordStatus string

const (
	RecordStatusPending   RecordStatus = "pending"
	RecordStatusProcessed RecordStatus = "processed"
)

func ParseRecordStatus(s string) (RecordStatus, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "pending":
		return RecordStatusPending, nil
	case "processed":
		return RecordStatusProcessed, nil
	}
	return "", fmt.Errorf("unknown payroll record status %q", s)
}

// Run is one payroll generation over a calendar month. Re-running the
// same period replaces the previous run's records.
type Run struct {
	ID          string
	Year        int
	Month       time.Month
	Status      RunStatus
	EmployeeCnt int
	TotalNetPay decimal.Decimal
	StartedBy   int64
	StartedAt   time.Time
	FinishedAt  *time.Time
}

// Record is one employee's pay for a run period.
type Record struct {
	ID             string
	RunID          string
	EmployeeID     int64
	BaseSalary     decimal.Decimal
	Bonus          decimal.Decimal
	OtherDeduction decimal.Decimal
	WorkingDays    int
	UnpaidDays     int
	LeaveDeduction decimal.Decimal
	NetPay         decimal.Decimal
	Status         RecordStatus
	PayDate        *time.Time
	CreatedAt      time.Time

	EmployeeName *string
}
