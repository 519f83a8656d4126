package payroll

import (
	"context"
	"time"
)

type PayrollRepository interface {
	// LockPeriod takes a transaction-scoped advisory lock keyed on the
	// period. It must be called inside WithTransaction; the lock is
	// released when the transaction ends.
	LockPeriod(ctx context.Context, year int, month time.Month) error
	// UpsertRun creates the period's run or resets an existing one to
	// processing. There is at most one run row per (year, month).
	UpsertRun(ctx context.Context, run Run) (Run, error)
	FinishRun(ctx context.Context, runID string, status RunStatus, employeeCnt int, totalNetPay string, finishedAt time.Time) error
	GetRun(ctx context.Context, id string) (Run, error)
	GetRunByPeriod(ctx context.Context, year int, month time.Month) (Run, error)
	ListRuns(ctx context.Context) ([]Run, error)
	// DeleteRecordsForPeriod clears the previous run's records so a
	// re-run replaces them.
	DeleteRecordsForPeriod(ctx context.Context, year int, month time.Month) error
	InsertRecords(ctx context.Context, records []Record) error
	UpdateRecord(ctx context.Context, rec Record) (Record, error)
	GetRecord(ctx context.Context, id string) (Record, error)
	ListRecordsByRun(ctx context.Context, runID string) ([]Record, error)
}
