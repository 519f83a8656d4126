package payroll

import "context"

type PayrollService interface {
	Generate(ctx context.Context, adminID int64, req GenerateRequest) (RunResponse, error)
	GetRun(ctx context.Context, id string) (RunResponse, error)
	ListRuns(ctx context.Context) ([]RunResponse, error)
	GetRecord(ctx context.Context, id string) (RecordResponse, error)
	UpdateRecord(ctx context.Context, adminID int64, req UpdateRecordRequest) (RecordResponse, error)
}
