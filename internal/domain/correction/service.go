package correction

import "context"

type CorrectionService interface {
	Create(ctx context.Context, employeeID int64, req CreateRequest) (Response, error)
	Resolve(ctx context.Context, adminID int64, req ResolveRequest) (Response, error)
}
