package leave

import "context"

type LeaveService interface {
	Create(ctx context.Context, employeeID int64, req CreateRequest) (Response, error)
	Resolve(ctx context.Context, adminID int64, req ResolveRequest) (Response, error)
	Cancel(ctx context.Context, employeeID int64, id string) (Response, error)
	List(ctx context.Context, employeeID int64) ([]Response, error)
}
