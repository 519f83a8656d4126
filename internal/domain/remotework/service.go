package remotework

import "context"

type RemoteWorkService interface {
	Create(ctx context.Context, employeeID int64, req CreateRequest) (Response, error)
	Resolve(ctx context.Context, adminID int64, req ResolveRequest) (Response, error)
	List(ctx context.Context, employeeID int64) ([]Response, error)
}
