package remotework

import (
	"context"
	"strings"
	"time"

	"github.com/nimbus-hcm/hcm-backend-go/internal/domain/audit"
	"github.com/nimbus-hcm/hcm-backend-go/internal/domain/employee"
	"github.com/nimbus-hcm/hcm-backend-go/internal/domain/remotework"
	"github.com/nimbus-hcm/hcm-backend-go/internal/pkg/database"
)

type remoteWorkService struct {
	tx             database.TxManager
	remoteWorkRepo remotework.RemoteWorkRepository
	employeeRepo   employee.EmployeeRepository
	auditRepo      audit.AuditRepository
	now            func() time.Time
}

func NewRemoteWorkService(
	tx database.TxManager,
	remoteWorkRepo remotework.RemoteWorkRepository,
	employeeRepo employee.EmployeeRepository,
	auditRepo audit.AuditRepository,
) remotework.RemoteWorkService {
	return &remoteWorkService{
		tx:             tx,
		remoteWorkRepo: remoteWorkRepo,
		employeeRepo:   employeeRepo,
		auditRepo:      auditRepo,
		now:            time.Now,
	}
}

// Create implements remotework.RemoteWorkService.
func (s *remoteWorkService) Create(ctx context.Context, employeeID int64, req remotework.CreateRequest) (remotework.Response, error) {
	if err := req.Validate(); err != nil {
		return remotework.Response{}, err
	}

	emp, err := s.employeeRepo.GetByID(ctx, employeeID)
	if err != nil {
		return remotework.Response{}, err
	}
	if !emp.IsActive() {
		return remotework.Response{}, employee.ErrEmployeeInactive
	}

	start, _ := time.Parse("2006-01-02", req.StartDate)
	end, _ := time.Parse("2006-01-02", req.EndDate)

	existing, err := s.remoteWorkRepo.ListOverlapping(ctx, employeeID, start, end)
	if err != nil {
		return remotework.Response{}, err
	}
	if len(existing) > 0 {
		return remotework.Response{}, remotework.ErrOverlappingRequest
	}

	created, err := s.remoteWorkRepo.Create(ctx, remotework.Request{
		EmployeeID: employeeID,
		StartDate:  start,
		EndDate:    end,
		Reason:     req.Reason,
	})
	if err != nil {
		return remotework.Response{}, err
	}

	return toResponse(created), nil
}

// Resolve implements remotework.RemoteWorkService.
func (s *remoteWorkService) Resolve(ctx context.Context, adminID int64, req remotework.ResolveRequest) (remotework.Response, error) {
	if err := req.Validate(); err != nil {
		return remotework.Response{}, err
	}

	state := remotework.State(strings.ToLower(strings.TrimSpace(req.Action)))
	now := s.now()

	var resolved remotework.Request
	err := s.tx.WithinTransaction(ctx, func(txCtx context.Context) error {
		r, err := s.remoteWorkRepo.Resolve(txCtx, req.ID, state, adminID, now)
		if err != nil {
			return err
		}
		resolved = r

		return s.auditRepo.Record(txCtx, audit.Event{
			ActorID:  adminID,
			Action:   audit.ActionRemoteWorkResolved,
			EntityID: r.ID,
			Detail: map[string]any{
				"state":       string(state),
				"employee_id": r.EmployeeID,
			},
			OccurredAt: now,
		})
	})
	if err != nil {
		return remotework.Response{}, err
	}

	return toResponse(resolved), nil
}

// List implements remotework.RemoteWorkService.
func (s *remoteWorkService) List(ctx context.Context, employeeID int64) ([]remotework.Response, error) {
	requests, err := s.remoteWorkRepo.ListByEmployee(ctx, employeeID)
	if err != nil {
		return nil, err
	}

	responses := make([]remotework.Response, 0, len(requests))
	for _, r := range requests {
		responses = append(responses, toResponse(r))
	}

	return responses, nil
}

func toResponse(r remotework.Request) remotework.Response {
	resp := remotework.Response{
		ID:         r.ID,
		EmployeeID: r.EmployeeID,
		StartDate:  r.StartDate.Format("2006-01-02"),
		EndDate:    r.EndDate.Format("2006-01-02"),
		Reason:     r.Reason,
		State:      string(r.State),
		ResolvedBy: r.ResolvedBy,
		CreatedAt:  r.CreatedAt.Format(time.RFC3339),
	}
	if r.ResolvedAt != nil {
		v := r.ResolvedAt.Format(time.RFC3339)
		resp.ResolvedAt = &v
	}
	return resp
}
