package leave

import (
	"context"
	"strings"
	"time"

	"github.com/nimbus-hcm/hcm-backend-go/internal/domain/audit"
	"github.com/nimbus-hcm/hcm-backend-go/internal/domain/employee"
	"github.com/nimbus-hcm/hcm-backend-go/internal/domain/leave"
	"github.com/nimbus-hcm/hcm-backend-go/internal/pkg/database"
	"github.com/nimbus-hcm/hcm-backend-go/internal/pkg/daterange"
)

type leaveService struct {
	tx           database.TxManager
	leaveRepo    leave.LeaveRepository
	employeeRepo employee.EmployeeRepository
	auditRepo    audit.AuditRepository
	now          func() time.Time
}

func NewLeaveService(
	tx database.TxManager,
	leaveRepo leave.LeaveRepository,
	employeeRepo employee.EmployeeRepository,
	auditRepo audit.AuditRepository,
) leave.LeaveService {
	return &leaveService{
		tx:           tx,
		leaveRepo:    leaveRepo,
		employeeRepo: employeeRepo,
		auditRepo:    auditRepo,
		now:          time.Now,
	}
}

// Create implements leave.LeaveService.
func (s *leaveService) Create(ctx context.Context, employeeID int64, req leave.CreateRequest) (leave.Response, error) {
	if err := req.Validate(); err != nil {
		return leave.Response{}, err
	}

	emp, err := s.employeeRepo.GetByID(ctx, employeeID)
	if err != nil {
		return leave.Response{}, err
	}
	if !emp.IsActive() {
		return leave.Response{}, employee.ErrEmployeeInactive
	}

	leaveType, _ := leave.ParseType(req.Type)
	start, _ := time.Parse("2006-01-02", req.StartDate)
	end, _ := time.Parse("2006-01-02", req.EndDate)
	days := daterange.InclusiveDays(start, end)

	isPaid := true
	if req.IsPaid != nil {
		isPaid = *req.IsPaid
	}

	existing, err := s.leaveRepo.ListOverlapping(ctx, employeeID, start, end)
	if err != nil {
		return leave.Response{}, err
	}
	if len(existing) > 0 {
		return leave.Response{}, leave.ErrOverlappingLeave
	}

	if emp.LeaveBalance < days {
		return leave.Response{}, leave.ErrInsufficientBalance
	}

	created, err := s.leaveRepo.Create(ctx, leave.Leave{
		EmployeeID: employeeID,
		Type:       leaveType,
		StartDate:  start,
		EndDate:    end,
		Days:       days,
		IsPaid:     isPaid,
		Reason:     req.Reason,
	})
	if err != nil {
		return leave.Response{}, err
	}

	return toResponse(created), nil
}

// Resolve implements leave.LeaveService. Approval and the balance
// deduction commit together. A rejection that follows an earlier
// approval restores the deducted days.
func (s *leaveService) Resolve(ctx context.Context, adminID int64, req leave.ResolveRequest) (leave.Response, error) {
	if err := req.Validate(); err != nil {
		return leave.Response{}, err
	}

	state := leave.State(strings.ToLower(strings.TrimSpace(req.Action)))
	now := s.now()

	var resolved leave.Leave
	err := s.tx.WithinTransaction(ctx, func(txCtx context.Context) error {
		current, err := s.leaveRepo.GetByID(txCtx, req.ID)
		if err != nil {
			return err
		}

		var balanceDelta int
		switch {
		case state == leave.StateApproved && current.State == leave.StatePending:
			balanceDelta = -current.Days
		case state == leave.StateRejected && current.State == leave.StatePending:
			balanceDelta = 0
		case state == leave.StateRejected && current.State == leave.StateApproved:
			// Reversing an approval gives the days back.
			balanceDelta = current.Days
		default:
			return leave.ErrAlreadyProcessed
		}

		l, err := s.leaveRepo.Resolve(txCtx, req.ID, current.State, state, adminID, now)
		if err != nil {
			return err
		}
		resolved = l

		if balanceDelta != 0 {
			if err := s.employeeRepo.AdjustLeaveBalance(txCtx, l.EmployeeID, balanceDelta); err != nil {
				return err
			}
		}

		return s.auditRepo.Record(txCtx, audit.Event{
			ActorID:  adminID,
			Action:   audit.ActionLeaveResolved,
			EntityID: l.ID,
			Detail: map[string]any{
				"state":       string(state),
				"type":        string(l.Type),
				"days":        l.Days,
				"is_paid":     l.IsPaid,
				"employee_id": l.EmployeeID,
			},
			OccurredAt: now,
		})
	})
	if err != nil {
		return leave.Response{}, err
	}

	return toResponse(resolved), nil
}

// Cancel implements leave.LeaveService.
func (s *leaveService) Cancel(ctx context.Context, employeeID int64, id string) (leave.Response, error) {
	canceled, err := s.leaveRepo.Cancel(ctx, id, employeeID)
	if err != nil {
		return leave.Response{}, err
	}

	return toResponse(canceled), nil
}

// List implements leave.LeaveService.
func (s *leaveService) List(ctx context.Context, employeeID int64) ([]leave.Response, error) {
	leaves, err := s.leaveRepo.ListByEmployee(ctx, employeeID)
	if err != nil {
		return nil, err
	}

	responses := make([]leave.Response, 0, len(leaves))
	for _, l := range leaves {
		responses = append(responses, toResponse(l))
	}

	return responses, nil
}

func toResponse(l leave.Leave) leave.Response {
	resp := leave.Response{
		ID:         l.ID,
		EmployeeID: l.EmployeeID,
		Type:       string(l.Type),
		StartDate:  l.StartDate.Format("2006-01-02"),
		EndDate:    l.EndDate.Format("2006-01-02"),
		Days:       l.Days,
		IsPaid:     l.IsPaid,
		Reason:     l.Reason,
		State:      string(l.State),
		ResolvedBy: l.ResolvedBy,
		CreatedAt:  l.CreatedAt.Format(time.RFC3339),
	}
	if l.ResolvedAt != nil {
		v := l.ResolvedAt.Format(time.RFC3339)
		resp.ResolvedAt = &v
	}
	return resp
}
