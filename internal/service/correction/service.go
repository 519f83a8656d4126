package correction

import (
	"context"
	"strings"
	"time"

	"github.com/nimbus-hcm/hcm-backend-go/internal/domain/attendance"
	"github.com/nimbus-hcm/hcm-backend-go/internal/domain/audit"
	"github.com/nimbus-hcm/hcm-backend-go/internal/domain/correction"
	"github.com/nimbus-hcm/hcm-backend-go/internal/domain/employee"
	"github.com/nimbus-hcm/hcm-backend-go/internal/pkg/database"
	"github.com/nimbus-hcm/hcm-backend-go/internal/pkg/shiftclock"
)

type correctionService struct {
	tx             database.TxManager
	correctionRepo correction.CorrectionRepository
	attendanceRepo attendance.AttendanceRepository
	employeeRepo   employee.EmployeeRepository
	auditRepo      audit.AuditRepository
	clock          *shiftclock.Clock
	now            func() time.Time
}

func NewCorrectionService(
	tx database.TxManager,
	correctionRepo correction.CorrectionRepository,
	attendanceRepo attendance.AttendanceRepository,
	employeeRepo employee.EmployeeRepository,
	auditRepo audit.AuditRepository,
	clock *shiftclock.Clock,
) correction.CorrectionService {
	return &correctionService{
		tx:             tx,
		correctionRepo: correctionRepo,
		attendanceRepo: attendanceRepo,
		employeeRepo:   employeeRepo,
		auditRepo:      auditRepo,
		clock:          clock,
		now:            time.Now,
	}
}

// Create implements correction.CorrectionService.
func (s *correctionService) Create(ctx context.Context, employeeID int64, req correction.CreateRequest) (correction.Response, error) {
	if err := req.Validate(); err != nil {
		return correction.Response{}, err
	}

	emp, err := s.employeeRepo.GetByID(ctx, employeeID)
	if err != nil {
		return correction.Response{}, err
	}
	if !emp.IsActive() {
		return correction.Response{}, employee.ErrEmployeeInactive
	}

	date, _ := time.Parse("2006-01-02", req.Date)
	issue, _ := correction.ParseIssue(req.Issue)

	c := correction.Correction{
		EmployeeID: employeeID,
		Date:       date,
		Issue:      issue,
		Note:       req.Note,
	}

	if req.RequestedCheckIn != nil {
		t, err := time.Parse(time.RFC3339, *req.RequestedCheckIn)
		if err != nil {
			return correction.Response{}, err
		}
		c.RequestedCheckIn = &t
	}
	if req.RequestedCheckOut != nil {
		t, err := time.Parse(time.RFC3339, *req.RequestedCheckOut)
		if err != nil {
			return correction.Response{}, err
		}
		c.RequestedCheckOut = &t
	}

	created, err := s.correctionRepo.Create(ctx, c)
	if err != nil {
		return correction.Response{}, err
	}

	return correction.ToResponse(created), nil
}

// Resolve implements correction.CorrectionService. Approval and the
// retroactive record edit commit or roll back together.
func (s *correctionService) Resolve(ctx context.Context, adminID int64, req correction.ResolveRequest) (correction.Response, error) {
	if err := req.Validate(); err != nil {
		return correction.Response{}, err
	}

	state := correction.State(strings.ToLower(strings.TrimSpace(req.Action)))
	now := s.now()

	var resolved correction.Correction
	err := s.tx.WithinTransaction(ctx, func(txCtx context.Context) error {
		c, err := s.correctionRepo.Resolve(txCtx, req.ID, state, adminID, now)
		if err != nil {
			return err
		}
		resolved = c

		if state == correction.StateApproved {
			if err := s.applyCorrection(txCtx, c); err != nil {
				return err
			}
		}

		return s.auditRepo.Record(txCtx, audit.Event{
			ActorID:  adminID,
			Action:   audit.ActionCorrectionResolved,
			EntityID: c.ID,
			Detail: map[string]any{
				"state":       string(state),
				"issue":       string(c.Issue),
				"employee_id": c.EmployeeID,
			},
			OccurredAt: now,
		})
	})
	if err != nil {
		return correction.Response{}, err
	}

	return correction.ToResponse(resolved), nil
}

// applyCorrection edits the employee's record for the correction date.
// A missing record is created first so a fully forgotten day can still
// be repaired.
func (s *correctionService) applyCorrection(ctx context.Context, c correction.Correction) error {
	record, err := s.attendanceRepo.GetByEmployeeAndDate(ctx, c.EmployeeID, c.Date)
	if err != nil {
		return err
	}

	if record == nil {
		created, err := s.attendanceRepo.Create(ctx, attendance.Record{
			EmployeeID: c.EmployeeID,
			Date:       c.Date,
			Status:     shiftclock.StatusPresent,
		})
		if err != nil {
			return err
		}
		record = &created
	}

	switch c.Issue {
	case correction.IssueForgotCheckIn:
		if c.RequestedCheckIn != nil {
			record.CheckIn = c.RequestedCheckIn
		}
	case correction.IssueForgotCheckOut:
		if c.RequestedCheckOut != nil {
			record.CheckOut = c.RequestedCheckOut
		}
	case correction.IssueWrongTime:
		if c.RequestedCheckIn != nil {
			record.CheckIn = c.RequestedCheckIn
		}
		if c.RequestedCheckOut != nil {
			record.CheckOut = c.RequestedCheckOut
		}
	case correction.IssueLocationIssue:
		// Times stand; the approval itself vouches for the location.
	}

	if record.CheckIn != nil && record.CheckOut != nil && record.CheckOut.Before(*record.CheckIn) {
		return attendance.ErrCheckOutBeforeCheckIn
	}

	s.recomputeDeltas(record)

	// Only a wrong_time claim is re-judged against the shift clock.
	// Every other approved issue vouches for the day as worked.
	if c.Issue == correction.IssueWrongTime && record.CheckIn != nil {
		record.Status = s.clock.DetermineStatus(*record.CheckIn)
	} else {
		record.Status = shiftclock.StatusPresent
	}

	return s.attendanceRepo.Update(ctx, *record)
}

func (s *correctionService) recomputeDeltas(record *attendance.Record) {
	if record.CheckIn == nil {
		return
	}

	late := s.clock.MinutesLate(*record.CheckIn)
	record.LateMinutes = &late

	if record.CheckOut != nil {
		deltas := s.clock.ComputeDeltas(*record.CheckIn, *record.CheckOut)
		record.EarlyLeaveMinutes = &deltas.EarlyMinutes
		record.OvertimeMinutes = &deltas.OvertimeMinutes
		record.WorkMinutes = &deltas.TotalMinutes
	}
}
