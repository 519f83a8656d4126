package payroll

import (
	"context"
	"time"

	"github.com/shopspring/decimal"

	"github.com/nimbus-hcm/hcm-backend-go/internal/domain/audit"
	"github.com/nimbus-hcm/hcm-backend-go/internal/domain/employee"
	"github.com/nimbus-hcm/hcm-backend-go/internal/domain/leave"
	"github.com/nimbus-hcm/hcm-backend-go/internal/domain/payroll"
	"github.com/nimbus-hcm/hcm-backend-go/internal/pkg/database"
	"github.com/nimbus-hcm/hcm-backend-go/internal/pkg/daterange"
)

type payrollService struct {
	tx           database.TxManager
	payrollRepo  payroll.PayrollRepository
	employeeRepo employee.EmployeeRepository
	leaveRepo    leave.LeaveRepository
	auditRepo    audit.AuditRepository
	now          func() time.Time
}

func NewPayrollService(
	tx database.TxManager,
	payrollRepo payroll.PayrollRepository,
	employeeRepo employee.EmployeeRepository,
	leaveRepo leave.LeaveRepository,
	auditRepo audit.AuditRepository,
) payroll.PayrollService {
	return &payrollService{
		tx:           tx,
		payrollRepo:  payrollRepo,
		employeeRepo: employeeRepo,
		leaveRepo:    leaveRepo,
		auditRepo:    auditRepo,
		now:          time.Now,
	}
}

// Generate implements payroll.PayrollService. The run row is committed
// up front with status processing; the replacement of records happens
// in a separate transaction under a period advisory lock. A concurrent
// run fails fast with ErrRunInProgress, a failed run keeps the old
// records and leaves the row in processing for the operator to
// re-trigger.
func (s *payrollService) Generate(ctx context.Context, adminID int64, req payroll.GenerateRequest) (payroll.RunResponse, error) {
	if err := req.Validate(); err != nil {
		return payroll.RunResponse{}, err
	}

	year := req.Year
	month := time.Month(req.Month)
	periodStart := time.Date(year, month, 1, 0, 0, 0, 0, time.UTC)
	periodEnd := periodStart.AddDate(0, 1, -1)
	now := s.now()

	run, err := s.payrollRepo.UpsertRun(ctx, payroll.Run{
		Year:      year,
		Month:     month,
		StartedBy: adminID,
		StartedAt: now,
	})
	if err != nil {
		return payroll.RunResponse{}, err
	}

	var records []payroll.Record

	err = s.tx.WithinTransaction(ctx, func(txCtx context.Context) error {
		if err := s.payrollRepo.LockPeriod(txCtx, year, month); err != nil {
			return err
		}

		if err := s.payrollRepo.DeleteRecordsForPeriod(txCtx, year, month); err != nil {
			return err
		}

		employees, err := s.employeeRepo.ListActive(txCtx)
		if err != nil {
			return err
		}

		unpaidDays, err := s.unpaidDaysByEmployee(txCtx, periodStart, periodEnd)
		if err != nil {
			return err
		}

		workingDays := daterange.WeekdayCount(year, month)
		total := decimal.Zero
		records = make([]payroll.Record, 0, len(employees))

		for _, emp := range employees {
			breakdown := ComputePay(emp.BaseSalary, decimal.Zero, decimal.Zero, workingDays, unpaidDays[emp.ID])

			records = append(records, payroll.Record{
				RunID:          run.ID,
				EmployeeID:     emp.ID,
				BaseSalary:     emp.BaseSalary,
				Bonus:          decimal.Zero,
				OtherDeduction: decimal.Zero,
				WorkingDays:    breakdown.WorkingDays,
				UnpaidDays:     breakdown.UnpaidDays,
				LeaveDeduction: breakdown.LeaveDeduction,
				NetPay:         breakdown.NetPay,
				Status:         payroll.RecordStatusPending,
			})
			total = total.Add(breakdown.NetPay)
		}

		if err := s.payrollRepo.InsertRecords(txCtx, records); err != nil {
			return err
		}

		finishedAt := s.now()
		if err := s.payrollRepo.FinishRun(txCtx, run.ID, payroll.RunStatusProcessed, len(records), total.String(), finishedAt); err != nil {
			return err
		}
		run.Status = payroll.RunStatusProcessed
		run.EmployeeCnt = len(records)
		run.TotalNetPay = total
		run.FinishedAt = &finishedAt

		return s.auditRepo.Record(txCtx, audit.Event{
			ActorID:  adminID,
			Action:   audit.ActionPayrollGenerated,
			EntityID: run.ID,
			Detail: map[string]any{
				"year":           year,
				"month":          int(month),
				"employee_count": len(records),
			},
			OccurredAt: now,
		})
	})
	if err != nil {
		return payroll.RunResponse{}, err
	}

	resp := toRunResponse(run)
	resp.Records = toRecordResponses(records)
	return resp, nil
}

// unpaidDaysByEmployee folds approved unpaid leaves into a per-employee
// count of unpaid days clipped to the period.
func (s *payrollService) unpaidDaysByEmployee(ctx context.Context, periodStart, periodEnd time.Time) (map[int64]int, error) {
	leaves, err := s.leaveRepo.ListApprovedInRange(ctx, periodStart, periodEnd)
	if err != nil {
		return nil, err
	}

	unpaid := make(map[int64]int)
	for _, l := range leaves {
		if l.IsPaid {
			continue
		}
		unpaid[l.EmployeeID] += daterange.OverlapDays(l.StartDate, l.EndDate, periodStart, periodEnd)
	}

	return unpaid, nil
}

// GetRun implements payroll.PayrollService.
func (s *payrollService) GetRun(ctx context.Context, id string) (payroll.RunResponse, error) {
	run, err := s.payrollRepo.GetRun(ctx, id)
	if err != nil {
		return payroll.RunResponse{}, err
	}

	records, err := s.payrollRepo.ListRecordsByRun(ctx, run.ID)
	if err != nil {
		return payroll.RunResponse{}, err
	}

	resp := toRunResponse(run)
	resp.Records = toRecordResponses(records)
	return resp, nil
}

// ListRuns implements payroll.PayrollService.
func (s *payrollService) ListRuns(ctx context.Context) ([]payroll.RunResponse, error) {
	runs, err := s.payrollRepo.ListRuns(ctx)
	if err != nil {
		return nil, err
	}

	responses := make([]payroll.RunResponse, 0, len(runs))
	for _, run := range runs {
		responses = append(responses, toRunResponse(run))
	}

	return responses, nil
}

// GetRecord implements payroll.PayrollService.
func (s *payrollService) GetRecord(ctx context.Context, id string) (payroll.RecordResponse, error) {
	rec, err := s.payrollRepo.GetRecord(ctx, id)
	if err != nil {
		return payroll.RecordResponse{}, err
	}

	return toRecordResponse(rec), nil
}

// UpdateRecord implements payroll.PayrollService. Net pay is recomputed
// from the patched amounts; the stored leave deduction is kept.
func (s *payrollService) UpdateRecord(ctx context.Context, adminID int64, req payroll.UpdateRecordRequest) (payroll.RecordResponse, error) {
	if err := req.Validate(); err != nil {
		return payroll.RecordResponse{}, err
	}

	now := s.now()

	var updated payroll.Record
	err := s.tx.WithinTransaction(ctx, func(txCtx context.Context) error {
		rec, err := s.payrollRepo.GetRecord(txCtx, req.ID)
		if err != nil {
			return err
		}

		if req.BaseSalary != nil {
			rec.BaseSalary, _ = decimal.NewFromString(*req.BaseSalary)
		}
		if req.Bonus != nil {
			rec.Bonus, _ = decimal.NewFromString(*req.Bonus)
		}
		if req.OtherDeduction != nil {
			rec.OtherDeduction, _ = decimal.NewFromString(*req.OtherDeduction)
		}
		if req.Status != nil {
			rec.Status, _ = payroll.ParseRecordStatus(*req.Status)
		}
		if req.PayDate != nil {
			payDate, _ := time.Parse("2006-01-02", *req.PayDate)
			rec.PayDate = &payDate
		}

		netPay := rec.BaseSalary.Add(rec.Bonus).Sub(rec.OtherDeduction.Add(rec.LeaveDeduction))
		if netPay.IsNegative() {
			netPay = decimal.Zero
		}
		rec.NetPay = netPay

		updated, err = s.payrollRepo.UpdateRecord(txCtx, rec)
		if err != nil {
			return err
		}

		return s.auditRepo.Record(txCtx, audit.Event{
			ActorID:  adminID,
			Action:   audit.ActionPayrollRecUpdated,
			EntityID: updated.ID,
			Detail: map[string]any{
				"employee_id": updated.EmployeeID,
				"net_pay":     updated.NetPay.String(),
				"status":      string(updated.Status),
			},
			OccurredAt: now,
		})
	})
	if err != nil {
		return payroll.RecordResponse{}, err
	}

	return toRecordResponse(updated), nil
}

func toRunResponse(run payroll.Run) payroll.RunResponse {
	resp := payroll.RunResponse{
		ID:          run.ID,
		Year:        run.Year,
		Month:       int(run.Month),
		Status:      string(run.Status),
		EmployeeCnt: run.EmployeeCnt,
		TotalNetPay: run.TotalNetPay.String(),
		StartedAt:   run.StartedAt.Format(time.RFC3339),
	}
	if run.FinishedAt != nil {
		v := run.FinishedAt.Format(time.RFC3339)
		resp.FinishedAt = &v
	}
	return resp
}

func toRecordResponse(rec payroll.Record) payroll.RecordResponse {
	resp := payroll.RecordResponse{
		ID:             rec.ID,
		RunID:          rec.RunID,
		EmployeeID:     rec.EmployeeID,
		EmployeeName:   rec.EmployeeName,
		BaseSalary:     rec.BaseSalary.String(),
		Bonus:          rec.Bonus.String(),
		OtherDeduction: rec.OtherDeduction.String(),
		WorkingDays:    rec.WorkingDays,
		UnpaidDays:     rec.UnpaidDays,
		LeaveDeduction: rec.LeaveDeduction.String(),
		NetPay:         rec.NetPay.String(),
		Status:         string(rec.Status),
	}
	if rec.PayDate != nil {
		v := rec.PayDate.Format("2006-01-02")
		resp.PayDate = &v
	}
	return resp
}

func toRecordResponses(records []payroll.Record) []payroll.RecordResponse {
	responses := make([]payroll.RecordResponse, 0, len(records))
	for _, rec := range records {
		responses = append(responses, toRecordResponse(rec))
	}
	return responses
}
