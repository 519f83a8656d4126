package payroll

import (
	"github.com/shopspring/decimal"

	"github.com/nimbus-hcm/hcm-backend-go/internal/pkg/validator"
)

type GenerateRequest struct {
	Year  int `json:"year"`
	Month int `json:"month"`
}

func (r *GenerateRequest) Validate() error {
	var errs validator.ValidationErrors

	if !validator.IsValidYear(r.Year) {
		errs = append(errs, validator.ValidationError{
			Field:   "year",
			Message: "year must be between 2000 and 2100",
		})
	}

	if !validator.IsValidMonth(r.Month) {
		errs = append(errs, validator.ValidationError{
			Field:   "month",
			Message: "month must be between 1 and 12",
		})
	}

	if len(errs) > 0 {
		return errs
	}

	return nil
}

// UpdateRecordRequest patches a single payroll record between runs.
// Net pay is recomputed from the patched amounts; edits do not survive
// a re-run of the period.
type UpdateRecordRequest struct {
	ID             string  `json:"-"`
	BaseSalary     *string `json:"base_salary,omitempty"`
	Bonus          *string `json:"bonus,omitempty"`
	OtherDeduction *string `json:"other_deduction,omitempty"`
	Status         *string `json:"status,omitempty"`   // pending | processed
	PayDate        *string `json:"pay_date,omitempty"` // YYYY-MM-DD
}

func (r *UpdateRecordRequest) Validate() error {
	var errs validator.ValidationErrors

	if validator.IsEmpty(r.ID) {
		errs = append(errs, validator.ValidationError{
			Field:   "id",
			Message: "payroll record id is required",
		})
	}

	checkAmount := func(field string, value *string) {
		if value == nil {
			return
		}
		amount, err := decimal.NewFromString(*value)
		if err != nil || amount.IsNegative() {
			errs = append(errs, validator.ValidationError{
				Field:   field,
				Message: field + " must be a non-negative amount",
			})
		}
	}
	checkAmount("base_salary", r.BaseSalary)
	checkAmount("bonus", r.Bonus)
	checkAmount("other_deduction", r.OtherDeduction)

	if r.Status != nil {
		if _, err := ParseRecordStatus(*r.Status); err != nil {
			errs = append(errs, validator.ValidationError{
				Field:   "status",
				Message: "status must be pending or processed",
			})
		}
	}

	if r.PayDate != nil {
		if _, ok := validator.IsValidDate(*r.PayDate); !ok {
			errs = append(errs, validator.ValidationError{
				Field:   "pay_date",
				Message: "pay_date must be in YYYY-MM-DD format",
			})
		}
	}

	if len(errs) > 0 {
		return errs
	}

	return nil
}

type RecordResponse struct {
	ID             string  `json:"id"`
	RunID          string  `json:"run_id"`
	EmployeeID     int64   `json:"employee_id"`
	EmployeeName   *string `json:"employee_name,omitempty"`
	BaseSalary     string  `json:"base_salary"`
	Bonus          string  `json:"bonus"`
	OtherDeduction string  `json:"other_deduction"`
	WorkingDays    int     `json:"working_days"`
	UnpaidDays     int     `json:"unpaid_days"`
	LeaveDeduction string  `json:"leave_deduction"`
	NetPay         string  `json:"net_pay"`
	Status         string  `json:"status"`
	PayDate        *string `json:"pay_date,omitempty"`
}

type RunResponse struct {
	ID          string           `json:"id"`
	Year        int              `json:"year"`
	Month       int              `json:"month"`
	Status      string           `json:"status"`
	EmployeeCnt int              `json:"employee_count"`
	TotalNetPay string           `json:"total_net_pay"`
	StartedAt   string           `json:"started_at"`
	FinishedAt  *string          `json:"finished_at,omitempty"`
	Records     []RecordResponse `json:"records,omitempty"`
}
