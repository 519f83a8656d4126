package correction

import (
	"strings"
	"time"

	"github.com/nimbus-hcm/hcm-backend-go/internal/pkg/validator"
)

type CreateRequest struct {
	Date              string  `json:"date"` // YYYY-MM-DD
	Issue             string  `json:"issue"`
	RequestedCheckIn  *string `json:"requested_check_in,omitempty"`  // RFC3339
	RequestedCheckOut *string `json:"requested_check_out,omitempty"` // RFC3339
	Note              *string `json:"note,omitempty"`
}

func (r *CreateRequest) Validate() error {
	var errs validator.ValidationErrors

	if _, valid := validator.IsValidDate(r.Date); !valid {
		errs = append(errs, validator.ValidationError{
			Field:   "date",
			Message: "date must be in YYYY-MM-DD format",
		})
	}

	issue, err := ParseIssue(r.Issue)
	if err != nil {
		errs = append(errs, validator.ValidationError{
			Field:   "issue",
			Message: "issue must be one of: forgot_check_in, forgot_check_out, wrong_time, location_issue",
		})
	} else {
		switch issue {
		case IssueForgotCheckIn:
			if r.RequestedCheckIn == nil {
				errs = append(errs, validator.ValidationError{
					Field:   "requested_check_in",
					Message: "requested_check_in is required for a forgot_check_in correction",
				})
			}
		case IssueForgotCheckOut:
			if r.RequestedCheckOut == nil {
				errs = append(errs, validator.ValidationError{
					Field:   "requested_check_out",
					Message: "requested_check_out is required for a forgot_check_out correction",
				})
			}
		case IssueWrongTime:
			if r.RequestedCheckIn == nil && r.RequestedCheckOut == nil {
				errs = append(errs, validator.ValidationError{
					Field:   "requested_check_in",
					Message: "a wrong_time correction needs at least one requested time",
				})
			}
		}
	}

	if r.RequestedCheckIn != nil {
		if _, err := time.Parse(time.RFC3339, *r.RequestedCheckIn); err != nil {
			errs = append(errs, validator.ValidationError{
				Field:   "requested_check_in",
				Message: "requested_check_in must be an RFC3339 timestamp",
			})
		}
	}

	if r.RequestedCheckOut != nil {
		if _, err := time.Parse(time.RFC3339, *r.RequestedCheckOut); err != nil {
			errs = append(errs, validator.ValidationError{
				Field:   "requested_check_out",
				Message: "requested_check_out must be an RFC3339 timestamp",
			})
		}
	}

	if len(errs) > 0 {
		return errs
	}

	return nil
}

type ResolveRequest struct {
	ID     string `json:"-"`
	Action string `json:"action"` // approved | rejected
}

func (r *ResolveRequest) Validate() error {
	var errs validator.ValidationErrors

	if validator.IsEmpty(r.ID) {
		errs = append(errs, validator.ValidationError{
			Field:   "id",
			Message: "correction id is required",
		})
	}

	action := strings.ToLower(strings.TrimSpace(r.Action))
	if action != string(StateApproved) && action != string(StateRejected) {
		errs = append(errs, validator.ValidationError{
			Field:   "action",
			Message: "action must be approved or rejected",
		})
	}

	if len(errs) > 0 {
		return errs
	}

	return nil
}

// ToResponse maps a correction to its transport shape.
func ToResponse(c Correction) Response {
	resp := Response{
		ID:         c.ID,
		EmployeeID: c.EmployeeID,
		Date:       c.Date.Format("2006-01-02"),
		Issue:      string(c.Issue),
		Note:       c.Note,
		State:      string(c.State),
		ResolvedBy: c.ResolvedBy,
		CreatedAt:  c.CreatedAt.Format(time.RFC3339),
	}
	if c.RequestedCheckIn != nil {
		v := c.RequestedCheckIn.Format(time.RFC3339)
		resp.RequestedCheckIn = &v
	}
	if c.RequestedCheckOut != nil {
		v := c.RequestedCheckOut.Format(time.RFC3339)
		resp.RequestedCheckOut = &v
	}
	if c.ResolvedAt != nil {
		v := c.ResolvedAt.Format(time.RFC3339)
		resp.ResolvedAt = &v
	}
	return resp
}

type Response struct {
	ID                string  `json:"id"`
	EmployeeID        int64   `json:"employee_id"`
	Date              string  `json:"date"`
	Issue             string  `json:"issue"`
	RequestedCheckIn  *string `json:"requested_check_in,omitempty"`
	RequestedCheckOut *string `json:"requested_check_out,omitempty"`
	Note              *string `json:"note,omitempty"`
	State             string  `json:"state"`
	ResolvedBy        *int64  `json:"resolved_by,omitempty"`
	ResolvedAt        *string `json:"resolved_at,omitempty"`
	CreatedAt         string  `json:"created_at"`
}
