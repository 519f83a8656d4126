package correction

import (
	"fmt"
	"strings"
	"time"
)

// State is the two-transition approval state machine shared with the
// remote-work register: pending moves to approved or rejected exactly
// once.
type State string

const (
	StatePending  State = "pending"
	StateApproved State = "approved"
	StateRejected State = "rejected"
)

// Issue is the categorical reason behind a correction request. The
// approval path re-derives the record status differently per issue.
type Issue string

const (
	IssueForgotCheckIn  Issue = "forgot_check_in"
	IssueForgotCheckOut Issue = "forgot_check_out"
	IssueWrongTime      Issue = "wrong_time"
	IssueLocationIssue  Issue = "location_issue"
)

func ParseIssue(s string) (Issue, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "forgot_check_in":
		return IssueForgotCheckIn, nil
	case "forgot_check_out":
		return IssueForgotCheckOut, nil
	case "wrong_time":
		return IssueWrongTime, nil
	case "location_issue":
		return IssueLocationIssue, nil
	}
	return "", fmt.Errorf("unknown correction issue %q", s)
}

// Correction is a request to amend one attendance record.
type Correction struct {
	ID                string
	EmployeeID        int64
	Date              time.Time
	Issue             Issue
	RequestedCheckIn  *time.Time
	RequestedCheckOut *time.Time
	Note              *string
	State             State
	ResolvedBy        *int64
	ResolvedAt        *time.Time
	CreatedAt         time.Time
	UpdatedAt         time.Time
}
