package leave

import (
	"fmt"
	"strings"
	"time"
)

type State string

const (
	StatePending  State = "pending"
	StateApproved State = "approved"
	StateRejected State = "rejected"
	StateCanceled State = "canceled"
)

type Type string

const (
	TypeAnnual    Type = "annual"
	TypeSick      Type = "sick"
	TypeCasual    Type = "casual"
	TypeEmergency Type = "emergency"
)

func ParseType(s string) (Type, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "annual":
		return TypeAnnual, nil
	case "sick":
		return TypeSick, nil
	case "casual":
		return TypeCasual, nil
	case "emergency":
		return TypeEmergency, nil
	}
	return "", fmt.Errorf("unknown leave type %q", s)
}

// Leave consumes the employee's leave balance on approval regardless
// of type. IsPaid decides salary only: unpaid days feed the payroll
// proration deduction.
type Leave struct {
	ID         string
	EmployeeID int64
	Type       Type
	StartDate  time.Time
	EndDate    time.Time
	Days       int
	IsPaid     bool
	Reason     *string
	State      State
	ResolvedBy *int64
	ResolvedAt *time.Time
	CreatedAt  time.Time
	UpdatedAt  time.Time
}
