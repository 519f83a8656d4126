package employee

import (
	"time"

	"github.com/shopspring/decimal"
)

type EmployeeStatus string

const (
	StatusActive   EmployeeStatus = "active"
	StatusInactive EmployeeStatus = "inactive"
)

// Employee is the directory record owned by HR. The core reads it;
// only leave approval writes back, and only the leave balance.
type Employee struct {
	ID           int64
	FullName     string
	Status       EmployeeStatus
	BaseSalary   decimal.Decimal
	LeaveBalance int
	CreatedAt    time.Time
	UpdatedAt    time.Time
}

func (e Employee) IsActive() bool {
	return e.Status == StatusActive
}
