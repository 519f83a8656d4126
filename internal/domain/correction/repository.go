package correction

import (
	"context"
	"time"
)

type CorrectionRepository interface {
	Create(ctx context.Context, c Correction) (Correction, error)
	GetByID(ctx context.Context, id string) (Correction, error)
	// Resolve flips a pending request to approved/rejected. The state
	// guard lives in the UPDATE's WHERE clause so a concurrent second
	// resolution observes ErrAlreadyProcessed.
	Resolve(ctx context.Context, id string, state State, resolvedBy int64, resolvedAt time.Time) (Correction, error)
	ListMonth(ctx context.Context, employeeID int64, year int, month time.Month) ([]Correction, error)
}
