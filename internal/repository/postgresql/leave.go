package postgresql

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/nimbus-hcm/hcm-backend-go/internal/domain/leave"
	"github.com/nimbus-hcm/hcm-backend-go/internal/pkg/database"
)

const leaveColumns = `
	id, employee_id, type, start_date, end_date, days, is_paid, reason, state,
	resolved_by, resolved_at, created_at, updated_at
`

type leaveRepository struct {
	db *database.DB
}

func scanLeave(row pgx.Row) (leave.Leave, error) {
	var l leave.Leave
	err := row.Scan(
		&l.ID, &l.EmployeeID, &l.Type, &l.StartDate, &l.EndDate, &l.Days, &l.IsPaid, &l.Reason, &l.State,
		&l.ResolvedBy, &l.ResolvedAt, &l.CreatedAt, &l.UpdatedAt,
	)
	return l, err
}

// Create implements leave.LeaveRepository.
func (r *leaveRepository) Create(ctx context.Context, l leave.Leave) (leave.Leave, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		INSERT INTO leaves (
			id, employee_id, type, start_date, end_date, days, is_paid, reason, state
		) VALUES (
			$1, $2, $3, $4, $5, $6, $7, $8, $9
		) RETURNING created_at, updated_at
	`

	l.ID = uuid.New().String()
	l.State = leave.StatePending

	err := q.QueryRow(ctx, query,
		l.ID, l.EmployeeID, l.Type, l.StartDate, l.EndDate, l.Days, l.IsPaid, l.Reason, l.State,
	).Scan(&l.CreatedAt, &l.UpdatedAt)

	if err != nil {
		return leave.Leave{}, fmt.Errorf("failed to create leave: %w", err)
	}

	return l, nil
}

// GetByID implements leave.LeaveRepository.
func (r *leaveRepository) GetByID(ctx context.Context, id string) (leave.Leave, error) {
	q := GetQuerier(ctx, r.db)

	query := `SELECT ` + leaveColumns + ` FROM leaves WHERE id = $1`

	l, err := scanLeave(q.QueryRow(ctx, query, id))
	if err != nil {
		if err == pgx.ErrNoRows {
			return leave.Leave{}, leave.ErrLeaveNotFound
		}
		return leave.Leave{}, fmt.Errorf("failed to get leave: %w", err)
	}

	return l, nil
}

// Resolve implements leave.LeaveRepository.
func (r *leaveRepository) Resolve(ctx context.Context, id string, from, to leave.State, resolvedBy int64, resolvedAt time.Time) (leave.Leave, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		UPDATE leaves
		SET state = $3, resolved_by = $4, resolved_at = $5, updated_at = NOW()
		WHERE id = $1 AND state = $2
		RETURNING ` + leaveColumns

	l, err := scanLeave(q.QueryRow(ctx, query, id, from, to, resolvedBy, resolvedAt))
	if err != nil {
		if err == pgx.ErrNoRows {
			if _, getErr := r.GetByID(ctx, id); getErr != nil {
				return leave.Leave{}, getErr
			}
			return leave.Leave{}, leave.ErrAlreadyProcessed
		}
		return leave.Leave{}, fmt.Errorf("failed to resolve leave: %w", err)
	}

	return l, nil
}

// Cancel implements leave.LeaveRepository.
func (r *leaveRepository) Cancel(ctx context.Context, id string, employeeID int64) (leave.Leave, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		UPDATE leaves
		SET state = 'canceled', updated_at = NOW()
		WHERE id = $1 AND employee_id = $2 AND state = 'pending'
		RETURNING ` + leaveColumns

	l, err := scanLeave(q.QueryRow(ctx, query, id, employeeID))
	if err != nil {
		if err == pgx.ErrNoRows {
			if _, getErr := r.GetByID(ctx, id); getErr != nil {
				return leave.Leave{}, getErr
			}
			return leave.Leave{}, leave.ErrCancelNotAllowed
		}
		return leave.Leave{}, fmt.Errorf("failed to cancel leave: %w", err)
	}

	return l, nil
}

// ListOverlapping implements leave.LeaveRepository.
func (r *leaveRepository) ListOverlapping(ctx context.Context, employeeID int64, start, end time.Time) ([]leave.Leave, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		SELECT ` + leaveColumns + `
		FROM leaves
		WHERE employee_id = $1
		  AND state IN ('pending', 'approved')
		  AND start_date <= $3
		  AND end_date >= $2
		ORDER BY start_date
	`

	return r.queryMany(ctx, q, query, employeeID, start, end)
}

// ListByEmployee implements leave.LeaveRepository.
func (r *leaveRepository) ListByEmployee(ctx context.Context, employeeID int64) ([]leave.Leave, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		SELECT ` + leaveColumns + `
		FROM leaves
		WHERE employee_id = $1
		ORDER BY start_date DESC
	`

	return r.queryMany(ctx, q, query, employeeID)
}

// ListApprovedInRange implements leave.LeaveRepository.
func (r *leaveRepository) ListApprovedInRange(ctx context.Context, start, end time.Time) ([]leave.Leave, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		SELECT ` + leaveColumns + `
		FROM leaves
		WHERE state = 'approved'
		  AND start_date <= $2
		  AND end_date >= $1
		ORDER BY employee_id, start_date
	`

	return r.queryMany(ctx, q, query, start, end)
}

func (r *leaveRepository) queryMany(ctx context.Context, q database.Querier, query string, args ...interface{}) ([]leave.Leave, error) {
	rows, err := q.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to list leaves: %w", err)
	}
	defer rows.Close()

	var leaves []leave.Leave
	for rows.Next() {
		l, err := scanLeave(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan leave: %w", err)
		}
		leaves = append(leaves, l)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate leaves: %w", err)
	}

	return leaves, nil
}

func NewLeaveRepository(db *database.DB) leave.LeaveRepository {
	return &leaveRepository{db: db}
}
