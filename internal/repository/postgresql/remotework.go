package postgresql

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/nimbus-hcm/hcm-backend-go/internal/domain/remotework"
	"github.com/nimbus-hcm/hcm-backend-go/internal/pkg/database"
)

const remoteWorkColumns = `
	id, employee_id, start_date, end_date, reason, state,
	resolved_by, resolved_at, created_at, updated_at
`

type remoteWorkRepository struct {
	db *database.DB
}

func scanRemoteWork(row pgx.Row) (remotework.Request, error) {
	var req remotework.Request
	err := row.Scan(
		&req.ID, &req.EmployeeID, &req.StartDate, &req.EndDate, &req.Reason, &req.State,
		&req.ResolvedBy, &req.ResolvedAt, &req.CreatedAt, &req.UpdatedAt,
	)
	return req, err
}

// Create implements remotework.RemoteWorkRepository.
func (r *remoteWorkRepository) Create(ctx context.Context, req remotework.Request) (remotework.Request, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		INSERT INTO remote_work_requests (
			id, employee_id, start_date, end_date, reason, state
		) VALUES (
			$1, $2, $3, $4, $5, $6
		) RETURNING created_at, updated_at
	`

	req.ID = uuid.New().String()
	req.State = remotework.StatePending

	err := q.QueryRow(ctx, query,
		req.ID, req.EmployeeID, req.StartDate, req.EndDate, req.Reason, req.State,
	).Scan(&req.CreatedAt, &req.UpdatedAt)

	if err != nil {
		return remotework.Request{}, fmt.Errorf("failed to create remote work request: %w", err)
	}

	return req, nil
}

// GetByID implements remotework.RemoteWorkRepository.
func (r *remoteWorkRepository) GetByID(ctx context.Context, id string) (remotework.Request, error) {
	q := GetQuerier(ctx, r.db)

	query := `SELECT ` + remoteWorkColumns + ` FROM remote_work_requests WHERE id = $1`

	req, err := scanRemoteWork(q.QueryRow(ctx, query, id))
	if err != nil {
		if err == pgx.ErrNoRows {
			return remotework.Request{}, remotework.ErrRequestNotFound
		}
		return remotework.Request{}, fmt.Errorf("failed to get remote work request: %w", err)
	}

	return req, nil
}

// Resolve implements remotework.RemoteWorkRepository.
func (r *remoteWorkRepository) Resolve(ctx context.Context, id string, state remotework.State, resolvedBy int64, resolvedAt time.Time) (remotework.Request, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		UPDATE remote_work_requests
		SET state = $2, resolved_by = $3, resolved_at = $4, updated_at = NOW()
		WHERE id = $1 AND state = 'pending'
		RETURNING ` + remoteWorkColumns

	req, err := scanRemoteWork(q.QueryRow(ctx, query, id, state, resolvedBy, resolvedAt))
	if err != nil {
		if err == pgx.ErrNoRows {
			if _, getErr := r.GetByID(ctx, id); getErr != nil {
				return remotework.Request{}, getErr
			}
			return remotework.Request{}, remotework.ErrAlreadyProcessed
		}
		return remotework.Request{}, fmt.Errorf("failed to resolve remote work request: %w", err)
	}

	return req, nil
}

// ListOverlapping implements remotework.RemoteWorkRepository.
func (r *remoteWorkRepository) ListOverlapping(ctx context.Context, employeeID int64, start, end time.Time) ([]remotework.Request, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		SELECT ` + remoteWorkColumns + `
		FROM remote_work_requests
		WHERE employee_id = $1
		  AND state IN ('pending', 'approved')
		  AND start_date <= $3
		  AND end_date >= $2
		ORDER BY start_date
	`

	rows, err := q.Query(ctx, query, employeeID, start, end)
	if err != nil {
		return nil, fmt.Errorf("failed to list overlapping remote work requests: %w", err)
	}
	defer rows.Close()

	var requests []remotework.Request
	for rows.Next() {
		req, err := scanRemoteWork(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan remote work request: %w", err)
		}
		requests = append(requests, req)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate remote work requests: %w", err)
	}

	return requests, nil
}

// HasApprovedForDate implements remotework.RemoteWorkRepository.
func (r *remoteWorkRepository) HasApprovedForDate(ctx context.Context, employeeID int64, date time.Time) (bool, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		SELECT EXISTS (
			SELECT 1
			FROM remote_work_requests
			WHERE employee_id = $1
			  AND state = 'approved'
			  AND start_date <= $2
			  AND end_date >= $2
		)
	`

	var exists bool
	if err := q.QueryRow(ctx, query, employeeID, date).Scan(&exists); err != nil {
		return false, fmt.Errorf("failed to check approved remote work: %w", err)
	}

	return exists, nil
}

// ListByEmployee implements remotework.RemoteWorkRepository.
func (r *remoteWorkRepository) ListByEmployee(ctx context.Context, employeeID int64) ([]remotework.Request, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		SELECT ` + remoteWorkColumns + `
		FROM remote_work_requests
		WHERE employee_id = $1
		ORDER BY start_date DESC
	`

	rows, err := q.Query(ctx, query, employeeID)
	if err != nil {
		return nil, fmt.Errorf("failed to list remote work requests: %w", err)
	}
	defer rows.Close()

	var requests []remotework.Request
	for rows.Next() {
		req, err := scanRemoteWork(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan remote work request: %w", err)
		}
		requests = append(requests, req)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate remote work requests: %w", err)
	}

	return requests, nil
}

func NewRemoteWorkRepository(db *database.DB) remotework.RemoteWorkRepository {
	return &remoteWorkRepository{db: db}
}
