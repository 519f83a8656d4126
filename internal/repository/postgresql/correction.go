package postgresql

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/nimbus-hcm/hcm-backend-go/internal/domain/correction"
	"github.com/nimbus-hcm/hcm-backend-go/internal/pkg/database"
)

const correctionColumns = `
	id, employee_id, date, issue, requested_check_in, requested_check_out,
	note, state, resolved_by, resolved_at, created_at, updated_at
`

type correctionRepository struct {
	db *database.DB
}

func scanCorrection(row pgx.Row) (correction.Correction, error) {
	var c correction.Correction
	err := row.Scan(
		&c.ID, &c.EmployeeID, &c.Date, &c.Issue, &c.RequestedCheckIn, &c.RequestedCheckOut,
		&c.Note, &c.State, &c.ResolvedBy, &c.ResolvedAt, &c.CreatedAt, &c.UpdatedAt,
	)
	return c, err
}

// Create implements correction.CorrectionRepository.
func (r *correctionRepository) Create(ctx context.Context, c correction.Correction) (correction.Correction, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		INSERT INTO attendance_corrections (
			id, employee_id, date, issue, requested_check_in, requested_check_out, note, state
		) VALUES (
			$1, $2, $3, $4, $5, $6, $7, $8
		) RETURNING created_at, updated_at
	`

	c.ID = uuid.New().String()
	c.State = correction.StatePending

	err := q.QueryRow(ctx, query,
		c.ID, c.EmployeeID, c.Date, c.Issue,
		c.RequestedCheckIn, c.RequestedCheckOut, c.Note, c.State,
	).Scan(&c.CreatedAt, &c.UpdatedAt)

	if err != nil {
		return correction.Correction{}, fmt.Errorf("failed to create correction: %w", err)
	}

	return c, nil
}

// GetByID implements correction.CorrectionRepository.
func (r *correctionRepository) GetByID(ctx context.Context, id string) (correction.Correction, error) {
	q := GetQuerier(ctx, r.db)

	query := `SELECT ` + correctionColumns + ` FROM attendance_corrections WHERE id = $1`

	c, err := scanCorrection(q.QueryRow(ctx, query, id))
	if err != nil {
		if err == pgx.ErrNoRows {
			return correction.Correction{}, correction.ErrCorrectionNotFound
		}
		return correction.Correction{}, fmt.Errorf("failed to get correction: %w", err)
	}

	return c, nil
}

// Resolve implements correction.CorrectionRepository.
func (r *correctionRepository) Resolve(ctx context.Context, id string, state correction.State, resolvedBy int64, resolvedAt time.Time) (correction.Correction, error) {
	q := GetQuerier(ctx, r.db)

	// The state predicate makes the transition single-shot under
	// concurrent resolutions.
	query := `
		UPDATE attendance_corrections
		SET state = $2, resolved_by = $3, resolved_at = $4, updated_at = NOW()
		WHERE id = $1 AND state = 'pending'
		RETURNING ` + correctionColumns

	c, err := scanCorrection(q.QueryRow(ctx, query, id, state, resolvedBy, resolvedAt))
	if err != nil {
		if err == pgx.ErrNoRows {
			if _, getErr := r.GetByID(ctx, id); getErr != nil {
				return correction.Correction{}, getErr
			}
			return correction.Correction{}, correction.ErrAlreadyProcessed
		}
		return correction.Correction{}, fmt.Errorf("failed to resolve correction: %w", err)
	}

	return c, nil
}

// ListMonth implements correction.CorrectionRepository.
func (r *correctionRepository) ListMonth(ctx context.Context, employeeID int64, year int, month time.Month) ([]correction.Correction, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		SELECT ` + correctionColumns + `
		FROM attendance_corrections
		WHERE employee_id = $1
		  AND date >= $2
		  AND date < $3
		ORDER BY date
	`

	start := time.Date(year, month, 1, 0, 0, 0, 0, time.UTC)
	end := start.AddDate(0, 1, 0)

	rows, err := q.Query(ctx, query, employeeID, start, end)
	if err != nil {
		return nil, fmt.Errorf("failed to list corrections: %w", err)
	}
	defer rows.Close()

	var corrections []correction.Correction
	for rows.Next() {
		c, err := scanCorrection(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan correction: %w", err)
		}
		corrections = append(corrections, c)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate corrections: %w", err)
	}

	return corrections, nil
}

func NewCorrectionRepository(db *database.DB) correction.CorrectionRepository {
	return &correctionRepository{db: db}
}
