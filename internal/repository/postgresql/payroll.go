package postgresql

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/nimbus-hcm/hcm-backend-go/internal/domain/payroll"
	"github.com/nimbus-hcm/hcm-backend-go/internal/pkg/database"
)

// Namespace for period advisory locks, distinct from any other
// pg_advisory users in the database.
const payrollLockClass = 7301

type payrollRepository struct {
	db *database.DB
}

// LockPeriod implements payroll.PayrollRepository.
func (p *payrollRepository) LockPeriod(ctx context.Context, year int, month time.Month) error {
	q := GetQuerier(ctx, p.db)

	// Non-blocking: a second generator for the same period fails fast
	// instead of queueing behind the first.
	var acquired bool
	err := q.QueryRow(ctx,
		`SELECT pg_try_advisory_xact_lock($1, $2)`,
		payrollLockClass, year*100+int(month),
	).Scan(&acquired)

	if err != nil {
		return fmt.Errorf("failed to acquire payroll period lock: %w", err)
	}
	if !acquired {
		return payroll.ErrRunInProgress
	}

	return nil
}

// UpsertRun implements payroll.PayrollRepository. A re-run reuses the
// period's existing row, flipping it back to processing.
func (p *payrollRepository) UpsertRun(ctx context.Context, run payroll.Run) (payroll.Run, error) {
	q := GetQuerier(ctx, p.db)

	query := `
		INSERT INTO payroll_runs (
			id, year, month, status, started_by, started_at
		) VALUES (
			$1, $2, $3, 'processing', $4, $5
		)
		ON CONFLICT (year, month) DO UPDATE
		SET status = 'processing',
		    started_by = EXCLUDED.started_by,
		    started_at = EXCLUDED.started_at,
		    finished_at = NULL
		RETURNING id, started_at
	`

	run.Status = payroll.RunStatusProcessing

	err := q.QueryRow(ctx, query,
		uuid.New().String(), run.Year, int(run.Month), run.StartedBy, run.StartedAt,
	).Scan(&run.ID, &run.StartedAt)

	if err != nil {
		return payroll.Run{}, fmt.Errorf("failed to upsert payroll run: %w", err)
	}

	return run, nil
}

// FinishRun implements payroll.PayrollRepository.
func (p *payrollRepository) FinishRun(ctx context.Context, runID string, status payroll.RunStatus, employeeCnt int, totalNetPay string, finishedAt time.Time) error {
	q := GetQuerier(ctx, p.db)

	query := `
		UPDATE payroll_runs
		SET status = $2, employee_count = $3, total_net_pay = $4, finished_at = $5
		WHERE id = $1
	`

	tag, err := q.Exec(ctx, query, runID, status, employeeCnt, totalNetPay, finishedAt)
	if err != nil {
		return fmt.Errorf("failed to finish payroll run: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return payroll.ErrRunNotFound
	}

	return nil
}

func scanRun(row pgx.Row) (payroll.Run, error) {
	var run payroll.Run
	var month int
	err := row.Scan(
		&run.ID, &run.Year, &month, &run.Status, &run.EmployeeCnt,
		&run.TotalNetPay, &run.StartedBy, &run.StartedAt, &run.FinishedAt,
	)
	run.Month = time.Month(month)
	return run, err
}

const runColumns = `
	id, year, month, status, employee_count, total_net_pay,
	started_by, started_at, finished_at
`

// GetRun implements payroll.PayrollRepository.
func (p *payrollRepository) GetRun(ctx context.Context, id string) (payroll.Run, error) {
	q := GetQuerier(ctx, p.db)

	query := `SELECT ` + runColumns + ` FROM payroll_runs WHERE id = $1`

	run, err := scanRun(q.QueryRow(ctx, query, id))
	if err != nil {
		if err == pgx.ErrNoRows {
			return payroll.Run{}, payroll.ErrRunNotFound
		}
		return payroll.Run{}, fmt.Errorf("failed to get payroll run: %w", err)
	}

	return run, nil
}

// GetRunByPeriod implements payroll.PayrollRepository.
func (p *payrollRepository) GetRunByPeriod(ctx context.Context, year int, month time.Month) (payroll.Run, error) {
	q := GetQuerier(ctx, p.db)

	query := `
		SELECT ` + runColumns + `
		FROM payroll_runs
		WHERE year = $1 AND month = $2
		ORDER BY started_at DESC
		LIMIT 1
	`

	run, err := scanRun(q.QueryRow(ctx, query, year, int(month)))
	if err != nil {
		if err == pgx.ErrNoRows {
			return payroll.Run{}, payroll.ErrRunNotFound
		}
		return payroll.Run{}, fmt.Errorf("failed to get payroll run by period: %w", err)
	}

	return run, nil
}

// ListRuns implements payroll.PayrollRepository.
func (p *payrollRepository) ListRuns(ctx context.Context) ([]payroll.Run, error) {
	q := GetQuerier(ctx, p.db)

	query := `SELECT ` + runColumns + ` FROM payroll_runs ORDER BY year DESC, month DESC`

	rows, err := q.Query(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("failed to list payroll runs: %w", err)
	}
	defer rows.Close()

	var runs []payroll.Run
	for rows.Next() {
		run, err := scanRun(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan payroll run: %w", err)
		}
		runs = append(runs, run)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate payroll runs: %w", err)
	}

	return runs, nil
}

// DeleteRecordsForPeriod implements payroll.PayrollRepository.
func (p *payrollRepository) DeleteRecordsForPeriod(ctx context.Context, year int, month time.Month) error {
	q := GetQuerier(ctx, p.db)

	query := `
		DELETE FROM payroll_records
		WHERE run_id IN (
			SELECT id FROM payroll_runs WHERE year = $1 AND month = $2
		)
	`

	if _, err := q.Exec(ctx, query, year, int(month)); err != nil {
		return fmt.Errorf("failed to delete payroll records for period: %w", err)
	}

	return nil
}

// InsertRecords implements payroll.PayrollRepository. The run's
// records go in as a single multi-row insert.
func (p *payrollRepository) InsertRecords(ctx context.Context, records []payroll.Record) error {
	if len(records) == 0 {
		return nil
	}

	q := GetQuerier(ctx, p.db)

	valueStrings := make([]string, 0, len(records))
	valueArgs := make([]interface{}, 0, len(records)*12)

	for i := range records {
		records[i].ID = uuid.New().String()
		rec := records[i]

		base := i * 12
		valueStrings = append(valueStrings, fmt.Sprintf(
			"($%d, $%d, $%d, $%d, $%d, $%d, $%d, $%d, $%d, $%d, $%d, $%d)",
			base+1, base+2, base+3, base+4, base+5, base+6,
			base+7, base+8, base+9, base+10, base+11, base+12,
		))
		valueArgs = append(valueArgs,
			rec.ID, rec.RunID, rec.EmployeeID, rec.BaseSalary, rec.Bonus, rec.OtherDeduction,
			rec.WorkingDays, rec.UnpaidDays, rec.LeaveDeduction, rec.NetPay, rec.Status, rec.PayDate,
		)
	}

	query := fmt.Sprintf(`
		INSERT INTO payroll_records (
			id, run_id, employee_id, base_salary, bonus, other_deduction,
			working_days, unpaid_days, leave_deduction, net_pay, status, pay_date
		) VALUES %s
	`, strings.Join(valueStrings, ", "))

	if _, err := q.Exec(ctx, query, valueArgs...); err != nil {
		return fmt.Errorf("failed to insert payroll records: %w", err)
	}

	return nil
}

const recordColumns = `
	r.id, r.run_id, r.employee_id, r.base_salary, r.bonus, r.other_deduction,
	r.working_days, r.unpaid_days, r.leave_deduction, r.net_pay, r.status, r.pay_date,
	r.created_at, e.full_name
`

func scanPayrollRecord(row pgx.Row) (payroll.Record, error) {
	var rec payroll.Record
	err := row.Scan(
		&rec.ID, &rec.RunID, &rec.EmployeeID, &rec.BaseSalary, &rec.Bonus, &rec.OtherDeduction,
		&rec.WorkingDays, &rec.UnpaidDays, &rec.LeaveDeduction, &rec.NetPay, &rec.Status, &rec.PayDate,
		&rec.CreatedAt, &rec.EmployeeName,
	)
	return rec, err
}

// UpdateRecord implements payroll.PayrollRepository.
func (p *payrollRepository) UpdateRecord(ctx context.Context, rec payroll.Record) (payroll.Record, error) {
	q := GetQuerier(ctx, p.db)

	query := `
		UPDATE payroll_records r
		SET base_salary = $2, bonus = $3, other_deduction = $4,
		    net_pay = $5, status = $6, pay_date = $7
		FROM employees e
		WHERE r.id = $1 AND e.id = r.employee_id
		RETURNING ` + recordColumns

	updated, err := scanPayrollRecord(q.QueryRow(ctx, query,
		rec.ID, rec.BaseSalary, rec.Bonus, rec.OtherDeduction,
		rec.NetPay, rec.Status, rec.PayDate,
	))
	if err != nil {
		if err == pgx.ErrNoRows {
			return payroll.Record{}, payroll.ErrRecordNotFound
		}
		return payroll.Record{}, fmt.Errorf("failed to update payroll record: %w", err)
	}

	return updated, nil
}

// GetRecord implements payroll.PayrollRepository.
func (p *payrollRepository) GetRecord(ctx context.Context, id string) (payroll.Record, error) {
	q := GetQuerier(ctx, p.db)

	query := `
		SELECT ` + recordColumns + `
		FROM payroll_records r
		JOIN employees e ON e.id = r.employee_id
		WHERE r.id = $1
	`

	rec, err := scanPayrollRecord(q.QueryRow(ctx, query, id))
	if err != nil {
		if err == pgx.ErrNoRows {
			return payroll.Record{}, payroll.ErrRecordNotFound
		}
		return payroll.Record{}, fmt.Errorf("failed to get payroll record: %w", err)
	}

	return rec, nil
}

// ListRecordsByRun implements payroll.PayrollRepository.
func (p *payrollRepository) ListRecordsByRun(ctx context.Context, runID string) ([]payroll.Record, error) {
	q := GetQuerier(ctx, p.db)

	query := `
		SELECT ` + recordColumns + `
		FROM payroll_records r
		JOIN employees e ON e.id = r.employee_id
		WHERE r.run_id = $1
		ORDER BY r.employee_id
	`

	rows, err := q.Query(ctx, query, runID)
	if err != nil {
		return nil, fmt.Errorf("failed to list payroll records: %w", err)
	}
	defer rows.Close()

	var records []payroll.Record
	for rows.Next() {
		rec, err := scanPayrollRecord(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan payroll record: %w", err)
		}
		records = append(records, rec)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate payroll records: %w", err)
	}

	return records, nil
}

func NewPayrollRepository(db *database.DB) payroll.PayrollRepository {
	return &payrollRepository{db: db}
}
