package postgresql

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/nimbus-hcm/hcm-backend-go/internal/domain/attendance"
	"github.com/nimbus-hcm/hcm-backend-go/internal/pkg/database"
)

const attendanceColumns = `
	id, employee_id, date, check_in, check_out, status,
	check_in_latitude, check_in_longitude, check_out_latitude, check_out_longitude,
	late_minutes, early_leave_minutes, overtime_minutes, work_minutes,
	created_at, updated_at
`

type attendanceRepository struct {
	db *database.DB
}

func scanRecord(row pgx.Row) (attendance.Record, error) {
	var rec attendance.Record
	err := row.Scan(
		&rec.ID, &rec.EmployeeID, &rec.Date, &rec.CheckIn, &rec.CheckOut, &rec.Status,
		&rec.CheckInLatitude, &rec.CheckInLongitude, &rec.CheckOutLatitude, &rec.CheckOutLongitude,
		&rec.LateMinutes, &rec.EarlyLeaveMinutes, &rec.OvertimeMinutes, &rec.WorkMinutes,
		&rec.CreatedAt, &rec.UpdatedAt,
	)
	return rec, err
}

// Create implements attendance.AttendanceRepository.
func (a *attendanceRepository) Create(ctx context.Context, record attendance.Record) (attendance.Record, error) {
	q := GetQuerier(ctx, a.db)

	query := `
		INSERT INTO attendance_records (
			id, employee_id, date, check_in, status,
			check_in_latitude, check_in_longitude, late_minutes
		) VALUES (
			$1, $2, $3, $4, $5, $6, $7, $8
		)
		ON CONFLICT (employee_id, date) DO NOTHING
		RETURNING created_at, updated_at
	`

	record.ID = uuid.New().String()

	err := q.QueryRow(ctx, query,
		record.ID,
		record.EmployeeID,
		record.Date,
		record.CheckIn,
		record.Status,
		record.CheckInLatitude,
		record.CheckInLongitude,
		record.LateMinutes,
	).Scan(&record.CreatedAt, &record.UpdatedAt)

	if err != nil {
		// DO NOTHING yields no row when a concurrent check-in won the
		// insert race for the same (employee, date).
		if err == pgx.ErrNoRows {
			return attendance.Record{}, attendance.ErrAlreadyCheckedIn
		}
		return attendance.Record{}, fmt.Errorf("failed to create attendance record: %w", err)
	}

	return record, nil
}

// GetByID implements attendance.AttendanceRepository.
func (a *attendanceRepository) GetByID(ctx context.Context, id string) (attendance.Record, error) {
	q := GetQuerier(ctx, a.db)

	query := `SELECT ` + attendanceColumns + ` FROM attendance_records WHERE id = $1`

	rec, err := scanRecord(q.QueryRow(ctx, query, id))
	if err != nil {
		if err == pgx.ErrNoRows {
			return attendance.Record{}, attendance.ErrRecordNotFound
		}
		return attendance.Record{}, fmt.Errorf("failed to get attendance record: %w", err)
	}

	return rec, nil
}

// GetByEmployeeAndDate implements attendance.AttendanceRepository.
func (a *attendanceRepository) GetByEmployeeAndDate(ctx context.Context, employeeID int64, date time.Time) (*attendance.Record, error) {
	q := GetQuerier(ctx, a.db)

	query := `SELECT ` + attendanceColumns + ` FROM attendance_records WHERE employee_id = $1 AND date = $2`

	rec, err := scanRecord(q.QueryRow(ctx, query, employeeID, date))
	if err != nil {
		if err == pgx.ErrNoRows {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to get attendance record: %w", err)
	}

	return &rec, nil
}

// Update implements attendance.AttendanceRepository.
func (a *attendanceRepository) Update(ctx context.Context, record attendance.Record) error {
	q := GetQuerier(ctx, a.db)

	query := `
		UPDATE attendance_records
		SET check_in = $2, check_out = $3, status = $4,
			check_in_latitude = $5, check_in_longitude = $6,
			check_out_latitude = $7, check_out_longitude = $8,
			late_minutes = $9, early_leave_minutes = $10,
			overtime_minutes = $11, work_minutes = $12,
			updated_at = NOW()
		WHERE id = $1
	`

	tag, err := q.Exec(ctx, query,
		record.ID,
		record.CheckIn,
		record.CheckOut,
		record.Status,
		record.CheckInLatitude,
		record.CheckInLongitude,
		record.CheckOutLatitude,
		record.CheckOutLongitude,
		record.LateMinutes,
		record.EarlyLeaveMinutes,
		record.OvertimeMinutes,
		record.WorkMinutes,
	)

	if err != nil {
		return fmt.Errorf("failed to update attendance record: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return attendance.ErrRecordNotFound
	}

	return nil
}

// ListMonth implements attendance.AttendanceRepository.
func (a *attendanceRepository) ListMonth(ctx context.Context, employeeID int64, year int, month time.Month) ([]attendance.Record, error) {
	q := GetQuerier(ctx, a.db)

	query := `
		SELECT ` + attendanceColumns + `
		FROM attendance_records
		WHERE employee_id = $1
		  AND date >= $2
		  AND date < $3
		ORDER BY date
	`

	start := time.Date(year, month, 1, 0, 0, 0, 0, time.UTC)
	end := start.AddDate(0, 1, 0)

	rows, err := q.Query(ctx, query, employeeID, start, end)
	if err != nil {
		return nil, fmt.Errorf("failed to list month attendance: %w", err)
	}
	defer rows.Close()

	var records []attendance.Record
	for rows.Next() {
		rec, err := scanRecord(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan attendance record: %w", err)
		}
		records = append(records, rec)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate attendance records: %w", err)
	}

	return records, nil
}

// ListByDate implements attendance.AttendanceRepository.
func (a *attendanceRepository) ListByDate(ctx context.Context, date time.Time) ([]attendance.Record, error) {
	q := GetQuerier(ctx, a.db)

	query := `
		SELECT r.id, r.employee_id, r.date, r.check_in, r.check_out, r.status,
			   r.check_in_latitude, r.check_in_longitude, r.check_out_latitude, r.check_out_longitude,
			   r.late_minutes, r.early_leave_minutes, r.overtime_minutes, r.work_minutes,
			   r.created_at, r.updated_at, e.full_name
		FROM attendance_records r
		JOIN employees e ON e.id = r.employee_id
		WHERE r.date = $1
		ORDER BY e.full_name
	`

	rows, err := q.Query(ctx, query, date)
	if err != nil {
		return nil, fmt.Errorf("failed to list attendance by date: %w", err)
	}
	defer rows.Close()

	var records []attendance.Record
	for rows.Next() {
		var rec attendance.Record
		if err := rows.Scan(
			&rec.ID, &rec.EmployeeID, &rec.Date, &rec.CheckIn, &rec.CheckOut, &rec.Status,
			&rec.CheckInLatitude, &rec.CheckInLongitude, &rec.CheckOutLatitude, &rec.CheckOutLongitude,
			&rec.LateMinutes, &rec.EarlyLeaveMinutes, &rec.OvertimeMinutes, &rec.WorkMinutes,
			&rec.CreatedAt, &rec.UpdatedAt, &rec.EmployeeName,
		); err != nil {
			return nil, fmt.Errorf("failed to scan attendance record: %w", err)
		}
		records = append(records, rec)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate attendance records: %w", err)
	}

	return records, nil
}

// Delete implements attendance.AttendanceRepository.
func (a *attendanceRepository) Delete(ctx context.Context, id string) error {
	q := GetQuerier(ctx, a.db)

	tag, err := q.Exec(ctx, `DELETE FROM attendance_records WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("failed to delete attendance record: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return attendance.ErrRecordNotFound
	}

	return nil
}

func NewAttendanceRepository(db *database.DB) attendance.AttendanceRepository {
	return &attendanceRepository{db: db}
}
