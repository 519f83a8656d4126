package attendance

import (
	"context"
	"fmt"
	"time"

	"github.com/nimbus-hcm/hcm-backend-go/internal/config"
	"github.com/nimbus-hcm/hcm-backend-go/internal/domain/attendance"
	"github.com/nimbus-hcm/hcm-backend-go/internal/domain/audit"
	"github.com/nimbus-hcm/hcm-backend-go/internal/domain/correction"
	"github.com/nimbus-hcm/hcm-backend-go/internal/domain/employee"
	"github.com/nimbus-hcm/hcm-backend-go/internal/domain/remotework"
	"github.com/nimbus-hcm/hcm-backend-go/internal/pkg/database"
	"github.com/nimbus-hcm/hcm-backend-go/internal/pkg/geo"
	"github.com/nimbus-hcm/hcm-backend-go/internal/pkg/shiftclock"
)

type attendanceService struct {
	tx             database.TxManager
	attendanceRepo attendance.AttendanceRepository
	employeeRepo   employee.EmployeeRepository
	remoteWorkRepo remotework.RemoteWorkRepository
	correctionRepo correction.CorrectionRepository
	auditRepo      audit.AuditRepository
	clock          *shiftclock.Clock
	geofence       config.GeofenceConfig
	now            func() time.Time
}

func NewAttendanceService(
	tx database.TxManager,
	attendanceRepo attendance.AttendanceRepository,
	employeeRepo employee.EmployeeRepository,
	remoteWorkRepo remotework.RemoteWorkRepository,
	correctionRepo correction.CorrectionRepository,
	auditRepo audit.AuditRepository,
	clock *shiftclock.Clock,
	geofence config.GeofenceConfig,
) attendance.AttendanceService {
	return &attendanceService{
		tx:             tx,
		attendanceRepo: attendanceRepo,
		employeeRepo:   employeeRepo,
		remoteWorkRepo: remoteWorkRepo,
		correctionRepo: correctionRepo,
		auditRepo:      auditRepo,
		clock:          clock,
		geofence:       geofence,
		now:            time.Now,
	}
}

// businessDate truncates an instant to the calendar date observed in
// the business timezone. Records key on this date, never on the server
// clock's date.
func (s *attendanceService) businessDate(t time.Time) time.Time {
	local := t.In(s.clock.Location())
	return time.Date(local.Year(), local.Month(), local.Day(), 0, 0, 0, 0, time.UTC)
}

// checkLocation enforces the geofence unless the employee holds an
// approved remote work request covering the date. It returns the
// measured distance when the fence applied.
func (s *attendanceService) checkLocation(ctx context.Context, employeeID int64, date time.Time, lat, lon float64) (*float64, error) {
	remote, err := s.remoteWorkRepo.HasApprovedForDate(ctx, employeeID, date)
	if err != nil {
		return nil, err
	}
	if remote {
		return nil, nil
	}

	distance, err := geo.Distance(lat, lon, s.geofence.OfficeLatitude, s.geofence.OfficeLongitude)
	if err != nil {
		return nil, err
	}

	if !geo.WithinFence(distance, s.geofence.RadiusMeters) {
		return nil, &attendance.LocationOutOfRangeError{
			DistanceMeters: distance,
			RequiredMeters: s.geofence.RadiusMeters,
		}
	}

	return &distance, nil
}

// CheckIn implements attendance.AttendanceService.
func (s *attendanceService) CheckIn(ctx context.Context, employeeID int64, req attendance.CheckInRequest) (attendance.RecordResponse, error) {
	if err := req.Validate(); err != nil {
		return attendance.RecordResponse{}, err
	}

	emp, err := s.employeeRepo.GetByID(ctx, employeeID)
	if err != nil {
		return attendance.RecordResponse{}, err
	}
	if !emp.IsActive() {
		return attendance.RecordResponse{}, employee.ErrEmployeeInactive
	}

	now := s.now()
	date := s.businessDate(now)

	distance, err := s.checkLocation(ctx, employeeID, date, req.Latitude, req.Longitude)
	if err != nil {
		return attendance.RecordResponse{}, err
	}

	status := s.clock.DetermineStatus(now)
	lateMinutes := s.clock.MinutesLate(now)

	record := attendance.Record{
		EmployeeID:       employeeID,
		Date:             date,
		CheckIn:          &now,
		Status:           status,
		CheckInLatitude:  &req.Latitude,
		CheckInLongitude: &req.Longitude,
		LateMinutes:      &lateMinutes,
	}

	err = s.tx.WithinTransaction(ctx, func(txCtx context.Context) error {
		created, err := s.attendanceRepo.Create(txCtx, record)
		if err != nil {
			return err
		}
		record = created

		return s.auditRepo.Record(txCtx, audit.Event{
			ActorID:  employeeID,
			Action:   audit.ActionCheckIn,
			EntityID: created.ID,
			Detail: map[string]any{
				"status":       string(status),
				"late_minutes": lateMinutes,
			},
			OccurredAt: now,
		})
	})
	if err != nil {
		return attendance.RecordResponse{}, err
	}

	resp := s.toResponse(record)
	resp.DistanceMeters = distance
	return resp, nil
}

// CheckOut implements attendance.AttendanceService.
func (s *attendanceService) CheckOut(ctx context.Context, employeeID int64, req attendance.CheckOutRequest) (attendance.RecordResponse, error) {
	if err := req.Validate(); err != nil {
		return attendance.RecordResponse{}, err
	}

	emp, err := s.employeeRepo.GetByID(ctx, employeeID)
	if err != nil {
		return attendance.RecordResponse{}, err
	}
	if !emp.IsActive() {
		return attendance.RecordResponse{}, employee.ErrEmployeeInactive
	}

	now := s.now()
	date := s.businessDate(now)

	record, err := s.attendanceRepo.GetByEmployeeAndDate(ctx, employeeID, date)
	if err != nil {
		return attendance.RecordResponse{}, err
	}
	if record == nil || record.CheckIn == nil {
		return attendance.RecordResponse{}, attendance.ErrNotCheckedIn
	}
	if record.CheckOut != nil {
		return attendance.RecordResponse{}, attendance.ErrAlreadyCheckedOut
	}

	distance, err := s.checkLocation(ctx, employeeID, date, req.Latitude, req.Longitude)
	if err != nil {
		return attendance.RecordResponse{}, err
	}

	deltas := s.clock.ComputeDeltas(*record.CheckIn, now)

	record.CheckOut = &now
	record.CheckOutLatitude = &req.Latitude
	record.CheckOutLongitude = &req.Longitude
	record.EarlyLeaveMinutes = &deltas.EarlyMinutes
	record.OvertimeMinutes = &deltas.OvertimeMinutes
	record.WorkMinutes = &deltas.TotalMinutes

	err = s.tx.WithinTransaction(ctx, func(txCtx context.Context) error {
		if err := s.attendanceRepo.Update(txCtx, *record); err != nil {
			return err
		}

		return s.auditRepo.Record(txCtx, audit.Event{
			ActorID:  employeeID,
			Action:   audit.ActionCheckOut,
			EntityID: record.ID,
			Detail: map[string]any{
				"work_minutes":     deltas.TotalMinutes,
				"overtime_minutes": deltas.OvertimeMinutes,
			},
			OccurredAt: now,
		})
	})
	if err != nil {
		return attendance.RecordResponse{}, err
	}

	resp := s.toResponse(*record)
	resp.DistanceMeters = distance
	return resp, nil
}

// GetMonth implements attendance.AttendanceService.
func (s *attendanceService) GetMonth(ctx context.Context, employeeID int64, year int, month time.Month) (attendance.MonthResponse, error) {
	if _, err := s.employeeRepo.GetByID(ctx, employeeID); err != nil {
		return attendance.MonthResponse{}, err
	}

	records, err := s.attendanceRepo.ListMonth(ctx, employeeID, year, month)
	if err != nil {
		return attendance.MonthResponse{}, err
	}

	corrections, err := s.correctionRepo.ListMonth(ctx, employeeID, year, month)
	if err != nil {
		return attendance.MonthResponse{}, err
	}

	today := s.businessDate(s.now())

	resp := attendance.MonthResponse{
		Records:     make([]attendance.RecordResponse, 0, len(records)),
		Corrections: make([]correction.Response, 0, len(corrections)),
	}

	var summary attendance.MonthSummary
	recorded := 0

	for _, rec := range records {
		r := s.toResponse(rec)
		resp.Records = append(resp.Records, r)

		if rec.Date.Equal(today) {
			todayResp := r
			resp.Today = &todayResp
		}

		recorded++
		switch shiftclock.Status(r.Status) {
		case shiftclock.StatusLate:
			summary.LateDays++
		case shiftclock.StatusHalfDay:
			summary.HalfDays++
		default:
			summary.PresentDays++
		}

		if rec.WorkMinutes != nil {
			summary.TotalHours += float64(*rec.WorkMinutes) / 60
		}
		if rec.OvertimeMinutes != nil {
			summary.OvertimeHours += float64(*rec.OvertimeMinutes) / 60
		}
	}

	// Absence is derived, never stored: every elapsed weekday of the
	// month without a record counts as absent.
	elapsed := elapsedWeekdays(year, month, today)
	summary.AbsentDays = elapsed - recorded
	if summary.AbsentDays < 0 {
		summary.AbsentDays = 0
	}
	if elapsed > 0 {
		summary.AttendanceRate = float64(recorded) / float64(elapsed) * 100
	}
	resp.Summary = summary

	for _, c := range corrections {
		resp.Corrections = append(resp.Corrections, correction.ToResponse(c))
	}

	return resp, nil
}

// elapsedWeekdays counts Monday through Friday dates of the month that
// are not after the reference date.
func elapsedWeekdays(year int, month time.Month, ref time.Time) int {
	count := 0
	for d := time.Date(year, month, 1, 0, 0, 0, 0, time.UTC); d.Month() == month; d = d.AddDate(0, 0, 1) {
		if d.After(ref) {
			break
		}
		if wd := d.Weekday(); wd != time.Saturday && wd != time.Sunday {
			count++
		}
	}
	return count
}

// GetDay implements attendance.AttendanceService.
func (s *attendanceService) GetDay(ctx context.Context, date time.Time) (attendance.DayResponse, error) {
	date = s.businessDate(date)

	roster, err := s.employeeRepo.ListActive(ctx)
	if err != nil {
		return attendance.DayResponse{}, err
	}

	records, err := s.attendanceRepo.ListByDate(ctx, date)
	if err != nil {
		return attendance.DayResponse{}, err
	}

	byEmployee := make(map[int64]attendance.Record, len(records))
	for _, rec := range records {
		byEmployee[rec.EmployeeID] = rec
	}

	resp := attendance.DayResponse{
		Date:    date.Format("2006-01-02"),
		Entries: make([]attendance.DayEntry, 0, len(roster)),
	}

	for _, emp := range roster {
		entry := attendance.DayEntry{
			EmployeeID:   emp.ID,
			EmployeeName: emp.FullName,
			Status:       string(shiftclock.StatusAbsent),
		}

		if rec, ok := byEmployee[emp.ID]; ok {
			r := s.toResponse(rec)
			entry.Status = r.Status
			entry.CheckInTime = r.CheckInTime
			entry.CheckOutTime = r.CheckOutTime
		}

		resp.Entries = append(resp.Entries, entry)
	}

	return resp, nil
}

// UpdateRecord implements attendance.AttendanceService.
func (s *attendanceService) UpdateRecord(ctx context.Context, adminID int64, req attendance.UpdateRecordRequest) (attendance.RecordResponse, error) {
	if err := req.Validate(); err != nil {
		return attendance.RecordResponse{}, err
	}

	record, err := s.attendanceRepo.GetByID(ctx, req.ID)
	if err != nil {
		return attendance.RecordResponse{}, err
	}

	if req.CheckInTime != nil {
		t, err := time.Parse(time.RFC3339, *req.CheckInTime)
		if err != nil {
			return attendance.RecordResponse{}, fmt.Errorf("invalid check_in_time: %w", err)
		}
		record.CheckIn = &t
	}
	if req.CheckOutTime != nil {
		t, err := time.Parse(time.RFC3339, *req.CheckOutTime)
		if err != nil {
			return attendance.RecordResponse{}, fmt.Errorf("invalid check_out_time: %w", err)
		}
		record.CheckOut = &t
	}

	if record.CheckIn != nil && record.CheckOut != nil && record.CheckOut.Before(*record.CheckIn) {
		return attendance.RecordResponse{}, attendance.ErrCheckOutBeforeCheckIn
	}

	s.rederive(&record)

	if req.Status != nil {
		status, err := shiftclock.ParseStatus(*req.Status)
		if err != nil {
			return attendance.RecordResponse{}, err
		}
		record.Status = status
	}

	err = s.tx.WithinTransaction(ctx, func(txCtx context.Context) error {
		if err := s.attendanceRepo.Update(txCtx, record); err != nil {
			return err
		}

		return s.auditRepo.Record(txCtx, audit.Event{
			ActorID:    adminID,
			Action:     audit.ActionRecordUpdated,
			EntityID:   record.ID,
			Detail:     map[string]any{"status": string(record.Status)},
			OccurredAt: s.now(),
		})
	})
	if err != nil {
		return attendance.RecordResponse{}, err
	}

	return s.toResponse(record), nil
}

// rederive recomputes status and minute deltas from the record's
// timestamps after an edit.
func (s *attendanceService) rederive(record *attendance.Record) {
	if record.CheckIn == nil {
		return
	}

	record.Status = s.clock.DetermineStatus(*record.CheckIn)
	late := s.clock.MinutesLate(*record.CheckIn)
	record.LateMinutes = &late

	if record.CheckOut != nil {
		deltas := s.clock.ComputeDeltas(*record.CheckIn, *record.CheckOut)
		record.EarlyLeaveMinutes = &deltas.EarlyMinutes
		record.OvertimeMinutes = &deltas.OvertimeMinutes
		record.WorkMinutes = &deltas.TotalMinutes
	}
}

// DeleteRecord implements attendance.AttendanceService.
func (s *attendanceService) DeleteRecord(ctx context.Context, adminID int64, id string) error {
	record, err := s.attendanceRepo.GetByID(ctx, id)
	if err != nil {
		return err
	}

	return s.tx.WithinTransaction(ctx, func(txCtx context.Context) error {
		if err := s.attendanceRepo.Delete(txCtx, record.ID); err != nil {
			return err
		}

		return s.auditRepo.Record(txCtx, audit.Event{
			ActorID:    adminID,
			Action:     audit.ActionRecordDeleted,
			EntityID:   record.ID,
			Detail:     map[string]any{"employee_id": record.EmployeeID, "date": record.Date.Format("2006-01-02")},
			OccurredAt: s.now(),
		})
	})
}

func (s *attendanceService) toResponse(rec attendance.Record) attendance.RecordResponse {
	resp := attendance.RecordResponse{
		ID:                rec.ID,
		EmployeeID:        rec.EmployeeID,
		EmployeeName:      rec.EmployeeName,
		Date:              rec.Date.Format("2006-01-02"),
		Status:            string(rec.Status),
		LateMinutes:       rec.LateMinutes,
		EarlyLeaveMinutes: rec.EarlyLeaveMinutes,
		OvertimeMinutes:   rec.OvertimeMinutes,
	}

	if rec.CheckIn != nil {
		v := rec.CheckIn.In(s.clock.Location()).Format(time.RFC3339)
		resp.CheckInTime = &v
	}
	if rec.CheckOut != nil {
		v := rec.CheckOut.In(s.clock.Location()).Format(time.RFC3339)
		resp.CheckOutTime = &v
	}
	if rec.WorkMinutes != nil {
		// Short worked days surface as half_day without rewriting the row.
		resp.Status = string(shiftclock.ClassifyWorked(rec.Status, *rec.WorkMinutes))
		hours := float64(*rec.WorkMinutes) / 60
		resp.WorkedHours = &hours
	}

	return resp
}
