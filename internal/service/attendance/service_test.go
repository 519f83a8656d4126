package attendance

import (
	"context"
	"errors"
	"fmt"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/nimbus-hcm/hcm-backend-go/internal/config"
	"github.com/nimbus-hcm/hcm-backend-go/internal/domain/attendance"
	"github.com/nimbus-hcm/hcm-backend-go/internal/domain/audit"
	"github.com/nimbus-hcm/hcm-backend-go/internal/domain/correction"
	"github.com/nimbus-hcm/hcm-backend-go/internal/domain/employee"
	"github.com/nimbus-hcm/hcm-backend-go/internal/domain/remotework"
	"github.com/nimbus-hcm/hcm-backend-go/internal/pkg/daterange"
	"github.com/nimbus-hcm/hcm-backend-go/internal/pkg/shiftclock"
)

type fakeTx struct{}

func (fakeTx) WithinTransaction(ctx context.Context, fn func(ctx context.Context) error) error {
	return fn(ctx)
}

type fakeEmployeeRepo struct {
	employees []employee.Employee
}

func (f *fakeEmployeeRepo) GetByID(_ context.Context, id int64) (employee.Employee, error) {
	for _, e := range f.employees {
		if e.ID == id {
			return e, nil
		}
	}
	return employee.Employee{}, employee.ErrEmployeeNotFound
}

func (f *fakeEmployeeRepo) ListActive(_ context.Context) ([]employee.Employee, error) {
	var active []employee.Employee
	for _, e := range f.employees {
		if e.IsActive() {
			active = append(active, e)
		}
	}
	return active, nil
}

func (f *fakeEmployeeRepo) AdjustLeaveBalance(_ context.Context, id int64, delta int) error {
	for i := range f.employees {
		if f.employees[i].ID == id {
			f.employees[i].LeaveBalance += delta
			return nil
		}
	}
	return employee.ErrEmployeeNotFound
}

type fakeAttendanceRepo struct {
	records map[string]attendance.Record
	nextID  int
}

func newFakeAttendanceRepo() *fakeAttendanceRepo {
	return &fakeAttendanceRepo{records: make(map[string]attendance.Record)}
}

func dayKey(employeeID int64, date time.Time) string {
	return fmt.Sprintf("%d/%s", employeeID, date.Format("2006-01-02"))
}

func (f *fakeAttendanceRepo) Create(_ context.Context, record attendance.Record) (attendance.Record, error) {
	key := dayKey(record.EmployeeID, record.Date)
	for _, existing := range f.records {
		if dayKey(existing.EmployeeID, existing.Date) == key {
			return attendance.Record{}, attendance.ErrAlreadyCheckedIn
		}
	}
	f.nextID++
	record.ID = fmt.Sprintf("rec-%d", f.nextID)
	f.records[record.ID] = record
	return record, nil
}

func (f *fakeAttendanceRepo) GetByID(_ context.Context, id string) (attendance.Record, error) {
	rec, ok := f.records[id]
	if !ok {
		return attendance.Record{}, attendance.ErrRecordNotFound
	}
	return rec, nil
}

func (f *fakeAttendanceRepo) GetByEmployeeAndDate(_ context.Context, employeeID int64, date time.Time) (*attendance.Record, error) {
	for _, rec := range f.records {
		if rec.EmployeeID == employeeID && rec.Date.Equal(date) {
			r := rec
			return &r, nil
		}
	}
	return nil, nil
}

func (f *fakeAttendanceRepo) Update(_ context.Context, record attendance.Record) error {
	if _, ok := f.records[record.ID]; !ok {
		return attendance.ErrRecordNotFound
	}
	f.records[record.ID] = record
	return nil
}

func (f *fakeAttendanceRepo) ListMonth(_ context.Context, employeeID int64, year int, month time.Month) ([]attendance.Record, error) {
	var out []attendance.Record
	for _, rec := range f.records {
		if rec.EmployeeID == employeeID && rec.Date.Year() == year && rec.Date.Month() == month {
			out = append(out, rec)
		}
	}
	return out, nil
}

func (f *fakeAttendanceRepo) ListByDate(_ context.Context, date time.Time) ([]attendance.Record, error) {
	var out []attendance.Record
	for _, rec := range f.records {
		if rec.Date.Equal(date) {
			out = append(out, rec)
		}
	}
	return out, nil
}

func (f *fakeAttendanceRepo) Delete(_ context.Context, id string) error {
	if _, ok := f.records[id]; !ok {
		return attendance.ErrRecordNotFound
	}
	delete(f.records, id)
	return nil
}

type fakeRemoteWorkRepo struct {
	requests []remotework.Request
}

func (f *fakeRemoteWorkRepo) Create(_ context.Context, r remotework.Request) (remotework.Request, error) {
	f.requests = append(f.requests, r)
	return r, nil
}

func (f *fakeRemoteWorkRepo) GetByID(_ context.Context, id string) (remotework.Request, error) {
	for _, r := range f.requests {
		if r.ID == id {
			return r, nil
		}
	}
	return remotework.Request{}, remotework.ErrRequestNotFound
}

func (f *fakeRemoteWorkRepo) Resolve(_ context.Context, id string, state remotework.State, _ int64, _ time.Time) (remotework.Request, error) {
	return remotework.Request{ID: id, State: state}, nil
}

func (f *fakeRemoteWorkRepo) ListOverlapping(_ context.Context, employeeID int64, start, end time.Time) ([]remotework.Request, error) {
	var out []remotework.Request
	for _, r := range f.requests {
		if r.EmployeeID == employeeID && daterange.Overlaps(r.StartDate, r.EndDate, start, end) {
			out = append(out, r)
		}
	}
	return out, nil
}

func (f *fakeRemoteWorkRepo) HasApprovedForDate(_ context.Context, employeeID int64, date time.Time) (bool, error) {
	for _, r := range f.requests {
		if r.EmployeeID == employeeID && r.State == remotework.StateApproved && daterange.Contains(r.StartDate, r.EndDate, date) {
			return true, nil
		}
	}
	return false, nil
}

func (f *fakeRemoteWorkRepo) ListByEmployee(_ context.Context, employeeID int64) ([]remotework.Request, error) {
	var out []remotework.Request
	for _, r := range f.requests {
		if r.EmployeeID == employeeID {
			out = append(out, r)
		}
	}
	return out, nil
}

type fakeCorrectionRepo struct {
	corrections []correction.Correction
}

func (f *fakeCorrectionRepo) Create(_ context.Context, c correction.Correction) (correction.Correction, error) {
	f.corrections = append(f.corrections, c)
	return c, nil
}

func (f *fakeCorrectionRepo) GetByID(_ context.Context, id string) (correction.Correction, error) {
	for _, c := range f.corrections {
		if c.ID == id {
			return c, nil
		}
	}
	return correction.Correction{}, correction.ErrCorrectionNotFound
}

func (f *fakeCorrectionRepo) Resolve(_ context.Context, id string, state correction.State, _ int64, _ time.Time) (correction.Correction, error) {
	return correction.Correction{ID: id, State: state}, nil
}

func (f *fakeCorrectionRepo) ListMonth(_ context.Context, employeeID int64, year int, month time.Month) ([]correction.Correction, error) {
	var out []correction.Correction
	for _, c := range f.corrections {
		if c.EmployeeID == employeeID && c.Date.Year() == year && c.Date.Month() == month {
			out = append(out, c)
		}
	}
	return out, nil
}

type fakeAuditRepo struct {
	events []audit.Event
}

func (f *fakeAuditRepo) Record(_ context.Context, e audit.Event) error {
	f.events = append(f.events, e)
	return nil
}

func (f *fakeAuditRepo) ListByEntity(_ context.Context, entityID string) ([]audit.Event, error) {
	var out []audit.Event
	for _, e := range f.events {
		if e.EntityID == entityID {
			out = append(out, e)
		}
	}
	return out, nil
}

type serviceFixture struct {
	svc            *attendanceService
	attendanceRepo *fakeAttendanceRepo
	remoteWorkRepo *fakeRemoteWorkRepo
	auditRepo      *fakeAuditRepo
}

// Office at the origin, 600m fence, 09:00-17:00 shift with a 15 minute
// grace window, evaluated in UTC.
func newFixture(t *testing.T) *serviceFixture {
	t.Helper()

	clock, err := shiftclock.New("09:00", "17:00", 15, time.UTC)
	require.NoError(t, err)

	attendanceRepo := newFakeAttendanceRepo()
	remoteWorkRepo := &fakeRemoteWorkRepo{}
	auditRepo := &fakeAuditRepo{}
	employeeRepo := &fakeEmployeeRepo{employees: []employee.Employee{
		{ID: 1, FullName: "Ayu Lestari", Status: employee.StatusActive, BaseSalary: decimal.NewFromInt(60000), LeaveBalance: 12},
		{ID: 2, FullName: "Budi Santoso", Status: employee.StatusActive, BaseSalary: decimal.NewFromInt(48000), LeaveBalance: 12},
		{ID: 3, FullName: "Citra Dewi", Status: employee.StatusInactive, BaseSalary: decimal.NewFromInt(52000), LeaveBalance: 12},
	}}

	svc := NewAttendanceService(
		fakeTx{},
		attendanceRepo,
		employeeRepo,
		remoteWorkRepo,
		&fakeCorrectionRepo{},
		auditRepo,
		clock,
		config.GeofenceConfig{OfficeLatitude: 0, OfficeLongitude: 0, RadiusMeters: 600},
	).(*attendanceService)

	return &serviceFixture{
		svc:            svc,
		attendanceRepo: attendanceRepo,
		remoteWorkRepo: remoteWorkRepo,
		auditRepo:      auditRepo,
	}
}

func (f *serviceFixture) at(t time.Time) {
	f.svc.now = func() time.Time { return t }
}

// 0.005 degrees of latitude is roughly 556m, inside the 600m fence.
// 0.0063 degrees is roughly 700m, outside it.
const (
	insideFenceLat  = 0.005
	outsideFenceLat = 0.0063
)

func TestCheckInWithinFence(t *testing.T) {
	f := newFixture(t)
	f.at(time.Date(2026, time.March, 10, 9, 10, 0, 0, time.UTC))

	resp, err := f.svc.CheckIn(context.Background(), 1, attendance.CheckInRequest{Latitude: insideFenceLat, Longitude: 0})
	require.NoError(t, err)

	assert.Equal(t, "present", resp.Status)
	assert.Equal(t, "2026-03-10", resp.Date)
	require.NotNil(t, resp.DistanceMeters)
	assert.Less(t, *resp.DistanceMeters, 600.0)
	require.NotNil(t, resp.LateMinutes)
	assert.Equal(t, 10, *resp.LateMinutes)
	assert.Len(t, f.auditRepo.events, 1)
	assert.Equal(t, audit.ActionCheckIn, f.auditRepo.events[0].Action)
}

func TestCheckInOutsideFence(t *testing.T) {
	f := newFixture(t)
	f.at(time.Date(2026, time.March, 10, 9, 0, 0, 0, time.UTC))

	_, err := f.svc.CheckIn(context.Background(), 1, attendance.CheckInRequest{Latitude: outsideFenceLat, Longitude: 0})
	require.Error(t, err)

	var locErr *attendance.LocationOutOfRangeError
	require.ErrorAs(t, err, &locErr)
	assert.Equal(t, 600.0, locErr.RequiredMeters)
	assert.InDelta(t, 700, locErr.DistanceMeters, 5)

	assert.Empty(t, f.attendanceRepo.records, "no record should exist after a rejected check-in")
}

func TestCheckInLateAfterGraceWindow(t *testing.T) {
	f := newFixture(t)
	f.at(time.Date(2026, time.March, 10, 9, 16, 0, 0, time.UTC))

	resp, err := f.svc.CheckIn(context.Background(), 1, attendance.CheckInRequest{Latitude: 0, Longitude: 0})
	require.NoError(t, err)

	assert.Equal(t, "late", resp.Status)
	require.NotNil(t, resp.LateMinutes)
	assert.Equal(t, 16, *resp.LateMinutes)
}

func TestCheckInTwiceSameDay(t *testing.T) {
	f := newFixture(t)
	f.at(time.Date(2026, time.March, 10, 9, 0, 0, 0, time.UTC))

	_, err := f.svc.CheckIn(context.Background(), 1, attendance.CheckInRequest{Latitude: 0, Longitude: 0})
	require.NoError(t, err)

	_, err = f.svc.CheckIn(context.Background(), 1, attendance.CheckInRequest{Latitude: 0, Longitude: 0})
	assert.ErrorIs(t, err, attendance.ErrAlreadyCheckedIn)
}

func TestCheckInRemoteWorkSkipsFence(t *testing.T) {
	f := newFixture(t)
	f.at(time.Date(2026, time.March, 10, 9, 0, 0, 0, time.UTC))

	f.remoteWorkRepo.requests = append(f.remoteWorkRepo.requests, remotework.Request{
		ID:         "rw-1",
		EmployeeID: 1,
		StartDate:  time.Date(2026, time.March, 9, 0, 0, 0, 0, time.UTC),
		EndDate:    time.Date(2026, time.March, 13, 0, 0, 0, 0, time.UTC),
		State:      remotework.StateApproved,
	})

	// Far from the office, approved remote range covers the date.
	resp, err := f.svc.CheckIn(context.Background(), 1, attendance.CheckInRequest{Latitude: 10, Longitude: 10})
	require.NoError(t, err)

	assert.Equal(t, "present", resp.Status)
	assert.Nil(t, resp.DistanceMeters, "no distance is reported when the fence is suppressed")
}

func TestCheckInInactiveEmployee(t *testing.T) {
	f := newFixture(t)
	f.at(time.Date(2026, time.March, 10, 9, 0, 0, 0, time.UTC))

	_, err := f.svc.CheckIn(context.Background(), 3, attendance.CheckInRequest{Latitude: 0, Longitude: 0})
	assert.ErrorIs(t, err, employee.ErrEmployeeInactive)
}

func TestCheckOutComputesDeltas(t *testing.T) {
	f := newFixture(t)
	f.at(time.Date(2026, time.March, 10, 9, 0, 0, 0, time.UTC))

	_, err := f.svc.CheckIn(context.Background(), 1, attendance.CheckInRequest{Latitude: 0, Longitude: 0})
	require.NoError(t, err)

	f.at(time.Date(2026, time.March, 10, 18, 30, 0, 0, time.UTC))
	resp, err := f.svc.CheckOut(context.Background(), 1, attendance.CheckOutRequest{Latitude: 0, Longitude: 0})
	require.NoError(t, err)

	require.NotNil(t, resp.WorkedHours)
	assert.InDelta(t, 9.5, *resp.WorkedHours, 0.01)
	require.NotNil(t, resp.OvertimeMinutes)
	assert.Equal(t, 90, *resp.OvertimeMinutes)
	require.NotNil(t, resp.EarlyLeaveMinutes)
	assert.Equal(t, 0, *resp.EarlyLeaveMinutes)
}

func TestCheckOutWithoutCheckIn(t *testing.T) {
	f := newFixture(t)
	f.at(time.Date(2026, time.March, 10, 17, 0, 0, 0, time.UTC))

	_, err := f.svc.CheckOut(context.Background(), 1, attendance.CheckOutRequest{Latitude: 0, Longitude: 0})
	assert.ErrorIs(t, err, attendance.ErrNotCheckedIn)
}

func TestCheckOutTwice(t *testing.T) {
	f := newFixture(t)
	f.at(time.Date(2026, time.March, 10, 9, 0, 0, 0, time.UTC))

	_, err := f.svc.CheckIn(context.Background(), 1, attendance.CheckInRequest{Latitude: 0, Longitude: 0})
	require.NoError(t, err)

	f.at(time.Date(2026, time.March, 10, 17, 0, 0, 0, time.UTC))
	_, err = f.svc.CheckOut(context.Background(), 1, attendance.CheckOutRequest{Latitude: 0, Longitude: 0})
	require.NoError(t, err)

	_, err = f.svc.CheckOut(context.Background(), 1, attendance.CheckOutRequest{Latitude: 0, Longitude: 0})
	assert.ErrorIs(t, err, attendance.ErrAlreadyCheckedOut)
}

func TestShortDaySurfacesAsHalfDay(t *testing.T) {
	f := newFixture(t)
	f.at(time.Date(2026, time.March, 10, 9, 0, 0, 0, time.UTC))

	_, err := f.svc.CheckIn(context.Background(), 1, attendance.CheckInRequest{Latitude: 0, Longitude: 0})
	require.NoError(t, err)

	// Three worked hours is under the four hour threshold.
	f.at(time.Date(2026, time.March, 10, 12, 0, 0, 0, time.UTC))
	resp, err := f.svc.CheckOut(context.Background(), 1, attendance.CheckOutRequest{Latitude: 0, Longitude: 0})
	require.NoError(t, err)

	assert.Equal(t, "half_day", resp.Status)
}

func TestGetMonthSummary(t *testing.T) {
	f := newFixture(t)

	// Monday March 2: on time, full day.
	f.at(time.Date(2026, time.March, 2, 9, 0, 0, 0, time.UTC))
	_, err := f.svc.CheckIn(context.Background(), 1, attendance.CheckInRequest{Latitude: 0, Longitude: 0})
	require.NoError(t, err)
	f.at(time.Date(2026, time.March, 2, 17, 0, 0, 0, time.UTC))
	_, err = f.svc.CheckOut(context.Background(), 1, attendance.CheckOutRequest{Latitude: 0, Longitude: 0})
	require.NoError(t, err)

	// Tuesday March 3: late.
	f.at(time.Date(2026, time.March, 3, 9, 30, 0, 0, time.UTC))
	_, err = f.svc.CheckIn(context.Background(), 1, attendance.CheckInRequest{Latitude: 0, Longitude: 0})
	require.NoError(t, err)
	f.at(time.Date(2026, time.March, 3, 17, 0, 0, 0, time.UTC))
	_, err = f.svc.CheckOut(context.Background(), 1, attendance.CheckOutRequest{Latitude: 0, Longitude: 0})
	require.NoError(t, err)

	// Wednesday March 4 has no record, so viewed from Thursday morning
	// it counts as absent.
	f.at(time.Date(2026, time.March, 5, 8, 0, 0, 0, time.UTC))
	resp, err := f.svc.GetMonth(context.Background(), 1, 2026, time.March)
	require.NoError(t, err)

	assert.Equal(t, 1, resp.Summary.PresentDays)
	assert.Equal(t, 1, resp.Summary.LateDays)
	assert.Equal(t, 2, resp.Summary.AbsentDays, "March 4 and the elapsed part of March 5")
	assert.Equal(t, 0, resp.Summary.HalfDays)
	assert.InDelta(t, 50.0, resp.Summary.AttendanceRate, 0.01)
	assert.InDelta(t, 15.5, resp.Summary.TotalHours, 0.01)
	assert.Len(t, resp.Records, 2)
}

func TestGetDaySynthesizesAbsences(t *testing.T) {
	f := newFixture(t)
	f.at(time.Date(2026, time.March, 10, 9, 0, 0, 0, time.UTC))

	_, err := f.svc.CheckIn(context.Background(), 1, attendance.CheckInRequest{Latitude: 0, Longitude: 0})
	require.NoError(t, err)

	resp, err := f.svc.GetDay(context.Background(), time.Date(2026, time.March, 10, 0, 0, 0, 0, time.UTC))
	require.NoError(t, err)

	// Two active employees; the inactive one is not on the roster.
	require.Len(t, resp.Entries, 2)

	statuses := map[int64]string{}
	for _, entry := range resp.Entries {
		statuses[entry.EmployeeID] = entry.Status
	}
	assert.Equal(t, "present", statuses[1])
	assert.Equal(t, "absent", statuses[2])
}

func TestUpdateRecordRederivesStatus(t *testing.T) {
	f := newFixture(t)
	f.at(time.Date(2026, time.March, 10, 9, 30, 0, 0, time.UTC))

	created, err := f.svc.CheckIn(context.Background(), 1, attendance.CheckInRequest{Latitude: 0, Longitude: 0})
	require.NoError(t, err)
	assert.Equal(t, "late", created.Status)

	// Correct the check-in back to 09:05, inside the grace window.
	newIn := "2026-03-10T09:05:00Z"
	updated, err := f.svc.UpdateRecord(context.Background(), 99, attendance.UpdateRecordRequest{
		ID:          created.ID,
		CheckInTime: &newIn,
	})
	require.NoError(t, err)

	assert.Equal(t, "present", updated.Status)
	require.NotNil(t, updated.LateMinutes)
	assert.Equal(t, 5, *updated.LateMinutes)
}

func TestUpdateRecordRejectsInvertedPair(t *testing.T) {
	f := newFixture(t)
	f.at(time.Date(2026, time.March, 10, 9, 0, 0, 0, time.UTC))

	created, err := f.svc.CheckIn(context.Background(), 1, attendance.CheckInRequest{Latitude: 0, Longitude: 0})
	require.NoError(t, err)

	newOut := "2026-03-10T08:00:00Z"
	_, err = f.svc.UpdateRecord(context.Background(), 99, attendance.UpdateRecordRequest{
		ID:           created.ID,
		CheckOutTime: &newOut,
	})
	assert.ErrorIs(t, err, attendance.ErrCheckOutBeforeCheckIn)
}

func TestDeleteRecord(t *testing.T) {
	f := newFixture(t)
	f.at(time.Date(2026, time.March, 10, 9, 0, 0, 0, time.UTC))

	created, err := f.svc.CheckIn(context.Background(), 1, attendance.CheckInRequest{Latitude: 0, Longitude: 0})
	require.NoError(t, err)

	require.NoError(t, f.svc.DeleteRecord(context.Background(), 99, created.ID))

	err = f.svc.DeleteRecord(context.Background(), 99, created.ID)
	assert.ErrorIs(t, err, attendance.ErrRecordNotFound)

	var actions []audit.Action
	for _, e := range f.auditRepo.events {
		actions = append(actions, e.Action)
	}
	assert.Contains(t, actions, audit.ActionRecordDeleted)
}

func TestCheckInInvalidCoordinates(t *testing.T) {
	f := newFixture(t)
	f.at(time.Date(2026, time.March, 10, 9, 0, 0, 0, time.UTC))

	_, err := f.svc.CheckIn(context.Background(), 1, attendance.CheckInRequest{Latitude: 95, Longitude: 0})
	require.Error(t, err)
	assert.False(t, errors.Is(err, attendance.ErrAlreadyCheckedIn))
	assert.Empty(t, f.attendanceRepo.records)
}
