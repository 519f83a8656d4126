package remotework

import (
	"context"
	"fmt"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/nimbus-hcm/hcm-backend-go/internal/domain/audit"
	"github.com/nimbus-hcm/hcm-backend-go/internal/domain/employee"
	"github.com/nimbus-hcm/hcm-backend-go/internal/domain/remotework"
	"github.com/nimbus-hcm/hcm-backend-go/internal/pkg/daterange"
)

type fakeTx struct{}

func (fakeTx) WithinTransaction(ctx context.Context, fn func(ctx context.Context) error) error {
	return fn(ctx)
}

type fakeRemoteWorkRepo struct {
	requests map[string]remotework.Request
	nextID   int
}

func newFakeRemoteWorkRepo() *fakeRemoteWorkRepo {
	return &fakeRemoteWorkRepo{requests: make(map[string]remotework.Request)}
}

func (f *fakeRemoteWorkRepo) Create(_ context.Context, r remotework.Request) (remotework.Request, error) {
	f.nextID++
	r.ID = fmt.Sprintf("rw-%d", f.nextID)
	r.State = remotework.StatePending
	r.CreatedAt = time.Now()
	f.requests[r.ID] = r
	return r, nil
}

func (f *fakeRemoteWorkRepo) GetByID(_ context.Context, id string) (remotework.Request, error) {
	r, ok := f.requests[id]
	if !ok {
		return remotework.Request{}, remotework.ErrRequestNotFound
	}
	return r, nil
}

func (f *fakeRemoteWorkRepo) Resolve(_ context.Context, id string, state remotework.State, resolvedBy int64, resolvedAt time.Time) (remotework.Request, error) {
	r, ok := f.requests[id]
	if !ok {
		return remotework.Request{}, remotework.ErrRequestNotFound
	}
	if r.State != remotework.StatePending {
		return remotework.Request{}, remotework.ErrAlreadyProcessed
	}
	r.State = state
	r.ResolvedBy = &resolvedBy
	r.ResolvedAt = &resolvedAt
	f.requests[id] = r
	return r, nil
}

func (f *fakeRemoteWorkRepo) ListOverlapping(_ context.Context, employeeID int64, start, end time.Time) ([]remotework.Request, error) {
	var out []remotework.Request
	for _, r := range f.requests {
		if r.EmployeeID != employeeID || r.State == remotework.StateRejected {
			continue
		}
		if daterange.Overlaps(r.StartDate, r.EndDate, start, end) {
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

type fakeEmployeeRepo struct{}

func (fakeEmployeeRepo) GetByID(_ context.Context, id int64) (employee.Employee, error) {
	if id == 404 {
		return employee.Employee{}, employee.ErrEmployeeNotFound
	}
	return employee.Employee{ID: id, Status: employee.StatusActive}, nil
}

func (fakeEmployeeRepo) ListActive(_ context.Context) ([]employee.Employee, error) {
	return nil, nil
}

func (fakeEmployeeRepo) AdjustLeaveBalance(_ context.Context, _ int64, _ int) error {
	return nil
}

type fakeAuditRepo struct {
	events []audit.Event
}

func (f *fakeAuditRepo) Record(_ context.Context, e audit.Event) error {
	f.events = append(f.events, e)
	return nil
}

func (f *fakeAuditRepo) ListByEntity(_ context.Context, _ string) ([]audit.Event, error) {
	return f.events, nil
}

func newService(repo *fakeRemoteWorkRepo, auditRepo *fakeAuditRepo) remotework.RemoteWorkService {
	return NewRemoteWorkService(fakeTx{}, repo, fakeEmployeeRepo{}, auditRepo)
}

func TestCreateRemoteWorkRequest(t *testing.T) {
	svc := newService(newFakeRemoteWorkRepo(), &fakeAuditRepo{})

	resp, err := svc.Create(context.Background(), 1, remotework.CreateRequest{
		StartDate: "2026-03-10",
		EndDate:   "2026-03-15",
	})
	require.NoError(t, err)

	assert.Equal(t, "pending", resp.State)
	assert.Equal(t, "2026-03-10", resp.StartDate)
	assert.Equal(t, "2026-03-15", resp.EndDate)
}

func TestCreateRejectsOverlap(t *testing.T) {
	repo := newFakeRemoteWorkRepo()
	svc := newService(repo, &fakeAuditRepo{})

	approved := int64(42)
	now := time.Now()
	repo.requests["rw-0"] = remotework.Request{
		ID:         "rw-0",
		EmployeeID: 1,
		StartDate:  time.Date(2026, time.March, 12, 0, 0, 0, 0, time.UTC),
		EndDate:    time.Date(2026, time.March, 20, 0, 0, 0, 0, time.UTC),
		State:      remotework.StateApproved,
		ResolvedBy: &approved,
		ResolvedAt: &now,
	}

	_, err := svc.Create(context.Background(), 1, remotework.CreateRequest{
		StartDate: "2026-03-10",
		EndDate:   "2026-03-15",
	})
	assert.ErrorIs(t, err, remotework.ErrOverlappingRequest)
}

func TestCreateAllowsOverlapAcrossEmployees(t *testing.T) {
	repo := newFakeRemoteWorkRepo()
	svc := newService(repo, &fakeAuditRepo{})

	repo.requests["rw-0"] = remotework.Request{
		ID:         "rw-0",
		EmployeeID: 2,
		StartDate:  time.Date(2026, time.March, 12, 0, 0, 0, 0, time.UTC),
		EndDate:    time.Date(2026, time.March, 20, 0, 0, 0, 0, time.UTC),
		State:      remotework.StateApproved,
	}

	_, err := svc.Create(context.Background(), 1, remotework.CreateRequest{
		StartDate: "2026-03-10",
		EndDate:   "2026-03-15",
	})
	assert.NoError(t, err)
}

func TestCreateRejectsInvertedRange(t *testing.T) {
	svc := newService(newFakeRemoteWorkRepo(), &fakeAuditRepo{})

	_, err := svc.Create(context.Background(), 1, remotework.CreateRequest{
		StartDate: "2026-03-15",
		EndDate:   "2026-03-10",
	})
	assert.Error(t, err)
}

func TestResolveApproves(t *testing.T) {
	repo := newFakeRemoteWorkRepo()
	auditRepo := &fakeAuditRepo{}
	svc := newService(repo, auditRepo)

	created, err := svc.Create(context.Background(), 1, remotework.CreateRequest{
		StartDate: "2026-03-10",
		EndDate:   "2026-03-15",
	})
	require.NoError(t, err)

	resp, err := svc.Resolve(context.Background(), 42, remotework.ResolveRequest{ID: created.ID, Action: "approved"})
	require.NoError(t, err)

	assert.Equal(t, "approved", resp.State)
	require.NotNil(t, resp.ResolvedBy)
	assert.Equal(t, int64(42), *resp.ResolvedBy)

	ok, err := repo.HasApprovedForDate(context.Background(), 1, time.Date(2026, time.March, 12, 0, 0, 0, 0, time.UTC))
	require.NoError(t, err)
	assert.True(t, ok)

	require.Len(t, auditRepo.events, 1)
	assert.Equal(t, audit.ActionRemoteWorkResolved, auditRepo.events[0].Action)
}

func TestResolveTwice(t *testing.T) {
	repo := newFakeRemoteWorkRepo()
	svc := newService(repo, &fakeAuditRepo{})

	created, err := svc.Create(context.Background(), 1, remotework.CreateRequest{
		StartDate: "2026-03-10",
		EndDate:   "2026-03-15",
	})
	require.NoError(t, err)

	_, err = svc.Resolve(context.Background(), 42, remotework.ResolveRequest{ID: created.ID, Action: "rejected"})
	require.NoError(t, err)

	_, err = svc.Resolve(context.Background(), 42, remotework.ResolveRequest{ID: created.ID, Action: "approved"})
	assert.ErrorIs(t, err, remotework.ErrAlreadyProcessed)
}

func TestListByEmployee(t *testing.T) {
	repo := newFakeRemoteWorkRepo()
	svc := newService(repo, &fakeAuditRepo{})

	_, err := svc.Create(context.Background(), 1, remotework.CreateRequest{
		StartDate: "2026-03-10",
		EndDate:   "2026-03-15",
	})
	require.NoError(t, err)

	_, err = svc.Create(context.Background(), 2, remotework.CreateRequest{
		StartDate: "2026-03-10",
		EndDate:   "2026-03-15",
	})
	require.NoError(t, err)

	responses, err := svc.List(context.Background(), 1)
	require.NoError(t, err)
	assert.Len(t, responses, 1)
}
