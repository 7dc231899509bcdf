package attendance

import (
	"context"
	"log/slog"
	"sync"
	"testing"
	"time"

	"github.com/faceclock/attendance-backend-go/internal/domain/attendance"
	"github.com/faceclock/attendance-backend-go/internal/domain/employee"
	"github.com/faceclock/attendance-backend-go/internal/domain/schedule"
	"github.com/faceclock/attendance-backend-go/internal/pkg/notify"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// fakeRecordRepo mirrors the store's conditional-write semantics in
// memory: first check-in wins, checkout only closes an open record.
type fakeRecordRepo struct {
	mu      sync.Mutex
	records map[string]*attendance.Record
}

func newFakeRecordRepo() *fakeRecordRepo {
	return &fakeRecordRepo{records: make(map[string]*attendance.Record)}
}

func key(employeeID, date string) string {
	return employeeID + "|" + date
}

func (r *fakeRecordRepo) GetByEmployeeAndDate(_ context.Context, employeeID, date string) (*attendance.Record, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	rec, ok := r.records[key(employeeID, date)]
	if !ok {
		return nil, nil
	}
	cp := *rec
	return &cp, nil
}

func (r *fakeRecordRepo) UpsertCheckIn(_ context.Context, rec attendance.Record) (bool, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	k := key(rec.EmployeeID, rec.Date)
	if existing, ok := r.records[k]; ok && existing.CheckIn != nil {
		return false, nil
	}
	cp := rec
	cp.CreatedAt = time.Now()
	cp.UpdatedAt = cp.CreatedAt
	r.records[k] = &cp
	return true, nil
}

func (r *fakeRecordRepo) ApplyCheckOut(_ context.Context, employeeID, date string, ts time.Time, status attendance.Label) (attendance.Record, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	rec, ok := r.records[key(employeeID, date)]
	if !ok || rec.CheckIn == nil {
		return attendance.Record{}, attendance.ErrNoPriorCheckIn
	}
	if rec.CheckOut != nil {
		return attendance.Record{}, attendance.ErrAlreadyCheckedOut
	}
	rec.CheckOut = &attendance.EventInfo{Timestamp: ts, Status: status}
	minutes := int(ts.Sub(rec.CheckIn.Timestamp).Minutes())
	if minutes < 0 {
		minutes = 0
	}
	rec.WorkDurationMinutes = minutes
	rec.UpdatedAt = time.Now()
	return *rec, nil
}

func (r *fakeRecordRepo) List(_ context.Context, filter attendance.RecordFilter) ([]attendance.Record, int64, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var out []attendance.Record
	for _, rec := range r.records {
		if filter.EmployeeID != nil && rec.EmployeeID != *filter.EmployeeID {
			continue
		}
		out = append(out, *rec)
	}
	return out, int64(len(out)), nil
}

type fakeEmployeeRepo struct {
	employees map[string]employee.Employee
}

func newFakeEmployeeRepo(emps ...employee.Employee) *fakeEmployeeRepo {
	m := make(map[string]employee.Employee)
	for _, e := range emps {
		m[e.EmployeeID] = e
	}
	return &fakeEmployeeRepo{employees: m}
}

func (r *fakeEmployeeRepo) Create(_ context.Context, emp employee.Employee) (employee.Employee, error) {
	r.employees[emp.EmployeeID] = emp
	return emp, nil
}

func (r *fakeEmployeeRepo) GetByEmployeeID(_ context.Context, employeeID string) (employee.Employee, error) {
	emp, ok := r.employees[employeeID]
	if !ok {
		return employee.Employee{}, employee.ErrEmployeeNotFound
	}
	return emp, nil
}

func (r *fakeEmployeeRepo) List(_ context.Context, _ employee.EmployeeFilter) ([]employee.Employee, int64, error) {
	var out []employee.Employee
	for _, e := range r.employees {
		out = append(out, e)
	}
	return out, int64(len(out)), nil
}

func (r *fakeEmployeeRepo) Update(_ context.Context, emp employee.Employee) error {
	r.employees[emp.EmployeeID] = emp
	return nil
}

func (r *fakeEmployeeRepo) CountActive(_ context.Context) (int, error) {
	count := 0
	for _, e := range r.employees {
		if e.IsActive {
			count++
		}
	}
	return count, nil
}

type staticScheduleService struct {
	sched schedule.Schedule
}

func (s staticScheduleService) GetSchedule(context.Context) (schedule.Schedule, error) {
	return s.sched, nil
}

func (s staticScheduleService) UpdateSchedule(context.Context, schedule.UpdateScheduleRequest) (schedule.Schedule, error) {
	return s.sched, nil
}

type recordingNotifier struct {
	mu     sync.Mutex
	events []notify.LateArrivalEvent
}

func (n *recordingNotifier) PublishLateArrival(_ context.Context, event notify.LateArrivalEvent) error {
	n.mu.Lock()
	defer n.mu.Unlock()
	n.events = append(n.events, event)
	return nil
}

func newTestService(t *testing.T) (attendance.AttendanceService, *fakeRecordRepo, *recordingNotifier) {
	t.Helper()
	recordRepo := newFakeRecordRepo()
	employeeRepo := newFakeEmployeeRepo(
		employee.Employee{ID: "1", EmployeeID: "EMP-001", Name: "Alice Wong", Department: "Engineering", IsActive: true},
		employee.Employee{ID: "2", EmployeeID: "EMP-002", Name: "Bob Tan", Department: "Finance", IsActive: false},
	)
	notifier := &recordingNotifier{}
	svc := NewAttendanceService(
		recordRepo,
		employeeRepo,
		staticScheduleService{sched: schedule.Default()},
		notifier,
		slog.New(slog.DiscardHandler),
		time.UTC,
	)
	return svc, recordRepo, notifier
}

func TestResolveFullDay(t *testing.T) {
	svc, _, _ := newTestService(t)
	ctx := context.Background()

	// Early morning scan opens the day.
	checkIn, err := svc.Resolve(ctx, "EMP-001", time.Date(2026, 3, 10, 7, 45, 0, 0, time.UTC))
	require.NoError(t, err)
	assert.Equal(t, attendance.EventCheckIn, checkIn.EventKind)
	assert.Equal(t, attendance.LabelOnTime, checkIn.Status)
	assert.Equal(t, "2026-03-10", checkIn.Date)
	assert.Equal(t, "Alice Wong", checkIn.EmployeeName)
	assert.Nil(t, checkIn.DurationMinutes)

	// Evening scan closes it.
	checkOut, err := svc.Resolve(ctx, "EMP-001", time.Date(2026, 3, 10, 17, 10, 0, 0, time.UTC))
	require.NoError(t, err)
	assert.Equal(t, attendance.EventCheckOut, checkOut.EventKind)
	assert.Equal(t, attendance.LabelOnTime, checkOut.Status)
	require.NotNil(t, checkOut.DurationMinutes)
	assert.Equal(t, 565, *checkOut.DurationMinutes) // 07:45 to 17:10

	// A third scan has nothing left to record.
	_, err = svc.Resolve(ctx, "EMP-001", time.Date(2026, 3, 10, 18, 0, 0, 0, time.UTC))
	assert.ErrorIs(t, err, attendance.ErrAlreadyCheckedOut)
}

func TestResolveWorkDuration(t *testing.T) {
	svc, _, _ := newTestService(t)
	ctx := context.Background()

	_, err := svc.Resolve(ctx, "EMP-001", time.Date(2026, 3, 10, 8, 0, 0, 0, time.UTC))
	require.NoError(t, err)

	result, err := svc.Resolve(ctx, "EMP-001", time.Date(2026, 3, 10, 16, 30, 0, 0, time.UTC))
	require.NoError(t, err)
	require.NotNil(t, result.DurationMinutes)
	assert.Equal(t, 510, *result.DurationMinutes)
}

func TestResolveOneRecordPerDay(t *testing.T) {
	svc, repo, _ := newTestService(t)
	ctx := context.Background()

	_, err := svc.Resolve(ctx, "EMP-001", time.Date(2026, 3, 10, 8, 0, 0, 0, time.UTC))
	require.NoError(t, err)
	_, err = svc.Resolve(ctx, "EMP-001", time.Date(2026, 3, 10, 17, 0, 0, 0, time.UTC))
	require.NoError(t, err)

	// Next calendar day starts a fresh record.
	result, err := svc.Resolve(ctx, "EMP-001", time.Date(2026, 3, 11, 8, 5, 0, 0, time.UTC))
	require.NoError(t, err)
	assert.Equal(t, attendance.EventCheckIn, result.EventKind)

	records, total, err := repo.List(ctx, attendance.RecordFilter{})
	require.NoError(t, err)
	assert.Equal(t, int64(2), total)
	assert.Len(t, records, 2)
}

func TestResolveUnknownEmployee(t *testing.T) {
	svc, _, _ := newTestService(t)

	_, err := svc.Resolve(context.Background(), "EMP-999", time.Date(2026, 3, 10, 8, 0, 0, 0, time.UTC))
	assert.ErrorIs(t, err, employee.ErrEmployeeNotFound)
}

func TestResolveInactiveEmployee(t *testing.T) {
	svc, repo, _ := newTestService(t)

	_, err := svc.Resolve(context.Background(), "EMP-002", time.Date(2026, 3, 10, 8, 0, 0, 0, time.UTC))
	assert.ErrorIs(t, err, employee.ErrEmployeeInactive)

	_, total, err := repo.List(context.Background(), attendance.RecordFilter{})
	require.NoError(t, err)
	assert.Zero(t, total)
}

func TestResolveLostInsertRaceBecomesCheckOut(t *testing.T) {
	svc, repo, _ := newTestService(t)
	ctx := context.Background()

	// Another resolution wrote the check-in between this caller's read
	// and its insert attempt.
	_, err := repo.UpsertCheckIn(ctx, attendance.Record{
		ID:           "seeded",
		EmployeeID:   "EMP-001",
		EmployeeName: "Alice Wong",
		Date:         "2026-03-10",
		CheckIn: &attendance.EventInfo{
			Timestamp: time.Date(2026, 3, 10, 8, 0, 0, 0, time.UTC),
			Status:    attendance.LabelOnTime,
		},
	})
	require.NoError(t, err)

	raceSvc := svc.(*AttendanceServiceImpl)
	emp := employee.Employee{EmployeeID: "EMP-001", Name: "Alice Wong", IsActive: true}
	result, err := raceSvc.handleCheckIn(ctx, emp, "2026-03-10", time.Date(2026, 3, 10, 16, 45, 0, 0, time.UTC), schedule.Default())
	require.NoError(t, err)

	assert.Equal(t, attendance.EventCheckOut, result.EventKind)
	require.NotNil(t, result.DurationMinutes)
	assert.Equal(t, 525, *result.DurationMinutes)
}

func TestResolveLateCheckInNotifies(t *testing.T) {
	svc, _, notifier := newTestService(t)

	result, err := svc.Resolve(context.Background(), "EMP-001", time.Date(2026, 3, 10, 8, 45, 0, 0, time.UTC))
	require.NoError(t, err)
	assert.Equal(t, attendance.LabelLate, result.Status)

	// Publishing is asynchronous.
	assert.Eventually(t, func() bool {
		notifier.mu.Lock()
		defer notifier.mu.Unlock()
		return len(notifier.events) == 1
	}, time.Second, 10*time.Millisecond)

	notifier.mu.Lock()
	defer notifier.mu.Unlock()
	assert.Equal(t, "Alice Wong", notifier.events[0].EmployeeName)
	assert.Equal(t, 45, notifier.events[0].LatenessMinutes)
}

func TestResolveCheckOutWithoutCheckInRecord(t *testing.T) {
	svc, repo, _ := newTestService(t)
	ctx := context.Background()

	// A legacy row exists but its check-in was never written.
	repo.records[key("EMP-001", "2026-03-10")] = &attendance.Record{
		ID:         "legacy",
		EmployeeID: "EMP-001",
		Date:       "2026-03-10",
	}

	// The resolver treats it as the check-in branch and fills the gap.
	result, err := svc.Resolve(ctx, "EMP-001", time.Date(2026, 3, 10, 9, 0, 0, 0, time.UTC))
	require.NoError(t, err)
	assert.Equal(t, attendance.EventCheckIn, result.EventKind)
}

func TestListRecordsFiltersByEmployee(t *testing.T) {
	svc, _, _ := newTestService(t)
	ctx := context.Background()

	_, err := svc.Resolve(ctx, "EMP-001", time.Date(2026, 3, 10, 8, 0, 0, 0, time.UTC))
	require.NoError(t, err)

	empID := "EMP-001"
	result, err := svc.ListRecords(ctx, attendance.RecordFilter{EmployeeID: &empID})
	require.NoError(t, err)
	assert.Equal(t, int64(1), result.TotalCount)
	require.Len(t, result.Records, 1)
	assert.Equal(t, "EMP-001", result.Records[0].EmployeeID)
	assert.NotNil(t, result.Records[0].CheckIn)
	assert.Nil(t, result.Records[0].CheckOut)
}

func TestListRecordsRejectsBadDates(t *testing.T) {
	svc, _, _ := newTestService(t)

	bad := "10-03-2026"
	_, err := svc.ListRecords(context.Background(), attendance.RecordFilter{StartDate: &bad})
	assert.Error(t, err)
}
