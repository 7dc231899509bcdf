package attendance

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/faceclock/attendance-backend-go/internal/domain/attendance"
	"github.com/faceclock/attendance-backend-go/internal/domain/employee"
	"github.com/faceclock/attendance-backend-go/internal/domain/schedule"
	"github.com/faceclock/attendance-backend-go/internal/pkg/notify"
	"github.com/google/uuid"
)

// AttendanceServiceImpl is the event resolver. Per (employee, day) it
// drives the NO_RECORD -> CHECKED_IN -> CHECKED_OUT state machine; the
// record store's conditional writes keep the transitions atomic under
// racing submissions.
type AttendanceServiceImpl struct {
	attendance.RecordRepository
	employee.EmployeeRepository
	scheduleService schedule.ScheduleService
	notifier        notify.Notifier
	logger          *slog.Logger
	loc             *time.Location
}

func NewAttendanceService(
	recordRepo attendance.RecordRepository,
	employeeRepo employee.EmployeeRepository,
	scheduleService schedule.ScheduleService,
	notifier notify.Notifier,
	logger *slog.Logger,
	loc *time.Location,
) attendance.AttendanceService {
	if loc == nil {
		loc = time.Local
	}
	return &AttendanceServiceImpl{
		RecordRepository:   recordRepo,
		EmployeeRepository: employeeRepo,
		scheduleService:    scheduleService,
		notifier:           notifier,
		logger:             logger,
		loc:                loc,
	}
}

// Resolve implements attendance.AttendanceService.
func (s *AttendanceServiceImpl) Resolve(ctx context.Context, employeeID string, now time.Time) (attendance.ResolveResult, error) {
	emp, err := s.EmployeeRepository.GetByEmployeeID(ctx, employeeID)
	if err != nil {
		if errors.Is(err, employee.ErrEmployeeNotFound) {
			return attendance.ResolveResult{}, employee.ErrEmployeeNotFound
		}
		return attendance.ResolveResult{}, fmt.Errorf("failed to look up employee: %w", err)
	}
	if !emp.IsActive {
		return attendance.ResolveResult{}, employee.ErrEmployeeInactive
	}

	// The record's date key and all classification happen on the same
	// local clock, so resolution and storage agree on what "today" is.
	nowLocal := now.In(s.loc)
	today := nowLocal.Format("2006-01-02")

	sched, err := s.scheduleService.GetSchedule(ctx)
	if err != nil {
		return attendance.ResolveResult{}, fmt.Errorf("failed to load schedule: %w", err)
	}

	rec, err := s.RecordRepository.GetByEmployeeAndDate(ctx, employeeID, today)
	if err != nil {
		return attendance.ResolveResult{}, fmt.Errorf("failed to query attendance record: %w", err)
	}

	switch {
	case rec == nil || rec.CheckIn == nil:
		return s.handleCheckIn(ctx, emp, today, nowLocal, sched)
	case rec.CheckOut == nil:
		return s.handleCheckOut(ctx, emp, today, nowLocal, sched)
	default:
		return attendance.ResolveResult{}, attendance.ErrAlreadyCheckedOut
	}
}

// handleCheckIn records the first event of the day. When a concurrent
// resolution wins the insert, this attempt falls through to the
// check-out branch instead of overwriting anything.
func (s *AttendanceServiceImpl) handleCheckIn(ctx context.Context, emp employee.Employee, today string, nowLocal time.Time, sched schedule.Schedule) (attendance.ResolveResult, error) {
	label, err := Classify(nowLocal, attendance.EventCheckIn, sched)
	if err != nil {
		return attendance.ResolveResult{}, fmt.Errorf("failed to classify check-in: %w", err)
	}

	rec := attendance.Record{
		ID:           uuid.NewString(),
		EmployeeID:   emp.EmployeeID,
		EmployeeName: emp.Name,
		Date:         today,
		CheckIn:      &attendance.EventInfo{Timestamp: nowLocal.UTC(), Status: label},
	}

	inserted, err := s.RecordRepository.UpsertCheckIn(ctx, rec)
	if err != nil {
		return attendance.ResolveResult{}, fmt.Errorf("failed to upsert check-in: %w", err)
	}
	if !inserted {
		// Lost the race on the (employee, date) key; the existing
		// check-in stands and this scan becomes the check-out.
		return s.handleCheckOut(ctx, emp, today, nowLocal, sched)
	}

	if label == attendance.LabelLate {
		s.notifyLateArrival(ctx, emp.Name, nowLocal, sched)
	}

	return attendance.ResolveResult{
		EmployeeID:   emp.EmployeeID,
		EmployeeName: emp.Name,
		Date:         today,
		EventKind:    attendance.EventCheckIn,
		Status:       label,
	}, nil
}

// handleCheckOut closes the day's open record and reports the work
// duration the store derived from the original check-in.
func (s *AttendanceServiceImpl) handleCheckOut(ctx context.Context, emp employee.Employee, today string, nowLocal time.Time, sched schedule.Schedule) (attendance.ResolveResult, error) {
	label, err := Classify(nowLocal, attendance.EventCheckOut, sched)
	if err != nil {
		return attendance.ResolveResult{}, fmt.Errorf("failed to classify check-out: %w", err)
	}

	updated, err := s.RecordRepository.ApplyCheckOut(ctx, emp.EmployeeID, today, nowLocal.UTC(), label)
	if err != nil {
		if errors.Is(err, attendance.ErrAlreadyCheckedOut) || errors.Is(err, attendance.ErrNoPriorCheckIn) {
			return attendance.ResolveResult{}, err
		}
		return attendance.ResolveResult{}, fmt.Errorf("failed to apply check-out: %w", err)
	}

	duration := updated.WorkDurationMinutes
	return attendance.ResolveResult{
		EmployeeID:      emp.EmployeeID,
		EmployeeName:    emp.Name,
		Date:            today,
		EventKind:       attendance.EventCheckOut,
		Status:          label,
		DurationMinutes: &duration,
	}, nil
}

// notifyLateArrival publishes fire-and-forget; delivery failures are
// logged and never block or fail the resolution path.
func (s *AttendanceServiceImpl) notifyLateArrival(ctx context.Context, employeeName string, nowLocal time.Time, sched schedule.Schedule) {
	event := notify.LateArrivalEvent{
		EmployeeName:    employeeName,
		EventKind:       string(attendance.EventCheckIn),
		Label:           string(attendance.LabelLate),
		LatenessMinutes: latenessMinutes(nowLocal, sched),
	}

	bgCtx := context.WithoutCancel(ctx)
	go func() {
		ctx, cancel := context.WithTimeout(bgCtx, 5*time.Second)
		defer cancel()
		if err := s.notifier.PublishLateArrival(ctx, event); err != nil {
			s.logger.Warn("failed to publish late-arrival notification",
				"employee_name", employeeName, "error", err)
		}
	}()
}

// ListRecords implements attendance.AttendanceService.
func (s *AttendanceServiceImpl) ListRecords(ctx context.Context, filter attendance.RecordFilter) (attendance.ListRecordsResponse, error) {
	if err := filter.Validate(); err != nil {
		return attendance.ListRecordsResponse{}, err
	}

	records, total, err := s.RecordRepository.List(ctx, filter)
	if err != nil {
		return attendance.ListRecordsResponse{}, fmt.Errorf("failed to list attendance records: %w", err)
	}

	responses := make([]attendance.RecordResponse, 0, len(records))
	for _, rec := range records {
		responses = append(responses, mapRecordToResponse(rec))
	}

	page := filter.Page
	if page == 0 {
		page = 1
	}
	limit := filter.Limit
	if limit == 0 {
		limit = 20
	}

	return attendance.ListRecordsResponse{
		TotalCount: total,
		Page:       page,
		Limit:      limit,
		Records:    responses,
	}, nil
}

func mapRecordToResponse(rec attendance.Record) attendance.RecordResponse {
	resp := attendance.RecordResponse{
		ID:                  rec.ID,
		EmployeeID:          rec.EmployeeID,
		EmployeeName:        rec.EmployeeName,
		Date:                rec.Date,
		WorkDurationMinutes: rec.WorkDurationMinutes,
		CreatedAt:           rec.CreatedAt.Format(time.RFC3339),
		UpdatedAt:           rec.UpdatedAt.Format(time.RFC3339),
	}
	if rec.CheckIn != nil {
		resp.CheckIn = &attendance.EventResponse{
			Timestamp: rec.CheckIn.Timestamp.Format(time.RFC3339),
			Status:    rec.CheckIn.Status,
		}
	}
	if rec.CheckOut != nil {
		resp.CheckOut = &attendance.EventResponse{
			Timestamp: rec.CheckOut.Timestamp.Format(time.RFC3339),
			Status:    rec.CheckOut.Status,
		}
	}
	return resp
}
