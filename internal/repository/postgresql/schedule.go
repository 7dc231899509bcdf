package postgresql

import (
	"context"
	"errors"
	"fmt"

	"github.com/faceclock/attendance-backend-go/internal/domain/schedule"
	"github.com/faceclock/attendance-backend-go/internal/pkg/database"
	"github.com/jackc/pgx/v5"
)

type scheduleRepository struct {
	db *database.DB
}

func NewScheduleRepository(db *database.DB) schedule.ScheduleRepository {
	return &scheduleRepository{db: db}
}

// Get implements schedule.ScheduleRepository.
func (r *scheduleRepository) Get(ctx context.Context) (schedule.Schedule, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		SELECT id, start_minutes, end_minutes,
		       late_threshold_minutes, early_leave_threshold_minutes,
		       sync_frequency, created_at, updated_at
		FROM work_schedules
		WHERE id = $1
	`

	var s schedule.Schedule
	var startMinutes, endMinutes int
	err := q.QueryRow(ctx, query, schedule.ScheduleID).Scan(
		&s.ID, &startMinutes, &endMinutes,
		&s.LateThresholdMinutes, &s.EarlyLeaveThresholdMinutes,
		&s.SyncFrequency, &s.CreatedAt, &s.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return schedule.Schedule{}, schedule.ErrScheduleNotFound
		}
		return schedule.Schedule{}, fmt.Errorf("failed to get work schedule: %w", err)
	}

	s.StartTime = schedule.TimeOfDayFromMinutes(startMinutes)
	s.EndTime = schedule.TimeOfDayFromMinutes(endMinutes)
	return s, nil
}

// Replace implements schedule.ScheduleRepository. The whole row is
// written in one statement so a failed update can never leave a
// half-applied configuration behind.
func (r *scheduleRepository) Replace(ctx context.Context, s schedule.Schedule) (schedule.Schedule, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		INSERT INTO work_schedules (
			id, start_minutes, end_minutes,
			late_threshold_minutes, early_leave_threshold_minutes, sync_frequency
		) VALUES ($1, $2, $3, $4, $5, $6)
		ON CONFLICT (id) DO UPDATE SET
			start_minutes = EXCLUDED.start_minutes,
			end_minutes = EXCLUDED.end_minutes,
			late_threshold_minutes = EXCLUDED.late_threshold_minutes,
			early_leave_threshold_minutes = EXCLUDED.early_leave_threshold_minutes,
			sync_frequency = EXCLUDED.sync_frequency,
			updated_at = NOW()
		RETURNING created_at, updated_at
	`

	err := q.QueryRow(ctx, query,
		schedule.ScheduleID,
		s.StartTime.MinutesOfDay(),
		s.EndTime.MinutesOfDay(),
		s.LateThresholdMinutes,
		s.EarlyLeaveThresholdMinutes,
		s.SyncFrequency,
	).Scan(&s.CreatedAt, &s.UpdatedAt)
	if err != nil {
		return schedule.Schedule{}, fmt.Errorf("failed to replace work schedule: %w", err)
	}

	s.ID = schedule.ScheduleID
	return s, nil
}
