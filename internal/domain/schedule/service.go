package schedule

import "context"

type ScheduleService interface {
	// GetSchedule returns the current schedule, falling back to
	// Default() when no schedule has been stored yet.
	GetSchedule(ctx context.Context) (Schedule, error)

	// UpdateSchedule validates and atomically replaces the schedule.
	// On validation failure nothing is written.
	UpdateSchedule(ctx context.Context, req UpdateScheduleRequest) (Schedule, error)
}
