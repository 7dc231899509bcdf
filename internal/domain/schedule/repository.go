package schedule

import "context"

// ScheduleRepository persists the singleton work schedule.
type ScheduleRepository interface {
	// Get returns the stored schedule, or ErrScheduleNotFound when the
	// singleton row has never been written.
	Get(ctx context.Context) (Schedule, error)

	// Replace writes the whole schedule in a single atomic statement,
	// creating the row when absent.
	Replace(ctx context.Context, s Schedule) (Schedule, error)
}
