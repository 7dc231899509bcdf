package attendance

import (
	"context"
	"time"
)

// AttendanceService resolves recognized-identity events into stored
// attendance records.
type AttendanceService interface {
	// Resolve decides whether the event at `now` is the employee's
	// check-in or check-out for the day, classifies it against the
	// schedule and persists it. A third event on an already closed day
	// fails with ErrAlreadyCheckedOut.
	Resolve(ctx context.Context, employeeID string, now time.Time) (ResolveResult, error)

	// ListRecords is a read-only record query for reporting views.
	ListRecords(ctx context.Context, filter RecordFilter) (ListRecordsResponse, error)
}
