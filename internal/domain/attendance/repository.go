package attendance

import (
	"context"
	"time"
)

// RecordRepository is the attendance record store. Both write
// operations are atomic, conditional, single-row statements keyed on
// (employee_id, date); racing callers never overwrite each other.
type RecordRepository interface {
	// GetByEmployeeAndDate returns the record for the key, or nil when
	// none exists.
	GetByEmployeeAndDate(ctx context.Context, employeeID, date string) (*Record, error)

	// UpsertCheckIn creates the day's record with its check-in set.
	// When a record already exists for the key the call is a no-op and
	// reports inserted=false; the original check-in always wins.
	UpsertCheckIn(ctx context.Context, rec Record) (inserted bool, err error)

	// ApplyCheckOut closes the day's open record, computing the work
	// duration from the stored check-in timestamp in the same
	// statement. Fails with ErrAlreadyCheckedOut when the record is
	// already closed and ErrNoPriorCheckIn when there is nothing to
	// close.
	ApplyCheckOut(ctx context.Context, employeeID, date string, ts time.Time, status Label) (Record, error)

	// List returns records matching the filter, newest date first.
	List(ctx context.Context, filter RecordFilter) ([]Record, int64, error)
}
