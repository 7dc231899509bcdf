package attendance

import "errors"

// Business-state errors. These are expected outcomes of normal
// operation: returned to the caller, never retried, never logged as
// system failures.
var (
	ErrAlreadyCheckedOut = errors.New("employee has already checked out today")
	ErrNoPriorCheckIn    = errors.New("no open check-in found for today")
	ErrRecordNotFound    = errors.New("attendance record not found")
)
