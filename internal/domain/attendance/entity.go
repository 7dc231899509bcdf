package attendance

import (
	"time"
)

// Label classifies a single attendance event against the schedule.
type Label string

const (
	LabelEarly  Label = "early"
	LabelOnTime Label = "ontime"
	LabelLate   Label = "late"
)

// EventKind is the direction of an attendance event.
type EventKind string

const (
	EventCheckIn  EventKind = "check_in"
	EventCheckOut EventKind = "check_out"
)

// EventInfo is one half of a day's work session.
type EventInfo struct {
	Timestamp time.Time
	Status    Label
}

// Record is the per-employee-per-day attendance document. At most one
// record exists per (EmployeeID, Date); CheckOut is never set without
// CheckIn, and WorkDurationMinutes stays 0 until checkout.
type Record struct {
	ID                  string
	EmployeeID          string
	EmployeeName        string
	Date                string // "2006-01-02", calendar day in the system location
	CheckIn             *EventInfo
	CheckOut            *EventInfo
	WorkDurationMinutes int
	CreatedAt           time.Time
	UpdatedAt           time.Time
}
