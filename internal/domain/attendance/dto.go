package attendance

import (
	"github.com/faceclock/attendance-backend-go/internal/pkg/validator"
)

type ResolveRequest struct {
	EmployeeID string `json:"employee_id"`
}

func (r ResolveRequest) Validate() error {
	var errs validator.ValidationErrors

	if validator.IsEmpty(r.EmployeeID) {
		errs = append(errs, validator.ValidationError{Field: "employee_id", Message: "is required"})
	} else if !validator.IsValidEmployeeCode(r.EmployeeID) {
		errs = append(errs, validator.ValidationError{Field: "employee_id", Message: "must look like EMP-001"})
	}

	if len(errs) > 0 {
		return errs
	}
	return nil
}

// ResolveResult is what the recognition layer gets back after an
// event has been recorded.
type ResolveResult struct {
	EmployeeID      string    `json:"employee_id"`
	EmployeeName    string    `json:"employee_name"`
	Date            string    `json:"date"`
	EventKind       EventKind `json:"event_kind"`
	Status          Label     `json:"status"`
	DurationMinutes *int      `json:"duration_minutes,omitempty"`
}

type RecordFilter struct {
	EmployeeID *string
	StartDate  *string
	EndDate    *string
	Page       int
	Limit      int
}

func (f RecordFilter) Validate() error {
	var errs validator.ValidationErrors

	if f.StartDate != nil && *f.StartDate != "" {
		if _, ok := validator.IsValidDate(*f.StartDate); !ok {
			errs = append(errs, validator.ValidationError{Field: "start_date", Message: "must be YYYY-MM-DD"})
		}
	}
	if f.EndDate != nil && *f.EndDate != "" {
		if _, ok := validator.IsValidDate(*f.EndDate); !ok {
			errs = append(errs, validator.ValidationError{Field: "end_date", Message: "must be YYYY-MM-DD"})
		}
	}

	if len(errs) > 0 {
		return errs
	}
	return nil
}

type EventResponse struct {
	Timestamp string `json:"timestamp"`
	Status    Label  `json:"status"`
}

type RecordResponse struct {
	ID                  string         `json:"id"`
	EmployeeID          string         `json:"employee_id"`
	EmployeeName        string         `json:"employee_name"`
	Date                string         `json:"date"`
	CheckIn             *EventResponse `json:"checkin"`
	CheckOut            *EventResponse `json:"checkout"`
	WorkDurationMinutes int            `json:"work_duration_minutes"`
	CreatedAt           string         `json:"created_at"`
	UpdatedAt           string         `json:"updated_at"`
}

type ListRecordsResponse struct {
	TotalCount int64            `json:"total_count"`
	Page       int              `json:"page"`
	Limit      int              `json:"limit"`
	Records    []RecordResponse `json:"records"`
}
