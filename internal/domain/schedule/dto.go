package schedule

import (
	"github.com/faceclock/attendance-backend-go/internal/pkg/validator"
)

type UpdateScheduleRequest struct {
	StartTime                  string `json:"start_time"`
	EndTime                    string `json:"end_time"`
	LateThresholdMinutes       int    `json:"late_threshold_minutes"`
	EarlyLeaveThresholdMinutes int    `json:"early_leave_threshold_minutes"`
	SyncFrequency              int    `json:"sync_frequency"`
}

// Validate checks the candidate configuration before anything is
// written. A failed validation leaves the stored schedule untouched.
func (r UpdateScheduleRequest) Validate() error {
	var errs validator.ValidationErrors

	if !validator.IsValidTimeOfDay(r.StartTime) {
		errs = append(errs, validator.ValidationError{Field: "start_time", Message: "must be HH:MM on a 24-hour clock"})
	}
	if !validator.IsValidTimeOfDay(r.EndTime) {
		errs = append(errs, validator.ValidationError{Field: "end_time", Message: "must be HH:MM on a 24-hour clock"})
	}
	if len(errs) == 0 {
		start, _ := ParseTimeOfDay(r.StartTime)
		end, _ := ParseTimeOfDay(r.EndTime)
		if start.MinutesOfDay() >= end.MinutesOfDay() {
			errs = append(errs, validator.ValidationError{Field: "start_time", Message: "must be before end_time"})
		}
	}
	if r.LateThresholdMinutes < 0 {
		errs = append(errs, validator.ValidationError{Field: "late_threshold_minutes", Message: "must not be negative"})
	}
	if r.EarlyLeaveThresholdMinutes < 0 {
		errs = append(errs, validator.ValidationError{Field: "early_leave_threshold_minutes", Message: "must not be negative"})
	}
	if r.SyncFrequency < 1 {
		errs = append(errs, validator.ValidationError{Field: "sync_frequency", Message: "must be at least 1"})
	}

	if len(errs) > 0 {
		return errs
	}
	return nil
}

type ScheduleResponse struct {
	StartTime                  string `json:"start_time"`
	EndTime                    string `json:"end_time"`
	LateThresholdMinutes       int    `json:"late_threshold_minutes"`
	EarlyLeaveThresholdMinutes int    `json:"early_leave_threshold_minutes"`
	SyncFrequency              int    `json:"sync_frequency"`
}
