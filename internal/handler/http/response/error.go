package response

import (
	"errors"
	"net/http"

	"github.com/faceclock/attendance-backend-go/internal/domain/attendance"
	"github.com/faceclock/attendance-backend-go/internal/domain/employee"
	"github.com/faceclock/attendance-backend-go/internal/domain/schedule"
	"github.com/faceclock/attendance-backend-go/internal/pkg/validator"
)

// HandleError maps domain errors to HTTP responses
func HandleError(w http.ResponseWriter, err error) {
	// Check if it's a validation error
	var validationErrs validator.ValidationErrors
	if errors.As(err, &validationErrs) {
		ValidationError(w, validationErrs.ToMap())
		return
	}

	switch {
	// Attendance domain errors
	case errors.Is(err, attendance.ErrAlreadyCheckedOut):
		Conflict(w, "Attendance for this day is already complete")
	case errors.Is(err, attendance.ErrNoPriorCheckIn):
		Conflict(w, "No open check-in to close")
	case errors.Is(err, attendance.ErrRecordNotFound):
		NotFound(w, "Attendance record not found")

	// Employee domain errors
	case errors.Is(err, employee.ErrEmployeeNotFound):
		NotFound(w, "Employee not found")
	case errors.Is(err, employee.ErrEmployeeIDExists):
		Conflict(w, "Employee ID already exists")
	case errors.Is(err, employee.ErrEmployeeInactive):
		Conflict(w, "Employee is deactivated")

	// Schedule domain errors
	case errors.Is(err, schedule.ErrScheduleNotFound):
		NotFound(w, "Schedule not found")

	// Default
	default:
		InternalServerError(w, "An unexpected error occurred")
	}
}
