package response

import (
	"errors"
	"net/http"

	"github.com/cmlabs-hris/student-attendance/internal/domain/attendance"
	"github.com/cmlabs-hris/student-attendance/internal/pkg/validator"
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
	case errors.Is(err, attendance.ErrRecordNotFound):
		NotFound(w, "Attendance record not found")
	case errors.Is(err, attendance.ErrAlreadyCheckedOut):
		Conflict(w, "Student has already checked out")

	// Default
	default:
		InternalServerError(w, "An unexpected error occurred")
	}
}
