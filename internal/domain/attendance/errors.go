package attendance

import "errors"

// Attendance domain errors
var (
	// Check-out errors
	ErrRecordNotFound    = errors.New("attendance record not found")
	ErrAlreadyCheckedOut = errors.New("student has already checked out")
)
