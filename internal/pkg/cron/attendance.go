package cron

import (
	"context"
	"log/slog"

	"github.com/cmlabs-hris/student-attendance/internal/domain/attendance"
)

// AttendanceJobs holds the periodic jobs over the session roster
type AttendanceJobs struct {
	attendanceService attendance.AttendanceService
	logger            *slog.Logger
}

func NewAttendanceJobs(attendanceService attendance.AttendanceService, logger *slog.Logger) *AttendanceJobs {
	if logger == nil {
		logger = slog.Default()
	}
	return &AttendanceJobs{
		attendanceService: attendanceService,
		logger:            logger,
	}
}

// LogRosterSnapshot writes the current counters to the log so a session's
// totals remain visible after the process exits.
func (j *AttendanceJobs) LogRosterSnapshot(ctx context.Context) error {
	roster := j.attendanceService.Roster(ctx)
	counters := attendance.NewCountersResponse(roster)

	j.logger.InfoContext(ctx, "Attendance snapshot",
		"records", roster.Len(),
		"present", counters.Present,
		"checked_in", counters.CheckedIn,
		"checked_out", counters.CheckedOut,
	)
	return nil
}
