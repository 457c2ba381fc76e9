package attendance

import (
	"time"

	"github.com/cmlabs-hris/student-attendance/internal/pkg/validator"
)

// ========================================
// ATTENDANCE DTOs
// ========================================

// CheckInRequest carries the operator's form input. Fields must be present
// but may be empty.
type CheckInRequest struct {
	Identifier *string `json:"identifier"`
	Name       *string `json:"name"`
}

func (r *CheckInRequest) Validate() error {
	var errs validator.ValidationErrors

	if r.Identifier == nil {
		errs = append(errs, validator.ValidationError{
			Field:   "identifier",
			Message: "identifier field is required",
		})
	}

	if r.Name == nil {
		errs = append(errs, validator.ValidationError{
			Field:   "name",
			Message: "name field is required",
		})
	}

	if len(errs) > 0 {
		return errs
	}

	return nil
}

type CheckOutRequest struct {
	Identifier *string `json:"identifier"`
}

func (r *CheckOutRequest) Validate() error {
	if r.Identifier == nil {
		return validator.ValidationErrors{{
			Field:   "identifier",
			Message: "identifier field is required",
		}}
	}
	return nil
}

type RecordResponse struct {
	ID           string     `json:"id"`
	Identifier   string     `json:"identifier"`
	Name         string     `json:"name"`
	IsPresent    bool       `json:"is_present"`
	CheckInTime  time.Time  `json:"check_in_time"`
	CheckOutTime *time.Time `json:"check_out_time"`
}

type CountersResponse struct {
	Present    int `json:"present"`
	CheckedIn  int `json:"checked_in"`
	CheckedOut int `json:"checked_out"`
}

type RosterResponse struct {
	Records  []RecordResponse `json:"records"`
	Counters CountersResponse `json:"counters"`
}

// NewRecordResponse converts a Record to its API representation.
func NewRecordResponse(rec Record) RecordResponse {
	return RecordResponse{
		ID:           rec.ID,
		Identifier:   rec.Identifier,
		Name:         rec.DisplayName,
		IsPresent:    rec.IsPresent,
		CheckInTime:  rec.CheckInAt,
		CheckOutTime: rec.CheckOutAt,
	}
}

// NewCountersResponse derives the counters bar from a roster.
func NewCountersResponse(r Roster) CountersResponse {
	return CountersResponse{
		Present:    PresentCount(r),
		CheckedIn:  r.CheckedInTotal,
		CheckedOut: r.CheckedOutTotal,
	}
}

func NewRosterResponse(r Roster) RosterResponse {
	records := r.Records()
	resp := RosterResponse{
		Records:  make([]RecordResponse, 0, len(records)),
		Counters: NewCountersResponse(r),
	}
	for _, rec := range records {
		resp.Records = append(resp.Records, NewRecordResponse(rec))
	}
	return resp
}

// SSEEvent is a change notification pushed to open pages
type SSEEvent struct {
	Event string           `json:"event"`
	Data  CountersResponse `json:"data"`
}
