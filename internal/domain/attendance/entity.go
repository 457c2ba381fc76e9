package attendance

import (
	"time"
)

// Record is a single student check-in. It is created present and flips to
// checked out at most once.
type Record struct {
	ID          string
	Identifier  string
	DisplayName string
	IsPresent   bool
	CheckInAt   time.Time
	CheckOutAt  *time.Time
}

// Roster is the immutable attendance state for one session. Operations in
// roster.go never modify a Roster in place; they return a new one.
type Roster struct {
	records         []Record
	CheckedInTotal  int
	CheckedOutTotal int
}

// Records returns a copy of the records in check-in order. Callers may
// modify the result freely.
func (r Roster) Records() []Record {
	out := make([]Record, len(r.records))
	for i, rec := range r.records {
		out[i] = rec.clone()
	}
	return out
}

// clone returns a copy that shares no memory with rec.
func (rec Record) clone() Record {
	if rec.CheckOutAt != nil {
		t := *rec.CheckOutAt
		rec.CheckOutAt = &t
	}
	return rec
}

// Len returns the number of records.
func (r Roster) Len() int {
	return len(r.records)
}
