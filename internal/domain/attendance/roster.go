package attendance

import (
	"time"
)

// CheckIn appends a new present record and bumps the check-in counter.
// Empty and duplicate identifiers are accepted as-is.
func CheckIn(r Roster, id, identifier, displayName string, now time.Time) (Roster, Record) {
	rec := Record{
		ID:          id,
		Identifier:  identifier,
		DisplayName: displayName,
		IsPresent:   true,
		CheckInAt:   now,
	}

	records := make([]Record, len(r.records), len(r.records)+1)
	copy(records, r.records)
	records = append(records, rec)

	return Roster{
		records:         records,
		CheckedInTotal:  r.CheckedInTotal + 1,
		CheckedOutTotal: r.CheckedOutTotal,
	}, rec
}

// CheckOut checks out the earliest present record with the given identifier.
// The roster is returned unchanged together with ErrRecordNotFound when no
// record carries the identifier, or ErrAlreadyCheckedOut when all of them
// have already left.
func CheckOut(r Roster, identifier string, now time.Time) (Roster, Record, error) {
	matched := false
	for i, rec := range r.records {
		if rec.Identifier != identifier {
			continue
		}
		matched = true
		if rec.IsPresent {
			return checkOutAt(r, i, now)
		}
	}

	if matched {
		return r, Record{}, ErrAlreadyCheckedOut
	}
	return r, Record{}, ErrRecordNotFound
}

// CheckOutByID checks out the record with the given ID.
func CheckOutByID(r Roster, id string, now time.Time) (Roster, Record, error) {
	for i, rec := range r.records {
		if rec.ID != id {
			continue
		}
		if !rec.IsPresent {
			return r, Record{}, ErrAlreadyCheckedOut
		}
		return checkOutAt(r, i, now)
	}
	return r, Record{}, ErrRecordNotFound
}

// PresentCount returns the number of records currently marked present.
func PresentCount(r Roster) int {
	n := 0
	for _, rec := range r.records {
		if rec.IsPresent {
			n++
		}
	}
	return n
}

func checkOutAt(r Roster, i int, now time.Time) (Roster, Record, error) {
	records := make([]Record, len(r.records))
	copy(records, r.records)

	// check-out never precedes check-in, even with a skewed clock
	if now.Before(records[i].CheckInAt) {
		now = records[i].CheckInAt
	}
	checkOut := now

	records[i].IsPresent = false
	records[i].CheckOutAt = &checkOut

	return Roster{
		records:         records,
		CheckedInTotal:  r.CheckedInTotal,
		CheckedOutTotal: r.CheckedOutTotal + 1,
	}, records[i].clone(), nil
}
