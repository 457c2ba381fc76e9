package attendance

import (
	"context"
)

// Event names published to subscribers
const (
	EventRosterChanged = "roster"
)

// AttendanceService owns the session roster and dispatches operator intents
type AttendanceService interface {
	// CheckIn records a new present student
	CheckIn(ctx context.Context, identifier, displayName string) (Record, error)

	// CheckOut checks out the earliest present record with the identifier
	CheckOut(ctx context.Context, identifier string) (Record, error)

	// CheckOutRecord checks out a single row by record ID
	CheckOutRecord(ctx context.Context, id string) (Record, error)

	// Roster returns a snapshot of the current state
	Roster(ctx context.Context) Roster

	// Subscribe registers for change notifications. The returned function
	// must be called to release the subscription.
	Subscribe(ctx context.Context) (<-chan SSEEvent, func())
}
