package domain

import (
	"context"
	"errors"
)

// Sentinel errors for attendee membership operations.
var (
	ErrAlreadyRegistered = errors.New("user already registered for this event")
	ErrNotRegistered     = errors.New("user is not registered for this event")
)

// AttendeeRepository defines storage for the event/user attendee membership.
// The join table carries a unique (event_id, user_id) constraint so the
// check-then-insert in the service cannot produce duplicates under races.
type AttendeeRepository interface {
	// Add inserts the membership. Returns ErrAlreadyRegistered on a duplicate pair.
	Add(ctx context.Context, eventID string, userID int64) error
	// Remove deletes the membership. Returns ErrNotRegistered when no row matched.
	Remove(ctx context.Context, eventID string, userID int64) error
	Exists(ctx context.Context, eventID string, userID int64) (bool, error)
	ListByEventID(ctx context.Context, eventID string) ([]*User, error)
}

// AttendeeService maintains the attendee membership set per event.
// Membership is intentionally independent of Booking: the two participation
// records for the same (user, event) pair are never coordinated.
type AttendeeService interface {
	Add(ctx context.Context, eventID string, userID int64) (*EventWithAttendees, error)
	Remove(ctx context.Context, eventID string, userID int64) (*EventWithAttendees, error)
	List(ctx context.Context, eventID string) ([]*User, error)
}
