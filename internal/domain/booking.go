package domain

import (
	"context"
	"errors"
	"time"
)

// ErrDuplicateBooking is returned when a booking already exists for the
// same (user, event) pair.
var ErrDuplicateBooking = errors.New("booking already exists for this event")

// BookingStatus is the lifecycle state of a booking.
type BookingStatus string

// Booking statuses. New bookings start as pending; transitions are caller-driven.
const (
	BookingStatusPending   BookingStatus = "pending"
	BookingStatusConfirmed BookingStatus = "confirmed"
	BookingStatusCancelled BookingStatus = "cancelled"
)

// Valid reports whether s is one of the known booking statuses.
func (s BookingStatus) Valid() bool {
	switch s {
	case BookingStatusPending, BookingStatusConfirmed, BookingStatusCancelled:
		return true
	}
	return false
}

// Booking is a reservation linking exactly one user to exactly one event.
// At most one booking exists per (user_id, event_id) pair.
// swagger:model Booking
type Booking struct {
	ID        int64         `json:"id"`
	UserID    int64         `json:"user_id"`
	EventID   string        `json:"event_id"`
	Status    BookingStatus `json:"status"`
	Notes     *string       `json:"notes,omitempty"`
	CreatedAt time.Time     `json:"created_at"`
	UpdatedAt time.Time     `json:"updated_at"`
}

// NewBooking returns a new pending Booking. ID is set by the repository on create.
func NewBooking(userID int64, eventID string, notes *string, createdAt, updatedAt time.Time) *Booking {
	return &Booking{
		UserID:    userID,
		EventID:   eventID,
		Status:    BookingStatusPending,
		Notes:     notes,
		CreatedAt: createdAt,
		UpdatedAt: updatedAt,
	}
}

// BookingUpdate carries the optional fields for a partial booking update. Nil fields are unchanged.
type BookingUpdate struct {
	Status *BookingStatus
	Notes  *string
}

// BookingWithEvent bundles a booking with its event summary.
type BookingWithEvent struct {
	Booking *Booking `json:"booking"`
	Event   *Event   `json:"event"`
}

// BookingWithUser bundles a booking with its owner's public view.
type BookingWithUser struct {
	Booking *Booking `json:"booking"`
	User    *User    `json:"user"`
}

// BookingDetails bundles a booking with both related records.
type BookingDetails struct {
	Booking *Booking `json:"booking"`
	User    *User    `json:"user"`
	Event   *Event   `json:"event"`
}

// BookingRepository defines storage for bookings. Relations are fetched through
// typed methods rather than by naming associations.
type BookingRepository interface {
	// Create inserts the booking. Returns ErrDuplicateBooking when a booking
	// for the same (user, event) pair already exists.
	Create(ctx context.Context, b *Booking) error
	GetByID(ctx context.Context, id int64) (*Booking, error)
	GetByUserAndEvent(ctx context.Context, userID int64, eventID string) (*Booking, error)
	GetDetails(ctx context.Context, id int64) (*BookingDetails, error)
	ListByUserID(ctx context.Context, userID int64) ([]*BookingWithEvent, error)
	ListByEventID(ctx context.Context, eventID string) ([]*BookingWithUser, error)
	Update(ctx context.Context, b *Booking) error
	Delete(ctx context.Context, id int64) error
}

// BookingService manages the booking lifecycle with owner-gated mutation.
type BookingService interface {
	Create(ctx context.Context, eventID string, notes *string, callerID int64) (*BookingDetails, error)
	ListMine(ctx context.Context, callerID int64) ([]*BookingWithEvent, error)
	ListByEvent(ctx context.Context, eventID string) ([]*BookingWithUser, error)
	Get(ctx context.Context, id int64, callerID int64) (*BookingDetails, error)
	Update(ctx context.Context, id int64, upd BookingUpdate, callerID int64) (*BookingDetails, error)
	Remove(ctx context.Context, id int64, callerID int64) error
}
