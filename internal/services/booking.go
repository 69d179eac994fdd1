package services

import (
	"context"
	"errors"
	"fmt"
	"log"
	"time"

	"eventbooking/internal/domain"
)

type bookingService struct {
	bookingRepo  domain.BookingRepository
	eventRepo    domain.EventRepository
	emailService domain.EmailService
}

// NewBookingService creates a BookingService with the given repositories.
// emailService may be nil; confirmation emails are then skipped.
func NewBookingService(
	bookingRepo domain.BookingRepository,
	eventRepo domain.EventRepository,
	emailService domain.EmailService,
) domain.BookingService {
	return &bookingService{
		bookingRepo:  bookingRepo,
		eventRepo:    eventRepo,
		emailService: emailService,
	}
}

func (s *bookingService) Create(ctx context.Context, eventID string, notes *string, callerID int64) (*domain.BookingDetails, error) {
	if _, err := s.eventRepo.GetByID(ctx, eventID); err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return nil, domain.ErrNotFound
		}
		return nil, fmt.Errorf("get event: %w", err)
	}

	if _, err := s.bookingRepo.GetByUserAndEvent(ctx, callerID, eventID); err == nil {
		return nil, domain.ErrDuplicateBooking
	} else if !errors.Is(err, domain.ErrNotFound) {
		return nil, fmt.Errorf("get booking: %w", err)
	}

	now := time.Now()
	booking := domain.NewBooking(callerID, eventID, notes, now, now)
	// The unique (user_id, event_id) constraint backstops the pre-check under
	// concurrent identical requests.
	if err := s.bookingRepo.Create(ctx, booking); err != nil {
		if errors.Is(err, domain.ErrDuplicateBooking) {
			return nil, domain.ErrDuplicateBooking
		}
		return nil, fmt.Errorf("create booking: %w", err)
	}

	return s.details(ctx, booking.ID)
}

func (s *bookingService) ListMine(ctx context.Context, callerID int64) ([]*domain.BookingWithEvent, error) {
	bookings, err := s.bookingRepo.ListByUserID(ctx, callerID)
	if err != nil {
		return nil, fmt.Errorf("list bookings: %w", err)
	}
	return bookings, nil
}

// ListByEvent lists all bookings for an event joined with user info. There is
// no event-ownership check: any authenticated caller may list any event's
// bookings.
func (s *bookingService) ListByEvent(ctx context.Context, eventID string) ([]*domain.BookingWithUser, error) {
	if _, err := s.eventRepo.GetByID(ctx, eventID); err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return nil, domain.ErrNotFound
		}
		return nil, fmt.Errorf("get event: %w", err)
	}

	bookings, err := s.bookingRepo.ListByEventID(ctx, eventID)
	if err != nil {
		return nil, fmt.Errorf("list bookings: %w", err)
	}
	return bookings, nil
}

func (s *bookingService) Get(ctx context.Context, id int64, callerID int64) (*domain.BookingDetails, error) {
	if _, err := s.owned(ctx, id, callerID); err != nil {
		return nil, err
	}
	return s.details(ctx, id)
}

func (s *bookingService) Update(ctx context.Context, id int64, upd domain.BookingUpdate, callerID int64) (*domain.BookingDetails, error) {
	booking, err := s.owned(ctx, id, callerID)
	if err != nil {
		return nil, err
	}

	previousStatus := booking.Status
	if upd.Status != nil {
		if !upd.Status.Valid() {
			return nil, fmt.Errorf("%w: status must be one of pending, confirmed, cancelled", domain.ErrInvalidInput)
		}
		booking.Status = *upd.Status
	}
	if upd.Notes != nil {
		booking.Notes = upd.Notes
	}
	booking.UpdatedAt = time.Now()

	if err := s.bookingRepo.Update(ctx, booking); err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return nil, domain.ErrNotFound
		}
		return nil, fmt.Errorf("update booking: %w", err)
	}

	details, err := s.details(ctx, id)
	if err != nil {
		return nil, err
	}

	if s.emailService != nil &&
		previousStatus != domain.BookingStatusConfirmed &&
		booking.Status == domain.BookingStatusConfirmed {
		data := &domain.BookingConfirmedEmailData{
			Email:       details.User.Email,
			DisplayName: details.User.DisplayName,
			EventTitle:  details.Event.Title,
			EventDate:   details.Event.Date.Format("Monday, 2 January 2006 at 15:04"),
		}
		if err := s.emailService.SendBookingConfirmed(ctx, data); err != nil {
			log.Printf("[BOOKING] failed to send confirmation email for booking %d: %v", id, err)
		}
	}

	return details, nil
}

func (s *bookingService) Remove(ctx context.Context, id int64, callerID int64) error {
	if _, err := s.owned(ctx, id, callerID); err != nil {
		return err
	}
	if err := s.bookingRepo.Delete(ctx, id); err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return domain.ErrNotFound
		}
		return fmt.Errorf("delete booking: %w", err)
	}
	return nil
}

// owned loads the booking and applies the ownership gate: existence is
// confirmed first, so a foreign booking yields ErrForbidden, never ErrNotFound.
func (s *bookingService) owned(ctx context.Context, id int64, callerID int64) (*domain.Booking, error) {
	booking, err := s.bookingRepo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return nil, domain.ErrNotFound
		}
		return nil, fmt.Errorf("get booking: %w", err)
	}
	if booking.UserID != callerID {
		return nil, domain.ErrForbidden
	}
	return booking, nil
}

func (s *bookingService) details(ctx context.Context, id int64) (*domain.BookingDetails, error) {
	details, err := s.bookingRepo.GetDetails(ctx, id)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return nil, domain.ErrNotFound
		}
		return nil, fmt.Errorf("get booking details: %w", err)
	}
	return details, nil
}
