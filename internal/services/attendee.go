package services

import (
	"context"
	"errors"
	"fmt"

	"eventbooking/internal/domain"
)

type attendeeService struct {
	eventRepo    domain.EventRepository
	userRepo     domain.UserRepository
	attendeeRepo domain.AttendeeRepository
}

// NewAttendeeService creates an AttendeeService with the given repositories.
func NewAttendeeService(
	eventRepo domain.EventRepository,
	userRepo domain.UserRepository,
	attendeeRepo domain.AttendeeRepository,
) domain.AttendeeService {
	return &attendeeService{
		eventRepo:    eventRepo,
		userRepo:     userRepo,
		attendeeRepo: attendeeRepo,
	}
}

func (s *attendeeService) Add(ctx context.Context, eventID string, userID int64) (*domain.EventWithAttendees, error) {
	event, err := s.eventRepo.GetByID(ctx, eventID)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return nil, domain.ErrNotFound
		}
		return nil, fmt.Errorf("get event: %w", err)
	}

	if _, err := s.userRepo.GetByID(ctx, userID); err != nil {
		if errors.Is(err, domain.ErrUserNotFound) {
			return nil, domain.ErrNotFound
		}
		return nil, fmt.Errorf("get user: %w", err)
	}

	exists, err := s.attendeeRepo.Exists(ctx, eventID, userID)
	if err != nil {
		return nil, fmt.Errorf("check attendee: %w", err)
	}
	if exists {
		return nil, domain.ErrAlreadyRegistered
	}

	// The unique constraint on the join pair backstops the check above, so two
	// concurrent identical requests cannot both insert.
	if err := s.attendeeRepo.Add(ctx, eventID, userID); err != nil {
		if errors.Is(err, domain.ErrAlreadyRegistered) {
			return nil, domain.ErrAlreadyRegistered
		}
		return nil, fmt.Errorf("add attendee: %w", err)
	}

	return s.withAttendees(ctx, event)
}

func (s *attendeeService) Remove(ctx context.Context, eventID string, userID int64) (*domain.EventWithAttendees, error) {
	event, err := s.eventRepo.GetByID(ctx, eventID)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return nil, domain.ErrNotFound
		}
		return nil, fmt.Errorf("get event: %w", err)
	}

	if err := s.attendeeRepo.Remove(ctx, eventID, userID); err != nil {
		if errors.Is(err, domain.ErrNotRegistered) {
			return nil, domain.ErrNotRegistered
		}
		return nil, fmt.Errorf("remove attendee: %w", err)
	}

	return s.withAttendees(ctx, event)
}

func (s *attendeeService) List(ctx context.Context, eventID string) ([]*domain.User, error) {
	if _, err := s.eventRepo.GetByID(ctx, eventID); err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return nil, domain.ErrNotFound
		}
		return nil, fmt.Errorf("get event: %w", err)
	}

	attendees, err := s.attendeeRepo.ListByEventID(ctx, eventID)
	if err != nil {
		return nil, fmt.Errorf("list attendees: %w", err)
	}
	return attendees, nil
}

func (s *attendeeService) withAttendees(ctx context.Context, event *domain.Event) (*domain.EventWithAttendees, error) {
	attendees, err := s.attendeeRepo.ListByEventID(ctx, event.ID)
	if err != nil {
		return nil, fmt.Errorf("list attendees: %w", err)
	}
	return &domain.EventWithAttendees{Event: event, Attendees: attendees}, nil
}
