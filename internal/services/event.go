package services

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"
	"unicode/utf8"

	"eventbooking/internal/domain"
)

type eventService struct {
	eventRepo  domain.EventRepository
	imageStore domain.ImageStore
}

// NewEventService creates an EventService with the given repository and image store.
func NewEventService(eventRepo domain.EventRepository, imageStore domain.ImageStore) domain.EventService {
	return &eventService{
		eventRepo:  eventRepo,
		imageStore: imageStore,
	}
}

func (s *eventService) Create(ctx context.Context, event *domain.Event) error {
	event.Normalize()
	if event.Title == "" {
		return fmt.Errorf("%w: title is required", domain.ErrInvalidInput)
	}
	if utf8.RuneCountInString(event.Title) > domain.MaxEventTitleLen {
		return fmt.Errorf("%w: title must be at most %d characters", domain.ErrInvalidInput, domain.MaxEventTitleLen)
	}
	if event.Date.IsZero() {
		return fmt.Errorf("%w: date is required", domain.ErrInvalidInput)
	}

	now := time.Now()
	event.CreatedAt = now
	event.UpdatedAt = now
	if event.Images == nil {
		event.Images = []string{}
	}

	if err := s.eventRepo.Create(ctx, event); err != nil {
		return fmt.Errorf("create event: %w", err)
	}
	return nil
}

func (s *eventService) List(ctx context.Context) ([]*domain.Event, error) {
	events, err := s.eventRepo.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("list events: %w", err)
	}
	return events, nil
}

func (s *eventService) GetByID(ctx context.Context, id string) (*domain.Event, error) {
	event, err := s.eventRepo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return nil, domain.ErrNotFound
		}
		return nil, fmt.Errorf("get event: %w", err)
	}
	return event, nil
}

func (s *eventService) Update(ctx context.Context, id string, upd domain.EventUpdate) (*domain.Event, error) {
	// Normalization runs on every update path, not just create.
	if upd.Title != nil {
		title := domain.NormalizeTitle(*upd.Title)
		if title == "" {
			return nil, fmt.Errorf("%w: title cannot be empty", domain.ErrInvalidInput)
		}
		if utf8.RuneCountInString(title) > domain.MaxEventTitleLen {
			return nil, fmt.Errorf("%w: title must be at most %d characters", domain.ErrInvalidInput, domain.MaxEventTitleLen)
		}
		upd.Title = &title
	}
	if upd.Description != nil {
		d := strings.TrimSpace(*upd.Description)
		upd.Description = &d
	}
	if upd.Location != nil {
		l := strings.TrimSpace(*upd.Location)
		upd.Location = &l
	}

	event, err := s.eventRepo.Update(ctx, id, upd, time.Now())
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return nil, domain.ErrNotFound
		}
		return nil, fmt.Errorf("update event: %w", err)
	}
	return event, nil
}

func (s *eventService) Delete(ctx context.Context, id string) error {
	// Attendee memberships and bookings cascade with the event.
	if err := s.eventRepo.Delete(ctx, id); err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return domain.ErrNotFound
		}
		return fmt.Errorf("delete event: %w", err)
	}
	return nil
}

func (s *eventService) AddImages(ctx context.Context, id string, uploads []domain.ImageUpload) (*domain.Event, error) {
	if len(uploads) == 0 {
		return nil, fmt.Errorf("%w: no images provided", domain.ErrInvalidInput)
	}

	event, err := s.eventRepo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return nil, domain.ErrNotFound
		}
		return nil, fmt.Errorf("get event: %w", err)
	}
	if len(event.Images)+len(uploads) > domain.MaxEventImages {
		return nil, fmt.Errorf("%w: an event may have at most %d images", domain.ErrInvalidInput, domain.MaxEventImages)
	}

	images := event.Images
	for _, up := range uploads {
		path, err := s.imageStore.Save(ctx, up)
		if err != nil {
			if errors.Is(err, domain.ErrInvalidInput) {
				return nil, err
			}
			return nil, fmt.Errorf("store image: %w", err)
		}
		images = append(images, path)
	}

	now := time.Now()
	if err := s.eventRepo.UpdateImages(ctx, id, images, now); err != nil {
		return nil, fmt.Errorf("update event images: %w", err)
	}
	event.Images = images
	event.UpdatedAt = now
	return event, nil
}
