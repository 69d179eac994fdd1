package domain

import (
	"context"
	"io"
	"path/filepath"
	"strings"
	"time"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"
)

// MaxEventImages is the maximum number of images an event may carry.
const MaxEventImages = 5

// MaxEventTitleLen is the maximum length, in runes, of a normalized event title.
const MaxEventTitleLen = 200

// allowedImageExts are the accepted event image extensions.
var allowedImageExts = map[string]struct{}{
	".jpg":  {},
	".jpeg": {},
	".png":  {},
	".gif":  {},
	".webp": {},
}

// AllowedImageExt reports whether filename carries an accepted image extension.
func AllowedImageExt(filename string) bool {
	_, ok := allowedImageExts[strings.ToLower(filepath.Ext(filename))]
	return ok
}

// Event represents a schedulable happening users can attend and book.
// swagger:model Event
type Event struct {
	ID          string    `json:"id"`
	Title       string    `json:"title"`
	Description *string   `json:"description,omitempty"`
	Date        time.Time `json:"date"`
	Location    *string   `json:"location,omitempty"`
	Images      []string  `json:"images"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
}

// NewEvent returns a new Event with the given fields. ID is set by the repository on create.
func NewEvent(title string, description *string, date time.Time, location *string, createdAt, updatedAt time.Time) *Event {
	return &Event{
		Title:       title,
		Description: description,
		Date:        date,
		Location:    location,
		Images:      []string{},
		CreatedAt:   createdAt,
		UpdatedAt:   updatedAt,
	}
}

// Normalize normalizes an event's free-text fields in place. Called by the
// service before every create and update, never implicitly by the storage layer.
func (e *Event) Normalize() {
	e.Title = NormalizeTitle(e.Title)
	if e.Description != nil {
		d := strings.TrimSpace(*e.Description)
		e.Description = &d
	}
	if e.Location != nil {
		l := strings.TrimSpace(*e.Location)
		e.Location = &l
	}
}

// NormalizeTitle trims the title, collapses inner whitespace, and title-cases
// each word, e.g. "  conference   X  " becomes "Conference X".
func NormalizeTitle(title string) string {
	collapsed := strings.Join(strings.Fields(title), " ")
	return cases.Title(language.English).String(collapsed)
}

// EventUpdate carries the optional fields for a partial event update. Nil fields are unchanged.
type EventUpdate struct {
	Title       *string
	Description *string
	Date        *time.Time
	Location    *string
}

// EventWithAttendees bundles an event with its current attendee set.
type EventWithAttendees struct {
	Event     *Event  `json:"event"`
	Attendees []*User `json:"attendees"`
}

// ImageUpload is a fully materialized uploaded image file.
type ImageUpload struct {
	Filename string
	Content  io.Reader
}

// ImageStore persists uploaded event images and returns the stored path
// (e.g. "uploads/events/<name>.<ext>").
type ImageStore interface {
	Save(ctx context.Context, upload ImageUpload) (path string, err error)
}

// EventRepository defines the interface for event storage
type EventRepository interface {
	Create(ctx context.Context, event *Event) error
	GetByID(ctx context.Context, id string) (*Event, error)
	List(ctx context.Context) ([]*Event, error)
	Update(ctx context.Context, id string, upd EventUpdate, updatedAt time.Time) (*Event, error)
	UpdateImages(ctx context.Context, id string, images []string, updatedAt time.Time) error
	Delete(ctx context.Context, id string) error
}

// EventService defines the business logic for event CRUD and image handling.
type EventService interface {
	Create(ctx context.Context, event *Event) error
	List(ctx context.Context) ([]*Event, error)
	GetByID(ctx context.Context, id string) (*Event, error)
	Update(ctx context.Context, id string, upd EventUpdate) (*Event, error)
	Delete(ctx context.Context, id string) error
	AddImages(ctx context.Context, id string, uploads []ImageUpload) (*Event, error)
}
