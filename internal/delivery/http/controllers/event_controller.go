package controllers

import (
	"errors"
	"fmt"
	"log/slog"
	"mime"
	"mime/multipart"
	"net/http"
	"strings"
	"time"
	"unicode/utf8"

	"eventbooking/internal/delivery/http/helpers"
	"eventbooking/internal/domain"
)

// maxUploadBytes caps the parsed size of a multipart event request.
const maxUploadBytes = 32 << 20

// CreateEventRequest is the request body for POST /events (JSON variant).
type CreateEventRequest struct {
	Title       string    `json:"title"`
	Description *string   `json:"description"`
	Date        time.Time `json:"date"`
	Location    *string   `json:"location"`
}

// Validate implements Validator.
func (c CreateEventRequest) Validate() []string {
	var errs []string
	if strings.TrimSpace(c.Title) == "" {
		errs = append(errs, "title is required")
	} else if utf8.RuneCountInString(domain.NormalizeTitle(c.Title)) > domain.MaxEventTitleLen {
		errs = append(errs, fmt.Sprintf("title must be at most %d characters", domain.MaxEventTitleLen))
	}
	if c.Date.IsZero() {
		errs = append(errs, "date is required")
	}
	return errs
}

// UpdateEventRequest is the request body for PATCH /events/{eventID}. All fields optional; omitted fields are unchanged.
type UpdateEventRequest struct {
	Title       *string    `json:"title"`
	Description *string    `json:"description"`
	Date        *time.Time `json:"date"`
	Location    *string    `json:"location"`
}

// Validate implements Validator.
func (u UpdateEventRequest) Validate() []string {
	var errs []string
	if u.Title != nil {
		if strings.TrimSpace(*u.Title) == "" {
			errs = append(errs, "title must not be empty")
		} else if utf8.RuneCountInString(domain.NormalizeTitle(*u.Title)) > domain.MaxEventTitleLen {
			errs = append(errs, fmt.Sprintf("title must be at most %d characters", domain.MaxEventTitleLen))
		}
	}
	if u.Date != nil && u.Date.IsZero() {
		errs = append(errs, "date must be a valid timestamp")
	}
	return errs
}

// EventSuccessResponse is the success response envelope for single-event endpoints.
type EventSuccessResponse struct {
	Data  *domain.Event     `json:"data"`
	Error *helpers.APIError `json:"error"`
}

// EventListSuccessResponse is the success response envelope for GET /events.
type EventListSuccessResponse struct {
	Data  []*domain.Event   `json:"data"`
	Error *helpers.APIError `json:"error"`
}

type EventController struct {
	Logger  *slog.Logger
	Service domain.EventService
}

func NewEventController(logger *slog.Logger, svc domain.EventService) *EventController {
	return &EventController{
		Logger:  logger,
		Service: svc,
	}
}

// Create godoc
// @Summary Create a new event
// @Description Create an event. Accepts application/json or multipart/form-data; the multipart form carries the same fields plus up to 5 files under "images". Title is normalized (trimmed, inner whitespace collapsed, title-cased) before storage. Date is RFC 3339.
// @Tags events
// @Accept json
// @Accept mpfd
// @Produce json
// @Security BearerAuth
// @Param event body CreateEventRequest true "Event data"
// @Success 201 {object} controllers.EventSuccessResponse "data contains the created event"
// @Failure 400 {object} helpers.APIResponse "error.code: bad_request"
// @Failure 401 {object} helpers.APIResponse "error.code: unauthorized"
// @Failure 500 {object} helpers.APIResponse "error.code: internal_error"
// @Router /events [post]
func (c *EventController) Create(w http.ResponseWriter, r *http.Request) {
	mediaType, _, _ := mime.ParseMediaType(r.Header.Get("Content-Type"))
	if mediaType == "multipart/form-data" {
		c.createMultipart(w, r)
		return
	}

	var req CreateEventRequest
	if !helpers.DecodeAndValidate(w, r, &req) {
		return
	}
	now := time.Now()
	event := domain.NewEvent(req.Title, req.Description, req.Date, req.Location, now, now)
	if err := c.Service.Create(r.Context(), event); err != nil {
		c.writeServiceError(w, r, err, "")
		return
	}
	helpers.WriteJSONSuccess(w, http.StatusCreated, event)
}

func (c *EventController) createMultipart(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseMultipartForm(maxUploadBytes); err != nil {
		helpers.WriteJSONError(w, http.StatusBadRequest, helpers.ErrCodeBadRequest, "invalid multipart form: "+err.Error())
		return
	}
	req := CreateEventRequest{Title: r.FormValue("title")}
	if v := r.FormValue("description"); v != "" {
		req.Description = &v
	}
	if v := r.FormValue("location"); v != "" {
		req.Location = &v
	}
	if v := r.FormValue("date"); v != "" {
		date, err := time.Parse(time.RFC3339, v)
		if err != nil {
			helpers.WriteJSONError(w, http.StatusBadRequest, helpers.ErrCodeBadRequest, "date must be RFC 3339")
			return
		}
		req.Date = date
	}
	if errs := req.Validate(); len(errs) > 0 {
		helpers.WriteJSONError(w, http.StatusBadRequest, helpers.ErrCodeBadRequest, strings.Join(errs, "; "))
		return
	}

	// Uploads are validated and opened before the event is created so a bad
	// file rejects the whole request without persisting anything.
	files := r.MultipartForm.File["images"]
	if len(files) > domain.MaxEventImages {
		helpers.WriteJSONError(w, http.StatusBadRequest, helpers.ErrCodeBadRequest,
			fmt.Sprintf("at most %d images allowed", domain.MaxEventImages))
		return
	}
	var uploads []domain.ImageUpload
	if len(files) > 0 {
		var cleanup func()
		var err error
		uploads, cleanup, err = openUploads(files)
		if err != nil {
			helpers.WriteJSONError(w, http.StatusBadRequest, helpers.ErrCodeBadRequest, err.Error())
			return
		}
		defer cleanup()
	}

	now := time.Now()
	event := domain.NewEvent(req.Title, req.Description, req.Date, req.Location, now, now)
	if err := c.Service.Create(r.Context(), event); err != nil {
		c.writeServiceError(w, r, err, "")
		return
	}

	if len(uploads) > 0 {
		updated, err := c.Service.AddImages(r.Context(), event.ID, uploads)
		if err != nil {
			// A failed image save must not leave the event behind.
			if delErr := c.Service.Delete(r.Context(), event.ID); delErr != nil {
				c.Logger.ErrorContext(r.Context(), "rollback event after image failure",
					"event_id", event.ID, "err", delErr)
			}
			c.writeServiceError(w, r, err, "event")
			return
		}
		event = updated
	}

	helpers.WriteJSONSuccess(w, http.StatusCreated, event)
}

// List godoc
// @Summary List all events
// @Tags events
// @Produce json
// @Security BearerAuth
// @Success 200 {object} controllers.EventListSuccessResponse "data contains the events"
// @Failure 401 {object} helpers.APIResponse "error.code: unauthorized"
// @Failure 500 {object} helpers.APIResponse "error.code: internal_error"
// @Router /events [get]
func (c *EventController) List(w http.ResponseWriter, r *http.Request) {
	events, err := c.Service.List(r.Context())
	if err != nil {
		c.writeServiceError(w, r, err, "")
		return
	}
	helpers.WriteJSONSuccess(w, http.StatusOK, events)
}

// Get godoc
// @Summary Get an event by ID
// @Tags events
// @Produce json
// @Security BearerAuth
// @Param eventID path string true "Event ID (UUID)"
// @Success 200 {object} controllers.EventSuccessResponse "data contains the event"
// @Failure 401 {object} helpers.APIResponse "error.code: unauthorized"
// @Failure 404 {object} helpers.APIResponse "error.code: not_found"
// @Failure 500 {object} helpers.APIResponse "error.code: internal_error"
// @Router /events/{eventID} [get]
func (c *EventController) Get(w http.ResponseWriter, r *http.Request) {
	eventID := r.PathValue("eventID")
	if eventID == "" {
		helpers.WriteJSONError(w, http.StatusBadRequest, helpers.ErrCodeBadRequest, "missing eventID")
		return
	}
	event, err := c.Service.GetByID(r.Context(), eventID)
	if err != nil {
		c.writeServiceError(w, r, err, "event")
		return
	}
	helpers.WriteJSONSuccess(w, http.StatusOK, event)
}

// Update godoc
// @Summary Update an event
// @Description Partial update. Provided title is re-normalized; omitted fields are unchanged.
// @Tags events
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param eventID path string true "Event ID (UUID)"
// @Param event body UpdateEventRequest true "Fields to update"
// @Success 200 {object} controllers.EventSuccessResponse "data contains the updated event"
// @Failure 400 {object} helpers.APIResponse "error.code: bad_request"
// @Failure 401 {object} helpers.APIResponse "error.code: unauthorized"
// @Failure 404 {object} helpers.APIResponse "error.code: not_found"
// @Failure 500 {object} helpers.APIResponse "error.code: internal_error"
// @Router /events/{eventID} [patch]
func (c *EventController) Update(w http.ResponseWriter, r *http.Request) {
	eventID := r.PathValue("eventID")
	if eventID == "" {
		helpers.WriteJSONError(w, http.StatusBadRequest, helpers.ErrCodeBadRequest, "missing eventID")
		return
	}
	var req UpdateEventRequest
	if !helpers.DecodeAndValidate(w, r, &req) {
		return
	}
	event, err := c.Service.Update(r.Context(), eventID, domain.EventUpdate{
		Title:       req.Title,
		Description: req.Description,
		Date:        req.Date,
		Location:    req.Location,
	})
	if err != nil {
		c.writeServiceError(w, r, err, "event")
		return
	}
	helpers.WriteJSONSuccess(w, http.StatusOK, event)
}

// Delete godoc
// @Summary Delete an event
// @Description Deletes the event. Attendee memberships and bookings for the event are removed with it.
// @Tags events
// @Security BearerAuth
// @Param eventID path string true "Event ID (UUID)"
// @Success 204 "no content"
// @Failure 401 {object} helpers.APIResponse "error.code: unauthorized"
// @Failure 404 {object} helpers.APIResponse "error.code: not_found"
// @Failure 500 {object} helpers.APIResponse "error.code: internal_error"
// @Router /events/{eventID} [delete]
func (c *EventController) Delete(w http.ResponseWriter, r *http.Request) {
	eventID := r.PathValue("eventID")
	if eventID == "" {
		helpers.WriteJSONError(w, http.StatusBadRequest, helpers.ErrCodeBadRequest, "missing eventID")
		return
	}
	if err := c.Service.Delete(r.Context(), eventID); err != nil {
		c.writeServiceError(w, r, err, "event")
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// UploadImages godoc
// @Summary Upload images for an event
// @Description Appends images from a multipart form (field "images") to the event. The total image count per event may not exceed 5.
// @Tags events
// @Accept mpfd
// @Produce json
// @Security BearerAuth
// @Param eventID path string true "Event ID (UUID)"
// @Param images formData file true "Image files (jpg, jpeg, png, gif, webp)"
// @Success 200 {object} controllers.EventSuccessResponse "data contains the updated event"
// @Failure 400 {object} helpers.APIResponse "error.code: bad_request"
// @Failure 401 {object} helpers.APIResponse "error.code: unauthorized"
// @Failure 404 {object} helpers.APIResponse "error.code: not_found"
// @Failure 500 {object} helpers.APIResponse "error.code: internal_error"
// @Router /events/{eventID}/images [post]
func (c *EventController) UploadImages(w http.ResponseWriter, r *http.Request) {
	eventID := r.PathValue("eventID")
	if eventID == "" {
		helpers.WriteJSONError(w, http.StatusBadRequest, helpers.ErrCodeBadRequest, "missing eventID")
		return
	}
	if err := r.ParseMultipartForm(maxUploadBytes); err != nil {
		helpers.WriteJSONError(w, http.StatusBadRequest, helpers.ErrCodeBadRequest, "invalid multipart form: "+err.Error())
		return
	}
	files := r.MultipartForm.File["images"]
	if len(files) == 0 {
		helpers.WriteJSONError(w, http.StatusBadRequest, helpers.ErrCodeBadRequest, "at least one image file is required")
		return
	}
	uploads, cleanup, err := openUploads(files)
	if err != nil {
		helpers.WriteJSONError(w, http.StatusBadRequest, helpers.ErrCodeBadRequest, err.Error())
		return
	}
	defer cleanup()

	event, err := c.Service.AddImages(r.Context(), eventID, uploads)
	if err != nil {
		c.writeServiceError(w, r, err, "event")
		return
	}
	helpers.WriteJSONSuccess(w, http.StatusOK, event)
}

// openUploads opens each multipart file header and returns the uploads plus a
// cleanup closing every opened file.
func openUploads(files []*multipart.FileHeader) ([]domain.ImageUpload, func(), error) {
	var opened []multipart.File
	cleanup := func() {
		for _, f := range opened {
			_ = f.Close()
		}
	}
	uploads := make([]domain.ImageUpload, 0, len(files))
	for _, fh := range files {
		if !domain.AllowedImageExt(fh.Filename) {
			cleanup()
			return nil, nil, fmt.Errorf("unsupported image type %q", fh.Filename)
		}
		f, err := fh.Open()
		if err != nil {
			cleanup()
			return nil, nil, fmt.Errorf("open uploaded file %q: %w", fh.Filename, err)
		}
		opened = append(opened, f)
		uploads = append(uploads, domain.ImageUpload{Filename: fh.Filename, Content: f})
	}
	return uploads, cleanup, nil
}

// writeServiceError maps service errors onto the response envelope. entity names
// the subject of not-found messages, e.g. "event".
func (c *EventController) writeServiceError(w http.ResponseWriter, r *http.Request, err error, entity string) {
	switch {
	case errors.Is(err, domain.ErrNotFound):
		if entity == "" {
			entity = "resource"
		}
		helpers.WriteJSONError(w, http.StatusNotFound, helpers.ErrCodeNotFound, entity+" not found")
	case errors.Is(err, domain.ErrInvalidInput):
		helpers.WriteJSONError(w, http.StatusBadRequest, helpers.ErrCodeBadRequest, err.Error())
	default:
		c.Logger.ErrorContext(r.Context(), "request failed", "path", r.URL.Path, "method", r.Method, "err", err)
		helpers.WriteJSONError(w, http.StatusInternalServerError, helpers.ErrCodeInternalError, "internal server error")
	}
}
