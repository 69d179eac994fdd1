package controllers

import (
	"errors"
	"log/slog"
	"net/http"
	"strconv"
	"strings"

	"eventbooking/internal/delivery/http/helpers"
	"eventbooking/internal/delivery/http/middleware"
	"eventbooking/internal/domain"
)

// CreateBookingRequest is the request body for POST /bookings.
type CreateBookingRequest struct {
	EventID string  `json:"event_id"`
	Notes   *string `json:"notes"`
}

// Validate implements Validator.
func (c CreateBookingRequest) Validate() []string {
	var errs []string
	if strings.TrimSpace(c.EventID) == "" {
		errs = append(errs, "event_id is required")
	}
	return errs
}

// UpdateBookingRequest is the request body for PATCH /bookings/{bookingID}. All fields optional; omitted fields are unchanged.
type UpdateBookingRequest struct {
	Status *string `json:"status"`
	Notes  *string `json:"notes"`
}

// Validate implements Validator.
func (u UpdateBookingRequest) Validate() []string {
	var errs []string
	if u.Status != nil && !domain.BookingStatus(*u.Status).Valid() {
		errs = append(errs, "status must be one of \"pending\", \"confirmed\", \"cancelled\"")
	}
	return errs
}

// BookingDetailsSuccessResponse is the success response envelope for single-booking endpoints.
type BookingDetailsSuccessResponse struct {
	Data  *domain.BookingDetails `json:"data"`
	Error *helpers.APIError      `json:"error"`
}

// BookingListSuccessResponse is the success response envelope for GET /bookings.
type BookingListSuccessResponse struct {
	Data  []*domain.BookingWithEvent `json:"data"`
	Error *helpers.APIError          `json:"error"`
}

// EventBookingListSuccessResponse is the success response envelope for GET /bookings/event/{eventID}.
type EventBookingListSuccessResponse struct {
	Data  []*domain.BookingWithUser `json:"data"`
	Error *helpers.APIError         `json:"error"`
}

type BookingController struct {
	Logger  *slog.Logger
	Service domain.BookingService
}

func NewBookingController(logger *slog.Logger, svc domain.BookingService) *BookingController {
	return &BookingController{
		Logger:  logger,
		Service: svc,
	}
}

// Create godoc
// @Summary Book an event
// @Description Creates a pending booking for the caller on the given event. At most one booking per user and event.
// @Tags bookings
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param body body CreateBookingRequest true "Booking data"
// @Success 201 {object} controllers.BookingDetailsSuccessResponse "data contains the booking with user and event"
// @Failure 400 {object} helpers.APIResponse "error.code: bad_request"
// @Failure 401 {object} helpers.APIResponse "error.code: unauthorized"
// @Failure 404 {object} helpers.APIResponse "error.code: not_found"
// @Failure 409 {object} helpers.APIResponse "error.code: conflict"
// @Failure 500 {object} helpers.APIResponse "error.code: internal_error"
// @Router /bookings [post]
func (c *BookingController) Create(w http.ResponseWriter, r *http.Request) {
	caller, ok := middleware.CallerFromContext(r.Context())
	if !ok {
		helpers.WriteJSONError(w, http.StatusUnauthorized, helpers.ErrCodeUnauthorized, "unauthorized")
		return
	}
	var req CreateBookingRequest
	if !helpers.DecodeAndValidate(w, r, &req) {
		return
	}
	details, err := c.Service.Create(r.Context(), req.EventID, req.Notes, caller.ID)
	if err != nil {
		if errors.Is(err, domain.ErrDuplicateBooking) {
			helpers.WriteJSONError(w, http.StatusConflict, helpers.ErrCodeConflict, err.Error())
			return
		}
		c.writeError(w, r, err, "event")
		return
	}
	helpers.WriteJSONSuccess(w, http.StatusCreated, details)
}

// ListMine godoc
// @Summary List the caller's bookings
// @Description Returns every booking owned by the caller, each with its event summary, newest first.
// @Tags bookings
// @Produce json
// @Security BearerAuth
// @Success 200 {object} controllers.BookingListSuccessResponse "data contains the bookings with events"
// @Failure 401 {object} helpers.APIResponse "error.code: unauthorized"
// @Failure 500 {object} helpers.APIResponse "error.code: internal_error"
// @Router /bookings [get]
func (c *BookingController) ListMine(w http.ResponseWriter, r *http.Request) {
	caller, ok := middleware.CallerFromContext(r.Context())
	if !ok {
		helpers.WriteJSONError(w, http.StatusUnauthorized, helpers.ErrCodeUnauthorized, "unauthorized")
		return
	}
	bookings, err := c.Service.ListMine(r.Context(), caller.ID)
	if err != nil {
		c.writeError(w, r, err, "booking")
		return
	}
	helpers.WriteJSONSuccess(w, http.StatusOK, bookings)
}

// ListByEvent godoc
// @Summary List an event's bookings
// @Description Returns every booking for the event, each with its owner's public view, newest first.
// @Tags bookings
// @Produce json
// @Security BearerAuth
// @Param eventID path string true "Event ID (UUID)"
// @Success 200 {object} controllers.EventBookingListSuccessResponse "data contains the bookings with users"
// @Failure 401 {object} helpers.APIResponse "error.code: unauthorized"
// @Failure 404 {object} helpers.APIResponse "error.code: not_found"
// @Failure 500 {object} helpers.APIResponse "error.code: internal_error"
// @Router /bookings/event/{eventID} [get]
func (c *BookingController) ListByEvent(w http.ResponseWriter, r *http.Request) {
	eventID := r.PathValue("eventID")
	if eventID == "" {
		helpers.WriteJSONError(w, http.StatusBadRequest, helpers.ErrCodeBadRequest, "missing eventID")
		return
	}
	bookings, err := c.Service.ListByEvent(r.Context(), eventID)
	if err != nil {
		c.writeError(w, r, err, "event")
		return
	}
	helpers.WriteJSONSuccess(w, http.StatusOK, bookings)
}

// Get godoc
// @Summary Get a booking by ID
// @Description Returns the booking with its user and event. Only the owner may read it; a foreign booking yields 403.
// @Tags bookings
// @Produce json
// @Security BearerAuth
// @Param bookingID path int true "Booking ID"
// @Success 200 {object} controllers.BookingDetailsSuccessResponse "data contains the booking with user and event"
// @Failure 401 {object} helpers.APIResponse "error.code: unauthorized"
// @Failure 403 {object} helpers.APIResponse "error.code: forbidden"
// @Failure 404 {object} helpers.APIResponse "error.code: not_found"
// @Failure 500 {object} helpers.APIResponse "error.code: internal_error"
// @Router /bookings/{bookingID} [get]
func (c *BookingController) Get(w http.ResponseWriter, r *http.Request) {
	caller, bookingID, ok := c.callerAndID(w, r)
	if !ok {
		return
	}
	details, err := c.Service.Get(r.Context(), bookingID, caller.ID)
	if err != nil {
		c.writeError(w, r, err, "booking")
		return
	}
	helpers.WriteJSONSuccess(w, http.StatusOK, details)
}

// Update godoc
// @Summary Update a booking
// @Description Partial update of status and notes. Only the owner may update. A transition to "confirmed" triggers a confirmation email.
// @Tags bookings
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param bookingID path int true "Booking ID"
// @Param body body UpdateBookingRequest true "Fields to update"
// @Success 200 {object} controllers.BookingDetailsSuccessResponse "data contains the updated booking with user and event"
// @Failure 400 {object} helpers.APIResponse "error.code: bad_request"
// @Failure 401 {object} helpers.APIResponse "error.code: unauthorized"
// @Failure 403 {object} helpers.APIResponse "error.code: forbidden"
// @Failure 404 {object} helpers.APIResponse "error.code: not_found"
// @Failure 500 {object} helpers.APIResponse "error.code: internal_error"
// @Router /bookings/{bookingID} [patch]
func (c *BookingController) Update(w http.ResponseWriter, r *http.Request) {
	caller, bookingID, ok := c.callerAndID(w, r)
	if !ok {
		return
	}
	var req UpdateBookingRequest
	if !helpers.DecodeAndValidate(w, r, &req) {
		return
	}
	upd := domain.BookingUpdate{Notes: req.Notes}
	if req.Status != nil {
		status := domain.BookingStatus(*req.Status)
		upd.Status = &status
	}
	details, err := c.Service.Update(r.Context(), bookingID, upd, caller.ID)
	if err != nil {
		c.writeError(w, r, err, "booking")
		return
	}
	helpers.WriteJSONSuccess(w, http.StatusOK, details)
}

// Delete godoc
// @Summary Delete a booking
// @Description Removes the booking. Only the owner may delete.
// @Tags bookings
// @Security BearerAuth
// @Param bookingID path int true "Booking ID"
// @Success 204 "no content"
// @Failure 401 {object} helpers.APIResponse "error.code: unauthorized"
// @Failure 403 {object} helpers.APIResponse "error.code: forbidden"
// @Failure 404 {object} helpers.APIResponse "error.code: not_found"
// @Failure 500 {object} helpers.APIResponse "error.code: internal_error"
// @Router /bookings/{bookingID} [delete]
func (c *BookingController) Delete(w http.ResponseWriter, r *http.Request) {
	caller, bookingID, ok := c.callerAndID(w, r)
	if !ok {
		return
	}
	if err := c.Service.Remove(r.Context(), bookingID, caller.ID); err != nil {
		c.writeError(w, r, err, "booking")
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func (c *BookingController) callerAndID(w http.ResponseWriter, r *http.Request) (*domain.User, int64, bool) {
	caller, ok := middleware.CallerFromContext(r.Context())
	if !ok {
		helpers.WriteJSONError(w, http.StatusUnauthorized, helpers.ErrCodeUnauthorized, "unauthorized")
		return nil, 0, false
	}
	bookingID, err := strconv.ParseInt(r.PathValue("bookingID"), 10, 64)
	if err != nil || bookingID <= 0 {
		helpers.WriteJSONError(w, http.StatusBadRequest, helpers.ErrCodeBadRequest, "bookingID must be a positive integer")
		return nil, 0, false
	}
	return caller, bookingID, true
}

func (c *BookingController) writeError(w http.ResponseWriter, r *http.Request, err error, entity string) {
	switch {
	case errors.Is(err, domain.ErrNotFound):
		helpers.WriteJSONError(w, http.StatusNotFound, helpers.ErrCodeNotFound, entity+" not found")
	case errors.Is(err, domain.ErrForbidden):
		helpers.WriteJSONError(w, http.StatusForbidden, helpers.ErrCodeForbidden, "booking belongs to another user")
	case errors.Is(err, domain.ErrInvalidInput):
		helpers.WriteJSONError(w, http.StatusBadRequest, helpers.ErrCodeBadRequest, err.Error())
	default:
		c.Logger.ErrorContext(r.Context(), "request failed", "path", r.URL.Path, "method", r.Method, "err", err)
		helpers.WriteJSONError(w, http.StatusInternalServerError, helpers.ErrCodeInternalError, "internal server error")
	}
}
