package controllers

import (
	"errors"
	"log/slog"
	"net/http"
	"strconv"

	"eventbooking/internal/delivery/http/helpers"
	"eventbooking/internal/domain"
)

// AttendeesSuccessResponse is the success response envelope for register/unregister.
type AttendeesSuccessResponse struct {
	Data  *domain.EventWithAttendees `json:"data"`
	Error *helpers.APIError          `json:"error"`
}

// AttendeeListSuccessResponse is the success response envelope for GET /events/{eventID}/attendees.
type AttendeeListSuccessResponse struct {
	Data  []*domain.User    `json:"data"`
	Error *helpers.APIError `json:"error"`
}

type AttendeeController struct {
	Logger  *slog.Logger
	Service domain.AttendeeService
}

func NewAttendeeController(logger *slog.Logger, svc domain.AttendeeService) *AttendeeController {
	return &AttendeeController{
		Logger:  logger,
		Service: svc,
	}
}

// Register godoc
// @Summary Register a user as attendee of an event
// @Description Adds the user to the event's attendee set. A second registration for the same pair fails with 400.
// @Tags attendees
// @Produce json
// @Security BearerAuth
// @Param eventID path string true "Event ID (UUID)"
// @Param userID path int true "User ID"
// @Success 200 {object} controllers.AttendeesSuccessResponse "data contains the event with its attendees"
// @Failure 400 {object} helpers.APIResponse "error.code: bad_request"
// @Failure 401 {object} helpers.APIResponse "error.code: unauthorized"
// @Failure 404 {object} helpers.APIResponse "error.code: not_found"
// @Failure 500 {object} helpers.APIResponse "error.code: internal_error"
// @Router /events/{eventID}/register/{userID} [post]
func (c *AttendeeController) Register(w http.ResponseWriter, r *http.Request) {
	eventID, userID, ok := c.pathIDs(w, r)
	if !ok {
		return
	}
	result, err := c.Service.Add(r.Context(), eventID, userID)
	if err != nil {
		if errors.Is(err, domain.ErrAlreadyRegistered) {
			helpers.WriteJSONError(w, http.StatusBadRequest, helpers.ErrCodeBadRequest, err.Error())
			return
		}
		c.writeError(w, r, err)
		return
	}
	helpers.WriteJSONSuccess(w, http.StatusOK, result)
}

// Unregister godoc
// @Summary Remove a user from an event's attendees
// @Tags attendees
// @Produce json
// @Security BearerAuth
// @Param eventID path string true "Event ID (UUID)"
// @Param userID path int true "User ID"
// @Success 200 {object} controllers.AttendeesSuccessResponse "data contains the event with its remaining attendees"
// @Failure 400 {object} helpers.APIResponse "error.code: bad_request"
// @Failure 401 {object} helpers.APIResponse "error.code: unauthorized"
// @Failure 404 {object} helpers.APIResponse "error.code: not_found"
// @Failure 500 {object} helpers.APIResponse "error.code: internal_error"
// @Router /events/{eventID}/unregister/{userID} [delete]
func (c *AttendeeController) Unregister(w http.ResponseWriter, r *http.Request) {
	eventID, userID, ok := c.pathIDs(w, r)
	if !ok {
		return
	}
	result, err := c.Service.Remove(r.Context(), eventID, userID)
	if err != nil {
		if errors.Is(err, domain.ErrNotRegistered) {
			helpers.WriteJSONError(w, http.StatusBadRequest, helpers.ErrCodeBadRequest, err.Error())
			return
		}
		c.writeError(w, r, err)
		return
	}
	helpers.WriteJSONSuccess(w, http.StatusOK, result)
}

// ListAttendees godoc
// @Summary List an event's attendees
// @Tags attendees
// @Produce json
// @Security BearerAuth
// @Param eventID path string true "Event ID (UUID)"
// @Success 200 {object} controllers.AttendeeListSuccessResponse "data contains the attendees"
// @Failure 401 {object} helpers.APIResponse "error.code: unauthorized"
// @Failure 404 {object} helpers.APIResponse "error.code: not_found"
// @Failure 500 {object} helpers.APIResponse "error.code: internal_error"
// @Router /events/{eventID}/attendees [get]
func (c *AttendeeController) ListAttendees(w http.ResponseWriter, r *http.Request) {
	eventID := r.PathValue("eventID")
	if eventID == "" {
		helpers.WriteJSONError(w, http.StatusBadRequest, helpers.ErrCodeBadRequest, "missing eventID")
		return
	}
	attendees, err := c.Service.List(r.Context(), eventID)
	if err != nil {
		c.writeError(w, r, err)
		return
	}
	helpers.WriteJSONSuccess(w, http.StatusOK, attendees)
}

func (c *AttendeeController) pathIDs(w http.ResponseWriter, r *http.Request) (string, int64, bool) {
	eventID := r.PathValue("eventID")
	if eventID == "" {
		helpers.WriteJSONError(w, http.StatusBadRequest, helpers.ErrCodeBadRequest, "missing eventID")
		return "", 0, false
	}
	userID, err := strconv.ParseInt(r.PathValue("userID"), 10, 64)
	if err != nil || userID <= 0 {
		helpers.WriteJSONError(w, http.StatusBadRequest, helpers.ErrCodeBadRequest, "userID must be a positive integer")
		return "", 0, false
	}
	return eventID, userID, true
}

func (c *AttendeeController) writeError(w http.ResponseWriter, r *http.Request, err error) {
	if errors.Is(err, domain.ErrNotFound) {
		helpers.WriteJSONError(w, http.StatusNotFound, helpers.ErrCodeNotFound, "event or user not found")
		return
	}
	c.Logger.ErrorContext(r.Context(), "request failed", "path", r.URL.Path, "method", r.Method, "err", err)
	helpers.WriteJSONError(w, http.StatusInternalServerError, helpers.ErrCodeInternalError, "internal server error")
}
