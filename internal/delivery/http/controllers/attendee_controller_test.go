package controllers

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"eventbooking/internal/delivery/http/helpers"
	"eventbooking/internal/domain"
)

type mockAttendeeService struct {
	result    *domain.EventWithAttendees
	attendees []*domain.User
	err       error
}

func (m *mockAttendeeService) Add(ctx context.Context, eventID string, userID int64) (*domain.EventWithAttendees, error) {
	if m.err != nil {
		return nil, m.err
	}
	return m.result, nil
}

func (m *mockAttendeeService) Remove(ctx context.Context, eventID string, userID int64) (*domain.EventWithAttendees, error) {
	if m.err != nil {
		return nil, m.err
	}
	return m.result, nil
}

func (m *mockAttendeeService) List(ctx context.Context, eventID string) ([]*domain.User, error) {
	if m.err != nil {
		return nil, m.err
	}
	return m.attendees, nil
}

func attendeeRequest(method, target, eventID, userID string) *http.Request {
	req := httptest.NewRequest(method, target, nil)
	req.SetPathValue("eventID", eventID)
	if userID != "" {
		req.SetPathValue("userID", userID)
	}
	return req
}

func TestAttendeeController_Register(t *testing.T) {
	date := time.Date(2026, 10, 1, 18, 0, 0, 0, time.UTC)
	result := &domain.EventWithAttendees{
		Event:     &domain.Event{ID: "e1", Title: "Birthday Party", Date: date},
		Attendees: []*domain.User{{ID: 7, DisplayName: "Frodo"}},
	}

	tests := []struct {
		name       string
		eventID    string
		userID     string
		svc        *mockAttendeeService
		wantStatus int
		wantCode   string
	}{
		{
			name:       "success",
			eventID:    "e1",
			userID:     "7",
			svc:        &mockAttendeeService{result: result},
			wantStatus: http.StatusOK,
		},
		{
			name:       "unknown event or user",
			eventID:    "missing",
			userID:     "7",
			svc:        &mockAttendeeService{err: domain.ErrNotFound},
			wantStatus: http.StatusNotFound,
			wantCode:   helpers.ErrCodeNotFound,
		},
		{
			name:       "already registered",
			eventID:    "e1",
			userID:     "7",
			svc:        &mockAttendeeService{err: domain.ErrAlreadyRegistered},
			wantStatus: http.StatusBadRequest,
			wantCode:   helpers.ErrCodeBadRequest,
		},
		{
			name:       "non-numeric user id",
			eventID:    "e1",
			userID:     "abc",
			svc:        &mockAttendeeService{result: result},
			wantStatus: http.StatusBadRequest,
			wantCode:   helpers.ErrCodeBadRequest,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ctrl := NewAttendeeController(testLogger(), tt.svc)

			w := httptest.NewRecorder()
			ctrl.Register(w, attendeeRequest(http.MethodPost, "/events/e1/register/7", tt.eventID, tt.userID))

			if w.Code != tt.wantStatus {
				t.Fatalf("expected status %d, got %d (body %s)", tt.wantStatus, w.Code, w.Body.String())
			}
			if tt.wantCode != "" {
				var resp helpers.APIResponse
				if err := json.Unmarshal(w.Body.Bytes(), &resp); err != nil {
					t.Fatalf("failed to unmarshal response: %v", err)
				}
				if resp.Error == nil || resp.Error.Code != tt.wantCode {
					t.Fatalf("expected error code %q, got %v", tt.wantCode, resp.Error)
				}
			}
		})
	}
}

func TestAttendeeController_Register_ResponseIncludesAttendees(t *testing.T) {
	date := time.Date(2026, 10, 1, 18, 0, 0, 0, time.UTC)
	svc := &mockAttendeeService{result: &domain.EventWithAttendees{
		Event:     &domain.Event{ID: "e1", Title: "Birthday Party", Date: date},
		Attendees: []*domain.User{{ID: 7, DisplayName: "Frodo"}, {ID: 8, DisplayName: "Sam"}},
	}}
	ctrl := NewAttendeeController(testLogger(), svc)

	w := httptest.NewRecorder()
	ctrl.Register(w, attendeeRequest(http.MethodPost, "/events/e1/register/7", "e1", "7"))

	var resp struct {
		Data domain.EventWithAttendees `json:"data"`
	}
	if err := json.Unmarshal(w.Body.Bytes(), &resp); err != nil {
		t.Fatalf("failed to unmarshal response: %v", err)
	}
	if resp.Data.Event == nil || resp.Data.Event.ID != "e1" {
		t.Fatalf("expected event in response")
	}
	if len(resp.Data.Attendees) != 2 {
		t.Fatalf("expected 2 attendees, got %d", len(resp.Data.Attendees))
	}
}

func TestAttendeeController_Unregister(t *testing.T) {
	date := time.Date(2026, 10, 1, 18, 0, 0, 0, time.UTC)
	result := &domain.EventWithAttendees{
		Event:     &domain.Event{ID: "e1", Title: "Birthday Party", Date: date},
		Attendees: []*domain.User{},
	}

	tests := []struct {
		name       string
		svc        *mockAttendeeService
		wantStatus int
	}{
		{
			name:       "success",
			svc:        &mockAttendeeService{result: result},
			wantStatus: http.StatusOK,
		},
		{
			name:       "not registered",
			svc:        &mockAttendeeService{err: domain.ErrNotRegistered},
			wantStatus: http.StatusBadRequest,
		},
		{
			name:       "unknown event",
			svc:        &mockAttendeeService{err: domain.ErrNotFound},
			wantStatus: http.StatusNotFound,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ctrl := NewAttendeeController(testLogger(), tt.svc)

			w := httptest.NewRecorder()
			ctrl.Unregister(w, attendeeRequest(http.MethodDelete, "/events/e1/unregister/7", "e1", "7"))

			if w.Code != tt.wantStatus {
				t.Fatalf("expected status %d, got %d", tt.wantStatus, w.Code)
			}
		})
	}
}

func TestAttendeeController_ListAttendees(t *testing.T) {
	t.Run("success", func(t *testing.T) {
		svc := &mockAttendeeService{attendees: []*domain.User{{ID: 7, DisplayName: "Frodo"}}}
		ctrl := NewAttendeeController(testLogger(), svc)

		w := httptest.NewRecorder()
		ctrl.ListAttendees(w, attendeeRequest(http.MethodGet, "/events/e1/attendees", "e1", ""))

		if w.Code != http.StatusOK {
			t.Fatalf("expected status %d, got %d", http.StatusOK, w.Code)
		}
	})

	t.Run("unknown event", func(t *testing.T) {
		ctrl := NewAttendeeController(testLogger(), &mockAttendeeService{err: domain.ErrNotFound})

		w := httptest.NewRecorder()
		ctrl.ListAttendees(w, attendeeRequest(http.MethodGet, "/events/missing/attendees", "missing", ""))

		if w.Code != http.StatusNotFound {
			t.Fatalf("expected status %d, got %d", http.StatusNotFound, w.Code)
		}
	})
}
