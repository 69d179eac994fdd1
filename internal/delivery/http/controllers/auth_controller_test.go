package controllers

import (
	"context"
	"encoding/json"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"eventbooking/internal/delivery/http/helpers"
	"eventbooking/internal/delivery/http/middleware"
	"eventbooking/internal/domain"
)

type mockAuthService struct {
	token string
	user  *domain.User
	err   error
}

func (m *mockAuthService) Register(ctx context.Context, input domain.RegisterInput) (string, *domain.User, error) {
	if m.err != nil {
		return "", nil, m.err
	}
	return m.token, m.user, nil
}

func (m *mockAuthService) Login(ctx context.Context, email, password string) (string, *domain.User, error) {
	if m.err != nil {
		return "", nil, m.err
	}
	return m.token, m.user, nil
}

func (m *mockAuthService) Authenticate(ctx context.Context, token string) (*domain.User, error) {
	if m.err != nil {
		return nil, m.err
	}
	return m.user, nil
}

type mockUserService struct {
	user *domain.User
	err  error
}

func (m *mockUserService) GetByID(ctx context.Context, id int64) (*domain.User, error) {
	if m.err != nil {
		return nil, m.err
	}
	return m.user, nil
}

func (m *mockUserService) UpdateProfile(ctx context.Context, id int64, upd domain.UserUpdate) (*domain.User, error) {
	if m.err != nil {
		return nil, m.err
	}
	return m.user, nil
}

func (m *mockUserService) Delete(ctx context.Context, id int64) error {
	return m.err
}

func testLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, &slog.HandlerOptions{Level: slog.LevelError}))
}

func TestAuthController_Register(t *testing.T) {
	user := &domain.User{ID: 1, Email: "frodo@shire.example", DisplayName: "Frodo"}

	tests := []struct {
		name       string
		body       string
		svc        *mockAuthService
		wantStatus int
		wantCode   string
	}{
		{
			name:       "success",
			body:       `{"email":"frodo@shire.example","password":"secret1","display_name":"Frodo"}`,
			svc:        &mockAuthService{token: "tok", user: user},
			wantStatus: http.StatusCreated,
		},
		{
			name:       "duplicate email",
			body:       `{"email":"frodo@shire.example","password":"secret1","display_name":"Frodo"}`,
			svc:        &mockAuthService{err: domain.ErrDuplicateEmail},
			wantStatus: http.StatusConflict,
			wantCode:   helpers.ErrCodeConflict,
		},
		{
			name:       "missing email",
			body:       `{"password":"secret1","display_name":"Frodo"}`,
			svc:        &mockAuthService{token: "tok", user: user},
			wantStatus: http.StatusBadRequest,
			wantCode:   helpers.ErrCodeBadRequest,
		},
		{
			name:       "short password",
			body:       `{"email":"frodo@shire.example","password":"abc","display_name":"Frodo"}`,
			svc:        &mockAuthService{token: "tok", user: user},
			wantStatus: http.StatusBadRequest,
			wantCode:   helpers.ErrCodeBadRequest,
		},
		{
			name:       "malformed json",
			body:       `{"email":`,
			svc:        &mockAuthService{token: "tok", user: user},
			wantStatus: http.StatusBadRequest,
			wantCode:   helpers.ErrCodeBadRequest,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ctrl := NewAuthController(testLogger(), tt.svc, &mockUserService{})

			req := httptest.NewRequest(http.MethodPost, "/auth/register", strings.NewReader(tt.body))
			w := httptest.NewRecorder()
			ctrl.Register(w, req)

			if w.Code != tt.wantStatus {
				t.Fatalf("expected status %d, got %d (body %s)", tt.wantStatus, w.Code, w.Body.String())
			}
			var resp helpers.APIResponse
			if err := json.Unmarshal(w.Body.Bytes(), &resp); err != nil {
				t.Fatalf("failed to unmarshal response: %v", err)
			}
			if tt.wantCode != "" {
				if resp.Error == nil || resp.Error.Code != tt.wantCode {
					t.Fatalf("expected error code %q, got %v", tt.wantCode, resp.Error)
				}
			} else if resp.Error != nil {
				t.Fatalf("expected no error, got %v", resp.Error)
			}
		})
	}
}

func TestAuthController_Login(t *testing.T) {
	user := &domain.User{ID: 1, Email: "frodo@shire.example", DisplayName: "Frodo"}

	tests := []struct {
		name       string
		body       string
		svc        *mockAuthService
		wantStatus int
	}{
		{
			name:       "success",
			body:       `{"email":"frodo@shire.example","password":"secret1"}`,
			svc:        &mockAuthService{token: "tok", user: user},
			wantStatus: http.StatusOK,
		},
		{
			name:       "invalid credentials",
			body:       `{"email":"frodo@shire.example","password":"wrong"}`,
			svc:        &mockAuthService{err: domain.ErrInvalidCredentials},
			wantStatus: http.StatusUnauthorized,
		},
		{
			name:       "missing password",
			body:       `{"email":"frodo@shire.example"}`,
			svc:        &mockAuthService{token: "tok", user: user},
			wantStatus: http.StatusBadRequest,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ctrl := NewAuthController(testLogger(), tt.svc, &mockUserService{})

			req := httptest.NewRequest(http.MethodPost, "/auth/login", strings.NewReader(tt.body))
			w := httptest.NewRecorder()
			ctrl.Login(w, req)

			if w.Code != tt.wantStatus {
				t.Fatalf("expected status %d, got %d", tt.wantStatus, w.Code)
			}
		})
	}
}

func TestAuthController_Login_ResponseShape(t *testing.T) {
	user := &domain.User{ID: 1, Email: "frodo@shire.example", DisplayName: "Frodo"}
	ctrl := NewAuthController(testLogger(), &mockAuthService{token: "tok", user: user}, &mockUserService{})

	req := httptest.NewRequest(http.MethodPost, "/auth/login", strings.NewReader(`{"email":"frodo@shire.example","password":"secret1"}`))
	w := httptest.NewRecorder()
	ctrl.Login(w, req)

	var resp struct {
		Data AuthResponse `json:"data"`
	}
	if err := json.Unmarshal(w.Body.Bytes(), &resp); err != nil {
		t.Fatalf("failed to unmarshal response: %v", err)
	}
	if resp.Data.AccessToken != "tok" {
		t.Fatalf("expected access_token tok, got %q", resp.Data.AccessToken)
	}
	if resp.Data.TokenType != "Bearer" {
		t.Fatalf("expected token_type Bearer, got %q", resp.Data.TokenType)
	}
	if resp.Data.User == nil || resp.Data.User.ID != 1 {
		t.Fatalf("expected user in response")
	}
}

func TestAuthController_GetProfile(t *testing.T) {
	t.Run("unauthorized without caller", func(t *testing.T) {
		ctrl := NewAuthController(testLogger(), &mockAuthService{}, &mockUserService{})

		req := httptest.NewRequest(http.MethodGet, "/auth/profile", nil)
		w := httptest.NewRecorder()
		ctrl.GetProfile(w, req)

		if w.Code != http.StatusUnauthorized {
			t.Fatalf("expected status %d, got %d", http.StatusUnauthorized, w.Code)
		}
	})

	t.Run("returns the caller", func(t *testing.T) {
		ctrl := NewAuthController(testLogger(), &mockAuthService{}, &mockUserService{})
		caller := &domain.User{ID: 1, Email: "frodo@shire.example", DisplayName: "Frodo"}

		req := httptest.NewRequest(http.MethodGet, "/auth/profile", nil)
		req = req.WithContext(middleware.SetCaller(req.Context(), caller))
		w := httptest.NewRecorder()
		ctrl.GetProfile(w, req)

		if w.Code != http.StatusOK {
			t.Fatalf("expected status %d, got %d", http.StatusOK, w.Code)
		}
		var resp struct {
			Data domain.User `json:"data"`
		}
		if err := json.Unmarshal(w.Body.Bytes(), &resp); err != nil {
			t.Fatalf("failed to unmarshal response: %v", err)
		}
		if resp.Data.ID != 1 {
			t.Fatalf("expected caller in response, got %+v", resp.Data)
		}
	})
}

func TestAuthController_UpdateProfile(t *testing.T) {
	caller := &domain.User{ID: 1, Email: "frodo@shire.example", DisplayName: "Frodo"}
	updated := &domain.User{ID: 1, Email: "frodo@shire.example", DisplayName: "Mr. Underhill"}

	t.Run("success", func(t *testing.T) {
		ctrl := NewAuthController(testLogger(), &mockAuthService{}, &mockUserService{user: updated})

		req := httptest.NewRequest(http.MethodPatch, "/auth/profile", strings.NewReader(`{"display_name":"Mr. Underhill"}`))
		req = req.WithContext(middleware.SetCaller(req.Context(), caller))
		w := httptest.NewRecorder()
		ctrl.UpdateProfile(w, req)

		if w.Code != http.StatusOK {
			t.Fatalf("expected status %d, got %d (body %s)", http.StatusOK, w.Code, w.Body.String())
		}
	})

	t.Run("empty display name", func(t *testing.T) {
		ctrl := NewAuthController(testLogger(), &mockAuthService{}, &mockUserService{user: updated})

		req := httptest.NewRequest(http.MethodPatch, "/auth/profile", strings.NewReader(`{"display_name":"  "}`))
		req = req.WithContext(middleware.SetCaller(req.Context(), caller))
		w := httptest.NewRecorder()
		ctrl.UpdateProfile(w, req)

		if w.Code != http.StatusBadRequest {
			t.Fatalf("expected status %d, got %d", http.StatusBadRequest, w.Code)
		}
	})
}

func TestAuthController_DeleteProfile(t *testing.T) {
	caller := &domain.User{ID: 1, Email: "frodo@shire.example", DisplayName: "Frodo"}
	ctrl := NewAuthController(testLogger(), &mockAuthService{}, &mockUserService{})

	req := httptest.NewRequest(http.MethodDelete, "/auth/profile", nil)
	req = req.WithContext(middleware.SetCaller(req.Context(), caller))
	w := httptest.NewRecorder()
	ctrl.DeleteProfile(w, req)

	if w.Code != http.StatusNoContent {
		t.Fatalf("expected status %d, got %d", http.StatusNoContent, w.Code)
	}
}
