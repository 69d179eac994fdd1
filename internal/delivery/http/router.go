package http

import (
	"net/http"

	httpSwagger "github.com/swaggo/http-swagger"

	"eventbooking/internal/delivery/http/controllers"
)

// route is one entry in the route table. Public routes skip authentication;
// everything else is wrapped with RequireAuth.
type route struct {
	pattern string
	public  bool
	handler http.HandlerFunc
}

// RouterDeps carries everything NewRouter needs to assemble the mux.
type RouterDeps struct {
	Auth      *controllers.AuthController
	Events    *controllers.EventController
	Attendees *controllers.AttendeeController
	Bookings  *controllers.BookingController

	// RequireAuth wraps a handler with bearer-token authentication.
	RequireAuth func(http.HandlerFunc) http.HandlerFunc

	// UploadDir is the local directory uploaded images are served from.
	UploadDir string
}

// NewRouter initializes the HTTP router with all application routes
func NewRouter(deps RouterDeps) *http.ServeMux {
	routes := []route{
		// Auth
		{pattern: "POST /auth/register", public: true, handler: deps.Auth.Register},
		{pattern: "POST /auth/login", public: true, handler: deps.Auth.Login},
		{pattern: "GET /auth/profile", handler: deps.Auth.GetProfile},
		{pattern: "PATCH /auth/profile", handler: deps.Auth.UpdateProfile},
		{pattern: "DELETE /auth/profile", handler: deps.Auth.DeleteProfile},

		// Events
		{pattern: "GET /events", handler: deps.Events.List},
		{pattern: "GET /events/{eventID}", handler: deps.Events.Get},
		{pattern: "POST /events", handler: deps.Events.Create},
		{pattern: "PATCH /events/{eventID}", handler: deps.Events.Update},
		{pattern: "DELETE /events/{eventID}", handler: deps.Events.Delete},
		{pattern: "POST /events/{eventID}/images", handler: deps.Events.UploadImages},

		// Attendees
		{pattern: "POST /events/{eventID}/register/{userID}", handler: deps.Attendees.Register},
		{pattern: "DELETE /events/{eventID}/unregister/{userID}", handler: deps.Attendees.Unregister},
		{pattern: "GET /events/{eventID}/attendees", handler: deps.Attendees.ListAttendees},

		// Bookings
		{pattern: "POST /bookings", handler: deps.Bookings.Create},
		{pattern: "GET /bookings", handler: deps.Bookings.ListMine},
		{pattern: "GET /bookings/event/{eventID}", handler: deps.Bookings.ListByEvent},
		{pattern: "GET /bookings/{bookingID}", handler: deps.Bookings.Get},
		{pattern: "PATCH /bookings/{bookingID}", handler: deps.Bookings.Update},
		{pattern: "DELETE /bookings/{bookingID}", handler: deps.Bookings.Delete},
	}

	mux := http.NewServeMux()
	for _, rt := range routes {
		handler := rt.handler
		if !rt.public {
			handler = deps.RequireAuth(handler)
		}
		mux.HandleFunc(rt.pattern, handler)
	}

	// Health
	mux.HandleFunc("GET /health", healthCheck)

	// Uploaded images
	mux.Handle("GET /uploads/", http.StripPrefix("/uploads/", http.FileServer(http.Dir(deps.UploadDir))))

	// Swagger
	mux.Handle("/swagger/", httpSwagger.WrapHandler)

	return mux
}

func healthCheck(w http.ResponseWriter, _ *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write([]byte(`{"status":"ok"}`))
}
