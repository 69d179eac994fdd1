package domain

import "context"

// Mailer defines the contract for sending emails (infrastructure port).
type Mailer interface {
	Send(to, subject, html, text string) error
}

// EmailTemplateRenderer renders email content from a named template with the given data.
type EmailTemplateRenderer interface {
	Render(templateName string, data any) (subject, htmlBody, textBody string, err error)
}

// WelcomeEmailData holds data for the welcome email sent on registration.
type WelcomeEmailData struct {
	Email       string
	DisplayName string
}

// BookingConfirmedEmailData holds data for the booking confirmation email.
type BookingConfirmedEmailData struct {
	Email       string
	DisplayName string
	EventTitle  string
	EventDate   string
}

// EmailService defines the contract for sending domain-level emails.
// Sends are best-effort: callers log failures and never fail the request.
type EmailService interface {
	SendWelcome(ctx context.Context, data *WelcomeEmailData) error
	SendBookingConfirmed(ctx context.Context, data *BookingConfirmedEmailData) error
}
