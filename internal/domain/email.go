package domain

import "context"

// Mailer defines the contract for sending emails (infrastructure port).
type Mailer interface {
	Send(ctx context.Context, to, subject, html, text string) error
}

// EmailTemplateRenderer renders email content from a named template with the given data.
type EmailTemplateRenderer interface {
	Render(templateName string, data any) (subject, htmlBody, textBody string, err error)
}

// EventRequestNotification holds data for the "new event request" email sent to the owner.
type EventRequestNotification struct {
	To        string
	ID        int64
	FirstName string
	LastName  string
	Email     string
	EventType string
	Details   string
}

// TestimonialNotification holds data for the "new testimonial" email sent to the owner.
type TestimonialNotification struct {
	To      string
	ID      int64
	Name    string
	Email   string
	Rating  int
	Comment string
}

// NotificationService sends domain-level emails about new submissions.
type NotificationService interface {
	NotifyEventRequest(ctx context.Context, data *EventRequestNotification) error
	NotifyTestimonial(ctx context.Context, data *TestimonialNotification) error
}
