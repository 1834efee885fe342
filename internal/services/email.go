package services

import (
	"context"
	"log/slog"

	"github.com/cockroachdb/errors"

	"eventbooking/internal/domain"
)

type notificationService struct {
	mailer   domain.Mailer
	renderer domain.EmailTemplateRenderer
	logger   *slog.Logger
}

// NewNotificationService returns a NotificationService that uses the given Mailer and template renderer.
func NewNotificationService(mailer domain.Mailer, renderer domain.EmailTemplateRenderer, logger *slog.Logger) domain.NotificationService {
	return &notificationService{mailer: mailer, renderer: renderer, logger: logger}
}

// NotifyEventRequest sends the "event_request_received" email to the owner inbox.
func (s *notificationService) NotifyEventRequest(ctx context.Context, data *domain.EventRequestNotification) error {
	if data == nil {
		return errors.New("event request notification data is nil")
	}
	return s.send(ctx, "event_request_received", data.To, data)
}

// NotifyTestimonial sends the "testimonial_received" email to the owner inbox.
func (s *notificationService) NotifyTestimonial(ctx context.Context, data *domain.TestimonialNotification) error {
	if data == nil {
		return errors.New("testimonial notification data is nil")
	}
	return s.send(ctx, "testimonial_received", data.To, data)
}

func (s *notificationService) send(ctx context.Context, template, to string, data any) error {
	subject, htmlBody, textBody, err := s.renderer.Render(template, data)
	if err != nil {
		return errors.Wrapf(err, "render %s template", template)
	}
	if err := s.mailer.Send(ctx, to, subject, htmlBody, textBody); err != nil {
		return errors.Wrapf(err, "send %s email", template)
	}
	s.logger.InfoContext(ctx, "notification sent", "template", template, "to", to)
	return nil
}
