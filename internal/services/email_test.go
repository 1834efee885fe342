package services

import (
	"context"
	"testing"

	"github.com/cockroachdb/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"eventbooking/internal/domain"
)

type sentEmail struct {
	to, subject, html, text string
}

type fakeMailer struct {
	sent []sentEmail
	err  error
}

func (m *fakeMailer) Send(ctx context.Context, to, subject, html, text string) error {
	if m.err != nil {
		return m.err
	}
	m.sent = append(m.sent, sentEmail{to, subject, html, text})
	return nil
}

type fakeRenderer struct {
	names []string
	err   error
}

func (r *fakeRenderer) Render(name string, data any) (string, string, string, error) {
	r.names = append(r.names, name)
	if r.err != nil {
		return "", "", "", r.err
	}
	return "subject:" + name, "<p>" + name + "</p>", name, nil
}

func TestNotificationService_NotifyEventRequest(t *testing.T) {
	mailer := &fakeMailer{}
	renderer := &fakeRenderer{}
	svc := NewNotificationService(mailer, renderer, discardLogger())

	err := svc.NotifyEventRequest(context.Background(), &domain.EventRequestNotification{To: "owner@example.com", ID: 1})
	require.NoError(t, err)
	assert.Equal(t, []string{"event_request_received"}, renderer.names)
	require.Len(t, mailer.sent, 1)
	assert.Equal(t, sentEmail{"owner@example.com", "subject:event_request_received", "<p>event_request_received</p>", "event_request_received"}, mailer.sent[0])
}

func TestNotificationService_NotifyTestimonial(t *testing.T) {
	mailer := &fakeMailer{}
	renderer := &fakeRenderer{}
	svc := NewNotificationService(mailer, renderer, discardLogger())

	err := svc.NotifyTestimonial(context.Background(), &domain.TestimonialNotification{To: "owner@example.com", Rating: 5})
	require.NoError(t, err)
	assert.Equal(t, []string{"testimonial_received"}, renderer.names)
	assert.Len(t, mailer.sent, 1)
}

func TestNotificationService_Errors(t *testing.T) {
	tests := []struct {
		name     string
		mailer   *fakeMailer
		renderer *fakeRenderer
		data     *domain.EventRequestNotification
	}{
		{"nil data", &fakeMailer{}, &fakeRenderer{}, nil},
		{"render failure", &fakeMailer{}, &fakeRenderer{err: errors.New("bad template")}, &domain.EventRequestNotification{To: "o@example.com"}},
		{"send failure", &fakeMailer{err: errors.New("ses down")}, &fakeRenderer{}, &domain.EventRequestNotification{To: "o@example.com"}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			svc := NewNotificationService(tt.mailer, tt.renderer, discardLogger())
			err := svc.NotifyEventRequest(context.Background(), tt.data)
			assert.Error(t, err)
			assert.Empty(t, tt.mailer.sent)
		})
	}
}
