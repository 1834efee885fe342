package services

import (
	"context"
	"time"

	"github.com/cockroachdb/errors"

	"eventbooking/internal/domain"
	"eventbooking/internal/metrics"
)

type statusService struct {
	eventRepo       domain.EventRequestRepository
	testimonialRepo domain.TestimonialRepository
	contextTimeout  time.Duration
	now             func() time.Time
}

// NewStatusService creates the moderation service. Any status in a kind's vocabulary
// may replace any other; there is no transition graph.
func NewStatusService(eventRepo domain.EventRequestRepository, testimonialRepo domain.TestimonialRepository, timeout time.Duration) domain.StatusService {
	return &statusService{
		eventRepo:       eventRepo,
		testimonialRepo: testimonialRepo,
		contextTimeout:  timeout,
		now:             time.Now,
	}
}

func invalidStatusError(kind domain.SubmissionKind, status string) error {
	return errors.WithHint(
		errors.Mark(errors.Newf("invalid %s status %q", kind, status), domain.ErrInvalidStatus),
		"Invalid status value",
	)
}

func (s *statusService) UpdateEventRequestStatus(ctx context.Context, id int64, status string) (*domain.EventRequest, error) {
	st, ok := domain.ParseRequestStatus(status)
	if !ok {
		return nil, invalidStatusError(domain.KindEventRequest, status)
	}

	ctx, cancel := context.WithTimeout(ctx, s.contextTimeout)
	defer cancel()

	updated, err := s.eventRepo.UpdateStatus(ctx, id, st)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return nil, domain.ErrNotFound
		}
		return nil, errors.Wrap(err, "update event request status")
	}
	metrics.ModerationActionsTotal.WithLabelValues(string(domain.KindEventRequest), "status_"+string(st)).Inc()
	return updated, nil
}

// SoftDeleteEventRequest stamps deleted_at and leaves every other column untouched.
func (s *statusService) SoftDeleteEventRequest(ctx context.Context, id int64) error {
	ctx, cancel := context.WithTimeout(ctx, s.contextTimeout)
	defer cancel()

	if err := s.eventRepo.SoftDelete(ctx, id, s.now()); err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return domain.ErrNotFound
		}
		return errors.Wrap(err, "soft delete event request")
	}
	metrics.ModerationActionsTotal.WithLabelValues(string(domain.KindEventRequest), "delete").Inc()
	return nil
}

func (s *statusService) UpdateTestimonialStatus(ctx context.Context, id int64, status string) (*domain.Testimonial, error) {
	st, ok := domain.ParseTestimonialStatus(status)
	if !ok {
		return nil, invalidStatusError(domain.KindTestimonial, status)
	}

	ctx, cancel := context.WithTimeout(ctx, s.contextTimeout)
	defer cancel()

	updated, err := s.testimonialRepo.UpdateStatus(ctx, id, st)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return nil, domain.ErrNotFound
		}
		return nil, errors.Wrap(err, "update testimonial status")
	}
	metrics.ModerationActionsTotal.WithLabelValues(string(domain.KindTestimonial), "status_"+string(st)).Inc()
	return updated, nil
}

// DeleteTestimonial removes the testimonial permanently.
func (s *statusService) DeleteTestimonial(ctx context.Context, id int64) error {
	ctx, cancel := context.WithTimeout(ctx, s.contextTimeout)
	defer cancel()

	if err := s.testimonialRepo.Delete(ctx, id); err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return domain.ErrNotFound
		}
		return errors.Wrap(err, "delete testimonial")
	}
	metrics.ModerationActionsTotal.WithLabelValues(string(domain.KindTestimonial), "delete").Inc()
	return nil
}
