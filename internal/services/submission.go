package services

import (
	"context"
	"log/slog"
	"sync"
	"time"

	"github.com/cockroachdb/errors"

	"eventbooking/internal/domain"
	"eventbooking/internal/metrics"
	"eventbooking/internal/validation"
)

// defaultNotifyTimeout bounds one owner notification. Notifications run after
// the response is written, so they get their own deadline.
const defaultNotifyTimeout = 10 * time.Second

// retryAfterer is implemented by limiters that can tell when a key's window resets.
type retryAfterer interface {
	RetryAfter(key string) time.Duration
}

type submissionService struct {
	eventRepo       domain.EventRequestRepository
	testimonialRepo domain.TestimonialRepository
	limiter         domain.RateLimiter
	validator       *validation.Validator
	notifier        domain.NotificationService
	notifyEmail     string
	policy          domain.TestimonialPolicy
	contextTimeout  time.Duration
	notifyTimeout   time.Duration
	logger          *slog.Logger
	now             func() time.Time

	pending sync.WaitGroup
}

// NewSubmissionService creates the public submission pipeline. notifier may be nil,
// and notifyEmail empty, to disable owner notifications.
func NewSubmissionService(
	eventRepo domain.EventRequestRepository,
	testimonialRepo domain.TestimonialRepository,
	limiter domain.RateLimiter,
	validator *validation.Validator,
	notifier domain.NotificationService,
	notifyEmail string,
	policy domain.TestimonialPolicy,
	timeout time.Duration,
	logger *slog.Logger,
) domain.SubmissionService {
	if policy == "" {
		policy = domain.PolicyCompletedClient
	}
	return &submissionService{
		eventRepo:       eventRepo,
		testimonialRepo: testimonialRepo,
		limiter:         limiter,
		validator:       validator,
		notifier:        notifier,
		notifyEmail:     notifyEmail,
		policy:          policy,
		contextTimeout:  timeout,
		notifyTimeout:   defaultNotifyTimeout,
		logger:          logger,
		now:             time.Now,
	}
}

func (s *submissionService) SubmitEventRequest(ctx context.Context, clientKey string, in domain.EventRequestInput) (receipt *domain.EventRequestReceipt, err error) {
	defer func() { recordSubmission(domain.KindEventRequest, err) }()

	if err := s.admit(domain.KindEventRequest, clientKey); err != nil {
		return nil, err
	}
	if err := s.validator.ValidateEventRequest(in).Err(); err != nil {
		return nil, err
	}

	clean := domain.EventRequestInput{
		FirstName: validation.Sanitize(in.FirstName),
		LastName:  validation.Sanitize(in.LastName),
		Email:     validation.SanitizeEmail(in.Email),
		EventType: validation.Sanitize(in.EventType),
		Details:   validation.Sanitize(in.Details),
	}
	// Markup-only values are blank once stripped.
	if err := s.validator.ValidateEventRequest(clean).Err(); err != nil {
		return nil, err
	}
	var details *string
	if clean.Details != "" {
		details = &clean.Details
	}

	ctx, cancel := context.WithTimeout(ctx, s.contextTimeout)
	defer cancel()

	req := domain.NewEventRequest(clean.FirstName, clean.LastName, clean.Email, clean.EventType, details, s.now())
	if err := s.eventRepo.Create(ctx, req); err != nil {
		return nil, errors.Wrap(err, "create event request")
	}

	s.notifyEventRequest(ctx, req)
	r := req.Receipt()
	return &r, nil
}

func (s *submissionService) SubmitTestimonial(ctx context.Context, clientKey string, in domain.TestimonialInput) (receipt *domain.TestimonialReceipt, err error) {
	defer func() { recordSubmission(domain.KindTestimonial, err) }()

	if err := s.admit(domain.KindTestimonial, clientKey); err != nil {
		return nil, err
	}
	if err := s.validator.ValidateTestimonial(in).Err(); err != nil {
		return nil, err
	}

	rating := domain.DefaultRating
	if in.Rating != nil {
		rating = clampRating(*in.Rating)
	}
	clean := domain.TestimonialInput{
		Name:    validation.Sanitize(in.Name),
		Email:   validation.SanitizeEmail(in.Email),
		Comment: validation.Sanitize(in.Comment),
		Rating:  &rating,
	}
	if err := s.validator.ValidateTestimonial(clean).Err(); err != nil {
		return nil, err
	}

	ctx, cancel := context.WithTimeout(ctx, s.contextTimeout)
	defer cancel()

	if err := s.checkTestimonialAllowed(ctx, clean.Email); err != nil {
		return nil, err
	}

	t := domain.NewTestimonial(clean.Name, clean.Email, clean.Comment, rating, s.now())
	if err := s.testimonialRepo.Create(ctx, t); err != nil {
		if errors.Is(err, domain.ErrDuplicateEmail) {
			return nil, duplicateTestimonialError(clean.Email)
		}
		return nil, errors.Wrap(err, "create testimonial")
	}

	s.notifyTestimonial(ctx, t)
	r := t.Receipt()
	return &r, nil
}

// checkTestimonialAllowed enforces one testimonial per email and, under the
// completed-client policy, a COMPLETED event request for the same email.
func (s *submissionService) checkTestimonialAllowed(ctx context.Context, email string) error {
	_, err := s.testimonialRepo.FindFirst(ctx, domain.TestimonialFilter{Email: email})
	switch {
	case err == nil:
		return duplicateTestimonialError(email)
	case !errors.Is(err, domain.ErrNotFound):
		return errors.Wrap(err, "find testimonial by email")
	}

	if s.policy != domain.PolicyCompletedClient {
		return nil
	}
	_, err = s.eventRepo.FindFirst(ctx, domain.EventRequestFilter{Email: email, Status: domain.RequestCompleted})
	switch {
	case errors.Is(err, domain.ErrNotFound):
		return errors.WithHint(
			errors.Mark(errors.Newf("no completed event request for %s", email), domain.ErrNotEligible),
			"Only clients with a completed event can leave a testimonial.",
		)
	case err != nil:
		return errors.Wrap(err, "find completed event request")
	}
	return nil
}

func duplicateTestimonialError(email string) error {
	return errors.WithHint(
		errors.Mark(errors.Newf("testimonial already exists for %s", email), domain.ErrDuplicateSubmission),
		"You have already submitted a testimonial. Thank you!",
	)
}

func (s *submissionService) admit(kind domain.SubmissionKind, clientKey string) error {
	policy := kind.RateLimit()
	key := kind.RateLimitKey(clientKey)
	if s.limiter.Allow(key, policy.MaxRequests, policy.Window) {
		return nil
	}
	var retry time.Duration
	if ra, ok := s.limiter.(retryAfterer); ok {
		retry = ra.RetryAfter(key)
	}
	return errors.WithHint(domain.NewRateLimitedError(retry), "Too many submissions. Please try again later.")
}

func (s *submissionService) notifyEventRequest(ctx context.Context, req *domain.EventRequest) {
	if s.notifier == nil || s.notifyEmail == "" {
		return
	}
	data := &domain.EventRequestNotification{
		To:        s.notifyEmail,
		ID:        req.ID,
		FirstName: req.FirstName,
		LastName:  req.LastName,
		Email:     req.Email,
		EventType: req.EventType,
	}
	if req.Details != nil {
		data.Details = *req.Details
	}
	s.dispatch(ctx, "event request notification failed", req.ID, func(ctx context.Context) error {
		return s.notifier.NotifyEventRequest(ctx, data)
	})
}

func (s *submissionService) notifyTestimonial(ctx context.Context, t *domain.Testimonial) {
	if s.notifier == nil || s.notifyEmail == "" {
		return
	}
	data := &domain.TestimonialNotification{
		To:      s.notifyEmail,
		ID:      t.ID,
		Name:    t.Name,
		Email:   t.Email,
		Rating:  t.Rating,
		Comment: t.Comment,
	}
	s.dispatch(ctx, "testimonial notification failed", t.ID, func(ctx context.Context) error {
		return s.notifier.NotifyTestimonial(ctx, data)
	})
}

// dispatch runs send in the background. The request's values carry over but
// its cancellation and deadline do not; send gets notifyTimeout instead.
func (s *submissionService) dispatch(ctx context.Context, failMsg string, id int64, send func(context.Context) error) {
	ctx = context.WithoutCancel(ctx)
	s.pending.Go(func() {
		ctx, cancel := context.WithTimeout(ctx, s.notifyTimeout)
		defer cancel()
		if err := send(ctx); err != nil {
			metrics.NotificationFailuresTotal.Inc()
			s.logger.WarnContext(ctx, failMsg, "id", id, "err", err)
		}
	})
}

func (s *submissionService) Wait(ctx context.Context) error {
	done := make(chan struct{})
	go func() {
		s.pending.Wait()
		close(done)
	}()
	select {
	case <-done:
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}

func clampRating(r int) int {
	return min(max(r, domain.MinRating), domain.MaxRating)
}

func recordSubmission(kind domain.SubmissionKind, err error) {
	outcome := metrics.OutcomeAccepted
	switch {
	case err == nil:
	case errors.Is(err, domain.ErrRateLimited):
		outcome = metrics.OutcomeRateLimited
	case errors.Is(err, domain.ErrValidation):
		outcome = metrics.OutcomeInvalid
	case errors.Is(err, domain.ErrDuplicateSubmission):
		outcome = metrics.OutcomeDuplicate
	case errors.Is(err, domain.ErrNotEligible):
		outcome = metrics.OutcomeNotEligible
	default:
		outcome = metrics.OutcomeError
	}
	metrics.SubmissionsTotal.WithLabelValues(string(kind), outcome).Inc()
}
