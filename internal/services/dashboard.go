package services

import (
	"context"
	"math"
	"time"

	"github.com/cockroachdb/errors"
	"golang.org/x/sync/errgroup"

	"eventbooking/internal/domain"
)

const recentItemsLimit = 5

type dashboardService struct {
	eventRepo       domain.EventRequestRepository
	testimonialRepo domain.TestimonialRepository
	contextTimeout  time.Duration
	now             func() time.Time
}

// NewDashboardService creates the admin overview service.
func NewDashboardService(eventRepo domain.EventRequestRepository, testimonialRepo domain.TestimonialRepository, timeout time.Duration) domain.DashboardService {
	return &dashboardService{
		eventRepo:       eventRepo,
		testimonialRepo: testimonialRepo,
		contextTimeout:  timeout,
		now:             time.Now,
	}
}

// Summary runs the independent counts and recent-item queries concurrently.
// Soft-deleted event requests are not counted.
func (s *dashboardService) Summary(ctx context.Context) (*domain.DashboardSummary, error) {
	ctx, cancel := context.WithTimeout(ctx, s.contextTimeout)
	defer cancel()

	out := &domain.DashboardSummary{}
	recent := domain.PaginationParams{Page: 1, PageSize: recentItemsLimit}
	g, gctx := errgroup.WithContext(ctx)

	countRequests := func(dst *int, status domain.RequestStatus) {
		g.Go(func() error {
			n, err := s.eventRepo.Count(gctx, domain.EventRequestFilter{Status: status})
			if err != nil {
				return errors.Wrapf(err, "count event requests %q", status)
			}
			*dst = n
			return nil
		})
	}
	countTestimonials := func(dst *int, status domain.TestimonialStatus) {
		g.Go(func() error {
			n, err := s.testimonialRepo.Count(gctx, domain.TestimonialFilter{Status: status})
			if err != nil {
				return errors.Wrapf(err, "count testimonials %q", status)
			}
			*dst = n
			return nil
		})
	}

	countRequests(&out.Requests.Total, "")
	countRequests(&out.Requests.Completed, domain.RequestCompleted)
	countRequests(&out.Requests.Pending, domain.RequestPending)
	countTestimonials(&out.Testimonials.Total, "")
	countTestimonials(&out.Testimonials.Approved, domain.TestimonialApproved)
	countTestimonials(&out.Testimonials.Pending, domain.TestimonialPending)
	g.Go(func() error {
		items, err := s.eventRepo.List(gctx, domain.EventRequestFilter{}, recent)
		if err != nil {
			return errors.Wrap(err, "list recent event requests")
		}
		out.RecentRequests = items
		return nil
	})
	g.Go(func() error {
		items, err := s.testimonialRepo.List(gctx, domain.TestimonialFilter{}, recent)
		if err != nil {
			return errors.Wrap(err, "list recent testimonials")
		}
		out.RecentTestimonials = items
		return nil
	})

	if err := g.Wait(); err != nil {
		return nil, err
	}

	out.Requests.CompletionRate = percent(out.Requests.Completed, out.Requests.Total)
	out.Testimonials.ApprovalRate = percent(out.Testimonials.Approved, out.Testimonials.Total)
	if out.RecentRequests == nil {
		out.RecentRequests = []*domain.EventRequest{}
	}
	if out.RecentTestimonials == nil {
		out.RecentTestimonials = []*domain.Testimonial{}
	}
	out.GeneratedAt = s.now()
	return out, nil
}

func percent(part, total int) int {
	if total <= 0 {
		return 0
	}
	return int(math.Round(float64(part) / float64(total) * 100))
}
