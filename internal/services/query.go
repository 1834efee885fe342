package services

import (
	"context"
	"strings"
	"time"

	"github.com/cockroachdb/errors"
	"github.com/samber/lo"

	"eventbooking/internal/domain"
)

type queryService struct {
	eventRepo       domain.EventRequestRepository
	testimonialRepo domain.TestimonialRepository
	contextTimeout  time.Duration
}

// NewQueryService creates the listing service used by admin views and the public feed.
func NewQueryService(eventRepo domain.EventRequestRepository, testimonialRepo domain.TestimonialRepository, timeout time.Duration) domain.QueryService {
	return &queryService{
		eventRepo:       eventRepo,
		testimonialRepo: testimonialRepo,
		contextTimeout:  timeout,
	}
}

// normalizePagination falls back to page 1 and DefaultListLimit, and caps the page size.
func normalizePagination(p domain.PaginationParams) domain.PaginationParams {
	if p.Page < 1 {
		p.Page = 1
	}
	if p.PageSize < 1 {
		p.PageSize = domain.DefaultListLimit
	}
	if p.PageSize > domain.MaxListLimit {
		p.PageSize = domain.MaxListLimit
	}
	return p
}

func (s *queryService) ListEventRequests(ctx context.Context, q domain.ListQuery) (*domain.Page[*domain.EventRequest], error) {
	ctx, cancel := context.WithTimeout(ctx, s.contextTimeout)
	defer cancel()

	params := normalizePagination(q.Pagination)
	filter := domain.EventRequestFilter{Search: strings.TrimSpace(q.Search)}
	// Unknown statuses are ignored rather than rejected.
	if st, ok := domain.ParseRequestStatus(q.Status); ok {
		filter.Status = st
	}

	total, err := s.eventRepo.Count(ctx, filter)
	if err != nil {
		return nil, errors.Wrap(err, "count event requests")
	}
	items := []*domain.EventRequest{}
	if params.Offset() < total {
		items, err = s.eventRepo.List(ctx, filter, params)
		if err != nil {
			return nil, errors.Wrap(err, "list event requests")
		}
		if items == nil {
			items = []*domain.EventRequest{}
		}
	}
	return &domain.Page[*domain.EventRequest]{Items: items, Pagination: domain.NewPageInfo(params, total)}, nil
}

func (s *queryService) GetEventRequest(ctx context.Context, id int64) (*domain.EventRequest, error) {
	ctx, cancel := context.WithTimeout(ctx, s.contextTimeout)
	defer cancel()

	req, err := s.eventRepo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return nil, domain.ErrNotFound
		}
		return nil, errors.Wrap(err, "get event request")
	}
	return req, nil
}

func (s *queryService) ListTestimonials(ctx context.Context, q domain.ListQuery) (*domain.Page[*domain.Testimonial], error) {
	filter := domain.TestimonialFilter{Search: strings.TrimSpace(q.Search)}
	if st, ok := domain.ParseTestimonialStatus(q.Status); ok {
		filter.Status = st
	}
	return s.listTestimonials(ctx, filter, q.Pagination)
}

func (s *queryService) GetTestimonial(ctx context.Context, id int64) (*domain.Testimonial, error) {
	ctx, cancel := context.WithTimeout(ctx, s.contextTimeout)
	defer cancel()

	t, err := s.testimonialRepo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return nil, domain.ErrNotFound
		}
		return nil, errors.Wrap(err, "get testimonial")
	}
	return t, nil
}

// ListPublicTestimonials only ever returns APPROVED testimonials, without email or status.
func (s *queryService) ListPublicTestimonials(ctx context.Context, params domain.PaginationParams) (*domain.Page[domain.PublicTestimonial], error) {
	page, err := s.listTestimonials(ctx, domain.TestimonialFilter{Status: domain.TestimonialApproved}, params)
	if err != nil {
		return nil, err
	}
	return &domain.Page[domain.PublicTestimonial]{
		Items:      lo.Map(page.Items, func(t *domain.Testimonial, _ int) domain.PublicTestimonial { return t.Public() }),
		Pagination: page.Pagination,
	}, nil
}

func (s *queryService) listTestimonials(ctx context.Context, filter domain.TestimonialFilter, p domain.PaginationParams) (*domain.Page[*domain.Testimonial], error) {
	ctx, cancel := context.WithTimeout(ctx, s.contextTimeout)
	defer cancel()

	params := normalizePagination(p)
	total, err := s.testimonialRepo.Count(ctx, filter)
	if err != nil {
		return nil, errors.Wrap(err, "count testimonials")
	}
	items := []*domain.Testimonial{}
	if params.Offset() < total {
		items, err = s.testimonialRepo.List(ctx, filter, params)
		if err != nil {
			return nil, errors.Wrap(err, "list testimonials")
		}
		if items == nil {
			items = []*domain.Testimonial{}
		}
	}
	return &domain.Page[*domain.Testimonial]{Items: items, Pagination: domain.NewPageInfo(params, total)}, nil
}
