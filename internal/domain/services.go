package domain

import (
	"context"
	"time"
)

// SubmissionService accepts public submissions. clientKey identifies the caller
// for rate limiting (usually the client IP).
type SubmissionService interface {
	SubmitEventRequest(ctx context.Context, clientKey string, in EventRequestInput) (*EventRequestReceipt, error)
	SubmitTestimonial(ctx context.Context, clientKey string, in TestimonialInput) (*TestimonialReceipt, error)
	// Wait blocks until owner notifications started by earlier submissions
	// finish, or ctx is done.
	Wait(ctx context.Context) error
}

// QueryService serves paginated admin and public listings.
type QueryService interface {
	ListEventRequests(ctx context.Context, q ListQuery) (*Page[*EventRequest], error)
	GetEventRequest(ctx context.Context, id int64) (*EventRequest, error)
	ListTestimonials(ctx context.Context, q ListQuery) (*Page[*Testimonial], error)
	GetTestimonial(ctx context.Context, id int64) (*Testimonial, error)
	ListPublicTestimonials(ctx context.Context, params PaginationParams) (*Page[PublicTestimonial], error)
}

// StatusService applies admin moderation actions to single records.
type StatusService interface {
	UpdateEventRequestStatus(ctx context.Context, id int64, status string) (*EventRequest, error)
	SoftDeleteEventRequest(ctx context.Context, id int64) error
	UpdateTestimonialStatus(ctx context.Context, id int64, status string) (*Testimonial, error)
	DeleteTestimonial(ctx context.Context, id int64) error
}

// RequestSummary aggregates event request counts for the dashboard.
type RequestSummary struct {
	Total          int `json:"total"`
	Completed      int `json:"completed"`
	Pending        int `json:"pending"`
	CompletionRate int `json:"completion_rate"`
}

// TestimonialSummary aggregates testimonial counts for the dashboard.
type TestimonialSummary struct {
	Total        int `json:"total"`
	Approved     int `json:"approved"`
	Pending      int `json:"pending"`
	ApprovalRate int `json:"approval_rate"`
}

// DashboardSummary is the admin overview.
// swagger:model DashboardSummary
type DashboardSummary struct {
	Requests           RequestSummary     `json:"requests"`
	Testimonials       TestimonialSummary `json:"testimonials"`
	RecentRequests     []*EventRequest    `json:"recent_requests"`
	RecentTestimonials []*Testimonial     `json:"recent_testimonials"`
	GeneratedAt        time.Time          `json:"generated_at"`
}

// DashboardService builds the admin overview.
type DashboardService interface {
	Summary(ctx context.Context) (*DashboardSummary, error)
}
