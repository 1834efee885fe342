package domain

import (
	"context"
	"time"
)

// TestimonialStatus is the moderation state of a Testimonial.
type TestimonialStatus string

const (
	TestimonialPending  TestimonialStatus = "PENDING"
	TestimonialApproved TestimonialStatus = "APPROVED"
	TestimonialRejected TestimonialStatus = "REJECTED"
)

// AllTestimonialStatuses lists every valid TestimonialStatus.
var AllTestimonialStatuses = []TestimonialStatus{
	TestimonialPending,
	TestimonialApproved,
	TestimonialRejected,
}

// ParseTestimonialStatus reports whether s is exactly one of the TestimonialStatus values.
// Matching is case-sensitive; "completed" is not COMPLETED.
func ParseTestimonialStatus(s string) (TestimonialStatus, bool) {
	if !KindTestimonial.ValidStatus(s) {
		return "", false
	}
	return TestimonialStatus(s), true
}

// Rating bounds.
const (
	MinRating     = 1
	MaxRating     = 5
	DefaultRating = 5
)

// TestimonialPolicy selects how testimonial submissions are admitted.
type TestimonialPolicy string

const (
	// PolicyCompletedClient only accepts testimonials from an email that has a
	// COMPLETED event request on file.
	PolicyCompletedClient TestimonialPolicy = "completed_client"
	// PolicyOpen only enforces the one-testimonial-per-email rule.
	PolicyOpen TestimonialPolicy = "open"
)

// Testimonial is client feedback shown on the public site once approved.
// swagger:model Testimonial
type Testimonial struct {
	ID        int64             `json:"id"`
	Name      string            `json:"name"`
	Email     string            `json:"email"`
	Comment   string            `json:"comment"`
	Rating    int               `json:"rating"`
	Status    TestimonialStatus `json:"status"`
	CreatedAt time.Time         `json:"created_at"`
}

// NewTestimonial returns a PENDING Testimonial. ID is set by the repository on create.
func NewTestimonial(name, email, comment string, rating int, createdAt time.Time) *Testimonial {
	return &Testimonial{
		Name:      name,
		Email:     email,
		Comment:   comment,
		Rating:    rating,
		Status:    TestimonialPending,
		CreatedAt: createdAt,
	}
}

// TestimonialInput is the raw public submission, before sanitizing.
// A missing rating defaults to DefaultRating.
type TestimonialInput struct {
	Name    string `json:"name" validate:"notblank,max=100"`
	Email   string `json:"email" validate:"notblank,simple_email,max=320"`
	Comment string `json:"comment" validate:"notblank,max=500"`
	Rating  *int   `json:"rating" validate:"omitempty,min=1,max=5"`
}

// TestimonialReceipt is the public-safe view returned after a submission.
// swagger:model TestimonialReceipt
type TestimonialReceipt struct {
	ID     int64  `json:"id"`
	Name   string `json:"name"`
	Rating int    `json:"rating"`
}

// PublicTestimonial is what unauthenticated callers see: no email, no status.
// swagger:model PublicTestimonial
type PublicTestimonial struct {
	ID        int64     `json:"id"`
	Name      string    `json:"name"`
	Comment   string    `json:"comment"`
	Rating    int       `json:"rating"`
	CreatedAt time.Time `json:"created_at"`
}

// Receipt returns the projection echoed back to the submitter.
func (t *Testimonial) Receipt() TestimonialReceipt {
	return TestimonialReceipt{ID: t.ID, Name: t.Name, Rating: t.Rating}
}

// Public returns the projection safe for unauthenticated callers.
func (t *Testimonial) Public() PublicTestimonial {
	return PublicTestimonial{
		ID:        t.ID,
		Name:      t.Name,
		Comment:   t.Comment,
		Rating:    t.Rating,
		CreatedAt: t.CreatedAt,
	}
}

// TestimonialFilter narrows testimonial reads.
type TestimonialFilter struct {
	Status TestimonialStatus
	Email  string
	Search string
}

// TestimonialRepository defines the storage operations for testimonials.
type TestimonialRepository interface {
	Create(ctx context.Context, t *Testimonial) error
	GetByID(ctx context.Context, id int64) (*Testimonial, error)
	FindFirst(ctx context.Context, filter TestimonialFilter) (*Testimonial, error)
	Count(ctx context.Context, filter TestimonialFilter) (int, error)
	List(ctx context.Context, filter TestimonialFilter, params PaginationParams) ([]*Testimonial, error)
	UpdateStatus(ctx context.Context, id int64, status TestimonialStatus) (*Testimonial, error)
	Delete(ctx context.Context, id int64) error
}
