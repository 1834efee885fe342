package domain

import (
	"time"

	"github.com/samber/lo"
)

// SubmissionKind identifies one of the two public submission types. Kind-specific
// policy (rate limits, status vocabulary, list defaults) hangs off this value.
type SubmissionKind string

const (
	KindEventRequest SubmissionKind = "event_request"
	KindTestimonial  SubmissionKind = "testimonial"
)

// RateLimitPolicy is the admission threshold for one submission kind.
type RateLimitPolicy struct {
	KeyPrefix   string
	MaxRequests int
	Window      time.Duration
}

// List page sizes.
const (
	DefaultListLimit       = 10
	AdminListLimit         = 9
	PublicTestimonialLimit = 6
	MaxListLimit           = 100
)

// MaxEmailLength is the width of the email columns. Input tags repeat it as max=320.
const MaxEmailLength = 320

var rateLimitPolicies = map[SubmissionKind]RateLimitPolicy{
	KindEventRequest: {KeyPrefix: "request_", MaxRequests: 5, Window: 15 * time.Minute},
	KindTestimonial:  {KeyPrefix: "testimonial_", MaxRequests: 3, Window: 60 * time.Minute},
}

// RateLimit returns the rate limit policy for the kind.
func (k SubmissionKind) RateLimit() RateLimitPolicy {
	return rateLimitPolicies[k]
}

// RateLimitKey returns the limiter key for a client of this kind.
func (k SubmissionKind) RateLimitKey(clientKey string) string {
	if clientKey == "" {
		clientKey = "unknown"
	}
	return k.RateLimit().KeyPrefix + clientKey
}

// Statuses returns the status vocabulary of the kind.
func (k SubmissionKind) Statuses() []string {
	switch k {
	case KindEventRequest:
		return lo.Map(AllRequestStatuses, func(s RequestStatus, _ int) string { return string(s) })
	case KindTestimonial:
		return lo.Map(AllTestimonialStatuses, func(s TestimonialStatus, _ int) string { return string(s) })
	}
	return nil
}

// ValidStatus reports whether status belongs to the kind's vocabulary.
func (k SubmissionKind) ValidStatus(status string) bool {
	return lo.Contains(k.Statuses(), status)
}

// RateLimiter admits or denies an attempt for key within a fixed window.
type RateLimiter interface {
	Allow(key string, maxRequests int, window time.Duration) bool
}
